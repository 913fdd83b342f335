package episode

import (
	"path/filepath"
	"sort"
)

// Pair joins the two files that carry the same episode key. Role assignment
// (which side is base, which is donor) belongs to the caller; pairing is
// purely key-driven.
type Pair struct {
	Key   string
	PathA string
	PathB string
}

// Ambiguity records an episode key hit by more than one file on one side.
// Such keys are excluded from pairing rather than silently resolved.
type Ambiguity struct {
	Key   string
	Paths []string
}

// PairSet is the full outcome of pairing two directory listings.
type PairSet struct {
	Pairs      []Pair
	UnmatchedA []string // side-A files with no key or no counterpart
	UnmatchedB []string
	AmbiguousA []Ambiguity
	AmbiguousB []Ambiguity
}

// BuildPairs maps each side's filenames to episode keys and intersects the
// key sets. A key claimed by several files on one side is reported as
// ambiguous and excluded. Pairs come back sorted by key length then key so
// E99 orders before E100 and runs are reproducible.
func BuildPairs(filesA, filesB []string, relaxed bool) PairSet {
	mapA, unmatchedA, ambiguousA := indexSide(filesA, relaxed)
	mapB, unmatchedB, ambiguousB := indexSide(filesB, relaxed)

	set := PairSet{
		UnmatchedA: unmatchedA,
		UnmatchedB: unmatchedB,
		AmbiguousA: ambiguousA,
		AmbiguousB: ambiguousB,
	}

	var keys []string
	for key := range mapA {
		if _, ok := mapB[key]; ok {
			keys = append(keys, key)
		}
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) < len(keys[j])
		}
		return keys[i] < keys[j]
	})

	for _, key := range keys {
		set.Pairs = append(set.Pairs, Pair{Key: key, PathA: mapA[key], PathB: mapB[key]})
	}

	// Keyed files whose counterpart side has no match are unmatched too.
	for key, path := range mapA {
		if _, ok := mapB[key]; !ok {
			set.UnmatchedA = append(set.UnmatchedA, path)
		}
	}
	for key, path := range mapB {
		if _, ok := mapA[key]; !ok {
			set.UnmatchedB = append(set.UnmatchedB, path)
		}
	}
	sort.Strings(set.UnmatchedA)
	sort.Strings(set.UnmatchedB)

	return set
}

func indexSide(files []string, relaxed bool) (map[string]string, []string, []Ambiguity) {
	byKey := make(map[string][]string)
	var unmatched []string

	for _, path := range files {
		key, ok := ExtractKey(filepath.Base(path), relaxed)
		if !ok {
			unmatched = append(unmatched, path)
			continue
		}
		byKey[key] = append(byKey[key], path)
	}

	mapping := make(map[string]string, len(byKey))
	var ambiguous []Ambiguity
	for key, paths := range byKey {
		if len(paths) > 1 {
			sort.Strings(paths)
			ambiguous = append(ambiguous, Ambiguity{Key: key, Paths: paths})
			continue
		}
		mapping[key] = paths[0]
	}
	sort.Slice(ambiguous, func(i, j int) bool { return ambiguous[i].Key < ambiguous[j].Key })

	return mapping, unmatched, ambiguous
}
