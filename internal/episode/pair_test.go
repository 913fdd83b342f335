package episode

import (
	"testing"
)

func TestBuildPairsMatchesKeys(t *testing.T) {
	filesA := []string{"a/Show.VOSTFR.E01.mkv", "a/Show.VOSTFR.E02.mkv", "a/Show.VOSTFR.E03.mkv"}
	filesB := []string{"b/Show.VF.E02.mkv", "b/Show.VF.E03.mkv", "b/Show.VF.E04.mkv"}

	set := BuildPairs(filesA, filesB, false)

	if len(set.Pairs) != 2 {
		t.Fatalf("pairs = %d, want 2", len(set.Pairs))
	}
	if set.Pairs[0].Key != "E02" || set.Pairs[1].Key != "E03" {
		t.Errorf("pair keys = %s, %s", set.Pairs[0].Key, set.Pairs[1].Key)
	}
	if set.Pairs[0].PathA != "a/Show.VOSTFR.E02.mkv" || set.Pairs[0].PathB != "b/Show.VF.E02.mkv" {
		t.Errorf("E02 pair paths = %q, %q", set.Pairs[0].PathA, set.Pairs[0].PathB)
	}
	if len(set.UnmatchedA) != 1 || set.UnmatchedA[0] != "a/Show.VOSTFR.E01.mkv" {
		t.Errorf("unmatched A = %v", set.UnmatchedA)
	}
	if len(set.UnmatchedB) != 1 || set.UnmatchedB[0] != "b/Show.VF.E04.mkv" {
		t.Errorf("unmatched B = %v", set.UnmatchedB)
	}
}

func TestBuildPairsCommutativeKeys(t *testing.T) {
	filesA := []string{"Show.E01.mkv", "Show.E02.mkv"}
	filesB := []string{"Other.E02.mkv", "Other.E03.mkv"}

	forward := BuildPairs(filesA, filesB, false)
	reverse := BuildPairs(filesB, filesA, false)

	if len(forward.Pairs) != len(reverse.Pairs) {
		t.Fatalf("pair count differs: %d vs %d", len(forward.Pairs), len(reverse.Pairs))
	}
	for i := range forward.Pairs {
		if forward.Pairs[i].Key != reverse.Pairs[i].Key {
			t.Errorf("key %d differs: %s vs %s", i, forward.Pairs[i].Key, reverse.Pairs[i].Key)
		}
		if forward.Pairs[i].PathA != reverse.Pairs[i].PathB || forward.Pairs[i].PathB != reverse.Pairs[i].PathA {
			t.Errorf("roles not swapped for %s", forward.Pairs[i].Key)
		}
	}
}

func TestBuildPairsAmbiguousKeyExcluded(t *testing.T) {
	filesA := []string{"Show.E01.v1.mkv", "Show.E01.v2.mkv", "Show.E02.mkv"}
	filesB := []string{"Other.E01.mkv", "Other.E02.mkv"}

	set := BuildPairs(filesA, filesB, false)

	if len(set.Pairs) != 1 || set.Pairs[0].Key != "E02" {
		t.Fatalf("pairs = %+v, want only E02", set.Pairs)
	}
	if len(set.AmbiguousA) != 1 || set.AmbiguousA[0].Key != "E01" {
		t.Fatalf("ambiguous A = %+v, want E01", set.AmbiguousA)
	}
	if len(set.AmbiguousA[0].Paths) != 2 {
		t.Errorf("ambiguous E01 paths = %v", set.AmbiguousA[0].Paths)
	}
	// The lone B-side E01 now has no counterpart.
	if len(set.UnmatchedB) != 1 || set.UnmatchedB[0] != "Other.E01.mkv" {
		t.Errorf("unmatched B = %v", set.UnmatchedB)
	}
}

func TestBuildPairsSortOrder(t *testing.T) {
	filesA := []string{"Show.E100.mkv", "Show.E99.mkv", "Show.E02.mkv"}
	filesB := []string{"Other.E99.mkv", "Other.E100.mkv", "Other.E02.mkv"}

	set := BuildPairs(filesA, filesB, false)

	want := []string{"E02", "E99", "E100"}
	if len(set.Pairs) != len(want) {
		t.Fatalf("pairs = %d, want %d", len(set.Pairs), len(want))
	}
	for i, key := range want {
		if set.Pairs[i].Key != key {
			t.Errorf("pair %d key = %s, want %s", i, set.Pairs[i].Key, key)
		}
	}
}

func TestBuildPairsNoKeyFiles(t *testing.T) {
	set := BuildPairs([]string{"Show.Special.mkv"}, []string{"Other.OVA.mkv"}, false)
	if len(set.Pairs) != 0 {
		t.Errorf("pairs = %+v, want none", set.Pairs)
	}
	if len(set.UnmatchedA) != 1 || len(set.UnmatchedB) != 1 {
		t.Errorf("unmatched = %v / %v", set.UnmatchedA, set.UnmatchedB)
	}
}
