package offsets

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"muxage/internal/episode"
	"muxage/internal/services"
)

// Table maps episode keys to donor-audio offsets in milliseconds. Positive
// offsets pad the donor audio with leading silence; negative offsets trim
// its start. Lookup of an absent key yields zero.
type Table struct {
	entries map[string]int
}

// Load parses a KEY,OFFSET_MS CSV file. An optional header row (first field
// "key", any case) is ignored. Any malformed key, non-integer offset, or
// duplicate key rejects the entire file.
func Load(path string) (*Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "offsets", "open", path, err)
	}
	defer file.Close()

	table, err := Parse(file)
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "offsets", "parse", path, err)
	}
	return table, nil
}

// Parse reads offset entries from r. See Load for the accepted format.
func Parse(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	entries := make(map[string]int)
	line := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line+1, err)
		}
		line++

		if len(record) == 0 {
			continue
		}
		rawKey := strings.TrimSpace(strings.TrimPrefix(record[0], "\uFEFF"))
		if rawKey == "" {
			continue
		}
		if line == 1 && strings.EqualFold(rawKey, "key") {
			continue
		}
		if len(record) < 2 {
			return nil, fmt.Errorf("line %d: expected KEY,OFFSET_MS", line)
		}
		if !episode.ValidKey(rawKey) {
			return nil, fmt.Errorf("line %d: malformed episode key %q", line, rawKey)
		}
		key := episode.NormalizeKey(rawKey)

		offsetMs, err := strconv.Atoi(strings.TrimSpace(record[1]))
		if err != nil {
			return nil, fmt.Errorf("line %d: offset for %s is not an integer: %q", line, key, record[1])
		}
		if _, dup := entries[key]; dup {
			return nil, fmt.Errorf("line %d: duplicate entry for %s", line, key)
		}
		entries[key] = offsetMs
	}

	return &Table{entries: entries}, nil
}

// Empty returns a table with no entries.
func Empty() *Table {
	return &Table{entries: map[string]int{}}
}

// Lookup returns the offset for key, or 0 when the key has no entry.
func (t *Table) Lookup(key string) int {
	if t == nil {
		return 0
	}
	return t.entries[key]
}

// Len returns the number of loaded entries.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.entries)
}

// Keys returns the loaded episode keys sorted by length then value.
func (t *Table) Keys() []string {
	if t == nil {
		return nil
	}
	keys := make([]string, 0, len(t.entries))
	for key := range t.entries {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) < len(keys[j])
		}
		return keys[i] < keys[j]
	})
	return keys
}
