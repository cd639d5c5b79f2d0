package catalog

import (
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

// FileCatalog represents a TOML catalog file:
//
//	[[log]]
//	key = "COMM_02"
//	body = """..."""
type FileCatalog struct {
	Logs []FileEntry `toml:"log"`
}

// FileEntry maps one [[log]] table.
type FileEntry struct {
	Key  string `toml:"key"`
	Body string `toml:"body"`
}

// LoadFile reads catalog entries from a TOML file. A missing file is not an
// error and yields no entries.
func LoadFile(path string) ([]Entry, error) {
	if path == "" {
		return nil, errors.New("catalog path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "stat catalog")
	}
	var fc FileCatalog
	if _, err := toml.DecodeFile(path, &fc); err != nil {
		return nil, errors.Wrap(err, "decode catalog")
	}
	seen := make(map[string]struct{}, len(fc.Logs))
	entries := make([]Entry, 0, len(fc.Logs))
	for i, l := range fc.Logs {
		key := strings.TrimSpace(l.Key)
		if key == "" {
			return nil, errors.Errorf("catalog entry %d has an empty key", i+1)
		}
		if _, ok := seen[key]; ok {
			return nil, errors.Errorf("duplicate catalog key %q", key)
		}
		seen[key] = struct{}{}
		entries = append(entries, Entry{Key: key, Body: l.Body})
	}
	return entries, nil
}

// Merge returns a catalog holding base entries followed by extra ones. Extra
// entries replace base bodies with the same key in place.
func Merge(base *Catalog, extra []Entry) *Catalog {
	entries := make([]Entry, 0, base.Len()+len(extra))
	index := map[string]int{}
	for _, key := range base.Keys() {
		index[key] = len(entries)
		entries = append(entries, Entry{Key: key, Body: base.Get(key)})
	}
	for _, e := range extra {
		if i, ok := index[e.Key]; ok {
			entries[i].Body = e.Body
			continue
		}
		index[e.Key] = len(entries)
		entries = append(entries, e)
	}
	return New(entries)
}
