package source

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// journalExts are the file extensions treated as journals.
var journalExts = map[string]bool{".jsonl": true, ".ndjson": true}

// ScanPath returns the journal files at path. A file is returned as is; a
// directory is walked for *.jsonl and *.ndjson files in lexical order.
func ScanPath(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{path}, nil
	}

	var files []string
	err = filepath.WalkDir(path, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return nil //nolint:nilerr // intentionally skip unreadable entries
		}
		if d.IsDir() {
			if p != path && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if journalExts[strings.ToLower(filepath.Ext(p))] {
			files = append(files, p)
		}
		return nil
	})
	sort.Strings(files)
	return files, err
}
