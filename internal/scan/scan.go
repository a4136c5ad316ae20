// Package scan discovers Windows event-log files under an evidence root.
package scan

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

// Event-log extensions (lowercase, with leading dot).
var eventLogExtensions = map[string]bool{
	".evt":  true,
	".evtx": true,
}

// IsEventLog reports whether path names an event-log file by extension.
func IsEventLog(path string) bool {
	return eventLogExtensions[strings.ToLower(filepath.Ext(path))]
}

// EventLogs walks root recursively and collects .evt/.evtx files, sorted
// lexicographically for deterministic dispatch order. An empty result is not
// an error. The root itself must be readable; an unreadable entry below it is
// skipped and reported in skipped, so one bad subdirectory cannot abort the
// scan of a large evidence tree.
func EventLogs(root string) (files, skipped []string, err error) {
	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			skipped = append(skipped, path)
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if IsEventLog(path) {
			files = append(files, path)
		}
		return nil
	})
	if walkErr != nil {
		return nil, nil, fmt.Errorf("scan %s: %w", root, walkErr)
	}
	sort.Strings(files)
	return files, skipped, nil
}
