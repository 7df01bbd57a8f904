// internal/bamfind/bamfind.go
package bamfind

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

// Find walks root recursively and returns every file ending in .bam, sorted
// for a deterministic scan order.
func Find(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if strings.HasSuffix(d.Name(), ".bam") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}
	sort.Strings(files)
	return files, nil
}
