package poolmon

import (
	"os"
	"path/filepath"
	"strings"
)

// ListSnapshotFiles returns the paths under dir whose name ends in
// "pool.csv". The returned order (lexical, from ReadDir) carries no
// meaning: the aggregator sorts by timestamp regardless of the order
// files are added in.
func ListSnapshotFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.HasSuffix(e.Name(), "pool.csv") {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	return files, nil
}
