package export

import (
	"fmt"
	"os"
	"path/filepath"
)

// Save writes data as name inside dir, creating dir if needed, and returns
// the path written. An existing file of the same name is replaced.
func Save(dir, name string, data []byte) (string, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("writing %s: %w", name, err)
	}
	return path, nil
}
