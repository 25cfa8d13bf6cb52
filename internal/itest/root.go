//go:build integration

package itest

import (
	"errors"
	"os"
	"path/filepath"
)

// findRepoRoot walks up from the test's working directory to the module
// root, where go run can resolve ./cmd/kiricut.
func findRepoRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for i := 0; i < 10; i++ {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", errors.New("could not locate go.mod")
}
