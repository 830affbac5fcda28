package payloadstore

import (
	"fmt"
	"os"
	"path/filepath"
)

// dbPath returns the bbolt database file used to persist built payloads
// under datadir.
func dbPath(datadir string) string {
	return filepath.Join(datadir, "payloads.db")
}

func ensureDir(path string) error {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", path, err)
	}
	return nil
}
