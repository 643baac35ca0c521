package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// LocalStorage is the data directory holding one subdirectory per dump.
type LocalStorage struct {
	basePath string
}

func NewLocal(basePath string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create backup directory: %w", err)
	}
	return &LocalStorage{basePath: basePath}, nil
}

// List returns the names of all non-hidden entries in the data directory,
// newest first. Entry types and name formats are not checked.
func (l *LocalStorage) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(l.basePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	backups := make([]string, 0, len(entries))
	for _, entry := range entries {
		if strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		backups = append(backups, entry.Name())
	}

	sort.Sort(sort.Reverse(sort.StringSlice(backups)))
	return backups, nil
}

// Delete removes a backup directory and everything below it.
func (l *LocalStorage) Delete(ctx context.Context, name string) error {
	if name == "" || name != filepath.Base(name) || name == "." || name == ".." {
		return fmt.Errorf("refusing to delete %q: not a direct child of %s", name, l.basePath)
	}
	if err := os.RemoveAll(l.GetPath(name)); err != nil {
		return fmt.Errorf("failed to delete backup: %w", err)
	}
	return nil
}

func (l *LocalStorage) GetPath(name string) string {
	return filepath.Join(l.basePath, name)
}
