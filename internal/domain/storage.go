package domain

import "context"

// BackupStore is the directory holding one subdirectory per dump.
type BackupStore interface {
	// List returns backup names sorted newest first.
	List(ctx context.Context) ([]string, error)
	Delete(ctx context.Context, name string) error
	GetPath(name string) string
}

type Notifier interface {
	Notify(ctx context.Context, message string) error
}
