package domain

import (
	"context"
	"time"
)

// Backup describes one dump directory under the data directory.
type Backup struct {
	Name      string
	Path      string
	CreatedAt time.Time
}

type BackupExecutor interface {
	Execute(ctx context.Context) error
}
