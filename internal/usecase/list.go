package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/semmidev/mongorotate/internal/domain"
)

type List struct {
	store  domain.BackupStore
	prefix string
}

func NewList(store domain.BackupStore, prefix string) *List {
	return &List{store: store, prefix: prefix}
}

// Execute returns the backups newest first. CreatedAt stays zero for names
// that were not produced with the configured prefix.
func (uc *List) Execute(ctx context.Context) ([]domain.Backup, error) {
	names, err := uc.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list backups: %w", err)
	}

	backups := make([]domain.Backup, 0, len(names))
	for _, name := range names {
		b := domain.Backup{Name: name, Path: uc.store.GetPath(name)}
		if t, err := domain.ParseNameTime(uc.prefix, name, time.Local); err == nil {
			b.CreatedAt = t
		}
		backups = append(backups, b)
	}
	return backups, nil
}
