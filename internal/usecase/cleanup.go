package usecase

import (
	"context"
	"fmt"

	"github.com/semmidev/mongorotate/internal/domain"
	"go.uber.org/multierr"
)

// Prune keeps the newest backups in a store and deletes the rest.
type Prune struct {
	store           domain.BackupStore
	logger          Logger
	continueOnError bool
}

// NewPrune creates a Prune. With continueOnError unset the first failed
// deletion stops the run; otherwise all deletions are attempted and the
// failures are returned together.
func NewPrune(store domain.BackupStore, logger Logger, continueOnError bool) *Prune {
	return &Prune{
		store:           store,
		logger:          logger,
		continueOnError: continueOnError,
	}
}

// GetOldestBackups returns every backup beyond the keep newest ones, newest
// first.
func (uc *Prune) GetOldestBackups(ctx context.Context, keep int) ([]string, error) {
	if keep < 0 {
		return nil, fmt.Errorf("keep must be >= 0, got %d", keep)
	}

	backups, err := uc.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list backups: %w", err)
	}

	if keep >= len(backups) {
		return []string{}, nil
	}
	return backups[keep:], nil
}

func (uc *Prune) Execute(ctx context.Context, keep int) error {
	oldest, err := uc.GetOldestBackups(ctx, keep)
	if err != nil {
		return err
	}

	if len(oldest) == 0 {
		uc.logger.Infof("No backups beyond the latest %d, nothing to remove", keep)
		return nil
	}

	var errs error
	deleted := 0
	for _, name := range oldest {
		if err := ctx.Err(); err != nil {
			return multierr.Append(errs, err)
		}

		uc.logger.Infof("Removing backup %s", name)
		if err := uc.store.Delete(ctx, name); err != nil {
			if !uc.continueOnError {
				return fmt.Errorf("remove %s after %d of %d deletion(s): %w", name, deleted, len(oldest), err)
			}
			uc.logger.Errorf("Failed to remove backup %s: %v", name, err)
			errs = multierr.Append(errs, fmt.Errorf("remove %s: %w", name, err))
			continue
		}
		deleted++
	}

	uc.logger.Infof("Removed %d old backup(s), kept latest %d", deleted, keep)
	return errs
}
