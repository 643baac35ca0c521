package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/semmidev/mongorotate/internal/domain"
)

type Logger interface {
	Infof(template string, args ...interface{})
	Errorf(template string, args ...interface{})
	Warnf(template string, args ...interface{})
}

type Pruner interface {
	Execute(ctx context.Context, keep int) error
}

// Backup runs one dump and then applies retention. A failed dump skips
// retention so the last good backup is never deleted.
type Backup struct {
	db         domain.Dumper
	pruner     Pruner
	notifier   domain.Notifier
	logger     Logger
	keepLatest int
	now        func() time.Time
}

// NewBackup creates the backup use case. notifier may be nil.
func NewBackup(
	db domain.Dumper,
	pruner Pruner,
	notifier domain.Notifier,
	logger Logger,
	keepLatest int,
) *Backup {
	return &Backup{
		db:         db,
		pruner:     pruner,
		notifier:   notifier,
		logger:     logger,
		keepLatest: keepLatest,
		now:        time.Now,
	}
}

func (uc *Backup) Execute(ctx context.Context) error {
	start := uc.now()
	uc.logger.Infof("Starting backup process")

	uc.logger.Infof("Dump a mongodb")
	name, err := uc.db.Dump(ctx, start)
	if err != nil {
		uc.logger.Errorf("failed to run mongodump command: %v", err)
		uc.notify(ctx, fmt.Sprintf("Backup failed, old backups were left untouched.\n\n%s", describe(err)))
		return fmt.Errorf("dump: %w", err)
	}
	uc.logger.Infof("Dump written to %s", name)

	uc.logger.Infof("Removing older backups")
	if err := uc.pruner.Execute(ctx, uc.keepLatest); err != nil {
		uc.logger.Errorf("failed to remove older backups: %v", err)
		uc.notify(ctx, fmt.Sprintf("Backup %s succeeded but pruning failed.\n\n%v", name, err))
		return fmt.Errorf("prune: %w", err)
	}

	uc.logger.Infof("Finishing process, took %s", uc.now().Sub(start).Round(time.Second))
	return nil
}

func (uc *Backup) notify(ctx context.Context, message string) {
	if uc.notifier == nil {
		return
	}
	// An interrupted run cancels ctx, and that failure still needs reporting.
	if err := uc.notifier.Notify(context.WithoutCancel(ctx), message); err != nil {
		uc.logger.Warnf("Failed to send failure notification: %v", err)
	}
}

func describe(err error) string {
	var cfgErr *domain.ConfigurationError
	if errors.As(err, &cfgErr) {
		return cfgErr.Error()
	}
	var procErr *domain.ProcessError
	if errors.As(err, &procErr) {
		return fmt.Sprintf("%s exited with code %d", procErr.Command, procErr.ExitCode)
	}
	return err.Error()
}
