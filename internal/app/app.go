package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/semmidev/mongorotate/internal/adapter/database"
	"github.com/semmidev/mongorotate/internal/adapter/notifier"
	"github.com/semmidev/mongorotate/internal/adapter/storage"
	"github.com/semmidev/mongorotate/internal/config"
	"github.com/semmidev/mongorotate/internal/domain"
	"github.com/semmidev/mongorotate/internal/infrastructure/executor"
	"github.com/semmidev/mongorotate/internal/infrastructure/lock"
	"github.com/semmidev/mongorotate/internal/infrastructure/logger"
	"github.com/semmidev/mongorotate/internal/usecase"
)

type App struct {
	settings *config.Settings
	logger   *logger.Logger
	backupUC domain.BackupExecutor
	pruneUC  *usecase.Prune
	listUC   *usecase.List
}

func New(settings *config.Settings) (*App, error) {
	log, err := logger.New(settings.LogLevel, settings.LogFile)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	return newWithLogger(settings, log, executor.New())
}

func newWithLogger(settings *config.Settings, log *logger.Logger, runner domain.CommandRunner) (*App, error) {
	localStorage, err := storage.NewLocal(settings.DataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize local storage: %w", err)
	}

	db := database.NewMongoDB(settings, runner, log)
	pruneUC := usecase.NewPrune(localStorage, log, settings.Prune.ContinueOnError)
	backupUC := usecase.NewBackup(db, pruneUC, initializeNotifier(settings, log), log, settings.KeepLatest)

	return &App{
		settings: settings,
		logger:   log,
		backupUC: backupUC,
		pruneUC:  pruneUC,
		listUC:   usecase.NewList(localStorage, settings.Prefix),
	}, nil
}

func initializeNotifier(settings *config.Settings, log *logger.Logger) domain.Notifier {
	tgCfg := settings.Notify.Telegram
	if !tgCfg.Enabled {
		return nil
	}

	tg, err := notifier.NewTelegram(&tgCfg)
	if err != nil {
		log.Errorf("Failed to initialize Telegram: %v", err)
		return nil
	}
	log.Infof("✓ Telegram failure notifications enabled")
	return tg
}

// Run performs one dump followed by retention.
func (a *App) Run(ctx context.Context) error {
	return a.withLock(func() error {
		return a.backupUC.Execute(ctx)
	})
}

// Prune applies retention without taking a new dump.
func (a *App) Prune(ctx context.Context) error {
	return a.withLock(func() error {
		a.logger.Infof("Removing older backups, keeping latest %d", a.settings.KeepLatest)
		return a.pruneUC.Execute(ctx, a.settings.KeepLatest)
	})
}

func (a *App) List(ctx context.Context) ([]domain.Backup, error) {
	return a.listUC.Execute(ctx)
}

func (a *App) withLock(fn func() error) error {
	if !a.settings.Lock.Enabled {
		return fn()
	}

	l, err := lock.Acquire(a.settings.DataDir)
	if err != nil {
		if errors.Is(err, lock.ErrLocked) {
			a.logger.Errorf("Another run is in progress on %s", a.settings.DataDir)
		}
		return fmt.Errorf("acquire lock: %w", err)
	}
	defer func() {
		if err := l.Release(); err != nil {
			a.logger.Warnf("Failed to release lock %s: %v", l.Path(), err)
		}
	}()

	return fn()
}

func (a *App) Shutdown() {
	a.logger.Close()
}
