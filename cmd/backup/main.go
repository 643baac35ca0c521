// cmd/backup/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/semmidev/mongorotate/internal/app"
	"github.com/semmidev/mongorotate/internal/config"
	"github.com/semmidev/mongorotate/internal/domain"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Error: %v\n", err)
	}
}

func run() error {
	configPath := flag.String("config", "configs/config.yaml", "path to config file")
	listOnly := flag.Bool("list", false, "list existing backups newest first and exit")
	pruneOnly := flag.Bool("prune-only", false, "remove old backups without taking a new dump")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	application, err := app.New(cfg)
	if err != nil {
		return fmt.Errorf("initialize app: %w", err)
	}
	defer application.Shutdown()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	switch {
	case *listOnly:
		return printBackups(ctx, os.Stdout, application)
	case *pruneOnly:
		return application.Prune(ctx)
	default:
		return application.Run(ctx)
	}
}

type backupLister interface {
	List(ctx context.Context) ([]domain.Backup, error)
}

func printBackups(ctx context.Context, out io.Writer, lister backupLister) error {
	backups, err := lister.List(ctx)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tCREATED")
	for _, b := range backups {
		created := "-"
		if !b.CreatedAt.IsZero() {
			created = b.CreatedAt.Format("2006-01-02 15:04:05")
		}
		fmt.Fprintf(w, "%s\t%s\n", b.Name, created)
	}
	return w.Flush()
}
