package database

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/semmidev/mongorotate/internal/config"
	"github.com/semmidev/mongorotate/internal/domain"
)

// DumpCommand is a mongodump invocation as an argument vector. It is handed
// to the runner without a shell, so values need no quoting.
type DumpCommand struct {
	Name       string
	Args       []string
	BackupName string
	OutputPath string
}

// String renders the command for logging with the password masked.
func (c *DumpCommand) String() string {
	parts := make([]string, 0, len(c.Args)+1)
	parts = append(parts, c.Name)
	for i, arg := range c.Args {
		if i > 0 && c.Args[i-1] == "--password" {
			arg = "****"
		}
		parts = append(parts, arg)
	}
	return strings.Join(parts, " ")
}

type Logger interface {
	Infof(template string, args ...interface{})
}

type MongoDBDatabase struct {
	settings *config.Settings
	runner   domain.CommandRunner
	logger   Logger
}

func NewMongoDB(settings *config.Settings, runner domain.CommandRunner, logger Logger) *MongoDBDatabase {
	return &MongoDBDatabase{settings: settings, runner: runner, logger: logger}
}

// BuildDumpCommand assembles the dump command for a backup taken at now.
// Origin flags are appended in a fixed order and only when set.
func (m *MongoDBDatabase) BuildDumpCommand(now time.Time) (*DumpCommand, error) {
	template := strings.Fields(m.settings.DumpCommand)
	if len(template) == 0 {
		return nil, &domain.ConfigurationError{Reason: "dump-command is empty"}
	}

	origin := m.settings.Origin
	if origin.IsEmpty() {
		return nil, &domain.ConfigurationError{
			Reason: "origin server is not defined, check your configuration file",
		}
	}

	args := append([]string{}, template[1:]...)

	flags := []struct {
		flag  string
		value string
	}{
		{"--host", origin.Host},
		{"--username", origin.Username},
		{"--password", origin.Password},
		{"--port", origin.Port},
		{"--db", origin.Database},
		{"--authenticationDatabase", origin.AuthenticationDatabase},
		{"--excludeCollection", origin.ExcludeCollection},
	}
	for _, f := range flags {
		if f.value != "" {
			args = append(args, f.flag, f.value)
		}
	}

	backupName := domain.GenerateName(m.settings.Prefix, now)
	outputPath := filepath.Join(m.settings.DataDir, backupName)
	args = append(args, "--out="+outputPath)

	return &DumpCommand{
		Name:       template[0],
		Args:       args,
		BackupName: backupName,
		OutputPath: outputPath,
	}, nil
}

// Dump builds the command and runs it to completion.
func (m *MongoDBDatabase) Dump(ctx context.Context, now time.Time) (string, error) {
	cmd, err := m.BuildDumpCommand(now)
	if err != nil {
		return "", err
	}

	m.logger.Infof("Running %s", cmd)
	if err := m.runner.Run(ctx, cmd.Name, cmd.Args...); err != nil {
		return "", fmt.Errorf("mongodump into %s: %w", cmd.OutputPath, err)
	}

	return cmd.BackupName, nil
}
