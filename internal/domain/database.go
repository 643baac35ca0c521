package domain

import (
	"context"
	"time"
)

// Dumper writes one dump into a new directory named after now and returns
// that directory name.
type Dumper interface {
	Dump(ctx context.Context, now time.Time) (string, error)
}

// CommandRunner executes an external program given as an argument vector.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) error
}
