package domain

import (
	"fmt"
	"strings"
	"time"
)

const DefaultBackupPrefix = "mongodb-backup"

const nameLayout = "2006-01-02-15-04-05"

// GenerateName returns prefix-YYYY-MM-DD-HH-MM-SS for now. Two calls within
// the same second yield the same name.
func GenerateName(prefix string, now time.Time) string {
	if prefix == "" {
		prefix = DefaultBackupPrefix
	}
	return fmt.Sprintf("%s-%04d-%02d-%02d-%02d-%02d-%02d",
		prefix,
		now.Year(),
		int(now.Month()),
		now.Day(),
		now.Hour(),
		now.Minute(),
		now.Second(),
	)
}

// ParseNameTime extracts the timestamp from a name produced by GenerateName.
// The result is in loc.
func ParseNameTime(prefix, name string, loc *time.Location) (time.Time, error) {
	if prefix == "" {
		prefix = DefaultBackupPrefix
	}
	stamp, ok := strings.CutPrefix(name, prefix+"-")
	if !ok {
		return time.Time{}, fmt.Errorf("name %q does not start with prefix %q", name, prefix)
	}
	t, err := time.ParseInLocation(nameLayout, stamp, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid backup name %q: %w", name, err)
	}
	return t, nil
}
