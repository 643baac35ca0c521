package usecase

import (
	"context"
	"fmt"
	"path"
	"sort"
	"time"
)

type memoryStore struct {
	names     []string
	deleteErr map[string]error
	deleted   []string
	listErr   error
}

func newMemoryStore(names ...string) *memoryStore {
	return &memoryStore{names: names, deleteErr: map[string]error{}}
}

func (s *memoryStore) List(ctx context.Context) ([]string, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	out := append([]string{}, s.names...)
	sort.Sort(sort.Reverse(sort.StringSlice(out)))
	return out, nil
}

func (s *memoryStore) Delete(ctx context.Context, name string) error {
	if err := s.deleteErr[name]; err != nil {
		return err
	}
	for i, n := range s.names {
		if n == name {
			s.names = append(s.names[:i], s.names[i+1:]...)
			s.deleted = append(s.deleted, name)
			return nil
		}
	}
	return nil
}

func (s *memoryStore) GetPath(name string) string {
	return path.Join("/data", name)
}

type recordingLogger struct {
	infos  []string
	warns  []string
	errors []string
}

func (l *recordingLogger) Infof(template string, args ...interface{}) {
	l.infos = append(l.infos, fmt.Sprintf(template, args...))
}

func (l *recordingLogger) Warnf(template string, args ...interface{}) {
	l.warns = append(l.warns, fmt.Sprintf(template, args...))
}

func (l *recordingLogger) Errorf(template string, args ...interface{}) {
	l.errors = append(l.errors, fmt.Sprintf(template, args...))
}

type fakeDumper struct {
	name  string
	err   error
	calls int
	at    time.Time
}

func (d *fakeDumper) Dump(ctx context.Context, now time.Time) (string, error) {
	d.calls++
	d.at = now
	return d.name, d.err
}

type fakePruner struct {
	calls int
	keep  int
	err   error
}

func (p *fakePruner) Execute(ctx context.Context, keep int) error {
	p.calls++
	p.keep = keep
	return p.err
}

type fakeNotifier struct {
	messages []string
	ctxErrs  []error
	err      error
}

func (n *fakeNotifier) Notify(ctx context.Context, message string) error {
	n.messages = append(n.messages, message)
	n.ctxErrs = append(n.ctxErrs, ctx.Err())
	return n.err
}
