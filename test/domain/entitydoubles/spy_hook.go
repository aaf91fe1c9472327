//go:build integration || unit || test

// Package entitydoubles provides test doubles for the strategy interfaces of a release configuration.
package entitydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/releaser/internal/domain/entities"
)

// SpyHook implements every release hook interface and records "<step> <version>" calls.
type SpyHook struct {
	Err   error
	Calls []string
	Dirs  []string
	Kinds []entities.BumpKind

	// Log, when set, receives the calls of several hooks in one shared order.
	Log *[]string
}

var (
	_ entities.Builder        = (*SpyHook)(nil)
	_ entities.Publisher      = (*SpyHook)(nil)
	_ entities.Waiter         = (*SpyHook)(nil)
	_ entities.PostCopier     = (*SpyHook)(nil)
	_ entities.VersionUpdater = (*SpyHook)(nil)
	_ entities.Validation     = (*SpyHook)(nil)
)

func (s *SpyHook) record(step, dir, version string) error {
	call := step + " " + version
	s.Calls = append(s.Calls, call)
	s.Dirs = append(s.Dirs, dir)
	if s.Log != nil {
		*s.Log = append(*s.Log, call)
	}
	return s.Err
}

func (s *SpyHook) Build(_ context.Context, dir, version string) error {
	return s.record("build", dir, version)
}

func (s *SpyHook) Publish(_ context.Context, dir, version string) error {
	return s.record("publish", dir, version)
}

func (s *SpyHook) Wait(_ context.Context, dir, version string) error {
	return s.record("wait", dir, version)
}

func (s *SpyHook) PostCopy(_ context.Context, dir, version string) error {
	return s.record("post-copy", dir, version)
}

func (s *SpyHook) UpdateVersion(_ context.Context, dir, version string, kind entities.BumpKind) error {
	s.Kinds = append(s.Kinds, kind)
	return s.record("update-version", dir, version)
}

func (s *SpyHook) Validate(_ context.Context, dir string, release *entities.CurrentRelease) error {
	return s.record("validate", dir, release.Version())
}
