//go:build integration || unit || test

package commanddoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/releaser/internal/domain/commands"
	"github.com/rios0rios0/releaser/internal/domain/entities"
)

// StubReleaseCommand is a stub implementation of commands.Release.
type StubReleaseCommand struct {
	Release          *entities.CurrentRelease
	ExecuteCallCount int
	ExecuteErr       error
	LastOpts         commands.ReleaseOptions
}

var _ commands.Release = (*StubReleaseCommand)(nil)

func (s *StubReleaseCommand) Execute(
	_ context.Context,
	_ *entities.ReleaseConfig,
	opts commands.ReleaseOptions,
) (*entities.CurrentRelease, error) {
	s.ExecuteCallCount++
	s.LastOpts = opts
	if s.ExecuteErr != nil {
		return nil, s.ExecuteErr
	}
	return s.Release, nil
}
