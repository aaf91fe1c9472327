//go:build integration || unit || test

package commanddoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/releaser/internal/domain/commands"
	"github.com/rios0rios0/releaser/internal/domain/entities"
)

// StubBumpCommand is a stub implementation of commands.Bump.
type StubBumpCommand struct {
	Release          *entities.CurrentRelease
	ExecuteCallCount int
	ExecuteErr       error
}

var _ commands.Bump = (*StubBumpCommand)(nil)

func (s *StubBumpCommand) Execute(_ context.Context, _ *entities.ReleaseConfig) (*entities.CurrentRelease, error) {
	s.ExecuteCallCount++
	if s.ExecuteErr != nil {
		return nil, s.ExecuteErr
	}
	return s.Release, nil
}
