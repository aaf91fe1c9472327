//go:build integration || unit || test

package commanddoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/releaser/internal/domain/commands"
	"github.com/rios0rios0/releaser/internal/domain/entities"
)

// StubImportCommand is a stub implementation of commands.Import.
type StubImportCommand struct {
	Path             string
	ExecuteCallCount int
	ExecuteErr       error
	LastURL          string
}

var _ commands.Import = (*StubImportCommand)(nil)

func (s *StubImportCommand) Execute(_ context.Context, _ *entities.ReleaseConfig, repoURL string) (string, error) {
	s.ExecuteCallCount++
	s.LastURL = repoURL
	return s.Path, s.ExecuteErr
}
