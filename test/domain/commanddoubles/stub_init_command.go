//go:build integration || unit || test

package commanddoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/releaser/internal/domain/commands"
)

// StubInitCommand is a stub implementation of commands.Init.
type StubInitCommand struct {
	Path             string
	ExecuteCallCount int
	ExecuteErr       error
	LastOpts         commands.InitOptions
}

var _ commands.Init = (*StubInitCommand)(nil)

func (s *StubInitCommand) Execute(_ context.Context, opts commands.InitOptions) (string, error) {
	s.ExecuteCallCount++
	s.LastOpts = opts
	return s.Path, s.ExecuteErr
}
