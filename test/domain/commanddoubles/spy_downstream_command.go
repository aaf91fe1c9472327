//go:build integration || unit || test

package commanddoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/releaser/internal/domain/commands"
	"github.com/rios0rios0/releaser/internal/domain/entities"
)

// SpyDownstreamCommand is a spy implementation of commands.Downstream.
type SpyDownstreamCommand struct {
	ExecuteCallCount int
	ExecuteErr       error
	LastRelease      *entities.CurrentRelease
	LastOpts         commands.DownstreamOptions
}

var _ commands.Downstream = (*SpyDownstreamCommand)(nil)

func (s *SpyDownstreamCommand) Execute(
	_ context.Context,
	_ *entities.ReleaseConfig,
	release *entities.CurrentRelease,
	opts commands.DownstreamOptions,
) error {
	s.ExecuteCallCount++
	s.LastRelease = release
	s.LastOpts = opts
	return s.ExecuteErr
}
