//go:build integration || unit || test

package commanddoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/releaser/internal/domain/commands"
	"github.com/rios0rios0/releaser/internal/domain/entities"
)

// StubValidateCommand is a stub implementation of commands.Validate.
type StubValidateCommand struct {
	Release *entities.CurrentRelease

	ExecuteCallCount int
	ExecuteErr       error
	LastOpts         commands.ValidateOptions
	LastConfig       *entities.ReleaseConfig

	ReadCallCount int
	ReadErr       error
}

var _ commands.Validate = (*StubValidateCommand)(nil)

func (s *StubValidateCommand) Execute(
	_ context.Context,
	cfg *entities.ReleaseConfig,
	opts commands.ValidateOptions,
) (*entities.CurrentRelease, error) {
	s.ExecuteCallCount++
	s.LastConfig = cfg
	s.LastOpts = opts
	if s.ExecuteErr != nil {
		return nil, s.ExecuteErr
	}
	return s.Release, nil
}

func (s *StubValidateCommand) ReadChangelog(cfg *entities.ReleaseConfig) (*entities.CurrentRelease, error) {
	s.ReadCallCount++
	s.LastConfig = cfg
	if s.ReadErr != nil {
		return nil, s.ReadErr
	}
	return s.Release, nil
}
