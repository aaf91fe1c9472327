package commands

import (
	"fmt"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/releaser/internal/domain/entities"
	"github.com/rios0rios0/releaser/internal/domain/repositories"
)

// BumpCallback receives the new version before the bumper returns it.
type BumpCallback func(version string, kind entities.BumpKind) error

// VersionBumper asks the operator for a release classification and increments the version.
type VersionBumper struct {
	prompt repositories.PromptRepository
}

// NewVersionBumper creates a new VersionBumper.
func NewVersionBumper(prompt repositories.PromptRepository) *VersionBumper {
	return &VersionBumper{prompt: prompt}
}

// Bump re-prompts until the answer is major, minor or patch, then bumps current,
// calls onBump and returns the new version.
func (it *VersionBumper) Bump(current string, onBump BumpCallback) (string, entities.BumpKind, error) {
	for {
		answer, err := it.prompt.Ask("What type of release is this? (major, minor, patch)")
		if err != nil {
			return "", "", err
		}

		kind, ok := entities.ParseBumpKind(answer)
		if !ok {
			logger.Warnf("release type must be one of: [major, minor, patch], got %q", answer)
			continue
		}

		next, bumpErr := entities.BumpHeader(current, kind)
		if bumpErr != nil {
			return "", "", bumpErr
		}
		logger.Infof("[changelog] Bumping %s release %s to %s", kind, current, next)

		if onBump != nil {
			if cbErr := onBump(next, kind); cbErr != nil {
				return "", "", fmt.Errorf("failed to apply version %s: %w", next, cbErr)
			}
		}
		return next, kind, nil
	}
}
