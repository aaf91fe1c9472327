package commands

import (
	"context"
	"fmt"
	"os"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/releaser/internal/domain/entities"
	"github.com/rios0rios0/releaser/internal/domain/repositories"
)

const importSuffix = ".tmp"

// Import is the interface for rebuilding a changelog from hosted releases.
type Import interface {
	Execute(ctx context.Context, cfg *entities.ReleaseConfig, repoURL string) (string, error)
}

// ImportCommand writes every hosted release of a repository into a fresh changelog
// next to the configured one.
type ImportCommand struct {
	hosting repositories.HostingResolver
}

// NewImportCommand creates a new ImportCommand.
func NewImportCommand(hosting repositories.HostingResolver) *ImportCommand {
	return &ImportCommand{hosting: hosting}
}

// Execute returns the path of the written file.
func (it *ImportCommand) Execute(ctx context.Context, cfg *entities.ReleaseConfig, repoURL string) (string, error) {
	hosting, hosted, err := it.hosting.Resolve(repoURL)
	if err != nil {
		return "", err
	}

	releases, err := hosting.ListReleases(ctx, hosted)
	if err != nil {
		return "", entities.NewReleaseError(
			entities.ErrNetwork, nil, fmt.Sprintf("failed to list releases of %s", repoURL),
		).WithCause(err)
	}
	logger.Infof("[%s] Found %d release(s) on %s", hosting.Name(), len(releases), hosted.FullName())
	entities.SortReleasesDescending(releases)

	path := cfg.Settings.ChangelogFile(cfg.RootDir) + importSuffix
	content := entities.RenderImportedChangelog(cfg.ProductName(), releases)
	//nolint:gosec // changelog keeps its usual permissions
	if err = os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	logger.Infof("[changelog] Imported changelog written to %s", path)
	return path, nil
}
