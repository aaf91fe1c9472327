package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/releaser/internal/domain/entities"
	"github.com/rios0rios0/releaser/internal/domain/repositories"
)

const editorEnvKey = "EDITOR"

// Bump is the interface for adding a new release to the changelog.
type Bump interface {
	Execute(ctx context.Context, cfg *entities.ReleaseConfig) (*entities.CurrentRelease, error)
}

// BumpCommand asks for the release type, lets the operator write the release notes
// in $EDITOR and records them as the new top entry of the changelog.
type BumpCommand struct {
	git      repositories.GitRepository
	process  repositories.ProcessRepository
	prompt   repositories.PromptRepository
	validate Validate
	bumper   *VersionBumper
	getenv   func(string) string
}

// NewBumpCommand creates a new BumpCommand.
func NewBumpCommand(
	git repositories.GitRepository,
	process repositories.ProcessRepository,
	prompt repositories.PromptRepository,
	validate Validate,
	bumper *VersionBumper,
) *BumpCommand {
	return &BumpCommand{
		git:      git,
		process:  process,
		prompt:   prompt,
		validate: validate,
		bumper:   bumper,
		getenv:   os.Getenv,
	}
}

// Execute bumps the newest changelog version and returns the release it produced.
func (it *BumpCommand) Execute(ctx context.Context, cfg *entities.ReleaseConfig) (*entities.CurrentRelease, error) {
	current, err := it.validate.ReadChangelog(cfg)
	if err != nil {
		return nil, err
	}

	_, _, err = it.bumper.Bump(current.Version(), func(version string, kind entities.BumpKind) error {
		return it.writeRelease(ctx, cfg, version, kind)
	})
	if err != nil {
		return nil, err
	}

	release, err := it.validate.ReadChangelog(cfg)
	if err != nil {
		return nil, fmt.Errorf("changelog is invalid after the bump: %w", err)
	}
	logger.Infof("[changelog] Added release %s", release.Version())
	return release, nil
}

func (it *BumpCommand) writeRelease(
	ctx context.Context,
	cfg *entities.ReleaseConfig,
	version string,
	kind entities.BumpKind,
) error {
	if err := it.checkEditor(); err != nil {
		return err
	}

	path := cfg.Settings.ChangelogFile(cfg.RootDir)
	content, err := os.ReadFile(path)
	if err != nil {
		return entities.NewConfigError(fmt.Sprintf("failed to read %s", path)).WithCause(err)
	}

	tags, err := it.git.Tags(cfg.RootDir)
	if err != nil {
		return fmt.Errorf("failed to list tags: %w", err)
	}
	sinceTag := entities.LatestVersionTag(tags)
	commits, err := it.git.CommitsSince(cfg.RootDir, sinceTag)
	if err != nil {
		return fmt.Errorf("failed to list commits since %q: %w", sinceTag, err)
	}

	changes, err := it.editChanges(ctx, entities.EditorTemplate(version, kind, sinceTag, commits, string(content)))
	if err != nil {
		return err
	}
	if strings.TrimSpace(changes) == "" {
		return entities.NewAbortedError("aborting the bump due to empty release notes")
	}

	updated := entities.InsertReleaseEntry(string(content), version, changes)
	//nolint:gosec // changelog keeps its usual permissions
	if err = os.WriteFile(path, []byte(updated), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	logger.Infof("[changelog] Wrote release %s to %s", version, path)

	if cfg.VersionUpdater != nil {
		return cfg.VersionUpdater.UpdateVersion(ctx, cfg.RootDir, version, kind)
	}
	return nil
}

func (it *BumpCommand) checkEditor() error {
	editor := strings.TrimSpace(it.getenv(editorEnvKey))
	if editor == "" {
		return entities.NewConfigError("EDITOR is not set").
			WithHint("export EDITOR to the command that opens your preferred text editor")
	}
	if _, err := it.process.LookPath(strings.Fields(editor)[0]); err != nil {
		return entities.NewConfigError(fmt.Sprintf("EDITOR %q not found on path", editor)).WithCause(err)
	}
	return nil
}

func (it *BumpCommand) editChanges(ctx context.Context, template string) (string, error) {
	dir, err := os.MkdirTemp("", "releaser-bump-*")
	if err != nil {
		return "", fmt.Errorf("failed to create a temporary directory: %w", err)
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "CHANGELOG_EDITMSG")
	if err = os.WriteFile(path, []byte(template), 0o600); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err = it.prompt.Edit(ctx, path); err != nil {
		return "", err
	}

	edited, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return entities.ExtractEditedChanges(string(edited)), nil
}
