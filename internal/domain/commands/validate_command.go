package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Masterminds/semver/v3"
	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/releaser/internal/domain/entities"
	"github.com/rios0rios0/releaser/internal/domain/repositories"
)

const (
	// minimumGitVersion is where parallel submodule fetches were added.
	minimumGitVersion = ">= 2.8.0"
	similarPrefixLen  = 5
	readmeFile        = "README.md"
)

// alternateChangelogNames are renamed to the configured changelog when found.
var alternateChangelogNames = []string{"release_notes.md"} //nolint:gochecknoglobals // fixed list

// Validate is the interface for the validation use case.
type Validate interface {
	Execute(ctx context.Context, cfg *entities.ReleaseConfig, opts ValidateOptions) (*entities.CurrentRelease, error)
	ReadChangelog(cfg *entities.ReleaseConfig) (*entities.CurrentRelease, error)
}

// ValidateOptions holds runtime options for a validation run.
type ValidateOptions struct {
	// ChangelogOnly skips the git, project file, branch and custom checks.
	ChangelogOnly bool
}

// ValidateCommand runs every pre-release check and yields the release to ship.
type ValidateCommand struct {
	git     repositories.GitRepository
	process repositories.ProcessRepository
	prompt  repositories.PromptRepository
	checker *RepoStateChecker
}

// NewValidateCommand creates a new ValidateCommand.
func NewValidateCommand(
	git repositories.GitRepository,
	process repositories.ProcessRepository,
	prompt repositories.PromptRepository,
	checker *RepoStateChecker,
) *ValidateCommand {
	return &ValidateCommand{git: git, process: process, prompt: prompt, checker: checker}
}

// Execute validates tools, changelog, project files, working copy, branches and custom checks, in that order.
func (it *ValidateCommand) Execute(
	ctx context.Context,
	cfg *entities.ReleaseConfig,
	opts ValidateOptions,
) (*entities.CurrentRelease, error) {
	if !opts.ChangelogOnly {
		if err := it.validateGit(ctx); err != nil {
			return nil, err
		}
	}

	if err := it.validateChangelogPresence(ctx, cfg); err != nil {
		return nil, err
	}

	release, err := it.ReadChangelog(cfg)
	if err != nil {
		return nil, err
	}
	if opts.ChangelogOnly {
		return release, nil
	}

	if err = it.validateReadmeReference(cfg); err != nil {
		return nil, err
	}
	if len(cfg.DownstreamRepos) > 0 {
		if err = it.ensureIgnored(ctx, cfg.RootDir, entities.DownstreamReposDir+"/"); err != nil {
			return nil, err
		}
	}
	if err = it.ensureEOFNewlines(cfg.RootDir); err != nil {
		return nil, err
	}

	if err = it.checker.CheckCleanTree(cfg.RootDir); err != nil {
		return nil, err
	}
	if err = it.checker.CheckSubmodules(cfg.RootDir, cfg.Settings.MainBranch); err != nil {
		return nil, err
	}
	if err = it.checker.CheckBranches(ctx, cfg.RootDir, cfg.Settings, release.Version()); err != nil {
		return nil, err
	}

	for _, validation := range cfg.Validations {
		if err = validation.Validate(ctx, cfg.RootDir, release); err != nil {
			return nil, err
		}
	}

	return release, nil
}

// ReadChangelog loads and validates the changelog without any other check.
func (it *ValidateCommand) ReadChangelog(cfg *entities.ReleaseConfig) (*entities.CurrentRelease, error) {
	path := cfg.Settings.ChangelogFile(cfg.RootDir)
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, entities.NewConfigError(fmt.Sprintf("failed to read %s", path)).WithCause(err)
	}

	changelog, err := entities.ParseChangelog(string(content))
	if err != nil {
		return nil, err
	}
	logger.Infof("[changelog] Found %d release(s) in %s", len(changelog.Entries), path)

	if err = changelog.Validate(); err != nil {
		return nil, err
	}
	return changelog.CurrentRelease(), nil
}

func (it *ValidateCommand) validateGit(ctx context.Context) error {
	if _, err := it.process.LookPath("git"); err != nil {
		return entities.NewConfigError("git not found on path").WithCause(err)
	}

	raw, err := it.git.Version(ctx)
	if err != nil {
		return err
	}
	actual, err := semver.NewVersion(raw)
	if err != nil {
		return entities.NewConfigError(fmt.Sprintf("unable to read git version %q", raw)).WithCause(err)
	}

	constraint, err := semver.NewConstraint(minimumGitVersion)
	if err != nil {
		return fmt.Errorf("invalid git version constraint: %w", err)
	}
	if !constraint.Check(actual) {
		return entities.NewConfigError(fmt.Sprintf(
			"actual git version %s does not satisfy expected git version %s", actual, minimumGitVersion,
		))
	}

	logger.Infof("[git] Git version %s found, matching %s", actual, minimumGitVersion)
	return nil
}

// validateChangelogPresence requires the changelog to be tracked by git, offering to
// rename a single similarly named file when it is not.
func (it *ValidateCommand) validateChangelogPresence(ctx context.Context, cfg *entities.ReleaseConfig) error {
	docsDir := filepath.Join(cfg.RootDir, cfg.Settings.BaseDocsDir)
	if info, err := os.Stat(docsDir); err != nil || !info.IsDir() {
		return entities.NewConfigError(fmt.Sprintf(
			"directory specified by base_docs_dir '%s' not found", cfg.Settings.BaseDocsDir,
		)).WithHint("please fix the config, or add this directory")
	}

	expected := cfg.Settings.ChangelogPath
	tracked, err := it.git.TrackedFiles(docsDir)
	if err != nil {
		return fmt.Errorf("failed to list tracked files: %w", err)
	}
	for _, file := range tracked {
		if file == expected {
			logger.Infof("[changelog] %s found", filepath.Join(docsDir, expected))
			return nil
		}
	}

	logger.Warnf(
		"[changelog] %s not found using a case sensitive search within git, searching for similar files...",
		filepath.Join(docsDir, expected),
	)

	similar, err := findSimilarFiles(docsDir, expected)
	if err != nil {
		return err
	}

	switch {
	case len(similar) > 1:
		return entities.NewConfigError(fmt.Sprintf(
			"found more than 1 file similar to %s: %s", expected, strings.Join(similar, ", "),
		)).WithHint("please rename one, and optionally remove the others to not confuse users")
	case len(similar) == 1 && similar[0] != expected:
		proceed, askErr := it.prompt.Confirm(fmt.Sprintf(
			"Found a single similar file: %s. Do you want to rename this to the expected %s?", similar[0], expected,
		))
		if askErr != nil {
			return askErr
		}
		if !proceed {
			return entities.NewAbortedError(fmt.Sprintf("please commit %s", filepath.Join(docsDir, expected)))
		}
		return it.renameFile(ctx, docsDir, similar[0], expected)
	}

	for _, alternate := range alternateChangelogNames {
		if _, statErr := os.Stat(filepath.Join(docsDir, alternate)); statErr == nil {
			logger.Infof("[changelog] Found similar file: %s", alternate)
			return it.renameFile(ctx, docsDir, alternate, expected)
		}
	}

	return entities.NewConfigError(fmt.Sprintf("please commit %s", filepath.Join(docsDir, expected)))
}

func (it *ValidateCommand) renameFile(ctx context.Context, dir, oldName, newName string) error {
	wasClean, err := it.git.IsClean(dir)
	if err != nil {
		return err
	}

	logger.Warnf("[git] Renaming %s to %s", oldName, newName)
	if err = it.git.Move(ctx, dir, oldName, newName); err != nil {
		return err
	}

	readme := filepath.Join(dir, readmeFile)
	if content, readErr := os.ReadFile(readme); readErr == nil {
		fixed := strings.ReplaceAll(string(content), "("+oldName+")", "("+newName+")")
		if fixed != string(content) {
			//nolint:gosec // README keeps its usual permissions
			if writeErr := os.WriteFile(readme, []byte(fixed), 0o644); writeErr != nil {
				return fmt.Errorf("failed to update links in %s: %w", readme, writeErr)
			}
		}
	}

	if !wasClean {
		return nil
	}
	if err = it.git.StageAll(ctx, dir); err != nil {
		return err
	}
	return it.git.Commit(ctx, dir, fmt.Sprintf("releaser: rename %s to %s", oldName, newName))
}

// findSimilarFiles lists files under dir whose name starts, ignoring case, with the
// first characters of expected. The downstream clones and .git are skipped.
func findSimilarFiles(dir, expected string) ([]string, error) {
	prefix := strings.ToLower(expected)
	if len(prefix) > similarPrefixLen {
		prefix = prefix[:similarPrefixLen]
	}

	var similar []string
	err := filepath.WalkDir(dir, func(path string, entry os.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() {
			if path != dir && (entry.Name() == ".git" || entry.Name() == entities.DownstreamReposDir) {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasPrefix(strings.ToLower(entry.Name()), prefix) {
			rel, relErr := filepath.Rel(dir, path)
			if relErr != nil {
				return relErr
			}
			similar = append(similar, filepath.ToSlash(rel))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search for files similar to %s: %w", expected, err)
	}
	return similar, nil
}
