//go:build unit

package commands_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/releaser/internal/domain/commands"
	"github.com/rios0rios0/releaser/internal/domain/entities"
	"github.com/rios0rios0/releaser/test/domain/entitybuilders"
	"github.com/rios0rios0/releaser/test/domain/entitydoubles"
	doubles "github.com/rios0rios0/releaser/test/infrastructure/repositorydoubles"
)

const validChangelog = "Demo release notes\n==================\n\n## 1.0.1\n* Fix a bug.\n\n## 1.0.0\n* Initial release.\n"

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
}

// writeProject writes a valid changelog and a README linking it.
func writeProject(t *testing.T, root string) {
	t.Helper()
	writeFile(t, root, "CHANGELOG.md", validChangelog)
	writeFile(t, root, "README.md", "Read the [changelog](CHANGELOG.md).\n")
}

func syncedGit() *doubles.SpyGitRepository {
	return &doubles.SpyGitRepository{
		Branch:    "master",
		Tracked:   []string{"CHANGELOG.md"},
		Revisions: map[string]string{"master": "abc", "origin/master": "abc"},
	}
}

func newValidateCommand(
	git *doubles.SpyGitRepository,
	process *doubles.StubProcessRepository,
	prompt *doubles.StubPromptRepository,
) *commands.ValidateCommand {
	return commands.NewValidateCommand(git, process, prompt, commands.NewRepoStateChecker(git, prompt))
}

func TestValidateCommandExecute(t *testing.T) {
	t.Parallel()

	t.Run("should return the newest release after every check passed", func(t *testing.T) {
		// given
		root := t.TempDir()
		writeProject(t, root)
		validation := &entitydoubles.SpyHook{}
		cfg := entitybuilders.NewReleaseConfigBuilder().WithRootDir(root).WithValidation(validation).BuildReleaseConfig()
		cmd := newValidateCommand(syncedGit(), &doubles.StubProcessRepository{}, &doubles.StubPromptRepository{})

		// when
		release, err := cmd.Execute(context.Background(), cfg, commands.ValidateOptions{})

		// then
		require.NoError(t, err)
		assert.Equal(t, "1.0.1", release.Version())
		assert.Equal(t, "* Fix a bug.", release.Changelog())
		assert.Equal(t, []string{"validate 1.0.1"}, validation.Calls)
	})

	t.Run("should fail when git is not installed", func(t *testing.T) {
		// given
		process := &doubles.StubProcessRepository{MissingTools: map[string]error{"git": errors.New("not found")}}
		cfg := entitybuilders.NewReleaseConfigBuilder().WithRootDir(t.TempDir()).BuildReleaseConfig()
		cmd := newValidateCommand(syncedGit(), process, &doubles.StubPromptRepository{})

		// when
		_, err := cmd.Execute(context.Background(), cfg, commands.ValidateOptions{})

		// then
		require.Error(t, err)
		assert.ErrorIs(t, err, entities.ErrConfig)
		assert.Contains(t, err.Error(), "git not found on path")
	})

	t.Run("should fail when git is too old", func(t *testing.T) {
		// given
		git := syncedGit()
		git.GitVersion = "2.7.4"
		cfg := entitybuilders.NewReleaseConfigBuilder().WithRootDir(t.TempDir()).BuildReleaseConfig()
		cmd := newValidateCommand(git, &doubles.StubProcessRepository{}, &doubles.StubPromptRepository{})

		// when
		_, err := cmd.Execute(context.Background(), cfg, commands.ValidateOptions{})

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "actual git version 2.7.4 does not satisfy expected git version >= 2.8.0")
	})

	t.Run("should only check the changelog when asked to", func(t *testing.T) {
		// given
		root := t.TempDir()
		writeFile(t, root, "CHANGELOG.md", validChangelog)
		git := syncedGit()
		git.Branch = "feature"
		git.Untracked = map[string][]string{root: {"scratch.txt"}}
		process := &doubles.StubProcessRepository{MissingTools: map[string]error{"git": errors.New("not found")}}
		validation := &entitydoubles.SpyHook{}
		cfg := entitybuilders.NewReleaseConfigBuilder().WithRootDir(root).WithValidation(validation).BuildReleaseConfig()
		cmd := newValidateCommand(git, process, &doubles.StubPromptRepository{})

		// when
		release, err := cmd.Execute(context.Background(), cfg, commands.ValidateOptions{ChangelogOnly: true})

		// then
		require.NoError(t, err)
		assert.Equal(t, "1.0.1", release.Version())
		assert.Empty(t, validation.Calls)
		assert.Empty(t, git.Calls)
	})

	t.Run("should fail on a dirty working copy before checking branches", func(t *testing.T) {
		// given
		root := t.TempDir()
		writeProject(t, root)
		git := syncedGit()
		git.Unstaged = map[string][]string{root: {"main.go"}}
		cfg := entitybuilders.NewReleaseConfigBuilder().WithRootDir(root).BuildReleaseConfig()
		cmd := newValidateCommand(git, &doubles.StubProcessRepository{}, &doubles.StubPromptRepository{})

		// when
		_, err := cmd.Execute(context.Background(), cfg, commands.ValidateOptions{})

		// then
		require.Error(t, err)
		assert.ErrorIs(t, err, entities.ErrRepoState)
		assert.NotContains(t, git.Calls, "fetch")
	})

	t.Run("should not run custom validations when the branch check fails", func(t *testing.T) {
		// given
		root := t.TempDir()
		writeProject(t, root)
		git := syncedGit()
		git.Branch = "feature"
		validation := &entitydoubles.SpyHook{}
		cfg := entitybuilders.NewReleaseConfigBuilder().WithRootDir(root).WithValidation(validation).BuildReleaseConfig()
		cmd := newValidateCommand(git, &doubles.StubProcessRepository{}, &doubles.StubPromptRepository{})

		// when
		_, err := cmd.Execute(context.Background(), cfg, commands.ValidateOptions{})

		// then
		require.Error(t, err)
		assert.Empty(t, validation.Calls)
	})

	t.Run("should return the error of a failing custom validation", func(t *testing.T) {
		// given
		root := t.TempDir()
		writeProject(t, root)
		validation := &entitydoubles.SpyHook{Err: errors.New("lint failed")}
		cfg := entitybuilders.NewReleaseConfigBuilder().WithRootDir(root).WithValidation(validation).BuildReleaseConfig()
		cmd := newValidateCommand(syncedGit(), &doubles.StubProcessRepository{}, &doubles.StubPromptRepository{})

		// when
		_, err := cmd.Execute(context.Background(), cfg, commands.ValidateOptions{})

		// then
		require.EqualError(t, err, "lint failed")
	})

	t.Run("should fail when the docs directory does not exist", func(t *testing.T) {
		// given
		cfg := entitybuilders.NewReleaseConfigBuilder().WithRootDir(t.TempDir()).BuildReleaseConfig()
		cfg.Settings.BaseDocsDir = "docs"
		cmd := newValidateCommand(syncedGit(), &doubles.StubProcessRepository{}, &doubles.StubPromptRepository{})

		// when
		_, err := cmd.Execute(context.Background(), cfg, commands.ValidateOptions{ChangelogOnly: true})

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "directory specified by base_docs_dir 'docs' not found")
	})

	t.Run("should ask to commit a changelog that git does not track", func(t *testing.T) {
		// given
		root := t.TempDir()
		writeFile(t, root, "CHANGELOG.md", validChangelog)
		git := syncedGit()
		git.Tracked = nil
		cfg := entitybuilders.NewReleaseConfigBuilder().WithRootDir(root).BuildReleaseConfig()
		cmd := newValidateCommand(git, &doubles.StubProcessRepository{}, &doubles.StubPromptRepository{})

		// when
		_, err := cmd.Execute(context.Background(), cfg, commands.ValidateOptions{ChangelogOnly: true})

		// then
		require.Error(t, err)
		assert.ErrorIs(t, err, entities.ErrConfig)
		assert.Contains(t, err.Error(), "please commit")
	})

	t.Run("should abort when the operator refuses to rename a similar file", func(t *testing.T) {
		// given
		root := t.TempDir()
		writeFile(t, root, "Changelog.txt", validChangelog)
		git := syncedGit()
		git.Tracked = []string{"Changelog.txt"}
		prompt := &doubles.StubPromptRepository{Confirmations: []bool{false}}
		cfg := entitybuilders.NewReleaseConfigBuilder().WithRootDir(root).BuildReleaseConfig()
		cmd := newValidateCommand(git, &doubles.StubProcessRepository{}, prompt)

		// when
		_, err := cmd.Execute(context.Background(), cfg, commands.ValidateOptions{ChangelogOnly: true})

		// then
		require.Error(t, err)
		assert.ErrorIs(t, err, entities.ErrAborted)
		require.Len(t, prompt.Questions, 1)
		assert.Contains(t, prompt.Questions[0], "Found a single similar file: Changelog.txt")
	})

	t.Run("should fail when several files look like the changelog", func(t *testing.T) {
		// given
		root := t.TempDir()
		writeFile(t, root, "changes.md", validChangelog)
		writeFile(t, root, "Changelog.txt", validChangelog)
		git := syncedGit()
		git.Tracked = nil
		cfg := entitybuilders.NewReleaseConfigBuilder().WithRootDir(root).BuildReleaseConfig()
		cmd := newValidateCommand(git, &doubles.StubProcessRepository{}, &doubles.StubPromptRepository{})

		// when
		_, err := cmd.Execute(context.Background(), cfg, commands.ValidateOptions{ChangelogOnly: true})

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "found more than 1 file similar to CHANGELOG.md")
	})

	t.Run("should rename release notes to the changelog and fix README links", func(t *testing.T) {
		// given
		root := t.TempDir()
		writeFile(t, root, "release_notes.md", validChangelog)
		writeFile(t, root, "README.md", "See the [notes](release_notes.md).\n")
		git := syncedGit()
		git.Tracked = []string{"release_notes.md", "README.md"}
		cfg := entitybuilders.NewReleaseConfigBuilder().WithRootDir(root).BuildReleaseConfig()
		cmd := newValidateCommand(git, &doubles.StubProcessRepository{}, &doubles.StubPromptRepository{})

		// when
		_, err := cmd.Execute(context.Background(), cfg, commands.ValidateOptions{ChangelogOnly: true})

		// then
		require.Error(t, err) // the spy does not move the file on disk
		assert.Equal(t, []string{
			"move release_notes.md CHANGELOG.md",
			"stage-all",
			"commit releaser: rename release_notes.md to CHANGELOG.md",
		}, git.Calls)
		readme, readErr := os.ReadFile(filepath.Join(root, "README.md"))
		require.NoError(t, readErr)
		assert.Equal(t, "See the [notes](CHANGELOG.md).\n", string(readme))
	})
}

func TestValidateCommandProjectFiles(t *testing.T) {
	t.Parallel()

	t.Run("should fail when the README does not link the changelog", func(t *testing.T) {
		// given
		root := t.TempDir()
		writeFile(t, root, "CHANGELOG.md", validChangelog)
		writeFile(t, root, "README.md", "# Demo\nSee CHANGELOG.md for details.\n")
		cfg := entitybuilders.NewReleaseConfigBuilder().WithRootDir(root).BuildReleaseConfig()
		cmd := newValidateCommand(syncedGit(), &doubles.StubProcessRepository{}, &doubles.StubPromptRepository{})

		// when
		_, err := cmd.Execute(context.Background(), cfg, commands.ValidateOptions{})

		// then
		require.Error(t, err)
		assert.ErrorIs(t, err, entities.ErrConfig)
		assert.Contains(t, err.Error(), "please link to the CHANGELOG.md file somewhere in")
	})

	t.Run("should fail when the docs directory has no README", func(t *testing.T) {
		// given
		root := t.TempDir()
		writeFile(t, root, "CHANGELOG.md", validChangelog)
		cfg := entitybuilders.NewReleaseConfigBuilder().WithRootDir(root).BuildReleaseConfig()
		cmd := newValidateCommand(syncedGit(), &doubles.StubProcessRepository{}, &doubles.StubPromptRepository{})

		// when
		_, err := cmd.Execute(context.Background(), cfg, commands.ValidateOptions{})

		// then
		require.Error(t, err)
		assert.ErrorIs(t, err, entities.ErrConfig)
	})

	t.Run("should ignore the downstream clones and commit the change on a clean tree", func(t *testing.T) {
		// given
		root := t.TempDir()
		writeProject(t, root)
		writeFile(t, root, ".gitignore", "bin/\n  downstream_repos/")
		git := syncedGit()
		cfg := entitybuilders.NewReleaseConfigBuilder().
			WithRootDir(root).
			WithDownstreamRepo(entitybuilders.NewDownstreamRepoBuilder().WithName("sample").BuildDownstreamRepo()).
			BuildReleaseConfig()
		cmd := newValidateCommand(git, &doubles.StubProcessRepository{}, &doubles.StubPromptRepository{})

		// when
		_, err := cmd.Execute(context.Background(), cfg, commands.ValidateOptions{})

		// then
		require.NoError(t, err)
		content, readErr := os.ReadFile(filepath.Join(root, ".gitignore"))
		require.NoError(t, readErr)
		assert.Equal(t, "bin/\n  downstream_repos/\ndownstream_repos/\n", string(content))
		require.GreaterOrEqual(t, len(git.Calls), 2)
		assert.Equal(t, []string{
			"add .gitignore",
			"commit releaser: add missing line to .gitignore",
		}, git.Calls[:2])
	})

	t.Run("should create the gitignore without committing on a dirty tree", func(t *testing.T) {
		// given
		root := t.TempDir()
		writeProject(t, root)
		git := syncedGit()
		git.DirtyDirs = map[string]bool{root: true}
		cfg := entitybuilders.NewReleaseConfigBuilder().
			WithRootDir(root).
			WithDownstreamRepo(entitybuilders.NewDownstreamRepoBuilder().WithName("sample").BuildDownstreamRepo()).
			BuildReleaseConfig()
		cmd := newValidateCommand(git, &doubles.StubProcessRepository{}, &doubles.StubPromptRepository{})

		// when
		_, _ = cmd.Execute(context.Background(), cfg, commands.ValidateOptions{})

		// then
		content, readErr := os.ReadFile(filepath.Join(root, ".gitignore"))
		require.NoError(t, readErr)
		assert.Equal(t, "downstream_repos/\n", string(content))
		assert.NotContains(t, git.Calls, "add .gitignore")
		assert.NotContains(t, git.Calls, "commit releaser: add missing line to .gitignore")
	})

	t.Run("should leave a gitignore that already ignores the downstream clones untouched", func(t *testing.T) {
		// given
		root := t.TempDir()
		writeProject(t, root)
		writeFile(t, root, ".gitignore", "downstream_repos/\r\nbin/\n")
		git := syncedGit()
		cfg := entitybuilders.NewReleaseConfigBuilder().
			WithRootDir(root).
			WithDownstreamRepo(entitybuilders.NewDownstreamRepoBuilder().WithName("sample").BuildDownstreamRepo()).
			BuildReleaseConfig()
		cmd := newValidateCommand(git, &doubles.StubProcessRepository{}, &doubles.StubPromptRepository{})

		// when
		_, err := cmd.Execute(context.Background(), cfg, commands.ValidateOptions{})

		// then
		require.NoError(t, err)
		content, readErr := os.ReadFile(filepath.Join(root, ".gitignore"))
		require.NoError(t, readErr)
		assert.Equal(t, "downstream_repos/\r\nbin/\n", string(content))
		assert.NotContains(t, git.Calls, "add .gitignore")
	})

	t.Run("should add a final newline to tracked text files only", func(t *testing.T) {
		// given
		root := t.TempDir()
		writeProject(t, root)
		writeFile(t, root, "notes.txt", "no newline")
		writeFile(t, root, "logo.png", "\x89PNG")
		writeFile(t, root, "empty.md", "")
		writeFile(t, root, "untracked.txt", "left alone")
		git := syncedGit()
		git.Tracked = []string{"CHANGELOG.md", "README.md", "notes.txt", "logo.png", "empty.md", "gone.md"}
		cfg := entitybuilders.NewReleaseConfigBuilder().WithRootDir(root).BuildReleaseConfig()
		cmd := newValidateCommand(git, &doubles.StubProcessRepository{}, &doubles.StubPromptRepository{})

		// when
		_, err := cmd.Execute(context.Background(), cfg, commands.ValidateOptions{})

		// then
		require.NoError(t, err)
		expected := map[string]string{
			"CHANGELOG.md":  validChangelog,
			"notes.txt":     "no newline\n",
			"logo.png":      "\x89PNG",
			"empty.md":      "",
			"untracked.txt": "left alone",
		}
		for name, want := range expected {
			content, readErr := os.ReadFile(filepath.Join(root, name))
			require.NoError(t, readErr)
			assert.Equal(t, want, string(content), name)
		}
	})

	t.Run("should not touch project files when only the changelog is checked", func(t *testing.T) {
		// given
		root := t.TempDir()
		writeFile(t, root, "CHANGELOG.md", validChangelog)
		writeFile(t, root, "notes.txt", "no newline")
		git := syncedGit()
		git.Tracked = []string{"CHANGELOG.md", "notes.txt"}
		cfg := entitybuilders.NewReleaseConfigBuilder().
			WithRootDir(root).
			WithDownstreamRepo(entitybuilders.NewDownstreamRepoBuilder().WithName("sample").BuildDownstreamRepo()).
			BuildReleaseConfig()
		cmd := newValidateCommand(git, &doubles.StubProcessRepository{}, &doubles.StubPromptRepository{})

		// when
		_, err := cmd.Execute(context.Background(), cfg, commands.ValidateOptions{ChangelogOnly: true})

		// then
		require.NoError(t, err)
		content, readErr := os.ReadFile(filepath.Join(root, "notes.txt"))
		require.NoError(t, readErr)
		assert.Equal(t, "no newline", string(content))
		assert.NoFileExists(t, filepath.Join(root, ".gitignore"))
	})
}

func TestValidateCommandReadChangelog(t *testing.T) {
	t.Parallel()

	t.Run("should fail when the changelog is missing", func(t *testing.T) {
		// given
		cfg := entitybuilders.NewReleaseConfigBuilder().WithRootDir(t.TempDir()).BuildReleaseConfig()
		cmd := newValidateCommand(syncedGit(), &doubles.StubProcessRepository{}, &doubles.StubPromptRepository{})

		// when
		_, err := cmd.ReadChangelog(cfg)

		// then
		require.Error(t, err)
		assert.ErrorIs(t, err, entities.ErrConfig)
	})

	t.Run("should fail on an invalid changelog", func(t *testing.T) {
		// given
		root := t.TempDir()
		writeFile(t, root, "CHANGELOG.md", "## 1.0.2\n* Fix.\n\n## 1.0.0\n* Initial release.\n")
		cfg := entitybuilders.NewReleaseConfigBuilder().WithRootDir(root).BuildReleaseConfig()
		cmd := newValidateCommand(syncedGit(), &doubles.StubProcessRepository{}, &doubles.StubPromptRepository{})

		// when
		_, err := cmd.ReadChangelog(cfg)

		// then
		require.Error(t, err)
		assert.ErrorIs(t, err, entities.ErrInvalidIncrement)
	})
}

func TestFindSimilarFiles(t *testing.T) {
	t.Parallel()

	t.Run("should match names by their first characters ignoring case", func(t *testing.T) {
		// given
		root := t.TempDir()
		writeFile(t, root, "ChangeLog.markdown", "")
		writeFile(t, root, "README.md", "")
		require.NoError(t, os.MkdirAll(filepath.Join(root, "downstream_repos", "sample"), 0o750))
		writeFile(t, filepath.Join(root, "downstream_repos", "sample"), "CHANGELOG.md", "")

		// when
		similar, err := commands.FindSimilarFiles(root, "CHANGELOG.md")

		// then
		require.NoError(t, err)
		assert.Equal(t, []string{"ChangeLog.markdown"}, similar)
	})
}
