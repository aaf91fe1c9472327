//go:build unit

package hooks_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/releaser/internal/domain/entities"
	"github.com/rios0rios0/releaser/internal/infrastructure/repositories/hooks"
	doubles "github.com/rios0rios0/releaser/test/infrastructure/repositorydoubles"
)

func baseSettings() *entities.Settings {
	return &entities.Settings{
		ProductName:                    "demo",
		BuildCommand:                   "make VERSION={{.Version}}",
		PublishToPackageManagerCommand: "make publish",
		WaitForPackageManagerCommand:   "pkg info demo@{{.Version}}",
		WaitIntervalSeconds:            5,
	}
}

func TestConfigBuilderBuild(t *testing.T) {
	t.Parallel()

	t.Run("should turn settings into hooks bound to the absolute root", func(t *testing.T) {
		t.Parallel()

		// given
		root := t.TempDir()
		process := &doubles.StubProcessRepository{}
		settings := baseSettings()
		settings.CustomValidationCommands = []string{"./lint", "./check {{.Version}}"}
		builder := hooks.NewConfigBuilder(process)

		// when
		cfg, err := builder.Build(settings, hooks.BuildOptions{RootDir: root, Verbose: true})

		// then
		require.NoError(t, err)
		assert.Equal(t, root, cfg.RootDir)
		assert.Same(t, settings, cfg.Settings)
		assert.True(t, cfg.Verbose)
		assert.Nil(t, cfg.VersionUpdater)
		assert.Len(t, cfg.Validations, 2)

		require.NoError(t, cfg.Builder.Build(context.Background(), root, "1.0.0"))
		assert.Equal(t, []string{"make VERSION=1.0.0"}, process.ShellCommands)
	})

	t.Run("should add a version updater when one is configured", func(t *testing.T) {
		t.Parallel()

		// given
		settings := baseSettings()
		settings.UpdateVersionCommand = "./bump {{.SemverType}}"
		builder := hooks.NewConfigBuilder(&doubles.StubProcessRepository{})

		// when
		cfg, err := builder.Build(settings, hooks.BuildOptions{RootDir: t.TempDir()})

		// then
		require.NoError(t, err)
		assert.NotNil(t, cfg.VersionUpdater)
	})

	t.Run("should poll with the configured interval", func(t *testing.T) {
		t.Parallel()

		// given
		process := &doubles.StubProcessRepository{ShellQueue: []string{"demo 1.0.0"}}
		builder := hooks.NewConfigBuilder(process)

		// when
		cfg, err := builder.Build(baseSettings(), hooks.BuildOptions{RootDir: t.TempDir()})

		// then
		require.NoError(t, err)
		assert.Equal(t, 5*time.Second, cfg.Settings.WaitInterval())
		require.NoError(t, cfg.Waiter.Wait(context.Background(), "/project", "1.0.0"))
		assert.Equal(t, []string{"pkg info demo@1.0.0"}, process.ShellCommands)
	})

	t.Run("should build downstream repos with their hooks", func(t *testing.T) {
		t.Parallel()

		// given
		settings := baseSettings()
		settings.DownstreamRepos = []entities.DownstreamRepoSettings{{
			Name:             "docs",
			URL:              "https://github.com/org/docs.git",
			Branch:           "main",
			NewBranchName:    "release-{{.Version}}",
			FilesToCopy:      []entities.CopyFile{{SourceFile: "dist/demo.js", TargetName: "demo-{{.Version}}.js"}},
			PostCopyCommands: []string{"npm install"},
			BuildCommands:    []string{"npm run build", "npm test"},
		}}
		builder := hooks.NewConfigBuilder(&doubles.StubProcessRepository{})

		// when
		cfg, err := builder.Build(settings, hooks.BuildOptions{RootDir: t.TempDir()})

		// then
		require.NoError(t, err)
		require.Len(t, cfg.DownstreamRepos, 1)
		repo := cfg.DownstreamRepos[0]
		assert.Equal(t, "docs", repo.Name)
		assert.True(t, repo.IsBranchMode())
		assert.Len(t, repo.PostCopiers, 1)
		assert.Len(t, repo.Builders, 2)
	})

	t.Run("should reject templates that do not render", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			name    string
			mutate  func(*entities.Settings)
			message string
		}{
			{
				name:    "should name the broken build command",
				mutate:  func(s *entities.Settings) { s.BuildCommand = "make {{.Version" },
				message: "build_command is not a valid template",
			},
			{
				name:    "should name the broken wait command",
				mutate:  func(s *entities.Settings) { s.WaitForPackageManagerCommand = "pkg {{.Nope}}" },
				message: "failed to render wait_for_package_manager_command",
			},
			{
				name:    "should name the broken validation",
				mutate:  func(s *entities.Settings) { s.CustomValidationCommands = []string{"ok", "{{end}}"} },
				message: "custom_validation_commands[1] is not a valid template",
			},
			{
				name: "should name the broken downstream branch",
				mutate: func(s *entities.Settings) {
					s.DownstreamRepos = []entities.DownstreamRepoSettings{{
						Name: "docs", URL: "https://github.com/org/docs.git", Branch: "main",
						NewBranchName: "release-{{.Tag}}",
					}}
				},
				message: "failed to render downstream_repos[0].new_branch_name",
			},
			{
				name: "should name the broken copy target",
				mutate: func(s *entities.Settings) {
					s.DownstreamRepos = []entities.DownstreamRepoSettings{{
						Name: "docs", URL: "https://github.com/org/docs.git", Branch: "main",
						FilesToCopy: []entities.CopyFile{{SourceFile: "a", TargetName: "b", TargetDir: "{{.Dir}}"}},
					}}
				},
				message: "failed to render downstream_repos[0].files_to_copy[0].target_dir",
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				t.Parallel()

				// given
				settings := baseSettings()
				tt.mutate(settings)
				builder := hooks.NewConfigBuilder(&doubles.StubProcessRepository{})

				// when
				_, err := builder.Build(settings, hooks.BuildOptions{RootDir: t.TempDir()})

				// then
				require.Error(t, err)
				assert.ErrorIs(t, err, entities.ErrConfig)
				assert.Contains(t, err.Error(), tt.message)
			})
		}
	})
}
