package hooks

import (
	"fmt"
	"path/filepath"

	"github.com/rios0rios0/releaser/internal/domain/entities"
	"github.com/rios0rios0/releaser/internal/domain/repositories"
)

// sampleData is the value every configured template is test-rendered with while building.
var sampleData = entities.TemplateData{Version: "0.0.0", SemverType: entities.BumpPatch} //nolint:gochecknoglobals // fixed sample

// ConfigBuilder turns loaded settings into the strategy objects of a run.
type ConfigBuilder struct {
	process repositories.ProcessRepository
}

// NewConfigBuilder creates a new ConfigBuilder.
func NewConfigBuilder(process repositories.ProcessRepository) *ConfigBuilder {
	return &ConfigBuilder{process: process}
}

// BuildOptions are the run-level flags carried into the config.
type BuildOptions struct {
	RootDir string
	Verbose bool
	Trace   bool
}

// Build returns the ReleaseConfig for settings.
func (it *ConfigBuilder) Build(settings *entities.Settings, opts BuildOptions) (*entities.ReleaseConfig, error) {
	rootDir, err := filepath.Abs(opts.RootDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", opts.RootDir, err)
	}

	builder, err := it.hook("build_command", settings.BuildCommand)
	if err != nil {
		return nil, err
	}
	publisher, err := it.hook("publish_to_package_manager_command", settings.PublishToPackageManagerCommand)
	if err != nil {
		return nil, err
	}
	if err = tryRender("wait_for_package_manager_command", settings.WaitForPackageManagerCommand); err != nil {
		return nil, err
	}

	cfg := &entities.ReleaseConfig{
		Settings:  settings,
		RootDir:   rootDir,
		Builder:   builder,
		Publisher: publisher,
		Waiter:    NewPollingWaiter(settings.WaitForPackageManagerCommand, settings.WaitInterval(), it.process),
		Verbose:   opts.Verbose,
		Trace:     opts.Trace,
	}

	if settings.UpdateVersionCommand != "" {
		updater, hookErr := it.hook("update_version_command", settings.UpdateVersionCommand)
		if hookErr != nil {
			return nil, hookErr
		}
		cfg.VersionUpdater = updater
	}

	for i, command := range settings.CustomValidationCommands {
		validation, hookErr := it.hook(fmt.Sprintf("custom_validation_commands[%d]", i), command)
		if hookErr != nil {
			return nil, hookErr
		}
		cfg.Validations = append(cfg.Validations, validation)
	}

	for i, repoSettings := range settings.DownstreamRepos {
		repo, repoErr := it.downstreamRepo(i, repoSettings)
		if repoErr != nil {
			return nil, repoErr
		}
		cfg.DownstreamRepos = append(cfg.DownstreamRepos, repo)
	}

	return cfg, nil
}

func (it *ConfigBuilder) downstreamRepo(
	index int,
	repoSettings entities.DownstreamRepoSettings,
) (entities.DownstreamRepo, error) {
	scope := fmt.Sprintf("downstream_repos[%d]", index)
	repo := entities.DownstreamRepo{
		Name:            repoSettings.Name,
		URL:             repoSettings.URL,
		Branch:          repoSettings.Branch,
		NewBranchName:   repoSettings.NewBranchName,
		ReleaseToGitHub: repoSettings.ReleaseToGitHub,
		FullFileSync:    repoSettings.FullFileSync,
		FilesToCopy:     repoSettings.FilesToCopy,
	}

	if repo.IsBranchMode() {
		if err := tryRender(scope+".new_branch_name", repo.NewBranchName); err != nil {
			return repo, err
		}
	}
	for j, file := range repo.FilesToCopy {
		if err := tryRender(fmt.Sprintf("%s.files_to_copy[%d].target_name", scope, j), file.TargetName); err != nil {
			return repo, err
		}
		if err := tryRender(fmt.Sprintf("%s.files_to_copy[%d].target_dir", scope, j), file.TargetDir); err != nil {
			return repo, err
		}
	}

	for j, command := range repoSettings.PostCopyCommands {
		hook, err := it.hook(fmt.Sprintf("%s.post_copy_commands[%d]", scope, j), command)
		if err != nil {
			return repo, err
		}
		repo.PostCopiers = append(repo.PostCopiers, hook)
	}
	for j, command := range repoSettings.BuildCommands {
		hook, err := it.hook(fmt.Sprintf("%s.build_commands[%d]", scope, j), command)
		if err != nil {
			return repo, err
		}
		repo.Builders = append(repo.Builders, hook)
	}
	return repo, nil
}

func (it *ConfigBuilder) hook(name, command string) (*ShellHook, error) {
	if err := tryRender(name, command); err != nil {
		return nil, err
	}
	return NewShellHook(name, command, it.process), nil
}

func tryRender(name, text string) error {
	_, err := entities.RenderTemplate(name, text, sampleData)
	return err
}
