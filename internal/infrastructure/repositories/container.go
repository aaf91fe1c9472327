package repositories

import (
	"go.uber.org/dig"

	domainRepos "github.com/rios0rios0/releaser/internal/domain/repositories"
	fsRepo "github.com/rios0rios0/releaser/internal/infrastructure/repositories/filesystem"
	gitRepo "github.com/rios0rios0/releaser/internal/infrastructure/repositories/git"
	ghRepo "github.com/rios0rios0/releaser/internal/infrastructure/repositories/github"
	glRepo "github.com/rios0rios0/releaser/internal/infrastructure/repositories/gitlab"
	"github.com/rios0rios0/releaser/internal/infrastructure/repositories/hooks"
	"github.com/rios0rios0/releaser/internal/infrastructure/repositories/process"
	"github.com/rios0rios0/releaser/internal/infrastructure/repositories/terminal"
)

// RegisterProviders registers all repository providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Register hosting registry with all provider factories
	if err := container.Provide(func() *HostingRegistry {
		reg := NewHostingRegistry()
		reg.Register(githubProvider, ghRepo.NewHostingRepository)
		reg.Register(gitlabProvider, glRepo.NewHostingRepository)
		return reg
	}); err != nil {
		return err
	}
	if err := container.Provide(func(impl *HostingRegistry) domainRepos.HostingResolver {
		return impl
	}); err != nil {
		return err
	}

	// Register local collaborators
	constructors := []any{
		process.NewShellProcessRepository,
		gitRepo.NewLocalGitRepository,
		terminal.NewTerminalPromptRepository,
		fsRepo.NewLocalFileSyncRepository,
		hooks.NewConfigBuilder,
	}
	for _, constructor := range constructors {
		if err := container.Provide(constructor); err != nil {
			return err
		}
	}

	return nil
}
