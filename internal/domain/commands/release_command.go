package commands

import (
	"context"
	"fmt"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/releaser/internal/domain/entities"
	"github.com/rios0rios0/releaser/internal/domain/repositories"
)

// Release is the interface for the full release use case.
type Release interface {
	Execute(ctx context.Context, cfg *entities.ReleaseConfig, opts ReleaseOptions) (*entities.CurrentRelease, error)
}

// ReleaseOptions holds runtime options for a release run.
type ReleaseOptions struct {
	// SkipDownstream stops after the root project is released.
	SkipDownstream bool
}

// ReleaseCommand ships the newest changelog version of the root project and then
// drives the downstream pipeline.
type ReleaseCommand struct {
	git        repositories.GitRepository
	hosting    repositories.HostingResolver
	prompt     repositories.PromptRepository
	validate   Validate
	downstream Downstream
}

// NewReleaseCommand creates a new ReleaseCommand.
func NewReleaseCommand(
	git repositories.GitRepository,
	hosting repositories.HostingResolver,
	prompt repositories.PromptRepository,
	validate Validate,
	downstream Downstream,
) *ReleaseCommand {
	return &ReleaseCommand{
		git:        git,
		hosting:    hosting,
		prompt:     prompt,
		validate:   validate,
		downstream: downstream,
	}
}

// Execute validates, builds, tags, pushes, publishes and waits for the release, then
// releases to the hosting service and runs every downstream stage.
func (it *ReleaseCommand) Execute(
	ctx context.Context,
	cfg *entities.ReleaseConfig,
	opts ReleaseOptions,
) (*entities.CurrentRelease, error) {
	release, err := it.validate.Execute(ctx, cfg, ValidateOptions{})
	if err != nil {
		return nil, err
	}

	if err = it.confirmChecklist(cfg.Settings.PrereleaseChecklistItems); err != nil {
		return nil, err
	}

	var rootURL string
	if cfg.Settings.ReleaseToGitHub {
		if rootURL, err = it.git.RemoteURL(cfg.RootDir); err != nil {
			return nil, fmt.Errorf("failed to read the origin of %s: %w", cfg.RootDir, err)
		}
		if err = checkPermissions(ctx, it.hosting, rootURL); err != nil {
			return nil, err
		}
	}

	if err = it.releaseRoot(ctx, cfg, release); err != nil {
		return nil, err
	}

	if cfg.Settings.ReleaseToGitHub {
		if err = publishHostedRelease(ctx, it.hosting, rootURL, release, cfg.Settings.ReleaseAssets); err != nil {
			return nil, err
		}
	}

	if opts.SkipDownstream {
		logger.Info("[downstream] Skipping downstream repos")
		return release, nil
	}
	if err = it.downstream.Execute(ctx, cfg, release, DownstreamOptions{Stages: entities.AllStages()}); err != nil {
		return nil, err
	}
	return release, nil
}

func (it *ReleaseCommand) confirmChecklist(items []string) error {
	for _, item := range items {
		proceed, err := it.prompt.Confirm(item)
		if err != nil {
			return err
		}
		if !proceed {
			return entities.NewAbortedError(fmt.Sprintf("checklist item not confirmed: %s", item))
		}
	}
	return nil
}

func (it *ReleaseCommand) releaseRoot(
	ctx context.Context,
	cfg *entities.ReleaseConfig,
	release *entities.CurrentRelease,
) error {
	if cfg.Builder != nil {
		if err := cfg.Builder.Build(ctx, cfg.RootDir, release.Version()); err != nil {
			return err
		}
	}

	overwritten, err := tagRelease(ctx, it.git, it.prompt, cfg.RootDir, release)
	if err != nil {
		return err
	}

	var branch string
	branch, err = it.git.CurrentBranch(cfg.RootDir)
	if err != nil {
		return fmt.Errorf("failed to detect current branch: %w", err)
	}
	if err = pushBranch(ctx, it.git, cfg.RootDir, branch); err != nil {
		return err
	}
	if err = it.git.PushTag(ctx, cfg.RootDir, release.Version(), overwritten); err != nil {
		return err
	}

	if cfg.Publisher != nil {
		if err = cfg.Publisher.Publish(ctx, cfg.RootDir, release.Version()); err != nil {
			return err
		}
	}
	if cfg.Waiter != nil {
		if err = cfg.Waiter.Wait(ctx, cfg.RootDir, release.Version()); err != nil {
			return err
		}
	}
	return nil
}
