package commands

import (
	"context"
	"fmt"
	"slices"
	"time"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/releaser/internal/domain/entities"
	"github.com/rios0rios0/releaser/internal/domain/repositories"
)

// tagRelease creates the annotated release tag in dir, asking before overwriting an existing one.
// It reports whether an existing tag was overwritten, which is when the push must be forced.
func tagRelease(
	ctx context.Context,
	git repositories.GitRepository,
	prompt repositories.PromptRepository,
	dir string,
	release *entities.CurrentRelease,
) (bool, error) {
	tags, err := git.Tags(dir)
	if err != nil {
		return false, fmt.Errorf("failed to list tags in %s: %w", dir, err)
	}

	tag := release.Version()
	overwrite := slices.Contains(tags, tag)
	if overwrite {
		proceed, askErr := prompt.Confirm(fmt.Sprintf("Tag %s already present. Overwrite tag %s?", tag, tag))
		if askErr != nil {
			return false, askErr
		}
		if !proceed {
			return false, entities.NewAbortedError(fmt.Sprintf("tag %s not overwritten", tag))
		}
	}

	logger.Infof("[git] Tagging %s in %s with changelog:\n\n%s\n", tag, dir, release.Changelog())
	if err = git.Tag(ctx, dir, tag, release.Changelog()); err != nil {
		return false, err
	}
	return overwrite, nil
}

// pushBranch merges any commits added to the remote during the release, then pushes.
func pushBranch(ctx context.Context, git repositories.GitRepository, dir, branch string) error {
	if err := git.Checkout(ctx, dir, branch); err != nil {
		return err
	}
	if err := git.Fetch(ctx, dir); err != nil {
		return err
	}
	if err := git.Merge(ctx, dir, "origin/"+branch); err != nil {
		return err
	}
	return git.PushBranch(ctx, dir, branch, false)
}

// checkPermissions checks push access through the collaborator listing of the hosted repo.
func checkPermissions(ctx context.Context, resolver repositories.HostingResolver, url string) error {
	hosting, repo, err := resolver.Resolve(url)
	if err != nil {
		return err
	}

	logger.Debugf("[%s] Checking collaborators on %s", hosting.Name(), url)
	collaborators, err := hosting.ListCollaborators(ctx, repo)
	if err != nil {
		return entities.NewReleaseError(
			entities.ErrPermission, nil, fmt.Sprintf("unable to verify push permissions on %s", url),
		).WithCause(err)
	}
	logger.Tracef("[%s] Collaborators of %s: %v", hosting.Name(), repo.FullName(), collaborators)
	logger.Infof("[%s] User has push permissions on %s", hosting.Name(), url)
	return nil
}

// publishHostedRelease creates the hosted release for the tag and uploads assets to it.
func publishHostedRelease(
	ctx context.Context,
	resolver repositories.HostingResolver,
	url string,
	release *entities.CurrentRelease,
	assets []entities.ReleaseAsset,
) error {
	hosting, repo, err := resolver.Resolve(url)
	if err != nil {
		return err
	}

	if err = hosting.CreateRelease(ctx, repo, entities.ReleaseInput{
		TagName: release.Version(),
		Name:    release.Version(),
		Body:    release.Changelog(),
	}); err != nil {
		return entities.NewReleaseError(
			entities.ErrNetwork, nil, fmt.Sprintf("failed to create release %s on %s", release.Version(), url),
		).WithCause(err)
	}
	logger.Infof("[%s] Released %s on %s", hosting.Name(), release.Version(), repo.FullName())

	for _, asset := range assets {
		if err = hosting.UploadReleaseAsset(ctx, repo, release.Version(), asset); err != nil {
			return entities.NewReleaseError(
				entities.ErrNetwork, nil, fmt.Sprintf("failed to upload %s to release %s", asset.Path, release.Version()),
			).WithCause(err)
		}
		logger.Infof("[%s] Uploaded %s", hosting.Name(), asset.Path)
	}
	return nil
}

// sleepContext waits for d or until ctx is done.
func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
