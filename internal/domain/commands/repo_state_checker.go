package commands

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/releaser/internal/domain/entities"
	"github.com/rios0rios0/releaser/internal/domain/repositories"
)

const outOfSyncHint = `If you received this error on the root project, you may need to:
  1. pull the latest changes from the remote,
  2. push changes up to the remote,
  3. back out a current release in progress.`

// RepoStateChecker gates a release on the state of a working copy and its remote.
type RepoStateChecker struct {
	git    repositories.GitRepository
	prompt repositories.PromptRepository
}

// NewRepoStateChecker creates a new RepoStateChecker.
func NewRepoStateChecker(
	git repositories.GitRepository,
	prompt repositories.PromptRepository,
) *RepoStateChecker {
	return &RepoStateChecker{git: git, prompt: prompt}
}

// CheckCleanTree fails when dir has untracked files, unstaged or staged-but-uncommitted changes.
// All three checks are reported before failing.
func (it *RepoStateChecker) CheckCleanTree(dir string) error {
	checks := []struct {
		name  string
		list  func(string) ([]string, error)
		label string
	}{
		{name: "untracked files", list: it.git.UntrackedFiles, label: "Untracked files"},
		{name: "unstaged changes", list: it.git.UnstagedChanges, label: "Unstaged changes"},
		{name: "uncommitted changes", list: it.git.StagedChanges, label: "Uncommitted changes"},
	}

	var failures []string
	for _, check := range checks {
		files, err := check.list(dir)
		if err != nil {
			return fmt.Errorf("failed to list %s in %s: %w", check.name, dir, err)
		}
		if len(files) > 0 {
			logger.Errorf("[git] %s found in %s: %s", check.label, dir, strings.Join(files, ", "))
			failures = append(failures, check.name)
			continue
		}
		logger.Infof("[git] No %s found in %s", check.name, dir)
	}

	if len(failures) > 0 {
		return entities.NewRepoStateError(fmt.Sprintf(
			"working copy %s is not clean: %s", dir, strings.Join(failures, ", "),
		))
	}
	return nil
}

// CheckBranches verifies the release is cut from the right branch for the workflow
// and that the relevant branches match their remotes.
func (it *RepoStateChecker) CheckBranches(
	ctx context.Context,
	dir string,
	settings *entities.Settings,
	version string,
) error {
	if err := it.git.Fetch(ctx, dir); err != nil {
		return err
	}

	current, err := it.git.CurrentBranch(dir)
	if err != nil {
		return fmt.Errorf("failed to detect current branch: %w", err)
	}

	if settings.UseGitFlow {
		releaseBranch := "release/" + version
		if current != releaseBranch && current != settings.DevelopBranch {
			return entities.NewRepoStateError(fmt.Sprintf(
				"git flow expects the current branch to be either '%s' or '%s', current branch is '%s'",
				settings.DevelopBranch, releaseBranch, current,
			))
		}

		if current == releaseBranch {
			if checkErr := it.checkAncestor(dir, settings.DevelopBranch, current); checkErr != nil {
				return checkErr
			}
		}

		if syncErr := it.CheckLocalMatchesRemote(dir, settings.MainBranch); syncErr != nil {
			return syncErr
		}
	} else if current != settings.MainBranch {
		return entities.NewRepoStateError(fmt.Sprintf(
			"non-git flow expects releases to come from the %s branch, current branch is '%s'",
			settings.MainBranch, current,
		))
	}

	return it.CheckLocalMatchesRemote(dir, current)
}

func (it *RepoStateChecker) checkAncestor(dir, root, current string) error {
	isAncestor, err := it.git.IsAncestor(dir, root, current)
	if err != nil {
		return fmt.Errorf("failed to compare %s with %s: %w", current, root, err)
	}
	if isAncestor {
		return nil
	}

	proceed, err := it.prompt.Confirm(fmt.Sprintf(
		"%s is missing commits from %s. Are you sure you want to continue?", current, root,
	))
	if err != nil {
		return err
	}
	if !proceed {
		return entities.NewAbortedError(fmt.Sprintf(
			"please rebase %s to include the latest from %s", current, root,
		))
	}
	return nil
}

// CheckLocalMatchesRemote fails when branch and origin/branch point to different commits.
func (it *RepoStateChecker) CheckLocalMatchesRemote(dir, branch string) error {
	local, err := it.git.RevParse(dir, branch)
	if err != nil {
		return err
	}
	remote, err := it.git.RevParse(dir, "origin/"+branch)
	if err != nil {
		return err
	}

	if local != remote {
		return entities.NewRepoStateError(fmt.Sprintf(
			"branches not in sync: %s branch:%s at %s, but origin/%s is at %s",
			dir, branch, local, branch, remote,
		)).WithHint(outOfSyncHint)
	}

	logger.Infof("[git] Repo %s matches origin/%s", dir, branch)
	return nil
}

// CheckSubmodules requires every submodule to sit on origin/<mainBranch> with a clean tree.
func (it *RepoStateChecker) CheckSubmodules(dir, mainBranch string) error {
	submodules, err := it.git.Submodules(dir)
	if err != nil {
		return fmt.Errorf("failed to list submodules: %w", err)
	}
	if len(submodules) == 0 {
		logger.Info("[git] No submodules found")
		return nil
	}
	logger.Infof("[git] Found %d submodules", len(submodules))

	for _, submodule := range submodules {
		subDir := filepath.Join(dir, submodule.Path)

		local, localErr := it.localCommit(subDir)
		if localErr != nil {
			return localErr
		}
		remote, remoteErr := it.git.RevParse(subDir, "origin/"+mainBranch)
		if remoteErr != nil {
			return remoteErr
		}

		if local != remote {
			return entities.NewRepoStateError(fmt.Sprintf(
				"submodule %s not on latest %s, currently at %s, but origin/%s is at %s",
				subDir, mainBranch, local, mainBranch, remote,
			)).WithHint(fmt.Sprintf("you should update this submodule to the latest in origin/%s", mainBranch))
		}
		logger.Infof("[git] Submodule %s matches origin/%s", subDir, mainBranch)

		if cleanErr := it.CheckCleanTree(subDir); cleanErr != nil {
			return cleanErr
		}
	}
	return nil
}

func (it *RepoStateChecker) localCommit(dir string) (string, error) {
	detached, err := it.git.IsDetached(dir)
	if err != nil {
		return "", err
	}
	if detached {
		return it.git.RevParse(dir, "HEAD")
	}

	branch, err := it.git.CurrentBranch(dir)
	if err != nil {
		return "", err
	}
	return it.git.RevParse(dir, branch)
}
