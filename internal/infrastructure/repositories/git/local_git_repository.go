package git

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	gitlog "github.com/tsuyoshiwada/go-gitlog"

	"github.com/rios0rios0/releaser/internal/domain/entities"
	"github.com/rios0rios0/releaser/internal/domain/repositories"
)

const remoteName = "origin"

var versionPattern = regexp.MustCompile(`\d+\.\d+\.\d+`)

// LocalGitRepository reads working copies with go-git and changes them through the git CLI,
// so hooks, credentials and signing configured for git keep applying.
type LocalGitRepository struct {
	process repositories.ProcessRepository
}

// NewLocalGitRepository creates a new LocalGitRepository.
func NewLocalGitRepository(process repositories.ProcessRepository) repositories.GitRepository {
	return &LocalGitRepository{process: process}
}

func (it *LocalGitRepository) Version(ctx context.Context) (string, error) {
	output, err := it.process.Run(ctx, ".", "git", "version")
	if err != nil {
		return "", err
	}
	version := versionPattern.FindString(output)
	if version == "" {
		return "", entities.NewConfigError(fmt.Sprintf("unable to read the git version from %q", output))
	}
	return version, nil
}

func (it *LocalGitRepository) Clone(ctx context.Context, url, dir string) error {
	return it.git(ctx, filepath.Dir(dir), "clone", "--origin", remoteName, url, dir)
}

func (it *LocalGitRepository) Fetch(ctx context.Context, dir string) error {
	return it.git(ctx, dir, "fetch", remoteName, "--prune", "--recurse-submodules", "-j9")
}

func (it *LocalGitRepository) RemoteURL(dir string) (string, error) {
	repo, err := open(dir)
	if err != nil {
		return "", err
	}
	remote, err := repo.Remote(remoteName)
	if err != nil {
		return "", fmt.Errorf("remote %s not found in %s: %w", remoteName, dir, err)
	}
	urls := remote.Config().URLs
	if len(urls) == 0 {
		return "", fmt.Errorf("remote %s has no URL in %s", remoteName, dir)
	}
	return urls[0], nil
}

func (it *LocalGitRepository) CurrentBranch(dir string) (string, error) {
	repo, err := open(dir)
	if err != nil {
		return "", err
	}
	head, err := repo.Head()
	if err != nil {
		return "", fmt.Errorf("failed to read HEAD of %s: %w", dir, err)
	}
	if !head.Name().IsBranch() {
		return "", entities.NewRepoStateError(fmt.Sprintf("HEAD of %s is detached", dir))
	}
	return head.Name().Short(), nil
}

func (it *LocalGitRepository) IsDetached(dir string) (bool, error) {
	repo, err := open(dir)
	if err != nil {
		return false, err
	}
	head, err := repo.Reference(plumbing.HEAD, false)
	if err != nil {
		return false, fmt.Errorf("failed to read HEAD of %s: %w", dir, err)
	}
	return head.Type() == plumbing.HashReference, nil
}

func (it *LocalGitRepository) Checkout(ctx context.Context, dir, branch string) error {
	return it.git(ctx, dir, "checkout", branch)
}

func (it *LocalGitRepository) CreateBranch(ctx context.Context, dir, branch string) error {
	return it.git(ctx, dir, "checkout", "-b", branch)
}

func (it *LocalGitRepository) HasBranch(dir, branch string) (bool, error) {
	repo, err := open(dir)
	if err != nil {
		return false, err
	}
	_, err = repo.Reference(plumbing.NewBranchReferenceName(branch), false)
	if errors.Is(err, plumbing.ErrReferenceNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to look up branch %s in %s: %w", branch, dir, err)
	}
	return true, nil
}

func (it *LocalGitRepository) DeleteBranch(ctx context.Context, dir, branch string) error {
	return it.git(ctx, dir, "branch", "-D", branch)
}

func (it *LocalGitRepository) ResetHard(ctx context.Context, dir, ref string) error {
	return it.git(ctx, dir, "reset", "--hard", ref)
}

func (it *LocalGitRepository) Clean(ctx context.Context, dir string) error {
	return it.git(ctx, dir, "clean", "-x", "-f", "-d")
}

func (it *LocalGitRepository) RevParse(dir, rev string) (string, error) {
	repo, err := open(dir)
	if err != nil {
		return "", err
	}
	hash, err := repo.ResolveRevision(plumbing.Revision(rev))
	if err != nil {
		return "", entities.NewRepoStateError(fmt.Sprintf("unable to resolve %s in %s", rev, dir)).WithCause(err)
	}
	return hash.String(), nil
}

func (it *LocalGitRepository) IsAncestor(dir, ancestor, descendant string) (bool, error) {
	repo, err := open(dir)
	if err != nil {
		return false, err
	}

	older, err := commitAt(repo, ancestor)
	if err != nil {
		return false, err
	}
	newer, err := commitAt(repo, descendant)
	if err != nil {
		return false, err
	}
	if older.Hash == newer.Hash {
		return true, nil
	}
	return older.IsAncestor(newer)
}

func (it *LocalGitRepository) UntrackedFiles(dir string) ([]string, error) {
	return it.filterStatus(dir, func(status *gogit.FileStatus) bool {
		return status.Worktree == gogit.Untracked
	})
}

func (it *LocalGitRepository) UnstagedChanges(dir string) ([]string, error) {
	return it.filterStatus(dir, func(status *gogit.FileStatus) bool {
		return status.Worktree != gogit.Unmodified && status.Worktree != gogit.Untracked
	})
}

func (it *LocalGitRepository) StagedChanges(dir string) ([]string, error) {
	return it.filterStatus(dir, func(status *gogit.FileStatus) bool {
		return status.Staging != gogit.Unmodified && status.Staging != gogit.Untracked
	})
}

func (it *LocalGitRepository) IsClean(dir string) (bool, error) {
	status, err := worktreeStatus(dir)
	if err != nil {
		return false, err
	}
	return status.IsClean(), nil
}

// TrackedFiles lists indexed files below dir, relative to dir.
func (it *LocalGitRepository) TrackedFiles(dir string) ([]string, error) {
	repo, err := open(dir)
	if err != nil {
		return nil, err
	}
	prefix, err := pathInRepo(repo, dir)
	if err != nil {
		return nil, err
	}

	index, err := repo.Storer.Index()
	if err != nil {
		return nil, fmt.Errorf("failed to read the index of %s: %w", dir, err)
	}

	var files []string
	for _, entry := range index.Entries {
		switch {
		case prefix == "":
			files = append(files, entry.Name)
		case strings.HasPrefix(entry.Name, prefix+"/"):
			files = append(files, strings.TrimPrefix(entry.Name, prefix+"/"))
		}
	}
	return files, nil
}

func (it *LocalGitRepository) Submodules(dir string) ([]entities.Submodule, error) {
	repo, err := open(dir)
	if err != nil {
		return nil, err
	}
	worktree, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("failed to open the worktree of %s: %w", dir, err)
	}
	submodules, err := worktree.Submodules()
	if err != nil {
		return nil, fmt.Errorf("failed to read submodules of %s: %w", dir, err)
	}

	result := make([]entities.Submodule, 0, len(submodules))
	for _, submodule := range submodules {
		cfg := submodule.Config()
		result = append(result, entities.Submodule{Name: cfg.Name, Path: cfg.Path, URL: cfg.URL})
	}
	return result, nil
}

func (it *LocalGitRepository) Tags(dir string) ([]string, error) {
	repo, err := open(dir)
	if err != nil {
		return nil, err
	}
	iter, err := repo.Tags()
	if err != nil {
		return nil, fmt.Errorf("failed to list tags of %s: %w", dir, err)
	}
	defer iter.Close()

	var tags []string
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		tags = append(tags, ref.Name().Short())
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list tags of %s: %w", dir, err)
	}
	sort.Strings(tags)
	return tags, nil
}

func (it *LocalGitRepository) Tag(ctx context.Context, dir, tag, message string) error {
	return it.git(ctx, dir, "tag", "-a", "-f", tag, "-m", message)
}

func (it *LocalGitRepository) CommitsSince(dir, tag string) ([]string, error) {
	client := gitlog.New(&gitlog.Config{Path: dir})

	var rev gitlog.RevArgs = &gitlog.Rev{Ref: "HEAD"}
	if tag != "" {
		rev = &gitlog.RevRange{Old: tag, New: "HEAD"}
	}

	commits, err := client.Log(rev, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to read commits of %s: %w", dir, err)
	}

	subjects := make([]string, 0, len(commits))
	for _, commit := range commits {
		subjects = append(subjects, commit.Subject)
	}
	return subjects, nil
}

func (it *LocalGitRepository) Add(ctx context.Context, dir string, paths ...string) error {
	return it.git(ctx, dir, append([]string{"add", "--"}, paths...)...)
}

func (it *LocalGitRepository) StageAll(ctx context.Context, dir string) error {
	return it.git(ctx, dir, "add", "--all")
}

func (it *LocalGitRepository) Commit(ctx context.Context, dir, message string) error {
	return it.git(ctx, dir, "commit", "-m", message)
}

func (it *LocalGitRepository) Move(ctx context.Context, dir, from, to string) error {
	return it.git(ctx, dir, "mv", from, to)
}

func (it *LocalGitRepository) Merge(ctx context.Context, dir, ref string) error {
	return it.git(ctx, dir, "merge", ref)
}

func (it *LocalGitRepository) PushBranch(ctx context.Context, dir, branch string, setUpstream bool) error {
	args := []string{"push"}
	if setUpstream {
		args = append(args, "-u")
	}
	return it.git(ctx, dir, append(args, remoteName, branch)...)
}

func (it *LocalGitRepository) PushTag(ctx context.Context, dir, tag string, force bool) error {
	args := []string{"push"}
	if force {
		args = append(args, "--force")
	}
	return it.git(ctx, dir, append(args, remoteName, "refs/tags/"+tag)...)
}

func (it *LocalGitRepository) git(ctx context.Context, dir string, args ...string) error {
	_, err := it.process.Run(ctx, dir, "git", args...)
	return err
}

func (it *LocalGitRepository) filterStatus(dir string, keep func(*gogit.FileStatus) bool) ([]string, error) {
	status, err := worktreeStatus(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for path, fileStatus := range status {
		if keep(fileStatus) {
			files = append(files, path)
		}
	}
	sort.Strings(files)
	return files, nil
}

func open(dir string) (*gogit.Repository, error) {
	repo, err := gogit.PlainOpenWithOptions(dir, &gogit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, entities.NewRepoStateError(fmt.Sprintf("%s is not a git repository", dir)).WithCause(err)
	}
	return repo, nil
}

func worktreeStatus(dir string) (gogit.Status, error) {
	repo, err := open(dir)
	if err != nil {
		return nil, err
	}
	worktree, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("failed to open the worktree of %s: %w", dir, err)
	}
	status, err := worktree.Status()
	if err != nil {
		return nil, fmt.Errorf("failed to read the status of %s: %w", dir, err)
	}
	return status, nil
}

func commitAt(repo *gogit.Repository, rev string) (*object.Commit, error) {
	hash, err := repo.ResolveRevision(plumbing.Revision(rev))
	if err != nil {
		return nil, entities.NewRepoStateError(fmt.Sprintf("unable to resolve %s", rev)).WithCause(err)
	}
	commit, err := repo.CommitObject(*hash)
	if err != nil {
		return nil, fmt.Errorf("failed to read commit %s: %w", hash, err)
	}
	return commit, nil
}

// pathInRepo returns dir relative to the worktree root, in slash form ("" for the root).
func pathInRepo(repo *gogit.Repository, dir string) (string, error) {
	worktree, err := repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("failed to open the worktree of %s: %w", dir, err)
	}
	root, err := filepath.EvalSymlinks(worktree.Filesystem.Root())
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", worktree.Filesystem.Root(), err)
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", dir, err)
	}
	if resolved, evalErr := filepath.EvalSymlinks(abs); evalErr == nil {
		abs = resolved
	}

	rel, err := filepath.Rel(root, abs)
	if err != nil {
		return "", fmt.Errorf("%s is outside of %s: %w", dir, root, err)
	}
	if rel == "." {
		return "", nil
	}
	return filepath.ToSlash(rel), nil
}
