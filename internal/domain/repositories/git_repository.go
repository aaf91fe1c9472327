package repositories

import (
	"context"

	"github.com/rios0rios0/releaser/internal/domain/entities"
)

// GitRepository is the narrow set of source-control operations the release engine drives.
// Every operation takes the working-copy directory explicitly.
type GitRepository interface {
	// Version returns the installed git version, e.g. "2.43.0".
	Version(ctx context.Context) (string, error)

	Clone(ctx context.Context, url, dir string) error
	Fetch(ctx context.Context, dir string) error
	RemoteURL(dir string) (string, error)

	CurrentBranch(dir string) (string, error)
	IsDetached(dir string) (bool, error)
	Checkout(ctx context.Context, dir, branch string) error
	CreateBranch(ctx context.Context, dir, branch string) error
	HasBranch(dir, branch string) (bool, error)
	DeleteBranch(ctx context.Context, dir, branch string) error

	// ResetHard moves the current branch to ref, discarding local changes.
	ResetHard(ctx context.Context, dir, ref string) error
	// Clean removes untracked and ignored files.
	Clean(ctx context.Context, dir string) error

	// RevParse resolves a revision (branch, "origin/<branch>", "HEAD", tag) to a commit hash.
	RevParse(dir, rev string) (string, error)
	IsAncestor(dir, ancestor, descendant string) (bool, error)

	UntrackedFiles(dir string) ([]string, error)
	UnstagedChanges(dir string) ([]string, error)
	StagedChanges(dir string) ([]string, error)
	IsClean(dir string) (bool, error)
	TrackedFiles(dir string) ([]string, error)
	Submodules(dir string) ([]entities.Submodule, error)

	Tags(dir string) ([]string, error)
	// Tag creates or overwrites an annotated tag carrying message.
	Tag(ctx context.Context, dir, tag, message string) error
	// CommitsSince lists commit subjects after tag (all commits when tag is empty), newest first.
	CommitsSince(dir, tag string) ([]string, error)

	Add(ctx context.Context, dir string, paths ...string) error
	// StageAll stages every addition, modification and deletion in dir.
	StageAll(ctx context.Context, dir string) error
	Commit(ctx context.Context, dir, message string) error
	Move(ctx context.Context, dir, from, to string) error
	Merge(ctx context.Context, dir, ref string) error

	PushBranch(ctx context.Context, dir, branch string, setUpstream bool) error
	// PushTag pushes tag to origin. With force a remote tag of the same name is replaced.
	PushTag(ctx context.Context, dir, tag string, force bool) error
}
