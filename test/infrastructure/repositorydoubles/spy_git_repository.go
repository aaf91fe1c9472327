//go:build integration || unit || test

// Package repositorydoubles provides test doubles (spies, stubs, dummies) for
// repository interfaces. These are hand-crafted implementations, no mock frameworks.
package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/rios0rios0/releaser/internal/domain/entities"
	"github.com/rios0rios0/releaser/internal/domain/repositories"
)

// SpyGitRepository implements repositories.GitRepository as a configurable spy.
// Mutating operations are recorded in Calls as "<op> <args>", e.g. "tag 1.0.0".
type SpyGitRepository struct {
	// --- Version ---
	GitVersion string

	// --- RemoteURL ---
	Remote string

	// --- CurrentBranch / IsDetached ---
	Branch       string
	BranchByDir  map[string]string
	DetachedDirs map[string]bool

	// --- HasBranch ---
	ExistingBranches map[string]bool

	// --- RevParse / IsAncestor ---
	// Revisions is looked up by "<dir>@<rev>" first, then by "<rev>".
	Revisions   map[string]string
	NotAncestor bool

	// --- working tree ---
	Untracked  map[string][]string
	Unstaged   map[string][]string
	Staged     map[string][]string
	DirtyDirs  map[string]bool
	Tracked    []string
	Submods    []entities.Submodule
	TagList    []string
	Commits    []string
	SinceTags  []string
	TagMessage map[string]string

	// FailOn makes the named operation return the error, e.g. "push-tag".
	FailOn map[string]error

	Calls []string
}

var _ repositories.GitRepository = (*SpyGitRepository)(nil)

func (s *SpyGitRepository) record(op string, args ...string) error {
	s.Calls = append(s.Calls, strings.TrimSpace(op+" "+strings.Join(args, " ")))
	return s.FailOn[op]
}

func (s *SpyGitRepository) Version(_ context.Context) (string, error) {
	if err := s.FailOn["version"]; err != nil {
		return "", err
	}
	if s.GitVersion == "" {
		return "2.43.0", nil
	}
	return s.GitVersion, nil
}

func (s *SpyGitRepository) Clone(_ context.Context, url, dir string) error {
	if err := s.record("clone", url); err != nil {
		return err
	}
	return os.MkdirAll(dir, 0o750)
}

func (s *SpyGitRepository) Fetch(_ context.Context, _ string) error {
	return s.record("fetch")
}

func (s *SpyGitRepository) RemoteURL(_ string) (string, error) {
	if err := s.FailOn["remote-url"]; err != nil {
		return "", err
	}
	return s.Remote, nil
}

func (s *SpyGitRepository) CurrentBranch(dir string) (string, error) {
	if err := s.FailOn["current-branch"]; err != nil {
		return "", err
	}
	if branch, ok := s.BranchByDir[dir]; ok {
		return branch, nil
	}
	return s.Branch, nil
}

func (s *SpyGitRepository) IsDetached(dir string) (bool, error) {
	return s.DetachedDirs[dir], nil
}

func (s *SpyGitRepository) Checkout(_ context.Context, _, branch string) error {
	return s.record("checkout", branch)
}

func (s *SpyGitRepository) CreateBranch(_ context.Context, _, branch string) error {
	return s.record("create-branch", branch)
}

func (s *SpyGitRepository) HasBranch(_, branch string) (bool, error) {
	return s.ExistingBranches[branch], nil
}

func (s *SpyGitRepository) DeleteBranch(_ context.Context, _, branch string) error {
	return s.record("delete-branch", branch)
}

func (s *SpyGitRepository) ResetHard(_ context.Context, _, ref string) error {
	return s.record("reset", ref)
}

func (s *SpyGitRepository) Clean(_ context.Context, _ string) error {
	return s.record("clean")
}

func (s *SpyGitRepository) RevParse(dir, rev string) (string, error) {
	if err := s.FailOn["rev-parse"]; err != nil {
		return "", err
	}
	if hash, ok := s.Revisions[dir+"@"+rev]; ok {
		return hash, nil
	}
	if hash, ok := s.Revisions[rev]; ok {
		return hash, nil
	}
	return "", fmt.Errorf("unknown revision %s", rev)
}

func (s *SpyGitRepository) IsAncestor(_, _, _ string) (bool, error) {
	return !s.NotAncestor, nil
}

func (s *SpyGitRepository) UntrackedFiles(dir string) ([]string, error) {
	return s.Untracked[dir], s.FailOn["untracked"]
}

func (s *SpyGitRepository) UnstagedChanges(dir string) ([]string, error) {
	return s.Unstaged[dir], nil
}

func (s *SpyGitRepository) StagedChanges(dir string) ([]string, error) {
	return s.Staged[dir], nil
}

func (s *SpyGitRepository) IsClean(dir string) (bool, error) {
	if err := s.FailOn["is-clean"]; err != nil {
		return false, err
	}
	return !s.DirtyDirs[dir], nil
}

func (s *SpyGitRepository) TrackedFiles(_ string) ([]string, error) {
	return s.Tracked, nil
}

func (s *SpyGitRepository) Submodules(_ string) ([]entities.Submodule, error) {
	return s.Submods, nil
}

func (s *SpyGitRepository) Tags(_ string) ([]string, error) {
	if err := s.FailOn["tags"]; err != nil {
		return nil, err
	}
	return s.TagList, nil
}

func (s *SpyGitRepository) Tag(_ context.Context, _, tag, message string) error {
	if err := s.record("tag", tag); err != nil {
		return err
	}
	if s.TagMessage == nil {
		s.TagMessage = make(map[string]string)
	}
	s.TagMessage[tag] = message
	return nil
}

func (s *SpyGitRepository) CommitsSince(_, tag string) ([]string, error) {
	s.SinceTags = append(s.SinceTags, tag)
	return s.Commits, nil
}

func (s *SpyGitRepository) Add(_ context.Context, _ string, paths ...string) error {
	return s.record("add", paths...)
}

func (s *SpyGitRepository) StageAll(_ context.Context, _ string) error {
	return s.record("stage-all")
}

func (s *SpyGitRepository) Commit(_ context.Context, _, message string) error {
	return s.record("commit", message)
}

func (s *SpyGitRepository) Move(_ context.Context, _, from, to string) error {
	return s.record("move", from, to)
}

func (s *SpyGitRepository) Merge(_ context.Context, _, ref string) error {
	return s.record("merge", ref)
}

func (s *SpyGitRepository) PushBranch(_ context.Context, _, branch string, setUpstream bool) error {
	if setUpstream {
		return s.record("push-branch", "-u", branch)
	}
	return s.record("push-branch", branch)
}

func (s *SpyGitRepository) PushTag(_ context.Context, _, tag string, force bool) error {
	if force {
		return s.record("push-tag", "-f", tag)
	}
	return s.record("push-tag", tag)
}
