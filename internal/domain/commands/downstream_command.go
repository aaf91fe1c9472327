package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/releaser/internal/domain/entities"
	"github.com/rios0rios0/releaser/internal/domain/repositories"
)

// defaultSettleDelay gives the hosting service time to register a freshly pushed ref.
const defaultSettleDelay = 5 * time.Second

// Downstream is the interface for the downstream release pipeline.
type Downstream interface {
	Execute(
		ctx context.Context,
		cfg *entities.ReleaseConfig,
		release *entities.CurrentRelease,
		opts DownstreamOptions,
	) error
}

// DownstreamOptions selects what a pipeline run does.
type DownstreamOptions struct {
	// Stages to run; they are always applied in pipeline order.
	Stages []entities.PipelineStage
	// RepoIndex restricts the run to one configured repo. Empty means all repos.
	RepoIndex string
}

// indexedRepo keeps the configured position of a repo for messages.
type indexedRepo struct {
	index int
	repo  entities.DownstreamRepo
}

// DownstreamCommand drives each downstream repo through reset, prepare, build, package
// and push. Stages run one at a time across all selected repos; the first failure ends the run.
type DownstreamCommand struct {
	git         repositories.GitRepository
	hosting     repositories.HostingResolver
	prompt      repositories.PromptRepository
	files       repositories.FileSyncRepository
	settleDelay time.Duration

	// overwrittenTags marks, by repo dir, the tags replaced during this run.
	overwrittenTags map[string]bool
}

// NewDownstreamCommand creates a new DownstreamCommand.
func NewDownstreamCommand(
	git repositories.GitRepository,
	hosting repositories.HostingResolver,
	prompt repositories.PromptRepository,
	files repositories.FileSyncRepository,
) *DownstreamCommand {
	return &DownstreamCommand{
		git:         git,
		hosting:     hosting,
		prompt:      prompt,
		files:       files,
		settleDelay: defaultSettleDelay,
	}
}

// Execute runs the requested stages.
func (it *DownstreamCommand) Execute(
	ctx context.Context,
	cfg *entities.ReleaseConfig,
	release *entities.CurrentRelease,
	opts DownstreamOptions,
) error {
	stages := entities.OrderStages(opts.Stages)

	if len(cfg.DownstreamRepos) == 0 {
		for _, stage := range stages {
			logger.Infof("[downstream] Not running %s on downstream repos. None found.", stage)
		}
		return nil
	}

	repos, err := selectRepos(cfg.DownstreamRepos, opts.RepoIndex)
	if err != nil {
		return err
	}
	it.overwrittenTags = make(map[string]bool, len(repos))

	for _, stage := range stages {
		for _, selected := range repos {
			logger.Debugf("[downstream] %s downstream_repo[%d]: %s", stage, selected.index, selected.repo.URL)
			if stageErr := it.runStage(ctx, stage, cfg, release, selected.repo); stageErr != nil {
				return fmt.Errorf("downstream_repo[%d] %s failed at %s: %w",
					selected.index, selected.repo.Name, stage, stageErr)
			}
		}
		logger.Infof("[downstream] Done running %s on downstream repos", stage)
	}
	return nil
}

func (it *DownstreamCommand) runStage(
	ctx context.Context,
	stage entities.PipelineStage,
	cfg *entities.ReleaseConfig,
	release *entities.CurrentRelease,
	repo entities.DownstreamRepo,
) error {
	switch stage {
	case entities.StageValidatePermissions:
		return checkPermissions(ctx, it.hosting, repo.URL)
	case entities.StageReset:
		return it.reset(ctx, cfg, release, repo)
	case entities.StagePrepare:
		return it.prepare(ctx, cfg, release, repo)
	case entities.StageBuild:
		return it.build(ctx, cfg, release, repo)
	case entities.StagePackage:
		if repo.IsBranchMode() {
			return nil
		}
		return it.tag(ctx, cfg, release, repo)
	case entities.StagePush:
		return it.push(ctx, cfg, release, repo)
	default:
		return fmt.Errorf("unknown pipeline stage %s", stage)
	}
}

func (it *DownstreamCommand) tag(
	ctx context.Context,
	cfg *entities.ReleaseConfig,
	release *entities.CurrentRelease,
	repo entities.DownstreamRepo,
) error {
	dir := repo.Dir(cfg.RootDir)
	overwritten, err := tagRelease(ctx, it.git, it.prompt, dir, release)
	if err != nil {
		return err
	}
	it.overwrittenTags[dir] = overwritten
	return nil
}

func (it *DownstreamCommand) reset(
	ctx context.Context,
	cfg *entities.ReleaseConfig,
	release *entities.CurrentRelease,
	repo entities.DownstreamRepo,
) error {
	//nolint:gosec // clone directory is shared with the operator
	if err := os.MkdirAll(filepath.Join(cfg.RootDir, entities.DownstreamReposDir), 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", entities.DownstreamReposDir, err)
	}

	dir := repo.Dir(cfg.RootDir)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if cloneErr := it.git.Clone(ctx, repo.URL, dir); cloneErr != nil {
			return cloneErr
		}
	}

	current, err := it.git.CurrentBranch(dir)
	if err != nil || current != repo.Branch {
		if checkoutErr := it.git.Checkout(ctx, dir, repo.Branch); checkoutErr != nil {
			return checkoutErr
		}
	}
	if err = it.git.Fetch(ctx, dir); err != nil {
		return err
	}
	if err = it.git.ResetHard(ctx, dir, "origin/"+repo.Branch); err != nil {
		return err
	}
	if err = it.git.Clean(ctx, dir); err != nil {
		return err
	}

	if !repo.IsBranchMode() {
		return nil
	}
	branch, err := repo.BranchName(release.Version())
	if err != nil {
		return err
	}
	exists, err := it.git.HasBranch(dir, branch)
	if err != nil {
		return err
	}
	if exists {
		return it.git.DeleteBranch(ctx, dir, branch)
	}
	return nil
}

func (it *DownstreamCommand) prepare(
	ctx context.Context,
	cfg *entities.ReleaseConfig,
	release *entities.CurrentRelease,
	repo entities.DownstreamRepo,
) error {
	dir := repo.Dir(cfg.RootDir)

	if repo.IsBranchMode() {
		branch, err := repo.BranchName(release.Version())
		if err != nil {
			return err
		}
		if err = it.git.CreateBranch(ctx, dir, branch); err != nil {
			return err
		}
	}

	if repo.FullFileSync {
		source := filepath.Join(cfg.RootDir, cfg.Settings.BaseDocsDir)
		if err := it.files.SyncTree(source, dir, []string{entities.DownstreamReposDir, ".git"}); err != nil {
			return fmt.Errorf("failed to sync %s into %s: %w", source, dir, err)
		}
	}

	for _, file := range repo.FilesToCopy {
		if err := it.copyFile(cfg.RootDir, dir, file, release.Version()); err != nil {
			return err
		}
	}

	for _, copier := range repo.PostCopiers {
		if err := copier.PostCopy(ctx, dir, release.Version()); err != nil {
			return err
		}
	}

	clean, err := it.git.IsClean(dir)
	if err != nil {
		return err
	}
	if clean {
		return entities.NewRepoStateError(fmt.Sprintf("nothing changed in %s!", repo.Name))
	}

	if err = it.git.StageAll(ctx, dir); err != nil {
		return err
	}

	message := "Release " + release.Version()
	if repo.IsBranchMode() {
		message = fmt.Sprintf("Update %s to %s", cfg.ProductName(), release.Version())
	}
	return it.git.Commit(ctx, dir, message)
}

func (it *DownstreamCommand) copyFile(rootDir, repoDir string, file entities.CopyFile, version string) error {
	data := entities.TemplateData{Version: version}
	targetName, err := entities.RenderTemplate("target_name", file.TargetName, data)
	if err != nil {
		return err
	}
	targetDir, err := entities.RenderTemplate("target_dir", file.TargetDir, data)
	if err != nil {
		return err
	}

	source := filepath.Join(rootDir, file.SourceFile)
	target := filepath.Join(repoDir, targetDir, targetName)
	logger.Infof("[downstream] Copying %s to %s", source, target)
	if err = it.files.Copy(source, target); err != nil {
		return fmt.Errorf("failed to copy %s to %s: %w", source, target, err)
	}
	return nil
}

func (it *DownstreamCommand) build(
	ctx context.Context,
	cfg *entities.ReleaseConfig,
	release *entities.CurrentRelease,
	repo entities.DownstreamRepo,
) error {
	dir := repo.Dir(cfg.RootDir)
	for _, builder := range repo.Builders {
		if err := builder.Build(ctx, dir, release.Version()); err != nil {
			return err
		}
	}
	return nil
}

func (it *DownstreamCommand) push(
	ctx context.Context,
	cfg *entities.ReleaseConfig,
	release *entities.CurrentRelease,
	repo entities.DownstreamRepo,
) error {
	dir := repo.Dir(cfg.RootDir)

	if repo.IsBranchMode() {
		branch, err := repo.BranchName(release.Version())
		if err != nil {
			return err
		}
		if err = it.git.PushBranch(ctx, dir, branch, true); err != nil {
			return err
		}
		if err = sleepContext(ctx, it.settleDelay); err != nil {
			return err
		}
		return it.openPullRequest(ctx, cfg, release, repo, branch)
	}

	if err := pushBranch(ctx, it.git, dir, repo.Branch); err != nil {
		return err
	}
	if err := it.git.PushTag(ctx, dir, release.Version(), it.overwrittenTags[dir]); err != nil {
		return err
	}
	if err := sleepContext(ctx, it.settleDelay); err != nil {
		return err
	}
	if !repo.ReleaseToGitHub {
		return nil
	}
	return publishHostedRelease(ctx, it.hosting, repo.URL, release, nil)
}

func (it *DownstreamCommand) openPullRequest(
	ctx context.Context,
	cfg *entities.ReleaseConfig,
	release *entities.CurrentRelease,
	repo entities.DownstreamRepo,
	branch string,
) error {
	hosting, hosted, err := it.hosting.Resolve(repo.URL)
	if err != nil {
		return err
	}

	pr, err := hosting.CreatePullRequest(ctx, hosted, entities.PullRequestInput{
		SourceBranch: branch,
		TargetBranch: repo.Branch,
		Title:        fmt.Sprintf("Update %s to %s", cfg.ProductName(), release.Version()),
		Description:  release.Changelog(),
	})
	if err != nil {
		return entities.NewReleaseError(
			entities.ErrNetwork, nil, fmt.Sprintf("failed to open a pull request on %s", repo.URL),
		).WithCause(err)
	}
	logger.Infof("[%s] Opened pull request #%d: %s", hosting.Name(), pr.ID, pr.URL)
	return nil
}

// selectRepos returns every repo, or only the one at rawIndex when it is set.
func selectRepos(repos []entities.DownstreamRepo, rawIndex string) ([]indexedRepo, error) {
	if strings.TrimSpace(rawIndex) == "" {
		selected := make([]indexedRepo, 0, len(repos))
		for i, repo := range repos {
			selected = append(selected, indexedRepo{index: i, repo: repo})
		}
		return selected, nil
	}

	index, err := strconv.Atoi(strings.TrimSpace(rawIndex))
	if err != nil {
		return nil, entities.NewConfigError(fmt.Sprintf("downstream_repo_index:%s not a valid integer", rawIndex))
	}
	maxIndex := len(repos) - 1
	if index < 0 {
		return nil, entities.NewConfigError(fmt.Sprintf("index out of bounds downstream_repo_index: %d < 0", index))
	}
	if index > maxIndex {
		return nil, entities.NewConfigError(fmt.Sprintf(
			"index out of bounds downstream_repo_index: %d > %d", index, maxIndex,
		))
	}
	return []indexedRepo{{index: index, repo: repos[index]}}, nil
}
