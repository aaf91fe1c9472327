package github

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	gh "github.com/google/go-github/v66/github"
	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/releaser/internal/domain/entities"
	"github.com/rios0rios0/releaser/internal/domain/repositories"
)

const (
	providerName = "github"
	perPage      = 100
)

// GitHubHostingRepository implements repositories.HostingRepository for github.com
// and GitHub Enterprise.
type GitHubHostingRepository struct {
	client *gh.Client
}

// NewHostingRepository creates a GitHub client for token. An empty baseURL targets github.com,
// otherwise the Enterprise API at baseURL.
func NewHostingRepository(token, baseURL string) (repositories.HostingRepository, error) {
	client := gh.NewClient(nil).WithAuthToken(token)
	if baseURL != "" {
		uploadURL := strings.TrimSuffix(baseURL, "api/v3/")
		var err error
		if client, err = client.WithEnterpriseURLs(baseURL, uploadURL); err != nil {
			return nil, fmt.Errorf("invalid GitHub Enterprise URL %q: %w", baseURL, err)
		}
	}
	return &GitHubHostingRepository{client: client}, nil
}

func (p *GitHubHostingRepository) Name() string { return providerName }

func (p *GitHubHostingRepository) ListReleases(
	ctx context.Context,
	repo entities.HostedRepository,
) ([]entities.HostedRelease, error) {
	var allReleases []entities.HostedRelease
	opts := &gh.ListOptions{PerPage: perPage}

	for {
		releases, resp, err := p.client.Repositories.ListReleases(ctx, repo.Organization, repo.Name, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to list releases: %w", err)
		}
		traceResponse(resp)

		for _, release := range releases {
			allReleases = append(allReleases, entities.HostedRelease{
				TagName: release.GetTagName(),
				Name:    release.GetName(),
				Body:    release.GetBody(),
			})
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return allReleases, nil
}

func (p *GitHubHostingRepository) CreateRelease(
	ctx context.Context,
	repo entities.HostedRepository,
	input entities.ReleaseInput,
) error {
	_, resp, err := p.client.Repositories.CreateRelease(ctx, repo.Organization, repo.Name, &gh.RepositoryRelease{
		TagName: &input.TagName,
		Name:    &input.Name,
		Body:    &input.Body,
	})
	if err != nil {
		return fmt.Errorf("failed to create release %s: %w", input.TagName, err)
	}
	traceResponse(resp)
	return nil
}

func (p *GitHubHostingRepository) UploadReleaseAsset(
	ctx context.Context,
	repo entities.HostedRepository,
	tag string,
	asset entities.ReleaseAsset,
) error {
	release, _, err := p.client.Repositories.GetReleaseByTag(ctx, repo.Organization, repo.Name, tag)
	if err != nil {
		return fmt.Errorf("failed to find release %s: %w", tag, err)
	}

	file, err := os.Open(asset.Path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", asset.Path, err)
	}
	defer file.Close()

	_, resp, err := p.client.Repositories.UploadReleaseAsset(
		ctx, repo.Organization, repo.Name, release.GetID(),
		&gh.UploadOptions{Name: filepath.Base(asset.Path), MediaType: asset.ContentType},
		file,
	)
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", asset.Path, err)
	}
	traceResponse(resp)
	return nil
}

func (p *GitHubHostingRepository) CreatePullRequest(
	ctx context.Context,
	repo entities.HostedRepository,
	input entities.PullRequestInput,
) (*entities.PullRequest, error) {
	sourceBranch := strings.TrimPrefix(input.SourceBranch, "refs/heads/")
	targetBranch := strings.TrimPrefix(input.TargetBranch, "refs/heads/")

	maintainerCanModify := true
	pr, resp, err := p.client.PullRequests.Create(
		ctx, repo.Organization, repo.Name,
		&gh.NewPullRequest{
			Title:               &input.Title,
			Head:                &sourceBranch,
			Base:                &targetBranch,
			Body:                &input.Description,
			MaintainerCanModify: &maintainerCanModify,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create pull request: %w", err)
	}
	traceResponse(resp)

	return &entities.PullRequest{
		ID:     pr.GetNumber(),
		Title:  pr.GetTitle(),
		URL:    pr.GetHTMLURL(),
		Status: pr.GetState(),
	}, nil
}

func (p *GitHubHostingRepository) ListCollaborators(
	ctx context.Context,
	repo entities.HostedRepository,
) ([]string, error) {
	var logins []string
	opts := &gh.ListCollaboratorsOptions{ListOptions: gh.ListOptions{PerPage: perPage}}

	for {
		users, resp, err := p.client.Repositories.ListCollaborators(ctx, repo.Organization, repo.Name, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to list collaborators: %w", err)
		}
		traceResponse(resp)

		for _, user := range users {
			logins = append(logins, user.GetLogin())
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return logins, nil
}

func traceResponse(resp *gh.Response) {
	if resp == nil || resp.Response == nil || resp.Request == nil {
		return
	}
	logger.Tracef("[github] %s %s: %s", resp.Request.Method, resp.Request.URL, resp.Status)
}
