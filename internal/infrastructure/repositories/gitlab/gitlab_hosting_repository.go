package gitlab

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	logger "github.com/sirupsen/logrus"
	gl "gitlab.com/gitlab-org/api/client-go"

	"github.com/rios0rios0/releaser/internal/domain/entities"
	"github.com/rios0rios0/releaser/internal/domain/repositories"
)

const (
	providerName = "gitlab"
	perPage      = 100
)

// GitLabHostingRepository implements repositories.HostingRepository for gitlab.com
// and self-managed GitLab instances.
type GitLabHostingRepository struct {
	client *gl.Client
}

// NewHostingRepository creates a GitLab client for token. An empty baseURL targets gitlab.com.
func NewHostingRepository(token, baseURL string) (repositories.HostingRepository, error) {
	var options []gl.ClientOptionFunc
	if baseURL != "" {
		options = append(options, gl.WithBaseURL(baseURL))
	}
	client, err := gl.NewClient(token, options...)
	if err != nil {
		return nil, fmt.Errorf("failed to create GitLab client: %w", err)
	}
	return &GitLabHostingRepository{client: client}, nil
}

func (p *GitLabHostingRepository) Name() string { return providerName }

func (p *GitLabHostingRepository) ListReleases(
	ctx context.Context,
	repo entities.HostedRepository,
) ([]entities.HostedRelease, error) {
	var allReleases []entities.HostedRelease
	opts := &gl.ListReleasesOptions{
		ListOptions: gl.ListOptions{PerPage: perPage},
	}

	for {
		releases, resp, err := p.client.Releases.ListReleases(repo.FullName(), opts, gl.WithContext(ctx))
		if err != nil {
			return nil, fmt.Errorf("failed to list releases: %w", err)
		}
		traceResponse(resp)

		for _, release := range releases {
			allReleases = append(allReleases, entities.HostedRelease{
				TagName: release.TagName,
				Name:    release.Name,
				Body:    release.Description,
			})
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return allReleases, nil
}

func (p *GitLabHostingRepository) CreateRelease(
	ctx context.Context,
	repo entities.HostedRepository,
	input entities.ReleaseInput,
) error {
	_, resp, err := p.client.Releases.CreateRelease(repo.FullName(), &gl.CreateReleaseOptions{
		Name:        gl.Ptr(input.Name),
		TagName:     gl.Ptr(input.TagName),
		Description: gl.Ptr(input.Body),
	}, gl.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("failed to create release %s: %w", input.TagName, err)
	}
	traceResponse(resp)
	return nil
}

// UploadReleaseAsset uploads the file to the project and links it from the release.
func (p *GitLabHostingRepository) UploadReleaseAsset(
	ctx context.Context,
	repo entities.HostedRepository,
	tag string,
	asset entities.ReleaseAsset,
) error {
	file, err := os.Open(asset.Path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", asset.Path, err)
	}
	defer file.Close()

	name := filepath.Base(asset.Path)
	uploaded, resp, err := p.client.ProjectMarkdownUploads.UploadProjectMarkdown(
		repo.FullName(), file, name, gl.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", asset.Path, err)
	}
	traceResponse(resp)

	linkURL := "https://" + repo.Domain + uploaded.FullPath
	_, resp, err = p.client.ReleaseLinks.CreateReleaseLink(repo.FullName(), tag, &gl.CreateReleaseLinkOptions{
		Name: gl.Ptr(name),
		URL:  gl.Ptr(linkURL),
	}, gl.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("failed to link %s to release %s: %w", name, tag, err)
	}
	traceResponse(resp)
	return nil
}

func (p *GitLabHostingRepository) CreatePullRequest(
	ctx context.Context,
	repo entities.HostedRepository,
	input entities.PullRequestInput,
) (*entities.PullRequest, error) {
	sourceBranch := strings.TrimPrefix(input.SourceBranch, "refs/heads/")
	targetBranch := strings.TrimPrefix(input.TargetBranch, "refs/heads/")

	mr, resp, err := p.client.MergeRequests.CreateMergeRequest(
		repo.FullName(),
		&gl.CreateMergeRequestOptions{
			Title:              gl.Ptr(input.Title),
			Description:        gl.Ptr(input.Description),
			SourceBranch:       gl.Ptr(sourceBranch),
			TargetBranch:       gl.Ptr(targetBranch),
			RemoveSourceBranch: gl.Ptr(true),
		},
		gl.WithContext(ctx),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create merge request: %w", err)
	}
	traceResponse(resp)

	return &entities.PullRequest{
		ID:     int(mr.IID),
		Title:  mr.Title,
		URL:    mr.WebURL,
		Status: mr.State,
	}, nil
}

func (p *GitLabHostingRepository) ListCollaborators(
	ctx context.Context,
	repo entities.HostedRepository,
) ([]string, error) {
	var usernames []string
	opts := &gl.ListProjectMembersOptions{
		ListOptions: gl.ListOptions{PerPage: perPage},
	}

	for {
		members, resp, err := p.client.ProjectMembers.ListAllProjectMembers(
			repo.FullName(), opts, gl.WithContext(ctx),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to list project members: %w", err)
		}
		traceResponse(resp)

		for _, member := range members {
			usernames = append(usernames, member.Username)
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return usernames, nil
}

func traceResponse(resp *gl.Response) {
	if resp == nil || resp.Response == nil || resp.Request == nil {
		return
	}
	logger.Tracef("[gitlab] %s %s: %s", resp.Request.Method, resp.Request.URL, resp.Status)
}
