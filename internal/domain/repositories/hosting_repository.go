package repositories

import (
	"context"

	"github.com/rios0rios0/releaser/internal/domain/entities"
)

// HostingRepository abstracts a code-hosting service (GitHub, GitLab) for one access token.
type HostingRepository interface {
	// Name returns the provider identifier (e.g. "github").
	Name() string

	ListReleases(ctx context.Context, repo entities.HostedRepository) ([]entities.HostedRelease, error)
	CreateRelease(ctx context.Context, repo entities.HostedRepository, input entities.ReleaseInput) error
	UploadReleaseAsset(ctx context.Context, repo entities.HostedRepository, tag string, asset entities.ReleaseAsset) error

	CreatePullRequest(
		ctx context.Context, repo entities.HostedRepository, input entities.PullRequestInput,
	) (*entities.PullRequest, error)

	// ListCollaborators doubles as a permission check: it fails without push access.
	ListCollaborators(ctx context.Context, repo entities.HostedRepository) ([]string, error)
}

// HostingResolver returns the hosting client responsible for a remote URL.
type HostingResolver interface {
	Resolve(rawURL string) (HostingRepository, entities.HostedRepository, error)
}
