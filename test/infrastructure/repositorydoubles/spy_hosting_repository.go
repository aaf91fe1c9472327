//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/releaser/internal/domain/entities"
	"github.com/rios0rios0/releaser/internal/domain/repositories"
)

// SpyHostingRepository implements repositories.HostingRepository as a configurable spy.
type SpyHostingRepository struct {
	// --- identity ---
	ProviderName string

	// --- ListReleases ---
	Releases        []entities.HostedRelease
	ListReleasesErr error

	// --- CreateRelease ---
	CreateReleaseErr error
	CreatedReleases  []entities.ReleaseInput

	// --- UploadReleaseAsset ---
	UploadErr      error
	UploadedAssets []entities.ReleaseAsset

	// --- CreatePullRequest ---
	CreatedPR   *entities.PullRequest
	CreatePRErr error
	PRInputs    []entities.PullRequestInput

	// --- ListCollaborators ---
	Collaborators     []string
	CollaboratorsErr  error
	CollaboratorRepos []entities.HostedRepository
}

var _ repositories.HostingRepository = (*SpyHostingRepository)(nil)

func (p *SpyHostingRepository) Name() string {
	if p.ProviderName == "" {
		return "spy"
	}
	return p.ProviderName
}

func (p *SpyHostingRepository) ListReleases(
	_ context.Context, _ entities.HostedRepository,
) ([]entities.HostedRelease, error) {
	return p.Releases, p.ListReleasesErr
}

func (p *SpyHostingRepository) CreateRelease(
	_ context.Context, _ entities.HostedRepository, input entities.ReleaseInput,
) error {
	p.CreatedReleases = append(p.CreatedReleases, input)
	return p.CreateReleaseErr
}

func (p *SpyHostingRepository) UploadReleaseAsset(
	_ context.Context, _ entities.HostedRepository, _ string, asset entities.ReleaseAsset,
) error {
	p.UploadedAssets = append(p.UploadedAssets, asset)
	return p.UploadErr
}

func (p *SpyHostingRepository) CreatePullRequest(
	_ context.Context, _ entities.HostedRepository, input entities.PullRequestInput,
) (*entities.PullRequest, error) {
	p.PRInputs = append(p.PRInputs, input)
	if p.CreatePRErr != nil {
		return nil, p.CreatePRErr
	}
	if p.CreatedPR != nil {
		return p.CreatedPR, nil
	}
	return &entities.PullRequest{ID: len(p.PRInputs), URL: "https://example.com/pr"}, nil
}

func (p *SpyHostingRepository) ListCollaborators(
	_ context.Context, repo entities.HostedRepository,
) ([]string, error) {
	p.CollaboratorRepos = append(p.CollaboratorRepos, repo)
	return p.Collaborators, p.CollaboratorsErr
}

// StubHostingResolver implements repositories.HostingResolver, handing out one hosting double.
type StubHostingResolver struct {
	Hosting      repositories.HostingRepository
	ResolveErr   error
	ResolvedURLs []string
}

var _ repositories.HostingResolver = (*StubHostingResolver)(nil)

func (r *StubHostingResolver) Resolve(
	rawURL string,
) (repositories.HostingRepository, entities.HostedRepository, error) {
	r.ResolvedURLs = append(r.ResolvedURLs, rawURL)
	if r.ResolveErr != nil {
		return nil, entities.HostedRepository{}, r.ResolveErr
	}
	repo, err := entities.ParseRepositoryURL(rawURL)
	if err != nil {
		return nil, entities.HostedRepository{}, err
	}
	return r.Hosting, repo, nil
}
