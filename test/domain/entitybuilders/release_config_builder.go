//go:build integration || unit || test

package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"github.com/rios0rios0/releaser/internal/domain/entities"
	testkit "github.com/rios0rios0/testkit/pkg/test"
)

// ReleaseConfigBuilder helps create test run configurations with a fluent interface.
type ReleaseConfigBuilder struct {
	*testkit.BaseBuilder
	rootDir         string
	productName     string
	checklist       []string
	releaseToGitHub bool
	useGitFlow      bool
	assets          []entities.ReleaseAsset
	builder         entities.Builder
	publisher       entities.Publisher
	waiter          entities.Waiter
	updater         entities.VersionUpdater
	validations     []entities.Validation
	downstreamRepos []entities.DownstreamRepo
}

// NewReleaseConfigBuilder creates a new run configuration builder with sensible defaults.
func NewReleaseConfigBuilder() *ReleaseConfigBuilder {
	return &ReleaseConfigBuilder{
		BaseBuilder: testkit.NewBaseBuilder(),
		rootDir:     "/project",
		productName: "demo",
	}
}

// WithRootDir sets the project root.
func (b *ReleaseConfigBuilder) WithRootDir(dir string) *ReleaseConfigBuilder {
	b.rootDir = dir
	return b
}

// WithProductName sets the product name.
func (b *ReleaseConfigBuilder) WithProductName(name string) *ReleaseConfigBuilder {
	b.productName = name
	return b
}

// WithChecklist sets the prerelease checklist items.
func (b *ReleaseConfigBuilder) WithChecklist(items ...string) *ReleaseConfigBuilder {
	b.checklist = items
	return b
}

// WithReleaseToGitHub enables the hosted release of the root project.
func (b *ReleaseConfigBuilder) WithReleaseToGitHub(enabled bool) *ReleaseConfigBuilder {
	b.releaseToGitHub = enabled
	return b
}

// WithGitFlow enables the git flow branch rules.
func (b *ReleaseConfigBuilder) WithGitFlow(enabled bool) *ReleaseConfigBuilder {
	b.useGitFlow = enabled
	return b
}

// WithAsset adds a release asset.
func (b *ReleaseConfigBuilder) WithAsset(asset entities.ReleaseAsset) *ReleaseConfigBuilder {
	b.assets = append(b.assets, asset)
	return b
}

// WithBuilder sets the build step.
func (b *ReleaseConfigBuilder) WithBuilder(builder entities.Builder) *ReleaseConfigBuilder {
	b.builder = builder
	return b
}

// WithPublisher sets the publish step.
func (b *ReleaseConfigBuilder) WithPublisher(publisher entities.Publisher) *ReleaseConfigBuilder {
	b.publisher = publisher
	return b
}

// WithWaiter sets the wait step.
func (b *ReleaseConfigBuilder) WithWaiter(waiter entities.Waiter) *ReleaseConfigBuilder {
	b.waiter = waiter
	return b
}

// WithVersionUpdater sets the version update step.
func (b *ReleaseConfigBuilder) WithVersionUpdater(updater entities.VersionUpdater) *ReleaseConfigBuilder {
	b.updater = updater
	return b
}

// WithValidation adds a custom validation.
func (b *ReleaseConfigBuilder) WithValidation(validation entities.Validation) *ReleaseConfigBuilder {
	b.validations = append(b.validations, validation)
	return b
}

// WithDownstreamRepo adds a downstream repo.
func (b *ReleaseConfigBuilder) WithDownstreamRepo(repo entities.DownstreamRepo) *ReleaseConfigBuilder {
	b.downstreamRepos = append(b.downstreamRepos, repo)
	return b
}

// Build creates the run configuration (satisfies testkit.Builder interface).
func (b *ReleaseConfigBuilder) Build() interface{} {
	return b.BuildReleaseConfig()
}

// BuildReleaseConfig creates the run configuration with a concrete return type.
func (b *ReleaseConfigBuilder) BuildReleaseConfig() *entities.ReleaseConfig {
	return &entities.ReleaseConfig{
		Settings: &entities.Settings{
			ProductName:              b.productName,
			PrereleaseChecklistItems: append([]string(nil), b.checklist...),
			ReleaseToGitHub:          b.releaseToGitHub,
			UseGitFlow:               b.useGitFlow,
			MainBranch:               "master",
			DevelopBranch:            "develop",
			BaseDocsDir:              ".",
			ChangelogPath:            "CHANGELOG.md",
			ReleaseAssets:            append([]entities.ReleaseAsset(nil), b.assets...),
		},
		RootDir:         b.rootDir,
		Builder:         b.builder,
		Publisher:       b.publisher,
		Waiter:          b.waiter,
		VersionUpdater:  b.updater,
		Validations:     append([]entities.Validation(nil), b.validations...),
		DownstreamRepos: append([]entities.DownstreamRepo(nil), b.downstreamRepos...),
	}
}

// Reset clears the builder state, allowing it to be reused.
func (b *ReleaseConfigBuilder) Reset() testkit.Builder {
	b.BaseBuilder.Reset()
	b.rootDir = "/project"
	b.productName = "demo"
	b.checklist = nil
	b.releaseToGitHub = false
	b.useGitFlow = false
	b.assets = nil
	b.builder = nil
	b.publisher = nil
	b.waiter = nil
	b.updater = nil
	b.validations = nil
	b.downstreamRepos = nil
	return b
}

// Clone creates a deep copy of the ReleaseConfigBuilder.
func (b *ReleaseConfigBuilder) Clone() testkit.Builder {
	return &ReleaseConfigBuilder{
		BaseBuilder:     b.BaseBuilder.Clone().(*testkit.BaseBuilder),
		rootDir:         b.rootDir,
		productName:     b.productName,
		checklist:       append([]string(nil), b.checklist...),
		releaseToGitHub: b.releaseToGitHub,
		useGitFlow:      b.useGitFlow,
		assets:          append([]entities.ReleaseAsset(nil), b.assets...),
		builder:         b.builder,
		publisher:       b.publisher,
		waiter:          b.waiter,
		updater:         b.updater,
		validations:     append([]entities.Validation(nil), b.validations...),
		downstreamRepos: append([]entities.DownstreamRepo(nil), b.downstreamRepos...),
	}
}
