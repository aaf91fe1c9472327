//go:build integration || unit || test

package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"github.com/rios0rios0/releaser/internal/domain/entities"
	testkit "github.com/rios0rios0/testkit/pkg/test"
)

// DownstreamRepoBuilder helps create test downstream repos with a fluent interface.
type DownstreamRepoBuilder struct {
	*testkit.BaseBuilder
	name            string
	url             string
	branch          string
	newBranchName   string
	releaseToGitHub bool
	fullFileSync    bool
	filesToCopy     []entities.CopyFile
	postCopiers     []entities.PostCopier
	builders        []entities.Builder
}

// NewDownstreamRepoBuilder creates a new downstream repo builder with sensible defaults.
func NewDownstreamRepoBuilder() *DownstreamRepoBuilder {
	return &DownstreamRepoBuilder{
		BaseBuilder: testkit.NewBaseBuilder(),
		name:        "sample",
		url:         "https://github.com/org/sample.git",
		branch:      "main",
	}
}

// WithName sets the clone directory name.
func (b *DownstreamRepoBuilder) WithName(name string) *DownstreamRepoBuilder {
	b.name = name
	return b
}

// WithURL sets the clone URL.
func (b *DownstreamRepoBuilder) WithURL(url string) *DownstreamRepoBuilder {
	b.url = url
	return b
}

// WithBranch sets the base branch.
func (b *DownstreamRepoBuilder) WithBranch(branch string) *DownstreamRepoBuilder {
	b.branch = branch
	return b
}

// WithNewBranchName switches the repo to the pull request flow.
func (b *DownstreamRepoBuilder) WithNewBranchName(template string) *DownstreamRepoBuilder {
	b.newBranchName = template
	return b
}

// WithReleaseToGitHub enables the hosted release after the tag push.
func (b *DownstreamRepoBuilder) WithReleaseToGitHub(enabled bool) *DownstreamRepoBuilder {
	b.releaseToGitHub = enabled
	return b
}

// WithFullFileSync mirrors the docs directory into the repo.
func (b *DownstreamRepoBuilder) WithFullFileSync(enabled bool) *DownstreamRepoBuilder {
	b.fullFileSync = enabled
	return b
}

// WithFileToCopy adds a file copied into the repo.
func (b *DownstreamRepoBuilder) WithFileToCopy(file entities.CopyFile) *DownstreamRepoBuilder {
	b.filesToCopy = append(b.filesToCopy, file)
	return b
}

// WithPostCopier adds a step run after copying.
func (b *DownstreamRepoBuilder) WithPostCopier(copier entities.PostCopier) *DownstreamRepoBuilder {
	b.postCopiers = append(b.postCopiers, copier)
	return b
}

// WithBuilder adds a build step.
func (b *DownstreamRepoBuilder) WithBuilder(builder entities.Builder) *DownstreamRepoBuilder {
	b.builders = append(b.builders, builder)
	return b
}

// Build creates the downstream repo (satisfies testkit.Builder interface).
func (b *DownstreamRepoBuilder) Build() interface{} {
	return b.BuildDownstreamRepo()
}

// BuildDownstreamRepo creates the downstream repo with a concrete return type.
func (b *DownstreamRepoBuilder) BuildDownstreamRepo() entities.DownstreamRepo {
	return entities.DownstreamRepo{
		Name:            b.name,
		URL:             b.url,
		Branch:          b.branch,
		NewBranchName:   b.newBranchName,
		ReleaseToGitHub: b.releaseToGitHub,
		FullFileSync:    b.fullFileSync,
		FilesToCopy:     append([]entities.CopyFile(nil), b.filesToCopy...),
		PostCopiers:     append([]entities.PostCopier(nil), b.postCopiers...),
		Builders:        append([]entities.Builder(nil), b.builders...),
	}
}

// Reset clears the builder state, allowing it to be reused.
func (b *DownstreamRepoBuilder) Reset() testkit.Builder {
	b.BaseBuilder.Reset()
	b.name = "sample"
	b.url = "https://github.com/org/sample.git"
	b.branch = "main"
	b.newBranchName = ""
	b.releaseToGitHub = false
	b.fullFileSync = false
	b.filesToCopy = nil
	b.postCopiers = nil
	b.builders = nil
	return b
}

// Clone creates a deep copy of the DownstreamRepoBuilder.
func (b *DownstreamRepoBuilder) Clone() testkit.Builder {
	return &DownstreamRepoBuilder{
		BaseBuilder:     b.BaseBuilder.Clone().(*testkit.BaseBuilder),
		name:            b.name,
		url:             b.url,
		branch:          b.branch,
		newBranchName:   b.newBranchName,
		releaseToGitHub: b.releaseToGitHub,
		fullFileSync:    b.fullFileSync,
		filesToCopy:     append([]entities.CopyFile(nil), b.filesToCopy...),
		postCopiers:     append([]entities.PostCopier(nil), b.postCopiers...),
		builders:        append([]entities.Builder(nil), b.builders...),
	}
}
