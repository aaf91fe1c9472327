package entities

import "context"

// Builder builds the project (or a downstream repo) in dir.
type Builder interface {
	Build(ctx context.Context, dir, version string) error
}

// Publisher pushes a built release to the package manager.
type Publisher interface {
	Publish(ctx context.Context, dir, version string) error
}

// Waiter blocks until the package manager reports the published version.
type Waiter interface {
	Wait(ctx context.Context, dir, version string) error
}

// VersionUpdater propagates a new version into project metadata files.
type VersionUpdater interface {
	UpdateVersion(ctx context.Context, dir, version string, kind BumpKind) error
}

// PostCopier runs in a downstream repo once release files were copied into it.
type PostCopier interface {
	PostCopy(ctx context.Context, dir, version string) error
}

// Validation is a project-specific check run before anything is released.
type Validation interface {
	Validate(ctx context.Context, dir string, release *CurrentRelease) error
}

// ReleaseConfig is the resolved, read-only configuration of one run.
type ReleaseConfig struct {
	Settings *Settings

	// RootDir is the absolute path of the project being released.
	RootDir string

	Builder        Builder
	Publisher      Publisher
	Waiter         Waiter
	VersionUpdater VersionUpdater
	Validations    []Validation

	DownstreamRepos []DownstreamRepo

	Verbose bool
	Trace   bool
}

// ProductName is shorthand for the configured product name.
func (c *ReleaseConfig) ProductName() string {
	return c.Settings.ProductName
}
