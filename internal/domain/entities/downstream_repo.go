package entities

import (
	"fmt"
	"path/filepath"
)

// DownstreamReposDir is the folder, relative to the project root, downstream repos are cloned into.
const DownstreamReposDir = "downstream_repos"

// CopyFile copies SourceFile (relative to the project root) into TargetDir/TargetName
// of a downstream repo. An empty TargetDir is the repo root.
type CopyFile struct {
	SourceFile string `mapstructure:"source_file" yaml:"source_file"`
	TargetName string `mapstructure:"target_name" yaml:"target_name"`
	TargetDir  string `mapstructure:"target_dir"  yaml:"target_dir,omitempty"`
}

// DownstreamRepo is a secondary repository that receives each release.
type DownstreamRepo struct {
	// Name is only used for the clone directory under downstream_repos.
	Name string
	// URL is the clone URL, https or ssh.
	URL string
	// Branch is the branch new changes are based on.
	Branch string

	// NewBranchName, when set, routes the repo through the pull request flow.
	// It is a template rendered with the release version.
	NewBranchName   string
	ReleaseToGitHub bool
	FullFileSync    bool
	FilesToCopy     []CopyFile
	PostCopiers     []PostCopier
	Builders        []Builder
}

// IsBranchMode reports whether the repo gets a pull request instead of a tag.
func (r DownstreamRepo) IsBranchMode() bool {
	return r.NewBranchName != ""
}

// BranchName renders the feature branch name for a release.
func (r DownstreamRepo) BranchName(version string) (string, error) {
	return RenderTemplate(fmt.Sprintf("downstream %s new_branch_name", r.Name), r.NewBranchName, TemplateData{
		Version: version,
	})
}

// Dir is where the repo is cloned for a project rooted at rootDir.
func (r DownstreamRepo) Dir(rootDir string) string {
	return filepath.Join(rootDir, DownstreamReposDir, r.Name)
}
