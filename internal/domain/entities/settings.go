package entities

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	envPrefix = "RELEASER"

	defaultBaseDocsDir   = "."
	defaultChangelogPath = "CHANGELOG.md"
	defaultMainBranch    = "master"
	defaultDevelopBranch = "develop"
	defaultWaitInterval  = 30
)

// requiredKeys must be present in every configuration file.
var requiredKeys = []string{
	"product_name",
	"prerelease_checklist_items",
	"build_command",
	"publish_to_package_manager_command",
	"wait_for_package_manager_command",
	"release_to_github",
}

// ConfigFileNames are the names searched for, in order, in each config location.
var ConfigFileNames = []string{
	".releaser.yaml",
	".releaser.yml",
	"releaser.yaml",
	"releaser.yml",
}

// ReleaseAsset is a file uploaded to the hosted release of the root project.
type ReleaseAsset struct {
	Path        string `mapstructure:"path"         yaml:"path"`
	ContentType string `mapstructure:"content_type" yaml:"content_type"`
}

// DownstreamRepoSettings is the configured form of a DownstreamRepo.
type DownstreamRepoSettings struct {
	Name             string     `mapstructure:"name"               yaml:"name"`
	URL              string     `mapstructure:"url"                yaml:"url"`
	Branch           string     `mapstructure:"branch"             yaml:"branch"`
	NewBranchName    string     `mapstructure:"new_branch_name"    yaml:"new_branch_name,omitempty"`
	ReleaseToGitHub  bool       `mapstructure:"release_to_github"  yaml:"release_to_github,omitempty"`
	FullFileSync     bool       `mapstructure:"full_file_sync"     yaml:"full_file_sync,omitempty"`
	FilesToCopy      []CopyFile `mapstructure:"files_to_copy"      yaml:"files_to_copy,omitempty"`
	PostCopyCommands []string   `mapstructure:"post_copy_commands" yaml:"post_copy_commands,omitempty"`
	BuildCommands    []string   `mapstructure:"build_commands"     yaml:"build_commands,omitempty"`
}

// Settings is the typed content of the configuration file. It is loaded once and never modified.
type Settings struct {
	ProductName                    string   `mapstructure:"product_name"                       yaml:"product_name"`
	PrereleaseChecklistItems       []string `mapstructure:"prerelease_checklist_items"         yaml:"prerelease_checklist_items"`
	BuildCommand                   string   `mapstructure:"build_command"                      yaml:"build_command"`
	PublishToPackageManagerCommand string   `mapstructure:"publish_to_package_manager_command" yaml:"publish_to_package_manager_command"`
	WaitForPackageManagerCommand   string   `mapstructure:"wait_for_package_manager_command"   yaml:"wait_for_package_manager_command"`
	ReleaseToGitHub                bool     `mapstructure:"release_to_github"                  yaml:"release_to_github"`

	UseGitFlow               bool                     `mapstructure:"use_git_flow"               yaml:"use_git_flow,omitempty"`
	MainBranch               string                   `mapstructure:"main_branch"                yaml:"main_branch,omitempty"`
	DevelopBranch            string                   `mapstructure:"develop_branch"             yaml:"develop_branch,omitempty"`
	BaseDocsDir              string                   `mapstructure:"base_docs_dir"              yaml:"base_docs_dir,omitempty"`
	ChangelogPath            string                   `mapstructure:"changelog_path"             yaml:"changelog_path,omitempty"`
	UpdateVersionCommand     string                   `mapstructure:"update_version_command"     yaml:"update_version_command,omitempty"`
	CustomValidationCommands []string                 `mapstructure:"custom_validation_commands" yaml:"custom_validation_commands,omitempty"`
	WaitIntervalSeconds      int                      `mapstructure:"wait_interval_seconds"      yaml:"wait_interval_seconds,omitempty"`
	ReleaseAssets            []ReleaseAsset           `mapstructure:"release_assets"             yaml:"release_assets,omitempty"`
	DownstreamRepos          []DownstreamRepoSettings `mapstructure:"downstream_repos"           yaml:"downstream_repos,omitempty"`
}

// settingComments are written above the matching keys by `releaser init`.
var settingComments = map[string]string{
	"product_name":                       "Name of the product, used in commit messages and pull request titles.",
	"prerelease_checklist_items":         "Items the person releasing must confirm. Required, but an empty list is ok.",
	"build_command":                      "Shell command that builds the project. {{.Version}} is the release version.",
	"publish_to_package_manager_command": "Shell command that publishes the built project to the package manager.",
	"wait_for_package_manager_command":   "Shell command polled until it prints something, once the release is visible.",
	"release_to_github":                  "Whether to create a hosted release for the root repository.",
}

// FindConfigFile searches dir, dir/.config and dir/configs for a configuration file.
func FindConfigFile(dir string) (string, error) {
	locations := []string{
		dir,
		filepath.Join(dir, ".config"),
		filepath.Join(dir, "configs"),
	}

	for _, loc := range locations {
		for _, name := range ConfigFileNames {
			p := filepath.Join(loc, name)
			if _, statErr := os.Stat(p); statErr == nil {
				return p, nil
			}
		}
	}

	return "", NewConfigError("config file not found in default locations").
		WithHint("run 'releaser init' to create a default " + ConfigFileNames[0])
}

// NewSettings loads, checks and freezes the configuration file at path.
// RELEASER_* environment variables override file values.
func NewSettings(path string) (*Settings, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist) {
			return nil, NewConfigError(fmt.Sprintf("config file %q not found", path)).
				WithHint("run 'releaser init' to create a default " + ConfigFileNames[0])
		}
		return nil, NewConfigError(fmt.Sprintf("failed to read config file %q", path)).WithCause(err)
	}

	for _, key := range requiredKeys {
		if !v.IsSet(key) {
			return nil, NewConfigError(fmt.Sprintf("no %s found in %s", key, path))
		}
	}

	if err := checkCommandConvention("", v.AllSettings()); err != nil {
		return nil, err
	}

	v.SetDefault("base_docs_dir", defaultBaseDocsDir)
	v.SetDefault("changelog_path", defaultChangelogPath)
	v.SetDefault("main_branch", defaultMainBranch)
	v.SetDefault("develop_branch", defaultDevelopBranch)
	v.SetDefault("wait_interval_seconds", defaultWaitInterval)

	var settings Settings
	if err := v.Unmarshal(&settings); err != nil {
		return nil, NewConfigError(fmt.Sprintf("failed to parse config file %q", path)).WithCause(err)
	}

	if err := settings.validate(); err != nil {
		return nil, err
	}

	logger.Debugf("[config] Loaded settings from %s", path)
	return &settings, nil
}

// checkCommandConvention enforces that keys ending in "_command" hold one command and
// keys ending in "_commands" hold a list of commands, recursing into downstream repos.
func checkCommandConvention(scope string, values map[string]any) error {
	for _, key := range slices.Sorted(maps.Keys(values)) {
		value := values[key]
		switch {
		case strings.HasSuffix(key, "_commands"):
			list, ok := value.([]any)
			if !ok {
				return NewConfigError(fmt.Sprintf("%s%s is not a list", scope, key))
			}
			for i, item := range list {
				if !isCommand(item) {
					return NewConfigError(fmt.Sprintf("%s%s[%d] is not a command", scope, key, i))
				}
			}
		case strings.HasSuffix(key, "_command"):
			if !isCommand(value) {
				return NewConfigError(fmt.Sprintf("%s%s is not a command", scope, key))
			}
		case key == "downstream_repos":
			repos, ok := value.([]any)
			if !ok {
				return NewConfigError("downstream_repos is not a list")
			}
			for i, repo := range repos {
				fields, isMap := toStringMap(repo)
				if !isMap {
					return NewConfigError(fmt.Sprintf("downstream_repos[%d] is not a downstream repo", i))
				}
				if err := checkCommandConvention(fmt.Sprintf("downstream_repos[%d].", i), fields); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func isCommand(value any) bool {
	command, ok := value.(string)
	return ok && strings.TrimSpace(command) != ""
}

func toStringMap(value any) (map[string]any, bool) {
	switch typed := value.(type) {
	case map[string]any:
		return typed, true
	case map[any]any:
		converted := make(map[string]any, len(typed))
		for k, v := range typed {
			converted[fmt.Sprint(k)] = v
		}
		return converted, true
	default:
		return nil, false
	}
}

func (s *Settings) validate() error {
	if strings.TrimSpace(s.ProductName) == "" {
		return NewConfigError("product_name must not be empty")
	}
	if s.WaitIntervalSeconds < 0 {
		return NewConfigError("wait_interval_seconds must not be negative")
	}

	names := make(map[string]bool, len(s.DownstreamRepos))
	for i, repo := range s.DownstreamRepos {
		if repo.Name == "" || repo.URL == "" || repo.Branch == "" {
			return NewConfigError(fmt.Sprintf("downstream_repos[%d] requires name, url and branch", i))
		}
		if names[repo.Name] {
			return NewConfigError(fmt.Sprintf("downstream_repos[%d] reuses the name %q", i, repo.Name))
		}
		names[repo.Name] = true

		for j, file := range repo.FilesToCopy {
			if file.SourceFile == "" || file.TargetName == "" {
				return NewConfigError(fmt.Sprintf(
					"downstream_repos[%d].files_to_copy[%d] requires source_file and target_name", i, j,
				))
			}
		}
	}

	for i, asset := range s.ReleaseAssets {
		if asset.Path == "" {
			return NewConfigError(fmt.Sprintf("release_assets[%d] requires a path", i))
		}
	}
	return nil
}

// ChangelogFile returns the changelog location for a project rooted at rootDir.
func (s *Settings) ChangelogFile(rootDir string) string {
	return filepath.Join(rootDir, s.BaseDocsDir, s.ChangelogPath)
}

// WaitInterval is the pause between two package-manager polls.
func (s *Settings) WaitInterval() time.Duration {
	return time.Duration(s.WaitIntervalSeconds) * time.Second
}

// NewDefaultSettings returns the configuration written by `releaser init`.
func NewDefaultSettings(productName string) *Settings {
	return &Settings{
		ProductName:                    productName,
		PrereleaseChecklistItems:       []string{},
		BuildCommand:                   `echo "build {{.Version}}"`,
		PublishToPackageManagerCommand: `echo "publish {{.Version}}"`,
		WaitForPackageManagerCommand:   `echo "{{.Version}}"`,
		ReleaseToGitHub:                true,
	}
}

// MarshalDocumented renders the settings as YAML with a comment above each required key.
func (s *Settings) MarshalDocumented() ([]byte, error) {
	var doc yaml.Node
	if err := doc.Encode(s); err != nil {
		return nil, fmt.Errorf("failed to encode settings: %w", err)
	}

	for i := 0; i+1 < len(doc.Content); i += 2 {
		if comment, ok := settingComments[doc.Content[i].Value]; ok {
			doc.Content[i].HeadComment = comment
		}
	}

	out, err := yaml.Marshal(&doc)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal settings: %w", err)
	}
	return out, nil
}
