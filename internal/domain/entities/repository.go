package entities

import (
	"fmt"
	"strings"
)

const (
	publicGitHubDomain = "github.com"
	publicGitLabDomain = "gitlab.com"
)

// HostedRepository locates a repository on a code-hosting service.
type HostedRepository struct {
	URL          string
	Domain       string
	Organization string
	Name         string
}

// FullName is the "org/name" slug used by hosting APIs.
func (r HostedRepository) FullName() string {
	return r.Organization + "/" + r.Name
}

// IsPublicHost reports whether the repository lives on github.com or gitlab.com.
func (r HostedRepository) IsPublicHost() bool {
	return r.Domain == publicGitHubDomain || r.Domain == publicGitLabDomain
}

// ParseRepositoryURL parses https ("https://github.com/org/repo.git") and
// ssh ("git@github.com:org/repo.git") remotes.
func ParseRepositoryURL(rawURL string) (HostedRepository, error) {
	url := strings.TrimSpace(rawURL)

	var domain, path string
	switch {
	case strings.HasPrefix(url, "https://"), strings.HasPrefix(url, "http://"):
		rest := url[strings.Index(url, "://")+3:]
		domain, path, _ = strings.Cut(rest, "/")
		if at := strings.LastIndex(domain, "@"); at >= 0 {
			domain = domain[at+1:]
		}
	case strings.HasPrefix(url, "ssh://"):
		rest := strings.TrimPrefix(url, "ssh://")
		domain, path, _ = strings.Cut(rest, "/")
		if at := strings.LastIndex(domain, "@"); at >= 0 {
			domain = domain[at+1:]
		}
		domain, _, _ = strings.Cut(domain, ":")
	case strings.Contains(url, ":"):
		var host string
		host, path, _ = strings.Cut(url, ":")
		domain = host[strings.LastIndex(host, "@")+1:]
	default:
		return HostedRepository{}, NewConfigError(fmt.Sprintf("unsupported repository URL %q", rawURL))
	}

	path = strings.TrimSuffix(strings.Trim(path, "/"), ".git")
	slash := strings.LastIndex(path, "/")
	if domain == "" || slash <= 0 || slash == len(path)-1 {
		return HostedRepository{}, NewConfigError(fmt.Sprintf("unsupported repository URL %q", rawURL))
	}

	return HostedRepository{
		URL:          url,
		Domain:       domain,
		Organization: path[:slash],
		Name:         path[slash+1:],
	}, nil
}

// TokenEnvKey names the environment variable holding the access token for a host:
// GITHUB_TOKEN for github.com, GITLAB_TOKEN for gitlab.com and, for self-hosted
// instances, the uppercased domain with dots replaced, e.g. GITHUB_EXAMPLE_COM_GITHUB_TOKEN.
func TokenEnvKey(domain, provider string) string {
	suffix := strings.ToUpper(provider) + "_TOKEN"
	if domain == publicGitHubDomain || domain == publicGitLabDomain {
		return suffix
	}
	replacer := strings.NewReplacer(".", "_", "-", "_")
	return strings.ToUpper(replacer.Replace(domain)) + "_" + suffix
}
