package repositories

import (
	"fmt"
	"os"
	"slices"
	"strings"
	"sync"

	"github.com/rios0rios0/releaser/internal/domain/entities"
	domainRepos "github.com/rios0rios0/releaser/internal/domain/repositories"
)

const (
	githubProvider = "github"
	gitlabProvider = "gitlab"
)

// HostingFactory creates a HostingRepository for a token. An empty baseURL means the public host.
type HostingFactory func(token, baseURL string) (domainRepos.HostingRepository, error)

// HostingRegistry manages the registered code-hosting implementations and resolves
// remote URLs to a configured client.
type HostingRegistry struct {
	factories map[string]HostingFactory
	getenv    func(string) string

	mu      sync.Mutex
	clients map[string]domainRepos.HostingRepository
}

// NewHostingRegistry creates an empty registry reading tokens from the environment.
func NewHostingRegistry() *HostingRegistry {
	return NewHostingRegistryWithEnv(os.Getenv)
}

// NewHostingRegistryWithEnv creates an empty registry reading tokens through getenv.
func NewHostingRegistryWithEnv(getenv func(string) string) *HostingRegistry {
	return &HostingRegistry{
		factories: make(map[string]HostingFactory),
		getenv:    getenv,
		clients:   make(map[string]domainRepos.HostingRepository),
	}
}

// Register adds a factory under the given name (e.g. "github").
func (r *HostingRegistry) Register(name string, factory HostingFactory) {
	r.factories[name] = factory
}

// Get returns a client for the given provider name, token and base URL.
func (r *HostingRegistry) Get(name, token, baseURL string) (domainRepos.HostingRepository, error) {
	factory, ok := r.factories[name]
	if !ok {
		return nil, fmt.Errorf(
			"unknown hosting provider: %q, registered: %s", name, strings.Join(r.Names(), ", "),
		)
	}
	return factory(token, baseURL)
}

// Names returns the registered provider names, sorted.
func (r *HostingRegistry) Names() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Resolve parses rawURL, picks the provider from its domain and returns a client
// authenticated with the token of that host. Clients are reused per host.
func (r *HostingRegistry) Resolve(
	rawURL string,
) (domainRepos.HostingRepository, entities.HostedRepository, error) {
	repo, err := entities.ParseRepositoryURL(rawURL)
	if err != nil {
		return nil, entities.HostedRepository{}, err
	}

	provider := providerForDomain(repo.Domain)
	envKey := entities.TokenEnvKey(repo.Domain, provider)
	token := strings.TrimSpace(r.getenv(envKey))
	if token == "" {
		return nil, repo, entities.NewConfigError(fmt.Sprintf("%s is not set", envKey)).
			WithHint(fmt.Sprintf("export %s with a token allowed to push to %s", envKey, repo.FullName()))
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := provider + "@" + repo.Domain
	if client, ok := r.clients[key]; ok {
		return client, repo, nil
	}

	baseURL := ""
	if !repo.IsPublicHost() {
		baseURL = enterpriseBaseURL(provider, repo.Domain)
	}
	client, err := r.Get(provider, token, baseURL)
	if err != nil {
		return nil, repo, entities.NewConfigError(fmt.Sprintf("unable to create a %s client", provider)).WithCause(err)
	}
	r.clients[key] = client
	return client, repo, nil
}

func providerForDomain(domain string) string {
	if strings.Contains(domain, gitlabProvider) {
		return gitlabProvider
	}
	return githubProvider
}

func enterpriseBaseURL(provider, domain string) string {
	if provider == gitlabProvider {
		return "https://" + domain + "/api/v4"
	}
	return "https://" + domain + "/api/v3/"
}
