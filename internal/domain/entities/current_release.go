package entities

// CurrentRelease is the newest changelog entry, carried as the unit of work through
// every release stage. It cannot be changed after construction.
type CurrentRelease struct {
	version   string
	changelog string
}

// NewCurrentRelease freezes a version and its release notes.
func NewCurrentRelease(version, changelog string) *CurrentRelease {
	return &CurrentRelease{version: version, changelog: changelog}
}

// Version is the release header text, e.g. "1.2.0" or "v1.2.0".
func (r *CurrentRelease) Version() string { return r.version }

// Changelog is the release body used for tag messages, release notes and pull requests.
func (r *CurrentRelease) Changelog() string { return r.changelog }
