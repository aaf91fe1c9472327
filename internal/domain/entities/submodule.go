package entities

// Submodule is one entry of a repository's .gitmodules.
type Submodule struct {
	Name string
	Path string
	URL  string
}
