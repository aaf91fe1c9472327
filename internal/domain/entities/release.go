package entities

// HostedRelease is a release as stored on the code-hosting service.
type HostedRelease struct {
	TagName string
	Name    string
	Body    string
}

// ReleaseInput describes a release to create.
type ReleaseInput struct {
	TagName string
	Name    string
	Body    string
}
