package repositories

import "context"

// ProcessRepository runs external commands.
type ProcessRepository interface {
	// Run executes name with args in dir and returns its standard output.
	Run(ctx context.Context, dir, name string, args ...string) (string, error)

	// RunShell executes a shell command line in dir. With live set, the combined
	// output is streamed line by line while the command runs.
	RunShell(ctx context.Context, dir, command string, live bool) (string, error)

	// LookPath reports the absolute path of an executable on PATH.
	LookPath(name string) (string, error)
}
