//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"
	"strings"

	"github.com/rios0rios0/releaser/internal/domain/repositories"
)

// StubProcessRepository implements repositories.ProcessRepository with canned outputs.
type StubProcessRepository struct {
	// Outputs maps a command line ("git version" or a shell command) to its output.
	Outputs map[string]string
	// ShellQueue, when not empty, answers RunShell calls in order before Outputs.
	ShellQueue []string
	Errors     map[string]error

	// MissingTools fail LookPath.
	MissingTools map[string]error

	Commands      []string
	ShellCommands []string
	LiveShells    []bool
}

var _ repositories.ProcessRepository = (*StubProcessRepository)(nil)

func (s *StubProcessRepository) Run(_ context.Context, _, name string, args ...string) (string, error) {
	line := strings.TrimSpace(name + " " + strings.Join(args, " "))
	s.Commands = append(s.Commands, line)
	return s.Outputs[line], s.Errors[line]
}

func (s *StubProcessRepository) RunShell(_ context.Context, _, command string, live bool) (string, error) {
	s.ShellCommands = append(s.ShellCommands, command)
	s.LiveShells = append(s.LiveShells, live)
	if err := s.Errors[command]; err != nil {
		return "", err
	}
	if len(s.ShellQueue) > 0 {
		output := s.ShellQueue[0]
		s.ShellQueue = s.ShellQueue[1:]
		return output, nil
	}
	return s.Outputs[command], nil
}

func (s *StubProcessRepository) LookPath(name string) (string, error) {
	if err, missing := s.MissingTools[name]; missing {
		return "", err
	}
	return "/usr/bin/" + name, nil
}
