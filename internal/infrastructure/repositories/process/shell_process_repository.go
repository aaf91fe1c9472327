package process

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/releaser/internal/domain/entities"
	"github.com/rios0rios0/releaser/internal/domain/repositories"
)

// ShellProcessRepository runs commands with os/exec. Shell command lines go through `sh -c`.
type ShellProcessRepository struct {
	out io.Writer
}

// NewShellProcessRepository creates a runner that streams live output to stdout.
func NewShellProcessRepository() repositories.ProcessRepository {
	return &ShellProcessRepository{out: os.Stdout}
}

// NewShellProcessRepositoryWithOutput creates a runner that streams live output to out.
func NewShellProcessRepositoryWithOutput(out io.Writer) *ShellProcessRepository {
	return &ShellProcessRepository{out: out}
}

func (it *ShellProcessRepository) Run(ctx context.Context, dir, name string, args ...string) (string, error) {
	commandLine := strings.TrimSpace(name + " " + strings.Join(args, " "))
	logger.Infof("exec:%s %s", dir, commandLine)

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return stdout.String(), commandError(commandLine, dir, stdout.String()+stderr.String(), err)
	}
	return stdout.String(), nil
}

func (it *ShellProcessRepository) RunShell(ctx context.Context, dir, command string, live bool) (string, error) {
	logger.Infof("exec:%s %s", dir, command)

	cmd := exec.CommandContext(ctx, "sh", "-c", command)
	cmd.Dir = dir

	if !live {
		output, err := cmd.CombinedOutput()
		if err != nil {
			return string(output), commandError(command, dir, string(output), err)
		}
		return string(output), nil
	}

	pipe, err := cmd.StdoutPipe()
	if err != nil {
		return "", fmt.Errorf("failed to attach to %q: %w", command, err)
	}
	cmd.Stderr = cmd.Stdout

	if err = cmd.Start(); err != nil {
		return "", commandError(command, dir, "", err)
	}

	collected, readErr := it.stream(pipe)
	if readErr != nil {
		// drain what is left so the child can exit before Wait
		_, _ = io.Copy(io.Discard, pipe)
	}

	if waitErr := cmd.Wait(); waitErr != nil {
		return collected, commandError(command, dir, collected, waitErr)
	}
	if readErr != nil {
		return collected, fmt.Errorf("failed to stream the output of %q: %w", command, readErr)
	}
	return collected, nil
}

// stream copies pipe line by line to the live output and returns everything read.
// Lines are not length bound.
func (it *ShellProcessRepository) stream(pipe io.Reader) (string, error) {
	var collected strings.Builder
	reader := bufio.NewReader(pipe)
	for {
		line, err := reader.ReadString('\n')
		if line != "" {
			collected.WriteString(line)
			if _, writeErr := io.WriteString(it.out, line); writeErr != nil {
				return collected.String(), writeErr
			}
		}
		if errors.Is(err, io.EOF) {
			return collected.String(), nil
		}
		if err != nil {
			return collected.String(), err
		}
	}
}

func (it *ShellProcessRepository) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}

func commandError(command, dir, output string, cause error) error {
	message := fmt.Sprintf("command %q failed in %s", command, dir)
	if trimmed := strings.TrimSpace(output); trimmed != "" {
		message += ":\n" + trimmed
	}
	return entities.NewReleaseError(entities.ErrExternalCommand, nil, message).WithCause(cause)
}
