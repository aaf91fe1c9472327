package terminal

import (
	"bufio"
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
	"github.com/rios0rios0/releaser/internal/infrastructure/output"
)

// TerminalPromptRepository asks questions on a terminal and opens $EDITOR.
type TerminalPromptRepository struct {
	in  *bufio.Reader
	out io.Writer
}

// NewTerminalPromptRepository creates a prompt bound to stdin and stdout.
func NewTerminalPromptRepository() repositories.PromptRepository {
	return NewTerminalPromptRepositoryWithIO(os.Stdin, os.Stdout)
}

// NewTerminalPromptRepositoryWithIO creates a prompt reading answers from in and writing questions to out.
func NewTerminalPromptRepositoryWithIO(in io.Reader, out io.Writer) *TerminalPromptRepository {
	return &TerminalPromptRepository{in: bufio.NewReader(in), out: out}
}

func (it *TerminalPromptRepository) Ask(question string) (string, error) {
	fmt.Fprintln(it.out, output.Prompt(question))

	answer, err := it.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && answer != "") {
		return "", entities.NewAbortedError("no answer given to: " + question).WithCause(err)
	}
	return strings.TrimSpace(answer), nil
}

func (it *TerminalPromptRepository) Confirm(question string) (bool, error) {
	answer, err := it.Ask(question + " (Y/n)")
	if err != nil {
		return false, err
	}
	return !strings.EqualFold(answer, "n"), nil
}

// Edit runs $EDITOR through the shell so editors configured with flags keep working.
func (it *TerminalPromptRepository) Edit(ctx context.Context, path string) error {
	editor := os.Getenv("EDITOR")
	if strings.TrimSpace(editor) == "" {
		return entities.NewConfigError("EDITOR is not set")
	}
	logger.Infof("exec: %s %s", editor, path)

	//nolint:gosec // the operator's own editor
	cmd := exec.CommandContext(ctx, "sh", "-c", editor+` "$1"`, "sh", path)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return entities.NewReleaseError(
			entities.ErrExternalCommand, nil, fmt.Sprintf("editor %q exited with an error", editor),
		).WithCause(err)
	}
	return nil
}
