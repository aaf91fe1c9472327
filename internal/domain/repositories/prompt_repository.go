package repositories

import "context"

// PromptRepository talks to the operator.
type PromptRepository interface {
	// Ask prints question and returns the trimmed answer.
	Ask(question string) (string, error)

	// Confirm asks a (Y/n) question; only an explicit "n" declines.
	Confirm(question string) (bool, error)

	// Edit opens path in the operator's $EDITOR and waits for it to exit.
	Edit(ctx context.Context, path string) error
}
