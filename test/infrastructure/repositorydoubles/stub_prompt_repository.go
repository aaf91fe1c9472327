//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"
	"fmt"

	"github.com/rios0rios0/releaser/internal/domain/repositories"
)

// StubPromptRepository implements repositories.PromptRepository with queued answers.
type StubPromptRepository struct {
	// Answers are returned by Ask in order; Ask fails once they run out.
	Answers []string
	// Confirmations are returned by Confirm in order; Confirm accepts once they run out.
	Confirmations []bool
	// EditFunc is called with the file path handed to Edit.
	EditFunc func(path string) error

	Questions   []string
	EditedPaths []string
}

var _ repositories.PromptRepository = (*StubPromptRepository)(nil)

func (s *StubPromptRepository) Ask(question string) (string, error) {
	s.Questions = append(s.Questions, question)
	if len(s.Answers) == 0 {
		return "", fmt.Errorf("no answer queued for %q", question)
	}
	answer := s.Answers[0]
	s.Answers = s.Answers[1:]
	return answer, nil
}

func (s *StubPromptRepository) Confirm(question string) (bool, error) {
	s.Questions = append(s.Questions, question)
	if len(s.Confirmations) == 0 {
		return true, nil
	}
	answer := s.Confirmations[0]
	s.Confirmations = s.Confirmations[1:]
	return answer, nil
}

func (s *StubPromptRepository) Edit(_ context.Context, path string) error {
	s.EditedPaths = append(s.EditedPaths, path)
	if s.EditFunc == nil {
		return nil
	}
	return s.EditFunc(path)
}
