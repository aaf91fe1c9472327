package entities

import (
	"errors"
	"strings"
)

// Error kinds. Every failure returned by the release engine matches exactly one of these.
var (
	// ErrParse indicates that no changelog header grammar matched.
	ErrParse = errors.New("parse failure")

	// ErrSemverOrder indicates that changelog versions are not a valid semver sequence.
	ErrSemverOrder = errors.New("semver order failure")

	// ErrPunctuation indicates a malformed bullet inside a changelog entry.
	ErrPunctuation = errors.New("punctuation failure")

	// ErrRepoState indicates a dirty tree, wrong branch, out-of-sync branch or submodule drift.
	ErrRepoState = errors.New("repository state failure")

	// ErrExternalCommand indicates that a subprocess exited with a non-zero status.
	ErrExternalCommand = errors.New("external command failure")

	// ErrPermission indicates that the code-hosting service rejected the caller.
	ErrPermission = errors.New("permission failure")

	// ErrNetwork indicates that a code-hosting or registry call failed.
	ErrNetwork = errors.New("network failure")

	// ErrConfig indicates a missing or malformed configuration value.
	ErrConfig = errors.New("configuration failure")

	// ErrAborted indicates that the operator answered a confirmation negatively.
	ErrAborted = errors.New("aborted by operator")
)

// Failure reasons, finer grained than the kinds above.
var (
	ErrNoReleasesFound          = errors.New("no releases found")
	ErrPrefixMismatch           = errors.New("prefix mismatch")
	ErrOutOfOrder               = errors.New("releases out of order")
	ErrDuplicateReleaseNoSuffix = errors.New("duplicate release without suffix")
	ErrInvalidIncrement         = errors.New("invalid version increment")
	ErrDuplicateHeader          = errors.New("duplicate release header")
	ErrUnterminatedBullet       = errors.New("unterminated bullet")
)

// ReleaseError is the typed failure carried from any component up to the driver.
type ReleaseError struct {
	// Kind is one of the Err* kind sentinels (required).
	Kind error

	// Reason is one of the finer reason sentinels (optional).
	Reason error

	// Message is the human-readable description (required).
	Message string

	// Hint is remediation guidance printed after the message (optional).
	Hint string

	// Cause is the underlying error (optional).
	Cause error
}

// Error implements the error interface.
func (e *ReleaseError) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.Error())
	b.WriteString(": ")
	b.WriteString(e.Message)
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	if e.Hint != "" {
		b.WriteString("\n")
		b.WriteString(e.Hint)
	}
	return b.String()
}

// Unwrap exposes kind, reason and cause to errors.Is and errors.As.
func (e *ReleaseError) Unwrap() []error {
	errs := []error{e.Kind}
	if e.Reason != nil {
		errs = append(errs, e.Reason)
	}
	if e.Cause != nil {
		errs = append(errs, e.Cause)
	}
	return errs
}

// NewReleaseError creates a failure of the given kind and reason.
func NewReleaseError(kind, reason error, message string) *ReleaseError {
	return &ReleaseError{Kind: kind, Reason: reason, Message: message}
}

// WithHint returns the error with remediation guidance attached.
func (e *ReleaseError) WithHint(hint string) *ReleaseError {
	e.Hint = hint
	return e
}

// WithCause returns the error with an underlying cause attached.
func (e *ReleaseError) WithCause(cause error) *ReleaseError {
	e.Cause = cause
	return e
}

// NewConfigError creates an ErrConfig failure.
func NewConfigError(message string) *ReleaseError {
	return &ReleaseError{Kind: ErrConfig, Message: message}
}

// NewRepoStateError creates an ErrRepoState failure.
func NewRepoStateError(message string) *ReleaseError {
	return &ReleaseError{Kind: ErrRepoState, Message: message}
}

// NewAbortedError creates an ErrAborted failure.
func NewAbortedError(message string) *ReleaseError {
	return &ReleaseError{Kind: ErrAborted, Message: message}
}
