package entities

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	bulletRegex      = regexp.MustCompile(`^\s*\*\s+.*$`)
	punctuationRegex = regexp.MustCompile(`[!,?:.]$`)
	lineBreakRegex   = regexp.MustCompile(`\r?\n`)
)

// ValidateSemver checks that entries (newest first) share one prefix and form a
// gap-free semantic version sequence.
func ValidateSemver(entries []ChangelogEntry) error {
	if len(entries) == 0 {
		return NewReleaseError(ErrParse, ErrNoReleasesFound, "no releases to validate")
	}

	var newer *VersionHeader
	for _, entry := range entries {
		older, err := ParseVersionHeader(entry.Header)
		if err != nil {
			return err
		}

		if newer == nil {
			newer = &older
			continue
		}

		if older.Prefix != newer.Prefix {
			return NewReleaseError(ErrSemverOrder, ErrPrefixMismatch, fmt.Sprintf(
				"version %s does not start with extracted prefix '%s'", entry.Header, newer.Prefix,
			))
		}

		switch comparison := newer.Version.CompareTriple(older.Version); {
		case comparison < 0:
			return NewReleaseError(ErrSemverOrder, ErrOutOfOrder, fmt.Sprintf(
				"semver releases out of order: %s should be smaller than %s", older.Raw, newer.Raw,
			))
		case comparison == 0:
			if older.Suffix == "" {
				return NewReleaseError(ErrSemverOrder, ErrDuplicateReleaseNoSuffix, fmt.Sprintf(
					"2 semver releases in a row without a suffix (like -beta, -rc1, etc...) is not allowed: %s and %s",
					newer.Raw, older.Raw,
				))
			}
		default:
			if !newer.Version.IsNextOf(older.Version) {
				return NewReleaseError(ErrSemverOrder, ErrInvalidIncrement, fmt.Sprintf(
					"%s version increment error - comparing %s to %s does not pass semver validation",
					incrementKind(newer.Version, older.Version), newer.Raw, older.Raw,
				))
			}
		}

		newer = &older
	}

	return nil
}

func incrementKind(newer, older SemanticVersion) BumpKind {
	switch {
	case newer.Major != older.Major:
		return BumpMajor
	case newer.Minor != older.Minor:
		return BumpMinor
	default:
		return BumpPatch
	}
}

// ValidateEntry checks that every bullet in a release body ends with terminal
// punctuation, either on its own line or on the last line of its continuation.
func ValidateEntry(body string) error {
	var pending string
	inProgress := false

	for _, line := range lineBreakRegex.Split(strings.TrimRight(body, "\n"), -1) {
		switch {
		case bulletRegex.MatchString(line):
			if inProgress {
				return punctuationError(pending)
			}
			if !punctuationRegex.MatchString(line) {
				pending, inProgress = line, true
			}
		case inProgress:
			if punctuationRegex.MatchString(line) {
				pending, inProgress = "", false
			} else {
				pending = line
			}
		}
	}

	if inProgress {
		return punctuationError(pending)
	}
	return nil
}

func punctuationError(line string) error {
	return NewReleaseError(ErrPunctuation, ErrUnterminatedBullet, fmt.Sprintf(
		"'%s' is invalid, bulleted points should end in punctuation and no trailing line whitespace", line,
	))
}

// Validate runs the duplicate, semver and punctuation checks over the whole changelog.
func (c *Changelog) Validate() error {
	if len(c.Duplicates) > 0 {
		return NewReleaseError(ErrSemverOrder, ErrDuplicateHeader, fmt.Sprintf(
			"release header(s) %s appear more than once", strings.Join(c.Duplicates, ", "),
		)).WithHint("merge the duplicated entries into one")
	}

	if err := ValidateSemver(c.Entries); err != nil {
		return err
	}

	for _, entry := range c.Entries {
		if err := ValidateEntry(entry.Body); err != nil {
			return fmt.Errorf("release %s: %w", entry.Header, err)
		}
	}
	return nil
}

// ValidateChangelog parses and validates content, returning the newest release.
func ValidateChangelog(content string) (*CurrentRelease, error) {
	changelog, err := ParseChangelog(content)
	if err != nil {
		return nil, err
	}
	if err = changelog.Validate(); err != nil {
		return nil, err
	}
	return changelog.CurrentRelease(), nil
}
