package entities

import (
	"cmp"
	"fmt"
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// releaseRegex matches the numeric triple of a release header.
var releaseRegex = regexp.MustCompile(`\d+\.\d+\.\d+`)

// BumpKind classifies a release as major, minor or patch.
type BumpKind string

const (
	BumpMajor BumpKind = "major"
	BumpMinor BumpKind = "minor"
	BumpPatch BumpKind = "patch"
)

// ParseBumpKind accepts exactly "major", "minor" or "patch".
func ParseBumpKind(raw string) (BumpKind, bool) {
	switch kind := BumpKind(strings.TrimSpace(raw)); kind {
	case BumpMajor, BumpMinor, BumpPatch:
		return kind, true
	default:
		return "", false
	}
}

// SemanticVersion is an immutable major.minor.patch[-prerelease] value.
type SemanticVersion struct {
	Major      uint64
	Minor      uint64
	Patch      uint64
	Prerelease string
}

// String renders the version in canonical semver form.
func (v SemanticVersion) String() string {
	return semver.New(v.Major, v.Minor, v.Patch, v.Prerelease, "").String()
}

// CompareTriple orders two versions by (major, minor, patch) only.
func (v SemanticVersion) CompareTriple(other SemanticVersion) int {
	if c := cmp.Compare(v.Major, other.Major); c != 0 {
		return c
	}
	if c := cmp.Compare(v.Minor, other.Minor); c != 0 {
		return c
	}
	return cmp.Compare(v.Patch, other.Patch)
}

// Bump returns the next version for the given classification. The prerelease is dropped.
func (v SemanticVersion) Bump(kind BumpKind) SemanticVersion {
	switch kind {
	case BumpMajor:
		return SemanticVersion{Major: v.Major + 1}
	case BumpMinor:
		return SemanticVersion{Major: v.Major, Minor: v.Minor + 1}
	default:
		return SemanticVersion{Major: v.Major, Minor: v.Minor, Patch: v.Patch + 1}
	}
}

// IsNextOf reports whether v follows older by exactly one patch, minor or major step.
func (v SemanticVersion) IsNextOf(older SemanticVersion) bool {
	switch {
	case v.Major == older.Major && v.Minor == older.Minor:
		return v.Patch == older.Patch+1
	case v.Major == older.Major:
		return v.Minor == older.Minor+1 && v.Patch == 0
	default:
		return v.Major == older.Major+1 && v.Minor == 0 && v.Patch == 0
	}
}

// VersionHeader is a changelog header split around its first numeric triple,
// e.g. "v1.1.1-beta" is prefix "v", version 1.1.1 and suffix "-beta".
type VersionHeader struct {
	Raw     string
	Prefix  string
	Suffix  string
	Version SemanticVersion
}

// ParseVersionHeader extracts prefix, triple and suffix from a release header.
func ParseVersionHeader(header string) (VersionHeader, error) {
	loc := releaseRegex.FindStringIndex(header)
	if loc == nil {
		return VersionHeader{}, NewReleaseError(
			ErrSemverOrder, nil, fmt.Sprintf("header %q does not contain a major.minor.patch version", header),
		)
	}

	parsed, err := semver.StrictNewVersion(header[loc[0]:loc[1]])
	if err != nil {
		return VersionHeader{}, NewReleaseError(
			ErrSemverOrder, nil, fmt.Sprintf("header %q has an invalid version", header),
		).WithCause(err)
	}

	suffix := header[loc[1]:]
	return VersionHeader{
		Raw:    header,
		Prefix: header[:loc[0]],
		Suffix: suffix,
		Version: SemanticVersion{
			Major:      parsed.Major(),
			Minor:      parsed.Minor(),
			Patch:      parsed.Patch(),
			Prerelease: strings.TrimPrefix(suffix, "-"),
		},
	}, nil
}

// BumpHeader increments the version inside a header and keeps its prefix,
// so "v1.0.1" becomes "v1.0.2" for a patch release.
func BumpHeader(header string, kind BumpKind) (string, error) {
	parsed, err := ParseVersionHeader(header)
	if err != nil {
		return "", err
	}
	return parsed.Prefix + parsed.Version.Bump(kind).String(), nil
}
