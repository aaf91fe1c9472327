//go:build unit

package entities_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/releaser/internal/domain/entities"
)

func TestParseBumpKind(t *testing.T) {
	t.Parallel()

	t.Run("should accept the three release kinds", func(t *testing.T) {
		t.Parallel()

		for _, raw := range []string{"major", "minor", " patch\n"} {
			// when
			kind, ok := entities.ParseBumpKind(raw)

			// then
			assert.True(t, ok, raw)
			assert.NotEmpty(t, kind)
		}
	})

	t.Run("should reject anything else", func(t *testing.T) {
		t.Parallel()

		for _, raw := range []string{"", "Major", "m", "huge"} {
			// when
			_, ok := entities.ParseBumpKind(raw)

			// then
			assert.False(t, ok, raw)
		}
	})
}

func TestSemanticVersion(t *testing.T) {
	t.Parallel()

	t.Run("should render the canonical form with its prerelease", func(t *testing.T) {
		t.Parallel()

		// given
		version := entities.SemanticVersion{Major: 1, Minor: 2, Patch: 3, Prerelease: "beta.1"}

		// when
		rendered := version.String()

		// then
		assert.Equal(t, "1.2.3-beta.1", rendered)
	})

	t.Run("should bump each component and reset the lower ones", func(t *testing.T) {
		t.Parallel()

		// given
		version := entities.SemanticVersion{Major: 1, Minor: 4, Patch: 7, Prerelease: "rc1"}

		// when / then
		assert.Equal(t, "2.0.0", version.Bump(entities.BumpMajor).String())
		assert.Equal(t, "1.5.0", version.Bump(entities.BumpMinor).String())
		assert.Equal(t, "1.4.8", version.Bump(entities.BumpPatch).String())
	})

	t.Run("should ignore the prerelease when comparing", func(t *testing.T) {
		t.Parallel()

		// given
		beta := entities.SemanticVersion{Major: 1, Minor: 1, Patch: 1, Prerelease: "beta"}
		final := entities.SemanticVersion{Major: 1, Minor: 1, Patch: 1}

		// when / then
		assert.Equal(t, 0, beta.CompareTriple(final))
		assert.Equal(t, 1, entities.SemanticVersion{Major: 2}.CompareTriple(final))
		assert.Equal(t, -1, entities.SemanticVersion{Major: 1, Minor: 1}.CompareTriple(final))
	})

	t.Run("should only accept single step increments as next versions", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			newer, older entities.SemanticVersion
			expected     bool
		}{
			{entities.SemanticVersion{Major: 1, Patch: 1}, entities.SemanticVersion{Major: 1}, true},
			{entities.SemanticVersion{Major: 1, Minor: 1}, entities.SemanticVersion{Major: 1, Patch: 1}, true},
			{entities.SemanticVersion{Major: 2}, entities.SemanticVersion{Major: 1, Minor: 1, Patch: 1}, true},
			{entities.SemanticVersion{Major: 1, Patch: 2}, entities.SemanticVersion{Major: 1}, false},
			{entities.SemanticVersion{Major: 1, Minor: 2}, entities.SemanticVersion{Major: 1}, false},
			{entities.SemanticVersion{Major: 1, Minor: 1, Patch: 1}, entities.SemanticVersion{Major: 1}, false},
			{entities.SemanticVersion{Major: 2, Patch: 2}, entities.SemanticVersion{Major: 1}, false},
		}

		for _, test := range tests {
			// when
			result := test.newer.IsNextOf(test.older)

			// then
			assert.Equal(t, test.expected, result, "%s after %s", test.newer, test.older)
		}
	})
}

func TestParseVersionHeader(t *testing.T) {
	t.Parallel()

	t.Run("should split prefix, version and suffix", func(t *testing.T) {
		t.Parallel()

		// when
		header, err := entities.ParseVersionHeader("v1.1.1-beta")

		// then
		require.NoError(t, err)
		assert.Equal(t, "v", header.Prefix)
		assert.Equal(t, "-beta", header.Suffix)
		assert.Equal(t, "beta", header.Version.Prerelease)
		assert.Equal(t, uint64(1), header.Version.Major)
		assert.Equal(t, "v1.1.1-beta", header.Raw)
	})

	t.Run("should keep long prefixes", func(t *testing.T) {
		t.Parallel()

		// when
		header, err := entities.ParseVersionHeader("------------1.1.1")

		// then
		require.NoError(t, err)
		assert.Equal(t, "------------", header.Prefix)
		assert.Empty(t, header.Suffix)
	})

	t.Run("should fail when the header has no version", func(t *testing.T) {
		t.Parallel()

		// when
		_, err := entities.ParseVersionHeader("Unreleased")

		// then
		require.Error(t, err)
		assert.ErrorIs(t, err, entities.ErrSemverOrder)
	})
}

func TestBumpHeader(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		header   string
		kind     entities.BumpKind
		expected string
	}{
		{name: "should bump a patch and keep the prefix", header: "v1.0.1", kind: entities.BumpPatch, expected: "v1.0.2"},
		{name: "should drop the prerelease on a minor bump", header: "1.2.3-rc.1", kind: entities.BumpMinor, expected: "1.3.0"},
		{name: "should bump a major with a word prefix", header: "version2.9.9", kind: entities.BumpMajor, expected: "version3.0.0"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			// when
			bumped, err := entities.BumpHeader(test.header, test.kind)

			// then
			require.NoError(t, err)
			assert.Equal(t, test.expected, bumped)
		})
	}

	t.Run("should fail on a header without a version", func(t *testing.T) {
		t.Parallel()

		// when
		_, err := entities.BumpHeader("next", entities.BumpPatch)

		// then
		assert.ErrorIs(t, err, entities.ErrSemverOrder)
	})
}
