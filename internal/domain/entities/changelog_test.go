//go:build unit

package entities_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/releaser/internal/domain/entities"
)

func TestParseChangelog(t *testing.T) {
	t.Parallel()

	t.Run("should split a dashed changelog and keep its title block", func(t *testing.T) {
		t.Parallel()

		// given
		content := "Demo release notes\n==================\n\n1.0.1\n-----\n* Fix.\n\n1.0.0\n-----\n* Initial release.\n"

		// when
		changelog, err := entities.ParseChangelog(content)

		// then
		require.NoError(t, err)
		assert.Equal(t, entities.FormatDashed, changelog.Format)
		assert.Equal(t, "Demo release notes\n==================\n\n", changelog.Preamble)
		require.Len(t, changelog.Entries, 2)
		assert.Equal(t, entities.ChangelogEntry{Header: "1.0.1", Body: "* Fix."}, changelog.Entries[0])
		assert.Equal(t, entities.ChangelogEntry{Header: "1.0.0", Body: "* Initial release."}, changelog.Entries[1])
	})

	t.Run("should read dated markdown headers", func(t *testing.T) {
		t.Parallel()

		// given
		content := "# Changelog\n\n## v1.2.0 - 2024-01-05\n* Added.\n\n## v1.1.0 | March 3rd, 2023\n* Changed.\n"

		// when
		changelog, err := entities.ParseChangelog(content)

		// then
		require.NoError(t, err)
		assert.Equal(t, entities.FormatMarkdown, changelog.Format)
		assert.Equal(t, "##", changelog.Heading)
		require.Len(t, changelog.Entries, 2)
		assert.Equal(t, "v1.2.0", changelog.Entries[0].Header)
		assert.Equal(t, "v1.1.0", changelog.Entries[1].Header)
		assert.Equal(t, "v1.2.0", changelog.CurrentRelease().Version())
		assert.Equal(t, "* Added.", changelog.CurrentRelease().Changelog())
	})

	t.Run("should split on markdown headers carrying text after the version", func(t *testing.T) {
		t.Parallel()

		// given
		content := "## 1.0.2 hotfix\n* Patch the patch.\n\n## 1.0.1 (2020-01-02)\n* Fix a bug.\n\n## 1.0.0\n* Initial release.\n"

		// when
		changelog, err := entities.ParseChangelog(content)

		// then
		require.NoError(t, err)
		require.Len(t, changelog.Entries, 3)
		assert.Equal(t, entities.ChangelogEntry{Header: "1.0.2", Body: "* Patch the patch."}, changelog.Entries[0])
		assert.Equal(t, entities.ChangelogEntry{Header: "1.0.1", Body: "* Fix a bug."}, changelog.Entries[1])
		assert.Equal(t, entities.ChangelogEntry{Header: "1.0.0", Body: "* Initial release."}, changelog.Entries[2])
	})

	t.Run("should remember a single hash heading", func(t *testing.T) {
		t.Parallel()

		// when
		changelog, err := entities.ParseChangelog("# 2.0.0\n* Breaking.\n")

		// then
		require.NoError(t, err)
		assert.Equal(t, "#", changelog.Heading)
	})

	t.Run("should keep the first position and last body of a duplicated header", func(t *testing.T) {
		t.Parallel()

		// given
		content := "## 1.0.1\n* A.\n\n## 1.0.0\n* B.\n\n## 1.0.1\n* C.\n"

		// when
		changelog, err := entities.ParseChangelog(content)

		// then
		require.NoError(t, err)
		require.Len(t, changelog.Entries, 2)
		assert.Equal(t, entities.ChangelogEntry{Header: "1.0.1", Body: "* C."}, changelog.Entries[0])
		assert.Equal(t, []string{"1.0.1"}, changelog.Duplicates)
	})

	t.Run("should fail when no header matches", func(t *testing.T) {
		t.Parallel()

		// when
		_, err := entities.ParseChangelog("# Changelog\n\nNothing released yet.\n")

		// then
		require.Error(t, err)
		assert.ErrorIs(t, err, entities.ErrParse)
		assert.ErrorIs(t, err, entities.ErrNoReleasesFound)
	})
}

func TestInsertReleaseEntry(t *testing.T) {
	t.Parallel()

	t.Run("should insert a markdown entry right after the title block", func(t *testing.T) {
		t.Parallel()

		// given
		content := "Demo\n====\n\n## 1.0.0\n* Initial release.\n"

		// when
		result := entities.InsertReleaseEntry(content, "1.0.1", "* Fix a bug.\n")

		// then
		assert.Equal(t, "Demo\n====\n\n## 1.0.1\n* Fix a bug.\n\n## 1.0.0\n* Initial release.\n", result)
	})

	t.Run("should keep the dashed grammar of the document", func(t *testing.T) {
		t.Parallel()

		// given
		content := "1.0.0\n-----\n* Initial release.\n"

		// when
		result := entities.InsertReleaseEntry(content, "1.1.0", "* Add a feature.")

		// then
		assert.Equal(t, "1.1.0\n-----\n* Add a feature.\n\n1.0.0\n-----\n* Initial release.\n", result)
	})

	t.Run("should reuse the heading level of the document", func(t *testing.T) {
		t.Parallel()

		// when
		result := entities.InsertReleaseEntry("# 1.0.0\n* Initial release.\n", "2.0.0", "* Break things.")

		// then
		assert.True(t, strings.HasPrefix(result, "# 2.0.0\n* Break things.\n\n# 1.0.0"))
	})

	t.Run("should append the first release after existing text", func(t *testing.T) {
		t.Parallel()

		// when
		result := entities.InsertReleaseEntry("# Changelog\n", "1.0.0", "* First.")

		// then
		assert.Equal(t, "# Changelog\n\n## 1.0.0\n* First.\n", result)
	})

	t.Run("should create an entry in an empty document", func(t *testing.T) {
		t.Parallel()

		// when
		result := entities.InsertReleaseEntry("", "0.1.0", "* First.\n\n")

		// then
		assert.Equal(t, "## 0.1.0\n* First.\n", result)
	})

	t.Run("should produce a changelog that still validates", func(t *testing.T) {
		t.Parallel()

		// given
		content := "## 1.0.0\n* Initial release.\n"

		// when
		result := entities.InsertReleaseEntry(content, "1.0.1", "* Fix a bug.")
		release, err := entities.ValidateChangelog(result)

		// then
		require.NoError(t, err)
		assert.Equal(t, "1.0.1", release.Version())
	})
}

func TestEditorTemplate(t *testing.T) {
	t.Parallel()

	t.Run("should comment out instructions, commits and the changelog", func(t *testing.T) {
		t.Parallel()

		// when
		text := entities.EditorTemplate("1.1.0", entities.BumpMinor, "v1.0.0",
			[]string{"Add feature", "Fix typo"}, "## 1.0.0\n* Initial release.\n")

		// then
		assert.Contains(t, text, "# Please enter a bulleted CHANGELOG list summarizing the changes for minor version 1.1.0.")
		assert.Contains(t, text, "# Changes since v1.0.0:")
		assert.Contains(t, text, "# Add feature\n# Fix typo\n")
		assert.Contains(t, text, "# ## 1.0.0\n# * Initial release.\n")
		assert.Empty(t, strings.TrimSpace(entities.ExtractEditedChanges(text)))
	})

	t.Run("should mention the first commit when there is no previous tag", func(t *testing.T) {
		t.Parallel()

		// when
		text := entities.EditorTemplate("0.0.1", entities.BumpPatch, "", nil, "")

		// then
		assert.Contains(t, text, "# Changes since the first commit:")
	})
}

func TestExtractEditedChanges(t *testing.T) {
	t.Parallel()

	t.Run("should keep only what the operator wrote", func(t *testing.T) {
		t.Parallel()

		// given
		template := entities.EditorTemplate("1.0.1", entities.BumpPatch, "1.0.0", []string{"Fix"}, "## 1.0.0\n\n* A.\n")
		edited := "* Fix a bug.\n* Add a #hashtag test." + template

		// when
		changes := entities.ExtractEditedChanges(edited)

		// then
		assert.Equal(t, "* Fix a bug.\n* Add a #hashtag test.", strings.TrimSpace(changes))
	})

	t.Run("should keep markdown sub headings that have no space after the hash", func(t *testing.T) {
		t.Parallel()

		// when
		changes := entities.ExtractEditedChanges("##Notes\n# dropped\n#\n* Kept.\n")

		// then
		assert.Equal(t, "##Notes\n* Kept.\n", changes)
	})
}

func TestRenderImportedChangelog(t *testing.T) {
	t.Parallel()

	t.Run("should render a dashed changelog newest first", func(t *testing.T) {
		t.Parallel()

		// given
		releases := []entities.HostedRelease{
			{TagName: "1.1.0", Body: "* Feature.\r\n"},
			{TagName: "1.0.0", Name: "1.0.0"},
		}

		// when
		result := entities.RenderImportedChangelog("Demo", releases)

		// then
		assert.Equal(t, "Demo release notes\n==================\n\n1.1.0\n-----\n* Feature.\n\n1.0.0\n-----\n", result)
	})

	t.Run("should parse back into the same releases", func(t *testing.T) {
		t.Parallel()

		// given
		releases := []entities.HostedRelease{
			{TagName: "v2.0.0", Body: "* Major."},
			{TagName: "v1.0.0", Body: "* Initial."},
		}

		// when
		changelog, err := entities.ParseChangelog(entities.RenderImportedChangelog("Demo", releases))

		// then
		require.NoError(t, err)
		require.Len(t, changelog.Entries, 2)
		assert.Equal(t, "v2.0.0", changelog.Entries[0].Header)
		assert.Equal(t, "* Initial.", changelog.Entries[1].Body)
	})
}
