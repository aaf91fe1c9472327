package entities

import (
	"fmt"
	"regexp"
	"strings"
)

// ChangelogFormat identifies the header grammar a changelog is written in.
type ChangelogFormat int

const (
	// FormatDashed is a version line followed by a dashed underline.
	FormatDashed ChangelogFormat = iota
	// FormatMarkdown is a "#" or "##" header containing the version.
	FormatMarkdown
)

const (
	dashedUnderline = "-----"
	defaultHeading  = "##"
)

// headerGrammar is one recognized release-header syntax. Group 1 is the header text.
type headerGrammar struct {
	format  ChangelogFormat
	pattern *regexp.Regexp
}

// headerGrammars are tried in priority order; the first with a match wins.
var headerGrammars = []headerGrammar{
	{
		format:  FormatDashed,
		pattern: regexp.MustCompile(`(?m)^(\S*?\d+\.\d+\.\d+\S*)[ \t]*\r?\n-{4,}[^\n]*`),
	},
	{
		format: FormatMarkdown,
		// anything after the version, such as a date or a label, belongs to the header line
		pattern: regexp.MustCompile(`(?m)^#{1,3}[ \t]*(\S*?\d+\.\d+\.\d+\S*)[^\n]*`),
	},
}

// ChangelogEntry is one release: the raw header text and the body up to the next header.
type ChangelogEntry struct {
	Header string
	Body   string
}

// Changelog is the ordered result of parsing a changelog document, newest first.
type Changelog struct {
	Entries []ChangelogEntry

	// Duplicates lists headers that appeared more than once. Each duplicate keeps
	// the position of its first occurrence and the body of its last.
	Duplicates []string

	// Format is the grammar that matched.
	Format ChangelogFormat

	// Heading is the run of "#" used by the first markdown header.
	Heading string

	// Preamble is the text before the first release header (title block).
	Preamble string
}

// Latest returns the newest entry. The changelog is never empty after a successful parse.
func (c *Changelog) Latest() ChangelogEntry {
	return c.Entries[0]
}

// CurrentRelease returns the newest entry as the unit of work for a release run.
func (c *Changelog) CurrentRelease() *CurrentRelease {
	latest := c.Latest()
	return NewCurrentRelease(latest.Header, latest.Body)
}

// ParseChangelog splits content into releases using the first header grammar that matches.
func ParseChangelog(content string) (*Changelog, error) {
	for _, grammar := range headerGrammars {
		matches := grammar.pattern.FindAllStringSubmatchIndex(content, -1)
		if len(matches) == 0 {
			continue
		}
		return splitEntries(content, grammar.format, matches), nil
	}

	return nil, NewReleaseError(
		ErrParse, ErrNoReleasesFound,
		"unable to find any releases in the changelog, please check that the formatting is correct",
	)
}

func splitEntries(content string, format ChangelogFormat, matches [][]int) *Changelog {
	changelog := &Changelog{
		Format:   format,
		Preamble: content[:matches[0][0]],
	}
	if format == FormatMarkdown {
		firstLine := content[matches[0][0]:matches[0][1]]
		changelog.Heading = firstLine[:len(firstLine)-len(strings.TrimLeft(firstLine, "#"))]
	}

	positions := make(map[string]int, len(matches))
	for i, match := range matches {
		header := content[match[2]:match[3]]
		end := len(content)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}
		body := strings.Trim(content[match[1]:end], "\r\n")

		if at, seen := positions[header]; seen {
			changelog.Entries[at].Body = body
			changelog.Duplicates = append(changelog.Duplicates, header)
			continue
		}
		positions[header] = len(changelog.Entries)
		changelog.Entries = append(changelog.Entries, ChangelogEntry{Header: header, Body: body})
	}

	return changelog
}

// InsertReleaseEntry places a new release at the top of the changelog, right after the
// title block, written in whichever grammar the document already uses. A document with
// no releases yet gets a markdown entry appended after its text.
func InsertReleaseEntry(content, version, changes string) string {
	changes = strings.Trim(changes, "\r\n")

	parsed, err := ParseChangelog(content)
	if err != nil {
		preamble := strings.TrimRight(content, "\r\n")
		if preamble != "" {
			preamble += "\n\n"
		}
		return preamble + renderEntry(FormatMarkdown, defaultHeading, version, changes) + "\n"
	}

	older := strings.TrimRight(content[len(parsed.Preamble):], "\r\n")
	heading := parsed.Heading
	if heading == "" {
		heading = defaultHeading
	}

	return parsed.Preamble + renderEntry(parsed.Format, heading, version, changes) + "\n\n" + older + "\n"
}

func renderEntry(format ChangelogFormat, heading, version, changes string) string {
	var header string
	if format == FormatDashed {
		header = version + "\n" + dashedUnderline
	} else {
		header = heading + " " + version
	}
	if changes == "" {
		return header
	}
	return header + "\n" + changes
}

// EditorTemplate builds the text handed to the operator's editor when adding a release:
// instructions, the commits since the previous tag and the current changelog, all commented out.
func EditorTemplate(version string, kind BumpKind, sinceTag string, commits []string, changelog string) string {
	var b strings.Builder
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "# Please enter a bulleted CHANGELOG list summarizing the changes for %s version %s.\n", kind, version)
	b.WriteString("# Lines starting with '# ' will be ignored.\n")
	b.WriteString("#\n")
	if sinceTag == "" {
		b.WriteString("# Changes since the first commit:\n")
	} else {
		fmt.Fprintf(&b, "# Changes since %s:\n", sinceTag)
	}
	b.WriteString("#\n")
	for _, commit := range commits {
		b.WriteString("# " + commit + "\n")
	}
	b.WriteString("#\n")
	for _, line := range strings.SplitAfter(changelog, "\n") {
		if line == "" {
			continue
		}
		b.WriteString("# " + line)
	}
	if !strings.HasSuffix(changelog, "\n") && changelog != "" {
		b.WriteString("\n")
	}
	return b.String()
}

// ExtractEditedChanges drops comment lines ("# ..." and bare "#") from edited editor text.
func ExtractEditedChanges(edited string) string {
	var kept []string
	for _, line := range strings.Split(edited, "\n") {
		trimmed := strings.TrimRight(line, "\r")
		if strings.HasPrefix(trimmed, "# ") || trimmed == "#" {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}

// RenderImportedChangelog writes hosted releases (newest first) as a dashed-grammar changelog.
func RenderImportedChangelog(productName string, releases []HostedRelease) string {
	title := productName + " release notes"

	var b strings.Builder
	b.WriteString(title + "\n")
	b.WriteString(strings.Repeat("=", len(title)) + "\n")
	for _, release := range releases {
		name := release.Name
		if name == "" {
			name = release.TagName
		}
		b.WriteString("\n" + name + "\n" + dashedUnderline + "\n")
		if body := strings.Trim(release.Body, "\r\n"); body != "" {
			b.WriteString(body + "\n")
		}
	}
	return b.String()
}
