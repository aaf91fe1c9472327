package entities

import (
	"sort"
	"strings"

	"golang.org/x/mod/semver"
)

// SortVersionsDescending orders tags newest first. Tags that are not versions sort after
// versions, in reverse lexical order.
func SortVersionsDescending(versions []string) {
	sort.SliceStable(versions, func(i, j int) bool {
		return newerTag(versions[i], versions[j])
	})
}

// SortReleasesDescending orders hosted releases newest first by tag name.
func SortReleasesDescending(releases []HostedRelease) {
	sort.SliceStable(releases, func(i, j int) bool {
		return newerTag(releases[i].TagName, releases[j].TagName)
	})
}

// LatestVersionTag returns the newest tag that is a semantic version, or "" if none is.
func LatestVersionTag(tags []string) string {
	sorted := append([]string(nil), tags...)
	SortVersionsDescending(sorted)
	if len(sorted) == 0 || !semver.IsValid(normalizeVersion(sorted[0])) {
		return ""
	}
	return sorted[0]
}

func newerTag(a, b string) bool {
	v1 := normalizeVersion(a)
	v2 := normalizeVersion(b)
	valid1, valid2 := semver.IsValid(v1), semver.IsValid(v2)
	switch {
	case valid1 && valid2:
		return semver.Compare(v1, v2) > 0
	case valid1 != valid2:
		return valid1
	default:
		return a > b
	}
}

func normalizeVersion(version string) string {
	if strings.HasPrefix(version, "v") {
		return version
	}
	return "v" + version
}
