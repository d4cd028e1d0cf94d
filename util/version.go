package util

import (
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"
	npm "github.com/aquasecurity/go-npm-version/pkg"
	pep440 "github.com/aquasecurity/go-pep440-version"
)

var versionPrefixPattern = regexp.MustCompile(`^.*?-v(\d+)`)

// CleanVersion removes branch prefixes from version strings
// Examples:
//   - "main-v12.0.1376-g7ac6f3" -> "12.0.1376-g7ac6f3"
//   - "develop-v2.3.4" -> "2.3.4"
//   - "v1.2.3" -> "v1.2.3" (unchanged)
func CleanVersion(version string) string {
	if version == "" {
		return version
	}
	if versionPrefixPattern.MatchString(version) {
		matches := versionPrefixPattern.FindStringSubmatch(version)
		if len(matches) > 1 {
			return versionPrefixPattern.ReplaceAllString(version, matches[1])
		}
	}
	return version
}

// IsVersionBehind reports whether current is strictly older than
// latest. It tries semver first, then npm and PEP 440 parsers for
// ecosystem version schemes semver rejects, and finally falls back to
// string inequality. Feeds the informational updateAvailable flag only.
func IsVersionBehind(current, latest string) bool {
	current = strings.TrimPrefix(strings.TrimSpace(CleanVersion(current)), "v")
	latest = strings.TrimPrefix(strings.TrimSpace(CleanVersion(latest)), "v")
	if current == "" || latest == "" {
		return false
	}

	if cv, err := semver.NewVersion(current); err == nil {
		if lv, err := semver.NewVersion(latest); err == nil {
			return cv.LessThan(lv)
		}
	}

	if cv, err := npm.NewVersion(current); err == nil {
		if lv, err := npm.NewVersion(latest); err == nil {
			return cv.LessThan(lv)
		}
	}

	if cv, err := pep440.Parse(current); err == nil {
		if lv, err := pep440.Parse(latest); err == nil {
			return cv.LessThan(lv)
		}
	}

	return current != latest
}
