package util

import (
	"strings"

	"github.com/package-url/packageurl-go"
)

// AppPURL builds a generic package identity for an installed
// application from its vendor, name, and version. The identity is
// informational only; CVE matching runs on the normalized app name.
func AppPURL(vendor, name, version string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	purl := packageurl.NewPackageURL(
		packageurl.TypeGeneric,
		strings.ToLower(strings.TrimSpace(vendor)),
		strings.ToLower(name),
		strings.TrimSpace(version),
		nil,
		"",
	)
	return purl.ToString()
}
