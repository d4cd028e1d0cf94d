package posture

import (
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/google/osv-scanner/pkg/models"
)

// RawCveFromOSV converts an OSV vulnerability record into the raw CVE
// item shape the normalizer consumes. Threat-intel enrichment delivers
// OSV documents per application; this adapter keeps that path on the
// same tolerant ingest contract as the native payload. It returns nil
// when the installed version is provably outside every affected range.
//
// An exact hit in the enumerated versions list is an absolute match;
// a range hit is heuristic.
func RawCveFromOSV(vuln models.Vulnerability, appName, appVendor, installedVersion string) map[string]interface{} {
	matchType := ""

	for _, affected := range vuln.Affected {
		for _, v := range affected.Versions {
			if v == installedVersion {
				matchType = "exact version match"
			}
		}
	}

	if matchType == "" {
		inRange := false
		for _, affected := range vuln.Affected {
			if versionInAffectedRanges(installedVersion, affected) {
				inRange = true
				break
			}
		}
		if !inRange {
			return nil
		}
		matchType = "heuristic range match"
	}

	raw := map[string]interface{}{
		"cveId":       vuln.ID,
		"description": firstNonEmpty(vuln.Summary, vuln.Details),
		"appName":     appName,
		"appVendor":   appVendor,
		"matchType":   matchType,
	}
	if matchType == "exact version match" {
		raw["absoluteMatch"] = true
	}

	for _, sev := range vuln.Severity {
		if sevType := string(sev.Type); sevType == "CVSS_V3" || sevType == "CVSS_V4" {
			raw["cvssVector"] = sev.Score
			break
		}
	}

	if !vuln.Published.IsZero() {
		raw["firstDetected"] = vuln.Published.UTC().Format(time.RFC3339)
	}
	if !vuln.Modified.IsZero() {
		raw["lastDetected"] = vuln.Modified.UTC().Format(time.RFC3339)
	}

	return raw
}

// versionInAffectedRanges checks semver/ecosystem ranges with both
// boundaries required: an introduced event alone is not enough to claim
// the version is affected, which keeps range gaps from producing false
// positives.
func versionInAffectedRanges(version string, affected models.Affected) bool {
	v, err := semver.NewVersion(version)
	if err != nil {
		return false
	}

	for _, vrange := range affected.Ranges {
		if vrange.Type != models.RangeEcosystem && vrange.Type != models.RangeSemVer {
			continue
		}

		var introduced, fixed, lastAffected *semver.Version
		for _, event := range vrange.Events {
			if event.Introduced != "" {
				if event.Introduced == "0" {
					introduced = semver.MustParse("0.0.0")
				} else if parsed, err := semver.NewVersion(event.Introduced); err == nil {
					introduced = parsed
				}
			}
			if event.Fixed != "" {
				if parsed, err := semver.NewVersion(event.Fixed); err == nil {
					fixed = parsed
				}
			}
			if event.LastAffected != "" {
				if parsed, err := semver.NewVersion(event.LastAffected); err == nil {
					lastAffected = parsed
				}
			}
		}

		if introduced == nil || (fixed == nil && lastAffected == nil) {
			continue
		}
		if v.LessThan(introduced) {
			continue
		}
		if fixed != nil && !v.LessThan(fixed) {
			continue
		}
		if lastAffected != nil && v.GreaterThan(lastAffected) {
			continue
		}
		return true
	}

	return false
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
