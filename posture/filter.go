package posture

import (
	"sort"
	"strings"

	"github.com/secwatch/posture-backend/model"
	"github.com/secwatch/posture-backend/util"
)

// AppRiskLevel buckets an application for the risk-level facet: high
// when it carries five or more CVEs or is outdated, medium when it
// carries any CVE, low otherwise.
func AppRiskLevel(app model.NormalizedApp) model.AppRiskLevel {
	if app.CveCount >= 5 || app.Outdated {
		return model.AppRiskHigh
	}
	if app.CveCount >= 1 {
		return model.AppRiskMedium
	}
	return model.AppRiskLow
}

func appRiskRank(app model.NormalizedApp) int {
	switch AppRiskLevel(app) {
	case model.AppRiskHigh:
		return 3
	case model.AppRiskMedium:
		return 2
	}
	return 1
}

// SeverityRank orders severities for sorting: CRITICAL=4, HIGH=3,
// MEDIUM=2, everything else 1.
func SeverityRank(s model.Severity) int {
	switch s {
	case model.SeverityCritical:
		return 4
	case model.SeverityHigh:
		return 3
	case model.SeverityMedium:
		return 2
	}
	return 1
}

// FilterApps applies the facet state to an application list as a
// sequential AND-chain, then orders the result with a stable sort.
// The input slice is never mutated.
func FilterApps(items []model.NormalizedApp, facets model.AppFacets) []model.NormalizedApp {
	out := make([]model.NormalizedApp, 0, len(items))
	search := strings.ToLower(strings.TrimSpace(facets.Search))

	for _, app := range items {
		if search != "" {
			haystack := strings.ToLower(strings.Join([]string{
				app.Name, app.Vendor, app.Version, app.Description, app.InstallPath,
			}, " "))
			if !strings.Contains(haystack, search) {
				continue
			}
		}
		if facets.RiskLevel != "" && AppRiskLevel(app) != facets.RiskLevel {
			continue
		}
		if facets.Status != "" && !matchesAppStatus(app, facets.Status) {
			continue
		}
		out = append(out, app)
	}

	sortApps(out, facets.SortBy)
	return out
}

func matchesAppStatus(app model.NormalizedApp, status string) bool {
	status = strings.ToLower(strings.TrimSpace(status))
	if status == string(model.AppStatusRunning) {
		return app.IsRunning || app.Status == model.AppStatusRunning
	}
	return string(app.Status) == status
}

func sortApps(apps []model.NormalizedApp, sortBy string) {
	switch sortBy {
	case model.AppSortRisk:
		sort.SliceStable(apps, func(i, j int) bool {
			ri, rj := appRiskRank(apps[i]), appRiskRank(apps[j])
			if ri != rj {
				return ri > rj
			}
			return apps[i].CveCount > apps[j].CveCount
		})
	case model.AppSortName:
		sort.SliceStable(apps, func(i, j int) bool { return apps[i].Name < apps[j].Name })
	case model.AppSortVendor:
		sort.SliceStable(apps, func(i, j int) bool { return apps[i].Vendor < apps[j].Vendor })
	case model.AppSortVersion:
		sort.SliceStable(apps, func(i, j int) bool { return apps[i].Version < apps[j].Version })
	default:
		sort.SliceStable(apps, func(i, j int) bool { return apps[i].CveCount > apps[j].CveCount })
	}
}

// FilterCves applies the facet state to a vulnerability list as a
// sequential AND-chain, then orders the result with a stable sort.
// The input slice is never mutated.
func FilterCves(items []model.NormalizedCve, facets model.CveFacets) []model.NormalizedCve {
	out := make([]model.NormalizedCve, 0, len(items))
	search := strings.ToLower(strings.TrimSpace(facets.Search))
	appKey := util.NormalizeName(facets.AppName)

	for _, cve := range items {
		if search != "" {
			haystack := strings.ToLower(strings.Join([]string{
				cve.CveID, cve.Description, cve.AppName, cve.AppVendor,
			}, " "))
			if !strings.Contains(haystack, search) {
				continue
			}
		}
		if facets.Severity != "" && cve.Severity != facets.Severity {
			continue
		}
		if facets.KnownExploitOnly && !cve.HasKnownExploit {
			continue
		}
		if facets.MatchBucket != "" && MatchBucket(cve) != facets.MatchBucket {
			continue
		}
		if facets.Remediation != "" && RemediationBucket(cve) != facets.Remediation {
			continue
		}
		if appKey != "" && util.NormalizeName(cve.AppName) != appKey {
			continue
		}
		out = append(out, cve)
	}

	sortCves(out, facets.SortBy)
	return out
}

func sortCves(cves []model.NormalizedCve, sortBy string) {
	switch sortBy {
	case model.CveSortSeverity:
		sort.SliceStable(cves, func(i, j int) bool {
			ri, rj := SeverityRank(cves[i].Severity), SeverityRank(cves[j].Severity)
			if ri != rj {
				return ri > rj
			}
			return cves[i].CvssScore > cves[j].CvssScore
		})
	case model.CveSortExploitability:
		sort.SliceStable(cves, func(i, j int) bool {
			if cves[i].HasKnownExploit != cves[j].HasKnownExploit {
				return cves[i].HasKnownExploit
			}
			return cves[i].CvssScore > cves[j].CvssScore
		})
	case model.CveSortRecent:
		sort.SliceStable(cves, func(i, j int) bool {
			return detectedUnix(cves[i]) > detectedUnix(cves[j])
		})
	default: // risk
		sort.SliceStable(cves, func(i, j int) bool {
			return cves[i].CvssScore > cves[j].CvssScore
		})
	}
}

// detectedUnix treats a missing lastDetected as epoch 0 so undated
// CVEs sink to the bottom of the recency sort.
func detectedUnix(cve model.NormalizedCve) int64 {
	if cve.LastDetected == nil {
		return 0
	}
	return cve.LastDetected.Unix()
}
