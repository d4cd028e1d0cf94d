package model

// AppRiskLevel buckets applications for the risk-level facet
type AppRiskLevel string

const (
	// AppRiskHigh applies when cveCount >= 5 or the app is outdated.
	AppRiskHigh AppRiskLevel = "high"
	// AppRiskMedium applies when cveCount >= 1.
	AppRiskMedium AppRiskLevel = "medium"
	// AppRiskLow applies otherwise.
	AppRiskLow AppRiskLevel = "low"
)

// Sort keys for the application facet state.
const (
	AppSortRisk    = "risk"
	AppSortName    = "name"
	AppSortVendor  = "vendor"
	AppSortVersion = "version"
)

// Sort keys for the vulnerability facet state.
const (
	CveSortRisk           = "risk"
	CveSortSeverity       = "severity"
	CveSortExploitability = "exploitability"
	CveSortRecent         = "recent"
)

// AppFacets is the UI-selected filter and sort state for the
// application list. Zero values mean "no filter".
type AppFacets struct {
	Search    string       `json:"search"`    // Case-insensitive substring over name, vendor, version, description, installPath.
	RiskLevel AppRiskLevel `json:"riskLevel"` // "" disables the facet.
	Status    string       `json:"status"`    // Lifecycle or "running"; "" disables the facet.
	SortBy    string       `json:"sortBy"`    // "" sorts by cveCount descending.
}

// CveFacets is the UI-selected filter and sort state for the
// vulnerability list. Zero values mean "no filter".
type CveFacets struct {
	Search           string   `json:"search"`           // Case-insensitive substring over cveId, description, appName, appVendor.
	Severity         Severity `json:"severity"`         // "" disables the facet.
	KnownExploitOnly bool     `json:"knownExploitOnly"`
	MatchBucket      string   `json:"matchBucket"`      // absolute, heuristic, unknown; "" disables.
	Remediation      string   `json:"remediation"`      // patch, config, mitigate, nofix, unknown; "" disables.
	AppName          string   `json:"appName"`          // Cross-filter by normalized app name; "" disables.
	SortBy           string   `json:"sortBy"`           // "" sorts by CVSS score descending.
}
