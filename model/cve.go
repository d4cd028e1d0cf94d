package model

import "time"

// Severity is one of the four canonical severity buckets. Items with
// no parseable severity are classified LOW, never dropped.
type Severity string

const (
	// SeverityCritical indicates a CVSS score of 9.0 or above.
	SeverityCritical Severity = "CRITICAL"
	// SeverityHigh indicates a CVSS score of 7.0 to 8.9.
	SeverityHigh Severity = "HIGH"
	// SeverityMedium indicates a CVSS score of 4.0 to 6.9.
	SeverityMedium Severity = "MEDIUM"
	// SeverityLow is the default bucket for everything else.
	SeverityLow Severity = "LOW"
)

// Match confidence levels for the software-to-CVE mapping.
const (
	// MatchConfidenceUnknown means the mapping method was not reported.
	MatchConfidenceUnknown = 0
	// MatchConfidenceHeuristic means the mapping was fuzzy or approximate.
	MatchConfidenceHeuristic = 1
	// MatchConfidenceAbsolute means the mapping is exact.
	MatchConfidenceAbsolute = 2
)

// NormalizedCve is the canonical form of one detected vulnerability
type NormalizedCve struct {
	CveID           string     `json:"cveId"`           // "N/A" when absent.
	Severity        Severity   `json:"severity"`        // Defaults to LOW.
	CvssScore       float64    `json:"cvssScore"`       // Always >= 0.
	Description     string     `json:"description"`     // Free-text summary.
	AppName         string     `json:"appName"`         // Matched application name.
	AppVendor       string     `json:"appVendor"`       // Matched application vendor.
	HasKnownExploit bool       `json:"hasKnownExploit"` // KEV flag.
	FirstDetected   *time.Time `json:"firstDetected"`
	LastDetected    *time.Time `json:"lastDetected"`
	EpssProbability float64    `json:"epssProbability"` // Always in [0,1]; percent inputs are divided by 100.
	EpssPercentile  float64    `json:"epssPercentile"`
	RemediationType string     `json:"remediationType"` // Free text, bucketed by the classifier.
	MatchType       string     `json:"matchType"`       // Free text, bucketed by the classifier.
	MatchConfidence int        `json:"matchConfidence"` // 2=absolute, 1=heuristic, 0=unknown.
}
