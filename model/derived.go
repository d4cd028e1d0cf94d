package model

// ScoreModel is the composite risk assessment for one device. It is
// recomputed on every access and never persisted.
type ScoreModel struct {
	RiskScore     int     `json:"riskScore"`     // 0-100.
	SecurityScore int     `json:"securityScore"` // Always 100 - RiskScore.
	BackendRisk   float64 `json:"backendRisk"`   // Informational, 0-100.
	DerivedRisk   float64 `json:"derivedRisk"`   // Informational, 0-100.
	TotalCves     int     `json:"totalCves"`
	Installed     int     `json:"installed"` // Floor-guarded to >= 1.
	RiskyApps     int     `json:"riskyApps"`
	KnownExploit  int     `json:"knownExploit"`
	Critical      int     `json:"critical"`
	High          int     `json:"high"`
	Medium        int     `json:"medium"`
	Low           int     `json:"low"`
}

// KrMetrics holds the secondary analyst metrics for one device
type KrMetrics struct {
	VulnerabilityDensity float64 `json:"vulnerabilityDensity"` // CVEs per installed app, 2 decimals.
	CriticalExposure     int     `json:"criticalExposure"`     // Percent of CVEs that are critical.
	ExploitabilityIndex  int     `json:"exploitabilityIndex"`  // 0-100.
	RemediationReadiness int     `json:"remediationReadiness"` // Percent of apps already updated.
	MttrDays             string  `json:"mttrDays"`             // "<n>.<d>d" or "N/A", never "0.0d".
}

// ActionLevel classifies the urgency of a recommended action
type ActionLevel string

const (
	// ActionCritical requires immediate response.
	ActionCritical ActionLevel = "critical"
	// ActionWarning should be reviewed promptly.
	ActionWarning ActionLevel = "warning"
	// ActionInfo is advisory.
	ActionInfo ActionLevel = "info"
	// ActionSuccess indicates no issues were found.
	ActionSuccess ActionLevel = "success"
)

// Action is one recommended remediation step for the analyst
type Action struct {
	Level ActionLevel `json:"level"`
	Title string      `json:"title"`
	Desc  string      `json:"desc"`
}

// MatchCounts tallies CVEs by match-confidence bucket
type MatchCounts struct {
	Absolute  int `json:"absolute"`
	Heuristic int `json:"heuristic"`
	Unknown   int `json:"unknown"`
}

// RemediationCounts tallies CVEs by remediation bucket
type RemediationCounts struct {
	Patch    int `json:"patch"`
	Config   int `json:"config"`
	Mitigate int `json:"mitigate"`
	NoFix    int `json:"nofix"`
	Unknown  int `json:"unknown"`
}

// AppPathCounts tallies applications by path confidence
type AppPathCounts struct {
	WithInstallPath int `json:"withInstallPath"`
	RunningWithPath int `json:"runningWithPath"`
}

// HighlightInsights is the single-pass CVE digest for the review page
type HighlightInsights struct {
	FirstDetectedAt *string           `json:"firstDetectedAt"` // ISO timestamp or null.
	LastDetectedAt  *string           `json:"lastDetectedAt"`
	Match           MatchCounts       `json:"match"`
	Remediation     RemediationCounts `json:"remediation"`
	EpssHigh        int               `json:"epssHigh"` // Probability >= 0.70.
	EpssAvg         float64           `json:"epssAvg"`  // Percent, 1 decimal, 0 when no positive probabilities.
	Apps            AppPathCounts     `json:"apps"`
}

// TrendPoint is one daily detection bucket
type TrendPoint struct {
	Date  string `json:"date"` // UTC calendar day, YYYY-MM-DD.
	Count int    `json:"count"`
}

// TrendMetricPoint extends a trend bucket with severity pressure and
// known-exploit counts
type TrendMetricPoint struct {
	Date      string `json:"date"`
	Count     int    `json:"count"`
	Pressure  int    `json:"pressure"`
	Exploited int    `json:"exploited"`
}
