// Package model defines the data structures used by posture-backend,
// including the normalized device profile, applications, and CVEs.
package model

import "time"

// DeviceState represents the management state reported for a device
type DeviceState string

const (
	// DeviceStateActive represents a device that is enrolled and reporting.
	DeviceStateActive DeviceState = "ACTIVE"
	// DeviceStateDisabled represents a device that has been administratively disabled.
	DeviceStateDisabled DeviceState = "DISABLED"
	// DeviceStateBlocked represents a device that has been blocked from the network.
	DeviceStateBlocked DeviceState = "BLOCKED"
	// DeviceStateUnknown represents a device whose state could not be determined.
	DeviceStateUnknown DeviceState = "UNKNOWN"
)

// Device holds the canonical identity fields for one endpoint
type Device struct {
	Name               string      `json:"name"`                // Human-readable device name (e.g., "FIN-LAPTOP-042").
	State              DeviceState `json:"state"`               // Management state (ACTIVE, DISABLED, BLOCKED, ...).
	LastHeartbeat      *time.Time  `json:"lastHeartbeat"`       // Last agent heartbeat, nil when never seen.
	ClientVersion      string      `json:"clientVersion"`       // Installed agent version.
	OS                 string      `json:"os"`                  // Operating system string as reported.
	Summary            string      `json:"summary"`             // Free-text device summary.
	User               string      `json:"user"`                // Logged-in user, base64-decoded when safely possible.
	EndpointProtection *bool       `json:"endpointProtection"`  // nil when the payload carries no protection signal.
	BackendRiskScore   float64     `json:"backendRiskScore"`    // Backend-supplied raw risk value, 0 when absent.
	HasBackendRisk     bool        `json:"hasBackendRiskScore"` // Whether a backend risk value was present at all.
}

// TelemetrySnapshot is one timestamped set of telemetry fields
type TelemetrySnapshot struct {
	Timestamp *time.Time        `json:"timestamp"`
	Fields    map[string]string `json:"fields"`
	// IPAddresses is always a list, never a bare string, possibly empty.
	IPAddresses []string `json:"ipAddresses"`
}

// TelemetryChange records a single observed field transition
type TelemetryChange struct {
	Field     string     `json:"field"`
	Previous  string     `json:"previous"`
	Current   string     `json:"current"`
	Timestamp *time.Time `json:"timestamp"`
}

// TelemetryDetail holds the latest snapshot plus history and changes
type TelemetryDetail struct {
	Latest  TelemetrySnapshot   `json:"latest"`
	History []TelemetrySnapshot `json:"history"`
	Changes []TelemetryChange   `json:"changes"`
}

// TelemetryStatus summarizes agent reporting health
type TelemetryStatus struct {
	LastTelemetry       *time.Time `json:"lastTelemetry"`
	LastHeartbeat       *time.Time `json:"lastHeartbeat"`
	ConsecutiveFailures int        `json:"consecutiveFailures"`
	Errors              []string   `json:"errors"`
}

// AppSummary tallies applications by lifecycle status
type AppSummary struct {
	Installed   int `json:"installed"`
	Updated     int `json:"updated"`
	Uninstalled int `json:"uninstalled"`
}

// AppList is the normalized application collection for one device
type AppList struct {
	Items   []NormalizedApp `json:"items"`
	Count   int             `json:"count"`
	HasMore bool            `json:"hasMore"`
	Summary AppSummary      `json:"summary"`
}

// CveSummary tallies vulnerabilities by severity and exploit status
type CveSummary struct {
	Critical         int `json:"critical"`
	High             int `json:"high"`
	Medium           int `json:"medium"`
	Low              int `json:"low"`
	WithKnownExploit int `json:"withKnownExploit"`
}

// CveList is the normalized vulnerability collection for one device
type CveList struct {
	Items   []NormalizedCve `json:"items"`
	Count   int             `json:"count"`
	HasMore bool            `json:"hasMore"`
	Summary CveSummary      `json:"summary"`
}

// NormalizedProfile is the canonical, fully-defaulted view of one
// device payload. It is immutable per fetch: every derived structure
// (score, metrics, actions, trends) is a pure function of this value.
type NormalizedProfile struct {
	Device          Device          `json:"device"`
	TelemetryDetail TelemetryDetail `json:"telemetryDetail"`
	TelemetryStatus TelemetryStatus `json:"telemetryStatus"`
	Apps            AppList         `json:"apps"`
	Cves            CveList         `json:"cves"`
}
