package model

import "time"

// AppStatus represents the lifecycle status of an installed application
type AppStatus string

const (
	// AppStatusInstalled is the default lifecycle status.
	AppStatusInstalled AppStatus = "installed"
	// AppStatusUpdated indicates the application was updated in place.
	AppStatusUpdated AppStatus = "updated"
	// AppStatusUninstalled indicates the application has been removed.
	AppStatusUninstalled AppStatus = "uninstalled"
	// AppStatusRunning is derived from a running-process signal when no
	// explicit lifecycle status was reported.
	AppStatusRunning AppStatus = "running"
)

// NormalizedApp is the canonical form of one installed application
type NormalizedApp struct {
	Name          string     `json:"name"`
	Vendor        string     `json:"vendor"`
	Version       string     `json:"version"`
	LatestVersion *string    `json:"latestVersion"` // nil when upstream reports no newer version.
	Outdated      bool       `json:"outdated"`      // latestVersion != nil && status == installed.
	Status        AppStatus  `json:"status"`
	IsRunning     bool       `json:"isRunning"`
	InstallPath   string     `json:"installPath"`
	RunningPath   string     `json:"runningPath"`
	FirstSeen     *time.Time `json:"firstSeen"`
	LastSeen      *time.Time `json:"lastSeen"`
	Description   string     `json:"description"`

	// CveCount is the number of normalized CVEs whose appName matches
	// this application's name (trimmed, case-insensitive). It is always
	// derived from the final CVE list, never supplied upstream.
	CveCount int `json:"cveCount"`

	// Purl is an informational package identity built from vendor and
	// name. It never participates in CVE matching.
	Purl string `json:"purl,omitempty"`

	// UpdateAvailable is an informational flag from ecosystem-aware
	// version comparison against LatestVersion. Unlike Outdated it never
	// feeds risk ranking or filtering.
	UpdateAvailable bool `json:"updateAvailable"`
}
