// Package posture implements the device security-posture engine: it
// normalizes raw, inconsistently-shaped device payloads into a
// canonical profile and derives risk scores, analyst metrics,
// classifications, action plans, and detection trends from it.
//
// The package recognizes no errors, only missing or malformed input,
// which is always absorbed via defaulting. A partially-populated
// upstream payload must still produce a fully-defined profile.
package posture

import (
	"strings"

	"github.com/secwatch/posture-backend/model"
	"github.com/secwatch/posture-backend/util"
)

// Normalize converts an arbitrarily-shaped raw device payload into the
// canonical NormalizedProfile. It never fails: every field read goes
// through a coercer with an explicit default. CVEs are normalized
// before applications so that each app's CveCount derives from the
// final CVE list.
func Normalize(raw map[string]interface{}) *model.NormalizedProfile {
	profile := &model.NormalizedProfile{}

	profile.Cves = normalizeCves(raw)
	profile.Apps = normalizeApps(raw, profile.Cves.Items)
	profile.Device = normalizeDevice(util.SubMap(raw, "device", "deviceInfo", "endpoint"))
	profile.TelemetryDetail = normalizeTelemetryDetail(util.SubMap(raw, "telemetryDetail", "telemetry"))
	profile.TelemetryStatus = normalizeTelemetryStatus(raw, profile)

	return profile
}

// ============================================================================
// CVEs
// ============================================================================

func normalizeCves(raw map[string]interface{}) model.CveList {
	sub := util.SubMap(raw, "cves", "vulnerabilities", "cveList")
	items := rawItems(raw, sub, "cves", "vulnerabilities")

	list := model.CveList{Items: make([]model.NormalizedCve, 0, len(items))}
	for _, item := range items {
		m, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		list.Items = append(list.Items, normalizeCve(m))
	}

	for _, cve := range list.Items {
		switch cve.Severity {
		case model.SeverityCritical:
			list.Summary.Critical++
		case model.SeverityHigh:
			list.Summary.High++
		case model.SeverityMedium:
			list.Summary.Medium++
		default:
			list.Summary.Low++
		}
		if cve.HasKnownExploit {
			list.Summary.WithKnownExploit++
		}
	}

	list.Count = util.ToInt(util.Field(sub, "count", "total", "totalCount"), len(list.Items))
	if list.Count < len(list.Items) {
		list.Count = len(list.Items)
	}
	list.HasMore = util.ToBoolean(util.Field(sub, "hasMore", "has_more", "truncated"), false)
	return list
}

func normalizeCve(m map[string]interface{}) model.NormalizedCve {
	cve := model.NormalizedCve{
		CveID:           util.ToString(util.Field(m, "cveId", "cve_id", "cve", "id"), "N/A"),
		Description:     util.ToString(util.Field(m, "description", "summary", "details"), ""),
		AppName:         util.ToString(util.Field(m, "appName", "app_name", "application", "product"), ""),
		AppVendor:       util.ToString(util.Field(m, "appVendor", "app_vendor", "vendor"), ""),
		HasKnownExploit: util.ToBoolean(util.Field(m, "hasKnownExploit", "knownExploit", "known_exploit", "kev", "exploited"), false),
		FirstDetected:   util.ParseTime(util.Field(m, "firstDetected", "first_detected", "firstSeen", "first_seen")),
		LastDetected:    util.ParseTime(util.Field(m, "lastDetected", "last_detected", "lastSeen", "last_seen")),
		RemediationType: util.ToString(util.Field(m, "remediationType", "remediation_type", "remediation"), ""),
		MatchType:       util.ToString(util.Field(m, "matchType", "match_type"), ""),
	}

	vector := util.ToString(util.Field(m, "cvssVector", "cvss_vector", "vector"), "")
	cve.CvssScore = util.ToNumber(util.Field(m, "cvssScore", "cvss_score", "cvss", "baseScore", "base_score"), 0)
	if cve.CvssScore <= 0 && vector != "" {
		cve.CvssScore = util.CalculateCVSSScore(vector)
	}
	if cve.CvssScore < 0 {
		cve.CvssScore = 0
	}

	cve.Severity = parseSeverity(util.Field(m, "severity", "severityRating", "severity_rating"), vector, cve.CvssScore)

	// EPSS probabilities sometimes arrive as 0-100 percents. Anything
	// strictly greater than 1 is assumed percent; exactly 1.0 is a
	// probability.
	epss := util.ToNumber(util.Field(m, "epssProbability", "epss_probability", "epss", "epssScore"), 0)
	if epss > 1 {
		epss /= 100
	}
	if epss < 0 {
		epss = 0
	}
	cve.EpssProbability = epss
	cve.EpssPercentile = util.ToNumber(util.Field(m, "epssPercentile", "epss_percentile", "percentile"), 0)

	cve.MatchConfidence = util.ToInt(util.Field(m, "matchConfidence", "match_confidence", "confidence"), 0)
	if util.ToBoolean(util.Field(m, "absoluteMatch", "absolute_match", "isAbsoluteMatch", "exactMatch"), false) &&
		cve.MatchConfidence < model.MatchConfidenceAbsolute {
		cve.MatchConfidence = model.MatchConfidenceAbsolute
	}

	return cve
}

// parseSeverity resolves the severity bucket. Recognized severity text
// wins; when the text is absent but a CVSS vector produced a score, the
// rating is derived from the score. Everything else lands in LOW so
// every CVE falls in exactly one of the four summary buckets.
func parseSeverity(value interface{}, vector string, score float64) model.Severity {
	switch strings.ToUpper(strings.TrimSpace(util.ToString(value, ""))) {
	case "CRITICAL":
		return model.SeverityCritical
	case "HIGH":
		return model.SeverityHigh
	case "MEDIUM":
		return model.SeverityMedium
	case "LOW":
		return model.SeverityLow
	}
	if value == nil && vector != "" && score > 0 {
		return model.Severity(util.GetSeverityRating(score))
	}
	return model.SeverityLow
}

// ============================================================================
// Applications
// ============================================================================

func normalizeApps(raw map[string]interface{}, cves []model.NormalizedCve) model.AppList {
	sub := util.SubMap(raw, "apps", "applications", "software")
	items := rawItems(raw, sub, "apps", "applications")

	list := model.AppList{Items: make([]model.NormalizedApp, 0, len(items))}
	for _, item := range items {
		m, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		list.Items = append(list.Items, normalizeApp(m, cves))
	}

	installedCount, updatedCount, uninstalledCount := 0, 0, 0
	for _, app := range list.Items {
		switch app.Status {
		case model.AppStatusInstalled:
			installedCount++
		case model.AppStatusUpdated:
			updatedCount++
		case model.AppStatusUninstalled:
			uninstalledCount++
		}
	}

	summary := util.SubMap(sub, "summary", "counts")
	list.Summary = model.AppSummary{
		Installed:   util.ToInt(util.Field(summary, "installed"), installedCount),
		Updated:     util.ToInt(util.Field(summary, "updated"), updatedCount),
		Uninstalled: util.ToInt(util.Field(summary, "uninstalled"), uninstalledCount),
	}

	list.Count = util.ToInt(util.Field(sub, "count", "total", "totalCount"), len(list.Items))
	if list.Count < len(list.Items) {
		list.Count = len(list.Items)
	}
	list.HasMore = util.ToBoolean(util.Field(sub, "hasMore", "has_more", "truncated"), false)
	return list
}

func normalizeApp(m map[string]interface{}, cves []model.NormalizedCve) model.NormalizedApp {
	app := model.NormalizedApp{
		Name:        util.ToString(util.Field(m, "name", "appName", "app_name", "displayName"), ""),
		Vendor:      util.ToString(util.Field(m, "vendor", "publisher", "manufacturer"), ""),
		Version:     util.CleanVersion(util.ToString(util.Field(m, "version", "appVersion", "app_version"), "")),
		IsRunning:   util.ToBoolean(util.Field(m, "isRunning", "is_running", "running"), false),
		InstallPath: util.ToString(util.Field(m, "installPath", "install_path", "installLocation"), ""),
		RunningPath: util.ToString(util.Field(m, "runningPath", "running_path", "processPath"), ""),
		FirstSeen:   util.ParseTime(util.Field(m, "firstSeen", "first_seen", "firstDetected")),
		LastSeen:    util.ParseTime(util.Field(m, "lastSeen", "last_seen", "lastDetected")),
		Description: util.ToString(util.Field(m, "description", "summary"), ""),
	}

	if latest := util.ToString(util.Field(m, "latestVersion", "latest_version", "availableVersion"), ""); latest != "" {
		cleaned := util.CleanVersion(latest)
		app.LatestVersion = &cleaned
	}

	switch strings.ToLower(strings.TrimSpace(util.ToString(util.Field(m, "status", "state"), ""))) {
	case "installed":
		app.Status = model.AppStatusInstalled
	case "updated":
		app.Status = model.AppStatusUpdated
	case "uninstalled", "removed":
		app.Status = model.AppStatusUninstalled
	default:
		// No explicit lifecycle status: derive from the running signal.
		if app.IsRunning {
			app.Status = model.AppStatusRunning
		} else {
			app.Status = model.AppStatusInstalled
		}
	}

	app.Outdated = app.LatestVersion != nil && app.Status == model.AppStatusInstalled

	key := util.NormalizeName(app.Name)
	for _, cve := range cves {
		if util.NormalizeName(cve.AppName) == key && key != "" {
			app.CveCount++
		}
	}

	app.Purl = util.AppPURL(app.Vendor, app.Name, app.Version)
	if app.LatestVersion != nil {
		app.UpdateAvailable = util.IsVersionBehind(app.Version, *app.LatestVersion)
	}

	return app
}

// ============================================================================
// Device
// ============================================================================

func normalizeDevice(sub map[string]interface{}) model.Device {
	device := model.Device{
		Name:          util.ToString(util.Field(sub, "name", "deviceName", "device_name", "hostname"), ""),
		LastHeartbeat: util.ParseTime(util.Field(sub, "lastHeartbeat", "last_heartbeat", "lastCheckin", "last_checkin")),
		ClientVersion: util.ToString(util.Field(sub, "clientVersion", "client_version", "agentVersion"), ""),
		OS:            util.ToString(util.Field(sub, "os", "osVersion", "operatingSystem", "platform"), ""),
		Summary:       util.ToString(util.Field(sub, "summary", "description"), ""),
		User:          util.DecodeMaybeBase64(util.ToString(util.Field(sub, "user", "userName", "loggedOnUser", "logged_on_user"), "")),
	}

	if state := strings.ToUpper(strings.TrimSpace(util.ToString(util.Field(sub, "state", "status"), ""))); state != "" {
		device.State = model.DeviceState(state)
	} else {
		device.State = model.DeviceStateUnknown
	}

	if v := util.Field(sub, "endpointProtection", "endpoint_protection", "avStatus", "antivirusStatus"); v != nil {
		// Unknown vocabulary defaults to protected so a novel status word
		// does not raise a false "protection disabled" action.
		enabled := util.ToBoolean(v, true)
		device.EndpointProtection = &enabled
	}

	if v := util.Field(sub, "riskScore", "risk_score", "risk", "backendRisk"); v != nil {
		device.HasBackendRisk = true
		device.BackendRiskScore = clampFloat(util.ToNumber(v, 0), 0, 100)
	}

	return device
}

// ============================================================================
// Telemetry
// ============================================================================

func normalizeTelemetryDetail(sub map[string]interface{}) model.TelemetryDetail {
	detail := model.TelemetryDetail{
		History: []model.TelemetrySnapshot{},
		Changes: []model.TelemetryChange{},
	}

	if latest := util.SubMap(sub, "latest", "current"); latest != nil {
		detail.Latest = normalizeSnapshot(latest)
	} else if sub != nil && util.Field(sub, "timestamp", "time", "collectedAt") != nil {
		// Some producers flatten the latest snapshot into the sub-object.
		detail.Latest = normalizeSnapshot(sub)
	} else {
		detail.Latest = model.TelemetrySnapshot{Fields: map[string]string{}, IPAddresses: []string{}}
	}

	if history, ok := util.Field(sub, "history", "snapshots").([]interface{}); ok {
		for _, item := range history {
			if m, ok := item.(map[string]interface{}); ok {
				detail.History = append(detail.History, normalizeSnapshot(m))
			}
		}
	}

	if changes, ok := util.Field(sub, "changes", "deltas").([]interface{}); ok {
		for _, item := range changes {
			m, ok := item.(map[string]interface{})
			if !ok {
				continue
			}
			detail.Changes = append(detail.Changes, model.TelemetryChange{
				Field:     util.ToString(util.Field(m, "field", "name", "key"), ""),
				Previous:  util.ToString(util.Field(m, "previous", "old", "from"), ""),
				Current:   util.ToString(util.Field(m, "current", "new", "to"), ""),
				Timestamp: util.ParseTime(util.Field(m, "timestamp", "time", "changedAt")),
			})
		}
	}

	return detail
}

func normalizeSnapshot(m map[string]interface{}) model.TelemetrySnapshot {
	snap := model.TelemetrySnapshot{
		Timestamp:   util.ParseTime(util.Field(m, "timestamp", "time", "collectedAt", "collected_at")),
		Fields:      map[string]string{},
		IPAddresses: []string{},
	}

	fields := util.SubMap(m, "fields", "data", "values")
	for k, v := range fields {
		if s := util.ToString(v, ""); s != "" {
			snap.Fields[k] = s
		}
	}

	// IP fields are coerced to a list before being exposed, never left
	// as a bare string.
	snap.IPAddresses = util.AsStrings(util.FirstDefined(
		util.Field(fields, "IPAddresses", "ipAddresses", "ip_addresses", "ips"),
		util.Field(m, "IPAddresses", "ipAddresses", "ip_addresses", "ips"),
	))

	return snap
}

func normalizeTelemetryStatus(raw map[string]interface{}, profile *model.NormalizedProfile) model.TelemetryStatus {
	sub := util.SubMap(raw, "telemetryStatus", "telemetry_status")
	if sub == nil {
		sub = util.SubMap(util.SubMap(raw, "telemetryDetail", "telemetry"), "status")
	}

	status := model.TelemetryStatus{
		LastTelemetry:       util.ParseTime(util.Field(sub, "lastTelemetry", "last_telemetry", "lastReport")),
		LastHeartbeat:       util.ParseTime(util.Field(sub, "lastHeartbeat", "last_heartbeat")),
		ConsecutiveFailures: util.ToInt(util.Field(sub, "consecutiveFailures", "consecutive_failures", "failures"), 0),
		Errors:              util.AsStrings(util.Field(sub, "errors", "errorMessages")),
	}

	if status.LastTelemetry == nil {
		status.LastTelemetry = profile.TelemetryDetail.Latest.Timestamp
	}
	if status.LastHeartbeat == nil {
		status.LastHeartbeat = profile.Device.LastHeartbeat
	}

	return status
}

// ============================================================================
// Package-level helpers
// ============================================================================

// rawItems locates the item array for a collection, accepting either a
// wrapped {items: [...]} object or a bare top-level array.
func rawItems(raw, sub map[string]interface{}, keys ...string) []interface{} {
	if items, ok := util.Field(sub, "items", "list", "data").([]interface{}); ok {
		return items
	}
	if items, ok := util.Field(raw, keys...).([]interface{}); ok {
		return items
	}
	return nil
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
