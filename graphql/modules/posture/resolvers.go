// Package posture implements the resolvers for the device review page.
package posture

import (
	"context"
	"time"

	"github.com/secwatch/posture-backend/internal/services"
	"github.com/secwatch/posture-backend/model"
	"github.com/secwatch/posture-backend/posture"
)

// ResolveDevicePosture returns the combined review-page payload for one device.
func ResolveDevicePosture(svc *services.ProfileService, deviceName string) (interface{}, error) {
	profile, err := svc.GetProfile(context.Background(), deviceName)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, nil
	}

	now := time.Now().UTC()
	return map[string]interface{}{
		"device_name":  profile.Device.Name,
		"device_state": string(profile.Device.State),
		"os":           profile.Device.OS,
		"app_count":    profile.Apps.Count,
		"cve_count":    profile.Cves.Count,
		"score":        scoreMap(posture.Score(profile, now)),
		"metrics":      metricsMap(posture.Metrics(profile)),
		"actions":      actionMaps(posture.DeriveActions(profile, now)),
		"highlights":   highlightsMap(posture.Highlights(profile)),
	}, nil
}

// ResolveTrend returns the daily detection buckets with pressure metrics.
func ResolveTrend(svc *services.ProfileService, deviceName string, days int) (interface{}, error) {
	profile, err := svc.GetProfile(context.Background(), deviceName)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return []map[string]interface{}{}, nil
	}

	points := posture.TrendMetrics(profile, days, time.Now().UTC())
	out := make([]map[string]interface{}, 0, len(points))
	for _, p := range points {
		out = append(out, map[string]interface{}{
			"date":      p.Date,
			"count":     p.Count,
			"pressure":  p.Pressure,
			"exploited": p.Exploited,
		})
	}
	return out, nil
}

func scoreMap(s model.ScoreModel) map[string]interface{} {
	return map[string]interface{}{
		"risk_score":     s.RiskScore,
		"security_score": s.SecurityScore,
		"backend_risk":   s.BackendRisk,
		"derived_risk":   s.DerivedRisk,
		"total_cves":     s.TotalCves,
		"installed":      s.Installed,
		"risky_apps":     s.RiskyApps,
		"known_exploit":  s.KnownExploit,
		"critical":       s.Critical,
		"high":           s.High,
		"medium":         s.Medium,
		"low":            s.Low,
	}
}

func metricsMap(m model.KrMetrics) map[string]interface{} {
	return map[string]interface{}{
		"vulnerability_density": m.VulnerabilityDensity,
		"critical_exposure":     m.CriticalExposure,
		"exploitability_index":  m.ExploitabilityIndex,
		"remediation_readiness": m.RemediationReadiness,
		"mttr_days":             m.MttrDays,
	}
}

func actionMaps(actions []model.Action) []map[string]interface{} {
	out := make([]map[string]interface{}, 0, len(actions))
	for _, a := range actions {
		out = append(out, map[string]interface{}{
			"level": string(a.Level),
			"title": a.Title,
			"desc":  a.Desc,
		})
	}
	return out
}

func highlightsMap(h model.HighlightInsights) map[string]interface{} {
	return map[string]interface{}{
		"first_detected_at": h.FirstDetectedAt,
		"last_detected_at":  h.LastDetectedAt,
		"match": map[string]interface{}{
			"absolute":  h.Match.Absolute,
			"heuristic": h.Match.Heuristic,
			"unknown":   h.Match.Unknown,
		},
		"remediation": map[string]interface{}{
			"patch":    h.Remediation.Patch,
			"config":   h.Remediation.Config,
			"mitigate": h.Remediation.Mitigate,
			"nofix":    h.Remediation.NoFix,
			"unknown":  h.Remediation.Unknown,
		},
		"epss_high": h.EpssHigh,
		"epss_avg":  h.EpssAvg,
		"apps": map[string]interface{}{
			"with_install_path": h.Apps.WithInstallPath,
			"running_with_path": h.Apps.RunningWithPath,
		},
	}
}
