package posture

import (
	"math"
	"time"

	"github.com/secwatch/posture-backend/model"
)

// Severity weights for the composite score.
const (
	weightCritical = 12
	weightHigh     = 7
	weightMedium   = 3
	weightLow      = 1
)

// Score computes the composite 0-100 risk assessment for a profile.
// The result is a pure function of the profile and the supplied clock;
// it holds no state and is recomputed on every access.
//
// The final risk score is the max of the backend-reported value and the
// locally derived one. A stale or optimistic backend value must never
// mask locally-visible signals, so risk is never understated.
func Score(p *model.NormalizedProfile, now time.Time) model.ScoreModel {
	summary := p.Cves.Summary

	installed := p.Apps.Summary.Installed
	if installed < 1 {
		installed = 1
	}

	totalCves := len(p.Cves.Items)

	severityLoad := float64(summary.Critical*weightCritical+
		summary.High*weightHigh+
		summary.Medium*weightMedium+
		summary.Low*weightLow) / float64(installed)
	weightedCveRisk := math.Min(70, math.Round(severityLoad*8))

	exploitPenalty := math.Min(20, float64(summary.WithKnownExploit*10))

	densityPenalty := math.Min(15, math.Round(float64(totalCves)/float64(installed)*12))

	riskyApps := 0
	for _, app := range p.Apps.Items {
		if app.CveCount > 0 || app.Outdated {
			riskyApps++
		}
	}
	appPenalty := math.Min(10, math.Round(float64(riskyApps)/float64(installed)*10))

	// Staleness penalizes confirmed silence, not absence: a missing
	// telemetry timestamp yields no penalty.
	stalePenalty := 0.0
	if ts := p.TelemetryDetail.Latest.Timestamp; ts != nil {
		ageHours := now.Sub(*ts).Hours()
		if ageHours > 6 {
			stalePenalty = math.Min(10, math.Round(ageHours/12))
		}
	}

	derivedRisk := math.Min(100, weightedCveRisk+exploitPenalty+densityPenalty+appPenalty+stalePenalty)

	backendRisk := 0.0
	if p.Device.HasBackendRisk {
		backendRisk = p.Device.BackendRiskScore
	}

	riskScore := int(math.Round(math.Max(backendRisk, derivedRisk)))
	if riskScore < 0 {
		riskScore = 0
	}
	if riskScore > 100 {
		riskScore = 100
	}

	return model.ScoreModel{
		RiskScore:     riskScore,
		SecurityScore: 100 - riskScore,
		BackendRisk:   backendRisk,
		DerivedRisk:   derivedRisk,
		TotalCves:     totalCves,
		Installed:     installed,
		RiskyApps:     riskyApps,
		KnownExploit:  summary.WithKnownExploit,
		Critical:      summary.Critical,
		High:          summary.High,
		Medium:        summary.Medium,
		Low:           summary.Low,
	}
}
