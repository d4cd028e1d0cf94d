package posture

import (
	"fmt"
	"math"

	"github.com/secwatch/posture-backend/model"
)

// Metrics derives the secondary analyst metrics from a profile.
func Metrics(p *model.NormalizedProfile) model.KrMetrics {
	summary := p.Cves.Summary
	totalCves := len(p.Cves.Items)

	installed := p.Apps.Summary.Installed
	if installed < 1 {
		installed = 1
	}

	density := math.Round(float64(totalCves)/float64(installed)*100) / 100

	criticalExposure := 0
	if totalCves > 0 {
		criticalExposure = int(math.Round(float64(summary.Critical) / float64(totalCves) * 100))
	}

	exploitability := summary.WithKnownExploit*20 + summary.High*2 + summary.Critical*4
	if exploitability > 100 {
		exploitability = 100
	}

	readiness := int(math.Round(float64(p.Apps.Summary.Updated) / float64(installed) * 100))
	if readiness < 0 {
		readiness = 0
	}
	if readiness > 100 {
		readiness = 100
	}

	return model.KrMetrics{
		VulnerabilityDensity: density,
		CriticalExposure:     criticalExposure,
		ExploitabilityIndex:  exploitability,
		RemediationReadiness: readiness,
		MttrDays:             mttrDays(p.Cves.Items),
	}
}

// mttrDays averages the first-to-last detection span over CVEs carrying
// both timestamps. Near-zero averages (same-day detections) are not
// meaningfully different from "no remediation-time data" and must not
// read as "remediated instantly", so anything below 0.1 days reports
// the N/A sentinel.
func mttrDays(cves []model.NormalizedCve) string {
	var total float64
	count := 0
	for _, cve := range cves {
		if cve.FirstDetected == nil || cve.LastDetected == nil {
			continue
		}
		if cve.LastDetected.Before(*cve.FirstDetected) {
			continue
		}
		total += cve.LastDetected.Sub(*cve.FirstDetected).Hours() / 24
		count++
	}
	if count == 0 {
		return "N/A"
	}
	avg := total / float64(count)
	if avg < 0.1 {
		return "N/A"
	}
	return fmt.Sprintf("%.1fd", avg)
}
