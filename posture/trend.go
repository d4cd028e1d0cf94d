package posture

import (
	"math"
	"time"

	"github.com/secwatch/posture-backend/model"
)

const (
	minTrendDays = 1
	maxTrendDays = 30
)

const dayKeyLayout = "2006-01-02"

// Trend builds contiguous daily detection buckets ending today (UTC).
// days is clamped to [1,30]. Each CVE lands in the bucket matching its
// firstDetected (falling back to lastDetected) calendar day; entries
// with unparseable or out-of-window dates are skipped, not errored.
func Trend(p *model.NormalizedProfile, days int, now time.Time) []model.TrendPoint {
	points := make([]model.TrendPoint, 0, maxTrendDays)
	for _, b := range trendBuckets(p, days, now) {
		points = append(points, model.TrendPoint{Date: b.date, Count: b.count})
	}
	return points
}

// TrendMetrics extends the trend buckets with severity pressure
// (severity weight plus 2 per known exploit) and per-day exploited
// counts.
func TrendMetrics(p *model.NormalizedProfile, days int, now time.Time) []model.TrendMetricPoint {
	points := make([]model.TrendMetricPoint, 0, maxTrendDays)
	for _, b := range trendBuckets(p, days, now) {
		points = append(points, model.TrendMetricPoint{
			Date:      b.date,
			Count:     b.count,
			Pressure:  b.pressure,
			Exploited: b.exploited,
		})
	}
	return points
}

type trendBucket struct {
	date      string
	count     int
	pressure  int
	exploited int
}

func trendBuckets(p *model.NormalizedProfile, days int, now time.Time) []trendBucket {
	if days < minTrendDays {
		days = minTrendDays
	}
	if days > maxTrendDays {
		days = maxTrendDays
	}

	today := now.UTC().Truncate(24 * time.Hour)
	buckets := make([]trendBucket, days)
	index := make(map[string]int, days)
	for i := 0; i < days; i++ {
		date := today.AddDate(0, 0, i-days+1).Format(dayKeyLayout)
		buckets[i] = trendBucket{date: date}
		index[date] = i
	}

	for _, cve := range p.Cves.Items {
		detected := cve.FirstDetected
		if detected == nil {
			detected = cve.LastDetected
		}
		if detected == nil {
			continue
		}
		i, ok := index[detected.UTC().Format(dayKeyLayout)]
		if !ok {
			continue
		}
		buckets[i].count++
		buckets[i].pressure += SeverityRank(cve.Severity)
		if cve.HasKnownExploit {
			buckets[i].pressure += 2
			buckets[i].exploited++
		}
	}

	return buckets
}

// Highlights scans the CVE list once to produce the review-page insight
// digest: detection time span, match and remediation bucket counts,
// EPSS statistics, and app path-confidence counts.
func Highlights(p *model.NormalizedProfile) model.HighlightInsights {
	insights := model.HighlightInsights{}

	var earliest, latest *time.Time
	var epssSum float64
	epssCount := 0

	for _, cve := range p.Cves.Items {
		for _, ts := range []*time.Time{cve.FirstDetected, cve.LastDetected} {
			if ts == nil {
				continue
			}
			if earliest == nil || ts.Before(*earliest) {
				earliest = ts
			}
			if latest == nil || ts.After(*latest) {
				latest = ts
			}
		}

		switch MatchBucket(cve) {
		case MatchBucketAbsolute:
			insights.Match.Absolute++
		case MatchBucketHeuristic:
			insights.Match.Heuristic++
		default:
			insights.Match.Unknown++
		}

		switch RemediationBucket(cve) {
		case RemediationPatch:
			insights.Remediation.Patch++
		case RemediationConfig:
			insights.Remediation.Config++
		case RemediationMitigate:
			insights.Remediation.Mitigate++
		case RemediationNoFix:
			insights.Remediation.NoFix++
		default:
			insights.Remediation.Unknown++
		}

		if cve.EpssProbability >= 0.70 {
			insights.EpssHigh++
		}
		if cve.EpssProbability > 0 {
			epssSum += cve.EpssProbability
			epssCount++
		}
	}

	if epssCount > 0 {
		insights.EpssAvg = math.Round(epssSum/float64(epssCount)*1000) / 10
	}

	insights.FirstDetectedAt = isoTime(earliest)
	insights.LastDetectedAt = isoTime(latest)

	for _, app := range p.Apps.Items {
		if app.InstallPath != "" {
			insights.Apps.WithInstallPath++
		}
		if app.IsRunning && app.RunningPath != "" {
			insights.Apps.RunningWithPath++
		}
	}

	return insights
}

func isoTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.UTC().Format(time.RFC3339)
	return &s
}
