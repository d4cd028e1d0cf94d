package posture

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/secwatch/posture-backend/model"
)

func tp(t time.Time) *time.Time { return &t }

func TestMetricsEmptyProfile(t *testing.T) {
	m := Metrics(&model.NormalizedProfile{})

	assert.Equal(t, float64(0), m.VulnerabilityDensity)
	assert.Equal(t, 0, m.CriticalExposure)
	assert.Equal(t, 0, m.ExploitabilityIndex)
	assert.Equal(t, 0, m.RemediationReadiness)
	assert.Equal(t, "N/A", m.MttrDays)
}

func TestMetricsDerivedValues(t *testing.T) {
	p := &model.NormalizedProfile{
		Cves: model.CveList{
			Items: make([]model.NormalizedCve, 5),
			Summary: model.CveSummary{
				Critical:         2,
				High:             3,
				WithKnownExploit: 2,
			},
		},
		Apps: model.AppList{Summary: model.AppSummary{Installed: 2, Updated: 1}},
	}

	m := Metrics(p)

	assert.Equal(t, 2.5, m.VulnerabilityDensity)
	assert.Equal(t, 40, m.CriticalExposure)       // 2 of 5
	assert.Equal(t, 54, m.ExploitabilityIndex)    // 2*20 + 3*2 + 2*4
	assert.Equal(t, 50, m.RemediationReadiness)   // 1 of 2
}

func TestMetricsExploitabilityCap(t *testing.T) {
	p := &model.NormalizedProfile{
		Cves: model.CveList{
			Items:   make([]model.NormalizedCve, 10),
			Summary: model.CveSummary{Critical: 10, WithKnownExploit: 10},
		},
	}

	assert.Equal(t, 100, Metrics(p).ExploitabilityIndex)
}

func TestMttrDays(t *testing.T) {
	base := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		cves []model.NormalizedCve
		want string
	}{
		{
			name: "average of two spans",
			cves: []model.NormalizedCve{
				{FirstDetected: tp(base), LastDetected: tp(base.AddDate(0, 0, 5))},
				{FirstDetected: tp(base), LastDetected: tp(base.AddDate(0, 0, 15))},
			},
			want: "10.0d",
		},
		{
			name: "missing timestamps skipped",
			cves: []model.NormalizedCve{
				{FirstDetected: tp(base)},
				{LastDetected: tp(base)},
				{FirstDetected: tp(base), LastDetected: tp(base.AddDate(0, 0, 3))},
			},
			want: "3.0d",
		},
		{
			name: "reversed span skipped",
			cves: []model.NormalizedCve{
				{FirstDetected: tp(base.AddDate(0, 0, 5)), LastDetected: tp(base)},
			},
			want: "N/A",
		},
		{
			name: "same-day detections read as no data",
			cves: []model.NormalizedCve{
				{FirstDetected: tp(base), LastDetected: tp(base.Add(30 * time.Minute))},
			},
			want: "N/A",
		},
		{
			name: "no cves",
			cves: nil,
			want: "N/A",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &model.NormalizedProfile{Cves: model.CveList{Items: tt.cves}}
			assert.Equal(t, tt.want, Metrics(p).MttrDays)
		})
	}
}
