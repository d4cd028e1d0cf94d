package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateCVSSScore(t *testing.T) {
	assert.InDelta(t, 9.8, CalculateCVSSScore("CVSS:3.1/AV:N/AC:L/PR:N/UI:N/S:U/C:H/I:H/A:H"), 0.01)
	assert.InDelta(t, 7.5, CalculateCVSSScore("CVSS:3.1/AV:N/AC:L/PR:N/UI:N/S:U/C:N/I:N/A:H"), 0.01)
	assert.Equal(t, float64(0), CalculateCVSSScore(""))
	assert.Equal(t, float64(0), CalculateCVSSScore("not a vector"))
	assert.Equal(t, float64(0), CalculateCVSSScore("CVSS:3.1/garbage"))
}

func TestGetSeverityRating(t *testing.T) {
	tests := []struct {
		name  string
		score float64
		want  string
	}{
		{name: "critical", score: 9.8, want: "CRITICAL"},
		{name: "critical boundary", score: 9.0, want: "CRITICAL"},
		{name: "high", score: 7.0, want: "HIGH"},
		{name: "medium", score: 4.0, want: "MEDIUM"},
		{name: "low", score: 0.1, want: "LOW"},
		{name: "zero", score: 0, want: "LOW"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GetSeverityRating(tt.score))
		})
	}
}
