package posture

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/secwatch/posture-backend/model"
)

func TestMatchBucket(t *testing.T) {
	tests := []struct {
		name string
		cve  model.NormalizedCve
		want string
	}{
		{name: "confidence two", cve: model.NormalizedCve{MatchConfidence: 2}, want: MatchBucketAbsolute},
		{name: "confidence above two", cve: model.NormalizedCve{MatchConfidence: 5}, want: MatchBucketAbsolute},
		{name: "confidence one", cve: model.NormalizedCve{MatchConfidence: 1}, want: MatchBucketHeuristic},
		{name: "numeric beats contradictory text", cve: model.NormalizedCve{MatchConfidence: 2, MatchType: "heuristic"}, want: MatchBucketAbsolute},
		{name: "exact text", cve: model.NormalizedCve{MatchType: "Exact version match"}, want: MatchBucketAbsolute},
		{name: "direct text", cve: model.NormalizedCve{MatchType: "direct"}, want: MatchBucketAbsolute},
		{name: "fuzzy text", cve: model.NormalizedCve{MatchType: "fuzzy name match"}, want: MatchBucketHeuristic},
		{name: "approx text", cve: model.NormalizedCve{MatchType: "approximate"}, want: MatchBucketHeuristic},
		{name: "empty", cve: model.NormalizedCve{}, want: MatchBucketUnknown},
		{name: "unrecognized text", cve: model.NormalizedCve{MatchType: "vendor advisory"}, want: MatchBucketUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MatchBucket(tt.cve))
		})
	}
}

func TestRemediationBucket(t *testing.T) {
	tests := []struct {
		name        string
		remediation string
		want        string
	}{
		{name: "patch", remediation: "Patch available", want: RemediationPatch},
		{name: "upgrade", remediation: "upgrade to 2.x", want: RemediationPatch},
		{name: "hotfix", remediation: "vendor hotfix", want: RemediationPatch},
		{name: "config", remediation: "registry setting change", want: RemediationConfig},
		{name: "policy", remediation: "group policy", want: RemediationConfig},
		{name: "mitigation", remediation: "Mitigation only", want: RemediationMitigate},
		{name: "workaround", remediation: "workaround documented", want: RemediationMitigate},
		{name: "no fix", remediation: "no fix available", want: RemediationNoFix},
		{name: "none", remediation: "none", want: RemediationNoFix},
		{name: "empty", remediation: "", want: RemediationUnknown},
		{name: "unrecognized", remediation: "see advisory", want: RemediationUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cve := model.NormalizedCve{RemediationType: tt.remediation}
			assert.Equal(t, tt.want, RemediationBucket(cve))
		})
	}
}
