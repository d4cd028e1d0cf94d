package posture

import (
	"strings"

	"github.com/secwatch/posture-backend/model"
)

// Match-confidence buckets.
const (
	MatchBucketAbsolute  = "absolute"
	MatchBucketHeuristic = "heuristic"
	MatchBucketUnknown   = "unknown"
)

// Remediation buckets.
const (
	RemediationPatch    = "patch"
	RemediationConfig   = "config"
	RemediationMitigate = "mitigate"
	RemediationNoFix    = "nofix"
	RemediationUnknown  = "unknown"
)

// MatchBucket resolves the match-confidence bucket for one CVE. The
// numeric confidence takes priority over the matchType text, so a
// record claiming confidence 2 with contradictory "heuristic" text
// still resolves to absolute.
func MatchBucket(cve model.NormalizedCve) string {
	if cve.MatchConfidence >= model.MatchConfidenceAbsolute {
		return MatchBucketAbsolute
	}
	if cve.MatchConfidence == model.MatchConfidenceHeuristic {
		return MatchBucketHeuristic
	}
	text := strings.ToLower(cve.MatchType)
	if containsAny(text, "absolute", "exact", "direct") {
		return MatchBucketAbsolute
	}
	if containsAny(text, "heuristic", "fuzzy", "approx") {
		return MatchBucketHeuristic
	}
	return MatchBucketUnknown
}

// RemediationBucket resolves the remediation-type bucket for one CVE.
// The first matching substring group wins; an empty remediation string
// maps to unknown without text inspection.
func RemediationBucket(cve model.NormalizedCve) string {
	if cve.RemediationType == "" {
		return RemediationUnknown
	}
	text := strings.ToLower(cve.RemediationType)
	switch {
	case containsAny(text, "patch", "update", "upgrade", "hotfix"):
		return RemediationPatch
	case containsAny(text, "config", "setting", "policy", "hardening"):
		return RemediationConfig
	case containsAny(text, "mitig", "workaround", "compensat"):
		return RemediationMitigate
	case containsAny(text, "no fix", "unavailable", "none"):
		return RemediationNoFix
	}
	return RemediationUnknown
}

func containsAny(text string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(text, sub) {
			return true
		}
	}
	return false
}
