// Package posture defines the GraphQL types for the device review page.
package posture

import (
	"github.com/graphql-go/graphql"
)

// ScoreModelType represents the composite risk assessment card
var ScoreModelType = graphql.NewObject(graphql.ObjectConfig{
	Name: "ScoreModel",
	Fields: graphql.Fields{
		"risk_score":     &graphql.Field{Type: graphql.Int},
		"security_score": &graphql.Field{Type: graphql.Int},
		"backend_risk":   &graphql.Field{Type: graphql.Float},
		"derived_risk":   &graphql.Field{Type: graphql.Float},
		"total_cves":     &graphql.Field{Type: graphql.Int},
		"installed":      &graphql.Field{Type: graphql.Int},
		"risky_apps":     &graphql.Field{Type: graphql.Int},
		"known_exploit":  &graphql.Field{Type: graphql.Int},
		"critical":       &graphql.Field{Type: graphql.Int},
		"high":           &graphql.Field{Type: graphql.Int},
		"medium":         &graphql.Field{Type: graphql.Int},
		"low":            &graphql.Field{Type: graphql.Int},
	},
})

// KrMetricsType represents the key-risk metric tiles
var KrMetricsType = graphql.NewObject(graphql.ObjectConfig{
	Name: "KrMetrics",
	Fields: graphql.Fields{
		"vulnerability_density": &graphql.Field{Type: graphql.Float},
		"critical_exposure":     &graphql.Field{Type: graphql.Int},
		"exploitability_index":  &graphql.Field{Type: graphql.Int},
		"remediation_readiness": &graphql.Field{Type: graphql.Int},
		"mttr_days":             &graphql.Field{Type: graphql.String},
	},
})

// ActionType represents one recommended action
var ActionType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Action",
	Fields: graphql.Fields{
		"level": &graphql.Field{Type: graphql.String},
		"title": &graphql.Field{Type: graphql.String},
		"desc":  &graphql.Field{Type: graphql.String},
	},
})

// TrendPointType represents one daily detection bucket
var TrendPointType = graphql.NewObject(graphql.ObjectConfig{
	Name: "TrendPoint",
	Fields: graphql.Fields{
		"date":      &graphql.Field{Type: graphql.String},
		"count":     &graphql.Field{Type: graphql.Int},
		"pressure":  &graphql.Field{Type: graphql.Int},
		"exploited": &graphql.Field{Type: graphql.Int},
	},
})

// MatchCountsType tallies CVEs by match-confidence bucket
var MatchCountsType = graphql.NewObject(graphql.ObjectConfig{
	Name: "MatchCounts",
	Fields: graphql.Fields{
		"absolute":  &graphql.Field{Type: graphql.Int},
		"heuristic": &graphql.Field{Type: graphql.Int},
		"unknown":   &graphql.Field{Type: graphql.Int},
	},
})

// RemediationCountsType tallies CVEs by remediation bucket
var RemediationCountsType = graphql.NewObject(graphql.ObjectConfig{
	Name: "RemediationCounts",
	Fields: graphql.Fields{
		"patch":    &graphql.Field{Type: graphql.Int},
		"config":   &graphql.Field{Type: graphql.Int},
		"mitigate": &graphql.Field{Type: graphql.Int},
		"nofix":    &graphql.Field{Type: graphql.Int},
		"unknown":  &graphql.Field{Type: graphql.Int},
	},
})

// AppPathCountsType tallies applications by path confidence
var AppPathCountsType = graphql.NewObject(graphql.ObjectConfig{
	Name: "AppPathCounts",
	Fields: graphql.Fields{
		"with_install_path": &graphql.Field{Type: graphql.Int},
		"running_with_path": &graphql.Field{Type: graphql.Int},
	},
})

// HighlightsType represents the single-pass CVE insight digest
var HighlightsType = graphql.NewObject(graphql.ObjectConfig{
	Name: "HighlightInsights",
	Fields: graphql.Fields{
		"first_detected_at": &graphql.Field{Type: graphql.String},
		"last_detected_at":  &graphql.Field{Type: graphql.String},
		"match":             &graphql.Field{Type: MatchCountsType},
		"remediation":       &graphql.Field{Type: RemediationCountsType},
		"epss_high":         &graphql.Field{Type: graphql.Int},
		"epss_avg":          &graphql.Field{Type: graphql.Float},
		"apps":              &graphql.Field{Type: AppPathCountsType},
	},
})

// DevicePostureType represents the combined review-page payload
var DevicePostureType = graphql.NewObject(graphql.ObjectConfig{
	Name: "DevicePosture",
	Fields: graphql.Fields{
		"device_name":    &graphql.Field{Type: graphql.String},
		"device_state":   &graphql.Field{Type: graphql.String},
		"os":             &graphql.Field{Type: graphql.String},
		"app_count":      &graphql.Field{Type: graphql.Int},
		"cve_count":      &graphql.Field{Type: graphql.Int},
		"score":          &graphql.Field{Type: ScoreModelType},
		"metrics":        &graphql.Field{Type: KrMetricsType},
		"actions":        &graphql.Field{Type: graphql.NewList(ActionType)},
		"highlights":     &graphql.Field{Type: HighlightsType},
	},
})
