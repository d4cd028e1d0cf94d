// Package posture defines the GraphQL queries for the device review page.
package posture

import (
	"github.com/graphql-go/graphql"

	"github.com/secwatch/posture-backend/internal/services"
)

// GetQueryFields returns the posture queries to be mounted in the root schema
func GetQueryFields(svc *services.ProfileService) graphql.Fields {
	return graphql.Fields{
		// Combined review-page payload: score, metrics, actions, highlights
		"devicePosture": &graphql.Field{
			Type: DevicePostureType,
			Args: graphql.FieldConfigArgument{
				"name": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				name := p.Args["name"].(string)
				return ResolveDevicePosture(svc, name)
			},
		},
		// Daily detection buckets for the trend chart
		"deviceTrend": &graphql.Field{
			Type: graphql.NewList(TrendPointType),
			Args: graphql.FieldConfigArgument{
				"name": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				"days": &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 7},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				name := p.Args["name"].(string)
				days := p.Args["days"].(int)
				return ResolveTrend(svc, name, days)
			},
		},
	}
}
