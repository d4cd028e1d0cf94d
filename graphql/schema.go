// Package graphql assembles the root schema from the module query fields.
package graphql

import (
	"github.com/graphql-go/graphql"

	"github.com/secwatch/posture-backend/graphql/modules/posture"
	"github.com/secwatch/posture-backend/internal/services"
)

// CreateSchema builds the root query schema over the profile service.
func CreateSchema(svc *services.ProfileService) (graphql.Schema, error) {
	fields := graphql.Fields{}
	for name, field := range posture.GetQueryFields(svc) {
		fields[name] = field
	}

	rootQuery := graphql.NewObject(graphql.ObjectConfig{
		Name:   "Query",
		Fields: fields,
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query: rootQuery,
	})
}
