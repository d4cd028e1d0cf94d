// Package restapi provides the main router and initialization for REST API endpoints.
package restapi

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/graphql-go/graphql"

	"github.com/secwatch/posture-backend/internal/config"
	"github.com/secwatch/posture-backend/internal/services"
	"github.com/secwatch/posture-backend/restapi/modules/devices"
)

// SetupRoutes configures all REST API routes and the GraphQL endpoint.
func SetupRoutes(app *fiber.App, svc *services.ProfileService, schema graphql.Schema, cfg *config.Config) {
	// API Group /api/v1
	api := app.Group("/api/v1")

	// GraphQL Route - Mounted within the api group to inherit path prefixes
	api.Post("/graphql", GraphQLHandler(schema))

	// Device posture routes
	api.Get("/devices", devices.List(svc))

	device := api.Group("/devices/:name")
	device.Get("/profile", devices.GetProfile(svc))
	device.Get("/score", devices.GetScore(svc))
	device.Get("/metrics", devices.GetMetrics(svc))
	device.Get("/actions", devices.GetActions(svc))
	device.Get("/highlights", devices.GetHighlights(svc))
	device.Get("/trend", devices.GetTrend(svc, cfg.TrendDaysDefault))
	device.Get("/apps", devices.ListApps(svc))
	device.Get("/cves", devices.ListCves(svc))
	device.Post("/refresh", devices.Refresh(svc))

	log.Println("API routes initialized successfully")
}
