// Package devices provides the REST handlers for the single-device
// posture review page: the normalized profile plus every derived view.
package devices

import (
	"net/url"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/secwatch/posture-backend/internal/services"
	"github.com/secwatch/posture-backend/model"
	"github.com/secwatch/posture-backend/posture"
)

func deviceName(c *fiber.Ctx) string {
	name := c.Params("name")
	if decoded, err := url.QueryUnescape(name); err == nil {
		return decoded
	}
	return name
}

// loadProfile fetches the normalized profile or writes the 404/500
// response. A nil return means the response has been written.
func loadProfile(c *fiber.Ctx, svc *services.ProfileService) *model.NormalizedProfile {
	profile, err := svc.GetProfile(c.Context(), deviceName(c))
	if err != nil {
		_ = c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load device profile"})
		return nil
	}
	if profile == nil {
		_ = c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "device not found"})
		return nil
	}
	return profile
}

// GetProfile returns the full normalized profile.
func GetProfile(svc *services.ProfileService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		profile := loadProfile(c, svc)
		if profile == nil {
			return nil
		}
		return c.JSON(profile)
	}
}

// GetScore returns the composite risk assessment.
func GetScore(svc *services.ProfileService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		profile := loadProfile(c, svc)
		if profile == nil {
			return nil
		}
		return c.JSON(posture.Score(profile, time.Now().UTC()))
	}
}

// GetMetrics returns the key-risk metrics.
func GetMetrics(svc *services.ProfileService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		profile := loadProfile(c, svc)
		if profile == nil {
			return nil
		}
		return c.JSON(posture.Metrics(profile))
	}
}

// GetActions returns the prioritized action plan.
func GetActions(svc *services.ProfileService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		profile := loadProfile(c, svc)
		if profile == nil {
			return nil
		}
		return c.JSON(posture.DeriveActions(profile, time.Now().UTC()))
	}
}

// GetHighlights returns the CVE insight digest.
func GetHighlights(svc *services.ProfileService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		profile := loadProfile(c, svc)
		if profile == nil {
			return nil
		}
		return c.JSON(posture.Highlights(profile))
	}
}

// GetTrend returns the daily detection buckets. days defaults to the
// configured window and is clamped to [1,30] by the aggregator.
func GetTrend(svc *services.ProfileService, defaultDays int) fiber.Handler {
	return func(c *fiber.Ctx) error {
		profile := loadProfile(c, svc)
		if profile == nil {
			return nil
		}
		days := c.QueryInt("days", defaultDays)
		if c.QueryBool("metrics", false) {
			return c.JSON(posture.TrendMetrics(profile, days, time.Now().UTC()))
		}
		return c.JSON(posture.Trend(profile, days, time.Now().UTC()))
	}
}

// ListApps returns the filtered, sorted application list.
func ListApps(svc *services.ProfileService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		profile := loadProfile(c, svc)
		if profile == nil {
			return nil
		}
		facets := model.AppFacets{
			Search:    c.Query("search"),
			RiskLevel: model.AppRiskLevel(c.Query("riskLevel")),
			Status:    c.Query("status"),
			SortBy:    c.Query("sortBy"),
		}
		items := posture.FilterApps(profile.Apps.Items, facets)
		return c.JSON(fiber.Map{
			"items":   items,
			"count":   len(items),
			"summary": profile.Apps.Summary,
		})
	}
}

// ListCves returns the filtered, sorted vulnerability list.
func ListCves(svc *services.ProfileService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		profile := loadProfile(c, svc)
		if profile == nil {
			return nil
		}
		facets := model.CveFacets{
			Search:           c.Query("search"),
			Severity:         model.Severity(c.Query("severity")),
			KnownExploitOnly: c.QueryBool("knownExploitOnly", false),
			MatchBucket:      c.Query("matchBucket"),
			Remediation:      c.Query("remediation"),
			AppName:          c.Query("appName"),
			SortBy:           c.Query("sortBy"),
		}
		items := posture.FilterCves(profile.Cves.Items, facets)
		return c.JSON(fiber.Map{
			"items":   items,
			"count":   len(items),
			"summary": profile.Cves.Summary,
		})
	}
}

// Refresh drops the cached profile so the next read renormalizes.
func Refresh(svc *services.ProfileService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		svc.Refresh(deviceName(c))
		return c.JSON(fiber.Map{"status": "refreshed"})
	}
}

// List returns the known device names.
func List(svc *services.ProfileService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		names, err := svc.ListDevices(c.Context(), c.QueryInt("limit", 100))
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to list devices"})
		}
		if names == nil {
			names = []string{}
		}
		return c.JSON(fiber.Map{"devices": names})
	}
}
