// Package services provides internal service implementations for the posture backend.
package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/secwatch/posture-backend/database"
	"github.com/secwatch/posture-backend/internal/cache"
	"github.com/secwatch/posture-backend/model"
	"github.com/secwatch/posture-backend/posture"
)

// ProfileService loads raw device payloads, normalizes them, and keeps
// the normalized profiles in a TTL cache. All derived views (scores,
// metrics, trends) are computed by callers from the returned profile.
type ProfileService struct {
	DB     database.DBConnection
	Cache  *cache.Store
	Logger *zap.Logger
}

// NewProfileService wires a profile service with its cache store.
func NewProfileService(db database.DBConnection, store *cache.Store, logger *zap.Logger) *ProfileService {
	return &ProfileService{DB: db, Cache: store, Logger: logger}
}

// GetProfile returns the normalized profile for one device, serving
// from cache within the TTL. A nil profile with nil error means the
// device is unknown.
func (s *ProfileService) GetProfile(ctx context.Context, deviceName string) (*model.NormalizedProfile, error) {
	if profile, ok := s.Cache.Get(deviceName); ok {
		return profile, nil
	}

	raw, err := s.DB.FetchRawProfile(ctx, deviceName)
	if err != nil {
		s.Logger.Error("failed to fetch raw profile", zap.String("device", deviceName), zap.Error(err))
		return nil, err
	}
	if raw == nil {
		return nil, nil
	}

	profile := posture.Normalize(raw)
	s.Cache.Set(deviceName, profile)
	s.Logger.Info("normalized device profile",
		zap.String("device", deviceName),
		zap.Int("apps", profile.Apps.Count),
		zap.Int("cves", profile.Cves.Count))
	return profile, nil
}

// Refresh drops the cached profile so the next read renormalizes.
func (s *ProfileService) Refresh(deviceName string) {
	s.Cache.Invalidate(deviceName)
}

// ListDevices returns known device names.
func (s *ProfileService) ListDevices(ctx context.Context, limit int) ([]string, error) {
	return s.DB.ListDeviceNames(ctx, limit)
}
