package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/secwatch/posture-backend/model"
)

func TestStoreSetGet(t *testing.T) {
	s := New(time.Minute)
	profile := &model.NormalizedProfile{Device: model.Device{Name: "laptop-1"}}

	_, ok := s.Get("laptop-1")
	assert.False(t, ok)

	s.Set("laptop-1", profile)
	got, ok := s.Get("laptop-1")
	require.True(t, ok)
	assert.Same(t, profile, got)
}

func TestStoreZeroTTLUsesDefault(t *testing.T) {
	s := New(0)
	s.Set("x", &model.NormalizedProfile{})

	_, ok := s.Get("x")
	assert.True(t, ok)
}

func TestStoreNegativeTTLExpiresImmediately(t *testing.T) {
	s := New(-time.Second)
	s.Set("x", &model.NormalizedProfile{})

	_, ok := s.Get("x")
	assert.False(t, ok)
}

func TestStoreInvalidate(t *testing.T) {
	s := New(time.Minute)
	s.Set("a", &model.NormalizedProfile{})
	s.Set("b", &model.NormalizedProfile{})

	s.Invalidate("a")

	_, ok := s.Get("a")
	assert.False(t, ok)
	_, ok = s.Get("b")
	assert.True(t, ok)
}

func TestStoreClear(t *testing.T) {
	s := New(time.Minute)
	s.Set("a", &model.NormalizedProfile{})
	s.Set("b", &model.NormalizedProfile{})

	s.Clear()

	_, ok := s.Get("a")
	assert.False(t, ok)
	_, ok = s.Get("b")
	assert.False(t, ok)
}
