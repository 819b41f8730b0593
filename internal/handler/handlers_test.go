package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-item-custody/internal/config"
	"github.com/MKhiriev/go-item-custody/internal/logger"
	"github.com/MKhiriev/go-item-custody/internal/service"
)

// TestNewHandlers_HTTPAddress verifies that a configured HTTP address yields
// an HTTP handler.
func TestNewHandlers_HTTPAddress(t *testing.T) {
	cfg := config.Server{HTTPAddress: ":8080"}

	h, err := NewHandlers(&service.Services{}, config.App{PublicHost: "localhost", PublicPort: 8080}, cfg, logger.Nop())

	require.NoError(t, err)
	require.NotNil(t, h)
	assert.NotNil(t, h.HTTP, "expected HTTP handler to be initialised")
}

// TestNewHandlers_NoAddress verifies that without an HTTP address
// NewHandlers returns errNoHTTPAddress and a nil *Handlers.
func TestNewHandlers_NoAddress(t *testing.T) {
	h, err := NewHandlers(&service.Services{}, config.App{}, config.Server{}, logger.Nop())

	require.ErrorIs(t, err, errNoHTTPAddress)
	assert.Nil(t, h)
}

// TestNewHandlers_RouterBuilds verifies that the created handler produces a
// router with the public routes registered.
func TestNewHandlers_RouterBuilds(t *testing.T) {
	h, err := NewHandlers(&service.Services{}, config.App{}, config.Server{HTTPAddress: ":8080"}, logger.Nop())
	require.NoError(t, err)

	router := h.HTTP.Init()
	patterns := make([]string, 0)
	for _, route := range router.Routes() {
		patterns = append(patterns, route.Pattern)
	}

	assert.Contains(t, patterns, "/registration")
	assert.Contains(t, patterns, "/login")
	assert.Contains(t, patterns, "/items/new")
	assert.Contains(t, patterns, "/items/{id}")
	assert.Contains(t, patterns, "/send")
	assert.Contains(t, patterns, "/get/{item_token}/{recipient_token}")
}
