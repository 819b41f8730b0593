package handler

import (
	"github.com/MKhiriev/go-item-custody/internal/config"
	"github.com/MKhiriev/go-item-custody/internal/handler/http"
	"github.com/MKhiriev/go-item-custody/internal/logger"
	"github.com/MKhiriev/go-item-custody/internal/service"
)

// Handlers holds the transport handlers enabled by configuration.
type Handlers struct {
	HTTP *http.Handler
}

func NewHandlers(services *service.Services, app config.App, server config.Server, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	handlers := &Handlers{}

	if server.HTTPAddress != "" {
		handlers.HTTP = http.NewHandler(services, app, server, logger)
	}

	if handlers.HTTP == nil {
		return nil, errNoHTTPAddress
	}

	return handlers, nil
}
