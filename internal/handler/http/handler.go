package http

import (
	"time"

	"github.com/MKhiriev/go-item-custody/internal/config"
	"github.com/MKhiriev/go-item-custody/internal/logger"
	"github.com/MKhiriev/go-item-custody/internal/service"
	"github.com/MKhiriev/go-item-custody/internal/utils"
	"github.com/MKhiriev/go-item-custody/internal/validators"
)

type Handler struct {
	services  *service.Services
	validator validators.Validator
	traceIDs  *utils.UUIDGenerator

	// publicHost and publicPort are put into confirmation URLs.
	publicHost string
	publicPort int

	requestTimeout time.Duration
	allowedOrigins []string

	logger *logger.Logger
}

func NewHandler(services *service.Services, app config.App, server config.Server, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services:       services,
		validator:      validators.NewRequestValidator(),
		traceIDs:       utils.NewUUIDGenerator(),
		publicHost:     app.PublicHost,
		publicPort:     app.PublicPort,
		requestTimeout: server.RequestTimeout,
		allowedOrigins: server.AllowedOrigins,
		logger:         logger,
	}
}
