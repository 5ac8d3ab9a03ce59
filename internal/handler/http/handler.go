package http

import (
	"github.com/MKhiriev/go-movie-favorites/internal/config"
	"github.com/MKhiriev/go-movie-favorites/internal/logger"
	"github.com/MKhiriev/go-movie-favorites/internal/service"
	"github.com/MKhiriev/go-movie-favorites/internal/utils"
)

// Handler serves the movie catalog and account API. Routes are built by
// Init.
type Handler struct {
	services *service.Services
	cfg      config.Server
	logger   *logger.Logger

	traceIDs *utils.UUIDGenerator
}

func NewHandler(services *service.Services, cfg config.Server, log *logger.Logger) *Handler {
	log.Info().
		Str("address", cfg.HTTPAddress).
		Strs("trusted_origins", cfg.TrustedOrigins).
		Msg("http handler created")

	return &Handler{
		services: services,
		cfg:      cfg,
		logger:   log,
		traceIDs: utils.NewUUIDGenerator(),
	}
}
