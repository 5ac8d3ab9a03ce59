package handler

import (
	"github.com/MKhiriev/go-movie-favorites/internal/config"
	"github.com/MKhiriev/go-movie-favorites/internal/handler/http"
	"github.com/MKhiriev/go-movie-favorites/internal/logger"
	"github.com/MKhiriev/go-movie-favorites/internal/service"
)

type Handlers struct {
	HTTP *http.Handler
}

func NewHandlers(services *service.Services, cfg config.Server, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	if cfg.HTTPAddress == "" {
		return nil, errNoHandlersAreCreated
	}
	if services == nil {
		return nil, errNoServices
	}

	return &Handlers{
		HTTP: http.NewHandler(services, cfg, logger),
	}, nil
}
