package service

import (
	"fmt"

	"github.com/MKhiriev/go-movie-favorites/internal/config"
	"github.com/MKhiriev/go-movie-favorites/internal/logger"
	"github.com/MKhiriev/go-movie-favorites/internal/store"
	"github.com/MKhiriev/go-movie-favorites/models"
)

type Services struct {
	AccountService   AccountService
	TokenService     TokenService
	FavoritesService FavoritesService
	MovieService     MovieService
	AppInfoService   AppInfoService
}

func NewServices(storages *store.Storages, cfg config.App, buildInfo models.AppBuildInfo, logger *logger.Logger) (*Services, error) {
	tokens, err := NewTokenService(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("error creating token service: %w", err)
	}

	accounts := NewAccountService(storages.UserRepository, NewPasswordHasher(cfg.PasswordHashCost), tokens, logger)

	return &Services{
		AccountService:   NewAccountValidationService().Wrap(accounts),
		TokenService:     tokens,
		FavoritesService: NewFavoritesService(storages.UserRepository, logger),
		MovieService:     NewMovieService(storages.MovieRepository, logger),
		AppInfoService:   NewAppInfoService(buildInfo, logger),
	}, nil
}
