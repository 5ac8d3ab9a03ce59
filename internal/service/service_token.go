package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"aidanwoods.dev/go-paseto"

	"github.com/MKhiriev/go-movie-favorites/internal/config"
	"github.com/MKhiriev/go-movie-favorites/internal/logger"
	"github.com/MKhiriev/go-movie-favorites/internal/utils"
	"github.com/MKhiriev/go-movie-favorites/models"
)

// NewTokenService returns the TokenService selected by cfg.TokenFormat.
func NewTokenService(cfg config.App, logger *logger.Logger) (TokenService, error) {
	switch cfg.TokenFormat {
	case config.TokenFormatJWT, "":
		return NewJWTTokenService(cfg, logger), nil
	case config.TokenFormatPASETO:
		return NewPasetoTokenService(cfg, logger)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownTokenFormat, cfg.TokenFormat)
	}
}

// jwtTokenService issues HS256 JWTs. Only HS256 tokens with the configured
// issuer are accepted back.
type jwtTokenService struct {
	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	tokenIssuer string

	tokenDuration time.Duration

	logger *logger.Logger
}

func NewJWTTokenService(cfg config.App, logger *logger.Logger) TokenService {
	return &jwtTokenService{
		tokenSignKey:  cfg.TokenSignKey,
		tokenIssuer:   cfg.TokenIssuer,
		tokenDuration: cfg.TokenDuration,
		logger:        logger,
	}
}

// Issue creates a signed JWT whose subject is the user's username.
func (s *jwtTokenService) Issue(ctx context.Context, user models.User) (models.Token, error) {
	token, err := utils.GenerateJWTToken(s.tokenIssuer, user.Username, s.tokenDuration, s.tokenSignKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

func (s *jwtTokenService) Verify(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, s.tokenSignKey, s.tokenIssuer)
	if err != nil {
		return models.Token{}, verificationError(ctx, err)
	}

	return token, nil
}

// pasetoTokenService issues v4.local PASETO tokens.
type pasetoTokenService struct {
	key           paseto.V4SymmetricKey
	tokenIssuer   string
	tokenDuration time.Duration

	logger *logger.Logger
}

// NewPasetoTokenService derives the symmetric key from cfg.TokenSignKey.
func NewPasetoTokenService(cfg config.App, logger *logger.Logger) (TokenService, error) {
	key, err := utils.NewPasetoKey(cfg.TokenSignKey)
	if err != nil {
		return nil, fmt.Errorf("cannot create PASETO token service: %w", err)
	}

	return &pasetoTokenService{
		key:           key,
		tokenIssuer:   cfg.TokenIssuer,
		tokenDuration: cfg.TokenDuration,
		logger:        logger,
	}, nil
}

func (s *pasetoTokenService) Issue(ctx context.Context, user models.User) (models.Token, error) {
	token, err := utils.GeneratePasetoToken(s.tokenIssuer, user.Username, s.tokenDuration, s.key)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

func (s *pasetoTokenService) Verify(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParsePasetoToken(tokenString, s.key, s.tokenIssuer)
	if err != nil {
		return models.Token{}, verificationError(ctx, err)
	}

	return token, nil
}

// verificationError collapses every token failure into ErrTokenIsExpired or
// ErrTokenIsInvalid so callers never inspect library errors.
func verificationError(ctx context.Context, err error) error {
	logger.FromContext(ctx).Debug().Err(err).Str("func", "verificationError").Msg("token rejected")

	if errors.Is(err, utils.ErrTokenExpired) {
		return ErrTokenIsExpired
	}
	return ErrTokenIsInvalid
}
