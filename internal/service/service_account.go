package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-movie-favorites/internal/logger"
	"github.com/MKhiriev/go-movie-favorites/internal/store"
	"github.com/MKhiriev/go-movie-favorites/models"
)

// accountService is the concrete implementation of AccountService.
// It handles registration, credential verification and profile changes
// using a UserRepository for persistence, a PasswordHasher for digests and
// a TokenService for issuing bearer tokens on login.
//
// Request validation is not done here; see NewAccountValidationService.
type accountService struct {
	// userRepository is the data-access layer used to create and look up users.
	userRepository store.UserRepository

	hasher PasswordHasher

	tokens TokenService

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewAccountService constructs an AccountService wired to the given
// repository, hasher and token service.
//
// The returned service is safe for concurrent use; all state is read-only after
// construction.
func NewAccountService(userRepository store.UserRepository, hasher PasswordHasher, tokens TokenService, logger *logger.Logger) AccountService {
	return &accountService{
		userRepository: userRepository,
		hasher:         hasher,
		tokens:         tokens,
		logger:         logger,
	}
}

// Register hashes the password and creates the account.
//
// Returns the persisted user (with a store-assigned UserID) or a wrapped
// storage error, e.g. store.ErrUsernameAlreadyExists.
func (a *accountService) Register(ctx context.Context, request models.RegisterRequest) (models.User, error) {
	log := logger.FromContext(ctx)

	hash, err := a.hasher.Hash(request.Password)
	if err != nil {
		log.Err(err).Str("func", "*accountService.Register").Msg("password hashing failed")
		return models.User{}, fmt.Errorf("password hashing failed: %w", err)
	}

	registeredUser, err := a.userRepository.CreateUser(ctx, models.User{
		Username:     request.Username,
		PasswordHash: hash,
		Email:        request.Email,
		DateOfBirth:  request.DateOfBirth,
	})
	if err != nil {
		log.Err(err).Str("func", "*accountService.Register").Str("username", request.Username).Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	return registeredUser, nil
}

// Login authenticates an existing user and issues a token for them.
//
// An unknown username and a wrong password both yield ErrInvalidCredentials,
// so a caller cannot tell which one failed.
func (a *accountService) Login(ctx context.Context, username, password string) (models.User, models.Token, error) {
	log := logger.FromContext(ctx)

	if username == "" || password == "" {
		return models.User{}, models.Token{}, ErrInvalidCredentials
	}

	foundUser, err := a.userRepository.FindUserByUsername(ctx, username)
	if errors.Is(err, store.ErrNoUserWasFound) {
		log.Info().Str("username", username).Msg("login attempt for unknown user")
		return models.User{}, models.Token{}, ErrInvalidCredentials
	}
	if err != nil {
		log.Err(err).Str("func", "*accountService.Login").Msg("user search by username failed")
		return models.User{}, models.Token{}, fmt.Errorf("user search by username failed: %w", err)
	}

	if !a.hasher.Verify(password, foundUser.PasswordHash) {
		log.Info().Str("username", username).Msg("wrong password")
		return models.User{}, models.Token{}, ErrInvalidCredentials
	}

	token, err := a.tokens.Issue(ctx, foundUser)
	if err != nil {
		log.Err(err).Str("func", "*accountService.Login").Msg("token creation failed")
		return models.User{}, models.Token{}, err
	}

	return foundUser, token, nil
}

func (a *accountService) GetUser(ctx context.Context, username string) (models.User, error) {
	return a.userRepository.FindUserByUsername(ctx, username)
}

func (a *accountService) ListUsers(ctx context.Context) ([]models.User, error) {
	return a.userRepository.ListUsers(ctx)
}

// UpdateProfile applies the supplied fields to the account. A new password
// is hashed before it reaches the store.
func (a *accountService) UpdateProfile(ctx context.Context, username string, request models.UpdateUserRequest) (models.User, error) {
	log := logger.FromContext(ctx)

	update := models.UserUpdate{
		Username:    request.Username,
		Email:       request.Email,
		DateOfBirth: request.DateOfBirth,
	}

	if request.Password != nil {
		hash, err := a.hasher.Hash(*request.Password)
		if err != nil {
			log.Err(err).Str("func", "*accountService.UpdateProfile").Msg("password hashing failed")
			return models.User{}, fmt.Errorf("password hashing failed: %w", err)
		}
		update.PasswordHash = &hash
	}

	if update.IsEmpty() {
		return models.User{}, ErrInvalidDataProvided
	}

	updatedUser, err := a.userRepository.UpdateUser(ctx, username, update)
	if err != nil {
		log.Err(err).Str("func", "*accountService.UpdateProfile").Str("username", username).Msg("user update ended with error")
		return models.User{}, fmt.Errorf("user update ended with error: %w", err)
	}

	return updatedUser, nil
}

func (a *accountService) Deregister(ctx context.Context, username string) error {
	if err := a.userRepository.DeleteUser(ctx, username); err != nil {
		return fmt.Errorf("user deletion ended with error: %w", err)
	}
	return nil
}
