package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-movie-favorites/internal/validators"
	"github.com/MKhiriev/go-movie-favorites/models"
)

// AccountValidationService checks account requests before handing them to
// the wrapped AccountService. Reads and deletions pass straight through.
type AccountValidationService struct {
	inner     AccountService
	validator validators.Validator
}

func NewAccountValidationService() AccountServiceWrapper {
	return &AccountValidationService{
		validator: validators.NewUserValidator(),
	}
}

func (v *AccountValidationService) Register(ctx context.Context, request models.RegisterRequest) (models.User, error) {
	if err := v.validator.Validate(ctx, request); err != nil {
		return models.User{}, fmt.Errorf("error during user validation before registration: %w", err)
	}

	return v.inner.Register(ctx, request)
}

func (v *AccountValidationService) Login(ctx context.Context, username, password string) (models.User, models.Token, error) {
	return v.inner.Login(ctx, username, password)
}

func (v *AccountValidationService) GetUser(ctx context.Context, username string) (models.User, error) {
	return v.inner.GetUser(ctx, username)
}

func (v *AccountValidationService) ListUsers(ctx context.Context) ([]models.User, error) {
	return v.inner.ListUsers(ctx)
}

func (v *AccountValidationService) UpdateProfile(ctx context.Context, username string, request models.UpdateUserRequest) (models.User, error) {
	if err := v.validator.Validate(ctx, request); err != nil {
		return models.User{}, fmt.Errorf("error during user validation before update: %w", err)
	}

	return v.inner.UpdateProfile(ctx, username, request)
}

func (v *AccountValidationService) Deregister(ctx context.Context, username string) error {
	return v.inner.Deregister(ctx, username)
}

func (v *AccountValidationService) Wrap(wrapped AccountService) AccountService {
	v.inner = wrapped
	return v
}
