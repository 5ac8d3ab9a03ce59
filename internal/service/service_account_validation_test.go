package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-movie-favorites/models"
)

// ─────────────────────────────────────────────
// Mocks
// ─────────────────────────────────────────────

type mockInnerAccountService struct {
	registerFn func(ctx context.Context, req models.RegisterRequest) (models.User, error)
	updateFn   func(ctx context.Context, username string, req models.UpdateUserRequest) (models.User, error)
	calls      []string
}

func (m *mockInnerAccountService) Register(ctx context.Context, req models.RegisterRequest) (models.User, error) {
	m.calls = append(m.calls, "Register")
	if m.registerFn != nil {
		return m.registerFn(ctx, req)
	}
	return models.User{Username: req.Username}, nil
}

func (m *mockInnerAccountService) Login(ctx context.Context, username, password string) (models.User, models.Token, error) {
	m.calls = append(m.calls, "Login")
	return models.User{Username: username}, models.Token{}, nil
}

func (m *mockInnerAccountService) GetUser(ctx context.Context, username string) (models.User, error) {
	m.calls = append(m.calls, "GetUser")
	return models.User{Username: username}, nil
}

func (m *mockInnerAccountService) ListUsers(ctx context.Context) ([]models.User, error) {
	m.calls = append(m.calls, "ListUsers")
	return nil, nil
}

func (m *mockInnerAccountService) UpdateProfile(ctx context.Context, username string, req models.UpdateUserRequest) (models.User, error) {
	m.calls = append(m.calls, "UpdateProfile")
	if m.updateFn != nil {
		return m.updateFn(ctx, username, req)
	}
	return models.User{Username: username}, nil
}

func (m *mockInnerAccountService) Deregister(ctx context.Context, username string) error {
	m.calls = append(m.calls, "Deregister")
	return nil
}

func newValidationSvc(inner AccountService) AccountService {
	return NewAccountValidationService().Wrap(inner)
}

// ─────────────────────────────────────────────
// Register
// ─────────────────────────────────────────────

func TestAccountValidationService_Register_Valid_DelegatesToInner(t *testing.T) {
	inner := &mockInnerAccountService{}
	svc := newValidationSvc(inner)

	user, err := svc.Register(context.Background(), models.RegisterRequest{
		Username: "alice01",
		Password: "s3cret",
		Email:    "alice@example.com",
	})

	require.NoError(t, err)
	assert.Equal(t, "alice01", user.Username)
	assert.Equal(t, []string{"Register"}, inner.calls)
}

func TestAccountValidationService_Register_Invalid_InnerNotCalled(t *testing.T) {
	inner := &mockInnerAccountService{}
	svc := newValidationSvc(inner)

	_, err := svc.Register(context.Background(), models.RegisterRequest{Username: "bob", Email: "nope"})

	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Contains(t, ve.Fields, "username")
	assert.Contains(t, ve.Fields, "password")
	assert.Contains(t, ve.Fields, "email")
	assert.Empty(t, inner.calls)
}

// ─────────────────────────────────────────────
// UpdateProfile
// ─────────────────────────────────────────────

func TestAccountValidationService_UpdateProfile(t *testing.T) {
	t.Run("valid patch", func(t *testing.T) {
		inner := &mockInnerAccountService{}
		svc := newValidationSvc(inner)

		email := "new@example.com"
		_, err := svc.UpdateProfile(context.Background(), "alice01", models.UpdateUserRequest{Email: &email})
		require.NoError(t, err)
		assert.Equal(t, []string{"UpdateProfile"}, inner.calls)
	})

	t.Run("empty patch", func(t *testing.T) {
		inner := &mockInnerAccountService{}
		svc := newValidationSvc(inner)

		_, err := svc.UpdateProfile(context.Background(), "alice01", models.UpdateUserRequest{})
		var ve *ValidationError
		assert.True(t, errors.As(err, &ve))
		assert.Empty(t, inner.calls)
	})

	t.Run("invalid supplied field", func(t *testing.T) {
		inner := &mockInnerAccountService{}
		svc := newValidationSvc(inner)

		name := "a!"
		_, err := svc.UpdateProfile(context.Background(), "alice01", models.UpdateUserRequest{Username: &name})
		var ve *ValidationError
		require.True(t, errors.As(err, &ve))
		assert.Contains(t, ve.Fields, "username")
		assert.Empty(t, inner.calls)
	})
}

// ─────────────────────────────────────────────
// Pass-through
// ─────────────────────────────────────────────

func TestAccountValidationService_PassThrough(t *testing.T) {
	inner := &mockInnerAccountService{}
	svc := newValidationSvc(inner)
	ctx := context.Background()

	_, _, _ = svc.Login(ctx, "alice01", "pw")
	_, _ = svc.GetUser(ctx, "alice01")
	_, _ = svc.ListUsers(ctx)
	_ = svc.Deregister(ctx, "alice01")

	assert.Equal(t, []string{"Login", "GetUser", "ListUsers", "Deregister"}, inner.calls)
}
