package service

import (
	"github.com/MKhiriev/go-movie-favorites/internal/utils"
)

// bcryptHasher is the bcrypt implementation of PasswordHasher.
type bcryptHasher struct {
	cost int
}

// NewPasswordHasher returns a bcrypt PasswordHasher. A cost outside the
// range accepted by bcrypt falls back to bcrypt.DefaultCost.
func NewPasswordHasher(cost int) PasswordHasher {
	return &bcryptHasher{cost: cost}
}

func (h *bcryptHasher) Hash(password string) (string, error) {
	return utils.HashPassword(password, h.cost)
}

func (h *bcryptHasher) Verify(password, hash string) bool {
	return utils.CheckPassword(hash, password) == nil
}
