package utils

import "github.com/google/uuid"

// UUIDGenerator produces request trace identifiers. UUIDv7 values sort by
// creation time, which keeps trace ids in log order.
type UUIDGenerator struct{}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

// Generate falls back to a random UUIDv4 if a v7 value cannot be produced.
func (g *UUIDGenerator) Generate() string {
	if id, err := uuid.NewV7(); err == nil {
		return id.String()
	}
	return uuid.NewString()
}
