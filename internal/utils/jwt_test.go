package utils

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateJWTToken_Success(t *testing.T) {
	issuer := "test-issuer"
	duration := time.Hour
	key := "secret-key"

	token, err := GenerateJWTToken(issuer, "alice01", duration, key)

	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if token.SignedString == "" {
		t.Error("expected non-empty SignedString")
	}
	if token.Username != "alice01" {
		t.Errorf("expected username alice01, got %s", token.Username)
	}
	if !token.ExpiresAt.After(token.IssuedAt) {
		t.Error("expected expiry after issuance")
	}

	// Verify claims
	claims := &jwt.RegisteredClaims{}
	_, _, err = jwt.NewParser().ParseUnverified(token.SignedString, claims)
	if err != nil {
		t.Fatalf("could not parse token: %v", err)
	}
	if claims.Issuer != issuer {
		t.Errorf("expected issuer %s, got %s", issuer, claims.Issuer)
	}
	if claims.Subject != "alice01" {
		t.Errorf("expected subject 'alice01', got %s", claims.Subject)
	}
}

func TestGenerateJWTToken_InvalidParams(t *testing.T) {
	tests := []struct {
		name     string
		issuer   string
		username string
		duration time.Duration
		key      string
	}{
		{"empty issuer", "", "alice01", time.Hour, "key"},
		{"empty username", "iss", "", time.Hour, "key"},
		{"zero duration", "iss", "alice01", 0, "key"},
		{"empty key", "iss", "alice01", time.Hour, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := GenerateJWTToken(tt.issuer, tt.username, tt.duration, tt.key)
			if err == nil {
				t.Error("expected error for invalid parameters, got nil")
			}
		})
	}
}

func TestValidateAndParseJWTToken_Success(t *testing.T) {
	issuer := "test-issuer"
	key := "secret-key"

	genToken, err := GenerateJWTToken(issuer, "bob123", 5*time.Minute, key)
	require.NoError(t, err)

	parsedToken, err := ValidateAndParseJWTToken(genToken.SignedString, key, issuer)

	require.NoError(t, err)
	assert.Equal(t, "bob123", parsedToken.Username)
	assert.Equal(t, genToken.SignedString, parsedToken.SignedString)
}

func TestValidateAndParseJWTToken_InvalidKey(t *testing.T) {
	genToken, _ := GenerateJWTToken("test-issuer", "alice01", time.Hour, "correct-key")

	_, err := ValidateAndParseJWTToken(genToken.SignedString, "wrong-key", "test-issuer")
	if err == nil {
		t.Error("expected error due to signature mismatch, got nil")
	}
	if errors.Is(err, ErrTokenExpired) {
		t.Error("signature mismatch must not be reported as expiry")
	}
}

func TestValidateAndParseJWTToken_Expired(t *testing.T) {
	key := "key"
	// Token that expired 1 second ago
	genToken, _ := GenerateJWTToken("test-issuer", "alice01", -time.Second, key)

	_, err := ValidateAndParseJWTToken(genToken.SignedString, key, "test-issuer")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTokenExpired)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestValidateAndParseJWTToken_WrongIssuer(t *testing.T) {
	key := "key"
	genToken, _ := GenerateJWTToken("real-issuer", "alice01", time.Hour, key)

	_, err := ValidateAndParseJWTToken(genToken.SignedString, key, "fake-issuer")
	if err == nil {
		t.Error("expected error for issuer mismatch, got nil")
	}
}

func TestValidateAndParseJWTToken_Malformed(t *testing.T) {
	_, err := ValidateAndParseJWTToken("not.a.token", "key", "iss")
	if err == nil {
		t.Error("expected error for malformed token string, got nil")
	}
}

func TestValidateAndParseJWTToken_Tampered(t *testing.T) {
	key := "key"
	genToken, _ := GenerateJWTToken("iss", "alice01", time.Hour, key)

	tampered := []byte(genToken.SignedString)
	last := len(tampered) - 1
	if tampered[last] == 'A' {
		tampered[last] = 'B'
	} else {
		tampered[last] = 'A'
	}

	_, err := ValidateAndParseJWTToken(string(tampered), key, "iss")
	assert.Error(t, err)
}

func TestValidateAndParseJWTToken_RejectsNoneAlgorithm(t *testing.T) {
	claims := &jwt.RegisteredClaims{
		Issuer:    "iss",
		Subject:   "alice01",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = ValidateAndParseJWTToken(unsigned, "key", "iss")
	assert.Error(t, err)
}

func TestValidateAndParseJWTToken_MissingExpiry(t *testing.T) {
	claims := &jwt.RegisteredClaims{Issuer: "iss", Subject: "alice01"}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("key"))
	require.NoError(t, err)

	_, err = ValidateAndParseJWTToken(signed, "key", "iss")
	assert.Error(t, err)
}

func TestParseBearerToken(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		want    string
		wantErr bool
	}{
		{name: "bearer", header: "Bearer abc.def", want: "abc.def"},
		{name: "lowercase scheme", header: "bearer abc", want: "abc"},
		{name: "surrounding spaces", header: "  Bearer   abc  ", want: "abc"},
		{name: "basic scheme", header: "Basic dXNlcjpwYXNz", wantErr: true},
		{name: "no token", header: "Bearer", wantErr: true},
		{name: "extra parts", header: "Bearer a b", wantErr: true},
		{name: "empty", header: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseBearerToken(tt.header)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
