package config

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Token formats accepted by App.TokenFormat.
const (
	TokenFormatJWT    = "jwt"
	TokenFormatPASETO = "paseto"
)

// Database drivers accepted by DB.Driver.
const (
	DriverPostgres = "pgx"
	DriverSQLite   = "sqlite3"
)

const (
	defaultTokenIssuer    = "movie-favorites-api"
	defaultTokenDuration  = 7 * 24 * time.Hour
	defaultHTTPAddress    = "localhost:8080"
	defaultRequestTimeout = 30 * time.Second
	defaultLogLevel       = "info"
	defaultEnvFile        = ".env"
)

func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			PasswordHashCost: bcrypt.DefaultCost,
			TokenIssuer:      defaultTokenIssuer,
			TokenDuration:    defaultTokenDuration,
			TokenFormat:      TokenFormatJWT,
			LogLevel:         defaultLogLevel,
		},
		Storage: Storage{
			DB: DB{
				Driver: DriverPostgres,
			},
		},
		Server: Server{
			HTTPAddress:    defaultHTTPAddress,
			RequestTimeout: defaultRequestTimeout,
		},
		EnvFilePath: defaultEnvFile,
	}
}
