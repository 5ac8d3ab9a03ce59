package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// fileConfig mirrors StructuredConfig with JSON keys. Durations are written
// as Go duration strings ("30s") or as integer nanoseconds.
type fileConfig struct {
	App     fileApp     `json:"app"`
	Storage fileStorage `json:"storage"`
	Server  fileServer  `json:"server"`
}

type fileApp struct {
	PasswordHashCost int      `json:"password_hash_cost"`
	TokenSignKey     string   `json:"token_sign_key"`
	TokenIssuer      string   `json:"token_issuer"`
	TokenDuration    Duration `json:"token_duration"`
	TokenFormat      string   `json:"token_format"`
	LogLevel         string   `json:"log_level"`
}

type fileStorage struct {
	DB DB `json:"db"`
}

type fileServer struct {
	HTTPAddress    string   `json:"http_address"`
	RequestTimeout Duration `json:"request_timeout"`
	TrustedOrigins []string `json:"trusted_origins"`
}

// parseJSON reads the config file at path. Unknown keys are rejected so a
// misspelled setting does not silently fall back to its default.
func parseJSON(path string) (*StructuredConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()

	var fc fileConfig
	if err = dec.Decode(&fc); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	return fc.toStructured(), nil
}

func (fc fileConfig) toStructured() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			PasswordHashCost: fc.App.PasswordHashCost,
			TokenSignKey:     fc.App.TokenSignKey,
			TokenIssuer:      fc.App.TokenIssuer,
			TokenDuration:    time.Duration(fc.App.TokenDuration),
			TokenFormat:      fc.App.TokenFormat,
			LogLevel:         fc.App.LogLevel,
		},
		Storage: Storage{DB: fc.Storage.DB},
		Server: Server{
			HTTPAddress:    fc.Server.HTTPAddress,
			RequestTimeout: time.Duration(fc.Server.RequestTimeout),
			TrustedOrigins: fc.Server.TrustedOrigins,
		},
	}
}

// Duration is a time.Duration that decodes from "1h30m" style strings as
// well as from integer nanoseconds.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		parsed, err := time.ParseDuration(s)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", s, err)
		}
		*d = Duration(parsed)
		return nil
	}

	var ns int64
	if err := json.Unmarshal(b, &ns); err != nil {
		return fmt.Errorf("duration must be a string or integer nanoseconds: %w", err)
	}
	*d = Duration(ns)
	return nil
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
