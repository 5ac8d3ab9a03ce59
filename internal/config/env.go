// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// loadDotEnv loads KEY=VALUE pairs from path into the process environment.
// Variables that are already set are left untouched, so the real
// environment always wins over the file.
func loadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("error loading dotenv file %q: %w", path, err)
	}

	return nil
}

// parseEnv fills cfg from the environment following the env and envPrefix
// tags of [StructuredConfig]. Unset variables leave fields at their zero
// value so the builder can merge the result over the defaults.
func parseEnv(cfg *StructuredConfig) error {
	if err := env.ParseWithOptions(cfg, env.Options{}); err != nil {
		return fmt.Errorf("error getting env configs: %w", err)
	}

	return nil
}
