// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

package main

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// Config holds all CLI configuration options.
type Config struct {
	// Threshold is the state-visit count above which a run is treated as a
	// possible infinite loop. Zero disables the check.
	Threshold int `koanf:"threshold"`
	// Batch is how many steps run between loop checks.
	Batch int `koanf:"batch"`
	// History is the path of the SQLite run-history database.
	History string `koanf:"history"`
	// NoHistory disables run recording entirely.
	NoHistory bool   `koanf:"no-history"`
	LogLevel  string `koanf:"log-level"`
	LogFile   string `koanf:"log-file"`
}

// Default configuration values.
const (
	DefaultThreshold = 500
	DefaultBatch     = 100
	DefaultHistory   = "turing.db"
	DefaultLogLevel  = "warn"
)

// loadConfig loads configuration from defaults, environment variables and
// flags. Precedence (highest to lowest): flags > env vars > defaults.
func loadConfig(flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(map[string]interface{}{
		"threshold": DefaultThreshold,
		"batch":     DefaultBatch,
		"history":   DefaultHistory,
		"log-level": DefaultLogLevel,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Transform: TURING_LOG_LEVEL -> log-level
	if err := k.Load(env.Provider("TURING_", ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, "TURING_")), "_", "-")
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.Provider(flags, ".", k), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if cfg.Batch <= 0 {
		cfg.Batch = DefaultBatch
	}
	return &cfg, nil
}
