// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for salesbrief.
//
// Supports both TOML and JSON configuration formats, with sensible defaults,
// environment variable overrides, and validation.
//
// # Key Types
//
//   - Config: Main configuration structure
//   - ServiceConfig: Insight service URL, timeout and pacing
//   - UIConfig: Dashboard defaults and markdown style
//   - LogConfig: Rotating log file settings
//
// # Configuration Precedence
//
// Configuration is loaded from (in order of precedence):
//   - Environment variables (SALESBRIEF_*)
//   - ~/.salesbrief/config.toml
//   - ~/.salesbrief/config.json
//   - Built-in defaults
//
// # Usage
//
//	cfg, path, err := config.Load()
//	if err != nil {
//	    return err
//	}
//	client := insight.NewClient(&insight.ClientConfig{BaseURL: cfg.Service.BaseURL})
//
// The loaded Config is passed down explicitly; there is no package-level
// instance.
package config
