// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package logger configures log/slog for the server and CLI.
//
//	logger.Init(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
//
// After Init, package-level slog calls use the configured handler.
package logger
