// Copyright 2026 The Pupkit Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"log/slog"
	"os"

	"golang.org/x/term"
)

// NewCommandLogger creates a structured logger for CLI command
// diagnostics. When stderr is a terminal, it uses slog.TextHandler
// for human-readable output; when stderr is piped or redirected (CI,
// scripts), it uses slog.JSONHandler for machine-parseable output.
// Diagnostics go to stderr so they never mix with command output on
// stdout.
//
// Callers scope the logger with command context via With():
//
//	logger := cli.NewCommandLogger().With("command", "segment/insert")
func NewCommandLogger() *slog.Logger {
	var handler slog.Handler
	options := &slog.HandlerOptions{Level: slog.LevelInfo}
	if term.IsTerminal(int(os.Stderr.Fd())) {
		handler = slog.NewTextHandler(os.Stderr, options)
	} else {
		handler = slog.NewJSONHandler(os.Stderr, options)
	}
	return slog.New(handler)
}
