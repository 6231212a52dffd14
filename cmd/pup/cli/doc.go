// Copyright 2026 The Pupkit Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli is the small command framework behind the pup binary:
// a tree of [Command] values dispatched by name, with pflag flag
// parsing, struct-tag flag binding ([BindFlags]), optional JSON
// output ([JSONOutput]), and close-match suggestions for mistyped
// commands and flags.
package cli
