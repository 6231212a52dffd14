// Copyright 2026 The Pupkit Authors
// SPDX-License-Identifier: Apache-2.0

// Package pupfile provides file-level operations on PUP containers:
// reading and decoding, encoding and writing, and the
// read-validate-mutate-write cycle the CLI's segment commands use.
//
// All operations follow the read-then-validate-then-write pattern: a
// failed decode or a failed mutation never writes anything, so a
// malformed or rejected file is left untouched on disk.
//
// The package also loads build manifests — YAML or JSONC files
// describing the segments a package should be assembled from — and
// builds packages from them.
package pupfile

import (
	"fmt"
	"os"

	"github.com/pupkit/pupkit/lib/pup"
)

// Read reads and decodes the PUP at path.
func Read(path string) (*pup.Pup, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	p, err := pup.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return p, nil
}

// Write encodes p and writes it to path, replacing any existing file.
func Write(path string, p *pup.Pup) error {
	if err := os.WriteFile(path, p.Encode(), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// Modify reads the PUP at path, applies mutate, and writes the result
// back. The file is not touched if reading, decoding, or mutate
// fails.
func Modify(path string, mutate func(*pup.Pup) error) error {
	p, err := Read(path)
	if err != nil {
		return err
	}
	if err := mutate(p); err != nil {
		return err
	}
	return Write(path, p)
}
