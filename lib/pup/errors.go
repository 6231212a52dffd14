// Copyright 2026 The Pupkit Authors
// SPDX-License-Identifier: Apache-2.0

package pup

import (
	"errors"
	"fmt"
)

// ErrUndersized is returned when the buffer is shorter than a region
// the header claims is present: a truncated metadata block, a table
// whose byte count is not an exact multiple of the entry size, or a
// trailing header digest that runs past the end of the buffer.
var ErrUndersized = errors.New("pup: buffer too small for required region")

// InvalidMagicError is returned when the first bytes of the buffer do
// not match the PUP file signature.
type InvalidMagicError struct {
	// Magic is the signature actually found in the buffer.
	Magic [MagicSize]byte
}

func (e *InvalidMagicError) Error() string {
	return fmt.Sprintf("pup: magic %q is invalid", e.Magic[:])
}

// UnsupportedVersionError is returned when the package-format version
// field is not a version this codec understands. The only supported
// version is 1.
type UnsupportedVersionError struct {
	// Version is the package version stored in the metadata.
	Version uint64
}

func (e *UnsupportedVersionError) Error() string {
	return fmt.Sprintf("pup: package version %d is unsupported", e.Version)
}

// InvalidSignatureKindError is returned when a location-table entry
// carries a signature-kind code outside the known enumeration. A
// single bad entry fails the whole parse.
type InvalidSignatureKindError struct {
	// Code is the wire value found in the entry.
	Code uint32
}

func (e *InvalidSignatureKindError) Error() string {
	return fmt.Sprintf("pup: signature kind %d is invalid", e.Code)
}

// MissingDigestError is returned when no digest-table entry
// references the segment at the given index. Digest entries refer to
// segments by stored index, not by table position, so every segment
// must be referenced by exactly one entry.
type MissingDigestError struct {
	// Index is the segment index with no digest entry.
	Index uint64
}

func (e *MissingDigestError) Error() string {
	return fmt.Sprintf("pup: digest for segment %d is missing", e.Index)
}

// MissingDataError is returned when a location-table entry's
// offset+size range runs past the end of the buffer.
type MissingDataError struct {
	// Index is the segment index whose data range is out of bounds.
	Index uint64
}

func (e *MissingDataError) Error() string {
	return fmt.Sprintf("pup: data for segment %d is missing", e.Index)
}
