// Copyright 2026 The Pupkit Authors
// SPDX-License-Identifier: Apache-2.0

package pup

// Layout constants for the fixed-size regions of the format. Sizes
// are part of the on-disk contract and never change within package
// version 1.
const (
	// MagicSize is the byte length of the file signature.
	MagicSize = 8

	// DigestSize is the byte length of every digest in the format:
	// per-segment digests in the digest table and the whole-header
	// digest trailing it.
	DigestSize = 0x14

	metadataSize      = 0x30
	locationEntrySize = 0x20
	digestEntrySize   = 0x20

	// headerAlignment is the boundary the encoded header is padded
	// to. The segment data region always begins at a multiple of 16.
	headerAlignment = 0x10
)

// A region is a binary structure with an exact encoded size.
//
// parse receives a window of exactly encodedSize() bytes and must not
// read outside it. appendTo appends exactly encodedSize() bytes to
// dst. For every valid value, parse(appendTo(nil)) reproduces it.
type region interface {
	encodedSize() int
	parse(window []byte) error
	appendTo(dst []byte) []byte
}

// regionPtr constrains a pointer-to-entry type to the region
// contract, so table code can parse directly into value slices.
type regionPtr[E any] interface {
	*E
	region
}

// alignUp rounds n up to the next multiple of headerAlignment.
func alignUp(n uint64) uint64 {
	return (n + headerAlignment - 1) &^ (headerAlignment - 1)
}
