// Copyright 2026 The Pupkit Authors
// SPDX-License-Identifier: Apache-2.0

// Package pup implements the codec for the PS3 PUP (Playstation
// Update Package) container format: a fixed-layout binary container
// holding a variable number of identified, variable-length segments
// plus per-segment integrity digests, under a versioned header.
//
// The on-disk layout (all integers big-endian, all offsets absolute
// from the start of the buffer):
//
//   - Metadata (0x30 bytes): 8-byte magic, package version, image
//     version, segment count, header size, data size.
//   - Location table (segment count × 0x20 bytes): per-segment
//     {id, offset, size, signature kind}.
//   - Digest table (segment count × 0x20 bytes): per-segment
//     {segment index, 20-byte digest}.
//   - Header digest (0x14 bytes): opaque whole-header digest. Stored
//     and round-tripped verbatim; this package never verifies it.
//   - Zero padding up to the next 16-byte boundary.
//   - Segment data (data size bytes): raw segment payloads,
//     concatenated in index order at the offsets recorded in the
//     location table.
//
// [Decode] parses a byte buffer into a [Pup] with full bounds,
// magic, and version checking; [Pup.Encode] is the exact mirror and
// is byte-for-byte round-trippable. The header is never mutated in
// place: it is rebuilt from the current segment sequence on every
// encode, so location offsets are always contiguous and consistent
// with the segment order.
//
// Digest values are stored and transported opaquely. Computing or
// verifying the HMAC digests requires console keys and is out of
// scope for this package; a freshly constructed segment carries a
// zero digest.
package pup
