// Copyright 2026 The Pupkit Authors
// SPDX-License-Identifier: Apache-2.0

package pup

import (
	"encoding/binary"
	"math"
)

// locationEntry records where one segment's payload lives in the
// buffer. Offsets are absolute (they include the header), so entry i
// for a freshly derived header is headerSize plus the lengths of
// segments 0..i-1.
type locationEntry struct {
	id      SegmentID
	offset  uint64
	length  uint64
	sigKind SignatureKind
}

func (e *locationEntry) encodedSize() int { return locationEntrySize }

func (e *locationEntry) parse(window []byte) error {
	e.id = SegmentID(binary.BigEndian.Uint64(window[0x00:0x08]))
	e.offset = binary.BigEndian.Uint64(window[0x08:0x10])
	e.length = binary.BigEndian.Uint64(window[0x10:0x18])

	kind, err := signatureKindFromCode(binary.BigEndian.Uint32(window[0x18:0x1C]))
	if err != nil {
		return err
	}
	e.sigKind = kind

	// Bytes 0x1C..0x20 are reserved.
	return nil
}

func (e *locationEntry) appendTo(dst []byte) []byte {
	dst = binary.BigEndian.AppendUint64(dst, uint64(e.id))
	dst = binary.BigEndian.AppendUint64(dst, e.offset)
	dst = binary.BigEndian.AppendUint64(dst, e.length)
	dst = binary.BigEndian.AppendUint32(dst, uint32(e.sigKind))
	return append(dst, 0, 0, 0, 0)
}

// digestEntry pairs a segment with its digest. The segment index is
// stored explicitly — lookups go through the stored index, never the
// entry's position in the table.
type digestEntry struct {
	segIndex uint64
	digest   Digest
}

func (e *digestEntry) encodedSize() int { return digestEntrySize }

func (e *digestEntry) parse(window []byte) error {
	e.segIndex = binary.BigEndian.Uint64(window[0x00:0x08])
	copy(e.digest[:], window[0x08:0x1C])

	// Bytes 0x1C..0x20 are reserved.
	return nil
}

func (e *digestEntry) appendTo(dst []byte) []byte {
	dst = binary.BigEndian.AppendUint64(dst, e.segIndex)
	dst = append(dst, e.digest[:]...)
	return append(dst, 0, 0, 0, 0)
}

// header is the non-payload prefix of an encoded PUP: metadata, the
// two tables, and the trailing whole-header digest. It is transient —
// rebuilt from the segment sequence on every encode and never held
// across mutations.
type header struct {
	meta         metadata
	locations    []locationEntry
	digests      []digestEntry
	headerDigest Digest
}

// parseHeader slices the buffer front-to-back: metadata, location
// table, digest table, header digest. Each region is decoded by its
// own codec; any slice that would run past the buffer end fails with
// [ErrUndersized].
func parseHeader(data []byte) (*header, error) {
	if len(data) < metadataSize {
		return nil, ErrUndersized
	}
	var h header
	if err := h.meta.parse(data[:metadataSize]); err != nil {
		return nil, err
	}
	rest := data[metadataSize:]

	// The stored segment count sizes both tables. Guard the
	// multiplication so a hostile count cannot overflow into a
	// small slice bound.
	if h.meta.segCount > math.MaxInt/(locationEntrySize+digestEntrySize) {
		return nil, ErrUndersized
	}
	locTableSize := int(h.meta.segCount) * locationEntrySize
	digTableSize := int(h.meta.segCount) * digestEntrySize

	if len(rest) < locTableSize {
		return nil, ErrUndersized
	}
	locations, err := parseTable[locationEntry](rest[:locTableSize])
	if err != nil {
		return nil, err
	}
	h.locations = locations
	rest = rest[locTableSize:]

	if len(rest) < digTableSize {
		return nil, ErrUndersized
	}
	digests, err := parseTable[digestEntry](rest[:digTableSize])
	if err != nil {
		return nil, err
	}
	h.digests = digests
	rest = rest[digTableSize:]

	if len(rest) < DigestSize {
		return nil, ErrUndersized
	}
	copy(h.headerDigest[:], rest[:DigestSize])

	return &h, nil
}

// deriveHeader builds the header for the package's current segment
// sequence. Segments are laid out contiguously in index order
// starting at the derived header size; the digest table pairs each
// segment's stored digest with its index. The header digest is left
// zero — writing it is the signing collaborator's job.
func deriveHeader(p *Pup) *header {
	meta := deriveMetadata(p.Segments, p.ImageVersion)

	locations := make([]locationEntry, len(p.Segments))
	digests := make([]digestEntry, len(p.Segments))

	offset := meta.headerSize
	for i := range p.Segments {
		segment := &p.Segments[i]
		length := uint64(len(segment.Data))

		locations[i] = locationEntry{
			id:      segment.ID,
			offset:  offset,
			length:  length,
			sigKind: segment.SignatureKind,
		}
		digests[i] = digestEntry{
			segIndex: uint64(i),
			digest:   segment.digest,
		}

		if offset+length < offset {
			panic("pup: segment offset overflows uint64")
		}
		offset += length
	}

	return &header{meta: meta, locations: locations, digests: digests}
}

// digestFor finds the digest entry referencing the given segment
// index. Entries are not guaranteed sorted or positionally aligned,
// so this is a linear scan over the stored indices.
func (h *header) digestFor(segIndex uint64) (Digest, bool) {
	for i := range h.digests {
		if h.digests[i].segIndex == segIndex {
			return h.digests[i].digest, true
		}
	}
	return Digest{}, false
}

// encode produces the full header region: metadata, both tables, the
// header digest, and zero padding out to the derived header size.
// headerSize was computed from the same segments being encoded, so
// the unpadded bytes exceeding it is a programming error, not an
// input error.
func (h *header) encode() []byte {
	buf := make([]byte, 0, h.meta.headerSize)
	buf = h.meta.appendTo(buf)
	buf = appendTable(buf, h.locations)
	buf = appendTable(buf, h.digests)
	buf = append(buf, h.headerDigest[:]...)

	if uint64(len(buf)) > h.meta.headerSize {
		panic("pup: encoded header exceeds derived header size")
	}
	return append(buf, make([]byte, h.meta.headerSize-uint64(len(buf)))...)
}
