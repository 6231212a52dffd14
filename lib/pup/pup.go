// Copyright 2026 The Pupkit Authors
// SPDX-License-Identifier: Apache-2.0

package pup

// Pup is the decoded, in-memory representation of one PUP container.
//
// Segment order is meaningful: the position of a segment in the
// slice is its index, and both header tables refer to segments by
// that index. Mutations (insert, remove, append) operate on the
// slice directly; the header is rebuilt from the slice on every
// [Pup.Encode], so there is no header state to keep in sync.
type Pup struct {
	// Segments are the payloads contained in the package, in index
	// order.
	Segments []Segment

	// ImageVersion is the opaque, caller-supplied image version
	// recorded in the metadata.
	ImageVersion uint64
}

// New allocates an empty package with the given image version.
func New(imageVersion uint64) *Pup {
	return &Pup{ImageVersion: imageVersion}
}

// Decode parses a complete PUP buffer.
//
// The header is decoded first (magic, version, table sizing). Each
// segment is then reassembled from three places: its location-table
// entry, the digest-table entry referencing its index, and the slice
// of the data region the location entry points at. Payload bytes are
// copied out of data, so the returned package does not alias the
// caller's buffer.
//
// The first violated invariant aborts the whole decode; there is no
// partial-success mode.
func Decode(data []byte) (*Pup, error) {
	hdr, err := parseHeader(data)
	if err != nil {
		return nil, err
	}

	segments := make([]Segment, len(hdr.locations))
	for i := range hdr.locations {
		entry := &hdr.locations[i]
		index := uint64(i)

		digest, ok := hdr.digestFor(index)
		if !ok {
			return nil, &MissingDigestError{Index: index}
		}

		end := entry.offset + entry.length
		if end < entry.offset || end > uint64(len(data)) {
			return nil, &MissingDataError{Index: index}
		}

		segments[i] = Segment{
			ID:            entry.id,
			SignatureKind: entry.sigKind,
			Data:          append([]byte(nil), data[entry.offset:end]...),
			digest:        digest,
		}
	}

	return &Pup{
		Segments:     segments,
		ImageVersion: hdr.meta.imageVersion,
	}, nil
}

// Encode serializes the package to a fresh buffer.
//
// A header is derived from the current segment sequence, written at
// the start, and each segment's payload is copied to the offset its
// location entry records. Encoding a well-formed in-memory package
// never fails; derivation overflow (a package whose sizes cannot
// exist in a 64-bit address space) panics.
//
// The result is deterministic and round-trip exact: Decode(Encode(p))
// is structurally equal to p, with segment digests carried verbatim.
// The whole-header digest is written as zero; producing it requires
// console keys and happens outside this package.
func (p *Pup) Encode() []byte {
	hdr := deriveHeader(p)

	total := hdr.meta.headerSize + hdr.meta.dataSize
	if total < hdr.meta.headerSize {
		panic("pup: total package size overflows uint64")
	}

	buf := make([]byte, total)
	copy(buf, hdr.encode())
	for i := range hdr.locations {
		entry := &hdr.locations[i]
		copy(buf[entry.offset:entry.offset+entry.length], p.Segments[i].Data)
	}
	return buf
}
