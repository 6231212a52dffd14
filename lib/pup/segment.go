// Copyright 2026 The Pupkit Authors
// SPDX-License-Identifier: Apache-2.0

package pup

import "fmt"

// Digest is a fixed 20-byte integrity value. Segment digests are
// HMAC values over the payload; this package stores them verbatim
// and never computes or verifies them.
type Digest [DigestSize]byte

// SegmentID identifies a segment. Well-known IDs map to conventional
// file names inside update packages; see [SegmentID.FileName]. The
// mapping is display-level convention only — the codec never
// interprets IDs.
type SegmentID uint64

// fileNames are the conventional file names for the well-known
// segment IDs, per https://www.psdevwiki.com/ps3/Playstation_Update_Package_(PUP).
var fileNames = map[SegmentID]string{
	0x100: "version.txt",
	0x101: "license.xml",
	0x102: "promo_flags.txt",
	0x103: "update_flags.txt",
	0x104: "patch_build.txt",
	0x200: "ps3swu.self",
	0x201: "vsh.tar",
	0x202: "dots.txt",
	0x203: "patch_data.pkg",
	0x300: "update_files.tar",
	0x501: "spkg_hdr.tar",
	0x601: "ps3swu2.self",
}

// FileName returns the conventional file name for a well-known
// segment ID. The second return is false for IDs with no known name.
func (id SegmentID) FileName() (string, bool) {
	name, ok := fileNames[id]
	return name, ok
}

// SegmentIDForFileName returns the segment ID conventionally stored
// under the given file name. The second return is false when the
// name is not one of the known mappings.
func SegmentIDForFileName(name string) (SegmentID, bool) {
	for id, known := range fileNames {
		if known == name {
			return id, true
		}
	}
	return 0, false
}

// String renders the ID in hex, the form used throughout PUP
// documentation and tooling.
func (id SegmentID) String() string {
	return fmt.Sprintf("%#x", uint64(id))
}

// SignatureKind is the algorithm a segment's digest was produced
// with. The numeric values are the on-disk wire codes.
type SignatureKind uint32

const (
	// HmacSha1 marks a segment signed with HMAC-SHA1.
	HmacSha1 SignatureKind = 0

	// HmacSha256 marks a segment signed with HMAC-SHA256.
	HmacSha256 SignatureKind = 2
)

// signatureKindFromCode validates a wire code against the known
// enumeration.
func signatureKindFromCode(code uint32) (SignatureKind, error) {
	switch kind := SignatureKind(code); kind {
	case HmacSha1, HmacSha256:
		return kind, nil
	default:
		return 0, &InvalidSignatureKindError{Code: code}
	}
}

// ParseSignatureKind parses the textual form used by CLI flags and
// manifests: "hmac-sha1" or "hmac-sha256".
func ParseSignatureKind(s string) (SignatureKind, error) {
	switch s {
	case "hmac-sha1":
		return HmacSha1, nil
	case "hmac-sha256":
		return HmacSha256, nil
	default:
		return 0, fmt.Errorf("pup: unknown signature kind %q (want \"hmac-sha1\" or \"hmac-sha256\")", s)
	}
}

func (k SignatureKind) String() string {
	switch k {
	case HmacSha1:
		return "HMAC-SHA1"
	case HmacSha256:
		return "HMAC-SHA256"
	default:
		return fmt.Sprintf("SignatureKind(%d)", uint32(k))
	}
}

// Segment is one payload stored inside a [Pup]: raw bytes plus the
// identity and integrity metadata recorded for it in the header
// tables.
//
// The digest is derived data, populated by [Decode] from the digest
// table. A freshly constructed segment carries a zero digest, which
// is what gets written until something signs the package.
type Segment struct {
	// ID identifies the segment. May or may not be one of the
	// well-known IDs.
	ID SegmentID

	// SignatureKind is the algorithm the digest was (or will be)
	// produced with.
	SignatureKind SignatureKind

	// Data is the raw payload. May be empty.
	Data []byte

	digest Digest
}

// NewSegment constructs a segment with a zero digest.
func NewSegment(id SegmentID, kind SignatureKind, data []byte) Segment {
	return Segment{ID: id, SignatureKind: kind, Data: data}
}

// Digest returns the segment's stored digest. Zero until the segment
// has been decoded from a signed package.
func (s *Segment) Digest() Digest {
	return s.digest
}
