// Copyright 2026 The Pupkit Authors
// SPDX-License-Identifier: Apache-2.0

package pup

import (
	"encoding/binary"
)

// magic is the PUP file signature: the ASCII string "SCEUF"
// zero-padded to 8 bytes so the package-version field lands at
// offset 0x08.
var magic = [MagicSize]byte{'S', 'C', 'E', 'U', 'F', 0, 0, 0}

// supportedPackageVersion is the only package-format version this
// codec reads or writes.
const supportedPackageVersion = 1

// metadata is the fixed 0x30-byte preamble of every PUP: magic,
// package version, image version, segment count, header size, and
// data size, all big-endian u64 after the magic.
type metadata struct {
	imageVersion uint64
	segCount     uint64
	headerSize   uint64
	dataSize     uint64
}

func (m *metadata) encodedSize() int { return metadataSize }

func (m *metadata) parse(window []byte) error {
	var actual [MagicSize]byte
	copy(actual[:], window[0x00:0x08])
	if actual != magic {
		return &InvalidMagicError{Magic: actual}
	}

	if version := binary.BigEndian.Uint64(window[0x08:0x10]); version != supportedPackageVersion {
		return &UnsupportedVersionError{Version: version}
	}

	m.imageVersion = binary.BigEndian.Uint64(window[0x10:0x18])
	m.segCount = binary.BigEndian.Uint64(window[0x18:0x20])
	m.headerSize = binary.BigEndian.Uint64(window[0x20:0x28])
	m.dataSize = binary.BigEndian.Uint64(window[0x28:0x30])
	return nil
}

func (m *metadata) appendTo(dst []byte) []byte {
	dst = append(dst, magic[:]...)
	dst = binary.BigEndian.AppendUint64(dst, supportedPackageVersion)
	dst = binary.BigEndian.AppendUint64(dst, m.imageVersion)
	dst = binary.BigEndian.AppendUint64(dst, m.segCount)
	dst = binary.BigEndian.AppendUint64(dst, m.headerSize)
	dst = binary.BigEndian.AppendUint64(dst, m.dataSize)
	return dst
}

// deriveMetadata computes the metadata for the given segment
// sequence. The header size is fully determined by the segment
// count: metadata + both tables + the trailing header digest,
// rounded up to the next 16-byte boundary. The data size is the sum
// of all payload lengths.
//
// Overflow in either sum panics: a segment sequence whose sizes
// exceed uint64 cannot be represented in the format at all, so this
// is an impossible request rather than bad external input.
func deriveMetadata(segments []Segment, imageVersion uint64) metadata {
	headerSize := headerSizeFor(len(segments))

	var dataSize uint64
	for i := range segments {
		length := uint64(len(segments[i].Data))
		if dataSize+length < dataSize {
			panic("pup: total data size overflows uint64")
		}
		dataSize += length
	}

	return metadata{
		imageVersion: imageVersion,
		segCount:     uint64(len(segments)),
		headerSize:   headerSize,
		dataSize:     dataSize,
	}
}

// headerSizeFor returns the total encoded header size, including
// padding, for a package with the given segment count.
func headerSizeFor(segCount int) uint64 {
	size := uint64(metadataSize)
	size += uint64(segCount) * locationEntrySize
	size += uint64(segCount) * digestEntrySize
	size += DigestSize
	aligned := alignUp(size)
	if aligned < size {
		panic("pup: header size overflows uint64")
	}
	return aligned
}
