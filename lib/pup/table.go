// Copyright 2026 The Pupkit Authors
// SPDX-License-Identifier: Apache-2.0

package pup

// parseTable decodes a tightly packed sequence of fixed-size entries.
// The input length must be an exact multiple of the entry size;
// anything else is rejected with [ErrUndersized] rather than silently
// truncating a trailing partial entry. The entry count is driven by
// the caller's slice, not self-described.
func parseTable[E any, PE regionPtr[E]](data []byte) ([]E, error) {
	entrySize := PE(new(E)).encodedSize()
	if len(data)%entrySize != 0 {
		return nil, ErrUndersized
	}

	entries := make([]E, len(data)/entrySize)
	for i := range entries {
		window := data[i*entrySize : (i+1)*entrySize]
		if err := PE(&entries[i]).parse(window); err != nil {
			return nil, err
		}
	}
	return entries, nil
}

// appendTable appends each entry's fixed-size encoding to dst in
// sequence order.
func appendTable[E any, PE regionPtr[E]](dst []byte, entries []E) []byte {
	for i := range entries {
		dst = PE(&entries[i]).appendTo(dst)
	}
	return dst
}
