// Copyright 2026 The Pupkit Authors
// SPDX-License-Identifier: Apache-2.0

package segment

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/pupkit/pupkit/lib/pup"
	"github.com/pupkit/pupkit/lib/pupfile"
)

func writePup(t *testing.T, path string, p *pup.Pup) {
	t.Helper()
	if err := pupfile.Write(path, p); err != nil {
		t.Fatal(err)
	}
}

func TestInsertDerivesIDFromFileName(t *testing.T) {
	directory := t.TempDir()
	pupPath := filepath.Join(directory, "test.pup")
	segmentPath := filepath.Join(directory, "version.txt")

	writePup(t, pupPath, pup.New(0))
	if err := os.WriteFile(segmentPath, []byte("4.60\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := Command().Execute([]string{"insert", pupPath, segmentPath}); err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	p, err := pupfile.Read(pupPath)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if len(p.Segments) != 1 {
		t.Fatalf("segment count = %d, want 1", len(p.Segments))
	}
	if p.Segments[0].ID != 0x100 {
		t.Errorf("segment id = %v, want 0x100 (derived from version.txt)", p.Segments[0].ID)
	}
	if !bytes.Equal(p.Segments[0].Data, []byte("4.60\n")) {
		t.Error("segment payload mismatch")
	}
}

func TestInsertAtIndex(t *testing.T) {
	directory := t.TempDir()
	pupPath := filepath.Join(directory, "test.pup")
	segmentPath := filepath.Join(directory, "new.bin")

	existing := pup.New(0)
	existing.Segments = append(existing.Segments,
		pup.NewSegment(1, pup.HmacSha1, []byte("a")),
		pup.NewSegment(2, pup.HmacSha1, []byte("b")))
	writePup(t, pupPath, existing)

	if err := os.WriteFile(segmentPath, []byte("middle"), 0o644); err != nil {
		t.Fatal(err)
	}

	err := Command().Execute([]string{"insert", pupPath, segmentPath, "--index", "1", "--id", "0x999"})
	if err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	p, err := pupfile.Read(pupPath)
	if err != nil {
		t.Fatal(err)
	}
	ids := []pup.SegmentID{p.Segments[0].ID, p.Segments[1].ID, p.Segments[2].ID}
	if ids[0] != 1 || ids[1] != 0x999 || ids[2] != 2 {
		t.Errorf("segment order = %v, want [0x1 0x999 0x2]", ids)
	}
}

func TestInsertIndexOutOfBounds(t *testing.T) {
	directory := t.TempDir()
	pupPath := filepath.Join(directory, "test.pup")
	segmentPath := filepath.Join(directory, "seg.bin")

	writePup(t, pupPath, pup.New(0))
	if err := os.WriteFile(segmentPath, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	err := Command().Execute([]string{"insert", pupPath, segmentPath, "--index", "5"})
	if err == nil {
		t.Fatal("insert past the end succeeded")
	}

	// The file must be untouched after a rejected edit.
	p, readErr := pupfile.Read(pupPath)
	if readErr != nil {
		t.Fatal(readErr)
	}
	if len(p.Segments) != 0 {
		t.Error("rejected insert modified the file")
	}
}

func TestRemoveClampsIndex(t *testing.T) {
	directory := t.TempDir()
	pupPath := filepath.Join(directory, "test.pup")

	existing := pup.New(0)
	existing.Segments = append(existing.Segments,
		pup.NewSegment(1, pup.HmacSha1, []byte("a")),
		pup.NewSegment(2, pup.HmacSha1, []byte("b")))
	writePup(t, pupPath, existing)

	// Index 99 clamps to the last segment.
	if err := Command().Execute([]string{"remove", pupPath, "--index", "99"}); err != nil {
		t.Fatalf("remove failed: %v", err)
	}

	p, err := pupfile.Read(pupPath)
	if err != nil {
		t.Fatal(err)
	}
	if len(p.Segments) != 1 || p.Segments[0].ID != 1 {
		t.Errorf("remaining segments = %+v, want only id 0x1", p.Segments)
	}
}

func TestRemoveEmptyPackage(t *testing.T) {
	pupPath := filepath.Join(t.TempDir(), "test.pup")
	writePup(t, pupPath, pup.New(0))

	if err := Command().Execute([]string{"remove", pupPath}); err == nil {
		t.Fatal("remove from an empty package succeeded")
	}
}

func TestExtract(t *testing.T) {
	directory := t.TempDir()
	pupPath := filepath.Join(directory, "test.pup")
	outputPath := filepath.Join(directory, "out.bin")

	existing := pup.New(0)
	existing.Segments = append(existing.Segments,
		pup.NewSegment(1, pup.HmacSha1, []byte("first")),
		pup.NewSegment(2, pup.HmacSha1, []byte("second")))
	writePup(t, pupPath, existing)

	err := Command().Execute([]string{"extract", pupPath, outputPath, "--index", "1"})
	if err != nil {
		t.Fatalf("extract failed: %v", err)
	}

	extracted, err := os.ReadFile(outputPath)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(extracted, []byte("second")) {
		t.Errorf("extracted %q, want %q", extracted, "second")
	}
}

func TestExtractIndexOutOfBounds(t *testing.T) {
	directory := t.TempDir()
	pupPath := filepath.Join(directory, "test.pup")
	writePup(t, pupPath, pup.New(0))

	err := Command().Execute([]string{"extract", pupPath, filepath.Join(directory, "out.bin")})
	if err == nil {
		t.Fatal("extract from an empty package succeeded")
	}
}

func TestDeriveID(t *testing.T) {
	cases := []struct {
		path string
		want pup.SegmentID
		ok   bool
	}{
		{"version.txt", 0x100, true},
		{"/some/dir/update_files.tar", 0x300, true},
		{"0x200.bin", 0x200, true},
		{"mystery.bin", 0, false},
	}
	for _, c := range cases {
		id, ok := deriveID(c.path)
		if ok != c.ok || id != c.want {
			t.Errorf("deriveID(%q) = %v, %v, want %v, %v", c.path, id, ok, c.want, c.ok)
		}
	}
}
