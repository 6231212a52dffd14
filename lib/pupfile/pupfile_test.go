// Copyright 2026 The Pupkit Authors
// SPDX-License-Identifier: Apache-2.0

package pupfile

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/pupkit/pupkit/lib/pup"
)

func TestReadWriteRoundtrip(t *testing.T) {
	directory := t.TempDir()
	path := filepath.Join(directory, "test.pup")

	original := pup.New(0x46000)
	original.Segments = append(original.Segments,
		pup.NewSegment(0x100, pup.HmacSha1, []byte("4.60\n")))

	if err := Write(path, original); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	read, err := Read(path)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if read.ImageVersion != 0x46000 {
		t.Errorf("image version = %#x, want 0x46000", read.ImageVersion)
	}
	if len(read.Segments) != 1 || !bytes.Equal(read.Segments[0].Data, []byte("4.60\n")) {
		t.Error("segment payload did not survive the round trip")
	}
}

func TestReadMissingFile(t *testing.T) {
	_, err := Read(filepath.Join(t.TempDir(), "absent.pup"))
	if err == nil {
		t.Fatal("Read of a missing file succeeded")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Read error = %v, want to wrap os.ErrNotExist", err)
	}
}

func TestReadRejectsCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "garbage.pup")
	if err := os.WriteFile(path, []byte("not a pup"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Read(path); !errors.Is(err, pup.ErrUndersized) {
		t.Errorf("Read = %v, want to wrap ErrUndersized", err)
	}
}

func TestModify(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.pup")
	if err := Write(path, pup.New(7)); err != nil {
		t.Fatal(err)
	}

	err := Modify(path, func(p *pup.Pup) error {
		p.Segments = append(p.Segments, pup.NewSegment(0x100, pup.HmacSha1, []byte("x")))
		return nil
	})
	if err != nil {
		t.Fatalf("Modify failed: %v", err)
	}

	read, err := Read(path)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if len(read.Segments) != 1 {
		t.Errorf("segment count = %d, want 1", len(read.Segments))
	}
}

func TestModifyDoesNotWriteOnFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.pup")
	if err := Write(path, pup.New(7)); err != nil {
		t.Fatal(err)
	}
	before, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	mutateErr := errors.New("rejected")
	err = Modify(path, func(p *pup.Pup) error {
		p.Segments = append(p.Segments, pup.NewSegment(1, pup.HmacSha1, []byte("x")))
		return mutateErr
	})
	if !errors.Is(err, mutateErr) {
		t.Fatalf("Modify = %v, want the mutate error", err)
	}

	after, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(before, after) {
		t.Error("Modify wrote the file despite a failed mutation")
	}
}

func TestModifyDoesNotWriteOnBadDecode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "garbage.pup")
	garbage := []byte("definitely not a pup file")
	if err := os.WriteFile(path, garbage, 0o644); err != nil {
		t.Fatal(err)
	}

	err := Modify(path, func(p *pup.Pup) error { return nil })
	if err == nil {
		t.Fatal("Modify of a corrupt file succeeded")
	}

	after, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(garbage, after) {
		t.Error("Modify rewrote a file it failed to decode")
	}
}
