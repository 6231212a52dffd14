// Copyright 2026 The Pupkit Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"testing"
)

func TestBindFlagsTypes(t *testing.T) {
	type params struct {
		File    string   `flag:"file,f" desc:"package path"`
		Index   int      `flag:"index,n" desc:"segment index" default:"0"`
		ID      uint64   `flag:"id,x" desc:"segment id"`
		Verbose bool     `flag:"verbose" desc:"verbose output"`
		Labels  []string `flag:"label" desc:"labels"`
	}

	var p params
	flagSet := FlagsFromParams("test", &p)

	err := flagSet.Parse([]string{
		"--file", "a.pup",
		"-n", "2",
		"--id", "0x100",
		"--verbose",
		"--label", "one", "--label", "two",
	})
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if p.File != "a.pup" {
		t.Errorf("File = %q", p.File)
	}
	if p.Index != 2 {
		t.Errorf("Index = %d", p.Index)
	}
	if p.ID != 0x100 {
		t.Errorf("ID = %#x, want 0x100 (hex flag values must parse)", p.ID)
	}
	if !p.Verbose {
		t.Error("Verbose = false")
	}
	if len(p.Labels) != 2 {
		t.Errorf("Labels = %v", p.Labels)
	}
}

func TestBindFlagsDefaults(t *testing.T) {
	type params struct {
		Kind string `flag:"sig-kind" desc:"signature kind" default:"hmac-sha1"`
		ID   uint64 `flag:"id" desc:"segment id" default:"0x200"`
	}

	var p params
	flagSet := FlagsFromParams("test", &p)
	if err := flagSet.Parse(nil); err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if p.Kind != "hmac-sha1" {
		t.Errorf("Kind default = %q", p.Kind)
	}
	if p.ID != 0x200 {
		t.Errorf("ID default = %#x, want 0x200", p.ID)
	}
}

func TestBindFlagsEmbedded(t *testing.T) {
	type params struct {
		JSONOutput
		File string `flag:"file" desc:"package path"`
	}

	var p params
	flagSet := FlagsFromParams("test", &p)
	if err := flagSet.Parse([]string{"--json", "--file", "a.pup"}); err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if !p.OutputJSON {
		t.Error("embedded --json flag not bound")
	}
}

func TestBindFlagsRejectsNonPointer(t *testing.T) {
	type params struct{}
	flagSet := FlagsFromParams("test", &params{}) // fine
	_ = flagSet

	defer func() {
		if recover() == nil {
			t.Error("FlagsFromParams with a non-pointer did not panic")
		}
	}()
	FlagsFromParams("test", params{})
}

func TestBindFlagsRejectsUnsupportedType(t *testing.T) {
	type params struct {
		Ratio float32 `flag:"ratio" desc:"unsupported"`
	}

	defer func() {
		if recover() == nil {
			t.Error("FlagsFromParams with an unsupported field type did not panic")
		}
	}()
	FlagsFromParams("test", &params{})
}
