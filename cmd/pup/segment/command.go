// Copyright 2026 The Pupkit Authors
// SPDX-License-Identifier: Apache-2.0

// Package segment implements the "pup segment" CLI subcommands for
// editing the segment sequence of a PUP file: insert, remove, and
// extract.
//
// All edits go through the read-validate-mutate-write cycle in
// lib/pupfile, so a file that fails to decode is never modified.
package segment

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/pflag"

	"github.com/pupkit/pupkit/cmd/pup/cli"
	"github.com/pupkit/pupkit/lib/pup"
	"github.com/pupkit/pupkit/lib/pupfile"
)

// Command returns the "segment" group with all subcommands.
func Command() *cli.Command {
	return &cli.Command{
		Name:    "segment",
		Summary: "Edit a package's segments (insert, remove, extract)",
		Subcommands: []*cli.Command{
			insertCommand(),
			removeCommand(),
			extractCommand(),
		},
		Examples: []cli.Example{
			{
				Description: "Insert version.txt at the front (ID derived from the name)",
				Command:     "pup segment insert PS3UPDAT.PUP version.txt",
			},
			{
				Description: "Extract the second segment",
				Command:     "pup segment extract PS3UPDAT.PUP out.bin --index 1",
			},
		},
	}
}

type insertParams struct {
	Index   int    `flag:"index,n" desc:"insertion index" default:"0"`
	ID      uint64 `flag:"id,x" desc:"segment ID (hex or decimal; derived from the file name if omitted)"`
	SigKind string `flag:"sig-kind" desc:"signature kind: hmac-sha1 or hmac-sha256" default:"hmac-sha1"`
}

func insertCommand() *cli.Command {
	var params insertParams

	return &cli.Command{
		Name:    "insert",
		Summary: "Insert a segment into a package",
		Usage:   "pup segment insert <file> <segment-file> [flags]",
		Description: `Insert the contents of a file as a new segment.

When --id is omitted, the ID is derived from the segment file's name
via the well-known name table (e.g. "version.txt" is 0x100), falling
back to 0. The new segment's digest is zero until something signs
the package.`,
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("insert", &params)
		},
		Run: func(args []string) error {
			if len(args) != 2 {
				return fmt.Errorf("expected <file> <segment-file>\n\nRun 'pup segment insert --help' for usage.")
			}
			pupPath, segmentPath := args[0], args[1]

			kind, err := pup.ParseSignatureKind(params.SigKind)
			if err != nil {
				return err
			}

			data, err := os.ReadFile(segmentPath)
			if err != nil {
				return fmt.Errorf("reading %s: %w", segmentPath, err)
			}

			id := pup.SegmentID(params.ID)
			if params.ID == 0 {
				if derived, ok := deriveID(segmentPath); ok {
					id = derived
					cli.NewCommandLogger().With("command", "segment/insert").Info(
						"segment ID derived from file name", "id", id.String())
				}
			}

			return pupfile.Modify(pupPath, func(p *pup.Pup) error {
				if params.Index < 0 || params.Index > len(p.Segments) {
					return fmt.Errorf("index %d is out of bounds (package has %d segments)",
						params.Index, len(p.Segments))
				}

				segment := pup.NewSegment(id, kind, data)
				p.Segments = append(p.Segments[:params.Index],
					append([]pup.Segment{segment}, p.Segments[params.Index:]...)...)
				return nil
			})
		},
	}
}

type removeParams struct {
	Index int `flag:"index,n" desc:"segment index" default:"0"`
}

func removeCommand() *cli.Command {
	var params removeParams

	return &cli.Command{
		Name:    "remove",
		Summary: "Remove a segment from a package",
		Usage:   "pup segment remove <file> [flags]",
		Description: `Remove the segment at --index. An index past the end removes the
last segment.`,
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("remove", &params)
		},
		Run: func(args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("expected exactly one file argument\n\nRun 'pup segment remove --help' for usage.")
			}

			return pupfile.Modify(args[0], func(p *pup.Pup) error {
				if len(p.Segments) == 0 {
					return fmt.Errorf("package has no segments")
				}
				if params.Index < 0 {
					return fmt.Errorf("index %d is out of bounds", params.Index)
				}

				index := min(params.Index, len(p.Segments)-1)
				p.Segments = append(p.Segments[:index], p.Segments[index+1:]...)
				return nil
			})
		},
	}
}

type extractParams struct {
	Index int `flag:"index,n" desc:"segment index" default:"0"`
}

func extractCommand() *cli.Command {
	var params extractParams

	return &cli.Command{
		Name:    "extract",
		Summary: "Write a segment's payload to a file",
		Usage:   "pup segment extract <file> <output> [flags]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("extract", &params)
		},
		Run: func(args []string) error {
			if len(args) != 2 {
				return fmt.Errorf("expected <file> <output>\n\nRun 'pup segment extract --help' for usage.")
			}
			pupPath, outputPath := args[0], args[1]

			p, err := pupfile.Read(pupPath)
			if err != nil {
				return err
			}
			if params.Index < 0 || params.Index >= len(p.Segments) {
				return fmt.Errorf("index %d is out of bounds (package has %d segments)",
					params.Index, len(p.Segments))
			}

			if err := os.WriteFile(outputPath, p.Segments[params.Index].Data, 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", outputPath, err)
			}
			return nil
		},
	}
}

// deriveID maps a segment file's name to a well-known segment ID.
// The match is on the base name; a numeric file stem (e.g.
// "0x200.bin") is also accepted.
func deriveID(path string) (pup.SegmentID, bool) {
	base := filepath.Base(path)
	if id, ok := pup.SegmentIDForFileName(base); ok {
		return id, true
	}

	stem := strings.TrimSuffix(base, filepath.Ext(base))
	if id, err := strconv.ParseUint(stem, 0, 64); err == nil && id != 0 {
		return pup.SegmentID(id), true
	}
	return 0, false
}
