// Copyright 2026 The Pupkit Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/pflag"

	"github.com/pupkit/pupkit/cmd/pup/cli"
	"github.com/pupkit/pupkit/lib/pup"
	"github.com/pupkit/pupkit/lib/pupfile"
)

type printParams struct {
	cli.JSONOutput
}

// segmentSummary is the machine-readable form of one segment in
// "pup print --json" output.
type segmentSummary struct {
	Index         int    `json:"index"`
	ID            string `json:"id"`
	Name          string `json:"name,omitempty"`
	Size          int    `json:"size"`
	SignatureKind string `json:"signature_kind"`
	Digest        string `json:"digest"`
}

type packageSummary struct {
	ImageVersion string           `json:"image_version"`
	SegmentCount int              `json:"segment_count"`
	Segments     []segmentSummary `json:"segments"`
}

func printCommand() *cli.Command {
	var params printParams

	return &cli.Command{
		Name:    "print",
		Summary: "Print a package's contents",
		Usage:   "pup print <file> [flags]",
		Description: `Print a summary of a PUP file: image version and, per segment, the
conventional file name (when the ID is a well-known one), payload
size, stored digest, and signature kind.`,
		Examples: []cli.Example{
			{
				Description: "Human-readable summary",
				Command:     "pup print PS3UPDAT.PUP",
			},
			{
				Description: "Machine-readable summary",
				Command:     "pup print PS3UPDAT.PUP --json",
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("print", &params)
		},
		Run: func(args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("expected exactly one file argument\n\nRun 'pup print --help' for usage.")
			}

			p, err := pupfile.Read(args[0])
			if err != nil {
				return err
			}

			if done, err := params.EmitJSON(summarize(p)); done {
				return err
			}

			printPackage(p)
			return nil
		},
	}
}

func summarize(p *pup.Pup) packageSummary {
	summary := packageSummary{
		ImageVersion: fmt.Sprintf("%#x", p.ImageVersion),
		SegmentCount: len(p.Segments),
		Segments:     make([]segmentSummary, len(p.Segments)),
	}
	for i := range p.Segments {
		s := &p.Segments[i]
		name, _ := s.ID.FileName()
		digest := s.Digest()
		summary.Segments[i] = segmentSummary{
			Index:         i,
			ID:            s.ID.String(),
			Name:          name,
			Size:          len(s.Data),
			SignatureKind: s.SignatureKind.String(),
			Digest:        hex.EncodeToString(digest[:]),
		}
	}
	return summary
}

func printPackage(p *pup.Pup) {
	fmt.Printf("Image version: %#x\n", p.ImageVersion)
	fmt.Println("[Segments]")

	for i := range p.Segments {
		s := &p.Segments[i]

		label := fmt.Sprintf("ID: %v", s.ID)
		if name, ok := s.ID.FileName(); ok {
			label = name
		}

		digest := s.Digest()
		fmt.Printf("  [%s]\n", label)
		fmt.Printf("    Size: %d bytes\n", len(s.Data))
		fmt.Printf("    Hash digest: %s (%v)\n", hex.EncodeToString(digest[:]), s.SignatureKind)
	}
}
