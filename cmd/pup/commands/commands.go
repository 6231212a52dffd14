// Copyright 2026 The Pupkit Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands builds the pup CLI command tree: package-level
// operations (create, print, version) plus the segment group.
package commands

import (
	"fmt"

	"github.com/pupkit/pupkit/cmd/pup/cli"
	"github.com/pupkit/pupkit/cmd/pup/segment"
	"github.com/pupkit/pupkit/lib/version"
)

// Root returns the top-level pup command.
func Root() *cli.Command {
	return &cli.Command{
		Name:    "pup",
		Summary: "Inspect and assemble PS3 PUP update packages",
		Description: `pup reads, creates, and edits PS3 PUP (Playstation Update Package)
containers: versioned archives of identified segments with stored
per-segment integrity digests.

Digests are carried verbatim; pup never computes or verifies HMAC
signatures (that requires console keys).`,
		Subcommands: []*cli.Command{
			createCommand(),
			printCommand(),
			segment.Command(),
			versionCommand(),
		},
		Examples: []cli.Example{
			{
				Description: "Create an empty package",
				Command:     "pup create PS3UPDAT.PUP --image-version 0x46000",
			},
			{
				Description: "Show a package's contents",
				Command:     "pup print PS3UPDAT.PUP",
			},
			{
				Description: "Insert a segment at the front",
				Command:     "pup segment insert PS3UPDAT.PUP version.txt",
			},
		},
	}
}

func versionCommand() *cli.Command {
	return &cli.Command{
		Name:    "version",
		Summary: "Print version information",
		Usage:   "pup version",
		Run: func(args []string) error {
			fmt.Println(version.Full())
			return nil
		},
	}
}
