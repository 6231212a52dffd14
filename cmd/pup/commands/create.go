// Copyright 2026 The Pupkit Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/pupkit/pupkit/cmd/pup/cli"
	"github.com/pupkit/pupkit/lib/pup"
	"github.com/pupkit/pupkit/lib/pupfile"
)

type createParams struct {
	ImageVersion uint64 `flag:"image-version,g" desc:"image version to record (hex or decimal)"`
	Manifest     string `flag:"manifest,m" desc:"build from a segment manifest (YAML or JSONC)"`
}

func createCommand() *cli.Command {
	var params createParams

	return &cli.Command{
		Name:    "create",
		Summary: "Create a PUP file",
		Usage:   "pup create <file> [flags]",
		Description: `Create a new PUP file.

Without --manifest the package is empty, carrying only the image
version. With --manifest the package is assembled from the manifest's
segment list; --image-version, when non-zero, overrides the
manifest's value.`,
		Examples: []cli.Example{
			{
				Description: "Empty package with an image version",
				Command:     "pup create PS3UPDAT.PUP --image-version 0x46000",
			},
			{
				Description: "Assemble from a manifest",
				Command:     "pup create PS3UPDAT.PUP --manifest firmware.yaml",
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("create", &params)
		},
		Run: func(args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("expected exactly one file argument\n\nRun 'pup create --help' for usage.")
			}
			path := args[0]

			if params.Manifest == "" {
				return pupfile.Write(path, pup.New(params.ImageVersion))
			}

			logger := cli.NewCommandLogger().With("command", "create")

			p, err := pupfile.BuildManifest(params.Manifest)
			if err != nil {
				return err
			}
			if params.ImageVersion != 0 {
				p.ImageVersion = params.ImageVersion
			}

			for i := range p.Segments {
				s := &p.Segments[i]
				logger.Info("segment assembled",
					"index", i, "id", s.ID.String(), "bytes", len(s.Data))
			}

			return pupfile.Write(path, p)
		},
	}
}
