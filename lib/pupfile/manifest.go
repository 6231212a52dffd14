// Copyright 2026 The Pupkit Authors
// SPDX-License-Identifier: Apache-2.0

package pupfile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/pupkit/pupkit/lib/pup"
)

// Manifest describes a package to build: an image version and an
// ordered list of segment sources. Manifests are authored as YAML,
// or as JSONC (JSON extended with comments and trailing commas) for
// generated tooling.
type Manifest struct {
	// ImageVersion is the image version to record in the metadata.
	// Accepts hex ("0x46000") or decimal in either format.
	ImageVersion string `yaml:"image_version" json:"image_version"`

	// Segments are the package contents, in index order.
	Segments []SegmentSpec `yaml:"segments" json:"segments"`
}

// SegmentSpec describes one segment source in a manifest.
type SegmentSpec struct {
	// Path is the file whose bytes become the segment payload.
	// Relative paths are resolved against the manifest's directory.
	Path string `yaml:"path" json:"path"`

	// ID is the segment ID, hex or decimal. When empty, the ID is
	// derived from the source file's name via the well-known name
	// table, falling back to 0.
	ID string `yaml:"id" json:"id"`

	// SignatureKind is "hmac-sha1" (default) or "hmac-sha256".
	SignatureKind string `yaml:"signature_kind" json:"signature_kind"`
}

// LoadManifest reads and parses a manifest file. The format is
// chosen by extension: .json and .jsonc parse as JSONC, everything
// else as YAML.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var manifest Manifest
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonc":
		if err := json.Unmarshal(jsonc.ToJSON(data), &manifest); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	default:
		if err := yaml.Unmarshal(data, &manifest); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	}
	return &manifest, nil
}

// BuildManifest assembles a package from the manifest at path. Each
// segment source is read relative to the manifest's directory; IDs
// and signature kinds are resolved per the SegmentSpec rules.
func BuildManifest(path string) (*pup.Pup, error) {
	manifest, err := LoadManifest(path)
	if err != nil {
		return nil, err
	}
	return manifest.Build(filepath.Dir(path))
}

// Build assembles a package from the manifest, resolving relative
// segment paths against baseDir.
func (m *Manifest) Build(baseDir string) (*pup.Pup, error) {
	imageVersion, err := parseScalar(m.ImageVersion, "image version")
	if err != nil {
		return nil, err
	}

	p := pup.New(imageVersion)
	for i, spec := range m.Segments {
		segment, err := spec.load(baseDir)
		if err != nil {
			return nil, fmt.Errorf("segment %d: %w", i, err)
		}
		p.Segments = append(p.Segments, segment)
	}
	return p, nil
}

func (s *SegmentSpec) load(baseDir string) (pup.Segment, error) {
	if s.Path == "" {
		return pup.Segment{}, fmt.Errorf("segment has no path")
	}

	sourcePath := s.Path
	if !filepath.IsAbs(sourcePath) {
		sourcePath = filepath.Join(baseDir, sourcePath)
	}

	data, err := os.ReadFile(sourcePath)
	if err != nil {
		return pup.Segment{}, fmt.Errorf("reading %s: %w", sourcePath, err)
	}

	id, err := s.resolveID(sourcePath)
	if err != nil {
		return pup.Segment{}, err
	}

	kind := pup.HmacSha1
	if s.SignatureKind != "" {
		kind, err = pup.ParseSignatureKind(s.SignatureKind)
		if err != nil {
			return pup.Segment{}, err
		}
	}

	return pup.NewSegment(id, kind, data), nil
}

// resolveID picks the segment ID: an explicit manifest value wins,
// then the well-known name table keyed by the source file's base
// name, then 0.
func (s *SegmentSpec) resolveID(sourcePath string) (pup.SegmentID, error) {
	if s.ID != "" {
		id, err := parseScalar(s.ID, "segment id")
		return pup.SegmentID(id), err
	}
	if id, ok := pup.SegmentIDForFileName(filepath.Base(sourcePath)); ok {
		return id, nil
	}
	return 0, nil
}

// parseScalar parses a manifest numeric field, accepting decimal,
// hex (0x...), and octal (0o...) per strconv base-0 rules. Empty
// means zero.
func parseScalar(value, what string) (uint64, error) {
	if value == "" {
		return 0, nil
	}
	parsed, err := strconv.ParseUint(value, 0, 64)
	if err != nil {
		return 0, fmt.Errorf("parsing %s %q: %w", what, value, err)
	}
	return parsed, nil
}
