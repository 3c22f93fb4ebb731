package mfasm

import (
	"encoding/hex"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/misbitfont/mfasm/internal/msbtfont"
)

// Manifest is a human-readable summary of a font.
type Manifest struct {
	Name         string          `yaml:"name"`
	Language     string          `yaml:"language"`
	PaletteDepth int             `yaml:"palette_depth"`
	Spacing      string          `yaml:"spacing"`
	MaxWidth     int             `yaml:"max_width"`
	MaxHeight    int             `yaml:"max_height"`
	GlyphCount   int             `yaml:"glyph_count"`
	FileSize     int             `yaml:"file_size"`
	Warnings     []string        `yaml:"warnings,omitempty"`
	Glyphs       []ManifestGlyph `yaml:"glyphs"`
}

// ManifestGlyph describes one glyph; Data is its packed buffer in hex.
type ManifestGlyph struct {
	Index int    `yaml:"index"`
	Width int    `yaml:"width"`
	Data  string `yaml:"data"`
}

// Manifest summarizes the font.
func (f *Font) Manifest() Manifest {
	m := Manifest{
		Name:         f.Name,
		Language:     f.Language,
		PaletteDepth: f.PaletteDepth,
		Spacing:      f.Spacing.String(),
		MaxWidth:     f.MaxWidth,
		MaxHeight:    f.MaxHeight,
		GlyphCount:   len(f.glyphs),
		Glyphs:       make([]ManifestGlyph, len(f.glyphs)),
	}

	size := msbtfont.HeaderSize + (f.MaxWidth*f.MaxHeight*f.PaletteDepth*len(f.glyphs)+7)/8
	if f.Spacing == Variable {
		size += len(f.glyphs)
	}
	m.FileSize = size

	for _, w := range f.Warnings {
		m.Warnings = append(m.Warnings, w.Error())
	}
	for i, g := range f.glyphs {
		m.Glyphs[i] = ManifestGlyph{Index: i, Width: g.Width, Data: hex.EncodeToString(g.Data)}
	}
	return m
}

// YAML encodes the manifest as a YAML document.
func (m Manifest) YAML() ([]byte, error) {
	out, err := yaml.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("failed to encode manifest: %w", err)
	}
	return out, nil
}

// ParseManifest decodes a manifest written by Manifest.YAML.
func ParseManifest(data []byte) (Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return Manifest{}, fmt.Errorf("failed to decode manifest: %w", err)
	}
	return m, nil
}
