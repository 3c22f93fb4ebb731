package mfasm

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

// goldenMetadata is the YAML front matter of a golden file. It must match
// the struct written by cmd/generate-goldens.
type goldenMetadata struct {
	Source         string `yaml:"source"`
	Glyphs         int    `yaml:"glyphs"`
	Warnings       int    `yaml:"warnings"`
	Size           int    `yaml:"size"`
	ChecksumSHA256 string `yaml:"checksum_sha256"`
	Generated      string `yaml:"generated"`
	Generator      string `yaml:"generator"`
}

// parseGoldenFile splits a golden file into its front matter and the bytes
// of the hex dump inside the text code block.
func parseGoldenFile(path string) (*goldenMetadata, []byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open golden file: %w", err)
	}

	rest, ok := strings.CutPrefix(string(raw), "---\n")
	if !ok {
		return nil, nil, fmt.Errorf("%s: missing front matter", path)
	}
	front, body, ok := strings.Cut(rest, "\n---\n")
	if !ok {
		return nil, nil, fmt.Errorf("%s: unterminated front matter", path)
	}

	metadata := &goldenMetadata{}
	if err := yaml.Unmarshal([]byte(front), metadata); err != nil {
		return nil, nil, fmt.Errorf("failed to parse front matter: %w", err)
	}

	_, block, ok := strings.Cut(body, "```text\n")
	if !ok {
		return nil, nil, fmt.Errorf("%s: missing text block", path)
	}
	block, _, _ = strings.Cut(block, "```")

	data, err := parseHexDump(block)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	return metadata, data, nil
}

// parseHexDump reverses hexDump.
func parseHexDump(dump string) ([]byte, error) {
	var data []byte
	for n, line := range strings.Split(strings.TrimSpace(dump), "\n") {
		offset, fields, ok := strings.Cut(line, ": ")
		if !ok {
			return nil, fmt.Errorf("dump line %d: missing offset", n+1)
		}
		if want := fmt.Sprintf("%08x", len(data)); offset != want {
			return nil, fmt.Errorf("dump line %d: offset %s, want %s", n+1, offset, want)
		}
		b, err := hex.DecodeString(strings.ReplaceAll(fields, " ", ""))
		if err != nil {
			return nil, fmt.Errorf("dump line %d: %w", n+1, err)
		}
		data = append(data, b...)
	}
	return data, nil
}

// hexDump formats data as offset-prefixed lines of 16 bytes. It must match
// the dump written by cmd/generate-goldens.
func hexDump(data []byte) string {
	var lines []string
	for off := 0; off < len(data); off += 16 {
		end := off + 16
		if end > len(data) {
			end = len(data)
		}
		lines = append(lines, fmt.Sprintf("%08x: % x", off, data[off:end]))
	}
	return strings.Join(lines, "\n")
}

func TestGoldenFiles(t *testing.T) {
	goldenDir := "testdata/goldens"
	if _, err := os.Stat(goldenDir); os.IsNotExist(err) {
		t.Skip("Golden files not found. Run go run ./cmd/generate-goldens to generate them.")
	}

	var goldenFiles []string
	err := filepath.WalkDir(goldenDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, ".md") {
			goldenFiles = append(goldenFiles, path)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Failed to walk golden directory: %v", err)
	}
	if len(goldenFiles) == 0 {
		t.Skip("No golden files found")
	}

	for _, goldenFile := range goldenFiles {
		name := strings.TrimSuffix(filepath.Base(goldenFile), ".md")

		t.Run(name, func(t *testing.T) {
			metadata, want, err := parseGoldenFile(goldenFile)
			if err != nil {
				t.Fatal(err)
			}
			if len(want) != metadata.Size {
				t.Fatalf("golden dump holds %d bytes, front matter says %d", len(want), metadata.Size)
			}

			font, err := AssembleFile(filepath.Join("testdata", "sources", metadata.Source))
			if err != nil {
				t.Fatalf("Failed to assemble %s: %v", metadata.Source, err)
			}
			if font.Len() != metadata.Glyphs {
				t.Errorf("glyphs = %d, want %d", font.Len(), metadata.Glyphs)
			}
			if len(font.Warnings) != metadata.Warnings {
				t.Errorf("warnings = %d, want %d: %v", len(font.Warnings), metadata.Warnings, font.Warnings)
			}

			got, err := font.MarshalBinary()
			if err != nil {
				t.Fatal(err)
			}
			if sum := fmt.Sprintf("%x", sha256.Sum256(got)); sum != metadata.ChecksumSHA256 {
				t.Errorf("checksum = %s, want %s", sum, metadata.ChecksumSHA256)
			}
			if !bytes.Equal(got, want) {
				for i := 0; i < len(got) && i < len(want); i++ {
					if got[i] != want[i] {
						t.Fatalf("first difference at offset %#x: got %02x, want %02x\ngot:\n%s", i, got[i], want[i], hexDump(got))
					}
				}
				t.Fatalf("size = %d, want %d\ngot:\n%s", len(got), len(want), hexDump(got))
			}

			// the golden bytes decode back to the same font
			decoded, err := ReadFont(bytes.NewReader(want))
			if err != nil {
				t.Fatalf("golden container does not decode: %v", err)
			}
			if decoded.Len() != font.Len() || decoded.Name != font.Name {
				t.Errorf("decoded %q with %d glyphs, want %q with %d", decoded.Name, decoded.Len(), font.Name, font.Len())
			}
			for i := 0; i < font.Len(); i++ {
				wantGlyph, _ := font.Glyph(i)
				gotGlyph, _ := decoded.Glyph(i)
				if gotGlyph.Width != wantGlyph.Width || !bytes.Equal(gotGlyph.Data, wantGlyph.Data) {
					t.Errorf("glyph %d decodes to %+v, want %+v", i, gotGlyph, wantGlyph)
				}
			}
		})
	}
}
