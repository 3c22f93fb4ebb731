// Command generate-goldens assembles every source under testdata/sources and
// writes a golden file per source: YAML front matter describing the result
// followed by a hex dump of the container.
package main

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/misbitfont/mfasm"
)

// GoldenMetadata is the YAML front matter of a golden file.
// This should match the struct in golden_test.go
type GoldenMetadata struct {
	Source         string `yaml:"source"`
	Glyphs         int    `yaml:"glyphs"`
	Warnings       int    `yaml:"warnings"`
	Size           int    `yaml:"size"`
	ChecksumSHA256 string `yaml:"checksum_sha256"`
	Generated      string `yaml:"generated"`
	Generator      string `yaml:"generator"`
}

var (
	srcDir = pflag.String("sources", "testdata/sources", "Directory of .mfs sources")
	outDir = pflag.String("out", "testdata/goldens", "Output directory")
	strict = pflag.Bool("strict", false, "Exit on the first source that fails to assemble")
)

func main() {
	pflag.Parse()

	sources, err := filepath.Glob(filepath.Join(*srcDir, "*.mfs"))
	if err != nil {
		log.Fatalf("Failed to list sources: %v", err)
	}
	if len(sources) == 0 {
		log.Fatalf("No sources found in %s", *srcDir)
	}
	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		log.Fatalf("Failed to create directory %s: %v", *outDir, err)
	}

	for _, src := range sources {
		if err := generateGoldenFile(src); err != nil {
			if *strict {
				log.Fatalf("Failed to generate golden file: %v", err)
			}
			log.Printf("Warning: %v", err)
		}
	}

	log.Println("Golden file generation complete")
}

func generateGoldenFile(src string) error {
	name := filepath.Base(src)
	outFile := filepath.Join(*outDir, strings.TrimSuffix(name, ".mfs")+".md")
	log.Printf("Generating %s", outFile)

	font, err := mfasm.AssembleFile(src)
	if err != nil {
		return fmt.Errorf("failed to assemble %s: %w", src, err)
	}
	data, err := font.MarshalBinary()
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", src, err)
	}

	metadata := GoldenMetadata{
		Source:         name,
		Glyphs:         font.Len(),
		Warnings:       len(font.Warnings),
		Size:           len(data),
		ChecksumSHA256: fmt.Sprintf("%x", sha256.Sum256(data)),
		Generated:      time.Now().UTC().Format("2006-01-02"),
		Generator:      "generate-goldens",
	}

	yamlData, err := yaml.Marshal(&metadata)
	if err != nil {
		return fmt.Errorf("failed to marshal metadata: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString("---\n")
	buf.Write(yamlData)
	buf.WriteString("---\n\n")
	buf.WriteString("```text\n")
	buf.WriteString(hexDump(data))
	buf.WriteString("\n```\n")

	if err := os.WriteFile(outFile, buf.Bytes(), 0o600); err != nil {
		return fmt.Errorf("failed to write file %s: %w", outFile, err)
	}
	return nil
}

// hexDump formats data as offset-prefixed lines of 16 bytes.
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
