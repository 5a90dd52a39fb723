// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package corpus

import (
	_ "embed"
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"
)

//go:embed seed.yaml
var defaultSeedYAML []byte

// SeedDocument is the on-disk shape of one seed corpus document.
type SeedDocument struct {
	Title    string `yaml:"title"`
	Category string `yaml:"category"`
	Source   string `yaml:"source,omitempty"`
	Content  string `yaml:"content"`
}

// seedFile is the YAML document wrapping the seed list.
type seedFile struct {
	Documents []SeedDocument `yaml:"documents"`
}

// DefaultSeed returns the embedded sample document set.
func DefaultSeed() ([]SeedDocument, error) {
	return parseSeed(defaultSeedYAML)
}

// LoadSeedFile reads a user-provided seed YAML with the same shape as
// the embedded set.
func LoadSeedFile(path string) ([]SeedDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading seed file %s: %w", path, err)
	}
	return parseSeed(data)
}

func parseSeed(data []byte) ([]SeedDocument, error) {
	var f seedFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing seed documents: %w", err)
	}
	if len(f.Documents) == 0 {
		return nil, fmt.Errorf("seed contains no documents")
	}
	for i, doc := range f.Documents {
		if doc.Title == "" || doc.Content == "" {
			return nil, fmt.Errorf("seed document %d missing title or content", i)
		}
	}
	return f.Documents, nil
}
