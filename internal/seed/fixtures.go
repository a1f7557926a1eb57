package seed

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed fixtures/catalog.yml
var catalogYAML []byte

// Catalog is the vocabulary demo posts are drawn from.
type Catalog struct {
	Companies      []string `yaml:"companies"`
	Roles          []string `yaml:"roles"`
	InterviewTypes []string `yaml:"interviewTypes"`
	Departments    []string `yaml:"departments"`
	Tags           []string `yaml:"tags"`
	Questions      []string `yaml:"questions"`
}

// LoadCatalog parses a catalog document. Every list must be non-empty.
func LoadCatalog(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	lists := map[string][]string{
		"companies":      c.Companies,
		"roles":          c.Roles,
		"interviewTypes": c.InterviewTypes,
		"departments":    c.Departments,
		"tags":           c.Tags,
		"questions":      c.Questions,
	}
	for name, list := range lists {
		if len(list) == 0 {
			return nil, fmt.Errorf("catalog: %s is empty", name)
		}
	}
	return &c, nil
}

// DefaultCatalog returns the embedded catalog.
func DefaultCatalog() *Catalog {
	c, err := LoadCatalog(catalogYAML)
	if err != nil {
		panic(err)
	}
	return c
}
