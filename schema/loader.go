package schema

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// MappingFile is the document layout accepted by LoadMappings:
//
//	mappings:
//	  - name: Product
//	    table: ForgeRock
//	    columns:
//	      - field: Name
//	        column: productName
//	      - field: Description
//	        column: description
type MappingFile struct {
	Mappings []Mapping `yaml:"mappings"`
}

// LoadMappings decodes and validates a YAML mapping document. Type names
// must be unique within the document.
func LoadMappings(r io.Reader) ([]Mapping, error) {
	var doc MappingFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: decode: %w", ErrInvalidMapping, err)
	}

	seen := make(map[string]struct{}, len(doc.Mappings))
	for _, m := range doc.Mappings {
		if err := m.Validate(); err != nil {
			return nil, err
		}
		if _, dup := seen[m.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate type %s", ErrInvalidMapping, m.Name)
		}
		seen[m.Name] = struct{}{}
	}
	return doc.Mappings, nil
}

// LoadMappingsFile reads mappings from a YAML file.
func LoadMappingsFile(path string) ([]Mapping, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	mappings, err := LoadMappings(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return mappings, nil
}
