package pipeline

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/terrain-constructor/internal/operation"
)

// Document is the YAML form of a session: its seed and operations.
type Document struct {
	Seed       *int64           `yaml:"seed,omitempty"`
	Operations []operation.Spec `yaml:"operations"`
}

// LoadDocument reads a pipeline document from a YAML file.
func LoadDocument(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &doc, nil
}

// Save writes the document to path, creating its directory if needed.
func (d *Document) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(d)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Session builds an editable session from the document. Omitted
// parameters take their kind's default; an omitted seed means fresh.
func (d *Document) Session() (*Session, error) {
	s := NewSession()
	for i, spec := range d.Operations {
		op, err := spec.Operation()
		if err != nil {
			return nil, fmt.Errorf("operation %d: %w", i+1, err)
		}
		s.Add(op)
	}
	if d.Seed != nil {
		s.SetSeed(*d.Seed)
	}
	return s, nil
}

// DocumentOf captures the operations and seed of s with every parameter
// spelled out.
func DocumentOf(s *Session) *Document {
	doc := &Document{Operations: make([]operation.Spec, 0, s.Len())}
	for _, st := range s.stages {
		doc.Operations = append(doc.Operations, operation.SpecOf(st.Op))
	}
	if seed := s.Seed(); seed >= 0 {
		doc.Seed = &seed
	}
	return doc
}

// DefaultDocument is the starter pipeline written by "terrain init": a
// triangle grid shaped by fractal refinement and one smoothing pass.
func DefaultDocument() *Document {
	return DocumentOf(NewSession(
		operation.AddTriangleGrid{Size: 10, Subdivisions: 4},
		operation.FractalTerrain{Iterations: 5, DisplacementStart: 1.53, DisplacementDecay: 2},
		operation.Smooth{Amount: 1, Iterations: 2},
	))
}
