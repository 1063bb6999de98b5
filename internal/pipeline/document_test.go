package pipeline

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/Faultbox/terrain-constructor/internal/operation"
)

func TestLoadDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pipeline.yaml")
	content := `
seed: 42
operations:
  - op: add_triangle_grid
    size: 10
    subdivisions: 4
  - op: fractal_terrain
    iterations: 2
  - op: smooth
    amount: 1
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write document: %v", err)
	}

	doc, err := LoadDocument(path)
	if err != nil {
		t.Fatalf("LoadDocument() error = %v", err)
	}
	s, err := doc.Session()
	if err != nil {
		t.Fatalf("Session() error = %v", err)
	}

	if s.Seed() != 42 {
		t.Errorf("seed = %d, want 42", s.Seed())
	}
	want := []operation.Operation{
		operation.AddTriangleGrid{Size: 10, Subdivisions: 4},
		operation.FractalTerrain{Iterations: 2, DisplacementStart: 2, DisplacementDecay: 2},
		operation.Smooth{Amount: 1, Iterations: 1},
	}
	stages := s.Stages()
	if len(stages) != len(want) {
		t.Fatalf("stages = %d, want %d", len(stages), len(want))
	}
	for i, st := range stages {
		if st.Op != want[i] {
			t.Errorf("stage %d = %#v, want %#v", i, st.Op, want[i])
		}
	}
}

func TestDocumentWithoutSeedIsFresh(t *testing.T) {
	doc := &Document{Operations: []operation.Spec{{Op: "add_triangle"}}}
	s, err := doc.Session()
	if err != nil {
		t.Fatal(err)
	}
	if s.Seed() != FreshSeed {
		t.Errorf("seed = %d, want fresh", s.Seed())
	}
}

func TestDocumentRejectsBadOperations(t *testing.T) {
	tests := []struct {
		name string
		op   string
		want error
	}{
		{"unknown", "extrude", operation.ErrUnknownOperation},
		{"retired", "merge_cleanup", operation.ErrRetiredOperation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := &Document{Operations: []operation.Spec{{Op: "add_triangle"}, {Op: tt.op}}}
			if _, err := doc.Session(); !errors.Is(err, tt.want) {
				t.Errorf("Session() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestDocumentSaveRoundTrip(t *testing.T) {
	s := NewSession(operation.Defaults()...)
	s.SetSeed(7)

	path := filepath.Join(t.TempDir(), "nested", "pipeline.yaml")
	if err := DocumentOf(s).Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	doc, err := LoadDocument(path)
	if err != nil {
		t.Fatalf("LoadDocument() error = %v", err)
	}
	loaded, err := doc.Session()
	if err != nil {
		t.Fatalf("Session() error = %v", err)
	}

	if loaded.Seed() != 7 {
		t.Errorf("seed = %d, want 7", loaded.Seed())
	}
	orig, got := s.Stages(), loaded.Stages()
	if len(got) != len(orig) {
		t.Fatalf("stages = %d, want %d", len(got), len(orig))
	}
	for i := range orig {
		if got[i].Op != orig[i].Op {
			t.Errorf("stage %d = %#v, want %#v", i, got[i].Op, orig[i].Op)
		}
	}
}

func TestLoadDocumentInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("operations: [unclosed\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadDocument(path); err == nil {
		t.Error("expected error for invalid YAML")
	}
	if _, err := LoadDocument(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestDefaultDocument(t *testing.T) {
	s, err := DefaultDocument().Session()
	if err != nil {
		t.Fatalf("Session() error = %v", err)
	}
	if s.Len() != 3 {
		t.Errorf("stages = %d, want 3", s.Len())
	}
}
