package model

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/vzahanych/rain-prediction-app/internal/features"
)

// artifact is the on-disk JSON layout of a trained forest.
type artifact struct {
	Format   string   `json:"format"`
	Name     string   `json:"name,omitempty"`
	Features []string `json:"features"`
	Trees    []Tree   `json:"trees"`
}

// Load reads the forest stored at path. Any failure is returned as an
// *ArtifactLoadError.
func Load(path string) (*Forest, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, &ArtifactLoadError{Path: path, Err: err}
	}
	defer file.Close()

	forest, err := Decode(file)
	if err != nil {
		return nil, &ArtifactLoadError{Path: path, Err: err}
	}
	return forest, nil
}

// Decode reads a forest artifact from r and checks it against the rain
// feature schema.
func Decode(r io.Reader) (*Forest, error) {
	var a artifact
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&a); err != nil {
		return nil, fmt.Errorf("decode artifact: %w", err)
	}

	if a.Format != Format {
		return nil, fmt.Errorf("%w: %q, want %q", ErrUnsupportedFormat, a.Format, Format)
	}
	if !slices.Equal(a.Features, features.Names()) {
		return nil, fmt.Errorf("%w: got %v", ErrFeatureMismatch, a.Features)
	}

	return NewForest(a.Name, a.Features, a.Trees)
}

// Encode writes f in the artifact layout read by Decode.
func Encode(w io.Writer, f *Forest) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(artifact{
		Format:   Format,
		Name:     f.name,
		Features: f.features,
		Trees:    f.trees,
	})
}
