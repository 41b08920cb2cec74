package model

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedFormat is returned for artifacts written by another serializer version.
	ErrUnsupportedFormat = errors.New("unsupported artifact format")

	// ErrFeatureMismatch is returned when the artifact was trained on a different feature layout.
	ErrFeatureMismatch = errors.New("artifact feature layout does not match the rain schema")

	// ErrEmptyForest is returned when the artifact holds no usable trees.
	ErrEmptyForest = errors.New("artifact contains no trees")

	// ErrMalformedTree is returned when a tree's node table cannot be walked safely.
	ErrMalformedTree = errors.New("malformed tree")

	// ErrShape is returned by Predict when the input length differs from the trained width.
	ErrShape = errors.New("input shape mismatch")
)

// ArtifactLoadError reports a model file that is missing, corrupt or in an
// incompatible format.
type ArtifactLoadError struct {
	Path string
	Err  error
}

func (e *ArtifactLoadError) Error() string {
	return fmt.Sprintf("load model artifact %q: %v", e.Path, e.Err)
}

func (e *ArtifactLoadError) Unwrap() error {
	return e.Err
}
