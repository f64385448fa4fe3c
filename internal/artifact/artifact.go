// Package artifact persists and loads the generated water system data file.
package artifact

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/planetdetroit/leadlines/internal/domain"
)

// FileWriter writes the artifact as indented JSON at a fixed path. Each write
// replaces the file wholesale.
type FileWriter struct {
	Path string
}

func NewFileWriter(path string) *FileWriter {
	return &FileWriter{Path: path}
}

// WriteArtifact marshals and writes the artifact, creating parent directories.
func (w *FileWriter) WriteArtifact(ctx context.Context, a domain.Artifact) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(w.Path), 0o755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal artifact: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(w.Path, data, 0o600); err != nil {
		return fmt.Errorf("write artifact: %w", err)
	}
	return nil
}

// Load reads a previously generated artifact.
func Load(path string) (domain.Artifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.Artifact{}, fmt.Errorf("read artifact: %w", err)
	}

	var a domain.Artifact
	if err := json.Unmarshal(data, &a); err != nil {
		return domain.Artifact{}, fmt.Errorf("parse artifact %s: %w", path, err)
	}
	return a, nil
}
