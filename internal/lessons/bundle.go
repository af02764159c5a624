package lessons

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/verte-zerg/typetutor/internal/model"
)

// Format names a lesson file encoding.
type Format string

// Supported formats. FormatText holds a single lesson body.
const (
	FormatText Format = "text"
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt", ".md":
		return FormatText, nil
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unsupported lesson file %q (want .txt, .md, .toml, .yaml, .yml or .json)", path)
	}
}

// Bundle is the on-disk shape of an exported catalog.
type Bundle struct {
	Lessons []model.Lesson `json:"lessons" toml:"lessons" yaml:"lessons"`
}

// EncodeBundle writes lessons in the given format.
func EncodeBundle(w io.Writer, format Format, lessons []model.Lesson) error {
	b := Bundle{Lessons: lessons}
	switch format {
	case FormatTOML:
		return toml.NewEncoder(w).Encode(b)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(b); err != nil {
			return err
		}
		return enc.Close()
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(b)
	default:
		return fmt.Errorf("cannot export lessons as %s", format)
	}
}

// DecodeBundle reads lessons in the given format.
func DecodeBundle(r io.Reader, format Format) ([]model.Lesson, error) {
	var b Bundle
	switch format {
	case FormatTOML:
		if _, err := toml.NewDecoder(r).Decode(&b); err != nil {
			return nil, err
		}
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(&b); err != nil && err != io.EOF {
			return nil, err
		}
	case FormatJSON:
		if err := json.NewDecoder(r).Decode(&b); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("cannot import lessons from %s", format)
	}
	return b.Lessons, nil
}

// Export writes the whole catalog.
func (s *Service) Export(ctx context.Context, w io.Writer, format Format) (int, error) {
	lessons, err := s.List(ctx)
	if err != nil {
		return 0, err
	}
	if err := EncodeBundle(w, format, lessons); err != nil {
		return 0, fmt.Errorf("failed to encode lessons: %w", err)
	}
	return len(lessons), nil
}

// ImportBundle creates every lesson in the bundle under fresh ids.
// It stops at the first invalid lesson; earlier ones stay imported.
func (s *Service) ImportBundle(ctx context.Context, r io.Reader, format Format) ([]model.Lesson, error) {
	decoded, err := DecodeBundle(r, format)
	if err != nil {
		return nil, fmt.Errorf("failed to decode lessons: %w", err)
	}
	created := make([]model.Lesson, 0, len(decoded))
	for i, l := range decoded {
		out, err := s.Create(ctx, Draft{
			Title:      l.Title,
			Content:    l.Content,
			Difficulty: string(l.Difficulty),
			Category:   l.Category,
		})
		if err != nil {
			return created, fmt.Errorf("lesson %d (%q): %w", i+1, l.Title, err)
		}
		created = append(created, out)
	}
	return created, nil
}
