package lessons

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/verte-zerg/typetutor/internal/model"
)

// LoadText reads a plain text file and folds it into one practice line.
// Runs of whitespace, including line breaks, become single spaces.
func LoadText(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only lesson text.
			_ = cerr
		}
	}()

	var words []string
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		words = append(words, strings.Fields(scanner.Text())...)
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}
	if len(words) == 0 {
		return "", fmt.Errorf("lesson text is empty")
	}
	return strings.Join(words, " "), nil
}

// TitleFromPath derives a default lesson title from a file name.
func TitleFromPath(path string) string {
	base := filepath.Base(path)
	if i := strings.Index(base, "."); i > 0 {
		base = base[:i]
	}
	return base
}

// ImportText creates a lesson from a .txt or .md file. Draft fields that are
// set win over values derived from the file.
func (s *Service) ImportText(ctx context.Context, path string, d Draft) (model.Lesson, error) {
	content, err := LoadText(path)
	if err != nil {
		return model.Lesson{}, fmt.Errorf("failed to read %s: %w", path, err)
	}
	d.Content = content
	if strings.TrimSpace(d.Title) == "" {
		d.Title = TitleFromPath(path)
	}
	return s.Create(ctx, d)
}
