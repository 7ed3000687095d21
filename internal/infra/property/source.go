package property

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"chalet/internal/domain/property"
)

// Source yields the raw property document.
type Source interface {
	Read(ctx context.Context) ([]byte, error)
	Describe() string
}

// FileSource reads the document from local disk.
type FileSource struct {
	Path string
}

func (s FileSource) Read(ctx context.Context) ([]byte, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("read property file: %w", err)
	}
	return data, nil
}

func (s FileSource) Describe() string { return "file:" + s.Path }

// DefaultFilePath returns the first existing candidate location of the
// property file, or the conventional one when none exists.
func DefaultFilePath() string {
	candidates := []string{
		filepath.Join("data", "property.json"),
		filepath.Join("..", "data", "property.json"),
	}
	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return candidates[0]
}

// Load reads and decodes the property from src.
func Load(ctx context.Context, src Source, currency string) (property.Property, error) {
	if src == nil {
		return property.Property{}, errors.New("property: source required")
	}
	data, err := src.Read(ctx)
	if err != nil {
		return property.Property{}, err
	}
	if len(data) == 0 {
		return property.Property{}, fmt.Errorf("%w: %s is empty", ErrMalformed, src.Describe())
	}
	p, err := Decode(data, currency)
	if err != nil {
		return property.Property{}, fmt.Errorf("%s: %w", src.Describe(), err)
	}
	return p, nil
}
