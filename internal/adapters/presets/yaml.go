// Package presets reads named currency baskets from a YAML file.
package presets

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/SscSPs/currency_exchange_tracker/internal/apperrors"
	"github.com/SscSPs/currency_exchange_tracker/internal/core/domain"
	"gopkg.in/yaml.v3"
)

type file struct {
	Baskets []domain.BasketPreset `yaml:"baskets"`
}

// LoadFile reads the presets in path. A missing file yields no presets.
func LoadFile(path string) ([]domain.BasketPreset, error) {
	if path == "" {
		return nil, nil
	}
	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read basket presets %s: %w", path, err)
	}
	return Parse(bytes.NewReader(raw), path)
}

// Parse decodes presets from r. Codes are upper-cased; a preset without a
// name or weights is rejected.
func Parse(r io.Reader, name string) ([]domain.BasketPreset, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f file
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, &apperrors.DataFormatError{Source: name, Err: err}
	}

	seen := map[string]struct{}{}
	out := make([]domain.BasketPreset, 0, len(f.Baskets))
	for i, p := range f.Baskets {
		p.Name = strings.TrimSpace(p.Name)
		if p.Name == "" {
			return nil, &apperrors.DataFormatError{Source: name, Err: fmt.Errorf("basket %d has no name", i+1)}
		}
		if _, dup := seen[p.Name]; dup {
			return nil, &apperrors.DataFormatError{Source: name, Err: fmt.Errorf("duplicate basket %q", p.Name)}
		}
		seen[p.Name] = struct{}{}
		if len(p.Weights) == 0 {
			return nil, &apperrors.DataFormatError{Source: name, Err: fmt.Errorf("basket %q has no weights", p.Name)}
		}
		weights := make(map[string]float64, len(p.Weights))
		for code, w := range p.Weights {
			weights[strings.ToUpper(strings.TrimSpace(code))] = w
		}
		p.Weights = weights
		p.Base = strings.ToUpper(strings.TrimSpace(p.Base))
		out = append(out, p)
	}
	return out, nil
}
