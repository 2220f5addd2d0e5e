package config

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/tzlin/deckgen/internal/deck"
	"gopkg.in/yaml.v3"
)

// liturgyFile is the YAML shape of an order-of-service override.
type liturgyFile struct {
	Steps []deck.Step `yaml:"steps"`
}

// LoadTemplate reads a YAML liturgy template. An empty path returns
// the built-in default order of service.
func LoadTemplate(fsys afero.Fs, path string) (deck.Template, error) {
	if path == "" {
		return deck.DefaultTemplate(), nil
	}

	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("read liturgy template %s: %w", path, err)
	}

	var file liturgyFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse liturgy template %s: %w", path, err)
	}
	if len(file.Steps) == 0 {
		return nil, fmt.Errorf("liturgy template %s has no steps", path)
	}

	tmpl := deck.Template(file.Steps)
	if err := tmpl.Validate(); err != nil {
		return nil, fmt.Errorf("liturgy template %s: %w", path, err)
	}
	return tmpl, nil
}
