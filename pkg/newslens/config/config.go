package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cognicore/newslens/pkg/newslens/internalerr"
)

// Stoplist is the stopword list configuration: a base lexicon plus
// corpus-specific additions, all treated as data.
type Stoplist struct {
	Terms []string `yaml:"terms"`
}

// LoadStoplist loads stopwords from a YAML file.
func LoadStoplist(path string) (*Stoplist, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var sl Stoplist
	if err := yaml.Unmarshal(data, &sl); err != nil {
		return nil, err
	}

	return &sl, nil
}

// Model is the topic-model configuration.
type Model struct {
	K             int     `yaml:"k"`
	Seed          int64   `yaml:"seed"`
	MaxIterations int     `yaml:"max_iterations"`
	Tolerance     float64 `yaml:"tolerance"`
	Alpha         float64 `yaml:"alpha"`
	Beta          float64 `yaml:"beta"`
}

// LoadModel loads the model configuration from a YAML file.
func LoadModel(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var m Model
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, err
	}

	if m.K < 1 {
		return nil, fmt.Errorf("model config: k must be >= 1, got %d: %w", m.K, internalerr.ErrInvalidConfig)
	}
	if m.MaxIterations < 0 {
		return nil, fmt.Errorf("model config: max_iterations must be >= 0, got %d: %w",
			m.MaxIterations, internalerr.ErrInvalidConfig)
	}
	if m.Tolerance < 0 {
		return nil, fmt.Errorf("model config: tolerance must be >= 0, got %v: %w",
			m.Tolerance, internalerr.ErrInvalidConfig)
	}

	return &m, nil
}
