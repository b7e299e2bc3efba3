package lda

import (
	"fmt"

	"github.com/cognicore/newslens/pkg/newslens/internalerr"
)

// Defaults for the iteration/convergence controls. Alpha defaults to 50/K
// and Beta to 0.01, the standard symmetric-prior choices for collapsed
// Gibbs sampling.
const (
	DefaultMaxIterations = 500
	DefaultTolerance     = 1e-4
	DefaultBeta          = 0.01

	// evalEvery is how often (in full Gibbs sweeps) the document-topic
	// estimate is re-derived to check convergence.
	evalEvery = 10
)

// Config controls one inference run. K and Seed are caller-supplied; the
// model never selects K itself.
type Config struct {
	K             int
	Seed          int64
	MaxIterations int
	Tolerance     float64
	Alpha         float64
	Beta          float64
}

// DefaultConfig returns a config for k topics with the documented default
// controls and a fixed seed of 1.
func DefaultConfig(k int) Config {
	return Config{
		K:             k,
		Seed:          1,
		MaxIterations: DefaultMaxIterations,
		Tolerance:     DefaultTolerance,
		Alpha:         50.0 / float64(k),
		Beta:          DefaultBeta,
	}
}

// withDefaults fills unset optional fields.
func (c Config) withDefaults() Config {
	if c.MaxIterations == 0 {
		c.MaxIterations = DefaultMaxIterations
	}
	if c.Tolerance == 0 {
		c.Tolerance = DefaultTolerance
	}
	if c.Alpha == 0 && c.K > 0 {
		c.Alpha = 50.0 / float64(c.K)
	}
	if c.Beta == 0 {
		c.Beta = DefaultBeta
	}
	return c
}

// Validate checks the config against the vocabulary it will run on.
func (c Config) Validate(vocabSize int) error {
	if c.K < 1 {
		return fmt.Errorf("topic count %d < 1: %w", c.K, internalerr.ErrDegenerateInput)
	}
	if c.K > vocabSize {
		return fmt.Errorf("topic count %d exceeds vocabulary size %d: %w",
			c.K, vocabSize, internalerr.ErrDegenerateInput)
	}
	if c.MaxIterations < 1 {
		return fmt.Errorf("max iterations %d < 1: %w", c.MaxIterations, internalerr.ErrInvalidConfig)
	}
	if c.Tolerance < 0 {
		return fmt.Errorf("tolerance %v < 0: %w", c.Tolerance, internalerr.ErrInvalidConfig)
	}
	if c.Alpha <= 0 || c.Beta <= 0 {
		return fmt.Errorf("dirichlet priors must be positive (alpha=%v, beta=%v): %w",
			c.Alpha, c.Beta, internalerr.ErrInvalidConfig)
	}
	return nil
}
