package config

import (
	"fmt"

	"github.com/cognicore/newslens/pkg/newslens/ingest"
	"github.com/cognicore/newslens/pkg/newslens/lda"
)

// Loader loads all configuration files and constructs components.
type Loader struct {
	StoplistPath string
	ModelPath    string
}

// Components holds the loaded configuration components.
type Components struct {
	Pipeline *ingest.Pipeline
	Model    lda.Config
}

// Load reads the configuration files and returns initialized components.
// A missing stoplist path yields an empty exclusion set; a missing model
// path yields the documented defaults for two topics.
func (l *Loader) Load() (*Components, error) {
	comp := &Components{}

	var stops *ingest.Stopwords
	if l.StoplistPath != "" {
		stoplist, err := LoadStoplist(l.StoplistPath)
		if err != nil {
			return nil, fmt.Errorf("load stoplist: %w", err)
		}
		stops = ingest.NewStopwords(stoplist.Terms)
	} else {
		stops = ingest.NewStopwords(nil)
	}
	comp.Pipeline = ingest.NewPipeline(ingest.NewTokenizer(), stops)

	if l.ModelPath != "" {
		model, err := LoadModel(l.ModelPath)
		if err != nil {
			return nil, fmt.Errorf("load model config: %w", err)
		}
		comp.Model = lda.Config{
			K:             model.K,
			Seed:          model.Seed,
			MaxIterations: model.MaxIterations,
			Tolerance:     model.Tolerance,
			Alpha:         model.Alpha,
			Beta:          model.Beta,
		}
	} else {
		comp.Model = lda.DefaultConfig(2)
	}

	return comp, nil
}
