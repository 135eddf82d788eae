package config

import (
	"fmt"

	"github.com/cognicore/geoaudit/pkg/geoaudit/entities"
	"github.com/cognicore/geoaudit/pkg/geoaudit/ingest"
	"github.com/cognicore/geoaudit/pkg/geoaudit/keywords"
	"github.com/cognicore/geoaudit/pkg/geoaudit/stoplist"
)

// Loader loads the configuration files and constructs components
type Loader struct {
	ConfigPath   string
	StoplistPath string
	EnvFile      string
}

// Components holds the loaded configuration and the analysis components
// built from it.
type Components struct {
	Config     *Config
	Stoplist   *stoplist.Manager
	Tokenizer  *ingest.Tokenizer
	Pipeline   *ingest.Pipeline
	Classifier *keywords.Classifier
	Extractor  *entities.Extractor
}

// Load reads the config file (or defaults), overlays the environment,
// validates the result and builds the components.
func (l *Loader) Load() (*Components, error) {
	if err := LoadEnv(l.EnvFile); err != nil {
		return nil, err
	}

	cfg := Default()
	if l.ConfigPath != "" {
		loaded, err := Load(l.ConfigPath)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}
	cfg.ApplyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	stops := stoplist.Default()
	if l.StoplistPath != "" {
		sl, err := LoadStoplist(l.StoplistPath)
		if err != nil {
			return nil, fmt.Errorf("load stoplist: %w", err)
		}
		stops = stoplist.NewManager(sl.Terms)
	}
	if len(cfg.Keywords.ExtraStopwords) > 0 {
		stops = stops.With(cfg.Keywords.ExtraStopwords...)
	}

	return Build(cfg, stops), nil
}

// Build constructs the analysis components for cfg over the given stoplist.
func Build(cfg *Config, stops *stoplist.Manager) *Components {
	tok := ingest.NewTokenizer(stops.All())
	pipeline := ingest.NewPipeline(tok).WithPriorityWords(cfg.Keywords.PriorityWords)
	classifier := keywords.NewClassifier(pipeline, keywords.Options{
		TopPrimary:  cfg.Keywords.TopNPrimary,
		TopSemantic: cfg.Keywords.TopNSemantic,
		TopLongTail: cfg.Keywords.TopNLongTail,
	})

	return &Components{
		Config:     cfg,
		Stoplist:   stops,
		Tokenizer:  tok,
		Pipeline:   pipeline,
		Classifier: classifier,
		Extractor:  entities.NewExtractor(orNil(cfg.Entities.PersonTitles), orNil(cfg.Entities.Credentials), orNil(cfg.Entities.OrgTypes)),
	}
}

// orNil maps an empty list to nil so the extractor keeps its defaults.
func orNil(s []string) []string {
	if len(s) == 0 {
		return nil
	}
	return s
}
