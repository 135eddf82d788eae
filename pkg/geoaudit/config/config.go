// Package config loads the auditor's YAML configuration, overlays
// GEOAUDIT_* environment variables and builds the analysis components.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/cognicore/geoaudit/pkg/geoaudit/audit"
	"github.com/cognicore/geoaudit/pkg/geoaudit/ingest"
	"github.com/cognicore/geoaudit/pkg/geoaudit/internalerr"
	"github.com/cognicore/geoaudit/pkg/geoaudit/keywords"
	"github.com/cognicore/geoaudit/pkg/geoaudit/optimize"
	"github.com/cognicore/geoaudit/pkg/geoaudit/report"
)

// Log levels and formats understood by the logger.
const (
	LogLevelDebug = "debug"
	LogLevelInfo  = "info"
	LogLevelWarn  = "warn"
	LogLevelError = "error"

	LogFormatConsole = "console"
	LogFormatText    = "text"
	LogFormatJSON    = "json"
)

// Config is the complete auditor configuration.
type Config struct {
	Weights  audit.Weights           `yaml:"weights"`
	Keywords KeywordsConfig          `yaml:"keywords"`
	Entities EntitiesConfig          `yaml:"entities"`
	Report   ReportConfig            `yaml:"report"`
	Platform optimize.PlatformConfig `yaml:"platform"`
	Content  optimize.ContentOptions `yaml:"content"`
	Voice    optimize.VoiceOptions   `yaml:"voice"`
	Log      LogConfig               `yaml:"log"`
}

// KeywordsConfig sizes the keyword lists and the priority region.
type KeywordsConfig struct {
	TopNPrimary    int      `yaml:"top_n_primary"`
	TopNSemantic   int      `yaml:"top_n_semantic"`
	TopNLongTail   int      `yaml:"top_n_longtail"`
	PriorityWords  int      `yaml:"priority_words"`
	ExtraStopwords []string `yaml:"extra_stopwords"`
}

// EntitiesConfig replaces the entity extractor's vocabularies. Empty lists
// keep the built-in ones.
type EntitiesConfig struct {
	PersonTitles []string `yaml:"person_titles"`
	Credentials  []string `yaml:"credentials"`
	OrgTypes     []string `yaml:"org_types"`
}

// ReportConfig selects report formats and where they are written. An empty
// OutputDir means JSON on stdout.
type ReportConfig struct {
	Formats   string `yaml:"formats"`
	OutputDir string `yaml:"output_dir"`
}

type LogConfig struct {
	Level   string           `yaml:"level"`
	Console ConsoleLogConfig `yaml:"console"`
	File    FileLogConfig    `yaml:"file"`
}

type ConsoleLogConfig struct {
	Enabled bool   `yaml:"enabled"`
	Format  string `yaml:"format"`
	Level   string `yaml:"level,omitempty"`
}

type FileLogConfig struct {
	Enabled  bool           `yaml:"enabled"`
	Path     string         `yaml:"path"`
	Format   string         `yaml:"format"`
	Level    string         `yaml:"level,omitempty"`
	Rotation RotationConfig `yaml:"rotation"`
}

type RotationConfig struct {
	MaxSize    int  `yaml:"max_size"`
	MaxAge     int  `yaml:"max_age"`
	MaxBackups int  `yaml:"max_backups"`
	Compress   bool `yaml:"compress"`
}

// Default returns a configuration with every value set.
func Default() *Config {
	return &Config{
		Weights:  audit.DefaultWeights(),
		Keywords: DefaultKeywords(),
		Report:   ReportConfig{Formats: "all"},
		Platform: optimize.DefaultPlatformConfig(),
		Content:  optimize.DefaultContentOptions(),
		Voice:    optimize.DefaultVoiceOptions(),
		Log: LogConfig{
			Level:   LogLevelInfo,
			Console: ConsoleLogConfig{Enabled: true, Format: LogFormatConsole},
			File: FileLogConfig{
				Format:   LogFormatJSON,
				Rotation: RotationConfig{MaxSize: 10, MaxAge: 30, MaxBackups: 3},
			},
		},
	}
}

// DefaultKeywords returns the standard keyword list sizes.
func DefaultKeywords() KeywordsConfig {
	opts := keywords.DefaultOptions()
	return KeywordsConfig{
		TopNPrimary:   opts.TopPrimary,
		TopNSemantic:  opts.TopSemantic,
		TopNLongTail:  opts.TopLongTail,
		PriorityWords: ingest.DefaultPriorityWords,
	}
}

// Load reads path over the defaults. Unknown keys are rejected.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := Default()
	if err := decodeStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", internalerr.ErrInvalidConfig, path, err)
	}
	return cfg, nil
}

func decodeStrict(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// LoadEnv reads a .env file into the process environment without
// overriding variables already set. An empty path tries ./.env and
// ignores its absence.
func LoadEnv(path string) error {
	if path == "" {
		_ = godotenv.Load()
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load env file %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overlays GEOAUDIT_* environment variables.
func (c *Config) ApplyEnv() {
	c.Log.Level = getEnv("GEOAUDIT_LOG_LEVEL", c.Log.Level)
	if path := os.Getenv("GEOAUDIT_LOG_FILE"); path != "" {
		c.Log.File.Enabled = true
		c.Log.File.Path = path
	}

	c.Report.Formats = getEnv("GEOAUDIT_FORMATS", c.Report.Formats)
	c.Report.OutputDir = getEnv("GEOAUDIT_OUTPUT_DIR", c.Report.OutputDir)

	c.Keywords.TopNPrimary = getEnvInt("GEOAUDIT_TOP_N_PRIMARY", c.Keywords.TopNPrimary)
	c.Keywords.TopNSemantic = getEnvInt("GEOAUDIT_TOP_N_SEMANTIC", c.Keywords.TopNSemantic)
	c.Keywords.TopNLongTail = getEnvInt("GEOAUDIT_TOP_N_LONGTAIL", c.Keywords.TopNLongTail)
	c.Keywords.PriorityWords = getEnvInt("GEOAUDIT_PRIORITY_WORDS", c.Keywords.PriorityWords)

	if c.Weights == nil {
		c.Weights = audit.Weights{}
	}
	for _, name := range audit.Order {
		key := "GEOAUDIT_WEIGHT_" + strings.ToUpper(name)
		if _, set := os.LookupEnv(key); set {
			c.Weights[name] = getEnvFloat(key, c.Weights[name])
		}
	}

	c.Platform.Title = getEnv("GEOAUDIT_TITLE", c.Platform.Title)
	c.Platform.Author.Name = getEnv("GEOAUDIT_AUTHOR", c.Platform.Author.Name)
	c.Platform.Author.Credentials = getEnv("GEOAUDIT_AUTHOR_CREDENTIALS", c.Platform.Author.Credentials)
}

// Validate rejects configurations the analyzers cannot run with.
func (c *Config) Validate() error {
	if err := c.Weights.Validate(); err != nil {
		return err
	}

	kw := c.Keywords
	for name, n := range map[string]int{
		"top_n_primary":  kw.TopNPrimary,
		"top_n_semantic": kw.TopNSemantic,
		"top_n_longtail": kw.TopNLongTail,
		"priority_words": kw.PriorityWords,
	} {
		if n < 1 {
			return fmt.Errorf("%w: keywords.%s must be at least 1, got %d", internalerr.ErrInvalidConfig, name, n)
		}
	}

	if _, err := report.ParseFormats(c.Report.Formats); err != nil {
		return fmt.Errorf("%w: %v", internalerr.ErrInvalidConfig, err)
	}
	if c.Voice.SnippetMaxWords < 1 {
		return fmt.Errorf("%w: voice.snippet_max_words must be at least 1", internalerr.ErrInvalidConfig)
	}

	return c.Log.validate()
}

// Verbose switches the global and console levels to debug. A console
// level set in the config file would otherwise keep its value.
func (l *LogConfig) Verbose() {
	l.Level = LogLevelDebug
	if l.Console.Level != "" {
		l.Console.Level = LogLevelDebug
	}
}

func (l LogConfig) validate() error {
	for _, level := range []string{l.Level, l.Console.Level, l.File.Level} {
		switch level {
		case "", LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError:
		default:
			return fmt.Errorf("%w: unknown log level %q", internalerr.ErrInvalidConfig, level)
		}
	}
	if l.File.Enabled && l.File.Path == "" {
		return fmt.Errorf("%w: log.file.path must be specified when file logging is enabled", internalerr.ErrInvalidConfig)
	}
	return nil
}

// Stoplist is a YAML stopword list.
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

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}
