// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// LogConfig holds logging settings.
type LogConfig struct {
	// Level is the minimum log level: debug, info, warn, error.
	Level string `json:"level" yaml:"level" mapstructure:"level"`

	// Format selects the encoder: json or console.
	Format string `json:"format" yaml:"format" mapstructure:"format"`

	// OutputPath is an optional directory for a log file in addition to
	// stdout. Empty means stdout only.
	OutputPath string `json:"output_path" yaml:"output_path" mapstructure:"output_path"`
}

// ServerConfig holds HTTP ingress settings.
type ServerConfig struct {
	// Host is the listen address (default "0.0.0.0").
	Host string `json:"host" yaml:"host" mapstructure:"host"`

	// Port is the listen port (default 8000).
	Port int `json:"port" yaml:"port" mapstructure:"port"`

	// Mode is the gin mode: debug, release, or test (default release).
	Mode string `json:"mode" yaml:"mode" mapstructure:"mode"`
}

// DatabaseConfig holds corpus store settings.
type DatabaseConfig struct {
	// Path is the SQLite database file (default "plagiarism.db").
	Path string `json:"path" yaml:"path" mapstructure:"path"`
}

// AnalysisConfig holds similarity classification and input-gate settings.
type AnalysisConfig struct {
	// ThresholdHigh: scores strictly above it classify as
	// "High Probability of Plagiarism" (default 0.8).
	ThresholdHigh float64 `json:"threshold_high" yaml:"threshold_high" mapstructure:"threshold_high"`

	// ThresholdModerate: scores strictly above it (and not above
	// ThresholdHigh) classify as "Moderate Similarity Detected" (default 0.4).
	ThresholdModerate float64 `json:"threshold_moderate" yaml:"threshold_moderate" mapstructure:"threshold_moderate"`

	// TopMatches is the number of corpus matches reported (default 3).
	TopMatches int `json:"top_matches" yaml:"top_matches" mapstructure:"top_matches"`

	// MinWords is the minimum number of meaningful words an input must
	// yield after normalization (default 5).
	MinWords int `json:"min_words" yaml:"min_words" mapstructure:"min_words"`

	// CorrectOCR enables fuzzy correction of OCR-mangled words against
	// the corpus vocabulary before analysis (default false).
	CorrectOCR bool `json:"correct_ocr" yaml:"correct_ocr" mapstructure:"correct_ocr"`

	// FuzzyThreshold is the minimum Levenshtein ratio (0-100) for a
	// correction to apply (default 70).
	FuzzyThreshold int `json:"fuzzy_threshold" yaml:"fuzzy_threshold" mapstructure:"fuzzy_threshold"`

	// FuzzyMinWordLen is the minimum word length considered for
	// correction (default 4). Shorter words have too many false matches.
	FuzzyMinWordLen int `json:"fuzzy_min_word_len" yaml:"fuzzy_min_word_len" mapstructure:"fuzzy_min_word_len"`
}

// CrossrefConfig holds external retrieval settings.
type CrossrefConfig struct {
	// BaseURL is the Crossref API root (default "https://api.crossref.org").
	BaseURL string `json:"base_url" yaml:"base_url" mapstructure:"base_url"`

	// Mailto is the contact address sent with every request, required by
	// the Crossref polite-pool usage policy. The adapter refuses to start
	// without one.
	Mailto string `json:"mailto,omitempty" yaml:"mailto,omitempty" mapstructure:"mailto"`

	// Timeout is the hard deadline for one retrieval (default 15s).
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// MaxResults is the maximum number of candidates requested (default 10).
	MaxResults int `json:"max_results" yaml:"max_results" mapstructure:"max_results"`

	// MaxKeywords is the maximum number of keywords per query (default 10).
	MaxKeywords int `json:"max_keywords" yaml:"max_keywords" mapstructure:"max_keywords"`

	// MinKeywordLen is the minimum keyword length (default 3).
	MinKeywordLen int `json:"min_keyword_len" yaml:"min_keyword_len" mapstructure:"min_keyword_len"`

	// SnippetLen is the maximum abstract snippet length in characters
	// after markup stripping (default 400).
	SnippetLen int `json:"snippet_len" yaml:"snippet_len" mapstructure:"snippet_len"`

	// RequestsPerSecond throttles outbound calls (default 2).
	RequestsPerSecond float64 `json:"requests_per_second" yaml:"requests_per_second" mapstructure:"requests_per_second"`

	// MaxRetries is the number of retries on HTTP 429 within the request
	// deadline (default 2). Timeouts and transport failures never retry.
	MaxRetries int `json:"max_retries" yaml:"max_retries" mapstructure:"max_retries"`
}

// CacheConfig holds external result cache settings.
type CacheConfig struct {
	// TTL is how long a cached retrieval stays valid (default 1h).
	TTL time.Duration `json:"ttl" yaml:"ttl" mapstructure:"ttl"`

	// MaxEntries bounds the cache size (default 256).
	MaxEntries int `json:"max_entries" yaml:"max_entries" mapstructure:"max_entries"`
}

// Config is the full configuration surface of the service.
type Config struct {
	Log      LogConfig      `json:"log" yaml:"log" mapstructure:"log"`
	Server   ServerConfig   `json:"server" yaml:"server" mapstructure:"server"`
	Database DatabaseConfig `json:"database" yaml:"database" mapstructure:"database"`
	Analysis AnalysisConfig `json:"analysis" yaml:"analysis" mapstructure:"analysis"`
	Crossref CrossrefConfig `json:"crossref" yaml:"crossref" mapstructure:"crossref"`
	Cache    CacheConfig    `json:"cache" yaml:"cache" mapstructure:"cache"`
}

// DefaultConfig returns the configuration with every default applied.
func DefaultConfig() Config {
	return Config{
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8000,
			Mode: "release",
		},
		Database: DatabaseConfig{
			Path: "plagiarism.db",
		},
		Analysis: AnalysisConfig{
			ThresholdHigh:     0.8,
			ThresholdModerate: 0.4,
			TopMatches:        3,
			MinWords:          5,
			FuzzyThreshold:    70,
			FuzzyMinWordLen:   4,
		},
		Crossref: CrossrefConfig{
			BaseURL:           "https://api.crossref.org",
			Timeout:           15 * time.Second,
			MaxResults:        10,
			MaxKeywords:       10,
			MinKeywordLen:     3,
			SnippetLen:        400,
			RequestsPerSecond: 2,
			MaxRetries:        2,
		},
		Cache: CacheConfig{
			TTL:        time.Hour,
			MaxEntries: 256,
		},
	}
}
