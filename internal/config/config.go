// Package config loads mdsumm settings from flags, environment and an
// optional mdsumm.yaml file.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/dgallion1/mdsumm/internal/chunker"
	"github.com/dgallion1/mdsumm/internal/convert"
	"github.com/dgallion1/mdsumm/internal/pipeline"
)

// EnvPrefix prefixes every environment variable, e.g. MDSUMM_MODEL.
const EnvPrefix = "MDSUMM"

// Keys shared by flags, environment and the config file.
const (
	KeyModel             = "model"
	KeyContext           = "context"
	KeyMaxLevel          = "max_level"
	KeyRecursive         = "recursive"
	KeyConcurrency       = "concurrency"
	KeyWorkers           = "workers"
	KeyMaxTokens         = "max_tokens"
	KeyTemperature       = "temperature"
	KeyRequestsPerMinute = "requests_per_minute"
	KeyInputDir          = "input_dir"
	KeyOutputDir         = "output_dir"
	KeyConvertInputDir   = "convert_input_dir"
	KeyKeywords          = "keywords"
	KeyMaxKeywords       = "max_keywords"
	KeyHTTPTimeout       = "http_timeout"
	KeyUserAgent         = "user_agent"
	KeyPDFFallback       = "pdf_fallback_pdftotext"
	KeyOCRLanguage       = "ocr_language"
	KeyCaptionLanguages  = "caption_languages"
	KeyLogLevel          = "log_level"
	KeyLogFormat         = "log_format"
	KeyInstructions      = "instructions"
	KeyAPIKey            = "anthropic_api_key"
	KeyBaseURL           = "anthropic_base_url"
)

// Config is read once at startup and passed by value.
type Config struct {
	// Claude
	AnthropicAPIKey   string
	AnthropicBaseURL  string
	Model             string
	MaxTokens         int
	Temperature       float64
	RequestsPerMinute int
	Instructions      string

	// Chunking
	Context  int
	MaxLevel int

	// Summaries
	Recursive   bool
	Concurrency int
	Workers     int
	Keywords    bool
	MaxKeywords int

	// Directories
	InputDir        string
	OutputDir       string
	ConvertInputDir string

	// Fetching
	HTTPTimeout      time.Duration
	UserAgent        string
	CaptionLanguages []string

	// Conversion
	PDFFallbackPdftotext bool
	OCRLanguage          string

	LogLevel  string
	LogFormat string
}

// SetDefaults registers default values and environment bindings on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyModel, "claude-sonnet-4-5-20250929")
	v.SetDefault(KeyContext, chunker.DefaultContext)
	v.SetDefault(KeyMaxLevel, chunker.DefaultMaxLevel)
	v.SetDefault(KeyRecursive, false)
	v.SetDefault(KeyConcurrency, 4)
	v.SetDefault(KeyWorkers, 2)
	v.SetDefault(KeyMaxTokens, 4096)
	v.SetDefault(KeyTemperature, 0.3)
	v.SetDefault(KeyRequestsPerMinute, 50)
	v.SetDefault(KeyInputDir, "_markdown")
	v.SetDefault(KeyOutputDir, "_summary")
	v.SetDefault(KeyConvertInputDir, "_input")
	v.SetDefault(KeyKeywords, true)
	v.SetDefault(KeyMaxKeywords, 15)
	v.SetDefault(KeyHTTPTimeout, 120*time.Second)
	v.SetDefault(KeyUserAgent, "")
	v.SetDefault(KeyPDFFallback, true)
	v.SetDefault(KeyOCRLanguage, "eng")
	v.SetDefault(KeyCaptionLanguages, []string{"en"})
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "text")
	v.SetDefault(KeyInstructions, "")
	v.SetDefault(KeyBaseURL, "")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	// The API key is also read from the variable every Anthropic tool uses.
	_ = v.BindEnv(KeyAPIKey, EnvPrefix+"_ANTHROPIC_API_KEY", "ANTHROPIC_API_KEY")
}

// Load reads the settings from v. SetDefaults must have been called.
func Load(v *viper.Viper) Config {
	cfg := Config{
		AnthropicAPIKey:   strings.TrimSpace(v.GetString(KeyAPIKey)),
		AnthropicBaseURL:  v.GetString(KeyBaseURL),
		Model:             v.GetString(KeyModel),
		MaxTokens:         v.GetInt(KeyMaxTokens),
		Temperature:       v.GetFloat64(KeyTemperature),
		RequestsPerMinute: v.GetInt(KeyRequestsPerMinute),
		Instructions:      strings.TrimSpace(v.GetString(KeyInstructions)),

		Context:  v.GetInt(KeyContext),
		MaxLevel: v.GetInt(KeyMaxLevel),

		Recursive:   v.GetBool(KeyRecursive),
		Concurrency: v.GetInt(KeyConcurrency),
		Workers:     v.GetInt(KeyWorkers),
		Keywords:    v.GetBool(KeyKeywords),
		MaxKeywords: v.GetInt(KeyMaxKeywords),

		InputDir:        v.GetString(KeyInputDir),
		OutputDir:       v.GetString(KeyOutputDir),
		ConvertInputDir: v.GetString(KeyConvertInputDir),

		HTTPTimeout:      v.GetDuration(KeyHTTPTimeout),
		UserAgent:        v.GetString(KeyUserAgent),
		CaptionLanguages: v.GetStringSlice(KeyCaptionLanguages),

		PDFFallbackPdftotext: v.GetBool(KeyPDFFallback),
		OCRLanguage:          v.GetString(KeyOCRLanguage),

		LogLevel:  strings.ToLower(v.GetString(KeyLogLevel)),
		LogFormat: strings.ToLower(v.GetString(KeyLogFormat)),
	}

	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 1
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.HTTPTimeout <= 0 {
		cfg.HTTPTimeout = 120 * time.Second
	}
	if len(cfg.CaptionLanguages) == 0 {
		cfg.CaptionLanguages = []string{"en"}
	}
	return cfg
}

// Validate checks cfg. needLLM is set for commands that call Claude.
func (c Config) Validate(needLLM bool) error {
	var errs []error
	if needLLM && c.AnthropicAPIKey == "" {
		errs = append(errs, errors.New("ANTHROPIC_API_KEY is required"))
	}
	if c.Model == "" {
		errs = append(errs, errors.New("model must not be empty"))
	}
	if c.Context < 0 {
		errs = append(errs, fmt.Errorf("context must not be negative, got %d", c.Context))
	}
	if c.MaxLevel < 1 || c.MaxLevel > 6 {
		errs = append(errs, fmt.Errorf("max_level must be between 1 and 6, got %d", c.MaxLevel))
	}
	if c.MaxTokens <= 0 {
		errs = append(errs, fmt.Errorf("max_tokens must be positive, got %d", c.MaxTokens))
	}
	if c.Temperature < 0 || c.Temperature > 1 {
		errs = append(errs, fmt.Errorf("temperature must be between 0 and 1, got %g", c.Temperature))
	}
	if c.MaxKeywords < 0 {
		errs = append(errs, fmt.Errorf("max_keywords must not be negative, got %d", c.MaxKeywords))
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log_format must be text or json, got %q", c.LogFormat))
	}
	return errors.Join(errs...)
}

// ChunkConfig sizes blocks for the configured context.
func (c Config) ChunkConfig() chunker.Config {
	cc := chunker.ConfigForContext(c.Context)
	cc.MaxLevel = c.MaxLevel
	return cc
}

func (c Config) SummarizerOptions() pipeline.Options {
	return pipeline.Options{
		Chunk:        c.ChunkConfig(),
		Recursive:    c.Recursive,
		Concurrency:  c.Concurrency,
		Instructions: c.Instructions,
		MaxKeywords:  c.MaxKeywords,
	}
}

func (c Config) ConvertOptions() convert.Options {
	return convert.Options{
		PDFFallbackPdftotext: c.PDFFallbackPdftotext,
		OCRLanguage:          c.OCRLanguage,
	}
}
