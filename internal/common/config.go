package common

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/joseph-ayodele/resume-extractor/constants"
)

// Config holds all application configuration. It is loaded once at startup
// and passed by value/pointer to the components that need it.
type Config struct {
	Extractor ExtractorConfig
	LLM       LLMConfig
	Text      TextConfig
	Output    OutputConfig
	Database  DatabaseConfig
	Server    ServerConfig
}

// ExtractorConfig selects the field extraction strategy.
type ExtractorConfig struct {
	Strategy           constants.Strategy
	PhoneLabelRequired bool
}

// LLMConfig holds generative-text provider configuration
type LLMConfig struct {
	Provider       string // gemini | openai
	APIKey         string
	Model          string
	BaseURL        string
	Temperature    float32
	Timeout        time.Duration
	ResponseFormat string // lines | json
	MaxInputChars  int
}

// TextConfig holds document-to-text configuration
type TextConfig struct {
	Pdftotext         string
	PdftotextFallback bool
}

// OutputConfig holds output sink configuration
type OutputConfig struct {
	Dir     string
	Formats []string
	Columns string // full | summary
}

// DatabaseConfig holds the optional record store configuration
type DatabaseConfig struct {
	DSN         string
	DialTimeout time.Duration
}

// ServerConfig holds the form server configuration
type ServerConfig struct {
	HTTPAddr    string
	UploadMaxMB int
}

// LoadConfig loads configuration from a .env file (when present) and environment variables
func LoadConfig() *Config {
	// Missing .env is fine: the process environment is the source of truth.
	_ = godotenv.Load()

	strategy, _ := constants.CanonicalizeStrategy(getEnv("STRATEGY", string(constants.StrategyRegex)))
	provider := strings.ToLower(getEnv("LLM_PROVIDER", "gemini"))

	return &Config{
		Extractor: ExtractorConfig{
			Strategy:           strategy,
			PhoneLabelRequired: getEnvAsBool("PHONE_LABEL_REQUIRED", false),
		},
		LLM: LLMConfig{
			Provider:       provider,
			APIKey:         providerAPIKey(provider),
			Model:          getEnv("LLM_MODEL", ""),
			BaseURL:        getEnv("LLM_BASE_URL", ""),
			Temperature:    getEnvAsFloat32("LLM_TEMPERATURE", 0.0),
			Timeout:        getEnvAsDuration("LLM_TIMEOUT", 60*time.Second),
			ResponseFormat: strings.ToLower(getEnv("LLM_RESPONSE_FORMAT", "lines")),
			MaxInputChars:  getEnvAsInt("LLM_MAX_INPUT_CHARS", 30000),
		},
		Text: TextConfig{
			Pdftotext:         getEnv("PDFTOTEXT", "pdftotext"),
			PdftotextFallback: getEnvAsBool("PDFTOTEXT_FALLBACK", false),
		},
		Output: OutputConfig{
			Dir:     getEnv("OUTPUT_DIR", "."),
			Formats: getEnvAsList("OUTPUT_FORMATS", []string{"xlsx", "csv"}),
			Columns: strings.ToLower(getEnv("OUTPUT_COLUMNS", "full")),
		},
		Database: DatabaseConfig{
			DSN:         getEnv("DB_URL", ""),
			DialTimeout: getEnvAsDuration("DB_DIAL_TIMEOUT", 3*time.Second),
		},
		Server: ServerConfig{
			HTTPAddr:    getEnv("HTTP_ADDR", ":8501"),
			UploadMaxMB: getEnvAsInt("UPLOAD_MAX_MB", 15),
		},
	}
}

// providerAPIKey picks the credential for the selected provider.
func providerAPIKey(provider string) string {
	switch provider {
	case "openai", "openrouter":
		return getEnv("OPENAI_API_KEY", "")
	default:
		return getEnv("GOOGLE_API_KEY", getEnv("GEMINI_API_KEY", ""))
	}
}

// SetProvider switches the llm provider and picks up its credential.
func (c *Config) SetProvider(provider string) {
	c.LLM.Provider = strings.ToLower(strings.TrimSpace(provider))
	c.LLM.APIKey = providerAPIKey(c.LLM.Provider)
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvAsFloat32(key string, defaultValue float32) float32 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 32); err == nil {
			return float32(floatVal)
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getEnvAsList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if p := strings.ToLower(strings.TrimSpace(part)); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}

// Validate validates the loaded configuration
func (c *Config) Validate() error {
	v := NewValidator()
	v.Field("STRATEGY", string(c.Extractor.Strategy), OneOf(constants.StrategiesAsStringSlice()...))
	v.Field("OUTPUT_COLUMNS", c.Output.Columns, OneOf("full", "summary"))
	for _, f := range c.Output.Formats {
		v.Field("OUTPUT_FORMATS", f, OneOf("csv", "xlsx", "json", "yaml", "yml"))
	}
	v.Field("OUTPUT_DIR", c.Output.Dir, Required)
	if c.Extractor.Strategy == constants.StrategyLLM {
		v.Field("LLM_PROVIDER", c.LLM.Provider, OneOf("gemini", "openai", "openrouter"))
		v.Field("LLM_RESPONSE_FORMAT", c.LLM.ResponseFormat, OneOf("lines", "json"))
		v.Field("API key for "+c.LLM.Provider, c.LLM.APIKey, Required)
	}
	if v.HasErrors() {
		return NewAppError("CONFIG_ERROR", v.ErrorMessage(), ErrInvalidInput)
	}
	return nil
}
