package openai

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/joseph-ayodele/resume-extractor/internal/llm"
)

const (
	DefaultBaseURL = "https://api.openai.com/v1"
	DefaultModel   = "gpt-4o-mini"
)

// Config for the OpenAI-compatible client. The key is passed in explicitly;
// the client never reads the environment.
type Config struct {
	APIKey         string
	BaseURL        string             // default https://api.openai.com/v1
	Model          string             // e.g., "gpt-4o-mini"
	Temperature    float32            // 0..2
	Timeout        time.Duration      // per-call deadline
	ResponseFormat llm.ResponseFormat // json enables response_format=json_object
}

type Client struct {
	cfg    Config
	http   *http.Client
	logger *slog.Logger
}

func NewClient(cfg Config, logger *slog.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		cfg:    cfg,
		http:   &http.Client{Timeout: cfg.Timeout},
		logger: logger,
	}
}
