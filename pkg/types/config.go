package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout. Zero means no client-side timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "paper-digest/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// SearchConfig holds settings for the search stage.
type SearchConfig struct {
	HTTPConfig `yaml:",inline"`
}

// AcquisitionConfig holds settings for the acquisition stage.
type AcquisitionConfig struct {
	HTTPConfig `yaml:",inline"`

	// DataDir is the directory holding downloaded, compressed PDFs.
	DataDir string `json:"data_dir" yaml:"data_dir"`
}

// OCREngineKind selects the OCR implementation.
type OCREngineKind string

const (
	// OCRLibrary uses the tesseract library bindings.
	OCRLibrary OCREngineKind = "library"
	// OCRCLI runs the tesseract binary.
	OCRCLI OCREngineKind = "cli"
)

// ExtractionConfig holds settings for the text extraction stage.
type ExtractionConfig struct {
	// OCREngine selects the OCR implementation: library or cli.
	OCREngine OCREngineKind `json:"ocr_engine" yaml:"ocr_engine"`

	// OCRLanguage is the tesseract language code (default "eng").
	OCRLanguage string `json:"ocr_language" yaml:"ocr_language"`
}

// AIConfig holds settings for the summary stage's LLM API.
type AIConfig struct {
	// Model is the chat model identifier (e.g. "gemini-2.0-flash").
	Model string `json:"model" yaml:"model"`

	// APIKey is the authentication key for the LLM API.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// BaseURL is the OpenAI-compatible endpoint the client talks to.
	BaseURL string `json:"base_url" yaml:"base_url"`

	// MaxChars bounds how much paper text goes into the prompt (default 5000).
	MaxChars int `json:"max_chars" yaml:"max_chars"`
}

// MailConfig holds SMTP transport settings for the notifier.
type MailConfig struct {
	Host     string `json:"host" yaml:"host"`
	Port     int    `json:"port" yaml:"port"`
	Sender   string `json:"sender" yaml:"sender"`
	Password string `json:"password,omitempty" yaml:"password,omitempty"`
}

// ScheduleConfig holds settings for the recurring mode.
type ScheduleConfig struct {
	// Cron is the cadence expression (default "@weekly").
	Cron string `json:"cron" yaml:"cron"`

	// PollInterval is how often the loop checks whether a run is due.
	PollInterval time.Duration `json:"poll_interval" yaml:"poll_interval"`
}

// PipelineConfig is the single configuration value built at process start
// and passed to every stage.
type PipelineConfig struct {
	// Topic is the free-text search query (default "LLM").
	Topic string `json:"topic" yaml:"topic"`

	// Recipient is the address summaries are mailed to. Required.
	Recipient string `json:"recipient" yaml:"recipient"`

	// MaxPapers is how many of the most recent matches to process (default 1).
	MaxPapers int `json:"max_papers" yaml:"max_papers"`

	Search      SearchConfig      `json:"search" yaml:"search"`
	Acquisition AcquisitionConfig `json:"acquisition" yaml:"acquisition"`
	Extraction  ExtractionConfig  `json:"extraction" yaml:"extraction"`
	AI          AIConfig          `json:"ai" yaml:"ai"`
	Mail        MailConfig        `json:"mail" yaml:"mail"`
	Schedule    ScheduleConfig    `json:"schedule" yaml:"schedule"`
}

// Redacted returns a copy of the configuration with credentials masked.
func (c PipelineConfig) Redacted() PipelineConfig {
	if c.AI.APIKey != "" {
		c.AI.APIKey = "********"
	}
	if c.Mail.Password != "" {
		c.Mail.Password = "********"
	}
	return c
}
