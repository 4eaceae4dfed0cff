// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package config builds the single types.PipelineConfig value used by every
// stage. Values are resolved by viper in the order flag, environment, config
// file, .secrets/ entry, built-in default.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/adhocore/gronx"
	"github.com/joho/godotenv"
	"github.com/spf13/cast"
	"github.com/spf13/viper"

	"github.com/pdiddy/paper-digest/internal/secrets"
	"github.com/pdiddy/paper-digest/pkg/types"
)

// Configuration keys.
const (
	KeyTopic        = "topic"
	KeyRecipient    = "recipient"
	KeyMaxPapers    = "max_papers"
	KeyDataDir      = "data_dir"
	KeyUserAgent    = "user_agent"
	KeyAIKey        = "ai.api_key"
	KeyAIModel      = "ai.model"
	KeyAIBaseURL    = "ai.base_url"
	KeyAIMaxChars   = "ai.max_chars"
	KeyMailHost     = "mail.host"
	KeyMailPort     = "mail.port"
	KeyMailSender   = "mail.sender"
	KeyMailPassword = "mail.password"
	KeyTimeout      = "acquisition.timeout"
	KeyOCREngine    = "extraction.ocr_engine"
	KeyOCRLanguage  = "extraction.ocr_language"
	KeyCron         = "schedule.cron"
	KeyPoll         = "schedule.poll_interval"
)

// Defaults.
const (
	DefaultTopic        = "LLM"
	DefaultMaxPapers    = 1
	DefaultDataDir      = "data"
	DefaultUserAgent    = "paper-digest/dev"
	DefaultModel        = "gemini-2.0-flash"
	DefaultBaseURL      = "https://generativelanguage.googleapis.com/v1beta/openai/"
	DefaultMaxChars     = 5000
	DefaultMailPort     = 587
	DefaultTimeout      = 30 * time.Second
	DefaultOCRLanguage  = "eng"
	DefaultCron         = "@weekly"
	DefaultPollInterval = time.Minute
)

// ErrInvalid is wrapped by every validation error returned from Load.
var ErrInvalid = errors.New("invalid configuration")

// envBindings maps configuration keys to the environment variables that
// set them.
var envBindings = map[string]string{
	KeyTopic:        "TOPIC",
	KeyRecipient:    "RECEIVER_EMAIL",
	KeyMaxPapers:    "MAX_PAPERS",
	KeyDataDir:      "DATA_DIR",
	KeyAIKey:        "GOOGLE_API_KEY",
	KeyAIModel:      "LLM_MODEL",
	KeyAIBaseURL:    "LLM_BASE_URL",
	KeyMailHost:     "SMTP_SERVER",
	KeyMailPort:     "SMTP_PORT",
	KeyMailSender:   "SENDER_EMAIL",
	KeyMailPassword: "SENDER_PASSWORD",
	KeyTimeout:      "DOWNLOAD_TIMEOUT",
	KeyOCREngine:    "OCR_ENGINE",
	KeyOCRLanguage:  "OCR_LANGUAGE",
	KeyCron:         "SCHEDULE_CRON",
	KeyPoll:         "SCHEDULE_POLL",
}

// EnvVar returns the environment variable bound to key, or "".
func EnvVar(key string) string {
	return envBindings[key]
}

// LoadDotEnv loads KEY=VALUE pairs from path into the process environment.
// Variables already set are left alone and a missing file is not an error.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

// Setup registers defaults and environment bindings on v. Secrets loaded from
// the .secrets/ directory become defaults, so any flag, environment variable,
// or config file entry overrides them.
func Setup(v *viper.Viper, s map[string]string) {
	v.SetDefault(KeyTopic, DefaultTopic)
	v.SetDefault(KeyMaxPapers, DefaultMaxPapers)
	v.SetDefault(KeyDataDir, DefaultDataDir)
	v.SetDefault(KeyUserAgent, DefaultUserAgent)
	v.SetDefault(KeyAIModel, DefaultModel)
	v.SetDefault(KeyAIBaseURL, DefaultBaseURL)
	v.SetDefault(KeyAIMaxChars, DefaultMaxChars)
	v.SetDefault(KeyMailPort, DefaultMailPort)
	v.SetDefault(KeyTimeout, DefaultTimeout)
	v.SetDefault(KeyOCREngine, string(types.OCRLibrary))
	v.SetDefault(KeyOCRLanguage, DefaultOCRLanguage)
	v.SetDefault(KeyCron, DefaultCron)
	v.SetDefault(KeyPoll, DefaultPollInterval)

	if key, ok := s[secrets.KeyGoogleAPI]; ok {
		v.SetDefault(KeyAIKey, key)
	}
	if pw, ok := s[secrets.KeySenderPassword]; ok {
		v.SetDefault(KeyMailPassword, pw)
	}

	for key, env := range envBindings {
		// BindEnv only fails when called without a key.
		_ = v.BindEnv(key, env)
	}
}

// Load reads and validates the configuration held by v. The recipient is
// not checked here; a run without one is rejected by the pipeline.
func Load(v *viper.Viper) (types.PipelineConfig, error) {
	var errs []error
	invalid := func(key string, value any, err error) {
		errs = append(errs, fmt.Errorf("%w: %s (%s=%v): %v", ErrInvalid, key, describe(key), value, err))
	}

	cfg := types.PipelineConfig{
		Topic:     strings.TrimSpace(v.GetString(KeyTopic)),
		Recipient: strings.TrimSpace(v.GetString(KeyRecipient)),
	}
	if cfg.Topic == "" {
		invalid(KeyTopic, "", errors.New("must not be empty"))
	}

	maxPapers, err := cast.ToIntE(v.Get(KeyMaxPapers))
	switch {
	case err != nil:
		invalid(KeyMaxPapers, v.Get(KeyMaxPapers), err)
	case maxPapers < 1:
		invalid(KeyMaxPapers, maxPapers, errors.New("must be at least 1"))
	}
	cfg.MaxPapers = maxPapers

	timeout, err := cast.ToDurationE(v.Get(KeyTimeout))
	switch {
	case err != nil:
		invalid(KeyTimeout, v.Get(KeyTimeout), err)
	case timeout <= 0:
		invalid(KeyTimeout, timeout, errors.New("must be positive"))
	}

	userAgent := v.GetString(KeyUserAgent)
	// Only downloads are bounded; the search request has no client timeout.
	cfg.Search = types.SearchConfig{
		HTTPConfig: types.HTTPConfig{UserAgent: userAgent},
	}
	cfg.Acquisition = types.AcquisitionConfig{
		HTTPConfig: types.HTTPConfig{Timeout: timeout, UserAgent: userAgent},
		DataDir:    v.GetString(KeyDataDir),
	}
	if cfg.Acquisition.DataDir == "" {
		invalid(KeyDataDir, "", errors.New("must not be empty"))
	}

	engine := types.OCREngineKind(strings.ToLower(v.GetString(KeyOCREngine)))
	if engine != types.OCRLibrary && engine != types.OCRCLI {
		invalid(KeyOCREngine, engine, fmt.Errorf("want %q or %q", types.OCRLibrary, types.OCRCLI))
	}
	cfg.Extraction = types.ExtractionConfig{
		OCREngine:   engine,
		OCRLanguage: v.GetString(KeyOCRLanguage),
	}

	maxChars, err := cast.ToIntE(v.Get(KeyAIMaxChars))
	if err != nil || maxChars < 1 {
		invalid(KeyAIMaxChars, v.Get(KeyAIMaxChars), errors.New("must be a positive integer"))
	}
	cfg.AI = types.AIConfig{
		Model:    v.GetString(KeyAIModel),
		APIKey:   v.GetString(KeyAIKey),
		BaseURL:  v.GetString(KeyAIBaseURL),
		MaxChars: maxChars,
	}

	port, err := cast.ToIntE(v.Get(KeyMailPort))
	if err != nil || port < 1 || port > 65535 {
		invalid(KeyMailPort, v.Get(KeyMailPort), errors.New("must be a port number"))
	}
	cfg.Mail = types.MailConfig{
		Host:     v.GetString(KeyMailHost),
		Port:     port,
		Sender:   v.GetString(KeyMailSender),
		Password: v.GetString(KeyMailPassword),
	}

	cron := strings.TrimSpace(v.GetString(KeyCron))
	if _, err := gronx.NextTickAfter(cron, time.Now(), false); err != nil {
		invalid(KeyCron, cron, err)
	}
	poll, err := cast.ToDurationE(v.Get(KeyPoll))
	switch {
	case err != nil:
		invalid(KeyPoll, v.Get(KeyPoll), err)
	case poll <= 0:
		invalid(KeyPoll, poll, errors.New("must be positive"))
	}
	cfg.Schedule = types.ScheduleConfig{Cron: cron, PollInterval: poll}

	if len(errs) > 0 {
		return cfg, errors.Join(errs...)
	}
	return cfg, nil
}

func describe(key string) string {
	if env := envBindings[key]; env != "" {
		return env
	}
	return "config"
}
