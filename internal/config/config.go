package config

import "fmt"

type Config struct {
	Server     ServerConfig     `yaml:"server"`
	YouTube    YouTubeConfig    `yaml:"youtube"`
	Translator TranslatorConfig `yaml:"translator"`
	Summarizer SummarizerConfig `yaml:"summarizer"`
	LLM        LLMConfig        `yaml:"llm"`
	TTS        TTSConfig        `yaml:"tts"`
	Whisper    WhisperConfig    `yaml:"whisper"`
	Languages  []Language       `yaml:"languages"`
	Logging    LoggingConfig    `yaml:"logging"`
}

type ServerConfig struct {
	Addr            string `yaml:"addr"`
	SessionTTLMin   int    `yaml:"session_ttl_minutes"`
	TaskTimeoutSec  int    `yaml:"task_timeout_seconds"`
	MaxUploadSizeMB int    `yaml:"max_upload_size_mb"`
}

type YouTubeConfig struct {
	BaseURL    string `yaml:"base_url"`
	TimeoutSec int    `yaml:"timeout_seconds"`
}

type TranslatorConfig struct {
	BaseURL    string   `yaml:"base_url"`
	TimeoutSec int      `yaml:"timeout_seconds"`
	Pairs      []string `yaml:"pairs"`       // "src-dst" language pairs the backend serves
	ChunkChars int      `yaml:"chunk_chars"` // segment size sent per request
}

type SummarizerConfig struct {
	Endpoint   string `yaml:"endpoint"`
	Model      string `yaml:"model"`
	Token      string `yaml:"token"`
	TimeoutSec int    `yaml:"timeout_seconds"`
	ChunkWords int    `yaml:"chunk_words"`
	MaxWords   int    `yaml:"max_words"` // inputs above this are rejected
}

type LLMConfig struct {
	Model         string `yaml:"model"`
	ChunkChars    int    `yaml:"chunk_chars"`
	QuizQuestions int    `yaml:"quiz_questions"`
}

type TTSConfig struct {
	BaseURL    string `yaml:"base_url"`
	Model      string `yaml:"model"`
	Voice      string `yaml:"voice"`
	TimeoutSec int    `yaml:"timeout_seconds"`
}

// WhisperConfig drives the local transcription fallback for uploaded media.
type WhisperConfig struct {
	BinaryPath string `yaml:"binary_path"`
	ModelPath  string `yaml:"model_path"`
	Language   string `yaml:"language"`
	Threads    int    `yaml:"threads"`
}

// Language maps a human label to a language code, mirroring the
// predefined target set offered in the UI.
type Language struct {
	Code string `yaml:"code"`
	Name string `yaml:"name"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

func (c *Config) Validate() error {
	if c.Translator.BaseURL == "" {
		return fmt.Errorf("translator.base_url is required")
	}
	if c.Summarizer.Endpoint == "" {
		return fmt.Errorf("summarizer.endpoint is required")
	}
	if c.TTS.BaseURL == "" {
		return fmt.Errorf("tts.base_url is required")
	}

	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Server.SessionTTLMin == 0 {
		c.Server.SessionTTLMin = 60
	}
	if c.Server.TaskTimeoutSec == 0 {
		c.Server.TaskTimeoutSec = 120
	}
	if c.Server.MaxUploadSizeMB == 0 {
		c.Server.MaxUploadSizeMB = 512
	}
	if c.YouTube.BaseURL == "" {
		c.YouTube.BaseURL = "https://www.youtube.com"
	}
	if c.YouTube.TimeoutSec == 0 {
		c.YouTube.TimeoutSec = 15
	}
	if c.Translator.TimeoutSec == 0 {
		c.Translator.TimeoutSec = 30
	}
	if c.Translator.ChunkChars == 0 {
		c.Translator.ChunkChars = 512
	}
	if len(c.Translator.Pairs) == 0 {
		c.Translator.Pairs = []string{
			"en-es", "en-fr", "en-de",
			"es-en", "fr-en", "de-en",
		}
	}
	if c.Summarizer.Model == "" {
		c.Summarizer.Model = "facebook/bart-large-cnn"
	}
	if c.Summarizer.TimeoutSec == 0 {
		c.Summarizer.TimeoutSec = 60
	}
	if c.Summarizer.ChunkWords == 0 {
		c.Summarizer.ChunkWords = 200
	}
	if c.Summarizer.MaxWords == 0 {
		c.Summarizer.MaxWords = 60000
	}
	if c.LLM.Model == "" {
		c.LLM.Model = "gemini-2.5-flash"
	}
	if c.LLM.ChunkChars == 0 {
		c.LLM.ChunkChars = 4000
	}
	if c.LLM.QuizQuestions == 0 {
		c.LLM.QuizQuestions = 10
	}
	if c.TTS.Model == "" {
		c.TTS.Model = "gpt-4o-mini-tts"
	}
	if c.TTS.Voice == "" {
		c.TTS.Voice = "alloy"
	}
	if c.TTS.TimeoutSec == 0 {
		c.TTS.TimeoutSec = 120
	}
	if c.Whisper.Language == "" {
		c.Whisper.Language = "en"
	}
	if c.Whisper.Threads == 0 {
		c.Whisper.Threads = 4
	}
	if len(c.Languages) == 0 {
		c.Languages = []Language{
			{Code: "en", Name: "English"},
			{Code: "es", Name: "Spanish"},
			{Code: "fr", Name: "French"},
			{Code: "de", Name: "German"},
		}
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}

	return nil
}
