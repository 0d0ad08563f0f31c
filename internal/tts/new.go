package tts

import (
	"net/http"
	"strings"
	"time"

	"github.com/nguyentantai21042004/learn-flow/internal/config"
	"github.com/nguyentantai21042004/learn-flow/internal/logger"
)

type implSynthesizer struct {
	baseURL string
	model   string
	voice   string
	http    *http.Client
	logger  logger.Logger
}

// New creates a Synthesizer against an OpenAI-compatible speech endpoint
func New(cfg config.TTSConfig, log logger.Logger) Synthesizer {
	timeout := time.Duration(cfg.TimeoutSec) * time.Second
	if timeout <= 0 {
		timeout = 120 * time.Second
	}

	return &implSynthesizer{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		model:   cfg.Model,
		voice:   cfg.Voice,
		http:    &http.Client{Timeout: timeout},
		logger:  log,
	}
}
