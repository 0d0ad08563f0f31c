package summarize

import (
	"net/http"
	"time"

	"github.com/nguyentantai21042004/learn-flow/internal/config"
	"github.com/nguyentantai21042004/learn-flow/internal/logger"
)

type implSummarizer struct {
	endpoint   string
	model      string
	token      string
	http       *http.Client
	chunkWords int
	maxWords   int
	logger     logger.Logger
}

// New creates a Summarizer backed by a hosted inference endpoint
// (HuggingFace-compatible API, facebook/bart-large-cnn by default)
func New(cfg config.SummarizerConfig, log logger.Logger) Summarizer {
	timeout := time.Duration(cfg.TimeoutSec) * time.Second
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	return &implSummarizer{
		endpoint:   cfg.Endpoint,
		model:      cfg.Model,
		token:      cfg.Token,
		http:       &http.Client{Timeout: timeout},
		chunkWords: cfg.ChunkWords,
		maxWords:   cfg.MaxWords,
		logger:     log,
	}
}
