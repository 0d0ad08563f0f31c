package translate

import (
	"net/http"
	"strings"
	"time"

	"github.com/nguyentantai21042004/learn-flow/internal/config"
	"github.com/nguyentantai21042004/learn-flow/internal/logger"
)

type implTranslator struct {
	baseURL    string
	http       *http.Client
	pairs      map[string]bool // "src-dst"
	chunkChars int
	logger     logger.Logger
}

// New creates a Translator talking to a LibreTranslate-compatible backend
func New(cfg config.TranslatorConfig, log logger.Logger) Translator {
	timeout := time.Duration(cfg.TimeoutSec) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	pairs := make(map[string]bool, len(cfg.Pairs))
	for _, p := range cfg.Pairs {
		pairs[strings.ToLower(strings.TrimSpace(p))] = true
	}

	chunk := cfg.ChunkChars
	if chunk <= 0 {
		chunk = 512
	}

	return &implTranslator{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		http:       &http.Client{Timeout: timeout},
		pairs:      pairs,
		chunkChars: chunk,
		logger:     log,
	}
}
