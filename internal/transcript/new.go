package transcript

import (
	"net/http"
	"time"

	"github.com/nguyentantai21042004/learn-flow/internal/config"
	"github.com/nguyentantai21042004/learn-flow/internal/logger"
)

type implProvider struct {
	baseURL string
	http    *http.Client
	logger  logger.Logger
}

// New creates a Provider backed by YouTube's timedtext endpoint
func New(cfg config.YouTubeConfig, log logger.Logger) Provider {
	timeout := time.Duration(cfg.TimeoutSec) * time.Second
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	return &implProvider{
		baseURL: cfg.BaseURL,
		http:    &http.Client{Timeout: timeout},
		logger:  log,
	}
}
