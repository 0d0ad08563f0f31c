package server

import (
	"sync"
	"time"

	"github.com/nguyentantai21042004/learn-flow/internal/config"
	"github.com/nguyentantai21042004/learn-flow/internal/logger"
	"github.com/nguyentantai21042004/learn-flow/internal/session"
	"github.com/nguyentantai21042004/learn-flow/internal/transcript"
	"github.com/nguyentantai21042004/learn-flow/internal/workflow"
)

// Server exposes the workflow over HTTP: session lifecycle, transcript
// loading, task dispatch, artifact downloads and a websocket event feed.
type Server struct {
	cfgMu      sync.RWMutex
	cfg        config.Config
	controller *workflow.Controller
	store      *session.Store
	local      *transcript.LocalEngine
	events     *Hub
	logger     logger.Logger
}

// New creates a Server instance
func New(cfg config.Config, ctrl *workflow.Controller, store *session.Store, local *transcript.LocalEngine, log logger.Logger) *Server {
	return &Server{
		cfg:        cfg,
		controller: ctrl,
		store:      store,
		local:      local,
		events:     NewHub(log),
		logger:     log,
	}
}

// Reload swaps in a new configuration. Only request-scoped tunables
// (upload cap, target languages) take effect; executors keep the
// settings they were built with.
func (s *Server) Reload(cfg config.Config) {
	s.cfgMu.Lock()
	s.cfg = cfg
	s.cfgMu.Unlock()
}

func (s *Server) config() config.Config {
	s.cfgMu.RLock()
	defer s.cfgMu.RUnlock()
	return s.cfg
}

// maxUploadBytes converts the configured upload cap to bytes
func (s *Server) maxUploadBytes() int64 {
	return int64(s.config().Server.MaxUploadSizeMB) << 20
}

// taskTimeout returns the per-task deadline used by upload transcription
func (s *Server) taskTimeout() time.Duration {
	return time.Duration(s.config().Server.TaskTimeoutSec) * time.Second
}
