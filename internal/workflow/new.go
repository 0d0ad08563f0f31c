package workflow

import (
	"time"

	"github.com/nguyentantai21042004/learn-flow/internal/llm"
	"github.com/nguyentantai21042004/learn-flow/internal/logger"
	"github.com/nguyentantai21042004/learn-flow/internal/summarize"
	"github.com/nguyentantai21042004/learn-flow/internal/transcript"
	"github.com/nguyentantai21042004/learn-flow/internal/translate"
	"github.com/nguyentantai21042004/learn-flow/internal/tts"
)

// Executors bundles the external collaborators every task dispatches to.
type Executors struct {
	Transcripts transcript.Provider
	Translator  translate.Translator
	Summarizer  summarize.Summarizer
	LLM         llm.Client
	Speech      tts.Synthesizer
}

// Controller applies transitions to session state. Every transition is a
// pure reducer: it takes a Session by value and returns the next Session,
// so a failure can never leave a half-applied update behind.
type Controller struct {
	exec        Executors
	logger      logger.Logger
	taskTimeout time.Duration
}

// New creates a Controller instance
func New(exec Executors, log logger.Logger, taskTimeout time.Duration) *Controller {
	if taskTimeout <= 0 {
		taskTimeout = 2 * time.Minute
	}

	return &Controller{
		exec:        exec,
		logger:      log,
		taskTimeout: taskTimeout,
	}
}
