package llm

import (
	"github.com/nguyentantai21042004/learn-flow/internal/config"
	"github.com/nguyentantai21042004/learn-flow/internal/logger"
)

type implClient struct {
	model         string
	chunkChars    int
	quizQuestions int
	logger        logger.Logger
}

// New creates a Client that talks to the Gemini API
func New(cfg config.LLMConfig, log logger.Logger) Client {
	chunk := cfg.ChunkChars
	if chunk <= 0 {
		chunk = 4000
	}
	questions := cfg.QuizQuestions
	if questions <= 0 {
		questions = 10
	}

	return &implClient{
		model:         cfg.Model,
		chunkChars:    chunk,
		quizQuestions: questions,
		logger:        log,
	}
}
