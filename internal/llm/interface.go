package llm

import "context"

// QuizItem is one multiple-choice question generated from a transcript.
type QuizItem struct {
	Question string   `json:"question"`
	Choices  []string `json:"choices"`
	Answer   string   `json:"answer"`
}

// Client runs the LLM-backed tasks. Every call takes the user's API key;
// the key is held in session memory only and never stored.
type Client interface {
	Summarize(ctx context.Context, apiKey, text string) (string, error)
	Steps(ctx context.Context, apiKey, text string) (string, error)
	Quiz(ctx context.Context, apiKey, text string) ([]QuizItem, error)
}
