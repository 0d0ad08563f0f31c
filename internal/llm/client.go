package llm

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

const summaryPrompt = `%s

Create a short concise summary of the text above.`

const stepsPrompt = `You are a technical instructor. From the text below, generate clear
step-by-step instructions a learner can follow. Number every step.

Text:
---
%s
---`

const quizPrompt = `You generate quiz questions. From the text below, create exactly %d
multiple-choice questions. Respond ONLY with a JSON array, no prose and no
markdown fences, where each element has this shape:
{"question": "...", "choices": ["...", "...", "...", "..."], "answer": "..."}
The answer must be one of the choices.

Text:
---
%s
---`

// Summarize condenses the text with the LLM. Long inputs are split into
// fixed-size chunks, summarized independently, and concatenated.
func (c *implClient) Summarize(ctx context.Context, apiKey, text string) (string, error) {
	chunks := chunkChars(text, c.chunkChars)
	c.logger.Debug(ctx, "LLM summarizing %d chunks", len(chunks))

	var out strings.Builder
	for i, chunk := range chunks {
		part, err := c.generate(ctx, apiKey, fmt.Sprintf(summaryPrompt, chunk))
		if err != nil {
			return "", fmt.Errorf("chunk %d/%d: %w", i+1, len(chunks), err)
		}
		if out.Len() > 0 {
			out.WriteString(" ")
		}
		out.WriteString(strings.TrimSpace(part))
	}

	return out.String(), nil
}

// Steps extracts step-by-step instructions from the text
func (c *implClient) Steps(ctx context.Context, apiKey, text string) (string, error) {
	out, err := c.generate(ctx, apiKey, fmt.Sprintf(stepsPrompt, text))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// Quiz generates multiple-choice questions from the text
func (c *implClient) Quiz(ctx context.Context, apiKey, text string) ([]QuizItem, error) {
	out, err := c.generate(ctx, apiKey, fmt.Sprintf(quizPrompt, c.quizQuestions, text))
	if err != nil {
		return nil, err
	}

	items, err := parseQuiz(out)
	if err != nil {
		return nil, fmt.Errorf("parse quiz response: %w", err)
	}

	return items, nil
}

// generate sends one prompt to Gemini and returns the response text.
// A fresh client is created per call because the key belongs to the
// session, not the process.
func (c *implClient) generate(ctx context.Context, apiKey, prompt string) (string, error) {
	if strings.TrimSpace(apiKey) == "" {
		return "", fmt.Errorf("%w: no API key supplied", ErrAuth)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return "", fmt.Errorf("create client: %w", err)
	}

	result, err := client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), nil)
	if err != nil {
		return "", classifyProviderError(err)
	}

	if result != nil && len(result.Candidates) > 0 && result.Candidates[0].Content != nil {
		var text string
		for _, part := range result.Candidates[0].Content.Parts {
			if part.Text != "" {
				text += part.Text
			}
		}
		if text != "" {
			return text, nil
		}
	}

	return "", fmt.Errorf("empty response from model")
}

// classifyProviderError maps provider failures onto the package sentinels
func classifyProviderError(err error) error {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "429"),
		strings.Contains(msg, "quota"),
		strings.Contains(msg, "RESOURCE_EXHAUSTED"):
		return fmt.Errorf("%w: %v", ErrRateLimited, err)
	case strings.Contains(msg, "401"),
		strings.Contains(msg, "403"),
		strings.Contains(msg, "API key not valid"),
		strings.Contains(msg, "PERMISSION_DENIED"),
		strings.Contains(msg, "UNAUTHENTICATED"):
		return fmt.Errorf("%w: %v", ErrAuth, err)
	default:
		return fmt.Errorf("generate content: %w", err)
	}
}

// chunkChars splits text into pieces of at most size characters,
// cutting only on rune boundaries so multi-byte text stays valid UTF-8
func chunkChars(text string, size int) []string {
	var chunks []string
	runes := []rune(text)
	for len(runes) > size {
		chunks = append(chunks, string(runes[:size]))
		runes = runes[size:]
	}
	chunks = append(chunks, string(runes))
	return chunks
}
