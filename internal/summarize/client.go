package summarize

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// Summarize splits the text into word-based chunks, summarizes each one
// and joins the partial summaries. Individual chunk failures are skipped
// so one bad segment does not lose the whole result; the call fails only
// when every chunk fails.
func (s *implSummarizer) Summarize(ctx context.Context, text string) (string, error) {
	words := strings.Fields(text)
	if len(words) == 0 {
		return "", fmt.Errorf("nothing to summarize")
	}
	if s.maxWords > 0 && len(words) > s.maxWords {
		return "", fmt.Errorf("%w: %d words (limit %d)", ErrInputTooLong, len(words), s.maxWords)
	}

	chunks := chunkWords(words, s.chunkWords)
	s.logger.Debug(ctx, "Summarizing %d chunks of ~%d words", len(chunks), s.chunkWords)

	var out strings.Builder
	var lastErr error
	for i, chunk := range chunks {
		part, err := s.summarizeChunk(ctx, chunk)
		if err != nil {
			if ctx.Err() != nil {
				return "", err
			}
			s.logger.Warn(ctx, "Skipping chunk %d/%d: %v", i+1, len(chunks), err)
			lastErr = err
			continue
		}
		if out.Len() > 0 {
			out.WriteString(" ")
		}
		out.WriteString(part)
	}

	if out.Len() == 0 {
		return "", fmt.Errorf("summarization failed for all chunks: %w", lastErr)
	}

	return out.String(), nil
}

func (s *implSummarizer) summarizeChunk(ctx context.Context, text string) (string, error) {
	payload := map[string]any{
		"inputs": text,
		"parameters": map[string]any{
			"max_length": 100,
			"min_length": 30,
			"do_sample":  false,
		},
	}

	b, _ := json.Marshal(payload)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}

	resp, err := s.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrModelUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusServiceUnavailable:
		// The hosted API answers 503 while the model is loading
		return "", fmt.Errorf("%w: model loading", ErrModelUnavailable)
	case resp.StatusCode == http.StatusRequestEntityTooLarge,
		resp.StatusCode == http.StatusUnprocessableEntity:
		return "", fmt.Errorf("%w: http %d", ErrInputTooLong, resp.StatusCode)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return "", fmt.Errorf("summarizer http %d", resp.StatusCode)
	}

	var results []struct {
		SummaryText string `json:"summary_text"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return "", fmt.Errorf("decode summarizer response: %w", err)
	}
	if len(results) == 0 {
		return "", fmt.Errorf("empty summarizer response")
	}

	return strings.TrimSpace(results[0].SummaryText), nil
}

// chunkWords groups words into chunks of at most size words
func chunkWords(words []string, size int) []string {
	if size <= 0 {
		size = 200
	}

	var chunks []string
	for i := 0; i < len(words); i += size {
		end := i + size
		if end > len(words) {
			end = len(words)
		}
		chunks = append(chunks, strings.Join(words[i:end], " "))
	}
	return chunks
}
