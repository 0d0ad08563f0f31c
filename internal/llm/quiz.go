package llm

import (
	"encoding/json"
	"fmt"
	"strings"
)

// parseQuiz decodes the model's JSON array of quiz questions. Models
// sometimes wrap JSON in markdown fences despite instructions, so those
// are stripped first.
func parseQuiz(raw string) ([]QuizItem, error) {
	cleaned := stripFences(raw)

	// Tolerate leading prose by cutting to the outermost array
	start := strings.Index(cleaned, "[")
	end := strings.LastIndex(cleaned, "]")
	if start < 0 || end < start {
		return nil, fmt.Errorf("no JSON array in response")
	}
	cleaned = cleaned[start : end+1]

	var items []QuizItem
	if err := json.Unmarshal([]byte(cleaned), &items); err != nil {
		return nil, err
	}

	valid := items[:0]
	for _, it := range items {
		if it.Question == "" || len(it.Choices) == 0 {
			continue
		}
		valid = append(valid, it)
	}
	if len(valid) == 0 {
		return nil, fmt.Errorf("response contained no usable questions")
	}

	return valid, nil
}

func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
