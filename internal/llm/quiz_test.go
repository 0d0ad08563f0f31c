package llm

import "testing"

const quizJSON = `[
  {"question": "What is Go?", "choices": ["A language", "A game", "A fish", "A city"], "answer": "A language"},
  {"question": "Who made it?", "choices": ["Google", "Apple"], "answer": "Google"}
]`

func TestParseQuiz(t *testing.T) {
	items, err := parseQuiz(quizJSON)
	if err != nil {
		t.Fatalf("parseQuiz() error = %v", err)
	}

	if len(items) != 2 {
		t.Fatalf("len(items) = %d, want 2", len(items))
	}
	if items[0].Question != "What is Go?" {
		t.Errorf("Question = %q", items[0].Question)
	}
	if len(items[0].Choices) != 4 {
		t.Errorf("len(Choices) = %d, want 4", len(items[0].Choices))
	}
	if items[0].Answer != "A language" {
		t.Errorf("Answer = %q", items[0].Answer)
	}
}

func TestParseQuizWithFences(t *testing.T) {
	items, err := parseQuiz("```json\n" + quizJSON + "\n```")
	if err != nil {
		t.Fatalf("parseQuiz() error = %v", err)
	}
	if len(items) != 2 {
		t.Errorf("len(items) = %d, want 2", len(items))
	}
}

func TestParseQuizWithLeadingProse(t *testing.T) {
	items, err := parseQuiz("Here are your questions:\n" + quizJSON)
	if err != nil {
		t.Fatalf("parseQuiz() error = %v", err)
	}
	if len(items) != 2 {
		t.Errorf("len(items) = %d, want 2", len(items))
	}
}

func TestParseQuizRejectsGarbage(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"no array", "sorry, I cannot do that"},
		{"empty array", "[]"},
		{"array of empty objects", `[{"question": "", "choices": []}]`},
		{"malformed json", `[{"question": "q", "choices": ["a"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := parseQuiz(tt.raw); err == nil {
				t.Errorf("parseQuiz(%q) should fail", tt.raw)
			}
		})
	}
}

func TestStripFences(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "[]", "[]"},
		{"json fence", "```json\n[]\n```", "[]"},
		{"bare fence", "```\n[]\n```", "[]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := stripFences(tt.in); got != tt.want {
				t.Errorf("stripFences(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
