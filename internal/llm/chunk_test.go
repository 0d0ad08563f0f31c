package llm

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestChunkChars(t *testing.T) {
	chunks := chunkChars("abcdefgh", 3)
	if len(chunks) != 3 {
		t.Fatalf("len(chunks) = %d, want 3", len(chunks))
	}
	if chunks[0] != "abc" || chunks[2] != "gh" {
		t.Errorf("chunks = %v", chunks)
	}
}

func TestChunkCharsShortInput(t *testing.T) {
	chunks := chunkChars("ab", 10)
	if len(chunks) != 1 || chunks[0] != "ab" {
		t.Errorf("chunks = %v", chunks)
	}
}

func TestChunkCharsKeepsValidUTF8(t *testing.T) {
	text := strings.Repeat("日本語テキスト", 10)

	chunks := chunkChars(text, 7)
	var rebuilt strings.Builder
	for i, chunk := range chunks {
		if !utf8.ValidString(chunk) {
			t.Errorf("chunk %d is not valid UTF-8: %q", i, chunk)
		}
		if n := len([]rune(chunk)); n > 7 {
			t.Errorf("chunk %d has %d runes, want <= 7", i, n)
		}
		rebuilt.WriteString(chunk)
	}
	if rebuilt.String() != text {
		t.Error("chunks do not reassemble to the input")
	}
}
