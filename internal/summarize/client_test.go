package summarize

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/nguyentantai21042004/learn-flow/internal/config"
	"github.com/nguyentantai21042004/learn-flow/internal/logger"
)

func testSummarizer(t *testing.T, handler http.HandlerFunc, chunkWords, maxWords int) Summarizer {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return New(config.SummarizerConfig{
		Endpoint:   srv.URL,
		Model:      "facebook/bart-large-cnn",
		TimeoutSec: 5,
		ChunkWords: chunkWords,
		MaxWords:   maxWords,
	}, logger.New("error"))
}

func summaryResponse(text string) []map[string]string {
	return []map[string]string{{"summary_text": text}}
}

func TestSummarize(t *testing.T) {
	s := testSummarizer(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(summaryResponse("a short summary"))
	}, 200, 0)

	got, err := s.Summarize(context.Background(), "some long transcript text")
	if err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}
	if got != "a short summary" {
		t.Errorf("Summarize() = %q", got)
	}
}

func TestSummarizeChunksLongInput(t *testing.T) {
	var calls int
	s := testSummarizer(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		json.NewEncoder(w).Encode(summaryResponse("part"))
	}, 10, 0)

	text := strings.Repeat("word ", 35) // 35 words -> 4 chunks of 10
	got, err := s.Summarize(context.Background(), text)
	if err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}
	if calls != 4 {
		t.Errorf("backend calls = %d, want 4", calls)
	}
	if got != "part part part part" {
		t.Errorf("Summarize() = %q", got)
	}
}

func TestSummarizeInputTooLong(t *testing.T) {
	s := testSummarizer(t, nil, 200, 5)

	_, err := s.Summarize(context.Background(), strings.Repeat("word ", 10))
	if !errors.Is(err, ErrInputTooLong) {
		t.Errorf("Summarize() error = %v, want ErrInputTooLong", err)
	}
}

func TestSummarizeModelUnavailable(t *testing.T) {
	s := testSummarizer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}, 200, 0)

	_, err := s.Summarize(context.Background(), "text to summarize")
	if !errors.Is(err, ErrModelUnavailable) {
		t.Errorf("Summarize() error = %v, want ErrModelUnavailable", err)
	}
}

func TestSummarizePartialChunkFailure(t *testing.T) {
	var calls int
	s := testSummarizer(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode(summaryResponse("ok"))
	}, 5, 0)

	got, err := s.Summarize(context.Background(), strings.Repeat("word ", 10))
	if err != nil {
		t.Fatalf("Summarize() error = %v, partial failure should be tolerated", err)
	}
	if got != "ok" {
		t.Errorf("Summarize() = %q, want %q", got, "ok")
	}
}

func TestSummarizeEmptyInput(t *testing.T) {
	s := testSummarizer(t, nil, 200, 0)

	if _, err := s.Summarize(context.Background(), "   "); err == nil {
		t.Error("Summarize() should fail on empty input")
	}
}

func TestChunkWords(t *testing.T) {
	words := strings.Fields("a b c d e f g")

	chunks := chunkWords(words, 3)
	if len(chunks) != 3 {
		t.Fatalf("chunkWords() = %d chunks, want 3", len(chunks))
	}
	if chunks[0] != "a b c" || chunks[2] != "g" {
		t.Errorf("chunks = %v", chunks)
	}
}
