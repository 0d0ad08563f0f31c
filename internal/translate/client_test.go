package translate

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

func testTranslator(t *testing.T, handler http.HandlerFunc, chunkChars int) Translator {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return New(config.TranslatorConfig{
		BaseURL:    srv.URL,
		TimeoutSec: 5,
		Pairs:      []string{"en-es", "es-en"},
		ChunkChars: chunkChars,
	}, logger.New("error"))
}

func TestSupports(t *testing.T) {
	tr := testTranslator(t, nil, 512)

	if !tr.Supports("en", "es") {
		t.Error("Supports(en, es) = false, want true")
	}
	if tr.Supports("en", "de") {
		t.Error("Supports(en, de) = true, want false")
	}
	if !tr.Supports("EN", "ES") {
		t.Error("Supports should be case-insensitive")
	}
}

func TestTranslate(t *testing.T) {
	tr := testTranslator(t, func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Q      string `json:"q"`
			Source string `json:"source"`
			Target string `json:"target"`
		}
		json.NewDecoder(r.Body).Decode(&req)
		if req.Source != "en" || req.Target != "es" {
			t.Errorf("pair = %s->%s, want en->es", req.Source, req.Target)
		}
		json.NewEncoder(w).Encode(map[string]string{"translatedText": "hola"})
	}, 512)

	got, err := tr.Translate(context.Background(), "hello", "en", "es")
	if err != nil {
		t.Fatalf("Translate() error = %v", err)
	}
	if got != "hola" {
		t.Errorf("Translate() = %q, want %q", got, "hola")
	}
}

func TestTranslateUnsupportedPair(t *testing.T) {
	tr := testTranslator(t, nil, 512)

	_, err := tr.Translate(context.Background(), "hello", "en", "de")
	if !errors.Is(err, ErrUnsupportedPair) {
		t.Errorf("Translate() error = %v, want ErrUnsupportedPair", err)
	}
}

func TestTranslateChunksLongText(t *testing.T) {
	var calls int
	tr := testTranslator(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		json.NewEncoder(w).Encode(map[string]string{"translatedText": "x"})
	}, 20)

	text := strings.Repeat("palabra ", 10) // 80 chars -> several segments
	if _, err := tr.Translate(context.Background(), text, "en", "es"); err != nil {
		t.Fatalf("Translate() error = %v", err)
	}
	if calls < 2 {
		t.Errorf("backend calls = %d, want chunked requests", calls)
	}
}

func TestTranslateBackendDown(t *testing.T) {
	tr := testTranslator(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}, 512)

	_, err := tr.Translate(context.Background(), "hello", "en", "es")
	if !errors.Is(err, ErrModelUnavailable) {
		t.Errorf("Translate() error = %v, want ErrModelUnavailable", err)
	}
}

func TestSplitSegments(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		maxChars int
		want     int
	}{
		{"short text single segment", "hello world", 512, 1},
		{"exact boundary", "abcde", 5, 1},
		{"splits on word boundary", "aaa bbb ccc", 7, 2},
		{"empty", "", 512, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := splitSegments(tt.text, tt.maxChars)
			if len(got) != tt.want {
				t.Errorf("splitSegments() = %d segments %v, want %d", len(got), got, tt.want)
			}
			for _, seg := range got {
				if len(seg) > tt.maxChars {
					t.Errorf("segment %q exceeds max %d", seg, tt.maxChars)
				}
			}
		})
	}
}
