package translate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// Supports reports whether the source->target pair is configured
func (t *implTranslator) Supports(source, target string) bool {
	return t.pairs[strings.ToLower(source)+"-"+strings.ToLower(target)]
}

// Translate sends the text to the translation backend in fixed-size
// segments and concatenates the results. The payload follows the
// LibreTranslate contract (q, source, target, format).
func (t *implTranslator) Translate(ctx context.Context, text, source, target string) (string, error) {
	if !t.Supports(source, target) {
		return "", fmt.Errorf("%w: %s -> %s", ErrUnsupportedPair, source, target)
	}
	if strings.TrimSpace(text) == "" {
		return "", nil
	}

	segments := splitSegments(text, t.chunkChars)
	t.logger.Debug(ctx, "Translating %d segments (%s -> %s)", len(segments), source, target)

	var out strings.Builder
	for i, seg := range segments {
		translated, err := t.translateSegment(ctx, seg, source, target)
		if err != nil {
			return "", fmt.Errorf("segment %d/%d: %w", i+1, len(segments), err)
		}
		if out.Len() > 0 {
			out.WriteString(" ")
		}
		out.WriteString(translated)
	}

	return out.String(), nil
}

func (t *implTranslator) translateSegment(ctx context.Context, text, source, target string) (string, error) {
	payload := map[string]any{
		"q":      text,
		"source": source,
		"target": target,
		"format": "text",
	}

	b, _ := json.Marshal(payload)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.baseURL+"/translate", bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrModelUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 {
		return "", fmt.Errorf("%w: http %d", ErrModelUnavailable, resp.StatusCode)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("translation http %d", resp.StatusCode)
	}

	var lr struct {
		TranslatedText string `json:"translatedText"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&lr); err != nil {
		return "", fmt.Errorf("decode translation response: %w", err)
	}

	return strings.TrimSpace(lr.TranslatedText), nil
}

// splitSegments cuts text into chunks of at most maxChars, preferring
// word boundaries so the model never sees a split token.
func splitSegments(text string, maxChars int) []string {
	var segments []string
	for len(text) > maxChars {
		cut := maxChars
		if idx := strings.LastIndex(text[:maxChars], " "); idx > 0 {
			cut = idx
		}
		segments = append(segments, strings.TrimSpace(text[:cut]))
		text = strings.TrimSpace(text[cut:])
	}
	if text != "" {
		segments = append(segments, text)
	}
	return segments
}
