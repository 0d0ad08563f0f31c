package transcript

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"html"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// timedtext list response: one <track> per caption language.
type trackList struct {
	Tracks []track `xml:"track"`
}

type track struct {
	LangCode       string `xml:"lang_code,attr"`
	LangTranslated string `xml:"lang_translated,attr"`
	LangOriginal   string `xml:"lang_original,attr"`
	Kind           string `xml:"kind,attr"`
}

// timedtext transcript response: one <text> per caption cue.
type captionDoc struct {
	Texts []string `xml:"text"`
}

// List returns the caption languages YouTube advertises for the video
func (p *implProvider) List(ctx context.Context, videoID string) ([]Language, error) {
	endpoint := fmt.Sprintf("%s/api/timedtext?type=list&v=%s", p.baseURL, url.QueryEscape(videoID))

	body, err := p.get(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	if len(bytes.TrimSpace(body)) == 0 {
		return nil, ErrNotFound
	}

	var list trackList
	if err := xml.Unmarshal(body, &list); err != nil {
		return nil, fmt.Errorf("parse track list: %w", err)
	}

	if len(list.Tracks) == 0 {
		return nil, ErrNotFound
	}

	langs := make([]Language, 0, len(list.Tracks))
	for _, tr := range list.Tracks {
		name := tr.LangTranslated
		if name == "" {
			name = tr.LangOriginal
		}
		langs = append(langs, Language{Code: tr.LangCode, Name: name})
	}

	p.logger.Debug(ctx, "Found %d caption tracks for %s", len(langs), videoID)
	return langs, nil
}

// Fetch returns the plain transcript text for one language
func (p *implProvider) Fetch(ctx context.Context, videoID, lang string) (string, error) {
	if lang == "" {
		langs, err := p.List(ctx, videoID)
		if err != nil {
			return "", err
		}
		lang = langs[0].Code
	}

	text, err := p.fetchTrack(ctx, videoID, lang, "")
	if err != nil {
		return "", err
	}
	if text == "" {
		// Auto-generated tracks are only served with kind=asr
		text, err = p.fetchTrack(ctx, videoID, lang, "asr")
		if err != nil {
			return "", err
		}
	}
	if text == "" {
		return "", fmt.Errorf("%w: %s", ErrLanguageUnavailable, lang)
	}

	return text, nil
}

func (p *implProvider) fetchTrack(ctx context.Context, videoID, lang, kind string) (string, error) {
	endpoint := fmt.Sprintf("%s/api/timedtext?v=%s&lang=%s",
		p.baseURL, url.QueryEscape(videoID), url.QueryEscape(lang))
	if kind != "" {
		endpoint += "&kind=" + url.QueryEscape(kind)
	}

	body, err := p.get(ctx, endpoint)
	if err != nil {
		return "", err
	}

	// YouTube answers 200 with an empty body when the track does not exist
	if len(bytes.TrimSpace(body)) == 0 {
		return "", nil
	}

	var doc captionDoc
	if err := xml.Unmarshal(body, &doc); err != nil {
		return "", fmt.Errorf("parse transcript: %w", err)
	}

	parts := make([]string, 0, len(doc.Texts))
	for _, t := range doc.Texts {
		t = strings.TrimSpace(html.UnescapeString(t))
		if t != "" {
			parts = append(parts, t)
		}
	}

	return strings.Join(parts, " "), nil
}

func (p *implProvider) get(ctx context.Context, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := p.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("timedtext request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("timedtext http %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read timedtext response: %w", err)
	}

	return body, nil
}
