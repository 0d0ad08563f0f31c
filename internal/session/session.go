package session

import (
	"time"

	"github.com/nguyentantai21042004/learn-flow/internal/llm"
	"github.com/nguyentantai21042004/learn-flow/internal/transcript"
)

// SummarySource tags which executor produced the current summary.
type SummarySource string

const (
	SourceNone  SummarySource = ""
	SourceLocal SummarySource = "open-source"
	SourceLLM   SummarySource = "llm"
)

// Session holds the hub transcript and every derived artifact for one
// interactive run. It is a value type: transitions copy it, mutate the
// copy, and the store swaps it in atomically. The API key lives only in
// memory and is never serialized.
type Session struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	LastSeen  time.Time `json:"last_seen"`

	VideoID            string                `json:"video_id,omitempty"`
	Transcript         string                `json:"transcript,omitempty"`
	TranscriptLang     string                `json:"transcript_lang,omitempty"`
	AvailableLanguages []transcript.Language `json:"available_transcript_languages,omitempty"`

	Summary       string        `json:"summary,omitempty"`
	SummarySource SummarySource `json:"summary_source,omitempty"`
	SummaryLang   string        `json:"summary_lang,omitempty"`
	SummaryFresh  bool          `json:"summary_fresh"`

	Steps      string `json:"steps,omitempty"`
	StepsFresh bool   `json:"steps_fresh"`

	Quiz      []llm.QuizItem `json:"quiz,omitempty"`
	QuizFresh bool           `json:"quiz_fresh"`

	Audio      []byte `json:"-"`
	AudioFresh bool   `json:"audio_fresh"`

	Translation      string `json:"translation,omitempty"`
	TranslationLang  string `json:"translation_lang,omitempty"`
	TranslationFresh bool   `json:"translation_fresh"`

	APIKey string `json:"-"`
}

// ClearDerived drops every artifact computed from the transcript. Called
// when a new transcript replaces the hub so nothing leaks across videos.
func (s *Session) ClearDerived() {
	s.Summary = ""
	s.SummarySource = SourceNone
	s.SummaryLang = ""
	s.SummaryFresh = false
	s.Steps = ""
	s.StepsFresh = false
	s.Quiz = nil
	s.QuizFresh = false
	s.Audio = nil
	s.AudioFresh = false
	s.Translation = ""
	s.TranslationLang = ""
	s.TranslationFresh = false
}

// HasTranscript reports whether the hub is loaded
func (s *Session) HasTranscript() bool {
	return s.Transcript != ""
}
