package server

import (
	"github.com/nguyentantai21042004/learn-flow/internal/config"
	"github.com/nguyentantai21042004/learn-flow/internal/llm"
	"github.com/nguyentantai21042004/learn-flow/internal/session"
	"github.com/nguyentantai21042004/learn-flow/internal/transcript"
	"github.com/nguyentantai21042004/learn-flow/internal/workflow"
)

// sessionView is the JSON shape handlers return. It mirrors the session
// minus secrets and raw audio, and adds what the UI needs to render:
// task eligibility and the configured target languages.
type sessionView struct {
	ID      string `json:"id"`
	VideoID string `json:"video_id,omitempty"`

	Transcript         string                `json:"transcript,omitempty"`
	TranscriptLang     string                `json:"transcript_lang,omitempty"`
	AvailableLanguages []transcript.Language `json:"available_transcript_languages,omitempty"`

	Summary       string                `json:"summary,omitempty"`
	SummarySource session.SummarySource `json:"summary_source,omitempty"`
	SummaryLang   string                `json:"summary_lang,omitempty"`
	SummaryFresh  bool                  `json:"summary_fresh"`

	Steps      string `json:"steps,omitempty"`
	StepsFresh bool   `json:"steps_fresh"`

	Quiz      []llm.QuizItem `json:"quiz,omitempty"`
	QuizFresh bool           `json:"quiz_fresh"`

	HasAudio   bool `json:"has_audio"`
	AudioFresh bool `json:"audio_fresh"`

	Translation      string `json:"translation,omitempty"`
	TranslationLang  string `json:"translation_lang,omitempty"`
	TranslationFresh bool   `json:"translation_fresh"`

	HasKey bool `json:"has_key"`

	EligibleTasks   []workflow.TaskSpec `json:"eligible_tasks"`
	TargetLanguages []config.Language   `json:"target_languages"`
}

func (s *Server) view(sess session.Session) sessionView {
	return sessionView{
		ID:                 sess.ID,
		VideoID:            sess.VideoID,
		Transcript:         sess.Transcript,
		TranscriptLang:     sess.TranscriptLang,
		AvailableLanguages: sess.AvailableLanguages,
		Summary:            sess.Summary,
		SummarySource:      sess.SummarySource,
		SummaryLang:        sess.SummaryLang,
		SummaryFresh:       sess.SummaryFresh,
		Steps:              sess.Steps,
		StepsFresh:         sess.StepsFresh,
		Quiz:               sess.Quiz,
		QuizFresh:          sess.QuizFresh,
		HasAudio:           len(sess.Audio) > 0,
		AudioFresh:         sess.AudioFresh,
		Translation:        sess.Translation,
		TranslationLang:    sess.TranslationLang,
		TranslationFresh:   sess.TranslationFresh,
		HasKey:             sess.APIKey != "",
		EligibleTasks:      s.controller.Eligible(sess),
		TargetLanguages:    s.config().Languages,
	}
}
