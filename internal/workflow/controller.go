package workflow

import (
	"context"
	"errors"
	"fmt"

	"github.com/nguyentantai21042004/learn-flow/internal/session"
	"github.com/nguyentantai21042004/learn-flow/internal/summarize"
	"github.com/nguyentantai21042004/learn-flow/internal/transcript"
	"github.com/nguyentantai21042004/learn-flow/internal/translate"
)

// TaskParams carries the per-trigger inputs a task may need.
type TaskParams struct {
	TargetLang string
	APIKey     string
}

// LoadTranscript resolves the video, fetches its transcript and replaces
// the hub. All derived artifacts are cleared: nothing computed from the
// previous transcript may survive.
func (c *Controller) LoadTranscript(ctx context.Context, s session.Session, videoURL, lang string) (session.Session, error) {
	const op = "LoadTranscript"

	videoID, err := transcript.ExtractVideoID(videoURL)
	if err != nil {
		return s, inputErr(op, "invalid YouTube URL or video ID", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.taskTimeout)
	defer cancel()

	langs, err := c.exec.Transcripts.List(ctx, videoID)
	if err != nil {
		return s, classify(op, err)
	}
	if len(langs) == 0 {
		return s, inputErr(op, "video has no transcripts", transcript.ErrNotFound)
	}

	if lang == "" {
		lang = langs[0].Code
	} else if !languageListed(langs, lang) {
		return s, inputErr(op, fmt.Sprintf("no transcript in language %q", lang), transcript.ErrLanguageUnavailable)
	}

	text, err := c.exec.Transcripts.Fetch(ctx, videoID, lang)
	if err != nil {
		return s, classify(op, err)
	}

	s.VideoID = videoID
	s.Transcript = text
	s.TranscriptLang = lang
	s.AvailableLanguages = langs
	s.ClearDerived()

	c.logger.Info(ctx, "Transcript loaded: video=%s lang=%s chars=%d", videoID, lang, len(text))
	return s, nil
}

// SelectLanguage re-fetches the current video's transcript in another of
// its advertised languages.
func (c *Controller) SelectLanguage(ctx context.Context, s session.Session, lang string) (session.Session, error) {
	const op = "SelectLanguage"

	if len(s.AvailableLanguages) == 0 {
		return s, stateErr(op, "no transcript options loaded")
	}
	if !languageListed(s.AvailableLanguages, lang) {
		return s, inputErr(op, fmt.Sprintf("language %q is not available for this video", lang), nil)
	}

	ctx, cancel := context.WithTimeout(ctx, c.taskTimeout)
	defer cancel()

	text, err := c.exec.Transcripts.Fetch(ctx, s.VideoID, lang)
	if err != nil {
		return s, classify(op, err)
	}

	s.Transcript = text
	s.TranscriptLang = lang
	s.ClearDerived()

	return s, nil
}

// SetTranscript installs user-supplied text as the hub (manual paste or
// a locally transcribed upload).
func (c *Controller) SetTranscript(s session.Session, text, lang string) (session.Session, error) {
	const op = "SetTranscript"

	if text == "" {
		return s, inputErr(op, "transcript text is empty", nil)
	}
	if lang == "" {
		lang = "en"
	}

	s.VideoID = ""
	s.AvailableLanguages = nil
	s.Transcript = text
	s.TranscriptLang = lang
	s.ClearDerived()

	return s, nil
}

// RunTask dispatches one task from the declarative table. The input
// dependency must be satisfied; a violation is a StateError because the
// caller's eligibility check should have prevented the call. On failure
// the prior session is returned untouched.
func (c *Controller) RunTask(ctx context.Context, s session.Session, name TaskName, p TaskParams) (session.Session, error) {
	op := "RunTask(" + string(name) + ")"

	spec, ok := Lookup(name)
	if !ok {
		return s, inputErr(op, fmt.Sprintf("unknown task %q", name), nil)
	}

	if !fieldSet(s, spec.Input) {
		return s, stateErr(op, fmt.Sprintf("task %s requires %s to be set", name, spec.Input))
	}

	if p.APIKey != "" {
		s.APIKey = p.APIKey
	}
	if spec.NeedsKey && s.APIKey == "" {
		return s, inputErr(op, "an API key is required for this task", nil)
	}
	if spec.NeedsLang && p.TargetLang == "" {
		return s, inputErr(op, "a target language is required for this task", nil)
	}

	ctx, cancel := context.WithTimeout(ctx, c.taskTimeout)
	defer cancel()

	next, err := c.execute(ctx, s, spec, p)
	if err != nil {
		c.logger.Warn(ctx, "Task %s failed: %v", name, err)
		return s, classify(op, err)
	}

	markStale(&next, spec.Output)
	c.logger.Info(ctx, "Task %s completed", name)
	return next, nil
}

// execute runs the task's executor and applies its output to a copy of
// the session. Outputs are written all-or-nothing: the caller discards
// the copy when an error comes back.
func (c *Controller) execute(ctx context.Context, s session.Session, spec TaskSpec, p TaskParams) (session.Session, error) {
	switch spec.Name {
	case TaskTranslateTranscript:
		out, err := c.exec.Translator.Translate(ctx, s.Transcript, s.TranscriptLang, p.TargetLang)
		if err != nil {
			return s, err
		}
		s.Translation = out
		s.TranslationLang = p.TargetLang
		s.TranslationFresh = true

	case TaskSummarizeLocal:
		out, err := c.exec.Summarizer.Summarize(ctx, s.Transcript)
		if err != nil {
			return s, err
		}
		s.Summary = out
		s.SummarySource = session.SourceLocal
		s.SummaryLang = s.TranscriptLang
		s.SummaryFresh = true

	case TaskSummarizeLLM:
		out, err := c.exec.LLM.Summarize(ctx, s.APIKey, s.Transcript)
		if err != nil {
			return s, err
		}
		s.Summary = out
		s.SummarySource = session.SourceLLM
		s.SummaryLang = s.TranscriptLang
		s.SummaryFresh = true

	case TaskSteps:
		out, err := c.exec.LLM.Steps(ctx, s.APIKey, s.Transcript)
		if err != nil {
			return s, err
		}
		s.Steps = out
		s.StepsFresh = true

	case TaskQuiz:
		out, err := c.exec.LLM.Quiz(ctx, s.APIKey, s.Transcript)
		if err != nil {
			return s, err
		}
		s.Quiz = out
		s.QuizFresh = true

	case TaskTranslateSummary:
		out, err := c.exec.Translator.Translate(ctx, s.Summary, s.SummaryLang, p.TargetLang)
		if err != nil {
			return s, err
		}
		s.Translation = out
		s.TranslationLang = p.TargetLang
		s.TranslationFresh = true

	case TaskSummaryAudio:
		out, err := c.exec.Speech.Synthesize(ctx, s.APIKey, s.Summary)
		if err != nil {
			return s, err
		}
		s.Audio = out
		s.AudioFresh = true

	default:
		return s, fmt.Errorf("task %s has no executor", spec.Name)
	}

	return s, nil
}

// Chain copies one task's text output into another task's input slot, so
// e.g. a translated summary can be narrated. It adds no semantics beyond
// the copy; artifacts derived from the overwritten slot go stale.
func (c *Controller) Chain(s session.Session, from, to Field) (session.Session, error) {
	const op = "Chain"

	text := fieldText(s, from)
	if text == "" {
		return s, inputErr(op, fmt.Sprintf("field %s has no text to chain", from), nil)
	}

	switch to {
	case FieldSummary:
		s.Summary = text
		s.SummarySource = session.SourceNone
		if from == FieldTranslation {
			s.SummaryLang = s.TranslationLang
		} else {
			s.SummaryLang = s.TranscriptLang
		}
		s.SummaryFresh = true
	case FieldTranscript:
		s.Transcript = text
		if from == FieldTranslation {
			s.TranscriptLang = s.TranslationLang
		}
	default:
		return s, inputErr(op, fmt.Sprintf("field %s is not a task input", to), nil)
	}

	markStale(&s, to)
	return s, nil
}

// Eligible returns the tasks whose declared dependency is satisfied
func (c *Controller) Eligible(s session.Session) []TaskSpec {
	var out []TaskSpec
	for _, spec := range taskTable {
		if fieldSet(s, spec.Input) {
			out = append(out, spec)
		}
	}
	return out
}

// markStale flags artifacts derived from the changed field. Their values
// are intentionally kept; invalidation is the user's call.
func markStale(s *session.Session, changed Field) {
	for _, dep := range dependentsOf(changed, s) {
		switch dep {
		case FieldSummary:
			s.SummaryFresh = false
		case FieldSteps:
			s.StepsFresh = false
		case FieldQuiz:
			s.QuizFresh = false
		case FieldAudio:
			s.AudioFresh = false
		case FieldTranslation:
			s.TranslationFresh = false
		}
	}
}

// dependentsOf returns the dependent fields that currently hold a value
func dependentsOf(changed Field, s *session.Session) []Field {
	var out []Field
	for _, dep := range dependents(changed) {
		if fieldSet(*s, dep) {
			out = append(out, dep)
		}
	}
	return out
}

// classify maps executor failures onto the workflow error taxonomy
func classify(op string, err error) *Error {
	var we *Error
	if errors.As(err, &we) {
		return we
	}

	switch {
	case errors.Is(err, transcript.ErrInvalidURL),
		errors.Is(err, transcript.ErrNotFound),
		errors.Is(err, transcript.ErrLanguageUnavailable),
		errors.Is(err, translate.ErrUnsupportedPair),
		errors.Is(err, summarize.ErrInputTooLong):
		return inputErr(op, err.Error(), err)
	default:
		return upstreamErr(op, err.Error(), err)
	}
}

func languageListed(langs []transcript.Language, code string) bool {
	for _, l := range langs {
		if l.Code == code {
			return true
		}
	}
	return false
}
