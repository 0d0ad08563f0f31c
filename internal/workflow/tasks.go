package workflow

import (
	"github.com/nguyentantai21042004/learn-flow/internal/session"
)

// Field names one slot of session state a task reads or writes.
type Field string

const (
	FieldTranscript  Field = "transcript"
	FieldSummary     Field = "summary"
	FieldSteps       Field = "steps"
	FieldQuiz        Field = "quiz"
	FieldAudio       Field = "audio"
	FieldTranslation Field = "translation"
)

// TaskName identifies one runnable task.
type TaskName string

const (
	TaskTranslateTranscript TaskName = "translate_transcript"
	TaskSummarizeLocal      TaskName = "summarize_local"
	TaskSummarizeLLM        TaskName = "summarize_llm"
	TaskSteps               TaskName = "steps_llm"
	TaskQuiz                TaskName = "quiz_llm"
	TaskTranslateSummary    TaskName = "translate_summary"
	TaskSummaryAudio        TaskName = "summary_audio"
)

// TaskSpec declares a task's wiring: which field it depends on, which it
// produces, and which parameters it needs. Eligibility and dispatch
// iterate this table instead of branching per task.
type TaskSpec struct {
	Name      TaskName `json:"name"`
	Input     Field    `json:"input"`
	Output    Field    `json:"output"`
	NeedsKey  bool     `json:"needs_key"`
	NeedsLang bool     `json:"needs_lang"`
	Label     string   `json:"label"`
}

var taskTable = []TaskSpec{
	{Name: TaskTranslateTranscript, Input: FieldTranscript, Output: FieldTranslation, NeedsLang: true, Label: "Translate Transcript"},
	{Name: TaskSummarizeLocal, Input: FieldTranscript, Output: FieldSummary, Label: "Summarise (Open Source)"},
	{Name: TaskSummarizeLLM, Input: FieldTranscript, Output: FieldSummary, NeedsKey: true, Label: "Summarise (LLM)"},
	{Name: TaskSteps, Input: FieldTranscript, Output: FieldSteps, NeedsKey: true, Label: "Steps (LLM)"},
	{Name: TaskQuiz, Input: FieldTranscript, Output: FieldQuiz, NeedsKey: true, Label: "Quiz (LLM)"},
	{Name: TaskTranslateSummary, Input: FieldSummary, Output: FieldTranslation, NeedsLang: true, Label: "Translate Summary"},
	{Name: TaskSummaryAudio, Input: FieldSummary, Output: FieldAudio, NeedsKey: true, Label: "Summary Audio"},
}

// Tasks returns the full task table
func Tasks() []TaskSpec {
	out := make([]TaskSpec, len(taskTable))
	copy(out, taskTable)
	return out
}

// Lookup finds a task spec by name
func Lookup(name TaskName) (TaskSpec, bool) {
	for _, spec := range taskTable {
		if spec.Name == name {
			return spec, true
		}
	}
	return TaskSpec{}, false
}

// fieldSet reports whether the given session field holds a value
func fieldSet(s session.Session, f Field) bool {
	switch f {
	case FieldTranscript:
		return s.Transcript != ""
	case FieldSummary:
		return s.Summary != ""
	case FieldSteps:
		return s.Steps != ""
	case FieldQuiz:
		return len(s.Quiz) > 0
	case FieldAudio:
		return len(s.Audio) > 0
	case FieldTranslation:
		return s.Translation != ""
	default:
		return false
	}
}

// fieldText returns the textual content of a field; quiz and audio are
// not chainable as text and yield "".
func fieldText(s session.Session, f Field) string {
	switch f {
	case FieldTranscript:
		return s.Transcript
	case FieldSummary:
		return s.Summary
	case FieldSteps:
		return s.Steps
	case FieldTranslation:
		return s.Translation
	default:
		return ""
	}
}

// dependents lists the derived fields computed FROM the given field.
// When the field's value is replaced these become stale, but their
// contents are kept (no cascade invalidation); the freshness flag lets
// the UI warn instead.
func dependents(f Field) []Field {
	switch f {
	case FieldTranscript:
		return []Field{FieldSummary, FieldSteps, FieldQuiz, FieldTranslation}
	case FieldSummary:
		return []Field{FieldAudio, FieldTranslation}
	default:
		return nil
	}
}
