package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/nguyentantai21042004/learn-flow/internal/export"
	"github.com/nguyentantai21042004/learn-flow/internal/llm"
	"github.com/nguyentantai21042004/learn-flow/internal/session"
	"github.com/nguyentantai21042004/learn-flow/internal/workflow"
)

const sessionHeader = "X-Session-ID"

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps the workflow error taxonomy onto HTTP status codes.
// Input mistakes are the client's to fix, state violations mean the
// client raced its own eligibility view, everything else is upstream.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusBadGateway
	switch {
	case errors.Is(err, session.ErrNotFound):
		status = http.StatusNotFound
	case workflow.IsKind(err, workflow.KindInput):
		status = http.StatusBadRequest
	case workflow.IsKind(err, workflow.KindState):
		status = http.StatusConflict
	}

	msg := err.Error()
	var we *workflow.Error
	if errors.As(err, &we) {
		msg = we.Message
	}

	writeJSON(w, status, map[string]any{
		"error": msg,
		"kind":  string(workflow.KindOf(err)),
	})
}

func decodeBody(r *http.Request, v any) error {
	defer r.Body.Close()
	return json.NewDecoder(io.LimitReader(r.Body, 10<<20)).Decode(v)
}

// resolve loads the caller's session from the X-Session-ID header
func (s *Server) resolve(r *http.Request) (session.Session, error) {
	id := r.Header.Get(sessionHeader)
	if id == "" {
		id = r.URL.Query().Get("session")
	}
	sess, ok := s.store.Get(id)
	if !ok {
		return session.Session{}, session.ErrNotFound
	}
	return sess, nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "sessions": s.store.Len()})
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	sess := s.store.Create()
	s.logger.Info(r.Context(), "Session created: %s", sess.ID)
	writeJSON(w, http.StatusCreated, s.view(sess))
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sess, err := s.resolve(r)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.view(sess))
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	id := r.Header.Get(sessionHeader)
	sess, err := s.store.Reset(id)
	if err != nil {
		writeError(w, err)
		return
	}
	s.events.Publish(id, Event{Type: "session_reset"})
	writeJSON(w, http.StatusOK, s.view(sess))
}

func (s *Server) handleSetKey(w http.ResponseWriter, r *http.Request) {
	var req struct {
		APIKey string `json:"api_key"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid JSON body"})
		return
	}

	sess, err := s.store.Update(r.Header.Get(sessionHeader), func(cur session.Session) (session.Session, error) {
		cur.APIKey = req.APIKey
		return cur, nil
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.view(sess))
}

func (s *Server) handleLoadTranscript(w http.ResponseWriter, r *http.Request) {
	var req struct {
		URL  string `json:"url"`
		Lang string `json:"lang"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid JSON body"})
		return
	}

	id := r.Header.Get(sessionHeader)
	sess, err := s.store.Update(id, func(cur session.Session) (session.Session, error) {
		return s.controller.LoadTranscript(r.Context(), cur, req.URL, req.Lang)
	})
	if err != nil {
		writeError(w, err)
		return
	}

	s.events.Publish(id, Event{Type: "transcript_loaded", Detail: sess.VideoID})
	writeJSON(w, http.StatusOK, s.view(sess))
}

func (s *Server) handleSelectLanguage(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Lang string `json:"lang"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid JSON body"})
		return
	}

	id := r.Header.Get(sessionHeader)
	sess, err := s.store.Update(id, func(cur session.Session) (session.Session, error) {
		return s.controller.SelectLanguage(r.Context(), cur, req.Lang)
	})
	if err != nil {
		writeError(w, err)
		return
	}

	s.events.Publish(id, Event{Type: "transcript_loaded", Detail: req.Lang})
	writeJSON(w, http.StatusOK, s.view(sess))
}

func (s *Server) handleManualTranscript(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text string `json:"text"`
		Lang string `json:"lang"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid JSON body"})
		return
	}

	id := r.Header.Get(sessionHeader)
	sess, err := s.store.Update(id, func(cur session.Session) (session.Session, error) {
		return s.controller.SetTranscript(cur, req.Text, req.Lang)
	})
	if err != nil {
		writeError(w, err)
		return
	}

	s.events.Publish(id, Event{Type: "transcript_loaded", Detail: "manual"})
	writeJSON(w, http.StatusOK, s.view(sess))
}

// handleUploadTranscript accepts a media file, transcribes it locally
// and installs the result as the hub transcript.
func (s *Server) handleUploadTranscript(w http.ResponseWriter, r *http.Request) {
	if s.local == nil || !s.local.Enabled() {
		writeJSON(w, http.StatusNotImplemented, map[string]any{"error": "local transcription is not configured"})
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes())
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid multipart upload"})
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "missing file field"})
		return
	}
	defer file.Close()

	tmp, err := os.CreateTemp("", "upload-*"+filepath.Ext(header.Filename))
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "temp file failed"})
		return
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, file); err != nil {
		tmp.Close()
		writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "upload write failed"})
		return
	}
	tmp.Close()

	id := r.Header.Get(sessionHeader)
	s.events.Publish(id, Event{Type: "task_started", Detail: "local_transcription"})

	ctx, cancel := context.WithTimeout(r.Context(), s.taskTimeout())
	defer cancel()

	text, err := s.local.Transcribe(ctx, tmp.Name())
	if err != nil {
		s.events.Publish(id, Event{Type: "task_failed", Detail: "local_transcription"})
		writeJSON(w, http.StatusBadGateway, map[string]any{"error": err.Error(), "kind": "upstream"})
		return
	}

	lang := r.FormValue("lang")
	sess, err := s.store.Update(id, func(cur session.Session) (session.Session, error) {
		return s.controller.SetTranscript(cur, text, lang)
	})
	if err != nil {
		writeError(w, err)
		return
	}

	s.events.Publish(id, Event{Type: "transcript_loaded", Detail: "upload"})
	writeJSON(w, http.StatusOK, s.view(sess))
}

func (s *Server) handleRunTask(w http.ResponseWriter, r *http.Request) {
	name := workflow.TaskName(r.PathValue("name"))

	var req struct {
		TargetLang string `json:"target_lang"`
		APIKey     string `json:"api_key"`
	}
	if r.ContentLength > 0 {
		if err := decodeBody(r, &req); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid JSON body"})
			return
		}
	}

	id := r.Header.Get(sessionHeader)
	s.events.Publish(id, Event{Type: "task_started", Detail: string(name)})

	sess, err := s.store.Update(id, func(cur session.Session) (session.Session, error) {
		return s.controller.RunTask(r.Context(), cur, name, workflow.TaskParams{
			TargetLang: req.TargetLang,
			APIKey:     req.APIKey,
		})
	})
	if err != nil {
		s.events.Publish(id, Event{Type: "task_failed", Detail: string(name)})
		writeError(w, err)
		return
	}

	s.events.Publish(id, Event{Type: "task_completed", Detail: string(name)})
	writeJSON(w, http.StatusOK, s.view(sess))
}

func (s *Server) handleChain(w http.ResponseWriter, r *http.Request) {
	var req struct {
		From string `json:"from"`
		To   string `json:"to"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid JSON body"})
		return
	}

	sess, err := s.store.Update(r.Header.Get(sessionHeader), func(cur session.Session) (session.Session, error) {
		return s.controller.Chain(cur, workflow.Field(req.From), workflow.Field(req.To))
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.view(sess))
}

func (s *Server) handleAudio(w http.ResponseWriter, r *http.Request) {
	sess, err := s.resolve(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if len(sess.Audio) == 0 {
		writeJSON(w, http.StatusNotFound, map[string]any{"error": "no audio has been generated"})
		return
	}

	w.Header().Set("Content-Type", "audio/mpeg")
	w.Header().Set("Content-Disposition", `attachment; filename="summary.mp3"`)
	_, _ = w.Write(sess.Audio)
}

func (s *Server) handleDownloadText(w http.ResponseWriter, r *http.Request) {
	sess, err := s.resolve(r)
	if err != nil {
		writeError(w, err)
		return
	}

	field := r.PathValue("field")
	text, name := exportText(sess, field)
	if text == "" {
		writeJSON(w, http.StatusNotFound, map[string]any{"error": fmt.Sprintf("no %s available", field)})
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename=%q`, name+".txt"))
	_, _ = io.WriteString(w, text)
}

// handleDownloadDocx renders a field to a Word document. godocx writes
// to a file, so the document goes through a temp path before streaming.
func (s *Server) handleDownloadDocx(w http.ResponseWriter, r *http.Request) {
	sess, err := s.resolve(r)
	if err != nil {
		writeError(w, err)
		return
	}

	field := r.PathValue("field")
	text, name := exportText(sess, field)
	if text == "" {
		writeJSON(w, http.StatusNotFound, map[string]any{"error": fmt.Sprintf("no %s available", field)})
		return
	}

	tmp := filepath.Join(os.TempDir(), fmt.Sprintf("%s-%s.docx", name, sess.ID))
	defer os.Remove(tmp)

	title := strings.ToUpper(name[:1]) + name[1:]
	if field == "transcript" {
		err = export.WriteTranscript(title, text, tmp)
	} else {
		err = export.WriteMarkdown(title, text, tmp)
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]any{"error": err.Error()})
		return
	}

	data, err := os.ReadFile(tmp)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]any{"error": err.Error()})
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.wordprocessingml.document")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename=%q`, name+".docx"))
	_, _ = w.Write(data)
}

// exportText resolves a downloadable field to its text and a base
// filename; unknown or empty fields yield ""
func exportText(sess session.Session, field string) (string, string) {
	switch field {
	case "transcript":
		return sess.Transcript, "transcript"
	case "summary":
		return sess.Summary, "summary"
	case "steps":
		return sess.Steps, "steps"
	case "translation":
		return sess.Translation, "translation"
	case "quiz":
		return quizText(sess.Quiz), "quiz"
	default:
		return "", field
	}
}

func quizText(items []llm.QuizItem) string {
	var b strings.Builder
	for i, q := range items {
		fmt.Fprintf(&b, "%d. %s\n", i+1, q.Question)
		for _, c := range q.Choices {
			fmt.Fprintf(&b, "   - %s\n", c)
		}
		fmt.Fprintf(&b, "   Answer: %s\n\n", q.Answer)
	}
	return b.String()
}
