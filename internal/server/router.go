package server

import "net/http"

// Router wires every endpoint onto a ServeMux
func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", s.handleHealth)

	mux.HandleFunc("POST /api/session", s.handleCreateSession)
	mux.HandleFunc("GET /api/session", s.handleGetSession)
	mux.HandleFunc("POST /api/reset", s.handleReset)
	mux.HandleFunc("POST /api/key", s.handleSetKey)

	mux.HandleFunc("POST /api/transcript", s.handleLoadTranscript)
	mux.HandleFunc("POST /api/transcript/language", s.handleSelectLanguage)
	mux.HandleFunc("POST /api/transcript/manual", s.handleManualTranscript)
	mux.HandleFunc("POST /api/transcript/upload", s.handleUploadTranscript)

	mux.HandleFunc("POST /api/tasks/{name}", s.handleRunTask)
	mux.HandleFunc("POST /api/chain", s.handleChain)

	mux.HandleFunc("GET /api/audio", s.handleAudio)
	mux.HandleFunc("GET /api/download/{field}/txt", s.handleDownloadText)
	mux.HandleFunc("GET /api/download/{field}/docx", s.handleDownloadDocx)

	mux.HandleFunc("GET /ws/events", s.events.Handle)

	mux.HandleFunc("GET /", s.handleIndex)

	return mux
}
