package transcript

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/nguyentantai21042004/learn-flow/internal/config"
	"github.com/nguyentantai21042004/learn-flow/internal/logger"
	"github.com/nguyentantai21042004/learn-flow/pkg/executor"
)

// LocalEngine transcribes uploaded media files with a local whisper-cli
// binary. It is the fallback used when YouTube retrieval fails or the
// user supplies their own recording.
type LocalEngine struct {
	cfg      config.WhisperConfig
	executor executor.Executor
	logger   logger.Logger
}

// NewLocalEngine creates a LocalEngine instance
func NewLocalEngine(cfg config.WhisperConfig, exec executor.Executor, log logger.Logger) *LocalEngine {
	return &LocalEngine{
		cfg:      cfg,
		executor: exec,
		logger:   log,
	}
}

// Enabled reports whether a whisper binary is configured
func (e *LocalEngine) Enabled() bool {
	return e.cfg.BinaryPath != "" && e.cfg.ModelPath != ""
}

// Transcribe converts a media file into plain transcript text
func (e *LocalEngine) Transcribe(ctx context.Context, mediaPath string) (string, error) {
	if !e.Enabled() {
		return "", fmt.Errorf("local transcription is not configured")
	}

	audioPath, err := e.extractAudio(ctx, mediaPath)
	if err != nil {
		return "", fmt.Errorf("extract audio: %w", err)
	}
	defer e.cleanupTempFile(ctx, audioPath)

	text, err := e.transcribe(ctx, audioPath)
	if err != nil {
		return "", fmt.Errorf("transcribe: %w", err)
	}

	return text, nil
}

// extractAudio converts the media file to 16kHz mono WAV, the input
// format whisper expects
func (e *LocalEngine) extractAudio(ctx context.Context, mediaPath string) (string, error) {
	audioPath := strings.TrimSuffix(mediaPath, filepath.Ext(mediaPath)) + "_temp.wav"

	e.logger.Info(ctx, "Extracting audio: %s", mediaPath)

	args := []string{
		"-i", mediaPath,
		"-vn",
		"-ar", "16000",
		"-ac", "1",
		"-c:a", "pcm_s16le",
		"-threads", "0",
		"-y",
		audioPath,
	}

	if _, err := e.executor.Execute(ctx, "ffmpeg", args...); err != nil {
		return "", fmt.Errorf("ffmpeg extract audio: %w", err)
	}

	return audioPath, nil
}

// transcribe runs whisper-cli over the prepared WAV file and reads the
// plain-text output it writes next to the input
func (e *LocalEngine) transcribe(ctx context.Context, audioPath string) (string, error) {
	outputPrefix := strings.TrimSuffix(audioPath, filepath.Ext(audioPath))

	e.logger.Info(ctx, "Starting local transcription (%d threads): %s", e.cfg.Threads, audioPath)

	args := []string{
		"-m", e.cfg.ModelPath,
		"-f", audioPath,
		"-otxt",
		"-l", e.cfg.Language,
		"-t", strconv.Itoa(e.cfg.Threads),
		"--output-file", outputPrefix,
	}

	if _, err := e.executor.Execute(ctx, e.cfg.BinaryPath, args...); err != nil {
		return "", fmt.Errorf("whisper transcribe: %w", err)
	}

	txtPath := outputPrefix + ".txt"
	defer e.cleanupTempFile(ctx, txtPath)

	data, err := os.ReadFile(txtPath)
	if err != nil {
		return "", fmt.Errorf("read whisper output: %w", err)
	}

	text := strings.TrimSpace(string(data))
	if text == "" {
		return "", fmt.Errorf("whisper produced an empty transcript")
	}

	e.logger.Info(ctx, "Local transcription completed: %d chars", len(text))
	return text, nil
}

// cleanupTempFile removes a temporary file, logs warning if fails
func (e *LocalEngine) cleanupTempFile(ctx context.Context, path string) {
	if err := os.Remove(path); err != nil {
		e.logger.Warn(ctx, "Failed to cleanup temp file %s: %v", path, err)
	} else {
		e.logger.Debug(ctx, "Cleaned up temp file: %s", path)
	}
}
