package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/learn-flow/internal/export"
	"github.com/nguyentantai21042004/learn-flow/internal/session"
	"github.com/nguyentantai21042004/learn-flow/internal/workflow"
)

func newRunCommand(ctx *commandContext) *cobra.Command {
	var (
		langFlag      string
		translateFlag string
		summaryFlag   string
		stepsFlag     bool
		quizFlag      bool
		audioFlag     bool
		apiKeyFlag    string
		outFlag       string
	)

	cmd := &cobra.Command{
		Use:   "run <url>",
		Short: "Fetch a transcript and run the requested study tasks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			apiKey := apiKeyFlag
			if apiKey == "" {
				apiKey = os.Getenv("LEARNFLOW_API_KEY")
			}

			sess := session.Session{ID: "cli"}
			sess, err := ctx.controller.LoadTranscript(cmd.Context(), sess, args[0], langFlag)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Transcript: %d chars (%s)\n", len(sess.Transcript), sess.TranscriptLang)

			params := workflow.TaskParams{APIKey: apiKey}
			failures := 0

			runTask := func(name workflow.TaskName, p workflow.TaskParams) {
				next, err := ctx.controller.RunTask(cmd.Context(), sess, name, p)
				if err != nil {
					failures++
					fmt.Fprintf(cmd.ErrOrStderr(), "%s failed: %v\n", name, err)
					return
				}
				sess = next
			}

			switch summaryFlag {
			case "":
			case "local":
				runTask(workflow.TaskSummarizeLocal, params)
			case "llm":
				runTask(workflow.TaskSummarizeLLM, params)
			default:
				return fmt.Errorf("unknown summary mode %q (want local or llm)", summaryFlag)
			}

			if translateFlag != "" {
				runTask(workflow.TaskTranslateTranscript, workflow.TaskParams{APIKey: apiKey, TargetLang: translateFlag})
			}
			if stepsFlag {
				runTask(workflow.TaskSteps, params)
			}
			if quizFlag {
				runTask(workflow.TaskQuiz, params)
			}
			if audioFlag {
				runTask(workflow.TaskSummaryAudio, params)
			}

			printResults(cmd, sess)

			if outFlag != "" {
				if err := writeArtifacts(outFlag, sess); err != nil {
					return err
				}
				fmt.Fprintf(out, "Artifacts written to %s\n", outFlag)
			}

			if failures > 0 {
				return fmt.Errorf("%d task(s) failed", failures)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&langFlag, "lang", "", "Transcript language code (default: first available)")
	cmd.Flags().StringVar(&translateFlag, "translate", "", "Translate the transcript to this language code")
	cmd.Flags().StringVar(&summaryFlag, "summary", "", "Summarize with 'local' or 'llm'")
	cmd.Flags().BoolVar(&stepsFlag, "steps", false, "Extract actionable steps (needs API key)")
	cmd.Flags().BoolVar(&quizFlag, "quiz", false, "Generate a quiz (needs API key)")
	cmd.Flags().BoolVar(&audioFlag, "audio", false, "Narrate the summary (needs API key and a summary)")
	cmd.Flags().StringVar(&apiKeyFlag, "api-key", "", "API key for LLM and TTS tasks (or LEARNFLOW_API_KEY)")
	cmd.Flags().StringVar(&outFlag, "out", "", "Directory to write artifacts into")

	return cmd
}

func printResults(cmd *cobra.Command, sess session.Session) {
	out := cmd.OutOrStdout()

	if sess.Summary != "" {
		fmt.Fprintf(out, "\n== Summary (%s) ==\n%s\n", sess.SummarySource, sess.Summary)
	}
	if sess.Steps != "" {
		fmt.Fprintf(out, "\n== Steps ==\n%s\n", sess.Steps)
	}
	if sess.Translation != "" {
		fmt.Fprintf(out, "\n== Translation (%s) ==\n%s\n", sess.TranslationLang, sess.Translation)
	}
	if len(sess.Quiz) > 0 {
		rows := make([][]string, 0, len(sess.Quiz))
		for i, q := range sess.Quiz {
			rows = append(rows, []string{strconv.Itoa(i + 1), q.Question, q.Answer})
		}
		fmt.Fprintf(out, "\n== Quiz ==\n%s\n", renderTable([]string{"#", "Question", "Answer"}, rows))
	}
}

// writeArtifacts saves every populated artifact into dir
func writeArtifacts(dir string, sess session.Session) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	write := func(name, text string) error {
		if text == "" {
			return nil
		}
		return os.WriteFile(filepath.Join(dir, name), []byte(text), 0o644)
	}

	if err := write("transcript.txt", sess.Transcript); err != nil {
		return err
	}
	if err := write("summary.txt", sess.Summary); err != nil {
		return err
	}
	if err := write("steps.txt", sess.Steps); err != nil {
		return err
	}
	if err := write("translation.txt", sess.Translation); err != nil {
		return err
	}

	if sess.Summary != "" {
		if err := export.WriteMarkdown("Summary", sess.Summary, filepath.Join(dir, "summary.docx")); err != nil {
			return err
		}
	}
	if sess.Transcript != "" {
		if err := export.WriteTranscript("Transcript", sess.Transcript, filepath.Join(dir, "transcript.docx")); err != nil {
			return err
		}
	}
	if len(sess.Audio) > 0 {
		if err := os.WriteFile(filepath.Join(dir, "summary.mp3"), sess.Audio, 0o644); err != nil {
			return err
		}
	}

	return nil
}
