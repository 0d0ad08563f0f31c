package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/learn-flow/internal/config"
	"github.com/nguyentantai21042004/learn-flow/internal/llm"
	"github.com/nguyentantai21042004/learn-flow/internal/logger"
	"github.com/nguyentantai21042004/learn-flow/internal/summarize"
	"github.com/nguyentantai21042004/learn-flow/internal/transcript"
	"github.com/nguyentantai21042004/learn-flow/internal/translate"
	"github.com/nguyentantai21042004/learn-flow/internal/tts"
	"github.com/nguyentantai21042004/learn-flow/internal/workflow"
)

// commandContext lazily loads config and builds the controller so that
// `--help` works without a config file present.
type commandContext struct {
	configFlag *string

	cfg         *config.Config
	controller  *workflow.Controller
	transcripts transcript.Provider
	logger      logger.Logger
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensure() error {
	if c.controller != nil {
		return nil
	}

	path := *c.configFlag
	if path == "" {
		path = os.Getenv("LEARNFLOW_CONFIG")
	}
	if path == "" {
		path = "config.yaml"
	}

	cfg, err := config.Load(path)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := logger.New(cfg.Logging.Level)
	c.cfg = cfg
	c.logger = log
	c.transcripts = transcript.New(cfg.YouTube, log)
	c.controller = workflow.New(workflow.Executors{
		Transcripts: c.transcripts,
		Translator:  translate.New(cfg.Translator, log),
		Summarizer:  summarize.New(cfg.Summarizer, log),
		LLM:         llm.New(cfg.LLM, log),
		Speech:      tts.New(cfg.TTS, log),
	}, log, time.Duration(cfg.Server.TaskTimeoutSec)*time.Second)

	return nil
}

func newRootCommand() *cobra.Command {
	var configFlag string

	ctx := newCommandContext(&configFlag)

	rootCmd := &cobra.Command{
		Use:           "learnflow",
		Short:         "Turn a YouTube video into study material",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return ctx.ensure()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")

	rootCmd.AddCommand(newLanguagesCommand(ctx))
	rootCmd.AddCommand(newRunCommand(ctx))

	return rootCmd
}
