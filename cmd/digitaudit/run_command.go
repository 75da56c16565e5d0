package main

import (
	"fmt"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"github.com/petrzlen/digitaudit/internal/config"
	"github.com/petrzlen/digitaudit/pkg/pipeline"
	"github.com/petrzlen/digitaudit/pkg/report"
	"github.com/petrzlen/digitaudit/pkg/transcriber"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

func newRunCommand(ctx *commandContext) *cobra.Command {
	var audioDir string
	var outputFile string
	var appendRows bool
	var showSummary bool

	cmd := &cobra.Command{
		Use:     "run",
		Aliases: []string{"script"},
		Short:   "Transcribe every recording in the audio directory and write the CSV report",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("audio-dir") {
				cfg.AudioDir = audioDir
			}
			if flags.Changed("output") {
				cfg.OutputFile = outputFile
			}
			if flags.Changed("append") {
				cfg.Append = appendRows
			}
			if err := cfg.Validate(true); err != nil {
				return err
			}
			return runBatch(cmd, *cfg, showSummary)
		},
	}

	cmd.Flags().StringVar(&audioDir, "audio-dir", "", "Directory with the recordings")
	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "CSV file to write")
	cmd.Flags().BoolVar(&appendRows, "append", false, "Append to the CSV file instead of recreating it")
	cmd.Flags().BoolVar(&showSummary, "summary", false, "Print a table of per-file outcomes when done")
	return cmd
}

func runBatch(cmd *cobra.Command, cfg config.Config, showSummary bool) (err error) {
	logger := log.With().Str("run_id", uuid.NewString()).Logger()
	log.Logger = logger

	lock := flock.New(cfg.OutputFile + ".lock")
	locked, err := lock.TryLock()
	if err != nil {
		return errors.Wrapf(err, "locking %s failed", cfg.OutputFile)
	}
	if !locked {
		return errors.Errorf("another run is writing %s", cfg.OutputFile)
	}
	defer func() {
		if unlockErr := lock.Unlock(); unlockErr != nil {
			log.Debug().Err(unlockErr).Msg("sth non-essential failed")
		}
	}()

	fs := afero.NewOsFs()
	var w *report.Writer
	if cfg.Append {
		w, err = report.Open(fs, cfg.OutputFile)
	} else {
		w, err = report.Create(fs, cfg.OutputFile)
	}
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := w.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	t := cfg.Transcriber
	whisper := transcriber.NewOpenAIWhisper(
		transcriber.NewOpenAIClient(t.APIKey, t.BaseURL, t.Timeout()),
		transcriber.WhisperOptions{Model: t.Model, Language: t.Language, Temperature: t.Temperature},
	)
	retryingWhisper := transcriber.NewRetrying(whisper, transcriber.RetryOptions{
		MaxRetries:     t.MaxRetries,
		InitialBackoff: t.InitialBackoff(),
		MaxBackoff:     t.MaxBackoff(),
	})

	processor := pipeline.NewProcessor(fs, retryingWhisper, w, pipeline.Options{
		Extensions: cfg.Extensions,
		Prompt:     t.Prompt,
	})
	stats, results, err := processor.Run(cmd.Context(), cfg.AudioDir)
	log.Info().Int("total", stats.Total).Int("analyzed", stats.Analyzed).Int("defaulted", stats.Defaulted).Dur("duration", stats.Duration).Str("output", cfg.OutputFile).Msg("run finished")
	if showSummary && len(results) > 0 {
		fmt.Fprintln(cmd.OutOrStdout(), report.RenderSummary(results))
	}
	return err
}
