package main

import (
	"bytes"
	"fmt"
	"path/filepath"
	"time"

	"github.com/petrzlen/digitaudit/pkg/audio_utils"
	"github.com/petrzlen/digitaudit/pkg/naming"
	"github.com/petrzlen/digitaudit/pkg/sequence"
	"github.com/petrzlen/digitaudit/pkg/synthesizer"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// fixture records a known digit sequence so a run can be checked against the expected row.
func newFixtureCommand(ctx *commandContext) *cobra.Command {
	var audioDir string
	var at string
	var voice string

	cmd := &cobra.Command{
		Use:   "fixture <digits>",
		Short: "Synthesize a spoken-digit recording named after its timestamp",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("audio-dir") {
				cfg.AudioDir = audioDir
			}
			if err := cfg.Validate(true); err != nil {
				return err
			}

			digits, err := sequence.Tokenize(args[0])
			if err != nil {
				return err
			}
			recordedAt := time.Now()
			if at != "" {
				if recordedAt, err = time.Parse("2006-01-02T15:04:05", at); err != nil {
					return errors.Wrapf(err, "parsing --at %q failed", at)
				}
			}

			tts := synthesizer.NewOpenAITTS(cfg.Transcriber.APIKey, cfg.Transcriber.BaseURL, voice)
			mp3Bytes, err := synthesizer.SpeakDigits(cmd.Context(), tts, digits)
			if err != nil {
				return err
			}
			buf, err := audio_utils.Decode(bytes.NewReader(mp3Bytes), "mp3")
			if err != nil {
				return err
			}
			wavBytes, err := audio_utils.ToMonoWav(buf)
			if err != nil {
				return err
			}

			fs := afero.NewOsFs()
			if err := fs.MkdirAll(cfg.AudioDir, 0755); err != nil {
				return errors.Wrapf(err, "creating %s failed", cfg.AudioDir)
			}
			path := filepath.Join(cfg.AudioDir, naming.FilenameFor(recordedAt, "wav"))
			if err := afero.WriteFile(fs, path, wavBytes, 0644); err != nil {
				return errors.Wrapf(err, "writing %s failed", path)
			}
			log.Info().Str("path", path).Ints("digits", digits).Dur("duration", audio_utils.Duration(buf)).Msg("fixture written")
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}

	cmd.Flags().StringVar(&audioDir, "audio-dir", "", "Directory to write the recording to")
	cmd.Flags().StringVar(&at, "at", "", "Recording time encoded in the filename, e.g. 2021-09-29T23:50:07 (default now)")
	cmd.Flags().StringVar(&voice, "voice", "echo", "TTS voice")
	return cmd
}
