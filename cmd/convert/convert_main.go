package main

import (
	"fmt"
	"os"

	"github.com/petrzlen/digitaudit/internal/utils"
	"github.com/petrzlen/digitaudit/pkg/audio_utils"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// convert writes the exact mono wav a run would upload, handy to listen to what the
// transcriber gets for a file that keeps defaulting.
func newConvertCommand(fs afero.Fs) *cobra.Command {
	var logLevel string
	cmd := &cobra.Command{
		Use:           "convert <input.{wav,flac,mp3}> <output.wav>",
		Short:         "Normalize a recording into mono 16-bit wav",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			utils.SetupZerolog(logLevel)
			prepared, err := audio_utils.PrepareForUpload(fs, args[0])
			if err != nil {
				return err
			}
			if err := afero.WriteFile(fs, args[1], prepared.WavBytes, 0644); err != nil {
				return errors.Wrapf(err, "writing %s failed", args[1])
			}
			log.Info().Str("input", args[0]).Str("output", args[1]).Dur("duration", prepared.Duration).Int("sample_rate", prepared.SampleRate).Int("source_channels", prepared.SourceChannels).Msg("converted")
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d bytes, %s\n", args[1], len(prepared.WavBytes), prepared.Duration)
			return nil
		},
	}
	cmd.Flags().StringVar(&logLevel, "log-level", "info", "Log level")
	return cmd
}

func main() {
	if err := newConvertCommand(afero.NewOsFs()).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
