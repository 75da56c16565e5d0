package pipeline

import (
	"bytes"
	"context"
	"math"
	"path/filepath"
	"time"

	"github.com/petrzlen/digitaudit/pkg/audio_utils"
	"github.com/petrzlen/digitaudit/pkg/models"
	"github.com/petrzlen/digitaudit/pkg/naming"
	"github.com/petrzlen/digitaudit/pkg/sequence"
	"github.com/petrzlen/digitaudit/pkg/transcriber"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

// RecordWriter is where rows go, see report.Writer.
type RecordWriter interface {
	Write(r models.Record) error
}

type Options struct {
	Extensions []string
	// Prompt is handed to the transcriber with every file.
	Prompt string
}

// Processor owns every handle a run needs; nothing is global.
type Processor struct {
	fs          afero.Fs
	transcriber transcriber.Transcriber
	writer      RecordWriter
	opts        Options
}

func NewProcessor(fs afero.Fs, t transcriber.Transcriber, w RecordWriter, opts Options) *Processor {
	if len(opts.Extensions) == 0 {
		opts.Extensions = naming.DefaultExtensions
	}
	return &Processor{
		fs:          fs,
		transcriber: t,
		writer:      w,
		opts:        opts,
	}
}

type Stats struct {
	Total     int
	Analyzed  int
	Defaulted int
	Duration  time.Duration
}

// Run processes the audio files of dir one after the other, in name order.
// Per-file failures become zero rows; only a cancelled ctx or a failing writer stop the run.
func (p *Processor) Run(ctx context.Context, dir string) (stats Stats, results []models.FileResult, err error) {
	startTime := time.Now()
	defer func() { stats.Duration = time.Since(startTime) }()

	files, err := naming.ListAudioFiles(p.fs, dir, p.opts.Extensions)
	if err != nil {
		err = errors.Wrap(err, "pipeline: listing audio files failed")
		return
	}
	stats.Total = len(files)
	log.Info().Str("dir", dir).Int("total_files", stats.Total).Msg("processing audio files")

	for i, name := range files {
		if err = ctx.Err(); err != nil {
			err = errors.Wrap(err, "pipeline: run interrupted")
			return
		}

		var result models.FileResult
		if result, err = p.ProcessFile(ctx, dir, name); err != nil {
			return
		}
		results = append(results, result)
		switch result.Outcome {
		case models.Analyzed:
			stats.Analyzed++
		case models.Defaulted:
			stats.Defaulted++
		}

		log.Info().Str("file", name).Str("outcome", result.Outcome.String()).Float64("percentage_complete", percentage(i+1, stats.Total)).Msg("processing")
	}
	return
}

// ProcessFile writes exactly one row for name. The returned error is only ever a
// writer failure, everything else is folded into a Defaulted result.
func (p *Processor) ProcessFile(ctx context.Context, dir, name string) (result models.FileResult, err error) {
	trace := models.NewTrace("pipeline.processor")
	timestamp := naming.TimestampOrSentinel(name)

	summary, cause := p.analyze(ctx, filepath.Join(dir, name))
	if ctxErr := ctx.Err(); ctxErr != nil {
		// An interrupted file was never processed, so it gets no row.
		err = errors.Wrapf(ctxErr, "pipeline: processing %s interrupted", name)
		return
	}
	if cause != nil {
		log.Warn().Err(cause).Str("file", name).Msg("file could not be analyzed, writing default row")
		result = models.NewDefaulted(name, timestamp, cause)
	} else {
		result = models.NewAnalyzed(name, timestamp, summary)
	}

	trace.Done("pipeline.processor." + result.Outcome.String())
	result.Trace = trace
	trace.Log()

	if err = p.writer.Write(result.Record()); err != nil {
		err = errors.Wrapf(err, "pipeline: writing row for %s failed", name)
	}
	return
}

func (p *Processor) analyze(ctx context.Context, path string) (summary sequence.Summary, err error) {
	prepared, err := audio_utils.PrepareForUpload(p.fs, path)
	if err != nil {
		return
	}

	text, err := p.transcriber.SendAudio(ctx, bytes.NewReader(prepared.WavBytes), "wav", p.opts.Prompt)
	if err != nil {
		err = errors.Wrap(err, "pipeline: transcribing failed")
		return
	}
	log.Debug().Str("path", path).Str("transcript", text).Msg("transcript received")

	summary, err = sequence.Interpret(text)
	if err != nil {
		err = errors.Wrapf(err, "pipeline: interpreting transcript %q failed", text)
	}
	return
}

func percentage(done, total int) float64 {
	if total == 0 {
		return 100
	}
	return math.Round(float64(done)/float64(total)*10000) / 100
}
