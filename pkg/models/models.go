package models

import (
	"time"

	"github.com/petrzlen/digitaudit/pkg/sequence"
	"github.com/rs/zerolog/log"
)

type Trace struct {
	CreatedAt time.Time
	Creator   string

	ProcessedAt time.Time
	Processor   string
}

func NewTrace(creator string) Trace {
	return Trace{
		CreatedAt: time.Now(),
		Creator:   creator,
	}
}

func (t *Trace) Done(processor string) {
	t.ProcessedAt = time.Now()
	t.Processor = processor
}

func (t Trace) Log() {
	log.Trace().Time("created_at", t.CreatedAt).Str("creator", t.Creator).Time("processed_at", t.ProcessedAt).Str("processor", t.Processor).Dur("dur_to_process", t.ProcessedAt.Sub(t.CreatedAt)).Msgf("tracing")
}

// Record is one output row.
type Record struct {
	Filename   string
	Timestamp  string
	WordCount  int
	OutOfOrder bool
	LongestRun int
}

type Outcome int

// Declare constants with the custom type. These are your enum values.
const (
	Analyzed Outcome = iota
	Defaulted
)

func (o Outcome) String() string {
	switch o {
	case Analyzed:
		return "Analyzed"
	case Defaulted:
		return "Defaulted"
	default:
		return "Unknown"
	}
}

// FileResult is what processing one file produced. A Defaulted result still gets a row,
// with zero words, not out of order and a zero run; Err says why.
type FileResult struct {
	File      string
	Timestamp string
	Outcome   Outcome
	Summary   sequence.Summary
	Err       error
	Trace     Trace
}

func NewAnalyzed(file, timestamp string, summary sequence.Summary) FileResult {
	return FileResult{
		File:      file,
		Timestamp: timestamp,
		Outcome:   Analyzed,
		Summary:   summary,
	}
}

func NewDefaulted(file, timestamp string, cause error) FileResult {
	return FileResult{
		File:      file,
		Timestamp: timestamp,
		Outcome:   Defaulted,
		Err:       cause,
	}
}

func (r FileResult) Record() Record {
	if r.Outcome != Analyzed {
		return Record{Filename: r.File, Timestamp: r.Timestamp}
	}
	return Record{
		Filename:   r.File,
		Timestamp:  r.Timestamp,
		WordCount:  r.Summary.WordCount,
		OutOfOrder: r.Summary.OutOfOrder,
		LongestRun: r.Summary.LongestRun,
	}
}
