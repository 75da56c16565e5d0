package models

import (
	"errors"
	"testing"

	"github.com/petrzlen/digitaudit/pkg/sequence"
	"github.com/stretchr/testify/assert"
)

func TestFileResultRecord(t *testing.T) {
	summary := sequence.Summary{
		Digits:    []int{1, 2, 3, 1, 2},
		WordCount: 5,
		Analysis:  sequence.Analysis{LongestRun: 3, OutOfOrder: true},
	}
	assert.Equal(t, Record{Filename: "a.wav", Timestamp: "None", WordCount: 5, OutOfOrder: true, LongestRun: 3}, NewAnalyzed("a.wav", "None", summary).Record())

	defaulted := NewDefaulted("b.wav", "2022-01-01T00:00:00", errors.New("boom"))
	assert.Equal(t, Record{Filename: "b.wav", Timestamp: "2022-01-01T00:00:00"}, defaulted.Record())
	assert.Equal(t, "Defaulted", defaulted.Outcome.String())
	assert.Equal(t, "Unknown", Outcome(7).String())
}
