package sequence_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/petrzlen/digitaudit/pkg/sequence"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyze(t *testing.T) {
	for _, tc := range []struct {
		input    []int
		expected sequence.Analysis
	}{
		{[]int{1, 2, 3, 1, 2}, sequence.Analysis{LongestRun: 3, OutOfOrder: true}},
		{[]int{1, 2, 3, 4, 5}, sequence.Analysis{LongestRun: 5, OutOfOrder: false}},
		{[]int{5, 4, 3, 2, 1}, sequence.Analysis{LongestRun: 1, OutOfOrder: true}},
		{[]int{1, 3, 5, 7, 9}, sequence.Analysis{LongestRun: 1, OutOfOrder: false}},
		{[]int{2, 2, 2, 2, 2}, sequence.Analysis{LongestRun: 1, OutOfOrder: false}},
		{[]int{4}, sequence.Analysis{LongestRun: 1, OutOfOrder: false}},
		{[]int{1, 2, 10, 3, 4, 5, 6}, sequence.Analysis{LongestRun: 4, OutOfOrder: true}},
		{[]int{1, 2, 2, 3, 4}, sequence.Analysis{LongestRun: 3, OutOfOrder: false}},
		{[]int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, sequence.Analysis{LongestRun: 10, OutOfOrder: false}},
	} {
		t.Run(fmt.Sprint(tc.input), func(t *testing.T) {
			actual, err := sequence.Analyze(tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, actual)
		})
	}
}

func TestAnalyzeEmpty(t *testing.T) {
	for _, input := range [][]int{nil, {}} {
		_, err := sequence.Analyze(input)
		assert.True(t, errors.Is(err, sequence.ErrInvalidArgument), "got %v", err)
	}
}

func TestAnalyzeConcurrentCallsAreIndependent(t *testing.T) {
	inputs := [][]int{{1, 2, 3, 1, 2}, {5, 4, 3, 2, 1}, {1, 2, 3, 4, 5}}
	expected := make([]sequence.Analysis, len(inputs))
	for i, input := range inputs {
		var err error
		expected[i], err = sequence.Analyze(input)
		require.NoError(t, err)
	}

	var wg sync.WaitGroup
	for n := 0; n < 20; n++ {
		for i := range inputs {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				actual, err := sequence.Analyze(inputs[i])
				assert.NoError(t, err)
				assert.Equal(t, expected[i], actual)
			}(i)
		}
	}
	wg.Wait()
}

func TestInterpret(t *testing.T) {
	summary, err := sequence.Interpret("12345678910")
	require.NoError(t, err)
	assert.Equal(t, 10, summary.WordCount)
	assert.Equal(t, 10, summary.LongestRun)
	assert.False(t, summary.OutOfOrder)

	summary, err = sequence.Interpret("121035")
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 10, 3, 5}, summary.Digits)
	assert.Equal(t, 5, summary.WordCount)
	assert.Equal(t, 2, summary.LongestRun)
	assert.True(t, summary.OutOfOrder)

	_, err = sequence.Interpret("one two three")
	assert.True(t, errors.Is(err, sequence.ErrInvalidArgument))
}
