package sequence

import "github.com/pkg/errors"

type Analysis struct {
	LongestRun int
	OutOfOrder bool
}

// Analyze reports whether any number is smaller than the one right before it,
// and the length of the longest run where each number is exactly one above the previous.
func Analyze(seq []int) (result Analysis, err error) {
	if len(seq) == 0 {
		err = errors.Wrap(ErrInvalidArgument, "sequence: cannot analyze an empty sequence")
		return
	}

	current := 1
	for i := 1; i < len(seq); i++ {
		if seq[i] < seq[i-1] {
			result.OutOfOrder = true
		}
		if seq[i] == seq[i-1]+1 {
			current++
			continue
		}
		result.LongestRun = max(result.LongestRun, current)
		current = 1
	}
	result.LongestRun = max(result.LongestRun, current)
	return
}
