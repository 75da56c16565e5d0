package sequence

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ErrInvalidArgument marks every input the core refuses to interpret.
var ErrInvalidArgument = errors.New("invalid argument")

const (
	MinDigit = 1
	MaxDigit = 10
)

// Tokenize turns a digit-only transcript into the spoken numbers.
// Spoken "ten" arrives as the two characters "10" with nothing in between, so every
// "10" substring becomes the value 10, even when it was really a 1 followed by a 0.
func Tokenize(transcript string) ([]int, error) {
	if transcript == "" {
		return nil, errors.Wrap(ErrInvalidArgument, "sequence: transcript is empty")
	}
	for i := 0; i < len(transcript); i++ {
		if c := transcript[i]; c < '0' || c > '9' {
			return nil, errors.Wrapf(ErrInvalidArgument, "sequence: transcript %q must only contain digits", transcript)
		}
	}

	spaced := strings.Join(strings.Split(transcript, ""), " ")
	spaced = strings.ReplaceAll(spaced, "1 0", "10")

	tokens := strings.Fields(spaced)
	result := make([]int, 0, len(tokens))
	for _, token := range tokens {
		n, err := strconv.Atoi(token)
		if err != nil {
			return nil, errors.Wrapf(ErrInvalidArgument, "sequence: transcript %q must be in formats like '1234678910'", transcript)
		}
		if n < MinDigit || n > MaxDigit {
			return nil, errors.Wrapf(ErrInvalidArgument, "sequence: token %d of transcript %q is outside %d..%d", n, transcript, MinDigit, MaxDigit)
		}
		result = append(result, n)
	}
	return result, nil
}
