package synthesizer

import (
	"context"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// SpeakableDigits renders numbers the way a person reading them out would pause between them.
func SpeakableDigits(digits []int) string {
	words := make([]string, len(digits))
	for i, d := range digits {
		words[i] = strconv.Itoa(d)
	}
	return strings.Join(words, ", ") + "."
}

// SpeakDigits synthesizes a recording of digits, slower than normal speech so the
// numbers stay separate.
func SpeakDigits(ctx context.Context, s Synthesizer, digits []int) ([]byte, error) {
	if len(digits) == 0 {
		return nil, errors.New("synthesizer: no digits to speak")
	}
	return s.CreateSpeech(ctx, SpeakableDigits(digits), 0.85)
}
