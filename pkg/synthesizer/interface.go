package synthesizer

import "context"

type Synthesizer interface {
	// CreateSpeech returns mp3 bytes of text spoken at speed.
	CreateSpeech(ctx context.Context, text string, speed float64) (rawAudioBytes []byte, err error)
}
