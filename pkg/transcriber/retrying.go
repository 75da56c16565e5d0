package transcriber

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/sashabaranov/go-openai"
)

type RetryOptions struct {
	MaxRetries     int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
}

type retrying struct {
	inner Transcriber
	opts  RetryOptions
	sleep func(ctx context.Context, d time.Duration) error
}

// NewRetrying retries failed transcriptions with exponential backoff.
func NewRetrying(inner Transcriber, opts RetryOptions) Transcriber {
	if opts.InitialBackoff <= 0 {
		opts.InitialBackoff = time.Second
	}
	if opts.MaxBackoff <= 0 {
		opts.MaxBackoff = 30 * time.Second
	}
	return &retrying{inner: inner, opts: opts, sleep: sleepCtx}
}

func (r *retrying) SendAudio(ctx context.Context, input io.Reader, fileExtension string, prompt string) (result string, err error) {
	// Every attempt needs to read the audio from the start.
	audioBytes, err := io.ReadAll(input)
	if err != nil {
		err = errors.Wrap(err, "transcriber: reading audio failed")
		return
	}

	backoff := r.opts.InitialBackoff
	for attempt := 0; ; attempt++ {
		result, err = r.inner.SendAudio(ctx, bytes.NewReader(audioBytes), fileExtension, prompt)
		if err == nil || attempt >= r.opts.MaxRetries || !isRetriable(err) {
			return
		}

		log.Warn().Err(err).Int("attempt", attempt+1).Dur("backoff", backoff).Msg("transcription failed, retrying")
		if sleepErr := r.sleep(ctx, backoff); sleepErr != nil {
			err = errors.Wrap(sleepErr, "transcriber: waiting for retry failed")
			return
		}
		backoff = min(backoff*2, r.opts.MaxBackoff)
	}
}

// isRetriable says no to client errors that will fail the same way again.
func isRetriable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) || errors.Is(err, ErrEmptyTranscript) {
		return false
	}
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode == http.StatusTooManyRequests || apiErr.HTTPStatusCode >= http.StatusInternalServerError
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.HTTPStatusCode == http.StatusTooManyRequests || reqErr.HTTPStatusCode >= http.StatusInternalServerError
	}
	return true
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
