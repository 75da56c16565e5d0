package transcriber

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scriptedTranscriber struct {
	results []string
	errs    []error
	bodies  []string
	calls   int
}

func (s *scriptedTranscriber) SendAudio(ctx context.Context, input io.Reader, fileExtension string, prompt string) (string, error) {
	body, _ := io.ReadAll(input)
	s.bodies = append(s.bodies, string(body))
	i := s.calls
	s.calls++
	return s.results[i], s.errs[i]
}

func noSleep(context.Context, time.Duration) error { return nil }

func TestRemoveNonASCII(t *testing.T) {
	assert.Equal(t, "12345", removeNonASCII(" 12345 뉴스 "))
	assert.Equal(t, "12310", removeNonASCII("12310"))
	assert.Equal(t, "", removeNonASCII("이덕영입니다"))
}

func TestRetryingSucceedsAfterTransientErrors(t *testing.T) {
	inner := &scriptedTranscriber{
		results: []string{"", "", "123"},
		errs:    []error{errors.New("connection reset"), &openai.APIError{HTTPStatusCode: 503}, nil},
	}
	r := NewRetrying(inner, RetryOptions{MaxRetries: 3}).(*retrying)
	r.sleep = noSleep

	result, err := r.SendAudio(context.Background(), strings.NewReader("audio"), "wav", "")
	require.NoError(t, err)
	assert.Equal(t, "123", result)
	assert.Equal(t, 3, inner.calls)
	assert.Equal(t, []string{"audio", "audio", "audio"}, inner.bodies)
}

func TestRetryingStopsOnClientError(t *testing.T) {
	inner := &scriptedTranscriber{
		results: []string{""},
		errs:    []error{errors.Wrap(&openai.APIError{HTTPStatusCode: 400}, "bad")},
	}
	r := NewRetrying(inner, RetryOptions{MaxRetries: 3}).(*retrying)
	r.sleep = noSleep

	_, err := r.SendAudio(context.Background(), strings.NewReader("audio"), "wav", "")
	assert.Error(t, err)
	assert.Equal(t, 1, inner.calls)
}

func TestRetryingGivesUp(t *testing.T) {
	boom := errors.New("boom")
	inner := &scriptedTranscriber{
		results: []string{"", ""},
		errs:    []error{boom, boom},
	}
	r := NewRetrying(inner, RetryOptions{MaxRetries: 1}).(*retrying)
	r.sleep = noSleep

	_, err := r.SendAudio(context.Background(), strings.NewReader("audio"), "wav", "")
	assert.True(t, errors.Is(err, boom))
	assert.Equal(t, 2, inner.calls)
}

func TestRetryingHonorsCancellation(t *testing.T) {
	inner := &scriptedTranscriber{
		results: []string{""},
		errs:    []error{errors.New("boom")},
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewRetrying(inner, RetryOptions{MaxRetries: 5}).SendAudio(ctx, strings.NewReader("audio"), "wav", "")
	assert.True(t, errors.Is(err, context.Canceled), "got %v", err)
	assert.Equal(t, 1, inner.calls)
}

func TestOpenAIWhisperAgainstFakeServer(t *testing.T) {
	var gotModel string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, r.ParseMultipartForm(1<<20))
		gotModel = r.FormValue("model")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"text":" 12345678910 "}`))
	}))
	defer server.Close()

	client := NewOpenAIClient("test-key", server.URL+"/v1", 5*time.Second)
	whisper := NewOpenAIWhisper(client, WhisperOptions{Language: "en"})

	result, err := whisper.SendAudio(context.Background(), strings.NewReader("RIFF"), "wav", "")
	require.NoError(t, err)
	assert.Equal(t, "12345678910", result)
	assert.Equal(t, openai.Whisper1, gotModel)
}

func TestOpenAIWhisperEmptyTranscript(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"text":"뉴스"}`))
	}))
	defer server.Close()

	whisper := NewOpenAIWhisper(NewOpenAIClient("test-key", server.URL+"/v1", 0), WhisperOptions{})
	_, err := whisper.SendAudio(context.Background(), strings.NewReader("RIFF"), "wav", "")
	assert.True(t, errors.Is(err, ErrEmptyTranscript))
}
