package transcriber

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/sashabaranov/go-openai"
)

// ErrEmptyTranscript means the service answered but heard nothing usable.
var ErrEmptyTranscript = errors.New("empty transcript")

type WhisperOptions struct {
	Model       string
	Language    string
	Temperature float32
}

type openAIWhisper struct {
	client *openai.Client
	opts   WhisperOptions
}

func NewOpenAIWhisper(client *openai.Client, opts WhisperOptions) Transcriber {
	if opts.Model == "" {
		opts.Model = openai.Whisper1
	}
	return &openAIWhisper{
		client: client,
		opts:   opts,
	}
}

// NewOpenAIClient honors a custom base url, e.g. for a self-hosted whisper server.
func NewOpenAIClient(apiKey string, baseURL string, timeout time.Duration) *openai.Client {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if timeout > 0 {
		cfg.HTTPClient = &http.Client{Timeout: timeout}
	}
	return openai.NewClientWithConfig(cfg)
}

func (o *openAIWhisper) SendAudio(ctx context.Context, input io.Reader, fileExtension string, prompt string) (result string, err error) {
	startTime := time.Now()
	req := openai.AudioRequest{
		Model:  o.opts.Model,
		Reader: input,
		// Only the extension matters, the API sniffs the format from it.
		FilePath:    fmt.Sprintf("this-file-does-not-exist-just-needs-extension.%s", strings.TrimPrefix(fileExtension, ".")),
		Prompt:      prompt,
		Language:    o.opts.Language,
		Temperature: o.opts.Temperature,
	}

	log.Debug().Str("model", req.Model).Str("language", req.Language).Str("prompt", prompt).Msg("create transcription request")
	resp, err := o.client.CreateTranscription(ctx, req)
	if err != nil {
		err = errors.Wrap(err, "transcriber: creating transcription failed")
		return
	}

	result = removeNonASCII(resp.Text)
	if result != resp.Text {
		log.Info().Str("original_text", resp.Text).Str("processed_text", result).Msg("transcription post-processing removed some text")
	}
	if result == "" {
		err = ErrEmptyTranscript
		return
	}

	log.Debug().Str("transcription", result).Dur("time_elapsed", time.Since(startTime)).Msg("received transcription")
	return
}

var nonASCIIRegex = regexp.MustCompile(`[^\x00-\x7F]+`)

// removeNonASCII drops what Whisper tends to hallucinate on silence (random CJK runs)
// and trims the whitespace around the text. Digits are never touched.
func removeNonASCII(text string) string {
	return strings.TrimSpace(nonASCIIRegex.ReplaceAllString(text, ""))
}
