package synthesizer

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

const DefaultBaseURL = "https://api.openai.com/v1"

type openAITTS struct {
	apiKey     string
	baseURL    string
	voice      string
	httpClient *http.Client
}

func NewOpenAITTS(openAIAPIKey string, baseURL string, voice string) Synthesizer {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if voice == "" {
		voice = "echo"
	}
	return &openAITTS{
		apiKey:     openAIAPIKey,
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		voice:      voice,
		httpClient: &http.Client{Timeout: time.Minute},
	}
}

// TTSPayload for audio/speech
type TTSPayload struct {
	Model          string  `json:"model"`
	Input          string  `json:"input"`
	Voice          string  `json:"voice"`
	ResponseFormat string  `json:"response_format"`
	Speed          float64 `json:"speed"`
}

func (o *openAITTS) CreateSpeech(ctx context.Context, text string, speed float64) (rawAudioBytes []byte, err error) {
	log.Debug().Str("input", text).Float64("speed", speed).Msg("sendTTSRequest start")

	payload := TTSPayload{
		Model:          "tts-1",
		Input:          text,
		Voice:          o.voice,
		ResponseFormat: "mp3",
		Speed:          speed,
	}
	reqStr, err := json.Marshal(payload)
	if err != nil {
		err = errors.Wrap(err, "synthesizer: marshaling payload failed")
		return
	}
	rawAudioBytes, err = o.sendRequest(ctx, http.MethodPost, "audio/speech", string(reqStr))
	if err != nil {
		err = errors.Wrapf(err, "synthesizer: audio/speech for %q failed", text)
	}
	return
}

func (o *openAITTS) sendRequest(ctx context.Context, method string, endpoint string, requestStr string) (result []byte, err error) {
	requestStart := time.Now()
	req, err := http.NewRequestWithContext(ctx, method, o.baseURL+"/"+endpoint, strings.NewReader(requestStr))
	if err != nil {
		return
	}
	req.Header.Add("Authorization", "Bearer "+o.apiKey)
	req.Header.Add("Content-Type", "application/json")

	resp, err := o.httpClient.Do(req)
	if err != nil {
		return
	}
	defer func() { _ = resp.Body.Close() }()

	log.Debug().Dur("request_time", time.Since(requestStart)).Str("method", method).Str("endpoint", endpoint).Int("status_code", resp.StatusCode).Msg("request done")

	if resp.StatusCode != http.StatusOK {
		errMsg, _ := io.ReadAll(resp.Body)
		err = errors.Errorf("received non-200 status %d from %s: %s", resp.StatusCode, endpoint, errMsg)
		return
	}

	result, err = io.ReadAll(resp.Body)
	if err != nil {
		err = errors.Wrap(err, "could not read response")
	}
	return
}
