package synthesizer

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpeakableDigits(t *testing.T) {
	assert.Equal(t, "1, 2, 10, 3.", SpeakableDigits([]int{1, 2, 10, 3}))
}

func TestSpeakDigitsAgainstFakeServer(t *testing.T) {
	var got TTSPayload
	var auth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		assert.Equal(t, "/v1/audio/speech", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte("ID3-fake-mp3"))
	}))
	defer server.Close()

	tts := NewOpenAITTS("sk-test", server.URL+"/v1/", "")
	audio, err := SpeakDigits(context.Background(), tts, []int{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, []byte("ID3-fake-mp3"), audio)
	assert.Equal(t, "Bearer sk-test", auth)
	assert.Equal(t, "1, 2, 3.", got.Input)
	assert.Equal(t, "echo", got.Voice)
	assert.Equal(t, "mp3", got.ResponseFormat)
}

func TestSpeakDigitsErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota", http.StatusTooManyRequests)
	}))
	defer server.Close()

	tts := NewOpenAITTS("sk-test", server.URL, "alloy")
	_, err := SpeakDigits(context.Background(), tts, []int{1})
	assert.Error(t, err)

	_, err = SpeakDigits(context.Background(), tts, nil)
	assert.Error(t, err)
}
