package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValidWithoutAPIKey(t *testing.T) {
	cfg := Default()
	assert.NoError(t, cfg.Validate(false))
	assert.Error(t, cfg.Validate(true))
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "digitaudit.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
audio_dir = "recordings"
extensions = [".wav", ".flac"]

[transcriber]
language = "de"
max_retries = 5
`), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "recordings", cfg.AudioDir)
	assert.Equal(t, "output.csv", cfg.OutputFile)
	assert.Equal(t, []string{".wav", ".flac"}, cfg.Extensions)
	assert.Equal(t, "de", cfg.Transcriber.Language)
	assert.Equal(t, "whisper-1", cfg.Transcriber.Model)
	assert.Equal(t, 5, cfg.Transcriber.MaxRetries)
	assert.Equal(t, time.Minute, cfg.Transcriber.Timeout())
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "digitaudit.toml")
	require.NoError(t, os.WriteFile(path, []byte(`audio_directory = "x"`), 0644))
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestSampleConfigParses(t *testing.T) {
	data, err := os.ReadFile("sample_config.toml")
	require.NoError(t, err)
	cfg := Config{}
	require.NoError(t, decode(data, &cfg))
	assert.Equal(t, Default().Transcriber.MaxBackoffMs, cfg.Transcriber.MaxBackoffMs)
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"OPEN_AI_API_KEY":        "sk-test",
		"DIGITAUDIT_OUTPUT_FILE": "out.csv",
		"DIGITAUDIT_MAX_RETRIES": "0",
	}
	lookup := func(k string) (string, bool) { v, ok := env[k]; return v, ok }

	cfg := Default()
	require.NoError(t, applyEnv(&cfg, lookup))
	assert.Equal(t, "sk-test", cfg.Transcriber.APIKey)
	assert.Equal(t, "out.csv", cfg.OutputFile)
	assert.Equal(t, 0, cfg.Transcriber.MaxRetries)
	assert.NoError(t, cfg.Validate(true))

	env["DIGITAUDIT_MAX_RETRIES"] = "many"
	assert.Error(t, applyEnv(&cfg, lookup))
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Extensions = []string{".ogg"}
	assert.Error(t, cfg.Validate(false))

	cfg = Default()
	cfg.OutputFile = " "
	assert.Error(t, cfg.Validate(false))

	cfg = Default()
	cfg.Transcriber.MaxRetries = -1
	assert.Error(t, cfg.Validate(false))
}
