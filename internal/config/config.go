package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// Transcriber configures the speech recognition service.
type Transcriber struct {
	APIKey           string  `toml:"-"`
	BaseURL          string  `toml:"base_url"`
	Model            string  `toml:"model"`
	Language         string  `toml:"language"`
	Prompt           string  `toml:"prompt"`
	Temperature      float32 `toml:"temperature"`
	TimeoutSeconds   int     `toml:"timeout_seconds"`
	MaxRetries       int     `toml:"max_retries"`
	InitialBackoffMs int     `toml:"initial_backoff_ms"`
	MaxBackoffMs     int     `toml:"max_backoff_ms"`
}

type Config struct {
	AudioDir    string      `toml:"audio_dir"`
	OutputFile  string      `toml:"output_file"`
	Append      bool        `toml:"append"`
	Extensions  []string    `toml:"extensions"`
	LogLevel    string      `toml:"log_level"`
	Transcriber Transcriber `toml:"transcriber"`
}

// Default mirrors how the tool always ran: ./audio in, ./output.csv out.
func Default() Config {
	return Config{
		AudioDir:   "audio",
		OutputFile: "output.csv",
		Extensions: []string{".wav"},
		LogLevel:   "info",
		Transcriber: Transcriber{
			Model:            "whisper-1",
			Language:         "en",
			TimeoutSeconds:   60,
			MaxRetries:       3,
			InitialBackoffMs: 1000,
			MaxBackoffMs:     30000,
		},
	}
}

// Load layers defaults, the optional TOML file at path, then .env and the environment.
func Load(path string) (cfg Config, err error) {
	cfg = Default()

	if path != "" {
		var data []byte
		if data, err = os.ReadFile(path); err != nil {
			err = errors.Wrapf(err, "config: reading %s failed", path)
			return
		}
		if err = decode(data, &cfg); err != nil {
			err = errors.Wrapf(err, "config: parsing %s failed", path)
			return
		}
	}

	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("no .env file loaded")
	}
	err = applyEnv(&cfg, os.LookupEnv)
	return
}

func decode(data []byte, cfg *Config) error {
	d := toml.NewDecoder(strings.NewReader(string(data)))
	d.DisallowUnknownFields()
	return d.Decode(cfg)
}

func applyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	if v, ok := lookup("OPEN_AI_API_KEY"); ok {
		cfg.Transcriber.APIKey = v
	} else if v, ok := lookup("OPENAI_API_KEY"); ok {
		cfg.Transcriber.APIKey = v
	}
	if v, ok := lookup("OPENAI_BASE_URL"); ok {
		cfg.Transcriber.BaseURL = v
	}
	if v, ok := lookup("DIGITAUDIT_AUDIO_DIR"); ok {
		cfg.AudioDir = v
	}
	if v, ok := lookup("DIGITAUDIT_OUTPUT_FILE"); ok {
		cfg.OutputFile = v
	}
	if v, ok := lookup("DIGITAUDIT_LOG_LEVEL"); ok {
		cfg.LogLevel = v
	}
	if v, ok := lookup("DIGITAUDIT_MAX_RETRIES"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return errors.Wrapf(err, "config: DIGITAUDIT_MAX_RETRIES %q is not a number", v)
		}
		cfg.Transcriber.MaxRetries = n
	}
	return nil
}

// Validate checks what every command needs; requireAPIKey is for commands that transcribe.
func (c Config) Validate(requireAPIKey bool) error {
	if strings.TrimSpace(c.AudioDir) == "" {
		return errors.New("config: audio_dir is empty")
	}
	if strings.TrimSpace(c.OutputFile) == "" {
		return errors.New("config: output_file is empty")
	}
	if len(c.Extensions) == 0 {
		return errors.New("config: extensions is empty")
	}
	for _, ext := range c.Extensions {
		switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
		case "wav", "flac", "mp3":
		default:
			return errors.Errorf("config: unsupported extension %q", ext)
		}
	}
	t := c.Transcriber
	if t.MaxRetries < 0 || t.InitialBackoffMs < 0 || t.MaxBackoffMs < 0 || t.TimeoutSeconds < 0 {
		return errors.New("config: transcriber retries, backoffs and timeout must not be negative")
	}
	if requireAPIKey && t.APIKey == "" {
		return errors.New("config: OPEN_AI_API_KEY is not set")
	}
	return nil
}

func (t Transcriber) Timeout() time.Duration {
	return time.Duration(t.TimeoutSeconds) * time.Second
}

func (t Transcriber) InitialBackoff() time.Duration {
	return time.Duration(t.InitialBackoffMs) * time.Millisecond
}

func (t Transcriber) MaxBackoff() time.Duration {
	return time.Duration(t.MaxBackoffMs) * time.Millisecond
}
