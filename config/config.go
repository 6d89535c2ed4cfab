// ABOUTME: Runtime configuration from environment variables and .env files
// ABOUTME: Resolves XDG paths for the database, spool directory, and login state
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
)

// Transcriber backends selectable through MATIP_TRANSCRIBER.
const (
	TranscriberOpenAI = "openai"
	TranscriberGoogle = "google"
)

// Store backends selectable through MATIP_STORE.
const (
	StoreSQLite   = "sqlite"
	StoreSupabase = "supabase"
)

// Config stores runtime configuration for the deal tracker.
type Config struct {
	PIN string

	Store       string
	DBPath      string
	SupabaseURL string
	SupabaseKey string

	Transcriber    string
	OpenAIKey      string
	OpenAIBaseURL  string
	WhisperModel   string
	ChatModel      string
	GoogleKey      string
	RequestTimeout time.Duration

	Audio AudioConfig

	SpoolDir  string
	StatePath string
}

type AudioConfig struct {
	RecorderCommand string
	InputFormat     string
	InputDevice     string
	SampleRate      int
	Channels        int
}

// Load resolves configuration from a .env file (if present), environment
// variables, and sensible defaults.
func Load() Config {
	// Missing .env files are fine; the environment still applies.
	_ = godotenv.Load()

	cfg := Config{
		PIN: envOrDefault("MATIP_PIN", "8004"),

		Store:       envOrDefault("MATIP_STORE", StoreSQLite),
		DBPath:      envOrDefault("MATIP_DB_PATH", filepath.Join(xdg.DataHome, "matip", "matip.db")),
		SupabaseURL: strings.TrimSpace(os.Getenv("SUPABASE_URL")),
		SupabaseKey: strings.TrimSpace(os.Getenv("SUPABASE_ANON_KEY")),

		Transcriber:    envOrDefault("MATIP_TRANSCRIBER", TranscriberOpenAI),
		OpenAIKey:      strings.TrimSpace(os.Getenv("OPENAI_API_KEY")),
		OpenAIBaseURL:  envOrDefault("OPENAI_API_BASE", "https://api.openai.com/v1"),
		WhisperModel:   envOrDefault("MATIP_WHISPER_MODEL", "whisper-1"),
		ChatModel:      envOrDefault("MATIP_CHAT_MODEL", "gpt-4o"),
		GoogleKey:      strings.TrimSpace(os.Getenv("GOOGLE_SPEECH_API_KEY")),
		RequestTimeout: time.Duration(envOrDefaultInt("MATIP_REQUEST_TIMEOUT_MS", 60000)) * time.Millisecond,

		Audio: AudioConfig{
			RecorderCommand: envOrDefault("MATIP_FFMPEG_COMMAND", "ffmpeg"),
			InputFormat:     envOrDefault("MATIP_AUDIO_INPUT_FORMAT", "pulse"),
			InputDevice:     envOrDefault("MATIP_AUDIO_INPUT_DEVICE", "default"),
			SampleRate:      envOrDefaultInt("MATIP_SAMPLE_RATE", 48000),
			Channels:        envOrDefaultInt("MATIP_CHANNELS", 1),
		},

		SpoolDir:  envOrDefault("MATIP_SPOOL_DIR", filepath.Join(xdg.CacheHome, "matip", "spool")),
		StatePath: envOrDefault("MATIP_STATE_PATH", filepath.Join(xdg.StateHome, "matip", "state.json")),
	}

	if cfg.Audio.SampleRate <= 0 {
		cfg.Audio.SampleRate = 48000
	}
	if cfg.Audio.Channels <= 0 {
		cfg.Audio.Channels = 1
	}

	return cfg
}

func envOrDefault(key string, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}

func envOrDefaultInt(key string, fallback int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}
