package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"MATIP_PIN", "MATIP_STORE", "MATIP_TRANSCRIBER",
		"MATIP_WHISPER_MODEL", "MATIP_CHAT_MODEL", "MATIP_SAMPLE_RATE",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()
	assert.Equal(t, "8004", cfg.PIN)
	assert.Equal(t, StoreSQLite, cfg.Store)
	assert.Equal(t, TranscriberOpenAI, cfg.Transcriber)
	assert.Equal(t, "whisper-1", cfg.WhisperModel)
	assert.Equal(t, "gpt-4o", cfg.ChatModel)
	assert.Equal(t, 48000, cfg.Audio.SampleRate)
	assert.NotEmpty(t, cfg.DBPath)
	assert.NotEmpty(t, cfg.SpoolDir)
	assert.NotEmpty(t, cfg.StatePath)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("MATIP_PIN", "1234")
	t.Setenv("MATIP_STORE", StoreSupabase)
	t.Setenv("SUPABASE_URL", "https://example.supabase.co")
	t.Setenv("MATIP_TRANSCRIBER", TranscriberGoogle)
	t.Setenv("MATIP_SAMPLE_RATE", "16000")

	cfg := Load()
	assert.Equal(t, "1234", cfg.PIN)
	assert.Equal(t, StoreSupabase, cfg.Store)
	assert.Equal(t, "https://example.supabase.co", cfg.SupabaseURL)
	assert.Equal(t, TranscriberGoogle, cfg.Transcriber)
	assert.Equal(t, 16000, cfg.Audio.SampleRate)
}

func TestLoadIgnoresMalformedInt(t *testing.T) {
	t.Setenv("MATIP_SAMPLE_RATE", "not-a-number")
	cfg := Load()
	assert.Equal(t, 48000, cfg.Audio.SampleRate)
}
