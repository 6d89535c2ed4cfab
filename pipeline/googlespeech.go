// ABOUTME: Google Cloud Speech-to-Text transcriber
// ABOUTME: Alternative to Whisper, selected through configuration
package pipeline

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"google.golang.org/api/option"
	speech "google.golang.org/api/speech/v1"
)

// GoogleTranscriber recognizes webm/opus recordings through the Cloud
// Speech-to-Text REST API.
type GoogleTranscriber struct {
	apiKey     string
	language   string
	sampleRate int64
}

func NewGoogleTranscriber(apiKey, language string, sampleRate int64) *GoogleTranscriber {
	if language == "" {
		language = "ja-JP"
	}
	if sampleRate <= 0 {
		sampleRate = 48000
	}
	return &GoogleTranscriber{apiKey: apiKey, language: language, sampleRate: sampleRate}
}

func (g *GoogleTranscriber) Transcribe(ctx context.Context, data []byte, _ string) (string, error) {
	svc, err := speech.NewService(ctx, option.WithAPIKey(g.apiKey))
	if err != nil {
		return "", fmt.Errorf("failed to create speech service: %w", err)
	}

	resp, err := svc.Speech.Recognize(&speech.RecognizeRequest{
		Config: &speech.RecognitionConfig{
			Encoding:        "WEBM_OPUS",
			SampleRateHertz: g.sampleRate,
			LanguageCode:    g.language,
		},
		Audio: &speech.RecognitionAudio{
			Content: base64.StdEncoding.EncodeToString(data),
		},
	}).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("speech recognition failed: %w", err)
	}

	var parts []string
	for _, result := range resp.Results {
		if len(result.Alternatives) > 0 {
			parts = append(parts, result.Alternatives[0].Transcript)
		}
	}
	return strings.Join(parts, " "), nil
}
