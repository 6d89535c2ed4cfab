// ABOUTME: Voice-to-record pipeline running transcription then extraction
// ABOUTME: Spool files are removed whether or not the stages succeed
package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/yasunobu-co-ltd-coder/matip/audio"
	"github.com/yasunobu-co-ltd-coder/matip/models"
)

var (
	// ErrTranscriptionFailed means no transcript could be produced; there is
	// nothing to show the user.
	ErrTranscriptionFailed = errors.New("transcription failed")

	// ErrExtractionFailed means the transcript exists but structured fields
	// could not be extracted from it. The transcript is still returned.
	ErrExtractionFailed = errors.New("field extraction failed")
)

// Transcriber turns recorded audio bytes into text.
type Transcriber interface {
	Transcribe(ctx context.Context, data []byte, filename string) (string, error)
}

// Extractor produces a structured JSON document from a transcript under a
// system instruction.
type Extractor interface {
	Extract(ctx context.Context, instruction, transcript string) (string, error)
}

// Result is the pipeline output. Candidate is zero-valued when extraction
// failed; Transcript is always populated on a successful transcription.
type Result struct {
	Transcript string
	Candidate  models.Candidate
}

// Pipeline runs the two stages sequentially with a single attempt each.
type Pipeline struct {
	transcriber Transcriber
	extractor   Extractor
}

func New(transcriber Transcriber, extractor Extractor) *Pipeline {
	return &Pipeline{transcriber: transcriber, extractor: extractor}
}

// Run processes a finished capture. The spool file is deleted before
// returning regardless of outcome.
func (p *Pipeline) Run(ctx context.Context, capture *audio.Capture, today string) (Result, error) {
	defer func() {
		if capture.Path != "" {
			_ = os.Remove(capture.Path)
		}
	}()

	transcript, err := p.transcriber.Transcribe(ctx, capture.Data, capture.SessionID+".webm")
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrTranscriptionFailed, err)
	}
	if strings.TrimSpace(transcript) == "" {
		return Result{}, fmt.Errorf("%w: empty transcript", ErrTranscriptionFailed)
	}

	raw, err := p.extractor.Extract(ctx, ExtractionInstruction(today), transcript)
	if err != nil {
		return Result{Transcript: transcript}, fmt.Errorf("%w: %v", ErrExtractionFailed, err)
	}

	candidate, err := parseCandidate(raw)
	if err != nil {
		return Result{Transcript: transcript}, fmt.Errorf("%w: %v", ErrExtractionFailed, err)
	}

	return Result{Transcript: transcript, Candidate: candidate}, nil
}

// parseCandidate decodes the model output, tolerating markdown code fences
// around the JSON document.
func parseCandidate(raw string) (models.Candidate, error) {
	s := strings.TrimSpace(raw)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
		s = strings.TrimSpace(s)
	}

	var c models.Candidate
	if err := json.Unmarshal([]byte(s), &c); err != nil {
		return models.Candidate{}, fmt.Errorf("invalid extraction output: %w", err)
	}
	return c, nil
}
