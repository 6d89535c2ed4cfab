// ABOUTME: Tests for the two-stage pipeline
// ABOUTME: Uses fake stages; verifies spool cleanup and degraded results
package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yasunobu-co-ltd-coder/matip/audio"
)

type fakeTranscriber struct {
	text string
	err  error
}

func (f *fakeTranscriber) Transcribe(context.Context, []byte, string) (string, error) {
	return f.text, f.err
}

type fakeExtractor struct {
	raw string
	err error
}

func (f *fakeExtractor) Extract(context.Context, string, string) (string, error) {
	return f.raw, f.err
}

func spoolCapture(t *testing.T) *audio.Capture {
	t.Helper()
	path := filepath.Join(t.TempDir(), "session.webm")
	require.NoError(t, os.WriteFile(path, []byte("audio"), 0o644))
	return &audio.Capture{SessionID: "session", Path: path, Data: []byte("audio")}
}

func TestRunSuccess(t *testing.T) {
	p := New(
		&fakeTranscriber{text: "田中さんに見積もりを任せる"},
		&fakeExtractor{raw: `{"clientName":"アクメ商事","memo":"見積もり対応","importance":"高","assignmentType":"任せる","assignee":"田中"}`},
	)
	cap := spoolCapture(t)

	result, err := p.Run(context.Background(), cap, "2025-01-15")
	require.NoError(t, err)

	assert.Equal(t, "田中さんに見積もりを任せる", result.Transcript)
	assert.Equal(t, "アクメ商事", result.Candidate.ClientName)
	assert.Equal(t, "高", result.Candidate.Importance)

	// Spool file is cleaned up.
	_, statErr := os.Stat(cap.Path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestRunTranscriptionFailure(t *testing.T) {
	p := New(&fakeTranscriber{err: errors.New("network down")}, &fakeExtractor{})
	cap := spoolCapture(t)

	_, err := p.Run(context.Background(), cap, "2025-01-15")
	assert.ErrorIs(t, err, ErrTranscriptionFailed)

	_, statErr := os.Stat(cap.Path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestRunEmptyTranscript(t *testing.T) {
	p := New(&fakeTranscriber{text: "   "}, &fakeExtractor{})
	_, err := p.Run(context.Background(), spoolCapture(t), "2025-01-15")
	assert.ErrorIs(t, err, ErrTranscriptionFailed)
}

func TestRunExtractionFailureKeepsTranscript(t *testing.T) {
	p := New(&fakeTranscriber{text: "聞き取った内容"}, &fakeExtractor{err: errors.New("model error")})
	cap := spoolCapture(t)

	result, err := p.Run(context.Background(), cap, "2025-01-15")
	assert.ErrorIs(t, err, ErrExtractionFailed)
	assert.Equal(t, "聞き取った内容", result.Transcript)
	assert.Empty(t, result.Candidate.Memo)

	_, statErr := os.Stat(cap.Path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestRunMalformedExtraction(t *testing.T) {
	p := New(&fakeTranscriber{text: "聞き取った内容"}, &fakeExtractor{raw: "not json at all"})
	result, err := p.Run(context.Background(), spoolCapture(t), "2025-01-15")
	assert.ErrorIs(t, err, ErrExtractionFailed)
	assert.Equal(t, "聞き取った内容", result.Transcript)
}

func TestRunFencedExtraction(t *testing.T) {
	p := New(
		&fakeTranscriber{text: "text"},
		&fakeExtractor{raw: "```json\n{\"memo\":\"fenced\"}\n```"},
	)
	result, err := p.Run(context.Background(), spoolCapture(t), "2025-01-15")
	require.NoError(t, err)
	assert.Equal(t, "fenced", result.Candidate.Memo)
}

func TestExtractionInstructionEmbedsDate(t *testing.T) {
	prompt := ExtractionInstruction("2025-01-15")
	assert.Contains(t, prompt, "2025-01-15")
	assert.Contains(t, prompt, "clientName")
	assert.Contains(t, prompt, "assignmentType")
}
