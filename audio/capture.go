// ABOUTME: Capture controller enforcing a single active recording session
// ABOUTME: Spools recordings to ULID-named files and returns the bytes on stop
package audio

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

var (
	// ErrDeviceUnavailable means the recorder could not open the microphone.
	ErrDeviceUnavailable = errors.New("audio device unavailable")

	// ErrAlreadyCapturing is returned when Start is called while a session
	// is active. The active session keeps running.
	ErrAlreadyCapturing = errors.New("a capture session is already active")
)

// Recorder starts a recording that writes to the given spool path.
type Recorder interface {
	Start(ctx context.Context, path string) (RecordSession, error)
}

// RecordSession is a running recording. Stop flushes and finalizes the
// spool file; it must be safe to call once.
type RecordSession interface {
	Stop() error
}

// Capture is a finished recording.
type Capture struct {
	SessionID string
	Path      string
	Data      []byte
}

// Controller serializes capture sessions. At most one recording runs at a
// time; a second Start fails without disturbing the active session.
type Controller struct {
	recorder Recorder
	spoolDir string
	entropy  *rand.Rand

	mu      sync.Mutex
	current *activeCapture
}

type activeCapture struct {
	id      string
	path    string
	session RecordSession
	cancel  context.CancelFunc
}

func NewController(recorder Recorder, spoolDir string) *Controller {
	return &Controller{
		recorder: recorder,
		spoolDir: spoolDir,
		entropy:  rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Start begins a new capture session and returns its id.
func (c *Controller) Start(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.current != nil {
		return "", ErrAlreadyCapturing
	}

	if err := os.MkdirAll(c.spoolDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create spool directory: %w", err)
	}

	id := ulid.MustNew(ulid.Timestamp(time.Now()), c.entropy).String()
	path := filepath.Join(c.spoolDir, id+".webm")

	sessionCtx, cancel := context.WithCancel(ctx)
	session, err := c.recorder.Start(sessionCtx, path)
	if err != nil {
		cancel()
		return "", err
	}

	c.current = &activeCapture{id: id, path: path, session: session, cancel: cancel}
	return id, nil
}

// Stop ends the active session and returns the recorded bytes. Stopping
// with no active session is a no-op.
func (c *Controller) Stop() (*Capture, error) {
	c.mu.Lock()
	active := c.current
	c.current = nil
	c.mu.Unlock()

	if active == nil {
		return nil, nil
	}
	defer active.cancel()

	if err := active.session.Stop(); err != nil {
		_ = os.Remove(active.path)
		return nil, fmt.Errorf("failed to stop recording: %w", err)
	}

	data, err := os.ReadFile(active.path)
	if err != nil {
		_ = os.Remove(active.path)
		return nil, fmt.Errorf("failed to read spool file: %w", err)
	}

	return &Capture{SessionID: active.id, Path: active.path, Data: data}, nil
}

// Abort discards the active session and its spool file, if any.
func (c *Controller) Abort() {
	c.mu.Lock()
	active := c.current
	c.current = nil
	c.mu.Unlock()

	if active == nil {
		return
	}
	_ = active.session.Stop()
	active.cancel()
	_ = os.Remove(active.path)
}

// Active reports whether a capture session is running.
func (c *Controller) Active() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current != nil
}
