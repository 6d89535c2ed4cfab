// ABOUTME: ffmpeg-backed microphone recorder writing webm/opus spool files
// ABOUTME: Stops with an interrupt, escalating to kill after a bounded wait
package audio

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"sync"
	"time"
)

// RecorderConfig selects the capture command and input device.
type RecorderConfig struct {
	Command     string // defaults to "ffmpeg"
	InputFormat string // defaults to "pulse"
	InputDevice string // defaults to "default"
	SampleRate  int    // defaults to 48000
	Channels    int    // defaults to 1
}

// FFmpegRecorder records microphone audio to a webm/opus file via ffmpeg.
type FFmpegRecorder struct {
	cfg RecorderConfig
}

func NewFFmpegRecorder(cfg RecorderConfig) *FFmpegRecorder {
	if cfg.Command == "" {
		cfg.Command = "ffmpeg"
	}
	if cfg.InputFormat == "" {
		cfg.InputFormat = "pulse"
	}
	if cfg.InputDevice == "" {
		cfg.InputDevice = "default"
	}
	if cfg.SampleRate <= 0 {
		cfg.SampleRate = 48000
	}
	if cfg.Channels <= 0 {
		cfg.Channels = 1
	}
	return &FFmpegRecorder{cfg: cfg}
}

func (r *FFmpegRecorder) Start(ctx context.Context, path string) (RecordSession, error) {
	args := []string{
		"-nostdin",
		"-hide_banner",
		"-loglevel", "warning",
		"-f", r.cfg.InputFormat,
		"-i", r.cfg.InputDevice,
		"-ac", strconv.Itoa(r.cfg.Channels),
		"-ar", strconv.Itoa(r.cfg.SampleRate),
		"-c:a", "libopus",
		"-f", "webm",
		"-y", path,
	}

	cmd := exec.CommandContext(ctx, r.cfg.Command, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDeviceUnavailable, err)
	}

	waitErr := make(chan error, 1)
	go func() {
		waitErr <- cmd.Wait()
		close(waitErr)
	}()

	// Give ffmpeg a moment to fail on a bad device before reporting success.
	select {
	case err := <-waitErr:
		if err != nil {
			return nil, fmt.Errorf("%w: %v: %s", ErrDeviceUnavailable, err, bytes.TrimSpace(stderr.Bytes()))
		}
		return nil, fmt.Errorf("%w: recorder exited immediately", ErrDeviceUnavailable)
	case <-time.After(250 * time.Millisecond):
	}

	return &ffmpegSession{
		process: cmd.Process,
		stderr:  &stderr,
		waitErr: waitErr,
	}, nil
}

type ffmpegSession struct {
	process *os.Process
	stderr  *bytes.Buffer
	waitErr <-chan error

	stopOnce sync.Once
	stopErr  error
}

func (s *ffmpegSession) Stop() error {
	s.stopOnce.Do(func() {
		if s.process != nil {
			_ = s.process.Signal(os.Interrupt)
		}

		select {
		case err, ok := <-s.waitErr:
			if ok {
				s.stopErr = normalizeExit(err)
			}
		case <-time.After(2 * time.Second):
			if s.process != nil {
				_ = s.process.Kill()
			}
			err, ok := <-s.waitErr
			if ok {
				s.stopErr = normalizeExit(err)
			}
		}

		if s.stopErr != nil && s.stderr.Len() > 0 {
			s.stopErr = fmt.Errorf("%w: %s", s.stopErr, bytes.TrimSpace(s.stderr.Bytes()))
		}
	})
	return s.stopErr
}

// normalizeExit treats the nonzero exit caused by the interrupt as a clean
// stop; ffmpeg flushes the container trailer on SIGINT.
func normalizeExit(err error) error {
	if err == nil {
		return nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return nil
	}
	return err
}
