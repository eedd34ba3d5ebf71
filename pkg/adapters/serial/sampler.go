// Package serial reads the sensor's text stream from a serial device.
//
// The sensor emits frames of the form "PiPVal: <int>\r". Every non-empty frame
// becomes one sample; a frame without the tag or with an unparseable value
// counts as 0.
package serial

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/dkuanyshbaev/ioracle-core/internal/logging"
)

// Defaults for the installation sensor.
const (
	DefaultDevice = "/dev/ttyACM0"
	DefaultTag    = "PiPVal: "
)

// Opener opens the sensor stream for one window.
type Opener func() (io.ReadCloser, error)

// Sampler implements ports.Sampler over a serial device.
type Sampler struct {
	open   Opener
	tag    string
	logger *slog.Logger
}

// Option configures the Sampler.
type Option func(*Sampler)

// WithOpener replaces the device opener, e.g. with a pipe in tests.
func WithOpener(open Opener) Option {
	return func(s *Sampler) {
		s.open = open
	}
}

// WithTag overrides DefaultTag.
func WithTag(tag string) Option {
	return func(s *Sampler) {
		s.tag = tag
	}
}

// WithLogger configures a logger for the Sampler.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Sampler) {
		s.logger = logger
	}
}

// New creates a Sampler reading from device. The line settings (9600 8N1)
// are expected to be configured on the device beforehand.
func New(device string, opts ...Option) *Sampler {
	s := &Sampler{
		open: func() (io.ReadCloser, error) {
			return os.Open(device)
		},
		tag:    DefaultTag,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SampleWindow opens the stream, collects samples until d has elapsed or the
// stream ends, and closes it. Only a failure to open is reported as an error.
func (s *Sampler) SampleWindow(ctx context.Context, d time.Duration) ([]int, error) {
	rc, err := s.open()
	if err != nil {
		return nil, fmt.Errorf("failed to open sensor: %w", err)
	}

	var once sync.Once
	closeStream := func() {
		once.Do(func() { _ = rc.Close() })
	}
	defer closeStream()

	deadline := time.Now().Add(d)
	wctx, cancel := context.WithDeadline(ctx, deadline)
	defer cancel()
	// Closing the stream unblocks a pending read.
	stop := context.AfterFunc(wctx, closeStream)
	defer stop()

	var samples []int
	scanner := bufio.NewScanner(rc)
	scanner.Split(scanFrames)
	for scanner.Scan() {
		if !time.Now().Before(deadline) {
			break
		}
		frame := scanner.Text()
		if frame == "" {
			continue
		}
		samples = append(samples, s.parse(frame))
	}
	if err := scanner.Err(); err != nil && wctx.Err() == nil && !errors.Is(err, os.ErrClosed) {
		s.logger.Warn("Sensor read failed", "samples", len(samples), "err", err)
	}

	s.logger.Debug("Window sampled", "samples", len(samples), "window", d)
	return samples, nil
}

// parse extracts the value following the tag; anything else reads as 0.
func (s *Sampler) parse(frame string) int {
	i := strings.Index(frame, s.tag)
	if i < 0 {
		return 0
	}
	v, err := strconv.Atoi(strings.TrimSpace(frame[i+len(s.tag):]))
	if err != nil {
		return 0
	}
	return v
}

// scanFrames is a bufio.SplitFunc that splits on '\r' or '\n'.
func scanFrames(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		return i + 1, data[:i], nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}
