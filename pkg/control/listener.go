package control

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os"
	"strings"
	"time"

	"github.com/dkuanyshbaev/ioracle-core/internal/logging"
)

// CommandRead is the only recognized command.
const CommandRead = "read"

// Defaults for the gate listener.
const (
	DefaultGatePath     = "/tmp/ioracle.gate"
	DefaultPollInterval = 70 * time.Millisecond
	DefaultReadTimeout  = 5 * time.Second
)

// Listener is the inbound command gate.
type Listener struct {
	path         string
	ln           *net.UnixListener
	pollInterval time.Duration
	readTimeout  time.Duration
	logger       *slog.Logger
}

// ListenerOption configures the Listener.
type ListenerOption func(*Listener)

// WithPollInterval bounds how long one Poll waits for a connection.
func WithPollInterval(d time.Duration) ListenerOption {
	return func(l *Listener) {
		l.pollInterval = d
	}
}

// WithReadTimeout bounds how long one connection may take to send its commands.
func WithReadTimeout(d time.Duration) ListenerOption {
	return func(l *Listener) {
		l.readTimeout = d
	}
}

// WithListenerLogger configures a logger for the Listener.
func WithListenerLogger(logger *slog.Logger) ListenerOption {
	return func(l *Listener) {
		l.logger = logger
	}
}

// Listen binds the gate at path, removing a stale socket file left by a previous run.
func Listen(path string, opts ...ListenerOption) (*Listener, error) {
	l := &Listener{
		path:         path,
		pollInterval: DefaultPollInterval,
		readTimeout:  DefaultReadTimeout,
		logger:       logging.NewNop(),
	}
	for _, opt := range opts {
		opt(l)
	}

	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to remove stale gate %s: %w", path, err)
	}

	ln, err := net.ListenUnix("unix", &net.UnixAddr{Name: path, Net: "unix"})
	if err != nil {
		return nil, fmt.Errorf("failed to bind gate %s: %w", path, err)
	}
	l.ln = ln
	return l, nil
}

// Path returns the socket path.
func (l *Listener) Path() string {
	return l.path
}

// Poll waits at most the poll interval for one connection and reads it line by line.
// It reports whether the connection sent the read command. Anything else,
// including accept and read errors, is ignored.
func (l *Listener) Poll(ctx context.Context) bool {
	if ctx.Err() != nil {
		return false
	}

	if err := l.ln.SetDeadline(time.Now().Add(l.pollInterval)); err != nil {
		l.logger.Warn("Failed to set gate deadline", "err", err)
		return false
	}

	conn, err := l.ln.Accept()
	if err != nil {
		var netErr net.Error
		if !errors.As(err, &netErr) || !netErr.Timeout() {
			l.logger.Warn("Gate accept failed", "err", err)
		}
		return false
	}
	defer conn.Close()

	l.logger.Debug("Gate connection accepted")
	return l.readCommands(conn)
}

func (l *Listener) readCommands(conn net.Conn) bool {
	if l.readTimeout > 0 {
		if err := conn.SetReadDeadline(time.Now().Add(l.readTimeout)); err != nil {
			l.logger.Warn("Failed to set read deadline", "err", err)
		}
	}

	scanner := bufio.NewScanner(conn)
	for scanner.Scan() {
		line := strings.TrimSuffix(scanner.Text(), "\r")
		if line == CommandRead {
			l.logger.Info("Read command received")
			return true
		}
		l.logger.Debug("Ignoring gate line", "line", line)
	}
	if err := scanner.Err(); err != nil {
		l.logger.Warn("Gate connection read failed", "err", err)
	}
	return false
}

// Close stops listening and removes the socket file.
func (l *Listener) Close() error {
	// UnixListener unlinks the socket file on Close.
	return l.ln.Close()
}
