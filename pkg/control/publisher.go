package control

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"strings"
	"time"

	"github.com/dkuanyshbaev/ioracle-core/internal/logging"
	"github.com/dkuanyshbaev/ioracle-core/pkg/domain"
)

// Defaults for the result endpoint.
const (
	DefaultOutPath      = "/tmp/ioracle.out"
	DefaultWriteTimeout = 2 * time.Second
)

// resultSeparator splits primary and related in a published result.
const resultSeparator = "|"

// FormatResult renders the wire payload "<primary>|<related>".
func FormatResult(primary, related domain.Hexagram) string {
	return string(primary) + resultSeparator + string(related)
}

// ParseResult splits and validates a published result.
func ParseResult(msg string) (primary, related domain.Hexagram, err error) {
	p, r, ok := strings.Cut(msg, resultSeparator)
	if !ok {
		return "", "", fmt.Errorf("result %q: missing separator", msg)
	}
	if primary, err = domain.ParseHexagram(p); err != nil {
		return "", "", fmt.Errorf("result primary: %w", err)
	}
	if related, err = domain.ParseHexagram(r); err != nil {
		return "", "", fmt.Errorf("result related: %w", err)
	}
	return primary, related, nil
}

// Publisher delivers results to the waiting collaborator.
type Publisher struct {
	path    string
	timeout time.Duration
	logger  *slog.Logger
}

// PublisherOption configures the Publisher.
type PublisherOption func(*Publisher)

// WithWriteTimeout bounds dialing and writing one result.
func WithWriteTimeout(d time.Duration) PublisherOption {
	return func(p *Publisher) {
		p.timeout = d
	}
}

// WithPublisherLogger configures a logger for the Publisher.
func WithPublisherLogger(logger *slog.Logger) PublisherOption {
	return func(p *Publisher) {
		p.logger = logger
	}
}

// NewPublisher creates a Publisher for the socket at path.
func NewPublisher(path string, opts ...PublisherOption) *Publisher {
	p := &Publisher{
		path:    path,
		timeout: DefaultWriteTimeout,
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Publish opens a fresh connection, writes one result and closes it.
func (p *Publisher) Publish(ctx context.Context, primary, related domain.Hexagram) error {
	dialer := net.Dialer{Timeout: p.timeout}
	conn, err := dialer.DialContext(ctx, "unix", p.path)
	if err != nil {
		return fmt.Errorf("failed to connect to result endpoint %s: %w", p.path, err)
	}
	defer conn.Close()

	if p.timeout > 0 {
		if err := conn.SetWriteDeadline(time.Now().Add(p.timeout)); err != nil {
			return fmt.Errorf("failed to set write deadline: %w", err)
		}
	}

	msg := FormatResult(primary, related)
	if _, err := conn.Write([]byte(msg)); err != nil {
		return fmt.Errorf("failed to write result: %w", err)
	}

	p.logger.Info("Result sent", "result", msg)
	return nil
}

// SendCommand dials the gate at path and writes cmd followed by a newline.
// It is the client side of Listener, used by tools and tests.
func SendCommand(ctx context.Context, path, cmd string) error {
	var dialer net.Dialer
	conn, err := dialer.DialContext(ctx, "unix", path)
	if err != nil {
		return fmt.Errorf("failed to connect to gate %s: %w", path, err)
	}
	defer conn.Close()

	if _, err := conn.Write([]byte(cmd + "\n")); err != nil {
		return fmt.Errorf("failed to send command: %w", err)
	}
	return nil
}
