package control

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
)

// Receiver is the collaborator side of the result endpoint.
// It is used by the trigger command to wait for a reading, and by tests.
type Receiver struct {
	ln *net.UnixListener
}

// NewReceiver binds the result endpoint at path, removing a stale socket file.
func NewReceiver(path string) (*Receiver, error) {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to remove stale result endpoint %s: %w", path, err)
	}
	ln, err := net.ListenUnix("unix", &net.UnixAddr{Name: path, Net: "unix"})
	if err != nil {
		return nil, fmt.Errorf("failed to bind result endpoint %s: %w", path, err)
	}
	return &Receiver{ln: ln}, nil
}

// Receive waits for one connection and returns everything it wrote before closing.
func (r *Receiver) Receive(ctx context.Context) (string, error) {
	type result struct {
		msg string
		err error
	}
	done := make(chan result, 1)

	go func() {
		conn, err := r.ln.Accept()
		if err != nil {
			done <- result{err: err}
			return
		}
		defer conn.Close()
		data, err := io.ReadAll(conn)
		done <- result{msg: string(data), err: err}
	}()

	select {
	case <-ctx.Done():
		_ = r.ln.Close() // unblocks Accept
		return "", ctx.Err()
	case res := <-done:
		return res.msg, res.err
	}
}

// Close stops listening and removes the socket file.
func (r *Receiver) Close() error {
	return r.ln.Close()
}
