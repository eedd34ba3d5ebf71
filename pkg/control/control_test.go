package control_test

import (
	"context"
	"net"
	"path/filepath"
	"testing"
	"time"

	"github.com/dkuanyshbaev/ioracle-core/pkg/control"
	"github.com/dkuanyshbaev/ioracle-core/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func socketPath(t *testing.T, name string) string {
	t.Helper()
	return filepath.Join(t.TempDir(), name)
}

func newListener(t *testing.T) *control.Listener {
	t.Helper()
	l, err := control.Listen(socketPath(t, "gate"),
		control.WithPollInterval(50*time.Millisecond),
		control.WithReadTimeout(time.Second),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = l.Close() })
	return l
}

func send(t *testing.T, path, payload string) {
	t.Helper()
	conn, err := net.Dial("unix", path)
	require.NoError(t, err)
	_, err = conn.Write([]byte(payload))
	require.NoError(t, err)
	require.NoError(t, conn.Close())
}

func TestPoll_NoConnection(t *testing.T) {
	l := newListener(t)

	start := time.Now()
	assert.False(t, l.Poll(context.Background()))
	assert.Less(t, time.Since(start), time.Second, "Poll must not block beyond its interval")
}

func TestPoll_ReadAfterJunk(t *testing.T) {
	l := newListener(t)
	send(t, l.Path(), "junk\nread\n")

	assert.True(t, l.Poll(context.Background()))
	assert.False(t, l.Poll(context.Background()), "one connection triggers once")
}

func TestPoll_IgnoresNearMisses(t *testing.T) {
	for _, payload := range []string{"READ\n", " read\n", "read \n", "reading\n", "re\nad\n", ""} {
		t.Run(payload, func(t *testing.T) {
			l := newListener(t)
			send(t, l.Path(), payload)
			assert.False(t, l.Poll(context.Background()))
		})
	}
}

func TestPoll_LastLineWithoutNewline(t *testing.T) {
	l := newListener(t)
	send(t, l.Path(), "read")
	assert.True(t, l.Poll(context.Background()))
}

func TestPoll_CRLF(t *testing.T) {
	l := newListener(t)
	send(t, l.Path(), "read\r\n")
	assert.True(t, l.Poll(context.Background()))
}

func TestPoll_CanceledContext(t *testing.T) {
	l := newListener(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.False(t, l.Poll(ctx))
}

func TestListen_RemovesStaleSocket(t *testing.T) {
	path := socketPath(t, "gate")

	first, err := control.Listen(path)
	require.NoError(t, err)
	// Simulate a crash: the file stays, the listener is gone.
	first.Close()
	stale, err := net.ListenUnix("unix", &net.UnixAddr{Name: path, Net: "unix"})
	require.NoError(t, err)
	stale.SetUnlinkOnClose(false)
	stale.Close()

	second, err := control.Listen(path)
	require.NoError(t, err)
	defer second.Close()
}

func TestListen_BindFailure(t *testing.T) {
	_, err := control.Listen(filepath.Join(t.TempDir(), "missing", "dir", "gate"))
	assert.Error(t, err)
}

func TestPublish(t *testing.T) {
	path := socketPath(t, "out")
	r, err := control.NewReceiver(path)
	require.NoError(t, err)
	defer r.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	got := make(chan string, 1)
	go func() {
		msg, _ := r.Receive(ctx)
		got <- msg
	}()

	p := control.NewPublisher(path)
	require.NoError(t, p.Publish(ctx, "111010", "000101"))
	assert.Equal(t, "111010|000101", <-got)
}

func TestPublish_NoEndpoint(t *testing.T) {
	p := control.NewPublisher(socketPath(t, "absent"), control.WithWriteTimeout(100*time.Millisecond))
	assert.Error(t, p.Publish(context.Background(), "111010", "000101"))
}

func TestSendCommand(t *testing.T) {
	l := newListener(t)
	require.NoError(t, control.SendCommand(context.Background(), l.Path(), control.CommandRead))
	assert.True(t, l.Poll(context.Background()))
}

func TestParseResult(t *testing.T) {
	p, r, err := control.ParseResult("100101|001010")
	require.NoError(t, err)
	assert.Equal(t, domain.Hexagram("100101"), p)
	assert.Equal(t, domain.Hexagram("001010"), r)

	for _, bad := range []string{"100101", "100101|0010", "10010x|001010", "100101|001010\n"} {
		_, _, err := control.ParseResult(bad)
		assert.Error(t, err, bad)
	}
}

func TestReceive_Canceled(t *testing.T) {
	r, err := control.NewReceiver(socketPath(t, "out"))
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = r.Receive(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
