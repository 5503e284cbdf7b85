package channel

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"picbrowse/internal/config"
)

func TestLoopAppliesLinesAndWritesNotifications(t *testing.T) {
	var out bytes.Buffer
	loop := NewLoop(config.DefaultConfig(), &out)

	in := strings.Join([]string{
		"change-folder:/f",
		"mode:folder",
		`image:{"path":"/f/a.jpg","name":"a.jpg"}`,
		`image:{"path":"/f/b.jpg","name":"b.jpg"}`,
		"garbage",
		"key:Down",
		"key:Right",
		"key:x",
		"search:b",
	}, "\n")

	require.NoError(t, loop.Run(context.Background(), strings.NewReader(in)))

	assert.Equal(t, []string{
		"select:/f/a.jpg",
		"select:/f/b.jpg",
		"handle-key:x",
		"search:b",
	}, strings.Split(strings.TrimSpace(out.String()), "\n"))
}

func TestLoopDeliversPriorityAfterSettle(t *testing.T) {
	inR, inW := io.Pipe()
	outR, outW := io.Pipe()
	loop := NewLoop(config.DefaultConfig(), outW)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- loop.Run(ctx, inR) }()

	go func() {
		fmt.Fprintln(inW, "change-folder:/f")
		fmt.Fprintln(inW, `image:{"path":"/f/a.jpg","name":"a.jpg"}`)
	}()

	found := make(chan string, 1)
	go func() {
		scanner := bufio.NewScanner(outR)
		for scanner.Scan() {
			if strings.HasPrefix(scanner.Text(), "priority:") {
				found <- scanner.Text()
				return
			}
		}
	}()

	select {
	case line := <-found:
		assert.Equal(t, `priority:["/f/a.jpg"]`, line)
	case <-time.After(5 * time.Second):
		t.Fatal("no priority request")
	}

	cancel()
	_ = outR.Close()
	_ = inW.Close()
	require.NoError(t, <-done)
}

func TestLoopAppliesInjectedLines(t *testing.T) {
	inR, inW := io.Pipe()
	var out syncBuffer
	loop := NewLoop(config.DefaultConfig(), &out)

	done := make(chan error, 1)
	go func() { done <- loop.Run(context.Background(), inR) }()

	loop.Send("change-folder:/f")
	loop.Send(`image:{"path":"/f/a.jpg","name":"a.jpg"}`)
	loop.Send("key:x")
	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "handle-key:x")
	}, 5*time.Second, 10*time.Millisecond)

	require.NoError(t, inW.Close())
	require.NoError(t, <-done)

	// dropped once the loop is gone
	loop.Send("key:y")
}

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}
