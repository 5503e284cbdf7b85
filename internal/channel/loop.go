package channel

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/sirupsen/logrus"

	"picbrowse/internal/config"
	"picbrowse/internal/eventbus"
	"picbrowse/internal/logic"
	"picbrowse/internal/ui/commands"
	"picbrowse/internal/ui/coordinator"
	"picbrowse/internal/ui/layout"
	"picbrowse/internal/ui/scheduler"
)

// maxLine bounds one inbound command; folder listings can be large
const maxLine = 4 * 1024 * 1024

// Outbound lists the notifications written back to the host
var Outbound = []eventbus.EventType{
	eventbus.EventSelectionChanged,
	eventbus.EventSearchChanged,
	eventbus.EventPriorityRequested,
	eventbus.EventNavigationRequested,
	eventbus.EventFolderEntered,
}

// Loop runs a browser session without a terminal: host commands arrive as
// lines on an input stream and notifications leave as lines on an output
// stream. Only the goroutine inside Run touches the session.
type Loop struct {
	session  *coordinator.BrowserSession
	executor *commands.Executor
	timer    *scheduler.ChannelTimer
	bus      eventbus.EventBus
	inject   chan string
	done     chan struct{}

	mu  sync.Mutex
	out io.Writer
}

// NewLoop creates a loop writing notifications to out
func NewLoop(cfg *config.Config, out io.Writer) *Loop {
	store := logic.NewMemoryEntryStore()
	srv := cfg.Serve
	grid := layout.NewGrid(store,
		layout.Surface{
			Width:         srv.Width - srv.FoldersWidth,
			Height:        srv.Height,
			TileWidth:     cfg.ThumbHeight,
			TileHeight:    cfg.ThumbHeight,
			GapX:          srv.TileGap,
			GapY:          srv.TileGap,
			HeaderHeight:  srv.HeaderHeight,
			UseThumbWidth: true,
		},
		layout.Surface{
			Width:        srv.FoldersWidth,
			Height:       srv.Height,
			TileHeight:   srv.FolderHeight,
			HeaderHeight: srv.HeaderHeight,
		},
	)

	timer := scheduler.NewChannelTimer()
	bus := eventbus.New()
	session := coordinator.NewBrowserSession(store, grid, scheduler.New(timer), bus, coordinator.OptionsFromConfig(cfg))

	l := &Loop{
		session:  session,
		executor: commands.NewExecutor(session),
		timer:    timer,
		bus:      bus,
		inject:   make(chan string, 256),
		done:     make(chan struct{}),
		out:      out,
	}
	for _, t := range Outbound {
		bus.Subscribe(t, l.write)
	}
	return l
}

// Bus returns the notification bus, for additional subscribers
func (l *Loop) Bus() eventbus.EventBus {
	return l.bus
}

// Send queues a command line from inside the process, such as a local host.
// It is safe for concurrent use. Lines sent after Run returned are dropped.
func (l *Loop) Send(line string) {
	select {
	case l.inject <- line:
	case <-l.done:
	}
}

// Run applies commands read from in until it is exhausted or ctx ends.
// Notifications still queued are written before Run returns.
func (l *Loop) Run(ctx context.Context, in io.Reader) error {
	defer l.bus.Close()
	defer close(l.done)
	defer l.timer.Stop()

	lines := make(chan string)
	readErr := make(chan error, 1)
	go func() {
		readErr <- scan(ctx, in, lines)
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case line := <-lines:
			_ = l.executor.Execute(line)
		case line := <-l.inject:
			_ = l.executor.Execute(line)
		case f := <-l.timer.C():
			l.session.Tasks().Fire(f.Key, f.Gen)
		case err := <-readErr:
			if err != nil {
				return fmt.Errorf("failed to read commands: %w", err)
			}
			logrus.Info("channel: input closed")
			return nil
		}
	}
}

func scan(ctx context.Context, in io.Reader, lines chan<- string) error {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 64*1024), maxLine)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		select {
		case lines <- line:
		case <-ctx.Done():
			return nil
		}
	}
	return scanner.Err()
}

func (l *Loop) write(event eventbus.DomainEvent) {
	line, err := commands.Encode(event)
	if err != nil {
		logrus.WithError(err).Warn("channel: cannot encode notification")
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if _, err := fmt.Fprintln(l.out, line); err != nil {
		logrus.WithError(err).WithField("event", event.Type()).Warn("channel: cannot write notification")
	}
}
