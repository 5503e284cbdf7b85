package host

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"

	"picbrowse/internal/config"
	"picbrowse/internal/discovery"
	"picbrowse/internal/domain"
	"picbrowse/internal/eventbus"
	"picbrowse/internal/thumbs"
	"picbrowse/internal/ui/commands"
)

// Sender delivers one command line to the loop that owns the browser
type Sender func(line string)

// Category labels of the folder pane
const (
	CategoryGo      = "Go"
	CategoryFolders = "Folders"
)

// Host is a minimal local host: it lists a folder, answers thumbnail
// requests by probing image files and follows the user into folders.
type Host struct {
	lister  *discovery.Service
	prober  *thumbs.Prober
	send    Sender
	watcher *fsnotify.Watcher

	mu       sync.Mutex
	ctx      context.Context
	cancel   context.CancelFunc // in-flight work for the current folder
	listing  *discovery.Listing
	mode     domain.Mode
	current  int // image shown in image mode
	captions bool
	done     chan struct{}
}

// New creates a host for the configured patterns
func New(cfg *config.Config, send Sender) (*Host, error) {
	lister, err := discovery.NewService(discovery.Options{
		ImagePatterns:  cfg.Host.ImagePatterns,
		IgnorePatterns: cfg.Host.IgnorePatterns,
		ShowHidden:     cfg.Host.ShowHidden,
		Sort:           discovery.ParseSortMode(cfg.Host.Sort),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create host: %w", err)
	}

	return &Host{
		lister:   lister,
		prober:   thumbs.NewProber(cfg.Host.ProbeWorkers, lister),
		send:     send,
		ctx:      context.Background(),
		cancel:   func() {},
		mode:     domain.ModeFolder,
		captions: cfg.ShowCaptions,
	}, nil
}

// Attach subscribes the host to the browser's notifications
func (h *Host) Attach(bus eventbus.EventBus) {
	bus.Subscribe(eventbus.EventFolderEntered, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.FolderEnteredEvent); ok {
			h.activate(event.Path)
		}
	})
	bus.Subscribe(eventbus.EventPriorityRequested, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.PriorityRequestedEvent); ok {
			h.prioritize(event.Kind, event.Paths)
		}
	})
	bus.Subscribe(eventbus.EventNavigationRequested, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.NavigationRequestedEvent); ok {
			h.handleKey(event.Key)
		}
	})
}

// Start watches for changes and opens the first folder in the background
func (h *Host) Start(ctx context.Context, dir string) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	h.watcher = w
	h.done = make(chan struct{})
	go h.watch(ctx)

	go func() {
		if err := h.Open(ctx, dir); err != nil {
			logrus.WithError(err).WithField("path", dir).Error("host: cannot open start folder")
		}
	}()
	return nil
}

// Close stops watching
func (h *Host) Close() error {
	h.mu.Lock()
	h.cancel()
	h.mu.Unlock()

	if h.watcher == nil {
		return nil
	}
	err := h.watcher.Close()
	<-h.done
	return err
}

// Open lists a folder and replaces the browser content with it
func (h *Host) Open(ctx context.Context, dir string) error {
	h.emit(commands.VerbSpinner, "Opening "+filepath.Base(dir))

	listing, err := h.lister.List(ctx, dir)
	if err != nil {
		h.emit(commands.VerbError, fmt.Sprintf("Cannot open %s", dir))
		return err
	}

	h.mu.Lock()
	h.cancel()
	previous := h.listing
	h.ctx, h.cancel = context.WithCancel(ctx)
	h.listing = listing
	h.mode = domain.ModeFolder
	h.current = -1
	shown := snapshot(listing)
	h.mu.Unlock()

	if h.watcher != nil {
		if previous != nil {
			_ = h.watcher.Remove(previous.Folder)
		}
		if err := h.watcher.Add(listing.Folder); err != nil {
			logrus.WithError(err).WithField("path", listing.Folder).Warn("host: cannot watch folder")
		}
	}

	h.emit(commands.VerbChangeFolder, shown.Folder)
	h.emit(commands.VerbMode, string(domain.ModeFolder))
	h.emitFolders(shown)
	for _, g := range h.lister.Groups(shown) {
		if g != "" {
			h.emit(commands.VerbGroup, g)
		}
	}
	for _, f := range shown.Images {
		h.emitImage(f, false)
	}
	h.emit(commands.VerbCount, shown.Totals)
	return nil
}

// categories builds the folder pane: navigation commands first, then subfolders
func (h *Host) categories(l *discovery.Listing) []domain.FolderCategory {
	h.mu.Lock()
	captions := h.captions
	h.mu.Unlock()

	var nav []domain.FolderItem
	if parent := filepath.Dir(l.Folder); parent != l.Folder {
		nav = append(nav, domain.FolderItem{Label: "..", Path: domain.CommandPrefix + "up"})
	}
	toggle := domain.FolderItem{Label: "Show captions", Path: domain.CommandPrefix + "captions:true"}
	if captions {
		toggle = domain.FolderItem{Label: "Hide captions", Path: domain.CommandPrefix + "captions:false"}
	}
	nav = append(nav, toggle)

	folders := make([]domain.FolderItem, 0, len(l.Folders))
	for _, f := range l.Folders {
		folders = append(folders, domain.FolderItem{Label: f.Name, Path: f.Path, Filename: f.Name})
	}

	return []domain.FolderCategory{
		{Label: CategoryGo, NoLabels: true, Items: nav},
		{Label: CategoryFolders, Items: folders},
	}
}

func (h *Host) emitFolders(l *discovery.Listing) {
	h.emit(commands.VerbFolders, struct {
		Categories []domain.FolderCategory `json:"categories"`
		Crumbs     []domain.Crumb          `json:"crumbs"`
	}{h.categories(l), l.Crumbs})
}

func (h *Host) emitImage(f discovery.File, selected bool) {
	h.emit(commands.VerbImage, domain.ImageSpec{
		Path:     f.Path,
		Name:     f.Name,
		Selected: selected,
		Caption:  true,
		Group:    h.lister.GroupOf(f),
	})
}

func (h *Host) emit(verb string, payload interface{}) {
	line, err := commands.Format(verb, payload)
	if err != nil {
		logrus.WithError(err).WithField("verb", verb).Error("host: cannot format command")
		return
	}
	h.send(line)
}

// activate follows an opened folder, image or command entry
func (h *Host) activate(path string) {
	h.mu.Lock()
	if h.listing == nil {
		h.mu.Unlock()
		return
	}
	listing := snapshot(h.listing)
	h.mu.Unlock()

	if payload := (&domain.Entry{Path: path}).CommandPayload(); payload != "" {
		h.runCommand(listing, payload)
		return
	}

	for i, f := range listing.Images {
		if f.Path == path {
			h.showImage(i)
			return
		}
	}

	go func() {
		if err := h.Open(context.Background(), path); err != nil {
			logrus.WithError(err).WithField("path", path).Warn("host: cannot open folder")
		}
	}()
}

func (h *Host) runCommand(listing *discovery.Listing, payload string) {
	arg, isCaptions := strings.CutPrefix(payload, "captions:")
	switch {
	case payload == "up":
		h.openParent(listing)
	case isCaptions:
		visible, err := strconv.ParseBool(arg)
		if err != nil {
			logrus.WithField("command", payload).Warn("host: bad captions command")
			return
		}
		h.mu.Lock()
		h.captions = visible
		h.mu.Unlock()
		h.emitFolders(listing)
		h.emit(commands.VerbCaptions, strconv.FormatBool(visible))
	default:
		logrus.WithField("command", payload).Debug("host: unknown command entry")
	}
}

func (h *Host) openParent(listing *discovery.Listing) {
	parent := filepath.Dir(listing.Folder)
	if parent == listing.Folder {
		return
	}
	go func() {
		if err := h.Open(context.Background(), parent); err != nil {
			logrus.WithError(err).WithField("path", parent).Warn("host: cannot open parent folder")
		}
	}()
}

// showImage switches to image mode on the i-th image of the listing
func (h *Host) showImage(i int) {
	h.mu.Lock()
	listing := h.listing
	if listing == nil || i < 0 || i >= len(listing.Images) {
		h.mu.Unlock()
		return
	}
	h.current = i
	h.mode = domain.ModeImage
	f := listing.Images[i]
	h.mu.Unlock()

	h.emitImage(f, true)
	h.emit(commands.VerbMode, string(domain.ModeImage))
}

// handleKey reacts to keys the browser handed back
func (h *Host) handleKey(key string) {
	h.mu.Lock()
	if h.listing == nil {
		h.mu.Unlock()
		return
	}
	mode, listing, current := h.mode, snapshot(h.listing), h.current
	h.mu.Unlock()

	if mode == domain.ModeImage {
		switch key {
		case "Escape", "BackSpace", "Return":
			h.mu.Lock()
			h.mode = domain.ModeFolder
			h.mu.Unlock()
			h.emit(commands.VerbMode, string(domain.ModeFolder))
		case "Left", "Up", "Page_Up":
			h.showImage(current - 1)
		case "Right", "Down", "Page_Down", "space":
			h.showImage(current + 1)
		case "Home":
			h.showImage(0)
		case "End":
			h.showImage(len(listing.Images) - 1)
		}
		return
	}

	switch key {
	case "BackSpace":
		h.openParent(listing)
	default:
		logrus.WithField("key", key).Debug("host: key ignored")
	}
}

// prioritize probes the requested entries in the background
func (h *Host) prioritize(kind domain.EntryKind, paths []string) {
	h.mu.Lock()
	ctx := h.ctx
	h.mu.Unlock()

	if kind == domain.KindFolder {
		go func() {
			for _, p := range paths {
				if ctx.Err() != nil {
					return
				}
				h.emit(commands.VerbFolderThumb, thumbPayload{Path: p, Thumb: h.prober.FolderIcon(ctx, p)})
			}
		}()
		return
	}

	go func() {
		err := h.prober.Probe(ctx, paths, func(r thumbs.Result) {
			if r.Err != nil {
				logrus.WithError(r.Err).WithField("path", r.Path).Debug("host: probe failed")
				return
			}
			h.emit(commands.VerbThumb, thumbPayload{Path: r.Path, Thumb: r.Thumb})
			h.emit(commands.VerbInfo, infoPayload{Path: r.Path, EntryInfo: r.Info})
		})
		if err != nil && ctx.Err() == nil {
			logrus.WithError(err).Warn("host: probing stopped")
		}
	}()
}

type thumbPayload struct {
	Path  string `json:"path"`
	Thumb string `json:"thumb"`
}

type infoPayload struct {
	Path string `json:"path"`
	domain.EntryInfo
}
