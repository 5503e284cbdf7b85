package host

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"

	"picbrowse/internal/discovery"
	"picbrowse/internal/ui/commands"
)

// watch keeps the browser in step with changes to the open folder
func (h *Host) watch(ctx context.Context) {
	defer close(h.done)

	for {
		select {
		case event, ok := <-h.watcher.Events:
			if !ok {
				return
			}
			h.apply(event)
		case err, ok := <-h.watcher.Errors:
			if !ok {
				return
			}
			logrus.WithError(err).Error("host: fsnotify watcher error")
		case <-ctx.Done():
			return
		}
	}
}

// apply turns one file system event into browser commands
func (h *Host) apply(event fsnotify.Event) {
	h.mu.Lock()
	listing := h.listing
	if listing == nil || filepath.Dir(event.Name) != listing.Folder {
		h.mu.Unlock()
		return
	}

	var emit func()
	switch {
	case event.Op.Has(fsnotify.Create) || event.Op.Has(fsnotify.Write):
		f, ok := h.lister.Stat(event.Name)
		if !ok {
			break
		}
		h.lister.Upsert(listing, f)
		if f.IsDir {
			snap := snapshot(listing)
			emit = func() { h.emitFolders(snap) }
		} else {
			emit = func() {
				if g := h.lister.GroupOf(f); g != "" {
					h.emit(commands.VerbGroup, g)
				}
				h.emitImage(f, false)
			}
		}
	case event.Op.Has(fsnotify.Remove) || event.Op.Has(fsnotify.Rename):
		f, ok := h.lister.Remove(listing, event.Name)
		if !ok {
			break
		}
		if f.IsDir {
			snap := snapshot(listing)
			emit = func() { h.emitFolders(snap) }
		} else {
			emit = func() { h.emit(commands.VerbRemove, f.Path) }
		}
	}
	totals := listing.Totals
	h.mu.Unlock()

	if emit == nil {
		return
	}
	logrus.WithFields(logrus.Fields{
		"path": event.Name,
		"op":   event.Op.String(),
	}).Debug("host: folder changed")

	emit()
	h.emit(commands.VerbCount, totals)
}

// snapshot copies a listing for use outside the lock
func snapshot(l *discovery.Listing) *discovery.Listing {
	c := *l
	c.Folders = append([]discovery.File(nil), l.Folders...)
	c.Images = append([]discovery.File(nil), l.Images...)
	return &c
}
