package coordinator

import (
	"picbrowse/internal/domain"
	"picbrowse/internal/logic"
	"picbrowse/internal/ui/layout"
	"picbrowse/internal/ui/scheduler"
	"picbrowse/internal/ui/services/events"
)

func (c *BrowserSession) Folder() string         { return c.folder }
func (c *BrowserSession) Mode() domain.Mode       { return c.mode }
func (c *BrowserSession) Submode() domain.Submode { return c.submode }
func (c *BrowserSession) Crumbs() []domain.Crumb  { return c.crumbs }
func (c *BrowserSession) Totals() domain.Totals   { return c.totals }
func (c *BrowserSession) Status() Status          { return c.status }
func (c *BrowserSession) ShowCaptions() bool      { return c.showCaptions }

// Progress is the loading percentage shown while thumbnails arrive
func (c *BrowserSession) Progress() int {
	return c.store.Progress()
}

func (c *BrowserSession) Store() logic.EntryStore {
	return c.store
}

func (c *BrowserSession) Layout() layout.LayoutQuery {
	return c.layout
}

// Tasks exposes the scheduler so a loop can deliver timer firings
func (c *BrowserSession) Tasks() *scheduler.Tasks {
	return c.tasks
}

// Events returns the internal service bus, for renderers that react to
// pane switches or search visibility
func (c *BrowserSession) Events() events.EventBus {
	return c.bus
}
