package input

import (
	"picbrowse/internal/domain"
	"picbrowse/internal/ui/coordinator"
)

// SessionContext implements the Context interface on top of a browser session
type SessionContext struct {
	Session *coordinator.BrowserSession
}

func (c *SessionContext) FolderMode() bool {
	return c.Session.Mode() == domain.ModeFolder
}

func (c *SessionContext) SearchVisible() bool {
	return c.Session.Search.IsVisible()
}

func (c *SessionContext) Query() string {
	return c.Session.Search.GetQuery()
}

func (c *SessionContext) HasSelection() bool {
	return c.Session.Selection.Current() != nil
}
