package coordinator

import (
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"picbrowse/internal/domain"
	"picbrowse/internal/ui/layout"
	"picbrowse/internal/ui/scheduler"
	"picbrowse/internal/ui/services/navigation"
)

// Status is the single line describing the selection, an error or ongoing work
type Status struct {
	Text    string
	Detail  string
	Spinner bool
	Error   bool
}

// Key names understood by HandleKey
const (
	KeyTab       = "Tab"
	KeyUp        = "Up"
	KeyDown      = "Down"
	KeyLeft      = "Left"
	KeyRight     = "Right"
	KeyPageUp    = "Page_Up"
	KeyPageDown  = "Page_Down"
	KeyHome      = "Home"
	KeyEnd       = "End"
	KeyBackSpace = "BackSpace"
	KeyEscape    = "Escape"
	KeySlash     = "slash"
	KeyReturn    = "Return"
)

var keyDirections = map[string]navigation.Direction{
	KeyUp:       navigation.DirectionUp,
	KeyDown:     navigation.DirectionDown,
	KeyLeft:     navigation.DirectionLeft,
	KeyRight:    navigation.DirectionRight,
	KeyPageUp:   navigation.DirectionPageUp,
	KeyPageDown: navigation.DirectionPageDown,
	KeyHome:     navigation.DirectionHome,
	KeyEnd:      navigation.DirectionEnd,
}

func insertKey(path string) scheduler.Key {
	return scheduler.Key("insert:" + path)
}

// inFolder reports whether a path belongs to the current folder
func (c *BrowserSession) inFolder(path string) bool {
	return strings.HasPrefix(path, c.folder)
}

// ChangeFolder clears everything and starts browsing another folder
func (c *BrowserSession) ChangeFolder(path string) {
	logrus.WithField("path", path).Info("session: changing folder")

	c.tasks.CancelAll()
	c.retries = make(map[string]int)
	c.store.Clear()
	c.Selection.Reset()
	c.Search.Reset()
	c.folder = path
	c.crumbs = nil
	c.totals = domain.Totals{}
	c.status = Status{}
	c.layoutScrollTop()
	c.reflow()
}

func (c *BrowserSession) layoutScrollTop() {
	c.layout.ScrollTo(domain.PaneItems, 0)
	c.layout.ScrollTo(domain.PaneFolders, 0)
}

// UpsertFolderListing replaces the items of each category and the breadcrumbs
func (c *BrowserSession) UpsertFolderListing(categories []domain.FolderCategory, crumbs []domain.Crumb) {
	if crumbs != nil {
		c.crumbs = crumbs
	}

	for _, cat := range categories {
		c.Groups.Ensure(domain.KindFolder, cat.Label, cat.NoLabels)
		c.Groups.Clear(cat.Label)

		for _, item := range cat.Items {
			name := item.Filename
			if name == "" {
				name = item.Label
			}
			e := &domain.Entry{
				Kind:        domain.KindFolder,
				Path:        item.Path,
				DisplayName: name,
				Label:       item.Label,
				Group:       cat.Label,
				Icon:        item.Icon,
				Selectable:  item.Path != "" && !item.NoFocus,
				Clickable:   item.Path != "" && item.NoFocus,
			}
			if item.Icon != "" {
				e.ThumbState = domain.ThumbLoaded
			}
			c.Search.Match(e)
			c.store.Upsert(e)
		}
		c.Groups.Recompute(domain.KindFolder, cat.Label)
	}

	c.reflow()
	c.repair(c.firstMatch)
	c.Viewport.Schedule(domain.PaneFolders)
}

// AddGroup appends an image group header
func (c *BrowserSession) AddGroup(label string) {
	c.Groups.Ensure(domain.KindImage, label, false)
	c.reflow()
}

// UpsertImage adds an image placeholder or updates an existing one
func (c *BrowserSession) UpsertImage(spec domain.ImageSpec) {
	if !c.inFolder(spec.Path) {
		logrus.WithFields(logrus.Fields{"path": spec.Path, "folder": c.folder}).Debug("session: image outside folder ignored")
		return
	}

	c.Groups.Ensure(domain.KindImage, spec.Group, false)

	e := c.store.Get(domain.KindImage, spec.Path)
	oldGroup := spec.Group
	if e == nil {
		e = &domain.Entry{Kind: domain.KindImage, Path: spec.Path, Selectable: true}
	} else {
		oldGroup = e.Group
	}
	e.DisplayName = spec.Name
	e.Group = spec.Group
	e.Caption = spec.Caption
	if spec.ThumbWidth > 0 {
		e.ThumbWidth = spec.ThumbWidth
	}
	switch {
	case spec.Thumb != "":
		e.Thumbnail = spec.Thumb
		e.ThumbState = domain.ThumbLoaded
	case !spec.Selected:
		// a bare placeholder for a known image means the file changed
		e.Thumbnail = ""
		e.ThumbState = domain.ThumbNone
	}
	c.Search.Match(e)
	c.store.Upsert(e)
	c.Groups.Recompute(domain.KindImage, spec.Group)
	if oldGroup != spec.Group {
		c.Groups.Recompute(domain.KindImage, oldGroup)
	}
	c.reflow()

	if spec.Selected && e.Navigable() {
		c.Selection.Adopt(e)
		c.showSelectedInfo()
		c.Navigation.ScheduleSettle()
	}

	c.repair(func() *domain.Entry { return c.Query.Successor(e, c.Selection.ActivePane()) })
	c.Viewport.Schedule(domain.PaneItems)
}

// SetThumbnail attaches a thumbnail to an image. When the placeholder does not
// exist yet the request is retried a bounded number of times.
func (c *BrowserSession) SetThumbnail(path, url string) {
	if !c.inFolder(path) {
		return
	}
	c.tasks.Cancel(insertKey(path))
	delete(c.retries, path)
	c.applyThumbnail(path, url)
}

func (c *BrowserSession) applyThumbnail(path, url string) {
	e := c.store.Get(domain.KindImage, path)
	if e != nil {
		delete(c.retries, path)
		e.Thumbnail = url
		e.ThumbState = domain.ThumbLoaded
		c.reflow()
		return
	}

	attempt := c.retries[path] + 1
	if attempt > c.opts.InsertRetryLimit {
		delete(c.retries, path)
		logrus.WithFields(logrus.Fields{"path": path, "attempts": c.opts.InsertRetryLimit}).Warn("session: thumbnail target never appeared, dropping")
		return
	}
	c.retries[path] = attempt
	c.tasks.Schedule(insertKey(path), c.opts.InsertRetry, func() {
		c.applyThumbnail(path, url)
	})
}

// SetFolderThumbnail sets the icon of a folder entry
func (c *BrowserSession) SetFolderThumbnail(path, url string) {
	e := c.store.Get(domain.KindFolder, path)
	if e == nil {
		logrus.WithField("path", path).Debug("session: folder thumbnail for unknown folder")
		return
	}
	e.Icon = url
	e.ThumbState = domain.ThumbLoaded
}

// RemoveEntry removes an image, or a folder when no image has the path. A
// removed selection moves to its successor first.
func (c *BrowserSession) RemoveEntry(path string) {
	kind := domain.KindImage
	e := c.store.Get(kind, path)
	if e == nil {
		kind = domain.KindFolder
		e = c.store.Get(kind, path)
	}
	if e == nil {
		return
	}

	var next *domain.Entry
	ref := c.Selection.CurrentRef()
	wasSelected := ref != nil && ref.Kind == kind && ref.Path == path
	if wasSelected {
		next = c.Query.Successor(e, c.Selection.ActivePane())
	}

	c.tasks.Cancel(insertKey(path))
	c.store.Remove(kind, path)
	c.Groups.Recompute(kind, e.Group)
	c.reflow()

	if wasSelected {
		c.repair(func() *domain.Entry { return next })
	}
	c.Viewport.Schedule(domain.PaneOf(kind))
}

// SetEntryMetadata stores the host-reported details of an image
func (c *BrowserSession) SetEntryMetadata(path string, info domain.EntryInfo) {
	e := c.store.Get(domain.KindImage, path)
	if e == nil {
		return
	}
	if info.Filename != "" {
		e.DisplayName = info.Filename
	}
	e.Dimensions = info.Dimensions
	if info.ThumbWidth > 0 {
		e.ThumbWidth = info.ThumbWidth
	}
	if info.Fields != nil {
		e.Metadata = info.Fields
	}
	c.Search.Match(e)
	c.Groups.Recompute(domain.KindImage, e.Group)
	c.reflow()

	if cur := c.Selection.Current(); cur == e {
		c.showSelectedInfo()
	}
	c.repair(func() *domain.Entry { return c.Query.Successor(e, c.Selection.ActivePane()) })
}

// SetEntryCount records the folder totals; the count drives progress
func (c *BrowserSession) SetEntryCount(totals domain.Totals) {
	c.totals = totals
	c.store.SetExpectedCount(totals.Count)
}

func (c *BrowserSession) SetMode(mode domain.Mode) {
	c.mode = mode
	if mode == domain.ModeFolder {
		if e := c.Selection.Current(); e != nil {
			c.Navigation.ScrollIntoView(e)
		}
	}
}

func (c *BrowserSession) SetSubmode(submode domain.Submode) {
	c.submode = submode
}

func (c *BrowserSession) SetThumbHeight(px int) {
	if px <= 0 {
		return
	}
	c.Navigation.SetThumbHeight(px)
	if ts, ok := c.layout.(layout.ThumbHeightSetter); ok {
		ts.SetThumbHeight(px)
	}
	c.reflow()
	c.Viewport.Schedule(domain.PaneItems)
}

func (c *BrowserSession) ShowError(text string) {
	c.status = Status{Text: text, Error: true}
}

func (c *BrowserSession) ShowSpinner(text string) {
	c.status = Status{Text: text, Spinner: true}
}

// SetSearchVisibility shows or hides the search field. Hiding it clears the
// query; showing it may pre-fill one.
func (c *BrowserSession) SetSearchVisibility(visible bool, opts domain.SearchOptions) {
	c.Search.SetVisible(visible)
	if visible {
		if opts.Query != "" {
			c.SetQuery(opts.Query)
		}
		return
	}
	c.SetQuery("")
}

// SetQuery applies search text typed by the user
func (c *BrowserSession) SetQuery(text string) {
	if !c.Search.SetQuery(text) {
		return
	}
	c.reflow()

	if c.Selection.Current() == nil || !c.Selection.Valid() {
		if e := c.firstMatch(); e != nil {
			c.Selection.SelectEntry(e, true)
		} else if c.Selection.CurrentRef() != nil {
			c.Selection.Clear()
		}
	} else if e := c.Selection.Current(); e != nil {
		c.Navigation.ScrollIntoView(e)
	}

	c.Navigation.ScheduleSettle()
	c.Viewport.ScheduleAll()
}

// HandleKey interprets a key name. In image mode, and for keys the browser
// does not handle, the key goes back to the host.
func (c *BrowserSession) HandleKey(key string) {
	if c.mode != domain.ModeFolder {
		c.forwardKey(key)
		return
	}

	if dir, ok := keyDirections[key]; ok {
		c.Navigation.Navigate(dir)
		return
	}

	switch key {
	case KeyTab:
		pane := c.Selection.ActivePane()
		if cur := c.Selection.Current(); cur != nil {
			pane = cur.Pane()
		}
		c.Selection.SwitchPane(pane.Other())
	case KeySlash:
		c.SetSearchVisibility(true, domain.SearchOptions{})
	case KeyEscape:
		if c.Search.IsVisible() {
			c.SetSearchVisibility(false, domain.SearchOptions{})
			return
		}
		c.forwardKey(key)
	case KeyReturn:
		if cur := c.Selection.Current(); cur != nil {
			c.Activate(cur.Path)
			return
		}
		c.forwardKey(key)
	default:
		c.forwardKey(key)
	}
}

func (c *BrowserSession) forwardKey(key string) {
	c.notifier.Publish(domain.NavigationRequestedEvent{Key: key})
}

// Activate opens an entry or breadcrumb, as a click does. Only folder mode reacts.
func (c *BrowserSession) Activate(path string) {
	if c.mode != domain.ModeFolder || path == "" {
		return
	}
	if !c.activatable(path) {
		logrus.WithField("path", path).Debug("session: nothing to activate")
		return
	}
	c.notifier.Publish(domain.FolderEnteredEvent{Path: path})
}

func (c *BrowserSession) activatable(path string) bool {
	for _, kind := range []domain.EntryKind{domain.KindImage, domain.KindFolder} {
		if e := c.store.Get(kind, path); e != nil && (e.Selectable || e.Clickable) {
			return true
		}
	}
	for _, crumb := range c.crumbs {
		if crumb.Path == path {
			return true
		}
	}
	return false
}

// Scrolled records a scroll performed by the renderer
func (c *BrowserSession) Scrolled(pane domain.Pane, top int) {
	c.layout.ScrollTo(pane, top)
	c.Viewport.Schedule(pane)
}

// ScrollBy scrolls a pane relative to its current offset
func (c *BrowserSession) ScrollBy(pane domain.Pane, delta int) {
	c.Scrolled(pane, c.layout.Viewport(pane).Top+delta)
}

// Resize applies a new browser size reported by the host
func (c *BrowserSession) Resize(width, height int) {
	if sz, ok := c.layout.(layout.Sizer); ok && width > 0 && height > 0 {
		sz.SetSize(width, height)
	}
	c.Resized()
}

// Resized re-evaluates both surfaces and keeps the selection in view
func (c *BrowserSession) Resized() {
	c.reflow()
	if e := c.Selection.Current(); e != nil {
		c.Navigation.ScrollIntoView(e)
	}
	c.Viewport.ScheduleAll()
}

// SetCaptions toggles captions and selects the matching toggle command entry
func (c *BrowserSession) SetCaptions(visible bool) {
	c.showCaptions = visible
	c.Selection.Select(domain.CommandPrefix + "captions:" + strconv.FormatBool(!visible))
}

func (c *BrowserSession) showSelectedInfo() {
	e := c.Selection.Current()
	if e == nil {
		c.status = Status{}
		return
	}
	c.status = Status{Text: e.Title(), Detail: e.Dimensions}
}
