package ui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"picbrowse/internal/config"
	"picbrowse/internal/domain"
	"picbrowse/internal/logic"
	"picbrowse/internal/ui/commands"
	"picbrowse/internal/ui/coordinator"
	"picbrowse/internal/ui/input"
	inputtypes "picbrowse/internal/ui/input/types"
	"picbrowse/internal/ui/layout"
	"picbrowse/internal/ui/scheduler"
	"picbrowse/internal/ui/views"
)

// wheelStep is the number of rows one mouse wheel notch scrolls
const wheelStep = 3

// Model is the terminal frontend. It owns the browser session and is the
// only goroutine that touches it.
type Model struct {
	config *config.Config

	session  *coordinator.BrowserSession
	grid     *layout.Grid
	timer    *teaTimer
	executor *commands.Executor

	// UI-specific state
	width       int
	height      int
	help        help.Model
	spinner     spinner.Model
	inPagerMode bool
	searchShown bool // search visibility at the last sync

	inputHandler *input.Handler
	context      *input.SessionContext
	renderer     *views.Renderer
	helpRenderer *HelpRenderer
	pager        *Pager
}

// NewModel creates the terminal browser. Notifications for the host go to notifier.
func NewModel(cfg *config.Config, notifier coordinator.Notifier) *Model {
	store := logic.NewMemoryEntryStore()
	grid := layout.NewGrid(store,
		layout.Surface{
			TileWidth:    cfg.Terminal.TileWidth,
			TileHeight:   cfg.Terminal.TileHeight,
			InlineWidth:  cfg.Terminal.TileWidth,
			GapX:         1,
			GapY:         1,
			HeaderHeight: 1,
		},
		layout.Surface{
			Width:        cfg.Terminal.FoldersWidth,
			TileHeight:   1,
			HeaderHeight: 1,
		},
	)
	timer := &teaTimer{}

	// geometry is in cells here, so the pixel defaults do not apply
	opts := coordinator.OptionsFromConfig(cfg)
	opts.ThumbHeight = cfg.Terminal.TileHeight
	opts.FolderMargin = 1
	opts.Lookahead = 2 * (cfg.Terminal.TileHeight + 1)

	session := coordinator.NewBrowserSession(store, grid, scheduler.New(timer), notifier, opts)

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return &Model{
		config:       cfg,
		session:      session,
		grid:         grid,
		timer:        timer,
		executor:     commands.NewExecutor(session),
		help:         help.New(),
		spinner:      sp,
		inputHandler: input.New(),
		context:      &input.SessionContext{Session: session},
		renderer:     views.NewRenderer(),
		helpRenderer: NewHelpRenderer(),
		pager:        NewPager(),
	}
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.pager.SetProgram(p)
}

// Session exposes the browser session, for tests
func (m *Model) Session() *coordinator.BrowserSession {
	return m.session
}

// Init returns an initial command
func (m *Model) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd := m.update(msg)
	m.syncInput()
	return m, tea.Batch(cmd, m.timer.Drain())
}

func (m *Model) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.resize()
		return nil

	case tea.KeyMsg:
		actions, cmd := m.inputHandler.HandleKey(msg, m.context)
		cmds := []tea.Cmd{cmd}
		for _, action := range actions {
			cmds = append(cmds, m.processAction(action))
		}
		return tea.Batch(cmds...)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case CommandMsg:
		_ = m.executor.Execute(msg.Line)
		return nil

	case timerMsg:
		m.session.Tasks().Fire(msg.key, msg.gen)
		return nil

	case spinner.TickMsg:
		if m.inPagerMode {
			return nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return cmd

	case pagerMsg:
		if msg.err != nil {
			logrus.WithError(msg.err).WithField("pager", msg.what).Warn("ui: pager failed")
		}
		return nil

	case pauseRenderingMsg:
		m.inPagerMode = true
		return nil

	case resumeRenderingMsg:
		m.inPagerMode = false
		return m.spinner.Tick
	}

	return m.inputHandler.Update(msg)
}

// processAction processes an action from the input handler
func (m *Model) processAction(action inputtypes.Action) tea.Cmd {
	switch a := action.(type) {
	case inputtypes.KeyAction:
		m.session.HandleKey(a.Name)
	case inputtypes.UpdateTextAction:
		m.session.SetQuery(a.Text)
	case inputtypes.SubmitTextAction:
		// the query is already applied; focus returns to the panes
	case inputtypes.CancelTextAction:
		m.session.HandleKey(coordinator.KeyEscape)
	case inputtypes.ScrollAction:
		pane := domain.PaneItems
		if a.Folders {
			pane = domain.PaneFolders
		}
		m.session.ScrollBy(pane, a.Delta)
	case inputtypes.ToggleCaptionsAction:
		m.session.SetCaptions(!m.session.ShowCaptions())
	case inputtypes.InspectAction:
		if e := m.session.Selection.Current(); e != nil {
			return m.showPager("metadata", m.helpRenderer.RenderMetadata(e))
		}
	case inputtypes.ToggleHelpAction:
		return m.showPager("help", m.helpRenderer.RenderHelpContent())
	case inputtypes.QuitAction:
		return tea.Quit
	}
	return nil
}

// showPager returns a command that shows content in the ov pager
func (m *Model) showPager(what, content string) tea.Cmd {
	program := m.pager.program
	return func() tea.Msg {
		if program != nil {
			program.Send(pauseRenderingMsg{})
			defer program.Send(resumeRenderingMsg{})
		}
		return pagerMsg{what: what, err: m.pager.Show(content)}
	}
}

func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	folders := msg.X < m.grid.Surface(domain.PaneFolders).Width

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		return m.processAction(inputtypes.ScrollAction{Folders: folders, Delta: -wheelStep})
	case tea.MouseButtonWheelDown:
		return m.processAction(inputtypes.ScrollAction{Folders: folders, Delta: wheelStep})
	case tea.MouseButtonLeft:
		if msg.Action != tea.MouseActionPress {
			return nil
		}
		if e := m.hitTest(msg.X, msg.Y); e != nil {
			m.session.Selection.SelectEntry(e, false)
			m.session.Activate(e.Path)
		}
	}
	return nil
}

// hitTest finds the entry drawn at a screen cell
func (m *Model) hitTest(x, y int) *domain.Entry {
	row := y - 1 // title
	if row < 0 {
		return nil
	}

	pane := domain.PaneItems
	fw := m.grid.Surface(domain.PaneFolders).Width
	if x < fw {
		pane = domain.PaneFolders
	} else {
		x -= fw + 1 // separator
	}

	cy := row + m.grid.Viewport(pane).Top
	for _, p := range m.grid.Placements(pane) {
		r := p.Rect
		if p.Entry != nil && x >= r.X && x < r.X+r.W && cy >= r.Y && cy < r.Bottom() {
			return p.Entry
		}
	}
	return nil
}

// resize hands the space left by the chrome to the panes
func (m *Model) resize() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	body := m.height - views.ChromeHeight(m.session.Search.IsVisible())
	m.session.Resize(m.width-1, body)
}

// syncInput follows search visibility changes made by the host
func (m *Model) syncInput() {
	visible := m.session.Search.IsVisible() && m.session.Mode() == domain.ModeFolder
	if visible == m.searchShown {
		return
	}
	m.searchShown = visible

	switch {
	case visible && m.inputHandler.CurrentMode() != inputtypes.ModeSearch:
		m.inputHandler.ChangeMode(inputtypes.ModeSearch, m.session.Search.GetQuery())
	case !visible && m.inputHandler.CurrentMode() == inputtypes.ModeSearch:
		m.inputHandler.Reset()
	}
	m.resize()
}

// View renders the UI
func (m *Model) View() string {
	if m.inPagerMode {
		return ""
	}
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}
	return m.renderer.Render(m.viewState())
}

func (m *Model) viewState() views.ViewState {
	s := m.session
	status := s.Status()

	state := views.ViewState{
		Width:         m.width,
		Height:        m.height,
		Folder:        s.Folder(),
		Crumbs:        s.Crumbs(),
		Mode:          s.Mode(),
		Submode:       s.Submode(),
		Items:         m.paneState(domain.PaneItems),
		Folders:       m.paneState(domain.PaneFolders),
		Current:       s.Selection.Current(),
		ShowCaptions:  s.ShowCaptions(),
		SearchVisible: s.Search.IsVisible() && s.Mode() == domain.ModeFolder,
		SearchInput:   s.Search.GetQuery(),
		Words:         s.Search.Words(),
		MatchCount:    s.Search.GetMatchCount(),
		StatusText:    status.Text,
		StatusDetail:  status.Detail,
		StatusError:   status.Error,
		Progress:      s.Progress(),
		Totals:        s.Totals(),
		HelpView:      lipgloss.NewStyle().MaxWidth(m.width).Render(m.help.View(input.Keys)),
	}
	if ti := m.inputHandler.TextInput(); ti != nil {
		state.SearchInput = ti.View()
	}
	if status.Spinner {
		state.Spinner = m.spinner.View()
	}
	return state
}

func (m *Model) paneState(pane domain.Pane) views.PaneState {
	return views.PaneState{
		Placements: m.grid.Placements(pane),
		Viewport:   m.grid.Viewport(pane),
		Width:      m.grid.Surface(pane).Width,
		Active:     m.session.Selection.ActivePane() == pane,
	}
}
