package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/chadlavi/draw-it/internal/canvas"
	"github.com/chadlavi/draw-it/internal/clickaway"
	"github.com/chadlavi/draw-it/internal/layout"
	"github.com/chadlavi/draw-it/internal/model"
	"github.com/chadlavi/draw-it/internal/session"
)

// Messages
type replayTickMsg struct{}

// Options wires the root model to a running session.
type Options struct {
	Session     *session.Session
	// Raster must be the surface the session was built with.
	Raster      *canvas.Raster
	CellWidthPx int
	Logger      *zap.Logger
}

// Model is the root Bubble Tea model
type Model struct {
	session  *session.Session
	raster   *canvas.Raster
	detector *clickaway.Detector
	viewport layout.Viewport
	screen   screen

	keys  KeyMap
	help  help.Model
	debug DebugPanel

	pressSeq  uint64
	swatch    int // keyboard cursor in the palette
	replaying bool

	status    string
	statusErr bool
	showHelp  bool
	ready     bool

	logger *zap.Logger
}

// NewRootModel creates a new root model
func NewRootModel(opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	m := Model{
		session:  opts.Session,
		raster:   opts.Raster,
		detector: clickaway.New(opts.Session.ClosePaletteOnOutsideClick),
		viewport: layout.NewViewport(opts.CellWidthPx),
		keys:     DefaultKeyMap(),
		help:     newHelp(),
		debug:    NewDebugPanel(),
		logger:   logger,
	}
	m.swatch = max(model.SwatchIndex(m.session.BrushColor()), 0)
	return m
}

func newHelp() help.Model {
	h := help.New()
	h.Styles.ShortKey = HelpKeyStyle
	h.Styles.FullKey = HelpKeyStyle
	h.Styles.ShortDesc = DimStyle
	h.Styles.FullDesc = HelpDescStyle
	return h
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tea.SetWindowTitle("draw it")
}

func replayTickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return replayTickMsg{}
	})
}

// Update handles one event. Every session mutation happens here.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.viewport.Resize(msg.Width, msg.Height)
		m.help.Width = msg.Width
		m.ready = true
		m.session.Sync(m.viewport.Width())
		m.logger.Debug("viewport resized",
			zap.Int("cols", msg.Width),
			zap.Int("rows", msg.Height),
			zap.Int("canvas", m.raster.Size()))

	case replayTickMsg:
		if m.raster.ReplayNext() {
			cmds = append(cmds, replayTickCmd(m.raster.Config().LoadTimeOffset))
		} else {
			m.replaying = false
		}

	case tea.MouseMsg:
		m.handleMouse(msg)

	case tea.KeyMsg:
		if m.showHelp {
			if key.Matches(msg, m.keys.Help) || key.Matches(msg, m.keys.Escape) {
				m.showHelp = false
			} else if key.Matches(msg, m.keys.Quit) {
				return m, tea.Quit
			}
			break
		}
		if cmd := m.handleKey(msg); cmd != nil {
			return m, cmd
		}
	}

	if m.raster.Replaying() && !m.replaying {
		m.replaying = true
		cmds = append(cmds, replayTickCmd(m.raster.Config().LoadTimeOffset))
	}

	m.relayout()
	return m, tea.Batch(cmds...)
}

// relayout recomputes the screen and keeps the click-away region on the
// palette trigger and popover while the palette is open.
func (m *Model) relayout() {
	m.screen = computeScreen(m.viewport.Cols(), m.viewport.Rows(), m.raster.Size(),
		m.session.RotationWarningVisible())
	m.debug.Update(m.session.ExportedImage())

	open := m.session.PaletteOpen()
	m.detector.SetActive(open)
	if open {
		m.detector.Mount(m.screen.paletteBtn, m.screen.popover)
	} else {
		m.detector.Unmount()
	}
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return
		}
		m.pressSeq++
		m.detector.Handle(clickaway.Press{Seq: m.pressSeq, X: msg.X, Y: msg.Y})
		m.press(msg.X, msg.Y)

	case tea.MouseActionMotion:
		if !m.raster.Drawing() {
			return
		}
		col, row := m.screen.grid.Clamp(msg.X-m.screen.canvas.X, msg.Y-m.screen.canvas.Y)
		if x, y, ok := m.screen.grid.ToCanvas(col, row); ok {
			m.raster.MoveStroke(canvas.Point{X: x, Y: y})
		}

	case tea.MouseActionRelease:
		if m.raster.Drawing() {
			m.raster.EndStroke()
		}
	}
}

// press hit-tests a left press against the controls and the canvas.
func (m *Model) press(x, y int) {
	s := m.screen
	switch {
	case s.bannerRow >= 0 && s.dismiss.Contains(x, y):
		m.session.DismissRotationWarning()

	case s.paletteBtn.Contains(x, y):
		m.togglePalette()

	case m.session.PaletteOpen() && s.swatchAt(x, y) >= 0:
		m.selectSwatch(s.swatchAt(x, y))

	case s.undoBtn.Contains(x, y):
		m.session.Undo()

	case s.clearBtn.Contains(x, y):
		m.session.Clear()

	case m.session.CanDownload() && s.downloadBtn.Contains(x, y):
		m.download()

	case s.canvas.Contains(x, y):
		if cx, cy, ok := s.grid.ToCanvas(x-s.canvas.X, y-s.canvas.Y); ok {
			m.raster.BeginStroke(canvas.Point{X: cx, Y: cy})
		}
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	open := m.session.PaletteOpen()
	cols := model.PaletteColumns

	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true

	case key.Matches(msg, m.keys.Escape):
		if open {
			m.session.TogglePalette()
		}

	case key.Matches(msg, m.keys.Palette):
		m.togglePalette()

	case open && key.Matches(msg, m.keys.Left):
		m.swatch = max(m.swatch-1, 0)

	case open && key.Matches(msg, m.keys.Right):
		m.swatch = min(m.swatch+1, len(model.Palette)-1)

	case open && key.Matches(msg, m.keys.Up):
		if m.swatch >= cols {
			m.swatch -= cols
		}

	case open && key.Matches(msg, m.keys.Down):
		if m.swatch+cols < len(model.Palette) {
			m.swatch += cols
		}

	case open && key.Matches(msg, m.keys.Select):
		m.selectSwatch(m.swatch)

	case key.Matches(msg, m.keys.Undo):
		m.session.Undo()

	case key.Matches(msg, m.keys.Clear):
		m.session.Clear()

	case key.Matches(msg, m.keys.Download):
		m.download()

	case key.Matches(msg, m.keys.Dismiss):
		if m.session.RotationWarningVisible() {
			m.session.DismissRotationWarning()
		}
	}
	return nil
}

func (m *Model) togglePalette() {
	m.session.TogglePalette()
	if m.session.PaletteOpen() {
		if i := model.SwatchIndex(m.session.BrushColor()); i >= 0 {
			m.swatch = i
		}
	}
}

// selectSwatch picks a color. The popover stays open.
func (m *Model) selectSwatch(i int) {
	m.swatch = i
	m.session.SelectColor(model.Palette[i])
	m.session.Sync(m.viewport.Width())
}

func (m *Model) download() {
	filename, err := m.session.Download()
	switch {
	case filename == "":
		return
	case err != nil:
		m.status = "could not save " + filename
		m.statusErr = true
	default:
		m.status = "saved " + filename
		m.statusErr = false
	}
}

// View renders the model
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.helpView()
	}

	s := m.screen
	rows := make([]string, max(s.height, s.statusRow+1))
	set := func(i int, line string) {
		if i >= 0 && i < len(rows) {
			rows[i] = line
		}
	}

	set(0, m.renderHeader())
	if s.bannerRow >= 0 {
		set(s.bannerRow, m.renderBanner())
	}
	set(s.promptRow, PromptLabelStyle.Render("draw this:")+" "+
		PromptTextStyle.Render(`"`+m.session.Prompt()+`"`))

	for i, line := range m.renderBody() {
		set(s.canvas.Y+i, line)
	}
	set(s.buttonRow, m.renderButtons())
	if m.session.PaletteOpen() {
		for i, line := range m.renderPalette() {
			set(s.popover.Y+i, line)
		}
	}
	set(s.statusRow, m.renderStatusBar())

	return strings.Join(rows[:s.height], "\n")
}

func (m Model) renderHeader() string {
	title := HeaderStyle.Render("DRAW IT")
	subtitle := lipgloss.NewStyle().
		Foreground(ColorFgMuted).
		Render("  a quick sketch, no pressure")
	return title + subtitle
}

func (m Model) renderBanner() string {
	return BannerStyle.Render(bannerText) + " " + ButtonStyle.Render(dismissLabel)
}

// renderBody renders the canvas and, when there is room and an export,
// the debug panel beside it.
func (m Model) renderBody() []string {
	s := m.screen
	if s.grid.Empty() {
		return []string{WarningStyle.Render(" make the terminal bigger to draw")}
	}

	frame := m.raster.Frame()
	if frame == nil {
		return nil
	}
	canvasBlock := lipgloss.NewStyle().
		PaddingLeft(s.canvas.X).
		Render(strings.Join(halfBlocks(inkSample(frame, s.grid.Cols, s.grid.Rows)), "\n"))

	if s.debugX == 0 || !m.debug.Visible() {
		return strings.Split(canvasBlock, "\n")
	}
	panel := m.debug.Render(debugWidth, s.grid.Rows)
	if panel == "" {
		return strings.Split(canvasBlock, "\n")
	}
	body := lipgloss.JoinHorizontal(lipgloss.Top, canvasBlock, " ", panel)
	return strings.Split(body, "\n")
}

func (m Model) renderButtons() string {
	brush := m.session.BrushColor()
	chip := lipgloss.NewStyle().Background(lipgloss.Color(brush)).Render(strings.Repeat(" ", chipWidth))

	paletteStyle := ButtonStyle
	if m.session.PaletteOpen() {
		paletteStyle = ButtonActiveStyle
	}
	buttons := []string{
		chip + paletteStyle.Render(paletteLabel),
		ButtonStyle.Render(undoLabel),
		DangerButtonStyle.Render(clearLabel),
	}
	if m.session.CanDownload() {
		buttons = append(buttons, SaveButtonStyle.Render(downloadLabel))
	}
	return strings.Repeat(" ", m.screen.paletteBtn.X) + strings.Join(buttons, " ")
}

// renderPalette renders the popover rows, marking the current brush color
// and the keyboard cursor.
func (m Model) renderPalette() []string {
	current := model.SwatchIndex(m.session.BrushColor())
	indent := strings.Repeat(" ", m.screen.popover.X)

	var lines []string
	for start := 0; start < len(model.Palette); start += model.PaletteColumns {
		var sb strings.Builder
		sb.WriteString(indent)
		for i := start; i < min(start+model.PaletteColumns, len(model.Palette)); i++ {
			mark := " "
			if i == current {
				mark = "•"
			}
			cell := " " + mark + " "
			if i == m.swatch {
				cell = "[" + mark + "]"
			}
			sb.WriteString(SwatchCursorStyle.
				Background(lipgloss.Color(model.Palette[i])).
				Render(cell))
		}
		lines = append(lines, sb.String())
	}
	return lines
}

func (m Model) renderStatusBar() string {
	var status string
	switch {
	case m.replaying:
		status = ReplayStyle.Render("restoring drawing...")
	case m.status == "":
		status = DimStyle.Render("ready")
	case m.statusErr:
		status = DimStyle.Render(m.status)
	default:
		status = SuccessStyle.Render(m.status)
	}
	return StatusBarStyle.Render(status + DimStyle.Render(" │ ") + m.help.ShortHelpView(m.keys.ShortHelp()))
}

// helpView renders the help overlay
func (m Model) helpView() string {
	title := HelpTitleStyle.Render("Keyboard Shortcuts")
	body := m.help.FullHelpView(m.keys.FullHelp())
	mouse := HelpDescStyle.Render("Drag on the canvas to draw. Click the buttons below it.")
	content := title + "\n\n" + body + "\n\n" + mouse + "\n" +
		HelpDescStyle.Render("Press ? or Esc to close")

	return lipgloss.Place(
		m.viewport.Cols(),
		m.viewport.Rows(),
		lipgloss.Center,
		lipgloss.Center,
		HelpStyle.Render(content),
	)
}
