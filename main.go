package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

func main() {
	configPath := flag.String("config", "icepick.yaml", "path to config file")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config %s: %v", *configPath, err)
	}

	grid, err := loadVelocityGrid(cfg.VelocityPath)
	if err != nil {
		log.Fatal(err)
	}
	basins, err := LoadBasins(cfg.BasinPath)
	if err != nil {
		log.Fatal(err)
	}
	saved, err := LoadSavedSeeds(cfg.OutputPath)
	if err != nil {
		log.Fatal(err)
	}

	store := NewResultStore(cfg.OutputPath)
	if len(basins) == 0 {
		// Nothing to inspect; still produce the header-only output.
		if err := store.Flush(); err != nil {
			log.Fatal(err)
		}
		fmt.Println("no basins in dataset, wrote empty", cfg.OutputPath)
		return
	}

	m := newModel(cfg, grid, basins, saved, store)
	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	final, err := p.Run()
	if err != nil {
		log.Fatal(err)
	}

	// Whether the run completed or was aborted, persist what was committed.
	if err := store.Flush(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if fm, ok := final.(model); ok && fm.aborted {
		fmt.Printf("aborted, saved %d of %d seeds to %s\n", store.Len(), len(basins), cfg.OutputPath)
		return
	}
	fmt.Printf("saved %d seeds to %s\n", store.Len(), cfg.OutputPath)
}

type model struct {
	cfg    *Config
	grid   *VelocityGrid
	basins []Basin
	saved  map[string]Point
	store  *ResultStore

	idx      int
	session  *Session
	maxSpeed float64

	width   int
	height  int
	vp      viewport
	cursorX int
	cursorY int

	help    bool
	status  string
	aborted bool
	done    bool
}

func newModel(cfg *Config, grid *VelocityGrid, basins []Basin, saved map[string]Point, store *ResultStore) model {
	m := model{
		cfg:    cfg,
		grid:   grid,
		basins: basins,
		saved:  saved,
		store:  store,
	}
	m.startBasin(0)
	return m
}

// startBasin opens the per-basin selection session: field clipped to the
// basin's bounding box, default seed from the saved output, then the
// configured default, then the polygon centroid.
func (m *model) startBasin(i int) {
	m.idx = i
	basin := &m.basins[i]

	field := m.grid.ClipRect(basin.BBox)
	if field.Empty() {
		field = m.grid.Full()
	}

	seed, ok := m.saved[basin.Name]
	if !ok {
		if m.cfg.DefaultSeed != nil {
			seed = Point{X: m.cfg.DefaultSeed.X, Y: m.cfg.DefaultSeed.Y}
		} else {
			seed = basin.Centroid()
		}
	}

	m.session = NewSession(basin, field, seed, m.cfg.TraceConfig())
	m.maxSpeed = maxMaskedSpeed(m.session)
	m.status = ""
	m.layout()
	m.cursorToSeed()
}

// layout recomputes the viewport; one row is reserved for the status line.
func (m *model) layout() {
	if m.width < 1 || m.height < 2 || m.session == nil {
		return
	}
	m.vp = newViewport(m.session.Field.Extent(), m.width, m.height-1)
	m.ensureCursorInBounds()
}

func (m *model) cursorToSeed() {
	if cx, cy, ok := m.vp.worldToCell(m.session.Seed); ok {
		m.cursorX, m.cursorY = cx, cy
	}
}

func (m *model) ensureCursorInBounds() {
	if m.cursorX < 0 {
		m.cursorX = 0
	}
	if m.cursorX >= m.vp.width {
		m.cursorX = m.vp.width - 1
	}
	if m.cursorY < 0 {
		m.cursorY = 0
	}
	if m.cursorY >= m.vp.height {
		m.cursorY = m.vp.height - 1
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		m.cursorToSeed()
		return m, nil

	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft && msg.Y < m.vp.height {
			m.cursorX, m.cursorY = msg.X, msg.Y
			m.pick(m.vp.cellToWorld(msg.X, msg.Y))
		}
		return m, nil

	case tea.KeyMsg:
		if m.help {
			m.help = false
			return m, nil
		}

		key := msg.String()
		switch key {
		case "esc", "q", "ctrl+c":
			// Abort ends the whole run; committed seeds are still flushed.
			m.session.Handle(AbortEvent{})
			m.aborted = true
			return m, tea.Quit

		case "enter":
			return m.commit()

		case " ", "space":
			m.pick(m.vp.cellToWorld(m.cursorX, m.cursorY))
			return m, nil

		case "h", "left", "H", "shift+left",
			"l", "right", "L", "shift+right",
			"k", "up", "K", "shift+up",
			"j", "down", "J", "shift+down":
			m.moveCursor(key, m.moveSpeed(key))
			return m, nil

		case "S":
			m.snapshot()
			return m, nil

		case "c":
			m.copySeed()
			return m, nil

		case "?":
			m.help = true
			return m, nil
		}
	}
	return m, nil
}

func (m *model) pick(p Point) {
	m.session.Handle(ClickEvent{At: p})
	m.status = fmt.Sprintf("seed (%.0f, %.0f), %s", p.X, p.Y, m.session.Line.Reason)
}

func (m model) commit() (tea.Model, tea.Cmd) {
	rec, ok := m.session.Handle(CommitEvent{})
	if !ok {
		return m, nil
	}
	m.store.Append(rec)
	if m.idx+1 >= len(m.basins) {
		m.done = true
		return m, tea.Quit
	}
	m.startBasin(m.idx + 1)
	return m, nil
}

func (m *model) moveCursor(key string, speed int) {
	switch key {
	case "h", "left", "H", "shift+left":
		m.cursorX -= speed
	case "l", "right", "L", "shift+right":
		m.cursorX += speed
	case "k", "up", "K", "shift+up":
		m.cursorY -= speed
	case "j", "down", "J", "shift+down":
		m.cursorY += speed
	}
	m.ensureCursorInBounds()
}

func (m *model) moveSpeed(key string) int {
	switch key {
	case "H", "L", "K", "J", "shift+left", "shift+right", "shift+up", "shift+down":
		return 2
	default:
		return 1
	}
}

func (m *model) snapshot() {
	dir := m.cfg.SnapshotDir
	if dir == "" {
		dir = "."
	} else {
		os.MkdirAll(dir, 0755)
	}
	path := filepath.Join(dir, snapshotFilename(m.session.Basin.Name))
	if err := snapshotPNG(m.session, m.maxSpeed, path); err != nil {
		m.status = fmt.Sprintf("snapshot failed: %v", err)
		return
	}
	m.status = "saved " + path
}

func snapshotFilename(name string) string {
	safe := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, name)
	return safe + "_seed.png"
}

func (m *model) copySeed() {
	seed := m.session.Seed
	if err := clipboard.WriteAll(fmt.Sprintf("%.1f,%.1f", seed.X, seed.Y)); err != nil {
		m.status = fmt.Sprintf("copy failed: %v", err)
		return
	}
	m.status = fmt.Sprintf("copied (%.1f, %.1f)", seed.X, seed.Y)
}

var statusStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("252")).
	Background(lipgloss.Color("236"))

func (m model) View() string {
	if m.width < 1 || m.height < 2 || m.session == nil {
		return "loading..."
	}
	if m.help {
		return m.helpView()
	}

	lines := renderScene(m.session, m.vp, m.cursorX, m.cursorY, true, m.maxSpeed)
	return strings.Join(lines, "\n") + "\n" + m.statusLine()
}

func (m model) statusLine() string {
	s := m.session
	left := fmt.Sprintf(" %s [%d/%d]  seed (%.0f, %.0f)  %d pts (%s)",
		s.Basin.DisplayName(), m.idx+1, len(m.basins),
		s.Seed.X, s.Seed.Y, len(s.Line.Points), s.Line.Reason)
	if m.status != "" {
		left += "  " + m.status
	}
	hints := "click/space pick | enter commit | esc quit | ? help "

	pad := m.width - len(left) - len(hints)
	if pad < 1 {
		pad = 1
	}
	line := left + strings.Repeat(" ", pad) + hints
	if len(line) > m.width {
		line = line[:m.width]
	}
	return statusStyle.Render(line)
}

func (m model) helpView() string {
	lines := []string{
		"icepick",
		"=======",
		"",
		"Pick a streamline seed for each basin.",
		"",
		"  click / space     set seed at pointer / crosshair",
		"  h/j/k/l, arrows   move crosshair (shift = faster)",
		"  enter             accept seed, next basin",
		"  S                 save PNG snapshot of this basin",
		"  c                 copy seed coordinates",
		"  esc / q           quit (already accepted seeds are kept)",
		"",
		"press any key to continue",
	}
	return strings.Join(lines, "\n")
}
