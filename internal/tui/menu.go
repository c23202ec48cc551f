// Package tui is the interactive menu shown when scramble runs without a
// subcommand. It collects a mode, a map and its parameters, then hands the
// selection back to the caller.
package tui

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/hyp3rd/ewrap"

	"github.com/san-kum/scramble/internal/chaos"
	"github.com/san-kum/scramble/internal/config"
)

var (
	cyan    = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white   = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim     = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	dimmer  = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	red     = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	magenta = lipgloss.NewStyle().Foreground(lipgloss.Color("213"))
)

// Mode selects what the run produces.
type Mode int

const (
	ModeTable Mode = iota + 1 // one table and its cycle structure
	ModeCurve                 // mean order against N
)

func (m Mode) String() string {
	switch m {
	case ModeTable:
		return "table"
	case ModeCurve:
		return "curve"
	}
	return "unknown"
}

var modeInfo = map[Mode]string{
	ModeTable: "generate one table, show its cycles",
	ModeCurve: "average order vs N over many seeds",
}

// Selection is what the user chose in the menu.
type Selection struct {
	Mode       Mode
	Param      chaos.Param
	Iterations int
	Length     int // table mode only
}

type state int

const (
	stateMode state = iota
	stateMap
	stateConfig
	stateDone
)

const (
	fieldIterations = "iterations"
	fieldA          = "a"
	fieldLength     = "length"
)

type model struct {
	state  state
	cursor int

	modes []Mode
	mode  Mode
	kinds []chaos.Kind
	kind  chaos.Kind

	params      map[string]float64
	paramNames  []string
	paramCursor int
	editing     bool
	editBuf     string
	err         error

	selection *Selection
}

func newModel() model {
	return model{
		state: stateMode,
		modes: []Mode{ModeTable, ModeCurve},
		kinds: chaos.Kinds,
		params: map[string]float64{
			fieldIterations: config.DefaultIterations,
			fieldA:          config.DefaultA,
			fieldLength:     config.DefaultLength,
		},
	}
}

// Run shows the menu and returns the selection, or nil if the user quit.
func Run() (*Selection, error) {
	final, err := tea.NewProgram(newModel()).Run()
	if err != nil {
		return nil, err
	}
	return final.(model).selection, nil
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		return m.handleKey(msg)
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.selection = nil
		return m, tea.Quit
	}
	switch m.state {
	case stateMode:
		return m.modeKey(msg)
	case stateMap:
		return m.mapKey(msg)
	case stateConfig:
		return m.configKey(msg)
	}
	return m, nil
}

func (m model) modeKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.modes)-1 {
			m.cursor++
		}
	case "1":
		m.cursor = 0
		return m.chooseMode()
	case "2":
		m.cursor = 1
		return m.chooseMode()
	case "enter", " ":
		return m.chooseMode()
	}
	return m, nil
}

func (m model) chooseMode() (model, tea.Cmd) {
	m.mode = m.modes[m.cursor]
	m.state = stateMap
	m.cursor = 0
	return m, nil
}

func (m model) mapKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		m.state = stateMode
		m.cursor = 0
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.kinds)-1 {
			m.cursor++
		}
	case "enter", " ":
		m.kind = m.kinds[m.cursor]
		m.state = stateConfig
		m.paramCursor = 0
		m.err = nil
		m.setParamsForMode()
	}
	return m, nil
}

func (m model) configKey(msg tea.KeyMsg) (model, tea.Cmd) {
	if m.editing {
		switch msg.String() {
		case "enter":
			if val, err := strconv.ParseFloat(m.editBuf, 64); err == nil {
				m.params[m.paramNames[m.paramCursor]] = val
			}
			m.editing = false
			m.editBuf = ""
		case "esc":
			m.editing = false
			m.editBuf = ""
		case "backspace":
			if len(m.editBuf) > 0 {
				m.editBuf = m.editBuf[:len(m.editBuf)-1]
			}
		default:
			if len(msg.String()) == 1 {
				c := msg.String()[0]
				if (c >= '0' && c <= '9') || c == '.' || c == '-' {
					m.editBuf += string(c)
				}
			}
		}
		return m, nil
	}

	name := m.paramNames[m.paramCursor]
	switch msg.String() {
	case "q", "esc":
		m.state = stateMap
	case "up", "k":
		if m.paramCursor > 0 {
			m.paramCursor--
		}
	case "down", "j":
		if m.paramCursor < len(m.paramNames)-1 {
			m.paramCursor++
		}
	case "enter", " ":
		m.editing = true
		m.editBuf = formatParam(name, m.params[name])
	case "left", "h":
		m.params[name] = adjust(name, m.params[name], -1)
	case "right", "l":
		m.params[name] = adjust(name, m.params[name], 1)
	case "s":
		sel, err := m.buildSelection()
		if err != nil {
			m.err = err
			return m, nil
		}
		m.selection = sel
		m.state = stateDone
		return m, tea.Quit
	}
	return m, nil
}

// setParamsForMode picks the fields to show and seeds a with the first
// preset of the chosen map.
func (m *model) setParamsForMode() {
	m.paramNames = []string{fieldIterations, fieldA}
	if m.mode == ModeTable {
		m.paramNames = append(m.paramNames, fieldLength)
	}
	if names := config.ListPresets(m.kind.String()); len(names) > 0 {
		if p := config.GetPreset(m.kind.String(), names[0]); p != nil {
			m.params[fieldA] = p.A
		}
	}
}

func (m model) buildSelection() (*Selection, error) {
	p, err := chaos.NewParam(m.kind, m.params[fieldA])
	if err != nil {
		return nil, err
	}
	n := int(m.params[fieldIterations])
	if n < 0 {
		return nil, ewrap.Wrapf(chaos.ErrInvalidParameter, "iterations=%d must be non-negative", n)
	}
	sel := &Selection{Mode: m.mode, Param: p, Iterations: n}
	if m.mode == ModeTable {
		sel.Length = int(m.params[fieldLength])
		if sel.Length <= 0 {
			return nil, ewrap.Wrapf(chaos.ErrInvalidParameter, "table length N=%d must be positive", sel.Length)
		}
	}
	return sel, nil
}

// adjust moves v by dir steps, snapped to the field's grid.
func adjust(name string, v float64, dir int) float64 {
	if name == fieldA {
		return math.Round(v*100+float64(dir)) / 100
	}
	return math.Round(v) + float64(dir)
}

func formatParam(name string, v float64) string {
	if name == fieldA {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return strconv.Itoa(int(v))
}

func (m model) View() string {
	switch m.state {
	case stateMode:
		return m.viewMode()
	case stateMap:
		return m.viewMap()
	case stateConfig:
		return m.viewConfig()
	}
	return ""
}

func header(b *strings.Builder) {
	b.WriteString("\n")
	b.WriteString(dimmer.Render("    ╺━━━━━━━━━━━━━━━━━━━━━━━━╸") + "\n")
	b.WriteString("           " + cyan.Render("s c r a m b l e") + "\n")
	b.WriteString(dimmer.Render("    ╺━━━━━━━━━━━━━━━━━━━━━━━━╸") + "\n")
	b.WriteString("\n")
}

func (m model) viewMode() string {
	var b strings.Builder
	header(&b)

	for i, mode := range m.modes {
		label := fmt.Sprintf("%d %-8s", i+1, mode)
		if i == m.cursor {
			b.WriteString("      " + cyan.Render("▸ ") + white.Render(label) + dim.Render(modeInfo[mode]) + "\n")
		} else {
			b.WriteString("        " + dim.Render(label) + dimmer.Render(modeInfo[mode]) + "\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(dim.Render("      ↑↓ select   enter choose   q quit") + "\n")
	return b.String()
}

func (m model) viewMap() string {
	var b strings.Builder
	header(&b)
	b.WriteString("      " + dim.Render("mode ") + cyan.Render(m.mode.String()) + "\n\n")

	for i, k := range m.kinds {
		label := fmt.Sprintf("%-10s", k)
		info := k.Range().String()
		if i == m.cursor {
			b.WriteString("      " + cyan.Render("▸ ") + white.Render(label) + dim.Render(info) + "\n")
		} else {
			b.WriteString("        " + dim.Render(label) + dimmer.Render(info) + "\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(dim.Render("      ↑↓ select   enter choose   esc back") + "\n")
	return b.String()
}

func (m model) viewConfig() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString("      " + cyan.Render(m.kind.String()) + "  " + dim.Render(m.kind.Description()) + "\n")
	b.WriteString("      " + dim.Render("a in "+m.kind.Range().String()) + "\n")
	b.WriteString(dimmer.Render("      "+strings.Repeat("─", 30)) + "\n\n")

	for i, name := range m.paramNames {
		val := fmt.Sprintf("%8s", formatParam(name, m.params[name]))
		if m.editing && i == m.paramCursor {
			val = fmt.Sprintf("%8s", m.editBuf+"▋")
		}
		if i == m.paramCursor {
			b.WriteString("      " + cyan.Render("▸ ") + white.Render(fmt.Sprintf("%-12s", name)) + magenta.Render(val) + "\n")
		} else {
			b.WriteString("        " + dim.Render(fmt.Sprintf("%-12s", name)) + dim.Render(val) + "\n")
		}
	}

	if m.err != nil {
		b.WriteString("\n      " + red.Render(m.err.Error()) + "\n")
	}

	b.WriteString("\n")
	b.WriteString(dim.Render("      ↑↓ select  ←→ adjust  enter edit  s start  esc back") + "\n")
	return b.String()
}
