package tui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/scramble/internal/chaos"
)

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

var (
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	down  = tea.KeyMsg{Type: tea.KeyDown}
	esc   = tea.KeyMsg{Type: tea.KeyEsc}
	bksp  = tea.KeyMsg{Type: tea.KeyBackspace}
)

func send(t *testing.T, m model, keys ...tea.KeyMsg) (model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		var next tea.Model
		next, cmd = m.Update(k)
		m = next.(model)
	}
	return m, cmd
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestTableFlow(t *testing.T) {
	m, cmd := send(t, newModel(), runes("1"), enter, runes("s"))

	if !isQuit(cmd) {
		t.Fatal("start should quit the program")
	}
	sel := m.selection
	if sel == nil {
		t.Fatal("no selection")
	}
	if sel.Mode != ModeTable || sel.Param.Kind != chaos.Logistic {
		t.Errorf("selection = %+v", sel)
	}
	if sel.Param.A != 3.9 { // first logistic preset, "classic"
		t.Errorf("a = %g", sel.Param.A)
	}
	if sel.Iterations != 5 || sel.Length != 16 {
		t.Errorf("iterations=%d length=%d", sel.Iterations, sel.Length)
	}
}

func TestCurveFlowSkipsLength(t *testing.T) {
	m, _ := send(t, newModel(), runes("2"), down, down, enter)
	if m.kind != chaos.PWLCM {
		t.Fatalf("kind = %v", m.kind)
	}
	for _, name := range m.paramNames {
		if name == fieldLength {
			t.Error("curve mode should not ask for a length")
		}
	}

	m, _ = send(t, m, runes("s"))
	if m.selection == nil || m.selection.Mode != ModeCurve || m.selection.Length != 0 {
		t.Errorf("selection = %+v", m.selection)
	}
}

func TestEditParameter(t *testing.T) {
	m, _ := send(t, newModel(), enter, enter) // table, logistic
	m, _ = send(t, m, down, enter)            // edit a
	if !m.editing || m.editBuf != "3.9" {
		t.Fatalf("editing=%v buf=%q", m.editing, m.editBuf)
	}
	m, _ = send(t, m, bksp, bksp, bksp, runes("3"), runes("."), runes("x"), runes("5"), enter)
	if m.params[fieldA] != 3.5 {
		t.Fatalf("a = %g", m.params[fieldA])
	}

	// 3.5 is outside the logistic range
	m, cmd := send(t, m, runes("s"))
	if isQuit(cmd) || m.selection != nil {
		t.Fatal("invalid a must not start a run")
	}
	if !errors.Is(m.err, chaos.ErrInvalidParameter) {
		t.Errorf("err = %v", m.err)
	}
	if !strings.Contains(m.View(), "outside") {
		t.Errorf("error not shown:\n%s", m.View())
	}
}

func TestAdjustAndBack(t *testing.T) {
	m, _ := send(t, newModel(), enter, enter)
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyRight}, tea.KeyMsg{Type: tea.KeyRight})
	if m.params[fieldIterations] != 7 {
		t.Errorf("iterations = %g", m.params[fieldIterations])
	}

	m, _ = send(t, m, esc)
	if m.state != stateMap {
		t.Errorf("esc from config: state = %v", m.state)
	}
	m, _ = send(t, m, esc)
	if m.state != stateMode {
		t.Errorf("esc from map: state = %v", m.state)
	}
}

func TestQuit(t *testing.T) {
	m, cmd := send(t, newModel(), runes("q"))
	if !isQuit(cmd) || m.selection != nil {
		t.Error("q on the first screen should quit without a selection")
	}

	m, cmd = send(t, newModel(), enter, enter, tea.KeyMsg{Type: tea.KeyCtrlC})
	if !isQuit(cmd) || m.selection != nil {
		t.Error("ctrl+c should quit without a selection")
	}
}

func TestViews(t *testing.T) {
	m := newModel()
	if !strings.Contains(m.View(), "table") || !strings.Contains(m.View(), "curve") {
		t.Errorf("mode view:\n%s", m.View())
	}
	m, _ = send(t, m, enter)
	if !strings.Contains(m.View(), "singer") {
		t.Errorf("map view:\n%s", m.View())
	}
	m, _ = send(t, m, down, enter)
	if !strings.Contains(m.View(), "[0.9, 1.08]") {
		t.Errorf("config view:\n%s", m.View())
	}
}

func TestAdjustStaysOnGrid(t *testing.T) {
	right := tea.KeyMsg{Type: tea.KeyRight}
	left := tea.KeyMsg{Type: tea.KeyLeft}

	m, _ := send(t, newModel(), enter, enter, down) // table, logistic, a
	m, _ = send(t, m, right)
	if got := m.params[fieldA]; got != 3.91 {
		t.Fatalf("a = %v, want 3.91", got)
	}
	for i := 0; i < 7; i++ {
		m, _ = send(t, m, right)
	}
	if got := m.params[fieldA]; got != 3.98 {
		t.Errorf("a = %v, want 3.98", got)
	}
	for i := 0; i < 8; i++ {
		m, _ = send(t, m, left)
	}
	if got := m.params[fieldA]; got != 3.9 {
		t.Errorf("a = %v, want 3.9", got)
	}
	if strings.Contains(m.View(), "0000") || strings.Contains(m.View(), "9999") {
		t.Errorf("a rendered with drift:\n%s", m.View())
	}
}

func TestInvalidCountsAreParameterErrors(t *testing.T) {
	tests := []struct {
		name  string
		field string
		value float64
	}{
		{"negative iterations", fieldIterations, -1},
		{"zero length", fieldLength, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _ := send(t, newModel(), enter, enter)
			m.params[tt.field] = tt.value
			m, cmd := send(t, m, runes("s"))
			if isQuit(cmd) || m.selection != nil {
				t.Fatal("invalid value must not start a run")
			}
			if !errors.Is(m.err, chaos.ErrInvalidParameter) {
				t.Errorf("err = %v", m.err)
			}
		})
	}
}
