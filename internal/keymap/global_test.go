package keymap

import (
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

func TestDefaultGlobalBindings(t *testing.T) {
	km := DefaultGlobal()

	cases := []struct {
		name    string
		binding key.Binding
		press   string
	}{
		{"quit", km.Quit, "ctrl+c"},
		{"next view", km.NextView, "tab"},
		{"prev view", km.PrevView, "shift+tab"},
		{"refresh r", km.Refresh, "r"},
		{"refresh ctrl+r", km.Refresh, "ctrl+r"},
		{"refresh f5", km.Refresh, "f5"},
	}

	for _, tc := range cases {
		msg := keyMsg(tc.press)
		if !key.Matches(msg, tc.binding) {
			t.Fatalf("%s: expected %q to match", tc.name, tc.press)
		}
	}

	if key.Matches(keyMsg("x"), km.Refresh) {
		t.Fatalf("unexpected refresh match for x")
	}
}

func TestShortHelpMentionsRefresh(t *testing.T) {
	help := DefaultGlobal().ShortHelp()
	for _, want := range []string{"quit", "next view", "refresh"} {
		if !strings.Contains(help, want) {
			t.Fatalf("expected %q in short help %q", want, help)
		}
	}
}

func keyMsg(name string) tea.KeyMsg {
	switch name {
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case "ctrl+r":
		return tea.KeyMsg{Type: tea.KeyCtrlR}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "f5":
		return tea.KeyMsg{Type: tea.KeyF5}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(name)}
	}
}
