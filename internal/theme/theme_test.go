package theme

import (
	"strings"
	"testing"
)

func TestSelectMode(t *testing.T) {
	cases := []struct {
		name      string
		override  string
		preferred string
		expect    Mode
	}{
		{"override wins", "light", "dark", ModeLight},
		{"preferred when no override", "", "light", ModeLight},
		{"auto resolves dark", "auto", "", ModeDark},
		{"unknown falls back", "neon", "blue", ModeDark},
		{"case insensitive", "LIGHT", "", ModeLight},
	}

	for _, tc := range cases {
		theme := New(Options{Override: tc.override, Preferred: tc.preferred})
		if theme.Mode != tc.expect {
			t.Fatalf("%s: expected %s, got %s", tc.name, tc.expect, theme.Mode)
		}
	}
}

func TestSeverityMapping(t *testing.T) {
	theme := New(Options{Override: "dark"})

	cases := []struct {
		name   string
		expect string
	}{
		{"success", theme.Success.Render("x")},
		{"info", theme.Info.Render("x")},
		{"warning", theme.Warning.Render("x")},
		{"danger", theme.Danger.Render("x")},
		{"error", theme.Danger.Render("x")},
		{"ERROR", theme.Danger.Render("x")},
		{"bogus", theme.Secondary.Render("x")},
	}
	for _, tc := range cases {
		if got := theme.Severity(tc.name).Render("x"); got != tc.expect {
			t.Fatalf("severity %q mapped to unexpected style", tc.name)
		}
	}
}

func TestRenderTabKeepsLabel(t *testing.T) {
	theme := New(Options{Override: "dark"})
	for _, active := range []bool{true, false} {
		if got := theme.RenderTab("Ports", active); !strings.Contains(got, "Ports") {
			t.Fatalf("expected label preserved, got %q", got)
		}
	}
}
