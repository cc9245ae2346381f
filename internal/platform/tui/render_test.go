package tui

import (
	"strings"
	"testing"

	"github.com/vovakirdan/rasta-crosser/internal/core"
)

func TestRenderScreen(t *testing.T) {
	s := core.NewScreen(12, 3)
	s.DrawText(0, 0, "Score: 5")
	s.DrawTextColored(0, 2, "GO", core.ColorGreen)

	out := RenderScreen(s)
	lines := strings.Split(out, "\n")
	if len(lines) != 3 {
		t.Fatalf("RenderScreen produced %d lines, expected 3", len(lines))
	}
	if !strings.Contains(lines[0], "Score: 5") {
		t.Errorf("first line %q does not contain the HUD text", lines[0])
	}
	if !strings.Contains(lines[2], "GO") {
		t.Errorf("last line %q does not contain colored text", lines[2])
	}
}

func TestCenterText(t *testing.T) {
	tests := []struct {
		text  string
		width int
		want  string
	}{
		{"ab", 6, "  ab"},
		{"abc", 3, "abc"},
		{"toolong", 4, "toolong"},
	}
	for _, tc := range tests {
		if got := centerText(tc.text, tc.width); got != tc.want {
			t.Errorf("centerText(%q, %d) = %q, expected %q", tc.text, tc.width, got, tc.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("Chittagong", 5); got != "Chit." {
		t.Errorf("truncate() = %q", got)
	}
	if got := truncate("Dhaka", 10); got != "Dhaka" {
		t.Errorf("truncate() = %q", got)
	}
}
