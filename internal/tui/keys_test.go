package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"httag-cli/internal/nav"
)

func TestNavKeyHelpNamesBoundKeys(t *testing.T) {
	tests := []struct {
		platform nav.Platform
		help     string
	}{
		{nav.PlatformMac, "ctrl/⌥+←"},
		{nav.PlatformOther, "ctrl/alt+←"},
	}
	for _, tt := range tests {
		km := newKeyMap(tt.platform)
		if got := km.NavParent.Help().Key; got != tt.help {
			t.Fatalf("%s: help = %q; want %q", tt.platform, got, tt.help)
		}
		if strings.Contains(km.NavParent.Help().Key, "⌘") {
			t.Fatalf("%s: help names ⌘, which no binding receives", tt.platform)
		}
		keys := km.NavParent.Keys()
		if len(keys) != 2 || keys[0] != "ctrl+left" || keys[1] != "alt+left" {
			t.Fatalf("%s: keys = %v", tt.platform, keys)
		}
	}
}

func TestNavKey(t *testing.T) {
	tests := []struct {
		msg  tea.KeyMsg
		want nav.Key
		ok   bool
	}{
		{tea.KeyMsg{Type: tea.KeyCtrlLeft}, nav.Key{Dir: nav.Left, Ctrl: true}, true},
		{tea.KeyMsg{Type: tea.KeyCtrlDown}, nav.Key{Dir: nav.Down, Ctrl: true}, true},
		{tea.KeyMsg{Type: tea.KeyRight, Alt: true}, nav.Key{Dir: nav.Right, Meta: true}, true},
		{tea.KeyMsg{Type: tea.KeyUp}, nav.Key{}, false},
	}
	for _, tt := range tests {
		got, ok := navKey(tt.msg)
		if ok != tt.ok || got != tt.want {
			t.Fatalf("navKey(%s) = %+v, %v", tt.msg, got, ok)
		}
	}
}

func TestFormFieldIsOneLine(t *testing.T) {
	out := formField("new tag id", "ap\nple", 30)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("formField rendered %d lines:\n%s", len(lines), out)
	}
	if w := lipgloss.Width(lines[1]); w != 30 {
		t.Fatalf("field width = %d; want 30", w)
	}
	if !strings.Contains(lines[1], "ap ple") {
		t.Fatalf("field = %q", lines[1])
	}
}
