package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-blokus/internal/core"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestKeyMapActions(t *testing.T) {
	km := DefaultKeyMap()
	tests := []struct {
		name string
		msg  tea.KeyMsg
		want core.Action
	}{
		{"arrow up", tea.KeyMsg{Type: tea.KeyUp}, core.ActionUp},
		{"vim down", runeKey('j'), core.ActionDown},
		{"wasd left", runeKey('a'), core.ActionLeft},
		{"arrow right", tea.KeyMsg{Type: tea.KeyRight}, core.ActionRight},
		{"rotate", runeKey('r'), core.ActionRotate},
		{"rotate back", runeKey('R'), core.ActionRotateBack},
		{"next piece bracket", runeKey(']'), core.ActionNextPiece},
		{"next piece tab", tea.KeyMsg{Type: tea.KeyTab}, core.ActionNextPiece},
		{"prev piece", tea.KeyMsg{Type: tea.KeyShiftTab}, core.ActionPrevPiece},
		{"color", runeKey('c'), core.ActionNextColor},
		{"place", tea.KeyMsg{Type: tea.KeyEnter}, core.ActionPlace},
		{"overlay", runeKey('v'), core.ActionToggleOverlay},
		{"hint", runeKey('?'), core.ActionHint},
		{"restart", runeKey('n'), core.ActionRestart},
		{"quit is not an action", runeKey('q'), core.ActionNone},
		{"chat is not an action", runeKey('t'), core.ActionNone},
		{"unbound", runeKey('z'), core.ActionNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := km.Action(tt.msg); got != tt.want {
				t.Errorf("Action(%q) = %v, want %v", tt.msg.String(), got, tt.want)
			}
		})
	}
}

func TestChatBindingDisabledByDefault(t *testing.T) {
	km := DefaultKeyMap()
	if km.Chat.Enabled() {
		t.Error("chat binding should start disabled")
	}
	if !km.WithChat().Chat.Enabled() {
		t.Error("WithChat should enable the chat binding")
	}
	if km.Chat.Enabled() {
		t.Error("WithChat must not modify the receiver")
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	tests := []struct {
		msg  tea.KeyMsg
		want MenuAction
	}{
		{runeKey('k'), MenuActionUp},
		{tea.KeyMsg{Type: tea.KeyDown}, MenuActionDown},
		{tea.KeyMsg{Type: tea.KeyEnter}, MenuActionSelect},
		{tea.KeyMsg{Type: tea.KeyTab}, MenuActionHistory},
		{tea.KeyMsg{Type: tea.KeyEsc}, MenuActionBack},
		{tea.KeyMsg{Type: tea.KeyCtrlC}, MenuActionQuit},
		{runeKey('x'), MenuActionNone},
	}
	for _, tt := range tests {
		if got := MapKeyToMenuAction(tt.msg); got != tt.want {
			t.Errorf("MapKeyToMenuAction(%q) = %v, want %v", tt.msg.String(), got, tt.want)
		}
	}
}
