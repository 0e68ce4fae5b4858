package ui

import tea "github.com/charmbracelet/bubbletea"

func isKey(msg tea.KeyMsg, keys ...string) bool {
	s := msg.String()
	for _, k := range keys {
		if s == k {
			return true
		}
	}
	return false
}

func isQuit(msg tea.KeyMsg) bool {
	return isKey(msg, "q", "ctrl+c")
}

func isBack(msg tea.KeyMsg) bool {
	if msg.Type == tea.KeyEsc {
		return true
	}
	return isKey(msg, "esc", "escape", "ctrl+[")
}

func isUp(msg tea.KeyMsg) bool    { return isKey(msg, "up", "k") }
func isDown(msg tea.KeyMsg) bool  { return isKey(msg, "down", "j") }
func isEnter(msg tea.KeyMsg) bool { return isKey(msg, "enter") }
func isSpace(msg tea.KeyMsg) bool { return isKey(msg, " ", "space") }
