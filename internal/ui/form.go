package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

type formField struct {
	label    string
	value    string
	readonly bool
}

// handleFieldKey applies a single editing keystroke to a text field.
// Returns false when the key is not a text edit (navigation, save, etc.).
func handleFieldKey(f *formField, msg tea.KeyMsg) bool {
	if f.readonly {
		return false
	}
	if isKey(msg, "backspace", "delete") {
		f.value = dropLastRune(f.value)
		return true
	}
	if isKey(msg, "cmd+backspace", "cmd+delete", "ctrl+u") {
		f.value = ""
		return true
	}
	ch := msg.String()
	if len(ch) == 1 || ch == " " {
		f.value += ch
		return true
	}
	return false
}

func dropLastRune(s string) string {
	if s == "" {
		return ""
	}
	runes := []rune(s)
	return string(runes[:len(runes)-1])
}

func optionIndex(options []string, value string) int {
	for i, opt := range options {
		if opt == value {
			return i
		}
	}
	return 0
}

func cycleOption(idx, count, delta int) int {
	if count == 0 {
		return 0
	}
	return (idx + delta + count) % count
}

// renderField renders a labeled form field in the focused or blurred state.
func renderField(f formField, focused bool) string {
	var b strings.Builder
	if focused {
		b.WriteString(SelectedStyle.Render("> " + f.label + ":"))
		b.WriteString("\n")
		b.WriteString(NormalStyle.Render("  " + f.value))
		if !f.readonly {
			b.WriteString(AccentStyle.Render("█"))
		}
	} else {
		b.WriteString(MutedStyle.Render("  " + f.label + ":"))
		b.WriteString("\n")
		val := f.value
		if val == "" {
			val = "-"
		}
		b.WriteString(NormalStyle.Render("  " + val))
	}
	return b.String()
}

// renderSelectField renders a fixed-options field cycled with left/right.
func renderSelectField(label string, options []string, idx int, focused bool) string {
	var b strings.Builder
	value := ""
	if idx >= 0 && idx < len(options) {
		value = options[idx]
	}
	if focused {
		b.WriteString(SelectedStyle.Render("> " + label + ":"))
		b.WriteString("\n")
		b.WriteString(NormalStyle.Render("  ‹ " + value + " ›"))
	} else {
		b.WriteString(MutedStyle.Render("  " + label + ":"))
		b.WriteString("\n")
		b.WriteString(NormalStyle.Render("  " + value))
	}
	return b.String()
}
