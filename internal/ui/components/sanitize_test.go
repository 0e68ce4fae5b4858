package components

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeOneLineStripsOscAndNewlines(t *testing.T) {
	input := "\x1b]8;;https://evil\x07click\x1b]8;;\x07\nline\tmore"
	out := SanitizeOneLine(input)

	assert.False(t, strings.Contains(out, "\x1b"))
	assert.False(t, strings.Contains(out, "\n"))
	assert.False(t, strings.Contains(out, "\t"))
}

func TestSanitizeTextRemovesBidiControls(t *testing.T) {
	input := "safe‮exe.txt"
	out := SanitizeText(input)

	assert.NotContains(t, out, "‮")
}

func TestSanitizeTextKeepsNewlines(t *testing.T) {
	out := SanitizeText("line one\nline two")
	assert.Contains(t, out, "\n")
}
