package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var bannerLines = []string{
	`    _                           ____   __ ___  `,
	`   / \   __ _  ___ _ __   ___ _|___ \ / /| __ \`,
	`  / _ \ / _` + "`" + ` |/ _ \ '_ \ / __| | __) / _ \| \/ |`,
	` / ___ \ (_| |  __/ | | | (__| |/ __/ (_) |__| |`,
	`/_/   \_\__, |\___|_| |_|\___|_|_____\___/ \___/`,
	`        |___/                                   `,
}

// Banner renders the console banner centered in the given width. Below a
// minimum width it degrades to a single plain-text title line.
func Banner(width int) string {
	if width < 52 {
		return BannerStyle.
			Width(width).
			Align(lipgloss.Center).
			Render("Agency360 Console")
	}
	var b strings.Builder
	for i, line := range bannerLines {
		b.WriteString(BannerStyle.
			Width(width).
			Align(lipgloss.Center).
			Render(line))
		if i < len(bannerLines)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}
