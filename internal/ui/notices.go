package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/agency360/cli/internal/ui/components"
)

// --- Notices ---

const noticeTTL = 2500 * time.Millisecond

type noticeLevel string

const (
	noticeSuccess noticeLevel = "success"
	noticeWarning noticeLevel = "warning"
	noticeError   noticeLevel = "error"
	noticeInfo    noticeLevel = "info"
)

type Notice struct {
	ID    string
	Level noticeLevel
	Text  string
}

type noticeExpiredMsg struct{ id string }

// Notices holds the flashbar entries shown above the active tab. Posting
// replaces the queue wholesale: at most one notice is visible at a time,
// and a new outcome always supersedes whatever was showing.
type Notices struct {
	items []Notice
}

// Post replaces the queue with a single new notice and returns it so the
// caller can schedule expiry against its ID.
func (n *Notices) Post(level noticeLevel, text string) Notice {
	notice := Notice{
		ID:    uuid.NewString(),
		Level: level,
		Text:  components.SanitizeOneLine(text),
	}
	n.items = []Notice{notice}
	return notice
}

// Dismiss removes the notice with the given ID. A stale expiry timer for a
// notice that has already been replaced is a no-op.
func (n *Notices) Dismiss(id string) {
	kept := n.items[:0]
	for _, notice := range n.items {
		if notice.ID != id {
			kept = append(kept, notice)
		}
	}
	n.items = kept
}

func (n *Notices) Clear() {
	n.items = nil
}

func (n *Notices) Items() []Notice {
	return n.items
}

func (n *Notices) Empty() bool {
	return len(n.items) == 0
}

// expireNotice schedules the auto-dismiss tick for a posted notice. Error
// notices are not scheduled; they stay until dismissed or replaced.
func expireNotice(id string) tea.Cmd {
	return tea.Tick(noticeTTL, func(time.Time) tea.Msg {
		return noticeExpiredMsg{id: id}
	})
}

func renderNotice(notice Notice, width int) string {
	switch notice.Level {
	case noticeError:
		return components.ErrorBox("Error", notice.Text, width)
	case noticeWarning:
		return components.TitledBox("Warning", WarningStyle.Render(notice.Text), width)
	case noticeSuccess:
		return components.TitledBox("Success", SuccessStyle.Render(notice.Text), width)
	default:
		return components.TitledBox("Info", notice.Text, width)
	}
}
