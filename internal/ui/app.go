package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/agency360/cli/internal/api"
	"github.com/agency360/cli/internal/config"
	"github.com/agency360/cli/internal/ui/components"
)

// --- Tab Constants ---

const (
	tabAccounts = 0
	tabProducts = 1
	tabCount    = 2
)

var tabNames = []string{"Accounts", "Products"}

// --- Messages ---

type errMsg struct{ err error }

// --- App Model ---

// App is the root TUI model that routes between tabs.
type App struct {
	client      *api.Client
	config      *config.Config
	tab         int
	width       int
	height      int
	helpOpen    bool
	quitConfirm bool

	notices Notices

	accounts AccountsModel
	products ProductsModel
}

// NewApp creates the root application model.
func NewApp(client *api.Client, cfg *config.Config) App {
	return App{
		client:   client,
		config:   cfg,
		tab:      tabAccounts,
		accounts: NewAccountsModel(client),
		products: NewProductsModel(client),
	}
}

func (a App) Init() tea.Cmd {
	return a.accounts.Init()
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.accounts.width = msg.Width
		a.accounts.height = msg.Height
		a.products.width = msg.Width
		a.products.height = msg.Height
		return a, nil

	case noticeExpiredMsg:
		a.notices.Dismiss(msg.id)
		return a, nil

	case tea.KeyMsg:
		if a.quitConfirm {
			switch {
			case isKey(msg, "y"):
				return a, tea.Quit
			case isKey(msg, "n"), isBack(msg):
				a.quitConfirm = false
			}
			return a, nil
		}
		if a.helpOpen {
			if isBack(msg) || isKey(msg, "?") {
				a.helpOpen = false
			}
			return a, nil
		}
		if !a.inputActive() {
			if isKey(msg, "?") {
				a.helpOpen = true
				return a, nil
			}
			if isQuit(msg) {
				if a.hasUnsaved() {
					a.quitConfirm = true
					return a, nil
				}
				return a, tea.Quit
			}
			if isKey(msg, "x") && !a.notices.Empty() {
				a.notices.Clear()
				return a, nil
			}
			if isKey(msg, "tab") {
				return a.switchTab((a.tab + 1) % tabCount)
			}
			if isKey(msg, "1") {
				return a.switchTab(tabAccounts)
			}
			if isKey(msg, "2") {
				return a.switchTab(tabProducts)
			}
		} else if isKey(msg, "ctrl+c") {
			a.quitConfirm = true
			return a, nil
		}
	}

	// Delegate to active tab
	var cmd tea.Cmd
	switch a.tab {
	case tabAccounts:
		a.accounts, cmd = a.accounts.Update(msg)
	case tabProducts:
		a.products, cmd = a.products.Update(msg)
	}
	noticeCmd := a.noticeCmdForMsg(msg)
	if noticeCmd != nil && cmd != nil {
		return a, tea.Batch(cmd, noticeCmd)
	}
	if noticeCmd != nil {
		return a, noticeCmd
	}
	return a, cmd
}

func (a App) View() string {
	banner := Banner(a.width)
	tabs := centerBlockUniform(a.renderTabs(), a.width)

	var content string
	switch a.tab {
	case tabAccounts:
		content = a.accounts.View()
	case tabProducts:
		content = a.products.View()
	}
	content = centerBlockUniform(content, a.width)

	if a.quitConfirm {
		content = centerBlockUniform(components.Indent(components.ConfirmDialog("Quit", "Quit the console?"), 1), a.width)
	} else if a.helpOpen {
		content = centerBlockUniform(a.renderHelp(), a.width)
	}

	flashbar := ""
	for _, notice := range a.notices.Items() {
		flashbar += "\n" + centerBlockUniform(renderNotice(notice, a.width), a.width) + "\n"
	}

	hints := components.StatusBar(a.statusHints(), a.width)

	return fmt.Sprintf("%s\n%s\n%s\n%s\n\n%s", banner, tabs, flashbar, content, hints)
}

func (a *App) switchTab(newTab int) (App, tea.Cmd) {
	oldTab := a.tab
	a.tab = newTab
	if oldTab != newTab {
		return *a, a.initTab(newTab)
	}
	return *a, nil
}

func (a App) initTab(tab int) tea.Cmd {
	switch tab {
	case tabAccounts:
		return a.accounts.Init()
	case tabProducts:
		return a.products.Init()
	}
	return nil
}

func (a App) renderTabs() string {
	segments := make([]string, 0, len(tabNames))
	for i, name := range tabNames {
		if i == a.tab {
			segments = append(segments, TabActiveStyle.Render(name))
		} else {
			segments = append(segments, TabInactiveStyle.Render(name))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, segments...)
}

// inputActive reports whether the active tab is consuming raw text input,
// in which case global single-letter keys must not fire.
func (a App) inputActive() bool {
	switch a.tab {
	case tabAccounts:
		return a.accounts.view == accountsViewForm || a.accounts.filtering
	case tabProducts:
		return a.products.view == productsViewForm || a.products.filtering
	}
	return false
}

func (a App) hasUnsaved() bool {
	return a.accounts.view == accountsViewForm || a.products.view == productsViewForm
}

// noticeCmdForMsg posts a flashbar notice for completed operations flowing
// through the app, and schedules expiry for the transient levels.
func (a *App) noticeCmdForMsg(msg tea.Msg) tea.Cmd {
	var level noticeLevel
	var text string
	switch msg := msg.(type) {
	case accountSavedMsg:
		if msg.created {
			level, text = noticeSuccess, "Account created successfully!"
		} else {
			level, text = noticeSuccess, "Account updated successfully!"
		}
	case accountDeletedMsg:
		level, text = noticeSuccess, "Account deleted successfully!"
	case productSavedMsg:
		verb := "updated"
		if msg.created {
			verb = "created"
		}
		if err := msg.links.Err(); err != nil {
			level = noticeWarning
			text = fmt.Sprintf("Product %s, but %v", verb, err)
		} else {
			level, text = noticeSuccess, fmt.Sprintf("Product %s successfully!", verb)
		}
	case productDeletedMsg:
		if msg.failed > 0 {
			level = noticeWarning
			text = fmt.Sprintf("Product deleted, but %d account link(s) could not be removed", msg.failed)
		} else {
			level, text = noticeSuccess, "Product deleted successfully!"
		}
	case errMsg:
		level, text = noticeError, msg.err.Error()
	}
	if text == "" {
		return nil
	}
	notice := a.notices.Post(level, text)
	if level == noticeError {
		// Errors stay until dismissed or replaced.
		return nil
	}
	return expireNotice(notice.ID)
}

func (a App) renderHelp() string {
	hints := a.statusHintsForTab()
	lines := make([]string, 0, len(hints)+3)
	lines = append(lines, HeaderStyle.Render("Key Bindings"))
	lines = append(lines, MutedStyle.Render("esc to close"))
	lines = append(lines, "")
	for _, hint := range hints {
		lines = append(lines, "  "+hint)
	}
	body := strings.Join(lines, "\n")
	return components.Indent(components.TitledBox("Help", body, a.width), 1)
}

func (a App) statusHints() []string {
	if a.quitConfirm {
		return []string{
			components.Hint("y", "Confirm"),
			components.Hint("n", "Cancel"),
		}
	}
	if a.helpOpen {
		return []string{components.Hint("esc", "Back")}
	}
	return a.statusHintsForTab()
}

func (a App) statusHintsForTab() []string {
	base := []string{
		components.Hint("1/2/tab", "Tabs"),
		components.Hint("?", "Help"),
		components.Hint("q", "Quit"),
	}

	switch a.tab {
	case tabAccounts:
		switch a.accounts.view {
		case accountsViewForm:
			return append(base,
				components.Hint("↑/↓", "Fields"),
				components.Hint("←/→", "Cycle"),
				components.Hint("ctrl+s", "Save"),
				components.Hint("esc", "Cancel"),
			)
		case accountsViewConfirm:
			return append(base,
				components.Hint("y", "Confirm"),
				components.Hint("n", "Cancel"),
			)
		case accountsViewDetail:
			return append(base,
				components.Hint("enter", "Edit"),
				components.Hint("esc", "Back"),
			)
		default:
			if a.accounts.filtering {
				return append(base,
					components.Hint("enter", "Apply"),
					components.Hint("esc", "Clear"),
				)
			}
			return append(base,
				components.Hint("↑/↓", "Rows"),
				components.Hint("←/→", "Page"),
				components.Hint("f", "Filter"),
				components.Hint("a", "Add"),
				components.Hint("enter", "Edit"),
				components.Hint("v", "View"),
				components.Hint("t", "Toggle Status"),
				components.Hint("d", "Delete"),
			)
		}
	case tabProducts:
		switch a.products.view {
		case productsViewForm:
			return append(base,
				components.Hint("↑/↓", "Fields"),
				components.Hint("←/→", "Page"),
				components.Hint("space", "Link"),
				components.Hint("ctrl+s", "Save"),
				components.Hint("esc", "Cancel"),
			)
		case productsViewConfirm:
			return append(base,
				components.Hint("y", "Confirm"),
				components.Hint("n", "Cancel"),
			)
		default:
			if a.products.filtering {
				return append(base,
					components.Hint("enter", "Apply"),
					components.Hint("esc", "Clear"),
				)
			}
			return append(base,
				components.Hint("↑/↓", "Rows"),
				components.Hint("←/→", "Page"),
				components.Hint("f", "Filter"),
				components.Hint("a", "Add"),
				components.Hint("enter", "Edit"),
				components.Hint("d", "Delete"),
			)
		}
	}
	return base
}

func centerBlockUniform(s string, width int) string {
	if width <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	maxWidth := 0
	for _, line := range lines {
		w := lipgloss.Width(line)
		if w > maxWidth {
			maxWidth = w
		}
	}
	if maxWidth <= 0 || maxWidth >= width {
		return s
	}
	pad := (width - maxWidth) / 2
	if pad <= 0 {
		return s
	}
	prefix := strings.Repeat(" ", pad)
	for i := range lines {
		if lines[i] != "" {
			lines[i] = prefix + lines[i]
		}
	}
	return strings.Join(lines, "\n")
}
