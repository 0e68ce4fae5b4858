package ui

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agency360/cli/internal/api"
	"github.com/agency360/cli/internal/config"
	"github.com/agency360/cli/internal/reconcile"
)

func testApp(t *testing.T) App {
	_, client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]map[string]any{})
	})
	return NewApp(client, &config.Config{APIURL: "http://localhost:8000"})
}

func TestAppStartsOnAccountsTab(t *testing.T) {
	app := testApp(t)
	assert.Equal(t, tabAccounts, app.tab)
	assert.NotNil(t, app.Init())
}

func TestAppTabSwitching(t *testing.T) {
	app := testApp(t)

	next, cmd := app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("2")})
	app = next.(App)
	assert.Equal(t, tabProducts, app.tab)
	// Switching initializes the target tab.
	assert.NotNil(t, cmd)

	next, _ = app.Update(tea.KeyMsg{Type: tea.KeyTab})
	app = next.(App)
	assert.Equal(t, tabAccounts, app.tab)
}

func TestAppWindowSizePropagates(t *testing.T) {
	app := testApp(t)
	next, _ := app.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	app = next.(App)
	assert.Equal(t, 120, app.width)
	assert.Equal(t, 120, app.accounts.width)
	assert.Equal(t, 120, app.products.width)
}

func TestAppQuitConfirm(t *testing.T) {
	app := testApp(t)

	next, cmd := app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	app = next.(App)
	assert.False(t, app.quitConfirm)
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestAppQuitConfirmWithOpenForm(t *testing.T) {
	app := testApp(t)
	app.accounts.startForm(nil)

	next, cmd := app.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	app = next.(App)
	assert.True(t, app.quitConfirm)
	assert.Nil(t, cmd)

	next, _ = app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("n")})
	app = next.(App)
	assert.False(t, app.quitConfirm)
}

func TestAppGlobalKeysSuspendedWhileTyping(t *testing.T) {
	app := testApp(t)
	app.accounts.startForm(nil)
	app.accounts.focus = acctFocusName

	// "q" is text while a form is open, not quit.
	next, cmd := app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	app = next.(App)
	assert.Nil(t, cmd)
	assert.Equal(t, "q", app.accounts.fields[1].value)
}

func TestAppHelpOverlay(t *testing.T) {
	app := testApp(t)
	next, _ := app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("?")})
	app = next.(App)
	assert.True(t, app.helpOpen)
	assert.Contains(t, app.View(), "Key Bindings")

	next, _ = app.Update(tea.KeyMsg{Type: tea.KeyEsc})
	app = next.(App)
	assert.False(t, app.helpOpen)
}

func TestAppPostsSuccessNoticeOnSave(t *testing.T) {
	app := testApp(t)
	account := api.Account{ID: "a-1", Name: "team-1"}

	next, cmd := app.Update(accountSavedMsg{account: account, created: true})
	app = next.(App)
	require.Len(t, app.notices.Items(), 1)
	assert.Equal(t, noticeSuccess, app.notices.Items()[0].Level)
	assert.Contains(t, app.notices.Items()[0].Text, "created")
	// Success notices schedule their own expiry.
	assert.NotNil(t, cmd)
}

func TestAppErrorNoticeSticks(t *testing.T) {
	app := testApp(t)

	next, cmd := app.Update(errMsg{errors.New("connection refused")})
	app = next.(App)
	require.Len(t, app.notices.Items(), 1)
	assert.Equal(t, noticeError, app.notices.Items()[0].Level)
	// No expiry scheduled for errors.
	assert.Nil(t, cmd)
}

func TestAppWarningNoticeOnPartialLinkFailure(t *testing.T) {
	app := testApp(t)
	result := reconcile.Result{
		Created: []string{"a-1"},
		Failed:  []reconcile.OpError{{Op: "delete", ID: "l-1", Err: errors.New("boom")}},
	}

	next, _ := app.Update(productSavedMsg{product: api.Product{ID: "p-1"}, links: result})
	app = next.(App)
	require.Len(t, app.notices.Items(), 1)
	assert.Equal(t, noticeWarning, app.notices.Items()[0].Level)
}

func TestAppNoticeExpiry(t *testing.T) {
	app := testApp(t)
	next, _ := app.Update(accountDeletedMsg{id: "a-1"})
	app = next.(App)
	require.Len(t, app.notices.Items(), 1)
	id := app.notices.Items()[0].ID

	next, _ = app.Update(noticeExpiredMsg{id: id})
	app = next.(App)
	assert.True(t, app.notices.Empty())
}

func TestAppNoticeReplacedBeforeExpiry(t *testing.T) {
	app := testApp(t)
	next, _ := app.Update(accountDeletedMsg{id: "a-1"})
	app = next.(App)
	stale := app.notices.Items()[0].ID

	next, _ = app.Update(accountSavedMsg{account: api.Account{ID: "a-2"}, created: true})
	app = next.(App)

	// The stale timer fires after replacement and must not clear the
	// newer notice.
	next, _ = app.Update(noticeExpiredMsg{id: stale})
	app = next.(App)
	require.Len(t, app.notices.Items(), 1)
	assert.Contains(t, app.notices.Items()[0].Text, "created")
}

func TestAppDismissKeyClearsNotices(t *testing.T) {
	app := testApp(t)
	next, _ := app.Update(errMsg{errors.New("boom")})
	app = next.(App)
	require.False(t, app.notices.Empty())

	next, _ = app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	app = next.(App)
	assert.True(t, app.notices.Empty())
}

func TestAppViewRendersTabsAndHints(t *testing.T) {
	app := testApp(t)
	app.width = 100
	out := app.View()
	assert.Contains(t, out, "Accounts")
	assert.Contains(t, out, "Products")
	assert.Contains(t, out, "Help")
}
