package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/agency360/cli/internal/api"
	"github.com/agency360/cli/internal/ui/components"
)

// --- Messages ---

type accountsLoadedMsg struct{ items []api.Account }
type accountSavedMsg struct {
	account api.Account
	created bool
}
type accountDeletedMsg struct{ id string }

// --- View States ---

type accountsView int

const (
	accountsViewList accountsView = iota
	accountsViewForm
	accountsViewConfirm
	accountsViewDetail
)

const (
	acctFocusID = iota
	acctFocusName
	acctFocusARN
	acctFocusMethod
	acctFocusEmail
	acctFocusStatus
	acctFocusCount
)

var accountStatusOptions = []string{api.AccountActive, api.AccountInactive}
var joinedMethodOptions = []string{api.JoinedInvited, api.JoinedSelf}

const accountsPageSize = 10

// --- Accounts Model ---

type AccountsModel struct {
	client *api.Client
	pager  *components.Pager[api.Account]
	view   accountsView
	width  int
	height int

	filtering bool

	// form
	editing   *api.Account
	fields    []formField
	focus     int
	methodIdx int
	statusIdx int
	saving    bool
	errText   string

	// confirm
	confirmKind string
	confirmID   string

	// detail
	detail *api.Account
}

func matchAccount(a api.Account, term string) bool {
	return strings.Contains(strings.ToLower(a.Name), term) ||
		strings.Contains(strings.ToLower(a.Email), term) ||
		strings.Contains(strings.ToLower(a.AccountID), term) ||
		strings.Contains(strings.ToLower(a.Status), term)
}

func NewAccountsModel(client *api.Client) AccountsModel {
	return AccountsModel{
		client: client,
		pager:  components.NewPager(accountsPageSize, matchAccount),
		view:   accountsViewList,
	}
}

func (m AccountsModel) Init() tea.Cmd {
	return m.loadAccounts()
}

func (m AccountsModel) loadAccounts() tea.Cmd {
	return func() tea.Msg {
		items, err := m.client.ListAccounts()
		if err != nil {
			return errMsg{err}
		}
		return accountsLoadedMsg{items: items}
	}
}

func (m AccountsModel) Update(msg tea.Msg) (AccountsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case accountsLoadedMsg:
		m.pager.SetItems(msg.items)
		return m, nil

	case accountSavedMsg:
		m.saving = false
		m.view = accountsViewList
		if msg.created {
			m.pager.Append(msg.account)
		} else {
			saved := msg.account
			m.pager.Patch(
				func(a api.Account) bool { return a.ID == saved.ID },
				func(api.Account) api.Account { return saved },
			)
		}
		m.editing = nil
		return m, nil

	case accountDeletedMsg:
		// Deletion refetches the whole collection rather than splicing
		// locally; the placeholder phase is already over and stays over.
		return m, m.loadAccounts()

	case errMsg:
		if m.pager.Loading() {
			m.pager.EndLoading()
		}
		m.saving = false
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case accountsViewForm:
			return m.handleFormKeys(msg)
		case accountsViewConfirm:
			return m.handleConfirmKeys(msg)
		case accountsViewDetail:
			return m.handleDetailKeys(msg)
		default:
			if m.filtering {
				return m.handleFilterKeys(msg)
			}
			return m.handleListKeys(msg)
		}
	}
	return m, nil
}

// --- List View ---

func (m AccountsModel) handleListKeys(msg tea.KeyMsg) (AccountsModel, tea.Cmd) {
	switch {
	case isDown(msg):
		m.pager.CursorDown()
	case isUp(msg):
		m.pager.CursorUp()
	case isKey(msg, "left"):
		m.pager.PrevPage()
	case isKey(msg, "right"):
		m.pager.NextPage()
	case isKey(msg, "f", "/"):
		m.filtering = true
	case isKey(msg, "a"):
		m.startForm(nil)
	case isEnter(msg), isKey(msg, "e"):
		if account, ok := m.pager.Selected(); ok {
			item := account
			m.startForm(&item)
		}
	case isKey(msg, "v"):
		if account, ok := m.pager.Selected(); ok {
			item := account
			m.detail = &item
			m.view = accountsViewDetail
		}
	case isKey(msg, "t"):
		if account, ok := m.pager.Selected(); ok {
			if account.Status == api.AccountActive {
				m.confirmKind = "deactivate"
			} else {
				m.confirmKind = "activate"
			}
			m.confirmID = account.ID
			m.view = accountsViewConfirm
		}
	case isKey(msg, "d"):
		if account, ok := m.pager.Selected(); ok {
			m.confirmKind = "delete"
			m.confirmID = account.ID
			m.view = accountsViewConfirm
		}
	case isKey(msg, "r"):
		return m, m.loadAccounts()
	case isBack(msg):
		if m.pager.Filter() != "" {
			m.pager.SetFilter("")
		}
	}
	return m, nil
}

func (m AccountsModel) handleFilterKeys(msg tea.KeyMsg) (AccountsModel, tea.Cmd) {
	switch {
	case isBack(msg):
		m.filtering = false
		m.pager.SetFilter("")
	case isEnter(msg):
		m.filtering = false
	case isKey(msg, "backspace", "delete"):
		m.pager.SetFilter(dropLastRune(m.pager.Filter()))
	default:
		ch := msg.String()
		if len(ch) == 1 || ch == " " {
			m.pager.SetFilter(m.pager.Filter() + ch)
		}
	}
	return m, nil
}

func accountColumns() []components.TableColumn {
	return []components.TableColumn{
		{Header: "Name", Width: 20},
		{Header: "Account ID", Width: 14},
		{Header: "Email", Width: 24},
		{Header: "Status", Width: 10},
		{Header: "Method", Width: 9},
		{Header: "Joined", Width: 12},
	}
}

func accountRow(a api.Account) []string {
	return []string{a.Name, a.AccountID, a.Email, a.Status, a.JoinedMethod, a.JoinedAt}
}

func (m AccountsModel) renderList() string {
	columns := accountColumns()
	var rows [][]string
	if m.pager.Loading() {
		for i := 0; i < m.pager.PageSize(); i++ {
			rows = append(rows, components.SkeletonRow(columns))
		}
	} else {
		for _, a := range m.pager.Visible() {
			rows = append(rows, accountRow(a))
		}
	}

	countLine := fmt.Sprintf("%d accounts", m.pager.Len())
	if m.pager.Filter() != "" {
		countLine = fmt.Sprintf("%d of %d match: %s", m.pager.FilteredLen(), m.pager.Len(), m.pager.Filter())
		if m.filtering {
			countLine += "█"
		}
	} else if m.filtering {
		countLine += " · filter: █"
	}

	activeRow := m.pager.Cursor()
	if m.pager.Loading() || len(rows) == 0 {
		activeRow = -1
	}
	grid := components.TableGrid(columns, rows, m.width, activeRow)
	if !m.pager.Loading() && len(rows) == 0 {
		empty := "No accounts found"
		if m.pager.Filter() != "" {
			empty = "No accounts match the filter"
		}
		grid += "\n" + components.CenterLine(MutedStyle.Render(empty), m.width)
	}

	pageLine := fmt.Sprintf("Page %d of %d", m.pager.Page(), m.pager.PageCount())
	content := MutedStyle.Render(countLine) + "\n\n" + grid + "\n" + MutedStyle.Render(pageLine)
	return components.TitledBox("Accounts", content, m.width)
}

// --- Detail ---

func (m AccountsModel) handleDetailKeys(msg tea.KeyMsg) (AccountsModel, tea.Cmd) {
	switch {
	case isBack(msg), isKey(msg, "v"):
		m.view = accountsViewList
		m.detail = nil
	case isEnter(msg), isKey(msg, "e"):
		if m.detail != nil {
			item := *m.detail
			m.detail = nil
			m.startForm(&item)
		}
	}
	return m, nil
}

func (m AccountsModel) renderDetail() string {
	if m.detail == nil {
		return m.renderList()
	}
	a := m.detail
	rows := []components.TableRow{
		{Label: "Account ID", Value: a.AccountID},
		{Label: "Name", Value: a.Name},
		{Label: "ARN", Value: a.ARN},
		{Label: "Email", Value: a.Email},
		{Label: "Status", Value: a.Status},
		{Label: "Joined Method", Value: a.JoinedMethod},
		{Label: "Joined Date", Value: a.JoinedAt},
	}
	return components.Table("Account Details", rows, m.width)
}

// --- Form ---

func (m *AccountsModel) startForm(account *api.Account) {
	m.editing = account
	m.focus = acctFocusID
	m.errText = ""
	m.saving = false
	m.fields = []formField{
		{label: "Account ID"},
		{label: "Account Name"},
		{label: "Account ARN"},
		{label: "Email"},
	}
	m.methodIdx = 0
	m.statusIdx = 0
	if account != nil {
		m.fields[0].value = account.AccountID
		m.fields[0].readonly = true
		m.fields[1].value = account.Name
		m.fields[2].value = account.ARN
		m.fields[3].value = account.Email
		m.methodIdx = optionIndex(joinedMethodOptions, account.JoinedMethod)
		m.statusIdx = optionIndex(accountStatusOptions, account.Status)
		m.focus = acctFocusName
	}
	m.view = accountsViewForm
}

// textFieldFor maps a focus slot to its backing text field, nil for selects.
func (m *AccountsModel) textFieldFor(focus int) *formField {
	switch focus {
	case acctFocusID:
		return &m.fields[0]
	case acctFocusName:
		return &m.fields[1]
	case acctFocusARN:
		return &m.fields[2]
	case acctFocusEmail:
		return &m.fields[3]
	}
	return nil
}

func (m AccountsModel) handleFormKeys(msg tea.KeyMsg) (AccountsModel, tea.Cmd) {
	if m.saving {
		return m, nil
	}
	switch {
	case isDown(msg), isKey(msg, "tab"):
		m.focus = (m.focus + 1) % acctFocusCount
	case isUp(msg), isKey(msg, "shift+tab"):
		m.focus = (m.focus - 1 + acctFocusCount) % acctFocusCount
	case isKey(msg, "ctrl+s"):
		return m.saveForm()
	case isBack(msg):
		m.view = accountsViewList
		m.editing = nil
		m.errText = ""
	default:
		switch m.focus {
		case acctFocusMethod:
			switch {
			case isKey(msg, "left"):
				m.methodIdx = cycleOption(m.methodIdx, len(joinedMethodOptions), -1)
			case isKey(msg, "right"), isSpace(msg):
				m.methodIdx = cycleOption(m.methodIdx, len(joinedMethodOptions), 1)
			}
		case acctFocusStatus:
			switch {
			case isKey(msg, "left"):
				m.statusIdx = cycleOption(m.statusIdx, len(accountStatusOptions), -1)
			case isKey(msg, "right"), isSpace(msg):
				m.statusIdx = cycleOption(m.statusIdx, len(accountStatusOptions), 1)
			}
		default:
			if f := m.textFieldFor(m.focus); f != nil {
				handleFieldKey(f, msg)
			}
		}
	}
	return m, nil
}

func (m AccountsModel) saveForm() (AccountsModel, tea.Cmd) {
	accountID := strings.TrimSpace(m.fields[0].value)
	name := strings.TrimSpace(m.fields[1].value)
	if accountID == "" {
		m.errText = "Account ID is required"
		return m, nil
	}
	if name == "" {
		m.errText = "Account Name is required"
		return m, nil
	}

	input := api.AccountInput{
		AccountID:    accountID,
		Name:         name,
		ARN:          strings.TrimSpace(m.fields[2].value),
		Email:        strings.TrimSpace(m.fields[3].value),
		JoinedMethod: joinedMethodOptions[m.methodIdx],
		Status:       accountStatusOptions[m.statusIdx],
	}

	m.errText = ""
	m.saving = true

	if m.editing == nil {
		input.JoinedAt = time.Now().UTC().Format("2006-01-02")
		return m, func() tea.Msg {
			created, err := m.client.CreateAccount(input)
			if err != nil {
				return errMsg{err}
			}
			return accountSavedMsg{account: *created, created: true}
		}
	}

	// The update response body is ignored; the saved row is rebuilt from
	// the submitted input so the table reflects exactly what was sent.
	updated := *m.editing
	updated.AccountID = input.AccountID
	updated.Name = input.Name
	updated.ARN = input.ARN
	updated.Email = input.Email
	updated.JoinedMethod = input.JoinedMethod
	updated.Status = input.Status
	id := m.editing.ID
	return m, func() tea.Msg {
		if err := m.client.UpdateAccount(id, input); err != nil {
			return errMsg{err}
		}
		return accountSavedMsg{account: updated}
	}
}

func (m AccountsModel) renderForm() string {
	var b strings.Builder
	if m.editing != nil {
		b.WriteString(MutedStyle.Render("Account: " + m.editing.Name))
		b.WriteString("\n\n")
	}
	for focus := 0; focus < acctFocusCount; focus++ {
		switch focus {
		case acctFocusMethod:
			b.WriteString(renderSelectField("Joined Method", joinedMethodOptions, m.methodIdx, m.focus == focus))
		case acctFocusStatus:
			b.WriteString(renderSelectField("Status", accountStatusOptions, m.statusIdx, m.focus == focus))
		default:
			if f := m.textFieldFor(focus); f != nil {
				b.WriteString(renderField(*f, m.focus == focus))
			}
		}
		if focus < acctFocusCount-1 {
			b.WriteString("\n\n")
		}
	}
	if m.editing != nil && m.editing.JoinedAt != "" {
		b.WriteString("\n\n")
		b.WriteString("  " + components.InfoRow("Joined Date", m.editing.JoinedAt))
	}

	if m.saving {
		b.WriteString("\n\n" + MutedStyle.Render("Saving..."))
	}
	if m.errText != "" {
		b.WriteString("\n\n")
		b.WriteString(ErrorStyle.Render(m.errText))
	}

	title := "Add Account"
	if m.editing != nil {
		title = "Edit Account"
	}
	return components.TitledBox(title, b.String(), m.width)
}

// --- Confirm ---

func (m AccountsModel) handleConfirmKeys(msg tea.KeyMsg) (AccountsModel, tea.Cmd) {
	switch {
	case isKey(msg, "y"):
		id := m.confirmID
		kind := m.confirmKind
		m.view = accountsViewList
		m.confirmKind = ""
		m.confirmID = ""
		switch kind {
		case "delete":
			return m, func() tea.Msg {
				if err := m.client.DeleteAccount(id); err != nil {
					return errMsg{err}
				}
				return accountDeletedMsg{id: id}
			}
		case "activate", "deactivate":
			return m, m.toggleStatusCmd(id)
		}
	case isKey(msg, "n"), isBack(msg):
		m.view = accountsViewList
		m.confirmKind = ""
		m.confirmID = ""
	}
	return m, nil
}

func (m AccountsModel) toggleStatusCmd(id string) tea.Cmd {
	var target *api.Account
	for _, a := range m.pager.Items() {
		if a.ID == id {
			item := a
			target = &item
			break
		}
	}
	if target == nil {
		return nil
	}
	flipped := *target
	if flipped.Status == api.AccountActive {
		flipped.Status = api.AccountInactive
	} else {
		flipped.Status = api.AccountActive
	}
	input := api.AccountInput{
		AccountID:    flipped.AccountID,
		Name:         flipped.Name,
		ARN:          flipped.ARN,
		Email:        flipped.Email,
		JoinedMethod: flipped.JoinedMethod,
		Status:       flipped.Status,
	}
	return func() tea.Msg {
		if err := m.client.UpdateAccount(id, input); err != nil {
			return errMsg{err}
		}
		return accountSavedMsg{account: flipped}
	}
}

func (m AccountsModel) renderConfirm() string {
	text := "Are you sure?"
	switch m.confirmKind {
	case "delete":
		text = "Delete this account?"
	case "activate":
		text = "Activate this account?"
	case "deactivate":
		text = "Deactivate this account?"
	}
	return components.ConfirmDialog("Confirm", text)
}

func (m AccountsModel) View() string {
	switch m.view {
	case accountsViewForm:
		return components.Indent(m.renderForm(), 1)
	case accountsViewConfirm:
		return components.Indent(m.renderConfirm(), 1)
	case accountsViewDetail:
		return components.Indent(m.renderDetail(), 1)
	default:
		return components.Indent(m.renderList(), 1)
	}
}
