package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/agency360/cli/internal/api"
	"github.com/agency360/cli/internal/reconcile"
	"github.com/agency360/cli/internal/ui/components"
)

// --- Messages ---

type productsLoadedMsg struct{ items []api.Product }
type pickerAccountsLoadedMsg struct{ items []api.Account }
type productLinksLoadedMsg struct {
	productID string
	views     []api.LinkView
}
type productSavedMsg struct {
	product api.Product
	created bool
	links   reconcile.Result
}
type productDeletedMsg struct {
	id     string
	failed int
}

// --- View States ---

type productsView int

const (
	productsViewList productsView = iota
	productsViewForm
	productsViewConfirm
)

const (
	prodFocusName = iota
	prodFocusOwner
	prodFocusPosition
	prodFocusDescription
	prodFocusPicker
	prodFocusCount
)

const (
	productsPageSize = 10
	pickerPageSize   = 5
)

// linkApplier adapts the REST client to the reconciliation plan.
type linkApplier struct{ client *api.Client }

func (a linkApplier) CreateLink(productID, accountID string) error {
	_, err := a.client.CreateLink(productID, accountID)
	return err
}

func (a linkApplier) DeleteLink(linkID string) error {
	return a.client.DeleteLink(linkID)
}

// --- Products Model ---

type ProductsModel struct {
	client *api.Client
	pager  *components.Pager[api.Product]
	view   productsView
	width  int
	height int

	filtering bool

	// shared account collection backing the picker
	allAccounts []api.Account

	// form
	editing *api.Product
	fields  []formField
	focus   int
	saving  bool
	errText string

	// picker
	picker          *components.Pager[api.Account]
	pickerFiltering bool
	linksPending    bool
	selection       reconcile.Selection
	baseline        []string

	// delete
	confirmID string
}

func matchProduct(p api.Product, term string) bool {
	return strings.Contains(strings.ToLower(p.Name), term) ||
		strings.Contains(strings.ToLower(p.Owner), term) ||
		strings.Contains(strings.ToLower(p.Position), term)
}

func NewProductsModel(client *api.Client) ProductsModel {
	return ProductsModel{
		client: client,
		pager:  components.NewPager(productsPageSize, matchProduct),
		view:   productsViewList,
	}
}

func (m ProductsModel) Init() tea.Cmd {
	return tea.Batch(m.loadProducts(), m.loadPickerAccounts())
}

func (m ProductsModel) loadProducts() tea.Cmd {
	return func() tea.Msg {
		items, err := m.client.ListProducts()
		if err != nil {
			return errMsg{err}
		}
		return productsLoadedMsg{items: items}
	}
}

func (m ProductsModel) loadPickerAccounts() tea.Cmd {
	return func() tea.Msg {
		items, err := m.client.ListAccounts()
		if err != nil {
			return errMsg{err}
		}
		return pickerAccountsLoadedMsg{items: items}
	}
}

func (m ProductsModel) loadLinks(productID string) tea.Cmd {
	return func() tea.Msg {
		views, err := m.client.ListProductLinkViews(productID)
		if err != nil {
			return errMsg{err}
		}
		return productLinksLoadedMsg{productID: productID, views: views}
	}
}

func (m ProductsModel) Update(msg tea.Msg) (ProductsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case productsLoadedMsg:
		m.pager.SetItems(msg.items)
		return m, nil

	case pickerAccountsLoadedMsg:
		m.allAccounts = msg.items
		// An open picker gets the fresh collection unless it is still
		// waiting for the edited product's links; ending its placeholder
		// phase before the baseline is known would corrupt the diff.
		if m.picker != nil && !m.linksPending {
			m.picker.SetItems(msg.items)
		}
		return m, nil

	case productLinksLoadedMsg:
		// Stale responses for a product whose form is no longer open are
		// dropped; only the links of the product being edited matter.
		if m.view != productsViewForm || m.editing == nil || m.editing.ID != msg.productID {
			return m, nil
		}
		entries := make([]reconcile.Entry, 0, len(msg.views))
		baseline := make([]string, 0, len(msg.views))
		for _, v := range msg.views {
			entries = append(entries, reconcile.Entry{AccountID: v.AccountID, LinkID: v.ID})
			baseline = append(baseline, v.ID)
		}
		m.selection = reconcile.Seed(entries)
		m.baseline = baseline
		m.linksPending = false
		if m.picker != nil {
			m.picker.SetItems(m.allAccounts)
		}
		return m, nil

	case productSavedMsg:
		m.saving = false
		m.view = productsViewList
		if msg.created {
			m.pager.Append(msg.product)
		} else {
			saved := msg.product
			m.pager.Patch(
				func(p api.Product) bool { return p.ID == saved.ID },
				func(api.Product) api.Product { return saved },
			)
		}
		m.editing = nil
		m.picker = nil
		return m, nil

	case productDeletedMsg:
		return m, m.loadProducts()

	case errMsg:
		if m.pager.Loading() {
			m.pager.EndLoading()
		}
		if m.picker != nil && m.picker.Loading() {
			m.picker.EndLoading()
		}
		m.saving = false
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case productsViewForm:
			return m.handleFormKeys(msg)
		case productsViewConfirm:
			return m.handleConfirmKeys(msg)
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

func (m ProductsModel) handleListKeys(msg tea.KeyMsg) (ProductsModel, tea.Cmd) {
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
		return m.startForm(nil)
	case isEnter(msg), isKey(msg, "e"):
		if product, ok := m.pager.Selected(); ok {
			item := product
			return m.startForm(&item)
		}
	case isKey(msg, "d"):
		if product, ok := m.pager.Selected(); ok {
			m.confirmID = product.ID
			m.view = productsViewConfirm
		}
	case isKey(msg, "r"):
		return m, m.loadProducts()
	case isBack(msg):
		if m.pager.Filter() != "" {
			m.pager.SetFilter("")
		}
	}
	return m, nil
}

func (m ProductsModel) handleFilterKeys(msg tea.KeyMsg) (ProductsModel, tea.Cmd) {
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

func productColumns() []components.TableColumn {
	return []components.TableColumn{
		{Header: "Name", Width: 22},
		{Header: "Owner", Width: 18},
		{Header: "Position", Width: 14},
		{Header: "Updated", Width: 20},
	}
}

func productRow(p api.Product) []string {
	return []string{p.Name, p.Owner, p.Position, p.UpdatedAt}
}

func (m ProductsModel) renderList() string {
	columns := productColumns()
	var rows [][]string
	if m.pager.Loading() {
		for i := 0; i < m.pager.PageSize(); i++ {
			rows = append(rows, components.SkeletonRow(columns))
		}
	} else {
		for _, p := range m.pager.Visible() {
			rows = append(rows, productRow(p))
		}
	}

	countLine := fmt.Sprintf("%d products", m.pager.Len())
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
		empty := "No products found"
		if m.pager.Filter() != "" {
			empty = "No products match the filter"
		}
		grid += "\n" + components.CenterLine(MutedStyle.Render(empty), m.width)
	}

	pageLine := fmt.Sprintf("Page %d of %d", m.pager.Page(), m.pager.PageCount())
	content := MutedStyle.Render(countLine) + "\n\n" + grid + "\n" + MutedStyle.Render(pageLine)
	return components.TitledBox("Products", content, m.width)
}

// --- Form ---

func (m ProductsModel) startForm(product *api.Product) (ProductsModel, tea.Cmd) {
	m.editing = product
	m.focus = prodFocusName
	m.errText = ""
	m.saving = false
	m.pickerFiltering = false
	m.fields = []formField{
		{label: "Name"},
		{label: "Owner"},
		{label: "Position"},
		{label: "Description"},
	}
	m.picker = components.NewPager(pickerPageSize, matchAccount)
	m.view = productsViewForm

	if product == nil {
		// Nothing to reconcile against: the baseline of a new product is
		// empty and every checked account becomes an addition.
		m.selection = reconcile.Seed(nil)
		m.baseline = nil
		m.linksPending = false
		m.picker.SetItems(m.allAccounts)
		return m, nil
	}

	m.fields[0].value = product.Name
	m.fields[1].value = product.Owner
	m.fields[2].value = product.Position
	m.fields[3].value = product.Description
	m.selection = reconcile.Seed(nil)
	m.baseline = nil
	m.linksPending = true
	// The picker stays in its placeholder phase until the product's
	// current links arrive and the baseline is known.
	return m, m.loadLinks(product.ID)
}

func (m ProductsModel) handleFormKeys(msg tea.KeyMsg) (ProductsModel, tea.Cmd) {
	if m.saving {
		return m, nil
	}
	if m.focus == prodFocusPicker && m.pickerFiltering {
		return m.handlePickerFilterKeys(msg)
	}
	switch {
	case isDown(msg), isKey(msg, "tab"):
		if m.focus == prodFocusPicker && isDown(msg) {
			m.picker.CursorDown()
			return m, nil
		}
		m.focus = (m.focus + 1) % prodFocusCount
	case isUp(msg), isKey(msg, "shift+tab"):
		if m.focus == prodFocusPicker && isUp(msg) && m.picker.Cursor() > 0 {
			m.picker.CursorUp()
			return m, nil
		}
		m.focus = (m.focus - 1 + prodFocusCount) % prodFocusCount
	case isKey(msg, "ctrl+s"):
		return m.saveForm()
	case isBack(msg):
		m.view = productsViewList
		m.editing = nil
		m.picker = nil
		m.errText = ""
	default:
		if m.focus == prodFocusPicker {
			return m.handlePickerKeys(msg)
		}
		if m.focus < len(m.fields) {
			handleFieldKey(&m.fields[m.focus], msg)
		}
	}
	return m, nil
}

func (m ProductsModel) handlePickerKeys(msg tea.KeyMsg) (ProductsModel, tea.Cmd) {
	switch {
	case isKey(msg, "left"):
		m.picker.PrevPage()
	case isKey(msg, "right"):
		m.picker.NextPage()
	case isKey(msg, "/"):
		m.pickerFiltering = true
	case isSpace(msg), isEnter(msg):
		if account, ok := m.picker.Selected(); ok {
			m.selection.Toggle(account.ID)
		}
	}
	return m, nil
}

func (m ProductsModel) handlePickerFilterKeys(msg tea.KeyMsg) (ProductsModel, tea.Cmd) {
	switch {
	case isBack(msg):
		m.pickerFiltering = false
		m.picker.SetFilter("")
	case isEnter(msg):
		m.pickerFiltering = false
	case isKey(msg, "backspace", "delete"):
		m.picker.SetFilter(dropLastRune(m.picker.Filter()))
	default:
		ch := msg.String()
		if len(ch) == 1 || ch == " " {
			m.picker.SetFilter(m.picker.Filter() + ch)
		}
	}
	return m, nil
}

func pickerColumns() []components.TableColumn {
	return []components.TableColumn{
		{Header: "", Width: 3},
		{Header: "Name", Width: 18},
		{Header: "Email", Width: 22},
		{Header: "Status", Width: 10},
	}
}

func (m ProductsModel) renderPicker(focused bool) string {
	columns := pickerColumns()
	var rows [][]string
	if m.picker.Loading() {
		for i := 0; i < m.picker.PageSize(); i++ {
			rows = append(rows, components.SkeletonRow(columns))
		}
	} else {
		for _, a := range m.picker.Visible() {
			mark := "[ ]"
			if m.selection.Has(a.ID) {
				mark = "[x]"
			}
			rows = append(rows, []string{mark, a.Name, a.Email, a.Status})
		}
	}

	activeRow := -1
	if focused && !m.picker.Loading() && len(rows) > 0 {
		activeRow = m.picker.Cursor()
	}
	grid := components.TableGrid(columns, rows, m.width, activeRow)

	header := fmt.Sprintf("Accounts (%d selected)", m.selection.Len())
	if m.picker.Filter() != "" {
		header = fmt.Sprintf("%s · filter: %s", header, m.picker.Filter())
	}
	if m.pickerFiltering {
		header += "█"
	}
	pageLine := fmt.Sprintf("Page %d of %d", m.picker.Page(), m.picker.PageCount())

	label := "  Linked Accounts:"
	if focused {
		label = SelectedStyle.Render("> Linked Accounts:")
	} else {
		label = MutedStyle.Render(label)
	}
	return label + "\n" + MutedStyle.Render("  "+header) + "\n" + grid + "\n" + MutedStyle.Render("  "+pageLine)
}

func (m ProductsModel) saveForm() (ProductsModel, tea.Cmd) {
	name := strings.TrimSpace(m.fields[0].value)
	if name == "" {
		m.errText = "Name is required"
		return m, nil
	}
	if m.picker != nil && (m.picker.Loading() || m.linksPending) {
		// Submitting before the baseline is known would treat every
		// existing link as missing and double-create them.
		if m.linksPending && !m.picker.Loading() {
			m.errText = "Linked accounts failed to load; close and reopen the form to retry"
		} else {
			m.errText = "Linked accounts are still loading"
		}
		return m, nil
	}

	input := api.ProductInput{
		Name:        name,
		Owner:       strings.TrimSpace(m.fields[1].value),
		Position:    strings.TrimSpace(m.fields[2].value),
		Description: strings.TrimSpace(m.fields[3].value),
	}
	plan := reconcile.Diff(m.selection, m.baseline)
	applier := linkApplier{client: m.client}

	m.errText = ""
	m.saving = true

	if m.editing == nil {
		return m, func() tea.Msg {
			created, err := m.client.CreateProduct(input)
			if err != nil {
				return errMsg{err}
			}
			res := plan.Apply(created.ID, applier)
			return productSavedMsg{product: *created, created: true, links: res}
		}
	}

	updated := *m.editing
	updated.Name = input.Name
	updated.Owner = input.Owner
	updated.Position = input.Position
	updated.Description = input.Description
	// The update response body is ignored, so the row's timestamp is
	// stamped locally rather than read back from the server.
	updated.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
	id := m.editing.ID
	return m, func() tea.Msg {
		if err := m.client.UpdateProduct(id, input); err != nil {
			return errMsg{err}
		}
		res := plan.Apply(id, applier)
		return productSavedMsg{product: updated, links: res}
	}
}

func (m ProductsModel) renderForm() string {
	var b strings.Builder
	if m.editing != nil {
		b.WriteString(MutedStyle.Render("Product: " + m.editing.Name))
		b.WriteString("\n\n")
	}
	for i, f := range m.fields {
		b.WriteString(renderField(f, m.focus == i))
		b.WriteString("\n\n")
	}
	b.WriteString(m.renderPicker(m.focus == prodFocusPicker))

	if m.saving {
		b.WriteString("\n\n" + MutedStyle.Render("Saving..."))
	}
	if m.errText != "" {
		b.WriteString("\n\n")
		b.WriteString(ErrorStyle.Render(m.errText))
	}

	title := "Add Product"
	if m.editing != nil {
		title = "Edit Product"
	}
	return components.TitledBox(title, b.String(), m.width)
}

// --- Confirm / Delete ---

func (m ProductsModel) handleConfirmKeys(msg tea.KeyMsg) (ProductsModel, tea.Cmd) {
	switch {
	case isKey(msg, "y"):
		id := m.confirmID
		m.view = productsViewList
		m.confirmID = ""
		return m, m.deleteProductCmd(id)
	case isKey(msg, "n"), isBack(msg):
		m.view = productsViewList
		m.confirmID = ""
	}
	return m, nil
}

// deleteProductCmd removes a product's links first, then the product.
// There is no transaction across the two phases: link deletions that
// succeeded stand even if a later step fails. Failures are counted and
// surfaced, not retried.
func (m ProductsModel) deleteProductCmd(id string) tea.Cmd {
	return func() tea.Msg {
		links, err := m.client.ListProductLinks(id)
		if err != nil {
			return errMsg{fmt.Errorf("list product links: %w", err)}
		}
		failed := 0
		for _, link := range links {
			if err := m.client.DeleteLink(link.ID); err != nil {
				failed++
			}
		}
		if err := m.client.DeleteProduct(id); err != nil {
			return errMsg{fmt.Errorf("delete product: %w", err)}
		}
		return productDeletedMsg{id: id, failed: failed}
	}
}

func (m ProductsModel) renderConfirm() string {
	return components.ConfirmDialog("Confirm", "Delete this product and its account links?")
}

func (m ProductsModel) View() string {
	switch m.view {
	case productsViewForm:
		return components.Indent(m.renderForm(), 1)
	case productsViewConfirm:
		return components.Indent(m.renderConfirm(), 1)
	default:
		return components.Indent(m.renderList(), 1)
	}
}
