package view

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/yufj-331/ordershare/internal/report"
)

type overviewState int

const (
	overviewStateFilter overviewState = iota
	overviewStatePeriod
	overviewStateBrowse
)

// FilterForm holds the text bindings shared by the overview and export
// filter forms.
type FilterForm struct {
	Customer string
	Product  string
	MinTotal string
	MaxTotal string
}

func validateAmount(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}

	if _, err := decimal.NewFromString(strings.TrimSpace(s)); err != nil {
		return fmt.Errorf("not a number")
	}

	return nil
}

// Group builds the huh fields bound to f.
func (f *FilterForm) Group() *huh.Group {
	return huh.NewGroup(
		huh.NewInput().Key("customer").Title("Customer").Placeholder("any").Value(&f.Customer),
		huh.NewInput().Key("product").Title("Product").Placeholder("any").Value(&f.Product),
		huh.NewInput().Key("min_total").Title("Min Total").Placeholder("any").
			Value(&f.MinTotal).Validate(validateAmount),
		huh.NewInput().Key("max_total").Title("Max Total").Placeholder("any").
			Value(&f.MaxTotal).Validate(validateAmount),
	)
}

// Filter converts the bindings and the selected range into a report filter.
// Blank fields impose no constraint.
func (f FilterForm) Filter(days DateRange) report.Filter {
	var out report.Filter

	if s := strings.TrimSpace(f.Customer); s != "" {
		out.CustomerName = &s
	}

	if s := strings.TrimSpace(f.Product); s != "" {
		out.ProductName = &s
	}

	if d, err := decimal.NewFromString(strings.TrimSpace(f.MinTotal)); err == nil {
		out.MinTotalAmount = &d
	}

	if d, err := decimal.NewFromString(strings.TrimSpace(f.MaxTotal)); err == nil {
		out.MaxTotalAmount = &d
	}

	days.Apply(&out)

	return out
}

type OverviewModel struct {
	reportService *report.Service

	state    overviewState
	form     *huh.Form
	bindings *FilterForm
	period   PeriodPicker
	filter   report.Filter

	table   table.Model
	rows    []report.Row
	loading bool
	err     error
}

func NewOverviewModel(svc *report.Service) OverviewModel {
	columns := []table.Column{
		{Title: "ID", Width: 16},
		{Title: "Customer", Width: 18},
		{Title: "Product", Width: 18},
		{Title: "Qty", Width: 5},
		{Title: "Total", Width: 12},
		{Title: "Date", Width: 10},
		{Title: "Income", Width: 12},
		{Title: "Invoiced", Width: 12},
		{Title: "Tax", Width: 10},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	bindings := &FilterForm{}

	return OverviewModel{
		reportService: svc,
		state:         overviewStateFilter,
		bindings:      bindings,
		form:          huh.NewForm(bindings.Group()).WithWidth(50).WithShowHelp(false),
		period:        NewPeriodPicker(svc.Location()),
		table:         t,
	}
}

func (m OverviewModel) Title() string { return "Report Overview" }

func (m OverviewModel) ShortHelp() string {
	if m.state == overviewStateBrowse {
		return "Esc: back | f: new filter | r: refresh"
	}

	return "Esc: back | Enter: confirm"
}

func (m OverviewModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m OverviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case PeriodChosenMsg:
		m.filter = m.bindings.Filter(msg.Range)
		m.state = overviewStateBrowse
		m.loading = true

		return m, m.loadCmd()

	case overviewLoadedMsg:
		m.loading = false
		m.err = msg.err
		m.rows = msg.rows
		m.refreshTable()

		return m, nil

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	switch m.state {
	case overviewStateFilter:
		return m.updateFilter(msg)
	case overviewStatePeriod:
		return m.updatePeriod(msg)
	case overviewStateBrowse:
		return m.updateBrowse(msg)
	}

	return m, nil
}

func (m OverviewModel) updateFilter(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		return m, Back
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	m.state = overviewStatePeriod
	m.period.Reset()

	return m, nil
}

func (m OverviewModel) updatePeriod(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc && m.period.Choosing() {
			return m, Back
		}
	}

	var cmd tea.Cmd
	m.period, cmd = m.period.Update(msg)

	return m, cmd
}

func (m OverviewModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "f":
			*m.bindings = FilterForm{}
			m.form = huh.NewForm(m.bindings.Group()).WithWidth(50).WithShowHelp(false)
			m.state = overviewStateFilter

			return m, m.form.Init()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m *OverviewModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.rows))
	for _, r := range m.rows {
		rows = append(rows, table.Row{
			r.ID,
			r.CustomerName,
			r.ProductName,
			strconv.Itoa(r.Quantity),
			FormatAmount(r.TotalAmount),
			FormatDate(r.CreatedAt),
			FormatAmount(r.IncomeAmount),
			FormatAmount(r.InvoiceAmount),
			FormatAmount(r.TaxAmount),
		})
	}

	m.table.SetRows(rows)
}

func (m OverviewModel) summary() string {
	var total, received, invoiced decimal.Decimal
	for _, r := range m.rows {
		total = total.Add(r.TotalAmount)
		received = received.Add(r.IncomeAmount)
		invoiced = invoiced.Add(r.InvoiceAmount)
	}

	return fmt.Sprintf("%d orders | total %s | received %s | invoiced %s",
		len(m.rows), FormatAmount(total), FormatAmount(received), FormatAmount(invoiced))
}

func (m OverviewModel) View() string {
	switch m.state {
	case overviewStateFilter:
		return lipgloss.NewStyle().Padding(1).Render("Report Filter\n\n" + m.form.View())
	case overviewStatePeriod:
		return lipgloss.NewStyle().Padding(1).Render(m.period.View())
	}

	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading report...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	return lipgloss.NewStyle().Padding(1).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			lipgloss.NewStyle().PaddingBottom(1).Render(activeStyle(m.summary())),
			tableView,
			lipgloss.NewStyle().Faint(true).Render(m.ShortHelp()),
		),
	)
}

func activeStyle(s string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Render(s)
}

type overviewLoadedMsg struct {
	rows []report.Row
	err  error
}

func (m OverviewModel) loadCmd() tea.Cmd {
	filter := m.filter

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		rows, err := m.reportService.Overview(ctx, filter)

		return overviewLoadedMsg{rows: rows, err: err}
	}
}
