package main

import (
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/yufj-331/ordershare/cmd/tui/internal/view"
	"github.com/yufj-331/ordershare/internal/config"
	"github.com/yufj-331/ordershare/internal/database"
	"github.com/yufj-331/ordershare/internal/income"
	incomeStore "github.com/yufj-331/ordershare/internal/income/store"
	"github.com/yufj-331/ordershare/internal/invoice"
	invoiceStore "github.com/yufj-331/ordershare/internal/invoice/store"
	"github.com/yufj-331/ordershare/internal/report"
	"github.com/yufj-331/ordershare/internal/sales"
	salesStore "github.com/yufj-331/ordershare/internal/sales/store"
)

type model struct {
	reportService *report.Service

	currentView View

	overviewView view.OverviewModel
	exportView   view.ExportModel
}

type View int

const (
	ViewMenu     View = 0
	ViewOverview View = 1
	ViewExport   View = 2
)

func initialModel() model {
	_ = godotenv.Load()

	cfg, err := config.LoadStore()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	loc, err := cfg.Location()
	if err != nil {
		slog.Error("invalid report timezone", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	reportSvc := report.NewService(report.ServiceSource{
		Sales:    sales.NewService(salesStore.New(db)),
		Incomes:  income.NewService(incomeStore.New(db)),
		Invoices: invoice.NewService(invoiceStore.New(db)),
	}, report.WithLocation(loc))

	return model{
		reportService: reportSvc,
		currentView:   ViewMenu,
		overviewView:  view.NewOverviewModel(reportSvc),
		exportView:    view.NewExportModel(reportSvc),
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.currentView == ViewMenu {
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewOverview
				m.overviewView = view.NewOverviewModel(m.reportService)

				return m, m.overviewView.Init()
			case "2":
				m.currentView = ViewExport
				m.exportView = view.NewExportModel(m.reportService)

				return m, m.exportView.Init()
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewOverview:
		var newModel tea.Model
		newModel, cmd = m.overviewView.Update(msg)
		m.overviewView = newModel.(view.OverviewModel)
	case ViewExport:
		var newModel tea.Model
		newModel, cmd = m.exportView.Update(msg)
		m.exportView = newModel.(view.ExportModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			"OrderShare TUI\n\n" +
				"1. Report Overview\n" +
				"2. Export Report\n\n" +
				"q. Quit",
		)
	case ViewOverview:
		return m.overviewView.View()
	case ViewExport:
		return m.exportView.View()
	}

	return "Unknown View"
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
