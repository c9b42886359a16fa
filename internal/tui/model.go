package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/mealframe/internal/constants"
	"github.com/julianstephens/mealframe/internal/stats"
)

// Reporter computes the report for a trailing window ending today.
type Reporter interface {
	Report(ctx context.Context, days int) (stats.Report, error)
}

type tab int

const (
	tabSummary tab = iota
	tabMealTypes
	tabDaily
)

var tabTitles = []string{"Summary", "Meal types", "Daily"}

// windowStep is how far +/- move the window.
const windowStep = 7

// reportMsg carries the result of a fetch for a given window size.
type reportMsg struct {
	days   int
	report stats.Report
	err    error
}

type Model struct {
	reporter  Reporter
	days      int
	keys      KeyMap
	help      help.Model
	tab       tab
	report    *stats.Report
	err       error
	loading   bool
	mealTypes table.Model
	daily     table.Model
	quitting  bool
	width     int
	height    int
}

func NewModel(reporter Reporter, days int) Model {
	return Model{
		reporter: reporter,
		days:     clampDays(days),
		keys:     DefaultKeyMap(),
		help:     help.New(),
		loading:  true,
		mealTypes: newTable([]table.Column{
			{Title: "Meal type", Width: 24},
			{Title: "Adherence", Width: 10},
			{Title: "", Width: barWidth},
		}),
		daily: newTable([]table.Column{
			{Title: "Date", Width: 12},
			{Title: "Slots", Width: 6},
			{Title: "Followed", Width: 9},
			{Title: "Adherence", Width: 10},
			{Title: "", Width: barWidth},
		}),
	}
}

func newTable(columns []table.Column) table.Model {
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(10),
	)
	t.SetStyles(tableStyles())
	return t
}

func (m Model) Init() tea.Cmd {
	return m.fetch()
}

// Days returns the current window size.
func (m Model) Days() int {
	return m.days
}

func (m Model) fetch() tea.Cmd {
	reporter, days := m.reporter, m.days
	return func() tea.Msg {
		r, err := reporter.Report(context.Background(), days)
		return reportMsg{days: days, report: r, err: err}
	}
}

func clampDays(days int) int {
	if days < constants.MinPeriodDays {
		return constants.MinPeriodDays
	}
	if days > constants.MaxPeriodDays {
		return constants.MaxPeriodDays
	}
	return days
}
