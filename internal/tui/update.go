package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/mealframe/internal/stats"
)

const barWidth = 20

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		// Tabs, title, help and padding take roughly eight rows.
		h := max(msg.Height-8, 3)
		m.mealTypes.SetHeight(h)
		m.daily.SetHeight(h)
		return m, nil

	case reportMsg:
		if msg.days != m.days {
			// A newer request superseded this one.
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		r := msg.report
		m.report = &r
		m.mealTypes.SetRows(mealTypeRows(r))
		m.daily.SetRows(dailyRows(r))
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Tab):
			m.tab = (m.tab + 1) % tab(len(tabTitles))
			return m, nil
		case key.Matches(msg, m.keys.ShiftTab):
			m.tab = (m.tab + tab(len(tabTitles)) - 1) % tab(len(tabTitles))
			return m, nil
		case key.Matches(msg, m.keys.Wider):
			return m.resize(m.days + windowStep)
		case key.Matches(msg, m.keys.Narrower):
			return m.resize(m.days - windowStep)
		case key.Matches(msg, m.keys.Refresh):
			m.loading = true
			return m, m.fetch()
		}
	}

	var cmd tea.Cmd
	switch m.tab {
	case tabMealTypes:
		m.mealTypes, cmd = m.mealTypes.Update(msg)
	case tabDaily:
		m.daily, cmd = m.daily.Update(msg)
	}
	return m, cmd
}

// resize changes the window and refetches when the clamped size differs.
func (m Model) resize(days int) (tea.Model, tea.Cmd) {
	days = clampDays(days)
	if days == m.days {
		return m, nil
	}
	m.days = days
	m.loading = true
	return m, m.fetch()
}

func mealTypeRows(r stats.Report) []table.Row {
	rows := make([]table.Row, 0, len(r.ByMealType))
	for _, mt := range r.ByMealType {
		rows = append(rows, table.Row{mt.Name, mt.Rate.String(), bar(mt.Rate)})
	}
	return rows
}

func dailyRows(r stats.Report) []table.Row {
	rows := make([]table.Row, 0, len(r.Daily))
	// Most recent first.
	for i := len(r.Daily) - 1; i >= 0; i-- {
		d := r.Daily[i]
		rows = append(rows, table.Row{
			d.Date,
			fmt.Sprintf("%d", d.Total),
			fmt.Sprintf("%d", d.Followed),
			d.Rate.String(),
			bar(d.Rate),
		})
	}
	return rows
}

func bar(rate stats.Rate) string {
	filled := int(rate.Float64()*barWidth + 0.5)
	filled = min(filled, barWidth)
	return strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
}
