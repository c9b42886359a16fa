package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch {
	case m.err != nil:
		content = dangerStyle.Render(fmt.Sprintf("Failed to load report: %v", m.err)) +
			"\n\n" + mutedStyle.Render("Press r to retry.")
	case m.report == nil:
		content = mutedStyle.Render("Loading...")
	default:
		switch m.tab {
		case tabSummary:
			content = m.viewSummary()
		case tabMealTypes:
			content = m.viewMealTypes()
		case tabDaily:
			content = m.viewDaily()
		}
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		docStyle.Render(lipgloss.JoinVertical(lipgloss.Left, m.viewTitle(), "", content)),
		m.help.View(m.keys),
	)
}

func (m Model) viewTabs() string {
	var tabs []string
	for i, title := range tabTitles {
		if m.tab == tab(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewTitle() string {
	title := titleStyle.Render(fmt.Sprintf("Adherence, last %d days", m.days))
	if m.loading && m.report != nil {
		title += " " + mutedStyle.Render("(refreshing)")
	}
	return title
}

func (m Model) viewSummary() string {
	r := m.report
	if r.TotalSlots == 0 {
		return mutedStyle.Render("No tracked meals in this window.")
	}

	var b strings.Builder
	line := func(label, value string) {
		fmt.Fprintf(&b, "%s %s\n", labelStyle.Render(label), value)
	}
	line("Adherence rate", rateStyle.Render(r.AdherenceRate.String()))
	line("Slots", fmt.Sprintf("%d total, %d marked", r.TotalSlots, r.CompletedSlots))
	line("Current streak", fmt.Sprintf("%d", r.CurrentStreak))
	line("Best streak", fmt.Sprintf("%d", r.BestStreak))
	line("Override days", fmt.Sprintf("%d", r.OverrideDays))
	b.WriteString("\n")

	s := r.ByStatus
	line("Followed", fmt.Sprintf("%d", s.Followed))
	line("Adjusted", fmt.Sprintf("%d", s.Adjusted))
	line("Skipped", fmt.Sprintf("%d", s.Skipped))
	line("Replaced", fmt.Sprintf("%d", s.Replaced))
	line("Social", fmt.Sprintf("%d", s.Social))
	line("Unmarked", fmt.Sprintf("%d", s.Unmarked))
	return strings.TrimRight(b.String(), "\n")
}

func (m Model) viewMealTypes() string {
	if len(m.report.ByMealType) == 0 {
		return mutedStyle.Render("No meal types in this window.")
	}
	return m.mealTypes.View()
}

func (m Model) viewDaily() string {
	if len(m.report.Daily) == 0 {
		return mutedStyle.Render("No tracked days in this window.")
	}
	return m.daily.View()
}
