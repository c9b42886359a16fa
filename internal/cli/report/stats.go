package report

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/mealframe/internal/cli"
	"github.com/julianstephens/mealframe/internal/stats"
	"github.com/julianstephens/mealframe/internal/utils"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	headingStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(16)
	rateStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
	barStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Italic(true)
)

const barWidth = 20

type StatsCmd struct {
	Days *int   `short:"d" help:"Window length in days (1-365). Defaults to the default_period_days setting."`
	End  string `help:"Last day of the window (YYYY-MM-DD, 'today' or 'yesterday'). Defaults to today."`
	JSON bool   `help:"Print the report as JSON."`
}

func (c *StatsCmd) Run(ctx *cli.Context) error {
	days := ctx.Settings().DefaultPeriodDays
	if c.Days != nil {
		days = *c.Days
	}
	if err := stats.ValidateDays(days); err != nil {
		return err
	}

	svc, err := ctx.StatsService()
	if err != nil {
		return err
	}

	end := svc.Today()
	if c.End != "" {
		if end, err = ctx.ParseDay(c.End); err != nil {
			return err
		}
	}

	r, err := svc.ReportAt(context.Background(), end, days)
	if err != nil {
		return err
	}

	if c.JSON {
		enc := json.NewEncoder(ctx.Stdout())
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	}
	Render(ctx.Stdout(), r, end)
	return nil
}

// Render writes a human-readable report for the window ending at end.
func Render(w io.Writer, r stats.Report, end time.Time) {
	start := utils.AddDays(utils.DateOf(end), -(r.PeriodDays - 1))
	fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("Meal plan adherence, %s to %s (%d days)",
		utils.FormatDate(start), utils.FormatDate(end), r.PeriodDays)))
	fmt.Fprintln(w)

	if r.TotalSlots == 0 {
		fmt.Fprintln(w, mutedStyle.Render("No tracked meals in this window."))
		return
	}

	row(w, "Adherence rate", rateStyle.Render(r.AdherenceRate.String()))
	row(w, "Slots", fmt.Sprintf("%d total, %d marked", r.TotalSlots, r.CompletedSlots))
	row(w, "Current streak", plural(r.CurrentStreak, "day"))
	row(w, "Best streak", plural(r.BestStreak, "day"))
	row(w, "Override days", fmt.Sprintf("%d", r.OverrideDays))

	fmt.Fprintln(w)
	fmt.Fprintln(w, headingStyle.Render("By status"))
	b := r.ByStatus
	for _, s := range []struct {
		name  string
		count int
	}{
		{"followed", b.Followed},
		{"adjusted", b.Adjusted},
		{"skipped", b.Skipped},
		{"replaced", b.Replaced},
		{"social", b.Social},
		{"unmarked", b.Unmarked},
	} {
		row(w, s.name, fmt.Sprintf("%d", s.count))
	}

	if len(r.ByMealType) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, headingStyle.Render("By meal type"))
		for _, mt := range r.ByMealType {
			row(w, mt.Name, fmt.Sprintf("%s %s", mt.Rate, bar(mt.Rate)))
		}
	}

	if len(r.Daily) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, headingStyle.Render("Daily"))
		for _, d := range r.Daily {
			row(w, d.Date, fmt.Sprintf("%d/%d followed  %s %s", d.Followed, d.Total, d.Rate, bar(d.Rate)))
		}
	}
}

func row(w io.Writer, label, value string) {
	fmt.Fprintf(w, "  %s %s\n", labelStyle.Render(label), value)
}

func bar(rate stats.Rate) string {
	filled := int(rate.Float64()*barWidth + 0.5)
	if filled > barWidth {
		filled = barWidth
	}
	return barStyle.Render(strings.Repeat("█", filled)) + strings.Repeat("░", barWidth-filled)
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
