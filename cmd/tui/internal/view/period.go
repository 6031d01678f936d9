package view

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/yufj-331/ordershare/internal/report"
)

// Period is a preset window over order creation days.
type Period int

const (
	PeriodToday Period = iota
	PeriodLast7Days
	PeriodThisMonth
	PeriodLastMonth
	PeriodThisYear
	PeriodAll
	PeriodCustom
)

var periodLabels = map[Period]string{
	PeriodToday:     "Orders Created Today",
	PeriodLast7Days: "Last 7 Days (incl. today)",
	PeriodThisMonth: "This Month So Far",
	PeriodLastMonth: "Previous Calendar Month",
	PeriodThisYear:  "This Year So Far",
	PeriodAll:       "All Orders",
	PeriodCustom:    "Custom Days...",
}

func (p Period) String() string {
	if l, ok := periodLabels[p]; ok {
		return l
	}

	return fmt.Sprintf("Period(%d)", int(p))
}

// DateRange is an inclusive span of calendar days. Unbounded covers every
// order, including ones without a creation date.
type DateRange struct {
	First     time.Time
	Last      time.Time
	Unbounded bool
}

// Apply narrows f to the range.
func (r DateRange) Apply(f *report.Filter) {
	if r.Unbounded {
		f.DateStart, f.DateEnd = nil, nil
		return
	}

	first, last := r.First, r.Last
	f.DateStart, f.DateEnd = &first, &last
}

func (r DateRange) String() string {
	switch {
	case r.Unbounded:
		return "all orders"
	case r.First.Equal(r.Last):
		return r.First.Format(report.DateLayout)
	}

	return r.First.Format(report.DateLayout) + " .. " + r.Last.Format(report.DateLayout)
}

// day returns the calendar day of t in loc, expressed the way report
// filters compare days.
func day(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Range resolves the preset against now in loc. PeriodCustom has no preset
// range and resolves to the unbounded range.
func (p Period) Range(now time.Time, loc *time.Location) DateRange {
	today := day(now, loc)

	switch p {
	case PeriodToday:
		return DateRange{First: today, Last: today}
	case PeriodLast7Days:
		return DateRange{First: today.AddDate(0, 0, -6), Last: today}
	case PeriodThisMonth:
		return DateRange{First: today.AddDate(0, 0, 1-today.Day()), Last: today}
	case PeriodLastMonth:
		thisMonth := today.AddDate(0, 0, 1-today.Day())
		return DateRange{First: thisMonth.AddDate(0, -1, 0), Last: thisMonth.AddDate(0, 0, -1)}
	case PeriodThisYear:
		return DateRange{First: today.AddDate(0, 0, 1-today.YearDay()), Last: today}
	}

	return DateRange{Unbounded: true}
}

var errDayOrder = errors.New("last day is before first day")

// parseDays reads "YYYY-MM-DD" for a single day or "YYYY-MM-DD..YYYY-MM-DD"
// for a span. Both ends are inclusive.
func parseDays(s string) (DateRange, error) {
	firstStr, lastStr, isSpan := strings.Cut(strings.TrimSpace(s), "..")
	if !isSpan {
		lastStr = firstStr
	}

	first, err := time.Parse(report.DateLayout, strings.TrimSpace(firstStr))
	if err != nil {
		return DateRange{}, fmt.Errorf("first day: want %s", report.DateLayout)
	}

	last, err := time.Parse(report.DateLayout, strings.TrimSpace(lastStr))
	if err != nil {
		return DateRange{}, fmt.Errorf("last day: want %s", report.DateLayout)
	}

	if last.Before(first) {
		return DateRange{}, errDayOrder
	}

	return DateRange{First: first, Last: last}, nil
}

// PeriodChosenMsg carries the range the user settled on.
type PeriodChosenMsg struct {
	Range DateRange
}

// PeriodPicker lists the presets and accepts a typed day span for
// PeriodCustom.
type PeriodPicker struct {
	loc    *time.Location
	now    func() time.Time
	cursor Period
	typing bool
	days   textinput.Model
	err    error
}

func NewPeriodPicker(loc *time.Location) PeriodPicker {
	if loc == nil {
		loc = time.Local
	}

	in := textinput.New()
	in.Prompt = "Days: "
	in.Placeholder = "2024-03-01..2024-03-31"
	in.CharLimit = 2*len(report.DateLayout) + 2
	in.Width = in.CharLimit + 1

	return PeriodPicker{loc: loc, now: time.Now, cursor: PeriodThisMonth, days: in}
}

// Choosing reports whether the preset list, not the day input, has focus.
func (m PeriodPicker) Choosing() bool { return !m.typing }

func (m *PeriodPicker) Reset() {
	m.typing = false
	m.err = nil
	m.days.SetValue("")
	m.days.Blur()
}

func chosen(r DateRange) tea.Cmd {
	return func() tea.Msg { return PeriodChosenMsg{Range: r} }
}

func (m PeriodPicker) Update(msg tea.Msg) (PeriodPicker, tea.Cmd) {
	keyMsg, isKey := msg.(tea.KeyMsg)

	if m.typing {
		if isKey {
			switch keyMsg.Type {
			case tea.KeyEsc:
				m.Reset()
				return m, nil
			case tea.KeyEnter:
				r, err := parseDays(m.days.Value())
				if m.err = err; err != nil {
					return m, nil
				}

				return m, chosen(r)
			}
		}

		var cmd tea.Cmd
		m.days, cmd = m.days.Update(msg)

		return m, cmd
	}

	if !isKey {
		return m, nil
	}

	switch keyMsg.String() {
	case "up", "k":
		if m.cursor > PeriodToday {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < PeriodCustom {
			m.cursor++
		}
	case "enter":
		if m.cursor == PeriodCustom {
			m.typing = true
			cmd := m.days.Focus()

			return m, cmd
		}

		return m, chosen(m.cursor.Range(m.now(), m.loc))
	}

	return m, nil
}

func (m PeriodPicker) View() string {
	var b strings.Builder

	if m.typing {
		b.WriteString("Order days (inclusive):\n\n")
		b.WriteString(m.days.View())
		b.WriteString("\n\n(Enter to confirm, Esc to presets)")
	} else {
		b.WriteString(fmt.Sprintf("Order period (%s):\n\n", m.loc))

		today := m.now()
		for p := PeriodToday; p <= PeriodCustom; p++ {
			line := "  " + p.String()
			if p != PeriodCustom && p != PeriodAll {
				line += lipgloss.NewStyle().Faint(true).Render("  " + p.Range(today, m.loc).String())
			}

			if p == m.cursor {
				line = activeStyle("> " + strings.TrimPrefix(line, "  "))
			}

			b.WriteString(line + "\n")
		}

		b.WriteString("\n(Enter to select, Esc to back)")
	}

	if m.err != nil {
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render("\n\nError: " + m.err.Error()))
	}

	return b.String()
}
