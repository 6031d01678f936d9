package view

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yufj-331/ordershare/internal/report"
)

func TestPeriod_Range(t *testing.T) {
	shanghai := time.FixedZone("CST", 8*3600)

	// 2024-03-12 23:30 UTC is already Wednesday 2024-03-13 in shanghai.
	now := time.Date(2024, 3, 12, 23, 30, 0, 0, time.UTC)

	d := func(y int, m time.Month, dd int) time.Time {
		return time.Date(y, m, dd, 0, 0, 0, 0, time.UTC)
	}

	type testCase struct {
		name   string
		period Period
		now    time.Time
		loc    *time.Location
		want   DateRange
	}

	tests := []testCase{
		{name: "TodayInZone", period: PeriodToday, now: now, loc: shanghai, want: DateRange{First: d(2024, 3, 13), Last: d(2024, 3, 13)}},
		{name: "TodayInUTC", period: PeriodToday, now: now, loc: time.UTC, want: DateRange{First: d(2024, 3, 12), Last: d(2024, 3, 12)}},
		{name: "Last7Days", period: PeriodLast7Days, now: now, loc: shanghai, want: DateRange{First: d(2024, 3, 7), Last: d(2024, 3, 13)}},
		{name: "ThisMonth", period: PeriodThisMonth, now: now, loc: shanghai, want: DateRange{First: d(2024, 3, 1), Last: d(2024, 3, 13)}},
		{name: "LastMonthLeapYear", period: PeriodLastMonth, now: now, loc: shanghai, want: DateRange{First: d(2024, 2, 1), Last: d(2024, 2, 29)}},
		{name: "LastMonthFromMonthEnd", period: PeriodLastMonth, now: d(2024, 3, 31), loc: time.UTC, want: DateRange{First: d(2024, 2, 1), Last: d(2024, 2, 29)}},
		{name: "LastMonthAcrossYear", period: PeriodLastMonth, now: d(2024, 1, 15), loc: time.UTC, want: DateRange{First: d(2023, 12, 1), Last: d(2023, 12, 31)}},
		{name: "ThisYear", period: PeriodThisYear, now: now, loc: shanghai, want: DateRange{First: d(2024, 1, 1), Last: d(2024, 3, 13)}},
		{name: "All", period: PeriodAll, now: now, loc: shanghai, want: DateRange{Unbounded: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.period.Range(tt.now, tt.loc))
		})
	}
}

func TestParseDays(t *testing.T) {
	type testCase struct {
		name    string
		in      string
		want    DateRange
		wantErr string
	}

	march := func(dd int) time.Time { return time.Date(2024, 3, dd, 0, 0, 0, 0, time.UTC) }

	tests := []testCase{
		{name: "SingleDay", in: "2024-03-05", want: DateRange{First: march(5), Last: march(5)}},
		{name: "Span", in: " 2024-03-01 .. 2024-03-31 ", want: DateRange{First: march(1), Last: march(31)}},
		{name: "Reversed", in: "2024-03-31..2024-03-01", wantErr: errDayOrder.Error()},
		{name: "BadFirst", in: "03/01/2024..2024-03-31", wantErr: "first day: want 2006-01-02"},
		{name: "BadLast", in: "2024-03-01..", wantErr: "last day: want 2006-01-02"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseDays(tt.in)
			if tt.wantErr != "" {
				require.EqualError(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDateRange_Apply(t *testing.T) {
	first := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	var f report.Filter
	DateRange{First: first, Last: first}.Apply(&f)

	require.NotNil(t, f.DateStart)
	require.NotNil(t, f.DateEnd)
	assert.Equal(t, first, *f.DateStart)
	assert.Equal(t, first, *f.DateEnd)

	DateRange{Unbounded: true}.Apply(&f)
	assert.Nil(t, f.DateStart)
	assert.Nil(t, f.DateEnd)
}

func runCmd(t *testing.T, cmd tea.Cmd) tea.Msg {
	t.Helper()
	require.NotNil(t, cmd)

	return cmd()
}

func TestPeriodPicker_Update(t *testing.T) {
	shanghai := time.FixedZone("CST", 8*3600)
	now := time.Date(2024, 2, 29, 20, 0, 0, 0, time.UTC)

	t.Run("PresetUsesZone", func(t *testing.T) {
		m := NewPeriodPicker(shanghai)
		m.now = func() time.Time { return now }

		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
		_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})

		msg, ok := runCmd(t, cmd).(PeriodChosenMsg)
		require.True(t, ok)

		want := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
		assert.Equal(t, DateRange{First: want, Last: want}, msg.Range)
	})

	t.Run("CustomDays", func(t *testing.T) {
		m := NewPeriodPicker(shanghai)

		for range int(PeriodCustom - PeriodThisMonth) {
			m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
		}

		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
		require.False(t, m.Choosing())

		m.days.SetValue("2024-03-31..2024-03-01")
		m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
		assert.Nil(t, cmd)
		assert.ErrorIs(t, m.err, errDayOrder)

		m.days.SetValue("2024-03-01..2024-03-31")
		_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEnter})

		msg, ok := runCmd(t, cmd).(PeriodChosenMsg)
		require.True(t, ok)
		assert.Equal(t, 31, int(msg.Range.Last.Sub(msg.Range.First).Hours()/24)+1)
	})

	t.Run("EscLeavesCustomInput", func(t *testing.T) {
		m := NewPeriodPicker(nil)
		m.typing = true

		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
		assert.True(t, m.Choosing())
	})
}
