package importer

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

var errEmpty = errors.New("value is empty")

var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"2006-01-02 15:04:05",
	"2006/01/02 15:04:05",
	"2006-01-02T15:04:05Z07:00",
	"2006.01.02",
}

func parseDecimal(s string) (decimal.Decimal, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return decimal.Zero, errEmpty
	}

	return decimal.NewFromString(s)
}

// parseInt accepts integral decimals such as "3.0", which is how some
// spreadsheet tools store whole numbers.
func parseInt(s string) (int, error) {
	d, err := parseDecimal(s)
	if err != nil {
		return 0, err
	}

	if !d.Equal(d.Truncate(0)) {
		return 0, fmt.Errorf("%s is not a whole number", s)
	}

	return int(d.IntPart()), nil
}

// parseDate reads a calendar date in loc from text or an Excel serial number.
func parseDate(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, errEmpty
	}

	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}

	serial, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("unrecognised date %q", s)
	}

	t, err := excelize.ExcelDateToTime(serial, false)
	if err != nil {
		return time.Time{}, fmt.Errorf("unrecognised date %q: %w", s, err)
	}

	y, m, d := t.Date()

	return time.Date(y, m, d, 0, 0, 0, 0, loc), nil
}
