package lumebar

import (
	"strings"
	"testing"
	"time"
)

type fixedFirstDay time.Weekday

func (f fixedFirstDay) firstDay(localeInfo) time.Weekday {
	return time.Weekday(f)
}

// April 2026 has 30 days and starts on a Wednesday.
var april2026 = time.Date(2026, time.April, 15, 14, 30, 0, 0, time.UTC)

func newTestRenderer(first time.Weekday, pos weeksPosField, weeksFormat string) *calendarRenderer {
	return &calendarRenderer{
		loc:         resolveLocale("en_US"),
		firstDay:    fixedFirstDay(first),
		dayFormat:   "{}",
		weeksFormat: weeksFormat,
		weeksPos:    pos,
		weeksPad:    weeksDisplayWidth(weeksFormat),
	}
}

func TestCalendarGrid(t *testing.T) {
	r := newTestRenderer(time.Sunday, weeksHidden, "")

	text, err := r.render(april2026, 0)
	if err != nil {
		t.Fatalf("failed rendering calendar: %v", err)
	}

	lines := strings.Split(text, "\n")
	if len(lines) != 6 {
		t.Fatalf("expected a header and 5 week rows, got %d lines:\n%s", len(lines), text)
	}

	if lines[0] != "Su Mo Tu We Th Fr Sa" {
		t.Errorf("unexpected header: %q", lines[0])
	}

	// 3 leading blank cells before Wednesday the 1st.
	if want := strings.Repeat(" ", 8) + "  1  2  3  4"; lines[1] != want {
		t.Errorf("unexpected first row:\n%q\nwant:\n%q", lines[1], want)
	}
	if lines[2] != " 5  6  7  8  9 10 11" {
		t.Errorf("unexpected second row: %q", lines[2])
	}
	if lines[5] != "26 27 28 29 30" {
		t.Errorf("unexpected last row: %q", lines[5])
	}
}

func TestCalendarHeaderAlwaysSevenColumns(t *testing.T) {
	for _, locale := range []string{"en_US", "fr_FR", "de_DE", "ja_JP", "xx_XX"} {
		r := newTestRenderer(time.Monday, weeksHidden, "")
		r.loc = resolveLocale(locale)

		header, err := r.weekdaysHeader(time.Monday, april2026)
		if err != nil {
			t.Fatalf("%s: failed rendering header: %v", locale, err)
		}

		columns := strings.Fields(strings.TrimSuffix(header, "\n"))
		if len(columns) != 7 {
			t.Errorf("%s: expected 7 header columns, got %d: %q", locale, len(columns), header)
		}
	}
}

func TestCalendarTodayHighlight(t *testing.T) {
	r := newTestRenderer(time.Sunday, weeksHidden, "")

	text, err := r.render(april2026, 15)
	if err != nil {
		t.Fatalf("failed rendering calendar: %v", err)
	}
	if !strings.Contains(text, "<b><u>15</u></b>") {
		t.Errorf("expected the default today cell, got:\n%s", text)
	}

	r.todayFormat = "*{}*"
	text, err = r.render(april2026, 15)
	if err != nil {
		t.Fatalf("failed rendering calendar: %v", err)
	}
	if !strings.Contains(text, "*15*") {
		t.Errorf("expected the configured today cell, got:\n%s", text)
	}
}

func TestCalendarWeekNumbersLeft(t *testing.T) {
	r := newTestRenderer(time.Sunday, weeksLeft, "{:%U}")

	text, err := r.render(april2026, 0)
	if err != nil {
		t.Fatalf("failed rendering calendar: %v", err)
	}

	lines := strings.Split(text, "\n")
	if lines[0] != "   Su Mo Tu We Th Fr Sa" {
		t.Errorf("expected a padded header, got %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "13 ") {
		t.Errorf("expected the first row to start with week 13, got %q", lines[1])
	}
	if !strings.HasPrefix(lines[2], "14 ") {
		t.Errorf("expected the second row to start with week 14, got %q", lines[2])
	}
}

func TestCalendarWeekNumbersRight(t *testing.T) {
	r := newTestRenderer(time.Sunday, weeksRight, "{:%U}")

	text, err := r.render(april2026, 0)
	if err != nil {
		t.Fatalf("failed rendering calendar: %v", err)
	}

	lines := strings.Split(text, "\n")
	if !strings.HasSuffix(lines[1], " 13") {
		t.Errorf("expected the first row to end with week 13, got %q", lines[1])
	}

	// The short last row is padded so the week column lines up.
	if want := "26 27 28 29 30" + strings.Repeat(" ", 6) + " 17"; lines[5] != want {
		t.Errorf("unexpected last row:\n%q\nwant:\n%q", lines[5], want)
	}
}

func TestCalendarWeekdaysHeaderFormat(t *testing.T) {
	r := newTestRenderer(time.Sunday, weeksHidden, "")
	r.headerFormat = "<span>{}</span>"

	text, err := r.render(april2026, 0)
	if err != nil {
		t.Fatalf("failed rendering calendar: %v", err)
	}
	if !strings.HasPrefix(text, "<span>Su Mo Tu We Th Fr Sa\n</span>") {
		t.Errorf("expected a wrapped header, got:\n%s", text)
	}
}

func TestWeeksDisplayWidth(t *testing.T) {
	cases := []struct {
		format string
		want   int
	}{
		{"", 0},
		{"{:%V}", 0},
		{"<small>{:%V}</small>", 0},
		{"W{:%U}", 1},
	}

	for _, c := range cases {
		if got := weeksDisplayWidth(c.format); got != c.want {
			t.Errorf("%q: expected width %d, got %d", c.format, c.want, got)
		}
	}
}
