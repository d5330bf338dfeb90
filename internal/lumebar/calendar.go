package lumebar

import (
	"regexp"
	"strings"
	"time"

	timefmt "github.com/itchyny/timefmt-go"
	"github.com/mattn/go-runewidth"
)

// calendarRenderer turns an instant into a month grid, one row per week,
// with an optional week-number column on either side.
type calendarRenderer struct {
	loc          localeInfo
	firstDay     firstDayProvider
	dayFormat    string
	todayFormat  string
	headerFormat string
	weeksFormat  string
	weeksPos     weeksPosField
	weeksPad     int
}

func (r *calendarRenderer) render(t time.Time, today int) (string, error) {
	first := r.firstDay.firstDay(r.loc)
	year, month, _ := t.Date()
	firstOfMonth := time.Date(year, month, 1, 0, 0, 0, 0, t.Location())
	lastDay := firstOfMonth.AddDate(0, 1, -1).Day()

	var b strings.Builder

	if r.weeksPos == weeksLeft {
		b.WriteString(strings.Repeat(" ", 3+r.weeksPad))
	}

	header, err := r.weekdaysHeader(first, t)
	if err != nil {
		return "", err
	}
	b.WriteString(header)

	// weekOf tracks the first date printed on the current row; the row's
	// week number is derived from it.
	weekOf := firstOfMonth
	weekday := firstOfMonth.Weekday()
	empty := (7 + int(weekday) - int(first)) % 7

	if r.weeksPos == weeksLeft {
		if err := r.writeWeekNumber(&b, weekOf, "", " "); err != nil {
			return "", err
		}
	}
	if empty > 0 {
		b.WriteString(strings.Repeat(" ", empty*3-1))
	}

	for day := 1; day <= lastDay; day++ {
		date := time.Date(year, month, day, 0, 0, 0, 0, t.Location())

		if weekday != first {
			b.WriteByte(' ')
		} else if day != 1 {
			if r.weeksPos == weeksRight {
				if err := r.writeWeekNumber(&b, weekOf, " ", ""); err != nil {
					return "", err
				}
			}

			b.WriteByte('\n')
			weekOf = date

			if r.weeksPos == weeksLeft {
				if err := r.writeWeekNumber(&b, weekOf, "", " "); err != nil {
					return "", err
				}
			}
		}

		cell, err := r.dayCell(date, day == today)
		if err != nil {
			return "", err
		}
		b.WriteString(cell)

		if r.weeksPos == weeksRight && day == lastDay {
			trailing := 6 - (7+int(weekday)-int(first))%7
			if trailing > 0 {
				b.WriteString(strings.Repeat(" ", trailing*3))
			}
			if err := r.writeWeekNumber(&b, weekOf, " ", ""); err != nil {
				return "", err
			}
		}

		weekday = (weekday + 1) % 7
	}

	return b.String(), nil
}

// weekdaysHeader renders one 2-column abbreviated name per weekday, starting
// from first and wrapping around all 7 days.
func (r *calendarRenderer) weekdaysHeader(first time.Weekday, t time.Time) (string, error) {
	var b strings.Builder

	for i := 0; i < 7; i++ {
		if i > 0 {
			b.WriteByte(' ')
		}

		weekday := time.Weekday((int(first) + i) % 7)
		name := runewidth.Truncate(strftime(weekdayDate(weekday), "%a", r.loc), 2, "")
		if pad := 2 - runewidth.StringWidth(name); pad > 0 {
			b.WriteString(strings.Repeat(" ", pad))
		}
		b.WriteString(name)
	}
	b.WriteByte('\n')

	if r.headerFormat == "" {
		return b.String(), nil
	}

	return renderTemplate(r.headerFormat, t, r.loc, map[string]string{"": b.String()})
}

func (r *calendarRenderer) dayCell(date time.Time, highlight bool) (string, error) {
	day := timefmt.Format(date, "%e")

	if highlight {
		if r.todayFormat == "" {
			return "<b><u>" + day + "</u></b>", nil
		}
		return renderTemplate(r.todayFormat, date, r.loc, map[string]string{"": day})
	}

	return renderTemplate(r.dayFormat, date, r.loc, map[string]string{"": day})
}

func (r *calendarRenderer) writeWeekNumber(b *strings.Builder, weekOf time.Time, before, after string) error {
	week, err := renderTemplate(r.weeksFormat, weekOf, r.loc, nil)
	if err != nil {
		return err
	}

	b.WriteString(before)
	b.WriteString(week)
	b.WriteString(after)
	return nil
}

// weekdayDate returns a date falling on the given weekday, for rendering
// weekday names detached from any particular month. 2006-01-01 was a Sunday.
func weekdayDate(weekday time.Weekday) time.Time {
	return time.Date(2006, time.January, 1+int(weekday), 0, 0, 0, 0, time.UTC)
}

var (
	markupTagPattern  = regexp.MustCompile(`</?[^>]+>`)
	formatSpecPattern = regexp.MustCompile(`\{[^{}]*\}`)
)

// weeksDisplayWidth measures how many columns the literal part of a
// week-number format occupies, with markup tags and format specs stripped.
// It sizes the header padding for a left-positioned week column.
func weeksDisplayWidth(format string) int {
	stripped := markupTagPattern.ReplaceAllString(format, "")
	stripped = formatSpecPattern.ReplaceAllString(stripped, "")
	return runewidth.StringWidth(stripped)
}
