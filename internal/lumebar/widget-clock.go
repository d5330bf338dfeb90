package lumebar

import (
	"fmt"
	"log/slog"
	"strings"
	"time"
)

const (
	calendarPlaceholder      = "calendar"
	timezonedListPlaceholder = "timezoned-time-list"

	defaultClockFormat   = "{:%H:%M}"
	defaultClockInterval = time.Minute
)

type clockWidget struct {
	widgetBase             `yaml:",inline"`
	Format                 string        `yaml:"format"`
	TooltipFormat          string        `yaml:"tooltip-format"`
	Timezones              []string      `yaml:"timezones"`
	Timezone               string        `yaml:"timezone"`
	Locale                 string        `yaml:"locale"`
	CalendarFormat         string        `yaml:"format-calendar"`
	CalendarWeeksFormat    string        `yaml:"format-calendar-weeks"`
	CalendarWeekdaysFormat string        `yaml:"format-calendar-weekdays"`
	TodayFormat            string        `yaml:"today-format"`
	CalendarWeeksPos       weeksPosField `yaml:"calendar-weeks-pos"`
	OnScroll               struct {
		Calendar int `yaml:"calendar"`
	} `yaml:"on-scroll"`

	// zones is never empty; a nil entry means host local time.
	zones             []*time.Location
	zoneIdx           int
	calendarShift     int
	resetShiftOnLeave bool
	calendarInTooltip bool
	zoneListInTooltip bool
	loc               localeInfo
	renderer          calendarRenderer
	cache             calendarCache
}

// calendarCache memoizes the last rendered grid keyed by the displayed
// calendar day. The key is sufficient because the rest of the renderer's
// input is fixed at construction.
type calendarCache struct {
	key  calendarDay
	text string
}

type calendarDay struct {
	year  int
	month time.Month
	day   int
}

func (w *clockWidget) initialize() error {
	if w.Format == "" {
		w.Format = defaultClockFormat
	}
	if w.Interval == 0 {
		w.Interval = durationField(defaultClockInterval)
	}

	switch {
	case len(w.Timezones) > 0:
		for _, name := range w.Timezones {
			w.zones = append(w.zones, loadZone(name))
		}
	case w.Timezone != "":
		w.zones = append(w.zones, loadZone(w.Timezone))
	}

	// No usable timezone configured means local time.
	if len(w.zones) == 0 {
		w.zones = append(w.zones, nil)
	}

	trimmed := stripWhitespace(w.TooltipFormat)
	w.calendarInTooltip = strings.Contains(trimmed, "{"+calendarPlaceholder+"}")
	w.zoneListInTooltip = strings.Contains(trimmed, "{"+timezonedListPlaceholder+"}")
	w.resetShiftOnLeave = w.calendarInTooltip && w.OnScroll.Calendar != 0

	w.loc = resolveLocale(w.Locale)
	firstDay := w.firstDayProvider()

	dayFormat := w.CalendarFormat
	if dayFormat == "" {
		dayFormat = "{}"
	}

	var weeksFormat string
	if w.CalendarWeeksPos != weeksHidden {
		weeksFormat = w.CalendarWeeksFormat
		if weeksFormat == "" {
			weeksFormat = "{}"
		}

		// ISO week numbers when the locale starts its weeks on Monday,
		// US week numbers otherwise.
		spec := "{:%U}"
		if firstDay.firstDay(w.loc) == time.Monday {
			spec = "{:%V}"
		}
		weeksFormat = strings.ReplaceAll(weeksFormat, "{}", spec)
	}

	w.renderer = calendarRenderer{
		loc:          w.loc,
		firstDay:     firstDay,
		dayFormat:    dayFormat,
		todayFormat:  w.TodayFormat,
		headerFormat: w.CalendarWeekdaysFormat,
		weeksFormat:  weeksFormat,
		weeksPos:     w.CalendarWeeksPos,
		weeksPad:     weeksDisplayWidth(weeksFormat),
	}

	return nil
}

func loadZone(name string) *time.Location {
	if name == "" {
		return nil
	}

	zone, err := time.LoadLocation(name)
	if err != nil {
		slog.Warn("unresolvable timezone, falling back to local time", "timezone", name)
		return nil
	}

	return zone
}

// activeTime moves now into the widget's active timezone. The unset marker
// takes the local-time path; the two paths agree whenever the active zone
// equals the host zone.
func (w *clockWidget) activeTime(now time.Time) time.Time {
	if zone := w.zones[w.zoneIdx]; zone != nil {
		return now.In(zone)
	}

	return now.Local()
}

func (w *clockWidget) update() error {
	now := w.now()
	ztime := w.activeTime(now)

	label, err := renderTemplate(w.Format, ztime, w.loc, nil)
	if err != nil {
		return fmt.Errorf("clock format: %w", err)
	}
	w.setLabel(label)

	if w.TooltipFormat != "" && w.tooltipEnabled() {
		// The calendar shift applies to the tooltip only; the label above
		// always shows the true current time.
		shifted := ztime.AddDate(0, w.calendarShift, 0)

		args := map[string]string{
			calendarPlaceholder:      "",
			timezonedListPlaceholder: "",
		}

		if w.calendarInTooltip {
			text, err := w.calendarText(shifted)
			if err != nil {
				return fmt.Errorf("calendar: %w", err)
			}
			args[calendarPlaceholder] = text
		}

		if w.zoneListInTooltip {
			text, err := w.timezonesText(now)
			if err != nil {
				return fmt.Errorf("timezoned time list: %w", err)
			}
			args[timezonedListPlaceholder] = text
		}

		tooltip, err := renderTemplate(w.TooltipFormat, shifted, w.loc, args)
		if err != nil {
			return fmt.Errorf("tooltip format: %w", err)
		}
		w.setTooltip(tooltip)
	}

	w.contentChanged()
	return nil
}

func (w *clockWidget) calendarText(shifted time.Time) (string, error) {
	key := calendarDay{shifted.Year(), shifted.Month(), shifted.Day()}
	if w.cache.text != "" && w.cache.key == key {
		return w.cache.text, nil
	}

	// When the calendar is shifted away from the current month there is no
	// day to mark as today.
	today := shifted.Day()
	if w.OnScroll.Calendar != 0 && w.calendarShift != 0 {
		today = 0
	}

	text, err := w.renderer.render(shifted, today)
	if err != nil {
		return "", err
	}

	w.cache = calendarCache{key: key, text: text}
	return text, nil
}

// timezonesText lists now in every configured timezone except the active
// one, in configuration order.
func (w *clockWidget) timezonesText(now time.Time) (string, error) {
	if len(w.zones) == 1 {
		return "", nil
	}

	var b strings.Builder

	for i, zone := range w.zones {
		if i == w.zoneIdx {
			continue
		}

		ztime := now.Local()
		if zone != nil {
			ztime = now.In(zone)
		}

		line, err := renderTemplate(w.Format, ztime, w.loc, nil)
		if err != nil {
			return "", err
		}

		b.WriteString(line)
		b.WriteByte('\n')
	}

	return b.String(), nil
}

func (w *clockWidget) handleScroll(dir scrollDir) bool {
	if w.hasScrollCommands() {
		return w.widgetBase.handleScroll(dir)
	}

	if w.OnScroll.Calendar != 0 {
		switch dir {
		case scrollUp:
			w.calendarShift += w.OnScroll.Calendar
		case scrollDown:
			w.calendarShift -= w.OnScroll.Calendar
		default:
			return true
		}
	} else {
		if dir != scrollUp && dir != scrollDown {
			return true
		}
		if len(w.zones) == 1 {
			return true
		}

		if dir == scrollUp {
			w.zoneIdx = (w.zoneIdx + 1) % len(w.zones)
		} else {
			w.zoneIdx = (w.zoneIdx + len(w.zones) - 1) % len(w.zones)
		}
	}

	if err := w.update(); err != nil {
		slog.Error("clock update failed", "error", err)
	}

	return true
}

// handleLeave resets the calendar shift when the pointer leaves the widget,
// so the tooltip shows the current month again on the next render.
func (w *clockWidget) handleLeave() {
	if w.resetShiftOnLeave {
		w.calendarShift = 0
	}
}
