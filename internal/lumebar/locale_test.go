package lumebar

import (
	"testing"
	"time"
)

func TestResolveLocaleNormalization(t *testing.T) {
	loc := resolveLocale("de_DE.UTF-8@euro")

	if loc.name != "de_DE" {
		t.Fatalf("expected de_DE, got %q", loc.name)
	}
	if !loc.localized() {
		t.Fatal("expected de_DE to have name tables")
	}
}

func TestFirstDayOfWeek(t *testing.T) {
	provider := cldrFirstDay{}

	cases := []struct {
		locale string
		want   time.Weekday
	}{
		{"en_US", time.Sunday},
		{"en", time.Sunday},
		{"fr_FR", time.Monday},
		{"de_DE", time.Monday},
		{"ja_JP", time.Sunday},
		{"ar_EG", time.Saturday},
	}

	for _, c := range cases {
		if got := provider.firstDay(resolveLocale(c.locale)); got != c.want {
			t.Errorf("%s: expected %s, got %s", c.locale, c.want, got)
		}
	}

	// No recognizable territory means the portable default.
	if got := provider.firstDay(localeInfo{}); got != time.Sunday {
		t.Errorf("expected Sunday for an unresolved locale, got %s", got)
	}
}
