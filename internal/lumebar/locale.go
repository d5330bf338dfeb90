package lumebar

import (
	"os"
	"strings"
	"time"

	"github.com/goodsign/monday"
	"golang.org/x/text/language"
)

// localeInfo is the resolved form of a locale identifier such as "fr_FR" or
// "en_US.UTF-8". The tag drives the first-day-of-week lookup and names holds
// the day/month name tables when they exist for the locale.
type localeInfo struct {
	name  string
	tag   language.Tag
	names monday.Locale
}

func (l localeInfo) localized() bool {
	return l.names != ""
}

// resolveLocale normalizes name and looks up its language tag and name
// tables. An empty name falls back to the host environment, and a locale we
// have no tables for degrades to plain English names.
func resolveLocale(name string) localeInfo {
	if name == "" {
		name = envLocale()
	}

	name = normalizeLocale(name)
	info := localeInfo{name: name}

	if tag, err := language.Parse(strings.ReplaceAll(name, "_", "-")); err == nil {
		info.tag = tag
	}

	for _, known := range monday.ListLocales() {
		if string(known) == name {
			info.names = known
			break
		}
	}

	return info
}

// envLocale returns the host's locale the way setlocale(LC_TIME, "") would
// resolve it.
func envLocale() string {
	for _, key := range []string{"LC_TIME", "LC_ALL", "LANG"} {
		if value := os.Getenv(key); value != "" && value != "C" && value != "POSIX" {
			return value
		}
	}

	return "en_US"
}

// normalizeLocale strips the codeset and modifier parts of a POSIX locale
// identifier, e.g. "de_DE.UTF-8@euro" becomes "de_DE".
func normalizeLocale(name string) string {
	if i := strings.IndexByte(name, '.'); i >= 0 {
		name = name[:i]
	}
	if i := strings.IndexByte(name, '@'); i >= 0 {
		name = name[:i]
	}

	return name
}

// firstDayProvider reports which weekday a calendar week starts on for a
// given locale. It is a pure function of the locale and is re-queried on
// every render rather than cached.
type firstDayProvider interface {
	firstDay(loc localeInfo) time.Weekday
}

// cldrFirstDay resolves the week start from the locale's territory, the way
// cal(1) resolves it from langinfo. Locales without a recognizable territory
// start on Sunday.
type cldrFirstDay struct{}

// Territories whose weeks do not start on Monday, from CLDR week data.
var (
	sundayFirstTerritories = map[string]bool{
		"AG": true, "AS": true, "AU": true, "BD": true, "BR": true, "BS": true,
		"BT": true, "BW": true, "BZ": true, "CA": true, "CN": true, "CO": true,
		"DM": true, "DO": true, "ET": true, "GT": true, "GU": true, "HK": true,
		"HN": true, "ID": true, "IL": true, "IN": true, "JM": true, "JP": true,
		"KE": true, "KH": true, "KR": true, "LA": true, "MH": true, "MM": true,
		"MO": true, "MT": true, "MX": true, "MZ": true, "NI": true, "NP": true,
		"PA": true, "PE": true, "PH": true, "PK": true, "PR": true, "PY": true,
		"SA": true, "SG": true, "SV": true, "TH": true, "TT": true, "TW": true,
		"UM": true, "US": true, "VE": true, "VI": true, "WS": true, "YE": true,
		"ZA": true, "ZW": true,
	}
	saturdayFirstTerritories = map[string]bool{
		"AE": true, "AF": true, "BH": true, "DJ": true, "DZ": true, "EG": true,
		"IQ": true, "IR": true, "JO": true, "KW": true, "LY": true, "OM": true,
		"QA": true, "SD": true, "SY": true,
	}
	fridayFirstTerritories = map[string]bool{
		"MV": true,
	}
)

func (cldrFirstDay) firstDay(loc localeInfo) time.Weekday {
	region, confidence := loc.tag.Region()
	if confidence == language.No || !region.IsCountry() {
		return time.Sunday
	}

	switch territory := region.String(); {
	case fridayFirstTerritories[territory]:
		return time.Friday
	case saturdayFirstTerritories[territory]:
		return time.Saturday
	case sundayFirstTerritories[territory]:
		return time.Sunday
	default:
		return time.Monday
	}
}
