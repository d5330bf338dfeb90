package lumebar

import (
	"fmt"
	"strings"
	"time"

	"github.com/goodsign/monday"
	timefmt "github.com/itchyny/timefmt-go"
)

// renderTemplate substitutes {...} tokens in a label or tooltip template.
// Three token forms are recognized: {name} looks up a named string argument,
// {} takes the unnamed argument, and {:%...} formats t with strftime
// conversions in the widget's locale. Doubled braces produce literal braces.
// An unknown placeholder or an unbalanced brace is a configuration error and
// is reported as such rather than absorbed.
func renderTemplate(template string, t time.Time, loc localeInfo, args map[string]string) (string, error) {
	var b strings.Builder

	for i := 0; i < len(template); {
		switch template[i] {
		case '{':
			if i+1 < len(template) && template[i+1] == '{' {
				b.WriteByte('{')
				i += 2
				continue
			}

			end := strings.IndexByte(template[i:], '}')
			if end < 0 {
				return "", fmt.Errorf("unterminated '{' in format %q", template)
			}

			inner := template[i+1 : i+end]
			i += end + 1

			if strings.HasPrefix(inner, ":") {
				b.WriteString(strftime(t, inner[1:], loc))
				continue
			}

			arg, ok := args[inner]
			if !ok {
				return "", fmt.Errorf("unknown placeholder {%s} in format %q", inner, template)
			}

			b.WriteString(arg)
		case '}':
			if i+1 < len(template) && template[i+1] == '}' {
				b.WriteByte('}')
				i += 2
				continue
			}

			return "", fmt.Errorf("unmatched '}' in format %q", template)
		default:
			b.WriteByte(template[i])
			i++
		}
	}

	return b.String(), nil
}

// strftime renders t according to a POSIX strftime format. The conversions
// whose output is a name rather than a number (%a %A %b %B) are resolved
// through the locale's day and month tables; everything else is handled by
// timefmt verbatim.
func strftime(t time.Time, format string, loc localeInfo) string {
	if !loc.localized() {
		return timefmt.Format(t, format)
	}

	var b strings.Builder

	for i := 0; i < len(format); i++ {
		if format[i] != '%' || i+1 == len(format) {
			b.WriteByte(format[i])
			continue
		}

		i++
		var name string

		switch format[i] {
		case 'a':
			name = monday.Format(t, "Mon", loc.names)
		case 'A':
			name = monday.Format(t, "Monday", loc.names)
		case 'b', 'h':
			name = monday.Format(t, "Jan", loc.names)
		case 'B':
			name = monday.Format(t, "January", loc.names)
		default:
			b.WriteByte('%')
			b.WriteByte(format[i])
			continue
		}

		b.WriteString(strings.ReplaceAll(name, "%", "%%"))
	}

	return timefmt.Format(t, b.String())
}
