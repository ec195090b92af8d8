package y7

import (
	"fmt"
	"strings"
	"time"
)

// isoLayouts are the SpecificDateTime forms the legacy tool accepts,
// tried in order. The legacy tool itself writes a space-separated form
// ("2024-01-01 10:30:00"), and so does this package's writer; the "T"
// forms are accepted too since strict ISO 8601 callers may supply them.
var isoLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// splitISODateTime parses s as an ISO 8601 date or date-time and returns
// its date and time components separately. ok is false if s parses under
// none of the accepted layouts, matching the legacy tool's behavior of
// leaving date/time blank on a malformed SpecificDateTime.
func splitISODateTime(s string) (date, clock string, ok bool) {
	for _, layout := range isoLayouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		return t.Format("2006-01-02"), t.Format("15:04:05"), true
	}
	return "", "", false
}

// zeroPad2 left-pads a numeric string to two digits, matching Python's
// str.zfill(2) used for the legacy Hour/Minute elements.
func zeroPad2(s string) string {
	if len(s) >= 2 {
		return s
	}
	return strings.Repeat("0", 2-len(s)) + s
}

// combineDateTime renders date and clock the way the legacy tool writes
// SpecificDateTime: space-separated, not the "T"-joined ISO form.
func combineDateTime(date, clock string) string {
	if date == "" || clock == "" {
		return ""
	}
	return fmt.Sprintf("%s %s", date, clock)
}
