package shortcode

import "regexp"

var langSpanRe = regexp.MustCompile(`\[lang=([A-Za-z0-9_-]+)\]`)

// DiscoverLanguages scans shortcode text for [lang=X] spans and returns
// the distinct codes found, in first-seen order. The Y7 reader uses this
// to grow the novel's known-language list as section bodies are read, so
// a language is always known by the time its span is converted.
func DiscoverLanguages(text string) []string {
	matches := langSpanRe.FindAllStringSubmatch(text, -1)
	if matches == nil {
		return nil
	}
	seen := make(map[string]bool, len(matches))
	var out []string
	for _, m := range matches {
		code := m[1]
		if !seen[code] {
			seen[code] = true
			out = append(out, code)
		}
	}
	return out
}
