package novel

import "golang.org/x/text/language"

// CanonicalLanguageTag normalizes a BCP-47-ish language code the way the
// Y7 format stores it (canonical BCP 47 casing: lowercase language,
// uppercase region, e.g. "de", "en-US"). Codes that
// golang.org/x/text/language cannot parse are returned unchanged: the
// codec is tolerant on input, since a legacy project may carry a code
// invented by the authoring tool that no parser recognizes.
func CanonicalLanguageTag(code string) string {
	if code == "" {
		return code
	}
	tag, err := language.Parse(code)
	if err != nil {
		return code
	}
	return tag.String()
}

// KnownLanguages deduplicates and canonicalizes a list of language codes,
// preserving first-seen order.
func KnownLanguages(codes []string) []string {
	seen := make(map[string]bool, len(codes))
	out := make([]string, 0, len(codes))
	for _, c := range codes {
		canon := CanonicalLanguageTag(c)
		if canon == "" || seen[canon] {
			continue
		}
		seen[canon] = true
		out = append(out, canon)
	}
	return out
}
