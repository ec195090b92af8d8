package fixer

import "strings"

type tokenKind int

const (
	tokText tokenKind = iota
	tokStartTag
	tokEndTag
	tokSelfClose
)

type token struct {
	kind     tokenKind
	name     string
	attrText string // raw attribute text, including the leading space if any
	text     string // unescaped text content (re-escaped by Fix on output)
}

// tokenize does a minimal, tolerant scan of xmlText into text/tag tokens.
// It does not validate well-formedness: the fixer's whole job is to accept
// input that may not be well-formed yet with respect to tag nesting.
func tokenize(xmlText string) []token {
	var toks []token
	i := 0
	n := len(xmlText)
	for i < n {
		lt := strings.IndexByte(xmlText[i:], '<')
		if lt == -1 {
			toks = append(toks, token{kind: tokText, text: unescapeText(xmlText[i:])})
			break
		}
		if lt > 0 {
			toks = append(toks, token{kind: tokText, text: unescapeText(xmlText[i : i+lt])})
		}
		i += lt
		if i+1 < n && strings.IndexByte(" \t\r\n", xmlText[i+1]) >= 0 {
			// A '<' followed by whitespace cannot open a tag: keep it as text.
			toks = append(toks, token{kind: tokText, text: "<"})
			i++
			continue
		}
		gt := strings.IndexByte(xmlText[i:], '>')
		if gt == -1 {
			// Unterminated tag: treat the rest as text.
			toks = append(toks, token{kind: tokText, text: unescapeText(xmlText[i:])})
			break
		}
		raw := xmlText[i+1 : i+gt]
		i += gt + 1

		switch {
		case strings.HasPrefix(raw, "/"):
			toks = append(toks, token{kind: tokEndTag, name: strings.TrimSpace(raw[1:])})
		case strings.HasSuffix(raw, "/"):
			body := strings.TrimSpace(raw[:len(raw)-1])
			name, attrs := splitTagName(body)
			toks = append(toks, token{kind: tokSelfClose, name: name, attrText: attrs})
		default:
			name, attrs := splitTagName(raw)
			toks = append(toks, token{kind: tokStartTag, name: name, attrText: attrs})
		}
	}
	return toks
}

func splitTagName(body string) (name, attrText string) {
	body = strings.TrimSpace(body)
	idx := strings.IndexAny(body, " \t\n")
	if idx == -1 {
		return body, ""
	}
	return body[:idx], " " + strings.TrimSpace(body[idx+1:])
}

func escapeText(s string) string {
	r := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		"'", "&apos;",
		"\"", "&quot;",
	)
	return r.Replace(s)
}

func unescapeText(s string) string {
	if !strings.Contains(s, "&") {
		return s
	}
	r := strings.NewReplacer(
		"&lt;", "<",
		"&gt;", ">",
		"&apos;", "'",
		"&quot;", "\"",
		"&amp;", "&",
	)
	return r.Replace(s)
}
