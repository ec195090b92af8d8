package fixer

import (
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestFixBalancesOverlappingTags(t *testing.T) {
	f := New()
	got := f.Fix("<strong>X<em>Y</strong>Z</em>")

	want := "<strong>X<em>Y</em></strong>Z"
	if got != want {
		t.Errorf("Fix() = %q, want %q", got, want)
	}
}

func TestFixDropsDuplicateOpenTag(t *testing.T) {
	f := New()
	got := f.Fix("<em>X<em>Y</em>Z</em>")
	want := "<em>XY</em>Z"
	if got != want {
		t.Errorf("Fix() = %q, want %q", got, want)
	}
}

func TestFixDropsUnmatchedCloseTag(t *testing.T) {
	f := New()
	got := f.Fix("X</em>Y")
	want := "XY"
	if got != want {
		t.Errorf("Fix() = %q, want %q", got, want)
	}
}

func TestFixRemovesEmptyFormatRegions(t *testing.T) {
	f := New()
	got := f.Fix("a<em></em>b<strong></strong>c")
	want := "abc"
	if got != want {
		t.Errorf("Fix() = %q, want %q", got, want)
	}
}

func TestFixPassesNonFormatTagsThrough(t *testing.T) {
	f := New()
	got := f.Fix(`<p style="quotations">hi &amp; bye</p>`)
	want := `<p style="quotations">hi &amp; bye</p>`
	if got != want {
		t.Errorf("Fix() = %q, want %q", got, want)
	}
}

func TestFixEscapesCharacterData(t *testing.T) {
	f := New()
	got := f.Fix(`<p>A & B < C</p>`)
	want := `<p>A &amp; B &lt; C</p>`
	if got != want {
		t.Errorf("Fix() = %q, want %q", got, want)
	}
}

// genMarkupFragment builds small, possibly-overlapping em/strong fragments
// to exercise the fixer's idempotence and non-overlap properties.
func genMarkupFragment() gopter.Gen {
	pieces := []string{
		"<em>", "</em>", "<strong>", "</strong>",
		"a", "b", "&", "<p>", "</p>",
	}
	return gen.SliceOfN(8, gen.OneConstOf(toInterfaces(pieces)...)).Map(func(parts []interface{}) string {
		var sb strings.Builder
		for _, p := range parts {
			sb.WriteString(p.(string))
		}
		return sb.String()
	})
}

func toInterfaces(ss []string) []interface{} {
	out := make([]interface{}, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}

func TestFixIsIdempotent(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("fix(fix(x)) == fix(x)", prop.ForAll(
		func(s string) bool {
			f := New()
			once := f.Fix(s)
			twice := f.Fix(once)
			return once == twice
		},
		genMarkupFragment(),
	))

	properties.TestingRun(t)
}

func TestFixProducesNoOverlap(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("no <strong> close precedes a nested <em> open out of order", prop.ForAll(
		func(s string) bool {
			f := New()
			out := f.Fix(s)
			return wellNested(out, "em") && wellNested(out, "strong") && !crosses(out)
		},
		genMarkupFragment(),
	))

	properties.TestingRun(t)
}

// wellNested checks that a single tag name's opens/closes are balanced
// (every close has a matching prior open, nothing left open at the end).
func wellNested(s, tag string) bool {
	open := 0
	rest := s
	for {
		oi := strings.Index(rest, "<"+tag+">")
		ci := strings.Index(rest, "</"+tag+">")
		switch {
		case oi == -1 && ci == -1:
			return open == 0
		case ci == -1 || (oi != -1 && oi < ci):
			open++
			rest = rest[oi+len(tag)+2:]
		default:
			open--
			if open < 0 {
				return false
			}
			rest = rest[ci+len(tag)+3:]
		}
	}
}

// crosses reports whether <em> and <strong> regions overlap incorrectly
// (one opens inside the other but closes outside it, in the wrong order).
func crosses(s string) bool {
	type evt struct {
		pos  int
		tag  string
		open bool
	}
	var events []evt
	for _, tag := range []string{"em", "strong"} {
		start := 0
		for {
			oi := strings.Index(s[start:], "<"+tag+">")
			if oi == -1 {
				break
			}
			events = append(events, evt{start + oi, tag, true})
			start += oi + 1
		}
		start = 0
		for {
			ci := strings.Index(s[start:], "</"+tag+">")
			if ci == -1 {
				break
			}
			events = append(events, evt{start + ci, tag, false})
			start += ci + 1
		}
	}
	// Sort by position (stable small-N insertion sort is fine here).
	for i := 1; i < len(events); i++ {
		for j := i; j > 0 && events[j].pos < events[j-1].pos; j-- {
			events[j], events[j-1] = events[j-1], events[j]
		}
	}
	var stack []string
	for _, e := range events {
		if e.open {
			stack = append(stack, e.tag)
		} else {
			if len(stack) == 0 || stack[len(stack)-1] != e.tag {
				return true
			}
			stack = stack[:len(stack)-1]
		}
	}
	return false
}
