package flow

import (
	"testing"

	"github.com/inkbound/novelbridge/internal/testutil"
)

// TestToShortcodeGolden locks down the inverse of shortcode's
// TestToFlowGolden fixture: the same document, round-tripped the other
// direction, should reproduce the original shortcode text (plus the
// trailing newline every converted paragraph gets).
func TestToShortcodeGolden(t *testing.T) {
	const nx = `<p>Hello <em>world</em>.</p><p style="quotations"><span xml:lang="de">Guten Tag</span></p><p>Next line with <strong>bold</strong> and <em>emphasis</em>.</p>`

	got, err := ToShortcode(nx)
	if err != nil {
		t.Fatalf("ToShortcode() error = %v", err)
	}

	gf := testutil.NewGoldenFile(t, "testdata/golden")
	gf.Assert(t, "to_shortcode_mixed", []byte(got))
}
