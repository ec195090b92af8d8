package shortcode

import (
	"testing"

	"github.com/inkbound/novelbridge/internal/testutil"
)

// TestToFlowGolden locks down a full conversion pass (emphasis, a
// language span inside a block quote, and a plain paragraph) against a
// checked-in fixture, catching any accidental change to phase ordering
// that a narrower unit test might miss.
func TestToFlowGolden(t *testing.T) {
	const input = "Hello [i]world[/i].\n> [lang=de]Guten Tag[/lang=de]\nNext line with [b]bold[/b] and [i]emphasis[/i]."

	c := &Converter{}
	got, err := c.ToFlow(input)
	if err != nil {
		t.Fatalf("ToFlow() error = %v", err)
	}

	gf := testutil.NewGoldenFile(t, "testdata/golden")
	gf.Assert(t, "to_flow_mixed", []byte(got))
}
