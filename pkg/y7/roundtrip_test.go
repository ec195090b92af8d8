package y7

import (
	"path/filepath"
	"testing"

	"github.com/inkbound/novelbridge/pkg/novel"
)

// TestWriteReadRoundTripPlotLine covers the plot-line flattening invariant
// (spec 4.5.3/4.5.6): a plot line and its plot point survive a write/read
// cycle as a chapter-shaped structure on disk and unflatten back into a
// PlotLine/PlotPoint pair, with the associated section picking the plot
// line back up via its shortName.
func TestWriteReadRoundTripPlotLine(t *testing.T) {
	svc := novel.DefaultService{}
	n := newTestNovel()
	n.Title = "Arcs"

	sec := svc.MakeSection()
	sec.Title = "Opening"
	sec.Body = "<p>It begins.</p>"
	sec.Status = 1
	n.Sections["sc1"] = sec

	pl := svc.MakePlotLine()
	pl.Title = "Main Arc"
	pl.ShortName = "main"
	pl.Sections = []string{"sc1"}
	n.PlotLines["pl1"] = pl
	n.Tree.Append(novel.RootPlotLines, "pl1")

	pp := svc.MakePlotPoint("Inciting Incident", "Something happens.")
	pp.SectionAssoc = "sc1"
	n.PlotPoints["pp1"] = pp
	n.Tree.Append("pl1", "pp1")

	path := filepath.Join(t.TempDir(), "project.yw7")
	if err := Write(n, path); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	got, err := Read(path, svc)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}

	plotLines := got.Tree.GetChildren(novel.RootPlotLines)
	if len(plotLines) != 1 {
		t.Fatalf("plot lines after round trip = %v, want exactly one", plotLines)
	}
	gotPL := got.PlotLines[plotLines[0]]
	if gotPL == nil {
		t.Fatal("plot line missing after round trip")
	}
	if gotPL.Title != "Main Arc" || gotPL.ShortName != "main" {
		t.Errorf("plot line = %+v, want Title=Main Arc ShortName=main", gotPL)
	}
	if len(gotPL.Sections) != 1 || gotPL.Sections[0] != "sc1" {
		t.Errorf("plot line Sections = %v, want [sc1]", gotPL.Sections)
	}

	ppIDs := got.Tree.GetChildren(plotLines[0])
	if len(ppIDs) != 1 {
		t.Fatalf("plot points after round trip = %v, want exactly one", ppIDs)
	}
	gotPP := got.PlotPoints[ppIDs[0]]
	if gotPP == nil {
		t.Fatal("plot point missing after round trip")
	}
	if gotPP.Title != "Inciting Incident" || gotPP.Desc != "Something happens." {
		t.Errorf("plot point = %+v, want Title/Desc preserved", gotPP)
	}
	if gotPP.SectionAssoc != "sc1" {
		t.Errorf("plot point SectionAssoc = %q, want sc1", gotPP.SectionAssoc)
	}

	gotSec := got.Sections["sc1"]
	if gotSec == nil {
		t.Fatal("section sc1 missing after round trip")
	}
	if len(gotSec.PlotPoints) != 1 || gotSec.PlotPoints[0] != ppIDs[0] {
		t.Errorf("section PlotPoints = %v, want [%s]", gotSec.PlotPoints, ppIDs[0])
	}
}
