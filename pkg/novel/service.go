package novel

import (
	"strconv"
	"strings"
)

// Service is the capability-set the codec consumes to construct new
// entities during import. DefaultService is the only implementation
// this module ships, but the interface keeps pkg/y7 decoupled from the
// concrete graph type a host application might use instead.
type Service interface {
	MakeChapter() *Chapter
	MakeSection() *Section
	MakePlotLine() *PlotLine
	MakePlotPoint(title, desc string) *PlotPoint
	MakeCharacter() *Character
	MakeLocation() *Location
	MakeItem() *Item
	MakeProjectNote() *ProjectNote
	MakeNovel() *Novel
}

// DefaultService is the Service backing this module's own Novel type.
type DefaultService struct{}

var _ Service = DefaultService{}

func (DefaultService) MakeChapter() *Chapter           { return &Chapter{} }
func (DefaultService) MakeSection() *Section           { return &Section{} }
func (DefaultService) MakePlotLine() *PlotLine         { return &PlotLine{} }
func (DefaultService) MakeCharacter() *Character       { return &Character{} }
func (DefaultService) MakeLocation() *Location         { return &Location{} }
func (DefaultService) MakeItem() *Item                 { return &Item{} }
func (DefaultService) MakeProjectNote() *ProjectNote   { return &ProjectNote{} }
func (DefaultService) MakeNovel() *Novel               { return NewNovel() }

func (DefaultService) MakePlotPoint(title, desc string) *PlotPoint {
	pp := &PlotPoint{}
	pp.Title = title
	pp.Desc = desc
	return pp
}

// CreateID returns the smallest positive integer ID, prefixed, that does
// not collide with any ID already present in existing. It is used to
// allocate IDs that must be unique within a sibling set: plot points get
// fresh synthesized section IDs, and plot lines get fresh synthesized
// chapter IDs.
func CreateID(existing []string, prefix string) string {
	used := make(map[int]bool, len(existing))
	for _, id := range existing {
		n, ok := numericSuffix(id, prefix)
		if ok {
			used[n] = true
		}
	}
	for i := 1; ; i++ {
		if !used[i] {
			return prefix + strconv.Itoa(i)
		}
	}
}

func numericSuffix(id, prefix string) (int, bool) {
	if !strings.HasPrefix(id, prefix) {
		return 0, false
	}
	n, err := strconv.Atoi(id[len(prefix):])
	if err != nil {
		return 0, false
	}
	return n, true
}
