package y7

import (
	"encoding/xml"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/inkbound/novelbridge/pkg/common"
	"github.com/inkbound/novelbridge/pkg/markup/fixer"
	"github.com/inkbound/novelbridge/pkg/markup/flow"
	"github.com/inkbound/novelbridge/pkg/novel"
)

// plotLinesContainerTitle is the title of the synthetic chapter that
// groups every flattened plot-line chapter, written unconditionally
// (even when the novel has no plot lines) to match the legacy tool's
// own chapter-building pass.
const plotLinesContainerTitle = "Plot lines"

// Write serializes n into the Y7 project file at path: project scalars,
// locations, items, characters, project variables (locale and per-
// language spans), scenes and synthesized plot-point scenes, chapters
// and synthesized plot-line chapters, project notes, and the word-count
// log, followed by the CDATA/entity post-processing pass that turns the
// generic XML tree into a schema-conformant Y7 document.
func Write(n *novel.Novel, path string) error {
	if _, err := os.Stat(path + ".lock"); err == nil {
		return common.WrapErrorWithPath("y7", "Write", path, ErrLockedByExternalTool)
	}

	w := &writer{novel: n, fixer: fixer.New()}
	doc := w.build()

	body, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return common.NewError("y7", "Write", path, err)
	}
	final := postprocess(string(body))

	return atomicWrite(path, final)
}

type writer struct {
	novel *novel.Novel
	fixer *fixer.Fixer
}

func boolField(b bool) string {
	if b {
		return "1"
	}
	return ""
}

func (w *writer) build() *document {
	doc := &document{
		Project:    w.buildProject(),
		Locations:  w.buildLocations(),
		Items:      w.buildItems(),
		Characters: w.buildCharacters(),
	}

	doc.ProjectVars = w.buildProjectVars()

	scIDs, scenes, fields, newScIDs := w.buildScenes()
	doc.Scenes = rawSceneList{Scenes: scenes}

	doc.Chapters = w.buildChapters(scIDs, newScIDs)
	w.applySceneArcsAndAssoc(scIDs, fields, newScIDs)

	if notes := w.novel.Tree.GetChildren(novel.RootProjectNotes); len(notes) > 0 {
		doc.ProjectNotes = w.buildProjectNotes(notes)
	}

	if len(w.novel.WordCountDates()) > 0 {
		doc.WCLog = w.buildWCLog()
	}

	return doc
}

func (w *writer) buildProject() rawProject {
	n := w.novel
	p := rawProject{
		Ver:        "7",
		Title:      n.Title,
		AuthorName: n.AuthorName,
		Desc:       n.Desc,
	}
	if n.WordCountStart != nil {
		p.WordCountStart = strconv.Itoa(*n.WordCountStart)
	}
	if n.WordCountTarget != nil {
		p.WordTarget = strconv.Itoa(*n.WordCountTarget)
	}

	f := &rawProjectFields{
		RenumberChapters:     boolField(n.RenumberChapters),
		RenumberParts:        boolField(n.RenumberParts),
		RenumberWithinParts:  boolField(n.RenumberWithinParts),
		RomanChapterNumbers:  boolField(n.RomanChapterNumbers),
		RomanPartNumbers:     boolField(n.RomanPartNumbers),
		ChapterHeadingPrefix: n.ChapterHeadingPrefix,
		ChapterHeadingSuffix: n.ChapterHeadingSuffix,
		PartHeadingPrefix:    n.PartHeadingPrefix,
		PartHeadingSuffix:    n.PartHeadingSuffix,
		CustomGoal:           n.CustomGoal,
		CustomConflict:       n.CustomConflict,
		CustomOutcome:        n.CustomOutcome,
		CustomChrBio:         n.CustomChrBio,
		CustomChrGoals:       n.CustomChrGoals,
		SaveWordCount:        boolField(n.SaveWordCount),
		ReferenceDate:        n.ReferenceDate,
		LanguageCode:         n.LanguageCode,
		CountryCode:          n.CountryCode,
	}
	if n.WorkPhase != nil {
		f.WorkPhase = strconv.Itoa(*n.WorkPhase)
	}
	p.Fields = f
	return p
}

func (w *writer) buildLocations() rawLocationList {
	var out rawLocationList
	for _, id := range w.novel.Tree.GetChildren(novel.RootLocations) {
		loc := w.novel.Locations[id]
		if loc == nil {
			continue
		}
		out.Locations = append(out.Locations, rawLocation{
			ID:    strings.TrimPrefix(id, novel.LocationPrefix),
			Title: loc.Title,
			Desc:  loc.Desc,
			AKA:   loc.AKA,
			Tags:  listToString(loc.Tags),
		})
	}
	return out
}

func (w *writer) buildItems() rawItemList {
	var out rawItemList
	for _, id := range w.novel.Tree.GetChildren(novel.RootItems) {
		it := w.novel.Items[id]
		if it == nil {
			continue
		}
		out.Items = append(out.Items, rawItem{
			ID:    strings.TrimPrefix(id, novel.ItemPrefix),
			Title: it.Title,
			Desc:  it.Desc,
			AKA:   it.AKA,
			Tags:  listToString(it.Tags),
		})
	}
	return out
}

func (w *writer) buildCharacters() rawCharacterList {
	var out rawCharacterList
	for _, id := range w.novel.Tree.GetChildren(novel.RootCharacters) {
		c := w.novel.Characters[id]
		if c == nil {
			continue
		}
		xc := rawCharacter{
			ID:       strings.TrimPrefix(id, novel.CharacterPrefix),
			Title:    c.Title,
			Desc:     c.Desc,
			AKA:      c.AKA,
			Tags:     listToString(c.Tags),
			Notes:    c.Notes,
			Bio:      c.Bio,
			Goals:    c.Goals,
			FullName: c.FullName,
		}
		if c.IsMajor {
			xc.Major = strPtr("-1")
		}
		if c.BirthDate != "" || c.DeathDate != "" {
			xc.Fields = &rawCharacterFields{BirthDate: c.BirthDate, DeathDate: c.DeathDate}
		}
		out.Characters = append(out.Characters, xc)
	}
	return out
}

// buildProjectVars emits the locale/language project variables described
// in spec 4.5.5: always Language/Country once any locale field is set,
// plus an open/close pair of HTM span markers per known language.
func (w *writer) buildProjectVars() rawProjectVars {
	n := w.novel
	if len(n.Languages) == 0 && n.LanguageCode == "" && n.CountryCode == "" {
		return rawProjectVars{}
	}

	var out rawProjectVars
	next := 1
	add := func(title, desc string) {
		out.Vars = append(out.Vars, rawProjectVar{
			ID:    strconv.Itoa(next),
			Title: title,
			Desc:  desc,
			Tags:  "0",
		})
		next++
	}

	add("Language", n.LanguageCode)
	add("Country", n.CountryCode)
	for _, lang := range n.Languages {
		add("lang="+lang, fmt.Sprintf(`<HTM <SPAN LANG="%s"> /HTM>`, lang))
		add("/lang="+lang, `<HTM </SPAN> /HTM>`)
	}
	return out
}

// buildScenes emits every real section as a SCENE element, then every
// plot point as a synthesized SCENE element with a freshly allocated ID
// that never collides with a real section's. It returns the full scene
// ID list (for arc/assoc bookkeeping), the raw scenes themselves, a
// parallel map of each scene's Fields element (so arcs/assoc can be
// filled in once plot-line membership is known), and the map from
// plot-point ID to its synthesized scene ID.
func (w *writer) buildScenes() (scIDs []string, scenes []rawScene, fields map[string]*rawSceneFields, newScIDs map[string]string) {
	n := w.novel
	fields = make(map[string]*rawSceneFields)

	for _, id := range sortedSectionIDs(n) {
		scIDs = append(scIDs, id)
	}

	for _, id := range scIDs {
		sec := n.Sections[id]
		f := &rawSceneFields{}
		fields[id] = f
		scenes = append(scenes, w.buildScene(id, sec, f))
	}

	newScIDs = make(map[string]string)
	for _, ppID := range plotPointOrder(n) {
		pp := n.PlotPoints[ppID]
		if pp == nil {
			continue
		}
		scID := novel.CreateID(scIDs, novel.SectionPrefix)
		scIDs = append(scIDs, scID)
		newScIDs[ppID] = scID

		f := &rawSceneFields{}
		fields[scID] = f
		scenes = append(scenes, w.buildPlotPointScene(scID, pp, f))
	}

	return scIDs, scenes, fields, newScIDs
}

// sortedSectionIDs returns section IDs in the order they are reachable
// from the chapter tree (the order scenes were originally read in),
// falling back to appending any orphaned sections at the end.
func sortedSectionIDs(n *novel.Novel) []string {
	var out []string
	seen := make(map[string]bool)
	for _, chID := range n.Tree.GetChildren(novel.RootChapters) {
		for _, scID := range n.Tree.GetChildren(chID) {
			if _, ok := n.Sections[scID]; ok && !seen[scID] {
				seen[scID] = true
				out = append(out, scID)
			}
		}
	}
	for id := range n.Sections {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

// plotPointOrder returns plot-point IDs in plot-line child order.
func plotPointOrder(n *novel.Novel) []string {
	var out []string
	seen := make(map[string]bool)
	for _, plID := range n.Tree.GetChildren(novel.RootPlotLines) {
		for _, ppID := range n.Tree.GetChildren(plID) {
			if _, ok := n.PlotPoints[ppID]; ok && !seen[ppID] {
				seen[ppID] = true
				out = append(out, ppID)
			}
		}
	}
	for id := range n.PlotPoints {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

func (w *writer) buildScene(id string, sec *novel.Section, f *rawSceneFields) rawScene {
	xs := rawScene{
		ID:     strings.TrimPrefix(id, novel.SectionPrefix),
		Title:  sec.Title,
		Desc:   sec.Desc,
		Fields: f,
	}

	tags := append([]string(nil), sec.Tags...)
	scType := sec.Type
	switch scType {
	case novel.SectionNotes:
		xs.Unused = strPtr("-1")
		f.SceneType = strPtr("1")
	case novel.SectionStage:
		xs.Unused = strPtr("-1")
		f.SceneType = strPtr("0")
		if !containsString(tags, novel.StageMarker) {
			tags = append(tags, novel.StageMarker)
		}
	}

	xs.Status = strPtr(strconv.Itoa(sec.Status))

	content, _ := flow.ToShortcode(w.fixer.Fix(sec.Body))
	xs.SceneContent = strPtr(content)

	if sec.Notes != "" {
		xs.Notes = sec.Notes
	}
	xs.Tags = listToString(tags)
	if sec.AppendToPrev {
		xs.AppendToPrev = strPtr("-1")
	}

	w.writeSceneTime(sec, &xs)

	xs.LastsDays = sec.LastsDays
	xs.LastsHours = sec.LastsHours
	xs.LastsMinutes = sec.LastsMinutes

	if sec.Scene == novel.SceneKindReaction {
		xs.ReactionScene = strPtr("-1")
	}
	xs.Goal = sec.Goal
	xs.Conflict = sec.Conflict
	xs.Outcome = sec.Outcome

	if len(sec.Characters) > 0 {
		xs.Characters = &rawCharRefs{CharID: stripPrefixAll(sec.Characters, novel.CharacterPrefix)}
	}
	if len(sec.Locations) > 0 {
		xs.Locations = &rawLocRefs{LocID: stripPrefixAll(sec.Locations, novel.LocationPrefix)}
	}
	if len(sec.Items) > 0 {
		xs.Items = &rawItemRefs{ItemID: stripPrefixAll(sec.Items, novel.ItemPrefix)}
	}

	return xs
}

// buildPlotPointScene emits a plot point as scType=2 (todo) with Status 1
// and an empty SceneContent, per spec 4.5.3.
func (w *writer) buildPlotPointScene(scID string, pp *novel.PlotPoint, f *rawSceneFields) rawScene {
	f.SceneType = strPtr("2")
	return rawScene{
		ID:           strings.TrimPrefix(scID, novel.SectionPrefix),
		Title:        pp.Title,
		Desc:         pp.Desc,
		Unused:       strPtr("-1"),
		Fields:       f,
		Status:       strPtr("1"),
		SceneContent: strPtr(""),
	}
}

func (w *writer) writeSceneTime(sec *novel.Section, xs *rawScene) {
	if sec.Date != "" && sec.Time != "" {
		xs.SpecificDateTime = strPtr(combineDateTime(sec.Date, sec.Time))
		xs.SpecificDateMode = strPtr("-1")
		return
	}
	if sec.Day != "" {
		xs.Day = strPtr(sec.Day)
	}
	if sec.Time != "" {
		parts := strings.SplitN(sec.Time, ":", 3)
		if len(parts) >= 2 {
			xs.Hour = strPtr(parts[0])
			xs.Minute = strPtr(parts[1])
		}
	}
}

func stripPrefixAll(ids []string, prefix string) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = strings.TrimPrefix(id, prefix)
	}
	return out
}

// buildChapters emits every real chapter (with its section-ID list), then
// the synthetic "Plot lines" container part, followed by one child
// chapter per plot line whose scenes are the plot-point synthesized IDs.
func (w *writer) buildChapters(scIDs []string, newScIDs map[string]string) rawChapterList {
	n := w.novel
	var out rawChapterList
	var chIDs []string

	for _, chID := range n.Tree.GetChildren(novel.RootChapters) {
		ch := n.Chapters[chID]
		if ch == nil {
			continue
		}
		chIDs = append(chIDs, chID)
		xch := w.buildChapter(chID, ch)
		if scenes := n.Tree.GetChildren(chID); len(scenes) > 0 {
			xch.Scenes = &rawScIDList{ScID: stripPrefixAll(scenes, novel.SectionPrefix)}
		}
		out.Chapters = append(out.Chapters, xch)
	}

	containerID := novel.CreateID(chIDs, novel.ChapterPrefix)
	chIDs = append(chIDs, containerID)
	container := novel.Chapter{BasicElement: novel.BasicElement{Title: plotLinesContainerTitle}, Level: 1}
	out.Chapters = append(out.Chapters, w.buildPlotLineContainer(containerID, &container))

	for _, plID := range n.Tree.GetChildren(novel.RootPlotLines) {
		pl := n.PlotLines[plID]
		if pl == nil {
			continue
		}
		plChID := novel.CreateID(chIDs, novel.ChapterPrefix)
		chIDs = append(chIDs, plChID)

		xch := w.buildPlotLineChapter(plChID, pl)
		ppIDs := n.Tree.GetChildren(plID)
		if len(ppIDs) > 0 {
			scIDList := make([]string, 0, len(ppIDs))
			for _, ppID := range ppIDs {
				if scID, ok := newScIDs[ppID]; ok {
					scIDList = append(scIDList, strings.TrimPrefix(scID, novel.SectionPrefix))
				}
			}
			xch.Scenes = &rawScIDList{ScID: scIDList}
		}
		out.Chapters = append(out.Chapters, xch)
	}

	return out
}

// encodeChapterType maps a chapter-level chType (spec 4.5.2) to its
// Unused/Type/ChapterType triple.
func encodeChapterType(chType int) (unused, typ, chapterType *string) {
	switch chType {
	case novel.ChapterNotes:
		return strPtr("-1"), strPtr("1"), strPtr("1")
	case 2: // plot-line container/chapter, synthesized only
		return strPtr("-1"), strPtr("1"), strPtr("2")
	case novel.ChapterUnused:
		return strPtr("-1"), strPtr("1"), strPtr("0")
	default: // normal
		return nil, strPtr("0"), nil
	}
}

func (w *writer) buildChapter(id string, ch *novel.Chapter) rawChapter {
	unused, typ, chapterType := encodeChapterType(ch.Type)
	xch := rawChapter{
		ID:          strings.TrimPrefix(id, novel.ChapterPrefix),
		Title:       ch.Title,
		Desc:        ch.Desc,
		Unused:      unused,
		Type:        typ,
		ChapterType: chapterType,
	}
	f := &rawChapterFields{}
	if ch.IsTrash {
		f.IsTrash = "1"
	}
	if ch.NoNumber {
		f.NoNumber = "1"
	}
	xch.Fields = f
	if ch.Level == 1 {
		xch.SectionStart = strPtr("-1")
	}
	return xch
}

func (w *writer) buildPlotLineContainer(id string, ch *novel.Chapter) rawChapter {
	unused, typ, chapterType := encodeChapterType(2)
	xch := rawChapter{
		ID:          strings.TrimPrefix(id, novel.ChapterPrefix),
		Title:       ch.Title,
		Unused:      unused,
		Type:        typ,
		ChapterType: chapterType,
		Fields:      &rawChapterFields{},
	}
	if ch.Level == 1 {
		xch.SectionStart = strPtr("-1")
	}
	return xch
}

func (w *writer) buildPlotLineChapter(id string, pl *novel.PlotLine) rawChapter {
	unused, typ, chapterType := encodeChapterType(2)
	return rawChapter{
		ID:          strings.TrimPrefix(id, novel.ChapterPrefix),
		Title:       pl.Title,
		Desc:        pl.Desc,
		Unused:      unused,
		Type:        typ,
		ChapterType: chapterType,
		Fields:      &rawChapterFields{ArcDefinition: pl.ShortName},
	}
}

// applySceneArcsAndAssoc fills in Field_SceneArcs (shortNames of plot
// lines listing this section) and Field_SceneAssoc (both directions of
// the section/plot-point association) once every synthesized ID is known.
func (w *writer) applySceneArcsAndAssoc(scIDs []string, fields map[string]*rawSceneFields, newScIDs map[string]string) {
	n := w.novel

	arcs := make(map[string][]string, len(scIDs))
	assoc := make(map[string][]string, len(scIDs))

	for _, plID := range n.Tree.GetChildren(novel.RootPlotLines) {
		pl := n.PlotLines[plID]
		if pl == nil {
			continue
		}
		for _, scID := range pl.Sections {
			arcs[scID] = append(arcs[scID], pl.ShortName)
		}
		for _, ppID := range n.Tree.GetChildren(plID) {
			if scID, ok := newScIDs[ppID]; ok {
				arcs[scID] = append(arcs[scID], pl.ShortName)
			}
		}
	}

	for ppID, pp := range n.PlotPoints {
		if pp.SectionAssoc == "" {
			continue
		}
		scID, ok := newScIDs[ppID]
		if !ok {
			continue
		}
		assoc[pp.SectionAssoc] = append(assoc[pp.SectionAssoc], strings.TrimPrefix(scID, novel.SectionPrefix))
		assoc[scID] = append(assoc[scID], strings.TrimPrefix(pp.SectionAssoc, novel.SectionPrefix))
	}

	for _, scID := range scIDs {
		f, ok := fields[scID]
		if !ok {
			continue
		}
		f.SceneArcs = listToString(arcs[scID])
		f.SceneAssoc = listToString(assoc[scID])
	}
}

func (w *writer) buildProjectNotes(ids []string) *rawNoteList {
	var out rawNoteList
	for _, id := range ids {
		pn := w.novel.ProjectNotes[id]
		if pn == nil {
			continue
		}
		out.Notes = append(out.Notes, rawNote{
			ID:    strings.TrimPrefix(id, novel.NotePrefix),
			Title: pn.Title,
			Desc:  pn.Desc,
		})
	}
	return &out
}

// buildWCLog emits the word-count log in insertion order, skipping
// consecutive duplicate (count, totalCount) pairs when the novel's
// saveWordCount flag is set (spec 4.5.7).
func (w *writer) buildWCLog() *rawWCLog {
	n := w.novel
	var out rawWCLog
	var lastCount, lastTotal string
	first := true

	for _, date := range n.WordCountDates() {
		wc := n.WCLog[date]
		if n.SaveWordCount && !first && wc.Count == lastCount && wc.TotalCount == lastTotal {
			continue
		}
		first = false
		lastCount, lastTotal = wc.Count, wc.TotalCount
		out.Entries = append(out.Entries, rawWC{Date: date, Count: wc.Count, TotalCount: wc.TotalCount})
	}
	return &out
}
