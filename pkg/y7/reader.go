package y7

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/inkbound/novelbridge/pkg/common"
	"github.com/inkbound/novelbridge/pkg/markup/shortcode"
	"github.com/inkbound/novelbridge/pkg/novel"
)

// Read parses the Y7 project file at path and returns a populated Novel,
// using svc to construct every entity. Population runs in a fixed order,
// project, locations, items, characters, project variables, chapters,
// scenes, project notes, word-count log, because plot-line chapters
// register scene IDs during chapter reading that are only reclassified
// as plot points once scenes are read.
func Read(path string, svc novel.Service) (*novel.Novel, error) {
	if _, err := os.Stat(path + ".lock"); err == nil {
		return nil, common.WrapErrorWithPath("y7", "Read", path, ErrLockedByExternalTool)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, common.NewError("y7", "Read", path, ErrParseFailure)
	}

	doc, err := decodeDocument(data)
	if err != nil {
		return nil, common.NewError("y7", "Read", path, ErrParseFailure)
	}

	n := svc.MakeNovel()
	r := &reader{svc: svc, novel: n, doc: doc, conv: &shortcode.Converter{}}

	r.readProject()
	r.readLocations()
	r.readItems()
	r.readCharacters()
	r.readProjectVars()

	arcScenes := r.readChapters()
	r.readScenes(arcScenes)
	r.readProjectNotes()
	r.readWordCountLog()

	for _, lang := range r.conv.Languages {
		if !containsString(n.Languages, lang) {
			n.Languages = append(n.Languages, lang)
		}
	}

	return n, nil
}

type reader struct {
	svc   novel.Service
	novel *novel.Novel
	doc   *document
	conv  *shortcode.Converter
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func (r *reader) readProject() {
	p := r.doc.Project
	r.novel.Title = p.Title
	r.novel.AuthorName = p.AuthorName
	r.novel.Desc = p.Desc
	if n, err := strconv.Atoi(p.WordCountStart); err == nil {
		r.novel.WordCountStart = &n
	}
	if n, err := strconv.Atoi(p.WordTarget); err == nil {
		r.novel.WordCountTarget = &n
	}

	f := p.Fields
	if f == nil {
		return
	}
	if n, err := strconv.Atoi(f.WorkPhase); err == nil {
		r.novel.WorkPhase = &n
	}
	r.novel.RenumberChapters = f.RenumberChapters == "1"
	r.novel.RenumberParts = f.RenumberParts == "1"
	r.novel.RenumberWithinParts = f.RenumberWithinParts == "1"
	r.novel.RomanChapterNumbers = f.RomanChapterNumbers == "1"
	r.novel.RomanPartNumbers = f.RomanPartNumbers == "1"
	r.novel.ChapterHeadingPrefix = f.ChapterHeadingPrefix
	r.novel.ChapterHeadingSuffix = f.ChapterHeadingSuffix
	r.novel.PartHeadingPrefix = f.PartHeadingPrefix
	r.novel.PartHeadingSuffix = f.PartHeadingSuffix
	r.novel.CustomGoal = f.CustomGoal
	r.novel.CustomConflict = f.CustomConflict
	r.novel.CustomOutcome = f.CustomOutcome
	r.novel.CustomChrBio = f.CustomChrBio
	r.novel.CustomChrGoals = f.CustomChrGoals
	r.novel.SaveWordCount = f.SaveWordCount == "1"
	r.novel.ReferenceDate = f.ReferenceDate
	if f.LanguageCode != "" {
		r.novel.LanguageCode = f.LanguageCode
	}
	if f.CountryCode != "" {
		r.novel.CountryCode = f.CountryCode
	}
}

func (r *reader) readLocations() {
	r.novel.Tree.DeleteChildren(novel.RootLocations)
	for _, xl := range r.doc.Locations.Locations {
		id := novel.LocationPrefix + xl.ID
		r.novel.Tree.Append(novel.RootLocations, id)
		loc := r.svc.MakeLocation()
		loc.Title = xl.Title
		loc.Desc = xl.Desc
		loc.AKA = xl.AKA
		loc.Tags = stringToList(xl.Tags)
		r.novel.Locations[id] = loc
	}
}

func (r *reader) readItems() {
	r.novel.Tree.DeleteChildren(novel.RootItems)
	for _, xi := range r.doc.Items.Items {
		id := novel.ItemPrefix + xi.ID
		r.novel.Tree.Append(novel.RootItems, id)
		it := r.svc.MakeItem()
		it.Title = xi.Title
		it.Desc = xi.Desc
		it.AKA = xi.AKA
		it.Tags = stringToList(xi.Tags)
		r.novel.Items[id] = it
	}
}

func (r *reader) readCharacters() {
	r.novel.Tree.DeleteChildren(novel.RootCharacters)
	for _, xc := range r.doc.Characters.Characters {
		id := novel.CharacterPrefix + xc.ID
		r.novel.Tree.Append(novel.RootCharacters, id)
		c := r.svc.MakeCharacter()
		c.Title = xc.Title
		c.Desc = xc.Desc
		c.AKA = xc.AKA
		c.Tags = stringToList(xc.Tags)
		c.Notes = xc.Notes
		c.Bio = xc.Bio
		c.Goals = xc.Goals
		c.FullName = xc.FullName
		c.IsMajor = xc.Major != nil
		if xc.Fields != nil {
			c.BirthDate = xc.Fields.BirthDate
			c.DeathDate = xc.Fields.DeathDate
		}
		r.novel.Characters[id] = c
	}
}

func (r *reader) readProjectVars() {
	for _, v := range r.doc.ProjectVars.Vars {
		switch {
		case v.Title == "Language":
			r.novel.LanguageCode = v.Desc
		case v.Title == "Country":
			r.novel.CountryCode = v.Desc
		case strings.HasPrefix(v.Title, "lang="):
			code := strings.TrimPrefix(v.Title, "lang=")
			if code != "" && !containsString(r.novel.Languages, code) {
				r.novel.Languages = append(r.novel.Languages, code)
			}
		}
	}
}

// readChapters reads chapter-level attributes and splits chapters with a
// non-empty arc shortName into plot lines. It returns one set holding the
// yWriter scene IDs (unprefixed) that are really plot points of any plot
// line; readScenes uses this set to reclassify those scenes.
func (r *reader) readChapters() map[string]bool {
	r.novel.Tree.DeleteChildren(novel.RootChapters)
	arcSceneIDs := make(map[string]bool)

	for _, xch := range r.doc.Chapters.Chapters {
		chLevel := 2
		if xch.SectionStart != nil {
			chLevel = 1
		}

		// ChapterType, when present, decides and Type is ignored: "1" or
		// "2" marks a notes chapter, any other value does so only if
		// Unused is present. Otherwise Type, when present, decides: "1"
		// marks a notes chapter, any other value does so only if Unused is
		// present. When neither Type nor ChapterType is present, Unused is
		// never consulted and the chapter stays normal.
		chType := 0
		unused := xch.Unused != nil
		switch {
		case xch.ChapterType != nil:
			switch *xch.ChapterType {
			case "1", "2":
				chType = 1
			default:
				if unused {
					chType = 1
				}
			}
		case xch.Type != nil:
			if *xch.Type == "1" || unused {
				chType = 1
			}
		}

		isTrash := false
		noNumber := false
		shortName := ""
		if xch.Fields != nil {
			isTrash = xch.Fields.IsTrash == "1"
			noNumber = xch.Fields.NoNumber == "1"
			shortName = xch.Fields.ArcDefinition
			if xch.Fields.ArcDefinitionLegacy != "" {
				shortName = xch.Fields.ArcDefinitionLegacy
			}
		}

		var scenes []string
		if xch.Scenes != nil {
			scenes = xch.Scenes.ScID
		}

		if shortName != "" {
			plID := novel.PlotLinePrefix + xch.ID
			pl := r.svc.MakePlotLine()
			pl.Title = xch.Title
			pl.Desc = xch.Desc
			pl.ShortName = shortName
			r.novel.PlotLines[plID] = pl
			r.novel.Tree.Append(novel.RootPlotLines, plID)
			for _, scID := range scenes {
				r.novel.Tree.Append(plID, novel.PlotPointPrefix+scID)
				arcSceneIDs[scID] = true
			}
			continue
		}

		chID := novel.ChapterPrefix + xch.ID
		ch := r.svc.MakeChapter()
		ch.Title = xch.Title
		ch.Desc = xch.Desc
		ch.Level = chLevel
		ch.Type = chType
		ch.IsTrash = isTrash
		ch.NoNumber = noNumber
		r.novel.Chapters[chID] = ch
		r.novel.Tree.Append(novel.RootChapters, chID)
		for _, scID := range scenes {
			r.novel.Tree.Append(chID, novel.SectionPrefix+scID)
		}
	}

	return arcSceneIDs
}

func (r *reader) readScenes(arcSceneIDs map[string]bool) {
	for _, xsc := range r.doc.Scenes.Scenes {
		scType := 0
		var sceneArcs, sceneAssoc string
		var customAR *string
		if xsc.Fields != nil {
			if xsc.Fields.SceneType != nil && (*xsc.Fields.SceneType == "1" || *xsc.Fields.SceneType == "2") {
				scType = 1
			}
			sceneArcs = xsc.Fields.SceneArcs
			sceneAssoc = xsc.Fields.SceneAssoc
			customAR = xsc.Fields.CustomAR
		}
		if xsc.Unused != nil && scType == 0 {
			scType = 1
		}

		assocIDs := stringToList(sceneAssoc)

		if arcSceneIDs[xsc.ID] {
			pp := r.svc.MakePlotPoint(xsc.Title, xsc.Desc)
			if len(assocIDs) > 0 {
				pp.SectionAssoc = novel.SectionPrefix + assocIDs[0]
			}
			r.novel.PlotPoints[novel.PlotPointPrefix+xsc.ID] = pp
			continue
		}

		sec := r.svc.MakeSection()
		sec.Title = xsc.Title
		sec.Desc = xsc.Desc
		if xsc.SceneContent != nil {
			body, _ := r.conv.ToFlow(*xsc.SceneContent)
			sec.Body = body
		}

		for _, shortName := range stringToList(sceneArcs) {
			for _, pl := range r.novel.PlotLines {
				if pl.ShortName != shortName {
					continue
				}
				scID := novel.SectionPrefix + xsc.ID
				if !containsString(pl.Sections, scID) {
					pl.Sections = append(pl.Sections, scID)
				}
				break
			}
		}
		for _, assoc := range assocIDs {
			sec.PlotPoints = append(sec.PlotPoints, novel.PlotPointPrefix+assoc)
		}

		sec.Goal = xsc.Goal
		sec.Conflict = xsc.Conflict
		sec.Outcome = xsc.Outcome

		switch {
		case customAR != nil:
			sec.Scene = novel.SceneKindCustom
		case xsc.ReactionScene != nil:
			sec.Scene = novel.SceneKindReaction
		case sec.Goal != "" || sec.Conflict != "" || sec.Outcome != "":
			sec.Scene = novel.SceneKindAction
		default:
			sec.Scene = novel.SceneKindNone
		}

		if xsc.Status != nil {
			if n, err := strconv.Atoi(*xsc.Status); err == nil {
				sec.Status = n
			}
		} else {
			sec.Status = 1
		}

		sec.Notes = xsc.Notes
		sec.Tags = stringToList(xsc.Tags)
		sec.AppendToPrev = xsc.AppendToPrev != nil

		r.readSceneTime(xsc, sec)

		sec.LastsDays = xsc.LastsDays
		sec.LastsHours = xsc.LastsHours
		sec.LastsMinutes = xsc.LastsMinutes

		if xsc.Characters != nil {
			for _, id := range xsc.Characters.CharID {
				crID := novel.CharacterPrefix + id
				if _, ok := r.novel.Characters[crID]; ok {
					sec.Characters = append(sec.Characters, crID)
				}
			}
		}
		if xsc.Locations != nil {
			for _, id := range xsc.Locations.LocID {
				lcID := novel.LocationPrefix + id
				if _, ok := r.novel.Locations[lcID]; ok {
					sec.Locations = append(sec.Locations, lcID)
				}
			}
		}
		if xsc.Items != nil {
			for _, id := range xsc.Items.ItemID {
				itID := novel.ItemPrefix + id
				if _, ok := r.novel.Items[itID]; ok {
					sec.Items = append(sec.Items, itID)
				}
			}
		}

		if containsString(sec.Tags, novel.StageMarker) {
			scType = novel.SectionStage
			sec.Tags = removeString(sec.Tags, novel.StageMarker)
		}
		sec.Type = scType

		r.novel.Sections[novel.SectionPrefix+xsc.ID] = sec
	}
}

func removeString(list []string, s string) []string {
	out := make([]string, 0, len(list))
	for _, v := range list {
		if v != s {
			out = append(out, v)
		}
	}
	return out
}

func (r *reader) readSceneTime(xsc rawScene, sec *novel.Section) {
	if xsc.SpecificDateTime != nil {
		if date, t, ok := splitISODateTime(*xsc.SpecificDateTime); ok {
			sec.Date, sec.Time = date, t
		}
		return
	}

	if xsc.Day != nil {
		day := *xsc.Day
		if _, err := strconv.Atoi(day); err != nil {
			day = ""
		}
		sec.Day = day
	}

	hasTime := false
	hour, minute := "00", "00"
	if xsc.Hour != nil {
		hour = zeroPad2(*xsc.Hour)
		hasTime = true
	}
	if xsc.Minute != nil {
		minute = zeroPad2(*xsc.Minute)
		hasTime = true
	}
	if hasTime {
		sec.Time = fmt.Sprintf("%s:%s:00", hour, minute)
	}
}

func (r *reader) readProjectNotes() {
	if r.doc.ProjectNotes == nil {
		return
	}
	for _, xn := range r.doc.ProjectNotes.Notes {
		id := novel.NotePrefix + xn.ID
		r.novel.Tree.Append(novel.RootProjectNotes, id)
		pn := r.svc.MakeProjectNote()
		pn.Title = xn.Title
		pn.Desc = xn.Desc
		r.novel.ProjectNotes[id] = pn
	}
}

func (r *reader) readWordCountLog() {
	if r.doc.WCLog == nil {
		return
	}
	for _, wc := range r.doc.WCLog.Entries {
		r.novel.SetWordCount(wc.Date, novel.WordCount{Count: wc.Count, TotalCount: wc.TotalCount})
	}
}

