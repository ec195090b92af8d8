package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/inkbound/novelbridge/pkg/novel"
	"github.com/inkbound/novelbridge/pkg/y7"
)

type convertStep int

const (
	stepInputFile convertStep = iota
	stepOutputFile
	stepProcessing
	stepDone
)

// ConvertWizard walks the user through reading a Y7 project and, in export
// mode, writing it back out.
type ConvertWizard struct {
	step       convertStep
	exportMode bool
	inputFile  string
	outputFile string
	inputText  string
	error      string
	success    bool

	title      string
	chapters   int
	sections   int
	plotLines  int
	plotPoints int
	languages  []string
}

// NewConvertWizard creates a wizard. When exportMode is false the user is
// only asked for an input path and the project is reported on; when true
// the user is also asked for an output path and the project is rewritten.
func NewConvertWizard(exportMode bool) *ConvertWizard {
	return &ConvertWizard{
		step:       stepInputFile,
		exportMode: exportMode,
		outputFile: "export.yw7",
	}
}

func (m *ConvertWizard) Init() tea.Cmd {
	return nil
}

func (m *ConvertWizard) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			if m.step == stepDone {
				return m, tea.Quit
			}
			m.error = "cancelled by user"
			return m, tea.Quit

		case "esc":
			if m.step == stepOutputFile {
				m.step = stepInputFile
				m.inputText = ""
			} else if m.step == stepInputFile {
				m.error = "cancelled by user"
				return m, tea.Quit
			}

		case "enter":
			return m.handleEnter()

		case "backspace":
			if len(m.inputText) > 0 {
				m.inputText = m.inputText[:len(m.inputText)-1]
			}

		default:
			if len(msg.String()) == 1 {
				m.inputText += msg.String()
			}
		}
	}

	return m, nil
}

func (m *ConvertWizard) handleEnter() (tea.Model, tea.Cmd) {
	switch m.step {
	case stepInputFile:
		if m.inputText == "" {
			m.error = "input file is required"
			return m, nil
		}
		m.inputFile = m.inputText
		m.inputText = ""
		if m.exportMode {
			m.step = stepOutputFile
			return m, nil
		}
		return m.performImport()

	case stepOutputFile:
		if m.inputText != "" {
			m.outputFile = m.inputText
		}
		if !strings.HasSuffix(strings.ToLower(m.outputFile), ".yw7") {
			m.outputFile += ".yw7"
		}
		return m.performExport()

	case stepDone:
		return m, tea.Quit
	}

	return m, nil
}

func (m *ConvertWizard) readInput() (*novel.Novel, bool) {
	m.step = stepProcessing

	n, err := y7.Read(m.inputFile, novel.DefaultService{})
	if err != nil {
		m.error = fmt.Sprintf("error reading file: %v", y7.Localize(err))
		m.step = stepDone
		return nil, false
	}

	m.title = n.Title
	m.chapters = len(n.Tree.GetChildren(novel.RootChapters))
	m.sections = len(n.Sections)
	m.plotLines = len(n.Tree.GetChildren(novel.RootPlotLines))
	m.plotPoints = len(n.PlotPoints)
	m.languages = n.Languages

	return n, true
}

func (m *ConvertWizard) performImport() (tea.Model, tea.Cmd) {
	if _, ok := m.readInput(); ok {
		m.success = true
	}
	m.step = stepDone
	return m, nil
}

func (m *ConvertWizard) performExport() (tea.Model, tea.Cmd) {
	n, ok := m.readInput()
	if !ok {
		return m, nil
	}

	if err := y7.Write(n, m.outputFile); err != nil {
		m.error = fmt.Sprintf("error writing file: %v", y7.Localize(err))
		m.step = stepDone
		return m, nil
	}

	m.success = true
	m.step = stepDone
	return m, nil
}

func (m *ConvertWizard) View() string {
	var s strings.Builder

	if m.exportMode {
		s.WriteString(TitleStyle.Render("Export to Y7"))
	} else {
		s.WriteString(TitleStyle.Render("Import Y7 project"))
	}
	s.WriteString("\n\n")

	switch m.step {
	case stepInputFile:
		s.WriteString(m.viewInputFile())
	case stepOutputFile:
		s.WriteString(m.viewOutputFile())
	case stepProcessing:
		s.WriteString(InfoStyle.Render("working..."))
	case stepDone:
		if m.success {
			s.WriteString(m.viewSuccess())
		} else {
			s.WriteString(ErrorStyle.Render(m.error))
			s.WriteString("\n\n")
			s.WriteString(HelpStyle.Render("q to quit"))
		}
	}

	return s.String()
}

func (m *ConvertWizard) viewInputFile() string {
	var s strings.Builder

	s.WriteString(InputLabelStyle.Render("Input .yw7 file:"))
	s.WriteString("\n\n")

	if m.inputText == "" {
		s.WriteString(SubtitleStyle.Render("  enter path to project..."))
	} else {
		s.WriteString(InputStyle.Render("  " + m.inputText + "█"))
	}

	s.WriteString("\n\n")

	if m.error != "" {
		s.WriteString(ErrorStyle.Render("  " + m.error))
		s.WriteString("\n\n")
		m.error = ""
	}

	s.WriteString(HelpStyle.Render("type path and press enter • esc/q to cancel"))
	return s.String()
}

func (m *ConvertWizard) viewOutputFile() string {
	var s strings.Builder

	s.WriteString(SuccessStyle.Render("  read: " + m.inputFile))
	s.WriteString("\n\n")

	s.WriteString(InputLabelStyle.Render("Output .yw7 file:"))
	s.WriteString("\n\n")

	if m.inputText == "" {
		s.WriteString(SubtitleStyle.Render("  " + m.outputFile + " (press enter to use)"))
	} else {
		s.WriteString(InputStyle.Render("  " + m.inputText + "█"))
	}

	s.WriteString("\n\n")
	s.WriteString(HelpStyle.Render("type path or press enter for default • esc to go back"))
	return s.String()
}

func (m *ConvertWizard) viewSuccess() string {
	var s strings.Builder

	s.WriteString(SuccessStyle.Render("done"))
	s.WriteString("\n\n")

	details := fmt.Sprintf(
		"title:       %s\n"+
			"chapters:    %d\n"+
			"sections:    %d\n"+
			"plot lines:  %d\n"+
			"plot points: %d\n"+
			"languages:   %s\n",
		m.title, m.chapters, m.sections, m.plotLines, m.plotPoints,
		strings.Join(m.languages, ", "),
	)
	if m.exportMode {
		details += fmt.Sprintf("written to:  %s\n", m.outputFile)
	}

	s.WriteString(BoxStyle.Render(details))
	s.WriteString("\n\n")
	s.WriteString(HelpStyle.Render("q to quit"))

	return s.String()
}

// IsSuccess reports whether the conversion completed without error.
func (m *ConvertWizard) IsSuccess() bool {
	return m.success
}
