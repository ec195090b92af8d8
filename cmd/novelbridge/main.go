// Package main provides a CLI tool for the legacy Y7 project format; it
// reads and writes Y7 files only. It supports importing a Y7 project into
// the in-memory novel graph and exporting that graph back out as Y7, and
// reports the entity counts and any language codes discovered
// along the way.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/inkbound/novelbridge/cmd/novelbridge/tui"
	"github.com/inkbound/novelbridge/internal/xmlutil"
	"github.com/inkbound/novelbridge/pkg/novel"
	"github.com/inkbound/novelbridge/pkg/y7"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	inPath := flag.String("in", "", "Path to the source .yw7 project file")
	outPath := flag.String("out", "", "Path to write the converted .yw7 project file, or the second file for -direction=diff")
	direction := flag.String("direction", "import", `"import" to read -in and report on it, "export" to read -in and rewrite it to -out, "diff" to structurally compare -in against -out`)
	interactive := flag.Bool("tui", false, "launch the interactive wizard instead of running in batch mode")

	flag.Parse()

	if *interactive {
		runTUI()
		return
	}

	if *inPath == "" {
		slog.Error("-in flag is required")
		flag.Usage()
		os.Exit(1)
	}
	if _, err := os.Stat(*inPath); os.IsNotExist(err) {
		slog.Error("input file not found", "path", *inPath)
		os.Exit(1)
	}

	if *direction == "diff" {
		runDiff(*inPath, *outPath)
		return
	}

	svc := novel.DefaultService{}
	n, err := y7.Read(*inPath, svc)
	if err != nil {
		slog.Error("failed to read project", "error", y7.Localize(err), "path", *inPath)
		os.Exit(1)
	}

	switch *direction {
	case "import":
		reportNovel(n)
	case "export":
		if *outPath == "" {
			slog.Error("-out flag is required for -direction=export")
			os.Exit(1)
		}
		if err := y7.Write(n, *outPath); err != nil {
			slog.Error("failed to write project", "error", y7.Localize(err), "path", *outPath)
			os.Exit(1)
		}
		slog.Info("export successful", "file", *outPath)
	default:
		slog.Error("unknown -direction value", "direction", *direction)
		flag.Usage()
		os.Exit(1)
	}
}

// runDiff pretty-prints the structural differences between two Y7 project
// files, ignoring surrounding whitespace in text and attribute order;
// child elements are compared in document order.
func runDiff(inPath, outPath string) {
	if outPath == "" {
		slog.Error("-out flag is required for -direction=diff")
		os.Exit(1)
	}

	original, err := os.ReadFile(inPath)
	if err != nil {
		slog.Error("failed to read file", "path", inPath, "error", err)
		os.Exit(1)
	}
	generated, err := os.ReadFile(outPath)
	if err != nil {
		slog.Error("failed to read file", "path", outPath, "error", err)
		os.Exit(1)
	}

	diffs, err := xmlutil.CompareXMLWithDetails(original, generated, xmlutil.DefaultCompareOptions())
	if err != nil {
		slog.Error("failed to compare files", "error", err)
		os.Exit(1)
	}

	fmt.Println(xmlutil.FormatDifferences(diffs))
	if len(diffs) > 0 {
		os.Exit(1)
	}
}

// runTUI drives the interactive wizard loop: pick an action from the
// main menu, run it to completion, then return to the menu until the
// user quits.
func runTUI() {
	for {
		menu := tui.NewMainMenu()
		p := tea.NewProgram(menu)
		m, err := p.Run()
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}

		finalMenu := m.(*tui.MainMenu)
		switch finalMenu.GetSelected() {
		case 0:
			runWizard(false)
		case 1:
			runWizard(true)
		default:
			fmt.Println("\ngoodbye!")
			return
		}

		fmt.Println("\n" + strings.Repeat("-", 50) + "\n")
	}
}

func runWizard(exportMode bool) {
	wizard := tui.NewConvertWizard(exportMode)
	p := tea.NewProgram(wizard)
	final, err := p.Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return
	}

	w := final.(*tui.ConvertWizard)
	if w.IsSuccess() {
		fmt.Println("\n✓ completed")
	}
}

// reportNovel logs the entity counts and discovered languages for a
// freshly imported novel, the CLI's only way to inspect a project short
// of exporting it again.
func reportNovel(n *novel.Novel) {
	slog.Info("project imported",
		"title", n.Title,
		"chapters", len(n.Tree.GetChildren(novel.RootChapters)),
		"sections", len(n.Sections),
		"plotLines", len(n.Tree.GetChildren(novel.RootPlotLines)),
		"plotPoints", len(n.PlotPoints),
		"characters", len(n.Tree.GetChildren(novel.RootCharacters)),
		"locations", len(n.Tree.GetChildren(novel.RootLocations)),
		"items", len(n.Tree.GetChildren(novel.RootItems)),
		"languages", n.Languages,
	)
}
