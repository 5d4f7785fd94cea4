package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mkessler/taskan/internal/app"
	"github.com/mkessler/taskan/internal/console"
	"github.com/mkessler/taskan/internal/ui"
	"github.com/mkessler/taskan/internal/ui/theme"
	"github.com/mkessler/taskan/internal/view"
)

var (
	version = "0.1.0"
)

func main() {
	args := os.Args[1:]

	// Subcommand handling
	if len(args) > 0 {
		switch args[0] {
		case "console":
			runWithFlags(args[1:], false, runConsole)
			return
		case "demo":
			runWithFlags(args[1:], true, runTUI)
			return
		case "version":
			fmt.Printf("taskan v%s\n", version)
			return
		case "help", "-h", "--help":
			printHelp()
			return
		}
	}

	runWithFlags(args, false, runTUI)
}

// runWithFlags parses the shared flag set, builds the application and
// hands it to the front end.
func runWithFlags(args []string, demo bool, run func(*app.App) error) {
	fs := flag.NewFlagSet("taskan", flag.ExitOnError)
	themeFlag := fs.String("theme", "", "Theme name (nord, catppuccin)")
	dataDirFlag := fs.String("data-dir", "", "Data directory (default ~/.local/share/taskan)")
	memoryFlag := fs.Bool("memory", false, "Run without persistence")
	fs.Parse(args)

	if *themeFlag != "" {
		t, ok := theme.ByName(*themeFlag)
		if !ok {
			fmt.Fprintf(os.Stderr, "Unknown theme: %s\n", *themeFlag)
			os.Exit(1)
		}
		theme.SetTheme(t)
	}

	cfg := app.DefaultConfig()
	if *dataDirFlag != "" {
		cfg.DataDir = *dataDirFlag
		cfg.DBPath = filepath.Join(*dataDirFlag, "taskan.db")
	}
	// Demo state is throwaway, never written to disk
	if *memoryFlag || demo {
		cfg.InMemory = true
	}

	application, err := app.New(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer application.Close()

	if demo {
		if err := application.Service.CreateSampleData(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	if err := run(application); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runTUI(application *app.App) error {
	model := ui.NewRootModel(application)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err := p.Run()
	return err
}

func runConsole(application *app.App) error {
	v := view.NewConsoleView(os.Stdout)
	c := console.New(application.Service, v, os.Stdin, os.Stdout)
	c.SaveFunc = application.Save
	return c.Run()
}

func printHelp() {
	help := `taskan - A kanban board for the terminal

Usage:
  taskan                    Start the TUI
  taskan console            Start the line-based console
  taskan demo               Start the TUI with sample data (no persistence)
  taskan version            Show version
  taskan help               Show this help

Options:
  --theme <name>      Theme (nord, catppuccin)
  --data-dir <path>   Data directory (default ~/.local/share/taskan)
  --memory            Run without persistence

TUI Keybindings:
  Navigation:   h/l           Previous/next column
                j/k           Navigate cards
                g/G           Go to top/bottom

  Actions:      a             Add card
                c             Add column
                B             Create board
                b             Next board
                e or enter    Edit card title
                H/L           Move card left/right
                p/P           Raise/lower priority

  Views:        1             Board
                2             Activity log
                ?             Help
                ctrl+s        Save
                ctrl+t        Cycle theme
                q             Quit

Console commands: type "help" at the prompt.`

	fmt.Println(help)
}
