package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/fredhopp/flip-flop-prompter/internal/cli"
	apperrors "github.com/fredhopp/flip-flop-prompter/internal/errors"
	"github.com/fredhopp/flip-flop-prompter/internal/service"
	"github.com/fredhopp/flip-flop-prompter/internal/ui"

	tea "github.com/charmbracelet/bubbletea"
)

var version = "0.1.0"

func printHelp() {
	fmt.Printf(`flip-flop-prompter - Terminal-based prompt builder for image and video models

USAGE:
    flip-flop-prompter [OPTIONS] [COMMAND]

OPTIONS:
    --help          Show this help information
    --version       Print version information
    --init          Initialize the snippet library and config

COMMANDS:
    (no command)       Start interactive TUI mode
    generate, gen      Build prompts from field flags
    preview            Show the formatted prompt without refinement
    validate           Check field values against the field rules
    models             List target models and refiner models
    snippets           Browse and manage the snippet library
    states             List, show and delete saved prompt states
    copy               Copy the last generated prompt to the clipboard
    help               Show CLI command help

EXAMPLES:
    flip-flop-prompter                                   # Start interactive mode
    flip-flop-prompter gen -e "hotel lobby" -s "a 20yo man" -p "walks to the bar"
    flip-flop-prompter gen --tag "environment=Location" --seed 42 --batch 4 --seed-mode increment
    flip-flop-prompter gen --model veo --json --output out.json
    flip-flop-prompter preview --from <state-id>
    flip-flop-prompter snippets categories environment
    flip-flop-prompter states list
    flip-flop-prompter help generate                     # Get detailed help

STORAGE:
    Default directory: ~/.flip-flop-prompter
    Override with: FLIPFLOP_PROMPT_DIR=<path>
`)
}

func main() {
	var showVersion bool
	var initLib bool
	var showHelp bool

	flag.BoolVar(&showVersion, "version", false, "Print version information")
	flag.BoolVar(&initLib, "init", false, "Initialize the snippet library and config")
	flag.BoolVar(&showHelp, "help", false, "Show help information")
	flag.Parse()

	if showHelp {
		printHelp()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("flip-flop-prompter version %s\n", version)
		os.Exit(0)
	}

	// Initialize service with file storage
	svc, err := service.NewService()
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	defer svc.Close()

	if initLib {
		fmt.Println("Initialized flip-flop-prompter library")
		return
	}

	// Command line arguments mean CLI mode
	args := flag.Args()
	if len(args) > 0 {
		cliHandler := cli.NewCLI(svc)
		if err := cliHandler.ExecuteCommand(args); err != nil {
			errHandler := apperrors.NewCLIErrorHandler(os.Getenv("VERBOSE") == "true")
			fmt.Fprintln(os.Stderr, errHandler.FormatError(err))
			svc.Close()
			os.Exit(1)
		}
		return
	}

	// No arguments provided - start TUI mode
	model, err := ui.NewModel(svc)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
