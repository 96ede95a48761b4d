// Package cli provides the headless command-line interface.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/fredhopp/flip-flop-prompter/internal/generator"
	"github.com/fredhopp/flip-flop-prompter/internal/models"
	"github.com/fredhopp/flip-flop-prompter/internal/service"
	"github.com/fredhopp/flip-flop-prompter/internal/snippets"
)

// CLI provides headless command-line functionality.
type CLI struct {
	service *service.Service
}

// NewCLI creates a new CLI instance.
func NewCLI(svc *service.Service) *CLI {
	return &CLI{service: svc}
}

// ExecuteCommand processes a CLI command and returns the result.
func (c *CLI) ExecuteCommand(args []string) error {
	if len(args) == 0 {
		return c.printUsage()
	}

	command := args[0]
	commandArgs := args[1:]

	switch command {
	case "generate", "gen":
		return c.generate(commandArgs)
	case "preview":
		return c.preview(commandArgs)
	case "validate":
		return c.validate(commandArgs)
	case "models":
		return c.listModels(commandArgs)
	case "snippets":
		return c.handleSnippets(commandArgs)
	case "states":
		return c.handleStates(commandArgs)
	case "copy":
		return c.copyGenerated(commandArgs)
	case "help":
		return c.printHelp(commandArgs)
	default:
		return fmt.Errorf("unknown command: %s. Use 'help' for usage information", command)
	}
}

// fieldFlags maps long and short flags to field names.
var fieldFlags = map[string]string{
	"--environment": models.FieldEnvironment, "-e": models.FieldEnvironment,
	"--weather": models.FieldWeather, "-w": models.FieldWeather,
	"--time": models.FieldDateTime, "-t": models.FieldDateTime,
	"--subjects": models.FieldSubjects, "-s": models.FieldSubjects,
	"--pose": models.FieldPoseAction, "-p": models.FieldPoseAction,
	"--camera": models.FieldCamera, "-c": models.FieldCamera,
	"--framing": models.FieldFramingAction, "-f": models.FieldFramingAction,
	"--grading": models.FieldGrading, "-g": models.FieldGrading,
}

// generateFlags collects everything the generate and preview commands accept.
type generateFlags struct {
	seed         int64
	seedSet      bool
	batchSize    int
	seedMode     models.SeedMode
	targetModel  string
	refinerModel string
	rating       string
	instructions string
	fromState    string
	jsonOutput   bool
	outputPath   string
	save         bool
}

// applyFlags parses shared flags and applies field edits to the service.
func (c *CLI) applyFlags(args []string) (*generateFlags, error) {
	flags := &generateFlags{batchSize: 1, seedMode: models.SeedFixed, rating: ""}

	consume := func(i int) (string, error) {
		if i+1 >= len(args) {
			return "", fmt.Errorf("flag %s requires a value", args[i])
		}
		return args[i+1], nil
	}

	// A template state loads first so explicit field flags override it.
	for i := 0; i < len(args); i++ {
		if args[i] == "--from" || args[i] == "-T" {
			value, err := consume(i)
			if err != nil {
				return nil, err
			}
			if _, err := c.service.LoadState(value); err != nil {
				return nil, fmt.Errorf("failed to load state %s: %w", value, err)
			}
			flags.fromState = value
		}
	}

	for i := 0; i < len(args); i++ {
		arg := args[i]
		if field, ok := fieldFlags[arg]; ok {
			value, err := consume(i)
			if err != nil {
				return nil, err
			}
			if err := c.service.SetField(field, value); err != nil {
				return nil, err
			}
			i++
			continue
		}

		switch arg {
		case "--from", "-T":
			i++
		case "--tag":
			value, err := consume(i)
			if err != nil {
				return nil, err
			}
			if err := c.addTagSpec(value); err != nil {
				return nil, err
			}
			i++
		case "--seed":
			value, err := consume(i)
			if err != nil {
				return nil, err
			}
			seed, err := strconv.ParseInt(value, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid seed: %s", value)
			}
			flags.seed = seed
			flags.seedSet = true
			i++
		case "--batch", "-b":
			value, err := consume(i)
			if err != nil {
				return nil, err
			}
			size, err := strconv.Atoi(value)
			if err != nil {
				return nil, fmt.Errorf("invalid batch size: %s", value)
			}
			flags.batchSize = size
			i++
		case "--seed-mode":
			value, err := consume(i)
			if err != nil {
				return nil, err
			}
			mode, err := models.ParseSeedMode(value)
			if err != nil {
				return nil, err
			}
			flags.seedMode = mode
			i++
		case "--model", "-m":
			value, err := consume(i)
			if err != nil {
				return nil, err
			}
			flags.targetModel = value
			i++
		case "--llm-model":
			value, err := consume(i)
			if err != nil {
				return nil, err
			}
			flags.refinerModel = value
			i++
		case "--content-rating":
			value, err := consume(i)
			if err != nil {
				return nil, err
			}
			flags.rating = value
			i++
		case "--instructions", "-I":
			value, err := consume(i)
			if err != nil {
				return nil, err
			}
			flags.instructions = value
			i++
		case "--json", "-j":
			flags.jsonOutput = true
		case "--output", "-o":
			value, err := consume(i)
			if err != nil {
				return nil, err
			}
			flags.outputPath = value
			i++
		case "--save":
			flags.save = true
		default:
			return nil, fmt.Errorf("unknown flag: %s", arg)
		}
	}

	if flags.seedSet {
		if err := c.service.SetSeed(flags.seed); err != nil {
			return nil, err
		}
	}
	if flags.targetModel != "" {
		if err := c.service.SetTargetModel(flags.targetModel); err != nil {
			return nil, err
		}
	}
	if flags.refinerModel != "" {
		c.service.SetRefinerModel(flags.refinerModel)
	}
	if flags.rating != "" {
		c.service.SetFilters(ratingChain(flags.rating))
	}
	if flags.instructions != "" {
		c.service.SetInstructions(flags.instructions)
	}

	return flags, nil
}

// ratingChain expands a rating to itself plus everything below it,
// so NSFW content still draws on the PG pools.
func ratingChain(name string) []string {
	allowed := snippets.ParseRating(name).Allowed()
	names := make([]string, len(allowed))
	for i, r := range allowed {
		names[i] = string(r)
	}
	return names
}

// addTagSpec parses "field=Category" or "field=Category/Subcategory"
// and attaches the tag.
func (c *CLI) addTagSpec(spec string) error {
	parts := strings.SplitN(spec, "=", 2)
	if len(parts) != 2 {
		return fmt.Errorf("invalid tag spec %q, expected field=Category[/Subcategory]", spec)
	}
	field := strings.TrimSpace(parts[0])
	path := strings.Split(parts[1], "/")
	for i := range path {
		path[i] = strings.TrimSpace(path[i])
	}

	var tag models.Tag
	switch len(path) {
	case 1:
		tag = models.NewCategoryTag(path[0])
	case 2:
		tag = models.NewSubcategoryTag(path[0], path[1])
	default:
		return fmt.Errorf("invalid tag spec %q, at most one subcategory level", spec)
	}
	return c.service.AddTag(field, tag)
}

// generate runs a batch and prints the results.
func (c *CLI) generate(args []string) error {
	flags, err := c.applyFlags(args)
	if err != nil {
		return err
	}

	results, failures, err := c.service.Generate(context.Background(), service.GenerateOptions{
		BatchSize: flags.batchSize,
		SeedMode:  flags.seedMode,
	})
	if err != nil {
		return err
	}

	var out strings.Builder
	if flags.jsonOutput {
		payload := c.jsonPayload(results)
		data, err := json.MarshalIndent(payload, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal output: %w", err)
		}
		out.Write(data)
		out.WriteString("\n")
	} else {
		for _, r := range results {
			if r.Err != nil {
				continue
			}
			if len(results) > 1 {
				fmt.Fprintf(&out, "--- iteration %d (seed %d) ---\n", r.IterationIndex, r.Seed)
			}
			out.WriteString(r.Text)
			out.WriteString("\n")
		}
	}

	if err := c.writeOutput(out.String(), flags.outputPath); err != nil {
		return err
	}

	for _, f := range failures {
		fmt.Fprintf(os.Stderr, "iteration %d failed: %s\n", f.IterationIndex, f.Message)
	}

	if flags.save {
		id, err := c.service.SaveCurrentState()
		if err != nil {
			return fmt.Errorf("failed to save state: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Saved state %s\n", id)
	}

	if len(failures) == len(results) {
		return fmt.Errorf("all %d iterations failed", len(results))
	}
	return nil
}

// jsonPayload shapes generation output for machine consumers such as
// ComfyUI workflows.
func (c *CLI) jsonPayload(results []generator.Result) map[string]any {
	state := c.service.Current()

	iterations := make([]map[string]any, 0, len(results))
	for _, r := range results {
		entry := map[string]any{
			"iteration": r.IterationIndex,
			"seed":      r.Seed,
			"prompt":    r.Text,
			"data":      r.Fields,
		}
		if r.Err != nil {
			entry["error"] = r.Err.Error()
		}
		iterations = append(iterations, entry)
	}

	payload := map[string]any{
		"model":      state.TargetModel,
		"iterations": iterations,
		"metadata": map[string]any{
			"generator": "flip-flop-prompter",
			"timestamp": time.Now().Format(time.RFC3339),
		},
	}
	if len(results) == 1 && results[0].Err == nil {
		payload["prompt"] = results[0].Text
		payload["data"] = results[0].Fields
	}
	return payload
}

func (c *CLI) writeOutput(output, path string) error {
	if path == "" {
		fmt.Print(output)
		return nil
	}
	if err := os.WriteFile(path, []byte(output), 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}

// preview prints the realized prompt without refinement.
func (c *CLI) preview(args []string) error {
	if _, err := c.applyFlags(args); err != nil {
		return err
	}
	fmt.Println(c.service.Preview())
	return nil
}

// validate checks the input data without generating.
func (c *CLI) validate(args []string) error {
	if _, err := c.applyFlags(args); err != nil {
		return err
	}

	result := c.service.Validate()
	for _, w := range result.Warnings {
		fmt.Fprintf(os.Stderr, "  ! %s\n", w.Message)
	}
	if !result.Valid {
		fmt.Fprintln(os.Stderr, "Validation Errors:")
		for _, e := range result.Errors {
			fmt.Fprintf(os.Stderr, "  • %s\n", e.Message)
		}
		return fmt.Errorf("validation failed with %d errors", len(result.Errors))
	}
	fmt.Fprintln(os.Stderr, "✓ All data is valid")
	return nil
}

// listModels prints the target models and, when reachable, the
// refiner's installed models.
func (c *CLI) listModels(args []string) error {
	fmt.Println("Supported target models:")
	for _, name := range c.service.SupportedTargetModels() {
		fmt.Printf("  %s\n", name)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if !c.service.RefinerAvailable(ctx) {
		fmt.Println("\nRefiner: not reachable (prompts will use direct formatting)")
		return nil
	}
	names, err := c.service.RefinerModels(ctx)
	if err != nil {
		return err
	}
	fmt.Println("\nInstalled refiner models:")
	for _, name := range names {
		fmt.Printf("  %s\n", name)
	}
	return nil
}

// handleSnippets dispatches the snippet library subcommands.
func (c *CLI) handleSnippets(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("snippets requires a subcommand: fields, categories, list, search, add, remove, export, import")
	}

	lib := c.service.Library()
	sub := args[0]
	subArgs := args[1:]

	switch sub {
	case "fields":
		for _, field := range lib.Fields() {
			fmt.Println(field)
		}
		return nil

	case "categories":
		if len(subArgs) < 1 {
			return fmt.Errorf("usage: snippets categories <field> [rating...]")
		}
		for _, cat := range lib.Categories(subArgs[0], parseRatings(subArgs[1:])) {
			fmt.Println(cat)
		}
		return nil

	case "list":
		if len(subArgs) < 2 {
			return fmt.Errorf("usage: snippets list <field> <category>[/subcategory] [rating...]")
		}
		field := subArgs[0]
		path := strings.SplitN(subArgs[1], "/", 2)
		ratings := parseRatings(subArgs[2:])
		if len(ratings) == 0 {
			ratings = []snippets.Rating{snippets.RatingPG}
		}
		for _, rating := range ratings {
			var items []string
			if len(path) == 2 {
				items = lib.ItemsForSubcategory(field, path[0], path[1], rating)
			} else {
				items = lib.ItemsForCategory(field, path[0], rating)
			}
			for _, item := range items {
				fmt.Println(item)
			}
		}
		return nil

	case "search":
		if len(subArgs) < 2 {
			return fmt.Errorf("usage: snippets search <field> <query> [rating...]")
		}
		ratings := parseRatings(subArgs[2:])
		if len(ratings) == 0 {
			ratings = []snippets.Rating{snippets.RatingPG}
		}
		for _, m := range lib.Search(subArgs[0], subArgs[1], ratings) {
			fmt.Printf("%s/%s: %s\n", m.Field, m.Category, m.Item)
		}
		return nil

	case "add":
		if len(subArgs) < 3 {
			return fmt.Errorf("usage: snippets add <field> <category> <item> [rating]")
		}
		rating := snippets.RatingPG
		if len(subArgs) > 3 {
			rating = snippets.ParseRating(subArgs[3])
		}
		if err := lib.AddSnippet(subArgs[0], subArgs[1], subArgs[2], rating); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Added %q to %s/%s\n", subArgs[2], subArgs[0], subArgs[1])
		return nil

	case "remove", "rm":
		if len(subArgs) < 3 {
			return fmt.Errorf("usage: snippets remove <field> <category> <item>")
		}
		if err := lib.RemoveSnippet(subArgs[0], subArgs[1], subArgs[2]); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Removed %q from %s/%s\n", subArgs[2], subArgs[0], subArgs[1])
		return nil

	case "export":
		if len(subArgs) < 1 {
			return fmt.Errorf("usage: snippets export <path>")
		}
		if err := lib.Export(subArgs[0]); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Exported snippet library to %s\n", subArgs[0])
		return nil

	case "import":
		if len(subArgs) < 1 {
			return fmt.Errorf("usage: snippets import <path>")
		}
		if err := lib.Import(subArgs[0]); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Imported snippet library from %s\n", subArgs[0])
		return nil

	default:
		return fmt.Errorf("unknown snippets subcommand: %s", sub)
	}
}

func parseRatings(names []string) []snippets.Rating {
	var ratings []snippets.Rating
	for _, name := range names {
		ratings = append(ratings, snippets.ParseRating(name))
	}
	return ratings
}

// handleStates dispatches saved-state subcommands.
func (c *CLI) handleStates(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("states requires a subcommand: list, show, delete")
	}

	sub := args[0]
	subArgs := args[1:]

	switch sub {
	case "list", "ls":
		states, err := c.service.ListStates()
		if err != nil {
			return err
		}
		if len(states) == 0 {
			fmt.Fprintln(os.Stderr, "No saved states")
			return nil
		}
		for _, s := range states {
			summary := s.Summary()
			if summary == "" {
				summary = "(empty)"
			}
			fmt.Printf("%s  %s  seed=%d  %s\n",
				s.ID, s.CreatedAt.Format("2006-01-02 15:04"), s.Seed, summary)
		}
		return nil

	case "show":
		if len(subArgs) < 1 {
			return fmt.Errorf("usage: states show <id>")
		}
		state, err := c.service.LoadState(subArgs[0])
		if err != nil {
			return err
		}
		for _, field := range models.FieldNames() {
			line := state.FieldTags[field].DisplayText(state.FieldValues[field])
			if line == "" {
				continue
			}
			fmt.Printf("%s: %s\n", models.FieldLabels[field], line)
		}
		fmt.Printf("Seed: %d\n", state.Seed)
		fmt.Printf("Target model: %s\n", state.TargetModel)
		if state.Generated != "" {
			fmt.Printf("\n%s\n", state.Generated)
		}
		return nil

	case "delete", "rm":
		if len(subArgs) < 1 {
			return fmt.Errorf("usage: states delete <id>")
		}
		if err := c.service.DeleteState(subArgs[0]); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Deleted state %s\n", subArgs[0])
		return nil

	default:
		return fmt.Errorf("unknown states subcommand: %s", sub)
	}
}

// copyGenerated generates (or loads) and copies the result.
func (c *CLI) copyGenerated(args []string) error {
	if len(args) > 0 {
		if err := c.generate(args); err != nil {
			return err
		}
	}
	status, err := c.service.CopyGenerated()
	if err != nil {
		return err
	}
	fmt.Fprintln(os.Stderr, status)
	return nil
}

func (c *CLI) printUsage() error {
	fmt.Println(`flip-flop-prompter - structured prompt builder for AI image and video models

Usage:
  flip-flop-prompter <command> [flags]

Commands:
  generate    Generate a refined prompt (supports batches)
  preview     Show the realized prompt without refinement
  validate    Check input data without generating
  models      List target and refiner models
  snippets    Manage the snippet library
  states      Manage saved prompt states
  copy        Copy the generated prompt to the clipboard
  help        Show detailed help

Run 'flip-flop-prompter help <command>' for command details.`)
	return nil
}

func (c *CLI) printHelp(args []string) error {
	if len(args) == 0 {
		return c.printUsage()
	}

	switch args[0] {
	case "generate", "gen", "preview", "validate":
		fmt.Println(`Field flags (shared by generate, preview, validate):
  -e, --environment   Environment/setting ("interior, hotel lobby")
  -w, --weather       Weather conditions ("sunny with a few clouds")
  -t, --time          Date and time ("7am")
  -s, --subjects      Subjects in the scene ("a 20yo man, a woman in her 40s")
  -p, --pose          Subject pose and action
  -c, --camera        Camera specifications ("shot on a 22mm lens on Arri Alexa")
  -f, --framing       Camera framing and action ("camera dollies in")
  -g, --grading       Color grading/style ("Fuji Xperia film look")
      --tag SPEC      Attach a random tag: field=Category[/Subcategory]

Generation flags:
      --seed N          Base seed (random when omitted)
      --seed-mode MODE  fixed, increment, decrement, randomize
  -b, --batch N         Batch size (default 1)
  -m, --model NAME      Target model: seedream, veo, flux, wan, hailuo
      --llm-model NAME  Refiner model (e.g. deepseek-r1:8b)
      --content-rating  PG, NSFW or Hentai (default PG)
  -I, --instructions    Custom refiner instructions
  -T, --from ID         Start from a saved state
      --save            Save the resulting state
  -j, --json            JSON output (for ComfyUI integration)
  -o, --output PATH     Write output to a file`)
	case "snippets":
		fmt.Println(`snippets fields
snippets categories <field> [rating...]
snippets list <field> <category>[/subcategory] [rating...]
snippets search <field> <query> [rating...]
snippets add <field> <category> <item> [rating]
snippets remove <field> <category> <item>
snippets export <path>
snippets import <path>`)
	case "states":
		fmt.Println(`states list
states show <id>
states delete <id>`)
	default:
		return c.printUsage()
	}
	return nil
}
