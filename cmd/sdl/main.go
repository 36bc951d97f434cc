package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/Relatronica/SDL-Scenario-Description-Language-sub001/internal/diag"
	"github.com/Relatronica/SDL-Scenario-Description-Language-sub001/pkg/sdl"
)

var (
	version = "dev"
	commit  = "unknown"
)

var errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
var warnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
var okStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "sdl",
	Short: "Scenario Description Language interpreter",
	Long:  "sdl — lex, parse, validate and run Monte Carlo simulations over Scenario Description Language (SDL) scenarios.",
}

func readSource(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(data), nil
}

func printDiagnostics(diags []diag.Diagnostic) {
	for _, d := range diags {
		line := fmt.Sprintf("[%s] %s at %d:%d", d.Code, d.Message, d.Span.Start.Line, d.Span.Start.Column)
		if d.Hint != "" {
			line += fmt.Sprintf(" (hint: %s)", d.Hint)
		}
		switch d.Severity {
		case diag.SeverityError:
			fmt.Fprintln(os.Stderr, errorStyle.Render("✗ "+line))
		case diag.SeverityWarning:
			fmt.Fprintln(os.Stderr, warnStyle.Render("⚠ "+line))
		default:
			fmt.Fprintln(os.Stderr, line)
		}
	}
}

func hasErrorDiagnostic(diags []diag.Diagnostic) bool {
	for _, d := range diags {
		if d.Severity == diag.SeverityError {
			return true
		}
	}
	return false
}

// --- lex ---

var lexCmd = &cobra.Command{
	Use:   "lex [scenario.sdl]",
	Short: "Lex a scenario file and print its token stream",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		source, err := readSource(args[0])
		if err != nil {
			return err
		}
		toks, diags := sdl.Tokenize(source)
		for _, t := range toks {
			fmt.Printf("%-16s %q\n", t.Kind, t.Lexeme)
		}
		printDiagnostics(diags)
		if hasErrorDiagnostic(diags) {
			return fmt.Errorf("lexing failed")
		}
		return nil
	},
}

// --- parse ---

var parseCmd = &cobra.Command{
	Use:   "parse [scenario.sdl]",
	Short: "Parse a scenario file and print its declaration summary",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		source, err := readSource(args[0])
		if err != nil {
			return err
		}
		scenario, diags := sdl.Parse(source)
		printDiagnostics(diags)
		if scenario == nil {
			return fmt.Errorf("parsing failed")
		}
		fmt.Printf("scenario %q — %d declarations\n", scenario.Name, len(scenario.Declarations))
		for _, d := range scenario.Declarations {
			fmt.Printf("  %s %s\n", d.Kind, d.Name())
		}
		if hasErrorDiagnostic(diags) {
			return fmt.Errorf("parsing failed")
		}
		return nil
	},
}

// --- validate ---

var validateCmd = &cobra.Command{
	Use:   "validate [scenario.sdl]",
	Short: "Validate a scenario file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		source, err := readSource(args[0])
		if err != nil {
			return err
		}
		scenario, diags := sdl.Parse(source)
		if scenario == nil {
			printDiagnostics(diags)
			return fmt.Errorf("parsing failed")
		}
		result := sdl.Validate(scenario)
		printDiagnostics(result.Diagnostics)
		if !result.Valid {
			return fmt.Errorf("validation failed")
		}
		fmt.Println(okStyle.Render(fmt.Sprintf("✓ %s is valid (%d symbols)", scenario.Name, len(result.Symbols))))
		return nil
	},
}

// --- print (round trip) ---

var printCmd = &cobra.Command{
	Use:   "print [scenario.sdl]",
	Short: "Parse a scenario and print it back out in canonical form",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		source, err := readSource(args[0])
		if err != nil {
			return err
		}
		scenario, diags := sdl.Parse(source)
		if scenario == nil {
			printDiagnostics(diags)
			return fmt.Errorf("parsing failed")
		}
		fmt.Print(sdl.Print(scenario))
		return nil
	},
}

// --- graph ---

var graphFormat string

var graphCmd = &cobra.Command{
	Use:   "graph [scenario.sdl]",
	Short: "Render a scenario's causal dependency graph",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		source, err := readSource(args[0])
		if err != nil {
			return err
		}
		scenario, diags := sdl.Parse(source)
		if scenario == nil {
			printDiagnostics(diags)
			return fmt.Errorf("parsing failed")
		}
		format := sdl.DiagramMermaid
		if graphFormat == "ascii" {
			format = sdl.DiagramASCII
		}
		out, err := sdl.Diagram(scenario, format)
		if err != nil {
			return err
		}
		fmt.Println(out)
		return nil
	},
}

// --- simulate ---

var (
	simRuns       int
	simSeed       int64
	simTimeout    float64
	simFilter     string
	simNoProgress bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate [scenario.sdl]",
	Short: "Run a Monte Carlo simulation over a scenario",
	Args:  cobra.ExactArgs(1),
	RunE:  runSimulate,
}

func runSimulate(cmd *cobra.Command, args []string) error {
	source, err := readSource(args[0])
	if err != nil {
		return err
	}
	scenario, diags := sdl.Parse(source)
	if scenario == nil {
		printDiagnostics(diags)
		return fmt.Errorf("parsing failed")
	}

	cfg := &sdl.SimulateConfig{}
	if simRuns > 0 {
		cfg.Runs = &simRuns
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed = &simSeed
	}
	if simTimeout > 0 {
		cfg.TimeoutSeconds = &simTimeout
	}

	estimate := 1000
	if simRuns > 0 {
		estimate = simRuns
	}

	var result *sdl.SimulationResult
	var simDiags []diag.Diagnostic
	if simNoProgress || !isInteractive() {
		result, simDiags, err = sdl.Simulate(scenario, cfg)
	} else {
		result, simDiags, err = runSimulateWithProgress(scenario, cfg, estimate)
	}
	printDiagnostics(simDiags)
	if err != nil {
		return err
	}

	return renderResult(result, simFilter)
}

func isInteractive() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}

// --- version ---

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("sdl %s (build: %s)\n", version, commit)
	},
}

// --- schema ---

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Schema operations",
}

var schemaExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the simulate-config JSON Schema to stdout",
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := sdl.GenerateConfigJSONSchema()
		if err != nil {
			return fmt.Errorf("generate schema: %w", err)
		}
		var raw json.RawMessage = data
		formatted, err := json.MarshalIndent(raw, "", "  ")
		if err != nil {
			fmt.Println(string(data))
			return nil
		}
		fmt.Println(string(formatted))
		return nil
	},
}

// --- repl ---

var replCmd = &cobra.Command{
	Use:   "repl [scenario.sdl]",
	Short: "Start an interactive REPL for exploring a scenario",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := ""
		if len(args) == 1 {
			path = args[0]
		}
		return runRepl(path)
	},
}

func init() {
	simulateCmd.Flags().IntVar(&simRuns, "runs", 0, "Number of simulation runs (0 = default of 1000; a runs value in the scenario's simulate block takes precedence)")
	simulateCmd.Flags().Int64Var(&simSeed, "seed", 0, "Deterministic RNG seed")
	simulateCmd.Flags().Float64Var(&simTimeout, "timeout", 0, "Timeout in seconds (0 = default of 60; a timeout in the scenario's simulate block takes precedence)")
	simulateCmd.Flags().StringVar(&simFilter, "filter", "", "expr-lang expression selecting which variable/impact names to print (e.g. name matches \"revenue.*\")")
	simulateCmd.Flags().BoolVar(&simNoProgress, "no-progress", false, "Disable the interactive progress bar even on a TTY")

	graphCmd.Flags().StringVar(&graphFormat, "format", "mermaid", "Diagram format: mermaid or ascii")

	schemaCmd.AddCommand(schemaExportCmd)

	rootCmd.AddCommand(lexCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(printCmd)
	rootCmd.AddCommand(graphCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(schemaCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(replCmd)
}
