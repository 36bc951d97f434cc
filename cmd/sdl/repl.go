package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"

	"github.com/Relatronica/SDL-Scenario-Description-Language-sub001/pkg/sdl"
)

// replState holds the currently-loaded scenario, adapted from the teacher's
// debugger.Debugger — a single mutable session object driven by a readline
// command loop instead of a step-execution engine.
type replState struct {
	path     string
	source   string
	scenario *sdl.Scenario
	result   *sdl.SimulationResult
}

func runRepl(initialPath string) error {
	commands := []string{"load", "parse", "validate", "simulate", "graph", "graph ascii",
		"vars", "print", "filter", "help", "quit"}

	var completer = readline.NewPrefixCompleter()
	for _, cmd := range commands {
		completer.Children = append(completer.Children, readline.PcItem(cmd))
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "sdl> ",
		AutoComplete:    completer,
		InterruptPrompt: "^C",
		EOFPrompt:       "quit",
	})
	if err != nil {
		return fmt.Errorf("init readline: %w", err)
	}
	defer rl.Close()

	st := &replState{}
	if initialPath != "" {
		if err := st.load(initialPath); err != nil {
			fmt.Fprintf(os.Stdout, "load %s: %v\n", initialPath, err)
		}
	}

	fmt.Fprintln(os.Stdout, "sdl repl — type 'help' for commands, 'quit' to exit.")

	for {
		rl.SetPrompt(st.prompt())
		line, err := rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt || err == io.EOF {
				return nil
			}
			return err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		parts := strings.Fields(line)
		cmd := parts[0]

		switch cmd {
		case "load":
			if len(parts) < 2 {
				fmt.Fprintln(os.Stdout, "usage: load <scenario.sdl>")
				continue
			}
			if err := st.load(parts[1]); err != nil {
				fmt.Fprintf(os.Stdout, "Error: %v\n", err)
			}
		case "parse":
			st.handleParse()
		case "validate":
			st.handleValidate()
		case "simulate":
			st.handleSimulate(parts[1:])
		case "graph":
			st.handleGraph(parts[1:])
		case "vars":
			st.handleVars(parts[1:])
		case "print":
			st.handlePrint()
		case "filter":
			st.handleFilter(strings.Join(parts[1:], " "))
		case "help", "?":
			st.handleHelp()
		case "quit", "q":
			fmt.Fprintln(os.Stdout, "Exiting.")
			return nil
		default:
			fmt.Fprintf(os.Stdout, "Unknown command: %q. Type 'help' for available commands.\n", cmd)
		}
	}
}

func (st *replState) prompt() string {
	if st.scenario == nil {
		return "sdl> "
	}
	return fmt.Sprintf("sdl[%s]> ", st.scenario.Name)
}

func (st *replState) load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	st.path = path
	st.source = string(data)
	st.scenario = nil
	st.result = nil
	return st.handleParseErr()
}

func (st *replState) handleParseErr() error {
	scenario, diags := sdl.Parse(st.source)
	printDiagnostics(diags)
	if scenario == nil {
		return fmt.Errorf("parse failed")
	}
	st.scenario = scenario
	fmt.Printf("loaded %q (%d declarations)\n", scenario.Name, len(scenario.Declarations))
	return nil
}

func (st *replState) handleParse() {
	if st.source == "" {
		fmt.Println("no scenario loaded — use 'load <path>'")
		return
	}
	_ = st.handleParseErr()
}

func (st *replState) handleValidate() {
	if st.scenario == nil {
		fmt.Println("no scenario loaded — use 'load <path>'")
		return
	}
	result := sdl.Validate(st.scenario)
	printDiagnostics(result.Diagnostics)
	if result.Valid {
		fmt.Println(okStyle.Render(fmt.Sprintf("✓ %s is valid", st.scenario.Name)))
	}
}

func (st *replState) handleSimulate(args []string) {
	if st.scenario == nil {
		fmt.Println("no scenario loaded — use 'load <path>'")
		return
	}
	cfg := &sdl.SimulateConfig{}
	if len(args) > 0 {
		var n int
		if _, err := fmt.Sscanf(args[0], "%d", &n); err == nil && n > 0 {
			cfg.Runs = &n
		}
	}
	result, diags, err := sdl.Simulate(st.scenario, cfg)
	printDiagnostics(diags)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	st.result = result
	_ = renderResult(result, "")
}

func (st *replState) handleGraph(args []string) {
	if st.scenario == nil {
		fmt.Println("no scenario loaded — use 'load <path>'")
		return
	}
	format := sdl.DiagramMermaid
	if len(args) > 0 && args[0] == "ascii" {
		format = sdl.DiagramASCII
	}
	out, err := sdl.Diagram(st.scenario, format)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	fmt.Println(out)
}

func (st *replState) handleVars(args []string) {
	if st.result == nil {
		fmt.Println("no simulation results yet — use 'simulate'")
		return
	}
	filterExpr := strings.Join(args, " ")
	if err := renderResult(st.result, filterExpr); err != nil {
		fmt.Printf("Error: %v\n", err)
	}
}

func (st *replState) handlePrint() {
	if st.scenario == nil {
		fmt.Println("no scenario loaded — use 'load <path>'")
		return
	}
	fmt.Print(sdl.Print(st.scenario))
}

func (st *replState) handleFilter(expr string) {
	if st.result == nil {
		fmt.Println("no simulation results yet — use 'simulate'")
		return
	}
	if err := renderResult(st.result, expr); err != nil {
		fmt.Printf("Error: %v\n", err)
	}
}

func (st *replState) handleHelp() {
	fmt.Println(`Commands:
  load <path>        load and parse a scenario file
  parse              re-parse the currently loaded source
  validate           validate the currently loaded scenario
  simulate [runs]     run a Monte Carlo simulation (optional run count)
  graph [ascii]       render the causal dependency graph
  vars [filter]       print the last simulation's variables/impacts/branches
  print              print the scenario back out in canonical form
  filter <expr>       re-render the last simulation filtered by an expr-lang expression
  help                show this message
  quit                exit the repl`)
}
