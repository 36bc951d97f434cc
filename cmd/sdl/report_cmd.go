package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/Relatronica/SDL-Scenario-Description-Language-sub001/internal/sim"
	"github.com/Relatronica/SDL-Scenario-Description-Language-sub001/pkg/sdl"
)

var reportFilter string

var reportCmd = &cobra.Command{
	Use:   "report [scenario.sdl]",
	Short: "Run a simulation and render a Markdown summary report",
	Args:  cobra.ExactArgs(1),
	RunE:  runReport,
}

func runReport(cmd *cobra.Command, args []string) error {
	source, err := readSource(args[0])
	if err != nil {
		return err
	}
	scenario, diags := sdl.Parse(source)
	if scenario == nil {
		printDiagnostics(diags)
		return fmt.Errorf("parsing failed")
	}

	result, simDiags, err := sdl.Simulate(scenario, &sdl.SimulateConfig{})
	printDiagnostics(simDiags)
	if err != nil {
		return err
	}

	names, err := filterNames(result, reportFilter)
	if err != nil {
		return err
	}

	md := renderMarkdownReport(result, names)
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		fmt.Print(md)
		return nil
	}
	out, err := r.Render(md)
	if err != nil {
		fmt.Print(md)
		return nil
	}
	fmt.Print(out)
	return nil
}

// renderMarkdownReport builds a Markdown document summarising result,
// grounded on the teacher's pkg/tui.markdown.go glamour-rendering pipeline
// — there it renders a runbook step's Markdown description, here it renders
// a generated summary of a simulation's output.
func renderMarkdownReport(result *sdl.SimulationResult, names []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", result.ScenarioName)
	fmt.Fprintf(&b, "- **runs:** %d\n- **method:** %s\n- **seed:** %d\n- **converged:** %t\n\n",
		result.Runs, result.Method, result.Seed, result.ConvergenceReached)

	for _, name := range names {
		if v, ok := result.Variables[name]; ok {
			writeSeriesMarkdown(&b, "variable", v.Name, v.Unit, v.Timesteps, v.Summaries)
		}
		if im, ok := result.Impacts[name]; ok {
			writeSeriesMarkdown(&b, "impact", im.Name, im.Unit, im.Timesteps, im.Summaries)
		}
		if br, ok := result.Branches[name]; ok {
			fmt.Fprintf(&b, "## branch %s\n\nactivation rate: **%.3f**\n\n", br.Name, br.ActivationRate)
		}
	}
	return b.String()
}

func writeSeriesMarkdown(b *strings.Builder, kind, name, unit string, timesteps []int, summaries map[int]sim.DistributionSummary) {
	title := name
	if unit != "" {
		title = fmt.Sprintf("%s (%s)", name, unit)
	}
	fmt.Fprintf(b, "## %s %s\n\n", kind, title)
	fmt.Fprintf(b, "| year | mean | median | p5 | p95 |\n|---|---|---|---|---|\n")
	for _, year := range timesteps {
		s, ok := summaries[year]
		if !ok {
			continue
		}
		fmt.Fprintf(b, "| %d | %.4g | %.4g | %.4g | %.4g |\n", year, s.Mean, s.Median, s.Percentiles[5], s.Percentiles[95])
	}
	b.WriteString("\n")
}

func init() {
	reportCmd.Flags().StringVar(&reportFilter, "filter", "", "expr-lang expression selecting which names to include")
	rootCmd.AddCommand(reportCmd)
}
