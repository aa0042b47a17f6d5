// Command earlgreyctl is a debugging/demo front end for package earlgrey.
// It accepts a rule-list file instead of grammar surface syntax, since the
// surface-syntax grammar-file parser is outside this module's scope.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/earlgrey-dsl/earlgrey"
	"github.com/earlgrey-dsl/earlgrey/chart"
	"github.com/earlgrey-dsl/earlgrey/config"
	"github.com/earlgrey-dsl/earlgrey/token"
)

func initDisplay() {
	pterm.Info.Prefix = pterm.Prefix{
		Text:  "  >>",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "  Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

func main() {
	initDisplay()
	gtrace.SyntaxTracer = gologadapter.New()

	var rulesFile, configFile, start, traceLevel string
	var dumpGrammar, dumpChart bool

	rootCmd := &cobra.Command{
		Use:   "earlgreyctl",
		Short: "Build an earlgrey engine from a rule-list file and run it",
	}
	rootCmd.PersistentFlags().StringVar(&rulesFile, "rules", "", "path to a rule-list TOML file (required)")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "path to an engine-config TOML file (optional)")
	rootCmd.PersistentFlags().StringVar(&start, "start", "", "start nonterminal (required)")
	rootCmd.PersistentFlags().StringVar(&traceLevel, "trace", "Error", "trace level [Debug|Info|Error]")
	rootCmd.PersistentFlags().BoolVar(&dumpGrammar, "dump-grammar", false, "print the built grammar's productions before parsing")
	rootCmd.PersistentFlags().BoolVar(&dumpChart, "dump-chart", false, "print the recognizer's chart for each parse")

	parseCmd := &cobra.Command{
		Use:   "parse <input text>",
		Short: "Parse a single input string and print the resulting value as JSON",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := buildEngine(rulesFile, configFile, traceLevel)
			if err != nil {
				return err
			}
			if dumpGrammar {
				fmt.Print(e.Grammar().Dump())
			}
			input := strings.Join(args, " ")
			return runParse(e, start, input, dumpChart)
		},
	}

	replCmd := &cobra.Command{
		Use:   "repl",
		Short: "Read input lines interactively and print the resulting value for each",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := buildEngine(rulesFile, configFile, traceLevel)
			if err != nil {
				return err
			}
			if dumpGrammar {
				fmt.Print(e.Grammar().Dump())
			}
			return runREPL(e, start, dumpChart)
		},
	}

	rootCmd.AddCommand(parseCmd, replCmd)
	if err := rootCmd.Execute(); err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(1)
	}
}

func buildEngine(rulesFile, configFile, traceLevel string) (*earlgrey.Engine, error) {
	if rulesFile == "" {
		return nil, fmt.Errorf("--rules is required")
	}
	rules, err := config.LoadRules(rulesFile)
	if err != nil {
		return nil, fmt.Errorf("loading rules: %w", err)
	}

	var opts []earlgrey.Option
	opts = append(opts, earlgrey.TraceLevel(tracing.TraceLevelFromString(traceLevel)))
	if configFile != "" {
		cfg, err := config.LoadEngineConfig(configFile)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
		if cfg.MaxChartItems > 0 {
			opts = append(opts, earlgrey.MaxChartItems(cfg.MaxChartItems))
		}
		if cfg.TraceLevel != "" {
			opts = append(opts, earlgrey.TraceLevel(tracing.TraceLevelFromString(cfg.TraceLevel)))
		}
	}

	e, err := earlgrey.BuildEngine(rules, opts...)
	if err != nil {
		return nil, fmt.Errorf("building engine: %w", err)
	}
	return e, nil
}

func runParse(e *earlgrey.Engine, start, input string, dumpChart bool) error {
	if start == "" {
		return fmt.Errorf("--start is required")
	}
	if dumpChart {
		printChart(e, start, input)
	}
	v, err := e.Parse(context.Background(), input, start)
	if err != nil {
		printExpectations(err)
		return err
	}
	return printValue(v)
}

// printChart builds the same recognizer Engine.Parse would and prints its
// chart, for --dump-chart: Engine itself never retains a chart past a
// single Parse call, so the CLI reconstructs one to inspect.
func printChart(e *earlgrey.Engine, start, input string) {
	toks := token.Tokenize(input)
	r := chart.NewRecognizer(e.Grammar(), start)
	c, err := r.Run(context.Background(), toks)
	if err != nil {
		pterm.Error.Println(err.Error())
		return
	}
	fmt.Print(c.Dump())
}

// printExpectations prints the in-progress productions at the failure
// position of a ParseError, via diag.Expectation's human-readable form.
func printExpectations(err error) {
	var perr *earlgrey.ParseError
	if !errors.As(err, &perr) || len(perr.Detail.InProgressRules) == 0 {
		return
	}
	pterm.Info.Println("expected one of:")
	for _, exp := range perr.Detail.InProgressRules {
		fmt.Println("  " + exp.String())
	}
}

func printValue(v interface{ MarshalJSON() ([]byte, error) }) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding result: %w", err)
	}
	fmt.Println(string(out))
	return nil
}

func runREPL(e *earlgrey.Engine, start string, dumpChart bool) error {
	if start == "" {
		return fmt.Errorf("--start is required")
	}
	rl, err := readline.New("earlgrey> ")
	if err != nil {
		return err
	}
	defer rl.Close()

	pterm.Info.Println("Welcome to earlgreyctl. Quit with <ctrl>D")
	for {
		line, err := rl.Readline()
		if err != nil { // io.EOF on ctrl-D
			break
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if dumpChart {
			printChart(e, start, line)
		}
		v, err := e.Parse(context.Background(), line, start)
		if err != nil {
			pterm.Error.Println(err.Error())
			printExpectations(err)
			continue
		}
		if err := printValue(v); err != nil {
			pterm.Error.Println(err.Error())
		}
	}
	fmt.Println("Good bye!")
	return nil
}
