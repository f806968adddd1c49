// Package main implements the lucent command-line interface: `check`
// (parse + resolve + typecheck), `run` (check then evaluate main), `test`
// (check then execute test blocks), and `version`.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/maloquacious/semver"
	"github.com/spf13/cobra"

	"github.com/lucent-lang/lucent/internal/ast"
	"github.com/lucent-lang/lucent/internal/check"
	"github.com/lucent-lang/lucent/internal/diag"
	"github.com/lucent-lang/lucent/internal/interp"
	"github.com/lucent-lang/lucent/internal/parser"
)

var version = semver.Version{
	Major: 0,
	Minor: 4,
	Patch: 0,
}

var argsRoot struct {
	filename     string
	emitWarnings bool
	format       string
}

func main() {
	if err := Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func Execute() error {
	cmdRoot.PersistentFlags().StringVar(&argsRoot.filename, "filename", "<stdin>", "name to attribute spans to when reading from stdin")
	cmdRoot.PersistentFlags().BoolVar(&argsRoot.emitWarnings, "emit-warnings", true, "print warning diagnostics")
	cmdRoot.PersistentFlags().StringVarP(&argsRoot.format, "format", "f", "text", "diagnostic output format (text|json)")

	cmdRoot.AddCommand(cmdCheck)
	cmdRoot.AddCommand(cmdRun)
	cmdRoot.AddCommand(cmdTest)
	cmdRoot.AddCommand(cmdVersion)

	return cmdRoot.Execute()
}

var cmdRoot = &cobra.Command{
	Use:           "lucent",
	Short:         "The Lucent language toolchain",
	Long:          `Check and run programs written in the Lucent language.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var cmdVersion = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of this application",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("%s\n", version.String())
	},
}

// loadSource reads the program text from a path argument, or from stdin
// when the argument is "-".
func loadSource(args []string) (string, string, error) {
	if len(args) == 0 {
		return "", "", fmt.Errorf("expected a source path (or - for stdin)")
	}
	if args[0] == "-" {
		src, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", "", err
		}
		return argsRoot.filename, string(src), nil
	}
	src, err := os.ReadFile(args[0])
	if err != nil {
		return "", "", err
	}
	return args[0], string(src), nil
}

// checkSource runs the front-end pipeline and reports diagnostics. It
// returns the parsed file (for a following run) and whether any diagnostic
// had error severity.
func checkSource(filename, src string) (*ast.File, bool) {
	file, parseErrs := parser.ParseFile(filename, src)
	if len(parseErrs) > 0 {
		batch := diag.NewBatch()
		for _, d := range parseErrs {
			batch.Add(d)
		}
		reportBatch(filename, src, batch)
		return file, true
	}

	batch := check.NewChecker(filename).Check(file)
	reportBatch(filename, src, batch)
	return file, batch.HasErrors()
}

func reportBatch(filename, src string, batch *diag.Batch) {
	shown := diag.NewBatch()
	shown.RunID = batch.RunID
	for _, d := range batch.Diagnostics {
		if d.Severity == diag.SeverityWarning && !argsRoot.emitWarnings {
			continue
		}
		shown.Add(d)
	}
	if argsRoot.format == "json" {
		if err := diag.WriteJSON(os.Stderr, shown); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
		return
	}
	if len(shown.Diagnostics) == 0 {
		return
	}
	f := diag.NewFormatter()
	f.LoadSource(filename, src)
	f.FormatAll(shown)
}

var cmdCheck = &cobra.Command{
	Use:   "check <path|->",
	Short: "Parse, resolve, and typecheck a Lucent source file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		filename, src, err := loadSource(args)
		if err != nil {
			return err
		}
		if _, failed := checkSource(filename, src); failed {
			os.Exit(1)
		}
		return nil
	},
}

var cmdRun = &cobra.Command{
	Use:   "run <path|-> [program args...]",
	Short: "Check a Lucent source file, then evaluate its main function",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		filename, src, err := loadSource(args)
		if err != nil {
			return err
		}
		file, failed := checkSource(filename, src)
		if failed {
			os.Exit(1)
		}

		in := interp.New(interp.Options{Args: args[1:]})
		if _, err := in.Run(file); err != nil {
			return fmt.Errorf("runtime error: %s", err.Error())
		}
		return nil
	},
}

var cmdTest = &cobra.Command{
	Use:   "test <path|->",
	Short: "Check a Lucent source file, then execute its test blocks",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		filename, src, err := loadSource(args)
		if err != nil {
			return err
		}
		file, failed := checkSource(filename, src)
		if failed {
			os.Exit(1)
		}

		in := interp.New(interp.Options{})
		results, err := in.RunTests(file)
		if err != nil {
			return fmt.Errorf("runtime error: %s", err.Error())
		}
		passed := 0
		for _, r := range results {
			if r.Err != nil {
				fmt.Printf("FAIL %s: %s\n", r.Name, r.Err.Error())
				continue
			}
			passed++
			fmt.Printf("ok   %s\n", r.Name)
		}
		fmt.Printf("%d/%d test(s) passed\n", passed, len(results))
		if passed != len(results) {
			os.Exit(1)
		}
		return nil
	},
}
