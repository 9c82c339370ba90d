package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jcrawley/hazel-cc/pkg/ast"
	"github.com/jcrawley/hazel-cc/pkg/diag"
	"github.com/jcrawley/hazel-cc/pkg/lexer"
	"github.com/jcrawley/hazel-cc/pkg/parser"
	"github.com/jcrawley/hazel-cc/pkg/target"
	"github.com/spf13/cobra"
)

var version = "0.1.0"

// Debug flags for dumping frontend stages
var (
	dTokens bool
	dParse  bool
	dDiag   bool
)

var targetInfo bool

func main() {
	os.Exit(run())
}

func run() int {
	rootCmd := newRootCmd(os.Stdout, os.Stderr)
	// Normalize compiler-style single-dash flags to double-dash for pflag compatibility
	rootCmd.SetArgs(normalizeFlags(os.Args[1:]))
	if err := rootCmd.Execute(); err != nil {
		return 1
	}
	return 0
}

// debugFlagNames lists all debug flags that should accept single-dash style
var debugFlagNames = []string{"dtokens", "dparse", "ddiag"}

// normalizeFlags converts compiler-style single-dash flags like -dparse to --dparse
func normalizeFlags(args []string) []string {
	result := make([]string, len(args))
	for i, arg := range args {
		for _, flagName := range debugFlagNames {
			if arg == "-"+flagName {
				result[i] = "--" + flagName
				break
			}
		}
		if result[i] == "" {
			result[i] = arg
		}
	}
	return result
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "hazel-cc [file]",
		Short: "hazel-cc is a fault-tolerant C11 parser frontend",
		Long: `hazel-cc parses C11 translation units and reports the syntax tree
and diagnostics. Parsing is fault tolerant: on malformed input the
best-effort tree built before the stopping point is kept, together
with every diagnostic raised along the way.`,
		Version:       version,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if targetInfo {
				target.Describe(out)
				return nil
			}

			if len(args) == 0 {
				cmd.Help()
				return nil
			}
			filename := args[0]

			// Handle -dtokens: lex and dump the token sequence
			if dTokens {
				return doTokens(filename, out, errOut)
			}

			// Handle -dparse: parse and dump the AST
			if dParse {
				return doParse(filename, out, errOut)
			}

			// Handle -ddiag: parse and list all diagnostics
			if dDiag {
				return doDiag(filename, out, errOut)
			}

			fmt.Fprintf(errOut, "hazel-cc: parsing %s\n", filename)
			res, err := parseFile(filename, errOut)
			if err != nil {
				return err
			}
			res.Release()
			return nil
		},
	}
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)

	// Add debug flags
	rootCmd.Flags().BoolVarP(&dTokens, "dtokens", "", false, "Dump the token stream")
	rootCmd.Flags().BoolVarP(&dParse, "dparse", "", false, "Dump after parsing")
	rootCmd.Flags().BoolVarP(&dDiag, "ddiag", "", false, "List parse diagnostics")

	rootCmd.Flags().BoolVar(&targetInfo, "target-info", false, "Print target layout constants")

	return rootCmd
}

// parseFile reads and parses a C file. Diagnostics go to errOut; any
// error-severity diagnostic fails the parse. On success the caller owns
// the result and must release it.
func parseFile(filename string, errOut io.Writer) (*parser.Result, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		fmt.Fprintf(errOut, "hazel-cc: error reading %s: %v\n", filename, err)
		return nil, err
	}

	res, err := parser.ParseSource(string(content))
	if err != nil {
		fmt.Fprintf(errOut, "hazel-cc: %s: %v\n", filename, err)
		return nil, err
	}

	errs := 0
	for _, d := range res.Diagnostics {
		fmt.Fprintf(errOut, "%s: %s\n", filename, d)
		if d.Severity == diag.Error {
			errs++
		}
	}
	if errs > 0 {
		res.Release()
		return nil, fmt.Errorf("parsing failed with %d errors", errs)
	}
	return res, nil
}

// doTokens lexes the file and dumps every token, comments included
func doTokens(filename string, out, errOut io.Writer) error {
	content, err := os.ReadFile(filename)
	if err != nil {
		fmt.Fprintf(errOut, "hazel-cc: error reading %s: %v\n", filename, err)
		return err
	}

	for i, t := range lexer.Tokenize(string(content)) {
		fmt.Fprintf(out, "%4d  %-14s %q  line %d, col %d\n", i, t.Type, t.Literal, t.Line, t.Column)
	}
	return nil
}

// doParse parses the file and writes the AST to a .parsed.c file
func doParse(filename string, out, errOut io.Writer) error {
	res, err := parseFile(filename, errOut)
	if err != nil {
		return err
	}
	defer res.Release()

	// Compute output filename: input.c -> input.parsed.c
	outputFilename := parsedOutputFilename(filename)

	outFile, err := os.Create(outputFilename)
	if err != nil {
		fmt.Fprintf(errOut, "hazel-cc: error creating %s: %v\n", outputFilename, err)
		return err
	}
	defer outFile.Close()

	// Print the AST to the file
	printer := ast.NewPrinter(outFile)
	printer.PrintProgram(res.Program)

	// Also print to stdout for convenience
	printer = ast.NewPrinter(out)
	printer.PrintProgram(res.Program)

	return nil
}

// parsedOutputFilename returns the output filename for -dparse
// input.c -> input.parsed.c
func parsedOutputFilename(filename string) string {
	ext := ".c"
	if strings.HasSuffix(filename, ext) {
		return filename[:len(filename)-len(ext)] + ".parsed.c"
	}
	return filename + ".parsed.c"
}

// doDiag parses the file and lists every diagnostic, warnings
// included, followed by a summary line. Errors fail the command; the
// listing is still complete.
func doDiag(filename string, out, errOut io.Writer) error {
	content, err := os.ReadFile(filename)
	if err != nil {
		fmt.Fprintf(errOut, "hazel-cc: error reading %s: %v\n", filename, err)
		return err
	}

	res, err := parser.ParseSource(string(content))
	if err != nil {
		fmt.Fprintf(errOut, "hazel-cc: %s: %v\n", filename, err)
		return err
	}
	defer res.Release()

	errs, warns := 0, 0
	for _, d := range res.Diagnostics {
		fmt.Fprintf(out, "%s: %s\n", filename, d)
		if d.Severity == diag.Error {
			errs++
		} else {
			warns++
		}
	}
	fmt.Fprintf(out, "%d errors, %d warnings\n", errs, warns)

	if errs > 0 {
		return fmt.Errorf("parsing failed with %d errors", errs)
	}
	return nil
}
