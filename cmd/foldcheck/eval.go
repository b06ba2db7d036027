package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"fconst/internal/diag"
	"fconst/internal/expr"
	"fconst/internal/fold"
	"fconst/internal/numeric"
	"fconst/internal/source"
)

func init() {
	evalCmd.Flags().StringP("file", "f", "", "read one expression per line from a file instead of argv (- for stdin)")
	evalCmd.Flags().String("format", "pretty", "diagnostic output format (pretty|golden|json)")
	evalCmd.Flags().Int("jobs", 0, "parallel fold workers (0 = GOMAXPROCS)")
}

var evalCmd = &cobra.Command{
	Use:   "eval [expr...]",
	Short: "Fold one or more standalone s-expression Fortran constant expressions",
	Long: `eval parses each argument (or each line of --file) as the tiny s-expression
surface syntax documented in sexpr.go, folds it independently, and prints the
result and any diagnostics the fold raised.`,
	RunE: runEval,
}

// evalResult is one independent expression's outcome, kept index-aligned
// with its input so results print in argument order even though folding
// itself happens out of order.
type evalResult struct {
	source string
	value  string
	diags  []diag.Diagnostic
	err    error
}

func runEval(cmd *cobra.Command, args []string) error {
	filePath, err := cmd.Flags().GetString("file")
	if err != nil {
		return fmt.Errorf("failed to get file flag: %w", err)
	}
	formatStr, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	colorMode, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return fmt.Errorf("failed to get color flag: %w", err)
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	roundingStr, err := cmd.Root().PersistentFlags().GetString("rounding")
	if err != nil {
		return fmt.Errorf("failed to get rounding flag: %w", err)
	}
	flushSubnormals, err := cmd.Root().PersistentFlags().GetBool("flush-subnormals")
	if err != nil {
		return fmt.Errorf("failed to get flush-subnormals flag: %w", err)
	}

	mode, err := parsePrintMode(formatStr)
	if err != nil {
		return err
	}
	rounding, err := parseRoundingMode(roundingStr)
	if err != nil {
		return err
	}

	cfg, err := loadFoldConfig(".")
	if err != nil {
		return err
	}

	exprs, err := gatherExpressions(args, filePath)
	if err != nil {
		return err
	}
	if len(exprs) == 0 {
		return fmt.Errorf("no expressions given (pass them as arguments or via --file)")
	}

	results, fs := foldAll(cmd.Context(), exprs, jobs, maxDiagnostics, rounding, flushSubnormals, cfg)

	printer := newDiagPrinter(cmd.OutOrStdout(), fs, mode, resolveColorMode(colorMode, os.Stdout), maxDiagnostics)
	hadError := false
	for _, r := range results {
		if r.err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", r.source, r.err)
			hadError = true
			continue
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s => %s\n", r.source, r.value)
		if err := printer.Print(r.diags); err != nil {
			return err
		}
		for i := range r.diags {
			if r.diags[i].Severity == diag.SevError {
				hadError = true
			}
		}
	}
	if hadError {
		// Diagnostics already explained what went wrong; suppress cobra's
		// usage/error banner so the exit code is the only extra signal.
		cmd.SilenceUsage = true
		cmd.SilenceErrors = true
		return fmt.Errorf("")
	}
	return nil
}

func gatherExpressions(args []string, filePath string) ([]string, error) {
	if filePath == "" {
		return args, nil
	}
	var r *bufio.Scanner
	if filePath == "-" {
		r = bufio.NewScanner(os.Stdin)
	} else {
		// #nosec G304 -- path is provided by the operator invoking the CLI
		f, err := os.Open(filePath)
		if err != nil {
			return nil, fmt.Errorf("failed to open %s: %w", filePath, err)
		}
		defer f.Close()
		r = bufio.NewScanner(f)
	}
	var lines []string
	for r.Scan() {
		line := strings.TrimSpace(r.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, line)
	}
	if err := r.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filePath, err)
	}
	return append(lines, args...), nil
}

// foldAll folds every expression independently and concurrently, one
// fold.Context per goroutine as internal/fold/context.go requires, indexing
// results by position so output order matches input order without a mutex.
//
// Parsing registers each expression as a virtual file in fs, and FileSet.Add
// mutates shared slice/map state with no locking of its own (internal/driver's
// ParseDir pre-loads every file serially before fanning out for exactly this
// reason), so every ParseExprText call happens here, up front, before the
// parallel section starts; only the fold itself — which only reads fs — runs
// concurrently.
func foldAll(ctx context.Context, exprs []string, jobs, maxDiagnostics int, rounding numeric.RoundingMode, flushSubnormals bool, cfg foldConfig) ([]evalResult, *source.FileSet) {
	fs := source.NewFileSet()
	results := make([]evalResult, len(exprs))
	parsed := make([]expr.Expr, len(exprs))

	for i, text := range exprs {
		name := fmt.Sprintf("<expr %d>", i+1)
		e, err := ParseExprText(fs, name, text)
		if err != nil {
			results[i] = evalResult{source: text, err: err}
			continue
		}
		parsed[i] = e
	}

	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(exprs)))

	for i, e := range parsed {
		if e == nil {
			continue
		}
		g.Go(func(i int, e expr.Expr, text string) func() error {
			return func() error {
				select {
				case <-gctx.Done():
					return gctx.Err()
				default:
				}

				bag := diag.NewBag(maxDiagnostics)
				fctx := fold.NewContext(diag.BagReporter{Bag: bag}, hostHandleFor(cfg.Fold.HostMath), nil)
				fctx.Rounding = rounding
				fctx.FlushSubnormal = flushSubnormals

				folded := fold.Rewrite(fctx, e)
				results[i] = evalResult{source: text, value: renderExpr(folded), diags: bag.Items()}
				return nil
			}
		}(i, e, exprs[i]))
	}

	_ = g.Wait()

	return results, fs
}
