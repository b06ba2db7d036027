package main

import (
	"context"
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"fconst/internal/diag"
	"fconst/internal/expr"
	"fconst/internal/fold"
	"fconst/internal/numeric"
	"fconst/internal/source"
)

func init() {
	fmtCmd.Flags().StringP("file", "f", "", "read one expression per line from a file instead of argv (- for stdin)")
	fmtCmd.Flags().Bool("cache", false, "cache folded results on disk, keyed by expression text and folding config")
	fmtCmd.Flags().Int("jobs", 0, "parallel fold workers (0 = GOMAXPROCS)")
}

var fmtCmd = &cobra.Command{
	Use:   "fmt [expr...]",
	Short: "Batch-fold expressions and print one normalized \"input => result\" line per input",
	Long: `fmt is eval's batch sibling: it folds every expression the same way but
prints a single stable line per input (no source context, no color), suited
to piping into diff or another tool. With --cache, folded results are kept
on disk keyed by expression text and folding configuration, so an unchanged
input in a later run skips the fold entirely.`,
	RunE: runFmt,
}

func runFmt(cmd *cobra.Command, args []string) error {
	filePath, err := cmd.Flags().GetString("file")
	if err != nil {
		return fmt.Errorf("failed to get file flag: %w", err)
	}
	useCache, err := cmd.Flags().GetBool("cache")
	if err != nil {
		return fmt.Errorf("failed to get cache flag: %w", err)
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
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

	var cache *foldCache
	if useCache {
		cache, err = openFoldCache()
		if err != nil {
			return fmt.Errorf("failed to open fold cache: %w", err)
		}
	}

	results, _ := foldAllCached(cmd.Context(), exprs, jobs, maxDiagnostics, rounding, flushSubnormals, cfg, cache)

	hadError := false
	for _, r := range results {
		if r.err != nil {
			fmt.Fprintf(cmd.OutOrStdout(), "%s => <error: %v>\n", r.source, r.err)
			hadError = true
			continue
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s => %s", r.source, r.value)
		for _, d := range r.diags {
			fmt.Fprintf(cmd.OutOrStdout(), " | %s %s: %s", diag.Severity(d.Severity), diag.Code(d.Code).String(), d.Message)
			if d.Severity == uint8(diag.SevError) {
				hadError = true
			}
		}
		fmt.Fprintln(cmd.OutOrStdout())
	}

	if hadError {
		cmd.SilenceUsage = true
		cmd.SilenceErrors = true
		return fmt.Errorf("")
	}
	return nil
}

// fmtResult mirrors evalResult but holds the trimmed cachedDiagnostic shape,
// since a cache hit never reconstructs the original diag.Diagnostic (its
// span/notes/fixes are meaningless once detached from the FileSet that
// produced them).
type fmtResult struct {
	source string
	value  string
	diags  []cachedDiagnostic
	err    error
}

// foldAllCached is fmt's version of foldAll (see eval.go): same serial-parse
// then parallel-fold split (ParseExprText mutates the shared FileSet, so it
// never runs concurrently), but consults/fills a foldCache around each fold.
func foldAllCached(ctx context.Context, exprs []string, jobs, maxDiagnostics int, rounding numeric.RoundingMode, flushSubnormals bool, cfg foldConfig, cache *foldCache) ([]fmtResult, *source.FileSet) {
	fs := source.NewFileSet()
	results := make([]fmtResult, len(exprs))
	parsed := make([]expr.Expr, len(exprs))

	for i, text := range exprs {
		name := fmt.Sprintf("<expr %d>", i+1)
		e, err := ParseExprText(fs, name, text)
		if err != nil {
			results[i] = fmtResult{source: text, err: err}
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

				var key foldCacheKey
				if cache != nil {
					key = computeFoldCacheKey(text, rounding, flushSubnormals, cfg.Fold.HostMath)
					if hit, ok := cache.Get(key); ok {
						results[i] = fmtResult{source: text, value: hit.Value, diags: hit.Diags}
						return nil
					}
				}

				bag := diag.NewBag(maxDiagnostics)
				fctx := fold.NewContext(diag.BagReporter{Bag: bag}, hostHandleFor(cfg.Fold.HostMath), nil)
				fctx.Rounding = rounding
				fctx.FlushSubnormal = flushSubnormals

				folded := fold.Rewrite(fctx, e)
				value := renderExpr(folded)
				cdiags := toCachedDiags(bag.Items())
				results[i] = fmtResult{source: text, value: value, diags: cdiags}

				if cache != nil {
					_ = cache.Put(key, cachedFold{Value: value, Diags: cdiags})
				}
				return nil
			}
		}(i, e, exprs[i]))
	}

	_ = g.Wait()

	return results, fs
}
