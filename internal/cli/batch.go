package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ppiankov/evidentia/internal/cache"
	"github.com/ppiankov/evidentia/internal/pipeline"
	"github.com/ppiankov/evidentia/internal/util"
	"github.com/ppiankov/evidentia/internal/worker"
)

var (
	concurrency  int
	outputDir    string
	batchTimeout time.Duration
	noCache      bool
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Score multiple documents from a list file in parallel",
	Long: `Batch scores many documents concurrently:
- Read one "input[,audit]" entry per line (blank lines and # comments skipped)
- Score documents in parallel with a configurable worker count
- Reuse cached reports for identical input and profile
- Write each document's outputs under <output-dir>/<slug>/

A failing document is reported and the rest of the batch continues.

Example:
  evidentia batch docs.txt
  evidentia batch docs.txt --concurrency 8 --output-dir ./reports
  evidentia batch docs.txt --profile strict --timeout 5m`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&concurrency, "concurrency", runtime.NumCPU(), "number of documents scored at once")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "./evidentia-reports", "output directory for reports")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")
	batchCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the result cache")
	batchCmd.Flags().BoolVar(&noAuditMD, "no-audit-md", false, "do not write audit.md")
}

func runBatch(cmd *cobra.Command, args []string) error {
	file := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	if noCache {
		cfg.Cache.Enabled = false
	}
	if noAuditMD {
		cfg.Output.WriteAuditMD = false
	}

	docs, err := worker.ReadDocumentList(file)
	if err != nil {
		return fmt.Errorf("read document list: %w", err)
	}

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Evidentia Batch Scoring\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  List file:    %s (%d documents)\n", file, len(docs))
	fmt.Fprintf(os.Stderr, "  Profile:      %s\n", cfg.Profile)
	fmt.Fprintf(os.Stderr, "  Workers:      %d\n", concurrency)
	fmt.Fprintf(os.Stderr, "  Output dir:   %s\n", outputDir)
	fmt.Fprintf(os.Stderr, "  Timeout:      %v\n", batchTimeout)
	fmt.Fprintf(os.Stderr, "\n")

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	p := pipeline.NewPipeline(cfg, logger).WithCache(cache.FromConfig(cfg.Cache))
	processor := worker.NewBatchProcessor(p, concurrency)
	results := processor.ProcessDocuments(ctx, docs)

	dirs := outputDirs(docs)
	successCount, failureCount, cachedCount := 0, 0, 0

	for i, result := range results {
		input := result.Document.Input
		if result.Error != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", input, result.Error)
			continue
		}

		reportPath := filepath.Join(outputDir, dirs[i], "scoring_report.json")
		if err := p.RenderReport(result.Report, reportPath); err != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", input, err)
			continue
		}

		successCount++
		if result.Cached {
			cachedCount++
		}
		logger.Debug("document scored", zap.String("input", input), zap.Bool("cached", result.Cached))

		doc := result.Report.DocumentScores
		verdict := "failed"
		if doc.SeriousnessGate.Passed {
			verdict = "passed"
		}
		fmt.Fprintf(os.Stderr, "✓ %s (mean final: %.3f, gate %s)\n", input, doc.OverallClaimScoreMean, verdict)
	}

	// Summary
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Batch Complete\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Total:     %d documents\n", len(results))
	fmt.Fprintf(os.Stderr, "  Success:   %d (%d from cache)\n", successCount, cachedCount)
	fmt.Fprintf(os.Stderr, "  Failures:  %d\n", failureCount)
	fmt.Fprintf(os.Stderr, "  Output:    %s\n", outputDir)
	fmt.Fprintf(os.Stderr, "\n")

	if failureCount > 0 {
		return fmt.Errorf("%d of %d documents failed", failureCount, len(results))
	}
	return nil
}

// outputDirs names one output directory per document from its input file
// name. Collisions get a numeric suffix in list order.
func outputDirs(docs []worker.Document) []string {
	dirs := make([]string, len(docs))
	used := make(map[string]int)
	for i, doc := range docs {
		base := strings.TrimSuffix(filepath.Base(doc.Input), filepath.Ext(doc.Input))
		slug := util.Slugify(base)
		if slug == "" {
			slug = "document"
		}
		if len(slug) > 100 {
			slug = slug[:100]
		}

		used[slug]++
		if n := used[slug]; n > 1 {
			slug += "-" + strconv.Itoa(n)
		}
		dirs[i] = slug
	}
	return dirs
}
