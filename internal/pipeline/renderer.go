package pipeline

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ppiankov/evidentia/internal/model"
)

// Derived output file names, written next to the main report
const (
	ClaimScoresFile     = "claim_scores.json"
	EvidenceWeightsFile = "evidence_weights.json"
	DocumentScoresFile  = "document_scores.json"
	AuditFile           = "audit.md"
)

// Renderer serializes reports. Output carries no timestamps.
type Renderer struct {
	pretty       bool
	writeAuditMD bool
}

// NewRenderer creates a renderer
func NewRenderer(pretty, writeAuditMD bool) *Renderer {
	return &Renderer{pretty: pretty, writeAuditMD: writeAuditMD}
}

// RenderAll writes the full report to outputPath and the derived files
// beside it. It returns the paths written, in order.
func (r *Renderer) RenderAll(report *model.Report, outputPath string) ([]string, error) {
	dir := filepath.Dir(outputPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	evidenceWeights := make([]model.EvidenceWeight, 0, len(report.Evidence))
	for _, item := range report.Evidence {
		evidenceWeights = append(evidenceWeights, item.WeightRow())
	}

	outputs := []struct {
		path  string
		value any
	}{
		{outputPath, report},
		{filepath.Join(dir, ClaimScoresFile), model.ClaimScoresFile{ClaimScores: report.ClaimScores}},
		{filepath.Join(dir, EvidenceWeightsFile), model.EvidenceWeightsFile{EvidenceWeights: evidenceWeights}},
		{filepath.Join(dir, DocumentScoresFile), report.DocumentScores},
	}

	var written []string
	for _, out := range outputs {
		if err := r.RenderJSON(out.value, out.path); err != nil {
			return written, err
		}
		written = append(written, out.path)
	}

	if r.writeAuditMD {
		path := filepath.Join(dir, AuditFile)
		if err := os.WriteFile(path, []byte(RenderAuditMarkdown(report)), 0644); err != nil {
			return written, fmt.Errorf("write %s: %w", AuditFile, err)
		}
		written = append(written, path)
	}

	return written, nil
}

// RenderJSON writes v as JSON to path
func (r *Renderer) RenderJSON(v any, path string) error {
	data, err := r.Encode(v)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return nil
}

// Encode encodes v the way every output file is encoded
func (r *Renderer) Encode(v any) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	if r.pretty {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		return nil, fmt.Errorf("marshal JSON: %w", err)
	}
	return append(data, '\n'), nil
}

// RenderSummary prints the one-screen result summary
func (r *Renderer) RenderSummary(w io.Writer, report *model.Report) {
	doc := report.DocumentScores
	verdict := "FAILED"
	if doc.SeriousnessGate.Passed {
		verdict = "PASSED"
	}

	fmt.Fprintf(w, "\n")
	fmt.Fprintf(w, "  Profile:          %s\n", doc.Profile)
	fmt.Fprintf(w, "  Claims:           %d\n", doc.ClaimCount)
	fmt.Fprintf(w, "  Mean final score: %.3f\n", doc.OverallClaimScoreMean)
	fmt.Fprintf(w, "  Geometric mean:   %.3f\n", doc.OverallClaimScoreGeomean)
	if doc.Headline != nil {
		fmt.Fprintf(w, "  Headline claim:   %s (by %s)\n", doc.Headline.ClaimID, doc.Headline.SelectedBy)
	}
	fmt.Fprintf(w, "  Seriousness gate: %s\n", verdict)
	if n := len(report.Readiness.Warnings); n > 0 {
		fmt.Fprintf(w, "  Warnings:         %d\n", n)
	}
	fmt.Fprintf(w, "\n")
}

// RenderAuditMarkdown renders the human-readable audit: gate, penalties,
// per-claim scores and readiness findings
func RenderAuditMarkdown(report *model.Report) string {
	var b strings.Builder
	doc := report.DocumentScores
	gate := doc.SeriousnessGate

	b.WriteString("# Evidentiary Scoring Audit\n\n")
	if report.Inputs.Title != "" {
		fmt.Fprintf(&b, "**Document:** %s\n\n", report.Inputs.Title)
	}
	fmt.Fprintf(&b, "**Profile:** %s  \n", doc.Profile)
	fmt.Fprintf(&b, "**Claims:** %d  \n", doc.ClaimCount)
	fmt.Fprintf(&b, "**Mean final score:** %.3f  \n", doc.OverallClaimScoreMean)
	fmt.Fprintf(&b, "**Geometric mean:** %.3f\n\n", doc.OverallClaimScoreGeomean)

	b.WriteString("## Seriousness Gate\n\n")
	b.WriteString("| Measure | Observed | Threshold |\n")
	b.WriteString("|---------|----------|-----------|\n")
	fmt.Fprintf(&b, "| Mean final score | %.3f | %.2f |\n", gate.Observed.MeanFinalScore, gate.Thresholds.MeanFinalScore)
	fmt.Fprintf(&b, "| Median credibility | %.3f | %.2f |\n", gate.Observed.MedianCredibility, gate.Thresholds.MedianCredibility)
	fmt.Fprintf(&b, "| Median corroboration | %.3f | %.2f |\n", gate.Observed.MedianCorroboration, gate.Thresholds.MedianCorroboration)
	if gate.Passed {
		b.WriteString("\n**Result:** passed\n\n")
	} else {
		b.WriteString("\n**Result:** failed\n\n")
	}

	b.WriteString("## Top Penalties\n\n")
	counts := penaltyCounts(report.ClaimScores)
	if len(counts) == 0 {
		b.WriteString("No penalties applied.\n\n")
	} else {
		b.WriteString("| Penalty | Claims |\n")
		b.WriteString("|---------|--------|\n")
		for _, c := range counts {
			fmt.Fprintf(&b, "| %s | %d |\n", c.name, c.count)
		}
		b.WriteString("\n")
	}

	b.WriteString("## Claims\n\n")
	if len(report.ClaimScores) == 0 {
		b.WriteString("No claims scored.\n\n")
	} else {
		b.WriteString("| Claim | Custody | Credibility | Corroboration | Final | Band | Penalties |\n")
		b.WriteString("|-------|---------|-------------|---------------|-------|------|-----------|\n")
		for _, cs := range report.ClaimScores {
			penalties := make([]string, 0, len(cs.Penalties))
			for _, p := range cs.Penalties {
				penalties = append(penalties, string(p))
			}
			fmt.Fprintf(&b, "| %s | %.3f | %.3f | %.3f | %.3f | %d | %s |\n",
				cs.ClaimID,
				cs.Core3C.ChainOfCustody.Score,
				cs.Core3C.Credibility.Score,
				cs.Core3C.Corroboration.Score,
				cs.FinalScore,
				cs.FinalBand,
				strings.Join(penalties, ", "),
			)
		}
		b.WriteString("\n")
	}

	b.WriteString("## Readiness Findings\n\n")
	if len(report.Readiness.Warnings) == 0 {
		b.WriteString("None.\n")
	} else {
		for _, f := range report.Readiness.Warnings {
			fmt.Fprintf(&b, "- `%s`: %s\n", f.Code, f.Message)
		}
	}

	return b.String()
}

type penaltyCount struct {
	name  model.PenaltyName
	count int
}

// penaltyCounts counts claims per penalty, most frequent first, ties by name
func penaltyCounts(scores []model.ClaimScore) []penaltyCount {
	byName := make(map[model.PenaltyName]int)
	for _, cs := range scores {
		for _, p := range cs.Penalties {
			byName[p]++
		}
	}
	counts := make([]penaltyCount, 0, len(byName))
	for name, n := range byName {
		counts = append(counts, penaltyCount{name: name, count: n})
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].count != counts[j].count {
			return counts[i].count > counts[j].count
		}
		return counts[i].name < counts[j].name
	})
	return counts
}
