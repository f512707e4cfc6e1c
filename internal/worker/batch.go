package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/ppiankov/evidentia/internal/model"
	"github.com/ppiankov/evidentia/internal/pipeline"
)

// DocumentScorer scores one extraction file with an optional consistency audit
type DocumentScorer interface {
	ScoreFile(ctx context.Context, inputPath, auditPath string) (*pipeline.ScoreResult, error)
}

// Document names one batch entry: an extraction and its optional audit
type Document struct {
	Input string
	Audit string
}

// ScoreJob scores a single document
type ScoreJob struct {
	Document Document
	Scorer   DocumentScorer
}

// Execute executes the score job
func (j *ScoreJob) Execute(ctx context.Context) Result {
	if err := ctx.Err(); err != nil {
		return &ScoreResult{Document: j.Document, Error: err}
	}
	result, err := j.Scorer.ScoreFile(ctx, j.Document.Input, j.Document.Audit)
	if err != nil {
		return &ScoreResult{Document: j.Document, Error: err}
	}
	return &ScoreResult{
		Document: j.Document,
		Report:   result.Report,
		Cached:   result.Cached,
	}
}

// ScoreResult represents the result of a score job
type ScoreResult struct {
	Document Document
	Report   *model.Report
	Cached   bool
	Error    error
}

// GetError returns the error from the score result
func (r *ScoreResult) GetError() error {
	return r.Error
}

// BatchProcessor scores multiple documents concurrently
type BatchProcessor struct {
	scorer      DocumentScorer
	concurrency int
}

// NewBatchProcessor creates a new batch processor
func NewBatchProcessor(scorer DocumentScorer, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		scorer:      scorer,
		concurrency: concurrency,
	}
}

// ProcessDocuments scores every document and returns one result per entry,
// in the order given
func (b *BatchProcessor) ProcessDocuments(ctx context.Context, docs []Document) []*ScoreResult {
	if len(docs) == 0 {
		return []*ScoreResult{}
	}

	pool := NewPool(ctx, b.concurrency)
	pool.Start()

	for _, doc := range docs {
		pool.Submit(&ScoreJob{Document: doc, Scorer: b.scorer})
	}

	results := pool.Wait()

	out := make([]*ScoreResult, len(results))
	for i, result := range results {
		if r, ok := result.(*ScoreResult); ok {
			out[i] = r
			continue
		}
		// Never picked up before cancellation
		err := ctx.Err()
		if err == nil {
			err = context.Canceled
		}
		out[i] = &ScoreResult{Document: docs[i], Error: err}
	}

	return out
}

// ProcessFile reads a document list and scores every entry
func (b *BatchProcessor) ProcessFile(ctx context.Context, listPath string) ([]*ScoreResult, error) {
	docs, err := ReadDocumentList(listPath)
	if err != nil {
		return nil, fmt.Errorf("read document list: %w", err)
	}

	return b.ProcessDocuments(ctx, docs), nil
}

// ReadDocumentList reads one "input[,audit]" entry per line. Blank lines and
// lines starting with # are skipped; repeated entries are dropped.
func ReadDocumentList(listPath string) ([]Document, error) {
	file, err := os.Open(listPath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var docs []Document
	seen := make(map[Document]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		input, audit, _ := strings.Cut(line, ",")
		doc := Document{
			Input: strings.TrimSpace(input),
			Audit: strings.TrimSpace(audit),
		}
		if doc.Input == "" || seen[doc] {
			continue
		}
		seen[doc] = true
		docs = append(docs, doc)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return docs, nil
}
