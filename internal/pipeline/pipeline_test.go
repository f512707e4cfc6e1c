package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ppiankov/evidentia/internal/cache"
	"github.com/ppiankov/evidentia/internal/model"
	"github.com/ppiankov/evidentia/internal/validate"
)

func testConfig(profileName string, workers int) *model.Config {
	cfg := model.DefaultConfig()
	cfg.Profile = profileName
	cfg.Scoring.Workers = workers
	return cfg
}

func scoreAndRender(t *testing.T, cfg *model.Config, outDir string) *model.Report {
	t.Helper()
	p := NewPipeline(cfg, zap.NewNop())
	result, err := p.ScoreFile(context.Background(), "testdata/report.json", "")
	require.NoError(t, err)
	require.NoError(t, p.RenderReport(result.Report, filepath.Join(outDir, "scoring_report.json")))
	return result.Report
}

func TestScoreFile_Report(t *testing.T) {
	report := scoreAndRender(t, testConfig("balanced", 4), t.TempDir())

	assert.Equal(t, "balanced", report.Inputs.Profile)
	assert.Equal(t, "2024-06-01", report.Inputs.PublicationDate)
	assert.True(t, report.Readiness.Passed)
	assert.NotNil(t, report.Readiness.Warnings)

	require.Len(t, report.Evidence, 3)
	assert.Equal(t, "E001", report.Evidence[0].ID)
	assert.Equal(t, "C1", report.Evidence[0].ClaimID)
	assert.Equal(t, "E003", report.Evidence[2].ID)
	assert.Equal(t, "C2", report.Evidence[2].ClaimID)

	require.Len(t, report.ClaimScores, 2)
	require.Len(t, report.Claims, 2)
	assert.Equal(t, []string{"E001", "E002"}, report.Claims[0].EvidenceIDs)
	for _, cs := range report.ClaimScores {
		assert.GreaterOrEqual(t, cs.FinalScore, 0.0)
		assert.LessOrEqual(t, cs.FinalScore, 1.0)
	}

	doc := report.DocumentScores
	assert.Equal(t, 2, doc.ClaimCount)
	require.NotNil(t, doc.Headline)
	assert.Equal(t, "C1", doc.Headline.ClaimID)

	// S3 carries no kind; its reuters.com domain infers media
	var s3 *model.Source
	for _, src := range report.Sources {
		if src.ID == "S3" {
			s3 = src
		}
	}
	require.NotNil(t, s3)
	assert.Equal(t, model.KindMedia, s3.Kind)
	assert.True(t, s3.KindInferred)
}

func TestScoreFile_WritesDerivedFiles(t *testing.T) {
	dir := t.TempDir()
	scoreAndRender(t, testConfig("strict", 2), dir)

	for _, name := range []string{"scoring_report.json", ClaimScoresFile, EvidenceWeightsFile, DocumentScoresFile, AuditFile} {
		info, err := os.Stat(filepath.Join(dir, name))
		require.NoError(t, err, name)
		assert.NotZero(t, info.Size(), name)
	}

	audit, err := os.ReadFile(filepath.Join(dir, AuditFile))
	require.NoError(t, err)
	assert.Contains(t, string(audit), "strict")
}

func TestScoreFile_NoAuditMarkdown(t *testing.T) {
	cfg := testConfig("balanced", 1)
	cfg.Output.WriteAuditMD = false
	dir := t.TempDir()
	scoreAndRender(t, cfg, dir)

	_, err := os.Stat(filepath.Join(dir, AuditFile))
	assert.True(t, os.IsNotExist(err))
}

func TestScoreFile_Deterministic(t *testing.T) {
	first, second := t.TempDir(), t.TempDir()
	scoreAndRender(t, testConfig("permissive", 1), first)
	scoreAndRender(t, testConfig("permissive", 8), second)

	for _, name := range []string{"scoring_report.json", ClaimScoresFile, EvidenceWeightsFile, DocumentScoresFile, AuditFile} {
		a, err := os.ReadFile(filepath.Join(first, name))
		require.NoError(t, err)
		b, err := os.ReadFile(filepath.Join(second, name))
		require.NoError(t, err)
		assert.Equal(t, string(a), string(b), "%s differs between runs", name)
	}
}

func TestScoreFile_ReadinessFailureWritesNothing(t *testing.T) {
	p := NewPipeline(testConfig("balanced", 1), zap.NewNop())

	result, err := p.ScoreFile(context.Background(), "testdata/unresolved.json", "")
	require.Error(t, err)
	assert.Nil(t, result)

	var readiness *validate.ReadinessError
	require.True(t, errors.As(err, &readiness))
	assert.Equal(t, []string{"unresolved citation fn-12 on page 1"}, readiness.Fatal)
}

func TestScoreFile_AuditRecoversCitations(t *testing.T) {
	p := NewPipeline(testConfig("balanced", 1), zap.NewNop())

	result, err := p.ScoreFile(context.Background(), "testdata/unresolved.json", "testdata/unresolved_audit.json")
	require.NoError(t, err)

	codes := make([]string, 0, len(result.Report.Readiness.Warnings))
	for _, f := range result.Report.Readiness.Warnings {
		codes = append(codes, f.Code)
	}
	assert.Equal(t, []string{validate.CodeCitationRecovered, validate.CodeNoClaims}, codes)
	assert.Equal(t, 0, result.Report.DocumentScores.ClaimCount)
	assert.Empty(t, result.Report.ClaimScores)
	assert.Equal(t, "testdata/unresolved_audit.json", result.Report.Inputs.ConsistencyAuditPath)
}

func TestScoreFile_StructuralError(t *testing.T) {
	p := NewPipeline(testConfig("balanced", 1), zap.NewNop())

	_, err := p.ScoreFile(context.Background(), "testdata/missing_coherence.json", "")
	require.Error(t, err)

	var structural *model.StructuralError
	require.True(t, errors.As(err, &structural))
	assert.Equal(t, "stage2.attribution_claims[0].six_c.coherence", structural.Path)

	var readiness *validate.ReadinessError
	assert.False(t, errors.As(err, &readiness))
}

func TestScoreFile_MissingInput(t *testing.T) {
	p := NewPipeline(testConfig("balanced", 1), zap.NewNop())

	_, err := p.ScoreFile(context.Background(), "testdata/does-not-exist.json", "")
	assert.ErrorContains(t, err, "read input")
}

func TestScoreFile_Cache(t *testing.T) {
	c := cache.NewMemoryCache(0, 0)
	p := NewPipeline(testConfig("balanced", 2), zap.NewNop()).WithCache(c)

	first, err := p.ScoreFile(context.Background(), "testdata/report.json", "")
	require.NoError(t, err)
	assert.False(t, first.Cached)

	second, err := p.ScoreFile(context.Background(), "testdata/report.json", "")
	require.NoError(t, err)
	assert.True(t, second.Cached)

	a, err := p.Renderer().Encode(first.Report)
	require.NoError(t, err)
	b, err := p.Renderer().Encode(second.Report)
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))

	// A different profile never reuses the balanced report
	strict := NewPipeline(testConfig("strict", 2), zap.NewNop()).WithCache(c)
	third, err := strict.ScoreFile(context.Background(), "testdata/report.json", "")
	require.NoError(t, err)
	assert.False(t, third.Cached)
	assert.Equal(t, "strict", third.Report.Inputs.Profile)
}

func TestDecodeDocument_TypeMismatch(t *testing.T) {
	_, err := DecodeDocument([]byte(`{"document_metadata": {"publication_date": 2024}}`))
	assert.ErrorContains(t, err, "decode document")
}

func TestDecodeAudit_Empty(t *testing.T) {
	audit, err := DecodeAudit(nil)
	require.NoError(t, err)
	assert.Nil(t, audit)
}
