package pipeline

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/ppiankov/evidentia/internal/cache"
	"github.com/ppiankov/evidentia/internal/model"
	"github.com/ppiankov/evidentia/internal/normalize"
	"github.com/ppiankov/evidentia/internal/profile"
	"github.com/ppiankov/evidentia/internal/score"
	"github.com/ppiankov/evidentia/internal/validate"
)

// Pipeline runs load → normalize → readiness → score → aggregate for one document
type Pipeline struct {
	normalizer *normalize.SourceNormalizer
	scorer     *score.Scorer
	renderer   *Renderer
	cache      cache.Cache // optional
	logger     *zap.Logger
	config     *model.Config
}

// NewPipeline creates a pipeline for the configured profile
func NewPipeline(cfg *model.Config, logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{
		normalizer: normalize.NewSourceNormalizer(normalize.NewKindClassifier(&cfg.Kinds)),
		scorer:     score.NewScorer(profile.Resolve(cfg.Profile), cfg.Scoring.Workers),
		renderer:   NewRenderer(cfg.Output.Pretty, cfg.Output.WriteAuditMD),
		logger:     logger,
		config:     cfg,
	}
}

// WithCache makes ScoreFile reuse reports for identical input and profile
func (p *Pipeline) WithCache(c cache.Cache) *Pipeline {
	p.cache = c
	return p
}

// Renderer returns the pipeline's renderer
func (p *Pipeline) Renderer() *Renderer {
	return p.renderer
}

// ScoreResult contains the complete scoring result
type ScoreResult struct {
	Report *model.Report
	Cached bool
}

// ScoreFile reads the input and optional audit from disk and scores them
func (p *Pipeline) ScoreFile(ctx context.Context, inputPath, auditPath string) (*ScoreResult, error) {
	docData, auditData, err := readInputs(inputPath, auditPath)
	if err != nil {
		return nil, err
	}

	profileName := p.scorer.Profile().Name
	key := cache.CacheKey(profileName, docData, auditData)
	if p.cache != nil {
		if cached, ok := p.cache.Get(key); ok {
			var report model.Report
			if err := json.Unmarshal(cached, &report); err == nil {
				p.logger.Debug("cache hit", zap.String("input", inputPath), zap.String("profile", profileName))
				report.Inputs.InputPath = inputPath
				report.Inputs.ConsistencyAuditPath = auditPath
				return &ScoreResult{Report: &report, Cached: true}, nil
			}
		}
	}

	doc, err := DecodeDocument(docData)
	if err != nil {
		return nil, fmt.Errorf("load input: %w", err)
	}
	audit, err := DecodeAudit(auditData)
	if err != nil {
		return nil, fmt.Errorf("load input: %w", err)
	}

	report, err := p.Score(ctx, doc, audit, model.ReportInputs{
		InputPath:            inputPath,
		ConsistencyAuditPath: auditPath,
	})
	if err != nil {
		return nil, err
	}

	if p.cache != nil {
		if data, err := json.Marshal(report); err == nil {
			if err := p.cache.Set(key, data, p.config.Cache.TTL); err != nil {
				p.logger.Warn("cache write failed", zap.Error(err))
			}
		}
	}

	return &ScoreResult{Report: report}, nil
}

// Score runs every stage on an already decoded document. A readiness
// failure is returned as *validate.ReadinessError and nothing is scored.
func (p *Pipeline) Score(ctx context.Context, doc *model.Document, audit *model.ConsistencyAudit, inputs model.ReportInputs) (*model.Report, error) {
	// 1. Normalize
	sources := p.normalizer.Normalize(doc)
	artifacts := normalize.NormalizeArtifacts(doc)
	citations := normalize.IndexCitations(doc)
	claims := doc.Claims()
	p.logger.Debug("normalized sources",
		zap.Int("sources", sources.Len()),
		zap.Int("artifacts", len(artifacts.Order)),
		zap.Int("citations", len(citations.All)),
		zap.Int("claims", len(claims)),
	)

	// 2. Readiness gate
	findings, err := validate.Readiness(validate.Graph{
		Sources:   sources,
		Artifacts: artifacts,
		Citations: citations,
		Claims:    claims,
		Audit:     audit,
	})
	if err != nil {
		return nil, err
	}
	p.logger.Debug("readiness gate passed", zap.Int("warnings", len(findings)))
	for _, f := range findings {
		p.logger.Warn("readiness finding", zap.String("code", f.Code), zap.String("message", f.Message))
	}

	// 3. Score claims and aggregate
	result, err := p.scorer.Score(ctx, score.Input{
		Sources:         sources,
		Artifacts:       artifacts,
		Citations:       citations,
		Claims:          claims,
		Audit:           audit,
		PublicationDate: doc.PublicationDateString(),
	})
	if err != nil {
		return nil, err
	}
	for _, cs := range result.ClaimScores {
		p.logger.Debug("scored claim",
			zap.String("claim_id", cs.ClaimID),
			zap.Float64("final_score", cs.FinalScore),
			zap.Any("penalties", cs.Penalties),
		)
	}

	// 4. Assemble the report
	inputs.Profile = p.scorer.Profile().Name
	inputs.PublicationDate = doc.PublicationDateString()
	inputs.Title = doc.Metadata.Title

	return &model.Report{
		Inputs:         inputs,
		Readiness:      model.Readiness{Passed: true, Warnings: findings},
		Sources:        sources.All(),
		Artifacts:      artifacts.All(),
		Evidence:       result.Evidence,
		Claims:         summarize(claims, result.ClaimScores),
		ClaimScores:    result.ClaimScores,
		DocumentScores: result.Document,
		Principles:     model.DefaultPrinciples(),
	}, nil
}

// RenderReport writes the report and its derived files next to outputPath
func (p *Pipeline) RenderReport(report *model.Report, outputPath string) error {
	written, err := p.renderer.RenderAll(report, outputPath)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	for _, path := range written {
		p.logger.Info("wrote output", zap.String("path", path))
	}
	return nil
}

func summarize(claims []model.Claim, scores []model.ClaimScore) []model.ClaimSummary {
	out := make([]model.ClaimSummary, 0, len(claims))
	for i, c := range claims {
		anchors := c.Anchors
		if anchors == nil {
			anchors = []model.Location{}
		}
		out = append(out, model.ClaimSummary{
			ID:           c.ID,
			Type:         scores[i].ClaimType,
			Statement:    c.Statement,
			Actor:        c.Actor,
			Object:       c.Object,
			SalienceRank: c.SalienceRank,
			Anchors:      anchors,
			EvidenceIDs:  scores[i].EvidenceIDs,
		})
	}
	return out
}
