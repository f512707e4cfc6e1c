package score

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/ppiankov/evidentia/internal/model"
	"github.com/ppiankov/evidentia/internal/normalize"
	"github.com/ppiankov/evidentia/internal/profile"
)

// Input is a normalized document that has passed the readiness gate
type Input struct {
	Sources         *normalize.SourceRegistry
	Artifacts       *normalize.ArtifactRegistry
	Citations       *normalize.CitationIndex
	Claims          []model.Claim
	Audit           *model.ConsistencyAudit
	PublicationDate string
}

// Result holds everything scoring produced
type Result struct {
	Evidence    []model.EvidenceItem
	ClaimScores []model.ClaimScore
	Document    model.DocumentScore
}

// Scorer scores every claim of a document under one profile
type Scorer struct {
	profile profile.Profile
	workers int
}

// NewScorer creates a scorer. Workers bounds parallel claim scoring;
// the output does not depend on it.
func NewScorer(p profile.Profile, workers int) *Scorer {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Scorer{profile: p, workers: workers}
}

// Profile returns the profile the scorer was built with
func (s *Scorer) Profile() profile.Profile {
	return s.profile
}

// Score runs feature, claim and document scoring
func (s *Scorer) Score(ctx context.Context, in Input) (*Result, error) {
	claimScorer := &ClaimScorer{
		profile:     s.profile,
		features:    NewFeatureScorer(s.profile, in.PublicationDate),
		citationIDs: in.Citations.CitationIDsFor,
		recovered:   in.Audit.RecoveredIndices(),
	}

	// 1. Evidence ids are assigned in one sequential pass, claim order then
	// evidence order, before anything runs in parallel
	jobs := prepare(in)

	// 2. Claims share no mutable state, so they score in parallel
	evidence := make([][]model.EvidenceItem, len(jobs))
	scores := make([]model.ClaimScore, len(jobs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i := range jobs {
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			evidence[i], scores[i] = claimScorer.score(jobs[i])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("score claims: %w", err)
	}

	// 3. Aggregate
	result := &Result{
		Evidence:    []model.EvidenceItem{},
		ClaimScores: scores,
		Document:    Aggregate(s.profile, scores),
	}
	for _, items := range evidence {
		result.Evidence = append(result.Evidence, items...)
	}

	for _, id := range result.Document.SingleSourcedSourceIDs {
		if src, ok := in.Sources.Get(id); ok {
			src.IsSingleSource = true
		}
	}

	return result, nil
}

// prepare resolves every claim's evidence references and numbers the items
func prepare(in Input) []claimJob {
	jobs := make([]claimJob, 0, len(in.Claims))
	counter := 0

	for ci := range in.Claims {
		claim := &in.Claims[ci]
		job := claimJob{claim: claim}
		seenSources := make(map[string]bool)

		for _, m := range claim.Evidence() {
			counter++
			ev := evidenceInput{
				ID:      fmt.Sprintf("E%03d", counter),
				Claim:   claim,
				Mention: m,
				Kind:    normalizeKind(m.Kind),
			}
			for _, id := range m.SourceIDs {
				if src, ok := in.Sources.Get(id); ok {
					ev.Sources = append(ev.Sources, src)
					if !seenSources[id] {
						seenSources[id] = true
						job.sources = append(job.sources, src)
					}
				}
			}
			for _, id := range m.ArtifactIDs {
				if a, ok := in.Artifacts.Get(id); ok {
					ev.Artifacts = append(ev.Artifacts, a)
				}
			}
			ev.Anchors = evidenceAnchors(m, ev.Artifacts)
			job.inputs = append(job.inputs, ev)
		}

		for _, id := range normalize.CredibilitySourceIDs(*claim) {
			if src, ok := in.Sources.Get(id); ok && !seenSources[id] {
				seenSources[id] = true
				job.sources = append(job.sources, src)
			}
		}

		jobs = append(jobs, job)
	}

	return jobs
}

// evidenceAnchors uses the item's own anchors, else its artifacts' locations
func evidenceAnchors(m model.EvidenceMention, artifacts []*model.Artifact) []model.Location {
	if len(m.Anchors) > 0 {
		return append([]model.Location(nil), m.Anchors...)
	}
	var anchors []model.Location
	seen := make(map[model.Location]bool)
	for _, a := range artifacts {
		if a.HasAnchor() && !seen[*a.Location] {
			seen[*a.Location] = true
			anchors = append(anchors, *a.Location)
		}
	}
	return anchors
}
