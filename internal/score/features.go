package score

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/ppiankov/evidentia/internal/model"
	"github.com/ppiankov/evidentia/internal/profile"
	"github.com/ppiankov/evidentia/internal/util"
)

// evidenceInput is one evidence mention with its references resolved
type evidenceInput struct {
	ID        string
	Claim     *model.Claim
	Mention   model.EvidenceMention
	Kind      string
	Sources   []*model.Source
	Artifacts []*model.Artifact
	Anchors   []model.Location
}

// longNotes is the note length that counts as a substantive method write-up
const longNotes = 160

// FeatureScorer computes the five per-evidence factors under one profile
type FeatureScorer struct {
	profile      profile.Profile
	published    time.Time
	hasPublished bool
}

// NewFeatureScorer creates a feature scorer. An unparseable or empty
// publication date leaves temporal scoring without that reference.
func NewFeatureScorer(p profile.Profile, publicationDate string) *FeatureScorer {
	published, ok := util.ParseDate(publicationDate)
	return &FeatureScorer{profile: p, published: published, hasPublished: ok}
}

// Score returns the item's features and the independence branch used
func (f *FeatureScorer) Score(in evidenceInput) (model.Features, model.IndependenceBranch) {
	independence, branch := f.independence(in)
	return model.Features{
		Independence:   independence,
		Authentication: f.authentication(in),
		Method:         f.method(in),
		Procedural:     f.procedural(in),
		Temporal:       f.temporal(in),
	}, branch
}

// sourceIndependence is one source's independence under the kind base table
func (f *FeatureScorer) sourceIndependence(src *model.Source) float64 {
	v := f.profile.KindBaseFor(src.Kind)
	if src.LitigationPrepared {
		v += 0.05
	}
	if src.StatedConflict {
		v -= 0.15
	}
	if src.CountervailingDetail {
		v += 0.08
	}
	return util.Clamp01(v)
}

func (f *FeatureScorer) independence(in evidenceInput) (float64, model.IndependenceBranch) {
	bias := f.profile.Bias.I
	m := in.Mention

	if len(in.Sources) == 0 {
		if !isTechnicalKind(in.Kind) {
			return util.Clamp01(0.5*f.profile.KindBaseFor(model.KindUnknown) + bias), model.BranchUnsourced
		}

		v := 0.50 + 0.05*float64(m.CollectionContext.PopulatedFields())
		if util.NonEmpty(m.IntegrityControls) {
			v += 0.10
		}
		v += anchorBonus(len(in.Anchors), 0.05, 0.10)
		if util.ContainsAny(m.Notes, crossValidationTerms) {
			v += 0.10
		}
		return util.Clamp01(v + bias), model.BranchTechnicalNoSource
	}

	scores := make([]float64, 0, len(in.Sources))
	for _, src := range in.Sources {
		scores = append(scores, f.sourceIndependence(src))
	}
	v := util.Mean(scores)

	origins := distinctOrigins(in.Sources)
	if origins > 1 {
		v += 0.06 * math.Min(float64(origins-1), 2)
	}
	if distinctKinds(in.Sources) >= 2 {
		v += 0.05
	}
	if len(in.Sources) == 1 {
		v -= 0.10
	}
	if len(in.Sources) >= 2 && origins == 1 {
		v -= 0.12
	}
	return util.Clamp01(v + bias), model.BranchHumanSource
}

func (f *FeatureScorer) authentication(in evidenceInput) float64 {
	m := in.Mention
	v := 0.30 + 0.04*float64(m.CollectionContext.PopulatedFields())
	v += anchorBonus(len(in.Artifacts), 0.08, 0.15)
	if util.NonEmpty(m.IntegrityControls) {
		v += 0.15
	}
	if util.NonEmpty(m.Transformations) || util.ContainsAny(m.Notes, lineageTerms) {
		v += 0.08
	}
	v += anchorBonus(len(in.Anchors), 0.05, 0.10)
	if util.NonEmpty(m.TamperingRisks) {
		v += 0.05
	}
	if hasHighTrust(in.Sources) {
		v += 0.07
	}
	return util.Clamp01(v + f.profile.Bias.A)
}

func (f *FeatureScorer) method(in evidenceInput) float64 {
	m := in.Mention
	v := methodBaseFor(in.Kind)
	if len(in.Artifacts) >= 2 {
		v += 0.06
	}
	if len(strings.TrimSpace(m.Notes)) >= longNotes {
		v += 0.04
	}
	if util.ContainsAny(m.Notes, methodTerms) {
		v += 0.05
	}
	if util.ContainsAny(m.Notes, caveatTerms) {
		v += 0.04
	}
	return util.Clamp01(v + f.profile.Bias.M)
}

func (f *FeatureScorer) procedural(in evidenceInput) float64 {
	m := in.Mention
	v := 0.30
	if util.NonEmpty(m.IntegrityControls) {
		v += 0.14
	}
	if util.NonEmpty(m.TamperingRisks) {
		v += 0.08
	}
	if distinctOrigins(in.Sources) >= 2 {
		v += 0.14
	}
	if distinctKinds(in.Sources) >= 2 {
		v += 0.08
	}
	if len(in.Anchors) >= 2 {
		v += 0.08
	}
	if in.Claim != nil && util.NonEmpty(in.Claim.AlternativeHypotheses()) {
		v += 0.12
	}
	if util.ContainsAny(m.Notes, crossValidationTerms) {
		v += 0.10
	}
	return util.Clamp01(v + f.profile.Bias.P)
}

func (f *FeatureScorer) temporal(in evidenceInput) float64 {
	var dates []time.Time
	for _, src := range in.Sources {
		if t, ok := util.ParseDate(src.Date); ok {
			dates = append(dates, t)
		}
	}
	if ctx := in.Mention.CollectionContext; ctx != nil {
		if t, ok := util.ParseDate(ctx.CollectedAt); ok {
			dates = append(dates, t)
		}
	}

	var v float64
	if len(dates) > 0 {
		start, end, hasRange := claimRange(in.Claim)
		switch {
		case hasRange:
			nearest := math.Inf(1)
			for _, d := range dates {
				nearest = math.Min(nearest, util.DaysOutsideRange(d, start, end))
			}
			v = distanceBand(nearest, [5]float64{1.00, 0.85, 0.72, 0.60, 0.45})
		case f.hasPublished:
			nearest := math.Inf(1)
			for _, d := range dates {
				nearest = math.Min(nearest, util.DaysBetween(d, f.published))
			}
			v = distanceBand(nearest, [5]float64{0.92, 0.80, 0.68, 0.56, 0.42})
		default:
			v = 0.55
		}
		if hasHighTrust(in.Sources) {
			v += 0.05
		}
	} else {
		v = yearSpreadScore(sourceYears(in.Sources))
	}

	return util.Clamp01(v + f.profile.Bias.T)
}

// distanceBand maps a distance in days onto the ≤30/180/365/730/beyond tiers
func distanceBand(days float64, tiers [5]float64) float64 {
	switch {
	case days <= 30:
		return tiers[0]
	case days <= 180:
		return tiers[1]
	case days <= 365:
		return tiers[2]
	case days <= 730:
		return tiers[3]
	default:
		return tiers[4]
	}
}

func yearSpreadScore(years []int) float64 {
	if len(years) == 0 {
		return 0.50
	}
	lo, hi := years[0], years[0]
	for _, y := range years[1:] {
		lo = min(lo, y)
		hi = max(hi, y)
	}
	switch spread := hi - lo; {
	case spread == 0:
		return 0.60
	case spread <= 1:
		return 0.55
	case spread <= 3:
		return 0.50
	default:
		return 0.42
	}
}

// sourceYears collects publication years: the explicit year, else a bare
// four-digit date
func sourceYears(sources []*model.Source) []int {
	var years []int
	for _, src := range sources {
		if src.Year > 0 {
			years = append(years, src.Year)
			continue
		}
		if d := strings.TrimSpace(src.Date); len(d) == 4 {
			if y, err := strconv.Atoi(d); err == nil && y > 0 {
				years = append(years, y)
			}
		}
	}
	return years
}

// claimRange parses the claim's time range. A single parseable bound is
// used for both ends.
func claimRange(claim *model.Claim) (time.Time, time.Time, bool) {
	if claim == nil || claim.TimeRange == nil {
		return time.Time{}, time.Time{}, false
	}
	start, okStart := util.ParseDate(claim.TimeRange.Start)
	end, okEnd := util.ParseDate(claim.TimeRange.End)
	switch {
	case okStart && okEnd:
		return start, end, true
	case okStart:
		return start, start, true
	case okEnd:
		return end, end, true
	}
	return time.Time{}, time.Time{}, false
}

// anchorBonus pays one for a single item and two for two or more
func anchorBonus(n int, one, twoPlus float64) float64 {
	switch {
	case n >= 2:
		return twoPlus
	case n == 1:
		return one
	}
	return 0
}

func distinctOrigins(sources []*model.Source) int {
	seen := make(map[string]bool)
	for _, src := range sources {
		seen[src.OriginKey()] = true
	}
	return len(seen)
}

func distinctKinds(sources []*model.Source) int {
	seen := make(map[model.SourceKind]bool)
	for _, src := range sources {
		seen[src.Kind] = true
	}
	return len(seen)
}

func hasHighTrust(sources []*model.Source) bool {
	for _, src := range sources {
		if src.Kind.IsHighTrust() {
			return true
		}
	}
	return false
}
