package score

import (
	"github.com/ppiankov/evidentia/internal/model"
	"github.com/ppiankov/evidentia/internal/profile"
	"github.com/ppiankov/evidentia/internal/util"
)

// singleOriginDamping applies when several sources trace back to one origin
const singleOriginDamping = 0.90

// credibility blends tiered source independence with the claim's own discipline
func credibility(p profile.Profile, claim *model.Claim, sources []*model.Source) (float64, model.CredibilityDiagnostics) {
	var d model.CredibilityDiagnostics

	tiers := make([]float64, 0, len(sources))
	for _, src := range sources {
		v := p.HierarchyFor(src.Kind)
		if src.LitigationPrepared {
			v += 0.04
		}
		if src.StatedConflict {
			v -= 0.12
		}
		if src.CountervailingDetail {
			v += 0.06
		}
		tiers = append(tiers, util.Clamp01(v))
	}
	d.SourceIndependence = util.Mean(tiers)

	d.ClaimDiscipline = util.Mean([]float64{
		util.Clamp01(claim.CoherenceScore()),
		util.Clamp01(claim.ConfidenceScore()),
		util.Clamp01(claim.ComplianceScore()),
	})

	score := p.Credibility.Independence*d.SourceIndependence + p.Credibility.Discipline*d.ClaimDiscipline
	if len(sources) >= 2 && distinctOrigins(sources) == 1 {
		score *= singleOriginDamping
		d.SingleOriginDamped = true
	}

	return util.Clamp01(score), d
}
