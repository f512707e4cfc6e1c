package score

import (
	"math"

	"github.com/ppiankov/evidentia/internal/model"
	"github.com/ppiankov/evidentia/internal/util"
)

// Custody component weights; they sum to 1
const (
	weightProvenance   = 0.25
	weightTraceability = 0.20
	weightAnchors      = 0.15
	weightDisclosure   = 0.15
	weightAlignment    = 0.15
	weightProximity    = 0.10

	// componentFloor keeps one empty component from zeroing the composite
	componentFloor = 0.01
)

// Proximity tiers of a counter anchor relative to the claim's own anchors
const (
	tierDirect     = 1.00 // same page and block
	tierContextual = 0.75 // same page, same table or adjacent block
	tierLocal      = 0.50 // same page
	tierRemote     = 0.20
)

// custodyRates are the per-claim shares the custody axis is built from
type custodyRates struct {
	integrity float64
	context   float64
	lineage   float64
	tampering float64
	reports   float64
	traceable float64
	anchors   float64
}

func measureCustody(inputs []evidenceInput) custodyRates {
	var r custodyRates
	n := float64(len(inputs))
	if n == 0 {
		return r
	}
	for _, in := range inputs {
		m := in.Mention
		if util.NonEmpty(m.IntegrityControls) {
			r.integrity++
		}
		r.context += float64(m.CollectionContext.PopulatedFields()) / 5
		if util.NonEmpty(m.Transformations) || util.ContainsAny(m.Notes, lineageTerms) {
			r.lineage++
		}
		if util.NonEmpty(m.TamperingRisks) {
			r.tampering++
		}
		if reportDerivedKinds[in.Kind] {
			r.reports++
		}
		if len(in.Artifacts) > 0 {
			r.traceable++
		}
		r.anchors += math.Min(float64(len(in.Anchors)), 2) / 2
	}
	r.integrity /= n
	r.context /= n
	r.lineage /= n
	r.tampering /= n
	r.reports /= n
	r.traceable /= n
	r.anchors /= n
	return r
}

// chainOfCustody scores the claim's custody axis and its breakdown
func chainOfCustody(claim *model.Claim, inputs []evidenceInput) (float64, model.CustodyDiagnostics) {
	r := measureCustody(inputs)
	counters := counterAnchors(inputs)

	d := model.CustodyDiagnostics{
		ProvenanceQuality:      0.40*r.integrity + 0.35*r.context + 0.25*r.lineage,
		ArtifactTraceability:   r.traceable,
		AnchorQuality:          r.anchors,
		ChainDisclosureQuality: disclosure(claim, inputs, r),
	}

	switch {
	case len(inputs) == 0:
		d.ClaimAnchorAlignment = 0
		d.ArtifactProximityHierarchy = 0
	case len(counters) == 0:
		d.ClaimAnchorAlignment = 0.50
		d.ArtifactProximityHierarchy = 0.50
	default:
		d.ClaimAnchorAlignment = alignment(claim.Anchors, counters)
		d.ArtifactProximityHierarchy = proximity(claim.Anchors, counters)
	}

	d.GeometricComposite = weightedGeometric(
		[]float64{d.ProvenanceQuality, d.ArtifactTraceability, d.AnchorQuality, d.ChainDisclosureQuality, d.ClaimAnchorAlignment, d.ArtifactProximityHierarchy},
		[]float64{weightProvenance, weightTraceability, weightAnchors, weightDisclosure, weightAlignment, weightProximity},
	)

	d.IntegrityMultiplier = 0.70 + 0.30*r.integrity
	d.ContextMultiplier = 0.75 + 0.25*r.context
	d.LineageMultiplier = 0.80 + 0.20*r.lineage
	d.ReportDerivationMultiplier = 1 - 0.25*r.reports
	d.ProximityMultiplier = 0.70 + 0.30*d.ArtifactProximityHierarchy

	if len(inputs) == 0 {
		return 0, d
	}

	score := d.GeometricComposite *
		d.IntegrityMultiplier *
		d.ContextMultiplier *
		d.LineageMultiplier *
		d.ReportDerivationMultiplier *
		d.ProximityMultiplier
	return util.Clamp01(score), d
}

// disclosure weighs limitations highest, then transformations, then tampering
func disclosure(claim *model.Claim, inputs []evidenceInput, r custodyRates) float64 {
	v := 0.25 * r.tampering
	if util.NonEmpty(claim.Limitations()) {
		v += 0.45
	}
	transformed := util.NonEmpty(claim.Transformations())
	for _, in := range inputs {
		transformed = transformed || util.NonEmpty(in.Mention.Transformations)
	}
	if transformed {
		v += 0.30
	}
	return v
}

func weightedGeometric(values, weights []float64) float64 {
	logSum := 0.0
	for i, v := range values {
		logSum += weights[i] * math.Log(math.Max(util.Clamp01(v), componentFloor))
	}
	return util.Clamp01(math.Exp(logSum))
}

// counterAnchors is the de-duplicated union of the evidence items' anchors
func counterAnchors(inputs []evidenceInput) []model.Location {
	var out []model.Location
	seen := make(map[model.Location]bool)
	for _, in := range inputs {
		for _, a := range in.Anchors {
			if !seen[a] {
				seen[a] = true
				out = append(out, a)
			}
		}
	}
	return out
}

// alignment is the share of counter anchors that sit exactly on a claim anchor
func alignment(claimAnchors, counters []model.Location) float64 {
	matched := 0
	for _, c := range counters {
		for _, a := range claimAnchors {
			if c.Page == a.Page && c.Block == a.Block && c.TableID == a.TableID {
				matched++
				break
			}
		}
	}
	return float64(matched) / float64(len(counters))
}

// proximity is the mean tier of counter anchors, each taking its best tier
// against any claim anchor
func proximity(claimAnchors, counters []model.Location) float64 {
	total := 0.0
	for _, c := range counters {
		best := tierRemote
		for _, a := range claimAnchors {
			best = math.Max(best, tierOf(a, c))
		}
		total += best
	}
	return total / float64(len(counters))
}

func tierOf(claim, counter model.Location) float64 {
	if claim.Page != counter.Page {
		return tierRemote
	}
	switch {
	case claim.Block == counter.Block:
		return tierDirect
	case claim.TableID != "" && claim.TableID == counter.TableID:
		return tierContextual
	case abs(claim.Block-counter.Block) <= 1:
		return tierContextual
	}
	return tierLocal
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
