package score

import (
	"math"
	"sort"
	"strings"

	"github.com/ppiankov/evidentia/internal/model"
	"github.com/ppiankov/evidentia/internal/profile"
	"github.com/ppiankov/evidentia/internal/util"
)

// claimJob is one claim with evidence ids assigned and references resolved
type claimJob struct {
	claim   *model.Claim
	inputs  []evidenceInput
	sources []*model.Source // evidence sources then credibility sources, first-seen order
}

// ClaimScorer turns one claim's evidence into its axis scores and final score
type ClaimScorer struct {
	profile     profile.Profile
	features    *FeatureScorer
	citationIDs func(sourceIDs []string) []string
	recovered   []int
}

func (c *ClaimScorer) score(job claimJob) ([]model.EvidenceItem, model.ClaimScore) {
	claim := job.claim

	// 1. Per-evidence features and weights
	items := make([]model.EvidenceItem, 0, len(job.inputs))
	modalities := []string{}
	artifactIDs := make(map[string]bool)
	supported := 0
	for _, in := range job.inputs {
		item := c.evidenceItem(in)
		items = append(items, item)
		for _, m := range item.Modalities {
			modalities = appendUnique(modalities, m)
		}
		for _, id := range item.ArtifactIDs {
			artifactIDs[id] = true
		}
		if item.Supported {
			supported++
		}
	}
	for _, m := range claim.CorroborationModalities() {
		modalities = appendUnique(modalities, strings.ToLower(strings.TrimSpace(m)))
	}

	coverage := 0.0
	if len(items) > 0 {
		coverage = float64(supported) / float64(len(items))
	}

	// 2. Convergence and corroboration
	convergence, groups := Convergence(items)
	corroboration, corrDiag := c.corroboration(claim, convergence, len(groups), len(modalities), coverage)

	// 3. Chain of custody
	custody, custodyDiag := chainOfCustody(claim, job.inputs)

	// 4. Credibility
	cred, credDiag := credibility(c.profile, claim, job.sources)

	// 5. Base score
	dataMultiplier := 0.55 + 0.45*(0.55*coverage+0.45*custodyDiag.ArtifactProximityHierarchy)
	base := util.Clamp01(convergence * dataMultiplier)

	// 6. Penalties
	sourceIDs := make([]string, 0, len(job.sources))
	for _, src := range job.sources {
		sourceIDs = append(sourceIDs, src.ID)
	}
	meanFeatures := meanOf(items)
	applied, multiplier := detectPenalties(c.profile.PenaltyPower, penaltySignals{
		sources:          job.sources,
		meanFeatures:     meanFeatures,
		evidenceCount:    len(items),
		citationIDs:      c.citationIDs(sourceIDs),
		recoveredIndices: c.recovered,
	})
	names := make([]model.PenaltyName, 0, len(applied))
	for _, p := range applied {
		names = append(names, p.Name)
	}

	// 7. Final
	final := util.Clamp01(base * multiplier)

	evidenceIDs := make([]string, 0, len(items))
	for _, item := range items {
		evidenceIDs = append(evidenceIDs, item.ID)
	}

	claimType := claim.Type
	if claimType == "" {
		claimType = model.ClaimTypeOther
	}

	return items, model.ClaimScore{
		ClaimID:      claim.ID,
		ClaimType:    claimType,
		SalienceRank: claim.SalienceRank,
		Counts: model.ClaimCounts{
			EvidenceItems: len(items),
			Sources:       len(job.sources),
			Origins:       len(groups),
			Artifacts:     len(artifactIDs),
			Modalities:    len(modalities),
			Anchors:       len(counterAnchors(job.inputs)),
		},
		SourceIDs:   sourceIDs,
		EvidenceIDs: evidenceIDs,
		Core3C: model.Core3C{
			ChainOfCustody: axis(custody),
			Credibility:    axis(cred),
			Corroboration:  axis(corroboration),
		},
		SixAxis: model.SixAxis{
			ChainOfCustody: axis(custody),
			Credibility:    axis(cred),
			Corroboration:  axis(corroboration),
			Coherence:      axis(claim.CoherenceScore()),
			Confidence:     axis(claim.ConfidenceScore()),
			Compliance:     axis(claim.ComplianceScore()),
		},
		SupportCoverage:   coverage,
		BaseClaimScore:    base,
		Penalties:         names,
		PenaltyDetail:     applied,
		PenaltyMultiplier: multiplier,
		FinalScore:        final,
		FinalBand:         util.Band(final),
		Diagnostics: model.ClaimDiagnostics{
			Convergence:                convergence,
			OriginGroups:               groups,
			MeanFeatures:               meanFeatures,
			DataContributionMultiplier: dataMultiplier,
			Custody:                    custodyDiag,
			Credibility:                credDiag,
			Corroboration:              corrDiag,
		},
	}
}

func (c *ClaimScorer) evidenceItem(in evidenceInput) model.EvidenceItem {
	features, branch := c.features.Score(in)

	sourceIDs := make([]string, 0, len(in.Sources))
	for _, src := range in.Sources {
		sourceIDs = append(sourceIDs, src.ID)
	}
	artifactIDs := make([]string, 0, len(in.Artifacts))
	for _, a := range in.Artifacts {
		artifactIDs = append(artifactIDs, a.ID)
	}
	anchors := in.Anchors
	if anchors == nil {
		anchors = []model.Location{}
	}

	return model.EvidenceItem{
		ID:                 in.ID,
		ClaimID:            in.Claim.ID,
		Kind:               in.Kind,
		SourceIDs:          sourceIDs,
		ArtifactIDs:        artifactIDs,
		OriginID:           originID(in),
		Modalities:         modalitiesFor(in.Kind, in.Mention.Modalities),
		Features:           features,
		Anchors:            anchors,
		ProbativeWeight:    util.Clamp01(features.Product()),
		IndependenceBranch: branch,
		Supported:          len(in.Sources) > 0 || len(in.Artifacts) > 0,
	}
}

// originID is the sorted union of the item's source signatures. An item with
// no sources is its own origin.
func originID(in evidenceInput) string {
	if len(in.Sources) == 0 {
		return "self:" + in.ID
	}
	seen := make(map[string]bool)
	var keys []string
	for _, src := range in.Sources {
		for _, key := range src.OriginSignature {
			if !seen[key] {
				seen[key] = true
				keys = append(keys, key)
			}
		}
	}
	sort.Strings(keys)
	return strings.Join(keys, "+")
}

func (c *ClaimScorer) corroboration(claim *model.Claim, convergence float64, origins, modalities int, coverage float64) (float64, model.CorroborationDiagnostics) {
	d := model.CorroborationDiagnostics{
		OriginBonus:        0.04 * math.Max(math.Min(float64(origins), 3)-1, 0),
		ModalityBonus:      0.03 * math.Max(math.Min(float64(modalities), 3)-1, 0),
		NatureFactor:       c.profile.NatureFor(claim.Type),
		CoverageMultiplier: c.profile.Coverage.Base + c.profile.Coverage.Ratio*coverage,
	}
	if convergence == 0 {
		return 0, d
	}
	score := (convergence + d.OriginBonus + d.ModalityBonus) * d.NatureFactor * d.CoverageMultiplier
	return util.Clamp01(score), d
}

func meanOf(items []model.EvidenceItem) model.Features {
	if len(items) == 0 {
		return model.Features{}
	}
	var sum model.Features
	for _, item := range items {
		sum.Independence += item.Features.Independence
		sum.Authentication += item.Features.Authentication
		sum.Method += item.Features.Method
		sum.Procedural += item.Features.Procedural
		sum.Temporal += item.Features.Temporal
	}
	n := float64(len(items))
	return model.Features{
		Independence:   sum.Independence / n,
		Authentication: sum.Authentication / n,
		Method:         sum.Method / n,
		Procedural:     sum.Procedural / n,
		Temporal:       sum.Temporal / n,
	}
}

func axis(score float64) model.AxisScore {
	score = util.Clamp01(score)
	return model.AxisScore{Score: score, Band: util.Band(score)}
}
