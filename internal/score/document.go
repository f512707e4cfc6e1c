package score

import (
	"sort"

	"github.com/ppiankov/evidentia/internal/model"
	"github.com/ppiankov/evidentia/internal/profile"
	"github.com/ppiankov/evidentia/internal/util"
)

// geomeanFloor keeps a single zero final score from collapsing the geometric mean
const geomeanFloor = 1e-6

// Aggregate reduces claim scores to document statistics and the seriousness gate
func Aggregate(p profile.Profile, scores []model.ClaimScore) model.DocumentScore {
	doc := model.DocumentScore{
		Profile:                p.Name,
		ClaimCount:             len(scores),
		Headline:               headline(scores),
		SingleSourcedSourceIDs: SingleSourced(scores),
		SeriousnessGate: model.SeriousnessGate{
			Thresholds: model.GateValues{
				MeanFinalScore:      p.Seriousness.MeanFinal,
				MedianCredibility:   p.Seriousness.MedianCredibility,
				MedianCorroboration: p.Seriousness.MedianCorroboration,
			},
		},
	}

	if len(scores) == 0 {
		return doc
	}

	var finals, custody, cred, corr, coherence, confidence, compliance []float64
	for _, s := range scores {
		finals = append(finals, s.FinalScore)
		custody = append(custody, s.SixAxis.ChainOfCustody.Score)
		cred = append(cred, s.SixAxis.Credibility.Score)
		corr = append(corr, s.SixAxis.Corroboration.Score)
		coherence = append(coherence, s.SixAxis.Coherence.Score)
		confidence = append(confidence, s.SixAxis.Confidence.Score)
		compliance = append(compliance, s.SixAxis.Compliance.Score)
	}

	doc.AxisMedians = model.AxisMedians{
		ChainOfCustody: util.Median(custody),
		Credibility:    util.Median(cred),
		Corroboration:  util.Median(corr),
		Coherence:      util.Median(coherence),
		Confidence:     util.Median(confidence),
		Compliance:     util.Median(compliance),
	}
	doc.OverallClaimScoreMean = util.Mean(finals)
	doc.OverallClaimScoreGeomean = util.GeometricMean(finals, geomeanFloor)

	gate := &doc.SeriousnessGate
	gate.Observed = model.GateValues{
		MeanFinalScore:      doc.OverallClaimScoreMean,
		MedianCredibility:   doc.AxisMedians.Credibility,
		MedianCorroboration: doc.AxisMedians.Corroboration,
	}
	gate.Passed = gate.Observed.MeanFinalScore >= gate.Thresholds.MeanFinalScore &&
		gate.Observed.MedianCredibility >= gate.Thresholds.MedianCredibility &&
		gate.Observed.MedianCorroboration >= gate.Thresholds.MedianCorroboration

	return doc
}

// headline picks the claim with the lowest explicit salience rank, else the
// highest final score. Ties keep the earlier claim.
func headline(scores []model.ClaimScore) *model.Headline {
	if len(scores) == 0 {
		return nil
	}

	best, selectedBy := -1, "salience_rank"
	for i, s := range scores {
		if s.SalienceRank == nil {
			continue
		}
		if best < 0 || *s.SalienceRank < *scores[best].SalienceRank {
			best = i
		}
	}

	if best < 0 {
		best, selectedBy = 0, "final_score"
		for i, s := range scores {
			if s.FinalScore > scores[best].FinalScore {
				best = i
			}
		}
	}

	return &model.Headline{
		ClaimID:    scores[best].ClaimID,
		SelectedBy: selectedBy,
		Vector:     scores[best].SixAxis,
	}
}

// SingleSourced returns, sorted, the ids of sources that are some claim's only source
func SingleSourced(scores []model.ClaimScore) []string {
	seen := make(map[string]bool)
	ids := []string{}
	for _, s := range scores {
		if len(s.SourceIDs) == 1 && !seen[s.SourceIDs[0]] {
			seen[s.SourceIDs[0]] = true
			ids = append(ids, s.SourceIDs[0])
		}
	}
	sort.Strings(ids)
	return ids
}
