package score

import (
	"math"
	"strconv"

	"github.com/ppiankov/evidentia/internal/model"
	"github.com/ppiankov/evidentia/internal/util"
)

// penaltyFactors are the base multipliers before the profile exponent
var penaltyFactors = map[model.PenaltyName]float64{
	model.PenaltySingleSource:       0.85,
	model.PenaltyCircularityRisk:    0.80,
	model.PenaltyUnauthenticated:    0.85,
	model.PenaltyUntested:           0.90,
	model.PenaltyRecoveredReference: 0.92,
}

// penaltySignals are the claim facts penalties are detected from
type penaltySignals struct {
	sources          []*model.Source
	meanFeatures     model.Features
	evidenceCount    int
	citationIDs      []string
	recoveredIndices []int
}

// detectPenalties returns the applied penalties in fixed order and their product
func detectPenalties(power float64, s penaltySignals) ([]model.AppliedPenalty, float64) {
	var names []model.PenaltyName

	origins := distinctOrigins(s.sources)
	if len(s.sources) == 1 {
		names = append(names, model.PenaltySingleSource)
	}
	if len(s.sources) >= 2 && origins == 1 {
		names = append(names, model.PenaltyCircularityRisk)
	}
	if s.evidenceCount > 0 && s.meanFeatures.Authentication < 0.5 {
		names = append(names, model.PenaltyUnauthenticated)
	}
	if s.evidenceCount > 0 && s.meanFeatures.Procedural < 0.5 {
		names = append(names, model.PenaltyUntested)
	}
	if recoveredReference(s.citationIDs, s.recoveredIndices) {
		names = append(names, model.PenaltyRecoveredReference)
	}

	applied := make([]model.AppliedPenalty, 0, len(names))
	multiplier := 1.0
	for _, name := range names {
		factor := penaltyFactors[name]
		effective := math.Pow(factor, power)
		multiplier *= effective
		applied = append(applied, model.AppliedPenalty{
			Name:      name,
			Factor:    factor,
			Power:     power,
			Effective: effective,
		})
	}

	return applied, util.Clamp(multiplier, 0, 1)
}

// recoveredReference matches any digit run of any citation id against any
// index the audit recovered. The match is loose and document-wide.
func recoveredReference(citationIDs []string, recovered []int) bool {
	if len(recovered) == 0 {
		return false
	}
	indices := make(map[string]bool, len(recovered))
	for _, idx := range recovered {
		indices[strconv.Itoa(idx)] = true
	}
	for _, cid := range citationIDs {
		for _, run := range util.DigitRuns(cid) {
			if indices[run] {
				return true
			}
		}
	}
	return false
}
