package score

import (
	"github.com/ppiankov/evidentia/internal/model"
	"github.com/ppiankov/evidentia/internal/util"
)

// Convergence groups evidence by origin, combines each group with noisy-OR,
// then combines the groups the same way. Groups keep first-seen order.
func Convergence(items []model.EvidenceItem) (float64, []model.OriginGroup) {
	var groups []model.OriginGroup
	index := make(map[string]int)
	weights := make(map[string][]float64)

	for _, item := range items {
		i, ok := index[item.OriginID]
		if !ok {
			i = len(groups)
			index[item.OriginID] = i
			groups = append(groups, model.OriginGroup{OriginID: item.OriginID, EvidenceIDs: []string{}})
		}
		groups[i].EvidenceIDs = append(groups[i].EvidenceIDs, item.ID)
		weights[item.OriginID] = append(weights[item.OriginID], item.ProbativeWeight)
	}

	combined := make([]float64, 0, len(groups))
	for i := range groups {
		groups[i].Combined = util.NoisyOR(weights[groups[i].OriginID])
		combined = append(combined, groups[i].Combined)
	}

	if groups == nil {
		groups = []model.OriginGroup{}
	}
	return util.NoisyOR(combined), groups
}
