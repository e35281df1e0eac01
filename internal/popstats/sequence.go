package popstats

import "github.com/atlas-quant/zoneengine/pkg/zonetypes"

const minZonesForSequenceAnalysis = 3

// AnalyzeSequence computes transition counts between consecutive zone
// types and a per-zone cluster label over the ordered type sequence
// (spec.md §4.5 step 4). Skipped with a reason when fewer than 3 zones
// exist.
func AnalyzeSequence(zones zonetypes.ZoneList) *zonetypes.SequenceAnalysis {
	if len(zones) < minZonesForSequenceAnalysis {
		return &zonetypes.SequenceAnalysis{
			Skipped:    true,
			SkipReason: "fewer than 3 zones",
		}
	}

	transitions := make(map[string]map[string]int)
	labelOf := make(map[string]int)
	labels := make([]int, len(zones))

	for i, z := range zones {
		if _, ok := labelOf[z.Type]; !ok {
			labelOf[z.Type] = len(labelOf)
		}
		labels[i] = labelOf[z.Type]
		if i == 0 {
			continue
		}
		prev := zones[i-1].Type
		if transitions[prev] == nil {
			transitions[prev] = make(map[string]int)
		}
		transitions[prev][z.Type]++
	}

	return &zonetypes.SequenceAnalysis{
		TransitionCounts: transitions,
		ClusterLabels:    labels,
	}
}
