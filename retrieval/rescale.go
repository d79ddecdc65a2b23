package retrieval

import "github.com/kuralverse/kuralsearch/index"

const (
	rescaleFloor   = 0.2
	rescaleCeiling = 1.0
)

// rescaleRelevance maps the raw scores of genuine matches onto [0.2, 1.0]
// with min-max scaling, preserving the index's order. A single match, or a
// set of identical scores, rescales to 1.0. Fallback entries are left alone;
// they keep the fixed fallback relevance.
func rescaleRelevance(neighbors []index.Neighbor) {
	var minScore, maxScore float32
	first := true
	for _, n := range neighbors {
		if n.Fallback {
			continue
		}
		if first {
			minScore, maxScore = n.Score, n.Score
			first = false
			continue
		}
		if n.Score < minScore {
			minScore = n.Score
		}
		if n.Score > maxScore {
			maxScore = n.Score
		}
	}
	if first {
		return
	}

	spread := maxScore - minScore
	for i := range neighbors {
		if neighbors[i].Fallback {
			continue
		}
		if spread == 0 {
			neighbors[i].Relevance = rescaleCeiling
			continue
		}
		normalized := (neighbors[i].Score - minScore) / spread
		neighbors[i].Relevance = rescaleFloor + (rescaleCeiling-rescaleFloor)*normalized
	}
}
