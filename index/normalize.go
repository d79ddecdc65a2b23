package index

import "log/slog"

const defaultRelevance = 0.5

// fallbackRelevance mirrors core.FallbackRelevance; kept local so the
// package stays import-free of core.
const fallbackRelevance = 0.1

// Normalize turns permissively decoded backend matches into well-formed
// neighbors. Entries without a usable positive identifier are dropped with a
// warning. Missing scores default to 0 and missing relevance to 0.5; entries
// the backend flagged as random picks get the fixed fallback relevance.
func Normalize(results []RawResult, logger *slog.Logger) []Neighbor {
	if logger == nil {
		logger = slog.Default()
	}

	neighbors := make([]Neighbor, 0, len(results))
	for _, r := range results {
		if !r.HasNumber || r.Number <= 0 {
			logger.Warn("dropping index result without a valid verse number",
				"hasNumber", r.HasNumber, "number", r.Number)
			continue
		}

		neighbor := Neighbor{
			Number:   r.Number,
			Fallback: r.Fallback,
		}
		if r.HasScore {
			neighbor.Score = float32(r.Score)
		}
		switch {
		case r.Fallback:
			neighbor.Relevance = fallbackRelevance
		case r.HasRelevance:
			neighbor.Relevance = float32(r.Relevance)
		default:
			neighbor.Relevance = defaultRelevance
		}

		neighbors = append(neighbors, neighbor)
	}

	return neighbors
}
