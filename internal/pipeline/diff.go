package pipeline

import "github.com/dave-doty/aggie-unterprise/internal/model"

// DiffPair is one adjacent chronological pair of summaries.
type DiffPair struct {
	Earlier model.Summary
	Later   model.Summary
}

// Records computes the per-project differences for the pair.
func (p DiffPair) Records() []model.ProjectRecord {
	return p.Later.Diff(p.Earlier)
}

// Pairs returns adjacent chronological pairs from summaries, in the order
// the summaries appear. Summaries arrive already sorted by report date
// (either direction); each pair is normalized so Earlier precedes Later.
func Pairs(summaries []model.Summary) []DiffPair {
	if len(summaries) < 2 {
		return nil
	}

	pairs := make([]DiffPair, 0, len(summaries)-1)
	for i := 0; i < len(summaries)-1; i++ {
		a, b := summaries[i], summaries[i+1]
		if a.Date.Before(b.Date) {
			pairs = append(pairs, DiffPair{Earlier: a, Later: b})
		} else {
			pairs = append(pairs, DiffPair{Earlier: b, Later: a})
		}
	}
	return pairs
}
