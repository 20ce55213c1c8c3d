package rank

import (
	"jobmatch-engine/internal/domain"
	"jobmatch-engine/internal/skills"
)

// Threshold is the score a posting must exceed to count as a match.
const Threshold = 60

type Scorer interface {
	Score(description string, set skills.Set) int
}

// PartialRatioScorer scores with Score; it exists so callers can swap in a
// fake in tests.
type PartialRatioScorer struct{}

func (PartialRatioScorer) Score(description string, set skills.Set) int {
	return Score(description, set)
}

// Matched reports whether score clears the threshold. 60 itself is not a match.
func Matched(score int) bool { return score > Threshold }

// Match scores every job and keeps the ones above the threshold, in input order.
func Match(s Scorer, jobs []domain.JobPosting, set skills.Set) []domain.MatchResult {
	if s == nil {
		s = PartialRatioScorer{}
	}
	var out []domain.MatchResult
	for _, j := range jobs {
		score := s.Score(j.Description, set)
		if Matched(score) {
			out = append(out, domain.MatchResult{Job: j, Score: score})
		}
	}
	return out
}
