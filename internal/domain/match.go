package domain

// MatchResult pairs a posting with its similarity score against a skill set.
// It is derived on demand and never stored.
type MatchResult struct {
	Job   JobPosting `json:"job"`
	Score int        `json:"score"`
}
