package types

import (
	"context"

	"jobmatch-engine/internal/domain"
)

// MaxPostings caps how many postings one adapter call may return.
const MaxPostings = 10

type Query struct {
	Keyword  string `json:"keyword"`
	Location string `json:"location"`
	Country  string `json:"country"`
}

// FetchResult is what every adapter returns. Failures never surface as
// errors; they leave Postings empty and describe themselves in Warning.
type FetchResult struct {
	Source   domain.Source       `json:"source"`
	Postings []domain.JobPosting `json:"postings"`
	Warning  string              `json:"warning,omitempty"`
}

type Fetcher interface {
	Name() domain.Source
	Fetch(ctx context.Context, q Query) FetchResult
}

// Progress receives per-adapter updates from the aggregator.
type Progress interface {
	AdapterStarted(src domain.Source, index, total int)
	AdapterDone(res FetchResult, index, total int)
}

// NopProgress discards every update.
type NopProgress struct{}

func (NopProgress) AdapterStarted(domain.Source, int, int) {}
func (NopProgress) AdapterDone(FetchResult, int, int)      {}
