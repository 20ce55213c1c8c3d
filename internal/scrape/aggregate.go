package scrape

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"jobmatch-engine/internal/domain"
	"jobmatch-engine/internal/scrape/types"
)

// Batch is the outcome of one aggregation: every posting in adapter order,
// plus each adapter's own result.
type Batch struct {
	Postings []domain.JobPosting `json:"-"`
	Results  []types.FetchResult `json:"results"`
}

// Warnings lists the non-empty adapter warnings in adapter order.
func (b Batch) Warnings() []string {
	var out []string
	for _, r := range b.Results {
		if r.Warning != "" {
			out = append(out, r.Warning)
		}
	}
	return out
}

type Aggregator struct {
	Fetchers []types.Fetcher
	Parallel bool
	Log      *zap.Logger
}

// FetchAll runs every fetcher and concatenates their postings in fetcher
// order. A fetcher that finds nothing contributes an empty result; the batch
// itself never fails.
func (a Aggregator) FetchAll(ctx context.Context, q types.Query, progress types.Progress) Batch {
	log := a.Log
	if log == nil {
		log = zap.NewNop()
	}
	if progress == nil {
		progress = types.NopProgress{}
	}

	total := len(a.Fetchers)
	results := make([]types.FetchResult, total)

	run := func(i int, f types.Fetcher) {
		progress.AdapterStarted(f.Name(), i, total)
		res := f.Fetch(ctx, q)
		res.Source = f.Name()
		if res.Postings == nil {
			res.Postings = []domain.JobPosting{}
		}
		results[i] = res
		log.Info("adapter done",
			zap.String("source", string(res.Source)),
			zap.Int("postings", len(res.Postings)),
			zap.String("warning", res.Warning))
		progress.AdapterDone(res, i, total)
	}

	if a.Parallel && total > 1 {
		var g errgroup.Group
		for i, f := range a.Fetchers {
			i, f := i, f
			g.Go(func() error {
				run(i, f)
				return nil
			})
		}
		_ = g.Wait()
	} else {
		for i, f := range a.Fetchers {
			run(i, f)
		}
	}

	b := Batch{Postings: []domain.JobPosting{}, Results: results}
	for _, r := range results {
		b.Postings = append(b.Postings, r.Postings...)
	}
	return b
}
