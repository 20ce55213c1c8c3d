package events

import (
	"jobmatch-engine/internal/domain"
	"jobmatch-engine/internal/scrape/types"
)

const (
	TypeRunStarted     = "run.started"
	TypeAdapterStarted = "adapter.started"
	TypeAdapterDone    = "adapter.done"
	TypeRunFinished    = "run.finished"
)

type AdapterStarted struct {
	Source domain.Source `json:"source"`
	Index  int           `json:"index"`
	Total  int           `json:"total"`
}

type AdapterDone struct {
	Source   domain.Source `json:"source"`
	Index    int           `json:"index"`
	Total    int           `json:"total"`
	Postings int           `json:"postings"`
	Warning  string        `json:"warning,omitempty"`
}

// Progress reports aggregator progress for one request to the hub.
type Progress struct {
	Hub       *Hub
	RequestID string
}

func (p Progress) AdapterStarted(src domain.Source, index, total int) {
	p.Hub.Emit(p.RequestID, TypeAdapterStarted, AdapterStarted{Source: src, Index: index, Total: total})
}

func (p Progress) AdapterDone(res types.FetchResult, index, total int) {
	p.Hub.Emit(p.RequestID, TypeAdapterDone, AdapterDone{
		Source:   res.Source,
		Index:    index,
		Total:    total,
		Postings: len(res.Postings),
		Warning:  res.Warning,
	})
}
