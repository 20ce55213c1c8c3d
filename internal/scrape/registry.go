package scrape

import (
	"sort"

	"go.uber.org/zap"

	"jobmatch-engine/internal/config"
	"jobmatch-engine/internal/domain"
	"jobmatch-engine/internal/scrape/adzuna"
	"jobmatch-engine/internal/scrape/indeed"
	"jobmatch-engine/internal/scrape/monster"
	"jobmatch-engine/internal/scrape/seek"
	"jobmatch-engine/internal/scrape/types"
)

// Countries is the fixed list offered to users.
var Countries = []string{
	"Australia",
	"United States",
	"United Kingdom",
	"Canada",
	"India",
	"Germany",
	"France",
	"Singapore",
	"United Arab Emirates",
	"Japan",
}

func SupportedCountry(name string) bool {
	for _, c := range Countries {
		if c == name {
			return true
		}
	}
	return false
}

// Adapter is a Fetcher that can tell which countries it serves.
type Adapter interface {
	types.Fetcher
	Supports(country string) bool
}

// Build returns the enabled adapters in canonical source order. adzunaKey
// may be empty; the Adzuna adapter then reports missing credentials.
func Build(src config.Sources, adzunaKey string, log *zap.Logger) []Adapter {
	if log == nil {
		log = zap.NewNop()
	}
	timeout := src.Timeout()
	ua := src.UserAgent

	var out []Adapter
	if src.Seek.Enabled {
		out = append(out, seek.New(seek.Config{BaseURL: src.Seek.BaseURL, UserAgent: ua, Timeout: timeout}, log))
	}
	if src.Indeed.Enabled {
		out = append(out, indeed.New(indeed.Config{BaseURL: src.Indeed.BaseURL, UserAgent: ua, Timeout: timeout}, log))
	}
	if src.Monster.Enabled {
		out = append(out, monster.New(monster.Config{BaseURL: src.Monster.BaseURL, UserAgent: ua, Timeout: timeout}, log))
	}
	if src.Adzuna.Enabled {
		out = append(out, adzuna.New(adzuna.Config{
			BaseURL:   src.Adzuna.BaseURL,
			AppID:     src.Adzuna.AppID,
			AppKey:    adzunaKey,
			UserAgent: ua,
			Timeout:   timeout,
		}, log))
	}
	sort.SliceStable(out, func(i, j int) bool {
		return domain.SourceRank(out[i].Name()) < domain.SourceRank(out[j].Name())
	})
	return out
}

// Fetchers narrows adapters to the aggregator's interface.
func Fetchers(as []Adapter) []types.Fetcher {
	out := make([]types.Fetcher, len(as))
	for i, a := range as {
		out[i] = a
	}
	return out
}

type CountrySources struct {
	Country string          `json:"country"`
	Sources []domain.Source `json:"sources"`
}

// Coverage reports, per supported country, which adapters have a site for it.
func Coverage(as []Adapter) []CountrySources {
	out := make([]CountrySources, 0, len(Countries))
	for _, c := range Countries {
		cs := CountrySources{Country: c, Sources: []domain.Source{}}
		for _, a := range as {
			if a.Supports(c) {
				cs.Sources = append(cs.Sources, a.Name())
			}
		}
		out = append(out, cs)
	}
	return out
}
