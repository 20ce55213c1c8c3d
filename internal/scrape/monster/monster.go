package monster

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"jobmatch-engine/internal/domain"
	"jobmatch-engine/internal/scrape/types"
	"jobmatch-engine/internal/scrape/util"
)

// Hosts maps a country name to the Monster site serving its RSS search.
var Hosts = map[string]string{
	"United States":        "www.monster.com",
	"United Kingdom":       "www.monster.co.uk",
	"Canada":               "www.monster.ca",
	"India":                "www.monsterindia.com",
	"Germany":              "www.monster.de",
	"France":               "www.monster.fr",
	"Singapore":            "www.monster.com.sg",
	"United Arab Emirates": "www.monstergulf.com",
}

type Config struct {
	// BaseURL replaces https://<host> when set.
	BaseURL   string
	UserAgent string
	Timeout   time.Duration
}

type Scraper struct {
	cfg Config
	hc  *http.Client
	log *zap.Logger
}

func New(cfg Config, log *zap.Logger) *Scraper {
	if log == nil {
		log = zap.NewNop()
	}
	return &Scraper{cfg: cfg, hc: util.NewClient(cfg.Timeout), log: log}
}

func (s *Scraper) Name() domain.Source { return domain.SourceMonster }

func (s *Scraper) Supports(country string) bool {
	_, ok := Hosts[country]
	return ok
}

func (s *Scraper) Fetch(ctx context.Context, q types.Query) types.FetchResult {
	src := s.Name()
	host, ok := Hosts[q.Country]
	if !ok {
		return util.Unsupported(s.log, src, q.Country)
	}
	base := "https://" + host
	if s.cfg.BaseURL != "" {
		base = strings.TrimRight(s.cfg.BaseURL, "/")
	}
	u := fmt.Sprintf("%s/jobs/rss?q=%s&where=%s", base, url.QueryEscape(q.Keyword), url.QueryEscape(q.Location))

	s.log.Info("fetching", zap.String("source", string(src)), zap.String("url", u))
	body, err := util.Get(ctx, s.hc, u, s.cfg.UserAgent, "application/rss+xml, application/xml")
	if err != nil {
		return util.Fail(s.log, src, fmt.Sprintf("error fetching jobs from Monster: %v", err), zap.String("url", u))
	}
	defer body.Close()

	jobs, err := util.ParseFeed(body, src, types.MaxPostings)
	if err != nil {
		return util.Fail(s.log, src, fmt.Sprintf("monster parse rss: %v", err), zap.String("url", u))
	}
	s.log.Info("parsed", zap.String("source", string(src)), zap.Int("postings", len(jobs)))

	res := util.Empty(src)
	res.Postings = append(res.Postings, jobs...)
	return res
}
