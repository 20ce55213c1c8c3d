package seek

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"jobmatch-engine/internal/domain"
	"jobmatch-engine/internal/scrape/types"
	"jobmatch-engine/internal/scrape/util"
)

// Domains maps a country name to its Seek site.
var Domains = map[string]string{
	"Australia":      "seek.com.au",
	"United States":  "seek.com/us",
	"United Kingdom": "seek.co.uk",
	"Canada":         "seek.co.ca",
	"India":          "seek.co.in",
}

// Layout lists the result-card markup Seek has shipped, newest first.
var Layout = util.Layout{
	Containers: []string{
		"article._1wkzzau0",
		"article[data-automation='normalJob']",
		"article.job-card",
		"div.job-card",
	},
	Title: util.Chain{
		util.Selector("h3.job-title"),
		util.Selector("a.job-title"),
		util.Selector("[data-automation='jobTitle']"),
		util.Selector("span.title"),
	},
	Description: util.Chain{
		util.Selector("span.job-description"),
		util.Selector("div.job-description"),
		util.Selector("[data-automation='jobShortDescription']"),
		util.Selector("div.description"),
	},
}

type Config struct {
	// BaseURL replaces https://www.<domain> when set.
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
	return &Scraper{
		cfg: cfg,
		hc:  util.NewClient(cfg.Timeout),
		log: log,
	}
}

func (s *Scraper) Name() domain.Source { return domain.SourceSeek }

func (s *Scraper) Supports(country string) bool {
	_, ok := Domains[country]
	return ok
}

func (s *Scraper) searchURL(q types.Query) (string, bool) {
	dom, ok := Domains[q.Country]
	if !ok {
		return "", false
	}
	base := "https://www." + dom
	if s.cfg.BaseURL != "" {
		base = strings.TrimRight(s.cfg.BaseURL, "/")
	}
	return fmt.Sprintf("%s/jobs?keywords=%s&where=%s",
		base, url.QueryEscape(q.Keyword), url.QueryEscape(q.Location)), true
}

func (s *Scraper) Fetch(ctx context.Context, q types.Query) types.FetchResult {
	src := s.Name()
	u, ok := s.searchURL(q)
	if !ok {
		return util.Unsupported(s.log, src, q.Country)
	}

	s.log.Info("fetching", zap.String("source", string(src)), zap.String("url", u))
	body, err := util.Get(ctx, s.hc, u, s.cfg.UserAgent, "text/html")
	if err != nil {
		return util.Fail(s.log, src, fmt.Sprintf("error fetching jobs from Seek: %v", err), zap.String("url", u))
	}
	defer body.Close()

	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return util.Fail(s.log, src, fmt.Sprintf("seek parse html: %v", err), zap.String("url", u))
	}

	jobs := Layout.Parse(doc, src, types.MaxPostings, func(i int, reason string) {
		s.log.Debug("skipped posting", zap.String("source", string(src)), zap.Int("index", i), zap.String("reason", reason))
	})
	s.log.Info("parsed", zap.String("source", string(src)),
		zap.Int("containers", Layout.FindContainers(doc).Length()), zap.Int("postings", len(jobs)))

	res := util.Empty(src)
	res.Postings = append(res.Postings, jobs...)
	return res
}
