package indeed

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

// Hosts maps a country name to its Indeed site.
var Hosts = map[string]string{
	"Australia":            "au.indeed.com",
	"United States":        "www.indeed.com",
	"United Kingdom":       "uk.indeed.com",
	"Canada":               "ca.indeed.com",
	"India":                "in.indeed.com",
	"Germany":              "de.indeed.com",
	"France":               "fr.indeed.com",
	"Singapore":            "sg.indeed.com",
	"United Arab Emirates": "ae.indeed.com",
	"Japan":                "jp.indeed.com",
}

// Layout is used on the HTML results page when the RSS feed comes back empty.
var Layout = util.Layout{
	Containers: []string{
		"div.job_seen_beacon",
		"div.jobsearch-SerpJobCard",
		"div.job-card",
	},
	Title: util.Chain{
		util.Selector("h2.jobTitle"),
		util.Selector("a.jobtitle"),
		util.Attr{Sel: "a[data-jk]", Name: "title"},
	},
	Description: util.Chain{
		util.Selector("div.job-snippet"),
		util.Selector("div.summary"),
	},
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

func (s *Scraper) Name() domain.Source { return domain.SourceIndeed }

func (s *Scraper) Supports(country string) bool {
	_, ok := Hosts[country]
	return ok
}

func (s *Scraper) base(country string) (string, bool) {
	host, ok := Hosts[country]
	if !ok {
		return "", false
	}
	if s.cfg.BaseURL != "" {
		return strings.TrimRight(s.cfg.BaseURL, "/"), true
	}
	return "https://" + host, true
}

func query(q types.Query) string {
	return "q=" + url.QueryEscape(q.Keyword) + "&l=" + url.QueryEscape(q.Location)
}

// Fetch reads the RSS feed and falls back to the HTML results page when the
// feed is unavailable or empty.
func (s *Scraper) Fetch(ctx context.Context, q types.Query) types.FetchResult {
	src := s.Name()
	base, ok := s.base(q.Country)
	if !ok {
		return util.Unsupported(s.log, src, q.Country)
	}

	rssURL := base + "/rss?" + query(q)
	jobs, rssErr := s.fetchRSS(ctx, rssURL)
	if rssErr == nil && len(jobs) > 0 {
		res := util.Empty(src)
		res.Postings = append(res.Postings, jobs...)
		return res
	}
	if rssErr != nil {
		s.log.Warn("rss feed failed, trying html", zap.String("source", string(src)),
			zap.String("url", rssURL), zap.Error(rssErr))
	}

	pageURL := base + "/jobs?" + query(q)
	jobs, err := s.fetchHTML(ctx, pageURL)
	if err != nil {
		return util.Fail(s.log, src, fmt.Sprintf("error fetching jobs from Indeed: %v", err), zap.String("url", pageURL))
	}

	res := util.Empty(src)
	res.Postings = append(res.Postings, jobs...)
	return res
}

func (s *Scraper) fetchRSS(ctx context.Context, u string) ([]domain.JobPosting, error) {
	s.log.Info("fetching", zap.String("source", "Indeed"), zap.String("url", u))
	body, err := util.Get(ctx, s.hc, u, s.cfg.UserAgent, "application/rss+xml, application/xml")
	if err != nil {
		return nil, err
	}
	defer body.Close()

	jobs, err := util.ParseFeed(body, s.Name(), types.MaxPostings)
	if err != nil {
		return nil, fmt.Errorf("indeed parse rss: %w", err)
	}
	s.log.Info("parsed", zap.String("source", "Indeed"), zap.String("format", "rss"), zap.Int("postings", len(jobs)))
	return jobs, nil
}

func (s *Scraper) fetchHTML(ctx context.Context, u string) ([]domain.JobPosting, error) {
	s.log.Info("fetching", zap.String("source", "Indeed"), zap.String("url", u))
	body, err := util.Get(ctx, s.hc, u, s.cfg.UserAgent, "text/html")
	if err != nil {
		return nil, err
	}
	defer body.Close()

	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return nil, fmt.Errorf("indeed parse html: %w", err)
	}
	jobs := Layout.Parse(doc, s.Name(), types.MaxPostings, func(i int, reason string) {
		s.log.Debug("skipped posting", zap.String("source", "Indeed"), zap.Int("index", i), zap.String("reason", reason))
	})
	s.log.Info("parsed", zap.String("source", "Indeed"), zap.String("format", "html"), zap.Int("postings", len(jobs)))
	return jobs, nil
}
