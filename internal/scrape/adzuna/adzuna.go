package adzuna

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"jobmatch-engine/internal/domain"
	"jobmatch-engine/internal/scrape/types"
	"jobmatch-engine/internal/scrape/util"
)

const defaultBaseURL = "https://api.adzuna.com"

// Countries maps a country name to the Adzuna country code used in the path.
var Countries = map[string]string{
	"Australia":      "au",
	"United States":  "us",
	"United Kingdom": "gb",
	"Canada":         "ca",
	"India":          "in",
	"Germany":        "de",
	"France":         "fr",
	"Singapore":      "sg",
}

type Config struct {
	BaseURL   string
	AppID     string
	AppKey    string
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
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	return &Scraper{cfg: cfg, hc: util.NewClient(cfg.Timeout), log: log}
}

func (s *Scraper) Name() domain.Source { return domain.SourceAdzuna }

func (s *Scraper) Supports(country string) bool {
	_, ok := Countries[country]
	return ok
}

type searchResponse struct {
	Results []struct {
		Title       string `json:"title"`
		Description string `json:"description"`
	} `json:"results"`
}

func (s *Scraper) searchURL(cc string, q types.Query) string {
	v := url.Values{}
	v.Set("app_id", s.cfg.AppID)
	v.Set("app_key", s.cfg.AppKey)
	v.Set("what", q.Keyword)
	if q.Location != "" {
		v.Set("where", q.Location)
	}
	v.Set("results_per_page", strconv.Itoa(types.MaxPostings))
	return fmt.Sprintf("%s/v1/api/jobs/%s/search/1?%s", strings.TrimRight(s.cfg.BaseURL, "/"), cc, v.Encode())
}

func (s *Scraper) Fetch(ctx context.Context, q types.Query) types.FetchResult {
	src := s.Name()
	cc, ok := Countries[q.Country]
	if !ok {
		return util.Unsupported(s.log, src, q.Country)
	}
	if s.cfg.AppID == "" || s.cfg.AppKey == "" {
		return util.Fail(s.log, src, "adzuna credentials not configured")
	}

	u := s.searchURL(cc, q)
	// never log the key
	s.log.Info("fetching", zap.String("source", string(src)), zap.String("country", cc), zap.String("keyword", q.Keyword))
	body, err := util.Get(ctx, s.hc, u, s.cfg.UserAgent, "application/json")
	if err != nil {
		return util.Fail(s.log, src, "error fetching jobs from Adzuna: "+s.redact(err))
	}
	defer body.Close()

	var resp searchResponse
	if err := json.NewDecoder(body).Decode(&resp); err != nil {
		return util.Fail(s.log, src, fmt.Sprintf("adzuna decode: %v", err))
	}

	res := util.Empty(src)
	for _, r := range resp.Results {
		job := util.Posting(src, util.StripHTML(r.Title), util.StripHTML(r.Description))
		if job.Empty() {
			continue
		}
		res.Postings = append(res.Postings, job)
	}
	res.Postings = util.Truncate(res.Postings, types.MaxPostings)
	s.log.Info("parsed", zap.String("source", string(src)), zap.Int("postings", len(res.Postings)))
	return res
}

// redact turns a fetch error into a warning that never carries the app key.
// Transport errors embed the request URL, so only the underlying cause is kept.
func (s *Scraper) redact(err error) string {
	var se *util.StatusError
	if errors.As(err, &se) {
		return fmt.Sprintf("adzuna api returned status code: %d", se.Status)
	}
	var ue *url.Error
	if errors.As(err, &ue) {
		err = ue.Err
	}
	msg := err.Error()
	if s.cfg.AppKey != "" {
		msg = strings.ReplaceAll(msg, s.cfg.AppKey, "***")
		msg = strings.ReplaceAll(msg, url.QueryEscape(s.cfg.AppKey), "***")
	}
	return msg
}
