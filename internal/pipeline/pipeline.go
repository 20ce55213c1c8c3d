// Package pipeline runs one user action end to end: résumé text to skills,
// skills plus query to scored, filtered matches.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"jobmatch-engine/internal/domain"
	"jobmatch-engine/internal/logger"
	"jobmatch-engine/internal/notify"
	"jobmatch-engine/internal/present"
	"jobmatch-engine/internal/rank"
	"jobmatch-engine/internal/resume"
	"jobmatch-engine/internal/scrape"
	"jobmatch-engine/internal/scrape/types"
	"jobmatch-engine/internal/skills"
	"jobmatch-engine/internal/store"
)

var (
	ErrEmptyKeyword       = errors.New("keyword is required")
	ErrUnsupportedCountry = errors.New("unsupported country")
)

type State string

const (
	StateOK        State = "ok"
	StateNoResults State = "no_results"
	StateNoMatches State = "no_matches"
)

// NoResultsHints explain an empty aggregation to the user.
var NoResultsHints = []string{
	"Network connectivity issues",
	"Invalid location or keyword",
	"No job postings matching your criteria",
}

const NoMatchesHint = "No suitable jobs found. Try adjusting your filters."

type Request struct {
	// Resume holds the uploaded PDF. ResumeText, when set, is used instead.
	Resume     []byte
	ResumeText string

	Keyword  string
	Location string
	Country  string

	// Sources limits which matches are shown; empty shows all.
	Sources []domain.Source
	Email   string

	RequestID string
}

func (r Request) query() types.Query {
	return types.Query{
		Keyword:  strings.TrimSpace(r.Keyword),
		Location: strings.TrimSpace(r.Location),
		Country:  strings.TrimSpace(r.Country),
	}
}

type Result struct {
	RunID    int64               `json:"run_id,omitempty"`
	State    State               `json:"state"`
	Hints    []string            `json:"hints,omitempty"`
	Skills   []string            `json:"skills"`
	Postings int                 `json:"postings"`
	Matched  int                 `json:"matched"`
	Sources  []domain.Source     `json:"sources"`
	Jobs     []present.View      `json:"jobs"`
	Adapters []types.FetchResult `json:"adapters"`
	Warnings []string            `json:"warnings"`
	Notified bool                `json:"notified"`

	// ExportPath is where the CSV was saved, if ExportDir was set.
	ExportPath string `json:"export_path,omitempty"`

	// set is kept for re-rendering and export.
	set skills.Set
}

// SkillSet returns the extracted skills as a set.
func (r Result) SkillSet() skills.Set { return r.set }

// RunRecorder persists run summaries.
type RunRecorder interface {
	RecordRun(ctx context.Context, r store.RunSummary) (int64, error)
}

type Runner struct {
	Vocabulary *skills.Vocabulary
	Aggregator scrape.Aggregator
	Scorer     rank.Scorer
	Notifier   notify.Sender
	Runs       RunRecorder
	// ExportDir, when set, receives matched_jobs.csv after every run with
	// matches.
	ExportDir  string
	Log        *zap.Logger
}

// Validate checks the parts of a request that make a run pointless.
func Validate(req Request) error {
	q := req.query()
	if q.Keyword == "" {
		return ErrEmptyKeyword
	}
	if !scrape.SupportedCountry(q.Country) {
		return fmt.Errorf("%w: %q", ErrUnsupportedCountry, q.Country)
	}
	return nil
}

// ExtractSkills reads the résumé in req and returns the skills found. A
// document that yields no text produces an empty set and a warning.
func (rn *Runner) ExtractSkills(req Request) (skills.Set, string) {
	vocab := rn.Vocabulary
	if vocab == nil {
		vocab = skills.Default()
	}
	text := req.ResumeText
	if text == "" {
		var err error
		text, err = resume.Text(req.Resume)
		if err != nil {
			return skills.NewSet(), fmt.Sprintf("could not extract text from resume: %v", err)
		}
	}
	return skills.Extract(text, vocab), ""
}

// Run executes the whole pipeline. Only an invalid request is an error;
// adapter, résumé, notification and run-history failures become warnings.
func (rn *Runner) Run(ctx context.Context, req Request, progress types.Progress) (Result, error) {
	if err := Validate(req); err != nil {
		return Result{}, err
	}
	log := logger.WithRequestID(rn.Log, req.RequestID)
	started := time.Now().UTC()
	q := req.query()

	res := Result{
		Skills:   []string{},
		Sources:  []domain.Source{},
		Jobs:     []present.View{},
		Warnings: []string{},
	}

	set, warn := rn.ExtractSkills(req)
	if warn != "" {
		log.Warn("resume", zap.String("warning", warn))
		res.Warnings = append(res.Warnings, warn)
	}
	res.set = set
	res.Skills = set.Sorted()
	log.Info("skills extracted",
		zap.Int("count", len(res.Skills)),
		zap.String("skills", logger.TruncateForLog(strings.Join(res.Skills, ", "), 200)))

	agg := rn.Aggregator
	agg.Log = log
	batch := agg.FetchAll(ctx, q, progress)
	res.Adapters = batch.Results
	res.Warnings = append(res.Warnings, batch.Warnings()...)
	res.Postings = len(batch.Postings)

	switch {
	case res.Postings == 0:
		res.State = StateNoResults
		res.Hints = NoResultsHints
	default:
		matches := rank.Match(rn.Scorer, batch.Postings, set)
		res.Matched = len(matches)
		if res.Matched == 0 {
			res.State = StateNoMatches
			res.Hints = []string{NoMatchesHint}
			break
		}
		res.State = StateOK
		jobs := present.Jobs(matches)
		res.Sources = present.Sources(jobs)
		res.Jobs = present.Render(present.Filter(jobs, req.Sources), set, rn.Scorer)
	}
	log.Info("run finished",
		zap.String("state", string(res.State)),
		zap.Int("postings", res.Postings),
		zap.Int("matched", res.Matched),
		zap.Int("shown", len(res.Jobs)))

	if rn.ExportDir != "" && len(res.Jobs) > 0 {
		path, err := present.SaveCSV(rn.ExportDir, res.Jobs)
		if err != nil {
			log.Warn("save export", zap.Error(err), zap.String("dir", rn.ExportDir))
			res.Warnings = append(res.Warnings, fmt.Sprintf("failed to save export: %v", err))
		} else {
			res.ExportPath = path
		}
	}

	if to := strings.TrimSpace(req.Email); to != "" && len(res.Jobs) > 0 {
		if rn.Notifier == nil {
			res.Warnings = append(res.Warnings, "email notifications are not configured")
		} else if err := rn.Notifier.Send(ctx, to, viewsToJobs(res.Jobs)); err != nil {
			log.Warn("notify", zap.Error(err))
			res.Warnings = append(res.Warnings, fmt.Sprintf("failed to send email: %v", err))
		} else {
			res.Notified = true
		}
	}

	if rn.Runs != nil {
		id, err := rn.Runs.RecordRun(ctx, store.RunSummary{
			StartedAt: started,
			Keyword:   q.Keyword,
			Location:  q.Location,
			Country:   q.Country,
			Skills:    res.Skills,
			Postings:  res.Postings,
			Matched:   res.Matched,
			State:     string(res.State),
			Warnings:  res.Warnings,
		})
		if err != nil {
			log.Warn("record run", zap.Error(err))
		} else {
			res.RunID = id
		}
	}
	return res, nil
}

func viewsToJobs(vs []present.View) []domain.JobPosting {
	out := make([]domain.JobPosting, len(vs))
	for i, v := range vs {
		out[i] = domain.JobPosting{Source: v.Source, Title: v.Title, Description: v.Description}
	}
	return out
}
