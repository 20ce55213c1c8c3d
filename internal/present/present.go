// Package present filters match results by source and renders them for
// display and CSV export.
package present

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"jobmatch-engine/internal/domain"
	"jobmatch-engine/internal/rank"
	"jobmatch-engine/internal/skills"
)

// FileName is the name used for CSV downloads and saved exports.
const FileName = "matched_jobs.csv"

var header = []string{"source", "title", "description", "score"}

// View is one displayable row. Score is recomputed from the description,
// never carried over from an earlier run.
type View struct {
	Source      domain.Source `json:"source"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Score       int           `json:"score"`
}

// Sources returns the distinct sources present in jobs, in canonical order.
func Sources(jobs []domain.JobPosting) []domain.Source {
	seen := map[domain.Source]bool{}
	var out []domain.Source
	for _, j := range jobs {
		if !seen[j.Source] {
			seen[j.Source] = true
			out = append(out, j.Source)
		}
	}
	sort.SliceStable(out, func(i, k int) bool {
		return domain.SourceRank(out[i]) < domain.SourceRank(out[k])
	})
	return out
}

// Filter keeps jobs whose source is in selected. An empty selection keeps
// everything.
func Filter(jobs []domain.JobPosting, selected []domain.Source) []domain.JobPosting {
	out := []domain.JobPosting{}
	if len(selected) == 0 {
		return append(out, jobs...)
	}
	want := map[domain.Source]bool{}
	for _, s := range selected {
		want[s] = true
	}
	for _, j := range jobs {
		if want[j.Source] {
			out = append(out, j)
		}
	}
	return out
}

// Render scores each job against set with sc, which should be the scorer
// that selected the matches. A nil sc uses rank.PartialRatioScorer.
func Render(jobs []domain.JobPosting, set skills.Set, sc rank.Scorer) []View {
	if sc == nil {
		sc = rank.PartialRatioScorer{}
	}
	out := make([]View, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, View{
			Source:      j.Source,
			Title:       j.Title,
			Description: j.Description,
			Score:       sc.Score(j.Description, set),
		})
	}
	return out
}

// Jobs strips scores from match results.
func Jobs(matches []domain.MatchResult) []domain.JobPosting {
	out := make([]domain.JobPosting, len(matches))
	for i, m := range matches {
		out[i] = m.Job
	}
	return out
}

func WriteCSV(w io.Writer, views []View) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, v := range views {
		if err := cw.Write([]string{string(v.Source), v.Title, v.Description, strconv.Itoa(v.Score)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// SaveCSV writes views to dir/matched_jobs.csv and returns the path.
func SaveCSV(dir string, views []View) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, FileName)
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return "", err
	}
	if err := WriteCSV(f, views); err != nil {
		f.Close()
		_ = os.Remove(tmp)
		return "", fmt.Errorf("write csv: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return "", err
	}
	return path, os.Rename(tmp, path)
}
