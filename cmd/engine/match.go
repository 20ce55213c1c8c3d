package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"jobmatch-engine/internal/domain"
	"jobmatch-engine/internal/pipeline"
	"jobmatch-engine/internal/present"
	"jobmatch-engine/internal/resume"
)

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Run the matching pipeline once and print or save the results",
	RunE:  runMatch,
}

func init() {
	rootCmd.AddCommand(matchCmd)

	f := matchCmd.Flags()
	f.String("resume", "", "path to the résumé PDF")
	f.String("keyword", "AI/ML", "job keyword")
	f.String("location", "", "job location")
	f.String("country", "Australia", "country (one of the supported countries)")
	f.StringSlice("source", nil, "only show matches from these sources (repeatable)")
	f.String("out", "", "write matches as CSV to this file (- for stdout)")
	f.String("email", "", "email matches to this address")
	_ = matchCmd.MarkFlagRequired("resume")
}

func runMatch(cmd *cobra.Command, _ []string) error {
	f := cmd.Flags()
	resumePath, _ := f.GetString("resume")
	keyword, _ := f.GetString("keyword")
	location, _ := f.GetString("location")
	country, _ := f.GetString("country")
	rawSources, _ := f.GetStringSlice("source")
	out, _ := f.GetString("out")
	email, _ := f.GetString("email")

	var sources []domain.Source
	for _, s := range rawSources {
		src, ok := domain.ParseSource(s)
		if !ok {
			return fmt.Errorf("unknown source %q", s)
		}
		sources = append(sources, src)
	}

	req := pipeline.Request{
		Keyword:  keyword,
		Location: location,
		Country:  country,
		Sources:  sources,
		Email:    email,
	}
	if err := pipeline.Validate(req); err != nil {
		return err
	}

	fh, err := os.Open(resumePath)
	if err != nil {
		return fmt.Errorf("open resume: %w", err)
	}
	defer fh.Close()
	b, err := io.ReadAll(io.LimitReader(fh, resume.MaxSize+1))
	if err != nil {
		return fmt.Errorf("read resume: %w", err)
	}
	req.Resume = b

	e, err := setup(cmd.Context())
	if err != nil {
		return err
	}
	defer e.Close()

	res, err := e.newRunner(e.cfg.Get()).Run(cmd.Context(), req, logProgress{log: e.log})
	if err != nil {
		return err
	}

	switch res.State {
	case pipeline.StateNoResults:
		e.log.Warn("No jobs found. This could be due to: " + strings.Join(res.Hints, "; "))
	case pipeline.StateNoMatches:
		e.log.Warn(pipeline.NoMatchesHint, zap.Int("postings", res.Postings))
	default:
		e.log.Info("matches found", zap.Int("matched", res.Matched), zap.Int("shown", len(res.Jobs)))
	}

	switch out {
	case "":
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	case "-":
		return present.WriteCSV(cmd.OutOrStdout(), res.Jobs)
	default:
		w, err := os.Create(out)
		if err != nil {
			return err
		}
		if err := present.WriteCSV(w, res.Jobs); err != nil {
			w.Close()
			return err
		}
		e.log.Info("saved", zap.String("path", out))
		return w.Close()
	}
}
