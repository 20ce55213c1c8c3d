package httpapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"jobmatch-engine/internal/config"
	"jobmatch-engine/internal/domain"
	"jobmatch-engine/internal/events"
	"jobmatch-engine/internal/pipeline"
	"jobmatch-engine/internal/present"
	"jobmatch-engine/internal/resume"
	"jobmatch-engine/internal/skills"
)

// maxUpload leaves room for form fields next to the résumé.
const maxUpload = resume.MaxSize + 1<<20

type MatchHandler struct {
	Cfg       *config.Holder
	Hub       *events.Hub
	NewRunner func(cfg config.Config) *pipeline.Runner
	Log       *zap.Logger
}

type skillsResponse struct {
	Skills     []string            `json:"skills"`
	ByCategory map[string][]string `json:"by_category"`
	Warning    string              `json:"warning,omitempty"`
}

type exportRequest struct {
	Skills  []string            `json:"skills"`
	Jobs    []domain.JobPosting `json:"jobs"`
	Sources []string            `json:"sources"`
}

func (h MatchHandler) runner() *pipeline.Runner {
	return h.NewRunner(h.Cfg.Get())
}

// readResume pulls the "resume" part out of a multipart upload.
func readResume(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUpload)
	if err := r.ParseMultipartForm(maxUpload); err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_form", "expected multipart/form-data: "+err.Error())
		return nil, false
	}
	f, _, err := r.FormFile("resume")
	if err != nil {
		WriteError(w, r, http.StatusBadRequest, "missing_resume", "a PDF résumé must be uploaded in the \"resume\" field")
		return nil, false
	}
	defer f.Close()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, f); err != nil {
		WriteError(w, r, http.StatusBadRequest, "unreadable_resume", "cannot read uploaded file: "+err.Error())
		return nil, false
	}
	return buf.Bytes(), true
}

func parseSources(raw []string) ([]domain.Source, error) {
	var out []domain.Source
	for _, s := range raw {
		for _, part := range strings.Split(s, ",") {
			if strings.TrimSpace(part) == "" {
				continue
			}
			src, ok := domain.ParseSource(part)
			if !ok {
				return nil, fmt.Errorf("unknown source %q", part)
			}
			out = append(out, src)
		}
	}
	return out, nil
}

func (h MatchHandler) Skills(w http.ResponseWriter, r *http.Request) {
	b, ok := readResume(w, r)
	if !ok {
		return
	}
	rn := h.runner()
	set, warning := rn.ExtractSkills(pipeline.Request{Resume: b})

	vocab := rn.Vocabulary
	if vocab == nil {
		vocab = skills.Default()
	}
	resp := skillsResponse{Skills: set.Sorted(), ByCategory: map[string][]string{}, Warning: warning}
	for _, s := range resp.Skills {
		cat := vocab.CategoryOf(s)
		resp.ByCategory[cat] = append(resp.ByCategory[cat], s)
	}
	WriteJSON(w, http.StatusOK, resp)
}

func (h MatchHandler) Match(w http.ResponseWriter, r *http.Request) {
	b, ok := readResume(w, r)
	if !ok {
		return
	}
	sources, err := parseSources(r.MultipartForm.Value["source"])
	if err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_source", err.Error())
		return
	}
	format := strings.ToLower(strings.TrimSpace(r.FormValue("format")))
	if format != "" && format != "json" && format != "csv" {
		WriteError(w, r, http.StatusBadRequest, "invalid_format", "format must be json or csv")
		return
	}

	reqID := RequestIDFrom(r.Context())
	req := pipeline.Request{
		Resume:    b,
		Keyword:   r.FormValue("keyword"),
		Location:  r.FormValue("location"),
		Country:   r.FormValue("country"),
		Email:     r.FormValue("email"),
		Sources:   sources,
		RequestID: reqID,
	}
	if err := pipeline.Validate(req); err != nil {
		code := "invalid_request"
		switch {
		case errors.Is(err, pipeline.ErrEmptyKeyword):
			code = "invalid_keyword"
		case errors.Is(err, pipeline.ErrUnsupportedCountry):
			code = "unsupported_country"
		}
		WriteError(w, r, http.StatusBadRequest, code, err.Error())
		return
	}

	h.Hub.Emit(reqID, events.TypeRunStarted, map[string]any{
		"keyword":  req.Keyword,
		"location": req.Location,
		"country":  req.Country,
	})
	res, err := h.runner().Run(r.Context(), req, events.Progress{Hub: h.Hub, RequestID: reqID})
	if err != nil {
		h.Log.Error("match", zap.String("request_id", reqID), zap.Error(err))
		WriteError(w, r, http.StatusInternalServerError, "match_failed", err.Error())
		return
	}
	h.Hub.Emit(reqID, events.TypeRunFinished, map[string]any{
		"state":    res.State,
		"postings": res.Postings,
		"matched":  res.Matched,
	})

	if format == "csv" {
		writeCSV(w, r, res.Jobs)
		return
	}
	WriteJSON(w, http.StatusOK, res)
}

func (h MatchHandler) Export(w http.ResponseWriter, r *http.Request) {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxUpload))
	dec.DisallowUnknownFields()

	var req exportRequest
	if err := dec.Decode(&req); err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_json", "invalid JSON: "+err.Error())
		return
	}
	sources, err := parseSources(req.Sources)
	if err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_source", err.Error())
		return
	}
	views := present.Render(present.Filter(req.Jobs, sources), skills.NewSet(req.Skills...), nil)
	writeCSV(w, r, views)
}

func writeCSV(w http.ResponseWriter, r *http.Request, views []present.View) {
	var buf bytes.Buffer
	if err := present.WriteCSV(&buf, views); err != nil {
		WriteError(w, r, http.StatusInternalServerError, "export_failed", err.Error())
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", "attachment; filename="+present.FileName)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}
