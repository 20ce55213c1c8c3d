package httpapi

import (
	"net/http"

	"jobmatch-engine/internal/config"
	"jobmatch-engine/internal/scrape"
	"jobmatch-engine/internal/skills"
)

type MetaHandler struct {
	Cfg      *config.Holder
	Vocab    *skills.Vocabulary
	Adapters func(cfg config.Config) []scrape.Adapter
}

func (h MetaHandler) Countries(w http.ResponseWriter, r *http.Request) {
	var as []scrape.Adapter
	if h.Adapters != nil {
		as = h.Adapters(h.Cfg.Get())
	}
	WriteJSON(w, http.StatusOK, map[string]any{
		"countries": scrape.Coverage(as),
	})
}

func (h MetaHandler) Vocabulary(w http.ResponseWriter, r *http.Request) {
	v := h.Vocab
	if v == nil {
		v = skills.Default()
	}
	WriteJSON(w, http.StatusOK, map[string]any{
		"categories": v.Categories(),
		"count":      v.Len(),
	})
}
