package httpapi

import (
	"net/http"
	"strconv"

	"jobmatch-engine/internal/store"
)

type RunsHandler struct {
	Runs RunLister
}

func (h RunsHandler) List(w http.ResponseWriter, r *http.Request) {
	if h.Runs == nil {
		WriteJSON(w, http.StatusOK, map[string]any{"runs": []store.RunSummary{}})
		return
	}
	limit := 0
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			WriteError(w, r, http.StatusBadRequest, "invalid_limit", "limit must be a positive integer")
			return
		}
		limit = n
	}
	runs, err := h.Runs.ListRuns(r.Context(), limit)
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "db_error", err.Error())
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"runs": runs})
}
