package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"jobmatch-engine/internal/config"
	"jobmatch-engine/internal/secrets"
)

type SecretsHandler struct {
	Cfg    *config.Holder
	Set    func(k secrets.Kind, cfg config.Config, value string) error
	Delete func(k secrets.Kind, cfg config.Config) error
}

type setSecretReq struct {
	Value string `json:"value"`
}

func (h SecretsHandler) SetByPath(w http.ResponseWriter, r *http.Request) {
	kind, ok := secrets.ParseKind(strings.TrimPrefix(r.URL.Path, "/api/secrets/"))
	if !ok {
		WriteError(w, r, http.StatusNotFound, "unknown_secret", "secret must be adzuna or smtp")
		return
	}

	var req setSecretReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_json", "invalid json")
		return
	}

	set := h.Set
	if set == nil {
		set = secrets.Set
	}
	if err := set(kind, h.Cfg.Get(), req.Value); err != nil {
		WriteError(w, r, http.StatusBadRequest, "store_failed", "failed to store secret: "+err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h SecretsHandler) DeleteByPath(w http.ResponseWriter, r *http.Request) {
	kind, ok := secrets.ParseKind(strings.TrimPrefix(r.URL.Path, "/api/secrets/"))
	if !ok {
		WriteError(w, r, http.StatusNotFound, "unknown_secret", "secret must be adzuna or smtp")
		return
	}

	del := h.Delete
	if del == nil {
		del = secrets.Delete
	}
	if err := del(kind, h.Cfg.Get()); err != nil {
		if errors.Is(err, secrets.ErrNotFound) {
			WriteError(w, r, http.StatusNotFound, "secret_not_found", "no stored "+string(kind)+" secret")
			return
		}
		WriteError(w, r, http.StatusInternalServerError, "delete_failed", "failed to delete secret: "+err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
