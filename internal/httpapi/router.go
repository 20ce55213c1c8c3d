package httpapi

import (
	"net/http"
)

// NewMux returns the raw mux so main() can still attach /shutdown (needs srv+token).
func NewMux(d Deps) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: HealthHandler{}.Health,
	}))

	// Reference data
	mh := MetaHandler{Cfg: d.Cfg, Vocab: d.Vocabulary, Adapters: d.Adapters}
	mux.HandleFunc("/api/countries", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: mh.Countries,
	}))
	mux.HandleFunc("/api/vocabulary", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: mh.Vocabulary,
	}))

	// Matching
	mt := MatchHandler{Cfg: d.Cfg, Hub: d.Hub, NewRunner: d.NewRunner, Log: d.logger()}
	mux.HandleFunc("/api/skills", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: mt.Skills,
	}))
	mux.HandleFunc("/api/match", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: mt.Match,
	}))
	mux.HandleFunc("/api/export", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: mt.Export,
	}))

	// Run history
	rh := RunsHandler{Runs: d.Runs}
	mux.HandleFunc("/api/runs", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: rh.List,
	}))

	// Config
	ch := ConfigHandler{
		Cfg:         d.Cfg,
		UserCfgPath: d.UserCfgPath,
		LoadCfg:     d.LoadCfg,
	}
	mux.HandleFunc("/config", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Get,
		http.MethodPut: ch.Put,
	}))
	mux.HandleFunc("/config/path", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Path,
	}))
	mux.HandleFunc("/config/validate", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Validate,
	}))

	// Secrets (read the live config, NOT a snapshot)
	sh := SecretsHandler{Cfg: d.Cfg, Set: d.SetSecret, Delete: d.DeleteSecret}
	mux.HandleFunc("/api/secrets/", methodMux(map[string]http.HandlerFunc{
		http.MethodPost:   sh.SetByPath, // expects /api/secrets/{adzuna|smtp}
		http.MethodDelete: sh.DeleteByPath,
	}))

	// SSE events
	eh := EventsHandler{Hub: d.Hub}
	mux.HandleFunc("/events", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: eh.ServeSSE,
	}))

	return mux
}

// NewHandler wraps NewMux in the standard middleware chain.
func NewHandler(d Deps) http.Handler {
	return Wrap(NewMux(d), d)
}

// Wrap applies the standard middleware chain to h.
func Wrap(h http.Handler, d Deps) http.Handler {
	log := d.logger()
	return Chain(h, RequestID, Recover(log), AccessLog(log), Cors)
}
