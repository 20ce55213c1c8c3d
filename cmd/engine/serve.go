package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"jobmatch-engine/internal/events"
	"jobmatch-engine/internal/httpapi"
	"jobmatch-engine/internal/scheduler"
	"jobmatch-engine/internal/secrets"
)

const heartbeatInterval = 20 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the local HTTP API used by the browser UI",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return serve(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("addr", "", "listen address (default 127.0.0.1:<app.port>)")
	if err := viper.BindPFlag("addr", serveCmd.Flags().Lookup("addr")); err != nil {
		panic(err)
	}
}

func serve(parent context.Context) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	e, err := setup(ctx)
	if err != nil {
		return err
	}
	defer e.Close()

	// One engine per data dir: two would race on config.yml and the db.
	lock := flock.New(filepath.Join(e.dataDir, "engine.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("lock data dir: %w", err)
	}
	if !locked {
		return fmt.Errorf("another engine is already running with data dir %s", e.dataDir)
	}
	defer func() { _ = lock.Unlock() }()

	hub := events.NewHub()
	deps := httpapi.Deps{
		Log:          e.log,
		Hub:          hub,
		Cfg:          e.cfg,
		UserCfgPath:  e.cfgPath,
		LoadCfg:      e.reload,
		Vocabulary:   e.vocab,
		NewRunner:    e.newRunner,
		Adapters:     e.adapters,
		SetSecret:    secrets.Set,
		DeleteSecret: secrets.Delete,
	}
	if e.db != nil {
		deps.Runs = e.db
	}

	addr := viper.GetString("addr")
	if addr == "" {
		addr = fmt.Sprintf("127.0.0.1:%d", e.cfg.Get().App.Port)
	}
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}

	srv := &http.Server{
		ReadHeaderTimeout: 5 * time.Second,
	}

	token, err := randomToken(16)
	if err != nil {
		return err
	}
	tokenPath := filepath.Join(e.dataDir, "engine.token")
	if err := os.WriteFile(tokenPath, []byte(token), 0o600); err != nil {
		return fmt.Errorf("write shutdown token: %w", err)
	}
	defer os.Remove(tokenPath)

	mux := httpapi.NewMux(deps)
	mux.HandleFunc("/shutdown", shutdownHandler(token, srv, e.log))
	srv.Handler = httpapi.Wrap(mux, deps)

	e.log.Info("engine listening", zap.String("addr", "http://"+ln.Addr().String()))

	// keep idle SSE streams from being cut by proxies
	go scheduler.Every(ctx, heartbeatInterval, "sse-heartbeat", e.log, func(context.Context) error {
		if hub.Subscribers() > 0 {
			hub.Emit("", "ping", nil)
		}
		return nil
	})

	errc := make(chan error, 1)
	go func() { errc <- srv.Serve(ln) }()

	select {
	case <-ctx.Done():
		e.log.Info("shutting down")
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(sctx)
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
