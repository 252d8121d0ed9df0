package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"gorm.io/gorm"

	"shorty/internal/config"
	"shorty/internal/db"
	"shorty/internal/db/mock"
	"shorty/internal/extensions"
	"shorty/internal/hooks"
	"shorty/internal/i18n"
	"shorty/internal/links"
	applog "shorty/internal/log"
	"shorty/internal/options"
	"shorty/internal/server"
	"shorty/internal/theme"
	"shorty/internal/views/layout"
)

type serverLifecycle interface {
	Start() error
	Stop() error
}

var (
	loadConfigFunc      = config.Load
	setLogLevelFunc     = applog.SetLevel
	newMockDatabaseFunc = mock.New
	configureDatabase   = db.Configure
	newServerFunc       = func(cfg server.Config) (serverLifecycle, error) {
		return server.New(cfg)
	}
	subscribeShutdownSig = func() (<-chan os.Signal, func()) {
		ch := make(chan os.Signal, 1)
		signal.Notify(ch, syscall.SIGTERM, syscall.SIGINT)
		return ch, func() { signal.Stop(ch) }
	}
)

func main() {
	os.Exit(run(context.Background()))
}

func run(ctx context.Context) int {
	cfg, err := loadConfigFunc()
	if err != nil {
		applog.Error(ctx, "failed to load configuration", "error", err)
		return 1
	}
	if err := setLogLevelFunc(cfg.Logging.Level); err != nil {
		applog.Error(ctx, "invalid log level", "level", cfg.Logging.Level, "error", err)
		return 1
	}

	var database *gorm.DB
	if cfg.Database.UseMock {
		applog.Info(ctx, "using mock database")
		database, err = newMockDatabaseFunc(ctx)
	} else {
		database, err = configureDatabase(cfg.Database)
	}
	if err != nil {
		applog.Error(ctx, "failed to configure database", "error", err)
		return 1
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	themes := newThemeManager(cfg, database)
	if cfg.Themes.Watch {
		startWatcher(ctx, themes)
	}

	srv, err := newServerFunc(server.Config{
		Addr: cfg.Server.Addr,
		Session: server.SessionConfig{
			Lifetime:     cfg.Auth.Session.Lifetime,
			CookieName:   cfg.Auth.Session.CookieName,
			CookieDomain: cfg.Auth.Session.CookieDomain,
			CookieSecure: cfg.Auth.Session.CookieSecure,
		},
		Database: database,
		Themes:   themes,
		Catalog:  i18n.Default(),
		Locale:   cfg.Site.Language,
	})
	if err != nil {
		applog.Error(ctx, "failed to create server", "error", err)
		return 1
	}

	errCh := make(chan error, 1)
	go func() {
		applog.Info(ctx, "starting http server", "addr", cfg.Server.Addr)
		errCh <- srv.Start()
	}()

	sigCh, unsubscribe := subscribeShutdownSig()
	defer unsubscribe()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			applog.Error(ctx, "server encountered an error", "error", err)
			return 1
		}
		return 0
	case sig := <-sigCh:
		applog.Info(ctx, "shutting down http server", "signal", sig.String())
	}

	if err := srv.Stop(); err != nil {
		applog.Error(ctx, "graceful shutdown failed", "error", err)
		return 1
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		applog.Error(ctx, "server exited with error", "error", err)
		return 1
	}
	return 0
}

func newThemeManager(cfg config.Config, database *gorm.DB) *theme.Manager {
	exts := theme.NewExtensionRegistry()
	extensions.Register(exts)

	steps := layout.DefaultSteps(layout.Options{
		Stats:   links.New(database),
		Version: cfg.Site.Version,
	})

	return theme.NewManager(theme.Config{
		Dir:        cfg.Themes.Dir,
		URL:        cfg.Themes.URL,
		SiteURL:    cfg.Site.URL,
		Version:    cfg.Site.Version,
		Installing: cfg.Site.Installing,
		Upgrading:  cfg.Site.Upgrading,
	}, options.New(database), hooks.New(), steps, exts)
}

func startWatcher(ctx context.Context, themes *theme.Manager) {
	w, err := theme.NewWatcher(themes)
	if err != nil {
		applog.Warn(ctx, "theme directory not watched", "dir", themes.Config().Dir, "error", err)
		return
	}
	go func() {
		if err := w.Run(ctx); err != nil {
			applog.Warn(ctx, "theme watcher stopped", "error", err)
		}
	}()
}
