package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/kurochkinivan/image_sorter/internal/config"
	v1 "github.com/kurochkinivan/image_sorter/internal/controller/http/v1"
	"github.com/kurochkinivan/image_sorter/internal/infrastructure/browser"
	"github.com/kurochkinivan/image_sorter/internal/infrastructure/lock"
	"github.com/kurochkinivan/image_sorter/internal/triage"
	"github.com/kurochkinivan/image_sorter/web"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"
)

const defaultShutdownTimeout = 5 * time.Second

// openBrowser is replaced in tests.
var openBrowser = browser.Open

type App struct {
	log *slog.Logger
	cfg *config.Config
}

func New(log *slog.Logger, cfg *config.Config) *App {
	return &App{
		log: log,
		cfg: cfg,
	}
}

func (a *App) Run(ctx context.Context) error {
	a.log.InfoContext(ctx, "starting app",
		slog.String("target_dir", a.cfg.App.TargetDirectory),
		slog.Any("extensions", a.cfg.App.Extensions),
	)

	l, err := lock.Acquire(a.cfg.App.LockDirectory, a.cfg.App.TargetDirectory)
	if err != nil {
		return fmt.Errorf("failed to lock target directory: %w", err)
	}
	defer func() {
		if err := l.Release(); err != nil {
			a.log.WarnContext(ctx, "failed to release lock", slog.String("err", err.Error()))
		}
	}()

	a.log.DebugContext(ctx, "acquired directory lock", slog.String("lock", l.Path()))

	listener, err := net.Listen("tcp", net.JoinHostPort(a.cfg.HTTP.Host, a.cfg.HTTP.Port))
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}

	return a.serve(ctx, listener)
}

func (a *App) handler() http.Handler {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	metrics := triage.NewMetrics(registry)

	scanner := triage.NewScanner(a.log, a.cfg.App, metrics)
	mover := triage.NewMover(a.log, a.cfg.App, metrics)
	service := triage.NewService(a.cfg.App.TargetDirectory, scanner, mover)
	files := v1.NewFileHandler(a.log, a.cfg.App.TargetDirectory)

	return v1.NewRouter(a.log, a.cfg.HTTP, service, files, registry, web.Static())
}

func (a *App) serve(ctx context.Context, listener net.Listener) error {
	server := v1.NewServer(a.cfg.HTTP, a.handler())
	uiURL := browserURL(listener.Addr())

	erg, ctx := errgroup.WithContext(ctx)

	erg.Go(func() error {
		a.log.InfoContext(ctx, "starting http server",
			slog.String("addr", listener.Addr().String()),
			slog.String("url", uiURL),
		)

		if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server error: %w", err)
		}

		return nil
	})

	erg.Go(func() error {
		<-ctx.Done()

		timeout := a.cfg.HTTP.ShutdownTimeout
		if timeout <= 0 {
			timeout = defaultShutdownTimeout
		}

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
		defer cancel()

		return server.Shutdown(shutdownCtx)
	})

	if a.cfg.App.OpenBrowser {
		erg.Go(func() error {
			openBrowser(ctx, a.log, uiURL)
			return nil
		})
	}

	if err := erg.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		a.log.ErrorContext(ctx, "app stopped with error", slog.String("err", err.Error()))

		return err
	}

	a.log.InfoContext(ctx, "app stopped gracefully")

	return nil
}

// browserURL points at the loopback interface when the server listens on all of them.
func browserURL(addr net.Addr) string {
	host, port := "localhost", ""

	if tcp, ok := addr.(*net.TCPAddr); ok {
		port = strconv.Itoa(tcp.Port)
		if tcp.IP != nil && !tcp.IP.IsUnspecified() {
			host = tcp.IP.String()
		}
	} else if h, p, err := net.SplitHostPort(addr.String()); err == nil {
		host, port = h, p
	}

	return "http://" + net.JoinHostPort(host, port)
}
