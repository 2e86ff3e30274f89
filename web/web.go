package web

import (
	"context"
	"embed"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/andybalholm/brotli"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/stelofinance/homepage/internal/assets"
	"github.com/stelofinance/homepage/internal/background"
	"github.com/stelofinance/homepage/internal/config"
	"github.com/stelofinance/homepage/internal/middlewares"
	"github.com/stelofinance/homepage/internal/routes"
	"github.com/stelofinance/homepage/internal/storage"
	"github.com/stelofinance/homepage/web/templates"
)

//go:embed templates/*/*.html.tmpl
var templatesFS embed.FS

type Config struct {
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Run sets up all needed dependencies for the server, early returning with
// an error if one occurs.
func Run(ctx context.Context, getenv func(string) string, stdout, stderr io.Writer) error {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Create config
	appCfg, err := config.Load(getenv)
	if err != nil {
		return err
	}
	srvCfg := Config{
		ReadTimeout: time.Second * 5,
		// Leaves room for a cold-cache download on the first request
		WriteTimeout: time.Second * 60,
	}

	logger := NewLogger(stdout, appCfg.Env)

	static := assets.New(appCfg.StaticDir)
	tmpls, err := templates.LoadTemplates(templatesFS, "templates/", ".html.tmpl", static)
	if err != nil {
		return err
	}

	fetcher := background.New(logger, appCfg.BackgroundURL, appCfg.BackgroundFile(), func(ctx context.Context) (storage.ObjectGetter, error) {
		return storage.NewClient(ctx, appCfg.AWS)
	})

	// Try once at startup so the image is ready before serving
	if err := fetcher.Fetch(ctx); err != nil {
		logger.LogAttrs(
			ctx,
			slog.LevelWarn,
			"startup download failed",
			slog.String("kind", background.KindOf(err).String()),
		)
	}

	// Create and run server
	srv := NewServer(logger, tmpls, appCfg, static, fetcher)
	httpServer := &http.Server{
		Addr:         appCfg.Addr(),
		Handler:      srv,
		ReadTimeout:  srvCfg.ReadTimeout,
		WriteTimeout: srvCfg.WriteTimeout,
		BaseContext: func(l net.Listener) context.Context {
			return ctx
		},
	}
	listenErr := make(chan error, 1)
	go func() {
		logger.LogAttrs(
			ctx,
			slog.LevelInfo,
			"server started",
			slog.String("PORT", httpServer.Addr),
		)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			fmt.Fprintf(stderr, "error listening and serving: %s\n", err)
			listenErr <- err
			cancel()
		}
	}()

	// Handle graceful shutdown
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			fmt.Fprintf(stderr, "error shutting down http server: %s\n", err)
		}
	}()
	wg.Wait()

	select {
	case err := <-listenErr:
		return err
	default:
		return nil
	}
}

// NewLogger logs JSON in prod and plain text everywhere else.
func NewLogger(w io.Writer, env string) *slog.Logger {
	if env == "prod" {
		return slog.New(slog.NewJSONHandler(w, nil))
	}
	return slog.New(slog.NewTextHandler(w, nil))
}

func NewServer(logger *slog.Logger, tmpls *templates.Tmpls, cfg config.Config, static *assets.Assets, bg *background.Fetcher) http.Handler {
	mux := chi.NewMux()

	mux.Use(middleware.RequestID)
	mux.Use(middlewares.RequestLogger(logger))
	mux.Use(middleware.Recoverer)
	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "HEAD", "OPTIONS"},
		MaxAge:         300,
	}))
	mux.Use(middleware.Heartbeat("/heartbeat"))
	mux.Use(Compressor(2))

	routes.AddRoutes(mux, logger, tmpls, cfg, static, bg)

	return mux
}

// Compress is an adapter middleware from Chi that compresses
// the response body of a given content types to a data format based
// on Accept-Encoding request header. Adapted to include Brotli encoding.
//
// NOTE: make sure to set the Content-Type header on your response
// otherwise this middleware will not compress the response body.
//
// Passing a compression level of 2-5 is sensible value.
func Compressor(level int) func(next http.Handler) http.Handler {
	compressor := middleware.NewCompressor(level)
	compressor.SetEncoder("br", func(w io.Writer, level int) io.Writer {
		return brotli.NewWriterV2(w, level)
	})

	return compressor.Handler
}
