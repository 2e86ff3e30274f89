package handlers

import (
	"bytes"
	"log/slog"
	"net/http"

	"github.com/stelofinance/homepage/internal/assets"
	"github.com/stelofinance/homepage/internal/background"
	"github.com/stelofinance/homepage/internal/config"
	"github.com/stelofinance/homepage/web/layouts"
	"github.com/stelofinance/homepage/web/templates"
)

// Web path the cached background is served under
const BackgroundPath = assets.AssetPrefix + "bg/bg.jpg"

// Index renders the homepage. A missing background is fetched before
// rendering, and whatever happens with that fetch the page is a 200.
func Index(logger *slog.Logger, tmpls *templates.Tmpls, cfg config.Config, bg *background.Fetcher) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.LogAttrs(
			r.Context(),
			slog.LevelInfo,
			"serving homepage",
			slog.String("background_url", cfg.BackgroundURL),
		)

		if _, err := bg.Ensure(r.Context()); err != nil {
			logger.LogAttrs(
				r.Context(),
				slog.LevelWarn,
				"background image unavailable",
				slog.String("kind", background.KindOf(err).String()),
				slog.String("error", err.Error()),
			)
		}

		pageData := templates.DataPageHomepage{
			AppName:       cfg.AppName,
			AppSlogan:     cfg.AppSlogan,
			BackgroundURL: cfg.BackgroundURL,
		}
		if bg.Present() {
			pageData.BackgroundPath = BackgroundPath
		}
		tmplData := templates.DataLayoutPrimary{
			Title:    cfg.AppName,
			PageData: pageData,
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")

		var buf bytes.Buffer
		if err := tmpls.ExecuteTemplate(&buf, "pages/homepage", tmplData); err != nil {
			logger.LogAttrs(
				r.Context(),
				slog.LevelError,
				"failed to render homepage template",
				slog.String("error", err.Error()),
			)
			if err := layouts.Fallback(cfg.AppName, cfg.AppSlogan).Render(w); err != nil {
				logger.LogAttrs(
					r.Context(),
					slog.LevelError,
					"failed to render fallback page",
					slog.String("error", err.Error()),
				)
			}
			return
		}
		buf.WriteTo(w)
	})
}
