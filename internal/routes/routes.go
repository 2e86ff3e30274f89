package routes

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/stelofinance/homepage/internal/assets"
	"github.com/stelofinance/homepage/internal/background"
	"github.com/stelofinance/homepage/internal/config"
	"github.com/stelofinance/homepage/internal/handlers"
	"github.com/stelofinance/homepage/web/templates"
)

func AddRoutes(mux *chi.Mux, logger *slog.Logger, tmpls *templates.Tmpls, cfg config.Config, static *assets.Assets, bg *background.Fetcher) {
	static.HttpHandler(mux)

	mux.Handle("GET /", handlers.Index(logger, tmpls, cfg, bg))
}
