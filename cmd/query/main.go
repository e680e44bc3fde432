package main

import (
	"context"
	"net/url"
	"os"
	"os/signal"

	"github.com/spf13/pflag"

	"animedb/client/internal/binding"
	"animedb/client/internal/client"
	"animedb/client/internal/config"
	"animedb/client/internal/domain"
	"animedb/client/internal/fetcher"
	"animedb/client/internal/logging"
	"animedb/client/internal/render"
	"animedb/client/internal/terminal"

	log "github.com/sirupsen/logrus"
)

func main() {
	var (
		search     = pflag.StringP("search", "s", "", "title search text")
		yearFrom   = pflag.String("year-from", "", "earliest year")
		yearTo     = pflag.String("year-to", "", "latest year")
		ratingFrom = pflag.String("rating-from", "", "minimum average rating")
		ratingTo   = pflag.String("rating-to", "", "maximum average rating")
		sortBy     = pflag.String("sort-by", domain.DefaultSortBy.String(), "sort field")
		sortOrder  = pflag.String("sort-order", domain.DefaultSortOrder.String(), "asc or desc")
		page       = pflag.IntP("page", "p", 1, "page number")
		baseURL    = pflag.String("base-url", "", "catalog API origin (overrides config)")
		locale     = pflag.String("locale", "", "message locale: en or zh-Hans (overrides config)")
		noStats    = pflag.Bool("no-stats", false, "skip the catalog summary")
	)
	pflag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	// Keep stdout for results.
	log.SetOutput(os.Stderr)
	if err := logging.Configure(cfg.Log); err != nil {
		log.Fatalf("Failed to configure logging: %v", err)
	}

	if *baseURL != "" {
		cfg.API.BaseURL = *baseURL
	}
	if *locale != "" {
		cfg.UI.Locale = *locale
	}

	vs := domain.DefaultViewState()
	vs = domain.Update(vs, binding.ParseFilters(url.Values{
		"year_from":   {*yearFrom},
		"year_to":     {*yearTo},
		"rating_from": {*ratingFrom},
		"rating_to":   {*ratingTo},
		"sort_by":     {*sortBy},
		"sort_order":  {*sortOrder},
	}))
	vs = domain.Update(vs, binding.ParseSearch(url.Values{"search": {*search}}))
	vs = domain.Update(vs, domain.PageAction{Delta: *page - 1})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	c := client.NewCatalogClient(cfg.API)
	defer client.Close(c)

	f := fetcher.New(c, nil)
	view := terminal.NewView(render.MatchLocale(cfg.UI.Locale, ""))

	if !*noStats {
		f.LoadStats(ctx, view)
	}
	loadErr := f.LoadAnimeData(ctx, "cli", vs, view)

	if _, err := view.WriteTo(os.Stdout); err != nil {
		log.Fatalf("Failed to write output: %v", err)
	}
	if loadErr != nil {
		log.Errorf("❌ Query failed against %s (page %d)", c.BaseURL(), vs.Page)
		os.Exit(1)
	}
}
