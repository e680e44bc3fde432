package fetcher

import (
	"context"
	"errors"

	"animedb/client/internal/client"
	"animedb/client/internal/domain"
	"animedb/client/internal/render"

	log "github.com/sirupsen/logrus"
)

// ErrStale is returned when a newer request for the same session was issued
// before this one completed. Nothing has been rendered.
var ErrStale = errors.New("response superseded by a newer request")

// CatalogView is what LoadAnimeData needs from a UI surface.
type CatalogView interface {
	// ShowLoading shows the loading indicator and clears the grid.
	ShowLoading()
	HideLoading()
	// ShowError displays a localized failure message that includes err's text.
	ShowError(err error)
	HideError()
	RenderGrid(page *domain.CatalogPage)
	RenderPagination(page *domain.CatalogPage)
}

// StatsView is what LoadStats needs from a UI surface.
type StatsView interface {
	RenderStats(stats *domain.StatsSummary)
}

type Fetcher struct {
	client    client.CatalogClient
	sequencer *Sequencer
}

func New(c client.CatalogClient, sequencer *Sequencer) *Fetcher {
	if sequencer == nil {
		sequencer = NewSequencer()
	}
	return &Fetcher{
		client:    c,
		sequencer: sequencer,
	}
}

// LoadStats renders the catalog summary. Failures are logged and otherwise
// ignored, leaving the view's placeholder in place.
func (f *Fetcher) LoadStats(ctx context.Context, view StatsView) {
	stats, err := f.client.GetStats(ctx)
	if err != nil {
		log.Warnf("⚠️ Error loading stats: %v", err)
		return
	}
	view.RenderStats(stats)
}

// LoadAnimeData fetches the page described by vs and renders it into view.
// The loading indicator is always hidden on return.
func (f *Fetcher) LoadAnimeData(ctx context.Context, session string, vs domain.ViewState, view CatalogView) error {
	return f.LoadAnimeDataAt(ctx, session, f.sequencer.Next(session), vs, view)
}

// LoadAnimeDataAt is LoadAnimeData for a request number the caller already
// took from the Sequencer.
func (f *Fetcher) LoadAnimeDataAt(ctx context.Context, session string, seq uint64, vs domain.ViewState, view CatalogView) error {
	view.ShowLoading()
	view.HideError()
	defer view.HideLoading()

	page, err := f.client.ListAnime(ctx, vs.Query())

	if !f.sequencer.IsLatest(session, seq) {
		log.Debugf("Discarding stale response #%d for session %s", seq, session)
		return ErrStale
	}

	if err != nil {
		log.Errorf("❌ Error loading anime data (page %d): %v", vs.Page, err)
		view.ShowError(err)
		return err
	}

	log.Infof("📄 Loaded page %d of %d (%s matches)", page.Page, page.TotalPages, render.FormatNumber(int64(page.Total)))

	view.RenderGrid(page)
	view.RenderPagination(page)
	return nil
}

// LoadDetail fetches a single catalog item.
func (f *Fetcher) LoadDetail(ctx context.Context, id int) (*domain.CatalogItem, error) {
	item, err := f.client.GetAnime(ctx, id)
	if err != nil {
		log.Errorf("❌ Error loading anime %d: %v", id, err)
		return nil, err
	}
	return item, nil
}
