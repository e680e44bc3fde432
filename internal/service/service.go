package service

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"animedb/client/internal/client"
	"animedb/client/internal/domain"
	"animedb/client/internal/fetcher"
	"animedb/client/internal/state"

	log "github.com/sirupsen/logrus"
)

// Request identifies who is asking and which API origin serves them.
type Request struct {
	Session string
	BaseURL string
}

// PageView can render both the stats panel and the catalog region.
type PageView interface {
	fetcher.CatalogView
	fetcher.StatsView
}

type Service struct {
	client    client.CatalogClient
	sequencer *fetcher.Sequencer
	store     state.Store
}

func NewService(
	client client.CatalogClient,
	sequencer *fetcher.Sequencer,
	store state.Store,
) *Service {
	return &Service{
		client:    client,
		sequencer: sequencer,
		store:     store,
	}
}

func (s *Service) fetcher(baseURL string) *fetcher.Fetcher {
	c := s.client
	if baseURL != "" && baseURL != c.BaseURL() {
		c = c.WithBaseURL(baseURL)
	}
	return fetcher.New(c, s.sequencer)
}

// Current returns the session's state, falling back to the defaults when the
// store is unavailable.
func (s *Service) Current(ctx context.Context, session string) domain.ViewState {
	vs, err := s.store.Load(ctx, session)
	if err != nil {
		log.Warnf("⚠️ Failed to load view state, using defaults: %v", err)
		return domain.DefaultViewState()
	}
	return vs
}

// advance applies action to the stored state. A failing store still lets the
// action run against the defaults.
func (s *Service) advance(ctx context.Context, session string, action domain.Action) domain.ViewState {
	next, err := s.store.Update(ctx, session, func(current domain.ViewState) domain.ViewState {
		return domain.Update(current, action)
	})
	if err != nil {
		log.Errorf("❌ Failed to update view state: %v", err)
		return domain.Update(domain.DefaultViewState(), action)
	}
	return next
}

// Index loads the stats and the session's current page concurrently. Catalog
// failures are already shown by the view and do not fail the page.
func (s *Service) Index(ctx context.Context, req Request, view PageView) domain.ViewState {
	unlock := s.sequencer.Lock(req.Session)
	vs := s.Current(ctx, req.Session)
	seq := s.sequencer.Next(req.Session)
	unlock()

	f := s.fetcher(req.BaseURL)

	errGroup := new(errgroup.Group)
	errGroup.Go(func() error {
		f.LoadStats(ctx, view)
		return nil
	})
	errGroup.Go(func() error {
		if err := f.LoadAnimeDataAt(ctx, req.Session, seq, vs, view); err != nil && !errors.Is(err, fetcher.ErrStale) {
			log.Debugf("Index rendered with catalog error: %v", err)
		}
		return nil
	})
	_ = errGroup.Wait()

	return vs
}

// Apply moves the session to the next state and reloads the catalog for it.
// The state change and the request number are taken under the session lock,
// so the newest request always renders the state that was stored last.
// The returned error is fetcher.ErrStale when a newer action superseded this
// one; any other error has already been rendered into view.
func (s *Service) Apply(ctx context.Context, req Request, action domain.Action, view fetcher.CatalogView) (domain.ViewState, error) {
	unlock := s.sequencer.Lock(req.Session)
	next := s.advance(ctx, req.Session, action)
	seq := s.sequencer.Next(req.Session)
	unlock()

	err := s.fetcher(req.BaseURL).LoadAnimeDataAt(ctx, req.Session, seq, next, view)
	return next, err
}

func (s *Service) Detail(ctx context.Context, req Request, id int) (*domain.CatalogItem, error) {
	return s.fetcher(req.BaseURL).LoadDetail(ctx, id)
}
