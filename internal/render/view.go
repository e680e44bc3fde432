package render

import (
	"fmt"
	"io"

	"animedb/client/internal/domain"
)

// HTMLView collects fetch outcomes and renders them as HTML fragments.
// It satisfies fetcher.CatalogView and fetcher.StatsView.
type HTMLView struct {
	locale  Locale
	results Results
	stats   Stats
}

func NewHTMLView(locale Locale) *HTMLView {
	return &HTMLView{
		locale:  locale,
		results: Results{Msgs: locale.Msgs, PrevDisabled: true, NextDisabled: true},
		stats:   locale.placeholderStats(),
	}
}

func (v *HTMLView) ShowLoading() {
	v.results.Loading = true
	v.results.Empty = false
	v.results.Cards = nil
}

func (v *HTMLView) HideLoading() {
	v.results.Loading = false
}

func (v *HTMLView) ShowError(err error) {
	v.results.ErrorVisible = true
	v.results.ErrorText = v.locale.Msgs.LoadFailed + err.Error()
}

func (v *HTMLView) HideError() {
	v.results.ErrorVisible = false
	v.results.ErrorText = ""
}

func (v *HTMLView) RenderGrid(page *domain.CatalogPage) {
	if len(page.Items) == 0 {
		v.results.Empty = true
		v.results.Cards = nil
		return
	}

	v.results.Empty = false
	cards := make([]Card, 0, len(page.Items))
	for _, item := range page.Items {
		cards = append(cards, v.locale.Card(item))
	}
	v.results.Cards = cards
	v.results.CountText = fmt.Sprintf(v.locale.Msgs.ResultsCount, v.locale.Count(int64(page.Total)))
}

func (v *HTMLView) RenderPagination(page *domain.CatalogPage) {
	v.results.PageInfo = fmt.Sprintf(v.locale.Msgs.PageInfo, page.Page, page.TotalPages)
	v.results.PrevDisabled = !page.HasPrevious()
	v.results.NextDisabled = !page.HasNext()
}

func (v *HTMLView) RenderStats(stats *domain.StatsSummary) {
	l := v.locale
	v.stats = Stats{
		Msgs:        l.Msgs,
		Total:       l.Count(int64(stats.TotalAnime)),
		Average:     l.Average(stats.AvgRating),
		Collections: l.Thousands(stats.TotalCollections),
	}
	if stats.EarliestYear != nil && stats.LatestYear != nil {
		v.stats.Years = fmt.Sprintf("%d–%d", *stats.EarliestYear, *stats.LatestYear)
	}
	if stats.TotalWatched != nil {
		v.stats.Watched = l.Thousands(stats.TotalWatched)
	}
}

func (v *HTMLView) Results() Results {
	return v.results
}

func (v *HTMLView) Stats() Stats {
	return v.stats
}

func (v *HTMLView) WriteResults(w io.Writer) error {
	return templates.ExecuteTemplate(w, "results", v.results)
}

// WriteBrowser renders the controls together with the results; used after a reset.
func (v *HTMLView) WriteBrowser(w io.Writer, controls Controls) error {
	return templates.ExecuteTemplate(w, "browser", Page{Msgs: v.locale.Msgs, Controls: controls, Results: v.results})
}

func (v *HTMLView) WritePage(w io.Writer, controls Controls) error {
	return templates.ExecuteTemplate(w, "page", Page{
		Msgs:     v.locale.Msgs,
		Stats:    v.stats,
		Controls: controls,
		Results:  v.results,
	})
}

func WriteDetail(w io.Writer, detail Detail) error {
	return templates.ExecuteTemplate(w, "detail", detail)
}
