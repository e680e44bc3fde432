// Package terminal renders catalog pages for the command line.
package terminal

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"animedb/client/internal/domain"
	"animedb/client/internal/render"
)

var (
	colorMuted  = lipgloss.Color("#8b949e")
	colorAccent = lipgloss.Color("#58a6ff")
	colorAmber  = lipgloss.Color("#d29922")
	colorRed    = lipgloss.Color("#f85149")

	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	mutedStyle  = lipgloss.NewStyle().Foreground(colorMuted)
	ratingStyle = lipgloss.NewStyle().Foreground(colorAmber).Width(10)
	titleStyle  = lipgloss.NewStyle().Bold(true).Width(40).MaxWidth(40)
	yearStyle   = lipgloss.NewStyle().Foreground(colorMuted).Width(6)
	numberStyle = lipgloss.NewStyle().Width(10).Align(lipgloss.Right)
	errorStyle  = lipgloss.NewStyle().
			Foreground(colorRed).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(colorRed).
			Padding(0, 1)
)

// View collects fetch outcomes and prints them with compact numbers.
// It satisfies fetcher.CatalogView and fetcher.StatsView.
type View struct {
	locale render.Locale

	loading bool
	err     error
	stats   *domain.StatsSummary
	page    *domain.CatalogPage
	empty   bool
	count   string
	info    string
	hasPrev bool
	hasNext bool
}

func NewView(locale render.Locale) *View {
	return &View{locale: locale}
}

func (v *View) ShowLoading() {
	v.loading = true
	v.page = nil
	v.empty = false
}

func (v *View) HideLoading() { v.loading = false }

func (v *View) ShowError(err error) { v.err = err }

func (v *View) HideError() { v.err = nil }

func (v *View) RenderGrid(page *domain.CatalogPage) {
	if len(page.Items) == 0 {
		v.empty = true
		v.page = nil
		return
	}
	v.empty = false
	v.page = page
	v.count = fmt.Sprintf(v.locale.Msgs.ResultsCount, render.FormatNumber(int64(page.Total)))
}

func (v *View) RenderPagination(page *domain.CatalogPage) {
	v.info = fmt.Sprintf(v.locale.Msgs.PageInfo, page.Page, page.TotalPages)
	v.hasPrev = page.HasPrevious()
	v.hasNext = page.HasNext()
}

func (v *View) RenderStats(stats *domain.StatsSummary) {
	v.stats = stats
}

func (v *View) String() string {
	msgs := v.locale.Msgs
	var b strings.Builder

	if v.stats != nil {
		parts := []string{
			msgs.StatsTotal + ": " + render.FormatNumber(int64(v.stats.TotalAnime)),
			msgs.StatsAvgRating + ": " + v.locale.Average(v.stats.AvgRating),
			msgs.StatsCollections + ": " + optional64(v.stats.TotalCollections, msgs.NotAvailable),
		}
		if v.stats.EarliestYear != nil && v.stats.LatestYear != nil {
			parts = append(parts, fmt.Sprintf("%s: %d–%d", msgs.StatsYears, *v.stats.EarliestYear, *v.stats.LatestYear))
		}
		if v.stats.TotalWatched != nil {
			parts = append(parts, msgs.StatsWatched+": "+render.FormatNumber(*v.stats.TotalWatched))
		}
		b.WriteString(headerStyle.Render(msgs.Title))
		b.WriteString("\n")
		b.WriteString(mutedStyle.Render(strings.Join(parts, "  ·  ")))
		b.WriteString("\n\n")
	}

	if v.loading {
		b.WriteString(mutedStyle.Render(msgs.Loading))
		b.WriteString("\n")
	}

	if v.err != nil {
		b.WriteString(errorStyle.Render(msgs.LoadFailed + v.err.Error()))
		b.WriteString("\n")
		return b.String()
	}

	switch {
	case v.empty:
		b.WriteString(headerStyle.Render(msgs.NoResultsTitle))
		b.WriteString("\n")
		b.WriteString(mutedStyle.Render(msgs.NoResultsHint))
		b.WriteString("\n")
	case v.page != nil:
		for _, item := range v.page.Items {
			b.WriteString(v.row(item))
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(v.count)
		b.WriteString("\n")
	}

	if v.info != "" {
		b.WriteString(v.footer())
		b.WriteString("\n")
	}
	return b.String()
}

func (v *View) row(item domain.CatalogItem) string {
	collections := int64(0)
	if item.Collections != nil {
		collections = int64(*item.Collections)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		titleStyle.Render(item.Title),
		yearStyle.Render(strconv.Itoa(item.Year)),
		ratingStyle.Render(v.locale.RatingBadge(item.AverageRating)),
		numberStyle.Render(render.FormatNumber(collections)),
		numberStyle.Render(v.locale.Percent(item.CompletionRate)),
	)
}

func (v *View) footer() string {
	prev, next := "‹ "+v.locale.Msgs.Previous, v.locale.Msgs.Next+" ›"
	if !v.hasPrev {
		prev = mutedStyle.Render(prev)
	}
	if !v.hasNext {
		next = mutedStyle.Render(next)
	}
	return prev + "   " + v.info + "   " + next
}

func (v *View) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, v.String())
	return int64(n), err
}

func optional64(n *int64, missing string) string {
	if n == nil {
		return missing
	}
	return render.FormatNumber(*n)
}
