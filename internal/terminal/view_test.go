package terminal

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"animedb/client/internal/domain"
	"animedb/client/internal/render"
)

func TestViewRendersRowsAndFooter(t *testing.T) {
	t.Parallel()

	collections := 66311
	rating := 9.07
	rate := 0.762
	page := &domain.CatalogPage{
		Items: []domain.CatalogItem{{
			Title:          "Steins;Gate",
			Year:           2011,
			Collections:    &collections,
			AverageRating:  &rating,
			CompletionRate: &rate,
		}},
		Total:      1543,
		Page:       2,
		TotalPages: 78,
	}

	v := NewView(render.English())
	v.ShowLoading()
	v.HideError()
	v.RenderGrid(page)
	v.RenderPagination(page)
	v.HideLoading()

	out := v.String()
	require.Contains(t, out, "Steins;Gate")
	require.Contains(t, out, "2011")
	require.Contains(t, out, "9.1 ★")
	require.Contains(t, out, "66.3K")
	require.Contains(t, out, "76.2%")
	require.Contains(t, out, "Found 1.5K anime")
	require.Contains(t, out, "Page 2 of 78")
	require.NotContains(t, out, "Loading...")
}

func TestViewStats(t *testing.T) {
	t.Parallel()

	total := int64(5_000_000)
	v := NewView(render.English())
	v.RenderStats(&domain.StatsSummary{TotalAnime: 12000, TotalCollections: &total})

	out := v.String()
	require.Contains(t, out, "Titles: 12.0K")
	require.Contains(t, out, "Average rating: N/A")
	require.Contains(t, out, "Collections: 5.0M")
}

func TestViewEmptyAndError(t *testing.T) {
	t.Parallel()

	v := NewView(render.English())
	v.RenderGrid(&domain.CatalogPage{Page: 1})
	require.Contains(t, v.String(), "No matching anime found")

	v.ShowError(errors.New("HTTP error: status 503"))
	require.Contains(t, v.String(), "Failed to load data: HTTP error: status 503")

	var buf bytes.Buffer
	_, err := v.WriteTo(&buf)
	require.NoError(t, err)
	require.Equal(t, v.String(), buf.String())
}
