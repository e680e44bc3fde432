// Package binding turns submitted control values into ViewState actions and back.
package binding

import (
	"errors"
	"math"
	"net/url"
	"strconv"
	"strings"

	"animedb/client/internal/domain"
	"animedb/client/internal/render"
)

var ErrInvalidDelta = errors.New("page delta must be -1 or 1")

func ParseSearch(form url.Values) domain.SearchAction {
	return domain.SearchAction{Query: strings.TrimSpace(form.Get("search"))}
}

// ParseFilters reads the filter and sort controls. Empty or unparsable numeric
// fields are left unset.
func ParseFilters(form url.Values) domain.FilterAction {
	return domain.FilterAction{Filters: domain.Filters{
		YearFrom:   parseInt(form.Get("year_from")),
		YearTo:     parseInt(form.Get("year_to")),
		RatingFrom: parseFloat(form.Get("rating_from")),
		RatingTo:   parseFloat(form.Get("rating_to")),
		SortBy:     domain.SortField(form.Get("sort_by")),
		SortOrder:  domain.SortOrder(form.Get("sort_order")),
	}}
}

func ParseDelta(raw string) (domain.PageAction, error) {
	delta, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || (delta != 1 && delta != -1) {
		return domain.PageAction{}, ErrInvalidDelta
	}
	return domain.PageAction{Delta: delta}, nil
}

func parseInt(raw string) *int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &v
}

func parseFloat(raw string) *float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// ControlValues reflects a state back into the controls, e.g. after a reset.
func ControlValues(vs domain.ViewState, msgs *render.Messages) render.Controls {
	c := render.Controls{Search: vs.Search}
	if vs.YearFrom != nil {
		c.YearFrom = strconv.Itoa(*vs.YearFrom)
	}
	if vs.YearTo != nil {
		c.YearTo = strconv.Itoa(*vs.YearTo)
	}
	if vs.RatingFrom != nil {
		c.RatingFrom = strconv.FormatFloat(*vs.RatingFrom, 'f', -1, 64)
	}
	if vs.RatingTo != nil {
		c.RatingTo = strconv.FormatFloat(*vs.RatingTo, 'f', -1, 64)
	}

	for _, field := range domain.SortFields {
		c.SortBy = append(c.SortBy, render.Option{
			Value:    field.String(),
			Label:    msgs.SortLabels[field],
			Selected: field == vs.SortBy,
		})
	}
	c.SortOrder = []render.Option{
		{Value: domain.SortDescending.String(), Label: msgs.Descending, Selected: vs.SortOrder == domain.SortDescending},
		{Value: domain.SortAscending.String(), Label: msgs.Ascending, Selected: vs.SortOrder == domain.SortAscending},
	}
	return c
}
