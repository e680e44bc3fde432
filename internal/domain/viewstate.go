package domain

import (
	"net/url"
	"strconv"
)

const (
	DefaultPageSize  = 20
	DefaultSortBy    = SortByCollections
	DefaultSortOrder = SortDescending
)

// ViewState is what the user currently wants to see. Values are never mutated in
// place: Update returns the next state.
type ViewState struct {
	Page       int       `json:"page"`
	PageSize   int       `json:"page_size"`
	Search     string    `json:"search"`
	YearFrom   *int      `json:"year_from,omitempty"`
	YearTo     *int      `json:"year_to,omitempty"`
	RatingFrom *float64  `json:"rating_from,omitempty"`
	RatingTo   *float64  `json:"rating_to,omitempty"`
	SortBy     SortField `json:"sort_by"`
	SortOrder  SortOrder `json:"sort_order"`
}

// Filters is the set of values read from the filter and sort controls.
type Filters struct {
	YearFrom   *int
	YearTo     *int
	RatingFrom *float64
	RatingTo   *float64
	SortBy     SortField
	SortOrder  SortOrder
}

func DefaultViewState() ViewState {
	return ViewState{
		Page:      1,
		PageSize:  DefaultPageSize,
		SortBy:    DefaultSortBy,
		SortOrder: DefaultSortOrder,
	}
}

// Normalize repairs a state loaded from an untrusted source (session storage).
func (s ViewState) Normalize() ViewState {
	if s.Page < 1 {
		s.Page = 1
	}
	if s.PageSize < 1 {
		s.PageSize = DefaultPageSize
	}
	if !s.SortBy.Valid() {
		s.SortBy = DefaultSortBy
	}
	if !s.SortOrder.Valid() {
		s.SortOrder = DefaultSortOrder
	}
	return s
}

func (s ViewState) Filters() Filters {
	return Filters{
		YearFrom:   s.YearFrom,
		YearTo:     s.YearTo,
		RatingFrom: s.RatingFrom,
		RatingTo:   s.RatingTo,
		SortBy:     s.SortBy,
		SortOrder:  s.SortOrder,
	}
}

// Query serializes the state into catalog request parameters. The four required
// parameters are always present; optional ones only when set.
func (s ViewState) Query() url.Values {
	params := url.Values{}
	params.Set("page", strconv.Itoa(s.Page))
	params.Set("page_size", strconv.Itoa(s.PageSize))
	params.Set("sort_by", s.SortBy.String())
	params.Set("sort_order", s.SortOrder.String())

	if s.Search != "" {
		params.Set("search", s.Search)
	}
	if s.YearFrom != nil {
		params.Set("year_from", strconv.Itoa(*s.YearFrom))
	}
	if s.YearTo != nil {
		params.Set("year_to", strconv.Itoa(*s.YearTo))
	}
	if s.RatingFrom != nil {
		params.Set("rating_from", strconv.FormatFloat(*s.RatingFrom, 'f', -1, 64))
	}
	if s.RatingTo != nil {
		params.Set("rating_to", strconv.FormatFloat(*s.RatingTo, 'f', -1, 64))
	}

	return params
}
