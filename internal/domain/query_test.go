package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestQueryRequiredParameters(t *testing.T) {
	t.Parallel()

	params := DefaultViewState().Query()

	require.Equal(t, "1", params.Get("page"))
	require.Equal(t, "20", params.Get("page_size"))
	require.Equal(t, "collections", params.Get("sort_by"))
	require.Equal(t, "desc", params.Get("sort_order"))
	require.Len(t, params, 4, "optional parameters must be omitted when unset")
}

func TestQueryOptionalParameters(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		state func(*ViewState)
		key   string
		want  string
	}{
		{name: "search", state: func(s *ViewState) { s.Search = "bocchi" }, key: "search", want: "bocchi"},
		{name: "year from", state: func(s *ViewState) { s.YearFrom = intPtr(2009) }, key: "year_from", want: "2009"},
		{name: "year to", state: func(s *ViewState) { s.YearTo = intPtr(2022) }, key: "year_to", want: "2022"},
		{name: "zero year is still set", state: func(s *ViewState) { s.YearFrom = intPtr(0) }, key: "year_from", want: "0"},
		{name: "rating from", state: func(s *ViewState) { s.RatingFrom = floatPtr(7.5) }, key: "rating_from", want: "7.5"},
		{name: "rating to", state: func(s *ViewState) { s.RatingTo = floatPtr(9) }, key: "rating_to", want: "9"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			s := DefaultViewState()
			tc.state(&s)
			params := s.Query()
			require.Equal(t, tc.want, params.Get(tc.key))
			require.Len(t, params, 5)
		})
	}
}
