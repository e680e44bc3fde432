package domain

// Action is a user interaction that produces the next ViewState.
type Action interface {
	apply(s ViewState) ViewState
}

// Update is the single transition function for ViewState.
func Update(s ViewState, a Action) ViewState {
	if a == nil {
		return s
	}
	return a.apply(s)
}

type SearchAction struct {
	Query string
}

func (a SearchAction) apply(s ViewState) ViewState {
	s.Search = a.Query
	s.Page = 1
	return s
}

type FilterAction struct {
	Filters Filters
}

func (a FilterAction) apply(s ViewState) ViewState {
	f := a.Filters
	s.YearFrom = f.YearFrom
	s.YearTo = f.YearTo
	s.RatingFrom = f.RatingFrom
	s.RatingTo = f.RatingTo

	s.SortBy = f.SortBy
	if !s.SortBy.Valid() {
		s.SortBy = DefaultSortBy
	}
	s.SortOrder = f.SortOrder
	if !s.SortOrder.Valid() {
		s.SortOrder = DefaultSortOrder
	}

	s.Page = 1
	return s
}

type ResetAction struct{}

func (ResetAction) apply(ViewState) ViewState {
	return DefaultViewState()
}

// PageAction moves by Delta pages. There is no upper clamp: the server's
// total_pages drives the navigation controls instead.
type PageAction struct {
	Delta int
}

func (a PageAction) apply(s ViewState) ViewState {
	s.Page += a.Delta
	if s.Page < 1 {
		s.Page = 1
	}
	return s
}
