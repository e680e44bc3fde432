package domain

type SortField string

func (f SortField) String() string {
	return string(f)
}

const (
	SortByTitle         SortField = "title"
	SortByYear          SortField = "year"
	SortByAverageRating SortField = "average_rating"
	SortByRatingCount   SortField = "rating_count"
	SortByCollections   SortField = "collections"
	SortByWatched       SortField = "watched"
)

var SortFields = []SortField{
	SortByCollections,
	SortByAverageRating,
	SortByYear,
	SortByRatingCount,
	SortByWatched,
	SortByTitle,
}

func (f SortField) Valid() bool {
	for _, field := range SortFields {
		if f == field {
			return true
		}
	}
	return false
}

type SortOrder string

func (o SortOrder) String() string {
	return string(o)
}

const (
	SortAscending  SortOrder = "asc"
	SortDescending SortOrder = "desc"
)

func (o SortOrder) Valid() bool {
	return o == SortAscending || o == SortDescending
}
