package domain

// NoIconURL is the cover the catalog reports for titles without artwork.
const NoIconURL = "https://bgm.tv/img/no_icon_subject.png"

type CatalogItem struct {
	ID             *int     `json:"id,omitempty"`
	Title          string   `json:"title"`
	Year           int      `json:"year"`
	ImgURL         *string  `json:"img_url,omitempty"`
	Collections    *int     `json:"collections,omitempty"`
	Watched        *int     `json:"watched,omitempty"`
	RatingCount    *int     `json:"rating_count,omitempty"`
	CompletionRate *float64 `json:"completion_rate,omitempty"` // 0..1
	AverageRating  *float64 `json:"average_rating,omitempty"`
	Tags           *string  `json:"tags,omitempty"`
}

// HasCover reports whether the item carries a usable cover image URL.
func (i CatalogItem) HasCover() bool {
	return i.ImgURL != nil && *i.ImgURL != "" && *i.ImgURL != NoIconURL
}

type CatalogPage struct {
	Items      []CatalogItem `json:"data"`        // Items in server order
	Total      int           `json:"total"`       // Total matches
	Page       int           `json:"page"`        // Current page number
	TotalPages int           `json:"total_pages"` // Total number of pages
	PageSize   int           `json:"page_size,omitempty"`
}

func (p *CatalogPage) HasPrevious() bool {
	return p.Page > 1
}

func (p *CatalogPage) HasNext() bool {
	return p.Page < p.TotalPages
}

type StatsSummary struct {
	TotalAnime       int      `json:"total_anime"`
	AvgRating        *float64 `json:"avg_rating"`
	TotalCollections *int64   `json:"total_collections"`
	EarliestYear     *int     `json:"earliest_year,omitempty"`
	LatestYear       *int     `json:"latest_year,omitempty"`
	TotalWatched     *int64   `json:"total_watched,omitempty"`
}
