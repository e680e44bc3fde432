package render

import (
	"html/template"
	"strconv"
	"strings"

	"animedb/client/internal/domain"
)

// placeholderCover is a neutral 60x80 cover used for missing or broken artwork.
const placeholderCover = template.URL("data:image/svg+xml;base64,PHN2ZyB3aWR0aD0iNjAiIGhlaWdodD0iODAiIHZpZXdCb3g9IjAgMCA2MCA4MCIgZmlsbD0ibm9uZSIgeG1sbnM9Imh0dHA6Ly93d3cudzMub3JnLzIwMDAvc3ZnIj4KPHJlY3Qgd2lkdGg9IjYwIiBoZWlnaHQ9IjgwIiBmaWxsPSIjRjNGNEY2Ii8+CjxwYXRoIGQ9Ik0zMCA0MEMyNi42ODYzIDQwIDI0IDM3LjMxMzcgMjQgMzRDMjQgMzAuNjg2MyAyNi42ODYzIDI4IDMwIDI4QzMzLjMxMzcgMjggMzYgMzAuNjg2MyAzNiAzNEMzNiAzNy4zMTM3IDMzLjMxMzcgNDAgMzAgNDBaTTM0IDUySDI2VjQ0SDM0VjUyWiIgZmlsbD0iIzlDQThBNyIvPgo8L3N2Zz4K")

type Card struct {
	Msgs *Messages

	ID             int
	HasID          bool
	Title          string
	Year           string
	Cover          string
	UsePlaceholder bool
	Collections    string
	Watched        string
	RatingCount    string
	Completion     string
	Rating         string
}

func (l Locale) Card(item domain.CatalogItem) Card {
	card := Card{
		Msgs:           l.Msgs,
		Title:          item.Title,
		Year:           strconv.Itoa(item.Year),
		UsePlaceholder: !item.HasCover(),
		Collections:    l.OptionalCount(item.Collections),
		Watched:        l.OptionalCount(item.Watched),
		RatingCount:    l.OptionalCount(item.RatingCount),
		Completion:     l.Percent(item.CompletionRate),
		Rating:         l.RatingBadge(item.AverageRating),
	}
	if item.ID != nil {
		card.ID = *item.ID
		card.HasID = true
	}
	if !card.UsePlaceholder {
		card.Cover = *item.ImgURL
	}
	return card
}

// Results is the catalog region: status panels, grid, count and pagination.
type Results struct {
	Msgs *Messages

	Loading      bool
	ErrorVisible bool
	ErrorText    string

	Empty     bool
	Cards     []Card
	CountText string

	PageInfo     string
	PrevDisabled bool
	NextDisabled bool
}

type Stats struct {
	Msgs *Messages

	Total       string
	Average     string
	Collections string
	Years       string
	Watched     string
}

func (l Locale) placeholderStats() Stats {
	return Stats{Msgs: l.Msgs, Total: "-", Average: "-", Collections: "-"}
}

type Option struct {
	Value    string
	Label    string
	Selected bool
}

// Controls holds the current values of the search, filter and sort inputs.
type Controls struct {
	Search     string
	YearFrom   string
	YearTo     string
	RatingFrom string
	RatingTo   string
	SortBy     []Option
	SortOrder  []Option
}

type Detail struct {
	Msgs *Messages

	Card      Card
	Tags      []string
	ErrorText string
}

func (l Locale) Detail(item domain.CatalogItem) Detail {
	detail := Detail{Msgs: l.Msgs, Card: l.Card(item)}
	if item.Tags != nil {
		for _, tag := range strings.Split(*item.Tags, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				detail.Tags = append(detail.Tags, tag)
			}
		}
	}
	return detail
}

func (l Locale) DetailError(err error) Detail {
	return Detail{Msgs: l.Msgs, ErrorText: l.Msgs.LoadFailed + err.Error()}
}

// Page is the full document.
type Page struct {
	Msgs     *Messages
	Stats    Stats
	Controls Controls
	Results  Results
}
