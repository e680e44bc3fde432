package render

import (
	"animedb/client/internal/domain"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Messages is the UI text for one language. Entries with verbs are fmt formats.
type Messages struct {
	Lang string

	Title             string
	SearchPlaceholder string
	SearchButton      string
	YearFrom          string
	YearTo            string
	RatingFrom        string
	RatingTo          string
	SortBy            string
	SortOrder         string
	Ascending         string
	Descending        string
	Reset             string
	SortLabels        map[domain.SortField]string

	Loading        string
	LoadFailed     string // prefix for the inline error panel
	ResultsCount   string // %s: grouped total
	PageInfo       string // %d page, %d total pages
	Previous       string
	Next           string
	NoResultsTitle string
	NoResultsHint  string

	Collections    string
	Watched        string
	RatingCount    string
	CompletionRate string
	NotAvailable   string
	Unrated        string
	Tags           string

	StatsTotal       string
	StatsAvgRating   string
	StatsCollections string
	StatsYears       string
	StatsWatched     string
}

var english = &Messages{
	Lang:              "en",
	Title:             "AnimeDB",
	SearchPlaceholder: "Search titles...",
	SearchButton:      "Search",
	YearFrom:          "Year from",
	YearTo:            "Year to",
	RatingFrom:        "Rating from",
	RatingTo:          "Rating to",
	SortBy:            "Sort by",
	SortOrder:         "Order",
	Ascending:         "Ascending",
	Descending:        "Descending",
	Reset:             "Reset filters",
	SortLabels: map[domain.SortField]string{
		domain.SortByCollections:   "Collections",
		domain.SortByAverageRating: "Rating",
		domain.SortByYear:          "Year",
		domain.SortByRatingCount:   "Rating count",
		domain.SortByWatched:       "Watched",
		domain.SortByTitle:         "Title",
	},
	Loading:          "Loading...",
	LoadFailed:       "Failed to load data: ",
	ResultsCount:     "Found %s anime",
	PageInfo:         "Page %d of %d",
	Previous:         "Previous",
	Next:             "Next",
	NoResultsTitle:   "No matching anime found",
	NoResultsHint:    "Try adjusting your search or filters",
	Collections:      "Collections",
	Watched:          "Watched",
	RatingCount:      "Ratings",
	CompletionRate:   "Completion",
	NotAvailable:     "N/A",
	Unrated:          "Unrated",
	Tags:             "Tags",
	StatsTotal:       "Titles",
	StatsAvgRating:   "Average rating",
	StatsCollections: "Collections",
	StatsYears:       "Years",
	StatsWatched:     "Watched",
}

var simplifiedChinese = &Messages{
	Lang:              "zh-Hans",
	Title:             "动漫数据库",
	SearchPlaceholder: "搜索动漫标题...",
	SearchButton:      "搜索",
	YearFrom:          "起始年份",
	YearTo:            "结束年份",
	RatingFrom:        "最低评分",
	RatingTo:          "最高评分",
	SortBy:            "排序方式",
	SortOrder:         "顺序",
	Ascending:         "升序",
	Descending:        "降序",
	Reset:             "重置筛选",
	SortLabels: map[domain.SortField]string{
		domain.SortByCollections:   "收藏数",
		domain.SortByAverageRating: "评分",
		domain.SortByYear:          "年份",
		domain.SortByRatingCount:   "评分人数",
		domain.SortByWatched:       "观看数",
		domain.SortByTitle:         "标题",
	},
	Loading:          "加载中...",
	LoadFailed:       "加载数据失败: ",
	ResultsCount:     "找到 %s 部动漫",
	PageInfo:         "第 %d 页，共 %d 页",
	Previous:         "上一页",
	Next:             "下一页",
	NoResultsTitle:   "没有找到匹配的动漫",
	NoResultsHint:    "请尝试调整搜索条件或筛选器",
	Collections:      "收藏",
	Watched:          "观看",
	RatingCount:      "评分",
	CompletionRate:   "完成率",
	NotAvailable:     "N/A",
	Unrated:          "未评分",
	Tags:             "标签",
	StatsTotal:       "动漫总数",
	StatsAvgRating:   "平均评分",
	StatsCollections: "总收藏",
	StatsYears:       "年份跨度",
	StatsWatched:     "总观看",
}

var (
	supported = []language.Tag{language.English, language.SimplifiedChinese}
	catalogs  = []*Messages{english, simplifiedChinese}
	matcher   = language.NewMatcher(supported)
)

// Locale bundles the message catalog with a locale-aware number printer.
type Locale struct {
	Tag     language.Tag
	Msgs    *Messages
	printer *message.Printer
}

// MatchLocale picks a supported locale. acceptLanguage is an Accept-Language
// header value and takes precedence over the configured fallback.
func MatchLocale(fallback, acceptLanguage string) Locale {
	var prefs []language.Tag
	if acceptLanguage != "" {
		if tags, _, err := language.ParseAcceptLanguage(acceptLanguage); err == nil {
			prefs = append(prefs, tags...)
		}
	}
	if tag, err := language.Parse(fallback); err == nil {
		prefs = append(prefs, tag)
	}

	_, idx, _ := matcher.Match(prefs...)
	return Locale{
		Tag:     supported[idx],
		Msgs:    catalogs[idx],
		printer: message.NewPrinter(supported[idx]),
	}
}

func English() Locale {
	return MatchLocale("en", "")
}
