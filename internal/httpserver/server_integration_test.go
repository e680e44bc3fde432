package httpserver_test

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"

	"animedb/client/internal/client"
	"animedb/client/internal/config"
	"animedb/client/internal/fetcher"
	"animedb/client/internal/httpserver"
	"animedb/client/internal/service"
	"animedb/client/internal/state"
)

// fakeAPI serves a 543-item catalog, 20 per page.
type fakeAPI struct {
	mu       sync.Mutex
	queries  []url.Values
	failList bool
}

func (a *fakeAPI) lastQuery() url.Values {
	a.mu.Lock()
	defer a.mu.Unlock()
	if len(a.queries) == 0 {
		return nil
	}
	return a.queries[len(a.queries)-1]
}

func (a *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	switch {
	case r.URL.Path == "/api/stats":
		_, _ = w.Write([]byte(`{"total_anime":12000,"avg_rating":null,"total_collections":5000000}`))

	case r.URL.Path == "/api/anime":
		a.mu.Lock()
		a.queries = append(a.queries, r.URL.Query())
		fail := a.failList
		a.mu.Unlock()

		if fail {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}

		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		total := 543
		if r.URL.Query().Get("search") == "nothing" {
			total = 0
		}
		totalPages := (total + 19) / 20

		items := []map[string]any{}
		for i := (page - 1) * 20; i < page*20 && i < total; i++ {
			items = append(items, map[string]any{
				"id":    i + 1,
				"title": fmt.Sprintf("Anime %d", i+1),
				"year":  1990 + i%30,
			})
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data":        items,
			"total":       total,
			"page":        page,
			"total_pages": totalPages,
		})

	case strings.HasPrefix(r.URL.Path, "/api/anime/"):
		if r.URL.Path != "/api/anime/5" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(`{"id":5,"title":"Anime 5","year":1994,"tags":"mecha, drama","completion_rate":0.876}`))

	default:
		http.NotFound(w, r)
	}
}

type browser struct {
	t      *testing.T
	base   string
	client *http.Client
}

func newBrowser(t *testing.T) (*browser, *fakeAPI) {
	t.Helper()

	api := &fakeAPI{}
	apiSrv := httptest.NewServer(api)
	t.Cleanup(apiSrv.Close)

	apiCfg := config.APIConfig{BaseURL: apiSrv.URL}
	c := client.NewCatalogClient(apiCfg)
	t.Cleanup(func() { _ = client.Close(c) })

	svc := service.NewService(c, fetcher.NewSequencer(), state.NewMemoryStore(time.Hour))
	srv := httptest.NewServer(httpserver.NewRouter(httpserver.Config{
		API:        apiCfg,
		Locale:     "en",
		CookieName: "animedb_session",
		SessionTTL: time.Hour,
	}, svc))
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)

	return &browser{
		t:    t,
		base: srv.URL,
		client: &http.Client{
			Jar: jar,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}, api
}

func (b *browser) do(method, path string, form url.Values, htmx bool) (*http.Response, *goquery.Document) {
	b.t.Helper()

	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req, err := http.NewRequest(method, b.base+path, body)
	require.NoError(b.t, err)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if htmx {
		req.Header.Set("HX-Request", "true")
	}

	resp, err := b.client.Do(req)
	require.NoError(b.t, err)
	defer resp.Body.Close()

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	require.NoError(b.t, err)
	return resp, doc
}

func TestIndexRendersStatsAndFirstPage(t *testing.T) {
	t.Parallel()

	b, api := newBrowser(t)
	resp, doc := b.do(http.MethodGet, "/", nil, false)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "no-store", resp.Header.Get("Cache-Control"))
	require.NotEmpty(t, resp.Cookies())

	require.Equal(t, "12,000", doc.Find("#stat-total").Text())
	require.Equal(t, "N/A", doc.Find("#stat-avg-rating").Text())
	require.Equal(t, "5000K", doc.Find("#stat-collections").Text())

	require.Equal(t, 20, doc.Find("#grid .card").Length())
	require.Equal(t, "Found 543 anime", doc.Find("#results-count").Text())
	require.Equal(t, "Page 1 of 28", doc.Find("#page-info").Text())
	_, prev := doc.Find("#prev-page").Attr("disabled")
	_, next := doc.Find("#next-page").Attr("disabled")
	require.True(t, prev)
	require.False(t, next)

	q := api.lastQuery()
	require.Equal(t, url.Values{
		"page":       {"1"},
		"page_size":  {"20"},
		"sort_by":    {"collections"},
		"sort_order": {"desc"},
	}, q)
}

func TestPagingSearchAndReset(t *testing.T) {
	t.Parallel()

	b, api := newBrowser(t)
	b.do(http.MethodGet, "/", nil, false)

	resp, doc := b.do(http.MethodPost, "/page?delta=1", url.Values{}, true)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "Page 2 of 28", doc.Find("#page-info").Text())
	require.Equal(t, "Anime 21", doc.Find("#grid .card .title").First().Text())

	_, doc = b.do(http.MethodPost, "/filters", url.Values{
		"year_from":  {"2000"},
		"rating_to":  {""},
		"sort_by":    {"year"},
		"sort_order": {"asc"},
	}, true)
	q := api.lastQuery()
	require.Equal(t, "1", q.Get("page"))
	require.Equal(t, "2000", q.Get("year_from"))
	require.False(t, q.Has("rating_to"))
	require.Equal(t, "year", q.Get("sort_by"))
	require.Equal(t, "Page 1 of 28", doc.Find("#page-info").Text())

	_, doc = b.do(http.MethodPost, "/search", url.Values{"search": {" nothing "}}, true)
	q = api.lastQuery()
	require.Equal(t, "nothing", q.Get("search"))
	require.Equal(t, "2000", q.Get("year_from"), "search keeps filters")
	require.Zero(t, doc.Find("#grid .card").Length())
	require.Equal(t, "No matching anime found", doc.Find("#grid .empty h3").Text())
	require.Empty(t, doc.Find("#results-count").Text())

	_, doc = b.do(http.MethodPost, "/reset", url.Values{}, true)
	require.Equal(t, 1, doc.Find("#browser").Length())
	require.Empty(t, doc.Find("#search").AttrOr("value", "x"))
	require.Equal(t, "collections", doc.Find("#sort-by option[selected]").AttrOr("value", ""))
	require.Equal(t, url.Values{
		"page":       {"1"},
		"page_size":  {"20"},
		"sort_by":    {"collections"},
		"sort_order": {"desc"},
	}, api.lastQuery())
}

func TestPreviousPageClampsAtOne(t *testing.T) {
	t.Parallel()

	b, api := newBrowser(t)
	_, doc := b.do(http.MethodPost, "/page?delta=-1", url.Values{}, true)
	require.Equal(t, "1", api.lastQuery().Get("page"))
	require.Equal(t, "Page 1 of 28", doc.Find("#page-info").Text())
}

func TestInvalidDeltaIsRejected(t *testing.T) {
	t.Parallel()

	b, _ := newBrowser(t)
	resp, _ := b.do(http.MethodPost, "/page?delta=5", url.Values{}, true)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCatalogErrorIsShownInline(t *testing.T) {
	t.Parallel()

	b, api := newBrowser(t)
	api.mu.Lock()
	api.failList = true
	api.mu.Unlock()

	resp, doc := b.do(http.MethodPost, "/search", url.Values{"search": {"x"}}, true)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	errText := doc.Find("#error").Text()
	require.True(t, strings.HasPrefix(errText, "Failed to load data: "), errText)
	require.Contains(t, errText, "HTTP error: status 500")
	require.False(t, doc.Find("#error").HasClass("hidden"))
	require.True(t, doc.Find("#loading").HasClass("hidden"))
}

func TestNonHTMXActionRedirectsHome(t *testing.T) {
	t.Parallel()

	b, api := newBrowser(t)
	resp, _ := b.do(http.MethodPost, "/search", url.Values{"search": {"eva"}}, false)
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	require.Equal(t, "/", resp.Header.Get("Location"))

	b.do(http.MethodGet, "/", nil, false)
	require.Equal(t, "eva", api.lastQuery().Get("search"), "state survives the redirect")
}

func TestDetailFragment(t *testing.T) {
	t.Parallel()

	b, _ := newBrowser(t)

	resp, doc := b.do(http.MethodGet, "/anime/5", nil, true)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "Anime 5", doc.Find("#detail .title").Text())
	require.Equal(t, "Completion: 87.6%", doc.Find("#detail .completion").Text())
	require.Equal(t, 2, doc.Find("#detail .tag").Length())

	_, doc = b.do(http.MethodGet, "/anime/6", nil, true)
	require.Contains(t, doc.Find("#detail .error").Text(), "404")

	resp, _ = b.do(http.MethodGet, "/anime/abc", nil, true)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAcceptLanguageSelectsChinese(t *testing.T) {
	t.Parallel()

	b, _ := newBrowser(t)
	req, err := http.NewRequest(http.MethodGet, b.base+"/", nil)
	require.NoError(t, err)
	req.Header.Set("Accept-Language", "zh-CN,zh;q=0.9")

	resp, err := b.client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	require.NoError(t, err)
	require.Equal(t, "zh-Hans", doc.Find("html").AttrOr("lang", ""))
	require.Equal(t, "找到 543 部动漫", doc.Find("#results-count").Text())
}

func TestRequestHostDoesNotChooseAPIOrigin(t *testing.T) {
	t.Parallel()

	api := &fakeAPI{}
	apiSrv := httptest.NewServer(api)
	t.Cleanup(apiSrv.Close)

	var internalHits int
	var internalMu sync.Mutex
	internal := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		internalMu.Lock()
		internalHits++
		internalMu.Unlock()
		_, _ = w.Write([]byte("secret"))
	}))
	t.Cleanup(internal.Close)

	apiCfg := config.APIConfig{DevHost: "localhost", DevBaseURL: apiSrv.URL}
	c := client.NewCatalogClient(apiCfg)
	t.Cleanup(func() { _ = client.Close(c) })

	svc := service.NewService(c, fetcher.NewSequencer(), state.NewMemoryStore(time.Hour))
	router := httpserver.NewRouter(httpserver.Config{
		API:        apiCfg,
		Locale:     "en",
		CookieName: "animedb_session",
		SessionTTL: time.Hour,
	}, svc)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Host = strings.TrimPrefix(internal.URL, "http://")
	req.Header.Set("X-Forwarded-Proto", "http")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	internalMu.Lock()
	require.Zero(t, internalHits)
	internalMu.Unlock()
	require.NotNil(t, api.lastQuery())
	require.NotContains(t, rec.Body.String(), "secret")
}
