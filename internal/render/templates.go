package render

import "html/template"

var templates = template.Must(template.New("render").Funcs(template.FuncMap{
	"placeholder": func() template.URL { return placeholderCover },
}).Parse(layout))

const layout = `
{{define "page"}}<!DOCTYPE html>
<html lang="{{.Msgs.Lang}}">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Msgs.Title}}</title>
<script src="https://unpkg.com/htmx.org@2.0.4" crossorigin="anonymous"></script>
<style>
body{font-family:system-ui,sans-serif;margin:0 auto;max-width:1200px;padding:1rem;color:#1f2937}
.hidden{display:none}
.stats{display:flex;gap:1.5rem;margin-bottom:1rem}
.stat-value{font-size:1.4rem;font-weight:600}
.controls{display:flex;flex-wrap:wrap;gap:.5rem;margin-bottom:1rem}
.grid{display:grid;grid-template-columns:repeat(auto-fill,minmax(260px,1fr));gap:1rem}
.card{display:flex;gap:.75rem;border:1px solid #e5e7eb;border-radius:8px;padding:.75rem;cursor:pointer}
.card img{width:60px;height:80px;object-fit:cover;border-radius:4px}
.rating{color:#b45309;font-weight:600}
.error{background:#fef2f2;color:#b91c1c;padding:.75rem;border-radius:6px}
.empty{text-align:center;padding:3rem;color:#6b7280}
.pagination{display:flex;align-items:center;justify-content:center;gap:1rem;margin-top:1rem}
</style>
</head>
<body>
<h1>{{.Msgs.Title}}</h1>
{{template "stats" .Stats}}
{{template "browser" .}}
<aside id="detail"></aside>
</body>
</html>
{{end}}

{{define "stats"}}<section id="stats" class="stats">
<div><div class="stat-value" id="stat-total">{{.Total}}</div><div>{{.Msgs.StatsTotal}}</div></div>
<div><div class="stat-value" id="stat-avg-rating">{{.Average}}</div><div>{{.Msgs.StatsAvgRating}}</div></div>
<div><div class="stat-value" id="stat-collections">{{.Collections}}</div><div>{{.Msgs.StatsCollections}}</div></div>
{{if .Years}}<div><div class="stat-value" id="stat-years">{{.Years}}</div><div>{{.Msgs.StatsYears}}</div></div>{{end}}
{{if .Watched}}<div><div class="stat-value" id="stat-watched">{{.Watched}}</div><div>{{.Msgs.StatsWatched}}</div></div>{{end}}
</section>{{end}}

{{define "browser"}}<div id="browser">
{{template "controls" .}}
{{template "results" .Results}}
</div>{{end}}

{{define "controls"}}<form id="controls" class="controls" action="/search" method="post" hx-post="/search" hx-target="#results" hx-swap="outerHTML">
<input type="search" id="search" name="search" value="{{.Controls.Search}}" placeholder="{{.Msgs.SearchPlaceholder}}">
<button type="submit" id="search-button">{{.Msgs.SearchButton}}</button>
<div id="filters" class="controls" hx-post="/filters" hx-trigger="change" hx-include="#filters" hx-target="#results" hx-swap="outerHTML">
<input type="number" id="year-from" name="year_from" value="{{.Controls.YearFrom}}" placeholder="{{.Msgs.YearFrom}}">
<input type="number" id="year-to" name="year_to" value="{{.Controls.YearTo}}" placeholder="{{.Msgs.YearTo}}">
<input type="number" step="0.1" id="rating-from" name="rating_from" value="{{.Controls.RatingFrom}}" placeholder="{{.Msgs.RatingFrom}}">
<input type="number" step="0.1" id="rating-to" name="rating_to" value="{{.Controls.RatingTo}}" placeholder="{{.Msgs.RatingTo}}">
<label>{{.Msgs.SortBy}} <select id="sort-by" name="sort_by">{{range .Controls.SortBy}}<option value="{{.Value}}"{{if .Selected}} selected{{end}}>{{.Label}}</option>{{end}}</select></label>
<label>{{.Msgs.SortOrder}} <select id="sort-order" name="sort_order">{{range .Controls.SortOrder}}<option value="{{.Value}}"{{if .Selected}} selected{{end}}>{{.Label}}</option>{{end}}</select></label>
</div>
<button type="button" id="reset" hx-post="/reset" hx-target="#browser" hx-swap="outerHTML">{{.Msgs.Reset}}</button>
</form>{{end}}

{{define "results"}}<section id="results">
<div id="loading" class="{{if not .Loading}}hidden{{end}}">{{.Msgs.Loading}}</div>
<div id="error" class="error{{if not .ErrorVisible}} hidden{{end}}">{{.ErrorText}}</div>
<p id="results-count">{{.CountText}}</p>
<div id="grid" class="grid">
{{- if .Empty}}
<div class="empty"><h3>{{.Msgs.NoResultsTitle}}</h3><p>{{.Msgs.NoResultsHint}}</p></div>
{{- else}}{{range .Cards}}{{template "card" .}}{{end}}{{end}}
</div>
{{template "pagination" .}}
</section>{{end}}

{{define "card"}}<article class="card"{{if .HasID}} data-id="{{.ID}}" hx-get="/anime/{{.ID}}" hx-target="#detail" hx-swap="outerHTML"{{end}}>
<img src="{{if .UsePlaceholder}}{{placeholder}}{{else}}{{.Cover}}{{end}}" alt="{{.Title}}" loading="lazy" onerror="this.onerror=null;this.src='{{placeholder}}'">
<div>
<h3 class="title">{{.Title}}</h3>
<div class="year">{{.Year}}</div>
<div class="rating">{{.Rating}}</div>
<div class="meta">
<span class="collections">{{.Msgs.Collections}}: {{.Collections}}</span>
<span class="watched">{{.Msgs.Watched}}: {{.Watched}}</span>
<span class="rating-count">{{.Msgs.RatingCount}}: {{.RatingCount}}</span>
<span class="completion">{{.Msgs.CompletionRate}}: {{.Completion}}</span>
</div>
</div>
</article>{{end}}

{{define "pagination"}}<nav id="pagination" class="pagination">
<button type="button" id="prev-page" hx-post="/page?delta=-1" hx-target="#results" hx-swap="outerHTML"{{if .PrevDisabled}} disabled{{end}}>{{.Msgs.Previous}}</button>
<span id="page-info">{{.PageInfo}}</span>
<button type="button" id="next-page" hx-post="/page?delta=1" hx-target="#results" hx-swap="outerHTML"{{if .NextDisabled}} disabled{{end}}>{{.Msgs.Next}}</button>
</nav>{{end}}

{{define "detail"}}<aside id="detail">
{{- if .ErrorText}}
<div class="error">{{.ErrorText}}</div>
{{- else}}
{{template "card" .Card}}
{{if .Tags}}<div class="tags"><strong>{{.Msgs.Tags}}</strong>{{range .Tags}} <span class="tag">{{.}}</span>{{end}}</div>{{end}}
{{- end}}
</aside>{{end}}
`
