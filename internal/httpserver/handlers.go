package httpserver

import (
	"bytes"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	log "github.com/sirupsen/logrus"

	"animedb/client/internal/binding"
	"animedb/client/internal/client"
	"animedb/client/internal/domain"
	"animedb/client/internal/fetcher"
	"animedb/client/internal/render"
	"animedb/client/internal/service"
)

type handlers struct {
	cfg Config
	svc *service.Service
}

func (h *handlers) request(r *http.Request) service.Request {
	return service.Request{
		Session: SessionFromContext(r.Context()),
		BaseURL: client.ResolveBaseURL(h.cfg.API, r.Host),
	}
}

func (h *handlers) locale(r *http.Request) render.Locale {
	return render.MatchLocale(h.cfg.Locale, r.Header.Get("Accept-Language"))
}

func (h *handlers) index(w http.ResponseWriter, r *http.Request) {
	locale := h.locale(r)
	view := render.NewHTMLView(locale)

	vs := h.svc.Index(r.Context(), h.request(r), view)

	writeHTML(w, func(buf *bytes.Buffer) error {
		return view.WritePage(buf, binding.ControlValues(vs, locale.Msgs))
	})
}

func (h *handlers) search(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	h.apply(w, r, binding.ParseSearch(r.PostForm), false)
}

func (h *handlers) filters(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	h.apply(w, r, binding.ParseFilters(r.PostForm), false)
}

func (h *handlers) reset(w http.ResponseWriter, r *http.Request) {
	h.apply(w, r, domain.ResetAction{}, true)
}

func (h *handlers) page(w http.ResponseWriter, r *http.Request) {
	action, err := binding.ParseDelta(r.URL.Query().Get("delta"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	h.apply(w, r, action, false)
}

// apply runs one action and answers with the results fragment, or the whole
// browser region when the controls must be redrawn too.
func (h *handlers) apply(w http.ResponseWriter, r *http.Request, action domain.Action, withControls bool) {
	locale := h.locale(r)
	view := render.NewHTMLView(locale)

	vs, err := h.svc.Apply(r.Context(), h.request(r), action, view)
	if errors.Is(err, fetcher.ErrStale) {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	if !HTMXInfoFromContext(r.Context()).IsHTMX {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	writeHTML(w, func(buf *bytes.Buffer) error {
		if withControls {
			return view.WriteBrowser(buf, binding.ControlValues(vs, locale.Msgs))
		}
		return view.WriteResults(buf)
	})
}

func (h *handlers) detail(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id < 1 {
		http.Error(w, "invalid anime id", http.StatusBadRequest)
		return
	}

	locale := h.locale(r)
	var detail render.Detail
	if item, err := h.svc.Detail(r.Context(), h.request(r), id); err != nil {
		detail = locale.DetailError(err)
	} else {
		detail = locale.Detail(*item)
	}

	writeHTML(w, func(buf *bytes.Buffer) error {
		return render.WriteDetail(buf, detail)
	})
}

func writeHTML(w http.ResponseWriter, fill func(buf *bytes.Buffer) error) {
	var buf bytes.Buffer
	if err := fill(&buf); err != nil {
		log.Errorf("❌ Failed to render template: %v", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := buf.WriteTo(w); err != nil {
		log.Warnf("⚠️ Failed to write response: %v", err)
	}
}
