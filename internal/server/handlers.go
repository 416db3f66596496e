package server

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	json "github.com/goccy/go-json"

	"github.com/vanderheijden86/trendradar/pkg/app"
	"github.com/vanderheijden86/trendradar/pkg/config"
	"github.com/vanderheijden86/trendradar/pkg/debug"
	"github.com/vanderheijden86/trendradar/pkg/export"
	"github.com/vanderheijden86/trendradar/pkg/filter"
	"github.com/vanderheijden86/trendradar/pkg/geom"
	"github.com/vanderheijden86/trendradar/pkg/metrics"
	"github.com/vanderheijden86/trendradar/pkg/model"
	"github.com/vanderheijden86/trendradar/pkg/projection"
	"github.com/vanderheijden86/trendradar/pkg/viewport"
)

var errBadParam = errors.New("invalid query parameter")

type handler struct {
	store    *Store
	defaults app.Options
}

// trendsResponse is the body of GET /api/v1/trends.
type trendsResponse struct {
	Count    int               `json:"count"`
	Total    int               `json:"total"`
	Filters  model.FilterState `json:"filters"`
	Trends   []model.Trend     `json:"trends"`
	Warnings []string          `json:"warnings,omitempty"`
}

type metricsResponse struct {
	Enabled bool                  `json:"enabled"`
	Timings []metrics.TimingStats `json:"timings"`
}

// filtersFromQuery reads category, impact, horizon, trl and search. Unknown
// enum names are returned as warnings; malformed levels are an error.
func filtersFromQuery(q url.Values) (model.FilterState, []string, error) {
	var levels []int
	for _, s := range strings.Split(q.Get("trl"), ",") {
		if s = strings.TrimSpace(s); s == "" {
			continue
		}
		n, err := strconv.Atoi(s)
		if err != nil || n < model.MinTRL || n > model.MaxTRL {
			return model.FilterState{}, nil, fmt.Errorf("%w: trl %q", errBadParam, s)
		}
		levels = append(levels, n)
	}
	search := q.Get("search")
	if search == "" {
		search = q.Get("q")
	}
	f, unknown := filter.Parse(q.Get("category"), q.Get("impact"), q.Get("horizon"), levels, search)
	return f, unknown, nil
}

func (h *handler) listTrends(w http.ResponseWriter, r *http.Request) {
	f, warnings, err := filtersFromQuery(r.URL.Query())
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error(), err)
		return
	}
	trends, _ := h.store.Snapshot()
	st := app.New(trends, app.Options{Filters: f})
	visible := st.Visible()
	if visible == nil {
		visible = []model.Trend{}
	}
	respondWithJSON(w, http.StatusOK, trendsResponse{
		Count:    len(visible),
		Total:    len(trends),
		Filters:  st.Filters(),
		Trends:   visible,
		Warnings: warnings,
	})
}

// getTrend returns one trend as JSON, or as markdown with ?format=md.
func (h *handler) getTrend(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	trends, _ := h.store.Snapshot()
	t, ok := model.FindByID(trends, id)
	if !ok {
		respondWithError(w, http.StatusNotFound, "Trend not found", nil)
		return
	}
	if r.URL.Query().Get("format") == "md" {
		w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
		w.Write([]byte(export.TrendMarkdown(t)))
		return
	}
	respondWithJSON(w, http.StatusOK, t)
}

func (h *handler) getSource(w http.ResponseWriter, r *http.Request) {
	_, source := h.store.Snapshot()
	respondWithJSON(w, http.StatusOK, source)
}

func (h *handler) getMetrics(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, metricsResponse{
		Enabled: metrics.Enabled(),
		Timings: metrics.AllTimingStats(),
	})
}

// chartOptions builds the per-request state options from the chart query.
func (h *handler) chartOptions(view model.ViewMode, q url.Values) (app.Options, error) {
	opts := h.defaults
	opts.View = view

	f, _, err := filtersFromQuery(q)
	if err != nil {
		return opts, err
	}
	opts.Filters = f

	if s := q.Get("method"); s != "" {
		m, ok := model.LookupMethod(s)
		if !ok {
			return opts, fmt.Errorf("%w: method %q", errBadParam, s)
		}
		opts.Method = m
	}

	num := func(name string, def float64) (float64, error) {
		s := q.Get(name)
		if s == "" {
			return def, nil
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %s %q", errBadParam, name, s)
		}
		return v, nil
	}
	zoom, err := num("zoom", 1)
	if err != nil {
		return opts, err
	}
	panX, err := num("panx", 0)
	if err != nil {
		return opts, err
	}
	panY, err := num("pany", 0)
	if err != nil {
		return opts, err
	}
	opts.Viewport = viewport.At(zoom, geom.Pt(panX, panY))

	if opts.Size <= 0 {
		opts.Size = projection.DefaultSize
	}
	size, err := num("size", opts.Size)
	if err != nil {
		return opts, err
	}
	if !(size >= config.MinChartSize && size <= config.MaxChartSize) {
		return opts, fmt.Errorf("%w: size %v outside [%d, %d]", errBadParam, size, config.MinChartSize, config.MaxChartSize)
	}
	opts.Size = size
	opts.Selected = q.Get("selected")
	return opts, nil
}

var contentTypes = map[export.Format]string{
	export.FormatSVG:      "image/svg+xml",
	export.FormatPNG:      "image/png",
	export.FormatMarkdown: "text/markdown; charset=utf-8",
}

// getChart renders /chart/{view}.{format} for the view the query describes.
func (h *handler) getChart(w http.ResponseWriter, r *http.Request) {
	view, ok := model.ParseViewMode(chi.URLParam(r, "view"))
	if !ok {
		respondWithError(w, http.StatusNotFound, "Unknown view", nil)
		return
	}
	format := export.Format(chi.URLParam(r, "format"))
	contentType, ok := contentTypes[format]
	if !ok {
		respondWithError(w, http.StatusNotFound, "Unsupported chart format", nil)
		return
	}
	q := r.URL.Query()
	opts, err := h.chartOptions(view, q)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error(), err)
		return
	}

	trends, _ := h.store.Snapshot()
	st := app.New(trends, opts)
	if id := q.Get("hovered"); id != "" {
		st = st.SetHover(id)
	}
	doc := export.Document{
		Scene:     st.Scene(),
		Trends:    st.Visible(),
		Total:     len(trends),
		Generated: time.Now(),
	}
	if t, ok := st.SelectedTrend(); ok {
		doc.Selected = &t
	}

	var buf bytes.Buffer
	if err := export.Write(&buf, format, doc); err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to render chart", err)
		return
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "no-store")
	w.Write(buf.Bytes())
}

func respondWithJSON(w http.ResponseWriter, code int, payload any) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("Failed to marshal response"))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

// Helper for error responses
func respondWithError(w http.ResponseWriter, code int, message string, err error) {
	if err != nil && code >= 500 {
		debug.Log("server: %s: %v", message, err)
	}
	respondWithJSON(w, code, map[string]string{"error": message})
}
