package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"dinein-dashboard/analytics"
	"dinein-dashboard/models"
	"dinein-dashboard/services"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

const (
	multipartMemory = 8 << 20
	computeTimeout  = 30 * time.Second
)

type Handler struct {
	files    *services.FileService
	log      *logrus.Logger
	maxBytes int64
	now      func() time.Time

	mu       sync.Mutex
	prepared map[string]*analytics.Prepared
}

func NewHandler(files *services.FileService, maxUploadMB int64, log *logrus.Logger) *Handler {
	return &Handler{
		files:    files,
		log:      log,
		maxBytes: maxUploadMB << 20,
		now:      time.Now,
		prepared: make(map[string]*analytics.Prepared),
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/api", func(r chi.Router) {
		r.Get("/files/list", h.ListFiles)
		r.Post("/files/upload", h.UploadFile)
		r.Get("/files/{name}", h.DownloadFile)
		r.Get("/dashboard", h.Dashboard)
		r.Get("/export", h.Export)
	})
}

func (h *Handler) ListFiles(w http.ResponseWriter, r *http.Request) {
	respond(w, http.StatusOK, map[string]interface{}{"files": h.files.List(r.Context())})
}

func (h *Handler) UploadFile(w http.ResponseWriter, r *http.Request) {
	// multipart framing on top of the file itself
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes+multipartMemory)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid upload")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		respondError(w, http.StatusBadRequest, "No file provided")
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Could not read file")
		return
	}
	stored, err := h.files.Upload(r.Context(), header.Filename, content)
	switch {
	case errors.Is(err, services.ErrNotCSV), errors.Is(err, services.ErrEmptyFile):
		respondError(w, http.StatusBadRequest, err.Error())
		return
	case errors.Is(err, services.ErrTooLarge):
		respondError(w, http.StatusRequestEntityTooLarge, err.Error())
		return
	case err != nil:
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	h.forget(stored.Filename)

	respond(w, http.StatusOK, map[string]interface{}{
		"success":    true,
		"url":        stored.URL,
		"filename":   stored.Filename,
		"uploadedAt": stored.UploadedAt,
	})
}

func (h *Handler) DownloadFile(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	content, err := h.files.Content(r.Context(), name)
	if errors.Is(err, services.ErrNotFound) {
		respondError(w, http.StatusNotFound, "File not found")
		return
	}
	if err != nil {
		h.log.WithError(err).WithField("file", name).Error("download failed")
		respondError(w, http.StatusInternalServerError, "Could not load file")
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	_, _ = w.Write(content)
}

func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	dash, ok := h.compute(w, r)
	if !ok {
		return
	}
	respond(w, http.StatusOK, dash)
}

func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	dash, ok := h.compute(w, r)
	if !ok {
		return
	}
	name := r.URL.Query().Get("file")
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name+".xlsx"))
	if err := services.WriteWorkbook(w, dash); err != nil {
		h.log.WithError(err).WithField("file", name).Error("export failed")
	}
}

// compute loads the requested file and runs the rollups for the filter in
// the query string. It writes the error response itself when it fails.
func (h *Handler) compute(w http.ResponseWriter, r *http.Request) (*models.Dashboard, bool) {
	q := r.URL.Query()
	name := q.Get("file")
	if name == "" {
		respondError(w, http.StatusBadRequest, "file is required")
		return nil, false
	}
	p, err := h.load(r.Context(), name)
	if errors.Is(err, services.ErrNotFound) {
		respondError(w, http.StatusNotFound, "File not found")
		return nil, false
	}
	if err != nil {
		respondError(w, http.StatusUnprocessableEntity, err.Error())
		return nil, false
	}
	f, err := ParseFilter(q, p, h.now())
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return nil, false
	}

	ctx, cancel := context.WithTimeout(r.Context(), computeTimeout)
	defer cancel()
	start := time.Now()
	dash, err := analytics.Compute(ctx, p, f)
	if err != nil {
		h.log.WithError(err).WithField("file", name).Warn("dashboard not computed")
		respondError(w, http.StatusServiceUnavailable, "Dashboard computation cancelled")
		return nil, false
	}
	h.log.WithFields(logrus.Fields{"file": name, "orders": dash.TotalOrders, "elapsed": time.Since(start)}).Debug("dashboard computed")
	return dash, true
}

func (h *Handler) load(ctx context.Context, name string) (*analytics.Prepared, error) {
	h.mu.Lock()
	p, ok := h.prepared[name]
	h.mu.Unlock()
	if ok {
		return p, nil
	}
	ds, err := h.files.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	p = analytics.Prepare(ds)
	h.log.WithFields(logrus.Fields{"file": name, "rows": len(ds.Rows), "shape": p.Shape}).Info("dataset prepared")

	h.mu.Lock()
	h.prepared[name] = p
	h.mu.Unlock()
	return p, nil
}

func (h *Handler) forget(name string) {
	h.mu.Lock()
	delete(h.prepared, name)
	h.mu.Unlock()
}

// ParseFilter reads a filter state from query parameters:
// start, end, preset, day, kitchen, category, itemType (repeatable),
// hideAyce and minMains. Dates are YYYY-MM-DD. A preset overrides start and
// end and is clamped to the dates of the series the other filters leave.
func ParseFilter(q url.Values, p *analytics.Prepared, now time.Time) (models.FilterState, error) {
	f := models.DefaultFilter()
	for _, key := range []string{"start", "end"} {
		if v := q.Get(key); v != "" && !analytics.ValidDate(v) {
			return f, fmt.Errorf("%s must be YYYY-MM-DD, got %q", key, v)
		}
	}
	f.DateRange = models.DateRange{Start: q.Get("start"), End: q.Get("end")}

	switch day := models.DayType(q.Get("day")); day {
	case "":
	case models.DayAll, models.DayWeekday, models.DayWeekend:
		f.DayType = day
	default:
		return f, fmt.Errorf("unknown day type %q", day)
	}

	if v := q["kitchen"]; len(v) > 0 {
		f.Kitchens = v
	}
	if v := q["category"]; len(v) > 0 {
		f.Categories = v
	}
	if v := q["itemType"]; len(v) > 0 {
		f.ItemTypes = v
	}
	if v := q.Get("hideAyce"); v != "" {
		hide, err := strconv.ParseBool(v)
		if err != nil {
			return f, fmt.Errorf("invalid hideAyce %q", v)
		}
		f.HideAYCE = hide
	}
	if v := q.Get("minMains"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || (n != 1 && n != 2) {
			return f, fmt.Errorf("minMains must be 1 or 2")
		}
		f.MinMains = n
	}
	// last: the clamp depends on the AYCE and category exclusions above
	if name := q.Get("preset"); name != "" {
		r, ok := analytics.DatePreset(name, now)
		if !ok {
			return f, fmt.Errorf("unknown preset %q", name)
		}
		first, last := analytics.DateExtent(p, f)
		f.DateRange = analytics.ClampRange(r, first, last)
	}
	return f, nil
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respond(w, status, map[string]string{"error": msg})
}
