package httpserver

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	appanalyses "github.com/bryanwahyu/rivalscan/internal/application/analyses"
	domai "github.com/bryanwahyu/rivalscan/internal/domain/ai"
	domain "github.com/bryanwahyu/rivalscan/internal/domain/analysis"
	"github.com/bryanwahyu/rivalscan/internal/middleware"
)

type Router struct {
	svc      *appanalyses.Service
	apiKeys  []string
	warnings []string
}

// NewRouter wires the web UI and the JSON API onto one chi mux. Warnings are
// startup-time configuration notices rendered on the home page.
func NewRouter(svc *appanalyses.Service, apiKeys []string, checkers map[string]middleware.HealthChecker, warnings []string) http.Handler {
	r := &Router{svc: svc, apiKeys: apiKeys, warnings: warnings}
	mux := chi.NewRouter()

	mux.Get("/health", middleware.HealthHandler(checkers))
	mux.Get("/metrics", middleware.MetricsHandler)

	// web UI, alur form biasa (POST lalu redirect)
	mux.Get("/", r.wrap(r.handleHome))
	mux.Post("/analyses", r.wrap(r.handleCreateForm))
	mux.Get("/analyses/{id}", r.wrap(r.handleShow))
	mux.Post("/analyses/{id}/industries", r.wrap(r.handleAnalyzeForm))
	mux.Get("/analyses/{id}/export.csv", r.wrap(r.handleExportCSV))

	mux.Route("/v1", func(rt chi.Router) {
		if len(r.apiKeys) > 0 {
			rt.Use(middleware.APIKeyAuth(r.apiKeys))
		}
		rt.Post("/analyses", r.wrap(r.handleRun))
		rt.Get("/analyses", r.wrap(r.handlePaginate))
		rt.Get("/analyses/latest", r.wrap(r.handleLatest))
		rt.Get("/analyses/{id}", r.wrap(r.handleGetAnalysis))
		rt.Post("/analyses/{id}/industries", r.wrap(r.handleAnalyzeIndustry))
		rt.Get("/analyses/{id}/errors", r.wrap(r.handleErrors))
		rt.Get("/analyses/{id}/export.csv", r.wrap(r.handleExportCSV))
		rt.Post("/analyses/{id}/archive", r.wrap(r.handleArchive))
		rt.Get("/summary", r.wrap(r.handleSummary))
	})

	return mux
}

type handlerFunc func(http.ResponseWriter, *http.Request) error

// badRequestError marks validation failures so wrap can answer 400
type badRequestError struct {
	err error
}

func (e badRequestError) Error() string { return e.err.Error() }

func badRequest(err error) error { return badRequestError{err: err} }

func (r *Router) wrap(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		if err := h(w, req); err != nil {
			var br badRequestError
			if errors.As(err, &br) {
				http.Error(w, br.Error(), http.StatusBadRequest)
				return
			}
			if errors.Is(err, appanalyses.ErrUnknownIndustry) {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			if errors.Is(err, sql.ErrNoRows) {
				http.Error(w, "not found", http.StatusNotFound)
				return
			}
			if errors.Is(err, domai.ErrQuotaExceeded) {
				http.Error(w, "ai quota exceeded", http.StatusTooManyRequests)
				return
			}
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	}
}

func validateCreateInput(name, pitch, period, region string) error {
	if err := middleware.ValidateStartupName(name); err != nil {
		return err
	}
	if err := middleware.ValidatePitch(pitch); err != nil {
		return err
	}
	if err := middleware.ValidateTimePeriod(period); err != nil {
		return err
	}
	return middleware.ValidateRegion(region)
}

// POST /v1/analyses
// Body: {"startup_name": "...", "pitch": "...", "time_period": "...", "region": "..."}
// Runs the whole pipeline for every classified industry before answering.
func (r *Router) handleRun(w http.ResponseWriter, req *http.Request) error {
	var body struct {
		StartupName string `json:"startup_name"`
		Pitch       string `json:"pitch"`
		TimePeriod  string `json:"time_period"`
		Region      string `json:"region"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return badRequest(err)
	}

	body.StartupName = middleware.SanitizeString(body.StartupName)
	body.Pitch = middleware.SanitizeString(body.Pitch)
	if err := validateCreateInput(body.StartupName, body.Pitch, body.TimePeriod, body.Region); err != nil {
		return badRequest(err)
	}

	middleware.IncrementAnalyses()
	a, err := r.svc.Run(req.Context(), appanalyses.CreateAnalysisCommand{
		StartupName: body.StartupName,
		Pitch:       body.Pitch,
		TimePeriod:  body.TimePeriod,
		Region:      body.Region,
	})
	if err != nil {
		middleware.IncrementAnalysesFailed()
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	return json.NewEncoder(w).Encode(a)
}

// GET /v1/analyses?page=&page_size=&startup=&status=
func (r *Router) handlePaginate(w http.ResponseWriter, req *http.Request) error {
	page, _ := strconv.Atoi(req.URL.Query().Get("page"))
	size, _ := strconv.Atoi(req.URL.Query().Get("page_size"))

	filters := map[string]interface{}{}
	if startup := req.URL.Query().Get("startup"); startup != "" {
		filters["startup"] = middleware.SanitizeString(startup)
	}
	if status := req.URL.Query().Get("status"); status != "" {
		filters["status"] = status
	}

	list, err := r.svc.Paginate(req.Context(), page, middleware.ValidateLimit(size), filters)
	if err != nil {
		return err
	}
	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(list)
}

// GET /v1/analyses/latest?limit=20
func (r *Router) handleLatest(w http.ResponseWriter, req *http.Request) error {
	limit, _ := strconv.Atoi(req.URL.Query().Get("limit"))

	list, err := r.svc.Latest(req.Context(), middleware.ValidateLimit(limit))
	if err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(list)
}

// GET /v1/analyses/{id}
func (r *Router) handleGetAnalysis(w http.ResponseWriter, req *http.Request) error {
	id := chi.URLParam(req, "id")
	if err := middleware.ValidateAnalysisID(id); err != nil {
		return badRequest(err)
	}

	a, err := r.svc.Get(req.Context(), domain.AnalysisID(id))
	if err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(a)
}

// POST /v1/analyses/{id}/industries
// Body: {"industry": "..."}
func (r *Router) handleAnalyzeIndustry(w http.ResponseWriter, req *http.Request) error {
	id := chi.URLParam(req, "id")
	if err := middleware.ValidateAnalysisID(id); err != nil {
		return badRequest(err)
	}

	var body struct {
		Industry string `json:"industry"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return badRequest(err)
	}
	if body.Industry == "" {
		return badRequest(errors.New("industry is required"))
	}

	a, err := r.svc.AnalyzeIndustry(req.Context(), domain.AnalysisID(id), body.Industry)
	if err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(a)
}

// GET /v1/analyses/{id}/errors?limit=20
func (r *Router) handleErrors(w http.ResponseWriter, req *http.Request) error {
	id := chi.URLParam(req, "id")
	if err := middleware.ValidateAnalysisID(id); err != nil {
		return badRequest(err)
	}
	limit, _ := strconv.Atoi(req.URL.Query().Get("limit"))

	list, err := r.svc.ListErrors(req.Context(), domain.AnalysisID(id), middleware.ValidateLimit(limit))
	if err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(list)
}

// GET /analyses/{id}/export.csv (also mounted under /v1)
func (r *Router) handleExportCSV(w http.ResponseWriter, req *http.Request) error {
	id := chi.URLParam(req, "id")
	if err := middleware.ValidateAnalysisID(id); err != nil {
		return badRequest(err)
	}

	data, filename, err := r.svc.ExportCSV(req.Context(), domain.AnalysisID(id))
	if err != nil {
		return err
	}
	middleware.IncrementExports()

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	_, err = w.Write(data)
	return err
}

// POST /v1/analyses/{id}/archive
func (r *Router) handleArchive(w http.ResponseWriter, req *http.Request) error {
	id := chi.URLParam(req, "id")
	if err := middleware.ValidateAnalysisID(id); err != nil {
		return badRequest(err)
	}

	url, err := r.svc.Archive(req.Context(), domain.AnalysisID(id))
	if err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(map[string]string{"artifact_url": url})
}

// GET /v1/summary?days=7
func (r *Router) handleSummary(w http.ResponseWriter, req *http.Request) error {
	days, _ := strconv.Atoi(req.URL.Query().Get("days"))

	summary, err := r.svc.Summary(req.Context(), middleware.ValidateDays(days))
	if err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(summary)
}
