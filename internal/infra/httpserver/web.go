package httpserver

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	appanalyses "github.com/bryanwahyu/rivalscan/internal/application/analyses"
	domain "github.com/bryanwahyu/rivalscan/internal/domain/analysis"
	domsearch "github.com/bryanwahyu/rivalscan/internal/domain/search"
	"github.com/bryanwahyu/rivalscan/internal/domain/sentiment"
	"github.com/bryanwahyu/rivalscan/internal/middleware"
)

// CredentialBanner warns that the configured search provider has no API key.
const CredentialBanner = "Please add your Brave API key to the configuration."

// GET /
func (r *Router) handleHome(w http.ResponseWriter, req *http.Request) error {
	page := homePage{
		Warnings: r.warnings,
		Periods:  periodOptions(""),
		Regions:  regionOptions(""),
	}

	recent, err := r.svc.Latest(req.Context(), 5)
	if err != nil {
		// halaman tetap tampil walau list recent gagal
		logrus.WithError(err).Warn("failed to load recent analyses")
	}
	for _, a := range recent {
		page.Recent = append(page.Recent, recentItem{
			ID:          string(a.ID),
			StartupName: a.StartupName,
			Status:      string(a.Status),
			CreatedAt:   a.CreatedAt.Format("Jan 2, 2006"),
		})
	}

	return renderHome(w, http.StatusOK, page)
}

// POST /analyses (form)
func (r *Router) handleCreateForm(w http.ResponseWriter, req *http.Request) error {
	if err := req.ParseForm(); err != nil {
		return badRequest(err)
	}

	form := formEcho{
		StartupName: middleware.SanitizeString(req.FormValue("startup_name")),
		Pitch:       middleware.SanitizeString(req.FormValue("pitch")),
		TimePeriod:  req.FormValue("time_period"),
		Region:      req.FormValue("region"),
	}

	if err := validateCreateInput(form.StartupName, form.Pitch, form.TimePeriod, form.Region); err != nil {
		page := homePage{
			Warnings: r.warnings,
			Error:    err.Error(),
			Form:     form,
			Periods:  periodOptions(form.TimePeriod),
			Regions:  regionOptions(form.Region),
		}
		return renderHome(w, http.StatusBadRequest, page)
	}

	middleware.IncrementAnalyses()
	a, err := r.svc.Create(req.Context(), appanalyses.CreateAnalysisCommand{
		StartupName: form.StartupName,
		Pitch:       form.Pitch,
		TimePeriod:  form.TimePeriod,
		Region:      form.Region,
	})
	if err != nil {
		middleware.IncrementAnalysesFailed()
		return err
	}

	http.Redirect(w, req, "/analyses/"+string(a.ID), http.StatusSeeOther)
	return nil
}

// GET /analyses/{id}?industry=
func (r *Router) handleShow(w http.ResponseWriter, req *http.Request) error {
	id := chi.URLParam(req, "id")
	if err := middleware.ValidateAnalysisID(id); err != nil {
		return badRequest(err)
	}

	a, err := r.svc.Get(req.Context(), domain.AnalysisID(id))
	if err != nil {
		return err
	}

	selected := req.URL.Query().Get("industry")
	page := showPage{
		ID:          string(a.ID),
		StartupName: a.StartupName,
		Pitch:       a.Pitch,
		TimePeriod:  string(a.TimePeriod),
		Region:      string(a.Region),
		Status:      string(a.Status),
	}

	for _, industry := range a.Industries {
		_, analyzed := a.Report(industry)
		page.Industries = append(page.Industries, industryTab{
			Name:     industry,
			Analyzed: analyzed,
			Selected: industry == selected,
		})
	}

	if selected != "" {
		if rep, ok := a.Report(selected); ok {
			page.Report = buildReportView(rep)
		}
	}

	page.Banners = r.searchBanners(req, a, selected)

	return renderShow(w, http.StatusOK, page)
}

// searchBanners turns journaled search failures into user-facing notices,
// mirroring the inline error banners of the earlier UI.
func (r *Router) searchBanners(req *http.Request, a *domain.Analysis, industry string) []string {
	journal, err := r.svc.ListErrors(req.Context(), a.ID, 20)
	if err != nil {
		logrus.WithError(err).Warn("failed to load analysis errors")
		return nil
	}

	var banners []string
	credentialShown := false
	for _, e := range journal {
		if e.Phase != "search" {
			continue
		}
		if industry != "" && e.Industry != industry {
			continue
		}
		if strings.Contains(e.Message, domsearch.ErrMissingCredentials.Error()) {
			if !credentialShown {
				banners = append(banners, CredentialBanner)
				credentialShown = true
			}
			continue
		}
		banners = append(banners, fmt.Sprintf("Error searching the web (%s): %s", e.Industry, e.Message))
	}
	return banners
}

// POST /analyses/{id}/industries (form)
func (r *Router) handleAnalyzeForm(w http.ResponseWriter, req *http.Request) error {
	id := chi.URLParam(req, "id")
	if err := middleware.ValidateAnalysisID(id); err != nil {
		return badRequest(err)
	}
	if err := req.ParseForm(); err != nil {
		return badRequest(err)
	}
	industry := req.FormValue("industry")
	if industry == "" {
		return badRequest(errors.New("industry is required"))
	}

	if _, err := r.svc.AnalyzeIndustry(req.Context(), domain.AnalysisID(id), industry); err != nil {
		return err
	}

	http.Redirect(w, req, "/analyses/"+id+"?industry="+url.QueryEscape(industry), http.StatusSeeOther)
	return nil
}

func buildReportView(rep *domain.IndustryReport) *reportView {
	view := &reportView{
		Industry:        rep.Industry,
		Query:           rep.Query,
		Empty:           len(rep.Competitors) == 0,
		Differentiators: rep.Differentiators,
		Commentary:      rep.Commentary,
		AnalyzedAt:      rep.AnalyzedAt.Format("Jan 2, 2006 15:04"),
	}

	for _, c := range rep.Competitors {
		view.Competitors = append(view.Competitors, competitorCard{
			Name:           c.Name,
			Website:        c.Website,
			Description:    c.Description,
			Differentiator: c.Differentiator,
		})
	}

	scored := rep.Sentiment != nil
	if scored {
		view.Sentiment = &sentimentView{
			Score: fmt.Sprintf("%.2f", rep.Sentiment.Average),
			Emoji: rep.Sentiment.Emoji,
			Label: rep.Sentiment.Label,
			Trend: rep.Sentiment.Trend,
		}
	}

	maxCount := 0
	for _, kc := range rep.Keywords {
		if kc.Count > maxCount {
			maxCount = kc.Count
		}
	}
	for _, kc := range rep.Keywords {
		width := 0
		if maxCount > 0 {
			width = kc.Count * 100 / maxCount
		}
		view.Keywords = append(view.Keywords, keywordBar{Word: kc.Word, Count: kc.Count, Width: width})
	}

	for _, h := range rep.Hits {
		hv := hitView{
			Title:       h.Title,
			URL:         h.URL,
			Description: h.Description,
			Date:        h.PublishedAt.Format("Jan 2, 2006"),
		}
		if scored {
			emoji, _ := sentiment.Label(h.Sentiment)
			hv.Emoji = emoji
			hv.Score = fmt.Sprintf("%.2f", h.Sentiment)
		}
		view.Hits = append(view.Hits, hv)
	}

	return view
}

func periodOptions(selected string) []selectOption {
	opts := make([]selectOption, 0, len(domain.Periods()))
	for _, p := range domain.Periods() {
		opts = append(opts, selectOption{Value: string(p), Selected: string(p) == selected})
	}
	return opts
}

func regionOptions(selected string) []selectOption {
	opts := make([]selectOption, 0, len(domain.Regions()))
	for _, r := range domain.Regions() {
		opts = append(opts, selectOption{Value: string(r), Selected: string(r) == selected})
	}
	return opts
}
