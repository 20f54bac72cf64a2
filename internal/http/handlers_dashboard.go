package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"khata/internal/report"
	"khata/internal/services"
)

// JSON shapes for the chart endpoints. Decimal amounts become floats
// here and nowhere earlier: the charts plot them, nothing sums them.
type (
	balanceDTO struct {
		Cash   float64 `json:"cash"`
		Online float64 `json:"online"`
	}

	seriesDTO struct {
		Dates   []string  `json:"dates"`
		Amounts []float64 `json:"amounts"`
		Labels  []string  `json:"labels"`
	}

	categoryDTO struct {
		Keyword string  `json:"keyword"`
		Total   float64 `json:"total"`
		Percent float64 `json:"percent"`
	}

	pointDTO struct {
		Date  string  `json:"date"`
		Total float64 `json:"total"`
	}

	monthDTO struct {
		Month   string  `json:"month"`
		Income  float64 `json:"income"`
		Expense float64 `json:"expense"`
	}

	entryDTO struct {
		Date        string  `json:"date"`
		Amount      float64 `json:"amount"`
		Description string  `json:"description"`
		Flow        string  `json:"flow"`
		MoneyType   string  `json:"money_type"`
	}

	groupDTO struct {
		Keyword string     `json:"keyword"`
		Total   float64    `json:"total"`
		Entries []entryDTO `json:"entries"`
	}

	dashboardDTO struct {
		Empty        bool           `json:"empty"`
		Notice       string         `json:"notice,omitempty"`
		Balance      *balanceDTO    `json:"balance,omitempty"`
		Income       seriesDTO      `json:"income"`
		Expense      seriesDTO      `json:"expense"`
		Categories   []categoryDTO  `json:"categories"`
		CashFlow     []pointDTO     `json:"cash_flow"`
		Places       map[string]int `json:"places"`
		Monthly      []monthDTO     `json:"monthly"`
		Descriptions []groupDTO     `json:"descriptions"`
	}

	filtersDTO struct {
		Keywords   []string `json:"keywords"`
		MoneyTypes []string `json:"money_types"`
	}
)

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if s.templates == nil {
		slog.ErrorContext(r.Context(), "Templates not loaded", "url", r.URL.Path)
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}

	if err := s.templates.ExecuteTemplate(w, "index.html", nil); err != nil {
		slog.ErrorContext(r.Context(), "Index template execution failed", "error", err, "template", "index.html")
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// handleDashboard serves the chart aggregates for the current filters.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if resp := RequireMethod(r, http.MethodGet); resp != nil {
		resp.Write(w)
		return
	}

	criteria, err := parseCriteria(r.URL.Query())
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	key := criteria.Key()
	if cached, found := s.dashCache.Get(key); found {
		slog.DebugContext(r.Context(), "Dashboard cache hit", "key", key)
		writeJSON(w, http.StatusOK, toDashboardDTO(cached, ""))
		return
	}

	dash, err := s.svc.Dashboard(r.Context(), criteria)
	if err != nil {
		if errors.Is(err, services.ErrNoMatches) {
			writeJSON(w, http.StatusOK, dashboardDTO{
				Empty:  true,
				Notice: "No transactions match the selected filters",
			})
			return
		}
		slog.ErrorContext(r.Context(), "Dashboard computation failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "could not compute dashboard"})
		return
	}

	if !dash.Empty {
		s.dashCache.Set(key, dash)
	}
	notice := ""
	if dash.Empty {
		notice = "Upload a CSV to see your dashboard"
	}
	writeJSON(w, http.StatusOK, toDashboardDTO(dash, notice))
}

// handleFilters serves the values the filter controls can offer.
func (s *Server) handleFilters(w http.ResponseWriter, r *http.Request) {
	if resp := RequireMethod(r, http.MethodGet); resp != nil {
		resp.Write(w)
		return
	}

	opts, err := s.svc.Options(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Filter options failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "could not list filters"})
		return
	}

	dto := filtersDTO{Keywords: opts.Keywords}
	if dto.Keywords == nil {
		dto.Keywords = []string{}
	}
	for _, mt := range opts.MoneyTypes {
		dto.MoneyTypes = append(dto.MoneyTypes, mt.String())
	}
	if dto.MoneyTypes == nil {
		dto.MoneyTypes = []string{}
	}
	writeJSON(w, http.StatusOK, dto)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed encoding JSON response", "error", err)
	}
}

func toDashboardDTO(dash services.Dashboard, notice string) dashboardDTO {
	dto := dashboardDTO{
		Empty:        dash.Empty,
		Notice:       notice,
		Income:       toSeriesDTO(dash.Trends.Income),
		Expense:      toSeriesDTO(dash.Trends.Expense),
		Categories:   []categoryDTO{},
		CashFlow:     []pointDTO{},
		Places:       dash.Places,
		Monthly:      []monthDTO{},
		Descriptions: []groupDTO{},
	}
	if dto.Places == nil {
		dto.Places = map[string]int{}
	}
	if dash.Empty {
		return dto
	}

	if dash.Balance.OK {
		dto.Balance = &balanceDTO{
			Cash:   dash.Balance.Cash.InexactFloat64(),
			Online: dash.Balance.Online.InexactFloat64(),
		}
	}
	for _, c := range dash.Categories {
		dto.Categories = append(dto.Categories, categoryDTO{
			Keyword: c.Keyword,
			Total:   c.Total.InexactFloat64(),
			Percent: c.Percent,
		})
	}
	for _, p := range dash.CashFlow {
		dto.CashFlow = append(dto.CashFlow, pointDTO{Date: p.Date, Total: p.Total.InexactFloat64()})
	}
	for _, m := range dash.Monthly {
		dto.Monthly = append(dto.Monthly, monthDTO{
			Month:   m.Month,
			Income:  m.Income.InexactFloat64(),
			Expense: m.Expense.InexactFloat64(),
		})
	}
	for _, g := range dash.Descriptions {
		gd := groupDTO{Keyword: g.Keyword, Total: g.Total.InexactFloat64(), Entries: []entryDTO{}}
		for _, e := range g.Entries {
			gd.Entries = append(gd.Entries, entryDTO{
				Date:        e.Date,
				Amount:      e.Amount.InexactFloat64(),
				Description: e.Description,
				Flow:        e.Flow.String(),
				MoneyType:   e.MoneyType.String(),
			})
		}
		dto.Descriptions = append(dto.Descriptions, gd)
	}
	return dto
}

func toSeriesDTO(s report.TrendSeries) seriesDTO {
	dto := seriesDTO{Dates: s.Dates, Amounts: []float64{}, Labels: s.Labels}
	if dto.Dates == nil {
		dto.Dates = []string{}
	}
	if dto.Labels == nil {
		dto.Labels = []string{}
	}
	for _, a := range s.Amounts {
		dto.Amounts = append(dto.Amounts, a.InexactFloat64())
	}
	return dto
}
