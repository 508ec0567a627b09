package handlers

import (
	"net/http"

	"callcenter/analytics"
	"callcenter/middleware"
	"callcenter/models"

	"go.uber.org/zap"
)

type FinanceHandler struct {
	clock
	store      Store
	baseSalary int
	log        *zap.Logger
}

func NewFinanceHandler(store Store, baseSalary int, log *zap.Logger) *FinanceHandler {
	return &FinanceHandler{store: store, baseSalary: baseSalary, log: log}
}

// Personal is the caller's salary, bonus and dock summary.
func (h *FinanceHandler) Personal(w http.ResponseWriter, r *http.Request) {
	caller := middleware.GetUserFromContext(r.Context())

	rows, err := h.store.ListAttendance(r.Context(), caller.ID)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	reports, err := h.store.ListReports(r.Context(), models.ReportFilter{AgentID: caller.ID})
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, analytics.PersonalFinances(rows, reports, h.baseSalary, h.Now()))
}

func (h *FinanceHandler) Summary(w http.ResponseWriter, r *http.Request) {
	rows, err := h.store.ListAllAttendance(r.Context())
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	reports, err := h.store.ListReports(r.Context(), models.ReportFilter{})
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, analytics.Finances(rows, reports))
}
