package handlers

import (
	"net/http"

	"callcenter/access"
	"callcenter/analytics"
	"callcenter/middleware"
	"callcenter/models"

	"go.uber.org/zap"
)

type AnalyticsHandler struct {
	clock
	store  Store
	engine *analytics.Engine
	log    *zap.Logger
}

func NewAnalyticsHandler(store Store, engine *analytics.Engine, log *zap.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{store: store, engine: engine, log: log}
}

// Dashboard recomputes the whole dashboard from the filtered report set on
// every call.
func (h *AnalyticsHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	query, err := parseReportQuery(r)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	filter, err := access.ReportScope(middleware.PrincipalFromContext(r.Context()), query, h.Now())
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	reports, err := h.store.ListReports(r.Context(), filter)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	users, err := h.store.ListUsers(r.Context())
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, h.engine.Dashboard(reports, users))
}

// AgentProfile is the admin drill-down into one agent.
func (h *AnalyticsHandler) AgentProfile(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	agent, err := h.store.GetUser(r.Context(), id)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	reports, err := h.store.ListReports(r.Context(), models.ReportFilter{AgentID: id})
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	rows, err := h.store.ListAttendance(r.Context(), id)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, h.engine.AgentProfile(*agent, reports, rows, h.Now()))
}
