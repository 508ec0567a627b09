package handlers

import (
	"fmt"
	"net/http"
	"time"

	"callcenter/access"
	"callcenter/metrics"
	"callcenter/middleware"
	"callcenter/models"

	"go.uber.org/zap"
)

const maxBulkReports = 10000

type ReportHandler struct {
	clock
	store Store
	log   *zap.Logger
}

func NewReportHandler(store Store, log *zap.Logger) *ReportHandler {
	return &ReportHandler{store: store, log: log}
}

// reportRequest is a report as submitted by a client. The owner is always
// the authenticated caller, so there is no agentId field.
type reportRequest struct {
	Timestamp    *time.Time      `json:"timestamp"`
	PhoneNo      string          `json:"phoneNo" validate:"required,max=32"`
	AccidentYear string          `json:"accidentYear" validate:"max=8"`
	State        string          `json:"state" validate:"max=32"`
	ZipCode      string          `json:"zipCode" validate:"max=16"`
	FronterName  string          `json:"fronterName" validate:"required,max=200"`
	CloserName   string          `json:"closerName" validate:"max=200"`
	Remarks      string          `json:"remarks"`
	Location     models.Location `json:"location" validate:"omitempty,oneof=onsite wfh"`
	IsSale       bool            `json:"isSale"`
	Amount       int             `json:"amount" validate:"min=0"`
	BonusAmount  int             `json:"bonusAmount" validate:"min=0"`
}

func (req reportRequest) toReport(agentID uint, now time.Time) models.Report {
	report := models.Report{
		Timestamp:    now,
		PhoneNo:      req.PhoneNo,
		AccidentYear: req.AccidentYear,
		State:        req.State,
		ZipCode:      req.ZipCode,
		FronterName:  req.FronterName,
		CloserName:   req.CloserName,
		Remarks:      req.Remarks,
		Location:     req.Location,
		IsSale:       req.IsSale,
		Amount:       req.Amount,
		BonusAmount:  req.BonusAmount,
		AgentID:      agentID,
	}
	if req.Timestamp != nil {
		report.Timestamp = *req.Timestamp
	}
	if report.Location == "" {
		report.Location = models.LocationOnsite
	}
	return report
}

// List returns reports newest first. Agents only ever see their own.
func (h *ReportHandler) List(w http.ResponseWriter, r *http.Request) {
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
	writeJSON(w, http.StatusOK, nonNil(reports))
}

func (h *ReportHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req reportRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, h.log, err)
		return
	}

	caller := middleware.GetUserFromContext(r.Context())
	report := req.toReport(caller.ID, h.Now())
	if err := h.store.CreateReport(r.Context(), &report); err != nil {
		respondError(w, r, h.log, err)
		return
	}
	metrics.ReportsCreated(1)
	writeJSON(w, http.StatusCreated, report)
}

// BulkCreate imports an array of reports. Any invalid row rejects the batch.
func (h *ReportHandler) BulkCreate(w http.ResponseWriter, r *http.Request) {
	var reqs []reportRequest
	if err := readJSON(r, &reqs); err != nil {
		respondError(w, r, h.log, err)
		return
	}
	if len(reqs) == 0 {
		respondError(w, r, h.log, fieldError("body", "must contain at least one report"))
		return
	}
	if len(reqs) > maxBulkReports {
		respondError(w, r, h.log, fieldError("body", fmt.Sprintf("must contain at most %d reports", maxBulkReports)))
		return
	}

	caller := middleware.GetUserFromContext(r.Context())
	now := h.Now()
	reports := make([]models.Report, 0, len(reqs))
	for i := range reqs {
		if err := validateStruct(&reqs[i], fmt.Sprintf("[%d].", i)); err != nil {
			respondError(w, r, h.log, err)
			return
		}
		reports = append(reports, reqs[i].toReport(caller.ID, now))
	}

	if err := h.store.BulkCreateReports(r.Context(), reports); err != nil {
		respondError(w, r, h.log, err)
		return
	}
	metrics.ReportsCreated(len(reports))
	h.log.Info("reports imported", zap.Int("count", len(reports)), zap.Uint("agent_id", caller.ID))
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"count":   len(reports),
		"message": "Successfully imported records",
	})
}

func (h *ReportHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	var patch models.ReportPatch
	if err := decodeJSON(r, &patch); err != nil {
		respondError(w, r, h.log, err)
		return
	}

	report, err := h.store.UpdateReport(r.Context(), id, patch)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (h *ReportHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	if err := h.store.DeleteReport(r.Context(), id); err != nil {
		respondError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Report deleted"})
}
