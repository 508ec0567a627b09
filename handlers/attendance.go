package handlers

import (
	"net/http"
	"time"

	"callcenter/access"
	"callcenter/attendance"
	"callcenter/middleware"
	"callcenter/models"

	"go.uber.org/zap"
)

type AttendanceHandler struct {
	store   Store
	service *attendance.Service
	log     *zap.Logger
}

func NewAttendanceHandler(store Store, service *attendance.Service, log *zap.Logger) *AttendanceHandler {
	return &AttendanceHandler{store: store, service: service, log: log}
}

type markRequest struct {
	Type attendance.MarkType `json:"type" validate:"required"`
}

// createAttendanceRequest is an admin-entered row, typically a salary day.
type createAttendanceRequest struct {
	UserID           uint       `json:"userId" validate:"required"`
	Date             time.Time  `json:"date" validate:"required"`
	SignInTime       *time.Time `json:"signInTime"`
	SignOutTime      *time.Time `json:"signOutTime"`
	WorkedHours      float64    `json:"workedHours" validate:"min=0,max=24"`
	SalesCount       int        `json:"salesCount" validate:"min=0"`
	BonusAmount      int        `json:"bonusAmount" validate:"min=0"`
	DockAmount       int        `json:"dockAmount" validate:"min=0"`
	Remark           string     `json:"remark" validate:"max=500"`
	IsSalaryDay      bool       `json:"isSalaryDay"`
	SalaryAmount     int        `json:"salaryAmount" validate:"min=0"`
	PunctualityBonus int        `json:"punctualityBonus" validate:"min=0"`
}

// List is the caller's own history, newest first.
func (h *AttendanceHandler) List(w http.ResponseWriter, r *http.Request) {
	caller := middleware.GetUserFromContext(r.Context())
	rows, err := h.store.ListAttendance(r.Context(), caller.ID)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(rows))
}

func (h *AttendanceHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	rows, err := h.store.ListAllAttendance(r.Context())
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(rows))
}

type todayResponse struct {
	State  models.AttendanceState `json:"state"`
	Record *models.Attendance     `json:"record"`
}

// Today reports where the caller is in today's sign-in cycle.
func (h *AttendanceHandler) Today(w http.ResponseWriter, r *http.Request) {
	caller := middleware.GetUserFromContext(r.Context())
	row, err := h.service.Today(r.Context(), caller.ID)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	resp := todayResponse{State: models.StateNotStarted, Record: row}
	if row != nil {
		resp.State = row.State()
	}
	writeJSON(w, http.StatusOK, resp)
}

// Get returns one row. Only admins may read rows that are not their own.
func (h *AttendanceHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	row, err := h.store.GetAttendance(r.Context(), id)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	caller := middleware.GetUserFromContext(r.Context())
	if row.UserID != caller.ID {
		if err := access.Authorize(access.PrincipalOf(caller), access.ListAllAttendance); err != nil {
			respondError(w, r, h.log, err)
			return
		}
	}
	writeJSON(w, http.StatusOK, row)
}

// Mark signs the caller in or out. It never acts on another user.
func (h *AttendanceHandler) Mark(w http.ResponseWriter, r *http.Request) {
	var req markRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, h.log, err)
		return
	}

	caller := middleware.GetUserFromContext(r.Context())
	row, err := h.service.Mark(r.Context(), caller.ID, req.Type)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, row)
}

func (h *AttendanceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createAttendanceRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, h.log, err)
		return
	}

	if _, err := h.store.GetUser(r.Context(), req.UserID); err != nil {
		respondError(w, r, h.log, err)
		return
	}

	local := req.Date.In(time.Local)
	y, m, d := local.Date()
	row := &models.Attendance{
		UserID:           req.UserID,
		Day:              local.Format(models.DayLayout),
		Date:             time.Date(y, m, d, 0, 0, 0, 0, time.Local),
		SignInTime:       req.SignInTime,
		SignOutTime:      req.SignOutTime,
		WorkedHours:      req.WorkedHours,
		SalesCount:       req.SalesCount,
		BonusAmount:      req.BonusAmount,
		DockAmount:       req.DockAmount,
		Remark:           req.Remark,
		IsSalaryDay:      req.IsSalaryDay,
		SalaryAmount:     req.SalaryAmount,
		PunctualityBonus: req.PunctualityBonus,
	}
	if err := h.store.CreateAttendance(r.Context(), row); err != nil {
		respondError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, row)
}

func (h *AttendanceHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	var patch models.AttendancePatch
	if err := decodeJSON(r, &patch); err != nil {
		respondError(w, r, h.log, err)
		return
	}

	row, err := h.store.UpdateAttendance(r.Context(), id, patch)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, row)
}

func (h *AttendanceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	if err := h.store.DeleteAttendance(r.Context(), id); err != nil {
		respondError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Attendance deleted"})
}
