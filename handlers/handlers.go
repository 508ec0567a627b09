// Package handlers is the JSON HTTP surface over the record store, the
// attendance state machine and the analytics engine.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"callcenter/access"
	"callcenter/attendance"
	"callcenter/database"
	"callcenter/models"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Store is the record store as seen by the HTTP layer.
type Store interface {
	GetUser(ctx context.Context, id uint) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	CreateUser(ctx context.Context, user *models.User) error
	UpdateUserIP(ctx context.Context, id uint, ip string) error
	DeleteUser(ctx context.Context, id uint) error

	CreateReport(ctx context.Context, report *models.Report) error
	BulkCreateReports(ctx context.Context, reports []models.Report) error
	ListReports(ctx context.Context, filter models.ReportFilter) ([]models.Report, error)
	UpdateReport(ctx context.Context, id uint, patch models.ReportPatch) (*models.Report, error)
	DeleteReport(ctx context.Context, id uint) error

	ListAttendance(ctx context.Context, userID uint) ([]models.Attendance, error)
	ListAllAttendance(ctx context.Context) ([]models.Attendance, error)
	GetAttendance(ctx context.Context, id uint) (*models.Attendance, error)
	CreateAttendance(ctx context.Context, row *models.Attendance) error
	UpdateAttendance(ctx context.Context, id uint, patch models.AttendancePatch) (*models.Attendance, error)
	DeleteAttendance(ctx context.Context, id uint) error
}

type errorResponse struct {
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Message: message})
}

func writeValidation(w http.ResponseWriter, fields map[string]string) {
	writeJSON(w, http.StatusBadRequest, errorResponse{Message: "Validation failed", Fields: fields})
}

// respondError maps domain errors onto status codes. Anything unrecognized
// is logged and reported as a 500 without detail.
func respondError(w http.ResponseWriter, r *http.Request, log *zap.Logger, err error) {
	var verr *validationError
	switch {
	case errors.As(err, &verr):
		writeValidation(w, verr.fields)
	case errors.Is(err, access.ErrUnauthenticated):
		writeError(w, http.StatusUnauthorized, "Not authenticated")
	case errors.Is(err, access.ErrForbidden):
		writeError(w, http.StatusForbidden, "Forbidden")
	case errors.Is(err, database.ErrNotFound):
		writeError(w, http.StatusNotFound, "Not found")
	case errors.Is(err, database.ErrDuplicate):
		writeError(w, http.StatusConflict, "Already exists")
	case errors.Is(err, attendance.ErrInvalidMarkType):
		writeValidation(w, map[string]string{"type": attendance.ErrInvalidMarkType.Error()})
	default:
		log.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}

func parseID(r *http.Request) (uint, error) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 32)
	if err != nil || id == 0 {
		return 0, fieldError("id", "must be a positive integer")
	}
	return uint(id), nil
}

// clock is embedded by handlers that need the current time.
type clock struct {
	now func() time.Time
}

func (c *clock) Now() time.Time {
	if c.now == nil {
		return time.Now()
	}
	return c.now()
}
