// Package attendance drives the per-day sign-in / sign-out lifecycle.
//
// A worked shift is keyed by (user, local calendar day). The store enforces
// that key with a unique index, so concurrent marks for the same day converge
// on a single row: the loser of the insert race re-reads the winner's row.
package attendance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"callcenter/database"
	"callcenter/metrics"
	"callcenter/models"

	"go.uber.org/zap"
)

type MarkType string

const (
	MarkIn  MarkType = "in"
	MarkOut MarkType = "out"
)

var ErrInvalidMarkType = errors.New(`type must be "in" or "out"`)

// Store is the slice of the record store the state machine needs.
type Store interface {
	FindDailyAttendance(ctx context.Context, userID uint, day string) (*models.Attendance, error)
	CreateAttendance(ctx context.Context, row *models.Attendance) error
	UpdateAttendance(ctx context.Context, id uint, patch models.AttendancePatch) (*models.Attendance, error)
}

type Service struct {
	store Store
	log   *zap.Logger
	now   func() time.Time
}

func NewService(store Store, log *zap.Logger) *Service {
	return &Service{store: store, log: log, now: time.Now}
}

// WithClock replaces the wall clock, for tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Today returns the caller's row for the current local day, or nil when the
// day has not started.
func (s *Service) Today(ctx context.Context, userID uint) (*models.Attendance, error) {
	row, err := s.store.FindDailyAttendance(ctx, userID, s.now().Format(models.DayLayout))
	if errors.Is(err, database.ErrNotFound) {
		return nil, nil
	}
	return row, err
}

// Mark applies a sign-in or sign-out for userID at the current time.
//
// "in" is idempotent: an existing row for today is returned unchanged.
// "out" stamps signOutTime on today's row. With no row for today it creates
// one holding only signOutTime, so worked hours for that day stay unknown.
func (s *Service) Mark(ctx context.Context, userID uint, markType MarkType) (*models.Attendance, error) {
	now := s.now()

	var (
		row     *models.Attendance
		outcome string
		err     error
	)
	switch markType {
	case MarkIn:
		row, outcome, err = s.signIn(ctx, userID, now)
	case MarkOut:
		row, outcome, err = s.signOut(ctx, userID, now)
	default:
		return nil, ErrInvalidMarkType
	}
	if err != nil {
		metrics.AttendanceMarked(string(markType), "error")
		return nil, fmt.Errorf("mark %s for user %d: %w", markType, userID, err)
	}

	metrics.AttendanceMarked(string(markType), outcome)
	s.log.Info("attendance marked",
		zap.Uint("user_id", userID),
		zap.String("type", string(markType)),
		zap.String("outcome", outcome),
		zap.String("day", row.Day),
	)
	return row, nil
}

func (s *Service) signIn(ctx context.Context, userID uint, now time.Time) (*models.Attendance, string, error) {
	row, created, err := s.findOrCreateDailyRecord(ctx, userID, now, func(a *models.Attendance) {
		a.SignInTime = &now
	})
	if err != nil {
		return nil, "", err
	}
	if created {
		return row, "created", nil
	}
	return row, "existing", nil
}

func (s *Service) signOut(ctx context.Context, userID uint, now time.Time) (*models.Attendance, string, error) {
	row, created, err := s.findOrCreateDailyRecord(ctx, userID, now, func(a *models.Attendance) {
		a.SignOutTime = &now
	})
	if err != nil {
		return nil, "", err
	}
	if created {
		s.log.Warn("sign-out without sign-in", zap.Uint("user_id", userID), zap.String("day", row.Day))
		return row, "out_only", nil
	}

	row, err = s.store.UpdateAttendance(ctx, row.ID, models.AttendancePatch{SignOutTime: &now})
	if err != nil {
		return nil, "", err
	}
	return row, "updated", nil
}

// findOrCreateDailyRecord returns the worked-shift row for the local day of
// now, inserting one shaped by init when none exists. created reports whether
// this call inserted the row.
func (s *Service) findOrCreateDailyRecord(ctx context.Context, userID uint, now time.Time, init func(*models.Attendance)) (*models.Attendance, bool, error) {
	day := now.Format(models.DayLayout)

	row, err := s.store.FindDailyAttendance(ctx, userID, day)
	if err == nil {
		return row, false, nil
	}
	if !errors.Is(err, database.ErrNotFound) {
		return nil, false, err
	}

	y, m, d := now.Date()
	row = &models.Attendance{
		UserID: userID,
		Day:    day,
		Date:   time.Date(y, m, d, 0, 0, 0, 0, now.Location()),
	}
	init(row)

	err = s.store.CreateAttendance(ctx, row)
	if errors.Is(err, database.ErrDuplicate) {
		// Lost the insert race to a concurrent mark for the same day.
		row, err = s.store.FindDailyAttendance(ctx, userID, day)
		return row, false, err
	}
	if err != nil {
		return nil, false, err
	}
	return row, true, nil
}
