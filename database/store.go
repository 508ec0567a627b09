package database

import (
	"context"
	"errors"
	"fmt"

	"callcenter/models"

	"gorm.io/gorm"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("record already exists")
)

const bulkBatchSize = 500

// Store is the record store for users, reports and attendance. Update and
// delete against a missing id return ErrNotFound.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	}
	return err
}

// Users

func (s *Store) GetUser(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (s *Store) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (s *Store) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := s.db.WithContext(ctx).Order("name").Find(&users).Error
	return users, err
}

func (s *Store) CountAgents(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.User{}).Where("role = ?", models.RoleAgent).Count(&count).Error
	return count, err
}

func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		return fmt.Errorf("create user %q: %w", user.Username, translate(err))
	}
	return nil
}

func (s *Store) UpdateUserIP(ctx context.Context, id uint, ip string) error {
	return s.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Update("last_ip", ip).Error
}

func (s *Store) DeleteUser(ctx context.Context, id uint) error {
	result := s.db.WithContext(ctx).Delete(&models.User{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Reports

func (s *Store) CreateReport(ctx context.Context, report *models.Report) error {
	return s.db.WithContext(ctx).Create(report).Error
}

func (s *Store) BulkCreateReports(ctx context.Context, reports []models.Report) error {
	if len(reports) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).CreateInBatches(&reports, bulkBatchSize).Error
}

func (s *Store) ListReports(ctx context.Context, filter models.ReportFilter) ([]models.Report, error) {
	query := s.db.WithContext(ctx)
	if filter.AgentID != 0 {
		query = query.Where("agent_id = ?", filter.AgentID)
	}
	if filter.Location != "" {
		query = query.Where("location = ?", filter.Location)
	}
	if filter.StartDate != nil {
		query = query.Where("timestamp >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		query = query.Where("timestamp <= ?", *filter.EndDate)
	}

	var reports []models.Report
	err := query.Order("timestamp desc").Find(&reports).Error
	return reports, err
}

func (s *Store) UpdateReport(ctx context.Context, id uint, patch models.ReportPatch) (*models.Report, error) {
	db := s.db.WithContext(ctx)

	var report models.Report
	if err := db.First(&report, id).Error; err != nil {
		return nil, translate(err)
	}
	if updates := patch.Updates(); len(updates) > 0 {
		if err := db.Model(&report).Updates(updates).Error; err != nil {
			return nil, err
		}
		if err := db.First(&report, id).Error; err != nil {
			return nil, translate(err)
		}
	}
	return &report, nil
}

func (s *Store) DeleteReport(ctx context.Context, id uint) error {
	result := s.db.WithContext(ctx).Delete(&models.Report{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Attendance

func (s *Store) ListAttendance(ctx context.Context, userID uint) ([]models.Attendance, error) {
	var rows []models.Attendance
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("date desc").Find(&rows).Error
	return rows, err
}

// ListAllAttendance returns every agent's attendance, newest first.
func (s *Store) ListAllAttendance(ctx context.Context) ([]models.Attendance, error) {
	var rows []models.Attendance
	err := s.db.WithContext(ctx).
		Joins("JOIN users ON users.id = attendances.user_id").
		Where("users.role = ?", models.RoleAgent).
		Order("attendances.date desc").
		Find(&rows).Error
	return rows, err
}

func (s *Store) GetAttendance(ctx context.Context, id uint) (*models.Attendance, error) {
	var row models.Attendance
	if err := s.db.WithContext(ctx).First(&row, id).Error; err != nil {
		return nil, translate(err)
	}
	return &row, nil
}

// FindDailyAttendance looks up the worked-shift row for (userID, day).
func (s *Store) FindDailyAttendance(ctx context.Context, userID uint, day string) (*models.Attendance, error) {
	var row models.Attendance
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND day = ? AND is_salary_day = ?", userID, day, false).
		First(&row).Error
	if err != nil {
		return nil, translate(err)
	}
	return &row, nil
}

func (s *Store) CreateAttendance(ctx context.Context, row *models.Attendance) error {
	if err := s.db.WithContext(ctx).Create(row).Error; err != nil {
		return translate(err)
	}
	return nil
}

func (s *Store) UpdateAttendance(ctx context.Context, id uint, patch models.AttendancePatch) (*models.Attendance, error) {
	db := s.db.WithContext(ctx)

	var row models.Attendance
	if err := db.First(&row, id).Error; err != nil {
		return nil, translate(err)
	}
	if updates := patch.Updates(); len(updates) > 0 {
		if err := db.Model(&row).Updates(updates).Error; err != nil {
			return nil, translate(err)
		}
		if err := db.First(&row, id).Error; err != nil {
			return nil, translate(err)
		}
	}
	return &row, nil
}

func (s *Store) DeleteAttendance(ctx context.Context, id uint) error {
	result := s.db.WithContext(ctx).Delete(&models.Attendance{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
