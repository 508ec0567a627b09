package handlers

import (
	"context"
	"sort"
	"sync"

	"callcenter/database"
	"callcenter/models"
)

// memStore is an in-memory record store for handler tests.
type memStore struct {
	mu         sync.Mutex
	users      map[uint]*models.User
	reports    map[uint]*models.Report
	attendance map[uint]*models.Attendance
	nextID     uint

	lastFilter models.ReportFilter
}

func newMemStore() *memStore {
	return &memStore{
		users:      make(map[uint]*models.User),
		reports:    make(map[uint]*models.Report),
		attendance: make(map[uint]*models.Attendance),
		nextID:     100,
	}
}

func (m *memStore) id() uint {
	m.nextID++
	return m.nextID
}

func (m *memStore) GetUser(_ context.Context, id uint) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.users[id]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, database.ErrNotFound
}

func (m *memStore) GetUserByUsername(_ context.Context, username string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Username == username {
			copied := *u
			return &copied, nil
		}
	}
	return nil, database.ErrNotFound
}

func (m *memStore) ListUsers(context.Context) ([]models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.User
	for _, u := range m.users {
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *memStore) CreateUser(_ context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Username == user.Username {
			return database.ErrDuplicate
		}
	}
	user.ID = m.id()
	copied := *user
	m.users[user.ID] = &copied
	return nil
}

func (m *memStore) UpdateUserIP(_ context.Context, id uint, ip string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.users[id]; ok {
		u.LastIP = ip
	}
	return nil
}

func (m *memStore) DeleteUser(_ context.Context, id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[id]; !ok {
		return database.ErrNotFound
	}
	delete(m.users, id)
	return nil
}

func (m *memStore) CreateReport(_ context.Context, report *models.Report) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	report.ID = m.id()
	copied := *report
	m.reports[report.ID] = &copied
	return nil
}

func (m *memStore) BulkCreateReports(ctx context.Context, reports []models.Report) error {
	for i := range reports {
		if err := m.CreateReport(ctx, &reports[i]); err != nil {
			return err
		}
	}
	return nil
}

func (m *memStore) ListReports(_ context.Context, filter models.ReportFilter) ([]models.Report, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastFilter = filter
	var out []models.Report
	for _, r := range m.reports {
		if filter.AgentID != 0 && r.AgentID != filter.AgentID {
			continue
		}
		if filter.Location != "" && r.Location != filter.Location {
			continue
		}
		if filter.StartDate != nil && r.Timestamp.Before(*filter.StartDate) {
			continue
		}
		if filter.EndDate != nil && r.Timestamp.After(*filter.EndDate) {
			continue
		}
		out = append(out, *r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })
	return out, nil
}

func (m *memStore) UpdateReport(_ context.Context, id uint, patch models.ReportPatch) (*models.Report, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.reports[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	if patch.CloserName != nil {
		r.CloserName = *patch.CloserName
	}
	if patch.IsSale != nil {
		r.IsSale = *patch.IsSale
	}
	if patch.Remarks != nil {
		r.Remarks = *patch.Remarks
	}
	copied := *r
	return &copied, nil
}

func (m *memStore) DeleteReport(_ context.Context, id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.reports[id]; !ok {
		return database.ErrNotFound
	}
	delete(m.reports, id)
	return nil
}

func (m *memStore) ListAttendance(_ context.Context, userID uint) ([]models.Attendance, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Attendance
	for _, a := range m.attendance {
		if a.UserID == userID {
			out = append(out, *a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func (m *memStore) ListAllAttendance(context.Context) ([]models.Attendance, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Attendance
	for _, a := range m.attendance {
		if u, ok := m.users[a.UserID]; ok && u.IsAgent() {
			out = append(out, *a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func (m *memStore) GetAttendance(_ context.Context, id uint) (*models.Attendance, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if a, ok := m.attendance[id]; ok {
		copied := *a
		return &copied, nil
	}
	return nil, database.ErrNotFound
}

func (m *memStore) FindDailyAttendance(_ context.Context, userID uint, day string) (*models.Attendance, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.attendance {
		if a.UserID == userID && a.Day == day && !a.IsSalaryDay {
			copied := *a
			return &copied, nil
		}
	}
	return nil, database.ErrNotFound
}

func (m *memStore) CreateAttendance(_ context.Context, row *models.Attendance) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !row.IsSalaryDay {
		for _, a := range m.attendance {
			if a.UserID == row.UserID && a.Day == row.Day && !a.IsSalaryDay {
				return database.ErrDuplicate
			}
		}
	}
	row.ID = m.id()
	copied := *row
	m.attendance[row.ID] = &copied
	return nil
}

func (m *memStore) UpdateAttendance(_ context.Context, id uint, patch models.AttendancePatch) (*models.Attendance, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.attendance[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	if patch.SignOutTime != nil {
		a.SignOutTime = patch.SignOutTime
	}
	if patch.WorkedHours != nil {
		a.WorkedHours = *patch.WorkedHours
	}
	if patch.DockAmount != nil {
		a.DockAmount = *patch.DockAmount
	}
	if patch.Remark != nil {
		a.Remark = *patch.Remark
	}
	copied := *a
	return &copied, nil
}

func (m *memStore) DeleteAttendance(_ context.Context, id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.attendance[id]; !ok {
		return database.ErrNotFound
	}
	delete(m.attendance, id)
	return nil
}
