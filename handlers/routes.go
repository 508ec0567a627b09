package handlers

import (
	"callcenter/access"
	"callcenter/analytics"
	"callcenter/attendance"
	"callcenter/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// API bundles the handlers mounted under /api.
type API struct {
	Auth       *AuthHandler
	Users      *UserHandler
	Reports    *ReportHandler
	Analytics  *AnalyticsHandler
	Attendance *AttendanceHandler
	Finances   *FinanceHandler
}

func NewAPI(store Store, auth *middleware.Auth, engine *analytics.Engine, marks *attendance.Service, baseSalary int, log *zap.Logger) *API {
	return &API{
		Auth:       NewAuthHandler(store, auth, log),
		Users:      NewUserHandler(store, log),
		Reports:    NewReportHandler(store, log),
		Analytics:  NewAnalyticsHandler(store, engine, log),
		Attendance: NewAttendanceHandler(store, marks, log),
		Finances:   NewFinanceHandler(store, baseSalary, log),
	}
}

func (a *API) Routes(auth *middleware.Auth) chi.Router {
	router := chi.NewRouter()

	router.Post("/login", a.Auth.Login)

	router.Group(func(r chi.Router) {
		r.Use(auth.Middleware)

		r.Post("/logout", a.Auth.Logout)
		r.Get("/user", a.Auth.Me)

		r.Get("/reports", a.Reports.List)
		r.Post("/reports", a.Reports.Create)
		r.Post("/reports/bulk", a.Reports.BulkCreate)
		r.With(middleware.Require(access.EditReport)).Patch("/reports/{id}", a.Reports.Update)
		r.With(middleware.Require(access.DeleteReport)).Delete("/reports/{id}", a.Reports.Delete)

		r.Get("/analytics/dashboard", a.Analytics.Dashboard)
		r.With(middleware.Require(access.ViewAgentProfile)).Get("/agents/{id}/profile", a.Analytics.AgentProfile)

		r.Get("/attendance", a.Attendance.List)
		r.Post("/attendance/mark", a.Attendance.Mark)
		r.Get("/attendance/today", a.Attendance.Today)
		r.Get("/attendance/{id}", a.Attendance.Get)
		r.With(middleware.Require(access.CreateAttendance)).Post("/attendance", a.Attendance.Create)
		r.With(middleware.Require(access.EditAttendance)).Patch("/attendance/{id}", a.Attendance.Update)
		r.With(middleware.Require(access.DeleteAttendance)).Delete("/attendance/{id}", a.Attendance.Delete)
		r.With(middleware.Require(access.ListAllAttendance)).Get("/admin/attendance", a.Attendance.ListAll)

		r.Get("/financials", a.Finances.Personal)
		r.With(middleware.Require(access.ViewAllFinances)).Get("/admin/financials", a.Finances.Summary)

		r.With(middleware.Require(access.ListUsers)).Get("/users", a.Users.List)
		r.With(middleware.Require(access.CreateUser)).Post("/users", a.Users.Create)
		r.With(middleware.Require(access.DeleteUser)).Delete("/users/{id}", a.Users.Delete)
	})

	return router
}
