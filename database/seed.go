package database

import (
	"context"
	"errors"
	"time"

	"callcenter/models"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type SeedOptions struct {
	Password string
	DemoData bool
}

// Seed creates the admin, DEO and demo agent accounts when no admin exists,
// and optionally the demo reports and attendance owned by the demo agent.
func Seed(ctx context.Context, store *Store, opts SeedOptions, log *zap.Logger) error {
	_, err := store.GetUserByUsername(ctx, "admin")
	if err == nil {
		return nil
	}
	if !errors.Is(err, ErrNotFound) {
		return err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(opts.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	seedUsers := []models.User{
		{Username: "admin", Name: "System Administrator", Role: models.RoleAdmin, Location: models.LocationOnsite},
		{Username: "DEO", Name: "Data Entry Operator", Role: models.RoleDEO, Location: models.LocationOnsite},
		{Username: "agent", Name: "Hassam Sheikh", Role: models.RoleAgent, Location: models.LocationOnsite},
	}
	for i := range seedUsers {
		seedUsers[i].Password = string(hashedPassword)
		if err := store.CreateUser(ctx, &seedUsers[i]); err != nil {
			return err
		}
		log.Info("seeded user", zap.String("username", seedUsers[i].Username), zap.String("role", string(seedUsers[i].Role)))
	}

	if !opts.DemoData {
		return nil
	}

	agent := seedUsers[2]
	reports := demoReports(agent.ID)
	if err := store.BulkCreateReports(ctx, reports); err != nil {
		return err
	}
	log.Info("seeded demo reports", zap.Int("count", len(reports)))

	rows := demoAttendance(agent.ID)
	for i := range rows {
		if err := store.CreateAttendance(ctx, &rows[i]); err != nil {
			return err
		}
	}
	log.Info("seeded demo attendance", zap.Int("count", len(rows)))
	return nil
}

func at(year int, month time.Month, day, hour, min, sec int) time.Time {
	return time.Date(year, month, day, hour, min, sec, 0, time.Local)
}

func demoReports(agentID uint) []models.Report {
	const fronter = "Hassam Sheikh (8004)"
	report := func(ts time.Time, phone, year, state, closer, remarks string, loc models.Location) models.Report {
		return models.Report{
			Timestamp:    ts,
			PhoneNo:      phone,
			AccidentYear: year,
			State:        state,
			FronterName:  fronter,
			CloserName:   closer,
			Remarks:      remarks,
			Location:     loc,
			AgentID:      agentID,
		}
	}

	reports := []models.Report{
		report(at(2026, 1, 3, 21, 18, 25), "2054711708", "2025", "AL", "Zainab", "sounding fishy and hungup when i asked about info", models.LocationOnsite),
		report(at(2026, 1, 3, 21, 29, 53), "2147297217", "2025", "TX", "Gulfaraz", "Attorney dealing", models.LocationOnsite),
		report(at(2026, 1, 3, 22, 27, 53), "3256273257", "2025", "TX", "Sami", "Cx said everyone got the ticket", models.LocationWFH),
		report(at(2026, 1, 3, 23, 31, 35), "2054221673", "2024", "AL", "Gulfaraz", "acc 2023", models.LocationOnsite),
		report(at(2026, 1, 3, 23, 46, 43), "3095073396", "2025", "NV", "Gulfaraz", "DNC", models.LocationWFH),
		report(at(2026, 1, 4, 1, 19, 49), "4692458605", "2024", "TX", "Zainab", "Already claimed", models.LocationOnsite),
		report(at(2026, 1, 5, 10, 15, 0), "5125550199", "2025", "CA", "Sami", "Interested in sale", models.LocationWFH),
		report(at(2026, 1, 6, 14, 30, 0), "6175550288", "2024", "MA", "Gulfaraz", "Successful Transfer", models.LocationOnsite),
	}
	reports[len(reports)-1].FronterName = "Agent Smith"
	return reports
}

func demoAttendance(userID uint) []models.Attendance {
	shift := func(day int, inH, inM, outH, outM, sales, bonus, dock int, hours float64, remark string) models.Attendance {
		signIn := at(2026, 1, day, inH, inM, 0)
		signOut := at(2026, 1, day, outH, outM, 0)
		date := at(2026, 1, day, 0, 0, 0)
		return models.Attendance{
			UserID:      userID,
			Day:         date.Format(models.DayLayout),
			Date:        date,
			SignInTime:  &signIn,
			SignOutTime: &signOut,
			WorkedHours: hours,
			SalesCount:  sales,
			BonusAmount: bonus,
			DockAmount:  dock,
			Remark:      remark,
		}
	}

	payday := at(2026, 1, 1, 0, 0, 0)
	return []models.Attendance{
		{
			UserID:           userID,
			Day:              payday.Format(models.DayLayout),
			Date:             payday,
			IsSalaryDay:      true,
			SalaryAmount:     30000,
			PunctualityBonus: 5000,
			BonusAmount:      33000,
			DockAmount:       3000,
			Remark:           "December Salary Payout",
		},
		shift(20, 9, 0, 18, 0, 2, 1000, 0, 9, "Full day"),
		shift(21, 10, 30, 18, 0, 1, 500, 500, 7.5, "500 - Late Sign In"),
		shift(22, 9, 0, 16, 0, 3, 1500, 500, 7, "500 - Early Sign Out"),
		shift(23, 9, 15, 18, 15, 4, 2000, 0, 9, "Perfect Shift"),
		shift(24, 8, 55, 17, 55, 2, 1000, 0, 9, "On time"),
		shift(25, 9, 0, 15, 30, 1, 500, 500, 6.5, "500 - Early Sign Out"),
	}
}
