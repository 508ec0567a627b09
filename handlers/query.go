package handlers

import (
	"net/http"
	"strconv"
	"time"

	"callcenter/access"
	"callcenter/models"
)

// parseReportQuery reads agentId, location, days, startDate and endDate.
// Dates accept RFC 3339 or a bare YYYY-MM-DD, the latter in server-local
// time; a bare endDate covers the whole day.
func parseReportQuery(r *http.Request) (access.ReportQuery, error) {
	q := r.URL.Query()
	var out access.ReportQuery
	fields := make(map[string]string)

	if v := q.Get("agentId"); v != "" && v != "all" {
		id, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			fields["agentId"] = "must be a positive integer"
		} else {
			agentID := uint(id)
			out.AgentID = &agentID
		}
	}

	if v := q.Get("location"); v != "" && v != "all" {
		if !models.Location(v).Valid() {
			fields["location"] = "must be one of: all, onsite, wfh"
		}
	}
	out.Location = q.Get("location")

	if v := q.Get("days"); v != "" {
		days, err := strconv.Atoi(v)
		if err != nil {
			fields["days"] = "must be an integer"
		} else {
			out.Days = &days
		}
	}

	if v := q.Get("startDate"); v != "" {
		t, _, err := parseDate(v)
		if err != nil {
			fields["startDate"] = "must be an ISO-8601 date"
		} else {
			out.StartDate = &t
		}
	}

	if v := q.Get("endDate"); v != "" {
		t, dateOnly, err := parseDate(v)
		if err != nil {
			fields["endDate"] = "must be an ISO-8601 date"
		} else {
			if dateOnly {
				t = t.AddDate(0, 0, 1).Add(-time.Nanosecond)
			}
			out.EndDate = &t
		}
	}

	if len(fields) > 0 {
		return access.ReportQuery{}, &validationError{fields: fields}
	}
	return out, nil
}

func parseDate(v string) (time.Time, bool, error) {
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, false, nil
	}
	t, err := time.ParseInLocation(models.DayLayout, v, time.Local)
	return t, true, err
}
