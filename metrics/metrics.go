package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	aggregationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "callcenter",
		Name:      "aggregation_duration_seconds",
		Help:      "Time spent aggregating reports into a dashboard view.",
		Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 14),
	}, []string{"view"})

	aggregatedReports = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "callcenter",
		Name:      "aggregated_reports",
		Help:      "Number of reports fed into one aggregation.",
		Buckets:   prometheus.ExponentialBuckets(1, 4, 10),
	}, []string{"view"})

	attendanceMarks = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "callcenter",
		Name:      "attendance_marks_total",
		Help:      "Attendance sign-in/sign-out actions by type and outcome.",
	}, []string{"type", "outcome"})

	reportsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "callcenter",
		Name:      "reports_created_total",
		Help:      "Call reports inserted, single and bulk.",
	})
)

// ObserveAggregation records one aggregation run that started at start.
func ObserveAggregation(view string, start time.Time, reports int) {
	aggregationDuration.WithLabelValues(view).Observe(time.Since(start).Seconds())
	aggregatedReports.WithLabelValues(view).Observe(float64(reports))
}

func AttendanceMarked(markType, outcome string) {
	attendanceMarks.WithLabelValues(markType, outcome).Inc()
}

func ReportsCreated(n int) {
	reportsCreated.Add(float64(n))
}
