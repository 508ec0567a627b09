package analytics

import "time"

// Since turns the dashboard's days parameter into a lower timestamp bound.
// nil (or negative) means all time; 0 means since local midnight of now;
// n > 0 means n days before now.
func Since(days *int, now time.Time) (time.Time, bool) {
	if days == nil || *days < 0 {
		return time.Time{}, false
	}
	if *days == 0 {
		return startOfDay(now), true
	}
	return now.AddDate(0, 0, -*days), true
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
