package scan

import "time"

// Teacher schedules are keyed by Uzbek weekday names, matching the
// schedule documents stored by the school backend.
var uzbekWeekdays = map[time.Weekday]string{
	time.Monday:    "dushanba",
	time.Tuesday:   "seshanba",
	time.Wednesday: "chorshanba",
	time.Thursday:  "payshanba",
	time.Friday:    "juma",
	time.Saturday:  "shanba",
	time.Sunday:    "yakshanba",
}

// WeekdayKey returns the schedule key for t's weekday.
func WeekdayKey(t time.Time) string {
	return uzbekWeekdays[t.Weekday()]
}
