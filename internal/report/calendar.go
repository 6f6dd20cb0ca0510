// Package report holds the pure aggregations the dashboard pages derive
// from already-fetched flat lists: monthly attendance calendars, debt
// totals, and salary groupings. Nothing here does I/O.
package report

import (
	"fmt"
	"math"
	"time"
)

// Attendance statuses as stored by the backend.
const (
	StatusKeldi   = "keldi"
	StatusKelmadi = "kelmadi"
	StatusKetdi   = "ketdi"
)

// Entry is one attendance record for a single subject, as fetched from
// the backend. Student records may carry the literal "true" instead of
// "keldi"; classification accepts both.
type Entry struct {
	Date        string `json:"date"`
	Status      string `json:"status"`
	Time        string `json:"time"`
	QuittedTime string `json:"quittedTime"`
}

// WeekendPolicy decides which weekdays count as rest days. Students
// rest only on Sunday while teachers rest Saturday and Sunday, so the
// policy is explicit per subject kind rather than unified.
type WeekendPolicy func(time.Weekday) bool

// StudentWeekend marks Sunday only.
func StudentWeekend(d time.Weekday) bool { return d == time.Sunday }

// TeacherWeekend marks Saturday and Sunday.
func TeacherWeekend(d time.Weekday) bool { return d == time.Saturday || d == time.Sunday }

// CalendarDay is one rendered day of a monthly attendance calendar.
type CalendarDay struct {
	Date        string `json:"date"`
	Day         string `json:"day"`
	DayNumber   int    `json:"dayNumber"`
	Status      string `json:"status"`
	Time        string `json:"time"`
	QuittedTime string `json:"quittedTime"`
	Weekend     bool   `json:"isWeekend"`
}

var displayWeekdays = map[time.Weekday]string{
	time.Monday:    "Dushanba",
	time.Tuesday:   "Seshanba",
	time.Wednesday: "Chorshanba",
	time.Thursday:  "Payshanba",
	time.Friday:    "Juma",
	time.Saturday:  "Shanba",
	time.Sunday:    "Yakshanba",
}

// MonthlyCalendar enumerates every day of month ("2006-01") and matches
// entries by exact date-string equality. Days without an entry render as
// kelmadi.
func MonthlyCalendar(entries []Entry, month string, weekend WeekendPolicy) ([]CalendarDay, error) {
	first, err := time.Parse("2006-01", month)
	if err != nil {
		return nil, fmt.Errorf("bad month %q: %w", month, err)
	}
	if weekend == nil {
		weekend = StudentWeekend
	}

	byDate := make(map[string]Entry, len(entries))
	for _, e := range entries {
		if _, seen := byDate[e.Date]; !seen {
			byDate[e.Date] = e
		}
	}

	daysInMonth := first.AddDate(0, 1, -1).Day()
	days := make([]CalendarDay, 0, daysInMonth)
	for n := 1; n <= daysInMonth; n++ {
		date := time.Date(first.Year(), first.Month(), n, 0, 0, 0, 0, time.UTC)
		day := CalendarDay{
			Date:        date.Format("02-01-2006"),
			Day:         displayWeekdays[date.Weekday()],
			DayNumber:   n,
			Status:      StatusKelmadi,
			Time:        "-",
			QuittedTime: "-",
			Weekend:     weekend(date.Weekday()),
		}
		if e, ok := byDate[date.Format("2006-01-02")]; ok {
			day.Status = classify(e.Status)
			if e.Time != "" {
				day.Time = e.Time
			}
			if e.QuittedTime != "" {
				day.QuittedTime = e.QuittedTime
			}
		}
		days = append(days, day)
	}
	return days, nil
}

func classify(status string) string {
	switch status {
	case StatusKeldi, "true":
		return StatusKeldi
	case StatusKetdi:
		return StatusKetdi
	}
	return StatusKelmadi
}

// CalendarStats summarizes a monthly calendar over working days.
type CalendarStats struct {
	TotalDays      int `json:"totalDays"`
	PresentDays    int `json:"presentDays"`
	AbsentDays     int `json:"absentDays"`
	AttendanceRate int `json:"attendanceRate"`
}

// Stats counts presence across non-weekend days. Only keldi counts as
// present; a ketdi day lands in the absent column, the same way the
// monthly summaries on both dashboard pages tally it.
func Stats(days []CalendarDay) CalendarStats {
	var s CalendarStats
	for _, d := range days {
		if d.Weekend {
			continue
		}
		s.TotalDays++
		if d.Status == StatusKeldi {
			s.PresentDays++
		}
	}
	s.AbsentDays = s.TotalDays - s.PresentDays
	if s.TotalDays > 0 {
		s.AttendanceRate = int(math.Round(float64(s.PresentDays) / float64(s.TotalDays) * 100))
	}
	return s
}
