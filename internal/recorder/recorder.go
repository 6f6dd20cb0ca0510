// Package recorder turns resolved scan events into attendance
// submissions against the school backend.
package recorder

import (
	"context"
	"time"

	"github.com/google/uuid"

	"scangate/internal/notify"
	"scangate/internal/roster"
	"scangate/internal/scan"
	"scangate/internal/school"
)

// StatusPresent is the wire value the backend stores for a teacher
// check-in.
const StatusPresent = "keldi"

// Stage is the terminal state of a processed event.
type Stage string

const (
	// StageRecorded means the backend accepted the submission.
	StageRecorded Stage = "recorded"
	// StageFailed means the backend rejected or never received it.
	StageFailed Stage = "failed"
	// StageUnmatched means no roster entry matched; no notification.
	StageUnmatched Stage = "unmatched"
	// StageDiscarded means a precondition (school id) was missing.
	StageDiscarded Stage = "discarded"
)

// Outcome describes what happened to one scan event. Every event reaches
// exactly one terminal stage; the journal persists all of them, which is
// the dead-letter trail for unmatched and failed scans.
type Outcome struct {
	EventID    string
	EmployeeNo string
	Subject    string
	SubjectID  string
	Stage      Stage
	Date       string
	Summ       *float64
	Detail     string
	OccurredAt time.Time
}

// Resolver matches an identifier against the rosters.
type Resolver interface {
	Resolve(employeeNo string) roster.Match
}

// Backend submits attendance records. Submissions are at-least-once; the
// backend upserts by (subject, day).
type Backend interface {
	RecordTeacher(ctx context.Context, rec school.TeacherRecord) error
	RecordStudent(ctx context.Context, rec school.StudentRecord) error
}

// Recorder processes events one at a time. It holds no per-event state;
// two events for the same subject race only at the backend, which owns
// dedup.
type Recorder struct {
	schoolID string
	resolver Resolver
	backend  Backend
	notifier notify.Notifier
}

// New creates a recorder. schoolID is the session precondition: when
// empty, every event is discarded with an error notification and nothing
// is submitted.
func New(schoolID string, resolver Resolver, backend Backend, notifier notify.Notifier) *Recorder {
	if notifier == nil {
		notifier = notify.Discard{}
	}
	return &Recorder{
		schoolID: schoolID,
		resolver: resolver,
		backend:  backend,
		notifier: notifier,
	}
}

// Process runs one event to its terminal stage. At most one notification
// fires per event; the handled flag guards against double-firing even if
// resolution ever starts returning multiple matches. No retries: a
// failed submission is journaled and dropped.
func (r *Recorder) Process(ctx context.Context, evt scan.Event) Outcome {
	out := Outcome{
		EventID:    uuid.NewString(),
		EmployeeNo: evt.EmployeeNo,
		Date:       evt.Date(),
		OccurredAt: evt.OccurredAt,
	}

	if evt.EmployeeNo == "" {
		out.Stage = StageUnmatched
		out.Detail = "empty employee no"
		return out
	}

	if r.schoolID == "" {
		r.notifier.Error("sign in again: no school id configured")
		out.Stage = StageDiscarded
		out.Detail = scan.Errorf(scan.KindSessionMissing, "school id missing").Error()
		return out
	}

	handled := false
	m := r.resolver.Resolve(evt.EmployeeNo)
	switch m.Kind {
	case roster.TeacherMatch:
		t := m.Teacher
		out.Subject = m.Kind.String()
		out.SubjectID = t.ID
		summ := t.DailySum(scan.WeekdayKey(evt.OccurredAt))
		out.Summ = &summ

		err := r.backend.RecordTeacher(ctx, school.TeacherRecord{
			TeacherID:  t.ID,
			EmployeeNo: t.EmployeeNo,
			Date:       out.Date,
			Status:     StatusPresent,
			Summ:       summ,
		})
		if err != nil {
			if !handled {
				r.notifier.Error("teacher attendance failed: " + err.Error())
				handled = true
			}
			out.Stage = StageFailed
			out.Detail = scan.E(scan.KindSubmission, err).Error()
			return out
		}
		if !handled {
			r.notifier.Success("teacher attendance: " + t.FullName())
			handled = true
		}
		out.Stage = StageRecorded
		return out

	case roster.StudentMatch:
		s := m.Student
		out.Subject = m.Kind.String()
		out.SubjectID = s.ID

		err := r.backend.RecordStudent(ctx, school.StudentRecord{
			EmployeeNo: s.EmployeeNo,
			Date:       out.Date,
			Status:     true,
		})
		if err != nil {
			if !handled {
				r.notifier.Error("student attendance failed: " + err.Error())
				handled = true
			}
			out.Stage = StageFailed
			out.Detail = scan.E(scan.KindSubmission, err).Error()
			return out
		}
		if !handled {
			r.notifier.Success("student attendance: " + s.FullName())
			handled = true
		}
		out.Stage = StageRecorded
		return out
	}

	// Unregistered badge, e.g. a visitor: no record, no notification.
	out.Stage = StageUnmatched
	return out
}
