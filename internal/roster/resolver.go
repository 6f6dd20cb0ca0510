package roster

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
)

const (
	teachersKey = "teachers"
	studentsKey = "students"
)

// Source fetches rosters from the school backend.
type Source interface {
	Teachers(ctx context.Context) ([]Teacher, error)
	Students(ctx context.Context) ([]Student, error)
}

// Resolver matches scan identifiers against cached roster snapshots.
// Snapshots are read-only between refreshes; a failed refresh keeps the
// previous snapshot so resolution degrades to stale data, not to empty.
type Resolver struct {
	src   Source
	cache *cache.Cache
}

// NewResolver creates a resolver over src with empty snapshots.
func NewResolver(src Source) *Resolver {
	return &Resolver{
		src:   src,
		cache: cache.New(cache.NoExpiration, 0),
	}
}

// Refresh pulls both rosters and swaps the snapshots.
func (r *Resolver) Refresh(ctx context.Context) error {
	teachers, err := r.src.Teachers(ctx)
	if err != nil {
		return err
	}
	students, err := r.src.Students(ctx)
	if err != nil {
		return err
	}
	r.cache.Set(teachersKey, teachers, cache.NoExpiration)
	r.cache.Set(studentsKey, students, cache.NoExpiration)
	return nil
}

// Run refreshes the rosters on an interval until ctx is cancelled.
func (r *Resolver) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if err := r.Refresh(ctx); err != nil {
				log.Printf("roster refresh failed: %v", err)
			}
		case <-ctx.Done():
			return
		}
	}
}

// Resolve matches employeeNo against the teacher roster first, then the
// student roster; both sides are trimmed and compared exactly. An empty
// identifier or a miss on both rosters is Unmatched and stays silent,
// so scans from unregistered badges are tolerated.
func (r *Resolver) Resolve(employeeNo string) Match {
	employeeNo = strings.TrimSpace(employeeNo)
	if employeeNo == "" {
		return Match{}
	}

	if v, ok := r.cache.Get(teachersKey); ok {
		teachers := v.([]Teacher)
		for i := range teachers {
			if strings.TrimSpace(teachers[i].EmployeeNo) == employeeNo {
				return Match{Kind: TeacherMatch, Teacher: &teachers[i]}
			}
		}
	}

	if v, ok := r.cache.Get(studentsKey); ok {
		students := v.([]Student)
		for i := range students {
			if strings.TrimSpace(students[i].EmployeeNo) == employeeNo {
				return Match{Kind: StudentMatch, Student: &students[i]}
			}
		}
	}

	return Match{}
}
