package roster

import (
	"context"
	"errors"
	"testing"
)

type fakeSource struct {
	teachers []Teacher
	students []Student
	err      error
}

func (f *fakeSource) Teachers(ctx context.Context) ([]Teacher, error) {
	return f.teachers, f.err
}

func (f *fakeSource) Students(ctx context.Context) ([]Student, error) {
	return f.students, f.err
}

func newTestResolver(t *testing.T, src *fakeSource) *Resolver {
	t.Helper()
	r := NewResolver(src)
	if err := r.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}
	return r
}

func TestResolve(t *testing.T) {
	src := &fakeSource{
		teachers: []Teacher{
			{ID: "t1", EmployeeNo: "T007", FirstName: "Aziz", LastName: "Karimov"},
			{ID: "t2", EmployeeNo: " 42 ", FirstName: "Dil", LastName: "Yusupova"},
		},
		students: []Student{
			{ID: "s1", EmployeeNo: "S001", FirstName: "Ali", LastName: "Valiyev"},
			{ID: "s2", EmployeeNo: "T007", FirstName: "Shadow", LastName: "Entry"},
		},
	}
	r := newTestResolver(t, src)

	tests := []struct {
		name       string
		employeeNo string
		wantKind   Kind
		wantID     string
	}{
		{name: "teacher match", employeeNo: "T007", wantKind: TeacherMatch, wantID: "t1"},
		{name: "teacher wins over student with same no", employeeNo: " T007 ", wantKind: TeacherMatch, wantID: "t1"},
		{name: "roster side trimmed too", employeeNo: "42", wantKind: TeacherMatch, wantID: "t2"},
		{name: "student match", employeeNo: "S001", wantKind: StudentMatch, wantID: "s1"},
		{name: "no match", employeeNo: "X999", wantKind: Unmatched},
		{name: "empty after trim", employeeNo: "   ", wantKind: Unmatched},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := r.Resolve(tt.employeeNo)
			if m.Kind != tt.wantKind {
				t.Fatalf("Resolve(%q).Kind = %v, want %v", tt.employeeNo, m.Kind, tt.wantKind)
			}
			switch m.Kind {
			case TeacherMatch:
				if m.Teacher == nil || m.Teacher.ID != tt.wantID {
					t.Errorf("Teacher = %+v, want id %q", m.Teacher, tt.wantID)
				}
			case StudentMatch:
				if m.Student == nil || m.Student.ID != tt.wantID {
					t.Errorf("Student = %+v, want id %q", m.Student, tt.wantID)
				}
			}
		})
	}
}

func TestResolveBeforeRefresh(t *testing.T) {
	r := NewResolver(&fakeSource{})
	if m := r.Resolve("T007"); m.Kind != Unmatched {
		t.Errorf("empty snapshot should resolve to Unmatched, got %v", m.Kind)
	}
}

func TestRefreshFailureKeepsSnapshot(t *testing.T) {
	src := &fakeSource{teachers: []Teacher{{ID: "t1", EmployeeNo: "T007"}}}
	r := newTestResolver(t, src)

	src.err = errors.New("backend down")
	if err := r.Refresh(context.Background()); err == nil {
		t.Fatal("Refresh() should propagate source error")
	}
	if m := r.Resolve("T007"); m.Kind != TeacherMatch {
		t.Errorf("stale snapshot should still resolve, got %v", m.Kind)
	}
}

func TestDailySum(t *testing.T) {
	teacher := Teacher{Price: 50000, Schedule: map[string]float64{"dushanba": 4}}
	if got := teacher.DailySum("dushanba"); got != 200000 {
		t.Errorf("DailySum(dushanba) = %v, want 200000", got)
	}
	if got := teacher.DailySum("juma"); got != 0 {
		t.Errorf("DailySum(juma) = %v, want 0 for unscheduled day", got)
	}
}
