package school

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestTeachersDecodesRoster(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/teachers" {
			t.Errorf("path = %q, want /teachers", r.URL.Path)
		}
		if got := r.Header.Get("X-School-Id"); got != "school-1" {
			t.Errorf("X-School-Id = %q, want school-1", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"_id":"t1","employeeNo":"T007","firstName":"Aziz","lastName":"Karimov","price":50000,"schedule":{"dushanba":4}}]`))
	}))
	defer srv.Close()

	c := New(srv.URL, "school-1")
	teachers, err := c.Teachers(context.Background())
	if err != nil {
		t.Fatalf("Teachers() error = %v", err)
	}
	if len(teachers) != 1 {
		t.Fatalf("got %d teachers, want 1", len(teachers))
	}
	if teachers[0].EmployeeNo != "T007" || teachers[0].Price != 50000 || teachers[0].Schedule["dushanba"] != 4 {
		t.Errorf("unexpected teacher: %+v", teachers[0])
	}
}

func TestRecordTeacherPayload(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/teacher-davomat" {
			t.Errorf("path = %q, want /teacher-davomat", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	c := New(srv.URL, "school-1")
	err := c.RecordTeacher(context.Background(), TeacherRecord{
		TeacherID:  "t1",
		EmployeeNo: "T007",
		Date:       "2024-03-04",
		Status:     "keldi",
		Summ:       200000,
	})
	if err != nil {
		t.Fatalf("RecordTeacher() error = %v", err)
	}
	if got["teacherId"] != "t1" || got["davomatDate"] != "2024-03-04" || got["status"] != "keldi" || got["summ"] != float64(200000) {
		t.Errorf("unexpected payload: %v", got)
	}
}

func TestRecordStudentPayload(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&got)
	}))
	defer srv.Close()

	c := New(srv.URL, "school-1")
	if err := c.RecordStudent(context.Background(), StudentRecord{EmployeeNo: "S001", Date: "2024-03-04", Status: true}); err != nil {
		t.Fatalf("RecordStudent() error = %v", err)
	}
	if got["status"] != true {
		t.Errorf("status = %v, want true", got["status"])
	}
	if _, ok := got["summ"]; ok {
		t.Error("student submission must not carry summ")
	}
}

func TestErrorMessageExtraction(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantPart string
	}{
		{name: "backend message", body: `{"message":"davomat already closed"}`, wantPart: "davomat already closed"},
		{name: "no message falls back to status", body: `{"oops":1}`, wantPart: "500"},
		{name: "not json falls back to status", body: "boom", wantPart: "500"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c := New(srv.URL, "school-1")
			err := c.RecordStudent(context.Background(), StudentRecord{EmployeeNo: "S001", Date: "2024-03-04", Status: true})
			if err == nil {
				t.Fatal("want error")
			}
			if !strings.Contains(err.Error(), tt.wantPart) {
				t.Errorf("error %q does not contain %q", err, tt.wantPart)
			}
		})
	}
}
