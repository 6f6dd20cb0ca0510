package school

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"scangate/internal/roster"
)

// TeacherRecord is the attendance submission for a matched teacher.
// Summ carries the derived daily wage.
type TeacherRecord struct {
	TeacherID  string  `json:"teacherId"`
	EmployeeNo string  `json:"employeeNo"`
	Date       string  `json:"davomatDate"`
	Status     string  `json:"status"`
	Summ       float64 `json:"summ"`
}

// StudentRecord is the attendance submission for a matched student.
// Status is a bare boolean on the wire; the backend expands it.
type StudentRecord struct {
	EmployeeNo string `json:"employeeNo"`
	Date       string `json:"davomatDate"`
	Status     bool   `json:"status"`
}

// Client calls the school backend REST API. Submissions are at-least-once:
// the backend is expected to upsert attendance by (subject, day), so a
// repeated scan for the same day must not create a duplicate there.
type Client struct {
	BaseURL  string
	SchoolID string
	HTTP     *http.Client
}

// New creates a client for the backend at baseURL. schoolID is attached
// to every request; submissions refuse to run without it.
func New(baseURL, schoolID string) *Client {
	return &Client{
		BaseURL:  baseURL,
		SchoolID: schoolID,
		HTTP: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// Teachers fetches the full teacher roster.
func (c *Client) Teachers(ctx context.Context) ([]roster.Teacher, error) {
	var out []roster.Teacher
	if err := c.get(ctx, "/teachers", &out); err != nil {
		return nil, fmt.Errorf("fetch teachers: %w", err)
	}
	return out, nil
}

// Students fetches the full student roster.
func (c *Client) Students(ctx context.Context) ([]roster.Student, error) {
	var out []roster.Student
	if err := c.get(ctx, "/students", &out); err != nil {
		return nil, fmt.Errorf("fetch students: %w", err)
	}
	return out, nil
}

// RecordTeacher submits a teacher attendance record.
func (c *Client) RecordTeacher(ctx context.Context, rec TeacherRecord) error {
	return c.post(ctx, "/teacher-davomat", rec)
}

// RecordStudent submits a student attendance record.
func (c *Client) RecordStudent(ctx context.Context, rec StudentRecord) error {
	return c.post(ctx, "/davomat/scan", rec)
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("X-School-Id", c.SchoolID)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("backend request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return apiError(resp)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *Client) post(ctx context.Context, path string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-School-Id", c.SchoolID)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("backend request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return apiError(resp)
	}
	io.Copy(io.Discard, resp.Body)
	return nil
}

// apiError extracts the backend's message field when present, otherwise
// falls back to the HTTP status.
func apiError(resp *http.Response) error {
	raw, _ := io.ReadAll(resp.Body)
	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &body); err == nil && body.Message != "" {
		return fmt.Errorf("backend error: %s", body.Message)
	}
	return fmt.Errorf("backend error: %s", resp.Status)
}
