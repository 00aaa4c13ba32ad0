package validator

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stemsi/tutorhub-backend/internal/model"
)

func init() {
	gin.SetMode(gin.TestMode)
	Setup()
}

func bindBody(t *testing.T, body string, dst interface{}) map[string]string {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return Bind(c, dst)
}

func TestBindUsesJSONFieldNames(t *testing.T) {
	var req model.LectureRequest
	fields := bindBody(t, `{"tutor_id": 2, "standard_id": 1, "date": "12-06-2024", "start_time": "9am", "end_time": "10:00", "description": "Quiz"}`, &req)

	for _, key := range []string{"subject_id", "date", "start_time", "description"} {
		if _, ok := fields[key]; !ok {
			t.Errorf("missing error for %q in %v", key, fields)
		}
	}
	if _, ok := fields["end_time"]; ok {
		t.Errorf("end_time should be valid, got %q", fields["end_time"])
	}
	if got := fields["subject_id"]; got != "subject_id is a required field" {
		t.Errorf("subject_id message = %q", got)
	}
}

func TestBindValidPayload(t *testing.T) {
	var req model.MarkRequest
	if fields := bindBody(t, `{"student_id": 4, "marks": 0, "total_marks": 25}`, &req); fields != nil {
		t.Fatalf("unexpected errors %v", fields)
	}
	if req.TotalMarks != 25 || req.Marks != 0 {
		t.Errorf("bound %+v", req)
	}
}

func TestBindBulkAttendanceDives(t *testing.T) {
	var req model.BulkAttendanceRequest
	fields := bindBody(t, `{"entries": [{"student_id": 1, "status": "Present"}, {"student_id": 2, "status": "Late"}]}`, &req)
	if fields == nil {
		t.Fatal("expected validation error for unknown status")
	}
	found := false
	for k := range fields {
		if strings.Contains(k, "status") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected status error, got %v", fields)
	}
}

func TestBindSyntaxErrorUsesDetail(t *testing.T) {
	var req model.MarkRequest
	fields := bindBody(t, `{"student_id": `, &req)
	if _, ok := fields["detail"]; !ok {
		t.Errorf("expected detail key, got %v", fields)
	}
}

func TestBindQueryUsesFormNames(t *testing.T) {
	type query struct {
		Page int `form:"page" binding:"omitempty,min=1"`
	}
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/?page=-1", nil)

	var q query
	fields := BindQuery(c, &q)
	if _, ok := fields["page"]; !ok {
		t.Errorf("expected page error, got %v", fields)
	}
}

func TestBindCustomRules(t *testing.T) {
	var note model.NoteRequest
	fields := bindBody(t, `{"subject_id": 1, "standard_id": 1, "title": "   ", "file_url": "/uploads/../etc/passwd"}`, &note)
	if got := fields["title"]; got != "title must not be blank" {
		t.Errorf("title message = %q", got)
	}
	if got := fields["file_url"]; got != "file_url must be an /uploads/ path or an http(s) URL" {
		t.Errorf("file_url message = %q", got)
	}

	for _, u := range []string{"/uploads/2024/06/a.pdf", "https://drive.example.com/x"} {
		var ok model.NoteRequest
		body := `{"subject_id": 1, "standard_id": 1, "title": "Algebra", "file_url": "` + u + `"}`
		if fields := bindBody(t, body, &ok); fields != nil {
			t.Errorf("%s rejected: %v", u, fields)
		}
	}
}
