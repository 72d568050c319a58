package rbac

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCheckerDefaultPolicy(t *testing.T) {
	c := NewChecker(nil)
	tests := []struct {
		role, perm string
		want       bool
	}{
		{"Student", PermSubmissionCreate, true},
		{"Student", PermGradebookView, false},
		{"Student", PermCourseCreate, false},
		{"Instructor", PermCourseCreate, true}, // via course:*
		{"Instructor", PermCourseView, true},
		{"Instructor", PermSubmissionGrade, true},
		{"Instructor", PermEnrollmentCreate, false},
		{"Admin", PermGradebookView, true},
		{"Admin", "anything:at-all", true},
		{"student", PermCourseView, false}, // labels are case-sensitive
		{"", PermCourseView, false},
	}
	for _, tt := range tests {
		if got := c.Has(tt.role, tt.perm); got != tt.want {
			t.Errorf("Has(%q, %q) = %v, want %v", tt.role, tt.perm, got, tt.want)
		}
	}
}

func TestRequireMiddleware(t *testing.T) {
	h := Require(PermGradebookView)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	for role, want := range map[string]int{
		"Instructor": http.StatusNoContent,
		"Student":    http.StatusForbidden,
		"":           http.StatusForbidden,
	} {
		req := httptest.NewRequest(http.MethodGet, "/grades/course/1", nil)
		req = req.WithContext(WithRole(context.Background(), role))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		if rec.Code != want {
			t.Errorf("role %q: status %d, want %d", role, rec.Code, want)
		}
	}
}

func TestCheckMessage(t *testing.T) {
	c := NewChecker(nil)
	if err := c.Check("Instructor", PermGradebookView); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	err := c.Check("Student", PermGradebookView)
	if err == nil {
		t.Fatal("expected forbidden")
	}
	if got, want := err.Error(), "Student accounts are not allowed to view gradebook"; got != want {
		t.Errorf("message = %q, want %q", got, want)
	}
}
