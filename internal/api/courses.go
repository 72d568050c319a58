package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/mind-engage/mindengage-classroom/internal/lms"
	"github.com/mind-engage/mindengage-classroom/internal/validate"
)

type CreateCourseRequest struct {
	Title       string `json:"title" validate:"notblank"`
	Description string `json:"description"`
}

type CreateLessonRequest struct {
	Title   string `json:"title" validate:"notblank"`
	Content string `json:"content"` // HTML
}

type CreateAssignmentRequest struct {
	Title       string    `json:"title" validate:"notblank"`
	Description string    `json:"description"` // HTML
	DueDate     *lms.Time `json:"dueDate,omitempty"`
	MaxPoints   float64   `json:"maxPoints" validate:"gte=0"`
}

// GET /courses
func (c *Client) ListCourses(ctx context.Context) ([]lms.Course, error) {
	var out []lms.Course
	if err := c.do(ctx, "Failed to load courses", http.MethodGet, "/courses", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GET /courses/{id}
func (c *Client) GetCourse(ctx context.Context, courseID int64) (lms.CourseDetail, error) {
	var out lms.CourseDetail
	err := c.do(ctx, "Failed to load course", http.MethodGet, fmt.Sprintf("/courses/%d", courseID), nil, &out)
	return out, err
}

// POST /courses
func (c *Client) CreateCourse(ctx context.Context, req CreateCourseRequest) (lms.Course, error) {
	if err := validate.Struct(req); err != nil {
		return lms.Course{}, err
	}
	var out lms.Course
	err := c.do(ctx, "Failed to create course", http.MethodPost, "/courses", req, &out)
	return out, err
}

// POST /courses/{id}/lessons
func (c *Client) CreateLesson(ctx context.Context, courseID int64, req CreateLessonRequest) (lms.Lesson, error) {
	if err := validate.Struct(req); err != nil {
		return lms.Lesson{}, err
	}
	var out lms.Lesson
	err := c.do(ctx, "Failed to create lesson", http.MethodPost, fmt.Sprintf("/courses/%d/lessons", courseID), req, &out)
	return out, err
}

// POST /courses/{id}/assignments
func (c *Client) CreateAssignment(ctx context.Context, courseID int64, req CreateAssignmentRequest) (lms.Assignment, error) {
	if err := validate.Struct(req); err != nil {
		return lms.Assignment{}, err
	}
	var out lms.Assignment
	err := c.do(ctx, "Failed to create assignment", http.MethodPost, fmt.Sprintf("/courses/%d/assignments", courseID), req, &out)
	return out, err
}
