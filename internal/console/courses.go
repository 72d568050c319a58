package console

import (
	"context"
	"sort"

	"github.com/mind-engage/mindengage-classroom/internal/api"
	"github.com/mind-engage/mindengage-classroom/internal/lms"
	"github.com/mind-engage/mindengage-classroom/internal/rbac"
)

// Course status labels shown in the course list.
const (
	StatusNotEnrolled = "Not enrolled"
	StatusInProgress  = "In progress"
)

// Courses lists every course. Students also see whether they are enrolled.
func (c *Console) Courses(ctx context.Context) error {
	sess, err := c.require(rbac.PermCourseView)
	if err != nil {
		return err
	}
	courses, err := c.API.ListCourses(ctx)
	if err != nil {
		return err
	}

	enrolled := map[int64]bool{}
	if sess.Role == lms.RoleStudent {
		mine, err := c.API.ListMyCourses(ctx)
		if err != nil {
			return err
		}
		for _, m := range mine {
			enrolled[m.CourseID] = true
		}
	}

	if len(courses) == 0 {
		c.println("No courses available.")
		return nil
	}
	tw := c.table()
	row(tw, "ID", "TITLE", "INSTRUCTOR", "STATUS")
	for _, co := range courses {
		status := StatusInProgress
		if sess.Role == lms.RoleStudent && !enrolled[co.ID] {
			status = StatusNotEnrolled
		}
		row(tw, id(co.ID), co.Title, co.InstructorName, status)
	}
	return tw.Flush()
}

func (c *Console) CreateCourse(ctx context.Context, title, description string) error {
	if _, err := c.require(rbac.PermCourseCreate); err != nil {
		return err
	}
	co, err := c.API.CreateCourse(ctx, api.CreateCourseRequest{Title: title, Description: description})
	if err != nil {
		return err
	}
	c.printf("Created course %d: %s\n", co.ID, co.Title)
	return nil
}

// MyCourses lists the courses the signed-in student is enrolled in.
func (c *Console) MyCourses(ctx context.Context) error {
	if _, err := c.require(rbac.PermEnrollmentViewOwn); err != nil {
		return err
	}
	mine, err := c.API.ListMyCourses(ctx)
	if err != nil {
		return err
	}
	if len(mine) == 0 {
		c.println("You are not enrolled in any courses yet.")
		return nil
	}
	tw := c.table()
	row(tw, "ID", "TITLE", "DESCRIPTION")
	for _, m := range mine {
		row(tw, id(m.CourseID), m.Title, m.Description)
	}
	return tw.Flush()
}

func (c *Console) Enroll(ctx context.Context, courseID int64) error {
	if _, err := c.require(rbac.PermEnrollmentCreate); err != nil {
		return err
	}
	if err := c.API.Enroll(ctx, courseID); err != nil {
		return err
	}
	c.printf("Enrolled in course %d.\n", courseID)
	return nil
}

// CourseDetail shows a course with its lessons in order and its assignments.
func (c *Console) CourseDetail(ctx context.Context, courseID int64) error {
	if _, err := c.require(rbac.PermCourseView); err != nil {
		return err
	}
	d, err := c.API.GetCourse(ctx, courseID)
	if err != nil {
		return err
	}

	c.println(d.Title)
	c.printf("Instructor: %s\n", d.InstructorName)
	if d.Description != "" {
		c.println(d.Description)
	}

	c.println("\nLessons")
	if len(d.Lessons) == 0 {
		c.println("No lessons yet.")
	}
	lessons := append([]lms.Lesson(nil), d.Lessons...)
	sort.SliceStable(lessons, func(i, j int) bool { return lessons[i].Order < lessons[j].Order })
	for _, l := range lessons {
		c.printf("%d. %s\n", l.Order, l.Title)
		if body := plainText(l.Content); body != "" {
			c.println(indent(body, "   "))
		}
	}

	c.println("\nAssignments")
	if len(d.Assignments) == 0 {
		c.println("No assignments yet.")
	}
	for _, a := range d.Assignments {
		due := "no due date"
		if a.DueDate != nil && !a.DueDate.IsZero() {
			due = "due " + c.localTime(*a.DueDate)
		}
		c.printf("[%d] %s (max %s, %s)\n", a.ID, a.Title, points(a.MaxPoints), due)
		if body := plainText(a.Description); body != "" {
			c.println(indent(body, "   "))
		}
	}
	return nil
}
