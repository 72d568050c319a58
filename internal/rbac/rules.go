package rbac

// RolePermissions mirrors what the API lets each role do, so views can refuse
// an action before sending it.
var RolePermissions = map[string][]string{
	"Student": {
		"course:view",
		"enrollment:view-own",
		"enrollment:create",
		"submission:create",
		"grade:view-own",
	},
	"Instructor": {
		"course:*",
		"lesson:create",
		"assignment:create",
		"submission:view-all",
		"submission:grade",
		"gradebook:view",
	},
	"Admin": {
		"*", // everything
	},
}

// Permissions used by the client and the test API.
const (
	PermCourseView        = "course:view"
	PermCourseCreate      = "course:create"
	PermLessonCreate      = "lesson:create"
	PermAssignmentCreate  = "assignment:create"
	PermEnrollmentViewOwn = "enrollment:view-own"
	PermEnrollmentCreate  = "enrollment:create"
	PermSubmissionCreate  = "submission:create"
	PermSubmissionViewAll = "submission:view-all"
	PermSubmissionGrade   = "submission:grade"
	PermGradeViewOwn      = "grade:view-own"
	PermGradebookView     = "gradebook:view"
)
