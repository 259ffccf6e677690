package service

import (
	"github.com/google/uuid"

	"tuttiud_backend/internals/constants"
)

// Error codes returned by the session write path. The SPA maps these
// to user-facing messages, so the exact strings are a contract.
const (
	ErrStudentNotAssignedToUser  = "student_not_assigned_to_user"
	ErrAdminMustSpecifyInstructor = "admin_must_specify_instructor"
	ErrStudentMissingInstructor  = "student_missing_instructor"
	ErrInvalidStudentID          = "invalid_student_id"
	ErrInvalidInstructorID       = "invalid_instructor_id"
	ErrMissingDate               = "missing_date"
	ErrMissingTime               = "missing_time"
	ErrMissingUnassignedDetails  = "missing_unassigned_details"
)

// AttributionFacts is everything the resolver needs, gathered by the
// controller up front (instructor existence checks included) so the
// decision itself stays a pure function.
type AttributionFacts struct {
	Role     string
	CallerID uuid.UUID

	// instructor_id from the request body; nil when absent. The
	// controller has already verified a non-nil value points at an
	// existing active instructor.
	ExplicitID *uuid.UUID

	// whether the caller has their own instructor row
	CallerIsInstructor bool

	// loose report (no student on the request)
	IsLoose bool

	// the target student's assigned instructor; nil when loose or the
	// student has none
	AssignedInstructor *uuid.UUID
}

// ResolveInstructor decides which instructor id a session write is
// attributed to. Precedence is explicit -> caller-as-instructor ->
// assigned-instructor -> reject, with the member/admin split:
//
//   - a member writing for a student must BE that student's assigned
//     instructor, otherwise student_not_assigned_to_user;
//   - a member's loose report is always attributed to the member
//     themselves (an explicit id from a member is ignored);
//   - an admin may attribute to any explicit instructor; with none
//     given, their own instructor row is used when they have one;
//   - an admin filing a loose report with no explicit id and no
//     instructor row of their own gets admin_must_specify_instructor.
//
// A non-loose write never falls through to a nil instructor: the final
// catch-all is student_missing_instructor.
func ResolveInstructor(f AttributionFacts) (uuid.UUID, string) {
	isAdmin := constants.RoleAtLeast(f.Role, constants.RoleAdmin)

	if !isAdmin {
		if f.IsLoose {
			if f.CallerIsInstructor {
				return f.CallerID, ""
			}
			return uuid.Nil, ErrStudentMissingInstructor
		}
		if f.AssignedInstructor == nil || *f.AssignedInstructor != f.CallerID {
			return uuid.Nil, ErrStudentNotAssignedToUser
		}
		return *f.AssignedInstructor, ""
	}

	// admin / owner
	if f.ExplicitID != nil {
		return *f.ExplicitID, ""
	}
	if f.CallerIsInstructor {
		return f.CallerID, ""
	}
	if f.IsLoose {
		return uuid.Nil, ErrAdminMustSpecifyInstructor
	}
	if f.AssignedInstructor != nil {
		return *f.AssignedInstructor, ""
	}
	return uuid.Nil, ErrStudentMissingInstructor
}
