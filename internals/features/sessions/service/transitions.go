package service

import (
	model "tuttiud_backend/internals/features/sessions/model"
)

// Loose-report workflow codes.
const (
	ErrSessionNotFound        = "session_not_found"
	ErrSessionAlreadyAssigned = "session_already_assigned"
	ErrSessionRejected        = "session_rejected"
	ErrSessionNotLoose        = "session_not_loose"
	ErrMissingReason          = "missing_reason"
	ErrNationalIDExists       = "national_id_exists"
)

// CheckResolvable validates that a loose report is still pending, i.e.
// it can be assigned or rejected. Returns "" when the transition is
// allowed, otherwise the error code.
func CheckResolvable(m *model.SessionRecordModel) string {
	if m.SessionStudentID != nil {
		return ErrSessionAlreadyAssigned
	}
	if m.SessionDeleted {
		return ErrSessionRejected
	}
	return ""
}

// ResolveServiceContext picks the service context recorded on
// assignment: the session's own explicit value wins over the student's
// default service name.
func ResolveServiceContext(sessionValue *string, studentDefault *string) *string {
	if sessionValue != nil && *sessionValue != "" {
		return sessionValue
	}
	if studentDefault != nil && *studentDefault != "" {
		return studentDefault
	}
	return nil
}
