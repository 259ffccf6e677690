package dto

import (
	"strings"

	"github.com/google/uuid"
)

/* =========================================================
   Loose-report triage requests (admin)
   ========================================================= */

type LooseAssignReq struct {
	StudentID uuid.UUID `json:"student_id"`
}

type LooseCreateAssignReq struct {
	StudentName          string     `json:"student_name"`
	StudentNationalID    string     `json:"student_national_id"`
	AssignedInstructorID uuid.UUID  `json:"assigned_instructor_id"`
	DefaultServiceID     *uuid.UUID `json:"default_service_id,omitempty"`
	StudentPhone         *string    `json:"student_phone,omitempty"`
}

func (r *LooseCreateAssignReq) Normalize() {
	r.StudentName = strings.TrimSpace(r.StudentName)
	r.StudentNationalID = strings.TrimSpace(r.StudentNationalID)
	if r.StudentPhone != nil {
		p := strings.TrimSpace(*r.StudentPhone)
		if p == "" {
			r.StudentPhone = nil
		} else {
			r.StudentPhone = &p
		}
	}
}

type LooseRejectReq struct {
	Reason string `json:"reason"`
}

func (r *LooseRejectReq) Normalize() {
	r.Reason = strings.TrimSpace(r.Reason)
}
