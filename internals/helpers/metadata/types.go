package metadata

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Keys of the known metadata sub-shapes.
const (
	KeyUnassignedDetails = "unassigned_details"
	KeyAssignment        = "assignment"
	KeyRejection         = "rejection"
	KeyResubmittedFrom   = "resubmitted_from"
)

// UnassignedDetails must be present on every loose session report
// (a session submitted without a resolved student).
type UnassignedDetails struct {
	Name        string `json:"name"`
	Reason      string `json:"reason"`
	ReasonOther string `json:"reason_other,omitempty"`
	Time        string `json:"time"`
}

func (d UnassignedDetails) Validate() bool {
	return strings.TrimSpace(d.Name) != "" &&
		strings.TrimSpace(d.Reason) != "" &&
		strings.TrimSpace(d.Time) != ""
}

// Assignment records the admin triage that attached a loose report to
// a student.
type Assignment struct {
	StudentID  uuid.UUID `json:"student_id"`
	AssignedBy uuid.UUID `json:"assigned_by"`
	AssignedAt time.Time `json:"assigned_at"`
}

// Rejection records why a loose report was turned down. A later
// resubmission stamps ResubmittedAt/ResubmittedTo on the original.
type Rejection struct {
	Reason        string     `json:"reason"`
	RejectedBy    uuid.UUID  `json:"rejected_by"`
	RejectedAt    time.Time  `json:"rejected_at"`
	ResubmittedAt *time.Time `json:"resubmitted_at,omitempty"`
	ResubmittedTo *uuid.UUID `json:"resubmitted_to,omitempty"`
}

// UnassignedDetailsFrom extracts and validates the unassigned_details
// block from a decoded metadata map.
func UnassignedDetailsFrom(m map[string]interface{}) (UnassignedDetails, bool) {
	raw, found := m[KeyUnassignedDetails].(map[string]interface{})
	if !found {
		return UnassignedDetails{}, false
	}
	d := UnassignedDetails{
		Name:        str(raw["name"]),
		Reason:      str(raw["reason"]),
		ReasonOther: str(raw["reason_other"]),
		Time:        str(raw["time"]),
	}
	if !d.Validate() {
		return UnassignedDetails{}, false
	}
	return d, true
}

// HasRejection reports whether the metadata carries a rejection block.
func HasRejection(m map[string]interface{}) bool {
	_, found := m[KeyRejection].(map[string]interface{})
	return found
}

func str(v interface{}) string {
	s, _ := v.(string)
	return s
}

// AssignmentBlock builds the map form of an Assignment for merging.
func AssignmentBlock(a Assignment) map[string]interface{} {
	return map[string]interface{}{
		KeyAssignment: map[string]interface{}{
			"student_id":  a.StudentID.String(),
			"assigned_by": a.AssignedBy.String(),
			"assigned_at": a.AssignedAt.UTC().Format(time.RFC3339),
		},
	}
}

// RejectionBlock builds the map form of a Rejection for merging.
func RejectionBlock(r Rejection) map[string]interface{} {
	return map[string]interface{}{
		KeyRejection: map[string]interface{}{
			"reason":      r.Reason,
			"rejected_by": r.RejectedBy.String(),
			"rejected_at": r.RejectedAt.UTC().Format(time.RFC3339),
		},
	}
}
