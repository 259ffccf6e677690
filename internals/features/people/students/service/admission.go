// Package service holds the pure decision logic of the students
// feature, kept out of the controllers so it can be tested without a
// database.
package service

import (
	model "tuttiud_backend/internals/features/people/students/model"
	"tuttiud_backend/internals/helpers/coerce"
)

const (
	ErrMissingNationalID = "missing_national_id"
	ErrInvalidNationalID = "invalid_national_id"
	ErrNationalIDExists  = "national_id_exists"
)

// Admission is the outcome of the national-id check for a new student.
type Admission struct {
	// NationalID is the coerced (zero-padded, checksum-verified) id.
	NationalID string
	// Existing is the org's student already holding the id, nil when
	// the id is free.
	Existing *model.StudentModel
}

// AdmitNationalID coerces a submitted national id and decides whether a
// student may be created with it. lookup resolves the coerced id to the
// org's existing holder (nil when free); it is only called once the id
// passed coercion. When ErrNationalIDExists comes back the caller must
// answer 409 carrying Existing and create no row.
func AdmitNationalID(raw string, lookup func(coerced string) *model.StudentModel) (Admission, string) {
	nid := coerce.NationalID(raw)
	if !nid.Provided {
		return Admission{}, ErrMissingNationalID
	}
	if !nid.Valid {
		return Admission{}, ErrInvalidNationalID
	}
	if ex := lookup(*nid.Value); ex != nil {
		return Admission{NationalID: *nid.Value, Existing: ex}, ErrNationalIDExists
	}
	return Admission{NationalID: *nid.Value}, ""
}
