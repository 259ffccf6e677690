package service

import (
	"testing"

	"github.com/google/uuid"

	"tuttiud_backend/internals/constants"
)

func TestResolveInstructor(t *testing.T) {
	caller := uuid.New()
	other := uuid.New()
	explicit := uuid.New()

	cases := []struct {
		name    string
		facts   AttributionFacts
		wantID  uuid.UUID
		wantErr string
	}{
		{
			name: "member writes for own student",
			facts: AttributionFacts{
				Role:               constants.RoleMember,
				CallerID:           caller,
				CallerIsInstructor: true,
				AssignedInstructor: &caller,
			},
			wantID: caller,
		},
		{
			name: "member writes for someone else's student",
			facts: AttributionFacts{
				Role:               constants.RoleMember,
				CallerID:           caller,
				CallerIsInstructor: true,
				AssignedInstructor: &other,
			},
			wantErr: ErrStudentNotAssignedToUser,
		},
		{
			name: "member writes for unassigned student",
			facts: AttributionFacts{
				Role:               constants.RoleMember,
				CallerID:           caller,
				CallerIsInstructor: true,
			},
			wantErr: ErrStudentNotAssignedToUser,
		},
		{
			name: "member loose report attributed to self",
			facts: AttributionFacts{
				Role:               constants.RoleMember,
				CallerID:           caller,
				CallerIsInstructor: true,
				IsLoose:            true,
			},
			wantID: caller,
		},
		{
			name: "member loose report, explicit id ignored",
			facts: AttributionFacts{
				Role:               constants.RoleMember,
				CallerID:           caller,
				ExplicitID:         &explicit,
				CallerIsInstructor: true,
				IsLoose:            true,
			},
			wantID: caller,
		},
		{
			name: "member without instructor row cannot file loose",
			facts: AttributionFacts{
				Role:     constants.RoleMember,
				CallerID: caller,
				IsLoose:  true,
			},
			wantErr: ErrStudentMissingInstructor,
		},
		{
			name: "admin explicit wins",
			facts: AttributionFacts{
				Role:               constants.RoleAdmin,
				CallerID:           caller,
				ExplicitID:         &explicit,
				CallerIsInstructor: true,
				AssignedInstructor: &other,
			},
			wantID: explicit,
		},
		{
			name: "admin falls back to own instructor row",
			facts: AttributionFacts{
				Role:               constants.RoleAdmin,
				CallerID:           caller,
				CallerIsInstructor: true,
				AssignedInstructor: &other,
			},
			wantID: caller,
		},
		{
			name: "admin falls back to assigned instructor",
			facts: AttributionFacts{
				Role:               constants.RoleAdmin,
				CallerID:           caller,
				AssignedInstructor: &other,
			},
			wantID: other,
		},
		{
			name: "admin loose report with no instructor record",
			facts: AttributionFacts{
				Role:     constants.RoleAdmin,
				CallerID: caller,
				IsLoose:  true,
			},
			wantErr: ErrAdminMustSpecifyInstructor,
		},
		{
			name: "admin loose report with explicit id",
			facts: AttributionFacts{
				Role:       constants.RoleAdmin,
				CallerID:   caller,
				ExplicitID: &explicit,
				IsLoose:    true,
			},
			wantID: explicit,
		},
		{
			name: "admin student write with nothing resolvable",
			facts: AttributionFacts{
				Role:     constants.RoleAdmin,
				CallerID: caller,
			},
			wantErr: ErrStudentMissingInstructor,
		},
		{
			name: "owner behaves like admin",
			facts: AttributionFacts{
				Role:       constants.RoleOwner,
				CallerID:   caller,
				ExplicitID: &explicit,
			},
			wantID: explicit,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			gotID, gotErr := ResolveInstructor(tc.facts)
			if gotErr != tc.wantErr {
				t.Fatalf("err = %q, want %q", gotErr, tc.wantErr)
			}
			if tc.wantErr == "" && gotID != tc.wantID {
				t.Fatalf("id = %s, want %s", gotID, tc.wantID)
			}
			if tc.wantErr != "" && gotID != uuid.Nil {
				t.Fatalf("id should be nil on error, got %s", gotID)
			}
		})
	}
}
