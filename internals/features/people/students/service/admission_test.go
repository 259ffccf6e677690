package service

import (
	"testing"

	"github.com/google/uuid"

	model "tuttiud_backend/internals/features/people/students/model"
)

func TestAdmitNationalIDConflict(t *testing.T) {
	holder := &model.StudentModel{
		StudentID:         uuid.New(),
		StudentName:       "דנה כהן",
		StudentNationalID: "123456782",
	}

	adm, code := AdmitNationalID("123456782", func(coerced string) *model.StudentModel {
		if coerced == holder.StudentNationalID {
			return holder
		}
		return nil
	})
	if code != ErrNationalIDExists {
		t.Fatalf("want %s, got %q", ErrNationalIDExists, code)
	}
	if adm.Existing == nil || adm.Existing.StudentID != holder.StudentID {
		t.Fatal("conflict must carry the existing student for the 409 payload")
	}
}

// Short ids are zero-padded before the lookup, so "3456787" collides
// with a stored "003456787".
func TestAdmitNationalIDPadsBeforeLookup(t *testing.T) {
	holder := &model.StudentModel{StudentID: uuid.New(), StudentNationalID: "003456787"}

	var looked string
	adm, code := AdmitNationalID("3456787", func(coerced string) *model.StudentModel {
		looked = coerced
		if coerced == holder.StudentNationalID {
			return holder
		}
		return nil
	})
	if looked != "003456787" {
		t.Fatalf("lookup got %q, want padded id", looked)
	}
	if code != ErrNationalIDExists || adm.Existing != holder {
		t.Fatalf("padded id must collide: code=%q existing=%v", code, adm.Existing)
	}
}

func TestAdmitNationalIDFree(t *testing.T) {
	adm, code := AdmitNationalID(`="123456782"`, func(string) *model.StudentModel { return nil })
	if code != "" {
		t.Fatalf("free id rejected: %q", code)
	}
	if adm.NationalID != "123456782" {
		t.Fatalf("coerced id = %q, want 123456782", adm.NationalID)
	}
	if adm.Existing != nil {
		t.Fatal("free id must not carry an existing student")
	}
}

func TestAdmitNationalIDRejectsWithoutLookup(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ErrMissingNationalID},
		{"whitespace", "   ", ErrMissingNationalID},
		{"bad checksum", "123456780", ErrInvalidNationalID},
		{"non numeric", "12345abc9", ErrInvalidNationalID},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			called := false
			_, code := AdmitNationalID(tc.in, func(string) *model.StudentModel {
				called = true
				return nil
			})
			if code != tc.want {
				t.Fatalf("code = %q, want %q", code, tc.want)
			}
			if called {
				t.Fatal("lookup must not run for an id that failed coercion")
			}
		})
	}
}
