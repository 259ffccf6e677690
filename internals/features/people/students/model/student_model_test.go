package model

import (
	"reflect"
	"strings"
	"testing"
)

// The org id and the national id must share one unique index. A unique
// index on the national id alone would block a second org from ever
// registering an id that exists elsewhere.
func TestNationalIDUniqueIndexIsOrgScoped(t *testing.T) {
	typ := reflect.TypeOf(StudentModel{})
	tag := func(name string) string {
		f, found := typ.FieldByName(name)
		if !found {
			t.Fatalf("field %s missing", name)
		}
		return f.Tag.Get("gorm")
	}

	const idx = "index:idx_student_org_national,unique"
	for _, field := range []string{"StudentOrgID", "StudentNationalID"} {
		if !strings.Contains(tag(field), idx) {
			t.Fatalf("%s must carry %q, got %q", field, idx, tag(field))
		}
	}
}
