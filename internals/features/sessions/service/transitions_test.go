package service

import (
	"testing"

	"github.com/google/uuid"

	model "tuttiud_backend/internals/features/sessions/model"
)

func TestCheckResolvable(t *testing.T) {
	sid := uuid.New()

	pending := &model.SessionRecordModel{}
	if code := CheckResolvable(pending); code != "" {
		t.Fatalf("pending report should be resolvable, got %q", code)
	}

	assigned := &model.SessionRecordModel{SessionStudentID: &sid}
	if code := CheckResolvable(assigned); code != ErrSessionAlreadyAssigned {
		t.Fatalf("got %q, want %q", code, ErrSessionAlreadyAssigned)
	}

	rejected := &model.SessionRecordModel{SessionDeleted: true}
	if code := CheckResolvable(rejected); code != ErrSessionRejected {
		t.Fatalf("got %q, want %q", code, ErrSessionRejected)
	}

	// assigned wins over rejected when both are somehow set
	both := &model.SessionRecordModel{SessionStudentID: &sid, SessionDeleted: true}
	if code := CheckResolvable(both); code != ErrSessionAlreadyAssigned {
		t.Fatalf("got %q, want %q", code, ErrSessionAlreadyAssigned)
	}
}

func TestResolveServiceContext(t *testing.T) {
	sess := "speech therapy"
	def := "occupational therapy"
	empty := ""

	if got := ResolveServiceContext(&sess, &def); got == nil || *got != sess {
		t.Fatalf("session value should win, got %v", got)
	}
	if got := ResolveServiceContext(nil, &def); got == nil || *got != def {
		t.Fatalf("student default should apply, got %v", got)
	}
	if got := ResolveServiceContext(&empty, &def); got == nil || *got != def {
		t.Fatalf("empty session value should fall through, got %v", got)
	}
	if got := ResolveServiceContext(nil, nil); got != nil {
		t.Fatalf("nothing resolvable should stay nil, got %v", got)
	}
}
