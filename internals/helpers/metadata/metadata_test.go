package metadata

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

func TestMergeKeepsExistingKeys(t *testing.T) {
	dst := map[string]interface{}{
		"unassigned_details": map[string]interface{}{
			"name":   "דני",
			"reason": "new_student",
			"time":   "14:00",
		},
		"note": "keep me",
	}
	src := map[string]interface{}{
		"assignment": map[string]interface{}{
			"student_id": "abc",
		},
	}
	out := Merge(dst, src)

	if _, found := out["unassigned_details"]; !found {
		t.Fatal("unassigned_details dropped by merge")
	}
	if out["note"] != "keep me" {
		t.Fatal("unrelated key dropped by merge")
	}
	if _, found := out["assignment"]; !found {
		t.Fatal("merged key missing")
	}
}

func TestMergeNestedMapsMergeKeywise(t *testing.T) {
	dst := map[string]interface{}{
		"rejection": map[string]interface{}{
			"reason":      "wrong org",
			"rejected_by": "u1",
		},
	}
	src := map[string]interface{}{
		"rejection": map[string]interface{}{
			"resubmitted_to": "s2",
		},
	}
	out := Merge(dst, src)
	rej := out["rejection"].(map[string]interface{})
	if rej["reason"] != "wrong org" {
		t.Fatal("nested merge lost existing key")
	}
	if rej["resubmitted_to"] != "s2" {
		t.Fatal("nested merge lost new key")
	}
}

func TestMergeDoesNotMutateInputs(t *testing.T) {
	dst := map[string]interface{}{"a": map[string]interface{}{"x": 1}}
	src := map[string]interface{}{"a": map[string]interface{}{"y": 2}}
	_ = Merge(dst, src)
	if len(dst["a"].(map[string]interface{})) != 1 {
		t.Fatal("dst mutated")
	}
	if len(src["a"].(map[string]interface{})) != 1 {
		t.Fatal("src mutated")
	}
}

func TestDecodeTolerant(t *testing.T) {
	if m := Decode(nil); len(m) != 0 {
		t.Fatal("nil column should decode to empty map")
	}
	if m := Decode(datatypes.JSON([]byte(`[1,2]`))); len(m) != 0 {
		t.Fatal("array payload should decode to empty map")
	}
	m := Decode(datatypes.JSON([]byte(`{"k":"v"}`)))
	if m["k"] != "v" {
		t.Fatal("object payload lost")
	}
}

func TestUnassignedDetailsFrom(t *testing.T) {
	m := map[string]interface{}{
		KeyUnassignedDetails: map[string]interface{}{
			"name":   "רות",
			"reason": "other",
			"time":   "10:30",
		},
	}
	d, found := UnassignedDetailsFrom(m)
	if !found {
		t.Fatal("valid details not recognized")
	}
	if d.Name != "רות" || d.Time != "10:30" {
		t.Fatalf("details mis-parsed: %+v", d)
	}

	// missing time -> not valid
	m[KeyUnassignedDetails].(map[string]interface{})["time"] = ""
	if _, found := UnassignedDetailsFrom(m); found {
		t.Fatal("details without time should be rejected")
	}
}

func TestRejectionRoundTrip(t *testing.T) {
	by := uuid.New()
	block := RejectionBlock(Rejection{
		Reason:     "illegible",
		RejectedBy: by,
		RejectedAt: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
	})
	col := MergeColumn(nil, block)
	m := Decode(col)
	if !HasRejection(m) {
		t.Fatal("rejection block missing after merge")
	}
	rej := m[KeyRejection].(map[string]interface{})
	if rej["reason"] != "illegible" {
		t.Fatalf("reason = %v", rej["reason"])
	}
	if rej["rejected_by"] != by.String() {
		t.Fatalf("rejected_by = %v", rej["rejected_by"])
	}
}
