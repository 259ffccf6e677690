package coerce

import "testing"

func val(r Result) string {
	if r.Value == nil {
		return "<nil>"
	}
	return *r.Value
}

func TestPhone(t *testing.T) {
	cases := []struct {
		name  string
		in    string
		want  string
		valid bool
	}{
		{"full mobile", "0521234567", "0521234567", true},
		{"leading zero dropped by excel", "521234567", "0521234567", true},
		{"excel wrapper", `="0521234567"`, "0521234567", true},
		{"excel wrapper and dropped zero", `="521234567"`, "0521234567", true},
		{"dashes and spaces", "052-123 4567", "0521234567", true},
		{"landline", "036123456", "036123456", true},
		{"international prefix", "+972521234567", "0521234567", true},
		{"too short", "05212", "", false},
		{"letters", "05212345ab", "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Phone(tc.in)
			if got.Valid != tc.valid {
				t.Fatalf("Phone(%q) valid = %v, want %v", tc.in, got.Valid, tc.valid)
			}
			if tc.valid && val(got) != tc.want {
				t.Fatalf("Phone(%q) = %q, want %q", tc.in, val(got), tc.want)
			}
		})
	}
}

func TestPhoneAbsent(t *testing.T) {
	got := Phone("   ")
	if !got.Valid || got.Provided || got.Value != nil {
		t.Fatalf("blank phone should be valid+absent, got %+v", got)
	}
}

func TestNationalID(t *testing.T) {
	cases := []struct {
		name  string
		in    string
		want  string
		valid bool
	}{
		{"nine digits valid", "123456782", "123456782", true},
		{"seven digits padded", "3456787", "003456787", true},
		{"excel wrapper", `="3456787"`, "003456787", true},
		{"bad check digit", "123456780", "", false},
		{"too short", "1234", "", false},
		{"ten digits", "1234567829", "", false},
		{"letters", "12345678a", "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := NationalID(tc.in)
			if got.Valid != tc.valid {
				t.Fatalf("NationalID(%q) valid = %v, want %v", tc.in, got.Valid, tc.valid)
			}
			if tc.valid && val(got) != tc.want {
				t.Fatalf("NationalID(%q) = %q, want %q", tc.in, val(got), tc.want)
			}
		})
	}
}

func TestDayOfWeek(t *testing.T) {
	cases := []struct {
		in    string
		want  string
		valid bool
	}{
		{"ראשון", "0", true},
		{"יום ראשון", "0", true},
		{"שבת", "6", true},
		{"0", "0", true},
		{"3", "3", true},
		{"6", "6", true},
		{"7", "6", true}, // 1-7 convention, Saturday
		{"8", "", false},
		{"-1", "", false},
		{"monday", "", false},
	}
	for _, tc := range cases {
		got := DayOfWeek(tc.in)
		if got.Valid != tc.valid {
			t.Fatalf("DayOfWeek(%q) valid = %v, want %v", tc.in, got.Valid, tc.valid)
		}
		if tc.valid && val(got) != tc.want {
			t.Fatalf("DayOfWeek(%q) = %q, want %q", tc.in, val(got), tc.want)
		}
	}
}

func TestTimeOfDay(t *testing.T) {
	cases := []struct {
		in    string
		want  string
		valid bool
	}{
		{"9:05", "09:05", true},
		{"09:05", "09:05", true},
		{"23:59", "23:59", true},
		{"0:00", "00:00", true},
		{"24:00", "", false},
		{"12:60", "", false},
		{"noon", "", false},
		{"12", "", false},
	}
	for _, tc := range cases {
		got := TimeOfDay(tc.in)
		if got.Valid != tc.valid {
			t.Fatalf("TimeOfDay(%q) valid = %v, want %v", tc.in, got.Valid, tc.valid)
		}
		if tc.valid && val(got) != tc.want {
			t.Fatalf("TimeOfDay(%q) = %q, want %q", tc.in, val(got), tc.want)
		}
	}
}

func TestTags(t *testing.T) {
	got := Tags([]string{" a ", "", "b", "a", "  ", "c", "b"})
	want := []string{"a", "b", "c"}
	if len(got) != len(want) {
		t.Fatalf("Tags = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Tags = %v, want %v", got, want)
		}
	}
}

func TestStripExcelArtifact(t *testing.T) {
	if got := StripExcelArtifact(`="0012345"`); got != "0012345" {
		t.Fatalf("got %q", got)
	}
	if got := StripExcelArtifact("plain"); got != "plain" {
		t.Fatalf("got %q", got)
	}
}
