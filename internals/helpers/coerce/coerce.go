// Package coerce normalizes untrusted form input (often pasted from
// Excel exports) into typed values. Every coercer returns a Result:
// Valid=false means the caller must reject the whole write; Value=nil
// with Valid=true means the field was intentionally left empty.
package coerce

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

type Result struct {
	Value    *string
	Valid    bool
	Provided bool
}

func absent() Result  { return Result{Valid: true} }
func invalid() Result { return Result{Provided: true} }
func ok(v string) Result {
	return Result{Value: &v, Valid: true, Provided: true}
}

var excelWrapper = regexp.MustCompile(`^="?(.*?)"?$`)

// StripExcelArtifact removes the `="..."` text-wrapper Excel adds to
// preserve leading zeros on export.
func StripExcelArtifact(raw string) string {
	s := strings.TrimSpace(raw)
	if strings.HasPrefix(s, "=") {
		if m := excelWrapper.FindStringSubmatch(s); m != nil {
			s = strings.TrimSpace(m[1])
		}
	}
	return s
}

var phonePattern = regexp.MustCompile(`^0\d{8,9}$`)

// Phone coerces an Israeli phone number. A 9-digit value starting 2-9
// is treated as a number whose leading zero was dropped (Excel) and
// gets the zero back.
func Phone(raw string) Result {
	s := StripExcelArtifact(raw)
	if s == "" {
		return absent()
	}
	s = strings.NewReplacer(" ", "", "-", "", "(", "", ")", "").Replace(s)
	if strings.HasPrefix(s, "+972") {
		s = "0" + s[4:]
	}
	if len(s) == 9 && s[0] >= '2' && s[0] <= '9' && isDigits(s) {
		s = "0" + s
	}
	if !phonePattern.MatchString(s) {
		return invalid()
	}
	return ok(s)
}

// NationalID coerces an Israeli national id: 5-9 digits, left-padded
// to 9, and the check digit must hold.
func NationalID(raw string) Result {
	s := StripExcelArtifact(raw)
	if s == "" {
		return absent()
	}
	s = strings.ReplaceAll(s, "-", "")
	s = strings.ReplaceAll(s, " ", "")
	if !isDigits(s) || len(s) < 5 || len(s) > 9 {
		return invalid()
	}
	s = strings.Repeat("0", 9-len(s)) + s
	if !nationalIDChecksum(s) {
		return invalid()
	}
	return ok(s)
}

func nationalIDChecksum(id string) bool {
	sum := 0
	for i, r := range id {
		d := int(r - '0')
		if i%2 == 1 {
			d *= 2
		}
		if d > 9 {
			d -= 9
		}
		sum += d
	}
	return sum%10 == 0
}

// Hebrew day names, with and without the leading "יום".
var hebrewDays = map[string]int{
	"ראשון": 0,
	"שני":   1,
	"שלישי": 2,
	"רביעי": 3,
	"חמישי": 4,
	"שישי":  5,
	"שבת":   6,
}

// DayOfWeek canonicalizes a day to 0-6 with Sunday=0. Accepts Hebrew
// day names and numeric 0-6 or 1-7; a 7 can only mean Saturday in the
// 1-7 convention, so 1-7 input is detected by that sentinel while
// 0-6 input is taken as already canonical.
func DayOfWeek(raw string) Result {
	s := StripExcelArtifact(raw)
	if s == "" {
		return absent()
	}
	name := strings.TrimSpace(strings.TrimPrefix(s, "יום"))
	if d, found := hebrewDays[name]; found {
		return ok(strconv.Itoa(d))
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return invalid()
	}
	switch {
	case n == 7:
		return ok("6")
	case n >= 0 && n <= 6:
		return ok(strconv.Itoa(n))
	default:
		return invalid()
	}
}

// TimeOfDay normalizes H:MM / HH:MM (24h) to zero-padded HH:MM.
func TimeOfDay(raw string) Result {
	s := StripExcelArtifact(raw)
	if s == "" {
		return absent()
	}
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return invalid()
	}
	h, err1 := strconv.Atoi(strings.TrimSpace(parts[0]))
	m, err2 := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err1 != nil || err2 != nil || h < 0 || h > 23 || m < 0 || m > 59 {
		return invalid()
	}
	return ok(fmt.Sprintf("%02d:%02d", h, m))
}

// Tags trims, drops empties and dedupes preserving order.
func Tags(raw []string) []string {
	out := make([]string, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for _, t := range raw {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
