package validator

import (
	"testing"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		got := IsEmpty(c.input)
		if got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsValidEmail(t *testing.T) {
	valid := []string{"test@example.com", "user.name+1@domain.co", "a@b.cd"}
	invalid := []string{"test@", "@example.com", "test@.com", "test@com", "test@domain", " ", ""}
	for _, email := range valid {
		if !IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = false, want true", email)
		}
	}
	for _, email := range invalid {
		if IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = true, want false", email)
		}
	}
}

func TestIsValidDate(t *testing.T) {
	valid := []string{"2023-01-01", "2000-12-31", "2024-02-29"}
	invalid := []string{"2023-13-01", "2023-01-32", "2023/01/01", "01-01-2023", "2023-02-29", ""}
	for _, s := range valid {
		if _, ok := IsValidDate(s); !ok {
			t.Errorf("IsValidDate(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if _, ok := IsValidDate(s); ok {
			t.Errorf("IsValidDate(%q) = true, want false", s)
		}
	}
}

func TestIsValidTime(t *testing.T) {
	valid := []string{"00:00", "08:00", "12:30", "23:59"}
	invalid := []string{"24:00", "8:00", "08:60", "08:00:00", "ab:cd", ""}
	for _, s := range valid {
		if _, ok := IsValidTime(s); !ok {
			t.Errorf("IsValidTime(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if _, ok := IsValidTime(s); ok {
			t.Errorf("IsValidTime(%q) = true, want false", s)
		}
	}
}

func TestCoordinates(t *testing.T) {
	if !IsValidLatitude(-23.55) || IsValidLatitude(91) {
		t.Errorf("IsValidLatitude bounds are wrong")
	}
	if !IsValidLongitude(-46.63) || IsValidLongitude(-181) {
		t.Errorf("IsValidLongitude bounds are wrong")
	}
}

func TestIsValidCurrency(t *testing.T) {
	if !IsValidCurrency("BRL") {
		t.Errorf("IsValidCurrency(BRL) = false, want true")
	}
	for _, s := range []string{"brl", "BR", "REAL", ""} {
		if IsValidCurrency(s) {
			t.Errorf("IsValidCurrency(%q) = true, want false", s)
		}
	}
}

func TestParseID(t *testing.T) {
	cases := []struct {
		input string
		want  int64
		ok    bool
	}{
		{"1", 1, true},
		{"9876543210", 9876543210, true},
		{"0", 0, false},
		{"-3", 0, false},
		{"abc", 0, false},
		{"", 0, false},
	}
	for _, c := range cases {
		got, ok := ParseID(c.input)
		if got != c.want || ok != c.ok {
			t.Errorf("ParseID(%q) = (%d, %v), want (%d, %v)", c.input, got, ok, c.want, c.ok)
		}
	}
}

func TestIsInSlice(t *testing.T) {
	slice := []string{"in", "out"}
	if !IsInSlice("in", slice) {
		t.Errorf("IsInSlice('in') = false, want true")
	}
	if IsInSlice("break", slice) {
		t.Errorf("IsInSlice('break') = true, want false")
	}
}

func TestIsValidDateTime(t *testing.T) {
	valid := []string{"2024-01-15T10:30:00Z", "2024-01-15T10:30:00-03:00", "2024-01-15T10:30:00.123Z"}
	invalid := []string{"2024-01-15 10:30:00", "2024-01-15", ""}
	for _, s := range valid {
		if _, ok := IsValidDateTime(s); !ok {
			t.Errorf("IsValidDateTime(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if _, ok := IsValidDateTime(s); ok {
			t.Errorf("IsValidDateTime(%q) = true, want false", s)
		}
	}
}

func TestValidationErrors_Error(t *testing.T) {
	errs := ValidationErrors{
		{Field: "start_date", Message: "invalid"},
		{Field: "minutes", Message: "required"},
	}
	got := errs.Error()
	want := "start_date: invalid; minutes: required"
	if got != want {
		t.Errorf("ValidationErrors.Error() = %q, want %q", got, want)
	}
}

func TestValidationErrors_ToMap(t *testing.T) {
	errs := ValidationErrors{
		{Field: "start_date", Message: "invalid"},
		{Field: "minutes", Message: "required"},
	}
	got := errs.ToMap()
	want := map[string]string{"start_date": "invalid", "minutes": "required"}
	if len(got) != len(want) {
		t.Errorf("ValidationErrors.ToMap() length = %d, want %d", len(got), len(want))
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("ValidationErrors.ToMap()[%q] = %q, want %q", k, got[k], v)
		}
	}
}

func TestIsValidUUID(t *testing.T) {
	if !IsValidUUID("3f2b8c1e-6d4a-4f0b-9a57-0c1d2e3f4a5b") {
		t.Errorf("IsValidUUID() rejected a canonical uuid")
	}
	if IsValidUUID("3f2b8c1e6d4a4f0b9a570c1d2e3f4a5b") {
		t.Errorf("IsValidUUID() accepted a uuid without hyphens")
	}
	if IsValidUUID("abc") {
		t.Errorf("IsValidUUID(%q) = true, want false", "abc")
	}
}
