package dateutil

import (
	"errors"
	"testing"
)

func TestDateStringRoundTrip(t *testing.T) {
	inputs := []string{
		"01/01/1900",
		"29/02/2024",
		"31/12/2100",
		"15/06/1985",
		"07/09/2001",
	}

	for _, input := range inputs {
		timestamp, err := DateStringToTimestamp(input)
		if err != nil {
			t.Fatalf("DateStringToTimestamp(%q): %v", input, err)
		}
		back, err := TimestampToDateString(timestamp)
		if err != nil {
			t.Fatalf("TimestampToDateString(%d): %v", timestamp, err)
		}
		if back != input {
			t.Errorf("round trip %q: got %q", input, back)
		}
	}
}

func TestDateStringToTimestampAcceptsSingleDigits(t *testing.T) {
	got, err := DateStringToTimestamp("1/2/2024")
	if err != nil {
		t.Fatalf("expected single-digit day/month to parse, got %v", err)
	}
	want, err := DateStringToTimestamp("01/02/2024")
	if err != nil {
		t.Fatalf("DateStringToTimestamp: %v", err)
	}
	if got != want {
		t.Errorf("expected %d, got %d", want, got)
	}
}

func TestDateStringToTimestampRejections(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  error
	}{
		{"empty", "", ErrEmptyDate},
		{"whitespace only", "   ", ErrEmptyDate},
		{"wrong separator", "01-02-2024", ErrBadFormat},
		{"missing year digits", "01/02/24", ErrBadFormat},
		{"not a date", "hello", ErrBadFormat},
		{"month too large", "01/13/2024", ErrMonthRange},
		{"day zero", "0/01/2024", ErrDayRange},
		{"day too large", "32/01/2024", ErrDayRange},
		{"year too early", "01/01/1899", ErrYearRange},
		{"year too late", "01/01/2101", ErrYearRange},
		{"calendar invalid", "31/02/2024", ErrInvalidDate},
		{"not a leap year", "29/02/2023", ErrInvalidDate},
	}

	seen := make(map[string]string)
	for _, tc := range cases {
		_, err := DateStringToTimestamp(tc.input)
		if err == nil {
			t.Errorf("%s: expected error for %q", tc.name, tc.input)
			continue
		}
		if !errors.Is(err, tc.want) {
			t.Errorf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
		if err.Error() == "" {
			t.Errorf("%s: expected a non-empty message", tc.name)
		}
		seen[tc.name] = err.Error()
	}

	// Distinct rejection classes must carry distinct messages.
	if seen["wrong separator"] == seen["month too large"] ||
		seen["month too large"] == seen["day too large"] ||
		seen["day too large"] == seen["calendar invalid"] ||
		seen["empty"] == seen["wrong separator"] {
		t.Error("expected distinct messages per rejection class")
	}
}

func TestTimestampToDateStringPadsComponents(t *testing.T) {
	timestamp, err := DateStringToTimestamp("05/03/1999")
	if err != nil {
		t.Fatalf("DateStringToTimestamp: %v", err)
	}
	got, err := TimestampToDateString(timestamp)
	if err != nil {
		t.Fatalf("TimestampToDateString: %v", err)
	}
	if got != "05/03/1999" {
		t.Errorf("expected 05/03/1999, got %q", got)
	}
}

func TestISOConversions(t *testing.T) {
	iso, err := DateStringToISO("15/06/1985")
	if err != nil {
		t.Fatalf("DateStringToISO: %v", err)
	}
	if iso != "1985-06-15T00:00:00Z" {
		t.Errorf("expected 1985-06-15T00:00:00Z, got %q", iso)
	}

	back, err := ISOToDateString(iso)
	if err != nil {
		t.Fatalf("ISOToDateString: %v", err)
	}
	if back != "15/06/1985" {
		t.Errorf("expected 15/06/1985, got %q", back)
	}

	if _, err := ISOToDateString("not-a-timestamp"); err == nil {
		t.Error("expected error for malformed ISO string")
	}
}
