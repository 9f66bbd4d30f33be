package core

import (
	"errors"
	"testing"
)

func TestParseDate(t *testing.T) {
	cases := []struct {
		in string
		ok bool
	}{
		{"2024-01-05", true},
		{"2024-12-31", true},
		{"2024-02-29", true},
		{"2023-02-29", false}, // not a leap year
		{"2024/01/05", false},
		{"2024-1-5", false},
		{"05-01-2024", false},
		{"", false},
	}
	for _, tc := range cases {
		_, err := ParseDate(tc.in)
		if tc.ok && err != nil {
			t.Fatalf("%q expected ok, got %v", tc.in, err)
		}
		if !tc.ok && !errors.Is(err, ErrInvalidDate) {
			t.Fatalf("%q expected ErrInvalidDate, got %v", tc.in, err)
		}
	}
}

func TestCapitalizeCategory(t *testing.T) {
	cases := map[string]string{
		"food":        "Food",
		"FOOD":        "Food",
		"Salary":      "Salary",
		"eating out":  "Eating out",
		"":            "",
		"évasion":     "Évasion",
		"1st payment": "1st payment",
	}
	for in, want := range cases {
		if got := CapitalizeCategory(in); got != want {
			t.Fatalf("CapitalizeCategory(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestNewTransaction(t *testing.T) {
	got, err := NewTransaction("2024-01-05", "food", "-50", "lunch")
	if err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	want := Transaction{Date: "2024-01-05", Category: "Food", Amount: -50, Description: "lunch"}
	if got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}

	bads := []struct {
		date, amount string
		want         error
	}{
		{"2024/01/05", "10", ErrInvalidDate},
		{"2024-01-05", "abc", ErrInvalidAmount},
		{"bad", "abc", ErrInvalidDate}, // date is checked first
		{"2024-01-05", "", ErrInvalidAmount},
	}
	for i, tc := range bads {
		_, err := NewTransaction(tc.date, "x", tc.amount, "")
		if !errors.Is(err, tc.want) {
			t.Fatalf("case %d expected %v, got %v", i, tc.want, err)
		}
		var ve *ValidationError
		if !errors.As(err, &ve) {
			t.Fatalf("case %d expected a ValidationError, got %T", i, err)
		}
	}
}

func TestMonthKey(t *testing.T) {
	cases := []struct {
		date string
		want string
	}{
		{"2024-01-05", "2024-01"},
		{"0999-12-01", "0999-12"},
		{"2024-13-01x", "2024-13"}, // unparseable, falls back to prefix
		{"2024", "2024"},
	}
	for _, tc := range cases {
		if got := (Transaction{Date: tc.date}).MonthKey(); got != tc.want {
			t.Fatalf("MonthKey(%q) = %q, want %q", tc.date, got, tc.want)
		}
	}
}

func TestValidationErrorsDoNotShareState(t *testing.T) {
	_, err := ParseDate("2024/01/05")
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected a ValidationError, got %T", err)
	}
	ve.Err = errors.New("changed by caller")

	_, err = ParseDate("2024/01/06")
	if !errors.Is(err, ErrInvalidDate) || err.Error() != "invalid date" {
		t.Fatalf("later errors must be unaffected, got %v", err)
	}
	if _, err := ParseAmount("abc"); err.Error() != "invalid amount" {
		t.Fatalf("unexpected amount error %q", err.Error())
	}
}
