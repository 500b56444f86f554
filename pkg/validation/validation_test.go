package validation

import (
	"errors"
	"strings"
	"testing"

	"github.com/goliatone/go-regform/pkg/model"
)

func TestName(t *testing.T) {
	accepted := []string{"", "Juan", "Mary Ann", "O'Neil", "Dela-Cruz", "  "}
	for _, value := range accepted {
		if !Name(value) {
			t.Fatalf("expected %q accepted", value)
		}
	}

	rejected := []string{"Juan2", "J@n", "Ana.", "José", "a_b", "x;"}
	for _, value := range rejected {
		if Name(value) {
			t.Fatalf("expected %q rejected", value)
		}
		if err := CheckName(value); !errors.Is(err, ErrInvalidCharacters) {
			t.Fatalf("expected ErrInvalidCharacters for %q, got %v", value, err)
		}
	}
}

func TestMobile_DigitCap(t *testing.T) {
	value := ""
	for i := 1; i <= 11; i++ {
		value += "9"
		if !Mobile(value) {
			t.Fatalf("expected %d digits accepted", i)
		}
	}
	if Mobile(value + "9") {
		t.Fatalf("expected 12th digit rejected")
	}
	if err := CheckMobile(value + "9"); !errors.Is(err, ErrTooManyDigits) {
		t.Fatalf("expected ErrTooManyDigits, got %v", err)
	}
}

func TestMobile_SeparatorsDoNotCount(t *testing.T) {
	if !Mobile("0917 (123) 4567") {
		t.Fatalf("expected formatted number with 11 digits accepted")
	}
	if Mobile("0917 (123) 45678") {
		t.Fatalf("expected formatted number with 12 digits rejected")
	}
	if Mobile("0917-123-4567a") {
		t.Fatalf("expected letters rejected")
	}
}

func TestLandline_DigitCap(t *testing.T) {
	if !Landline("(1234) 56-78") {
		t.Fatalf("expected 8 digits accepted")
	}
	if Landline("(1234) 56-789") {
		t.Fatalf("expected 9 digits rejected")
	}
}

func TestZipCode(t *testing.T) {
	if !ZipCode("1234") {
		t.Fatalf("expected 1234 accepted")
	}
	if ZipCode("12345") {
		t.Fatalf("expected 12345 rejected")
	}
	if ZipCode("12a") {
		t.Fatalf("expected letters rejected")
	}
	if !ZipCode("") {
		t.Fatalf("expected empty accepted")
	}
}

func TestYear(t *testing.T) {
	if !Year("2019") || Year("20190") || Year("20-1") {
		t.Fatalf("unexpected year filter result")
	}
}

func TestGradeAverage(t *testing.T) {
	cases := map[string]bool{
		"":       true,
		"0":      true,
		"89.5":   true,
		"89.55":  true,
		"100":    true,
		"100.00": true,
		"100.":   true,
		"100.01": false,
		"101":    false,
		"-1":     false,
		"89.555": false,
		".5":     false,
		"9a":     false,
	}
	for value, want := range cases {
		if got := GradeAverage(value); got != want {
			t.Fatalf("GradeAverage(%q) = %v, want %v", value, got, want)
		}
	}
	if err := CheckGradeAverage("100.01"); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("expected ErrOutOfRange, got %v", err)
	}
}

func TestCheckChoice(t *testing.T) {
	options := []model.Option{{Value: "Manila"}, {Value: "Quezon City"}}
	if err := CheckChoice("", options); err != nil {
		t.Fatalf("expected empty accepted, got %v", err)
	}
	if err := CheckChoice("Quezon City", options); err != nil {
		t.Fatalf("expected member accepted, got %v", err)
	}
	if err := CheckChoice("Cebu", options); !errors.Is(err, ErrNotAnOption) {
		t.Fatalf("expected ErrNotAnOption, got %v", err)
	}
	if err := CheckChoice("Manila", nil); !errors.Is(err, ErrNotAnOption) {
		t.Fatalf("expected ErrNotAnOption with empty list, got %v", err)
	}
}

func TestFor_FreeKindAcceptsAnything(t *testing.T) {
	filter := For(model.InputKindFree)
	if !filter(strings.Repeat("#", 64)) {
		t.Fatalf("expected free input accepted")
	}
	if For(model.InputKindZipCode)("12345") {
		t.Fatalf("expected zip filter applied")
	}
}

func TestMessage(t *testing.T) {
	cases := map[error]string{
		nil:                  "",
		ErrInvalidCharacters: "contains characters that are not allowed",
		ErrTooManyDigits:     "has too many digits",
		ErrOutOfRange:        "must be between 0 and 100",
		errors.New("boom"):   "boom",
	}
	for err, want := range cases {
		if got := Message(err); got != want {
			t.Fatalf("Message(%v) = %q, want %q", err, got, want)
		}
	}
	if got := Message(CheckZipCode("12345")); got != "is too long" {
		t.Fatalf("zip message = %q", got)
	}
}
