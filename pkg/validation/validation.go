package validation

import (
	"errors"
	"regexp"
	"strconv"

	"github.com/goliatone/go-regform/pkg/model"
)

const (
	MaxMobileDigits   = 11
	MaxLandlineDigits = 8
	MaxZipCodeLength  = 4
	MaxYearLength     = 4
	MinGradeAverage   = 0.0
	MaxGradeAverage   = 100.0
)

var (
	// ErrInvalidCharacters is returned when the input contains characters
	// outside the field's allowed set.
	ErrInvalidCharacters = errors.New("validation: invalid characters")
	// ErrTooManyDigits is returned when a phone number exceeds its digit cap.
	ErrTooManyDigits = errors.New("validation: too many digits")
	// ErrTooLong is returned when a fixed-width numeric input exceeds its length.
	ErrTooLong = errors.New("validation: too long")
	// ErrOutOfRange is returned when a grade average falls outside [0, 100].
	ErrOutOfRange = errors.New("validation: out of range")
	// ErrNotAnOption is returned when a choice field receives a value that is
	// not in its current option list.
	ErrNotAnOption = errors.New("validation: not an available option")
)

var (
	namePattern    = regexp.MustCompile(`^[a-zA-Z\s\-']*$`)
	phonePattern   = regexp.MustCompile(`^[0-9\s\-+()]*$`)
	digitsPattern  = regexp.MustCompile(`^\d*$`)
	gradePattern   = regexp.MustCompile(`^\d+\.?\d{0,2}$`)
	nonDigitRegexp = regexp.MustCompile(`\D`)
)

// Filter reports whether a candidate value may replace the current one.
type Filter func(value string) bool

// Name accepts letters, whitespace, hyphens and apostrophes.
func Name(value string) bool {
	return CheckName(value) == nil
}

// Mobile accepts phone characters with at most 11 digits.
func Mobile(value string) bool {
	return CheckMobile(value) == nil
}

// Landline accepts phone characters with at most 8 digits.
func Landline(value string) bool {
	return CheckLandline(value) == nil
}

// ZipCode accepts up to four digits.
func ZipCode(value string) bool {
	return CheckZipCode(value) == nil
}

// Year accepts up to four digits.
func Year(value string) bool {
	return CheckYear(value) == nil
}

// GradeAverage accepts a number with at most two decimals in [0, 100].
func GradeAverage(value string) bool {
	return CheckGradeAverage(value) == nil
}

// CheckName is the error-returning form of Name.
func CheckName(value string) error {
	if !namePattern.MatchString(value) {
		return ErrInvalidCharacters
	}
	return nil
}

// CheckMobile is the error-returning form of Mobile.
func CheckMobile(value string) error {
	return checkPhone(value, MaxMobileDigits)
}

// CheckLandline is the error-returning form of Landline.
func CheckLandline(value string) error {
	return checkPhone(value, MaxLandlineDigits)
}

// CheckZipCode is the error-returning form of ZipCode.
func CheckZipCode(value string) error {
	return checkDigits(value, MaxZipCodeLength)
}

// CheckYear is the error-returning form of Year.
func CheckYear(value string) error {
	return checkDigits(value, MaxYearLength)
}

// CheckGradeAverage is the error-returning form of GradeAverage.
func CheckGradeAverage(value string) error {
	if value == "" {
		return nil
	}
	if !gradePattern.MatchString(value) {
		return ErrInvalidCharacters
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return ErrInvalidCharacters
	}
	if parsed < MinGradeAverage || parsed > MaxGradeAverage {
		return ErrOutOfRange
	}
	return nil
}

// CheckChoice accepts the empty value or a member of options.
func CheckChoice(value string, options []model.Option) error {
	if value == "" {
		return nil
	}
	for _, option := range options {
		if option.Value == value {
			return nil
		}
	}
	return ErrNotAnOption
}

// Check applies the filter registered for kind. Choice fields need their
// option list and go through CheckChoice instead; here they pass.
func Check(kind model.InputKind, value string) error {
	switch kind {
	case model.InputKindName:
		return CheckName(value)
	case model.InputKindMobile:
		return CheckMobile(value)
	case model.InputKindLandline:
		return CheckLandline(value)
	case model.InputKindZipCode:
		return CheckZipCode(value)
	case model.InputKindYear:
		return CheckYear(value)
	case model.InputKindGrade:
		return CheckGradeAverage(value)
	default:
		return nil
	}
}

// For returns the Filter for kind.
func For(kind model.InputKind) Filter {
	return func(value string) bool {
		return Check(kind, value) == nil
	}
}

// Digits counts the ASCII digits in value, ignoring separators.
func Digits(value string) int {
	return len(nonDigitRegexp.ReplaceAllString(value, ""))
}

func checkPhone(value string, maxDigits int) error {
	if !phonePattern.MatchString(value) {
		return ErrInvalidCharacters
	}
	if Digits(value) > maxDigits {
		return ErrTooManyDigits
	}
	return nil
}

func checkDigits(value string, maxLen int) error {
	if !digitsPattern.MatchString(value) {
		return ErrInvalidCharacters
	}
	if len(value) > maxLen {
		return ErrTooLong
	}
	return nil
}

// Message returns a short human description of a filter error, suitable for
// prompts that re-ask after a rejected value.
func Message(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidCharacters):
		return "contains characters that are not allowed"
	case errors.Is(err, ErrTooManyDigits):
		return "has too many digits"
	case errors.Is(err, ErrTooLong):
		return "is too long"
	case errors.Is(err, ErrOutOfRange):
		return "must be between 0 and 100"
	case errors.Is(err, ErrNotAnOption):
		return "is not an available option"
	default:
		return err.Error()
	}
}
