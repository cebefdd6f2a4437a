package registration

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Fields is the flat field set a player submits from the signup form.
type Fields struct {
	FullName        string
	Email           string
	Phone           string
	DateOfBirth     string
	State           string
	City            string
	Pincode         string
	Position        string
	PreferredTrials string
	TermsAccepted   bool
}

var emailShape = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Validate applies the form rules in a fixed order; the first failure wins
// and determines the single message the player sees.
func Validate(f Fields) error {
	required := []struct {
		label string
		value string
	}{
		{"full name", f.FullName},
		{"email", f.Email},
		{"phone number", f.Phone},
		{"state", f.State},
		{"city", f.City},
		{"pincode", f.Pincode},
	}
	for _, field := range required {
		if strings.TrimSpace(field.value) == "" {
			return newValidationError(fmt.Sprintf("please enter your %s", field.label))
		}
	}

	if !emailShape.MatchString(strings.TrimSpace(f.Email)) {
		return newValidationError("please enter a valid email address")
	}

	if !isTenDigits(strings.TrimSpace(f.Phone)) {
		return newValidationError("phone number must be exactly 10 digits")
	}

	if dob := strings.TrimSpace(f.DateOfBirth); dob != "" {
		if _, err := time.Parse("2006-01-02", dob); err != nil {
			return newValidationError("date of birth must be in YYYY-MM-DD format")
		}
		// Calendar-date comparison, never through instants: ISO date strings
		// order lexicographically, so a same-day birthdate stays valid in
		// every timezone.
		today := time.Now().Format("2006-01-02")
		if dob > today {
			return newValidationError("date of birth cannot be in the future")
		}
	}

	if !f.TermsAccepted {
		return newValidationError("please accept the terms and conditions")
	}

	return nil
}

func isTenDigits(s string) bool {
	if len(s) != 10 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
