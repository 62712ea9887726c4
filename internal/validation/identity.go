package validation

import (
	"regexp"
	"time"
)

const (
	// MsgPhone is returned for phone numbers outside the Kenyan +254 format.
	MsgPhone = "Phone number must be in the format: '+254XXXXXXXXX'"
	// MsgKenyanID is returned for malformed national ID numbers.
	MsgKenyanID = "Kenyan ID must be 7 or 8 digits"
	// MsgUnderage is returned when the date of birth gives an age below MinimumAge.
	MsgUnderage = "Customer must be at least 18 years old."
	// MsgDate is returned when a date cannot be parsed.
	MsgDate = "Enter a valid date."
)

// MinimumAge is the youngest age allowed to register.
const MinimumAge = 18

// DateLayout is the accepted date format for date fields.
const DateLayout = "2006-01-02"

var phonePattern = regexp.MustCompile(`^\+?254\d{9}$`)

// Phone checks a Kenyan mobile number: optional '+', country code 254, then 9 digits.
func Phone(value string) error {
	if !phonePattern.MatchString(value) {
		return Errorf(KindFormat, MsgPhone)
	}
	return nil
}

// KenyanID checks that value is 7 or 8 ASCII digits.
func KenyanID(value string) error {
	if !isDigits(value) || (len(value) != 7 && len(value) != 8) {
		return Errorf(KindFormat, MsgKenyanID)
	}
	return nil
}

// ParseDate parses a YYYY-MM-DD date.
func ParseDate(value string) (time.Time, error) {
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, Errorf(KindFormat, MsgDate)
	}
	return t, nil
}

// Age returns the number of completed years between dob and now.
// A birthday that falls today counts as completed.
func Age(dob, now time.Time) int {
	age := now.Year() - dob.Year()
	if now.Month() < dob.Month() || (now.Month() == dob.Month() && now.Day() < dob.Day()) {
		age--
	}
	return age
}

// Adult checks that dob gives an age of at least MinimumAge on now.
func Adult(dob, now time.Time) error {
	if Age(dob, now) < MinimumAge {
		return Errorf(KindRange, MsgUnderage)
	}
	return nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
