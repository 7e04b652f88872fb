// utils/validation.go
package utils

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	clockTimeRegex = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)
	hexColorRegex  = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)
	dateRegex      = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])-(0[1-9]|[12]\d|3[01])$`)
)

// ValidatePhone checks if a phone number is in a valid international format
func ValidatePhone(phone string) bool {
	// Clean the phone number
	cleaned := strings.ReplaceAll(phone, " ", "")
	cleaned = strings.ReplaceAll(cleaned, "-", "")
	cleaned = strings.ReplaceAll(cleaned, "(", "")
	cleaned = strings.ReplaceAll(cleaned, ")", "")

	// Regular expression for international phone numbers
	// Allows + prefix followed by 7-15 digits
	regex := `^\+?[1-9]\d{1,14}$`
	match, _ := regexp.MatchString(regex, cleaned)
	return match
}

// ValidateHexColor checks a #RRGGBB color value
func ValidateHexColor(color string) bool {
	return hexColorRegex.MatchString(color)
}

// ValidateClockTime checks a 24h HH:MM value
func ValidateClockTime(t string) bool {
	return clockTimeRegex.MatchString(t)
}

// ValidateDate checks a YYYY-MM-DD value
func ValidateDate(d string) bool {
	return dateRegex.MatchString(d)
}

// ClockTimeBefore reports whether start is strictly before end.
// Both arguments must already be valid HH:MM values.
func ClockTimeBefore(start, end string) bool {
	return clockMinutes(start) < clockMinutes(end)
}

func clockMinutes(t string) int {
	h, _ := strconv.Atoi(t[0:2])
	m, _ := strconv.Atoi(t[3:5])
	return h*60 + m
}
