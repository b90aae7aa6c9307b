// utils/validation.go
package utils

import (
	"regexp"
	"strings"
)

var telephoneFRRegex = regexp.MustCompile(`^\+33[1-9][0-9]{8}$`)

// FormatTelephoneFR normalizes a French phone number to E.164 (+33XXXXXXXXX).
func FormatTelephoneFR(phone string) string {
	var digits strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	numbers := digits.String()

	if strings.HasPrefix(numbers, "33") {
		return "+" + numbers
	}
	if strings.HasPrefix(numbers, "0") {
		return "+33" + numbers[1:]
	}
	return "+" + numbers
}

// ValidateTelephoneFR checks a phone number against the +33XXXXXXXXX format.
func ValidateTelephoneFR(phone string) bool {
	return telephoneFRRegex.MatchString(strings.ReplaceAll(phone, " ", ""))
}
