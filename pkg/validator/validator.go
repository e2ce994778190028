package validator

import (
	"regexp"
	"strings"
	"time"
	"unicode"
)

var (
	emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRegex = regexp.MustCompile(`^\+?[0-9]{7,15}$`)
)

// ValidateEmail accepts the simple local@domain.tld shape used by the booking form.
func ValidateEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// ValidatePhone strips formatting characters and checks what is left is a
// plausible international number.
func ValidatePhone(phone string) bool {
	return phoneRegex.MatchString(CleanPhone(phone))
}

func CleanPhone(phone string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) || r == '+' {
			return r
		}
		return -1
	}, phone)
}

func ValidateDate(date string) bool {
	_, err := time.Parse("2006-01-02", date)
	return err == nil
}

func ValidateClock(clock string) bool {
	_, err := time.Parse("15:04", clock)
	return err == nil
}

func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func FormatName(name string) string {
	if len(name) == 0 {
		return ""
	}

	parts := strings.Fields(name)
	for i, part := range parts {
		if strings.Contains(part, "-") {
			subparts := strings.Split(part, "-")
			for j, subpart := range subparts {
				subparts[j] = capitalize(subpart)
			}
			parts[i] = strings.Join(subparts, "-")
		} else {
			parts[i] = capitalize(part)
		}
	}

	return strings.Join(parts, " ")
}

func capitalize(s string) string {
	runes := []rune(s)
	if len(runes) == 0 {
		return s
	}
	return strings.ToUpper(string(runes[:1])) + strings.ToLower(string(runes[1:]))
}

// SanitizeString drops characters that would break out of HTML attributes in
// the notification emails.
func SanitizeString(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '<' || r == '>' || r == '`' {
			return -1
		}
		return r
	}, strings.TrimSpace(s))
}
