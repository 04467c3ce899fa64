package validation

import (
	"regexp"
)

// Validation rule patterns
var (
	// Email validation pattern
	EmailPattern = `^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`

	// Username pattern - letters, digits, underscores, 3-100 chars
	UsernamePattern = `^[a-zA-Z0-9_]{3,100}$`

	// Password min length
	PasswordMinLength = 8

	// Title min/max length
	TitleMinLength = 1
	TitleMaxLength = 255
)

// CompiledPatterns caches compiled regex patterns
var CompiledPatterns = struct {
	Email    *regexp.Regexp
	Username *regexp.Regexp
}{
	Email:    regexp.MustCompile(EmailPattern),
	Username: regexp.MustCompile(UsernamePattern),
}

// ValidEmail reports whether the value is a plausible email address.
func ValidEmail(value string) bool {
	return CompiledPatterns.Email.MatchString(value)
}

// ValidUsername reports whether the value is an acceptable username.
func ValidUsername(value string) bool {
	return CompiledPatterns.Username.MatchString(value)
}

// ValidPassword reports whether the value meets the password length rule.
func ValidPassword(value string) bool {
	return len(value) >= PasswordMinLength
}

// ValidTitle reports whether the value is an acceptable material title.
func ValidTitle(value string) bool {
	return len(value) >= TitleMinLength && len(value) <= TitleMaxLength
}
