package validators

import (
	"regexp"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

// Custom validation tags registered on the shared validator.
const (
	tagUsername       = "username"
	tagStrongPassword = "strong_password"
	tagValidUTF8      = "utf8"
)

const (
	usernameMinLen = 3
	usernameMaxLen = 31
)

var usernamePattern = regexp.MustCompile(`^[a-z][a-z0-9_.-]*$`)

var reservedUsernames = []string{
	"admin", "administrator", "root", "system", "user", "guest", "test",
	"demo", "api", "www", "mail", "email", "support", "help", "info",
	"null", "undefined", "false", "true",
}

// weakPasswordFragments are rejected anywhere in a password, ignoring case.
var weakPasswordFragments = []string{"123456", "abcdef", "qwerty", "password", "admin", "login"}

// IsValidUsername reports whether s satisfies the username policy:
// 3 to 31 characters, lowercase letters, digits, '_', '-' and '.',
// starting with a letter, and not a reserved name.
func IsValidUsername(s string) bool {
	if !utf8.ValidString(s) {
		return false
	}
	if len(s) < usernameMinLen || len(s) > usernameMaxLen {
		return false
	}
	if !usernamePattern.MatchString(s) {
		return false
	}
	return !slices.Contains(reservedUsernames, strings.ToLower(s))
}

// IsStrongPassword reports whether s mixes lower and upper case letters,
// digits and special characters and contains no weak pattern. Length is
// checked separately by the min/max tags. Strings that are not valid
// UTF-8 are rejected.
func IsStrongPassword(s string) bool {
	if !utf8.ValidString(s) {
		return false
	}

	var lower, upper, digit, special bool
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		default:
			special = true
		}
	}
	if !lower || !upper || !digit || !special {
		return false
	}

	return !hasWeakPattern(s)
}

func hasWeakPattern(s string) bool {
	folded := strings.ToLower(s)
	for _, fragment := range weakPasswordFragments {
		if strings.Contains(folded, fragment) {
			return true
		}
	}

	// three or more identical characters in a row
	runes := []rune(s)
	for i := 2; i < len(runes); i++ {
		if runes[i] == runes[i-1] && runes[i] == runes[i-2] {
			return true
		}
	}

	return false
}

func validateUsername(fl validator.FieldLevel) bool {
	return IsValidUsername(fl.Field().String())
}

func validateStrongPassword(fl validator.FieldLevel) bool {
	return IsStrongPassword(fl.Field().String())
}

func validateUTF8(fl validator.FieldLevel) bool {
	return utf8.ValidString(fl.Field().String())
}

// messageFor renders a human readable message for a failed rule.
func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return "must be at least " + fe.Param() + " characters"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case "email":
		return "must be a valid email address"
	case "eqfield":
		return "does not match"
	case "nefield":
		return "must differ from the current password"
	case tagUsername:
		return "must be 3-31 characters, start with a letter and contain only lowercase letters, digits, '_', '-' or '.'; reserved names are not allowed"
	case tagValidUTF8:
		return "must be valid UTF-8 text"
	case tagStrongPassword:
		return "must contain lower and upper case letters, a digit and a special character, and no common weak patterns"
	}
	return "is invalid"
}
