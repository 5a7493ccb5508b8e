// Package validation holds the field rules shared by registration, admin
// user/store creation, password changes and rating submission.
//
// Every validator returns nil when the value passes and a *Error otherwise.
// Validators never panic; callers branch on the result.
package validation

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/Baaaki/store-rating/internal/models"
)

type Kind string

const (
	KindRequired      Kind = "required"
	KindInvalidLength Kind = "invalid_length"
	KindInvalidFormat Kind = "invalid_format"
	KindWeakPassword  Kind = "weak_password"
	KindTooLong       Kind = "too_long"
	KindOutOfRange    Kind = "out_of_range"
	KindInvalidRole   Kind = "invalid_role"
)

const (
	NameMinLength      = 20
	NameMaxLength      = 60
	PasswordMinLength  = 8
	PasswordMaxLength  = 16
	AddressMaxLength   = 400
	StoreNameMaxLength = 100
)

// PasswordSpecialChars is the set a password must draw at least one character from.
const PasswordSpecialChars = `!@#$%^&*(),.?":{}|<>`

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Error describes why a value was rejected.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func newError(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

// First returns the first non-nil failure, preserving field order.
func First(errs ...*Error) *Error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

func ValidateName(name string) *Error {
	n := utf8.RuneCountInString(name)
	if n < NameMinLength || n > NameMaxLength {
		return newError(KindInvalidLength,
			fmt.Sprintf("Name must be between %d and %d characters", NameMinLength, NameMaxLength))
	}
	return nil
}

// NormalizeEmail is the stored and compared form of an email address.
// Addresses are unique regardless of case.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func ValidateEmail(email string) *Error {
	if !emailRegex.MatchString(email) {
		return newError(KindInvalidFormat, "Please enter a valid email address")
	}
	return nil
}

func ValidatePassword(password string) *Error {
	n := utf8.RuneCountInString(password)
	if n < PasswordMinLength || n > PasswordMaxLength {
		return newError(KindInvalidLength,
			fmt.Sprintf("Password must be between %d and %d characters", PasswordMinLength, PasswordMaxLength))
	}

	var hasUpper, hasSpecial bool
	for _, r := range password {
		switch {
		case r <= unicode.MaxASCII && unicode.IsUpper(r):
			hasUpper = true
		case strings.ContainsRune(PasswordSpecialChars, r):
			hasSpecial = true
		}
	}
	if !hasUpper || !hasSpecial {
		return newError(KindWeakPassword,
			"Password must include at least one uppercase letter and one special character")
	}
	return nil
}

func ValidateAddress(address string) *Error {
	if strings.TrimSpace(address) == "" {
		return newError(KindRequired, "Address is required")
	}
	if utf8.RuneCountInString(address) > AddressMaxLength {
		return newError(KindTooLong,
			fmt.Sprintf("Address must not exceed %d characters", AddressMaxLength))
	}
	return nil
}

func ValidateStoreName(name string) *Error {
	if strings.TrimSpace(name) == "" {
		return newError(KindRequired, "Store name is required")
	}
	if utf8.RuneCountInString(name) > StoreNameMaxLength {
		return newError(KindTooLong,
			fmt.Sprintf("Store name must not exceed %d characters", StoreNameMaxLength))
	}
	return nil
}

func ValidateRating(rating int) *Error {
	if rating < models.MinRating || rating > models.MaxRating {
		return ratingOutOfRange()
	}
	return nil
}

// ParseRating accepts the shapes clients send for a rating: a JSON number
// (integral), a json.Number or a numeric string.
func ParseRating(v any) (int, *Error) {
	var n int
	switch val := v.(type) {
	case int:
		n = val
	case int64:
		n = int(val)
	case float64:
		if val != math.Trunc(val) {
			return 0, ratingOutOfRange()
		}
		n = int(val)
	case json.Number:
		i, err := val.Int64()
		if err != nil {
			return 0, ratingOutOfRange()
		}
		n = int(i)
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(val))
		if err != nil {
			return 0, ratingOutOfRange()
		}
		n = i
	default:
		return 0, ratingOutOfRange()
	}

	if err := ValidateRating(n); err != nil {
		return 0, err
	}
	return n, nil
}

func ratingOutOfRange() *Error {
	return newError(KindOutOfRange,
		fmt.Sprintf("Rating must be between %d and %d", models.MinRating, models.MaxRating))
}

// ValidateRole parses role into the closed role set.
func ValidateRole(role string) (models.Role, *Error) {
	r, err := models.ParseRole(role)
	if err != nil {
		return "", newError(KindInvalidRole, "Invalid role")
	}
	return r, nil
}
