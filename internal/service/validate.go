package service

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/msomdec/buycars/internal/domain"
)

const (
	msgInvalidEmail   = "Invalid email id"
	msgWeakPassword   = "Password must contain at least 8 characters, including at least one number, both upper and lower case letters, and special characters"
	msgInvalidOTP     = "Please enter a valid 6-digit OTP"
	passwordSpecials  = "!@#$%^&*"
	minPasswordLength = 8
	otpLength         = 6
)

var (
	emailPattern = regexp.MustCompile(`^[a-zA-Z0-9+_.-]+@[a-zA-Z0-9.-]+[.]+[a-z]{2,3}$`)
	otpPattern   = regexp.MustCompile(`^[0-9]{6}$`)
)

// ValidateEmail checks the address format accepted by the sign-up and
// sign-in forms.
func ValidateEmail(email string) error {
	if !emailPattern.MatchString(email) {
		return fmt.Errorf("%w: %s", domain.ErrInvalidInput, msgInvalidEmail)
	}
	return nil
}

// ValidatePassword requires at least 8 characters (runes, not bytes) with a lower-case letter,
// an upper-case letter, a digit and one of !@#$%^&*.
func ValidatePassword(password string) error {
	var lower, upper, digit, special bool
	for _, r := range password {
		switch {
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		case strings.ContainsRune(passwordSpecials, r):
			special = true
		}
	}
	if utf8.RuneCountInString(password) < minPasswordLength || !lower || !upper || !digit || !special {
		return fmt.Errorf("%w: %s", domain.ErrInvalidInput, msgWeakPassword)
	}
	return nil
}

// ValidateOTP requires exactly six digits.
func ValidateOTP(otp string) error {
	if len(otp) != otpLength || !otpPattern.MatchString(otp) {
		return fmt.Errorf("%w: %s", domain.ErrInvalidInput, msgInvalidOTP)
	}
	return nil
}
