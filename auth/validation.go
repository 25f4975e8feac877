package auth

import (
	"errors"
	"regexp"
	"strings"
)

var (
	// Indian mobile numbers: ten digits starting 6-9
	mobilePattern = regexp.MustCompile(`^[6-9]\d{9}$`)
	mpinPattern   = regexp.MustCompile(`^\d{4}$`)
)

// ValidateMobile checks the login mobile number format.
func ValidateMobile(mobile string) error {
	mobile = strings.TrimSpace(mobile)
	if mobile == "" {
		return ErrInvalidMobile
	}
	if !mobilePattern.MatchString(mobile) {
		return ErrInvalidMobile
	}
	return nil
}

// ValidateMPIN checks the MPIN is exactly four digits.
func ValidateMPIN(mpin string) error {
	if !mpinPattern.MatchString(mpin) {
		return ErrInvalidMPIN
	}
	return nil
}

// ValidateCredentials runs both checks and returns the first failure.
func ValidateCredentials(mobile, mpin string) error {
	if err := ValidateMobile(mobile); err != nil {
		return err
	}
	return ValidateMPIN(mpin)
}

// FieldMessage turns a validation error into the text shown under the form.
func FieldMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidMobile):
		return "Please enter a valid 10-digit mobile number"
	case errors.Is(err, ErrInvalidMPIN):
		return "MPIN must be exactly 4 digits"
	default:
		return err.Error()
	}
}
