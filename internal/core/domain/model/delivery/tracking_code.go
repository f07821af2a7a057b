package delivery

import (
	"fmt"
	"math/rand/v2"

	"goby/internal/pkg/errs"
)

const (
	// TrackingCodeLength is the length of a delivery tracking code.
	TrackingCodeLength = 8

	// trackingCodeAlphabet is the character set tracking codes are drawn from.
	// Uppercase letters and digits keep codes easy to read aloud.
	trackingCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// GenerateTrackingCode returns a fresh human-readable tracking code of
// TrackingCodeLength uppercase alphanumeric characters.
//
// Codes are random, not guaranteed unique; the storage layer enforces a
// unique index and callers retry generation on collision.
func GenerateTrackingCode() string {
	code := make([]byte, TrackingCodeLength)
	for i := range code {
		code[i] = trackingCodeAlphabet[rand.IntN(len(trackingCodeAlphabet))] //nolint:gosec // not a secret
	}
	return string(code)
}

// ValidateTrackingCode checks that a tracking code has the expected shape:
// exactly TrackingCodeLength characters from the uppercase alphanumeric set.
func ValidateTrackingCode(code string) error {
	if len(code) != TrackingCodeLength {
		return errs.NewValueIsInvalidErrorWithCause("tracking code",
			fmt.Errorf("%q is not %d characters long", code, TrackingCodeLength))
	}
	for _, c := range code {
		if (c < 'A' || c > 'Z') && (c < '0' || c > '9') {
			return errs.NewValueIsInvalidErrorWithCause("tracking code",
				fmt.Errorf("%q contains a character outside [A-Z0-9]", code))
		}
	}
	return nil
}
