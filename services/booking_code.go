package services

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// bookingCodeAttempts bounds the regeneration loop when a generated code
// collides with an existing booking.
const bookingCodeAttempts = 5

// GenerateBookingCode returns a human-readable booking code of the form
// "BK" followed by six digits. Uniqueness is enforced by the booking_code
// unique index together with the caller's exists-check/retry loop.
func GenerateBookingCode() string {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		// crypto/rand only fails if the OS entropy source is broken
		panic(fmt.Sprintf("booking code generation: %v", err))
	}
	return fmt.Sprintf("BK%06d", n.Int64()+100000)
}

// newUniqueBookingCode draws codes until exists reports the code as free,
// giving up after a fixed number of attempts.
func newUniqueBookingCode(exists func(code string) (bool, error)) (string, error) {
	for i := 0; i < bookingCodeAttempts; i++ {
		code := GenerateBookingCode()
		taken, err := exists(code)
		if err != nil {
			return "", err
		}
		if !taken {
			return code, nil
		}
	}
	return "", fmt.Errorf("could not generate a unique booking code after %d attempts", bookingCodeAttempts)
}
