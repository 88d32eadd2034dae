package pickupotp

import (
	"errors"
	"fmt"
)

// Sentinel errors for OTP verification failures. All of them are local,
// recoverable conditions surfaced directly to the caller.
var (
	// ErrAlreadyUsed indicates the OTP record was already verified.
	ErrAlreadyUsed = errors.New("pickup OTP has already been used")

	// ErrExpired indicates the OTP passed its 30-minute TTL.
	ErrExpired = errors.New("pickup OTP has expired")

	// ErrAttemptsExhausted indicates the maximum of 3 verification attempts
	// was reached. Terminal: the caller must escalate out-of-band, e.g.
	// contact the store.
	ErrAttemptsExhausted = errors.New("maximum verification attempts exceeded")

	// ErrIncorrectCode indicates the submitted code did not match.
	ErrIncorrectCode = errors.New("incorrect pickup OTP")
)

// IncorrectCodeError reports a failed code match along with the number of
// attempts the partner has left, so clients can drive a retry-or-abandon
// decision.
type IncorrectCodeError struct {
	RemainingAttempts int
}

// NewIncorrectCodeError creates an IncorrectCodeError with the remaining attempt count.
func NewIncorrectCodeError(remaining int) *IncorrectCodeError {
	return &IncorrectCodeError{RemainingAttempts: remaining}
}

func (e *IncorrectCodeError) Error() string {
	return fmt.Sprintf("%s: %d attempts remaining", ErrIncorrectCode, e.RemainingAttempts)
}

func (e *IncorrectCodeError) Unwrap() error {
	return ErrIncorrectCode
}
