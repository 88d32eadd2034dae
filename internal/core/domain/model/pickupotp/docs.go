// Package pickupotp provides the PickupOtp aggregate: a short-lived one-time
// passcode binding a physical handoff at the store counter to the delivery
// partner who claimed the order.
//
// Key business rules:
//   - One live (unverified, unexpired) OTP per order at a time; repeated
//     generation returns the existing code unchanged
//   - Codes are 4 digits with a fixed 30-minute TTL from generation
//   - Verification allows at most 3 attempts; a wrong code increments the
//     attempt counter even though the call fails
//   - Once verified, the record is immutable; expiry is checked lazily at
//     verify time, never by a background sweep
package pickupotp
