package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request/command.
// This ensures proper isolation between concurrent operations.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary.
// Client code must explicitly manage the transaction lifecycle.
//
// The verify-pickup flow depends on this boundary: the OTP record and the
// order row are written together, so a crash can never leave an order
// in_transit with an unverified OTP, nor a verified OTP with an order stuck
// pre-transit.
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	// Returns error if no active transaction or commit fails.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction.
	// Returns error if no active transaction or rollback fails.
	Rollback(ctx context.Context) error

	// OrderRepository returns an OrderRepository bound to the current transaction.
	OrderRepository() OrderRepository

	// PickupOtpRepository returns a PickupOtpRepository bound to the current transaction.
	PickupOtpRepository() PickupOtpRepository

	// PartnerRepository returns a PartnerRepository bound to the current transaction.
	PartnerRepository() PartnerRepository

	// EventRepository returns an EventRepository bound to the current transaction.
	EventRepository() EventRepository
}
