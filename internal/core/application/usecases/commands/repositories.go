// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management,
// persistence, and post-commit fan-out.
package commands

import (
	"context"

	"grocery/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// PickupOtpRepoFactory provides access to the OTP repository within a transaction.
	PickupOtpRepoFactory interface {
		PickupOtpRepository() ports.PickupOtpRepository
	}

	// PartnerRepoFactory provides access to the partner repository within a transaction.
	PartnerRepoFactory interface {
		PartnerRepository() ports.PartnerRepository
	}

	// EventRepoFactory provides access to the outbox repository within a transaction.
	EventRepoFactory interface {
		EventRepository() ports.EventRepository
	}

	// OrderUoW manages transactions for order lifecycle operations.
	// Every status transition writes its outbox event in the same
	// transaction, so the order and event repositories always travel
	// together.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
		EventRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// OtpUoW manages transactions spanning the OTP and order aggregates.
	// Verify-pickup writes both records atomically.
	OtpUoW interface {
		TxManager
		OrderRepoFactory
		PickupOtpRepoFactory
		EventRepoFactory
	}

	// OtpUoWFactory creates new OTP unit of work instances.
	OtpUoWFactory interface {
		Create() OtpUoW
	}

	// PartnerUoW manages transactions for partner profile operations.
	PartnerUoW interface {
		TxManager
		PartnerRepoFactory
	}

	// PartnerUoWFactory creates new partner unit of work instances.
	PartnerUoWFactory interface {
		Create() PartnerUoW
	}
)
