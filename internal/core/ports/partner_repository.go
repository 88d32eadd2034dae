package ports

import (
	"context"

	"grocery/internal/core/domain/model/kernel"
	"grocery/internal/core/domain/model/partner"
)

// PartnerRepository defines the persistence contract for delivery partner
// availability profiles.
type PartnerRepository interface {
	// Upsert persists a partner profile, creating it on first write.
	// Partner rows mirror identity-provider users, so the first availability
	// toggle may arrive before any explicit profile creation.
	Upsert(ctx context.Context, aggregate *partner.DeliveryPartner) error

	// Get retrieves a partner profile by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*partner.DeliveryPartner, error)
}
