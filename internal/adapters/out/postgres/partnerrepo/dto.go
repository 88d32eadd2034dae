// Package partnerrepo provides persistence for delivery partner availability
// profiles. Rows mirror identity-provider users, so writes are upserts.
package partnerrepo

import (
	"time"

	"grocery/internal/core/domain/model/kernel"
	"grocery/internal/core/domain/model/partner"

	"github.com/google/uuid"
)

// DeliveryPartnerDTO represents the database structure for partner profiles.
type DeliveryPartnerDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	IsAvailable bool
	UpdatedAt   time.Time `gorm:"autoUpdateTime:false"`
}

// TableName specifies the database table name for partner profiles.
func (DeliveryPartnerDTO) TableName() string {
	return "delivery_partners"
}

func fromDomain(aggregate *partner.DeliveryPartner) DeliveryPartnerDTO {
	return DeliveryPartnerDTO{
		ID:          aggregate.ID().Bytes(),
		IsAvailable: aggregate.IsAvailable(),
		UpdatedAt:   aggregate.UpdatedAt(),
	}
}

func toDomain(dto DeliveryPartnerDTO) (*partner.DeliveryPartner, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	return partner.RestoreDeliveryPartner(id, dto.IsAvailable, dto.UpdatedAt)
}
