package otprepo

import (
	"context"
	"database/sql"
	"errors"

	"grocery/internal/core/domain/model/kernel"
	"grocery/internal/core/domain/model/pickupotp"
	"grocery/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormPickupOtpRepository implements PickupOtpRepository using GORM.
type GormPickupOtpRepository struct {
	db *gorm.DB
}

// NewGormPickupOtpRepository creates a new GORM pickup OTP repository.
func NewGormPickupOtpRepository(db *gorm.DB) *GormPickupOtpRepository {
	return &GormPickupOtpRepository{db: db}
}

// Add persists a new OTP record. If an unverified record already exists for
// the order it is overwritten in place, so replacing an expired code never
// trips the one-unverified-per-order index.
func (r *GormPickupOtpRepository) Add(ctx context.Context, aggregate *pickupotp.PickupOtp) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:     []clause.Column{{Name: "order_id"}},
			TargetWhere: clause.Where{Exprs: []clause.Expression{gorm.Expr("is_verified = false")}},
			DoUpdates: clause.AssignmentColumns([]string{
				"id", "code", "generated_at", "expires_at", "attempts",
			}),
		}).
		Create(&dto).Error
}

// Update persists changes to an existing OTP record.
func (r *GormPickupOtpRepository) Update(ctx context.Context, aggregate *pickupotp.PickupOtp) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&PickupOtpDTO{}).
		Where("id = ?", dto.ID).
		Updates(map[string]any{
			"attempts":    dto.Attempts,
			"is_verified": dto.IsVerified,
			"verified_at": dto.VerifiedAt,
			"verified_by": dto.VerifiedBy,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("pickupOtp", aggregate.ID().String())
	}

	return nil
}

// GetActiveByOrderID retrieves the order's current OTP record: the unverified
// one if present, otherwise the most recent.
func (r *GormPickupOtpRepository) GetActiveByOrderID(
	ctx context.Context, orderID kernel.UUID,
) (*pickupotp.PickupOtp, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dto PickupOtpDTO
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID.Bytes()).
		Order("is_verified, generated_at DESC").
		First(&dto).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("pickupOtp", orderID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// IncrementAttempts bumps the attempt counter with a single conditional
// UPDATE and returns the new value. The attempts < max guard lives in the
// statement itself, so two concurrent wrong submissions can never push the
// counter past the limit.
func (r *GormPickupOtpRepository) IncrementAttempts(ctx context.Context, otpID kernel.UUID) (int, error) {
	if err := otpID.Validate(); err != nil {
		return 0, err
	}

	row := r.db.WithContext(ctx).Raw(`
		UPDATE pickup_otps
		SET attempts = attempts + 1
		WHERE id = ? AND is_verified = false AND attempts < ?
		RETURNING attempts
	`, otpID.Bytes(), pickupotp.MaxAttempts).Row()

	var attempts int
	if err := row.Scan(&attempts); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, pickupotp.ErrAttemptsExhausted
		}
		return 0, err
	}

	return attempts, nil
}
