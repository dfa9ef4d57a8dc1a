package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"eventgate/internal/models/db_models"
	"eventgate/pkg/utils"
)

type PaymentRepository interface {
	Insert(ctx context.Context, payment *db_models.Payment) error
	FindBySessionID(ctx context.Context, sessionID string) (*db_models.Payment, error)
	AttachSessionID(ctx context.Context, paymentID uuid.UUID, sessionID string) error
	MarkFailed(ctx context.Context, paymentID uuid.UUID) error

	// SettleBySessionID applies the pending->succeeded transition and the
	// lead activation as one transaction. Returns (payment, true) when this
	// call won the transition, (payment, false) when the payment was already
	// terminal, and (nil, false) when no payment matches the session.
	SettleBySessionID(ctx context.Context, sessionID string) (*db_models.Payment, bool, error)

	// FailBySessionID applies pending->failed with the same conditional
	// update. Reports whether this call performed the transition.
	FailBySessionID(ctx context.Context, sessionID string) (bool, error)
}

type paymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{
		db: db,
	}
}

func (p *paymentRepository) Insert(ctx context.Context, payment *db_models.Payment) error {
	return p.db.WithContext(ctx).Create(payment).Error
}

func (p *paymentRepository) FindBySessionID(ctx context.Context, sessionID string) (*db_models.Payment, error) {
	if sessionID == "" {
		return nil, nil
	}

	var payment db_models.Payment
	err := p.db.WithContext(ctx).
		Where("checkout_session_id = ?", sessionID).
		First(&payment).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &payment, nil
}

func (p *paymentRepository) AttachSessionID(ctx context.Context, paymentID uuid.UUID, sessionID string) error {
	return p.db.WithContext(ctx).
		Model(&db_models.Payment{}).
		Where("id = ?", paymentID).
		Update("checkout_session_id", sessionID).Error
}

func (p *paymentRepository) MarkFailed(ctx context.Context, paymentID uuid.UUID) error {
	return p.db.WithContext(ctx).
		Model(&db_models.Payment{}).
		Where("id = ?", paymentID).
		Updates(map[string]interface{}{
			"status":    db_models.PaymentStatusFailed,
			"failed_at": utils.NowUnixSeconds(),
		}).Error
}

func (p *paymentRepository) SettleBySessionID(ctx context.Context, sessionID string) (*db_models.Payment, bool, error) {
	// Rows created before AttachSessionID runs carry an empty session id; an
	// event with an empty id must never match them.
	if sessionID == "" {
		return nil, false, nil
	}

	var payment db_models.Payment
	err := p.db.WithContext(ctx).
		Where("checkout_session_id = ?", sessionID).
		First(&payment).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}

	settled := false
	err = p.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Compare-and-swap on status: only the delivery that flips the row
		// out of pending may cascade to the lead write. Concurrent or
		// repeated deliveries see zero affected rows and do nothing.
		res := tx.Model(&db_models.Payment{}).
			Where("id = ? AND status = ?", payment.ID, db_models.PaymentStatusPending).
			Updates(map[string]interface{}{
				"status":  db_models.PaymentStatusSucceeded,
				"paid_at": utils.NowUnixSeconds(),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}

		if err := tx.Model(&db_models.Lead{}).
			Where("id = ?", payment.LeadID).
			Update("membership_active", true).Error; err != nil {
			return err
		}

		settled = true
		return nil
	})
	if err != nil {
		return nil, false, err
	}

	if settled {
		payment.Status = db_models.PaymentStatusSucceeded
	}
	return &payment, settled, nil
}

func (p *paymentRepository) FailBySessionID(ctx context.Context, sessionID string) (bool, error) {
	if sessionID == "" {
		return false, nil
	}

	res := p.db.WithContext(ctx).
		Model(&db_models.Payment{}).
		Where("checkout_session_id = ? AND status = ?", sessionID, db_models.PaymentStatusPending).
		Updates(map[string]interface{}{
			"status":    db_models.PaymentStatusFailed,
			"failed_at": utils.NowUnixSeconds(),
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
