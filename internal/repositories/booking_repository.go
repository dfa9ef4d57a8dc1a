package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"eventgate/internal/models/db_models"
)

type BookingRepository interface {
	Insert(ctx context.Context, booking *db_models.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*db_models.Booking, error)
	ListByEvent(ctx context.Context, eventID uuid.UUID) ([]db_models.Booking, error)
	CountByLead(ctx context.Context, leadID uuid.UUID) (int64, error)
	Cancel(ctx context.Context, id uuid.UUID) error
}

type bookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) BookingRepository {
	return &bookingRepository{
		db: db,
	}
}

func (b *bookingRepository) Insert(ctx context.Context, booking *db_models.Booking) error {
	return b.db.WithContext(ctx).Create(booking).Error
}

func (b *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*db_models.Booking, error) {
	var booking db_models.Booking
	err := b.db.WithContext(ctx).First(&booking, "id = ?", id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &booking, nil
}

func (b *bookingRepository) ListByEvent(ctx context.Context, eventID uuid.UUID) ([]db_models.Booking, error) {
	var bookings []db_models.Booking
	err := b.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("date ASC").
		Find(&bookings).Error
	return bookings, err
}

func (b *bookingRepository) CountByLead(ctx context.Context, leadID uuid.UUID) (int64, error) {
	var count int64
	err := b.db.WithContext(ctx).
		Model(&db_models.Booking{}).
		Where("lead_id = ? AND status = ?", leadID, db_models.BookingStatusConfirmed).
		Count(&count).Error
	return count, err
}

func (b *bookingRepository) Cancel(ctx context.Context, id uuid.UUID) error {
	return b.db.WithContext(ctx).
		Model(&db_models.Booking{}).
		Where("id = ?", id).
		Update("status", db_models.BookingStatusCanceled).Error
}
