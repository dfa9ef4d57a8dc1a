package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"eventgate/internal/models/db_models"
)

type LeadRepository interface {
	Insert(ctx context.Context, lead *db_models.Lead) error
	FindByID(ctx context.Context, id uuid.UUID) (*db_models.Lead, error)
	// FindByEventAndToken fails closed: an unmatched token is (nil, nil),
	// never a default lead.
	FindByEventAndToken(ctx context.Context, eventID uuid.UUID, token string) (*db_models.Lead, error)
	ListByEvent(ctx context.Context, eventID uuid.UUID) ([]db_models.Lead, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type leadRepository struct {
	db *gorm.DB
}

func NewLeadRepository(db *gorm.DB) LeadRepository {
	return &leadRepository{
		db: db,
	}
}

func (l *leadRepository) Insert(ctx context.Context, lead *db_models.Lead) error {
	return l.db.WithContext(ctx).Create(lead).Error
}

func (l *leadRepository) FindByID(ctx context.Context, id uuid.UUID) (*db_models.Lead, error) {
	var lead db_models.Lead
	err := l.db.WithContext(ctx).First(&lead, "id = ?", id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &lead, nil
}

func (l *leadRepository) FindByEventAndToken(ctx context.Context, eventID uuid.UUID, token string) (*db_models.Lead, error) {
	var lead db_models.Lead
	err := l.db.WithContext(ctx).
		Where("event_id = ? AND token = ?", eventID, token).
		First(&lead).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &lead, nil
}

func (l *leadRepository) ListByEvent(ctx context.Context, eventID uuid.UUID) ([]db_models.Lead, error) {
	var leads []db_models.Lead
	err := l.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("created_at DESC").
		Find(&leads).Error
	return leads, err
}

func (l *leadRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return l.db.WithContext(ctx).Delete(&db_models.Lead{}, "id = ?", id).Error
}
