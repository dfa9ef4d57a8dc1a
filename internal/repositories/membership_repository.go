package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"eventgate/internal/models/db_models"
)

type MembershipRepository interface {
	Insert(ctx context.Context, membership *db_models.Membership) error
	FindByID(ctx context.Context, id uuid.UUID) (*db_models.Membership, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]db_models.Membership, error)
	ListByHost(ctx context.Context, hostID uuid.UUID) ([]db_models.Membership, error)
}

type membershipRepository struct {
	db *gorm.DB
}

func NewMembershipRepository(db *gorm.DB) MembershipRepository {
	return &membershipRepository{
		db: db,
	}
}

func (m *membershipRepository) Insert(ctx context.Context, membership *db_models.Membership) error {
	return m.db.WithContext(ctx).Create(membership).Error
}

func (m *membershipRepository) FindByID(ctx context.Context, id uuid.UUID) (*db_models.Membership, error) {
	var membership db_models.Membership
	err := m.db.WithContext(ctx).First(&membership, "id = ?", id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &membership, nil
}

func (m *membershipRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]db_models.Membership, error) {
	var memberships []db_models.Membership
	err := m.db.WithContext(ctx).Where("id IN ?", ids).Find(&memberships).Error
	return memberships, err
}

func (m *membershipRepository) ListByHost(ctx context.Context, hostID uuid.UUID) ([]db_models.Membership, error) {
	var memberships []db_models.Membership
	err := m.db.WithContext(ctx).
		Where("host_id = ?", hostID).
		Order("created_at DESC").
		Find(&memberships).Error
	return memberships, err
}
