package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"eventgate/internal/models/db_models"
)

type ContactRepository interface {
	Insert(ctx context.Context, contact *db_models.Contact) error
	FindByID(ctx context.Context, id uuid.UUID) (*db_models.Contact, error)
	FindByHostAndEmail(ctx context.Context, hostID uuid.UUID, email string) (*db_models.Contact, error)
	SetStripeCustomerID(ctx context.Context, id uuid.UUID, customerID string) error
}

type contactRepository struct {
	db *gorm.DB
}

func NewContactRepository(db *gorm.DB) ContactRepository {
	return &contactRepository{
		db: db,
	}
}

func (c *contactRepository) Insert(ctx context.Context, contact *db_models.Contact) error {
	return c.db.WithContext(ctx).Create(contact).Error
}

func (c *contactRepository) FindByID(ctx context.Context, id uuid.UUID) (*db_models.Contact, error) {
	var contact db_models.Contact
	err := c.db.WithContext(ctx).First(&contact, "id = ?", id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &contact, nil
}

func (c *contactRepository) FindByHostAndEmail(ctx context.Context, hostID uuid.UUID, email string) (*db_models.Contact, error) {
	var contact db_models.Contact
	err := c.db.WithContext(ctx).
		Where("host_id = ? AND email = ?", hostID, email).
		First(&contact).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &contact, nil
}

func (c *contactRepository) SetStripeCustomerID(ctx context.Context, id uuid.UUID, customerID string) error {
	return c.db.WithContext(ctx).
		Model(&db_models.Contact{}).
		Where("id = ?", id).
		Update("stripe_customer_id", customerID).Error
}
