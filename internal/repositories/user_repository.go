package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"eventgate/internal/models/db_models"
)

type UserRepository interface {
	Insert(ctx context.Context, user *db_models.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*db_models.User, error)
	FindByEmail(ctx context.Context, email string) (*db_models.User, error)
	FindByStripeAccount(ctx context.Context, accountID string) (*db_models.User, error)
	FindByStripeCustomer(ctx context.Context, customerID string) (*db_models.User, error)
	SetStripeAccount(ctx context.Context, id uuid.UUID, accountID string, status db_models.AccountStatus) error
	SetAccountStatus(ctx context.Context, id uuid.UUID, status db_models.AccountStatus) error
	SetSubscription(ctx context.Context, id uuid.UUID, subscriptionID, status string, trialEndsAt *int64) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{
		db: db,
	}
}

func (u *userRepository) Insert(ctx context.Context, user *db_models.User) error {
	return u.db.WithContext(ctx).Create(user).Error
}

func (u *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*db_models.User, error) {
	var user db_models.User
	err := u.db.WithContext(ctx).First(&user, "id = ?", id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &user, nil
}

func (u *userRepository) FindByEmail(ctx context.Context, email string) (*db_models.User, error) {
	var user db_models.User
	err := u.db.WithContext(ctx).First(&user, "email = ?", email).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &user, nil
}

func (u *userRepository) FindByStripeAccount(ctx context.Context, accountID string) (*db_models.User, error) {
	var user db_models.User
	err := u.db.WithContext(ctx).First(&user, "stripe_account_id = ?", accountID).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &user, nil
}

func (u *userRepository) FindByStripeCustomer(ctx context.Context, customerID string) (*db_models.User, error) {
	var user db_models.User
	err := u.db.WithContext(ctx).First(&user, "stripe_customer_id = ?", customerID).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &user, nil
}

func (u *userRepository) SetStripeAccount(ctx context.Context, id uuid.UUID, accountID string, status db_models.AccountStatus) error {
	return u.db.WithContext(ctx).
		Model(&db_models.User{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"stripe_account_id":     accountID,
			"stripe_account_status": status,
		}).Error
}

func (u *userRepository) SetAccountStatus(ctx context.Context, id uuid.UUID, status db_models.AccountStatus) error {
	return u.db.WithContext(ctx).
		Model(&db_models.User{}).
		Where("id = ?", id).
		Update("stripe_account_status", status).Error
}

func (u *userRepository) SetSubscription(ctx context.Context, id uuid.UUID, subscriptionID, status string, trialEndsAt *int64) error {
	return u.db.WithContext(ctx).
		Model(&db_models.User{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"stripe_subscription_id": subscriptionID,
			"subscription_status":    status,
			"trial_ends_at":          trialEndsAt,
		}).Error
}
