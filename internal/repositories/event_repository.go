package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"eventgate/internal/models/db_models"
)

type EventRepository interface {
	Insert(ctx context.Context, event *db_models.Event) error
	FindByID(ctx context.Context, id uuid.UUID) (*db_models.Event, error)
	ListByHost(ctx context.Context, hostID uuid.UUID) ([]db_models.Event, error)
	Update(ctx context.Context, event *db_models.Event) error
	ReplaceMemberships(ctx context.Context, event *db_models.Event, memberships []db_models.Membership) error
}

type eventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) EventRepository {
	return &eventRepository{
		db: db,
	}
}

func (e *eventRepository) Insert(ctx context.Context, event *db_models.Event) error {
	return e.db.WithContext(ctx).Create(event).Error
}

// FindByID loads the event with its attached membership tiers; the gating
// logic always needs the full tier list.
func (e *eventRepository) FindByID(ctx context.Context, id uuid.UUID) (*db_models.Event, error) {
	var event db_models.Event
	err := e.db.WithContext(ctx).
		Preload("Memberships").
		First(&event, "id = ?", id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &event, nil
}

func (e *eventRepository) ListByHost(ctx context.Context, hostID uuid.UUID) ([]db_models.Event, error) {
	var events []db_models.Event
	err := e.db.WithContext(ctx).
		Preload("Memberships").
		Where("host_id = ?", hostID).
		Order("created_at DESC").
		Find(&events).Error
	return events, err
}

func (e *eventRepository) Update(ctx context.Context, event *db_models.Event) error {
	return e.db.WithContext(ctx).Save(event).Error
}

func (e *eventRepository) ReplaceMemberships(ctx context.Context, event *db_models.Event, memberships []db_models.Membership) error {
	return e.db.WithContext(ctx).Model(event).Association("Memberships").Replace(memberships)
}
