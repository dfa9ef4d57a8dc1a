package event_fx

import (
	"go.uber.org/fx"

	"eventgate/internal/api/controllers"
	"eventgate/internal/repositories"
	"eventgate/internal/services"
)

var Module = fx.Provide(
	repositories.NewEventRepository,
	repositories.NewMembershipRepository,
	services.NewEventService,
	controllers.NewEventController,
)
