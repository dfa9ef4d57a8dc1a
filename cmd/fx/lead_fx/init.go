package lead_fx

import (
	"os"

	"go.uber.org/fx"

	"eventgate/internal/api/controllers"
	"eventgate/internal/repositories"
	"eventgate/internal/services"
)

var Module = fx.Options(
	fx.Provide(
		repositories.NewLeadRepository,
		repositories.NewContactRepository,
		services.NewAccessService,
		provideLeadService,
		controllers.NewLeadController,
	),
)

func provideLeadService(
	eventRepo repositories.EventRepository,
	leadRepo repositories.LeadRepository,
	contactRepo repositories.ContactRepository,
	bookingRepo repositories.BookingRepository,
	mail services.IMailService) services.LeadServiceInterface {
	return services.NewLeadService(eventRepo, leadRepo, contactRepo, bookingRepo, mail, os.Getenv("APP_BASE_URL"))
}
