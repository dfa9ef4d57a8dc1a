package payment_fx

import (
	"os"

	"go.uber.org/fx"

	"eventgate/internal/api/controllers"
	"eventgate/internal/repositories"
	"eventgate/internal/services"
	"eventgate/pkg/memcache"
	"eventgate/pkg/stripe"
)

var Module = fx.Options(
	fx.Provide(
		repositories.NewPaymentRepository,
		provideSeenEvents,
		provideCheckoutService,
		services.NewWebhookService,
		controllers.NewPaymentController,
	),
)

func provideSeenEvents() memcache.SeenEventStore {
	return memcache.NewSeenEvents()
}

func provideCheckoutService(
	eventRepo repositories.EventRepository,
	leadRepo repositories.LeadRepository,
	contactRepo repositories.ContactRepository,
	paymentRepo repositories.PaymentRepository,
	userRepo repositories.UserRepository,
	gateway stripe.Gateway) services.CheckoutServiceInterface {
	cfg := services.CheckoutConfig{
		AppBaseURL: os.Getenv("APP_BASE_URL"),
	}
	return services.NewCheckoutService(eventRepo, leadRepo, contactRepo, paymentRepo, userRepo, gateway, cfg)
}
