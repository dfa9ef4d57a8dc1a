package stripe_fx

import (
	"os"

	"go.uber.org/fx"

	"eventgate/pkg/stripe"
)

var Module = fx.Provide(
	provideGateway, provideVerifier,
)

func provideGateway() stripe.Gateway {
	return stripe.NewClient(os.Getenv("STRIPE_SECRET_KEY"))
}

func provideVerifier() stripe.Verifier {
	return stripe.NewWebhookVerifier(os.Getenv("STRIPE_WEBHOOK_SECRET"))
}
