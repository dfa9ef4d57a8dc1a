package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/fx"

	"eventgate/cmd/fx/account_fx"
	"eventgate/cmd/fx/booking_fx"
	"eventgate/cmd/fx/db_fx"
	"eventgate/cmd/fx/event_fx"
	"eventgate/cmd/fx/lead_fx"
	"eventgate/cmd/fx/mail_fx"
	"eventgate/cmd/fx/payment_fx"
	"eventgate/cmd/fx/stripe_fx"
	"eventgate/internal/api/controllers"
	"eventgate/pkg/middleware"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading environment directly")
	}

	app := fx.New(
		db_fx.Module,
		stripe_fx.Module,
		mail_fx.Module,
		account_fx.Module,
		event_fx.Module,
		lead_fx.Module,
		payment_fx.Module,
		booking_fx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, engine *gin.Engine) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Println("Starting HTTP server at ${PORT}")
				if err := engine.Run(":" + os.Getenv("PORT")); err != nil {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Println("Stopping HTTP server")
			return nil
		},
	})
}

func ProvideRouter(
	accountController *controllers.AccountController,
	eventController *controllers.EventController,
	leadController *controllers.LeadController,
	paymentController *controllers.PaymentController,
	bookingController *controllers.BookingController) *gin.Engine {

	r := gin.Default()
	r.Use(gin.Recovery())
	r.Use(middleware.TraceIDMiddleware())
	r.Use(middleware.CORSMiddleware())

	RegisterRoutes(r, accountController, eventController, leadController, paymentController, bookingController)

	return r
}

func RegisterRoutes(r *gin.Engine,
	accountController *controllers.AccountController,
	eventController *controllers.EventController,
	leadController *controllers.LeadController,
	paymentController *controllers.PaymentController,
	bookingController *controllers.BookingController) {

	accounts := r.Group("/accounts")
	accounts.POST("/register", accountController.Register)
	accounts.POST("/login", accountController.Login)
	accounts.GET("/me", middleware.JWTAuthMiddleware(), accountController.Me)
	accounts.POST("/connect-stripe", middleware.JWTAuthMiddleware(), accountController.ConnectStripe)

	events := r.Group("/events")
	events.GET("/:id", eventController.Get)
	events.POST("", middleware.JWTAuthMiddleware(), eventController.Create)
	events.GET("", middleware.JWTAuthMiddleware(), eventController.List)
	events.PUT("/:id", middleware.JWTAuthMiddleware(), eventController.Update)
	events.GET("/:id/leads", middleware.JWTAuthMiddleware(), leadController.ListByEvent)
	events.GET("/:id/bookings", middleware.JWTAuthMiddleware(), bookingController.ListByEvent)

	memberships := r.Group("/memberships", middleware.JWTAuthMiddleware())
	memberships.POST("", eventController.CreateMembership)
	memberships.GET("", eventController.ListMemberships)

	lead := r.Group("/lead")
	lead.POST("/register", leadController.Register)
	lead.POST("/lead-validate-event", leadController.ValidateEvent)
	lead.POST("/purchase-membership", leadController.PurchaseMembership)

	leads := r.Group("/leads", middleware.JWTAuthMiddleware())
	leads.DELETE("/:id", leadController.Delete)

	bookings := r.Group("/bookings")
	bookings.POST("", bookingController.Create)
	bookings.DELETE("/:id", middleware.JWTAuthMiddleware(), bookingController.Cancel)

	r.POST("/stripe/webhook", paymentController.HandleWebhook)
}
