package handler

import (
	"github.com/gofiber/fiber/v2"

	"zipdrop/internal/config"
	"zipdrop/internal/model"
	"zipdrop/internal/service"
	"zipdrop/internal/session"
)

// RegisterRoutes attaches the application's HTTP routes to the provided Fiber
// app. Handlers stay thin; the upload pipeline and checkout calls live in the
// service layer.
func RegisterRoutes(app *fiber.App, cfg *config.AppConfig, sessions *session.Manager, compressSvc service.CompressService, checkoutSvc service.CheckoutService) {
	tiers := model.NewTierTable(cfg.Tiers)

	app.Get("/", Index(sessions))

	// Donation flow
	app.Get("/donate", Donate(sessions))
	app.Post("/create-checkout-session", CreateCheckoutSession(checkoutSvc, service.ProductDonation))
	app.Get("/success-donation", SuccessDonation(sessions))

	// Compressor
	app.Get("/compressor", CompressorForm(sessions, tiers))
	app.Post("/compressor", CompressorUpload(sessions, compressSvc, tiers))

	// Premium flow
	app.Get("/premium", Premium(sessions))
	app.Post("/create-premium-session", CreateCheckoutSession(checkoutSvc, service.ProductPremium))
	app.Get("/success-premium", SuccessPremium(sessions))

	// Static policy pages
	app.Get("/privacy-policy", PrivacyPolicy())
	app.Get("/data-deletion", DataDeletion())

	// Liveness probe
	app.Get("/healthz", LivenessProbe())
}
