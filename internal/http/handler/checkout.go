package handler

import (
	"github.com/gofiber/fiber/v2"

	"zipdrop/internal/service"
)

// CreateCheckoutSession starts a hosted checkout for the given product and
// redirects the browser to the provider's page. On a provider-call failure
// the raw error text is returned as the response body, matching the site's
// original unpolished failure path.
func CreateCheckoutSession(svc service.CheckoutService, product service.Product) fiber.Handler {
	return func(c *fiber.Ctx) error {
		url, err := svc.Create(c.UserContext(), product)
		if err != nil {
			return c.SendString(err.Error())
		}
		return c.Redirect(url, fiber.StatusSeeOther)
	}
}
