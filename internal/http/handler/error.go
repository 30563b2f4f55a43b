package handler

import (
	"github.com/gofiber/fiber/v2"
)

// ErrorHandler returns a Fiber global error handler that renders a minimal
// error page for anything the route handlers did not turn into a flash
// message, including the 413 produced by the global body limit.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		if e, ok := err.(*fiber.Error); ok {
			status = e.Code
		}

		var message string
		switch status {
		case fiber.StatusNotFound:
			message = "page not found"
		case fiber.StatusMethodNotAllowed:
			message = "method not allowed"
		case fiber.StatusRequestEntityTooLarge:
			message = "upload exceeds the 50 MB request limit"
		default:
			message = "internal server error"
		}

		if renderErr := c.Status(status).Render("error", fiber.Map{
			"Status":  status,
			"Message": message,
		}); renderErr != nil {
			// No views configured (or render failure): fall back to plain text.
			return c.Status(status).SendString(message)
		}
		return nil
	}
}
