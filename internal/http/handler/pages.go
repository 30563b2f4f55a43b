package handler

import (
	"github.com/gofiber/fiber/v2"
	fibersession "github.com/gofiber/fiber/v2/middleware/session"

	"zipdrop/internal/session"
)

// renderPage renders a template with any pending flash messages merged in.
func renderPage(c *fiber.Ctx, sessions *session.Manager, sess *fibersession.Session, name string, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	flashes := sessions.PopFlashes(sess)
	data["Flashes"] = flashes

	if len(flashes) > 0 {
		if err := sess.Save(); err != nil {
			return err
		}
	}

	return c.Render(name, data)
}

// page returns a handler that renders a plain template plus pending flashes.
func page(sessions *session.Manager, name string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := sessions.Get(c)
		if err != nil {
			return err
		}
		return renderPage(c, sessions, sess, name, nil)
	}
}

// Index renders the landing page.
func Index(sessions *session.Manager) fiber.Handler {
	return page(sessions, "index")
}

// Donate renders the donation page.
func Donate(sessions *session.Manager) fiber.Handler {
	return page(sessions, "donate")
}

// SuccessDonation renders the donation thank-you page.
func SuccessDonation(sessions *session.Manager) fiber.Handler {
	return page(sessions, "success_donation")
}

// Premium renders the premium upsell page.
func Premium(sessions *session.Manager) fiber.Handler {
	return page(sessions, "premium")
}

// SuccessPremium flips the session's premium flag and renders the thank-you
// page. The flag is granted purely by reaching this URL; it is never verified
// against the payment provider's record of the checkout. Known limitation,
// kept on purpose.
func SuccessPremium(sessions *session.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := sessions.Get(c)
		if err != nil {
			return err
		}
		sessions.SetPremium(sess)
		if err := sess.Save(); err != nil {
			return err
		}
		return c.Render("success_premium", fiber.Map{})
	}
}

// PrivacyPolicy renders the static privacy policy page.
func PrivacyPolicy() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.Render("privacy-policy", fiber.Map{})
	}
}

// DataDeletion renders the static data deletion page.
func DataDeletion() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.Render("data-deletion", fiber.Map{})
	}
}

// LivenessProbe is a simple liveness endpoint.
func LivenessProbe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}
}
