package session

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"

	"zipdrop/internal/config"
)

const (
	premiumKey = "premium"
	flashKey   = "flash"

	uploadsKeyPrefix = "uploads_"
)

// Manager wraps the Fiber session store and owns every piece of per-visitor
// state the application keeps: the date-keyed free-upload counter, the premium
// flag, and pending flash messages. Counters are scoped to one session only;
// there is deliberately no cross-session or cross-process view of them.
type Manager struct {
	store     *session.Store
	freeDaily int
}

// NewManager builds a session manager backed by Fiber's in-memory store, with
// cookie flags taken from configuration.
func NewManager(cookie config.CookieConfig, freeDailyUploads int) *Manager {
	store := session.New(session.Config{
		Expiration:     24 * time.Hour,
		KeyLookup:      "cookie:session_id",
		CookieSecure:   cookie.Secure,
		CookieHTTPOnly: cookie.HTTPOnly,
		CookieSameSite: cookie.SameSite,
	})
	store.RegisterType([]string{})

	return &Manager{store: store, freeDaily: freeDailyUploads}
}

// Get returns the session for the current request, creating one if needed.
func (m *Manager) Get(c *fiber.Ctx) (*session.Session, error) {
	return m.store.Get(c)
}

// Today returns the server-local calendar date used as the quota key.
func Today() string {
	return time.Now().Format("2006-01-02")
}

func uploadsKey(day string) string {
	return uploadsKeyPrefix + day
}

// UploadsUsed returns the number of free uploads consumed on the given day.
// Keys for past days are never cleaned up; they die with the session.
func (m *Manager) UploadsUsed(sess *session.Session, day string) int {
	if v, ok := sess.Get(uploadsKey(day)).(int); ok {
		return v
	}
	return 0
}

// UploadsRemaining returns how many free uploads are left for the day,
// never going below zero.
func (m *Manager) UploadsRemaining(sess *session.Session, day string) int {
	remaining := m.freeDaily - m.UploadsUsed(sess, day)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// HasQuota reports whether the session may perform another free upload today.
func (m *Manager) HasQuota(sess *session.Session, day string) bool {
	return m.UploadsUsed(sess, day) < m.freeDaily
}

// IncrementUploads bumps the day's counter by one. The caller is responsible
// for saving the session once the request's mutations are complete.
func (m *Manager) IncrementUploads(sess *session.Session, day string) {
	sess.Set(uploadsKey(day), m.UploadsUsed(sess, day)+1)
}

// IsPremium reports whether the session has been flagged as premium.
func (m *Manager) IsPremium(sess *session.Session) bool {
	if v, ok := sess.Get(premiumKey).(bool); ok {
		return v
	}
	return false
}

// SetPremium marks the session as premium. The flag is set purely by reaching
// the checkout success URL; it is not verified against the payment provider.
func (m *Manager) SetPremium(sess *session.Session) {
	sess.Set(premiumKey, true)
}

// Flash queues a message to be shown on the next rendered page.
func (m *Manager) Flash(sess *session.Session, msg string) {
	msgs, _ := sess.Get(flashKey).([]string)
	sess.Set(flashKey, append(msgs, msg))
}

// PopFlashes returns queued flash messages and clears them.
func (m *Manager) PopFlashes(sess *session.Session) []string {
	msgs, _ := sess.Get(flashKey).([]string)
	if len(msgs) > 0 {
		sess.Delete(flashKey)
	}
	return msgs
}
