package handler

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mirayaksel/sketchfolio/internal/model"
	"github.com/mirayaksel/sketchfolio/internal/queue"
	"github.com/mirayaksel/sketchfolio/internal/repository"
	"github.com/mirayaksel/sketchfolio/internal/utils"
)

// Field limits for the contact form.
const (
	maxContactField   = 200
	maxContactMessage = 5000
)

// PublishFunc sends a contact event to the notification queue. It is a
// function field rather than a hard dependency so tests and broker-less
// dev environments can run without RabbitMQ.
type PublishFunc func(ctx context.Context, event queue.ContactMessageEvent) error

// ContactHandler serves the contact form. The message row is stored
// first; the notification event is best-effort so a broker outage never
// loses a message or fails the request.
type ContactHandler struct {
	Contacts repository.ContactStore
	Flags    repository.ConfigStore
	Publish  PublishFunc
	Prod     bool
}

// NewContactHandler constructs a ContactHandler. The contact store must
// be non-nil; flags and publish may be nil.
func NewContactHandler(contacts repository.ContactStore, flags repository.ConfigStore, publish PublishFunc, prod bool) *ContactHandler {
	if contacts == nil {
		panic("nil store passed to NewContactHandler")
	}
	return &ContactHandler{Contacts: contacts, Flags: flags, Publish: publish, Prod: prod}
}

// Create handles POST /api/contact.
func (h *ContactHandler) Create(c echo.Context) error {
	if h.flagEnabled(c, model.ConfigMessageDisable) {
		return respondError(c, http.StatusForbidden, "contact form is currently disabled")
	}
	var body struct {
		Name    string `json:"name"`
		Email   string `json:"email"`
		Subject string `json:"subject"`
		Message string `json:"message"`
	}
	if err := c.Bind(&body); err != nil {
		return respondError(c, http.StatusBadRequest, "invalid request body")
	}
	name, err := utils.SanitizeText(body.Name, maxContactField)
	if err != nil {
		return respondError(c, http.StatusBadRequest, "name contains disallowed content")
	}
	if !utils.ValidEmail(body.Email) {
		return respondError(c, http.StatusBadRequest, "invalid email address")
	}
	subject, err := utils.SanitizeText(body.Subject, maxContactField)
	if err != nil {
		return respondError(c, http.StatusBadRequest, "subject contains disallowed content")
	}
	message, err := utils.SanitizeText(body.Message, maxContactMessage)
	if err != nil {
		return respondError(c, http.StatusBadRequest, "message contains disallowed content")
	}

	stored, err := h.Contacts.Create(c.Request().Context(), name, body.Email, subject, message)
	if err != nil {
		return respondInternal(c, "failed to save message", err, !h.Prod)
	}

	if h.Publish != nil {
		event := queue.ContactMessageEvent{
			MessageID:  stored.ID,
			Name:       stored.Name,
			Email:      stored.Email,
			Subject:    stored.Subject,
			Message:    stored.Message,
			ReceivedAt: stored.CreatedAt.UTC().Format(time.RFC3339),
		}
		if err := h.Publish(c.Request().Context(), event); err != nil {
			log.Printf("contact: notification publish failed for message %d: %v", stored.ID, err)
		}
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success":   true,
		"message":   "message received",
		"id":        stored.ID,
		"timestamp": stored.CreatedAt.UTC().Format(time.RFC3339),
	})
}

// flagEnabled reads a Y/N feature flag; missing flags count as "N".
func (h *ContactHandler) flagEnabled(c echo.Context, key string) bool {
	if h.Flags == nil {
		return false
	}
	v, err := h.Flags.Get(c.Request().Context(), key)
	if err != nil {
		return false
	}
	return v == "Y"
}
