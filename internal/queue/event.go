// Package queue defines message payloads exchanged over the message broker.
package queue

// ContactQueueName is the durable queue carrying contact-form events.
const ContactQueueName = "contact.message"

// ContactMessageEvent is published when a visitor submits the contact
// form. It carries the full message so the notification worker can
// compose the outbound email without querying the primary database.
type ContactMessageEvent struct {
	MessageID  uint64 `json:"message_id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Subject    string `json:"subject"`
	Message    string `json:"message"`
	ReceivedAt string `json:"received_at"`
}
