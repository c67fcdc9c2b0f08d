package model

import "time"

// ContactMessage is one row of the contact_messages table.  Messages
// are stored before the notification event is published so a broker
// outage never loses the message itself.
//
// Fields:
//  ID        – contact_messages.id.
//  Name      – contact_messages.name, sender's display name.
//  Email     – contact_messages.email, reply address.
//  Subject   – contact_messages.subject.
//  Message   – contact_messages.message, body text.
//  CreatedAt – contact_messages.created_at.
type ContactMessage struct {
	ID        uint64    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}
