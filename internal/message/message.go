package message

import (
	"fmt"
	"strings"
	"time"
)

// TypePrivate is the only message type the log accepts today. The field is
// kept on the wire so future group/broadcast types don't need a migration.
const TypePrivate = "private"

// Message is a single chat message. Once appended to the log it is never
// mutated or removed.
type Message struct {
	ID         int64     `json:"id"`
	SenderID   string    `json:"sender_id"`
	ReceiverID string    `json:"receiver_id"`
	Content    string    `json:"content"`
	Timestamp  time.Time `json:"timestamp"`
	Type       string    `json:"type"`
}

// New builds a validated message stamped with now. The ID is the creation
// time in milliseconds, which keeps IDs monotonically non-decreasing in
// insertion order without a counter.
func New(senderID, receiverID, content string, now time.Time) (Message, error) {
	content = strings.TrimSpace(content)

	m := Message{
		ID:         now.UnixMilli(),
		SenderID:   senderID,
		ReceiverID: receiverID,
		Content:    content,
		Timestamp:  now,
		Type:       TypePrivate,
	}
	if err := m.Validate(); err != nil {
		return Message{}, err
	}
	return m, nil
}

// Validate checks the invariants a message must hold before it may enter
// the log.
func (m Message) Validate() error {
	if m.SenderID == "" {
		return fmt.Errorf("message: empty sender id")
	}
	if m.ReceiverID == "" {
		return fmt.Errorf("message: empty receiver id")
	}
	if strings.TrimSpace(m.Content) == "" {
		return fmt.Errorf("message: empty content")
	}
	if m.Type != TypePrivate {
		return fmt.Errorf("message: unsupported type %q", m.Type)
	}
	return nil
}
