package store

import (
	"context"

	"github.com/studyhall-labs/studybuddy/internal/message"
)

// ConversationBetween selects the subsequence of msgs exchanged between a
// and b, preserving insertion order. Duplicates, if the log ever contains
// any, are preserved. The result is identical when a and b are swapped.
func ConversationBetween(msgs []message.Message, a, b string) []message.Message {
	var out []message.Message
	for _, m := range msgs {
		if (m.SenderID == a && m.ReceiverID == b) || (m.SenderID == b && m.ReceiverID == a) {
			out = append(out, m)
		}
	}
	return out
}

// Conversation reads the full log and returns the exchange between this
// participant and partnerID. Recomputed from scratch on every call; the
// log is small enough that a full scan is the simple, correct choice.
func (l *Log) Conversation(ctx context.Context, partnerID string) ([]message.Message, error) {
	msgs, err := l.ReadAll(ctx)
	if err != nil {
		return nil, err
	}
	return ConversationBetween(msgs, l.selfID, partnerID), nil
}
