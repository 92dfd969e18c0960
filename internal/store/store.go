// Package store owns the append-only message log. The log is one JSON
// array persisted under a single key; every append rewrites the whole
// collection. That is O(n) per append, acceptable because the log is a
// single participant's chat history.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/studyhall-labs/studybuddy/internal/kv"
	"github.com/studyhall-labs/studybuddy/internal/message"
)

const (
	// KeyMessages holds the serialized message log.
	KeyMessages = "studybuddy/messages"
	// KeyIdentity holds the generated participant identity.
	KeyIdentity = "studybuddy/identity"
)

// ErrMalformedLog reports a persisted collection that is not a JSON array
// of messages. The log is left untouched; there is no auto-repair.
var ErrMalformedLog = errors.New("persisted message log is malformed")

// Log is the message store for one participant. selfID is injected at
// construction and never read from ambient state.
type Log struct {
	kv     kv.Store
	selfID string
	logger *slog.Logger
}

func NewLog(store kv.Store, selfID string, logger *slog.Logger) *Log {
	return &Log{kv: store, selfID: selfID, logger: logger}
}

// SelfID returns the participant identity this log was constructed with.
func (l *Log) SelfID() string {
	return l.selfID
}

// Append validates msg and appends it to the persisted log. If the
// persisted collection cannot be parsed the append fails and the error is
// surfaced to the caller; nothing is written.
func (l *Log) Append(ctx context.Context, msg message.Message) error {
	if err := msg.Validate(); err != nil {
		return err
	}

	err := kv.Update(ctx, l.kv, KeyMessages, func(current string, found bool) (string, error) {
		msgs, err := decodeLog(current, found)
		if err != nil {
			return "", err
		}
		msgs = append(msgs, msg)
		data, err := json.Marshal(msgs)
		if err != nil {
			return "", fmt.Errorf("encode log: %w", err)
		}
		return string(data), nil
	})
	if err != nil {
		return fmt.Errorf("append message: %w", err)
	}

	l.logger.Debug("message appended", "id", msg.ID, "receiver", msg.ReceiverID)
	return nil
}

// ReadAll returns the full log in insertion order. A log that has never
// been written is empty, not an error.
func (l *Log) ReadAll(ctx context.Context) ([]message.Message, error) {
	current, found, err := l.kv.Get(ctx, KeyMessages)
	if err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}
	return decodeLog(current, found)
}

func decodeLog(raw string, found bool) ([]message.Message, error) {
	if !found || raw == "" {
		return nil, nil
	}
	var msgs []message.Message
	if err := json.Unmarshal([]byte(raw), &msgs); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedLog, err)
	}
	return msgs, nil
}
