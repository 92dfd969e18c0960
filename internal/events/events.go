// Package events mirrors local happenings onto NATS for external
// observers (a second tab's refresh loop, dashboards). It carries no
// delivery guarantee and the service runs fully without it.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"
)

const (
	// SubjectAppended is published after a message lands in the log.
	SubjectAppended = "studybuddy.message.appended"
	// SubjectAnalyzed is published after an analysis run.
	SubjectAnalyzed = "studybuddy.analysis.completed"
)

// AppendedEvent notifies observers that the local log grew. It carries
// metadata only, never the message content.
type AppendedEvent struct {
	MessageID  int64  `json:"message_id"`
	SenderID   string `json:"sender_id"`
	ReceiverID string `json:"receiver_id"`
	Timestamp  string `json:"timestamp"`
}

// AnalyzedEvent summarizes an analysis run.
type AnalyzedEvent struct {
	FilterMode string `json:"filter_mode"`
	FocusScore int    `json:"focus_score"`
	Total      int    `json:"total"`
}

type Client struct {
	conn   *nats.Conn
	subs   []*nats.Subscription
	logger *slog.Logger
}

func NewClient(url, token string, logger *slog.Logger) (*Client, error) {
	opts := []nats.Option{
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(60),
		nats.ReconnectWait(2 * time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.Warn("nats disconnected", "error", err)
			}
		}),
		nats.ReconnectHandler(func(_ *nats.Conn) {
			logger.Info("nats reconnected")
		}),
	}
	if token != "" {
		opts = append(opts, nats.Token(token))
	}

	nc, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}

	return &Client{conn: nc, logger: logger}, nil
}

func (c *Client) Publish(subject string, data any) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}
	return c.conn.Publish(subject, payload)
}

func (c *Client) Subscribe(subject string, handler func(subject string, data []byte)) error {
	sub, err := c.conn.Subscribe(subject, func(msg *nats.Msg) {
		handler(msg.Subject, msg.Data)
	})
	if err != nil {
		return fmt.Errorf("subscribe %s: %w", subject, err)
	}
	c.subs = append(c.subs, sub)
	c.logger.Info("subscribed", "subject", subject)
	return nil
}

func (c *Client) Close() {
	for _, sub := range c.subs {
		_ = sub.Unsubscribe()
	}
	c.conn.Close()
}

// Announcer is the optional publishing surface used by the API layer.
// A nil *Client is a valid no-op announcer.
type Announcer interface {
	Publish(subject string, data any) error
}

// PublishAppended is a nil-safe helper for the append notification.
func PublishAppended(_ context.Context, a Announcer, ev AppendedEvent, logger *slog.Logger) {
	if a == nil {
		return
	}
	if err := a.Publish(SubjectAppended, ev); err != nil {
		logger.Warn("failed to publish append event", "error", err)
	}
}

// PublishAnalyzed is a nil-safe helper for the analysis notification.
func PublishAnalyzed(_ context.Context, a Announcer, ev AnalyzedEvent, logger *slog.Logger) {
	if a == nil {
		return
	}
	if err := a.Publish(SubjectAnalyzed, ev); err != nil {
		logger.Warn("failed to publish analysis event", "error", err)
	}
}
