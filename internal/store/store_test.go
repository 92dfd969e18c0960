package store

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/studyhall-labs/studybuddy/internal/kv"
	"github.com/studyhall-labs/studybuddy/internal/message"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func mustMessage(t *testing.T, sender, receiver, content string, ts time.Time) message.Message {
	t.Helper()
	m, err := message.New(sender, receiver, content, ts)
	if err != nil {
		t.Fatalf("build message: %v", err)
	}
	return m
}

func TestReadAll_EmptyStore(t *testing.T) {
	l := NewLog(kv.NewMemory(), "user_self0001", testLogger())

	msgs, err := l.ReadAll(context.Background())
	if err != nil {
		t.Fatalf("ReadAll returned error: %v", err)
	}
	if len(msgs) != 0 {
		t.Errorf("expected empty log, got %d messages", len(msgs))
	}
}

func TestAppend_Monotonicity(t *testing.T) {
	ctx := context.Background()
	l := NewLog(kv.NewMemory(), "user_self0001", testLogger())
	base := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

	var appended []message.Message
	for i, content := range []string{"first", "second", "third"} {
		before, err := l.ReadAll(ctx)
		if err != nil {
			t.Fatalf("ReadAll before append: %v", err)
		}

		m := mustMessage(t, "user_self0001", "user_peer0001", content, base.Add(time.Duration(i)*time.Second))
		if err := l.Append(ctx, m); err != nil {
			t.Fatalf("Append returned error: %v", err)
		}
		appended = append(appended, m)

		after, err := l.ReadAll(ctx)
		if err != nil {
			t.Fatalf("ReadAll after append: %v", err)
		}
		want := append(append([]message.Message{}, before...), m)
		if !reflect.DeepEqual(after, want) {
			t.Errorf("append %d: log is not prior log plus new tail", i)
		}
	}

	final, _ := l.ReadAll(ctx)
	if !reflect.DeepEqual(final, appended) {
		t.Error("final log differs from insertion order")
	}
}

func TestAppend_RejectsInvalid(t *testing.T) {
	l := NewLog(kv.NewMemory(), "user_self0001", testLogger())

	m := message.Message{ID: 1, SenderID: "", ReceiverID: "b", Content: "x", Timestamp: time.Now(), Type: message.TypePrivate}
	if err := l.Append(context.Background(), m); err == nil {
		t.Error("expected validation error")
	}

	msgs, err := l.ReadAll(context.Background())
	if err != nil || len(msgs) != 0 {
		t.Errorf("rejected append must not write, got %d messages (err %v)", len(msgs), err)
	}
}

func TestAppend_MalformedLogFails(t *testing.T) {
	ctx := context.Background()
	mem := kv.NewMemory()
	if err := mem.Set(ctx, KeyMessages, `{"not":"an array"}`); err != nil {
		t.Fatal(err)
	}
	l := NewLog(mem, "user_self0001", testLogger())

	m := mustMessage(t, "user_self0001", "user_peer0001", "hi", time.Now())
	err := l.Append(ctx, m)
	if !errors.Is(err, ErrMalformedLog) {
		t.Errorf("expected ErrMalformedLog, got %v", err)
	}

	// The corrupt value must be left exactly as it was.
	raw, _, _ := mem.Get(ctx, KeyMessages)
	if raw != `{"not":"an array"}` {
		t.Errorf("malformed log was rewritten to %q", raw)
	}

	if _, err := l.ReadAll(ctx); !errors.Is(err, ErrMalformedLog) {
		t.Errorf("expected ReadAll to surface ErrMalformedLog, got %v", err)
	}
}

func TestConversationBetween_Symmetry(t *testing.T) {
	base := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	msgs := []message.Message{
		mustMessage(t, "A", "B", "hey", base),
		mustMessage(t, "B", "A", "hi yourself", base.Add(time.Second)),
		mustMessage(t, "A", "C", "unrelated", base.Add(2*time.Second)),
		mustMessage(t, "C", "B", "also unrelated", base.Add(3*time.Second)),
		mustMessage(t, "A", "B", "study at 7?", base.Add(4*time.Second)),
	}

	ab := ConversationBetween(msgs, "A", "B")
	ba := ConversationBetween(msgs, "B", "A")

	if !reflect.DeepEqual(ab, ba) {
		t.Error("conversation is not symmetric in its arguments")
	}
	if len(ab) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(ab))
	}
	for i := 1; i < len(ab); i++ {
		if ab[i].ID < ab[i-1].ID {
			t.Error("conversation order does not follow insertion order")
		}
	}
}

func TestConversationBetween_PreservesDuplicates(t *testing.T) {
	base := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	m := mustMessage(t, "A", "B", "same", base)
	msgs := []message.Message{m, m}

	got := ConversationBetween(msgs, "A", "B")
	if len(got) != 2 {
		t.Errorf("expected duplicates preserved, got %d messages", len(got))
	}
}

func TestConversation_ThroughStore(t *testing.T) {
	ctx := context.Background()
	mem := kv.NewMemory()
	self := NewLog(mem, "user_self0001", testLogger())
	peer := NewLog(mem, "user_peer0001", testLogger())
	base := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

	if err := self.Append(ctx, mustMessage(t, "user_self0001", "user_peer0001", "hello", base)); err != nil {
		t.Fatal(err)
	}
	if err := peer.Append(ctx, mustMessage(t, "user_peer0001", "user_self0001", "hello back", base.Add(time.Second))); err != nil {
		t.Fatal(err)
	}
	if err := self.Append(ctx, mustMessage(t, "user_self0001", "user_other001", "elsewhere", base.Add(2*time.Second))); err != nil {
		t.Fatal(err)
	}

	conv, err := self.Conversation(ctx, "user_peer0001")
	if err != nil {
		t.Fatalf("Conversation returned error: %v", err)
	}
	if len(conv) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(conv))
	}
	if conv[0].Content != "hello" || conv[1].Content != "hello back" {
		t.Errorf("unexpected conversation contents: %q, %q", conv[0].Content, conv[1].Content)
	}
}

func TestEnsureIdentity(t *testing.T) {
	ctx := context.Background()
	mem := kv.NewMemory()

	id, err := EnsureIdentity(ctx, mem)
	if err != nil {
		t.Fatalf("EnsureIdentity returned error: %v", err)
	}
	if !strings.HasPrefix(id, "user_") {
		t.Errorf("expected user_ prefix, got %q", id)
	}
	if len(id) != len("user_")+8 {
		t.Errorf("expected 8 random chars, got %q", id)
	}

	again, err := EnsureIdentity(ctx, mem)
	if err != nil {
		t.Fatalf("second EnsureIdentity returned error: %v", err)
	}
	if again != id {
		t.Errorf("identity changed between calls: %q then %q", id, again)
	}
}
