package queue

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/payflex/banking-system/internal/core/ports"
)

type recordingMailer struct {
	sent chan ports.Email
	err  error
}

func (m *recordingMailer) Send(_ context.Context, msg ports.Email) error {
	m.sent <- msg
	return m.err
}

func TestDispatcher_DeliversEnqueuedMail(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mailer := &recordingMailer{sent: make(chan ports.Email, 8)}
	d := NewDispatcher(2, mailer, zerolog.Nop())
	d.Start(ctx)

	d.Enqueue(ports.Email{To: "ada@example.com", Kind: ports.EmailOTP, Subject: "code"})
	d.Enqueue(ports.Email{To: "bob@example.com", Kind: ports.EmailWelcome, Subject: "welcome"})

	got := map[string]ports.Email{}
	for i := 0; i < 2; i++ {
		select {
		case msg := <-mailer.sent:
			got[msg.To] = msg
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for delivery, got %d of 2", i)
		}
	}
	if got["ada@example.com"].Kind != ports.EmailOTP {
		t.Fatalf("unexpected delivery: %+v", got["ada@example.com"])
	}
	if got["bob@example.com"].Kind != ports.EmailWelcome {
		t.Fatalf("unexpected delivery: %+v", got["bob@example.com"])
	}
}

func TestDispatcher_KeepsWorkingAfterSendFailure(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mailer := &recordingMailer{sent: make(chan ports.Email, 8), err: errors.New("smtp down")}
	d := NewDispatcher(1, mailer, zerolog.Nop())
	d.Start(ctx)

	d.Enqueue(ports.Email{To: "ada@example.com", Kind: ports.EmailOTP})
	d.Enqueue(ports.Email{To: "ada@example.com", Kind: ports.EmailWelcome})

	// A failed send must not kill the worker; the second message still arrives.
	for i := 0; i < 2; i++ {
		select {
		case <-mailer.sent:
		case <-time.After(2 * time.Second):
			t.Fatalf("worker stopped after failure, got %d of 2", i)
		}
	}
}

func TestDispatcher_SameRecipientSameWorker(t *testing.T) {
	d := NewDispatcher(4, &recordingMailer{sent: make(chan ports.Email, 1)}, zerolog.Nop())

	first := d.shardIndex("ada@example.com")
	for i := 0; i < 10; i++ {
		if d.shardIndex("ada@example.com") != first {
			t.Fatalf("shard index must be stable per recipient")
		}
	}
}
