package messaging

import (
	"context"
	"sync"
)

// Subjects published by the marketplace.
const (
	SubjectEventPosted          = "events.posted"
	SubjectApplicationSubmitted = "applications.submitted"
	SubjectAttendanceCheckedIn  = "attendance.checked_in"
	SubjectAttendanceCheckedOut = "attendance.checked_out"
	SubjectPaymentOverdue       = "attendance.payment_overdue"
	SubjectSessionChanged       = "auth.session_changed"
)

// Publisher sends a JSON-encoded domain event to a subject.
type Publisher interface {
	Publish(ctx context.Context, subject string, payload interface{}) error
	Close() error
}

// NoopPublisher drops everything. Used when NATS is not configured.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, string, interface{}) error { return nil }
func (NoopPublisher) Close() error                                       { return nil }

// Message is one publish captured by MemoryPublisher.
type Message struct {
	Subject string
	Payload interface{}
}

// MemoryPublisher records publishes in order.
type MemoryPublisher struct {
	mu       sync.Mutex
	messages []Message
}

func NewMemoryPublisher() *MemoryPublisher {
	return &MemoryPublisher{}
}

func (p *MemoryPublisher) Publish(_ context.Context, subject string, payload interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.messages = append(p.messages, Message{Subject: subject, Payload: payload})
	return nil
}

func (p *MemoryPublisher) Close() error { return nil }

// Subjects returns every subject published so far, oldest first.
func (p *MemoryPublisher) Subjects() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.messages))
	for _, m := range p.messages {
		out = append(out, m.Subject)
	}
	return out
}

// Messages returns a copy of the captured messages.
func (p *MemoryPublisher) Messages() []Message {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]Message(nil), p.messages...)
}
