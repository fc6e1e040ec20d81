package auth

import (
	"context"
	"sync"
	"time"

	"eventstaff_backend/internal/logger"
	"eventstaff_backend/internal/messaging"
)

type SessionChangeKind string

const (
	SignedIn  SessionChangeKind = "signed_in"
	SignedOut SessionChangeKind = "signed_out"
)

type SessionChange struct {
	UserID    string            `json:"user_id"`
	SessionID string            `json:"session_id"`
	Kind      SessionChangeKind `json:"kind"`
	At        time.Time         `json:"at"`
}

// Notifier fans session changes out to in-process subscribers and to the
// auth.session_changed subject.
type Notifier struct {
	publisher messaging.Publisher

	mu     sync.RWMutex
	nextID int
	subs   map[int]chan SessionChange
}

func NewNotifier(publisher messaging.Publisher) *Notifier {
	if publisher == nil {
		publisher = messaging.NoopPublisher{}
	}
	return &Notifier{
		publisher: publisher,
		subs:      make(map[int]chan SessionChange),
	}
}

// Subscribe returns a buffered channel of changes and a cancel func that
// closes it. A subscriber that falls behind misses changes.
func (n *Notifier) Subscribe(buffer int) (<-chan SessionChange, func()) {
	ch := make(chan SessionChange, buffer)

	n.mu.Lock()
	id := n.nextID
	n.nextID++
	n.subs[id] = ch
	n.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			n.mu.Lock()
			delete(n.subs, id)
			n.mu.Unlock()
			close(ch)
		})
	}
	return ch, cancel
}

func (n *Notifier) Notify(ctx context.Context, change SessionChange) {
	n.mu.RLock()
	for _, ch := range n.subs {
		select {
		case ch <- change:
		default:
			logger.CtxWarn(ctx, "session subscriber is full, dropping change", "kind", change.Kind)
		}
	}
	n.mu.RUnlock()

	if err := n.publisher.Publish(ctx, messaging.SubjectSessionChanged, change); err != nil {
		logger.CtxWithError(ctx, "failed to publish session change", err, "kind", change.Kind)
	}
}

// Subscribers reports how many subscriptions are open.
func (n *Notifier) Subscribers() int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return len(n.subs)
}
