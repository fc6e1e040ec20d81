package messaging

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/nats-io/stan.go"

	"eventstaff_backend/internal/logger"
)

type Config struct {
	URL       string
	ClusterID string
	ClientID  string
}

// NATSPublisher publishes over NATS Streaming.
type NATSPublisher struct {
	conn stan.Conn
}

func NewNATSPublisher(cfg Config) (*NATSPublisher, error) {
	// Streaming rejects a second connection with the same client id, so each
	// process gets its own suffix.
	clientID := fmt.Sprintf("%s-%s", cfg.ClientID, uuid.NewString()[:8])

	conn, err := stan.Connect(cfg.ClusterID, clientID, stan.NatsURL(cfg.URL))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS Streaming: %w", err)
	}

	logger.Info("connected to NATS Streaming", "url", cfg.URL, "cluster", cfg.ClusterID, "client", clientID)
	return &NATSPublisher{conn: conn}, nil
}

func (p *NATSPublisher) Publish(ctx context.Context, subject string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	if err := p.conn.Publish(subject, data); err != nil {
		return fmt.Errorf("failed to publish to subject %s: %w", subject, err)
	}

	logger.CtxDebug(ctx, "published message", "subject", subject, "bytes", len(data))
	return nil
}

func (p *NATSPublisher) Close() error {
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
