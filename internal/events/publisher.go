// Package events delivers change notifications to the real-time push
// collaborator. The core only emits; fan-out to connected clients is the
// transport's problem.
package events

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/nats-io/nats.go"
)

// ChangeNotification is the wire payload emitted for every mutation.
type ChangeNotification struct {
	ProjectID string    `json:"projectId"`
	Entity    string    `json:"entity"`
	EntityID  string    `json:"entityId"`
	Op        string    `json:"op"`
	Actor     string    `json:"actor"`
	Timestamp time.Time `json:"timestamp"`
}

// Publisher emits change notifications as an observable side effect of
// mutations. Implementations must not block mutations on delivery failure.
type Publisher interface {
	Publish(n ChangeNotification) error
	Close()
}

// NatsPublisher publishes change notifications to NATS, one subject per
// project so clients subscribe to only the project they have open.
type NatsPublisher struct {
	nc *nats.Conn
}

// NewNatsPublisher connects to the NATS server at url.
func NewNatsPublisher(url string) (*NatsPublisher, error) {
	nc, err := nats.Connect(url,
		nats.Name("nomatrix"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS at %s: %w", url, err)
	}
	return &NatsPublisher{nc: nc}, nil
}

// Publish sends the notification to nom.project.<projectID>.
func (p *NatsPublisher) Publish(n ChangeNotification) error {
	data, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("failed to marshal change notification: %w", err)
	}

	subject := fmt.Sprintf("nom.project.%s", n.ProjectID)
	if err := p.nc.Publish(subject, data); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", subject, err)
	}
	return nil
}

// Close drains the connection.
func (p *NatsPublisher) Close() {
	if err := p.nc.Drain(); err != nil {
		log.Printf("Failed to drain NATS connection: %v", err)
	}
}

// NopPublisher discards notifications. Used when no push transport is
// configured; the change_events table still records every mutation.
type NopPublisher struct{}

func (NopPublisher) Publish(ChangeNotification) error { return nil }
func (NopPublisher) Close()                           {}
