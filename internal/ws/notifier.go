package ws

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	ucapp "jobboard/internal/usecase/application"
)

type statusEnvelope struct {
	Type      string            `json:"type"`
	Event     ucapp.StatusEvent `json:"event"`
	Timestamp string            `json:"timestamp"`
}

// Notifier bridges the application usecase to the hub.
type Notifier struct {
	hub *Hub
}

func NewNotifier(hub *Hub) *Notifier {
	return &Notifier{hub: hub}
}

func (n *Notifier) NotifySeeker(seekerID uuid.UUID, event ucapp.StatusEvent) {
	if n == nil || n.hub == nil {
		return
	}

	b, err := json.Marshal(statusEnvelope{
		Type:      "application_status",
		Event:     event,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return
	}
	n.hub.Send(seekerID, b)
}
