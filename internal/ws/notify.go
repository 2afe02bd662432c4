package ws

import (
	"encoding/json"
	"log"
	"time"

	"github.com/google/uuid"
)

const (
	EventScanMatched          = "scan_matched"
	EventHandshakePending     = "handshake_pending"
	EventHandshakeProgress    = "handshake_progress"
	EventConnectionConfirmed  = "connection_confirmed"
	EventConnectionRemoved    = "connection_removed"
	EventConnectionAppreciate = "connection_appreciated"
	EventConnectionsCleared   = "connections_cleared"
	EventProfileImported      = "profile_imported"
)

type Event struct {
	ID        string `json:"id"`
	Type      string `json:"type"`
	ViewerID  string `json:"viewer_id,omitempty"`
	Data      any    `json:"data,omitempty"`
	Timestamp string `json:"timestamp"`
}

// Notifier publishes domain events. Use cases depend on this rather than on
// the hub directly.
type Notifier interface {
	Notify(viewerID, eventType string, data any)
}

type HubNotifier struct {
	hub    *Hub
	logger *log.Logger
	now    func() time.Time
}

func NewHubNotifier(hub *Hub, logger *log.Logger) *HubNotifier {
	return &HubNotifier{hub: hub, logger: logger, now: time.Now}
}

func (n *HubNotifier) Notify(viewerID, eventType string, data any) {
	if n == nil || n.hub == nil {
		return
	}
	b, err := json.Marshal(Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		ViewerID:  viewerID,
		Data:      data,
		Timestamp: n.now().UTC().Format(time.RFC3339Nano),
	})
	if err != nil {
		if n.logger != nil {
			n.logger.Printf("WS event encode error | type=%s error=%v", eventType, err)
		}
		return
	}
	n.hub.Broadcast(viewerID, b)
}

type NopNotifier struct{}

func (NopNotifier) Notify(string, string, any) {}
