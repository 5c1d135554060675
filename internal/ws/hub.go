package ws

import (
	"log"
	"sync"

	"github.com/google/uuid"
)

// Hub tracks one set of clients per account id. Application status events are
// delivered only to the connections of the seeker they concern.
type Hub struct {
	clients    map[uuid.UUID]map[*Client]bool
	register   chan *Client
	unregister chan *Client
	direct     chan directMessage
	mutex      sync.RWMutex
	logger     *log.Logger
}

type directMessage struct {
	accountID uuid.UUID
	payload   []byte
}

func NewHub(logger *log.Logger) *Hub {
	return &Hub{
		clients:    make(map[uuid.UUID]map[*Client]bool),
		register:   make(chan *Client, 128),
		unregister: make(chan *Client, 128),
		direct:     make(chan directMessage, 1024),
		logger:     logger,
	}
}

func (h *Hub) Register(c *Client) {
	if h == nil || c == nil {
		return
	}
	h.register <- c
}

func (h *Hub) Unregister(c *Client) {
	if h == nil || c == nil {
		return
	}
	h.unregister <- c
}

// Send queues a payload for every open connection of the account. Dropped
// silently when the account has no connections.
func (h *Hub) Send(accountID uuid.UUID, payload []byte) {
	if h == nil || accountID == uuid.Nil || len(payload) == 0 {
		return
	}
	h.direct <- directMessage{accountID: accountID, payload: payload}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			if client == nil {
				continue
			}
			h.mutex.Lock()
			set, ok := h.clients[client.accountID]
			if !ok {
				set = make(map[*Client]bool)
				h.clients[client.accountID] = set
			}
			set[client] = true
			total := len(set)
			h.mutex.Unlock()
			if h.logger != nil {
				h.logger.Printf("WS connected | account=%s connections=%d", client.accountID, total)
			}

		case client := <-h.unregister:
			h.drop(client)

		case msg := <-h.direct:
			h.mutex.RLock()
			snapshot := make([]*Client, 0, len(h.clients[msg.accountID]))
			for c := range h.clients[msg.accountID] {
				snapshot = append(snapshot, c)
			}
			h.mutex.RUnlock()

			for _, client := range snapshot {
				select {
				case client.send <- msg.payload:
				default:
					// A full buffer means the reader is gone or stuck. Drop
					// inline; re-queueing on h.unregister could block the hub
					// on its own channel.
					h.drop(client)
				}
			}
		}
	}
}

func (h *Hub) drop(client *Client) {
	if client == nil {
		return
	}
	h.mutex.Lock()
	if set, ok := h.clients[client.accountID]; ok {
		if _, present := set[client]; present {
			delete(set, client)
			close(client.send)
		}
		if len(set) == 0 {
			delete(h.clients, client.accountID)
		}
	}
	h.mutex.Unlock()
	if h.logger != nil {
		h.logger.Printf("WS disconnected | account=%s", client.accountID)
	}
}
