package realtime

import (
	"github.com/rs/zerolog/log"
)

// Hub maintains the set of connected clients and pushes lifecycle events to
// them. Each client is subscribed to exactly one user channel (its own), so a
// broadcast for a user reaches every session that user has open.
type Hub struct {
	clients map[*Client]bool

	// Register requests from the clients.
	Register chan *Client

	// Unregister requests from clients.
	Unregister chan *Client

	// Outbound messages targeted at one user's sessions.
	send chan targeted

	// A map of user IDs to the set of clients signed in as that user.
	subscriptions map[int64]map[*Client]bool
}

type targeted struct {
	userID  int64
	payload []byte
}

// NewHub creates a new Hub.
func NewHub() *Hub {
	return &Hub{
		Register:      make(chan *Client),
		Unregister:    make(chan *Client),
		send:          make(chan targeted, 64),
		clients:       make(map[*Client]bool),
		subscriptions: make(map[int64]map[*Client]bool),
	}
}

// Run starts the Hub's message processing loop.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.clients[client] = true
			h.addSubscription(client)
			log.Info().Int("total_clients", len(h.clients)).Int64("user_id", client.UserID).Msg("Realtime client connected")
		case client := <-h.Unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
				h.removeSubscription(client)
				log.Info().Int("total_clients", len(h.clients)).Msg("Realtime client disconnected")
			}
		case msg := <-h.send:
			for client := range h.subscriptions[msg.userID] {
				select {
				case client.Send <- msg.payload:
				default:
					close(client.Send)
					delete(h.clients, client)
					h.removeSubscription(client)
				}
			}
		}
	}
}

// NotifyUser queues a message for every open session of the given user. It
// never blocks the caller; if the hub's queue is full the message is dropped.
func (h *Hub) NotifyUser(userID int64, payload []byte) {
	select {
	case h.send <- targeted{userID: userID, payload: payload}:
	default:
		log.Warn().Int64("user_id", userID).Msg("Realtime queue full, dropping message")
	}
}

func (h *Hub) addSubscription(client *Client) {
	if h.subscriptions[client.UserID] == nil {
		h.subscriptions[client.UserID] = make(map[*Client]bool)
	}
	h.subscriptions[client.UserID][client] = true
}

func (h *Hub) removeSubscription(client *Client) {
	if subs, ok := h.subscriptions[client.UserID]; ok {
		delete(subs, client)
		if len(subs) == 0 {
			delete(h.subscriptions, client.UserID)
		}
	}
}
