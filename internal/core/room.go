package core

import "sort"

// Room groups clients subscribed to the same room code.
type Room struct {
	Code    string
	clients map[*Client]struct{}
}

// NewRoom constructs a room with no clients.
func NewRoom(code string) *Room {
	return &Room{
		Code:    code,
		clients: make(map[*Client]struct{}),
	}
}

// AddClient inserts a client into the room. Returns true if newly added.
func (r *Room) AddClient(c *Client) bool {
	if _, exists := r.clients[c]; exists {
		return false
	}
	r.clients[c] = struct{}{}
	return true
}

// RemoveClient deletes a client from the room. Returns true if removed.
func (r *Room) RemoveClient(c *Client) bool {
	if _, exists := r.clients[c]; !exists {
		return false
	}
	delete(r.clients, c)
	return true
}

// Broadcast sends an event to all clients in the room.
func (r *Room) Broadcast(event *Event) {
	for client := range r.clients {
		client.trySend(event)
	}
}

// BroadcastExcept sends an event to all clients in the room except one.
func (r *Room) BroadcastExcept(event *Event, except *Client) {
	for client := range r.clients {
		if client == except {
			continue
		}
		client.trySend(event)
	}
}

// Names returns the display names of all members, sorted.
func (r *Room) Names() []string {
	names := make([]string, 0, len(r.clients))
	for client := range r.clients {
		names = append(names, client.Name)
	}
	sort.Strings(names)
	return names
}

// Size returns the number of clients in the room.
func (r *Room) Size() int {
	return len(r.clients)
}

// Empty returns true if no clients are in the room.
func (r *Room) Empty() bool {
	return len(r.clients) == 0
}
