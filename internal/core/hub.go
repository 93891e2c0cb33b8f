package core

import (
	"context"

	"github.com/rs/zerolog"
)

// envelope tags an inbound command with the client that issued it.
type envelope struct {
	client *Client
	cmd    *Command
}

// Hub routes client commands against the room registry. It is a single
// goroutine: every registry mutation and every broadcast enumeration runs
// on Run's goroutine, so membership changes and fanout never interleave.
type Hub struct {
	log      *zerolog.Logger
	registry *Registry

	inbox      chan envelope
	register   chan *Client
	unregister chan *Client
	done       chan struct{}

	clients map[*Client]struct{}
}

// NewHub creates a hub with an empty registry.
func NewHub(logger *zerolog.Logger) *Hub {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &Hub{
		log:        logger,
		registry:   NewRegistry(),
		inbox:      make(chan envelope),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		clients:    make(map[*Client]struct{}),
	}
}

// Run processes registrations and commands until ctx is cancelled.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case c := <-h.register:
			h.clients[c] = struct{}{}
			go h.pump(c)
		case c := <-h.unregister:
			h.handleDisconnect(c)
		case env := <-h.inbox:
			if _, registered := h.clients[env.client]; !registered {
				continue
			}
			h.dispatch(env.client, env.cmd)
		case <-ctx.Done():
			return
		}
	}
}

// RegisterClient hands a freshly accepted client to the hub.
func (h *Hub) RegisterClient(c *Client) {
	select {
	case h.register <- c:
	case <-h.done:
	}
}

// UnregisterClient runs the disconnect path for c. Safe to call more than
// once; repeated close signals from the transport are absorbed.
func (h *Hub) UnregisterClient(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

// pump forwards the client's command stream into the hub inbox.
func (h *Hub) pump(c *Client) {
	for {
		select {
		case cmd, ok := <-c.Commands:
			if !ok {
				return
			}
			select {
			case h.inbox <- envelope{client: c, cmd: cmd}:
			case <-c.done:
				return
			case <-h.done:
				return
			}
		case <-c.done:
			return
		case <-h.done:
			return
		}
	}
}

func (h *Hub) dispatch(c *Client, cmd *Command) {
	switch cmd.Kind {
	case CommandCreateRoom:
		h.handleCreate(c, cmd)
	case CommandJoinRoom:
		h.handleJoin(c, cmd)
	case CommandSendChat:
		h.handleChat(c, cmd)
	case CommandListUsers:
		h.handleListUsers(c)
	case CommandTyping:
		h.handleTyping(c, cmd)
	default:
		h.log.Debug().Int("kind", int(cmd.Kind)).Msg("unknown command dropped")
	}
}

func (h *Hub) handleCreate(c *Client, cmd *Command) {
	if cmd.Name == "" {
		return
	}
	// A fresh create while bound moves the client: leaving first keeps
	// the one-room-per-connection invariant.
	h.leaveCurrentRoom(c)

	code := h.registry.GenerateCode()
	if _, err := h.registry.CreateRoom(code, c); err != nil {
		h.log.Error().Err(err).Str("code", code).Msg("create room")
		return
	}
	c.Name = cmd.Name
	c.Room = code

	c.trySend(&Event{Kind: EventRoomCreated, Room: code})
	h.log.Info().Str("user", c.Name).Str("room", code).Msg("room created")
}

func (h *Hub) handleJoin(c *Client, cmd *Command) {
	if cmd.Name == "" {
		return
	}
	if h.registry.Lookup(cmd.Room) == nil {
		c.trySend(&Event{
			Kind:  EventError,
			Error: coreError(ErrCodeRoomNotFound, "Room doesn't exist"),
		})
		return
	}
	if c.Room == cmd.Room {
		// Already a member of this exact room.
		return
	}
	h.leaveCurrentRoom(c)

	room, err := h.registry.AddMember(cmd.Room, c)
	if err != nil {
		h.log.Error().Err(err).Str("room", cmd.Room).Msg("join room")
		return
	}
	c.Name = cmd.Name
	c.Room = cmd.Room

	c.trySend(&Event{Kind: EventJoined, Room: cmd.Room})
	room.BroadcastExcept(&Event{
		Kind: EventSystem,
		Room: cmd.Room,
		Text: c.Name + " joined the room",
	}, c)
	h.log.Info().Str("user", c.Name).Str("room", cmd.Room).Msg("user joined room")
}

func (h *Hub) handleChat(c *Client, cmd *Command) {
	room := h.boundRoom(c)
	if room == nil {
		return
	}
	room.Broadcast(&Event{
		Kind: EventChat,
		Room: room.Code,
		User: c.Name,
		Text: cmd.Text,
	})
}

func (h *Hub) handleListUsers(c *Client) {
	room := h.boundRoom(c)
	if room == nil {
		return
	}
	c.trySend(&Event{Kind: EventUsers, Room: room.Code, Users: room.Names()})
}

func (h *Hub) handleTyping(c *Client, cmd *Command) {
	room := h.boundRoom(c)
	if room == nil {
		return
	}
	room.BroadcastExcept(&Event{
		Kind:   EventTyping,
		Room:   room.Code,
		User:   c.Name,
		Active: cmd.Active,
	}, c)
}

// boundRoom resolves the client's current room, or nil when unbound.
// Commands that require a room are silent no-ops in that case.
func (h *Hub) boundRoom(c *Client) *Room {
	if c.Room == "" {
		return nil
	}
	return h.registry.Lookup(c.Room)
}

func (h *Hub) handleDisconnect(c *Client) {
	if _, registered := h.clients[c]; !registered {
		return
	}
	delete(h.clients, c)
	close(c.done)
	h.leaveCurrentRoom(c)
	close(c.Events)
	h.log.Info().Str("client_id", c.ID).Str("user", c.Name).Msg("client disconnected")
}

// leaveCurrentRoom removes the client from its room, notifies the
// remaining members once, and lets the registry reclaim the code if the
// room emptied. No-op for unbound clients.
func (h *Hub) leaveCurrentRoom(c *Client) {
	if c.Room == "" {
		return
	}
	code := c.Room
	c.Room = ""

	room := h.registry.RemoveMember(code, c)
	if room == nil || room.Empty() {
		if room != nil {
			h.log.Info().Str("room", code).Msg("room deleted")
		}
		return
	}
	room.Broadcast(&Event{
		Kind: EventSystem,
		Room: code,
		Text: c.Name + " left the room",
	})
}
