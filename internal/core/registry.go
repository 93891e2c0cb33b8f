package core

import (
	"crypto/rand"
	"fmt"
)

const (
	codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	codeLength   = 4
)

// Registry owns the process-wide mapping from room code to live room.
// It carries no lock: all access goes through the hub goroutine, which
// serializes membership mutation and broadcast enumeration.
type Registry struct {
	rooms map[string]*Room
}

// NewRegistry constructs an empty registry.
func NewRegistry() *Registry {
	return &Registry{rooms: make(map[string]*Room)}
}

// GenerateCode returns a 4-character uppercase alphanumeric code that no
// live room currently uses. Collisions are regenerated, never reused.
func (reg *Registry) GenerateCode() string {
	for {
		code := randomCode()
		if _, live := reg.rooms[code]; !live {
			return code
		}
	}
}

func randomCode() string {
	buf := make([]byte, codeLength)
	// rand.Read never fails on supported platforms; crypto/rand panics
	// internally on broken entropy sources.
	_, _ = rand.Read(buf)
	for i, b := range buf {
		buf[i] = codeAlphabet[int(b)%len(codeAlphabet)]
	}
	return string(buf)
}

// CreateRoom registers a new room under code with its first member.
func (reg *Registry) CreateRoom(code string, first *Client) (*Room, error) {
	if _, live := reg.rooms[code]; live {
		return nil, fmt.Errorf("create room %s: %w", code, ErrRoomExists)
	}
	room := NewRoom(code)
	room.AddClient(first)
	reg.rooms[code] = room
	return room, nil
}

// Lookup returns the live room for code, or nil when there is none.
func (reg *Registry) Lookup(code string) *Room {
	return reg.rooms[code]
}

// AddMember adds a client to the room registered under code.
func (reg *Registry) AddMember(code string, c *Client) (*Room, error) {
	room, live := reg.rooms[code]
	if !live {
		return nil, fmt.Errorf("join room %s: %w", code, ErrRoomNotFound)
	}
	room.AddClient(c)
	return room, nil
}

// RemoveMember removes a client from the room registered under code and
// deletes the room entry the moment its member set becomes empty. Repeated
// removal of the same member, or removal from a dead code, is a no-op.
func (reg *Registry) RemoveMember(code string, c *Client) *Room {
	room, live := reg.rooms[code]
	if !live {
		return nil
	}
	if !room.RemoveClient(c) {
		return nil
	}
	if room.Empty() {
		delete(reg.rooms, code)
	}
	return room
}

// Len returns the number of live rooms.
func (reg *Registry) Len() int {
	return len(reg.rooms)
}
