package core

// EventKind is a notification the core emits to clients.
type EventKind int

const (
	// EventRoomCreated confirms room creation to the creator.
	EventRoomCreated EventKind = iota
	// EventJoined confirms a successful join to the joining client.
	EventJoined
	// EventSystem carries a room-wide presence notice.
	EventSystem
	// EventChat carries a chat message from a room member.
	EventChat
	// EventUsers delivers the member name list of a room.
	EventUsers
	// EventTyping carries a typing hint from another member.
	EventTyping
	// EventError notifies the client about a domain error.
	EventError
)

// Event is sent to clients to describe what happened in the system.
type Event struct {
	Kind   EventKind
	Room   string
	User   string
	Text   string     // chat text or system/error message
	Users  []string   // for EventUsers
	Active bool       // for EventTyping
	Error  *CoreError // for EventError
}
