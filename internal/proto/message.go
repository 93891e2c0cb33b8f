package proto

// Message type discriminators. Every frame is a flat JSON object with a
// string "type" field; there is no envelope and no versioning.
const (
	InboundTypeCreate   = "create"
	InboundTypeJoin     = "join"
	InboundTypeChat     = "chat"
	InboundTypeGetUsers = "get-users"
	InboundTypeTyping   = "typing"

	OutboundTypeRoomCreated = "room-created"
	OutboundTypeJoined      = "joined"
	OutboundTypeError       = "error"
	OutboundTypeSystem      = "system"
	OutboundTypeChat        = "chat"
	OutboundTypeUsers       = "users"
	OutboundTypeTyping      = "typing"
)

// Inbound is the union of fields a client frame can carry. Which fields
// matter depends on Type; extra fields are ignored.
type Inbound struct {
	Type     string `json:"type"`
	Username string `json:"username,omitempty"`
	RoomCode string `json:"roomCode,omitempty"`
	Message  string `json:"message,omitempty"`
	User     string `json:"user,omitempty"`
	Active   bool   `json:"active,omitempty"`
}

// RoomCreated confirms creation to the creator.
type RoomCreated struct {
	Type     string `json:"type"`
	RoomCode string `json:"roomCode"`
}

// Joined confirms a successful join to the joining client.
type Joined struct {
	Type     string `json:"type"`
	RoomCode string `json:"roomCode"`
}

// ErrorMessage surfaces a user-visible failure to the originating client.
type ErrorMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// System is a room-wide presence notice.
type System struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// Chat is a chat message fanned out to a room.
type Chat struct {
	Type    string `json:"type"`
	User    string `json:"user"`
	Message string `json:"message"`
}

// Users lists the display names of a room's members.
type Users struct {
	Type  string   `json:"type"`
	Users []string `json:"users"`
}

// Typing is a presence hint sent to the other members of a room.
// Active is always serialized so "stopped typing" round-trips.
type Typing struct {
	Type   string `json:"type"`
	User   string `json:"user"`
	Active bool   `json:"active"`
}
