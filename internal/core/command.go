package core

// CommandKind describes what the client wants to do.
type CommandKind int

const (
	// CommandCreateRoom allocates a fresh room with the client as its first member.
	CommandCreateRoom CommandKind = iota
	// CommandJoinRoom subscribes the client to an existing room by code.
	CommandJoinRoom
	// CommandSendChat delivers a chat message to the client's room.
	CommandSendChat
	// CommandListUsers asks for the display names of the client's room members.
	CommandListUsers
	// CommandTyping broadcasts a typing hint to the other room members.
	CommandTyping
)

// Command represents an action requested by a client.
type Command struct {
	Kind   CommandKind
	Room   string // room code, for CommandJoinRoom
	Name   string // display name, for create/join
	Text   string // chat text, for CommandSendChat
	Active bool   // typing flag, for CommandTyping
}
