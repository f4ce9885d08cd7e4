// Package transport is the WebSocket gateway sitting in front of one or
// more room.Room instances. It owns connection lifecycle and wire framing
// only; every rule about what a message is allowed to do lives in holdem
// and room.
package transport

import (
	"encoding/json"
	"time"

	"github.com/xuliu-cyber/texas-poker/holdem"
	"github.com/xuliu-cyber/texas-poker/room"
)

// ClientMessage is the envelope a connected client sends. Type selects
// which of the optional fields are meaningful; unused fields are
// omitted on the wire (spec.md §1 excludes a binary/protobuf codec, so
// this module uses encoding/json throughout instead of hand-authoring
// the generated bindings the teacher's protobuf schema would need).
type ClientMessage struct {
	Type        string `json:"type"`
	RoomID      string `json:"roomId,omitempty"`
	DisplayName string `json:"displayName,omitempty"`
	Ready       bool   `json:"ready,omitempty"`
	Amount      int64  `json:"amount,omitempty"`
	Action      string `json:"action,omitempty"`
	Text        string `json:"text,omitempty"`
}

const (
	ClientJoin   = "join"
	ClientBuyIn  = "buyIn"
	ClientReady  = "ready"
	ClientStart  = "start"
	ClientAction = "action"
	ClientChat   = "chat"
	ClientLeave  = "leave"
)

// ServerMessage is the envelope pushed down to a connected client.
type ServerMessage struct {
	Type      string              `json:"type"`
	Seat      holdem.Seat         `json:"seat,omitempty"`
	State     *holdem.PublicState `json:"state,omitempty"`
	Logs      []room.LogEntry     `json:"logs,omitempty"`
	Chat      []room.ChatMessage  `json:"chat,omitempty"`
	Hand      []string            `json:"hand,omitempty"`
	Legal     []string            `json:"legal,omitempty"`
	MinRaise  int64               `json:"minRaise,omitempty"`
	Error     string              `json:"error,omitempty"`
	ErrorKind string              `json:"errorKind,omitempty"`
	At        time.Time           `json:"at,omitempty"`
}

const (
	ServerWelcome = "welcome"
	ServerState   = "state"
	ServerError   = "error"
)

func mustJSON(v any) []byte {
	b, err := json.Marshal(v)
	if err != nil {
		// A ServerMessage/ClientMessage is always JSON-marshalable; a
		// failure here means a programming error, not a runtime one.
		panic(err)
	}
	return b
}
