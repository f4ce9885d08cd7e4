package transport

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/xuliu-cyber/texas-poker/card"
	"github.com/xuliu-cyber/texas-poker/holdem"
	"github.com/xuliu-cyber/texas-poker/room"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin: func(r *http.Request) bool {
		return true // TODO: restrict once a real client origin is known
	},
}

const (
	pongWait   = 60 * time.Second
	pingPeriod = 30 * time.Second
	writeWait  = 10 * time.Second
)

// Connection is one WebSocket client, mirroring the teacher gateway's
// per-socket read/write pump split.
type Connection struct {
	ID      string
	SID     string
	Conn    *websocket.Conn
	Send    chan []byte
	Gateway *Gateway

	mu     sync.Mutex
	roomID string
	room   *room.Room
}

// Gateway upgrades incoming HTTP connections to WebSocket and routes
// client messages into the correct room.Room.
type Gateway struct {
	manager *Manager

	mu          sync.RWMutex
	connections map[string]*Connection
	byRoom      map[string]map[string]*Connection
}

// NewGateway wires a Gateway around an existing room Manager.
func NewGateway(m *Manager) *Gateway {
	return &Gateway{
		manager:     m,
		connections: make(map[string]*Connection),
		byRoom:      make(map[string]map[string]*Connection),
	}
}

// HandleWebSocket is the http.HandlerFunc to mount at the socket path.
func (g *Gateway) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[Gateway] upgrade error: %v", err)
		return
	}

	c := &Connection{
		ID:      uuid.NewString(),
		SID:     uuid.NewString(),
		Conn:    conn,
		Send:    make(chan []byte, 256),
		Gateway: g,
	}

	g.mu.Lock()
	g.connections[c.ID] = c
	g.mu.Unlock()

	log.Printf("[Gateway] client connected: conn=%s sid=%s", c.ID, c.SID)
	c.Send <- mustJSON(ServerMessage{Type: ServerWelcome})

	go c.writePump()
	go c.readPump()
}

func (c *Connection) readPump() {
	defer c.Gateway.removeConnection(c)
	defer c.Conn.Close()

	c.Conn.SetReadLimit(65536)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("[Gateway] read error on %s: %v", c.ID, err)
			}
			return
		}
		c.handleMessage(data)
	}
}

func (c *Connection) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *Connection) handleMessage(data []byte) {
	var msg ClientMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		c.sendError(errors.New("malformed message"), "")
		return
	}

	switch msg.Type {
	case ClientJoin:
		c.handleJoin(msg)
	case ClientBuyIn:
		c.handleBuyIn(msg)
	case ClientReady:
		c.handleReady(msg)
	case ClientStart:
		c.handleStart()
	case ClientAction:
		c.handleAction(msg)
	case ClientChat:
		c.handleChat(msg)
	case ClientLeave:
		c.handleLeave()
	default:
		c.sendError(errors.New("unknown message type"), string(holdem.UnknownAction))
	}
}

func (c *Connection) handleJoin(msg ClientMessage) {
	if msg.RoomID == "" {
		c.sendError(errors.New("roomId is required"), "")
		return
	}
	r, err := c.Gateway.manager.GetOrCreate(msg.RoomID)
	if err != nil {
		c.sendError(err, "")
		return
	}
	seat, err := r.Join(c.SID, msg.DisplayName, c.Gateway.manager.StartingBuyIn())
	if err != nil {
		c.sendError(err, "")
		return
	}

	c.mu.Lock()
	c.roomID = msg.RoomID
	c.room = r
	c.mu.Unlock()
	c.Gateway.attachToRoom(c, msg.RoomID)

	c.send(ServerMessage{Type: ServerWelcome, Seat: seat})
	c.Gateway.broadcastRoom(msg.RoomID, r)
}

func (c *Connection) handleBuyIn(msg ClientMessage) {
	r := c.activeRoom()
	if r == nil {
		c.sendError(errors.New("not in a room"), "")
		return
	}
	if err := r.BuyIn(c.SID, msg.Amount); err != nil {
		c.sendError(err, "")
		return
	}
	c.Gateway.broadcastRoom(c.roomIDLocked(), r)
}

func (c *Connection) handleReady(msg ClientMessage) {
	r := c.activeRoom()
	if r == nil {
		c.sendError(errors.New("not in a room"), "")
		return
	}
	if err := r.SetReady(c.SID, msg.Ready); err != nil {
		c.sendError(err, "")
		return
	}
	c.Gateway.broadcastRoom(c.roomIDLocked(), r)
}

func (c *Connection) handleStart() {
	r := c.activeRoom()
	if r == nil {
		c.sendError(errors.New("not in a room"), "")
		return
	}
	if err := r.StartHand(c.SID); err != nil {
		c.sendError(err, "")
		return
	}
	c.Gateway.broadcastRoom(c.roomIDLocked(), r)
}

func (c *Connection) handleAction(msg ClientMessage) {
	r := c.activeRoom()
	if r == nil {
		c.sendError(errors.New("not in a room"), "")
		return
	}
	kind, ok := holdem.ParseActionKind(msg.Action)
	if !ok {
		c.sendError(errors.New("unrecognized action"), string(holdem.UnknownAction))
		return
	}
	if _, err := r.Action(c.SID, holdem.Action{Kind: kind, Amount: msg.Amount}); err != nil {
		c.sendError(err, "")
		return
	}
	c.Gateway.broadcastRoom(c.roomIDLocked(), r)
}

func (c *Connection) handleChat(msg ClientMessage) {
	r := c.activeRoom()
	if r == nil {
		return
	}
	r.AddChat(c.SID, msg.Text)
	c.Gateway.broadcastRoom(c.roomIDLocked(), r)
}

func (c *Connection) handleLeave() {
	r := c.activeRoom()
	if r == nil {
		return
	}
	_ = r.Leave(c.SID)
	roomID := c.roomIDLocked()
	c.mu.Lock()
	c.room = nil
	c.roomID = ""
	c.mu.Unlock()
	c.Gateway.detachFromRoom(c, roomID)
	c.Gateway.broadcastRoom(roomID, r)
}

func (c *Connection) activeRoom() *room.Room {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.room
}

func (c *Connection) roomIDLocked() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.roomID
}

func (c *Connection) sendError(err error, kind string) {
	if he, ok := err.(*holdem.Error); ok {
		kind = string(he.Kind)
	}
	c.send(ServerMessage{Type: ServerError, Error: err.Error(), ErrorKind: kind})
}

func (c *Connection) send(msg ServerMessage) {
	select {
	case c.Send <- mustJSON(msg):
	default:
		log.Printf("[Gateway] dropping message to %s: send buffer full", c.ID)
	}
}

// sendState pushes the room's public view plus this connection's own
// hole cards and legal actions, the per-client slice of state the
// teacher's gateway builds per-user rather than broadcasting verbatim.
func (c *Connection) sendState(r *room.Room) {
	view := r.PublicState()
	msg := ServerMessage{Type: ServerState, State: &view.State, Logs: view.Logs, Chat: view.Chat}

	if priv, ok := r.PrivateState(c.SID); ok && len(priv.Hand) > 0 {
		msg.Hand = cardsToStrings(priv.Hand)
	}
	if seat, ok := r.SeatOf(c.SID); ok {
		if legal, minRaise, err := r.Table().LegalActions(seat); err == nil {
			msg.Legal = actionsToStrings(legal)
			msg.MinRaise = minRaise
		}
	}
	c.send(msg)
}

func (g *Gateway) attachToRoom(c *Connection, roomID string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.byRoom[roomID] == nil {
		g.byRoom[roomID] = make(map[string]*Connection)
	}
	g.byRoom[roomID][c.ID] = c
}

func (g *Gateway) detachFromRoom(c *Connection, roomID string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if conns, ok := g.byRoom[roomID]; ok {
		delete(conns, c.ID)
		if len(conns) == 0 {
			delete(g.byRoom, roomID)
		}
	}
}

// broadcastRoom pushes a fresh per-connection state snapshot to every
// socket currently attached to roomID.
func (g *Gateway) broadcastRoom(roomID string, r *room.Room) {
	if roomID == "" || r == nil {
		return
	}
	g.mu.RLock()
	conns := make([]*Connection, 0, len(g.byRoom[roomID]))
	for _, c := range g.byRoom[roomID] {
		conns = append(conns, c)
	}
	g.mu.RUnlock()

	for _, c := range conns {
		c.sendState(r)
	}
}

func (g *Gateway) removeConnection(c *Connection) {
	roomID := c.roomIDLocked()
	if r := c.activeRoom(); r != nil {
		_ = r.Leave(c.SID)
		g.detachFromRoom(c, roomID)
		g.broadcastRoom(roomID, r)
	}

	g.mu.Lock()
	delete(g.connections, c.ID)
	g.mu.Unlock()
	log.Printf("[Gateway] client disconnected: conn=%s sid=%s", c.ID, c.SID)
}

func cardsToStrings(cards []card.Card) []string {
	out := make([]string, len(cards))
	for i, cd := range cards {
		out[i] = cd.String()
	}
	return out
}

func actionsToStrings(kinds []holdem.ActionKind) []string {
	out := make([]string, len(kinds))
	for i, k := range kinds {
		out[i] = k.String()
	}
	return out
}
