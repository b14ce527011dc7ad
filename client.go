package main

import (
	"encoding/json"
	"log"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait         = 10 * time.Second
	pongWait          = 60 * time.Second
	pingPeriod        = (pongWait * 9) / 10
	maxMessageSize    = 4096
	sendBufSize       = 256
	maxMessagesPerSec = 120 // input arrives every client frame
	maxNameLen        = 16
)

// Client represents one WebSocket session
type Client struct {
	hub        *Hub
	conn       *websocket.Conn
	send       chan []byte
	playerID   string
	remoteAddr string
	msgCount   int
	msgResetAt time.Time
}

// NewClient creates a new Client
func NewClient(hub *Hub, conn *websocket.Conn, remoteAddr string) *Client {
	return &Client{
		hub:        hub,
		conn:       conn,
		send:       make(chan []byte, sendBufSize),
		remoteAddr: remoteAddr,
	}
}

// ReadPump reads messages from the WebSocket connection
func (c *Client) ReadPump() {
	defer func() {
		c.hub.TrackDisconnect(c.remoteAddr)
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("ws error: %v", err)
			}
			break
		}

		// Rate limiting
		now := time.Now()
		if now.After(c.msgResetAt) {
			c.msgCount = 0
			c.msgResetAt = now.Add(time.Second)
		}
		c.msgCount++
		if c.msgCount > maxMessagesPerSec {
			log.Printf("rate limit exceeded for %s, disconnecting", c.remoteAddr)
			break
		}

		c.handleMessage(message)
	}
}

// WritePump writes messages to the WebSocket connection
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			// 0xFF prefix marks a binary frame (see SendBinary)
			var err error
			if len(message) > 0 && message[0] == 0xFF {
				err = c.conn.WriteMessage(websocket.BinaryMessage, message[1:])
			} else {
				err = c.conn.WriteMessage(websocket.TextMessage, message)
			}
			if err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// SendJSON sends a JSON message to the client
func (c *Client) SendJSON(msg interface{}) {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("marshal error: %v", err)
		return
	}
	c.SendRaw(data)
}

// SendRaw sends pre-marshaled bytes as a text message to the client
func (c *Client) SendRaw(data []byte) {
	defer func() { recover() }()
	select {
	case c.send <- data:
	default:
		// Client too slow, drop message
	}
}

// SendBinary sends pre-marshaled bytes as a binary WebSocket message.
// Prefixes a 0xFF marker byte so WritePump can distinguish from text.
func (c *Client) SendBinary(data []byte) {
	defer func() { recover() }()
	msg := make([]byte, len(data)+1)
	msg[0] = 0xFF
	copy(msg[1:], data)
	select {
	case c.send <- msg:
	default:
	}
}

// handleMessage routes incoming messages (single-pass decode via InEnvelope).
// Malformed payloads are dropped; one session's garbage must never reach
// the simulation.
func (c *Client) handleMessage(raw []byte) {
	var env InEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return
	}

	switch env.T {
	case MsgJoin:
		c.handleJoin(env.D)
	case MsgJoinTeam:
		c.handleJoinTeam(env.D)
	case MsgStartMatch:
		c.hub.game.HandleStartMatch()
	case MsgInput:
		c.handleInput(env.D)
	case MsgShoot:
		if c.playerID != "" {
			c.hub.game.HandleShot(c.playerID)
		}
	case MsgChat:
		c.handleChat(env.D)
	case MsgLeave:
		c.handleLeave()
	case MsgReset:
		c.hub.game.HandleReset()
	}
}

func (c *Client) handleJoin(data json.RawMessage) {
	if c.playerID != "" {
		return // already in the arena
	}
	var msg JoinMsg
	if err := json.Unmarshal(data, &msg); err != nil {
		return
	}
	if len(msg.Name) > maxNameLen {
		msg.Name = msg.Name[:maxNameLen]
	}
	mode := msg.Mode
	if mode != "team" {
		mode = "solo"
	}

	player := c.hub.game.HandleJoin(msg.Name, mode)
	if player == nil {
		c.SendJSON(Envelope{T: MsgError, Data: ErrorMsg{Msg: "arena full"}})
		return
	}
	c.playerID = player.ID
	c.hub.game.SetClient(player.ID, c)

	c.SendJSON(Envelope{T: MsgWelcome, Data: WelcomeMsg{
		ID:      player.ID,
		Team:    string(player.Team),
		Color:   player.Color,
		InLobby: player.InLobby,
	}})
}

func (c *Client) handleJoinTeam(data json.RawMessage) {
	if c.playerID == "" {
		return
	}
	// Accept both a bare string and an object payload
	var team string
	if err := json.Unmarshal(data, &team); err != nil {
		var msg TeamPickMsg
		if err := json.Unmarshal(data, &msg); err != nil {
			return
		}
		team = msg.Team
	}
	c.hub.game.HandleJoinTeam(c.playerID, team)
}

func (c *Client) handleInput(data json.RawMessage) {
	if c.playerID == "" {
		return
	}
	var input InputMsg
	if err := json.Unmarshal(data, &input); err != nil {
		return
	}
	c.hub.game.HandleInput(c.playerID, input)
}

func (c *Client) handleChat(data json.RawMessage) {
	if c.playerID == "" {
		return
	}
	var text string
	if err := json.Unmarshal(data, &text); err != nil {
		var msg ChatMsg
		if err := json.Unmarshal(data, &msg); err != nil {
			return
		}
		text = msg.Text
	}
	c.hub.game.HandleChat(c.playerID, text)
}

func (c *Client) handleLeave() {
	if c.playerID != "" {
		c.hub.game.RemovePlayer(c.playerID)
		c.playerID = ""
	}
}
