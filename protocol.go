package main

import "encoding/json"

// Client -> Server message types
const (
	MsgJoin       = "join"
	MsgJoinTeam   = "joinTeam"
	MsgStartMatch = "startMatch"
	MsgInput      = "playerInput"
	MsgShoot      = "shoot"
	MsgChat       = "chat"
	MsgLeave      = "exitToHQ"
	MsgReset      = "resetRequest"
)

// Server -> Client message types
const (
	MsgState       = "stateUpdate"
	MsgWelcome     = "welcome"
	MsgEffect      = "effect"
	MsgKill        = "kill"
	MsgChatMessage = "chatMessage"
	MsgLobbyUpdate = "lobbyUpdate"
	MsgGameStarted = "gameStarted"
	MsgGameOver    = "gameOver"
	MsgGameReset   = "gameReset"
	MsgError       = "error"
)

// Envelope wraps all outgoing JSON messages with a type field
type Envelope struct {
	T    string      `json:"t"`
	Data interface{} `json:"d,omitempty"`
}

// InEnvelope is used for incoming messages — json.RawMessage avoids double-unmarshal
type InEnvelope struct {
	T string          `json:"t"`
	D json.RawMessage `json:"d,omitempty"`
}

// JoinMsg creates a player in solo or team mode
type JoinMsg struct {
	Name string `json:"name"`
	Mode string `json:"mode"` // "solo" or "team"
}

// InputMsg carries one movement intent. TargetAngle switches steering from
// discrete turning to angle-seeking when present.
type InputMsg struct {
	Up          bool     `json:"up"`
	Left        bool     `json:"left"`
	Right       bool     `json:"right"`
	Dash        bool     `json:"dash"`
	TargetAngle *float64 `json:"targetAngle,omitempty"`
}

// TeamPickMsg reassigns a queued player's team
type TeamPickMsg struct {
	Team string `json:"team"`
}

// ChatMsg is an inbound chat line
type ChatMsg struct {
	Text string `json:"text"`
}

// PlayerState is the per-player slice of the snapshot
type PlayerState struct {
	ID      string  `json:"id" msgpack:"id"`
	Name    string  `json:"n" msgpack:"n"`
	X       float64 `json:"x" msgpack:"x"`
	Y       float64 `json:"y" msgpack:"y"`
	Angle   float64 `json:"a" msgpack:"a"`
	HP      int     `json:"hp" msgpack:"hp"`
	MaxHP   int     `json:"mhp" msgpack:"mhp"`
	Team    string  `json:"t" msgpack:"t"`
	Score   int     `json:"sc" msgpack:"sc"`
	Color   string  `json:"c" msgpack:"c"`
	Weapon  int     `json:"w" msgpack:"w"`
	Ammo    int     `json:"am" msgpack:"am"`
	Dashing bool    `json:"d,omitempty" msgpack:"d"`
}

// ProjectileState is broadcast per live projectile
type ProjectileState struct {
	ID     string  `json:"id" msgpack:"id"`
	X      float64 `json:"x" msgpack:"x"`
	Y      float64 `json:"y" msgpack:"y"`
	Owner  string  `json:"o" msgpack:"o"`
	Weapon int     `json:"w" msgpack:"w"`
	Color  string  `json:"c" msgpack:"c"`
}

// PowerupState is broadcast per live powerup
type PowerupState struct {
	ID     string  `json:"id" msgpack:"id"`
	X      float64 `json:"x" msgpack:"x"`
	Y      float64 `json:"y" msgpack:"y"`
	Kind   int     `json:"k" msgpack:"k"`
	Weapon int     `json:"w,omitempty" msgpack:"w"`
}

// ObstacleState is broadcast per static obstacle
type ObstacleState struct {
	X      float64 `json:"x" msgpack:"x"`
	Y      float64 `json:"y" msgpack:"y"`
	Width  float64 `json:"w" msgpack:"w"`
	Height float64 `json:"h" msgpack:"h"`
}

// TeamKillsState carries the team kill counters
type TeamKillsState struct {
	Blue int `json:"blue" msgpack:"blue"`
	Red  int `json:"red" msgpack:"red"`
}

// Snapshot is the full state broadcast, sent once per tick as a binary
// msgpack frame. Lobby-queued players are excluded.
type Snapshot struct {
	Players     map[string]PlayerState `json:"players" msgpack:"players"`
	Projectiles []ProjectileState      `json:"projectiles" msgpack:"projectiles"`
	Powerups    []PowerupState         `json:"powerups" msgpack:"powerups"`
	Obstacles   []ObstacleState        `json:"obstacles" msgpack:"obstacles"`
	Timer       float64                `json:"timer" msgpack:"timer"`
	TeamKills   TeamKillsState         `json:"teamKills" msgpack:"teamKills"`
	Active      bool                   `json:"gameActive" msgpack:"gameActive"`
}

// WelcomeMsg is sent to a player right after a join is accepted
type WelcomeMsg struct {
	ID      string `json:"id"`
	Team    string `json:"team"`
	Color   string `json:"color"`
	InLobby bool   `json:"inLobby"`
}

// EffectMsg is a transient audio/visual cue
type EffectMsg struct {
	Type  string  `json:"type"` // shoot|hit|dash|powerup|explosion|die
	ID    string  `json:"id,omitempty"`
	X     float64 `json:"x,omitempty"`
	Y     float64 `json:"y,omitempty"`
	Color string  `json:"color,omitempty"`
}

// KillMsg is the kill-feed broadcast
type KillMsg struct {
	Killer      string `json:"killer"`
	Victim      string `json:"victim"`
	KillerColor string `json:"killerColor"`
	VictimColor string `json:"victimColor"`
}

// ChatMessage is the chat broadcast
type ChatMessage struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
	Text  string `json:"text"`
}

// LobbyPlayer is one row of the lobby roster
type LobbyPlayer struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Team  string `json:"team"`
	Color string `json:"color"`
}

// ErrorMsg sends an error to a client
type ErrorMsg struct {
	Msg string `json:"msg"`
}
