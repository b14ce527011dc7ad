package main

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"
)

const (
	TickRate       = 60 // simulation ticks per second
	TickDuration   = time.Second / TickRate
	TickIntervalMs = 1000.0 / float64(TickRate)
)

const (
	maxProjectiles = 500
	maxPlayers     = 20
)

// Broadcaster delivers outbound messages to one session
type Broadcaster interface {
	SendJSON(msg interface{})
	SendBinary(data []byte)
}

// Game owns all live entity state for the arena and is its single writer:
// the tick goroutine and every event handler serialize on the same mutex,
// so no two mutations of the entity store ever run concurrently.
type Game struct {
	mu sync.Mutex

	worldW, worldH float64
	maxKills       int
	durationMs     float64

	players     map[string]*Player
	projectiles map[string]*Projectile
	powerups    map[string]*Powerup
	obstacles   []Obstacle
	clients     map[string]Broadcaster

	match MatchState
	tick  uint64
	nowMs float64 // game clock, advances with the tick

	running bool
	stop    chan struct{}

	analytics *Analytics

	// Broad-phase buffers, reused every tick
	grid     SpatialGrid
	targets  []*Player
	queryBuf []int
}

// NewGame creates the arena with a generated obstacle layout
func NewGame(cfg *Config, analytics *Analytics) *Game {
	g := &Game{
		worldW:      cfg.World.Width,
		worldH:      cfg.World.Height,
		maxKills:    cfg.Match.MaxKills,
		durationMs:  cfg.Match.DurationMs(),
		players:     make(map[string]*Player),
		projectiles: make(map[string]*Projectile),
		powerups:    make(map[string]*Powerup),
		clients:     make(map[string]Broadcaster),
		stop:        make(chan struct{}),
		analytics:   analytics,
	}
	g.obstacles = GenerateObstacles(cfg.World.ObstacleCount, g.worldW, g.worldH)
	g.match = NewMatchState(g.durationMs)
	return g
}

// Run starts the fixed-rate simulation loop
func (g *Game) Run() {
	g.mu.Lock()
	g.running = true
	g.mu.Unlock()

	ticker := time.NewTicker(TickDuration)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			g.update()
		case <-g.stop:
			return
		}
	}
}

// Stop terminates the simulation loop
func (g *Game) Stop() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.running {
		g.running = false
		close(g.stop)
	}
}

// HandleJoin creates a player. Team-mode joiners wait in the lobby queue
// until startMatch; solo pilots enter play immediately.
func (g *Game) HandleJoin(name, mode string) *Player {
	g.mu.Lock()
	defer g.mu.Unlock()

	if len(g.players) >= maxPlayers {
		return nil
	}

	team := TeamSolo
	if mode == "team" {
		team = AssignTeam(g.players)
	}
	p := NewPlayer(GenerateID(4), name, team, g.worldW, g.worldH)
	if team != TeamSolo {
		p.InLobby = true
		if g.activePlayerCount() == 0 {
			g.match.Phase = PhaseLobby
		}
	}
	g.players[p.ID] = p

	if p.InLobby {
		g.broadcastLobby()
	}
	if g.analytics != nil {
		g.analytics.Track(EvtJoin, p.Name, "")
	}
	log.Printf("player joined: %s (%s)", p.Name, p.Team)
	return p
}

// HandleJoinTeam reassigns a queued player's team
func (g *Game) HandleJoinTeam(playerID, team string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	p, ok := g.players[playerID]
	if !ok || !p.InLobby {
		return
	}
	switch Team(team) {
	case TeamBlue:
		p.Team = TeamBlue
		p.Color = ColorBlue
	case TeamRed:
		p.Team = TeamRed
		p.Color = ColorRed
	default:
		return
	}
	g.broadcastLobby()
}

// HandleStartMatch releases the lobby queue into play
func (g *Game) HandleStartMatch() {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.match.Phase != PhaseLobby {
		return
	}
	for _, p := range g.players {
		p.InLobby = false
		p.Score = 0
		p.Kills = 0
		p.Respawn(g.worldW, g.worldH)
	}
	g.projectiles = make(map[string]*Projectile)
	g.powerups = make(map[string]*Powerup)
	g.match = NewMatchState(g.durationMs)
	g.broadcastMsg(Envelope{T: MsgGameStarted})
	g.broadcastLobby()
	log.Printf("match started with %d players", len(g.players))
}

// HandleChat broadcasts a chat line, truncated to 100 characters
func (g *Game) HandleChat(playerID, text string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	p, ok := g.players[playerID]
	if !ok {
		return
	}
	if len(text) > 100 {
		text = text[:100]
	}
	g.broadcastMsg(Envelope{T: MsgChatMessage, Data: ChatMessage{
		ID:    p.ID,
		Name:  p.Name,
		Color: p.Color,
		Text:  text,
	}})
	if g.analytics != nil {
		g.analytics.Track(EvtChat, p.Name, "")
	}
}

// HandleReset returns the arena to a fresh match: scores and timers
// cleared, projectiles and powerups discarded, everyone respawned. Team
// players go back to the lobby queue; a solo-only arena restarts live.
func (g *Game) HandleReset() {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.projectiles = make(map[string]*Projectile)
	g.powerups = make(map[string]*Powerup)
	g.match = NewMatchState(g.durationMs)

	hasTeams := false
	for _, p := range g.players {
		p.Score = 0
		p.Kills = 0
		p.Respawn(g.worldW, g.worldH)
		if p.Team != TeamSolo {
			p.InLobby = true
			hasTeams = true
		}
	}
	if hasTeams {
		g.match.Phase = PhaseLobby
	}
	g.broadcastMsg(Envelope{T: MsgGameReset})
	if hasTeams {
		g.broadcastLobby()
	}
	log.Printf("match reset")
}

// RemovePlayer removes a player from the arena. Safe to call repeatedly;
// disconnect and an explicit leave both land here.
func (g *Game) RemovePlayer(id string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	p, ok := g.players[id]
	delete(g.players, id)
	delete(g.clients, id)
	if ok && p.InLobby {
		g.broadcastLobby()
	}
}

// SetClient associates a broadcaster with a player
func (g *Game) SetClient(playerID string, client Broadcaster) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.clients[playerID] = client
}

// PlayerCount returns the number of players, queued ones included
func (g *Game) PlayerCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.players)
}

// HasPlayer reports whether a player ID is live
func (g *Game) HasPlayer(id string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	_, ok := g.players[id]
	return ok
}

func (g *Game) activePlayerCount() int {
	n := 0
	for _, p := range g.players {
		if !p.InLobby {
			n++
		}
	}
	return n
}

// update runs one simulation tick
func (g *Game) update() {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.tick++
	g.nowMs += TickIntervalMs

	if g.match.Phase == PhasePlaying {
		for _, p := range g.players {
			if !p.InLobby {
				p.TickTimers(g.tick)
			}
		}
		g.stepProjectiles()
		g.stepClock()
		g.stepPowerups()
	}

	g.broadcastState()
}

// stepProjectiles advances every projectile and resolves terminations:
// boundary exit, obstacle hit, then the first player hit.
func (g *Game) stepProjectiles() {
	// Rebuild the broad-phase grid over live players
	g.targets = g.targets[:0]
	g.grid.Clear()
	for _, p := range g.players {
		if p.InLobby {
			continue
		}
		g.grid.Insert(p.X, p.Y, len(g.targets))
		g.targets = append(g.targets, p)
	}

	for id, proj := range g.projectiles {
		proj.Advance()

		if proj.OutOfBounds(g.worldW, g.worldH) {
			delete(g.projectiles, id)
			continue
		}

		if hitObstacle(g.obstacles, proj.X, proj.Y) {
			if proj.Explosive {
				g.explodeAt(proj.X, proj.Y, proj)
			} else {
				g.broadcastMsg(Envelope{T: MsgEffect, Data: EffectMsg{
					Type: "hit", X: round1(proj.X), Y: round1(proj.Y), Color: "#aaa",
				}})
			}
			delete(g.projectiles, id)
			continue
		}

		owner := g.players[proj.OwnerID] // nil when the shooter already left

		reach := ShipRadius + proj.HitRadius
		g.queryBuf = g.grid.QueryBuf(proj.X, proj.Y, reach, g.queryBuf[:0])
		for _, idx := range g.queryBuf {
			t := g.targets[idx]
			if t.ID == proj.OwnerID {
				continue
			}
			// Friendly fire is off; solo pilots are fair game for everyone
			if t.Team != TeamSolo && owner != nil && t.Team == owner.Team {
				continue
			}
			if !CheckCollision(proj.X, proj.Y, proj.HitRadius, t.X, t.Y, ShipRadius) {
				continue
			}

			if proj.Explosive {
				g.explodeAt(proj.X, proj.Y, proj)
			} else {
				g.broadcastMsg(Envelope{T: MsgEffect, Data: EffectMsg{
					Type: "hit", X: round1(proj.X), Y: round1(proj.Y), Color: t.Color,
				}})
				if t.ApplyDamage(proj.Damage) {
					g.resolveKill(owner, t)
				}
			}
			// A projectile hits at most one entity
			delete(g.projectiles, id)
			break
		}
	}
}

// ExplosionDamage computes area damage with linear falloff: full damage at
// the impact point, zero at and beyond radius*1.2.
func ExplosionDamage(base int, dist, radius float64) int {
	if radius <= 0 {
		return 0
	}
	dmg := float64(base) * (1 - dist/(radius*1.2))
	if dmg <= 0 {
		return 0
	}
	if dmg > float64(base) {
		dmg = float64(base)
	}
	return int(dmg + 0.5)
}

// explodeAt applies falloff damage to every player within the blast
// radius. Explosions do not discriminate: teammates and the shooter
// included.
func (g *Game) explodeAt(x, y float64, proj *Projectile) {
	g.broadcastMsg(Envelope{T: MsgEffect, Data: EffectMsg{
		Type: "explosion", X: round1(x), Y: round1(y), Color: proj.Color,
	}})

	owner := g.players[proj.OwnerID]
	for _, p := range g.players {
		if p.InLobby {
			continue
		}
		d := Distance(x, y, p.X, p.Y)
		if d >= proj.ExplosionRadius {
			continue
		}
		if p.ApplyDamage(ExplosionDamage(proj.Damage, d, proj.ExplosionRadius)) {
			g.resolveKill(owner, p)
		}
	}
}

// resolveKill credits the killer, advances team counters, evaluates the
// win condition, and respawns the victim within the same tick so a player
// is never broadcast at zero HP.
func (g *Game) resolveKill(killer *Player, victim *Player) {
	killerName := "Unknown"
	killerColor := ""
	if killer != nil && killer != victim {
		killer.Score += 10
		killer.Kills++
		killerName = killer.Name
		killerColor = killer.Color
		switch killer.Team {
		case TeamBlue:
			g.match.BlueKills++
		case TeamRed:
			g.match.RedKills++
		}
	}

	g.evaluateWin()

	victimName := victim.Name
	victimColor := victim.Color
	victim.Respawn(g.worldW, g.worldH)

	g.broadcastMsg(Envelope{T: MsgEffect, Data: EffectMsg{Type: "die", ID: victim.ID}})
	g.broadcastMsg(Envelope{T: MsgKill, Data: KillMsg{
		Killer:      killerName,
		Victim:      victimName,
		KillerColor: killerColor,
		VictimColor: victimColor,
	}})
	if g.analytics != nil {
		g.analytics.Track(EvtKill, killerName, victimName)
	}
}

// stepClock runs the match countdown and the time-expiry decision
func (g *Game) stepClock() {
	if g.match.Phase != PhasePlaying {
		return
	}
	g.match.RemainingMs -= TickIntervalMs
	if g.match.RemainingMs <= 0 {
		g.match.RemainingMs = 0
		g.endMatch(g.match.timeExpiryResult(g.players))
	}
}

// evaluateWin checks the kill limit. Runs after every kill; a decided
// match never re-fires gameOver.
func (g *Game) evaluateWin() {
	if g.match.Phase != PhasePlaying {
		return
	}
	if res := g.match.killLimitResult(g.players, g.maxKills); res != nil {
		g.endMatch(res)
	}
}

func (g *Game) endMatch(res *MatchResult) {
	if g.match.Phase != PhasePlaying {
		return
	}
	g.match.Phase = PhaseEnded
	g.match.RemainingMs = 0
	g.match.Result = res
	g.broadcastMsg(Envelope{T: MsgGameOver, Data: res})
	if g.analytics != nil {
		g.analytics.Track(EvtMatchEnd, res.Winner, res.Kind)
	}
	log.Printf("match over: %s (%s)", res.Winner, res.Kind)
}

// stepPowerups spawns and collects powerups
func (g *Game) stepPowerups() {
	if len(g.powerups) < PowerupCap && randFloat() < PowerupSpawnChance {
		pu := NewPowerup(g.worldW, g.worldH)
		g.powerups[pu.ID] = pu
	}

	for id, pu := range g.powerups {
		g.queryBuf = g.grid.QueryBuf(pu.X, pu.Y, ShipRadius+PowerupRadius, g.queryBuf[:0])
		for _, idx := range g.queryBuf {
			p := g.targets[idx]
			if !CheckCollision(pu.X, pu.Y, PowerupRadius, p.X, p.Y, ShipRadius) {
				continue
			}
			pu.Apply(p, g.tick)
			g.broadcastMsg(Envelope{T: MsgEffect, Data: EffectMsg{
				Type: "powerup", X: round1(pu.X), Y: round1(pu.Y),
			}})
			delete(g.powerups, id)
			break
		}
	}
}

// buildSnapshot serializes the entity store. Lobby-queued players are
// excluded; a player never appears with hp <= 0.
func (g *Game) buildSnapshot() Snapshot {
	snap := Snapshot{
		Players:     make(map[string]PlayerState, len(g.players)),
		Projectiles: make([]ProjectileState, 0, len(g.projectiles)),
		Powerups:    make([]PowerupState, 0, len(g.powerups)),
		Obstacles:   make([]ObstacleState, 0, len(g.obstacles)),
		Timer:       g.match.RemainingMs,
		TeamKills:   TeamKillsState{Blue: g.match.BlueKills, Red: g.match.RedKills},
		Active:      g.match.Phase == PhasePlaying,
	}
	for _, p := range g.players {
		if p.InLobby {
			continue
		}
		snap.Players[p.ID] = p.ToState()
	}
	for _, proj := range g.projectiles {
		snap.Projectiles = append(snap.Projectiles, proj.ToState())
	}
	for _, pu := range g.powerups {
		snap.Powerups = append(snap.Powerups, pu.ToState())
	}
	for _, o := range g.obstacles {
		snap.Obstacles = append(snap.Obstacles, ObstacleState{
			X: o.X, Y: o.Y, Width: o.Width, Height: o.Height,
		})
	}
	return snap
}

// broadcastState sends the per-tick snapshot to every session as a binary
// msgpack frame.
func (g *Game) broadcastState() {
	data, err := msgpack.Marshal(g.buildSnapshot())
	if err != nil {
		log.Printf("snapshot marshal error: %v", err)
		return
	}
	for _, client := range g.clients {
		client.SendBinary(data)
	}
}

// broadcastLobby sends the queued roster to every session
func (g *Game) broadcastLobby() {
	roster := make([]LobbyPlayer, 0, len(g.players))
	for _, p := range g.players {
		if !p.InLobby {
			continue
		}
		roster = append(roster, LobbyPlayer{
			ID:    p.ID,
			Name:  p.Name,
			Team:  string(p.Team),
			Color: p.Color,
		})
	}
	g.broadcastMsg(Envelope{T: MsgLobbyUpdate, Data: roster})
}

// broadcastMsg sends a JSON envelope to every session
func (g *Game) broadcastMsg(msg Envelope) {
	for _, client := range g.clients {
		client.SendJSON(msg)
	}
}

// DebugState returns a one-line summary for the admin surface
func (g *Game) DebugState() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return fmt.Sprintf("phase=%d players=%d projectiles=%d powerups=%d tick=%d",
		g.match.Phase, len(g.players), len(g.projectiles), len(g.powerups), g.tick)
}
