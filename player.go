package main

import "fmt"

const (
	ShipRadius  = 20.0
	PlayerMaxHP = 100
	PlayerSpeed = 4.0 // pixels per tick

	TurnRate     = 0.1  // radians per tick, discrete left/right
	SeekTurnRate = 0.15 // radians per tick, angle-seeking steering

	DashMult          = 3.0
	DashDurationTicks = 10
	DashCooldownTicks = 60
)

// Team identifies which side a player fights for
type Team string

const (
	TeamSolo Team = "solo"
	TeamBlue Team = "blue"
	TeamRed  Team = "red"
)

const (
	ColorBlue = "#00f3ff"
	ColorRed  = "#ff0055"
)

// Player is a connected pilot's ship
type Player struct {
	ID    string
	Name  string
	X, Y  float64
	Angle float64 // heading, wrapped to [0, 2*PI)
	HP    int
	MaxHP int
	Team  Team
	Score int
	Kills int
	Color string

	// Transient modifiers, reverted by the tick when their expiry passes
	SpeedMult      float64
	FireRateMult   float64
	SpeedExpiresAt uint64 // tick number, 0 = not active
	RapidExpiresAt uint64
	DashDuration   int // ticks of active boost remaining
	DashCooldown   int // ticks until dash is available again

	Weapon     WeaponKind
	Ammo       int // remaining shots, ignored for the default weapon
	InLobby    bool
	LastShotMs float64 // game-clock timestamp of last accepted shot
}

// NewPlayer creates a player at a random in-bounds position with the
// starting loadout.
func NewPlayer(id, name string, team Team, worldW, worldH float64) *Player {
	if name == "" {
		name = "OP-" + id[:4]
	}
	color := ""
	switch team {
	case TeamBlue:
		color = ColorBlue
	case TeamRed:
		color = ColorRed
	default:
		color = fmt.Sprintf("hsl(%d, 100%%, 50%%)", int(randFloat()*360))
	}
	return &Player{
		ID:           id,
		Name:         name,
		X:            ShipRadius + randFloat()*(worldW-2*ShipRadius),
		Y:            ShipRadius + randFloat()*(worldH-2*ShipRadius),
		HP:           PlayerMaxHP,
		MaxHP:        PlayerMaxHP,
		Team:         team,
		Color:        color,
		SpeedMult:    1,
		FireRateMult: 1,
		Weapon:       WeaponDefault,
		LastShotMs:   -1e9,
	}
}

// ApplyDamage reduces HP, clamped to [0, MaxHP], and returns true on death
func (p *Player) ApplyDamage(dmg int) bool {
	if dmg <= 0 {
		return false
	}
	p.HP -= dmg
	if p.HP <= 0 {
		p.HP = 0
		return true
	}
	return false
}

// Heal restores HP capped at MaxHP
func (p *Player) Heal(amount int) {
	p.HP += amount
	if p.HP > p.MaxHP {
		p.HP = p.MaxHP
	}
}

// Respawn resets the player in-place after a kill or a match reset:
// new random position, full health, default loadout.
func (p *Player) Respawn(worldW, worldH float64) {
	p.X = ShipRadius + randFloat()*(worldW-2*ShipRadius)
	p.Y = ShipRadius + randFloat()*(worldH-2*ShipRadius)
	p.HP = p.MaxHP
	p.Weapon = WeaponDefault
	p.Ammo = 0
	p.SpeedMult = 1
	p.FireRateMult = 1
	p.SpeedExpiresAt = 0
	p.RapidExpiresAt = 0
	p.DashDuration = 0
	p.DashCooldown = 0
}

// TickTimers advances the player's per-tick counters and clears expired
// modifiers. Runs once per simulation tick regardless of input.
func (p *Player) TickTimers(tick uint64) {
	if p.DashDuration > 0 {
		p.DashDuration--
	}
	if p.DashCooldown > 0 {
		p.DashCooldown--
	}
	if p.SpeedExpiresAt != 0 && tick >= p.SpeedExpiresAt {
		p.SpeedMult = 1
		p.SpeedExpiresAt = 0
	}
	if p.RapidExpiresAt != 0 && tick >= p.RapidExpiresAt {
		p.FireRateMult = 1
		p.RapidExpiresAt = 0
	}
}

// EffectiveSpeed returns the per-tick movement delta magnitude
func (p *Player) EffectiveSpeed() float64 {
	speed := PlayerSpeed * p.SpeedMult
	if p.DashDuration > 0 {
		speed *= DashMult
	}
	return speed
}

// ToState converts to the protocol snapshot form
func (p *Player) ToState() PlayerState {
	return PlayerState{
		ID:      p.ID,
		Name:    p.Name,
		X:       round1(p.X),
		Y:       round1(p.Y),
		Angle:   round1(p.Angle),
		HP:      p.HP,
		MaxHP:   p.MaxHP,
		Team:    string(p.Team),
		Score:   p.Score,
		Color:   p.Color,
		Weapon:  int(p.Weapon),
		Ammo:    p.Ammo,
		Dashing: p.DashDuration > 0,
	}
}
