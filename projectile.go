package main

import "math"

const projectileSpawnOffset = ShipRadius // spawn at the ship's nose

// Projectile is a live shot. It exists only between its creation and the
// first terminating event: world-boundary exit, obstacle hit, or player hit.
type Projectile struct {
	ID        string
	OwnerID   string
	X, Y      float64
	VX, VY    float64
	Damage    int
	HitRadius float64
	Weapon    WeaponKind
	Color     string

	Explosive       bool
	ExplosionRadius float64
}

// NewProjectile creates one shot along the given heading
func NewProjectile(owner *Player, angle float64, def WeaponDef) *Projectile {
	return &Projectile{
		ID:              GenerateID(3),
		OwnerID:         owner.ID,
		X:               owner.X + math.Cos(angle)*projectileSpawnOffset,
		Y:               owner.Y + math.Sin(angle)*projectileSpawnOffset,
		VX:              math.Cos(angle) * def.Speed,
		VY:              math.Sin(angle) * def.Speed,
		Damage:          def.Damage,
		HitRadius:       def.HitRadius,
		Weapon:          owner.Weapon,
		Color:           owner.Color,
		Explosive:       def.Explosive,
		ExplosionRadius: def.ExplosionRadius,
	}
}

// Advance integrates one tick of motion
func (p *Projectile) Advance() {
	p.X += p.VX
	p.Y += p.VY
}

// OutOfBounds reports whether the projectile has left the world
func (p *Projectile) OutOfBounds(worldW, worldH float64) bool {
	return p.X < 0 || p.X > worldW || p.Y < 0 || p.Y > worldH
}

// ToState converts to the protocol snapshot form
func (p *Projectile) ToState() ProjectileState {
	return ProjectileState{
		ID:     p.ID,
		X:      round1(p.X),
		Y:      round1(p.Y),
		Owner:  p.OwnerID,
		Weapon: int(p.Weapon),
		Color:  p.Color,
	}
}
