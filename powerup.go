package main

const (
	PowerupRadius      = 15.0
	PowerupCap         = 5     // max live powerups in the arena
	PowerupSpawnChance = 0.005 // per-tick spawn probability below the cap
)

// Powerup is a floating pickup. It never expires on its own; it is removed
// when the first player within pickup radius collects it.
type Powerup struct {
	ID     string
	X, Y   float64
	Kind   PowerupKind
	Weapon WeaponKind // only meaningful for PowerupWeapon
}

// NewPowerup spawns a powerup of uniformly random kind at a random
// in-bounds position.
func NewPowerup(worldW, worldH float64) *Powerup {
	pu := &Powerup{
		ID:   GenerateID(4),
		X:    randFloat() * worldW,
		Y:    randFloat() * worldH,
		Kind: PowerupKind(int(randFloat() * PowerupKindCount)),
	}
	if pu.Kind == PowerupWeapon {
		pu.Weapon = PickupWeapons[int(randFloat()*float64(len(PickupWeapons)))]
	}
	return pu
}

// Apply grants the powerup's effect to the player. Timed multipliers are
// recorded as tick-counted expiries cleared by Player.TickTimers, never as
// out-of-band timers.
func (pu *Powerup) Apply(p *Player, tick uint64) {
	switch pu.Kind {
	case PowerupHealth:
		p.Heal(PowerupHealAmount)
	case PowerupSpeed:
		p.SpeedMult = PowerupSpeedMult
		p.SpeedExpiresAt = tick + PowerupEffectTicks
	case PowerupRapid:
		p.FireRateMult = PowerupRapidMult
		p.RapidExpiresAt = tick + PowerupEffectTicks
	case PowerupWeapon:
		def := GetWeaponDef(pu.Weapon)
		p.Weapon = pu.Weapon
		p.Ammo = def.Ammo
	}
}

// ToState converts to the protocol snapshot form
func (pu *Powerup) ToState() PowerupState {
	return PowerupState{
		ID:     pu.ID,
		X:      round1(pu.X),
		Y:      round1(pu.Y),
		Kind:   int(pu.Kind),
		Weapon: int(pu.Weapon),
	}
}
