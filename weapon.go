package main

// WeaponKind identifies a weapon in the catalog
type WeaponKind int

const (
	WeaponDefault WeaponKind = 0
	WeaponSniper  WeaponKind = 1
	WeaponShotgun WeaponKind = 2
	WeaponMissile WeaponKind = 3
)

// WeaponDef holds the static stats for a weapon kind
type WeaponDef struct {
	Name            string
	FireDelayMs     float64 // minimum time between shots
	Damage          int
	Speed           float64 // pixels per tick
	HitRadius       float64
	Ammo            int     // shots granted on pickup, 0 = unlimited
	Count           int     // projectiles per shot
	Spread          float64 // fan angle in radians (shotgun)
	Explosive       bool
	ExplosionRadius float64
}

var Weapons = [4]WeaponDef{
	// Default blaster: unlimited ammo, the weapon everyone falls back to
	{
		Name: "blaster", FireDelayMs: 200, Damage: 10, Speed: 12,
		HitRadius: 4, Ammo: 0, Count: 1,
	},
	// Sniper: slow, long reach, hits hard
	{
		Name: "sniper", FireDelayMs: 800, Damage: 50, Speed: 20,
		HitRadius: 3, Ammo: 5, Count: 1,
	},
	// Shotgun: fan of pellets
	{
		Name: "shotgun", FireDelayMs: 600, Damage: 6, Speed: 11,
		HitRadius: 4, Ammo: 8, Count: 5, Spread: 0.5,
	},
	// Missile: slow explosive with area falloff
	{
		Name: "missile", FireDelayMs: 1000, Damage: 40, Speed: 8,
		HitRadius: 6, Ammo: 3, Count: 1,
		Explosive: true, ExplosionRadius: 120,
	},
}

// GetWeaponDef returns the definition for a weapon kind
func GetWeaponDef(kind WeaponKind) WeaponDef {
	if kind < 0 || int(kind) >= len(Weapons) {
		return Weapons[WeaponDefault]
	}
	return Weapons[kind]
}

// PickupWeapons lists the kinds a weapon powerup can grant
var PickupWeapons = []WeaponKind{WeaponSniper, WeaponShotgun, WeaponMissile}

// PowerupKind identifies a powerup effect
type PowerupKind int

const (
	PowerupHealth PowerupKind = 0
	PowerupSpeed  PowerupKind = 1
	PowerupRapid  PowerupKind = 2
	PowerupWeapon PowerupKind = 3
)

const (
	PowerupKindCount   = 4
	PowerupHealAmount  = 50
	PowerupSpeedMult   = 2.0
	PowerupRapidMult   = 3.0
	PowerupEffectTicks = 5 * TickRate // speed/rapid revert after 5s
)
