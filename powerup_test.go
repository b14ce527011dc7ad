package main

import "testing"

func TestApplyHealthCapped(t *testing.T) {
	p := NewPlayer("aaaa", "T", TeamSolo, 2000, 2000)
	p.HP = 40
	pu := &Powerup{Kind: PowerupHealth}
	pu.Apply(p, 100)
	if p.HP != 90 {
		t.Errorf("HP = %d, want 90", p.HP)
	}
	pu.Apply(p, 101)
	if p.HP != PlayerMaxHP {
		t.Errorf("HP = %d, heal must cap at max", p.HP)
	}
}

func TestApplySpeedExpires(t *testing.T) {
	p := NewPlayer("aaaa", "T", TeamSolo, 2000, 2000)
	pu := &Powerup{Kind: PowerupSpeed}
	pu.Apply(p, 100)

	if p.SpeedMult != PowerupSpeedMult {
		t.Fatalf("speed mult = %f", p.SpeedMult)
	}
	p.TickTimers(100 + PowerupEffectTicks - 1)
	if p.SpeedMult != PowerupSpeedMult {
		t.Error("boost expired one tick early")
	}
	p.TickTimers(100 + PowerupEffectTicks)
	if p.SpeedMult != 1 {
		t.Error("boost should expire after its window")
	}
}

func TestApplyRapidExpires(t *testing.T) {
	p := NewPlayer("aaaa", "T", TeamSolo, 2000, 2000)
	pu := &Powerup{Kind: PowerupRapid}
	pu.Apply(p, 50)

	if p.FireRateMult != PowerupRapidMult {
		t.Fatalf("fire rate mult = %f", p.FireRateMult)
	}
	p.TickTimers(50 + PowerupEffectTicks)
	if p.FireRateMult != 1 {
		t.Error("rapid fire should expire after its window")
	}
}

func TestApplyWeaponSeedsAmmo(t *testing.T) {
	p := NewPlayer("aaaa", "T", TeamSolo, 2000, 2000)
	pu := &Powerup{Kind: PowerupWeapon, Weapon: WeaponShotgun}
	pu.Apply(p, 100)

	if p.Weapon != WeaponShotgun {
		t.Errorf("weapon = %d, want shotgun", p.Weapon)
	}
	if p.Ammo != Weapons[WeaponShotgun].Ammo {
		t.Errorf("ammo = %d, want %d", p.Ammo, Weapons[WeaponShotgun].Ammo)
	}
}

func TestPickupCollectedByOverlappingPlayer(t *testing.T) {
	g := newTestGame()
	p := addPlayer(g, "aaaa", TeamSolo, 500, 500)
	p.HP = 40
	g.powerups["pu1"] = &Powerup{ID: "pu1", X: 505, Y: 500, Kind: PowerupHealth}

	g.update()

	if _, ok := g.powerups["pu1"]; ok {
		t.Error("powerup should be removed on pickup")
	}
	if p.HP != 90 {
		t.Errorf("HP = %d, want 90 after health pickup", p.HP)
	}
}

func TestPickupIgnoredOutOfRange(t *testing.T) {
	g := newTestGame()
	p := addPlayer(g, "aaaa", TeamSolo, 500, 500)
	p.HP = 40
	g.powerups["pu1"] = &Powerup{ID: "pu1", X: 600, Y: 600, Kind: PowerupHealth}

	g.update()

	if _, ok := g.powerups["pu1"]; !ok {
		t.Error("powerup collected without overlap")
	}
	if p.HP != 40 {
		t.Errorf("HP changed without pickup: %d", p.HP)
	}
}

func TestSpawnRespectsCap(t *testing.T) {
	g := newTestGame()
	for i := 0; i < PowerupCap; i++ {
		id := GenerateID(4)
		g.powerups[id] = &Powerup{ID: id, X: 1900, Y: 1900, Kind: PowerupHealth}
	}

	for i := 0; i < 200; i++ {
		g.update()
	}
	if len(g.powerups) != PowerupCap {
		t.Errorf("powerups = %d, cap is %d", len(g.powerups), PowerupCap)
	}
}

func TestNewPowerupInBounds(t *testing.T) {
	for i := 0; i < 50; i++ {
		pu := NewPowerup(2000, 2000)
		if pu.X < 0 || pu.X > 2000 || pu.Y < 0 || pu.Y > 2000 {
			t.Fatalf("spawn out of bounds: (%f, %f)", pu.X, pu.Y)
		}
		if pu.Kind < 0 || int(pu.Kind) >= PowerupKindCount {
			t.Fatalf("invalid kind %d", pu.Kind)
		}
		if pu.Kind == PowerupWeapon && pu.Weapon == WeaponDefault {
			t.Fatal("weapon powerup should never grant the default weapon")
		}
	}
}
