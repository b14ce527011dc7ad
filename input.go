package main

import "math"

// HandleInput applies one movement intent to a player. Stale player IDs,
// lobby-queued players, and out-of-phase input are silent no-ops.
func (g *Game) HandleInput(playerID string, in InputMsg) {
	g.mu.Lock()
	defer g.mu.Unlock()

	p, ok := g.players[playerID]
	if !ok || p.InLobby || g.match.Phase != PhasePlaying {
		return
	}

	// Steering: angle-seeking when a target is supplied, discrete otherwise
	if in.TargetAngle != nil {
		diff := NormalizeAngle(*in.TargetAngle - p.Angle)
		if diff > SeekTurnRate {
			diff = SeekTurnRate
		} else if diff < -SeekTurnRate {
			diff = -SeekTurnRate
		}
		p.Angle = WrapAngle(p.Angle + diff)
	} else {
		if in.Left {
			p.Angle = WrapAngle(p.Angle - TurnRate)
		}
		if in.Right {
			p.Angle = WrapAngle(p.Angle + TurnRate)
		}
	}

	// Dash: short speed burst behind a cooldown. The counters themselves
	// only tick down inside the simulation tick.
	if in.Dash && p.DashCooldown <= 0 {
		p.DashDuration = DashDurationTicks
		p.DashCooldown = DashCooldownTicks
		g.broadcastMsg(Envelope{T: MsgEffect, Data: EffectMsg{Type: "dash", ID: p.ID}})
	}

	if in.Up {
		speed := p.EffectiveSpeed()
		nx := p.X + math.Cos(p.Angle)*speed
		ny := p.Y + math.Sin(p.Angle)*speed
		// The whole delta is rejected if the destination sits inside an
		// obstacle; no partial sliding.
		if !hitObstacle(g.obstacles, nx, ny) {
			p.X = nx
			p.Y = ny
		}
	}

	p.X = Clamp(p.X, ShipRadius, g.worldW-ShipRadius)
	p.Y = Clamp(p.Y, ShipRadius, g.worldH-ShipRadius)
}

// HandleShot fires the player's current weapon. Shots inside the weapon's
// fire delay are dropped without feedback; the client resends on its own
// cadence.
func (g *Game) HandleShot(playerID string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	p, ok := g.players[playerID]
	if !ok || p.InLobby || g.match.Phase != PhasePlaying {
		return
	}

	def := GetWeaponDef(p.Weapon)
	delay := def.FireDelayMs / p.FireRateMult
	if g.nowMs-p.LastShotMs < delay {
		return
	}
	p.LastShotMs = g.nowMs

	if p.Weapon != WeaponDefault {
		p.Ammo--
	}

	count := def.Count
	if count < 1 {
		count = 1
	}
	for i := 0; i < count; i++ {
		if len(g.projectiles) >= maxProjectiles {
			break
		}
		angle := p.Angle
		if def.Spread > 0 {
			angle += (randFloat() - 0.5) * def.Spread
		}
		proj := NewProjectile(p, angle, def)
		g.projectiles[proj.ID] = proj
	}

	// Out of ammo: fall back to the unlimited default weapon
	if p.Weapon != WeaponDefault && p.Ammo <= 0 {
		p.Weapon = WeaponDefault
		p.Ammo = 0
	}

	g.broadcastMsg(Envelope{T: MsgEffect, Data: EffectMsg{Type: "shoot", ID: p.ID}})
}
