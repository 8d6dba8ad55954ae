package main

// SpawnVolley fires v from the attacker along dir and returns the spawned
// projectiles. Hostile shots are attached to their shooter and are removed
// with it.
func SpawnVolley(w *World, attacker *Agent, dir Vec2, v Volley) []*Agent {
	dirs := FanDirections(dir, v.Count, v.Spread)
	out := make([]*Agent, 0, len(dirs))
	for _, d := range dirs {
		p := NewProjectile(attacker.Pos, d, attacker.Team, attacker.ID, v)
		if attacker.Role == RoleHostile {
			p.Parent = attacker.ID
		}
		out = append(out, w.Spawn(p))
	}
	return out
}

// AttackResult is what the attack phase hands to collision resolution
type AttackResult struct {
	Strikes    []Strike
	SparkSpent bool
	SparkKind  HostileKind
	Fired      int // projectiles spawned this tick
}

// TriggerAttacks ticks every attack timer by dt and fires the ones that are
// Ready. The player goes first: on a fire press with a Ready timer it spends
// the front spark as a volley toward the aim point, or queues a punch when
// the queue is empty. Hostiles then attack according to their kind.
// Volleys spawn at once; melee attacks are returned as strikes.
func TriggerAttacks(w *World, in Input, sparks *Sparks, reach, dt float64) AttackResult {
	var res AttackResult

	player := w.Player()
	player.Attack.Tick(dt)
	for _, h := range w.Hostiles() {
		h.Attack.Tick(dt)
	}

	if in.Fire && player.Alive() && player.Attack.TryTrigger() {
		if kind, ok := sparks.Pop(); ok {
			dir := in.Aim.Sub(player.Pos).Normalize()
			if dir.IsZero() {
				dir = player.Facing
			}
			res.Fired += len(SpawnVolley(w, player, dir, kind.Def().Spark))
			res.SparkSpent = true
			res.SparkKind = kind
		} else {
			res.Strikes = append(res.Strikes, Strike{Attacker: player.ID, Kind: StrikePunch, Reach: reach})
		}
	}

	for _, h := range w.Hostiles() {
		if !h.Alive() || !h.Attack.TryTrigger() {
			continue
		}
		def := h.Kind.Def()
		switch def.Attack {
		case AttackContact:
			res.Strikes = append(res.Strikes, Strike{Attacker: h.ID, Kind: StrikeContact})
		case AttackShoot:
			res.Fired += len(SpawnVolley(w, h, h.Facing, def.Shot))
		}
	}
	return res
}
