package main

// World owns every live agent. Agents are kept in a dense slice in spawn
// order; ids are never reused so a stale id simply fails the lookup.
type World struct {
	agents   []*Agent
	index    map[uint64]*Agent
	nextID   uint64
	playerID uint64
}

// NewWorld creates an empty world
func NewWorld() *World {
	return &World{
		index:  make(map[uint64]*Agent),
		nextID: 1,
	}
}

// Spawn inserts an agent, assigns it a fresh id and returns it
func (w *World) Spawn(a *Agent) *Agent {
	a.ID = w.nextID
	w.nextID++
	a.removed = false
	a.damaged = false
	w.agents = append(w.agents, a)
	w.index[a.ID] = a
	if a.Role == RolePlayer {
		w.playerID = a.ID
	}
	return a
}

// Get looks up an agent by id. Agents already swept are not found;
// agents marked for removal are still returned.
func (w *World) Get(id uint64) (*Agent, bool) {
	a, ok := w.index[id]
	return a, ok
}

// Player returns the player agent. The world must always hold one after
// setup; its absence is a programming error.
func (w *World) Player() *Agent {
	p, ok := w.index[w.playerID]
	if !ok || p.Role != RolePlayer {
		panic("world: player agent missing")
	}
	return p
}

// Agents returns the live slice; callers must not append to it
func (w *World) Agents() []*Agent {
	return w.agents
}

// Hostiles returns all hostile agents, including ones marked for removal
func (w *World) Hostiles() []*Agent {
	return w.byRole(RoleHostile)
}

// Projectiles returns all projectile agents, including ones marked for removal
func (w *World) Projectiles() []*Agent {
	return w.byRole(RoleProjectile)
}

func (w *World) byRole(r Role) []*Agent {
	var out []*Agent
	for _, a := range w.agents {
		if a.Role == r {
			out = append(out, a)
		}
	}
	return out
}

// Len returns the number of stored agents
func (w *World) Len() int {
	return len(w.agents)
}

// MarkForRemoval flags an agent and every agent attached to it. The agents
// stay queryable until Sweep.
func (w *World) MarkForRemoval(id uint64) {
	a, ok := w.index[id]
	if !ok || a.removed {
		return
	}
	a.removed = true
	for _, child := range w.agents {
		if child.Parent == id {
			w.MarkForRemoval(child.ID)
		}
	}
}

// Sweep drops every marked agent and returns how many were removed
func (w *World) Sweep() int {
	kept := w.agents[:0]
	removed := 0
	for _, a := range w.agents {
		if a.removed {
			delete(w.index, a.ID)
			removed++
			continue
		}
		kept = append(kept, a)
	}
	for i := len(kept); i < len(w.agents); i++ {
		w.agents[i] = nil
	}
	w.agents = kept
	return removed
}
