package main

import "testing"

func newTestWorld() (*World, *Agent) {
	w := NewWorld()
	p := w.Spawn(NewPlayer(DefaultPlayerDef()))
	return w, p
}

func TestWorldSpawnAssignsIDs(t *testing.T) {
	w, p := newTestWorld()
	h1 := w.Spawn(NewHostile(KindBasic, V(100, 0)))
	h2 := w.Spawn(NewHostile(KindRanged, V(-100, 0)))

	if p.ID == 0 || h1.ID <= p.ID || h2.ID <= h1.ID {
		t.Errorf("ids should be increasing and non-zero: %d %d %d", p.ID, h1.ID, h2.ID)
	}
	if w.Player() != p {
		t.Error("Player() should return the spawned player")
	}
	if got, ok := w.Get(h2.ID); !ok || got != h2 {
		t.Error("Get should find a live agent")
	}
	if len(w.Hostiles()) != 2 {
		t.Errorf("expected 2 hostiles, got %d", len(w.Hostiles()))
	}
	if w.Len() != 3 {
		t.Errorf("expected 3 agents, got %d", w.Len())
	}
}

func TestWorldRemovalIsDeferred(t *testing.T) {
	w, _ := newTestWorld()
	h := w.Spawn(NewHostile(KindBasic, V(100, 0)))

	w.MarkForRemoval(h.ID)
	if got, ok := w.Get(h.ID); !ok || got != h {
		t.Fatal("marked agent should stay queryable until Sweep")
	}
	if h.Interactable() || h.Alive() {
		t.Error("marked agent should be neither interactable nor alive")
	}

	if n := w.Sweep(); n != 1 {
		t.Errorf("expected 1 removed, got %d", n)
	}
	if _, ok := w.Get(h.ID); ok {
		t.Error("swept agent should not be found")
	}
	if len(w.Hostiles()) != 0 {
		t.Error("swept agent should not be listed")
	}
}

func TestWorldIDsNeverReused(t *testing.T) {
	w, _ := newTestWorld()
	h := w.Spawn(NewHostile(KindBasic, V(100, 0)))
	old := h.ID
	w.MarkForRemoval(old)
	w.Sweep()

	h2 := w.Spawn(NewHostile(KindBasic, V(100, 0)))
	if h2.ID == old {
		t.Error("id of a swept agent was reused")
	}
	if _, ok := w.Get(old); ok {
		t.Error("stale id should not resolve")
	}
}

func TestWorldCascadingRemoval(t *testing.T) {
	w, _ := newTestWorld()
	h := w.Spawn(NewHostile(KindSpreader, V(100, 0)))
	child := NewHostile(KindBasic, V(110, 0))
	child.Parent = h.ID
	child = w.Spawn(child)
	grandchild := NewHostile(KindBasic, V(120, 0))
	grandchild.Parent = child.ID
	grandchild = w.Spawn(grandchild)
	other := w.Spawn(NewHostile(KindBasic, V(-100, 0)))

	w.MarkForRemoval(h.ID)
	if !child.Removed() || !grandchild.Removed() {
		t.Error("attached agents should be marked with their parent")
	}
	if other.Removed() {
		t.Error("unrelated agent should not be marked")
	}
	if n := w.Sweep(); n != 3 {
		t.Errorf("expected 3 removed, got %d", n)
	}
}

func TestWorldMarkUnknownID(t *testing.T) {
	w, _ := newTestWorld()
	w.MarkForRemoval(999)
	if n := w.Sweep(); n != 0 {
		t.Errorf("unknown id should remove nothing, removed %d", n)
	}
}

func TestWorldPlayerMissingPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Player() on a world without a player should panic")
		}
	}()
	NewWorld().Player()
}
