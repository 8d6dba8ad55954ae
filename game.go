package main

import (
	"log"
	"math/rand"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"
)

// Broadcaster interface for sending messages to clients
type Broadcaster interface {
	SendJSON(msg interface{})
	SendBinary(data []byte)
}

// Game runs one arena simulation for one session at a fixed tick rate
type Game struct {
	mu   sync.Mutex
	sim  *Sim
	cfg  Config
	sid  string
	db   *DB
	stat *Analytics

	input       Input
	firePending bool

	client     Broadcaster
	controller Broadcaster
	ownerID    int64 // authenticated account, 0 = guest
	name       string

	stop chan struct{}
}

// NewGame creates a game for session sid. db and analytics may be nil.
func NewGame(sid string, cfg Config, db *DB, stat *Analytics, seed int64) *Game {
	return &Game{
		sim:  NewSim(cfg.Sim, rand.New(rand.NewSource(seed))),
		cfg:  cfg,
		sid:  sid,
		db:   db,
		stat: stat,
		stop: make(chan struct{}),
	}
}

// Run starts the game loop
func (g *Game) Run() {
	ticker := time.NewTicker(time.Second / time.Duration(g.cfg.TickRate))
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

// Stop terminates the game loop
func (g *Game) Stop() {
	g.mu.Lock()
	defer g.mu.Unlock()
	select {
	case <-g.stop:
	default:
		close(g.stop)
	}
}

// SetClient attaches the desktop client that receives state
func (g *Game) SetClient(client Broadcaster) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.client = client
}

// SetOwner links the run to an account and seeds the high score from its
// best stored run
func (g *Game) SetOwner(playerID int64, name string, best int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.ownerID = playerID
	g.name = name
	g.sim.Score.SeedHigh(best)
}

// SetController attaches a phone controller and notifies the desktop
func (g *Game) SetController(c Broadcaster) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.controller = c
	if g.client != nil {
		g.client.SendJSON(Envelope{T: MsgCtrlOn})
	}
}

// RemoveController detaches the phone controller
func (g *Game) RemoveController() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.controller == nil {
		return
	}
	g.controller = nil
	if g.client != nil {
		g.client.SendJSON(Envelope{T: MsgCtrlOff})
	}
}

// HasController reports whether a phone controller is attached
func (g *Game) HasController() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.controller != nil
}

// HandleInput latches input for the next tick. A fire press stays latched
// until a tick consumes it.
func (g *Game) HandleInput(ci ClientInput) {
	g.mu.Lock()
	defer g.mu.Unlock()
	in := ci.ToInput()
	g.input.Move = in.Move
	g.input.Aim = in.Aim
	if in.Fire {
		g.firePending = true
	}
}

// Restart begins a new run once the current one is over
func (g *Game) Restart() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.sim.Over() {
		return false
	}
	g.sim.Reset()
	g.input = Input{}
	g.firePending = false
	g.track(EvtRunStart, "")
	return true
}

// High returns the best score seen in this session
func (g *Game) High() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.sim.Score.High
}

// Snapshot returns the current simulation state
func (g *Game) Snapshot() Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.sim.Snapshot()
}

// update runs one game tick
func (g *Game) update() {
	g.mu.Lock()

	in := g.input
	in.Fire = g.firePending
	g.firePending = false

	events := g.sim.Step(g.cfg.TickSeconds(), in)

	var over *RunResult
	for _, ev := range events {
		switch ev.Type {
		case EventPlayerHurt:
			g.send(Envelope{T: MsgHurt, Data: HurtMsg{HP: ev.HP}})
			g.trackJSON(g.ownerID, EvtHurt, hurtData{HP: ev.HP})
		case EventHostileKilled:
			g.send(Envelope{T: MsgKilled, Data: KilledMsg{ID: ev.AgentID, Kind: ev.Kind.String(), Melee: ev.Melee}})
			g.trackJSON(g.ownerID, EvtKill, killData{Kind: ev.Kind.String(), Melee: ev.Melee})
		case EventGameOver:
			res := g.sim.Result()
			res.PlayerID = g.ownerID
			res.Name = g.name
			over = &res
		}
	}

	if g.sim.Tick()%g.cfg.BroadcastEvery() == 0 || over != nil {
		g.broadcastState()
	}
	high := g.sim.Score.High
	client := g.client
	g.mu.Unlock()

	if over != nil {
		g.finishRun(*over, high, client)
	}
}

// finishRun persists a finished run and reports it to the client. It runs
// outside the game lock since it touches the database.
func (g *Game) finishRun(res RunResult, high int, client Broadcaster) {
	msg := GameOverMsg{
		Score:    res.Score,
		High:     high,
		Kills:    res.Kills,
		Duration: round1(res.Duration),
	}

	if g.db != nil {
		prev := 0
		if res.PlayerID > 0 {
			best, err := g.db.BestScore(res.PlayerID)
			if err != nil {
				log.Printf("best score lookup for %d: %v", res.PlayerID, err)
			}
			prev = best
		}
		if _, err := g.db.RecordRun(res); err != nil {
			log.Printf("record run: %v", err)
		}
		msg.NewBest = res.PlayerID > 0 && res.NewBest(prev)
		if res.PlayerID > 0 {
			for _, a := range CheckAchievements(g.db, res.PlayerID, res) {
				msg.Achievements = append(msg.Achievements, a.ID)
				g.trackJSON(res.PlayerID, EvtAchievement, achievementData{ID: a.ID})
			}
		}
	}

	g.trackJSON(res.PlayerID, EvtRunEnd, runEndData{
		Score:    res.Score,
		Kills:    res.Kills,
		Sparks:   res.SparksUsed,
		Duration: round1(res.Duration),
	})

	if client != nil {
		client.SendJSON(Envelope{T: MsgGameOver, Data: msg})
	}
}

// track forwards an analytics event for the session owner. Callers hold g.mu.
func (g *Game) track(evt, data string) {
	if g.stat != nil {
		g.stat.Track(evt, g.ownerID, g.sid, data)
	}
}

func (g *Game) trackJSON(playerID int64, evt string, v interface{}) {
	if g.stat == nil {
		return
	}
	g.stat.TrackJSON(evt, playerID, g.sid, v)
}

func (g *Game) send(msg Envelope) {
	if g.client != nil {
		g.client.SendJSON(msg)
	}
}

// broadcastState sends the current state to the desktop client
func (g *Game) broadcastState() {
	if g.client == nil {
		return
	}
	data, err := msgpack.Marshal(NewGameState(g.sim.Snapshot()))
	if err != nil {
		log.Printf("state marshal error: %v", err)
		return
	}
	g.client.SendBinary(data)
}
