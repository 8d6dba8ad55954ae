package main

import (
	"database/sql"
	"encoding/json"
	"log"
	"sync"
	"time"
)

// Event types recorded in analytics_events
const (
	EvtSessionStart = "session_start"
	EvtSessionEnd   = "session_end"
	EvtRunStart     = "run_start"
	EvtRunEnd       = "run_end"
	EvtKill         = "kill"
	EvtHurt         = "hurt"
	EvtAchievement  = "achievement"
)

const (
	analyticsQueue    = 1024
	analyticsBatch    = 50
	analyticsInterval = 5 * time.Second
)

// AnalyticsEvent is one row waiting to be written
type AnalyticsEvent struct {
	Type      string
	PlayerID  int64
	SessionID string
	Data      string
	At        time.Time
}

// payloads stored in the data column
type (
	killData struct {
		Kind  string `json:"kind"`
		Melee bool   `json:"melee"`
	}
	hurtData struct {
		HP int `json:"hp"`
	}
	runEndData struct {
		Score    int     `json:"score"`
		Kills    int     `json:"kills"`
		Sparks   int     `json:"sparks"`
		Duration float64 `json:"duration"`
	}
	achievementData struct {
		ID string `json:"id"`
	}
)

// Analytics records gameplay events off the tick path. Track never blocks;
// a background writer persists events in batches.
type Analytics struct {
	db       *DB
	events   chan AnalyticsEvent
	stop     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup

	mu       sync.RWMutex
	peers    int
	sessions int
}

func NewAnalytics(db *DB) *Analytics {
	a := &Analytics{
		db:     db,
		events: make(chan AnalyticsEvent, analyticsQueue),
		stop:   make(chan struct{}),
	}
	a.wg.Add(1)
	go a.writer()
	return a
}

// Track queues an event. It is dropped when the queue is full or the
// writer has stopped.
func (a *Analytics) Track(evtType string, playerID int64, sessionID, data string) {
	select {
	case <-a.stop:
		return
	default:
	}
	select {
	case a.events <- AnalyticsEvent{
		Type:      evtType,
		PlayerID:  playerID,
		SessionID: sessionID,
		Data:      data,
		At:        time.Now().UTC(),
	}:
	default:
	}
}

// TrackJSON is Track with a payload encoded as JSON
func (a *Analytics) TrackJSON(evtType string, playerID int64, sessionID string, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		log.Printf("analytics: encode %s: %v", evtType, err)
		return
	}
	a.Track(evtType, playerID, sessionID, string(data))
}

func (a *Analytics) SetConcurrentPeers(n int) {
	a.mu.Lock()
	a.peers = n
	a.mu.Unlock()
}

func (a *Analytics) SetActiveSessions(n int) {
	a.mu.Lock()
	a.sessions = n
	a.mu.Unlock()
}

// GetLiveMetrics returns connected peers and running sessions
func (a *Analytics) GetLiveMetrics() (int, int) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.peers, a.sessions
}

// Stop flushes whatever is queued and waits for the writer to exit. It is
// safe to call more than once.
func (a *Analytics) Stop() {
	a.stopOnce.Do(func() { close(a.stop) })
	a.wg.Wait()
}

func (a *Analytics) writer() {
	defer a.wg.Done()

	batch := make([]AnalyticsEvent, 0, analyticsBatch)
	ticker := time.NewTicker(analyticsInterval)
	defer ticker.Stop()

	for {
		select {
		case evt := <-a.events:
			if batch = append(batch, evt); len(batch) >= analyticsBatch {
				batch = a.flush(batch)
			}
		case <-ticker.C:
			batch = a.flush(batch)
		case <-a.stop:
		drain:
			for {
				select {
				case evt := <-a.events:
					batch = append(batch, evt)
				default:
					break drain
				}
			}
			a.flush(batch)
			return
		}
	}
}

// flush writes the batch in one transaction and returns it emptied
func (a *Analytics) flush(batch []AnalyticsEvent) []AnalyticsEvent {
	if len(batch) == 0 || a.db == nil {
		return batch[:0]
	}
	if err := a.db.InsertEvents(batch); err != nil {
		log.Printf("analytics: write %d events: %v", len(batch), err)
	}
	return batch[:0]
}

// ---------- reports ----------

// ActivePlayers counts distinct signed-in players seen in the last N days.
// days <= 1 means since midnight UTC.
func (a *Analytics) ActivePlayers(days int) (int, error) {
	if a.db == nil {
		return 0, nil
	}
	var n int
	err := a.db.conn.QueryRow(`
		SELECT COUNT(DISTINCT player_id) FROM analytics_events
		WHERE player_id IS NOT NULL AND created_at >= date('now', '-' || ? || ' days')
	`, max(days-1, 0)).Scan(&n)
	return n, err
}

// RunAnalytics aggregates finished runs
type RunAnalytics struct {
	Count       int     `json:"count"`
	BestScore   int     `json:"best_score"`
	AvgScore    float64 `json:"avg_score"`
	AvgKills    float64 `json:"avg_kills"`
	AvgSparks   float64 `json:"avg_sparks"`
	AvgDuration float64 `json:"avg_duration"`
	// Runs that ended without firing a single spark
	MeleeOnly int `json:"melee_only"`
	// Player hits taken across all runs
	Hurts int `json:"hurts"`
}

// RunSummary aggregates run_end and hurt events for the last N days
func (a *Analytics) RunSummary(days int) (RunAnalytics, error) {
	var r RunAnalytics
	if a.db == nil {
		return r, nil
	}
	var best sql.NullInt64
	var score, kills, sparks, dur sql.NullFloat64
	err := a.db.conn.QueryRow(`
		SELECT COUNT(*),
			MAX(json_extract(data, '$.score')),
			AVG(json_extract(data, '$.score')),
			AVG(json_extract(data, '$.kills')),
			AVG(json_extract(data, '$.sparks')),
			AVG(json_extract(data, '$.duration')),
			COALESCE(SUM(json_extract(data, '$.sparks') = 0), 0)
		FROM analytics_events
		WHERE event_type = ? AND json_valid(data)
			AND created_at >= date('now', '-' || ? || ' days')
	`, EvtRunEnd, days).Scan(&r.Count, &best, &score, &kills, &sparks, &dur, &r.MeleeOnly)
	if err != nil {
		return r, err
	}
	r.BestScore = int(best.Int64)
	r.AvgScore, r.AvgKills = score.Float64, kills.Float64
	r.AvgSparks, r.AvgDuration = sparks.Float64, dur.Float64

	err = a.db.conn.QueryRow(`
		SELECT COUNT(*) FROM analytics_events
		WHERE event_type = ? AND created_at >= date('now', '-' || ? || ' days')
	`, EvtHurt, days).Scan(&r.Hurts)
	return r, err
}

// KindKills is the kill tally for one hostile kind
type KindKills struct {
	Kind  string `json:"kind"`
	Kills int    `json:"kills"`
	Melee int    `json:"melee"`
}

// KillsByKind tallies kill events per hostile kind for the last N days,
// most killed first
func (a *Analytics) KillsByKind(days int) ([]KindKills, error) {
	if a.db == nil {
		return nil, nil
	}
	rows, err := a.db.conn.Query(`
		SELECT json_extract(data, '$.kind') AS kind, COUNT(*),
			COALESCE(SUM(json_extract(data, '$.melee')), 0)
		FROM analytics_events
		WHERE event_type = ? AND json_valid(data)
			AND created_at >= date('now', '-' || ? || ' days')
		GROUP BY kind ORDER BY COUNT(*) DESC, kind
	`, EvtKill, days)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []KindKills
	for rows.Next() {
		var k KindKills
		if err := rows.Scan(&k.Kind, &k.Kills, &k.Melee); err != nil {
			return out, err
		}
		out = append(out, k)
	}
	return out, rows.Err()
}

// DayRuns is one day of run activity
type DayRuns struct {
	Day     string `json:"day"`
	Runs    int    `json:"runs"`
	Players int    `json:"players"`
	Best    int    `json:"best"`
}

// DailyRuns returns per-day run counts for the last N days, oldest first
func (a *Analytics) DailyRuns(days int) ([]DayRuns, error) {
	if a.db == nil {
		return nil, nil
	}
	rows, err := a.db.conn.Query(`
		SELECT date(created_at) AS day, COUNT(*), COUNT(DISTINCT player_id),
			COALESCE(MAX(json_extract(data, '$.score')), 0)
		FROM analytics_events
		WHERE event_type = ? AND json_valid(data)
			AND created_at >= date('now', '-' || ? || ' days')
		GROUP BY day ORDER BY day
	`, EvtRunEnd, days)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []DayRuns
	for rows.Next() {
		var d DayRuns
		if err := rows.Scan(&d.Day, &d.Runs, &d.Players, &d.Best); err != nil {
			return out, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// StatsReport is the payload of the stats endpoint
type StatsReport struct {
	Peers    int          `json:"peers"`
	Sessions int          `json:"sessions"`
	Today    int          `json:"players_today"`
	Week     int          `json:"players_7d"`
	Runs     RunAnalytics `json:"runs_7d"`
	Kills    []KindKills  `json:"kills_7d"`
	Daily    []DayRuns    `json:"daily_14d"`
}

// collectStats gathers every report. A failing query is logged and leaves
// its field zero.
func collectStats(a *Analytics) StatsReport {
	var r StatsReport
	var err error
	r.Peers, r.Sessions = a.GetLiveMetrics()
	if r.Today, err = a.ActivePlayers(1); err != nil {
		log.Printf("analytics: players today: %v", err)
	}
	if r.Week, err = a.ActivePlayers(7); err != nil {
		log.Printf("analytics: players 7d: %v", err)
	}
	if r.Runs, err = a.RunSummary(7); err != nil {
		log.Printf("analytics: runs: %v", err)
	}
	if r.Kills, err = a.KillsByKind(7); err != nil {
		log.Printf("analytics: kills: %v", err)
	}
	if r.Daily, err = a.DailyRuns(14); err != nil {
		log.Printf("analytics: daily: %v", err)
	}
	return r
}
