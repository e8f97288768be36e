// Package server runs the single shared match that SSH clients join.
package server

import (
	"context"
	"io"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/goalball/internal/config"
	"github.com/tomz197/goalball/internal/game"
	"github.com/tomz197/goalball/internal/input"
	"github.com/tomz197/goalball/internal/loop"
)

// GameServer is the interface clients use to communicate with the game server.
type GameServer interface {
	RegisterClient(username string) *ClientHandle
	UnregisterClient(clientID int)
	SendInput(clientID int, keys input.Snapshot)
	GetSnapshot() *MatchSnapshot
}

// Server owns the match state and processes inputs from all clients.
type Server struct {
	cfg    *config.Config
	logger *log.Logger

	state    *game.State
	snapshot atomic.Pointer[MatchSnapshot]
	start    time.Time

	clients      map[int]*ClientHandle
	seats        [2]int // client IDs, 0 when free
	nextClientID int
	inputChan    chan ClientInput
	registerCh   chan *ClientHandle
	unregisterCh chan int
	mu           sync.RWMutex
}

var _ GameServer = (*Server)(nil)

// ClientHandle represents a client's connection to the server.
type ClientHandle struct {
	ID       int
	Username string
	EventsCh chan ClientEvent

	seat Seat
	keys input.Snapshot
}

// ClientInput carries one client's held keys for the next tick.
type ClientInput struct {
	ClientID int
	Keys     input.Snapshot
}

// ClientEvent represents an event sent from server to client.
type ClientEvent struct {
	Type   ClientEventType
	Seat   Seat // EventSeated
	Scorer int  // EventGoal
}

// ClientEventType identifies the type of client event.
type ClientEventType int

const (
	EventSeated ClientEventType = iota
	EventGoal
	EventServerShutdown
)

// NewServer creates a server for cfg. A nil logger discards logs.
func NewServer(cfg *config.Config, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	s := &Server{
		cfg:          cfg,
		logger:       logger,
		state:        game.NewState(cfg),
		start:        time.Now(),
		clients:      make(map[int]*ClientHandle),
		nextClientID: 1,
		inputChan:    make(chan ClientInput, 256),
		registerCh:   make(chan *ClientHandle, 16),
		unregisterCh: make(chan int, 16),
	}
	s.createSnapshot()
	return s
}

// Run starts the server loop. Blocks until the context is cancelled.
func (s *Server) Run(ctx context.Context) {
	s.start = time.Now()
	tickTime := s.cfg.TickTime()

	var fps *loop.FPSMeter
	if s.cfg.Debug.LogFPS {
		fps = loop.NewFPSMeter(s.logger, "server", s.start)
	}

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		frameStart := time.Now()
		s.tick(frameStart)
		fps.Tick(frameStart)

		elapsed := time.Since(frameStart)
		if elapsed < tickTime {
			time.Sleep(tickTime - elapsed)
		}
	}
}

// tick advances the match by one frame at wall time now.
func (s *Server) tick(now time.Time) {
	s.processRegistrations()
	s.collectInputs()
	s.updateMatch(now.Sub(s.start).Seconds())
	s.createSnapshot()
}

// Shutdown notifies all connected clients and waits for them to disconnect
// (up to the given timeout). The caller should cancel the server context
// after Shutdown returns.
func (s *Server) Shutdown(timeout time.Duration) {
	s.mu.RLock()
	for _, handle := range s.clients {
		select {
		case handle.EventsCh <- ClientEvent{Type: EventServerShutdown}:
		default:
		}
	}
	s.mu.RUnlock()

	deadline := time.After(timeout)
	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-deadline:
			return
		case <-ticker.C:
			s.mu.RLock()
			remaining := len(s.clients)
			s.mu.RUnlock()
			if remaining == 0 {
				return
			}
		}
	}
}

// RegisterClient registers a new client. Its seat arrives as an EventSeated
// once the server loop has processed the registration.
func (s *Server) RegisterClient(username string) *ClientHandle {
	s.mu.Lock()
	id := s.nextClientID
	s.nextClientID++
	s.mu.Unlock()

	handle := &ClientHandle{
		ID:       id,
		Username: username,
		EventsCh: make(chan ClientEvent, 16),
	}

	s.registerCh <- handle
	return handle
}

// UnregisterClient removes a client from the server.
func (s *Server) UnregisterClient(clientID int) {
	s.unregisterCh <- clientID
}

// SendInput sends a client's held keys to the server. Input from
// spectators is ignored.
func (s *Server) SendInput(clientID int, keys input.Snapshot) {
	select {
	case s.inputChan <- ClientInput{ClientID: clientID, Keys: keys}:
	default:
		// Input channel full, drop input
	}
}

// GetSnapshot returns the latest published match snapshot.
func (s *Server) GetSnapshot() *MatchSnapshot {
	return s.snapshot.Load()
}

// processRegistrations handles pending client registrations/unregistrations.
func (s *Server) processRegistrations() {
	for {
		select {
		case handle := <-s.registerCh:
			s.mu.Lock()
			s.clients[handle.ID] = handle
			s.mu.Unlock()
			s.logger.Info("client joined", "id", handle.ID, "user", handle.Username)
			s.fillSeats()
		case clientID := <-s.unregisterCh:
			s.mu.Lock()
			handle, ok := s.clients[clientID]
			if ok {
				if handle.seat != Spectator {
					s.seats[handle.seat-1] = 0
				}
				close(handle.EventsCh)
				delete(s.clients, clientID)
			}
			s.mu.Unlock()
			if ok {
				s.logger.Info("client left", "id", clientID, "user", handle.Username, "seat", handle.seat)
				s.fillSeats()
			}
		default:
			return
		}
	}
}

// fillSeats hands free seats to the longest-waiting spectators. A match
// restarts from kick-off whenever its line-up changes.
func (s *Server) fillSeats() {
	s.mu.Lock()
	defer s.mu.Unlock()

	waiting := make([]*ClientHandle, 0, len(s.clients))
	for _, handle := range s.clients {
		if handle.seat == Spectator {
			waiting = append(waiting, handle)
		}
	}
	sort.Slice(waiting, func(i, j int) bool { return waiting[i].ID < waiting[j].ID })

	changed := false
	for i := range s.seats {
		if s.seats[i] != 0 || len(waiting) == 0 {
			continue
		}
		handle := waiting[0]
		waiting = waiting[1:]

		handle.seat = Seat(i + 1)
		handle.keys = input.Snapshot{}
		s.seats[i] = handle.ID
		changed = true

		select {
		case handle.EventsCh <- ClientEvent{Type: EventSeated, Seat: handle.seat}:
		default:
		}
		s.logger.Info("seated", "id", handle.ID, "user", handle.Username, "seat", handle.seat)
	}

	if changed {
		s.state.Score = game.Score{}
		s.state.KickOff(s.cfg)
	}
}

// collectInputs keeps the newest keys per seated client.
func (s *Server) collectInputs() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for {
		select {
		case ci := <-s.inputChan:
			if handle, ok := s.clients[ci.ClientID]; ok && handle.seat != Spectator {
				handle.keys = ci.Keys
			}
		default:
			return
		}
	}
}

// seatKeys rewrites a client's keys onto its seat's mapping, so either
// player's keys steer whichever seat the client holds.
func (s *Server) seatKeys(seat Seat, keys input.Snapshot) input.Snapshot {
	mapping := s.cfg.Player1.Keys
	if seat == Seat2 {
		mapping = s.cfg.Player2.Keys
	}
	return keys.Translate(mapping, s.cfg.Player1.Keys).Translate(mapping, s.cfg.Player2.Keys)
}

// updateMatch steps the match once.
func (s *Server) updateMatch(now float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var in game.Inputs
	if handle, ok := s.clients[s.seats[0]]; ok {
		in.Player1 = s.seatKeys(Seat1, handle.keys)
	}
	if handle, ok := s.clients[s.seats[1]]; ok {
		in.Player2 = s.seatKeys(Seat2, handle.keys)
	}

	ev := game.Step(s.cfg, s.state, now, in)
	if !ev.Goal {
		return
	}

	s.logger.Info("goal", "scorer", ev.Scorer, "p1", s.state.Score.Player1, "p2", s.state.Score.Player2)
	for _, handle := range s.clients {
		select {
		case handle.EventsCh <- ClientEvent{Type: EventGoal, Scorer: ev.Scorer}:
		default:
		}
	}
}

// createSnapshot publishes an immutable copy of the match.
func (s *Server) createSnapshot() {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := &MatchSnapshot{
		Snapshot: s.state.Snapshot(),
		Clients:  len(s.clients),
	}
	for i, id := range s.seats {
		if handle, ok := s.clients[id]; ok {
			snap.Names[i] = handle.Username
		}
	}
	s.snapshot.Store(snap)
}
