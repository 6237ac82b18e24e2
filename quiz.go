/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

// Quizbox Kids Quiz
//
// Every player (identified by cookie) gets one session holding one round
// engine. The browser is a thin renderer: it sends button presses over a
// websocket and draws whatever state the session sends back.
//
// Features:
// - One session per player cookie; several tabs of the same player share it
// - Rounds of up to --round-size questions drawn from the question bank
// - 5 lives, 3 "50/50" hints, 10 points plus a flat 2 point bonus per correct answer
// - Next question after --advance-delay, cancelled when a round restarts or the player leaves
// - Pause holds the next question until the player resumes
// - Cosmetic room codes on the multiplayer screen (rounds are always single-player)
// - Idle sessions reaped after --session-timeout
// - QR code of the quiz URL, backed by go-qrcode

package main

import (
	"context"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/Seednode/quizbox/games/quiz"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
	"github.com/skip2/go-qrcode"
)

// Messages coming from clients
type ClientMessage struct {
	Type   string `json:"type"`             // "menu", "multiplayer", "create_room", "start", "start_multiplayer", "answer", "hint", "pause", "resume", "rules"
	Option *int   `json:"option,omitempty"` // answer
}

// StateMessage is the full picture a client needs to draw the current screen.
type StateMessage struct {
	Type     string             `json:"type"` // "state"
	Screen   quiz.Screen        `json:"screen"`
	Phase    quiz.Phase         `json:"phase"`
	Paused   bool               `json:"paused"`
	Stats    quiz.Stats         `json:"stats"`
	Question *quiz.QuestionView `json:"question,omitempty"`
	Room     string             `json:"room,omitempty"`
	Summary  *SummaryView       `json:"summary,omitempty"`
}

type SummaryView struct {
	quiz.Summary
	Message string `json:"message"`
}

// AnswerResultMessage tells clients which options to color after an answer.
type AnswerResultMessage struct {
	Type string `json:"type"` // "answer_result"
	quiz.Result
	Stats quiz.Stats `json:"stats"`
}

// HintResultMessage lists the options a 50/50 hint removed.
type HintResultMessage struct {
	Type       string     `json:"type"` // "hint_result"
	Suppressed []int      `json:"suppressed"`
	Stats      quiz.Stats `json:"stats"`
}

// RoomMessage carries a freshly generated room code.
type RoomMessage struct {
	Type string `json:"type"` // "room"
	Code string `json:"code"`
}

// SimpleMessage is for rules text and errors.
type SimpleMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

type Client struct {
	conn     *websocket.Conn
	send     chan any
	playerID string
}

type command struct {
	client *Client
	msg    ClientMessage
}

// Session owns one player's navigator and engine. Only the run goroutine
// touches them; timers and websocket readers talk to it over channels.
type Session struct {
	id  string
	cfg *Config
	nav *quiz.Navigator

	clients  map[*Client]bool
	register chan *Client
	unreg    chan *Client
	commands chan command
	advances chan quiz.Ticket
	done     chan struct{}
	stopOnce sync.Once

	// owned by run
	timer *time.Timer

	createdAt time.Time

	mu         sync.RWMutex
	lastActive time.Time
}

func newSession(cfg *Config, id string, pool []quiz.Question) *Session {
	now := time.Now()

	engine := quiz.New(quiz.WithAdvanceDelay(cfg.advanceDelay))

	return &Session{
		id:         id,
		cfg:        cfg,
		nav:        quiz.NewNavigator(engine, pool, cfg.roundSize),
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unreg:      make(chan *Client),
		commands:   make(chan command),
		advances:   make(chan quiz.Ticket),
		done:       make(chan struct{}),
		createdAt:  now,
		lastActive: now,
	}
}

func (s *Session) run() {
	defer s.shutdown()

	for {
		select {
		case c := <-s.register:
			s.touch()
			s.clients[c] = true
			s.sendTo(c, s.snapshot())

		case c := <-s.unreg:
			s.touch()
			if _, ok := s.clients[c]; ok {
				delete(s.clients, c)
				close(c.send)
			}

		case cmd := <-s.commands:
			s.touch()
			s.handleCommand(cmd)

		case t := <-s.advances:
			s.handleAdvance(t)

		case <-s.done:
			return
		}
	}
}

func (s *Session) touch() {
	s.mu.Lock()
	s.lastActive = time.Now()
	s.mu.Unlock()
}

func (s *Session) idleSince() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.lastActive
}

// stop ends the session; safe to call more than once.
func (s *Session) stop() {
	s.stopOnce.Do(func() {
		close(s.done)
	})
}

func (s *Session) shutdown() {
	s.cancelAdvance()

	for c := range s.clients {
		delete(s.clients, c)
		close(c.send)
		_ = c.conn.Close()
	}
}

// join and leave block until the session accepts the client, or give up if
// it has already stopped.
func (s *Session) join(c *Client) bool {
	select {
	case s.register <- c:
		return true
	case <-s.done:
		return false
	}
}

func (s *Session) leave(c *Client) {
	select {
	case s.unreg <- c:
	case <-s.done:
	}
}

func (s *Session) post(cmd command) bool {
	select {
	case s.commands <- cmd:
		return true
	case <-s.done:
		return false
	}
}

func (s *Session) handleCommand(cmd command) {
	c := cmd.client
	msg := cmd.msg

	switch msg.Type {
	case "menu":
		s.cancelAdvance()
		s.nav.Menu()
		s.broadcast(s.snapshot())

	case "multiplayer":
		s.cancelAdvance()
		s.nav.Multiplayer()
		s.broadcast(s.snapshot())

	case "create_room":
		code, ok := s.nav.CreateRoom()
		if !ok {
			return
		}
		logf(s.cfg, "GAMES: Room %s shown to %s", code, s.id)
		s.broadcast(RoomMessage{
			Type: "room",
			Code: code,
		})

	case "start", "start_multiplayer":
		s.cancelAdvance()

		var err error
		if msg.Type == "start" {
			_, err = s.nav.Play()
		} else {
			_, err = s.nav.PlayMultiplayer()
		}
		if err != nil {
			s.sendTo(c, SimpleMessage{
				Type:    "error",
				Message: "There are no questions to play right now.",
			})
			return
		}
		logf(s.cfg, "GAMES: Round %d started for %s", s.nav.Engine().Round(), s.id)
		s.broadcast(s.snapshot())

	case "answer":
		if msg.Option == nil {
			return
		}

		res, ticket, ok := s.nav.Answer(*msg.Option)
		if !ok {
			return
		}

		s.broadcast(AnswerResultMessage{
			Type:   "answer_result",
			Result: res,
			Stats:  s.nav.Engine().Stats(),
		})

		if ticket.Pending() {
			s.scheduleAdvance(ticket)
			return
		}

		s.roundOver()

	case "hint":
		hidden, ok := s.nav.Hint()
		if !ok {
			return
		}
		s.broadcast(HintResultMessage{
			Type:       "hint_result",
			Suppressed: hidden,
			Stats:      s.nav.Engine().Stats(),
		})

	case "pause":
		if s.nav.Pause() {
			s.broadcast(s.snapshot())
		}

	case "resume":
		held, ok := s.nav.Resume()
		if ok {
			s.handleAdvance(held)
			return
		}
		s.broadcast(s.snapshot())

	case "rules":
		s.sendTo(c, SimpleMessage{
			Type:    "rules",
			Message: quiz.Rules,
		})
	}
}

func (s *Session) handleAdvance(t quiz.Ticket) {
	if t.Round != s.nav.Engine().Round() {
		return
	}

	_, ok := s.nav.Advance(t)

	switch {
	case s.nav.Screen() == quiz.ScreenResults:
		s.roundOver()
	case ok:
		s.broadcast(s.snapshot())
	}
}

func (s *Session) roundOver() {
	summary := s.nav.Engine().Summary()
	logf(s.cfg, "GAMES: Round %d for %s ended with %d/%d correct, %d points",
		s.nav.Engine().Round(), s.id, summary.Correct, summary.Total, summary.Score)

	s.broadcast(s.snapshot())
}

func (s *Session) scheduleAdvance(t quiz.Ticket) {
	s.cancelAdvance()

	s.timer = time.AfterFunc(t.Delay, func() {
		select {
		case s.advances <- t:
		case <-s.done:
		}
	})
}

// cancelAdvance stops the pending timer. A timer that already fired is
// harmless: the engine ignores tickets from an older round.
func (s *Session) cancelAdvance() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

func (s *Session) snapshot() StateMessage {
	engine := s.nav.Engine()

	msg := StateMessage{
		Type:   "state",
		Screen: s.nav.Screen(),
		Phase:  engine.Phase(),
		Paused: s.nav.Paused(),
		Stats:  engine.Stats(),
		Room:   s.nav.Room(),
	}

	if msg.Screen == quiz.ScreenGame {
		if view, ok := engine.View(); ok {
			msg.Question = &view
		}
	}

	if msg.Screen == quiz.ScreenResults {
		summary := engine.Summary()
		msg.Summary = &SummaryView{
			Summary: summary,
			Message: summary.Tier.Message(),
		}
	}

	return msg
}

func (s *Session) sendTo(c *Client, msg any) {
	if _, ok := s.clients[c]; !ok {
		return
	}

	select {
	case c.send <- msg:
	default:
		delete(s.clients, c)
		close(c.send)
	}
}

func (s *Session) broadcast(msg any) {
	for client := range s.clients {
		s.sendTo(client, msg)
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

const playerCookieName = "quizbox_id"

func playerCookie(id string) *http.Cookie {
	return &http.Cookie{
		Name:     playerCookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

func playerIDFromRequest(r *http.Request) string {
	c, err := r.Cookie(playerCookieName)
	if err != nil {
		return ""
	}

	if _, err := uuid.Parse(c.Value); err != nil {
		return ""
	}

	return c.Value
}

func getOrSetPlayerID(w http.ResponseWriter, r *http.Request) string {
	if id := playerIDFromRequest(r); id != "" {
		return id
	}

	id := uuid.NewString()
	http.SetCookie(w, playerCookie(id))

	return id
}

// SessionManager holds one session per player.
type SessionManager struct {
	cfg  *Config
	pool []quiz.Question

	mu          sync.Mutex
	sessions    map[string]*Session
	idleTimeout time.Duration
	closed      bool
}

func newSessionManager(ctx context.Context, cfg *Config, pool []quiz.Question) *SessionManager {
	sm := &SessionManager{
		cfg:         cfg,
		pool:        pool,
		sessions:    make(map[string]*Session),
		idleTimeout: cfg.sessionTimeout,
	}

	go sm.reaperLoop(ctx)

	return sm
}

func (sm *SessionManager) getSession(playerID string) *Session {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if s, ok := sm.sessions[playerID]; ok {
		return s
	}

	s := newSession(sm.cfg, playerID, sm.pool)

	// shutting down: hand back a session that refuses every client
	if sm.closed {
		s.stop()
		return s
	}

	sm.sessions[playerID] = s
	go s.run()

	logf(sm.cfg, "GAMES: Created session %s", playerID)

	return s
}

// reaperLoop periodically removes sessions that have been idle longer than
// idleTimeout, and all sessions once ctx is done. With no idle timeout it
// only waits for ctx.
func (sm *SessionManager) reaperLoop(ctx context.Context) {
	var tick <-chan time.Time
	if sm.idleTimeout > 0 {
		ticker := time.NewTicker(sm.idleTimeout / 2)
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		select {
		case <-ctx.Done():
			sm.stopAll()

			return

		case <-tick:
			sm.reap(time.Now().Add(-sm.idleTimeout))
		}
	}
}

func (sm *SessionManager) stopAll() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.closed = true
	for id, s := range sm.sessions {
		delete(sm.sessions, id)
		s.stop()
	}
}

func (sm *SessionManager) reap(cutoff time.Time) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	for id, s := range sm.sessions {
		if s.idleSince().Before(cutoff) {
			delete(sm.sessions, id)
			s.stop()

			logf(sm.cfg, "GAMES: Reaped idle session %s (age %s)", id, time.Since(s.createdAt).Round(time.Second))
		}
	}
}

func serveWSForManager(cfg *Config, sm *SessionManager) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		var header http.Header

		playerID := playerIDFromRequest(r)
		if playerID == "" {
			playerID = uuid.NewString()
			header = http.Header{}
			header.Add("Set-Cookie", playerCookie(playerID).String())
		}

		conn, err := upgrader.Upgrade(w, r, header)
		if err != nil {
			log.Println("upgrade error:", err)
			return
		}

		client := &Client{
			conn:     conn,
			send:     make(chan any, 16),
			playerID: playerID,
		}

		s := sm.getSession(playerID)
		if !s.join(client) {
			_ = conn.Close()
			return
		}

		go client.writePump()
		client.readPump(s)
	}
}

func (c *Client) readPump(s *Session) {
	defer func() {
		s.leave(c)
		_ = c.conn.Close()
	}()

	for {
		var msg ClientMessage
		if err := c.conn.ReadJSON(&msg); err != nil {
			return
		}

		switch msg.Type {
		case "menu", "multiplayer", "create_room", "start", "start_multiplayer", "answer", "hint", "pause", "resume", "rules":
			if !s.post(command{client: c, msg: msg}) {
				return
			}
		default:
			// ignore unknown types
		}
	}
}

func (c *Client) writePump() {
	defer c.conn.Close()

	for msg := range c.send {
		if err := c.conn.WriteJSON(msg); err != nil {
			return
		}
	}
}

// qrHandler generates a PNG QR code pointing at the quiz page.
func qrHandler(cfg *Config) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		scheme := cfg.scheme()
		if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
			scheme = proto
		}

		// We are at /.../quiz/qr; strip trailing "/qr" to get the quiz URL.
		path := strings.TrimSuffix(r.URL.Path, "/qr")

		url := scheme + "://" + r.Host + path

		const qrSize = 320
		png, err := qrcode.Encode(url, qrcode.Medium, qrSize)
		if err != nil {
			http.Error(w, "qr generation failed", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "image/png")
		securityHeaders(cfg, w)
		_, _ = w.Write(png)
	}
}

func getIndexHandler(cfg *Config, errs chan<- error) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		data, err := assets.ReadFile("assets/quiz/index.html")
		if err != nil {
			errs <- err

			http.Error(w, "quiz page unavailable", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("Cache-Control", "no-cache")
		securityHeaders(cfg, w)

		_ = getOrSetPlayerID(w, r)

		_, _ = w.Write(data)
	}
}

// registerQuizGame sets up routes so that:
//   - $path      → HTML client
//   - $path/ws   → WebSocket for the player's session
//   - $path/qr   → PNG QR code for the quiz URL
func registerQuizGame(ctx context.Context, cfg *Config, path string, pool []quiz.Question, errs chan<- error, mux *httprouter.Router) *SessionManager {
	sm := newSessionManager(ctx, cfg, pool)

	mux.GET(cfg.prefix+path, getIndexHandler(cfg, errs))

	mux.GET(cfg.prefix+path+"/ws", serveWSForManager(cfg, sm))

	mux.GET(cfg.prefix+path+"/qr", qrHandler(cfg))

	return sm
}
