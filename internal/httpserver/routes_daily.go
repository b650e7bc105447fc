// internal/httpserver/routes_daily.go
//
// HTTP routes for the "Daily Challenge" mode.
// Exposes three endpoints under /daily:
//   - POST /daily/new         → start the daily game (creates or reuses session)
//   - POST /daily/guess       → submit a letter for today's daily game
//   - GET  /daily/leaderboard → fetch top 20 results for today (or a given date)
//
// Each user can play once per day (enforced by DB + in-memory session).
// Sessions are held in memory for active play and persisted to DB on win.
// The engine never fixes an answer, so the daily seed fixes the settings:
// everyone plays the same word length and guess budget, derived from
// date + salt, and compares on misses and elapsed time.

package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/calegray/evil-hangman/internal/daily"
	"github.com/calegray/evil-hangman/internal/game"
)

// dailyServer wraps dependencies for /daily endpoints.
type dailyServer struct {
	srv      *Server
	store    *daily.Store
	salt     string
	sessions map[string]*dailySession // active sessions keyed by userID|date
	mu       sync.Mutex               // guards sessions
}

// dailySession holds transient in-memory state for an in-progress daily game.
type dailySession struct {
	Game       *game.Game
	UserID     string
	Date       string
	WordLength int
	MaxGuesses int
	Start      time.Time
	Finished   bool
}

// mountDaily registers all /daily routes.
func (s *Server) mountDaily(r chi.Router) {
	dd := &dailyServer{
		srv:      s,
		store:    daily.NewStore(s.db),
		salt:     getEnv("DAILY_SALT", "local_dev_salt"),
		sessions: make(map[string]*dailySession),
	}
	r.Route("/daily", func(r chi.Router) {
		r.Post("/new", dd.handleNew)
		r.Post("/guess", dd.handleGuess)
		r.Get("/leaderboard", dd.handleLeaderboard)
	})
}

// settingsNow returns today's date key and the deterministic daily settings.
func (d *dailyServer) settingsNow() (date string, wordLength int, maxGuesses int) {
	now := time.Now().UTC()
	date = daily.DateKey(now)
	wordLength, maxGuesses = daily.Settings(now, d.salt, d.srv.engine.Lengths())
	return date, wordLength, maxGuesses
}

// userIDWithAnon returns the authenticated user ID if logged in,
// otherwise ensures an anonymous ID via Server.ensureAnonID.
func (d *dailyServer) userIDWithAnon(w http.ResponseWriter, r *http.Request) (string, bool) {
	if me, _ := r.Context().Value(ctxUserKey{}).(*authUser); me != nil {
		return me.ID, true
	}
	return d.srv.ensureAnonID(w, r), true
}

// -----------------------------------------------------------------------------
// /daily/new

// dailyNewRes is returned by /daily/new.
type dailyNewRes struct {
	GameID     string `json:"gameId"`
	Date       string `json:"date"`
	WordLength int    `json:"wordLength"`
	MaxGuesses int    `json:"maxGuesses"`
	Played     bool   `json:"played"`
}

// handleNew creates or reuses a daily session for the current date.
// - If user already has a DB row for today → return Played=true.
// - Otherwise create/reuse an in-memory session and return GameID.
func (d *dailyServer) handleNew(w http.ResponseWriter, r *http.Request) {
	uid, ok := d.userIDWithAnon(w, r)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	date, wordLength, maxGuesses := d.settingsNow()
	if wordLength == 0 {
		http.Error(w, `{"error":"no_playable_lengths"}`, http.StatusInternalServerError)
		return
	}

	// Check if already played (persisted in DB).
	if played, err := d.store.AlreadyPlayed(r.Context(), uid, date); err == nil && played {
		_ = json.NewEncoder(w).Encode(dailyNewRes{Date: date, WordLength: wordLength, MaxGuesses: maxGuesses, Played: true})
		return
	}

	// Reuse or create session in memory.
	key := uid + "|" + date
	d.mu.Lock()
	if sess, ok := d.sessions[key]; ok {
		d.mu.Unlock()
		_ = json.NewEncoder(w).Encode(dailyNewRes{
			GameID: sess.Game.ID, Date: date, WordLength: wordLength, MaxGuesses: maxGuesses, Played: false,
		})
		return
	}
	g, err := d.srv.engine.StartGame(wordLength, maxGuesses)
	if err != nil {
		d.mu.Unlock()
		http.Error(w, `{"error":"start_failed"}`, http.StatusInternalServerError)
		return
	}
	sess := &dailySession{
		Game:       g,
		UserID:     uid,
		Date:       date,
		WordLength: wordLength,
		MaxGuesses: maxGuesses,
		Start:      time.Now(),
	}
	d.sessions[key] = sess
	d.mu.Unlock()

	_ = json.NewEncoder(w).Encode(dailyNewRes{
		GameID: g.ID, Date: date, WordLength: wordLength, MaxGuesses: maxGuesses, Played: false,
	})
}

// -----------------------------------------------------------------------------
// /daily/guess

// dailyGuessReq is the request payload for /daily/guess.
type dailyGuessReq struct {
	GameID string `json:"gameId"`
	Guess  string `json:"guess"`
}

// dailyGuessRes is the response payload for /daily/guess.
type dailyGuessRes struct {
	Snapshot game.Snapshot `json:"snapshot"`
	State    string        `json:"state"` // in_progress | won | lost | locked
	Misses   int           `json:"misses"`
}

// handleGuess validates and applies a letter for today's daily session.
// - Ensures valid GameID and letter.
// - Rejects if no session or session finished.
// - Applies the engine guess; persists the result to DB on win.
func (d *dailyServer) handleGuess(w http.ResponseWriter, r *http.Request) {
	uid, ok := d.userIDWithAnon(w, r)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var p dailyGuessReq
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	p.Guess = strings.TrimSpace(strings.ToLower(p.Guess))
	if p.GameID == "" || len(p.Guess) != 1 {
		http.Error(w, "invalid", http.StatusBadRequest)
		return
	}

	date, _, _ := d.settingsNow()

	// Find session.
	key := uid + "|" + date
	d.mu.Lock()
	sess, ok := d.sessions[key]
	d.mu.Unlock()
	if !ok || sess.Game.ID != p.GameID {
		http.Error(w, "no session", http.StatusConflict)
		return
	}
	if sess.Finished {
		_ = json.NewEncoder(w).Encode(dailyGuessRes{Snapshot: sess.Game.Snapshot(), State: "locked", Misses: sess.Game.Misses()})
		return
	}

	d.mu.Lock()
	outcome, err := d.srv.engine.Guess(sess.Game, rune(p.Guess[0]))
	if err == nil && (outcome == game.OutcomeWon || outcome == game.OutcomeLost) {
		sess.Finished = true
	}
	d.mu.Unlock()

	switch {
	case errors.Is(err, game.ErrAlreadyGuessed) || errors.Is(err, game.ErrGameOver):
		http.Error(w, "rejected", http.StatusConflict)
		return
	case err != nil:
		http.Error(w, "invalid", http.StatusBadRequest)
		return
	}

	// Persist and return.
	if outcome == game.OutcomeWon {
		elapsed := int(time.Since(sess.Start).Milliseconds())
		_ = d.store.InsertResult(r.Context(), daily.Result{
			UserID: uid, Date: date, WordLength: sess.WordLength, Misses: sess.Game.Misses(), ElapsedMs: elapsed,
		})
		_ = json.NewEncoder(w).Encode(dailyGuessRes{Snapshot: sess.Game.Snapshot(), State: "won", Misses: sess.Game.Misses()})
		return
	}
	state := "in_progress"
	if outcome == game.OutcomeLost {
		state = "lost"
	}
	_ = json.NewEncoder(w).Encode(dailyGuessRes{Snapshot: sess.Game.Snapshot(), State: state, Misses: sess.Game.Misses()})
}

// -----------------------------------------------------------------------------
// /daily/leaderboard

// lbRes is returned by /daily/leaderboard.
type lbRes struct {
	Date string        `json:"date"`
	Top  []daily.LBRow `json:"top"`
}

// handleLeaderboard returns the leaderboard for the given date (default today).
func (d *dailyServer) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date, _, _ = d.settingsNow()
	}
	rows, err := d.store.Leaderboard(r.Context(), date, 20)
	if err != nil {
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(lbRes{Date: date, Top: rows})
}
