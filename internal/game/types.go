// internal/game/types.go
//
// Core type definitions for the hangman game engine.
// Defines:
//   - Outcome: classification of an accepted guess (hit/miss/won/lost).
//   - Game: state for a single in-progress or finished session.
//   - Snapshot: read-only projection handed to transports.

package game

import "sort"

// Blank is the pattern marker for a position not yet revealed.
const Blank = '_'

// Outcome classifies what an accepted guess did to the session.
// Possible values:
//   - "hit":  the pattern changed; no guess was spent.
//   - "miss": the pattern stayed identical; one guess was spent.
//   - "won":  the guess revealed the final blank.
//   - "lost": the guess spent the final remaining guess.
type Outcome string

const (
	OutcomeHit  Outcome = "hit"
	OutcomeMiss         = "miss"
	OutcomeWon          = "won"
	OutcomeLost         = "lost"
)

// Game holds the state of a single hangman session.
//
// The engine never commits to one answer: Candidates is every dictionary
// word still consistent with the pattern and with the absence of each
// guessed letter not shown in the pattern. It shrinks (or holds) on every
// guess and is non-empty until the session finishes.
type Game struct {
	ID          string          // Unique session identifier (random hex string).
	WordLength  int             // Length of the word being "guessed".
	MaxGuesses  int             // Wrong guesses allowed for the session.
	GuessesLeft int             // Remaining wrong guesses; decremented on miss only.
	Guessed     map[byte]bool   // Letters already tried (lowercase a-z).
	Pattern     []byte          // Revealed letters, Blank where unknown.
	Candidates  []string        // Surviving words, all consistent with Pattern.
	Finished    bool            // True once the game is over (won or lost).
	Won         bool            // True if the game finished with a win.
	FinalWord   string          // Word revealed on loss, picked from Candidates.
	Message     string          // Human-readable note on the latest transition.
}

// Misses reports how many wrong guesses have been spent so far.
func (g *Game) Misses() int { return g.MaxGuesses - g.GuessesLeft }

// State reports a coarse string representation: "playing"/"won"/"lost".
func (g *Game) State() string {
	if g.Finished {
		if g.Won {
			return "won"
		}
		return "lost"
	}
	return "playing"
}

// Snapshot is the read-only projection of a session for any transport.
type Snapshot struct {
	GameID         string   `json:"gameId"`
	WordLength     int      `json:"wordLength"`
	MaxGuesses     int      `json:"maxGuesses"`
	GuessesLeft    int      `json:"guessesLeft"`
	GuessedLetters []string `json:"guessedLetters"`
	Pattern        string   `json:"pattern"`
	GameOver       bool     `json:"gameOver"`
	Won            bool     `json:"won"`
	RemainingWords int      `json:"remainingWords"`
	Message        string   `json:"message"`
}

// Snapshot projects the current session state. Guessed letters are
// returned sorted for stable rendering.
func (g *Game) Snapshot() Snapshot {
	letters := make([]string, 0, len(g.Guessed))
	for b := range g.Guessed {
		letters = append(letters, string(b))
	}
	sort.Strings(letters)
	return Snapshot{
		GameID:         g.ID,
		WordLength:     g.WordLength,
		MaxGuesses:     g.MaxGuesses,
		GuessesLeft:    g.GuessesLeft,
		GuessedLetters: letters,
		Pattern:        string(g.Pattern),
		GameOver:       g.Finished,
		Won:            g.Won,
		RemainingWords: len(g.Candidates),
		Message:        g.Message,
	}
}
