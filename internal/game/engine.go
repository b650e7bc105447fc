// internal/game/engine.go
//
// Core engine for adversarial ("evil") hangman sessions.
// Responsibilities:
//   - Start sessions against a shared, read-only dictionary index.
//   - Validate and apply letter guesses.
//   - Partition surviving candidates by induced pattern and keep the
//     largest group, so the game never commits to a word early.
//   - Track state transitions: playing → won/lost.
//
// Notes:
//   - The dictionary index is shared and immutable; each Game is an
//     independent session, so concurrent games need no coordination
//     beyond per-session confinement.
//   - The loss-reveal word comes from an injectable Picker so tests can
//     stay deterministic while production picks at random.
package game

import (
	"bytes"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"sort"

	"github.com/calegray/evil-hangman/internal/words"
)

// Session start and guess validation failures. All are recoverable;
// none mutate any existing session.
var (
	ErrUnknownLength  = errors.New("no words of that length")
	ErrTooFewWords    = errors.New("too few words of that length")
	ErrBadGuessBudget = errors.New("max guesses must be positive")
	ErrGameOver       = errors.New("game is already over")
	ErrAlreadyGuessed = errors.New("letter already guessed")
	ErrNotALetter     = errors.New("guess must be a single letter a-z")
)

// Picker chooses the word revealed when a session is lost. The slice is
// never empty and every member is consistent with all prior answers.
type Picker func(candidates []string) string

// RandomPick is the production Picker: a uniformly random candidate.
func RandomPick(candidates []string) string {
	if len(candidates) == 1 {
		return candidates[0]
	}
	n, _ := rand.Int(rand.Reader, big.NewInt(int64(len(candidates))))
	return candidates[n.Int64()]
}

// Engine creates and advances sessions against one dictionary index.
type Engine struct {
	index *words.Index
	pick  Picker
}

// NewEngine constructs an engine. A nil picker defaults to RandomPick.
func NewEngine(ix *words.Index, pick Picker) *Engine {
	if pick == nil {
		pick = RandomPick
	}
	return &Engine{index: ix, pick: pick}
}

// Lengths reports the word lengths worth offering to players.
func (e *Engine) Lengths() []int { return e.index.Lengths() }

// DictStats reports the dictionary's distinct lengths and total words.
func (e *Engine) DictStats() (lengths int, total int) { return e.index.Stats() }

// StartGame creates a fresh session: all-blank pattern, the full pool of
// words of the requested length as candidates.
//
// Fails without side effects when the length has fewer than 2 words
// (a 1-word pool cannot sustain the refinement) or maxGuesses is not
// positive. Callers may constrain maxGuesses further; the engine does not.
func (e *Engine) StartGame(wordLength, maxGuesses int) (*Game, error) {
	pool := e.index.WordsOf(wordLength)
	if len(pool) == 0 {
		return nil, ErrUnknownLength
	}
	if len(pool) < 2 {
		return nil, ErrTooFewWords
	}
	if maxGuesses <= 0 {
		return nil, ErrBadGuessBudget
	}

	pattern := make([]byte, wordLength)
	for i := range pattern {
		pattern[i] = Blank
	}
	candidates := make([]string, len(pool))
	copy(candidates, pool)

	return &Game{
		ID:          randomID(),
		WordLength:  wordLength,
		MaxGuesses:  maxGuesses,
		GuessesLeft: maxGuesses,
		Guessed:     make(map[byte]bool),
		Pattern:     pattern,
		Candidates:  candidates,
		Message:     fmt.Sprintf("Game started with %d-letter word. You have %d guesses.", wordLength, maxGuesses),
	}, nil
}

// Guess validates and applies a letter guess, mutating the session.
//
// Rejections (finished game, repeated letter, non-letter input) return an
// error and leave the session untouched. Otherwise the letter is
// recorded, candidates are re-partitioned by induced pattern, and the
// largest group becomes the new truth:
//
//   - pattern unchanged → miss, one guess spent;
//   - pattern changed   → hit, no guess spent;
//   - no blanks left    → won (checked before the loss condition);
//   - no guesses left   → lost, FinalWord picked from the survivors.
func (e *Engine) Guess(g *Game, letter rune) (Outcome, error) {
	if g.Finished {
		return "", ErrGameOver
	}
	if letter >= 'A' && letter <= 'Z' {
		letter += 'a' - 'A'
	}
	if letter < 'a' || letter > 'z' {
		return "", ErrNotALetter
	}
	b := byte(letter)
	if g.Guessed[b] {
		return "", ErrAlreadyGuessed
	}
	g.Guessed[b] = true

	next, survivors := largestPartition(g.Pattern, g.Candidates, b)

	old := string(g.Pattern)
	g.Pattern = []byte(next)
	g.Candidates = survivors

	out := OutcomeHit
	if next == old {
		g.GuessesLeft--
		out = OutcomeMiss
		g.Message = fmt.Sprintf("Sorry, %q is not in the word. %d guesses left.", string(b), g.GuessesLeft)
	} else {
		g.Message = fmt.Sprintf("Good guess! %q is in the word.", string(b))
	}

	switch {
	case !bytes.ContainsRune(g.Pattern, Blank):
		g.Finished, g.Won = true, true
		out = OutcomeWon
		g.Message = fmt.Sprintf("Congratulations! You won! The word was: %s", g.Pattern)
	case g.GuessesLeft <= 0:
		g.Finished = true
		g.FinalWord = e.pick(g.Candidates)
		out = OutcomeLost
		g.Message = fmt.Sprintf("Game over! You ran out of guesses. The word was: %s", g.FinalWord)
	}
	return out, nil
}

// largestPartition groups candidates by the pattern each word would
// induce if letter were revealed, and returns the biggest group.
//
// Ties go to the lexicographically smallest pattern, which keeps the
// choice independent of map iteration order.
func largestPartition(pattern []byte, candidates []string, letter byte) (string, []string) {
	groups := make(map[string][]string)
	induced := make([]byte, len(pattern))
	for _, w := range candidates {
		copy(induced, pattern)
		for i := 0; i < len(w); i++ {
			if w[i] == letter {
				induced[i] = letter
			}
		}
		key := string(induced)
		groups[key] = append(groups[key], w)
	}

	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	best := keys[0]
	for _, k := range keys[1:] {
		if len(groups[k]) > len(groups[best]) {
			best = k
		}
	}
	return best, groups[best]
}

// randomID returns a compact 16-hex-char identifier.
// Collisions are extremely unlikely given crypto/rand entropy.
func randomID() string {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
