package game

import (
	"strings"
	"testing"

	"github.com/calegray/evil-hangman/internal/words"
)

// firstPick is a deterministic Picker stub for loss-reveal assertions.
func firstPick(candidates []string) string { return candidates[0] }

func newTestEngine(t *testing.T, list []string) *Engine {
	t.Helper()
	return NewEngine(words.NewIndex(list), firstPick)
}

func mustStart(t *testing.T, e *Engine, length, maxGuesses int) *Game {
	t.Helper()
	g, err := e.StartGame(length, maxGuesses)
	if err != nil {
		t.Fatalf("StartGame(%d, %d): %v", length, maxGuesses, err)
	}
	return g
}

func mustGuess(t *testing.T, e *Engine, g *Game, letter rune) Outcome {
	t.Helper()
	out, err := e.Guess(g, letter)
	if err != nil {
		t.Fatalf("Guess(%q): %v", letter, err)
	}
	return out
}

func TestStartGameInitialState(t *testing.T) {
	e := newTestEngine(t, []string{"bass", "cats", "dogs", "cars"})
	g := mustStart(t, e, 4, 6)

	if got := string(g.Pattern); got != "____" {
		t.Errorf("pattern = %q, want %q", got, "____")
	}
	if len(g.Candidates) != 4 {
		t.Errorf("candidates = %d, want 4", len(g.Candidates))
	}
	if g.GuessesLeft != 6 || g.MaxGuesses != 6 {
		t.Errorf("guesses = %d/%d, want 6/6", g.GuessesLeft, g.MaxGuesses)
	}
	if g.Finished || g.Won {
		t.Errorf("fresh game finished=%v won=%v", g.Finished, g.Won)
	}
	if g.ID == "" {
		t.Error("game has no ID")
	}
}

func TestStartGameFailures(t *testing.T) {
	e := newTestEngine(t, []string{"bass", "cats", "only"})

	tests := []struct {
		name       string
		length     int
		maxGuesses int
		wantErr    error
	}{
		{"unknown length", 9, 6, ErrUnknownLength},
		{"zero length", 0, 6, ErrUnknownLength},
		{"zero guesses", 4, 0, ErrBadGuessBudget},
		{"negative guesses", 4, -3, ErrBadGuessBudget},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := e.StartGame(tt.length, tt.maxGuesses); err != tt.wantErr {
				t.Errorf("StartGame(%d, %d) err = %v, want %v", tt.length, tt.maxGuesses, err, tt.wantErr)
			}
		})
	}

	// A pool of exactly one word cannot sustain a game.
	solo := newTestEngine(t, []string{"alone"})
	if _, err := solo.StartGame(5, 6); err != ErrTooFewWords {
		t.Errorf("StartGame on 1-word pool err = %v, want %v", err, ErrTooFewWords)
	}
}

func TestStartGameFailureLeavesExistingSessionAlone(t *testing.T) {
	e := newTestEngine(t, []string{"bass", "cats", "dogs", "cars"})
	g := mustStart(t, e, 4, 6)
	mustGuess(t, e, g, 'a')
	before := g.Snapshot()

	if _, err := e.StartGame(9, 6); err == nil {
		t.Fatal("StartGame with unknown length should fail")
	}
	after := g.Snapshot()
	if after.Pattern != before.Pattern || after.GuessesLeft != before.GuessesLeft ||
		after.RemainingWords != before.RemainingWords || after.GameOver != before.GameOver {
		t.Errorf("in-progress session changed: %+v -> %+v", before, after)
	}
}

// The scenario walk from the refinement algorithm's ground truth:
// the engine always keeps the largest induced-pattern group.
func TestGuessKeepsLargestPartition(t *testing.T) {
	e := newTestEngine(t, []string{"bass", "cats", "dogs", "cars"})
	g := mustStart(t, e, 4, 6)

	// "a": bass/cats/cars -> "_a__" (3 words) beats dogs -> "____" (1).
	if out := mustGuess(t, e, g, 'a'); out != OutcomeHit {
		t.Errorf("guess a outcome = %q, want hit", out)
	}
	if got := string(g.Pattern); got != "_a__" {
		t.Errorf("pattern = %q, want %q", got, "_a__")
	}
	wantCandidates(t, g, "bass", "cars", "cats")
	if g.GuessesLeft != 6 {
		t.Errorf("hit spent a guess: %d left, want 6", g.GuessesLeft)
	}

	// "z": nobody has it; single unchanged group -> miss.
	if out := mustGuess(t, e, g, 'z'); out != OutcomeMiss {
		t.Errorf("guess z outcome = %q, want miss", out)
	}
	if got := string(g.Pattern); got != "_a__" {
		t.Errorf("pattern after miss = %q, want %q", got, "_a__")
	}
	if g.GuessesLeft != 5 {
		t.Errorf("guesses left = %d, want 5", g.GuessesLeft)
	}

	// "s": three singleton groups — bass -> "_ass", cats -> "_a_s",
	// cars -> "_a__". The tie goes to the smallest pattern string,
	// which is the unchanged one, so this counts as a miss.
	if out := mustGuess(t, e, g, 's'); out != OutcomeMiss {
		t.Errorf("guess s outcome = %q, want miss", out)
	}
	if got := string(g.Pattern); got != "_a__" {
		t.Errorf("pattern = %q, want %q", got, "_a__")
	}
	wantCandidates(t, g, "cars")
	if g.GuessesLeft != 4 {
		t.Errorf("guesses left = %d, want 4", g.GuessesLeft)
	}
}

func TestTieBreakIsDeterministic(t *testing.T) {
	// "aa" -> "aa" and "ab" -> "a_" tie at one word each; the smaller
	// pattern string ("a_", since '_' < 'a') must win every time.
	for i := 0; i < 20; i++ {
		e := newTestEngine(t, []string{"aa", "ab"})
		g := mustStart(t, e, 2, 6)
		mustGuess(t, e, g, 'a')
		if got := string(g.Pattern); got != "a_" {
			t.Fatalf("run %d: tie broke to %q, want %q", i, got, "a_")
		}
		wantCandidates(t, g, "ab")
	}
}

func TestWinWhenNoBlanksRemain(t *testing.T) {
	e := newTestEngine(t, []string{"aa", "ab"})
	g := mustStart(t, e, 2, 6)
	mustGuess(t, e, g, 'a') // pattern "a_", candidates {ab}

	out := mustGuess(t, e, g, 'b')
	if out != OutcomeWon {
		t.Fatalf("outcome = %q, want won", out)
	}
	if !g.Finished || !g.Won {
		t.Errorf("finished=%v won=%v, want true/true", g.Finished, g.Won)
	}
	if got := string(g.Pattern); got != "ab" {
		t.Errorf("pattern = %q, want %q", got, "ab")
	}
}

func TestLossRevealsWordFromSurvivors(t *testing.T) {
	e := newTestEngine(t, []string{"bass", "cats", "dogs", "cars"})
	g := mustStart(t, e, 4, 1)

	out := mustGuess(t, e, g, 'z')
	if out != OutcomeLost {
		t.Fatalf("outcome = %q, want lost", out)
	}
	if !g.Finished || g.Won {
		t.Errorf("finished=%v won=%v, want true/false", g.Finished, g.Won)
	}
	// firstPick picks the first survivor; the pool is kept sorted.
	if g.FinalWord != "bass" {
		t.Errorf("final word = %q, want %q", g.FinalWord, "bass")
	}
	if !contains(g.Candidates, g.FinalWord) {
		t.Errorf("final word %q not among survivors %v", g.FinalWord, g.Candidates)
	}
}

func TestDuplicateGuessIsRejectedWithoutMutation(t *testing.T) {
	e := newTestEngine(t, []string{"bass", "cats", "dogs", "cars"})
	g := mustStart(t, e, 4, 6)
	mustGuess(t, e, g, 'a')

	pattern, left, n := string(g.Pattern), g.GuessesLeft, len(g.Candidates)
	if _, err := e.Guess(g, 'a'); err != ErrAlreadyGuessed {
		t.Fatalf("second guess err = %v, want %v", err, ErrAlreadyGuessed)
	}
	if string(g.Pattern) != pattern || g.GuessesLeft != left || len(g.Candidates) != n {
		t.Error("rejected duplicate guess mutated the session")
	}
}

func TestGuessAfterGameOverIsRejected(t *testing.T) {
	e := newTestEngine(t, []string{"bass", "cats", "dogs", "cars"})
	g := mustStart(t, e, 4, 1)
	mustGuess(t, e, g, 'z') // lost

	if _, err := e.Guess(g, 'a'); err != ErrGameOver {
		t.Errorf("guess after loss err = %v, want %v", err, ErrGameOver)
	}
	if g.Guessed['a'] {
		t.Error("rejected guess was recorded")
	}
}

func TestNonLetterGuessIsRejected(t *testing.T) {
	e := newTestEngine(t, []string{"bass", "cats", "dogs", "cars"})
	g := mustStart(t, e, 4, 6)

	for _, r := range []rune{'1', ' ', '?', 'é'} {
		if _, err := e.Guess(g, r); err != ErrNotALetter {
			t.Errorf("Guess(%q) err = %v, want %v", r, err, ErrNotALetter)
		}
	}
}

func TestUppercaseGuessIsNormalized(t *testing.T) {
	e := newTestEngine(t, []string{"bass", "cats", "dogs", "cars"})
	g := mustStart(t, e, 4, 6)

	mustGuess(t, e, g, 'A')
	if got := string(g.Pattern); got != "_a__" {
		t.Errorf("pattern = %q, want %q", got, "_a__")
	}
	if _, err := e.Guess(g, 'a'); err != ErrAlreadyGuessed {
		t.Errorf("lowercase after uppercase err = %v, want %v", err, ErrAlreadyGuessed)
	}
}

// Exhaustively guessing the alphabet must terminate the game while
// holding the refinement invariants after every accepted guess:
// candidates never grow, blanks never reappear, and every survivor
// stays consistent with the pattern and the guessed-letter history.
func TestAlphabetRunHoldsInvariants(t *testing.T) {
	list := []string{
		"apple", "baker", "candy", "dance", "eagle", "fable", "giant",
		"happy", "igloo", "jolly", "knife", "lemon", "mango", "night",
		"ocean", "piano", "queen", "river", "stone", "tiger", "uncle",
	}
	e := newTestEngine(t, list)
	g := mustStart(t, e, 5, 8)

	prevCandidates := len(g.Candidates)
	prevBlanks := countBlanks(g.Pattern)

	for _, r := range "abcdefghijklmnopqrstuvwxyz" {
		if g.Finished {
			break
		}
		mustGuess(t, e, g, r)

		if len(g.Candidates) > prevCandidates {
			t.Fatalf("candidates grew after %q: %d -> %d", r, prevCandidates, len(g.Candidates))
		}
		if b := countBlanks(g.Pattern); b > prevBlanks {
			t.Fatalf("blanks grew after %q: %d -> %d", r, prevBlanks, b)
		} else {
			prevBlanks = b
		}
		prevCandidates = len(g.Candidates)

		if len(g.Candidates) == 0 {
			t.Fatal("candidate set emptied mid-game")
		}
		for _, w := range g.Candidates {
			checkConsistent(t, g, w)
		}
	}
	if !g.Finished {
		t.Error("game did not terminate within 26 distinct guesses")
	}
}

func TestSnapshotProjection(t *testing.T) {
	e := newTestEngine(t, []string{"bass", "cats", "dogs", "cars"})
	g := mustStart(t, e, 4, 6)
	mustGuess(t, e, g, 's')
	mustGuess(t, e, g, 'a')

	snap := g.Snapshot()
	if snap.GameID != g.ID {
		t.Errorf("snapshot id = %q, want %q", snap.GameID, g.ID)
	}
	if got, want := strings.Join(snap.GuessedLetters, ""), "as"; got != want {
		t.Errorf("guessed letters = %q, want %q (sorted)", got, want)
	}
	if snap.Pattern != string(g.Pattern) {
		t.Errorf("snapshot pattern = %q, want %q", snap.Pattern, g.Pattern)
	}
	if snap.RemainingWords != len(g.Candidates) {
		t.Errorf("remaining = %d, want %d", snap.RemainingWords, len(g.Candidates))
	}
}

// ----------------------------- helpers --------------------------------

func wantCandidates(t *testing.T, g *Game, want ...string) {
	t.Helper()
	if len(g.Candidates) != len(want) {
		t.Fatalf("candidates = %v, want %v", g.Candidates, want)
	}
	for _, w := range want {
		if !contains(g.Candidates, w) {
			t.Fatalf("candidates = %v, missing %q", g.Candidates, w)
		}
	}
}

func contains(ws []string, w string) bool {
	for _, x := range ws {
		if x == w {
			return true
		}
	}
	return false
}

func countBlanks(pattern []byte) int {
	n := 0
	for _, b := range pattern {
		if b == Blank {
			n++
		}
	}
	return n
}

// checkConsistent verifies w against the session's revealed pattern and
// guessed letters: revealed positions match exactly, and no guessed
// letter hides at a blank position.
func checkConsistent(t *testing.T, g *Game, w string) {
	t.Helper()
	for i := 0; i < len(w); i++ {
		if g.Pattern[i] != Blank {
			if w[i] != g.Pattern[i] {
				t.Fatalf("word %q conflicts with pattern %q at %d", w, g.Pattern, i)
			}
		} else if g.Guessed[w[i]] {
			t.Fatalf("word %q has guessed letter %q at blank position %d (pattern %q)", w, w[i], i, g.Pattern)
		}
	}
}
