package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"time"
)

// Guess budget bounds for the daily challenge (same range the CLI offers).
const (
	minGuesses = 6
	maxGuesses = 12
)

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// Settings derives the day's challenge parameters from HMAC(salt, YYYY-MM-DD).
// The adversarial engine never fixes an answer word, so the daily seed fixes
// the playing field instead: everyone gets the same word length and guess
// budget, and scores compare on misses and time.
func Settings(date time.Time, salt string, lengths []int) (wordLength int, guesses int) {
	if len(lengths) == 0 {
		return 0, 0
	}
	dk := DateKey(date)
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(dk))
	sum := h.Sum(nil)
	// first 8 bytes pick the length, next 8 the budget
	a := binary.BigEndian.Uint64(sum[:8])
	b := binary.BigEndian.Uint64(sum[8:16])
	wordLength = lengths[a%uint64(len(lengths))]
	guesses = minGuesses + int(b%uint64(maxGuesses-minGuesses+1))
	return wordLength, guesses
}
