// internal/words/words.go
//
// Dictionary management for the hangman engine.
//
// Responsibilities:
//   - Load a word list from an environment-provided file or fall back to
//     the embedded default dictionary.
//   - Index words by length for the engine's candidate pools.
//   - Expose the playable-lengths filter used by the public API.
//
// Initialization behavior (Load):
//   1. If DICTIONARY_FILE is set, read that file. Bytes that are not
//      valid UTF-8 are re-decoded as Windows-1252, then Latin-1.
//   2. Otherwise use the embedded default list from the assets package.
//
// Constraints:
//   • Only fully alphabetic words (a–z) are kept.
//   • Words are normalized to lowercase.
//   • The index is immutable once built; safe for concurrent readers.

package words

import (
	"bufio"
	"bytes"
	"errors"
	"os"
	"sort"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"github.com/calegray/evil-hangman/assets"
)

// Playable-lengths filter: a length is only suggested when the pool is
// big enough to make the adversarial refinement interesting.
const (
	minSuggestedLength = 3
	minSuggestedPool   = 11
)

// Index maps word length to the words of exactly that length.
type Index struct {
	byLength map[int][]string
	total    int
}

// Load builds an Index from DICTIONARY_FILE if set, otherwise from the
// embedded default dictionary.
func Load() (*Index, error) {
	if path := os.Getenv("DICTIONARY_FILE"); path != "" {
		return LoadFile(path)
	}
	list, err := assets.DictionaryList()
	if err != nil {
		return nil, err
	}
	return NewIndex(list), nil
}

// LoadFile builds an Index from a newline-delimited word file.
func LoadFile(path string) (*Index, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	text := decodeText(raw)

	var list []string
	sc := bufio.NewScanner(strings.NewReader(text))
	for sc.Scan() {
		list = append(list, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	ix := NewIndex(list)
	if ix.total == 0 {
		return nil, errors.New("words: dictionary is empty after filtering")
	}
	return ix, nil
}

// decodeText returns raw as a string, re-decoding legacy single-byte
// encodings when the bytes are not valid UTF-8.
func decodeText(raw []byte) string {
	if utf8.Valid(raw) {
		return string(raw)
	}
	for _, cm := range []*charmap.Charmap{charmap.Windows1252, charmap.ISO8859_1} {
		if out, err := cm.NewDecoder().Bytes(raw); err == nil {
			return string(out)
		}
	}
	// bytes.Runes never fails; last resort keeps the loader total.
	return string(bytes.Runes(raw))
}

// NewIndex filters, normalizes, and groups a word list by length.
// Non-alphabetic entries are dropped.
func NewIndex(list []string) *Index {
	ix := &Index{byLength: make(map[int][]string)}
	seen := make(map[string]struct{}, len(list))
	for _, w := range list {
		w = strings.TrimSpace(strings.ToLower(w))
		if w == "" || !isAlpha(w) {
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		ix.byLength[len(w)] = append(ix.byLength[len(w)], w)
		ix.total++
	}
	// Keep each pool sorted so candidate enumeration order is stable.
	for _, ws := range ix.byLength {
		sort.Strings(ws)
	}
	return ix
}

// WordsOf returns the words of exactly length n, or nil if none exist.
// Callers must not mutate the returned slice.
func (ix *Index) WordsOf(n int) []string {
	return ix.byLength[n]
}

// Lengths returns the lengths worth offering to players: at least 3
// letters and strictly more than 10 words, sorted ascending.
func (ix *Index) Lengths() []int {
	var out []int
	for n, ws := range ix.byLength {
		if n >= minSuggestedLength && len(ws) >= minSuggestedPool {
			out = append(out, n)
		}
	}
	sort.Ints(out)
	return out
}

// Stats returns the number of distinct lengths and total words indexed.
func (ix *Index) Stats() (lengths int, total int) {
	return len(ix.byLength), ix.total
}

// isAlpha reports whether s is all lowercase ASCII letters.
func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}
