package words

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNewIndexFiltersAndGroups(t *testing.T) {
	ix := NewIndex([]string{
		"Cat", "  dog ", "bass", "cats",
		"don't",  // apostrophe: dropped
		"über",   // non-ascii: dropped
		"a1b",    // digit: dropped
		"",       // blank: dropped
		"cat",    // duplicate of "Cat": dropped
	})

	if got := ix.WordsOf(3); len(got) != 2 {
		t.Errorf("WordsOf(3) = %v, want 2 words", got)
	}
	if got := ix.WordsOf(4); len(got) != 2 {
		t.Errorf("WordsOf(4) = %v, want 2 words", got)
	}
	if got := ix.WordsOf(7); got != nil {
		t.Errorf("WordsOf(7) = %v, want nil", got)
	}
	if lengths, total := ix.Stats(); lengths != 2 || total != 4 {
		t.Errorf("Stats() = (%d, %d), want (2, 4)", lengths, total)
	}
}

func TestWordsOfIsSorted(t *testing.T) {
	ix := NewIndex([]string{"dogs", "bass", "cats", "cars"})
	got := ix.WordsOf(4)
	want := []string{"bass", "cars", "cats", "dogs"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("WordsOf(4) = %v, want %v", got, want)
		}
	}
}

func TestLengthsAppliesPlayabilityFilter(t *testing.T) {
	var list []string
	// 12 three-letter words: suggested.
	for _, w := range []string{"cat", "dog", "run", "sun", "map", "car", "bat", "hat", "rat", "mat", "fan", "tan"} {
		list = append(list, w)
	}
	// Only 5 four-letter words: playable but not suggested.
	list = append(list, "bass", "cats", "dogs", "cars", "word")
	// 11 two-letter words: big enough pool but below the length floor.
	for _, w := range []string{"ab", "ad", "am", "an", "as", "at", "be", "by", "do", "go", "he"} {
		list = append(list, w)
	}

	ix := NewIndex(list)
	got := ix.Lengths()
	if len(got) != 1 || got[0] != 3 {
		t.Errorf("Lengths() = %v, want [3]", got)
	}
}

func TestLoadFileUTF8(t *testing.T) {
	path := writeDict(t, []byte("bass\ncats\nDOGS\n# not a comment format here, but non-alpha anyway\n"))
	ix, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if got := ix.WordsOf(4); len(got) != 3 {
		t.Errorf("WordsOf(4) = %v, want 3 words", got)
	}
}

func TestLoadFileLatin1Fallback(t *testing.T) {
	// "café\nbass\n" in Latin-1; 0xE9 is invalid UTF-8 so the decoder
	// falls back. The accented word is then dropped by the alpha filter
	// while the rest of the file survives.
	raw := []byte{'c', 'a', 'f', 0xE9, '\n', 'b', 'a', 's', 's', '\n', 'c', 'a', 't', 's', '\n'}
	path := writeDict(t, raw)

	ix, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if got := ix.WordsOf(4); len(got) != 2 {
		t.Errorf("WordsOf(4) = %v, want [bass cats]", got)
	}
}

func TestLoadFileEmptyAfterFiltering(t *testing.T) {
	path := writeDict(t, []byte("123\n!!!\n\n"))
	if _, err := LoadFile(path); err == nil {
		t.Error("LoadFile on all-invalid input should fail")
	}
}

func TestLoadFileMissing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "absent.txt")); err == nil {
		t.Error("LoadFile on missing file should fail")
	}
}

func TestLoadUsesEmbeddedDefault(t *testing.T) {
	t.Setenv("DICTIONARY_FILE", "")
	ix, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	lengths := ix.Lengths()
	if len(lengths) == 0 {
		t.Fatal("embedded dictionary suggests no lengths")
	}
	for _, n := range lengths {
		if n < 3 {
			t.Errorf("suggested length %d below floor", n)
		}
		if len(ix.WordsOf(n)) <= 10 {
			t.Errorf("suggested length %d has only %d words", n, len(ix.WordsOf(n)))
		}
	}
}

func TestLoadUsesEnvFile(t *testing.T) {
	path := writeDict(t, []byte("bass\ncats\ndogs\ncars\n"))
	t.Setenv("DICTIONARY_FILE", path)

	ix, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if _, total := ix.Stats(); total != 4 {
		t.Errorf("total = %d, want 4", total)
	}
}

func writeDict(t *testing.T, raw []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dict.txt")
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatalf("write dict: %v", err)
	}
	return path
}
