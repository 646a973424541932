package jcodec

import "testing"

func matchAll(m *StringMatrix, s string) int {
	mask := m.Initial()
	length := 0
	for _, r := range s {
		mask = m.Update(mask, length, r)
		length++
	}
	mask = m.Exact(mask, length)
	return m.First(mask)
}

func TestStringMatrixExactMatch(t *testing.T) {
	m := NewStringMatrix([]string{"id", "name", "nickname"})
	cases := map[string]int{
		"id":       0,
		"name":     1,
		"nickname": 2,
		"nick":     -1,
		"names":    -1,
		"":         -1,
	}
	for in, want := range cases {
		if got := matchAll(m, in); got != want {
			t.Errorf("match(%q) = %d, want %d", in, got, want)
		}
	}
}

func TestStringMatrixPrefixDisambiguation(t *testing.T) {
	// "a" and "ab" share a prefix; both must resolve correctly.
	m := NewStringMatrix([]string{"a", "ab"})
	if got := matchAll(m, "a"); got != 0 {
		t.Errorf("match(a) = %d, want 0", got)
	}
	if got := matchAll(m, "ab"); got != 1 {
		t.Errorf("match(ab) = %d, want 1", got)
	}
}

func TestStringMatrixPanicsOnEmptyCandidate(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	NewStringMatrix([]string{"ok", ""})
}

func TestStringMatrixPanicsOnNoCandidates(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	NewStringMatrix(nil)
}

func TestStringMatrixMaxCandidates(t *testing.T) {
	names := make([]string, MaxMatrixCandidates)
	for i := range names {
		names[i] = string(rune('A'+i%26)) + string(rune('a'+i/26))
	}
	m := NewStringMatrix(names)
	for i, n := range names {
		if got := matchAll(m, n); got != i {
			t.Errorf("match(%q) = %d, want %d", n, got, i)
		}
	}
}

func TestStringMatrixTooManyCandidatesPanics(t *testing.T) {
	names := make([]string, MaxMatrixCandidates+1)
	for i := range names {
		names[i] = string(rune('a'+i%26)) + string(rune('A'+i/26))
	}
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	NewStringMatrix(names)
}
