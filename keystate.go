package rl

import (
	"fmt"
	"slices"
)

// KeyState is the set of keys that are currently held, one bit per key id.
//
// A KeyState is bound to the Registry that created it and widens itself
// whenever the registry has grown, so a handle never goes stale. The
// mutating methods return the receiver for chaining.
type KeyState struct {
	reg   *Registry
	words []uint32
}

// NewKeyState returns a key state with no keys held, as wide as the registry
// currently is.
func (r *Registry) NewKeyState() *KeyState {
	return &KeyState{reg: r, words: make([]uint32, r.Words())}
}

// fit widens the state to the registry's current width.
func (s *KeyState) fit() {
	if n := s.reg.Words(); len(s.words) < n {
		w := make([]uint32, n)
		copy(w, s.words)
		s.words = w
	}
}

// Clone returns an independent copy, widened to the registry's current width.
func (s *KeyState) Clone() *KeyState {
	c := s.reg.NewKeyState()
	if len(s.words) > len(c.words) {
		c.words = make([]uint32, len(s.words))
	}
	copy(c.words, s.words)
	return c
}

// ClearAll releases every key.
func (s *KeyState) ClearAll() *KeyState {
	clear(s.words)
	return s
}

// Test reports whether the key is held. Ids the registry has never seen are
// not held.
func (s *KeyState) Test(id KeyID) bool {
	if s == nil {
		return false
	}
	b, ok := s.reg.Lookup(id)
	return ok && s.test(b)
}

// Set marks the key as held, registering id first if needed.
func (s *KeyState) Set(id KeyID) *KeyState {
	b, _ := s.reg.Ensure(id)
	s.setBit(b)
	return s
}

// Clear marks the key as released, registering id first if needed.
func (s *KeyState) Clear(id KeyID) *KeyState {
	b, _ := s.reg.Ensure(id)
	s.clearBit(b)
	return s
}

func (s *KeyState) test(b Bit) bool {
	return b.Word < len(s.words) && s.words[b.Word]&b.Mask != 0
}

func (s *KeyState) setBit(b Bit) {
	s.fit()
	s.words[b.Word] |= b.Mask
}

func (s *KeyState) clearBit(b Bit) {
	s.fit()
	s.words[b.Word] &^= b.Mask
}

// Len returns the width of the state in 32-bit words.
func (s *KeyState) Len() int {
	return len(s.words)
}

// Words returns a copy of the state words.
func (s *KeyState) Words() []uint32 {
	return slices.Clone(s.words)
}

// Empty reports whether no key is held.
func (s *KeyState) Empty() bool {
	for _, w := range s.words {
		if w != 0 {
			return false
		}
	}
	return true
}

// Equal reports whether both states hold the same keys. A narrower state is
// treated as if its missing words were zero.
func (s *KeyState) Equal(o *KeyState) bool {
	n := max(len(s.words), len(o.words))
	for i := 0; i < n; i++ {
		if word(s.words, i) != word(o.words, i) {
			return false
		}
	}
	return true
}

func word(ws []uint32, i int) uint32 {
	if i < len(ws) {
		return ws[i]
	}
	return 0
}

// BitRows renders the state as rows of 16 bits, most significant half-word
// first.
func (s *KeyState) BitRows() []string {
	rows := make([]string, 0, len(s.words)*2)
	for i := len(s.words) - 1; i >= 0; i-- {
		bits := fmt.Sprintf("%032b", s.words[i])
		rows = append(rows, bits[:16], bits[16:])
	}
	return rows
}
