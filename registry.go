package rl

import (
	"log/slog"
	"sync"
)

const wordBits = 32

// Bit locates the state bit of one key id: a word index into a KeyState and
// a mask within that word.
type Bit struct {
	Word int
	Mask uint32
}

func bitAt(n int) Bit {
	return Bit{Word: n / wordBits, Mask: 1 << (n % wordBits)}
}

// commonSymbols are pre-registered as character ids, so that ordinary typing
// rarely has to grow key states.
var commonSymbols = []string{
	"`", "~", "!", "@", "#", "$", "%", "^", "&", "*", "(", ")", "-",
	"_", "=", "+", "[", "{", "]", "}", "\\", "|", ";", ":", "'", "\"",
	",", "<", ".", ">", "/", "?", "°", "´", "€", "§", "µ",
	"£", "¬", "¢", "±", "¶", "¤", "÷", "×", "№",
	"¦", "—", "·", "©", "‘", "’", "«", "»",
}

// Registry hands out state bits to key ids. Bits are assigned once, in
// first-seen order, and never reused. The registry only grows.
//
// A Registry may be shared by several Resolvers.
type Registry struct {
	mu     sync.RWMutex
	bits   map[KeyID]Bit
	next   int
	words  int
	logger *slog.Logger
}

// NewRegistry creates a registry seeded with the Unknown id, every id in the
// table and the common symbol character ids.
func NewRegistry(t *Table, logger *slog.Logger) *Registry {
	r := &Registry{
		bits:   make(map[KeyID]Bit),
		logger: orDiscard(logger),
	}
	r.assign(ID(KeyUnknown))
	for _, k := range t.Keys() {
		if _, ok := r.bits[ID(k)]; !ok {
			r.assign(ID(k))
		}
	}
	for _, s := range commonSymbols {
		if _, ok := r.bits[CharID(s)]; !ok {
			r.assign(CharID(s))
		}
	}
	r.words = 1 + r.next/wordBits
	return r
}

func (r *Registry) assign(id KeyID) Bit {
	b := bitAt(r.next)
	r.next++
	r.bits[id] = b
	return b
}

// Ensure returns the bit for id, assigning one if id is new. The second
// return value is true when the assignment widened key states by one word;
// KeyState widens itself on its next write.
func (r *Registry) Ensure(id KeyID) (Bit, bool) {
	b, _, grew := r.ensure(id)
	return b, grew
}

// ensure also returns the id that owns the bit, which is the character-derived
// fallback of id when id itself has no assignment.
func (r *Registry) ensure(id KeyID) (Bit, KeyID, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if b, ok := r.bits[id]; ok {
		return b, id, false
	}
	fb := id.fallback()
	if b, ok := r.bits[fb]; ok {
		return b, fb, false
	}
	b := r.assign(fb)
	grew := false
	if b.Word >= r.words {
		r.words++
		grew = true
	}
	r.logger.Debug("registered key id", "id", fb.String(), "word", b.Word, "mask", b.Mask, "grew", grew)
	return b, fb, grew
}

// Lookup returns the bit for id, or for its character-derived fallback,
// without assigning anything.
func (r *Registry) Lookup(id KeyID) (Bit, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if b, ok := r.bits[id]; ok {
		return b, true
	}
	b, ok := r.bits[id.fallback()]
	return b, ok
}

// Words returns the current key state width in 32-bit words.
func (r *Registry) Words() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.words
}

// Len returns the number of assigned ids.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.next
}
