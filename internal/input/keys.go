package input

import (
	"slices"
	"time"
)

// Key is a logical key name: a lowercase letter ("a"), " ", or one of the
// named keys below.
type Key string

const (
	KeyArrowLeft  Key = "ArrowLeft"
	KeyArrowUp    Key = "ArrowUp"
	KeyArrowRight Key = "ArrowRight"
	KeyArrowDown  Key = "ArrowDown"
	KeyEnter      Key = "Enter"
	KeyEscape     Key = "Escape"
	KeyBackspace  Key = "Backspace"
	KeySpace      Key = " "
)

// KeyMapping binds one player's four movement directions to keys.
type KeyMapping struct {
	Left  Key `toml:"left"`
	Up    Key `toml:"up"`
	Right Key `toml:"right"`
	Down  Key `toml:"down"`
}

// Keys returns the mapping's keys in left, up, right, down order.
func (m KeyMapping) Keys() [4]Key {
	return [4]Key{m.Left, m.Up, m.Right, m.Down}
}

// Translate converts k from its direction in from to the key bound to the
// same direction in m. Keys that from does not bind are returned unchanged.
func (m KeyMapping) Translate(k Key, from KeyMapping) Key {
	src, dst := from.Keys(), m.Keys()
	for i, fk := range src {
		if fk == k {
			return dst[i]
		}
	}
	return k
}

// DefaultHoldDuration is how long a key stays held after its last key-down
// when the source never reports key-up. Terminal auto-repeat refreshes it.
const DefaultHoldDuration = 500 * time.Millisecond

// Tracker records which keys are held, in the order they went down.
// Terminals auto-repeat only the most recently pressed key, so a key-down
// for any other held key is a fresh press and moves it to the end.
type Tracker struct {
	hold  time.Duration
	order []Key
	seen  map[Key]time.Time
}

// NewTracker creates a tracker. A hold of zero means keys stay down until
// Release is called.
func NewTracker(hold time.Duration) *Tracker {
	return &Tracker{
		hold: hold,
		seen: make(map[Key]time.Time),
	}
}

// Press records a key-down at now.
func (t *Tracker) Press(k Key, now time.Time) {
	if n := len(t.order); n == 0 || t.order[n-1] != k {
		t.order = slices.DeleteFunc(t.order, func(o Key) bool { return o == k })
		t.order = append(t.order, k)
	}
	t.seen[k] = now
}

// Release records a key-up.
func (t *Tracker) Release(k Key) {
	if _, held := t.seen[k]; !held {
		return
	}
	delete(t.seen, k)
	t.order = slices.DeleteFunc(t.order, func(o Key) bool { return o == k })
}

// Expire releases every key not refreshed within the hold duration.
func (t *Tracker) Expire(now time.Time) {
	if t.hold <= 0 {
		return
	}
	for _, k := range slices.Clone(t.order) {
		if now.Sub(t.seen[k]) >= t.hold {
			t.Release(k)
		}
	}
}

// Reset releases all keys.
func (t *Tracker) Reset() {
	t.order = t.order[:0]
	clear(t.seen)
}

// Snapshot captures the currently held keys.
func (t *Tracker) Snapshot() Snapshot {
	return Snapshot{order: slices.Clone(t.order)}
}

// Snapshot is an immutable view of held keys for one tick.
type Snapshot struct {
	order []Key // oldest press first
}

// Held reports whether k is down.
func (s Snapshot) Held(k Key) bool {
	return slices.Contains(s.order, k)
}

// Len returns the number of held keys.
func (s Snapshot) Len() int {
	return len(s.order)
}

// LatestPressed returns whichever of a and b went down more recently while
// still held. It reports false if neither is held.
func (s Snapshot) LatestPressed(a, b Key) (Key, bool) {
	ai := slices.Index(s.order, a)
	bi := slices.Index(s.order, b)
	switch {
	case ai == -1 && bi == -1:
		return "", false
	case ai > bi:
		return a, true
	default:
		return b, true
	}
}

// Translate returns a copy of s with each key rewritten by m.Translate.
func (s Snapshot) Translate(m, from KeyMapping) Snapshot {
	out := Snapshot{order: make([]Key, 0, len(s.order))}
	for _, k := range s.order {
		tk := m.Translate(k, from)
		// Two keys for one direction: the later press decides its position.
		out.order = slices.DeleteFunc(out.order, func(o Key) bool { return o == tk })
		out.order = append(out.order, tk)
	}
	return out
}
