package guard

// Recency is a small fixed-size ring of recently served messages, used by
// message pickers to avoid repeating themselves back to back. It is
// process-local, never persisted, and must be explicitly constructed and
// passed to whoever needs it rather than living as package state.
type Recency struct {
	items []string
	max   int
}

// NewRecency creates a recency buffer holding up to size entries. The
// oldest entry is evicted on overflow.
func NewRecency(size int) *Recency {
	if size < 1 {
		size = 1
	}
	return &Recency{max: size}
}

// Seen reports whether the message is still in the buffer.
func (r *Recency) Seen(msg string) bool {
	for _, m := range r.items {
		if m == msg {
			return true
		}
	}
	return false
}

// Remember records a served message, evicting the oldest entry when full.
func (r *Recency) Remember(msg string) {
	r.items = append(r.items, msg)
	if len(r.items) > r.max {
		r.items = r.items[1:]
	}
}

// Reset clears the buffer. Tests use this for isolation between cases.
func (r *Recency) Reset() {
	r.items = nil
}
