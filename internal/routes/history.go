package routes

// History is a back stack of visited routes
type History struct {
	stack []Route
	limit int
}

// NewHistory keeps at most limit entries; older entries are dropped
func NewHistory(limit int) *History {
	if limit <= 0 {
		limit = 50
	}
	return &History{limit: limit}
}

// Push records r as the most recent route
func (h *History) Push(r Route) {
	h.stack = append(h.stack, r)
	if len(h.stack) > h.limit {
		h.stack = h.stack[len(h.stack)-h.limit:]
	}
}

// Pop removes and returns the most recent route
func (h *History) Pop() (Route, bool) {
	if len(h.stack) == 0 {
		return Route{}, false
	}
	r := h.stack[len(h.stack)-1]
	h.stack = h.stack[:len(h.stack)-1]
	return r, true
}

// Len returns the number of entries
func (h *History) Len() int {
	return len(h.stack)
}
