package commands

// History keeps submitted terminal lines for recall with the arrow keys.
// The zero value is ready to use and keeps up to DefaultHistory lines.
type History struct {
	Limit int

	lines []string // oldest first
	pos   int      // == len(lines) when not browsing
}

// DefaultHistory is the line limit of a History with Limit 0.
const DefaultHistory = 50

// Add records line and stops browsing. A repeat of the newest line is not stored twice.
func (h *History) Add(line string) {
	if n := len(h.lines); line != "" && (n == 0 || h.lines[n-1] != line) {
		h.lines = append(h.lines, line)
		limit := h.Limit
		if limit <= 0 {
			limit = DefaultHistory
		}
		if len(h.lines) > limit {
			h.lines = h.lines[len(h.lines)-limit:]
		}
	}
	h.pos = len(h.lines)
}

// Prev returns the next older line, staying on the oldest.
func (h *History) Prev() string { return h.move(-1) }

// Next returns the next newer line; past the newest it returns "".
func (h *History) Next() string { return h.move(1) }

func (h *History) move(step int) string {
	h.pos = min(max(h.pos+step, 0), len(h.lines))
	if h.pos == len(h.lines) {
		return ""
	}
	return h.lines[h.pos]
}
