package engine

// History is a fixed-capacity ring buffer of scalar samples used for trailing
// graphs. Once full, each Push evicts the oldest sample; length never exceeds
// capacity by construction.
type History struct {
	buf   []float64
	head  int
	count int
}

func NewHistory(capacity int) *History {
	if capacity < 1 {
		capacity = 1
	}
	return &History{buf: make([]float64, capacity)}
}

func (h *History) Push(v float64) {
	h.buf[h.head] = v
	h.head = (h.head + 1) % len(h.buf)
	if h.count < len(h.buf) {
		h.count++
	}
}

func (h *History) Len() int { return h.count }

func (h *History) Cap() int { return len(h.buf) }

// Last returns the most recent sample, or 0 when empty.
func (h *History) Last() float64 {
	if h.count == 0 {
		return 0
	}
	return h.buf[(h.head-1+len(h.buf))%len(h.buf)]
}

// Values returns the samples in arrival order, oldest first. The slice is
// freshly allocated; callers may keep it.
func (h *History) Values() []float64 {
	out := make([]float64, h.count)
	start := h.head - h.count
	if start < 0 {
		start += len(h.buf)
	}
	for i := 0; i < h.count; i++ {
		out[i] = h.buf[(start+i)%len(h.buf)]
	}
	return out
}

func (h *History) Clear() {
	h.head = 0
	h.count = 0
}
