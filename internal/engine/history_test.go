package engine

import "testing"

func TestHistoryBoundedFIFO(t *testing.T) {
	h := NewHistory(5)

	for i := 0; i < 12; i++ {
		h.Push(float64(i))
	}

	if h.Len() != 5 {
		t.Fatalf("expected length 5 after overfilling, got %d", h.Len())
	}
	if h.Cap() != 5 {
		t.Errorf("expected capacity 5, got %d", h.Cap())
	}

	got := h.Values()
	want := []float64{7, 8, 9, 10, 11}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("values[%d]: expected %v, got %v", i, want[i], got[i])
		}
	}
}

func TestHistoryPartialFill(t *testing.T) {
	h := NewHistory(10)
	h.Push(1)
	h.Push(2)
	h.Push(3)

	if h.Len() != 3 {
		t.Errorf("expected length 3, got %d", h.Len())
	}
	got := h.Values()
	want := []float64{1, 2, 3}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("values[%d]: expected %v, got %v", i, want[i], got[i])
		}
	}
}

func TestHistoryLast(t *testing.T) {
	h := NewHistory(3)
	if h.Last() != 0 {
		t.Errorf("expected 0 from empty history, got %v", h.Last())
	}
	h.Push(4)
	h.Push(7)
	if h.Last() != 7 {
		t.Errorf("expected last 7, got %v", h.Last())
	}
	h.Push(1)
	h.Push(2) // evicts 4
	if h.Last() != 2 {
		t.Errorf("expected last 2 after wrap, got %v", h.Last())
	}
}

func TestHistoryClear(t *testing.T) {
	h := NewHistory(4)
	h.Push(1)
	h.Push(2)
	h.Clear()

	if h.Len() != 0 {
		t.Errorf("expected length 0 after clear, got %d", h.Len())
	}
	if len(h.Values()) != 0 {
		t.Errorf("expected no values after clear, got %v", h.Values())
	}
}

func TestHistoryMinCapacity(t *testing.T) {
	h := NewHistory(0)
	h.Push(5)
	if h.Cap() != 1 || h.Len() != 1 {
		t.Errorf("expected cap 1 len 1, got cap %d len %d", h.Cap(), h.Len())
	}
}
