package progress

import "testing"

func TestFrameTracker_Monotonic(t *testing.T) {
	tr := NewFrameTracker(1000)

	// Arbitrary ordered/unordered sequence including out-of-range values.
	frames := []int{10, 50, 30, 50, 200, 150, -5, 0, 5000, 900}
	for _, f := range frames {
		before := tr.Current()
		tr.Set(f)
		if tr.Current() < before {
			t.Fatalf("counter decreased: %d -> %d after Set(%d)", before, tr.Current(), f)
		}
		if tr.Current() > tr.Total() {
			t.Fatalf("counter exceeded total: %d > %d after Set(%d)", tr.Current(), tr.Total(), f)
		}
	}

	// 5000 was clamped to the total of 1000.
	if tr.Current() != 1000 {
		t.Errorf("Current() = %d, want 1000", tr.Current())
	}
}

func TestFrameTracker_SetReturnsAdvanced(t *testing.T) {
	tr := NewFrameTracker(100)
	if !tr.Set(10) {
		t.Error("Set(10) = false, want true")
	}
	if tr.Set(10) {
		t.Error("repeated Set(10) = true, want false")
	}
	if tr.Set(5) {
		t.Error("Set(5) after 10 = true, want false")
	}
	if tr.Set(0) || tr.Set(-1) {
		t.Error("non-positive Set() = true, want false")
	}
}

func TestFrameTracker_Percent(t *testing.T) {
	tr := NewFrameTracker(200)
	tr.Set(50)
	if got := tr.Percent(); got != 25.0 {
		t.Errorf("Percent() = %v, want 25", got)
	}
	tr.Complete()
	if got := tr.Percent(); got != 100.0 {
		t.Errorf("Percent() after Complete = %v, want 100", got)
	}

	unknown := NewFrameTracker(0)
	if got := unknown.Percent(); got != -1 {
		t.Errorf("Percent() with unknown total = %v, want -1", got)
	}
}
