package progress

// FrameTracker accumulates frame counts reported by the encoder. The
// counter never decreases and never exceeds the total-frame estimate;
// out-of-order or out-of-range reports are absorbed silently.
type FrameTracker struct {
	total   int
	current int
}

// NewFrameTracker returns a tracker for a file with the given total-frame
// estimate. A non-positive total means the percentage is unknown.
func NewFrameTracker(total int) *FrameTracker {
	return &FrameTracker{total: total}
}

// Set records an absolute frame count. Values below the current counter or
// non-positive values are ignored; values above the total are clamped.
// Returns true when the counter advanced.
func (t *FrameTracker) Set(frame int) bool {
	if frame <= 0 {
		return false
	}
	if t.total > 0 && frame > t.total {
		frame = t.total
	}
	if frame <= t.current {
		return false
	}
	t.current = frame
	return true
}

// Complete forces the counter to the total.
func (t *FrameTracker) Complete() {
	if t.total > 0 {
		t.current = t.total
	}
}

// Current returns the current frame count.
func (t *FrameTracker) Current() int { return t.current }

// Total returns the total-frame estimate.
func (t *FrameTracker) Total() int { return t.total }

// Percent returns progress as 0..100, or -1 when the total is unknown.
func (t *FrameTracker) Percent() float64 {
	if t.total <= 0 {
		return -1
	}
	return float64(t.current) / float64(t.total) * 100
}
