package anim

import (
	"testing"
	"time"
)

func testClips() []Clip {
	return []Clip{
		{Name: "wind", Duration: time.Second},
		{Name: "swing", Duration: 500 * time.Millisecond},
	}
}

func TestPlayerAdvance(t *testing.T) {
	p := NewPlayer(testClips())
	p.Start("wind")

	p.Advance(400 * time.Millisecond)
	if p.Elapsed() != 400*time.Millisecond {
		t.Errorf("Expected 400ms elapsed, got %v", p.Elapsed())
	}
	if p.Finished() {
		t.Error("Clip finished early")
	}

	p.Advance(700 * time.Millisecond)
	if p.Elapsed() != time.Second {
		t.Errorf("Expected elapsed clamped at duration, got %v", p.Elapsed())
	}
	if !p.Finished() {
		t.Error("Expected clip finished")
	}
}

func TestPlayerNegativeSpeedClampsAtStart(t *testing.T) {
	p := NewPlayer(testClips())
	p.Start("wind")
	p.Advance(600 * time.Millisecond)

	// Cancelled wind plays back out of the pose it reached
	p.SetSpeed(-2.0)
	p.Advance(200 * time.Millisecond)
	if p.Elapsed() != 200*time.Millisecond {
		t.Errorf("Expected playhead at 200ms, got %v", p.Elapsed())
	}

	p.Advance(time.Second)
	if p.Elapsed() != 0 {
		t.Errorf("Expected playhead clamped at zero, got %v", p.Elapsed())
	}
	if p.Finished() {
		t.Error("Reversed clip must not report finished")
	}
}

func TestPlayerRepeatWraps(t *testing.T) {
	p := NewPlayer(testClips())
	p.Start("swing").Repeat()

	p.Advance(1200 * time.Millisecond)
	if p.Elapsed() != 200*time.Millisecond {
		t.Errorf("Expected wrapped playhead at 200ms, got %v", p.Elapsed())
	}
	if p.Finished() {
		t.Error("Repeating clip must not finish")
	}
}

func TestPlayerSpeedScalesAdvance(t *testing.T) {
	p := NewPlayer(testClips())
	p.Start("swing").SetSpeed(4.0)

	p.Advance(50 * time.Millisecond)
	if p.Elapsed() != 200*time.Millisecond {
		t.Errorf("Expected 4x advance, got %v", p.Elapsed())
	}
}

func TestPlayerSetElapsedClamps(t *testing.T) {
	p := NewPlayer(testClips())
	p.Start("wind")

	p.SetElapsed(5 * time.Second)
	if p.Elapsed() != time.Second {
		t.Errorf("Expected clamp to clip duration, got %v", p.Elapsed())
	}
	p.SetElapsed(-time.Second)
	if p.Elapsed() != 0 {
		t.Errorf("Expected clamp to zero, got %v", p.Elapsed())
	}
}
