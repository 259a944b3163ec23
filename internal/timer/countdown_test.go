package timer

import (
	"testing"

	"pgregory.net/rapid"
)

func TestCountdownCompletesAfterDurationTicks(t *testing.T) {
	for _, minutes := range []int{1, 5, 25} {
		c := New(minutes).Toggle()
		completions := 0
		for i := 0; i < minutes*60; i++ {
			var done bool
			c, done = c.Tick()
			if done {
				completions++
				if i != minutes*60-1 {
					t.Fatalf("duration %d: completed early at tick %d", minutes, i+1)
				}
			}
		}
		if completions != 1 {
			t.Fatalf("duration %d: completions = %d, want 1", minutes, completions)
		}
		if c.Display() != "00:00" || c.Running {
			t.Fatalf("duration %d: unexpected end state %+v", minutes, c)
		}

		var done bool
		c, done = c.Tick()
		if done {
			t.Fatalf("duration %d: idle countdown signalled completion again", minutes)
		}
	}
}

func TestCountdownTickBorrowsMinute(t *testing.T) {
	c := New(2).Toggle()
	c, _ = c.Tick()
	if c.Minutes != 1 || c.Seconds != 59 {
		t.Fatalf("expected 01:59, got %s", c.Display())
	}
	c, _ = c.Tick()
	if c.Display() != "01:58" {
		t.Fatalf("expected 01:58, got %s", c.Display())
	}
}

func TestCountdownPausePreservesRemaining(t *testing.T) {
	c := New(5).Toggle()
	for i := 0; i < 10; i++ {
		c, _ = c.Tick()
	}
	c = c.Toggle()
	if c.Running || c.Display() != "04:50" {
		t.Fatalf("unexpected paused state: %+v", c)
	}
	paused, _ := c.Tick()
	if paused != c {
		t.Fatalf("tick changed a paused countdown: %+v", paused)
	}
}

func TestCountdownToggleFromZeroRestoresDuration(t *testing.T) {
	c := Countdown{Duration: 15}
	c = c.Toggle()
	if !c.Running || c.Minutes != 15 || c.Seconds != 0 {
		t.Fatalf("unexpected state: %+v", c)
	}
}

func TestCountdownSelectResets(t *testing.T) {
	c := New(25).Toggle()
	c, _ = c.Tick()
	c = c.Select(5)
	if c.Running || c.Duration != 5 || c.Display() != "05:00" {
		t.Fatalf("unexpected state after select: %+v", c)
	}
}

func TestCountdownResetFromAnyState(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		duration := rapid.SampledFrom(DefaultPresets).Draw(t, "duration")
		c := New(duration)
		steps := rapid.SliceOf(rapid.IntRange(0, 2)).Draw(t, "steps")
		for _, step := range steps {
			switch step {
			case 0:
				c = c.Toggle()
			default:
				c, _ = c.Tick()
			}
		}
		c = c.Reset()
		if c.Minutes != duration || c.Seconds != 0 || c.Running {
			t.Fatalf("reset produced %+v for duration %d", c, duration)
		}
	})
}

func TestCountdownProgress(t *testing.T) {
	c := New(1)
	if c.Progress() != 0 {
		t.Fatalf("expected 0 progress, got %f", c.Progress())
	}
	c = c.Toggle()
	for i := 0; i < 30; i++ {
		c, _ = c.Tick()
	}
	if c.Progress() != 0.5 {
		t.Fatalf("expected 0.5 progress, got %f", c.Progress())
	}
	if !IsPreset(DefaultPresets, 15) || IsPreset(DefaultPresets, 7) {
		t.Fatal("unexpected preset membership")
	}
}
