package timer

import (
	"fmt"
	"time"
)

var DefaultPresets = []int{25, 15, 5}

const DefaultDuration = 25

// Countdown is the timer state. Values are copied on every transition, so a
// Countdown can be held in immutable application state.
type Countdown struct {
	Minutes  int
	Seconds  int
	Running  bool
	Duration int
}

func New(duration int) Countdown {
	if duration <= 0 {
		duration = DefaultDuration
	}
	return Countdown{Minutes: duration, Duration: duration}
}

// Toggle starts an idle countdown or pauses a running one. Starting from
// 00:00 restores the configured duration first.
func (c Countdown) Toggle() Countdown {
	if c.Running {
		c.Running = false
		return c
	}
	if c.Minutes == 0 && c.Seconds == 0 {
		c.Minutes = c.Duration
	}
	c.Running = true
	return c
}

func (c Countdown) Reset() Countdown {
	c.Running = false
	c.Minutes = c.Duration
	c.Seconds = 0
	return c
}

func (c Countdown) Select(duration int) Countdown {
	c.Duration = duration
	return c.Reset()
}

// Tick advances a running countdown by one second. The second result is true
// on the tick that reaches 00:00; the countdown is idle afterwards.
func (c Countdown) Tick() (Countdown, bool) {
	if !c.Running {
		return c, false
	}
	if c.Seconds == 0 {
		if c.Minutes == 0 {
			c.Running = false
			return c, true
		}
		c.Minutes--
		c.Seconds = 59
	} else {
		c.Seconds--
	}
	if c.Minutes == 0 && c.Seconds == 0 {
		c.Running = false
		return c, true
	}
	return c, false
}

func (c Countdown) Remaining() time.Duration {
	return time.Duration(c.Minutes)*time.Minute + time.Duration(c.Seconds)*time.Second
}

func (c Countdown) Progress() float64 {
	total := time.Duration(c.Duration) * time.Minute
	if total <= 0 {
		return 0
	}
	p := float64(total-c.Remaining()) / float64(total)
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

func (c Countdown) Display() string {
	return fmt.Sprintf("%02d:%02d", c.Minutes, c.Seconds)
}

func IsPreset(presets []int, minutes int) bool {
	for _, p := range presets {
		if p == minutes {
			return true
		}
	}
	return false
}
