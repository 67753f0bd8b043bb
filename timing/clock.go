// Package timing provides the frame clock that drives the per-frame update.
package timing

import "time"

const avgFpsSamples = 60

// Clock measures time between frames. It starts at zero on the first Tick,
// never resets and never goes backwards, even if the time source does.
type Clock struct {
	now func() time.Time

	started bool
	last    time.Time

	dt      float32
	elapsed float64

	dtSamples    [avgFpsSamples]float32
	dtSampleIdx  int
	dtSampleFill int
}

func NewClock() *Clock {
	return NewClockWithSource(time.Now)
}

// NewClockWithSource creates a clock that reads the current time from now.
// Mostly useful for tests that need to control time.
func NewClockWithSource(now func() time.Time) *Clock {
	return &Clock{now: now}
}

// Tick advances the clock and returns the seconds since the previous tick.
// The first tick returns 0.
func (c *Clock) Tick() float32 {

	t := c.now()
	if !c.started {
		c.started = true
		c.last = t
		c.dt = 0
		return 0
	}

	d := t.Sub(c.last)
	if d < 0 {
		d = 0
	} else {
		c.last = t
	}

	c.dt = float32(d.Seconds())
	c.elapsed += d.Seconds()

	c.dtSamples[c.dtSampleIdx] = c.dt
	c.dtSampleIdx = (c.dtSampleIdx + 1) % avgFpsSamples
	if c.dtSampleFill < avgFpsSamples {
		c.dtSampleFill++
	}

	return c.dt
}

// DT returns the delta of the last tick in seconds
func (c *Clock) DT() float32 {
	return c.dt
}

// Elapsed returns the seconds accumulated over all ticks
func (c *Clock) Elapsed() float32 {
	return float32(c.elapsed)
}

// AvgFPS returns the average frames per second over the last few frames, or 0 if unknown
func (c *Clock) AvgFPS() float32 {

	if c.dtSampleFill == 0 {
		return 0
	}

	var total float32
	for i := 0; i < c.dtSampleFill; i++ {
		total += c.dtSamples[i]
	}

	if total == 0 {
		return 0
	}

	return float32(c.dtSampleFill) / total
}
