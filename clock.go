package lumen

import (
	"time"
)

// Stopwatch measures elapsed wall-clock time since creation or the last
// reset.
type Stopwatch struct {
	start time.Time
	now   func() time.Time
}

func NewStopwatch() *Stopwatch {
	sw := &Stopwatch{now: time.Now}
	sw.Reset()
	return sw
}

func (s *Stopwatch) Reset() {
	s.start = s.now()
}

func (s *Stopwatch) Seconds() float32 {
	return float32(s.now().Sub(s.start).Seconds())
}

// MovingAverage smooths a stream of samples over a fixed window.
type MovingAverage struct {
	samples []float32
	next    int
	count   int
	sum     float32
}

func NewMovingAverage(window int) *MovingAverage {
	if window < 1 {
		window = 1
	}
	return &MovingAverage{samples: make([]float32, window)}
}

// Smooth folds in one sample and returns the current windowed average.
func (m *MovingAverage) Smooth(value float32) float32 {
	if m.count == len(m.samples) {
		m.sum -= m.samples[m.next]
	} else {
		m.count++
	}
	m.samples[m.next] = value
	m.sum += value
	m.next = (m.next + 1) % len(m.samples)
	return m.sum / float32(m.count)
}

// Update is the per-frame timing report.
type Update struct {
	FrameCount       uint32
	WallClockElapsed float32
	FrameElapsed     float32
	FrameTime        float32
	FrameTimeSmooth  float32
	Fps              float32
}

// FrameClock tracks frame timing across the render loop.
type FrameClock struct {
	wallClock    *Stopwatch
	frameStart   *Stopwatch
	frameSmooth  *MovingAverage
	frameCount   uint32
	frameElapsed float32
}

func NewFrameClock() *FrameClock {
	return &FrameClock{
		wallClock:   NewStopwatch(),
		frameStart:  NewStopwatch(),
		frameSmooth: NewMovingAverage(120),
	}
}

// Tick closes the current frame and reports its timing.
func (c *FrameClock) Tick() Update {
	frameTime := c.frameStart.Seconds()
	frameTimeSmooth := c.frameSmooth.Smooth(frameTime)

	c.frameElapsed += frameTime
	c.frameStart.Reset()
	c.frameCount++

	fps := float32(0)
	if frameTimeSmooth > 0 {
		fps = 1 / frameTimeSmooth
	}

	return Update{
		FrameCount:       c.frameCount,
		WallClockElapsed: c.wallClock.Seconds(),
		FrameElapsed:     c.frameElapsed,
		FrameTime:        frameTime,
		FrameTimeSmooth:  frameTimeSmooth,
		Fps:              fps,
	}
}
