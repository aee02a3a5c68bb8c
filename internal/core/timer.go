package core

import "time"

// BaseTick is the interval of the driver clock at which speed multipliers
// are expressed.
const BaseTick = 125 * time.Millisecond

// FixedStep helps run driver updates at a steady ticks-per-second rate.
type FixedStep struct {
	step        time.Duration
	accumulator time.Duration
	last        time.Time
}

// NewFixedStep constructs a FixedStep controller firing every interval.
func NewFixedStep(interval time.Duration) *FixedStep {
	fs := &FixedStep{}
	fs.SetInterval(interval)
	fs.accumulator = fs.step
	return fs
}

// SetInterval changes the tick interval. It is safe to call from the main loop.
func (f *FixedStep) SetInterval(interval time.Duration) {
	if interval <= 0 {
		interval = BaseTick
	}
	f.step = interval
}

// ShouldStep reports whether the driver clock has ticked.
func (f *FixedStep) ShouldStep() bool {
	now := time.Now()
	if f.last.IsZero() {
		f.last = now
	}
	delta := now.Sub(f.last)
	f.last = now
	f.accumulator += delta
	if f.accumulator >= f.step {
		f.accumulator -= f.step
		return true
	}
	return false
}

// Speeds lists the supported speed multipliers.
var Speeds = []int{1, 2, 4, 8}

// ValidSpeed reports whether s is one of Speeds.
func ValidSpeed(s int) bool {
	for _, v := range Speeds {
		if v == s {
			return true
		}
	}
	return false
}

// Pacer divides driver ticks into simulation steps: at speed 1 one step
// fires every 8 ticks, at speed 8 on every tick.
type Pacer struct {
	speed   int
	counter int
}

// NewPacer constructs a Pacer at the given speed multiplier.
func NewPacer(speed int) *Pacer {
	p := &Pacer{}
	p.SetSpeed(speed)
	return p
}

// Speed returns the current multiplier.
func (p *Pacer) Speed() int { return p.speed }

// SetSpeed changes the multiplier; unsupported values fall back to 1.
func (p *Pacer) SetSpeed(speed int) {
	if !ValidSpeed(speed) {
		speed = 1
	}
	p.speed = speed
}

// NextSpeed cycles 1 -> 2 -> 4 -> 1, skipping 8 like the toolbar button.
func (p *Pacer) NextSpeed() int {
	switch p.speed {
	case 1:
		p.speed = 2
	case 2:
		p.speed = 4
	default:
		p.speed = 1
	}
	return p.speed
}

// Tick registers one driver tick and reports whether a step is due.
func (p *Pacer) Tick() bool {
	p.counter++
	if p.counter >= 8/p.speed {
		p.counter = 0
		return true
	}
	return false
}

// Reset clears any partial tick count.
func (p *Pacer) Reset() { p.counter = 0 }
