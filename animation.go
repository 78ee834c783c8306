package quill

import (
	"fmt"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Clock drives every Tween created from it. There is no global clock: the
// Scene owns one and advances it from Update, or callers advance their own.
type Clock struct {
	elapsed float64
	tweens  []*Tween
}

// NewClock creates a stopped clock at time zero.
func NewClock() *Clock {
	return &Clock{}
}

// Elapsed returns the total seconds advanced so far.
func (c *Clock) Elapsed() float64 {
	return c.elapsed
}

// Advance moves every live tween forward by dt seconds. Tweens whose value
// changed notify their subscribers. Disposed tweens are dropped.
func (c *Clock) Advance(dt float32) {
	c.elapsed += float64(dt)
	live := c.tweens[:0]
	for _, t := range c.tweens {
		if t.disposed {
			continue
		}
		t.advance(dt)
		live = append(live, t)
	}
	clear(c.tweens[len(live):])
	c.tweens = live
}

// Tween creates a tween from one value to another over duration seconds,
// attached to this clock.
func (c *Clock) Tween(from, to float64, duration float32, fn ease.TweenFunc) *Tween {
	if fn == nil {
		fn = ease.Linear
	}
	t := &Tween{
		tween:    gween.New(float32(from), float32(to), duration, fn),
		from:     from,
		to:       to,
		duration: duration,
		ease:     fn,
		value:    from,
	}
	c.tweens = append(c.tweens, t)
	return t
}

// Len returns the number of tweens still attached to the clock.
func (c *Clock) Len() int {
	return len(c.tweens)
}

// LoopMode controls what a Tween does when it reaches its end value.
type LoopMode uint8

const (
	LoopNone     LoopMode = iota // hold the end value
	LoopRestart                  // jump back to the start value
	LoopPingPong                 // run back towards the start value, then forward again
)

// Tween is an animated float64 driven by a Clock through a gween.Tween.
type Tween struct {
	tween    *gween.Tween
	from, to float64
	duration float32
	ease     ease.TweenFunc
	value    float64
	loop     LoopMode
	reversed bool
	done     bool
	disposed bool
	subs     subscribers
}

// SetLoop sets the loop behavior and returns t for chaining.
func (t *Tween) SetLoop(mode LoopMode) *Tween {
	t.loop = mode
	return t
}

func (t *Tween) advance(dt float32) {
	if t.done {
		return
	}
	val, finished := t.tween.Update(dt)
	prev := t.value
	t.value = float64(val)
	if finished {
		switch t.loop {
		case LoopRestart:
			t.tween.Reset()
		case LoopPingPong:
			t.reversed = !t.reversed
			begin, end := t.from, t.to
			if t.reversed {
				begin, end = end, begin
			}
			t.tween = gween.New(float32(begin), float32(end), t.duration, t.ease)
		default:
			t.done = true
		}
	}
	if t.value != prev {
		t.subs.notify()
	}
}

// Current returns the tween's value as a float64.
func (t *Tween) Current() (any, error) {
	if t.disposed {
		return nil, ErrDisposedValue
	}
	return t.value, nil
}

// Value returns the current value without the Animated wrapping.
func (t *Tween) Value() float64 {
	return t.value
}

// Done reports whether a non-looping tween has reached its end value.
func (t *Tween) Done() bool {
	return t.done
}

// Subscribe registers fn to run whenever Advance changes the value.
func (t *Tween) Subscribe(fn func()) (func(), error) {
	if t.disposed {
		return nil, ErrDisposedValue
	}
	return t.subs.add(fn), nil
}

// Dispose detaches the tween from its clock on the next Advance.
func (t *Tween) Dispose() {
	t.disposed = true
	t.subs.list = nil
}

func (t *Tween) String() string {
	return fmt.Sprintf("tween(%g -> %g)", t.from, t.to)
}
