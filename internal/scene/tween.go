package scene

import (
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// QuadraticInOut accelerates through the first half and decelerates
// through the second.
func QuadraticInOut(k float64) float64 {
	return float64(ease.InOutQuad(float32(k), 0, 1, 1))
}

// Tween animates a float slice in place from its current values to a set
// of end values, one gween tween per element.
type Tween struct {
	target     []float64
	to         []float64
	slots      []*gween.Tween
	last       time.Time
	onComplete func()
	done       bool
}

// OnComplete registers fn to run once the tween reaches its end values.
func (t *Tween) OnComplete(fn func()) *Tween {
	t.onComplete = fn
	return t
}

// Done reports whether the tween has reached its end values.
func (t *Tween) Done() bool {
	return t.done
}

// step advances every element to now and reports whether the tween is
// finished.
func (t *Tween) step(now time.Time) bool {
	dt := now.Sub(t.last)
	if dt < 0 {
		dt = 0
	}
	t.last = now

	finished := true
	for i, s := range t.slots {
		v, ok := s.Update(float32(dt.Seconds()))
		if !ok {
			t.target[i] = float64(v)
			finished = false
		}
	}
	if finished {
		copy(t.target, t.to)
	}
	return finished
}

// Tweens runs a set of tweens and counts the ones still in flight.
type Tweens struct {
	active []*Tween
}

// Start begins animating target toward to, which must be as long as
// target. A running tween on the same slice is replaced, continuing from
// the slice's current values.
func (m *Tweens) Start(target, to []float64, d time.Duration, now time.Time) *Tween {
	if len(target) == 0 {
		return &Tween{done: true}
	}
	for i, t := range m.active {
		if &t.target[0] == &target[0] {
			m.active = append(m.active[:i], m.active[i+1:]...)
			break
		}
	}
	t := &Tween{
		target: target,
		to:     append([]float64(nil), to...),
		slots:  make([]*gween.Tween, len(target)),
		last:   now,
	}
	for i := range target {
		t.slots[i] = gween.New(float32(target[i]), float32(to[i]), float32(d.Seconds()), ease.InOutQuad)
	}
	m.active = append(m.active, t)
	return t
}

// Update steps every tween to now. It returns true while any tween is
// still running.
func (m *Tweens) Update(now time.Time) bool {
	kept := m.active[:0]
	var finished []*Tween
	for _, t := range m.active {
		if t.step(now) {
			t.done = true
			finished = append(finished, t)
			continue
		}
		kept = append(kept, t)
	}
	m.active = kept
	for _, t := range finished {
		if t.onComplete != nil {
			t.onComplete()
		}
	}
	return len(m.active) > 0
}

// Running returns the number of tweens in flight.
func (m *Tweens) Running() int {
	return len(m.active)
}
