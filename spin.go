package globe

import (
	"math"
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// AutoSpin turns the globe once per period about its own axis. It is advanced
// explicitly with Update; nothing runs in the background.
type AutoSpin struct {
	period  float32
	elapsed float32
	angle   float64
	enabled bool
	tween   *gween.Tween
}

// NewAutoSpin returns an enabled spin with the given period. Non-positive
// periods fall back to DefaultSpinPeriod.
func NewAutoSpin(period time.Duration) *AutoSpin {
	a := &AutoSpin{enabled: true}
	a.SetPeriod(period)
	return a
}

// SetPeriod changes the revolution time, keeping the current angle.
func (a *AutoSpin) SetPeriod(period time.Duration) {
	if period <= 0 {
		period = DefaultSpinPeriod
	}
	a.period = float32(period.Seconds())
	a.tween = gween.New(0, 2*math.Pi, a.period, ease.Linear)
	a.elapsed = float32(a.angle / (2 * math.Pi) * float64(a.period))
}

// Period returns the revolution time.
func (a *AutoSpin) Period() time.Duration {
	return time.Duration(float64(a.period) * float64(time.Second))
}

// SetEnabled starts or freezes the spin. Freezing keeps the current angle.
func (a *AutoSpin) SetEnabled(enabled bool) {
	a.enabled = enabled
}

// Enabled reports whether the spin advances on Update.
func (a *AutoSpin) Enabled() bool {
	return a.enabled
}

// Angle returns the current spin angle in [0, 2π).
func (a *AutoSpin) Angle() float64 {
	return a.angle
}

// Update advances the spin by dt seconds.
func (a *AutoSpin) Update(dt float32) {
	if !a.enabled || dt <= 0 {
		return
	}
	a.elapsed = float32(math.Mod(float64(a.elapsed)+float64(dt), float64(a.period)))
	v, _ := a.tween.Set(a.elapsed)
	a.angle = float64(v)
}
