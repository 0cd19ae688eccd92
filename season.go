package globe

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/soniakeys/meeus/v3/julian"
	"github.com/soniakeys/meeus/v3/solar"
)

// TiltModel selects how the seasonal axial tilt is derived from the calendar.
type TiltModel uint8

const (
	TiltApproximate TiltModel = iota // cosine of the days since the December solstice
	TiltEphemeris                    // apparent solar declination
)

// String returns the name used in configuration.
func (m TiltModel) String() string {
	switch m {
	case TiltEphemeris:
		return "ephemeris"
	default:
		return "approximate"
	}
}

// UnmarshalText parses "approximate" or "ephemeris".
func (m *TiltModel) UnmarshalText(text []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(text))) {
	case "", "approximate", "approx":
		*m = TiltApproximate
	case "ephemeris", "meeus":
		*m = TiltEphemeris
	default:
		return fmt.Errorf("unknown tilt model %q", text)
	}
	return nil
}

// DayOfYear returns the 1-based calendar day of t in t's location.
func DayOfYear(t time.Time) int {
	return t.YearDay()
}

// SeasonalTilt returns the axial tilt, in radians, for the given day of the
// year. The result is -23.5° at the December solstice (north pole tipped away
// from the sun), +23.5° half a year later and about zero at the equinoxes.
// Any integer is accepted; the result is periodic in 365.
func SeasonalTilt(dayOfYear int) float64 {
	days := (dayOfYear + daysAfterSolstice) % DaysInYear
	if days < 0 {
		days += DaysInYear
	}
	phase := float64(days) * 2 * math.Pi / DaysInYear
	return -math.Cos(phase) * mgl64.DegToRad(AxialTiltDegrees)
}

// EphemerisTilt returns the apparent declination of the sun at t, in
// radians. It has the same sign convention as SeasonalTilt but follows the
// real orbit.
func EphemerisTilt(t time.Time) float64 {
	jd := julian.TimeToJD(t.UTC())
	_, dec := solar.ApparentEquatorial(jd)
	return dec.Rad()
}

// TiltAt evaluates the model at t.
func (m TiltModel) TiltAt(t time.Time) float64 {
	if m == TiltEphemeris {
		return EphemerisTilt(t)
	}
	return SeasonalTilt(DayOfYear(t))
}

// seasonKey identifies a calendar day so the tilt is recomputed only when the
// date changes.
type seasonKey struct {
	year, day int
}

func seasonKeyOf(t time.Time) seasonKey {
	return seasonKey{year: t.Year(), day: t.YearDay()}
}
