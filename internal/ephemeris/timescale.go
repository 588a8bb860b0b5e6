// Package ephemeris converts wall-clock time into the ephemeris time scale
// used by planetary theories, and orients and places solar system bodies
// from positions supplied by an external Source.
package ephemeris

import (
	"time"

	"github.com/soniakeys/meeus/v3/julian"
)

// Time scale constants.
const (
	// LeapSeconds is the fixed TAI-UTC offset. Historical leap seconds are
	// not tracked.
	LeapSeconds = 37.0
	// TTOffset is the TT-TAI offset.
	TTOffset = 32.184

	SecondsPerDay = 86400.0
	UnixEpochJD   = 2440587.5
	J2000JD       = 2451545.0

	// DaysPerUnit divides days since J2000 into ephemeris time units.
	DaysPerUnit = 365250.0
)

// UTCToTAI converts Unix UTC seconds to TAI seconds.
func UTCToTAI(unix float64) float64 { return unix + LeapSeconds }

// TAIToTT converts TAI seconds to Terrestrial Time seconds.
func TAIToTT(tai float64) float64 { return tai + TTOffset }

// TTToJulian converts TT seconds since the Unix epoch to a Julian Date.
func TTToJulian(tt float64) float64 { return tt/SecondsPerDay + UnixEpochJD }

// JulianToJ2000Days returns the days elapsed since J2000.0.
func JulianToJ2000Days(jd float64) float64 { return jd - J2000JD }

// J2000DaysToCenturies converts days since J2000.0 to ephemeris time units.
func J2000DaysToCenturies(days float64) float64 { return days / DaysPerUnit }

// EphemerisTime converts Unix UTC seconds to ephemeris time.
func EphemerisTime(unix float64) float64 {
	return J2000DaysToCenturies(JulianToJ2000Days(TTToJulian(TAIToTT(UTCToTAI(unix)))))
}

// EphemerisTimeAt converts a wall-clock instant to ephemeris time.
func EphemerisTimeAt(t time.Time) float64 {
	jd := julian.TimeToJD(t.UTC()) + (LeapSeconds+TTOffset)/SecondsPerDay
	return J2000DaysToCenturies(JulianToJ2000Days(jd))
}

// TimeAt inverts EphemerisTimeAt.
func TimeAt(et float64) time.Time {
	return julian.JDToTime(EphemerisToJulian(et) - (LeapSeconds+TTOffset)/SecondsPerDay)
}

// JulianToUnix converts a Julian Date to seconds since the Unix epoch on the
// same time scale.
func JulianToUnix(jd float64) float64 { return (jd - UnixEpochJD) * SecondsPerDay }

// EphemerisToJulian converts ephemeris time back to a TT Julian Date.
func EphemerisToJulian(et float64) float64 { return et*DaysPerUnit + J2000JD }

// SecondsToEphemeris converts a duration in seconds to ephemeris time units.
func SecondsToEphemeris(seconds float64) float64 {
	return seconds / (DaysPerUnit * SecondsPerDay)
}
