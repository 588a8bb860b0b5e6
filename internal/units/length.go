package units

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	// 12'6" | 12' | 12.5'
	feetInchesRe = regexp.MustCompile(`^(\d*\.\d+|\d+)'(?:\s*(\d*\.\d+|\d+)")?$`)
	// 6" | 6.5"
	inchesRe = regexp.MustCompile(`^(\d*\.\d+|\d+)"$`)
	// 3.5 | 3.5 m | 3.5m | 12 ft
	numberUnitRe = regexp.MustCompile(`^(\d*\.\d+|\d+)\s*(\S.*)?$`)
)

// ParseLength parses a free-text length, as found in OpenStreetMap height and
// width tags, and returns it in metres.
//
// Accepted forms are feet and inches (12'6", 12', 6"), bare numbers which are
// taken as metres, and a number followed by a distance unit symbol (3.5 m,
// 2 km, 40 ft). On failure the returned length is zero.
func ParseLength(s string) (float64, error) {
	s = strings.TrimSpace(s)

	if m := feetInchesRe.FindStringSubmatch(s); m != nil {
		feet, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q: %w", ErrMalformedLength, s, err)
		}

		inches := feet * 12
		if m[2] != "" {
			extra, err := strconv.ParseFloat(m[2], 64)
			if err != nil {
				return 0, fmt.Errorf("%w: %q: %w", ErrMalformedLength, s, err)
			}
			inches += extra
		}

		return ConvertDistance(inches, Inch, Metre), nil
	}

	if m := inchesRe.FindStringSubmatch(s); m != nil {
		inches, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q: %w", ErrMalformedLength, s, err)
		}
		return ConvertDistance(inches, Inch, Metre), nil
	}

	m := numberUnitRe.FindStringSubmatch(s)
	if m == nil {
		return 0, fmt.Errorf("%w: %q", ErrMalformedLength, s)
	}

	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %w", ErrMalformedLength, s, err)
	}

	if m[2] == "" {
		return v, nil
	}

	unit, ok := GuessDistance(strings.TrimSpace(m[2]))
	if !ok {
		return 0, fmt.Errorf("%w: %q: %w: %q", ErrMalformedLength, s, ErrUnknownUnit, m[2])
	}

	return ConvertDistance(v, unit, Metre), nil
}
