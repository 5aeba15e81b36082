package domain

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrUnrecognizedName is returned when a file name does not follow the
// "<prefix>_<year>_<station...>_<code>" convention.
var ErrUnrecognizedName = errors.New("unrecognized source file name")

// SourceName is the structured form of a raw export's file name.
type SourceName struct {
	Prefix  string
	Year    string
	Station string
	Code    string
}

// ParseSourceName decomposes a file name into its convention parts. Only the
// base name is considered, so the same name in different directories always
// yields the same result. The name needs at least four underscore-separated
// segments and a non-blank station.
func ParseSourceName(filename string) (SourceName, error) {
	parts := strings.Split(stem(filename), "_")
	if len(parts) < 4 {
		return SourceName{}, fmt.Errorf("%w: %q has %d segments", ErrUnrecognizedName, filename, len(parts))
	}

	station := joinStation(parts)
	if station == "" {
		return SourceName{}, fmt.Errorf("%w: %q has a blank station", ErrUnrecognizedName, filename)
	}

	return SourceName{
		Prefix:  parts[0],
		Year:    parts[1],
		Station: station,
		Code:    parts[len(parts)-1],
	}, nil
}

// StationFromName extracts the station label without validating the naming
// convention. Names with fewer than three segments produce "".
func StationFromName(filename string) string {
	return joinStation(strings.Split(stem(filename), "_"))
}

// MatchesPollutant reports whether the file name, without extension,
// contains the pollutant code.
func MatchesPollutant(filename, code string) bool {
	return strings.Contains(stem(filename), code)
}

func joinStation(parts []string) string {
	if len(parts) < 3 {
		return ""
	}
	return strings.TrimSpace(strings.Join(parts[2:len(parts)-1], "_"))
}

// stem returns the base name without its final extension.
func stem(filename string) string {
	base := filepath.Base(filename)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
