package internal

import (
	"regexp"

	"github.com/pkg/errors"
	"github.com/tdewolff/parse/v2/strconv"
)

var supportedPathData = regexp.MustCompile(`^[\s\dLCMZz,.]*$`)

// IsDataSupported is a quick screen for path data made only of the supported
// commands, unsigned numbers and separators.
func IsDataSupported(data string) bool {
	return supportedPathData.MatchString(data)
}

// ParsePath reads path data made of M, L, C and Z commands. Separators are
// optional where numbers can be told apart ("M100-200", "L1.6.8"), a command
// letter may be followed by several argument groups, and the data does not
// have to open with a Moveto.
func ParsePath(data string) (*Path, error) {
	path := &Path{}
	b := []byte(data)
	i := skipCommaWhitespace(b)
	for i < len(b) {
		command := b[i]
		if !isCommandLetter(command) {
			return nil, errors.Errorf("bad path: expected a command at position %d, found '%c'", i+1, command)
		}
		i++

		var coords []float64
		for {
			i += skipCommaWhitespace(b[i:])
			if i >= len(b) || isCommandLetter(b[i]) {
				break
			}
			num, n := strconv.ParseFloat(b[i:])
			if n == 0 {
				return nil, errors.Errorf("bad path: unexpected '%c' at position %d", b[i], i+1)
			}
			coords = append(coords, num)
			i += n
		}

		segments, err := CreateSegments(command, coords...)
		if err != nil {
			return nil, errors.Wrap(err, "bad path")
		}
		path.AppendSegment(segments...)
	}
	return path, nil
}

// MustParsePath panics with a GeometryError on bad data.
func MustParsePath(data string) *Path {
	path, err := ParsePath(data)
	if err != nil {
		panic(GeometryError{err})
	}
	return path
}

func skipCommaWhitespace(b []byte) int {
	i := 0
	for i < len(b) && (b[i] == ' ' || b[i] == ',' || b[i] == '\n' || b[i] == '\r' || b[i] == '\t') {
		i++
	}
	return i
}

func isCommandLetter(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z'
}
