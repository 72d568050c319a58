package gradebook

import (
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/pkg/errors"
)

// ParseGrade reads a grade typed into an edit field. Like a base-10 parseInt
// it skips leading whitespace, takes an optional sign and the leading run of
// digits and ignores the rest ("12pts" is 12, "8.5" is 8). ok is false when
// no digits lead the input; callers then leave the stored grade untouched.
func ParseGrade(raw string) (grade int, ok bool) {
	s := strings.TrimLeftFunc(raw, unicode.IsSpace)
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if errors.Is(err, strconv.ErrRange) {
		// out-of-range digit runs saturate instead of being dropped
		if s[0] == '-' {
			return math.MinInt, true
		}
		return math.MaxInt, true
	}
	if err != nil {
		return 0, false
	}
	return n, true
}
