package valuemanagers

import (
	"strconv"
	"strings"
)

// parsedLength is a length or percentage token, before it's resolved
// against whatever base the owning property defines (font-size against
// an ancestor's font-size, line-height against the element's own).
type parsedLength struct {
	value   float64
	unit    string // "px", "em", "%", "" (unitless number), or "" when keyword is set
	keyword string
}

func parseLengthToken(text string) (parsedLength, bool) {
	s := strings.TrimSpace(strings.ToLower(text))
	if s == "" {
		return parsedLength{}, false
	}
	if isAlpha(s) {
		return parsedLength{keyword: s}, true
	}
	switch {
	case strings.HasSuffix(s, "%"):
		n, err := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 64)
		if err != nil {
			return parsedLength{}, false
		}
		return parsedLength{value: n, unit: "%"}, true
	case strings.HasSuffix(s, "px"):
		n, err := strconv.ParseFloat(strings.TrimSuffix(s, "px"), 64)
		if err != nil {
			return parsedLength{}, false
		}
		return parsedLength{value: n, unit: "px"}, true
	case strings.HasSuffix(s, "em"):
		n, err := strconv.ParseFloat(strings.TrimSuffix(s, "em"), 64)
		if err != nil {
			return parsedLength{}, false
		}
		return parsedLength{value: n, unit: "em"}, true
	default:
		n, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return parsedLength{}, false
		}
		return parsedLength{value: n, unit: ""}, true
	}
}

func isAlpha(s string) bool {
	for _, r := range s {
		if !((r >= 'a' && r <= 'z') || r == '-') {
			return false
		}
	}
	return len(s) > 0
}
