package pipeline

import "strings"

// Format is the closed set of response formats the dispatcher understands.
type Format int

// Response format variants. Anything the API can be asked for that the tool
// does not reshape or persist maps to FormatUnknown.
const (
	FormatUnknown Format = iota
	FormatCSV
	FormatPX
)

// ParseFormat maps a declared format string to a Format, case-insensitively.
func ParseFormat(s string) Format {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "csv":
		return FormatCSV
	case "px":
		return FormatPX
	default:
		return FormatUnknown
	}
}

func (f Format) String() string {
	switch f {
	case FormatCSV:
		return "csv"
	case FormatPX:
		return "px"
	default:
		return "unknown"
	}
}
