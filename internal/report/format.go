package report

import (
	"fmt"
	"strings"
)

// Format represents the output layout of a report.
type Format uint8

const (
	FormatText    Format = iota // aligned lines
	FormatTable                 // bordered table
	FormatNDJSON                // newline-delimited JSON
	FormatMsgpack               // msgpack stream, one map per record
)

// String returns the string representation of Format.
func (f Format) String() string {
	switch f {
	case FormatText:
		return "text"
	case FormatTable:
		return "table"
	case FormatNDJSON:
		return "ndjson"
	case FormatMsgpack:
		return "msgpack"
	default:
		return "unknown"
	}
}

// ParseFormat converts a string to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text":
		return FormatText, nil
	case "table":
		return FormatTable, nil
	case "ndjson", "json":
		return FormatNDJSON, nil
	case "msgpack":
		return FormatMsgpack, nil
	default:
		return FormatText, fmt.Errorf("invalid report format: %q (expected: text|table|ndjson|msgpack)", s)
	}
}
