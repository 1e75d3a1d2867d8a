// Package ledger builds and consumes per-asset cost-basis lot queues.
package ledger

import "strings"

// Method selects the lot-consumption ordering rule.
type Method string

const (
	MethodFIFO Method = "FIFO" // ascending acquisition date
	MethodLIFO Method = "LIFO" // descending acquisition date
	MethodHIFO Method = "HIFO" // descending unit cost, ties by ascending date
	MethodWAC  Method = "WAC"  // weighted average cost pool
)

// ParseMethod validates a user-supplied method string. An unrecognized value
// is a configuration error and fails fast before any lot processing begins.
func ParseMethod(s string) (Method, error) {
	switch Method(strings.ToUpper(strings.TrimSpace(s))) {
	case MethodFIFO:
		return MethodFIFO, nil
	case MethodLIFO:
		return MethodLIFO, nil
	case MethodHIFO:
		return MethodHIFO, nil
	case MethodWAC:
		return MethodWAC, nil
	}
	return "", &InvalidMethodError{Method: s}
}
