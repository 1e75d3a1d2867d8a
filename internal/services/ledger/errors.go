package ledger

import "fmt"

// InsufficientCostBasisError signals an oversell: a sell's quantity exceeds
// what the asset's remaining lots can supply. It indicates a data-integrity
// problem and must be surfaced, never silently clamped.
type InsufficientCostBasisError struct {
	Asset     string
	Requested float64
	Available float64
}

func (e *InsufficientCostBasisError) Error() string {
	return fmt.Sprintf("insufficient cost basis for %s: requested %.8f, available %.8f",
		e.Asset, e.Requested, e.Available)
}

// InvalidMethodError signals an unrecognized cost-basis method string.
type InvalidMethodError struct {
	Method string
}

func (e *InvalidMethodError) Error() string {
	return fmt.Sprintf("invalid cost basis method %q (want FIFO, LIFO, HIFO or WAC)", e.Method)
}
