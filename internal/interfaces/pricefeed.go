package interfaces

import "context"

// PriceFeed returns the last two daily closes for a symbol, oldest first,
// or fails when the upstream has fewer than two data points.
type PriceFeed interface {
	LastTwoCloses(ctx context.Context, symbol string) (prev, last float64, err error)
}
