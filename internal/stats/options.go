package stats

import "github.com/shopspring/decimal"

// Options carries the tunable constants of the inventory estimators.
type Options struct {
	// RevenuePerUnit is the linear revenue estimate charged per allocated unit.
	RevenuePerUnit decimal.Decimal `json:"revenuePerUnit"`
	// LowCapacityRatio flags items whose available quantity falls under this share of the total.
	LowCapacityRatio float64 `json:"lowCapacityRatio"`
}

const (
	DefaultRevenuePerUnit   = 50
	DefaultLowCapacityRatio = 0.2
)

// DefaultOptions returns the estimator constants used by the marketplace dashboards.
func DefaultOptions() Options {
	return Options{
		RevenuePerUnit:   decimal.NewFromInt(DefaultRevenuePerUnit),
		LowCapacityRatio: DefaultLowCapacityRatio,
	}
}

// EstimateRevenue applies the linear revenue estimator to a unit count.
func (o Options) EstimateRevenue(units int) decimal.Decimal {
	return o.RevenuePerUnit.Mul(decimal.NewFromInt(int64(units)))
}
