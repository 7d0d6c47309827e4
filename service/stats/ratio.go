package stats

import (
	"github.com/shopspring/decimal"

	"github.com/vaultbeam/pool-stats-backend/schema"
)

// fixedPointShift undoes the 1e6 fixed-point encoding the indexer uses for
// totalShares and currentUsdBalance.
const fixedPointShift = -6

// Ratio converts one snapshot into its USD-balance-per-share ratio. It
// reports false when the snapshot is absent or its share count is zero or
// unparseable, so callers never divide by zero or format a NaN.
func Ratio(snap *schema.Snapshot) (decimal.Decimal, bool) {
	if snap == nil {
		return decimal.Decimal{}, false
	}
	shares, err := decimal.NewFromString(snap.TotalShares)
	if err != nil || shares.IsZero() {
		return decimal.Decimal{}, false
	}
	balance, err := decimal.NewFromString(snap.CurrentUsdBalance)
	if err != nil {
		return decimal.Decimal{}, false
	}
	return balance.Shift(fixedPointShift).Div(shares.Shift(fixedPointShift)), true
}
