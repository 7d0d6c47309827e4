package stats

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/vaultbeam/pool-stats-backend/schema"
)

func TestRatio(t *testing.T) {
	blockTime := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	for _, tc := range []struct {
		name     string
		snapshot *schema.Snapshot
		ratio    string
		ok       bool
	}{
		{
			name:     "absent snapshot",
			snapshot: nil,
			ok:       false,
		},
		{
			name: "unit ratio",
			snapshot: &schema.Snapshot{
				Address: "pool1", BlockTime: blockTime,
				TotalShares: "1000000", CurrentUsdBalance: "1000000",
			},
			ratio: "1",
			ok:    true,
		},
		{
			name: "ten percent growth",
			snapshot: &schema.Snapshot{
				Address: "pool1", BlockTime: blockTime,
				TotalShares: "1000000", CurrentUsdBalance: "1100000",
			},
			ratio: "1.1",
			ok:    true,
		},
		{
			name: "balance below shares",
			snapshot: &schema.Snapshot{
				Address: "pool1", BlockTime: blockTime,
				TotalShares: "2000000", CurrentUsdBalance: "1000000",
			},
			ratio: "0.5",
			ok:    true,
		},
		{
			name: "zero shares",
			snapshot: &schema.Snapshot{
				Address: "pool1", BlockTime: blockTime,
				TotalShares: "0", CurrentUsdBalance: "1000000",
			},
			ok: false,
		},
		{
			name: "unparseable shares",
			snapshot: &schema.Snapshot{
				Address: "pool1", BlockTime: blockTime,
				TotalShares: "n/a", CurrentUsdBalance: "1000000",
			},
			ok: false,
		},
		{
			name: "unparseable balance",
			snapshot: &schema.Snapshot{
				Address: "pool1", BlockTime: blockTime,
				TotalShares: "1000000", CurrentUsdBalance: "",
			},
			ok: false,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			r, ok := Ratio(tc.snapshot)
			require.Equal(t, tc.ok, ok)
			if tc.ok {
				require.True(t, r.Equal(decimal.RequireFromString(tc.ratio)), "got %s, want %s", r, tc.ratio)
			}
		})
	}
}
