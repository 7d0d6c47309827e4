package schema

import "time"

// PoolsStats is one output row of the stats engine. The four percentage
// fields are formatted to exactly 6 decimal places, or hold the
// "calculating.." placeholder while not enough snapshots exist yet.
// EarnMultiplier is a full-precision decimal string, "0" when unavailable.
type PoolsStats struct {
	Address        string `json:"address"`
	BaseApy        string `json:"baseApy"`
	AvgApy         string `json:"avgApy"`
	DailyBasedApr  string `json:"dailyBasedApr"`
	WeeklyBasedApr string `json:"weeklyBasedApr"`
	EarnMultiplier string `json:"earnMultiplier"`
}

type GetStatsResponse struct {
	Networks  map[string][]PoolsStats `json:"networks"`
	UpdatedAt time.Time               `json:"updatedAt"`
}

type GetNetworkStatsResponse struct {
	Network   string       `json:"network"`
	Stats     []PoolsStats `json:"stats"`
	UpdatedAt time.Time    `json:"updatedAt"`
}

type GetStatusResponse struct {
	Networks map[string]GetStatusResponseNetwork `json:"networks"`
}

type GetStatusResponseNetwork struct {
	LatestBlockHeight int64 `json:"latestBlockHeight"`
}
