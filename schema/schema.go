package schema

import (
	"time"
)

const (
	SnapshotAddressKey           = "address"
	SnapshotBlockKey             = "block"
	SnapshotBlockTimeKey         = "blockTime"
	SnapshotTotalSharesKey       = "totalShares"
	SnapshotCurrentUsdBalanceKey = "currentUsdBalance"
)

// Snapshot is one recorded observation of a pool's total shares and USD
// balance at a point in time. Snapshots are written by the indexer and are
// immutable; this service only reads them.
//
// TotalShares and CurrentUsdBalance are fixed-point encoded: the stored
// integer string is the true value multiplied by 1e6.
type Snapshot struct {
	Address           string    `bson:"address"`
	Block             int64     `bson:"block"`
	BlockTime         time.Time `bson:"blockTime"`
	TotalShares       string    `bson:"totalShares"`
	CurrentUsdBalance string    `bson:"currentUsdBalance"`
}

// PoolsEntries holds the four reference snapshots of one address for a single
// statistics pass. A nil entry means no snapshot fell in the required window,
// which is a normal state for newly tracked pools.
type PoolsEntries struct {
	FirstEntry     *Snapshot
	LastEntry      *Snapshot
	WeeklyEntry    *Snapshot
	YesterdayEntry *Snapshot
}
