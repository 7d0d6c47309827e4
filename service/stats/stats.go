package stats

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vaultbeam/pool-stats-backend/schema"
)

const (
	// PendingValue is emitted for a percentage metric whose reference
	// snapshots don't exist yet.
	PendingValue = "calculating.."
	// ZeroMultiplierValue is the earn multiplier's counterpart of PendingValue.
	ZeroMultiplierValue = "0"
)

// powPrecision is the number of decimal digits the compounding power
// operations keep before the final 6-digit rounding at output time.
const powPrecision int32 = 12

var (
	one          = decimal.NewFromInt(1)
	hundred      = decimal.NewFromInt(100)
	daysPerYear  = decimal.NewFromInt(365)
	weeksPerYear = daysPerYear.Div(decimal.NewFromInt(7))
)

// Store is the snapshot store the engine consumes. Implementations return
// (nil, nil) when no snapshot matches, and must list each tracked address
// exactly once.
type Store interface {
	FindEarliest(ctx context.Context, address string) (*schema.Snapshot, error)
	FindLatest(ctx context.Context, address string) (*schema.Snapshot, error)
	FindInWindow(ctx context.Context, address string, start, end time.Time) (*schema.Snapshot, error)
	ListDistinctAddresses(ctx context.Context) ([]string, error)
}

// Service derives per-address yield statistics from pool snapshots.
type Service struct {
	ss  Store
	now func() time.Time
}

func NewService(ss Store) *Service {
	return &Service{ss: ss, now: time.Now}
}

// AllPoolStats computes statistics for every address the store tracks, in
// store order. A store failure aborts the whole pass; partial results are
// never returned.
func (s *Service) AllPoolStats(ctx context.Context) ([]schema.PoolsStats, error) {
	addrs, err := s.ss.ListDistinctAddresses(ctx)
	if err != nil {
		return nil, fmt.Errorf("list addresses: %w", err)
	}
	res := make([]schema.PoolsStats, 0, len(addrs))
	for _, addr := range addrs {
		ps, err := s.PoolStats(ctx, addr)
		if err != nil {
			return nil, err
		}
		res = append(res, ps)
	}
	return res, nil
}

// PoolStats computes statistics for a single address. Missing reference
// snapshots are normal for newly tracked pools and resolve to placeholder
// values, never errors.
func (s *Service) PoolStats(ctx context.Context, address string) (schema.PoolsStats, error) {
	entries, err := s.poolEntries(ctx, address)
	if err != nil {
		return schema.PoolsStats{}, err
	}

	lastRatio, lastOK := Ratio(entries.LastEntry)
	weeklyRatio, weeklyOK := Ratio(entries.WeeklyEntry)
	yesterdayRatio, yesterdayOK := Ratio(entries.YesterdayEntry)
	days := daysElapsed(entries.FirstEntry, entries.LastEntry)

	return schema.PoolsStats{
		Address:        address,
		BaseApy:        baseAPY(lastRatio, lastOK, days),
		AvgApy:         weeklyAPY(lastRatio, lastOK, weeklyRatio, weeklyOK, days),
		DailyBasedApr:  dailyAPR(lastRatio, lastOK, yesterdayRatio, yesterdayOK, days),
		WeeklyBasedApr: weeklyAPR(lastRatio, lastOK, weeklyRatio, weeklyOK, days),
		EarnMultiplier: earnMultiplier(lastRatio, lastOK, yesterdayRatio, yesterdayOK),
	}, nil
}

// poolEntries fetches the four reference snapshots of an address. The weekly
// and yesterday windows are one day wide and anchored to "now" truncated to
// UTC midnight.
func (s *Service) poolEntries(ctx context.Context, address string) (schema.PoolsEntries, error) {
	nowDate := s.now().UTC().Truncate(24 * time.Hour)

	var entries schema.PoolsEntries
	var err error
	if entries.FirstEntry, err = s.ss.FindEarliest(ctx, address); err != nil {
		return entries, fmt.Errorf("find earliest snapshot of %q: %w", address, err)
	}
	if entries.LastEntry, err = s.ss.FindLatest(ctx, address); err != nil {
		return entries, fmt.Errorf("find latest snapshot of %q: %w", address, err)
	}
	if entries.WeeklyEntry, err = s.ss.FindInWindow(ctx, address, nowDate.AddDate(0, 0, -7), nowDate.AddDate(0, 0, -6)); err != nil {
		return entries, fmt.Errorf("find weekly snapshot of %q: %w", address, err)
	}
	if entries.YesterdayEntry, err = s.ss.FindInWindow(ctx, address, nowDate.AddDate(0, 0, -1), nowDate); err != nil {
		return entries, fmt.Errorf("find yesterday snapshot of %q: %w", address, err)
	}
	return entries, nil
}

// daysElapsed is the number of days between the first and the last snapshot,
// rounded up. Zero when either snapshot is absent or both are the same
// observation.
func daysElapsed(first, last *schema.Snapshot) int64 {
	if first == nil || last == nil {
		return 0
	}
	d := last.BlockTime.Sub(first.BlockTime)
	days := int64(d / (24 * time.Hour))
	if d%(24*time.Hour) != 0 {
		days++
	}
	return days
}

// baseAPY compounds the lifetime ratio over a year:
// (lastRatio^(365/days) - 1) * 100. days == 0 means a single snapshot so far,
// which must not turn into a division-by-zero exponent.
func baseAPY(lastRatio decimal.Decimal, lastOK bool, days int64) string {
	if !lastOK || days == 0 {
		return PendingValue
	}
	compounded, err := lastRatio.PowWithPrecision(daysPerYear.Div(decimal.NewFromInt(days)), powPrecision)
	if err != nil {
		return PendingValue
	}
	return compounded.Sub(one).Mul(hundred).StringFixed(6)
}

// weeklyAPY compounds one week's growth over a year:
// ((lastRatio/weeklyRatio)^(365/7) - 1) * 100. days == 0 means the address has
// a single observation so far, which can satisfy both the latest and the
// window lookups at once; that is still not enough data to report growth.
func weeklyAPY(lastRatio decimal.Decimal, lastOK bool, weeklyRatio decimal.Decimal, weeklyOK bool, days int64) string {
	if !lastOK || !weeklyOK || weeklyRatio.IsZero() || days == 0 {
		return PendingValue
	}
	compounded, err := lastRatio.Div(weeklyRatio).PowWithPrecision(weeksPerYear, powPrecision)
	if err != nil {
		return PendingValue
	}
	return compounded.Sub(one).Mul(hundred).StringFixed(6)
}

// dailyAPR extrapolates one day's growth linearly:
// ((lastRatio/yesterdayRatio) - 1) * 365 * 100.
func dailyAPR(lastRatio decimal.Decimal, lastOK bool, yesterdayRatio decimal.Decimal, yesterdayOK bool, days int64) string {
	if !lastOK || !yesterdayOK || yesterdayRatio.IsZero() || days == 0 {
		return PendingValue
	}
	return lastRatio.Div(yesterdayRatio).Sub(one).Mul(daysPerYear).Mul(hundred).StringFixed(6)
}

// weeklyAPR extrapolates one week's growth linearly:
// ((lastRatio/weeklyRatio) - 1) * (365/7) * 100.
func weeklyAPR(lastRatio decimal.Decimal, lastOK bool, weeklyRatio decimal.Decimal, weeklyOK bool, days int64) string {
	if !lastOK || !weeklyOK || weeklyRatio.IsZero() || days == 0 {
		return PendingValue
	}
	return lastRatio.Div(weeklyRatio).Sub(one).Mul(weeksPerYear).Mul(hundred).StringFixed(6)
}

// earnMultiplier is the raw ratio change over the most recent day, emitted at
// full precision.
func earnMultiplier(lastRatio decimal.Decimal, lastOK bool, yesterdayRatio decimal.Decimal, yesterdayOK bool) string {
	if !lastOK || !yesterdayOK {
		return ZeroMultiplierValue
	}
	return lastRatio.Sub(yesterdayRatio).String()
}
