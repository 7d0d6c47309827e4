package store

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/vaultbeam/pool-stats-backend/config"
	"github.com/vaultbeam/pool-stats-backend/schema"
)

// Service reads pool snapshots from one network's collection. Snapshots are
// written by an external indexer; the service never writes them.
type Service struct {
	cfg        config.MongoDBConfig
	mc         *mongo.Client
	collection string
}

func NewService(cfg config.MongoDBConfig, mc *mongo.Client, collection string) *Service {
	return &Service{cfg, mc, collection}
}

func (s *Service) SnapshotCollection() *mongo.Collection {
	return s.mc.Database(s.cfg.DB).Collection(s.collection)
}

func (s *Service) EnsureDBIndexes(ctx context.Context) ([]string, error) {
	return s.SnapshotCollection().Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: schema.SnapshotAddressKey, Value: 1}, {Key: schema.SnapshotBlockTimeKey, Value: 1}}},
		{Keys: bson.D{{Key: schema.SnapshotBlockTimeKey, Value: -1}}},
	})
}

// FindEarliest returns the oldest snapshot of an address, or nil when the
// address has no snapshots yet.
func (s *Service) FindEarliest(ctx context.Context, address string) (*schema.Snapshot, error) {
	return s.findOne(ctx, bson.M{schema.SnapshotAddressKey: address}, 1)
}

// FindLatest returns the newest snapshot of an address, or nil.
func (s *Service) FindLatest(ctx context.Context, address string) (*schema.Snapshot, error) {
	return s.findOne(ctx, bson.M{schema.SnapshotAddressKey: address}, -1)
}

// FindInWindow returns the oldest snapshot of an address whose block time
// falls in [start, end), or nil when none does.
func (s *Service) FindInWindow(ctx context.Context, address string, start, end time.Time) (*schema.Snapshot, error) {
	return s.findOne(ctx, bson.M{
		schema.SnapshotAddressKey: address,
		schema.SnapshotBlockTimeKey: bson.M{
			"$gte": start,
			"$lt":  end,
		},
	}, 1)
}

func (s *Service) findOne(ctx context.Context, filter bson.M, order int) (*schema.Snapshot, error) {
	var snap schema.Snapshot
	if err := s.SnapshotCollection().FindOne(ctx, filter,
		options.FindOne().SetSort(bson.D{{Key: schema.SnapshotBlockTimeKey, Value: order}}),
	).Decode(&snap); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &snap, nil
}

// ListDistinctAddresses returns every tracked address exactly once, sorted
// so that repeated stats passes over an unchanged collection produce
// identical output.
func (s *Service) ListDistinctAddresses(ctx context.Context) ([]string, error) {
	vs, err := s.SnapshotCollection().Distinct(ctx, schema.SnapshotAddressKey, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("distinct addresses: %w", err)
	}
	addrs := make([]string, 0, len(vs))
	for _, v := range vs {
		addr, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected address type %T", v)
		}
		addrs = append(addrs, addr)
	}
	sort.Strings(addrs)
	return addrs, nil
}

// LatestBlockHeight returns the block height of the newest snapshot in the
// collection, 0 when the collection is empty.
func (s *Service) LatestBlockHeight(ctx context.Context) (int64, error) {
	var snap schema.Snapshot
	if err := s.SnapshotCollection().FindOne(ctx, bson.M{
		schema.SnapshotBlockKey: bson.M{"$exists": true},
	}, options.FindOne().SetSort(bson.D{{Key: schema.SnapshotBlockTimeKey, Value: -1}})).Decode(&snap); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return 0, nil
		}
		return 0, err
	}
	return snap.Block, nil
}
